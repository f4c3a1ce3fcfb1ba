package api

import (
	"net/http"

	"github.com/clearbill/assess/internal/scoring"
)

type CatalogHandler struct {
	engine *scoring.Engine
}

func NewCatalogHandler(engine *scoring.Engine) *CatalogHandler {
	return &CatalogHandler{engine: engine}
}

func (h *CatalogHandler) Info(w http.ResponseWriter, r *http.Request) {
	c := h.engine.Catalog()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"version":         c.Version,
		"segment_key":     c.SegmentKey,
		"default_segment": c.DefaultSegment,
		"category_names":  c.CategoryNames,
		"questions":       len(c.Questions),
		"segments":        len(c.Segments),
		"forces":          len(c.Forces),
	})
}

func (h *CatalogHandler) Questions(w http.ResponseWriter, r *http.Request) {
	c := h.engine.Catalog()
	if segment := r.URL.Query().Get("segment"); segment != "" {
		filtered := make([]interface{}, 0, len(c.Questions))
		for i := range c.Questions {
			if c.Questions[i].AppliesTo(segment) {
				filtered = append(filtered, &c.Questions[i])
			}
		}
		writeJSON(w, http.StatusOK, filtered)
		return
	}
	writeJSON(w, http.StatusOK, c.Questions)
}

func (h *CatalogHandler) Segments(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.engine.Catalog().Segments)
}
