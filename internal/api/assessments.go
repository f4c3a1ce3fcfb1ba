package api

import (
	"encoding/json"
	"net/http"

	"github.com/clearbill/assess/internal/catalog"
	"github.com/clearbill/assess/internal/scoring"
)

type AssessmentsHandler struct {
	engine *scoring.Engine
}

func NewAssessmentsHandler(engine *scoring.Engine) *AssessmentsHandler {
	return &AssessmentsHandler{engine: engine}
}

// AssessRequest carries the answer set for every stateless assessment
// endpoint. Answers map question IDs to raw values as collected by the UI.
type AssessRequest struct {
	Answers scoring.AnswerSet `json:"answers"`
}

func decodeAssessRequest(w http.ResponseWriter, r *http.Request) (*AssessRequest, bool) {
	var req AssessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return nil, false
	}
	if req.Answers == nil {
		req.Answers = scoring.AnswerSet{}
	}
	return &req, true
}

func (h *AssessmentsHandler) Visible(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeAssessRequest(w, r)
	if !ok {
		return
	}
	questions := h.engine.VisibleQuestions(req.Answers)
	if questions == nil {
		questions = []*catalog.Question{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"segment":   h.engine.SegmentID(req.Answers),
		"questions": questions,
	})
}

func (h *AssessmentsHandler) Score(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeAssessRequest(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, h.engine.CalculateScores(req.Answers))
}

func (h *AssessmentsHandler) Gap(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeAssessRequest(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, h.engine.AnalyzeGap(req.Answers))
}

func (h *AssessmentsHandler) Recommendations(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeAssessRequest(w, r)
	if !ok {
		return
	}
	recs := h.engine.Recommendations(req.Answers)
	if recs == nil {
		recs = []scoring.TriggeredRecommendation{}
	}
	writeJSON(w, http.StatusOK, recs)
}

func (h *AssessmentsHandler) Projections(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeAssessRequest(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, h.engine.ProjectedScores(req.Answers))
}

func (h *AssessmentsHandler) Insights(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeAssessRequest(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, h.engine.CalculateInsights(req.Answers))
}

func (h *AssessmentsHandler) Resiliency(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeAssessRequest(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, h.engine.CalculateResiliencyIndex(req.Answers))
}

func (h *AssessmentsHandler) Strengths(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeAssessRequest(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, h.engine.AnalyzeStrengths(req.Answers))
}

func (h *AssessmentsHandler) Report(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeAssessRequest(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, h.engine.BuildReport(req.Answers))
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
