package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/clearbill/assess/internal/events"
	"github.com/clearbill/assess/internal/export"
	"github.com/clearbill/assess/internal/scoring"
	"github.com/clearbill/assess/internal/store"
)

type SubmissionsHandler struct {
	engine  *scoring.Engine
	store   store.Store
	events  events.Client
	webhook *export.WebhookClient
	logger  *slog.Logger
}

func NewSubmissionsHandler(engine *scoring.Engine, s store.Store, ev events.Client, wh *export.WebhookClient, logger *slog.Logger) *SubmissionsHandler {
	return &SubmissionsHandler{engine: engine, store: s, events: ev, webhook: wh, logger: logger}
}

type CreateSubmissionRequest struct {
	Respondent export.Respondent `json:"respondent"`
	Answers    scoring.AnswerSet `json:"answers"`
}

type CreateSubmissionResponse struct {
	Record export.Record  `json:"record"`
	Report scoring.Report `json:"report"`
}

func (h *SubmissionsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateSubmissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.Respondent.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "respondent name required"})
		return
	}
	if len(req.Answers) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "answers required"})
		return
	}

	report := h.engine.BuildReport(req.Answers)
	rec := export.NewRecord(req.Respondent, req.Answers, report)

	if h.store != nil {
		if err := h.store.SaveSubmission(r.Context(), &rec); err != nil {
			h.logger.Error("save submission failed", "id", rec.ID, "error", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to save submission"})
			return
		}
	}

	if h.events != nil {
		_ = h.events.Publish(events.SubjectSubmissionReceived(rec.ID), events.SubmissionReceivedEvent{
			SubmissionID: rec.ID,
			Segment:      rec.Segment,
			Respondent:   rec.Respondent.Name,
			Organization: rec.Respondent.Organization,
			ReceivedAt:   rec.Timestamp,
		})
		_ = h.events.Publish(events.SubjectSubmissionScored(rec.ID), events.SubmissionScoredEvent{
			SubmissionID:    rec.ID,
			Segment:         rec.Segment,
			Overall:         rec.Overall,
			Categories:      rec.Categories,
			ResiliencyIndex: rec.ResiliencyIndex,
			Recommendations: len(report.Recommendations),
		})
	}

	if h.webhook != nil && h.webhook.Enabled() {
		h.webhook.SendAsync(rec)
		if h.events != nil {
			_ = h.events.Publish(events.SubjectSubmissionExported(rec.ID), map[string]string{"submission_id": rec.ID})
		}
	}

	writeJSON(w, http.StatusCreated, CreateSubmissionResponse{Record: rec, Report: report})
}

func (h *SubmissionsHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "no database configured"})
		return
	}
	id := chi.URLParam(r, "id")

	rec, err := h.store.GetSubmission(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if rec == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "submission not found"})
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func submissionFilter(r *http.Request) store.SubmissionFilter {
	filter := store.SubmissionFilter{
		Segment: r.URL.Query().Get("segment"),
	}
	if s := r.URL.Query().Get("since"); s != "" {
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			filter.Since = &t
		}
	}
	if s := r.URL.Query().Get("min_score"); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			filter.MinScore = &n
		}
	}
	if s := r.URL.Query().Get("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			filter.Limit = n
		}
	}
	if s := r.URL.Query().Get("offset"); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			filter.Offset = n
		}
	}
	return filter
}

func (h *SubmissionsHandler) List(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "no database configured"})
		return
	}

	recs, err := h.store.ListSubmissions(r.Context(), submissionFilter(r))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if recs == nil {
		recs = []*export.Record{}
	}
	writeJSON(w, http.StatusOK, recs)
}

func (h *SubmissionsHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "no database configured"})
		return
	}

	recs, err := h.store.ListSubmissions(r.Context(), submissionFilter(r))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	rows := make([]export.Record, 0, len(recs))
	for _, rec := range recs {
		rows = append(rows, *rec)
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="submissions.csv"`)
	if err := export.WriteCSV(w, rows); err != nil {
		h.logger.Error("csv export failed", "error", err)
	}
}

func (h *SubmissionsHandler) Stats(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "no database configured"})
		return
	}

	stats, err := h.store.GetStats(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
