package handlers

import (
	"net/http"

	"github.com/Harshitk-cp/dempster/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type AssessHandler struct {
	svc *service.FusionService
}

func NewAssessHandler(svc *service.FusionService) *AssessHandler {
	return &AssessHandler{svc: svc}
}

type assessRequest struct {
	EvidenceIDs []string `json:"evidence_ids,omitempty" validate:"dive,uuid"`
	Query       []string `json:"query,omitempty"`
	Merge       bool     `json:"merge,omitempty"`
}

type conflictRequest struct {
	A string `json:"a" validate:"required,uuid"`
	B string `json:"b" validate:"required,uuid"`
}

func (h *AssessHandler) Assess(w http.ResponseWriter, r *http.Request) {
	frameID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid frame id")
		return
	}

	// An empty body assesses every live record.
	var req assessRequest
	if r.ContentLength != 0 && !decode(w, r, &req) {
		return
	}

	opts := service.AssessOpts{Query: req.Query, Merge: req.Merge}
	for _, s := range req.EvidenceIDs {
		opts.EvidenceIDs = append(opts.EvidenceIDs, uuid.MustParse(s))
	}

	a, err := h.svc.Assess(r.Context(), frameID, opts)
	if err != nil {
		writeServiceError(w, err, "failed to assess frame")
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (h *AssessHandler) Conflict(w http.ResponseWriter, r *http.Request) {
	frameID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid frame id")
		return
	}

	var req conflictRequest
	if !decode(w, r, &req) {
		return
	}

	report, err := h.svc.Conflict(r.Context(), frameID, uuid.MustParse(req.A), uuid.MustParse(req.B))
	if err != nil {
		writeServiceError(w, err, "failed to compute conflict")
		return
	}
	writeJSON(w, http.StatusOK, report)
}
