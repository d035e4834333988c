package handlers

import (
	"net/http"
	"time"

	"github.com/Harshitk-cp/dempster/internal/domain"
	"github.com/Harshitk-cp/dempster/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type EvidenceHandler struct {
	svc *service.EvidenceService
}

func NewEvidenceHandler(svc *service.EvidenceService) *EvidenceHandler {
	return &EvidenceHandler{svc: svc}
}

type assignmentRequest struct {
	Mass       float64  `json:"mass" validate:"gte=0,lte=1"`
	Hypotheses []string `json:"hypotheses" validate:"required,min=1,dive,required"`
}

type createEvidenceRequest struct {
	Source      string              `json:"source" validate:"required,max=256"`
	Kind        string              `json:"kind,omitempty" validate:"omitempty,oneof=explicit_statement implicit_inference behavioral_signal sensor_reading"`
	Reliability *float64            `json:"reliability,omitempty" validate:"omitempty,gte=0,lte=1"`
	Assignments []assignmentRequest `json:"assignments" validate:"max=256,dive"`
	// Complete defaults to true: unassigned mass goes to the whole frame.
	Complete   *bool `json:"complete,omitempty"`
	TTLSeconds int   `json:"ttl_seconds,omitempty" validate:"gte=0"`
}

func (h *EvidenceHandler) Create(w http.ResponseWriter, r *http.Request) {
	frameID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid frame id")
		return
	}

	var req createEvidenceRequest
	if !decode(w, r, &req) {
		return
	}

	kind := domain.EvidenceKind(req.Kind)
	if kind == "" {
		kind = domain.EvidenceExplicit
	}
	rec := &domain.EvidenceRecord{
		FrameID:     frameID,
		Source:      req.Source,
		Kind:        kind,
		Reliability: service.ResolveReliability(kind, req.Reliability),
		Complete:    req.Complete == nil || *req.Complete,
	}
	for _, a := range req.Assignments {
		rec.Assignments = append(rec.Assignments, domain.Assignment{Mass: a.Mass, Hypotheses: a.Hypotheses})
	}
	if req.TTLSeconds > 0 {
		exp := time.Now().Add(time.Duration(req.TTLSeconds) * time.Second)
		rec.ExpiresAt = &exp
	}

	if err := h.svc.Create(r.Context(), rec); err != nil {
		writeServiceError(w, err, "failed to store evidence")
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

func (h *EvidenceHandler) ListByFrame(w http.ResponseWriter, r *http.Request) {
	frameID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid frame id")
		return
	}

	records, err := h.svc.ListByFrame(r.Context(), frameID)
	if err != nil {
		writeServiceError(w, err, "failed to list evidence")
		return
	}
	if records == nil {
		records = []domain.EvidenceRecord{}
	}
	writeJSON(w, http.StatusOK, records)
}

func (h *EvidenceHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid evidence id")
		return
	}

	rec, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, "failed to get evidence")
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (h *EvidenceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid evidence id")
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err, "failed to delete evidence")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *EvidenceHandler) Similar(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid evidence id")
		return
	}

	results, err := h.svc.Similar(r.Context(), id, queryLimit(r, 5, 50))
	if err != nil {
		writeServiceError(w, err, "failed to find similar evidence")
		return
	}
	if results == nil {
		results = []domain.EvidenceWithScore{}
	}
	writeJSON(w, http.StatusOK, results)
}
