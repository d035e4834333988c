package handlers

import (
	"net/http"

	"github.com/Harshitk-cp/dempster/internal/domain"
	"github.com/Harshitk-cp/dempster/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type FrameHandler struct {
	svc *service.FrameService
}

func NewFrameHandler(svc *service.FrameService) *FrameHandler {
	return &FrameHandler{svc: svc}
}

type createFrameRequest struct {
	Name        string   `json:"name" validate:"required,max=128"`
	Description string   `json:"description,omitempty" validate:"max=1024"`
	Hypotheses  []string `json:"hypotheses" validate:"required,min=1,dive,required,max=256"`
}

type addHypothesesRequest struct {
	Hypotheses []string `json:"hypotheses" validate:"required,min=1,dive,required,max=256"`
}

func (h *FrameHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createFrameRequest
	if !decode(w, r, &req) {
		return
	}

	f := &domain.Frame{
		Name:        req.Name,
		Description: req.Description,
		Hypotheses:  req.Hypotheses,
	}
	if err := h.svc.Create(r.Context(), f); err != nil {
		writeServiceError(w, err, "failed to create frame")
		return
	}
	writeJSON(w, http.StatusCreated, f)
}

func (h *FrameHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid frame id")
		return
	}

	f, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, "failed to get frame")
		return
	}
	writeJSON(w, http.StatusOK, f)
}

func (h *FrameHandler) List(w http.ResponseWriter, r *http.Request) {
	frames, err := h.svc.List(r.Context(), queryLimit(r, 50, 200))
	if err != nil {
		writeServiceError(w, err, "failed to list frames")
		return
	}
	if frames == nil {
		frames = []domain.Frame{}
	}
	writeJSON(w, http.StatusOK, frames)
}

func (h *FrameHandler) AddHypotheses(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid frame id")
		return
	}

	var req addHypothesesRequest
	if !decode(w, r, &req) {
		return
	}

	f, err := h.svc.AddHypotheses(r.Context(), id, req.Hypotheses)
	if err != nil {
		writeServiceError(w, err, "failed to add hypotheses")
		return
	}
	writeJSON(w, http.StatusOK, f)
}
