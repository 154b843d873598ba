package landmarks

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/mesoplan/internal/periodization/training"
	"github.com/2beens/mesoplan/internal/telemetry/tracing"
	"github.com/2beens/mesoplan/pkg"
)

type FeedbackRequest struct {
	UserID        int     `json:"userId"`
	MuscleGroupID string  `json:"muscleGroupId"`
	RecoveryLevel float64 `json:"recoveryLevel"`
}

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service: service,
	}
}

func (h *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/landmarks", h.HandleList).Methods("GET", "OPTIONS").Name("list-landmarks")
	r.HandleFunc("/landmarks", h.HandleUpsert).Methods("PUT", "OPTIONS").Name("upsert-landmark")
	r.HandleFunc("/landmarks/feedback", h.HandleFeedback).Methods("POST", "OPTIONS").Name("landmark-feedback")
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.landmarks.list")
	defer span.End()

	userID, err := pkg.IntQueryParam(r, "user_id")
	if err != nil {
		http.Error(w, "error, "+err.Error(), http.StatusBadRequest)
		return
	}

	landmarks, err := h.service.List(ctx, userID)
	if err != nil {
		training.WriteHTTPError(w, err, "list landmarks")
		return
	}

	pkg.WriteJSON(w, landmarks, http.StatusOK)
}

func (h *Handler) HandleUpsert(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.landmarks.upsert")
	defer span.End()

	if !pkg.IsJSONRequest(r) {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var landmark VolumeLandmark
	if err := json.NewDecoder(r.Body).Decode(&landmark); err != nil {
		log.Tracef("upsert landmark, unmarshal json params: %s", err)
		http.Error(w, "upsert landmark failed", http.StatusBadRequest)
		return
	}

	stored, err := h.service.Upsert(ctx, landmark)
	if err != nil {
		training.WriteHTTPError(w, err, "upsert landmark")
		return
	}

	pkg.WriteJSON(w, stored, http.StatusOK)
}

func (h *Handler) HandleFeedback(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.landmarks.feedback")
	defer span.End()

	if !pkg.IsJSONRequest(r) {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var req FeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("landmark feedback, unmarshal json params: %s", err)
		http.Error(w, "submit feedback failed", http.StatusBadRequest)
		return
	}

	if err := h.service.SubmitFeedback(ctx, req.UserID, req.MuscleGroupID, req.RecoveryLevel); err != nil {
		training.WriteHTTPError(w, err, "submit feedback")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
