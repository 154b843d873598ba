package mesocycles

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/mesoplan/internal/periodization/training"
	"github.com/2beens/mesoplan/internal/telemetry/tracing"
	"github.com/2beens/mesoplan/pkg"
)

type CreateRequest struct {
	UserID     int          `json:"userId"`
	Name       string       `json:"name"`
	StartDate  string       `json:"startDate"`
	TotalWeeks int          `json:"totalWeeks"`
	Days       []PlannedDay `json:"days"`
}

type PhaseRequest struct {
	Phase string `json:"phase"`
}

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service: service,
	}
}

func (h *Handler) SetupRoutes(r, mutations *mux.Router) {
	r.HandleFunc("/mesocycles", h.HandleList).Methods("GET", "OPTIONS").Name("list-mesocycles")
	r.HandleFunc("/mesocycles/active", h.HandleGetActive).Methods("GET", "OPTIONS").Name("get-active-mesocycle")
	r.HandleFunc("/mesocycles/{id}", h.HandleGet).Methods("GET", "OPTIONS").Name("get-mesocycle")
	r.HandleFunc("/mesocycles/{id}/sessions", h.HandleListSessions).Methods("GET", "OPTIONS").Name("list-mesocycle-sessions")

	mutations.HandleFunc("/mesocycles", h.HandleCreate).Methods("POST", "OPTIONS").Name("create-mesocycle")
	mutations.HandleFunc("/mesocycles/{id}/deactivate", h.HandleDeactivate).Methods("POST", "OPTIONS").Name("deactivate-mesocycle")
	mutations.HandleFunc("/mesocycles/{id}/phase", h.HandleTransitionPhase).Methods("POST", "OPTIONS").Name("transition-mesocycle-phase")
}

func pathID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := pkg.IntPathVar(mux.Vars(r), "id")
	if err != nil {
		http.Error(w, "error, "+err.Error(), http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.mesocycles.create")
	defer span.End()

	if !pkg.IsJSONRequest(r) {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}
	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("create mesocycle, unmarshal json params: %s", err)
		http.Error(w, "create mesocycle failed", http.StatusBadRequest)
		return
	}
	start, err := training.ParseDate(req.StartDate)
	if err != nil {
		training.WriteHTTPError(w, err, "create mesocycle")
		return
	}

	m, err := h.service.Create(ctx, CreateParams{
		UserID:     req.UserID,
		Name:       req.Name,
		StartDate:  start,
		TotalWeeks: req.TotalWeeks,
		Days:       req.Days,
	})
	if err != nil {
		training.WriteHTTPError(w, err, "create mesocycle")
		return
	}
	pkg.WriteJSON(w, m, http.StatusCreated)
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.mesocycles.list")
	defer span.End()

	userID, err := pkg.IntQueryParam(r, "user_id")
	if err != nil {
		http.Error(w, "error, "+err.Error(), http.StatusBadRequest)
		return
	}

	ms, err := h.service.List(ctx, userID)
	if err != nil {
		training.WriteHTTPError(w, err, "list mesocycles")
		return
	}
	pkg.WriteJSON(w, ms, http.StatusOK)
}

func (h *Handler) HandleGetActive(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.mesocycles.active")
	defer span.End()

	userID, err := pkg.IntQueryParam(r, "user_id")
	if err != nil {
		http.Error(w, "error, "+err.Error(), http.StatusBadRequest)
		return
	}

	m, err := h.service.GetActive(ctx, userID)
	if err != nil {
		training.WriteHTTPError(w, err, "get active mesocycle")
		return
	}
	pkg.WriteJSON(w, m, http.StatusOK)
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.mesocycles.get")
	defer span.End()

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	m, err := h.service.Get(ctx, id)
	if err != nil {
		training.WriteHTTPError(w, err, "get mesocycle")
		return
	}
	pkg.WriteJSON(w, m, http.StatusOK)
}

func (h *Handler) HandleListSessions(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.mesocycles.sessions")
	defer span.End()

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	sessions, err := h.service.ListSessions(ctx, id)
	if err != nil {
		training.WriteHTTPError(w, err, "list mesocycle sessions")
		return
	}
	pkg.WriteJSON(w, sessions, http.StatusOK)
}

func (h *Handler) HandleDeactivate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.mesocycles.deactivate")
	defer span.End()

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	m, err := h.service.Deactivate(ctx, id)
	if err != nil {
		training.WriteHTTPError(w, err, "deactivate mesocycle")
		return
	}
	pkg.WriteJSON(w, m, http.StatusOK)
}

func (h *Handler) HandleTransitionPhase(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.mesocycles.phase")
	defer span.End()

	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if !pkg.IsJSONRequest(r) {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}
	var req PhaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("transition phase, unmarshal json params: %s", err)
		http.Error(w, "transition phase failed", http.StatusBadRequest)
		return
	}
	phase, err := training.ParsePhase(req.Phase)
	if err != nil {
		training.WriteHTTPError(w, err, "transition phase")
		return
	}

	m, err := h.service.TransitionPhase(ctx, id, phase)
	if err != nil {
		training.WriteHTTPError(w, err, "transition phase")
		return
	}
	log.Infof("mesocycle %d moved to %s at %s", m.ID, m.Phase, m.PhaseChangedAt.Format(time.RFC3339))
	pkg.WriteJSON(w, m, http.StatusOK)
}
