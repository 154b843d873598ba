package sessions

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/mesoplan/internal/periodization/training"
	"github.com/2beens/mesoplan/internal/telemetry/tracing"
	"github.com/2beens/mesoplan/pkg"
)

type AddExerciseRequest struct {
	ExerciseID     string `json:"exerciseId"`
	InsertPosition *int   `json:"insertPosition,omitempty"`
}

type SubstituteRequest struct {
	OldExerciseID string `json:"oldExerciseId"`
	NewExerciseID string `json:"newExerciseId"`
}

type CompleteSessionRequest struct {
	DurationMinutes int `json:"durationMinutes"`
}

type AdditionalSessionRequest struct {
	Name        string   `json:"name"`
	Date        string   `json:"date"`
	ExerciseIDs []string `json:"exerciseIds"`
}

type ExtraDayRequest struct {
	Type       SessionType `json:"type"`
	Date       string      `json:"date"`
	CustomName string      `json:"customName,omitempty"`
}

type DuplicateRequest struct {
	Date string `json:"date"`
	Name string `json:"name,omitempty"`
}

type DeloadRequest struct {
	BaseSessionID int    `json:"baseSessionId"`
	Date          string `json:"date"`
}

type Handler struct {
	customizer *Customizer
	generator  *Generator
}

func NewHandler(customizer *Customizer, generator *Generator) *Handler {
	return &Handler{
		customizer: customizer,
		generator:  generator,
	}
}

// SetupRoutes registers the read routes on r and the mutating ones on
// mutations, so the caller can rate limit them separately.
func (h *Handler) SetupRoutes(r, mutations *mux.Router) {
	r.HandleFunc("/sessions/{id}", h.HandleGet).Methods("GET", "OPTIONS").Name("get-session")

	mutations.HandleFunc("/sessions/{id}/exercises", h.HandleAddExercise).Methods("POST", "OPTIONS").Name("add-session-exercise")
	mutations.HandleFunc("/sessions/{id}/exercises/{exerciseId}", h.HandleRemoveExercise).Methods("DELETE", "OPTIONS").Name("remove-session-exercise")
	mutations.HandleFunc("/sessions/{id}/substitute", h.HandleSubstitute).Methods("POST", "OPTIONS").Name("substitute-session-exercise")
	mutations.HandleFunc("/sessions/{id}/complete", h.HandleCompleteSession).Methods("POST", "OPTIONS").Name("complete-session")
	mutations.HandleFunc("/sessions/{id}/duplicate", h.HandleDuplicate).Methods("POST", "OPTIONS").Name("duplicate-session")
	mutations.HandleFunc("/entries/{id}/complete", h.HandleCompleteExercise).Methods("POST", "OPTIONS").Name("complete-session-exercise")
	mutations.HandleFunc("/mesocycles/{id}/sessions", h.HandleAdditionalSession).Methods("POST", "OPTIONS").Name("create-additional-session")
	mutations.HandleFunc("/mesocycles/{id}/extra-days", h.HandleExtraDay).Methods("POST", "OPTIONS").Name("create-extra-day")
	mutations.HandleFunc("/mesocycles/{id}/deloads", h.HandleDeload).Methods("POST", "OPTIONS").Name("create-deload-session")
}

// decodeJSON reads a JSON body into v. It replies and returns false when
// the request is unusable.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any, action string) bool {
	if !pkg.IsJSONRequest(r) {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return false
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		log.Tracef("%s, unmarshal json params: %s", action, err)
		http.Error(w, action+" failed", http.StatusBadRequest)
		return false
	}
	return true
}

func pathID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := pkg.IntPathVar(mux.Vars(r), "id")
	if err != nil {
		http.Error(w, "error, "+err.Error(), http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.get")
	defer span.End()

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	session, err := h.customizer.GetSession(ctx, id)
	if err != nil {
		training.WriteHTTPError(w, err, "get session")
		return
	}
	pkg.WriteJSON(w, session, http.StatusOK)
}

func (h *Handler) HandleAddExercise(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.add-exercise")
	defer span.End()

	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req AddExerciseRequest
	if !decodeJSON(w, r, &req, "add exercise") {
		return
	}
	if req.ExerciseID == "" {
		http.Error(w, "error, exerciseId empty", http.StatusBadRequest)
		return
	}

	added, err := h.customizer.AddExercise(ctx, id, req.ExerciseID, req.InsertPosition)
	if err != nil {
		training.WriteHTTPError(w, err, "add exercise")
		return
	}
	pkg.WriteJSON(w, added, http.StatusCreated)
}

func (h *Handler) HandleRemoveExercise(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.remove-exercise")
	defer span.End()

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.customizer.RemoveExercise(ctx, id, mux.Vars(r)["exerciseId"]); err != nil {
		training.WriteHTTPError(w, err, "remove exercise")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) HandleSubstitute(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.substitute")
	defer span.End()

	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req SubstituteRequest
	if !decodeJSON(w, r, &req, "substitute exercise") {
		return
	}

	if err := h.customizer.SubstituteExercise(ctx, id, req.OldExerciseID, req.NewExerciseID); err != nil {
		training.WriteHTTPError(w, err, "substitute exercise")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) HandleCompleteSession(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.complete")
	defer span.End()

	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req CompleteSessionRequest
	if !decodeJSON(w, r, &req, "complete session") {
		return
	}

	session, err := h.customizer.CompleteSession(ctx, id, req.DurationMinutes)
	if err != nil {
		training.WriteHTTPError(w, err, "complete session")
		return
	}
	pkg.WriteJSON(w, session, http.StatusOK)
}

func (h *Handler) HandleCompleteExercise(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.complete-exercise")
	defer span.End()

	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var performance training.Performance
	if !decodeJSON(w, r, &performance, "complete exercise") {
		return
	}

	entry, err := h.customizer.CompleteExercise(ctx, id, performance)
	if err != nil {
		training.WriteHTTPError(w, err, "complete exercise")
		return
	}
	pkg.WriteJSON(w, entry, http.StatusOK)
}

func (h *Handler) HandleDuplicate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.duplicate")
	defer span.End()

	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req DuplicateRequest
	if !decodeJSON(w, r, &req, "duplicate session") {
		return
	}
	date, err := training.ParseDate(req.Date)
	if err != nil {
		training.WriteHTTPError(w, err, "duplicate session")
		return
	}

	session, err := h.generator.DuplicateSessionToDate(ctx, id, date, req.Name)
	if err != nil {
		training.WriteHTTPError(w, err, "duplicate session")
		return
	}
	pkg.WriteJSON(w, session, http.StatusCreated)
}

func (h *Handler) HandleAdditionalSession(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.additional")
	defer span.End()

	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req AdditionalSessionRequest
	if !decodeJSON(w, r, &req, "create session") {
		return
	}
	date, err := training.ParseDate(req.Date)
	if err != nil {
		training.WriteHTTPError(w, err, "create session")
		return
	}

	session, err := h.generator.CreateAdditionalSession(ctx, id, req.Name, date, req.ExerciseIDs)
	if err != nil {
		training.WriteHTTPError(w, err, "create session")
		return
	}
	pkg.WriteJSON(w, session, http.StatusCreated)
}

func (h *Handler) HandleExtraDay(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.extra-day")
	defer span.End()

	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req ExtraDayRequest
	if !decodeJSON(w, r, &req, "create extra day") {
		return
	}
	date, err := training.ParseDate(req.Date)
	if err != nil {
		training.WriteHTTPError(w, err, "create extra day")
		return
	}

	session, err := h.generator.CreateExtraTrainingDay(ctx, id, req.Type, date, req.CustomName)
	if err != nil {
		training.WriteHTTPError(w, err, "create extra day")
		return
	}
	pkg.WriteJSON(w, session, http.StatusCreated)
}

func (h *Handler) HandleDeload(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.deload")
	defer span.End()

	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req DeloadRequest
	if !decodeJSON(w, r, &req, "create deload session") {
		return
	}
	date, err := training.ParseDate(req.Date)
	if err != nil {
		training.WriteHTTPError(w, err, "create deload session")
		return
	}

	session, err := h.generator.CreateDeloadSession(ctx, id, req.BaseSessionID, date)
	if err != nil {
		training.WriteHTTPError(w, err, "create deload session")
		return
	}
	pkg.WriteJSON(w, session, http.StatusCreated)
}
