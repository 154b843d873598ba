package recommender

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

// defaultCheckInDays is the range GET /checkins covers without from/to.
const defaultCheckInDays = 14

type CheckInRequest struct {
	UserID    int    `json:"userId"`
	Date      string `json:"date"`
	Energy    int    `json:"energy"`
	Hunger    int    `json:"hunger"`
	Sleep     int    `json:"sleep"`
	Stress    int    `json:"stress"`
	Cravings  int    `json:"cravings"`
	Adherence int    `json:"adherence"`
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
	r.HandleFunc("/checkins", h.HandleListCheckIns).Methods("GET", "OPTIONS").Name("list-checkins")
	r.HandleFunc("/recommendations/next-week", h.HandleNextWeek).Methods("GET", "OPTIONS").Name("next-week-recommendation")

	mutations.HandleFunc("/checkins", h.HandleSubmitCheckIn).Methods("POST", "OPTIONS").Name("submit-checkin")
}

func (h *Handler) HandleSubmitCheckIn(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.recommender.checkin")
	defer span.End()

	if !pkg.IsJSONRequest(r) {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var req CheckInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("submit check-in, unmarshal json params: %s", err)
		http.Error(w, "submit check-in failed", http.StatusBadRequest)
		return
	}

	date, err := training.ParseDate(req.Date)
	if err != nil {
		training.WriteHTTPError(w, err, "submit check-in")
		return
	}

	added, err := h.service.SubmitCheckIn(ctx, CheckIn{
		UserID:    req.UserID,
		Date:      date,
		Energy:    req.Energy,
		Hunger:    req.Hunger,
		Sleep:     req.Sleep,
		Stress:    req.Stress,
		Cravings:  req.Cravings,
		Adherence: req.Adherence,
	})
	if err != nil {
		training.WriteHTTPError(w, err, "submit check-in")
		return
	}

	pkg.WriteJSON(w, added, http.StatusCreated)
}

func (h *Handler) HandleListCheckIns(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.recommender.checkins")
	defer span.End()

	userID, err := pkg.IntQueryParam(r, "user_id")
	if err != nil {
		http.Error(w, "error, "+err.Error(), http.StatusBadRequest)
		return
	}

	to := training.Day(time.Now())
	if raw := r.URL.Query().Get("to"); raw != "" {
		if to, err = training.ParseDate(raw); err != nil {
			training.WriteHTTPError(w, err, "list check-ins")
			return
		}
	}
	from := to.AddDate(0, 0, -(defaultCheckInDays - 1))
	if raw := r.URL.Query().Get("from"); raw != "" {
		if from, err = training.ParseDate(raw); err != nil {
			training.WriteHTTPError(w, err, "list check-ins")
			return
		}
	}

	checkIns, err := h.service.ListCheckIns(ctx, userID, from, to)
	if err != nil {
		training.WriteHTTPError(w, err, "list check-ins")
		return
	}

	pkg.WriteJSON(w, checkIns, http.StatusOK)
}

func (h *Handler) HandleNextWeek(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.recommender.nextweek")
	defer span.End()

	userID, err := pkg.IntQueryParam(r, "user_id")
	if err != nil {
		http.Error(w, "error, "+err.Error(), http.StatusBadRequest)
		return
	}
	fresh := r.URL.Query().Get("fresh") == "true"

	rec, err := h.service.NextWeek(ctx, userID, fresh)
	if err != nil {
		training.WriteHTTPError(w, err, "recommend next week")
		return
	}

	pkg.WriteJSON(w, rec, http.StatusOK)
}
