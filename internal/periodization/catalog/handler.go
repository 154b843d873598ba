package catalog

import (
	"net/http"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/mesoplan/internal/periodization/training"
	"github.com/2beens/mesoplan/internal/telemetry/tracing"
	"github.com/2beens/mesoplan/pkg"
)

type Handler struct {
	catalog exerciseSource
}

func NewHandler(catalog exerciseSource) *Handler {
	return &Handler{
		catalog: catalog,
	}
}

func (h *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/catalog/exercises", h.HandleList).Methods("GET", "OPTIONS").Name("list-catalog-exercises")
	r.HandleFunc("/catalog/exercises/{id}", h.HandleGet).Methods("GET", "OPTIONS").Name("get-catalog-exercise")
	r.HandleFunc("/catalog/musclegroups", h.HandleListMuscleGroups).Methods("GET", "OPTIONS").Name("list-muscle-groups")
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.catalog.list")
	defer span.End()

	params := ListParams{
		MuscleGroup: r.URL.Query().Get("muscle_group"),
	}
	if c := r.URL.Query().Get("category"); c != "" {
		category, err := ParseCategory(c)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		params.Category = category
	}

	exercises, err := h.catalog.List(ctx, params)
	if err != nil {
		log.Errorf("list catalog exercises: %s", err)
		http.Error(w, "failed to list exercises", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, exercises, http.StatusOK)
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.catalog.get")
	defer span.End()

	id := mux.Vars(r)["id"]
	if id == "" {
		http.Error(w, "error, id empty", http.StatusBadRequest)
		return
	}

	e, err := h.catalog.Get(ctx, id)
	if err != nil {
		training.WriteHTTPError(w, err, "get exercise")
		return
	}

	pkg.WriteJSON(w, e, http.StatusOK)
}

func (h *Handler) HandleListMuscleGroups(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.catalog.musclegroups")
	defer span.End()

	groups, err := h.catalog.ListMuscleGroups(ctx)
	if err != nil {
		log.Errorf("list muscle groups: %s", err)
		http.Error(w, "failed to list muscle groups", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, groups, http.StatusOK)
}
