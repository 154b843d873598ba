package misc

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/2beens/mesoplan/internal/telemetry/tracing"
	"github.com/2beens/mesoplan/pkg"
)

const healthCheckTimeout = 2 * time.Second

// Pinger is a dependency the health check reaches out to.
type Pinger func(ctx context.Context) error

type Handler struct {
	versionInfo string
	pingers     map[string]Pinger
}

func NewHandler(versionInfo string, pingers map[string]Pinger) *Handler {
	return &Handler{
		versionInfo: versionInfo,
		pingers:     pingers,
	}
}

func (handler *Handler) SetupRoutes(mainRouter *mux.Router) {
	mainRouter.HandleFunc("/", handler.handleRoot).Methods("GET", "POST", "OPTIONS").Name("root")
	mainRouter.HandleFunc("/version", handler.handleGetVersionInfo).Methods("GET").Name("version")
	mainRouter.HandleFunc("/health", handler.handleHealth).Methods("GET").Name("health")
}

func (handler *Handler) handleRoot(w http.ResponseWriter, _ *http.Request) {
	pkg.WriteTextResponseOK(w, "I'm OK, thanks ;)")
}

func (handler *Handler) handleGetVersionInfo(w http.ResponseWriter, _ *http.Request) {
	pkg.WriteTextResponseOK(w, handler.versionInfo)
}

type healthResponse struct {
	Status       string            `json:"status"`
	Dependencies map[string]string `json:"dependencies"`
}

func (handler *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "miscHandler.health")
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()

	names := make([]string, 0, len(handler.pingers))
	for name := range handler.pingers {
		names = append(names, name)
	}
	sort.Strings(names)

	resp := healthResponse{Status: "ok", Dependencies: make(map[string]string, len(names))}
	for _, name := range names {
		if err := handler.pingers[name](ctx); err != nil {
			log.Errorf("health: %s: %s", name, err)
			resp.Dependencies[name] = "down"
			resp.Status = "degraded"
			continue
		}
		resp.Dependencies[name] = "up"
	}

	span.SetAttributes(attribute.String("health.status", resp.Status))
	if resp.Status != "ok" {
		span.SetStatus(codes.Error, "dependency down")
		pkg.WriteJSON(w, resp, http.StatusServiceUnavailable)
		return
	}
	pkg.WriteJSON(w, resp, http.StatusOK)
}
