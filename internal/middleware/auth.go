package middleware

import (
	"net/http"
	"sync"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"

	"github.com/2beens/mesoplan/internal/telemetry/tracing"
	"github.com/2beens/mesoplan/pkg"
)

// TokenHeader carries the API token of the caller.
const TokenHeader = "X-MESO-TOKEN"

type AuthMiddlewareHandler struct {
	apiTokenHash string
	allowedPaths map[string]bool
	// verified remembers tokens that already matched the hash, bcrypt is slow
	verified sync.Map
}

func NewAuthMiddlewareHandler(apiTokenHash string) *AuthMiddlewareHandler {
	return &AuthMiddlewareHandler{
		apiTokenHash: apiTokenHash,
		allowedPaths: map[string]bool{
			"/":        true,
			"/version": true,
			"/health":  true,
		},
	}
}

func (h *AuthMiddlewareHandler) tokenValid(token string) bool {
	if _, ok := h.verified.Load(token); ok {
		return true
	}
	if !pkg.CheckTokenHash(token, h.apiTokenHash) {
		return false
	}
	h.verified.Store(token, struct{}{})
	return true
}

func (h *AuthMiddlewareHandler) AuthCheck() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, span := tracing.GlobalTracer.Start(r.Context(), "middleware.auth")
			defer span.End()

			if r.Method == http.MethodOptions {
				w.Header().Add("Allow", "GET, POST, PUT, DELETE, OPTIONS")
				w.WriteHeader(http.StatusOK)
				span.SetStatus(codes.Ok, "options-ok")
				return
			}

			if h.allowedPaths[r.URL.Path] {
				span.SetStatus(codes.Ok, "ok")
				next.ServeHTTP(w, r)
				return
			}

			authToken := r.Header.Get(TokenHeader)
			if authToken == "" {
				log.Tracef("[missing token] [auth middleware] unauthorized => %s", r.URL.Path)
				http.Error(w, "no can do", http.StatusUnauthorized)
				span.SetStatus(codes.Error, "missing-auth-token")
				return
			}

			if !h.tokenValid(authToken) {
				reqIP, _ := pkg.ClientIP(r)
				log.Warnf("[invalid token] [auth middleware] unauthorized => %s from %s", r.URL.Path, reqIP)
				http.Error(w, "no can do", http.StatusUnauthorized)
				span.SetStatus(codes.Error, "invalid-token")
				return
			}

			span.SetStatus(codes.Ok, "ok")
			next.ServeHTTP(w, r)
		})
	}
}
