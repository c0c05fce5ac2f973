package misc

import (
	"context"
	"net/http"

	"github.com/personalplanner/planner/internal/auth"
	"github.com/personalplanner/planner/internal/middleware"
	"github.com/personalplanner/planner/internal/telemetry/metrics"
	"github.com/personalplanner/planner/internal/telemetry/tracing"
	"github.com/personalplanner/planner/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"
)

type sessionForgetter interface {
	Forget(ctx context.Context, token string) error
}

type Handler struct {
	versionInfo string
	sessions    sessionForgetter
}

// NewHandler serves liveness, version and logout. sessions may be nil when
// tokens are not cached (logout is then a no-op).
func NewHandler(versionInfo string, sessions sessionForgetter) *Handler {
	return &Handler{
		versionInfo: versionInfo,
		sessions:    sessions,
	}
}

func (handler *Handler) SetupRoutes(
	mainRouter *mux.Router,
	rateLimiter middleware.RequestRateLimiter,
	metricsManager *metrics.Manager,
	logoutAllowedPerMin int,
) {
	mainRouter.HandleFunc("/", handler.handleRoot).Methods("GET", "OPTIONS").Name("root")
	mainRouter.HandleFunc("/version", handler.handleGetVersionInfo).Methods("GET").Name("version")

	sessionSubrouter := mainRouter.PathPrefix("/session").Subrouter()
	sessionSubrouter.
		HandleFunc("/logout", handler.handleLogout).
		Methods("POST", "OPTIONS").Name("logout")
	sessionSubrouter.Use(middleware.RateLimit(rateLimiter, metricsManager, "logout", logoutAllowedPerMin))
}

func (handler *Handler) handleRoot(w http.ResponseWriter, _ *http.Request) {
	pkg.WriteTextResponseOK(w, "I'm OK, thanks ;)")
}

func (handler *Handler) handleGetVersionInfo(w http.ResponseWriter, _ *http.Request) {
	pkg.WriteTextResponseOK(w, handler.versionInfo)
}

// handleLogout drops the cached session, so the next request with the same
// token is checked against the identity provider again.
func (handler *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "miscHandler.logout")
	defer span.End()

	principal, ok := auth.PrincipalFromContext(ctx)
	if !ok || principal.Token == "" {
		span.SetStatus(codes.Error, "no-principal")
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	if handler.sessions != nil {
		if err := handler.sessions.Forget(ctx, principal.Token); err != nil {
			log.Errorf("logout for trainer [%s]: %s", principal.UserID, err)
			span.SetStatus(codes.Error, "forget-session")
			span.RecordError(err)
			http.Error(w, "logout failed", http.StatusInternalServerError)
			return
		}
	}

	log.Debugf("logout for trainer [%s] success", principal.UserID)
	span.SetStatus(codes.Ok, "ok")
	pkg.WriteTextResponseOK(w, "logged-out")
}
