package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/heartmarshall/timesheets-backend/internal/transport/middleware"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Health      *HealthHandler
	Timesheets  *TimesheetHandler
	Approvals   *ApprovalHandler
	Delegations *DelegationHandler
}

// RouterConfig holds the cross-cutting middleware. Global wraps every route,
// Protected wraps only the authenticated API.
type RouterConfig struct {
	Global    []middleware.Middleware
	Protected []middleware.Middleware
}

// NewRouter builds the HTTP surface. Health endpoints are public; everything else
// requires an authenticated principal.
func NewRouter(h Handlers, cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	for _, mw := range cfg.Global {
		r.Use(mw)
	}

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, codeNotFound, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, codeBadRequest, "method not allowed")
	})

	r.Get("/live", h.Health.Live)
	r.Get("/ready", h.Health.Ready)
	r.Get("/health", h.Health.Health)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		for _, mw := range cfg.Protected {
			r.Use(mw)
		}

		r.Route("/timesheets", h.Timesheets.Routes)
		r.Get("/approvals", h.Approvals.Queue)
		r.Route("/delegations", h.Delegations.Routes)
	})

	return r
}
