// Package http assembles the service's HTTP surface.
package http

import (
	"log/slog"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	activityhandler "leasegate/internal/activity"
	leasinghandler "leasegate/internal/leasing/handler"
	notificationhandler "leasegate/internal/notification"
	"leasegate/internal/platform/health"
	"leasegate/internal/platform/middleware"
)

// Deps are the wired components the router mounts.
type Deps struct {
	Logger        *slog.Logger
	Validator     middleware.TokenValidator
	Health        *health.Handler
	Leasing       *leasinghandler.Handler
	Notifications *notificationhandler.Handler
	Activity      *activityhandler.Handler
}

// NewRouter builds the chi router: public health and metrics endpoints, and
// an authenticated API group for everything else.
func NewRouter(deps Deps) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(deps.Logger))
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(middleware.ContentTypeJSON)

	deps.Health.Register(r)
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(deps.Validator, deps.Logger))
		deps.Leasing.Register(r)
		deps.Notifications.Register(r)
		deps.Activity.Register(r)
	})

	return r
}
