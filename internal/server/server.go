package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/osse101/IdleTracker_Go/internal/catalog"
	_ "github.com/osse101/IdleTracker_Go/internal/docs"
	"github.com/osse101/IdleTracker_Go/internal/domain"
	"github.com/osse101/IdleTracker_Go/internal/economy"
	"github.com/osse101/IdleTracker_Go/internal/engine"
	"github.com/osse101/IdleTracker_Go/internal/handler"
	"github.com/osse101/IdleTracker_Go/internal/leveling"
	"github.com/osse101/IdleTracker_Go/internal/metrics"
	"github.com/osse101/IdleTracker_Go/internal/middleware"
	"github.com/osse101/IdleTracker_Go/internal/notify"
	"github.com/osse101/IdleTracker_Go/internal/profile"
	"github.com/osse101/IdleTracker_Go/internal/sse"
	"github.com/osse101/IdleTracker_Go/internal/stats"
)

// Options are the transport settings of the server
type Options struct {
	Port           int
	APIKey         string
	TrustedProxies []string
}

// Dependencies are the services the routes are served from
type Dependencies struct {
	Engine   engine.Service
	Economy  economy.Service
	Profile  profile.Service
	Stats    stats.Service
	Notify   *notify.Center
	Catalog  *catalog.Catalog
	Curve    *leveling.Curve
	Storage  handler.Pinger
	EventHub *sse.Hub
}

// Server is the HTTP front end
type Server struct {
	httpServer *http.Server
}

// NewServer builds the router
func NewServer(opts Options, deps Dependencies) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", opts.Port),
			Handler:           NewRouter(opts, deps),
			ReadHeaderTimeout: ReadHeaderTimeout,
		},
	}
}

// NewRouter wires middleware and routes. Middleware runs outermost first.
func NewRouter(opts Options, deps Dependencies) http.Handler {
	r := chi.NewRouter()

	detector := NewSuspiciousActivityDetector()

	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestLogger)
	r.Use(SecurityHeadersMiddleware())
	r.Use(RateLimitMiddleware(opts.TrustedProxies, detector))
	r.Use(AuthMiddleware(opts.APIKey, opts.TrustedProxies, detector))
	r.Use(RequestSizeLimitMiddleware(MaxRequestBodyBytes))
	r.Use(metrics.Middleware)

	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(deps.Storage))
	r.Get("/version", handler.HandleVersion(domain.SchemaVersion))
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	actions := handler.NewActionHandler(deps.Engine, deps.Notify)
	shop := handler.NewShopHandler(deps.Economy, deps.Notify)
	prof := handler.NewProfileHandler(deps.Profile, deps.Notify)
	views := handler.NewStatsHandler(deps.Stats)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/state", actions.HandleGetState)
		r.Get("/catalog", handler.HandleGetCatalog(deps.Catalog, deps.Curve))

		r.Route("/action", func(r chi.Router) {
			r.Post("/start", actions.HandleStartAction)
			r.Post("/toggle", actions.HandleToggleAction)
			r.Post("/stop", actions.HandleStopAction)
		})
		r.Post("/manual", actions.HandleManualEntry)
		r.Post("/tasks/complete", actions.HandleCompleteTask)

		r.Route("/shop", func(r chi.Router) {
			r.Get("/titles", shop.HandleListTitles)
			r.Post("/buy", shop.HandleBuyTitle)
			r.Post("/equip", shop.HandleEquipTitle)
		})

		r.Get("/stats", views.HandleGetStats)
		r.Get("/stats/summary", views.HandleGetSummary)

		r.Route("/skills", func(r chi.Router) {
			r.Get("/", views.HandleGetSkills)
			r.Post("/unlock", prof.HandleUnlockSkill)
			r.Post("/lock", prof.HandleLockSkill)
			r.Get("/{skill}", views.HandleGetSkill)
		})

		r.Get("/settings", prof.HandleGetSettings)
		r.Put("/settings", prof.HandleUpdateSettings)

		r.Route("/groups", func(r chi.Router) {
			r.Post("/", prof.HandleCreateGroup)
			r.Post("/assign", prof.HandleAssignSkill)
			r.Delete("/{name}", prof.HandleDeleteGroup)
			r.Post("/{name}/toggle", prof.HandleToggleGroup)
		})

		r.Get("/export", prof.HandleExport)
		r.Post("/import", prof.HandleImport)
		r.Post("/reset", prof.HandleReset)

		r.Route("/notifications", func(r chi.Router) {
			r.Get("/", handler.HandleGetNotifications(deps.Notify))
			r.Delete("/", handler.HandleClearNotifications(deps.Notify))
			r.Delete("/{id}", handler.HandleDismissNotification(deps.Notify))
		})

		if deps.EventHub != nil {
			r.Get("/events", sse.Handler(deps.EventHub))
		}
	})

	return r
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start serves until Stop. A clean shutdown returns nil.
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	slog.Default().Info(LogMsgServerStopping)
	return s.httpServer.Shutdown(ctx)
}
