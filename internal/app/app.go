package app

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/wineguy-maker/lcbo-app/internal/auth"
	"github.com/wineguy-maker/lcbo-app/internal/catalog"
	"github.com/wineguy-maker/lcbo-app/internal/favorites"
	"github.com/wineguy-maker/lcbo-app/pkg/kit"
)

const (
	pinAttemptsPerWindow = 5
	pinAttemptWindow     = time.Minute

	readyTimeout = 1 * time.Second
)

// Deps carries everything the router needs. Registry may be nil to
// run without metrics (tests do).
type Deps struct {
	Log     *zap.Logger
	Service string

	Catalog   *catalog.Server
	Auth      *auth.Server
	Favorites *favorites.Server

	Registry       *prometheus.Registry
	MetricsEnabled bool
	MetricsToken   string
}

// NewHandler assembles the full winefind HTTP surface: catalog reads,
// PIN session endpoints, and session-gated favorites mutation.
func NewHandler(d Deps) http.Handler {
	r := chi.NewRouter()

	setupMiddleware(r, d)
	setupMetrics(r, d)
	setupHealth(r, d)

	pinLimiter := kit.NewIPRateLimiter(pinAttemptsPerWindow, pinAttemptWindow)
	r.With(pinLimiter.Middleware).Post("/session", d.Auth.CreateHandler())
	r.Get("/session", d.Auth.ShowHandler())
	r.Delete("/session", d.Auth.DeleteHandler())

	r.Mount("/favorites", d.Favorites.Routes(auth.RequireSession(d.Auth.JWT)))
	r.Mount("/", d.Catalog.Routes())

	return r
}

func setupMiddleware(r *chi.Mux, d Deps) {
	r.Use(chimw.RequestID)
	r.Use(kit.Recoverer)
	r.Use(kit.Logging(d.Log))
}

func setupMetrics(r *chi.Mux, d Deps) {
	if d.Registry == nil {
		return
	}

	metrics := kit.NewMetrics(d.Registry)
	r.Use(metrics.Middleware(d.Service, kit.RoutePatternOrPath))

	if !d.MetricsEnabled {
		return
	}

	r.With(kit.MetricsAuth(d.MetricsToken)).
		Handle("/metrics", promhttp.HandlerFor(d.Registry, promhttp.HandlerOpts{}))
}

func setupHealth(r *chi.Mux, d Deps) {
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })

	r.Get("/readyz", func(w http.ResponseWriter, req *http.Request) {
		ctx, cancel := context.WithTimeout(req.Context(), readyTimeout)
		defer cancel()

		if err := d.Favorites.Store.Ping(ctx); err != nil {
			if d.Log != nil {
				d.Log.Warn("readyz failed", zap.Error(err))
			}
			kit.WriteError(w, req, http.StatusServiceUnavailable, "not ready", nil)
			return
		}
		w.WriteHeader(http.StatusOK)
	})
}
