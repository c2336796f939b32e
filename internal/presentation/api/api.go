package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	_ "github.com/cindermoth/reliefgrid/docs"
	"github.com/cindermoth/reliefgrid/internal/infrastructure/configs"
	"github.com/cindermoth/reliefgrid/internal/infrastructure/logging"
	"github.com/cindermoth/reliefgrid/internal/infrastructure/observability"
	"github.com/cindermoth/reliefgrid/internal/infrastructure/ratelimiter"
	disastersHandler "github.com/cindermoth/reliefgrid/internal/presentation/handler/disasters"
	feedsHandler "github.com/cindermoth/reliefgrid/internal/presentation/handler/feeds"
	healthHandler "github.com/cindermoth/reliefgrid/internal/presentation/handler/health"
	reportsHandler "github.com/cindermoth/reliefgrid/internal/presentation/handler/reports"
	resourcesHandler "github.com/cindermoth/reliefgrid/internal/presentation/handler/resources"
	streamHandler "github.com/cindermoth/reliefgrid/internal/presentation/handler/stream"
)

type Application struct {
	config           configs.Config
	disastersHandler *disastersHandler.Handler
	reportsHandler   *reportsHandler.Handler
	resourcesHandler *resourcesHandler.Handler
	feedsHandler     *feedsHandler.Handler
	streamHandler    *streamHandler.Handler
	healthHandler    *healthHandler.Handler
	logger           logging.Logger
	metrics          *observability.Metrics
	ratelimiter      ratelimiter.Limiter
}

func NewApplication(
	config configs.Config,
	disastersHandler *disastersHandler.Handler,
	reportsHandler *reportsHandler.Handler,
	resourcesHandler *resourcesHandler.Handler,
	feedsHandler *feedsHandler.Handler,
	streamHandler *streamHandler.Handler,
	healthHandler *healthHandler.Handler,
	logger logging.Logger,
	metrics *observability.Metrics,
	ratelimiter ratelimiter.Limiter,
) *Application {
	return &Application{
		config:           config,
		disastersHandler: disastersHandler,
		reportsHandler:   reportsHandler,
		resourcesHandler: resourcesHandler,
		feedsHandler:     feedsHandler,
		streamHandler:    streamHandler,
		healthHandler:    healthHandler,
		logger:           logger,
		metrics:          metrics,
		ratelimiter:      ratelimiter,
	}
}

func (app *Application) Mount() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(app.loggerMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Use(otelhttp.NewMiddleware("reliefgrid"))
	r.Use(app.metricsMiddleware)
	r.Use(app.enableCors)

	r.Route("/api", func(r chi.Router) {
		r.Use(app.identityMiddleware)

		r.Route("/disasters", func(r chi.Router) {
			r.Get("/", app.disastersHandler.ListDisastersHandler)
			r.With(app.requirePrincipal).Post("/", app.disastersHandler.CreateDisasterHandler)

			r.Route("/{disasterID}", func(r chi.Router) {
				r.Get("/", app.disastersHandler.GetDisasterHandler)
				r.With(app.requirePrincipal).Patch("/", app.disastersHandler.UpdateDisasterHandler)
				r.With(app.requirePrincipal).Delete("/", app.disastersHandler.DeleteDisasterHandler)
				r.Get("/audit", app.disastersHandler.GetAuditTrailHandler)

				r.Get("/reports", app.reportsHandler.ListReportsHandler)
				r.With(app.requirePrincipal).Post("/reports", app.reportsHandler.CreateReportHandler)

				r.Get("/resources", app.resourcesHandler.ListResourcesHandler)
				r.Get("/resources/nearby", app.resourcesHandler.SearchNearbyHandler)
				r.With(app.requirePrincipal).Post("/resources", app.resourcesHandler.CreateResourceHandler)
				r.With(app.requirePrincipal).Delete("/resources/{resourceID}", app.resourcesHandler.DeleteResourceHandler)

				r.With(app.rateLimiterMiddleware).Get("/social", app.feedsHandler.SearchSocialHandler)
			})
		})

		r.With(app.requirePrincipal).Post("/reports/{reportID}/verify", app.reportsHandler.VerifyReportHandler)

		r.With(app.rateLimiterMiddleware).Get("/updates", app.feedsHandler.GetBulletinsHandler)
		r.With(app.rateLimiterMiddleware).Post("/geocode", app.feedsHandler.GeocodeHandler)

		r.Get("/stream", app.streamHandler.StreamHandler)

		r.Get("/health", app.healthHandler.GetHealth)
		r.Get("/healthz", app.healthHandler.GetHealth)
		r.Get("/ready", app.healthHandler.GetHealth)
		r.Get("/live", app.healthHandler.GetHealth)
	})

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	return r
}

func (app *Application) Run(mux http.Handler) error {
	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", app.config.HTTP.Host, app.config.HTTP.Port),
		Handler:      mux,
		WriteTimeout: app.config.HTTP.WriteTimeout,
		ReadTimeout:  app.config.HTTP.ReadTimeout,
		IdleTimeout:  time.Minute,
	}

	shutdown := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)

		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		// Fail the health probes first so load balancers stop routing here
		// while in-flight requests drain.
		healthHandler.SetUnhealthy()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		app.logger.Info(logging.General, logging.Shutdown, "signal caught", map[logging.ExtraKey]any{
			"signal": s.String(),
		})

		shutdown <- srv.Shutdown(ctx)
	}()

	app.logger.Info(logging.General, logging.Startup, "server has started", map[logging.ExtraKey]any{
		"addr": srv.Addr,
	})

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdown
	if err != nil {
		return err
	}

	app.logger.Info(logging.General, logging.Shutdown, "server has stopped", map[logging.ExtraKey]any{
		"addr": srv.Addr,
	})

	return nil
}
