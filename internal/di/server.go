package di

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/jrjohn/moviedb-api/internal/config"
	httpctrl "github.com/jrjohn/moviedb-api/internal/controller/http"
	"github.com/jrjohn/moviedb-api/internal/middleware"
	"github.com/jrjohn/moviedb-api/internal/observability"
)

// HTTPServerModule provides HTTP server dependencies
var HTTPServerModule = fx.Module("http_server",
	fx.Provide(provideGinEngine),
	fx.Provide(provideHTTPServer),
	fx.Invoke(registerHTTPRoutes),
	fx.Invoke(startHTTPServer),
)

// probePaths are kept out of the access log.
var probePaths = []string{"/health", "/ready"}

func provideGinEngine(
	cfg *config.AppConfig,
	logger *zap.Logger,
	metrics *observability.MetricsProvider,
	tracing *observability.TracingProvider,
) *gin.Engine {
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Recovery sits inside the observers so a panic is logged, traced and
	// counted as a 500.
	router.Use(middleware.RequestID())
	router.Use(observability.TracingMiddleware(tracing))
	router.Use(observability.MetricsMiddleware(metrics))
	router.Use(middleware.Logger(logger, append(probePaths, metrics.Path())...))
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))

	return router
}

func provideHTTPServer(cfg *config.ServerConfig, router *gin.Engine) *http.Server {
	return &http.Server{
		Addr:         cfg.Address(),
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}
}

// Controllers is a struct that holds all HTTP controllers for fx to inject
type Controllers struct {
	fx.In

	Health *httpctrl.HealthController
	User   *httpctrl.UserController
	Movie  *httpctrl.MovieController
	Cinema *httpctrl.CinemaController
}

func registerHTTPRoutes(router *gin.Engine, controllers Controllers, metrics *observability.MetricsProvider) {
	controllers.Health.RegisterRoutes(router)

	if metrics.Enabled() {
		router.GET(metrics.Path(), gin.WrapH(metrics.Handler()))
	}

	controllers.User.RegisterRoutes(router)
	controllers.Movie.RegisterRoutes(router)
	controllers.Cinema.RegisterRoutes(router)
}

func startHTTPServer(lc fx.Lifecycle, shutdowner fx.Shutdowner, server *http.Server, logger *zap.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			// Bind synchronously so a taken port fails startup.
			ln, err := net.Listen("tcp", server.Addr)
			if err != nil {
				return err
			}
			logger.Info("Starting HTTP server", zap.String("address", server.Addr))
			go func() {
				if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Error("HTTP server error", zap.Error(err))
					_ = shutdowner.Shutdown(fx.ExitCode(1))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("Stopping HTTP server")
			return server.Shutdown(ctx)
		},
	})
}
