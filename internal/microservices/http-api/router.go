// Package httpapi assembles the WatchLog HTTP API: repositories, services,
// handlers and the middleware chain around them.
package httpapi

import (
	"context"
	"net/http"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"watchlog/database"
	"watchlog/internal/config"
	"watchlog/internal/microservices/http-api/cache"
	"watchlog/internal/microservices/http-api/handler"
	"watchlog/internal/microservices/http-api/middleware"
	"watchlog/internal/microservices/http-api/repository"
	"watchlog/internal/microservices/http-api/service"
)

type Dependencies struct {
	Config *config.Config
	DB     *gorm.DB
	Logger *zap.Logger
	// Cache may be nil, the watchlist is then always read from the database.
	Cache cache.WatchlistCache
}

// NewRouter wires every layer on top of deps.DB and returns the engine.
func NewRouter(deps Dependencies) *gin.Engine {
	cfg := deps.Config
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	// nil trusts no proxy, so ClientIP is the TCP peer
	if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		log.Warn("invalid trusted proxies, trusting none", zap.Error(err))
		_ = r.SetTrustedProxies(nil)
	}
	r.Use(
		middleware.RequestID(),
		middleware.AccessLog(log),
		gin.Recovery(),
		cors.New(corsConfig(cfg.CORSOrigins)),
	)

	if cfg.PrometheusEnabled {
		metrics := middleware.NewMetrics()
		r.Use(metrics.Middleware())
		r.GET("/metrics", metrics.Handler())
	}

	// Repositories
	userRepo := repository.NewUserRepository(deps.DB)
	movieRepo := repository.NewMovieRepository(deps.DB)
	seriesRepo := repository.NewSeriesRepository(deps.DB)
	progressRepo := repository.NewProgressRepository(deps.DB)

	// Services
	movieSvc := service.NewMovieService(movieRepo)
	seriesSvc := service.NewSeriesService(seriesRepo)
	progressSvc := service.NewProgressService(progressRepo, userRepo, movieRepo, seriesRepo, deps.Cache, log)

	// Handlers
	opts := handler.Options{Logger: log, Timeout: cfg.RequestTimeout}
	handler.NewHealthHandler(func(ctx context.Context) error {
		return database.Ping(ctx, deps.DB)
	}, log).RegisterRoutes(r)

	api := r.Group("")
	api.Use(middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst).Middleware())
	handler.NewMovieHandler(movieSvc, opts).RegisterRoutes(api.Group("/movies"))
	handler.NewSeriesHandler(seriesSvc, opts).RegisterRoutes(api.Group("/series"))
	handler.NewProgressHandler(progressSvc, opts).RegisterRoutes(api)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"detail": "not found"})
	})
	return r
}

func corsConfig(origins []string) cors.Config {
	c := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", middleware.UserIDHeader, middleware.RequestIDHeader},
		ExposeHeaders: []string{middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = origins
	}
	return c
}
