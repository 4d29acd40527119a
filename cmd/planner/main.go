package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/citywander/trip-planner/internal/navigation"
	"github.com/citywander/trip-planner/internal/poi"
	"github.com/citywander/trip-planner/internal/routing"
	"github.com/citywander/trip-planner/internal/trip"
	"github.com/citywander/trip-planner/pkg/common"
	"github.com/citywander/trip-planner/pkg/config"
	"github.com/citywander/trip-planner/pkg/errors"
	"github.com/citywander/trip-planner/pkg/logger"
	"github.com/citywander/trip-planner/pkg/middleware"
	redisClient "github.com/citywander/trip-planner/pkg/redis"
	"github.com/citywander/trip-planner/pkg/resilience"
)

const (
	serviceName = "trip-planner"
	version     = "1.0.0"
)

func main() {
	cfg, err := config.Load(serviceName)
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}

	if err := logger.Init(cfg.Server.Environment); err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer logger.Sync()

	logger.Info("Starting trip planner",
		zap.String("service", serviceName),
		zap.String("version", version),
	)

	// Initialize Sentry for error tracking
	sentryConfig := errors.DefaultSentryConfig(cfg.Sentry.DSN, cfg.Sentry.Environment)
	sentryConfig.ServerName = serviceName
	sentryConfig.Release = version
	if err := errors.InitSentry(sentryConfig); err != nil {
		logger.Warn("Failed to initialize Sentry, continuing without error tracking", zap.Error(err))
	} else {
		defer errors.Flush(2 * time.Second)
		logger.Info("Sentry error tracking initialized successfully")
	}

	redis, err := redisClient.NewRedisClient(&cfg.Redis)
	if err != nil {
		logger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer redis.Close()
	logger.Info("Connected to Redis")

	// Resolve the directions provider once; the choice stays fixed for the
	// process lifetime. A missing provider is survivable: every leg degrades
	// to a straight line instead.
	provider, err := routing.ResolveProvider(cfg.Routing)
	if err != nil {
		logger.Warn("No directions provider available, legs will degrade to straight lines", zap.Error(err))
	}

	legPlanner := routing.NewLegPlanner(provider, cfg.Routing.LegTimeout(), cfg.Routing.MaxConcurrentLegs)
	if provider != nil {
		breaker := resilience.NewCircuitBreaker(
			resilience.BuildSettings(fmt.Sprintf("%s-%s", serviceName, provider.Name()), 60, 30, 5, 2),
		)
		legPlanner.SetCircuitBreaker(breaker)
		logger.Info("Circuit breaker enabled for directions provider",
			zap.String("provider", string(provider.Name())),
		)
	}

	categories, err := poi.LoadCategorySet(cfg.Filter.CategoryFile)
	if err != nil {
		logger.Fatal("Failed to load category allow-list", zap.Error(err))
	}

	places := poi.NewGeoapifyClient(cfg.Places)
	filter := poi.NewFilter(categories)
	proposer := trip.NewHTTPProposer(cfg.Proposer)

	itineraryStore := trip.NewStore(redis)
	sessionStore := navigation.NewSessionStore(redis)

	plannerSvc := trip.NewPlannerService(places, filter, proposer, legPlanner, itineraryStore, sessionStore, cfg.Filter)
	navigationSvc := navigation.NewService(plannerSvc, sessionStore)

	tripHandler := trip.NewHandler(plannerSvc)
	navigationHandler := navigation.NewHandler(navigationSvc)

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.NoRoute(common.NoRouteHandler())
	router.NoMethod(common.NoMethodHandler())
	router.Use(middleware.RecoveryWithSentry())
	router.Use(middleware.CorrelationID())
	router.Use(middleware.RequestLogger(serviceName))
	router.Use(middleware.Metrics(serviceName))

	// Health check endpoints
	router.GET("/healthz", common.HealthCheck(serviceName, version))

	healthChecks := make(map[string]func() error)
	healthChecks["redis"] = func() error {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return redis.Client.Ping(ctx).Err()
	}
	if provider != nil {
		healthChecks["routing"] = func() error {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return provider.HealthCheck(ctx)
		}
	}
	router.GET("/health/ready", common.ReadinessProbe(serviceName, version, healthChecks))

	router.GET("/version", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"service": serviceName, "version": version})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api/v1")
	tripHandler.RegisterRoutes(api)
	navigationHandler.RegisterRoutes(api)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Info("Server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server stopped")
}
