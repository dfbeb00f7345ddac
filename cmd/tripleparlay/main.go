package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MakanaMakesStuff/TripleParlay/internal/config"
	"github.com/MakanaMakesStuff/TripleParlay/internal/dashboard"
	"github.com/MakanaMakesStuff/TripleParlay/internal/handlers"
	"github.com/MakanaMakesStuff/TripleParlay/internal/metrics"
	"github.com/MakanaMakesStuff/TripleParlay/internal/providers/statsapi"
	"github.com/MakanaMakesStuff/TripleParlay/internal/publisher"
	"github.com/MakanaMakesStuff/TripleParlay/internal/registry"
	"github.com/MakanaMakesStuff/TripleParlay/internal/scoring"
	"github.com/MakanaMakesStuff/TripleParlay/pkg/contracts"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}

	logger := newLogger(cfg.Log)
	logger.Info("=== TripleParlay ===")

	m := metrics.New()

	client := statsapi.New(
		statsapi.WithBaseURL(cfg.StatsAPI.BaseURL),
		statsapi.WithTimeout(cfg.StatsAPI.Timeout),
		statsapi.WithRateLimit(cfg.StatsAPI.RateLimit, cfg.StatsAPI.Burst),
		statsapi.WithMetrics(m),
		statsapi.WithLogger(logger),
	)

	// Redis publishing is optional
	var pub contracts.ResultPublisher = publisher.NoopPublisher{}
	if cfg.Redis.URL != "" {
		opts, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			logger.WithError(err).Fatal("Failed to parse Redis URL")
		}
		redisClient := redis.NewClient(opts)
		defer redisClient.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err = redisClient.Ping(ctx).Err()
		cancel()
		if err != nil {
			logger.WithError(err).Fatal("Failed to connect to Redis")
		}
		logger.Info("✓ Connected to Redis")

		pub = publisher.NewStreamPublisher(redisClient)
	}

	policies := registry.New()
	logger.WithField("policies", policies.Names()).Info("✓ Trajectory policies registered")

	svc := dashboard.NewService(client, pub, policies, m, logger, dashboard.Options{
		Season:      cfg.StatsAPI.Season,
		GameType:    cfg.StatsAPI.GameType,
		Concurrency: cfg.StatsAPI.FetchConcurrency,
		Params: scoring.ProbabilityParams{
			AnalyzedGames:         cfg.Scoring.AnalyzedGames,
			OpponentStrikeoutRate: cfg.Scoring.OpponentStrikeoutRate,
			ParkFactor:            cfg.Scoring.ParkFactor,
			Windows:               scoring.DefaultWindows,
		},
	})

	handler := handlers.NewHandler(svc, logger, cfg.Server.WriteTimeout)

	// Create router
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(cfg.Server.WriteTimeout))

	// CORS configuration
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.Server.CORSOrigins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	// Routes
	handler.Routes(r)
	r.Method(http.MethodGet, "/metrics", m.Handler())

	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout + 5*time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.WithFields(logrus.Fields{
			"addr":   cfg.Server.Addr,
			"season": cfg.StatsAPI.Season,
		}).Info("✓ TripleParlay started")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Fatal("Server error")
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down gracefully...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("Shutdown error")
		return
	}

	logger.Info("✓ TripleParlay stopped")
}

// newLogger builds the process logger from config
func newLogger(cfg config.LogConfig) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)

	if cfg.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		logger.WithField("level", cfg.Level).Warn("Unknown log level, using info")
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	return logger
}
