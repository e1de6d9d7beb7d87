package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/kdduha/burnmaster/internal/config"
	"github.com/kdduha/burnmaster/internal/handler"
	"github.com/kdduha/burnmaster/internal/history"
	"github.com/kdduha/burnmaster/internal/llm"
	"github.com/kdduha/burnmaster/internal/logging"
	"github.com/kdduha/burnmaster/internal/metrics"
	"github.com/kdduha/burnmaster/internal/service"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	_ "github.com/kdduha/burnmaster/docs"
	httpSwagger "github.com/swaggo/http-swagger"
)

// @title Burnmaster Pro API
// @version 1.0
// @description Personalized roast generation with optional caricatures.
// @BasePath /
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	llmClient := llm.NewClient(
		logger,
		openai.NewClient(
			option.WithAPIKey(cfg.OpenAI.APIKey),
			option.WithBaseURL(cfg.OpenAI.BaseURL),
			option.WithMaxRetries(0),
		), cfg.OpenAI)
	roastService := service.NewRoastService(logger, llmClient, llmClient, cfg.OpenAI)

	var store handler.HistoryStore
	switch cfg.History.Backend {
	case config.HistoryBackendRedis:
		redisStore := history.NewRedisStore(
			cfg.Redis.Addr,
			cfg.Redis.Password,
			cfg.Redis.DB,
			cfg.History.TTL,
			cfg.History.Limit,
		)
		defer redisStore.Close()
		if err := redisStore.Ping(ctx); err != nil {
			logger.Fatal("redis is unreachable", zap.String("addr", cfg.Redis.Addr), zap.Error(err))
		}
		store = redisStore
		logger.Info("set redis as history store", zap.String("addr", cfg.Redis.Addr))
	default:
		store = history.NewMemoryStore(cfg.History.Limit, cfg.History.TTL)
		logger.Info("set memory as history store")
	}

	h := handler.NewRoastHandler(logger, roastService, store, cfg.Server.MaxBodyBytes)

	r := chi.NewRouter()
	r.Use([]func(http.Handler) http.Handler{
		middleware.RequestID,
		logging.Middleware(logger),
		middleware.Recoverer,
		middleware.Throttle(cfg.Server.ThrottleLimit),
		middleware.Timeout(cfg.Server.Timeout),
		metrics.Middleware,
	}...)

	r.Post("/roast", h.Roast)
	r.Post("/roast/stream", h.RoastStream)
	r.Get("/history", h.History)
	r.Delete("/history", h.ClearHistory)
	r.Get("/options", h.Options)
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))
	r.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: r,
	}

	go func() {
		logger.Info("server started", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen error", zap.Error(err))
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}
	logger.Info("server stopped")
}
