package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/denderemichael/WhatsApp-business-call-center/internal/api"
	"github.com/denderemichael/WhatsApp-business-call-center/internal/auth"
	"github.com/denderemichael/WhatsApp-business-call-center/internal/config"
	"github.com/denderemichael/WhatsApp-business-call-center/internal/metrics"
	"github.com/denderemichael/WhatsApp-business-call-center/internal/service"
	"github.com/denderemichael/WhatsApp-business-call-center/internal/storage"
	"github.com/denderemichael/WhatsApp-business-call-center/internal/types"
	"github.com/denderemichael/WhatsApp-business-call-center/internal/websocket"
	"github.com/denderemichael/WhatsApp-business-call-center/pkg/middleware"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Configure logger
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Set log level
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Warn().Str("level", cfg.LogLevel).Msg("invalid log level, using info")
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	log.Info().
		Str("port", cfg.Port).
		Strs("allowed_origins", cfg.AllowedOrigins).
		Str("log_level", cfg.LogLevel).
		Msg("starting call center backend server")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Optional audit archive, disabled unless DYNAMO_MODE is set
	store, err := storage.NewStore(ctx, log.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize storage")
	}

	// The in-memory facade carries all state and seeds itself
	svc := service.New(cfg, store, log.Logger)
	defer svc.Close()

	// WebSocket hub, fed by the facade's sync events
	hub := websocket.NewHub(log.Logger)
	go hub.Run()

	unsubscribe := svc.Emitter().Subscribe(func(event types.SyncEvent) {
		hub.BroadcastSync(event)
	})
	defer unsubscribe()

	wsHandler := websocket.NewHandler(hub, cfg, log.Logger)

	m := metrics.New()
	apiHandler := api.NewHandler(svc, m, log.Logger)

	// Create router
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(log.Logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS(cfg.AllowedOrigins))
	r.Use(m.Instrument)

	// Public routes
	r.Get("/health", healthHandler)
	r.Method(http.MethodGet, "/metrics", m.Handler())
	r.Post("/api/auth/login", apiHandler.Login)

	// Protected routes
	r.Group(func(r chi.Router) {
		r.Use(auth.Middleware(svc.TokenIssuer()))
		r.Get("/ws", wsHandler.ServeHTTP)
		r.Route("/api", apiHandler.Routes)
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Msgf("server listening on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}

// healthHandler handles health check requests
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, `{"status":"ok","service":"callcenter-backend"}`)
}
