package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/rs/zerolog/log"

	"github.com/furnifind/backend/config"
	httpDelivery "github.com/furnifind/backend/internal/delivery/http"
	"github.com/furnifind/backend/internal/domain"
	"github.com/furnifind/backend/internal/infrastructure/catalog"
	"github.com/furnifind/backend/internal/infrastructure/session"
	"github.com/furnifind/backend/internal/usecase"
	"github.com/furnifind/backend/pkg/logger"
)

const sweepInterval = 5 * time.Minute

type sessionStore interface {
	domain.SessionRepository
	Close() error
}

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger.Init("furnifind-backend", cfg.IsDevelopment())
	logger.SetLevel(cfg.Log.Level)

	log.Info().
		Str("version", httpDelivery.ServiceVersion).
		Str("environment", cfg.Server.Environment).
		Str("port", cfg.Server.Port).
		Str("session_store", cfg.Session.Store).
		Msg("Starting FurniFind backend")

	// Initialize infrastructure dependencies
	store, err := newSessionStore(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize session store")
	}

	var random domain.RandomSource = usecase.NewRandom()
	if cfg.Analyzer.Seed != 0 {
		random = usecase.NewSeededRandom(cfg.Analyzer.Seed, cfg.Analyzer.Seed)
		log.Info().Uint64("seed", cfg.Analyzer.Seed).Msg("Using seeded random source")
	}

	products := catalog.NewStatic()
	metrics := httpDelivery.NewMetrics()

	// Initialize usecase layer
	matcher := usecase.NewMatchingService(usecase.MatchConfig{
		Jitter:             random,
		EnableDebugLogging: cfg.Filters.DebugLogging,
	})

	analyzer := usecase.NewAnalyzer(usecase.AnalyzerConfig{
		MaxUploadBytes: cfg.Analyzer.MaxUploadBytes,
		DelayScale:     cfg.Analyzer.DelayScale,
		Random:         random,
	})

	sessionService := usecase.NewSessionService(store, products, analyzer, matcher, usecase.SessionServiceConfig{
		SessionTTL:         cfg.Session.TTL,
		PriceDebounce:      cfg.Filters.PriceDebounce,
		LiveSweepInterval:  cfg.Session.LiveSweepInterval,
		EnableDebugLogging: cfg.Filters.DebugLogging,
		Observer:           metrics,
	})

	log.Info().
		Dur("price_debounce", cfg.Filters.PriceDebounce).
		Float64("delay_scale", cfg.Analyzer.DelayScale).
		Dur("session_ttl", cfg.Session.TTL).
		Bool("debug", cfg.Filters.DebugLogging).
		Msg("Services configured")

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(
		sessionService,
		usecase.NewCatalogService(products, matcher, random),
		usecase.NewContactService(cfg.Contact.Delay),
		httpDelivery.HandlerConfig{
			MaxUploadBytes:     cfg.Analyzer.MaxUploadBytes,
			FeaturedCount:      cfg.Filters.FeaturedCount,
			EnableDebugLogging: cfg.Filters.DebugLogging,
		},
	)

	router := httpDelivery.SetupRouter(cfg, handler, metrics)

	server := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("Server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		cfg.Server.ShutdownTimeout,
		map[string]gfshutdown.Operation{
			// operations run concurrently, so ordering lives inside one operation
			"http-server": func(ctx context.Context) error {
				log.Info().Msg("Graceful shutdown initiated")
				serverErr := server.Shutdown(ctx)
				sessionService.Close()
				return errors.Join(serverErr, store.Close())
			},
		},
	)

	exitCode := <-wait
	log.Info().Int("exit_code", exitCode).Msg("Server exited")
	os.Exit(exitCode)
}

func newSessionStore(cfg *config.Config) (sessionStore, error) {
	switch cfg.Session.Store {
	case "redis":
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return session.Connect(ctx, cfg.Session.RedisURL)
	default:
		return session.NewMemoryStore(sweepInterval), nil
	}
}
