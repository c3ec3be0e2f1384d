package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/fonsecabarber/barber-api/internal/config"
	adminHandler "github.com/fonsecabarber/barber-api/internal/handler/admin"
	appointmentHandler "github.com/fonsecabarber/barber-api/internal/handler/appointment"
	chatHandler "github.com/fonsecabarber/barber-api/internal/handler/chat"
	contentHandler "github.com/fonsecabarber/barber-api/internal/handler/content"
	healthHandler "github.com/fonsecabarber/barber-api/internal/handler/health"
	mediaHandler "github.com/fonsecabarber/barber-api/internal/handler/media"
	"github.com/fonsecabarber/barber-api/internal/handler/prometheus"
	"github.com/fonsecabarber/barber-api/internal/repository"
	"github.com/fonsecabarber/barber-api/internal/repository/postgres"
	"github.com/fonsecabarber/barber-api/internal/router"
	adminService "github.com/fonsecabarber/barber-api/internal/service/admin"
	appointmentService "github.com/fonsecabarber/barber-api/internal/service/appointment"
	chatService "github.com/fonsecabarber/barber-api/internal/service/chat"
	contentService "github.com/fonsecabarber/barber-api/internal/service/content"
	eventService "github.com/fonsecabarber/barber-api/internal/service/event"
	mediaService "github.com/fonsecabarber/barber-api/internal/service/media"
	"github.com/fonsecabarber/barber-api/internal/storage"
	"github.com/fonsecabarber/barber-api/pkg/logger"
	"github.com/fonsecabarber/barber-api/pkg/messaging"
	"github.com/fonsecabarber/barber-api/pkg/messaging/redis"
	"github.com/fonsecabarber/barber-api/pkg/metrics"
)

func main() {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	l := logger.Init(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
	l = l.With().Str("service", "barber-api").Str("env", cfg.Env).Logger()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	prom := prometheus.New()
	m := metrics.New("barber", prom.Registry())

	// The site keeps serving defaults without a database, so a failed
	// connection is logged rather than fatal.
	store := openStore(ctx, cfg, l)
	if store != nil {
		defer store.Close()
	}

	broker := openBroker(ctx, cfg, l)
	defer broker.Close()

	hostname, _ := os.Hostname()
	events := eventService.NewEventService(broker, cfg.Redis.Channel, "api-"+hostname, m, l)

	contentSvc := contentService.NewService(store, contentService.Config{
		Timeout:         cfg.Content.Timeout,
		TableTimeout:    cfg.Content.TableTimeout,
		AppointmentsCap: cfg.Content.AppointmentsCap,
		CacheTTL:        cfg.Content.CacheTTL,
	}, m, l)
	go func() {
		if err := events.Listen(ctx, contentSvc.HandleEvent); err != nil {
			l.Error().Err(err).Msg("content cache listener stopped")
		}
	}()

	notifier := eventService.NewNotifier(events, l, contentSvc)
	adminSvc := adminService.NewService(store, notifier, m, l)
	appointmentSvc := appointmentService.NewService(store, notifier, m, l)
	mediaSvc := mediaService.NewService(openBlobStore(cfg, l), adminSvc, cfg.Upload.MaxBytes, m, l)
	chatSvc := chatService.NewService(chatService.Config{
		APIKey:  cfg.Gemini.APIKey,
		Model:   cfg.Gemini.Model,
		BaseURL: cfg.Gemini.BaseURL,
		Timeout: cfg.Gemini.Timeout,
	}, contentSvc, l)

	r := router.NewRouter(router.Handlers{
		Content:      contentHandler.NewHandler(contentSvc),
		Health:       healthHandler.NewHandler(store, cfg.Env, cfg.Supabase),
		Admin:        adminHandler.NewHandler(adminSvc),
		Appointments: appointmentHandler.NewHandler(appointmentSvc),
		Media:        mediaHandler.NewHandler(mediaSvc),
		Chat:         chatHandler.NewHandler(chatSvc),
		Metrics:      prom.Handler(),
	}, router.RouterConfig{
		Production:     cfg.Production(),
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		RateLimited:    cfg.RateLimit.Enabled,
		RateLimit:      rate.Limit(cfg.RateLimit.RequestsPerSecond),
		RateBurst:      cfg.RateLimit.Burst,
		MaxUploadBytes: cfg.Upload.MaxBytes,
		WriteDeadline:  cfg.Server.WriteDeadline,
		Metrics:        m,
	})
	r.Setup()

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           r.Engine(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
	}

	go func() {
		l.Info().Str("addr", srv.Addr).Msg("server started")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			l.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	<-ctx.Done()
	l.Info().Msg("shutting down server...")

	shutdownCtx, stop := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer stop()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		l.Error().Err(err).Msg("server forced to shutdown")
	}

	l.Info().Msg("server exited properly")
}

// openStore returns nil when no database is configured or reachable.
func openStore(ctx context.Context, cfg *config.Config, l zerolog.Logger) repository.Store {
	if cfg.Database.DSN() == "" {
		l.Warn().Msg("DATABASE_URL not set, serving default content only")
		return nil
	}

	db, err := postgres.NewDB(ctx, cfg.Database)
	if err != nil {
		l.Error().Err(err).Msg("failed to connect to database, serving default content only")
		return nil
	}
	if err := postgres.Migrate(ctx, db); err != nil {
		l.Error().Err(err).Msg("failed to apply schema")
	}
	return postgres.NewStore(db)
}

// openBroker prefers Redis so caches on every instance are invalidated;
// without it events stay in process.
func openBroker(ctx context.Context, cfg *config.Config, l zerolog.Logger) messaging.Broker {
	if cfg.Redis.URL != "" {
		broker, err := redis.NewRedisBroker(ctx, redis.Config{
			URL:          cfg.Redis.URL,
			MaxRetries:   cfg.Redis.MaxRetries,
			RetryBackoff: cfg.Redis.RetryBackoff,
			PoolSize:     cfg.Redis.PoolSize,
			MinIdleConns: cfg.Redis.MinIdleConns,
		}, l)
		if err == nil {
			return broker
		}
		l.Error().Err(err).Msg("failed to connect to Redis, using in-process events")
	}
	return messaging.NewMemoryBroker(0)
}

func openBlobStore(cfg *config.Config, l zerolog.Logger) storage.BlobStore {
	key := cfg.Supabase.ServiceKey
	if key == "" {
		key = cfg.Supabase.AnonKey
	}
	if cfg.Supabase.URL == "" || key == "" {
		l.Warn().Msg("Supabase storage not configured, uploads are disabled")
		return nil
	}
	return storage.NewSupabase(storage.SupabaseConfig{
		URL:          cfg.Supabase.URL,
		Key:          key,
		Bucket:       cfg.Supabase.Bucket,
		CacheControl: cfg.Upload.CacheControl,
	})
}
