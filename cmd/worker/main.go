package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/fonsecabarber/barber-api/internal/config"
	"github.com/fonsecabarber/barber-api/internal/email"
	"github.com/fonsecabarber/barber-api/internal/handler/prometheus"
	"github.com/fonsecabarber/barber-api/internal/service/event"
	"github.com/fonsecabarber/barber-api/internal/worker"
	"github.com/fonsecabarber/barber-api/pkg/logger"
	"github.com/fonsecabarber/barber-api/pkg/messaging/redis"
	"github.com/fonsecabarber/barber-api/pkg/metrics"
)

const healthAddr = ":8081"

func setupHealthCheck(prom *prometheus.Handler, l zerolog.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/health/live", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.Handle("/metrics", promhttp.HandlerFor(prom.Registry(), promhttp.HandlerOpts{}))

	srv := &http.Server{Addr: healthAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			l.Error().Err(err).Msg("health check server failed")
		}
	}()
	return srv
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	l := logger.Init(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
	l = l.With().Str("service", "barber-worker").Logger()

	if cfg.Redis.URL == "" {
		l.Fatal().Msg("REDIS_URL is required: the worker consumes events published by the API")
	}
	if !cfg.Notify.Enabled {
		l.Warn().Msg("notifications disabled, events will only be counted")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	broker, err := redis.NewRedisBroker(ctx, redis.Config{
		URL:          cfg.Redis.URL,
		MaxRetries:   cfg.Redis.MaxRetries,
		RetryBackoff: cfg.Redis.RetryBackoff,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
	}, l)
	if err != nil {
		l.Fatal().Err(err).Msg("failed to create Redis broker")
	}
	defer broker.Close()

	prom := prometheus.New()
	m := metrics.New("barber_worker", prom.Registry())
	health := setupHealthCheck(prom, l)

	hostname, _ := os.Hostname()
	events := event.NewEventService(broker, cfg.Redis.Channel, "worker-"+hostname, m, l)

	var handle func(context.Context, event.Event)
	if cfg.Notify.Enabled {
		notifier := worker.NewAppointmentNotifier(email.NewSMTPService(cfg.Notify), cfg.Notify.To, m, l)
		handle = notifier.Handle
	} else {
		handle = func(_ context.Context, evt event.Event) {
			m.EventsHandled.WithLabelValues(string(evt.Type), "skipped").Inc()
		}
	}

	l.Info().Str("channel", cfg.Redis.Channel).Msg("worker started")
	if err := events.Listen(ctx, handle); err != nil {
		l.Error().Err(err).Msg("event listener stopped")
	}

	shutdownCtx, stop := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer stop()
	if err := health.Shutdown(shutdownCtx); err != nil {
		l.Error().Err(err).Msg("health check server forced to shutdown")
	}
	l.Info().Msg("worker exited properly")
}
