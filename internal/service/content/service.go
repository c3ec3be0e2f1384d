package content

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"

	"github.com/fonsecabarber/barber-api/internal/model"
	"github.com/fonsecabarber/barber-api/internal/repository"
	"github.com/fonsecabarber/barber-api/internal/service/event"
	"github.com/fonsecabarber/barber-api/pkg/metrics"
)

const cacheKey = "content"

type Config struct {
	// Timeout bounds assembly of the whole document.
	Timeout time.Duration
	// TableTimeout bounds each table query.
	TableTimeout    time.Duration
	AppointmentsCap int
	// CacheTTL of zero disables caching.
	CacheTTL time.Duration
}

// Service is the Content Fetch Gateway. Get never fails: every error degrades
// to empty tables or to the fallback document.
type Service struct {
	store   repository.Store
	cfg     Config
	cache   *cache.Cache
	metrics *metrics.Metrics
	logger  zerolog.Logger

	// generation is bumped by Invalidate; a read only caches its document
	// when no invalidation happened while it was assembling.
	mu         sync.Mutex
	generation uint64
}

// NewService accepts a nil store, meaning the backend is not configured.
func NewService(store repository.Store, cfg Config, m *metrics.Metrics, logger zerolog.Logger) *Service {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	if cfg.TableTimeout <= 0 || cfg.TableTimeout > cfg.Timeout {
		cfg.TableTimeout = cfg.Timeout
	}

	s := &Service{
		store:   store,
		cfg:     cfg,
		metrics: m,
		logger:  logger.With().Str("component", "content").Logger(),
	}
	if cfg.CacheTTL > 0 {
		s.cache = cache.New(cfg.CacheTTL, 2*cfg.CacheTTL)
	}
	return s
}

func (s *Service) Get(ctx context.Context) model.ContentDocument {
	if s.store == nil {
		return s.fallback(model.SourceUnavailable)
	}

	if s.cache != nil {
		if cached, ok := s.cache.Get(cacheKey); ok {
			s.metrics.CacheLookups.WithLabelValues("hit").Inc()
			doc := cached.(model.ContentDocument).Clone()
			doc.Source = model.SourceCache
			return doc
		}
		s.metrics.CacheLookups.WithLabelValues("miss").Inc()
	}

	gen := s.currentGeneration()

	deadline, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	doc, ok := s.assemble(deadline)
	if !ok {
		return s.fallback(model.SourceTimeout)
	}

	if s.cache != nil {
		s.mu.Lock()
		if s.generation == gen {
			s.cache.SetDefault(cacheKey, doc.Clone())
		}
		s.mu.Unlock()
	}
	return doc
}

// Invalidate drops the cached document and keeps reads already in flight from
// caching what they assembled.
func (s *Service) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	if s.cache != nil {
		s.cache.Delete(cacheKey)
	}
}

func (s *Service) currentGeneration() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generation
}

// HandleEvent invalidates the cache for any event that changes content,
// including those published by other instances.
func (s *Service) HandleEvent(_ context.Context, evt event.Event) {
	if evt.ChangesContent() {
		s.Invalidate()
	}
}

// assemble queries every table concurrently. It reports false when ctx expires
// before all queries have returned; cancelling ctx stops the stragglers.
func (s *Service) assemble(ctx context.Context) (model.ContentDocument, bool) {
	var (
		wg           sync.WaitGroup
		settings     []model.Setting
		services     []model.Service
		gallery      []model.MediaItem
		videoGallery []model.MediaItem
		appointments []model.Appointment
	)

	wg.Add(5)
	go func() {
		defer wg.Done()
		settings = fetch(ctx, s, model.TableSettings, s.store.Settings().List)
	}()
	go func() {
		defer wg.Done()
		services = fetch(ctx, s, model.TableServices, s.store.Services().List)
	}()
	go func() {
		defer wg.Done()
		gallery = fetch(ctx, s, model.TableGallery, s.store.Gallery().List)
	}()
	go func() {
		defer wg.Done()
		videoGallery = fetch(ctx, s, model.TableVideoGallery, s.store.VideoGallery().List)
	}()
	go func() {
		defer wg.Done()
		filters := model.AppointmentFilters{Limit: s.cfg.AppointmentsCap}
		appointments = fetch(ctx, s, model.TableAppointments, func(ctx context.Context) ([]model.Appointment, error) {
			return s.store.Appointments().List(ctx, filters)
		})
	}()

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		// A clamped table timeout fires together with the overall deadline.
		if ctx.Err() != nil {
			return model.ContentDocument{}, false
		}
	case <-ctx.Done():
		return model.ContentDocument{}, false
	}

	doc := model.ContentDocument{
		Settings:     model.FlattenSettings(model.DefaultSettings(), settings),
		Services:     services,
		Gallery:      gallery,
		VideoGallery: videoGallery,
		Appointments: appointments,
		Source:       model.SourceStore,
	}
	doc.Normalize()
	return doc, true
}

type tableResult[T any] struct {
	rows []T
	err  error
}

// fetch runs one table query under the per-table timeout. Any failure yields nil.
// The query runs on its own goroutine so one that ignores ctx still gives up
// its slot when the table timeout fires.
func fetch[T any](ctx context.Context, s *Service, table string, query func(context.Context) ([]T, error)) []T {
	tableCtx, cancel := context.WithTimeout(ctx, s.cfg.TableTimeout)
	defer cancel()

	start := time.Now()
	results := make(chan tableResult[T], 1)
	go func() {
		rows, err := query(tableCtx)
		results <- tableResult[T]{rows: rows, err: err}
	}()

	var (
		rows []T
		err  error
	)
	select {
	case res := <-results:
		rows, err = res.rows, res.err
	case <-tableCtx.Done():
		err = tableCtx.Err()
	}
	s.metrics.TableLatency.WithLabelValues(table).Observe(time.Since(start).Seconds())

	switch {
	case err == nil:
		s.metrics.TableFetches.WithLabelValues(table, "ok").Inc()
		return rows
	case errors.Is(err, context.DeadlineExceeded) || tableCtx.Err() != nil:
		s.metrics.TableFetches.WithLabelValues(table, "timeout").Inc()
		s.logger.Warn().Str("table", table).Dur("timeout", s.cfg.TableTimeout).Msg("table query timed out")
	default:
		s.metrics.TableFetches.WithLabelValues(table, "error").Inc()
		s.logger.Warn().Err(err).Str("table", table).Msg("table query failed")
	}
	return nil
}

func (s *Service) fallback(reason string) model.ContentDocument {
	s.metrics.FallbackDocuments.WithLabelValues(reason).Inc()
	s.logger.Warn().Str("reason", reason).Msg("serving fallback content")
	return model.FallbackDocument(reason)
}
