package admin

import (
	"context"
	"fmt"
	"sort"

	"github.com/rs/zerolog"

	"github.com/fonsecabarber/barber-api/internal/model"
	"github.com/fonsecabarber/barber-api/internal/repository"
	"github.com/fonsecabarber/barber-api/internal/service/event"
	apperrors "github.com/fonsecabarber/barber-api/pkg/errors"
	"github.com/fonsecabarber/barber-api/pkg/metrics"
)

// Service is the Content Write Gateway for settings and the replace-all lists.
// Store failures are returned to the caller, never swallowed.
type Service struct {
	store    repository.Store
	notifier *event.Notifier
	metrics  *metrics.Metrics
	logger   zerolog.Logger
}

func NewService(store repository.Store, notifier *event.Notifier, m *metrics.Metrics, logger zerolog.Logger) *Service {
	return &Service{
		store:    store,
		notifier: notifier,
		metrics:  m,
		logger:   logger.With().Str("component", "admin").Logger(),
	}
}

// UpdateSettings upserts each key independently in key order. A failure stops
// the loop; keys already written stay written.
func (s *Service) UpdateSettings(ctx context.Context, settings map[string]string) error {
	if s.store == nil {
		return repository.ErrNotConfigured
	}

	keys := make([]string, 0, len(settings))
	for k := range settings {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	written := make([]string, 0, len(keys))
	for _, key := range keys {
		if err := s.store.Settings().Upsert(ctx, key, settings[key]); err != nil {
			s.record(model.TableSettings, err)
			if len(written) > 0 {
				s.notifier.Changed(ctx, event.SettingsUpdated, map[string]interface{}{"keys": written})
			}
			return apperrors.NewInternal(err)
		}
		written = append(written, key)
	}

	s.record(model.TableSettings, nil)
	s.notifier.Changed(ctx, event.SettingsUpdated, map[string]interface{}{"keys": written})
	return nil
}

func (s *Service) ReplaceServices(ctx context.Context, services []model.Service) error {
	if s.store == nil {
		return repository.ErrNotConfigured
	}
	for i := range services {
		services[i].ID = 0
	}

	err := s.store.Services().ReplaceAll(ctx, services)
	s.record(model.TableServices, err)
	if err != nil {
		return apperrors.NewInternal(err)
	}
	s.notifier.Changed(ctx, event.ServicesReplaced, map[string]interface{}{"count": len(services)})
	return nil
}

func (s *Service) ReplaceGallery(ctx context.Context, items []model.MediaItem) error {
	return s.replaceMedia(ctx, model.TableGallery, event.GalleryReplaced, items)
}

func (s *Service) ReplaceVideoGallery(ctx context.Context, items []model.MediaItem) error {
	return s.replaceMedia(ctx, model.TableVideoGallery, event.VideoGalleryReplaced, items)
}

func (s *Service) replaceMedia(ctx context.Context, table string, eventType event.EventType, items []model.MediaItem) error {
	if s.store == nil {
		return repository.ErrNotConfigured
	}

	repo := s.store.Gallery()
	if table == model.TableVideoGallery {
		repo = s.store.VideoGallery()
	}

	err := repo.ReplaceAll(ctx, items)
	s.record(table, err)
	if err != nil {
		return apperrors.NewInternal(err)
	}
	s.notifier.Changed(ctx, eventType, map[string]interface{}{"urls": model.MediaURLs(items)})
	return nil
}

// AppendMedia adds one URL to the gallery or the video gallery; used by uploads.
func (s *Service) AppendMedia(ctx context.Context, table, url string) error {
	if s.store == nil {
		return repository.ErrNotConfigured
	}

	var err error
	switch table {
	case model.TableGallery:
		_, err = s.store.Gallery().Append(ctx, url)
	case model.TableVideoGallery:
		_, err = s.store.VideoGallery().Append(ctx, url)
	default:
		return apperrors.NewBadRequest(fmt.Sprintf("unknown media table %q", table), nil)
	}
	s.record(table, err)
	if err != nil {
		return apperrors.NewInternal(err)
	}
	s.notifier.Changed(ctx, event.MediaUploaded, map[string]string{"table": table, "url": url})
	return nil
}

func (s *Service) record(section string, err error) {
	s.metrics.WriteOperations.WithLabelValues(section, metrics.Status(err)).Inc()
	if err != nil {
		s.logger.Error().Err(err).Str("section", section).Msg("write failed")
	}
}
