package media

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/fonsecabarber/barber-api/internal/model"
	"github.com/fonsecabarber/barber-api/internal/repository"
	"github.com/fonsecabarber/barber-api/internal/storage"
	apperrors "github.com/fonsecabarber/barber-api/pkg/errors"
	"github.com/fonsecabarber/barber-api/pkg/metrics"
)

// Target says where an uploaded file ends up once stored.
type Target string

const (
	// TargetHeroVideo replaces the hero_video setting.
	TargetHeroVideo Target = "hero_video"
	// TargetGalleryVideo appends to video_gallery.
	TargetGalleryVideo Target = "video_gallery"
	// TargetGalleryImage appends to gallery.
	TargetGalleryImage Target = "gallery"
)

// ContentWriter is the part of the write gateway uploads need.
type ContentWriter interface {
	UpdateSettings(ctx context.Context, settings map[string]string) error
	AppendMedia(ctx context.Context, table, url string) error
}

// File is one multipart upload.
type File struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

type Service struct {
	blobs    storage.BlobStore
	content  ContentWriter
	maxBytes int64
	metrics  *metrics.Metrics
	logger   zerolog.Logger
	now      func() time.Time
}

// NewService accepts a nil blob store, meaning storage is not configured.
func NewService(blobs storage.BlobStore, content ContentWriter, maxBytes int64, m *metrics.Metrics, logger zerolog.Logger) *Service {
	return &Service{
		blobs:    blobs,
		content:  content,
		maxBytes: maxBytes,
		metrics:  m,
		logger:   logger.With().Str("component", "media").Logger(),
		now:      time.Now,
	}
}

func (s *Service) MaxBytes() int64 { return s.maxBytes }

// Upload stores the file and records its public URL on target.
func (s *Service) Upload(ctx context.Context, target Target, file File) (string, error) {
	if s.blobs == nil {
		return "", repository.ErrNotConfigured
	}
	if s.maxBytes > 0 && file.Size > s.maxBytes {
		return "", apperrors.NewTooLarge(s.maxBytes)
	}

	name := storage.ObjectName(file.Filename, s.now())
	s.logger.Info().
		Str("target", string(target)).
		Str("object", name).
		Int64("size", file.Size).
		Msg("uploading media")

	url, err := s.blobs.Put(ctx, storage.Object{
		Name:        name,
		ContentType: file.ContentType,
		Size:        file.Size,
		Body:        file.Body,
	})
	if err != nil {
		return "", apperrors.NewInternal(fmt.Errorf("failed to store %s: %w", name, err))
	}
	if file.Size > 0 {
		s.metrics.UploadBytes.Add(float64(file.Size))
	}

	switch target {
	case TargetHeroVideo:
		err = s.content.UpdateSettings(ctx, map[string]string{model.SettingHeroVideo: url})
	case TargetGalleryVideo:
		err = s.content.AppendMedia(ctx, model.TableVideoGallery, url)
	case TargetGalleryImage:
		err = s.content.AppendMedia(ctx, model.TableGallery, url)
	default:
		return "", apperrors.NewBadRequest(fmt.Sprintf("unknown upload target %q", target), nil)
	}
	if err != nil {
		return "", err
	}
	return url, nil
}
