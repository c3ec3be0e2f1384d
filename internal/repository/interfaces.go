package repository

import (
	"context"

	"github.com/fonsecabarber/barber-api/internal/model"
	apperrors "github.com/fonsecabarber/barber-api/pkg/errors"
)

// ErrNotConfigured is returned by write paths when no Store is wired.
var ErrNotConfigured = apperrors.NewConfiguration(
	"Configuração do Supabase ausente. Verifique SUPABASE_URL e SUPABASE_ANON_KEY nas variáveis de ambiente.")

// All repository interfaces in one file
type (
	SettingRepository interface {
		List(ctx context.Context) ([]model.Setting, error)
		Upsert(ctx context.Context, key, value string) error
	}

	// ServiceRepository replaces the price list as a unit.
	ServiceRepository interface {
		List(ctx context.Context) ([]model.Service, error)
		ReplaceAll(ctx context.Context, services []model.Service) error
	}

	// MediaRepository backs both the gallery and the video_gallery tables.
	MediaRepository interface {
		List(ctx context.Context) ([]model.MediaItem, error)
		ReplaceAll(ctx context.Context, items []model.MediaItem) error
		Append(ctx context.Context, url string) (model.MediaItem, error)
	}

	// AppointmentRepository updates and deletes are idempotent: an unknown id is not an error.
	AppointmentRepository interface {
		Create(ctx context.Context, appointment *model.Appointment) error
		List(ctx context.Context, filters model.AppointmentFilters) ([]model.Appointment, error)
		UpdateStatus(ctx context.Context, id int64, status model.AppointmentStatus) error
		Delete(ctx context.Context, id int64) error
	}

	// Store is the Remote Data Service: one handle per table plus lifecycle.
	Store interface {
		Settings() SettingRepository
		Services() ServiceRepository
		Gallery() MediaRepository
		VideoGallery() MediaRepository
		Appointments() AppointmentRepository
		Ping(ctx context.Context) error
		Close() error
	}
)
