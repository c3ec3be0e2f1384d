package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/fonsecabarber/barber-api/internal/model"
	"github.com/fonsecabarber/barber-api/internal/repository"
)

// Store is the Remote Data Service backed by the project's Postgres database.
type Store struct {
	base         BaseRepository
	settings     repository.SettingRepository
	services     repository.ServiceRepository
	gallery      repository.MediaRepository
	videoGallery repository.MediaRepository
	appointments repository.AppointmentRepository
}

func NewStore(db *sqlx.DB) *Store {
	base := NewBaseRepository(db)
	return &Store{
		base:         base,
		settings:     NewSettingRepository(base),
		services:     NewServiceRepository(base),
		gallery:      NewMediaRepository(base, model.TableGallery),
		videoGallery: NewMediaRepository(base, model.TableVideoGallery),
		appointments: NewAppointmentRepository(base),
	}
}

func (s *Store) Settings() repository.SettingRepository         { return s.settings }
func (s *Store) Services() repository.ServiceRepository         { return s.services }
func (s *Store) Gallery() repository.MediaRepository            { return s.gallery }
func (s *Store) VideoGallery() repository.MediaRepository       { return s.videoGallery }
func (s *Store) Appointments() repository.AppointmentRepository { return s.appointments }

func (s *Store) Ping(ctx context.Context) error {
	return s.base.db.PingContext(ctx)
}

func (s *Store) Close() error {
	return s.base.db.Close()
}
