package appointment

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/fonsecabarber/barber-api/internal/model"
	"github.com/fonsecabarber/barber-api/internal/repository"
	"github.com/fonsecabarber/barber-api/internal/service/event"
	apperrors "github.com/fonsecabarber/barber-api/pkg/errors"
	"github.com/fonsecabarber/barber-api/pkg/metrics"
)

// Service handles bookings. Overlapping bookings are accepted; no capacity check is made.
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
		logger:   logger.With().Str("component", "appointment").Logger(),
	}
}

// CreateAppointment inserts one row with status Pendente.
func (s *Service) CreateAppointment(ctx context.Context, req model.CreateAppointmentRequest) (*model.Appointment, error) {
	if s.store == nil {
		return nil, repository.ErrNotConfigured
	}

	apt := &model.Appointment{
		ClientName:  strings.TrimSpace(req.ClientName),
		ServiceName: strings.TrimSpace(req.ServiceName),
		Date:        req.Date,
		Time:        req.Time,
		Status:      model.AppointmentStatusPending,
	}
	if apt.ServiceName == "" {
		apt.ServiceName = model.DefaultServiceName
	}

	if err := s.store.Appointments().Create(ctx, apt); err != nil {
		s.record(err)
		return nil, apperrors.NewInternal(err)
	}
	s.record(nil)

	s.logger.Info().
		Int64("appointment_id", apt.ID).
		Str("date", apt.Date).
		Str("time", apt.Time).
		Msg("appointment created")
	s.notifier.Changed(ctx, event.AppointmentCreated, apt)
	return apt, nil
}

// ListAppointments returns every appointment newest first, without the public cap.
func (s *Service) ListAppointments(ctx context.Context) ([]model.Appointment, error) {
	if s.store == nil {
		return nil, repository.ErrNotConfigured
	}
	list, err := s.store.Appointments().List(ctx, model.AppointmentFilters{})
	if err != nil {
		return nil, apperrors.NewInternal(err)
	}
	if list == nil {
		list = []model.Appointment{}
	}
	return list, nil
}

// UpdateStatus is idempotent: repeating it, or naming an unknown id, succeeds.
func (s *Service) UpdateStatus(ctx context.Context, id int64, status model.AppointmentStatus) error {
	if s.store == nil {
		return repository.ErrNotConfigured
	}
	if !status.Valid() {
		return apperrors.NewValidation("status must be one of [Pendente Concluído Cancelado]", []string{"status"}, nil)
	}

	err := s.store.Appointments().UpdateStatus(ctx, id, status)
	s.record(err)
	if err != nil {
		return apperrors.NewInternal(err)
	}
	s.notifier.Changed(ctx, event.AppointmentStatusUpdated, map[string]interface{}{"id": id, "status": status})
	return nil
}

// DeleteAppointment is idempotent: deleting a missing id succeeds.
func (s *Service) DeleteAppointment(ctx context.Context, id int64) error {
	if s.store == nil {
		return repository.ErrNotConfigured
	}

	err := s.store.Appointments().Delete(ctx, id)
	s.record(err)
	if err != nil {
		return apperrors.NewInternal(err)
	}
	s.notifier.Changed(ctx, event.AppointmentDeleted, map[string]interface{}{"id": id})
	return nil
}

func (s *Service) record(err error) {
	s.metrics.WriteOperations.WithLabelValues(model.TableAppointments, metrics.Status(err)).Inc()
	if err != nil {
		s.logger.Error().Err(err).Msg("appointment write failed")
	}
}
