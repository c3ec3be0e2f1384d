package worker

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/fonsecabarber/barber-api/internal/email"
	"github.com/fonsecabarber/barber-api/internal/model"
	"github.com/fonsecabarber/barber-api/internal/service/event"
	"github.com/fonsecabarber/barber-api/pkg/metrics"
)

// AppointmentNotifier mails the shop owner whenever a booking is created.
type AppointmentNotifier struct {
	mailer  email.Service
	to      string
	metrics *metrics.Metrics
	logger  zerolog.Logger
}

func NewAppointmentNotifier(mailer email.Service, to string, m *metrics.Metrics, logger zerolog.Logger) *AppointmentNotifier {
	return &AppointmentNotifier{
		mailer:  mailer,
		to:      to,
		metrics: m,
		logger:  logger.With().Str("component", "appointment-notifier").Logger(),
	}
}

// Handle is an event.EventService listener. Other event types are ignored.
func (w *AppointmentNotifier) Handle(ctx context.Context, evt event.Event) {
	if evt.Type != event.AppointmentCreated {
		return
	}

	err := w.notify(ctx, evt)
	w.metrics.EventsHandled.WithLabelValues(string(evt.Type), metrics.Status(err)).Inc()
	if err != nil {
		w.logger.Error().Err(err).Str("event_id", evt.ID.String()).Msg("appointment notification failed")
	}
}

func (w *AppointmentNotifier) notify(ctx context.Context, evt event.Event) error {
	var apt model.Appointment
	if err := evt.Decode(&apt); err != nil {
		return fmt.Errorf("failed to decode appointment: %w", err)
	}

	msg := Compose(w.to, apt)
	if err := w.mailer.Send(ctx, msg); err != nil {
		return err
	}

	w.logger.Info().
		Int64("appointment_id", apt.ID).
		Str("date", apt.Date).
		Str("time", apt.Time).
		Msg("appointment notification sent")
	return nil
}

// Compose builds the owner notification for a new booking.
func Compose(to string, apt model.Appointment) email.Message {
	service := apt.ServiceName
	if service == "" {
		service = model.DefaultServiceName
	}
	return email.Message{
		To:      to,
		Subject: fmt.Sprintf("Novo agendamento: %s em %s às %s", apt.ClientName, apt.Date, apt.Time),
		Body: fmt.Sprintf(
			"Cliente: %s\nServiço: %s\nData: %s\nHorário: %s\nStatus: %s\n",
			apt.ClientName, service, apt.Date, apt.Time, apt.Status,
		),
	}
}
