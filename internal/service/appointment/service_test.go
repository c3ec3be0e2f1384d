package appointment

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fonsecabarber/barber-api/internal/model"
	"github.com/fonsecabarber/barber-api/internal/repository"
	"github.com/fonsecabarber/barber-api/internal/repository/memory"
	"github.com/fonsecabarber/barber-api/internal/service/event"
	apperrors "github.com/fonsecabarber/barber-api/pkg/errors"
	"github.com/fonsecabarber/barber-api/pkg/metrics"
)

type recordingEmitter struct {
	types []event.EventType
}

func (r *recordingEmitter) Emit(_ context.Context, t event.EventType, _ interface{}) error {
	r.types = append(r.types, t)
	return nil
}

func newService(store repository.Store) (*Service, *recordingEmitter) {
	emitter := &recordingEmitter{}
	notifier := event.NewNotifier(emitter, zerolog.Nop())
	return NewService(store, notifier, metrics.NewNop(), zerolog.Nop()), emitter
}

func TestBookingLifecycle(t *testing.T) {
	svc, emitter := newService(memory.NewStore())
	ctx := context.Background()

	apt, err := svc.CreateAppointment(ctx, model.CreateAppointmentRequest{
		ClientName:  "João",
		ServiceName: "Corte",
		Date:        "2024-06-01",
		Time:        "14:00",
	})
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusPending, apt.Status)
	assert.NotZero(t, apt.ID)

	require.NoError(t, svc.UpdateStatus(ctx, apt.ID, model.AppointmentStatusCompleted))

	list, err := svc.ListAppointments(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "João", list[0].ClientName)
	assert.Equal(t, model.AppointmentStatusCompleted, list[0].Status)

	assert.Equal(t, []event.EventType{event.AppointmentCreated, event.AppointmentStatusUpdated}, emitter.types)
}

func TestCreateDefaultsServiceName(t *testing.T) {
	svc, _ := newService(memory.NewStore())

	apt, err := svc.CreateAppointment(context.Background(), model.CreateAppointmentRequest{
		ClientName: "  Ana ", Date: "2024-06-01", Time: "09:00",
	})
	require.NoError(t, err)
	assert.Equal(t, "Ana", apt.ClientName)
	assert.Equal(t, model.DefaultServiceName, apt.ServiceName)
}

func TestOverlappingBookingsAreAccepted(t *testing.T) {
	svc, _ := newService(memory.NewStore())
	req := model.CreateAppointmentRequest{ClientName: "A", Date: "2024-06-01", Time: "09:00"}

	_, err := svc.CreateAppointment(context.Background(), req)
	require.NoError(t, err)
	_, err = svc.CreateAppointment(context.Background(), req)
	require.NoError(t, err)

	list, _ := svc.ListAppointments(context.Background())
	assert.Len(t, list, 2)
}

func TestStatusAndDeleteAreIdempotent(t *testing.T) {
	svc, _ := newService(memory.NewStore())
	ctx := context.Background()

	assert.NoError(t, svc.UpdateStatus(ctx, 123, model.AppointmentStatusCancelled))
	assert.NoError(t, svc.DeleteAppointment(ctx, 123))
	assert.NoError(t, svc.DeleteAppointment(ctx, 123))
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	svc, _ := newService(memory.NewStore())
	err := svc.UpdateStatus(context.Background(), 1, "Feito")
	assert.True(t, apperrors.Is(err, apperrors.ErrValidation))
}

func TestWriteFailuresAreSurfaced(t *testing.T) {
	store := memory.NewStore()
	store.Failures[model.TableAppointments] = errors.New("permission denied for table appointments")
	svc, emitter := newService(store)

	_, err := svc.CreateAppointment(context.Background(), model.CreateAppointmentRequest{ClientName: "A", Date: "2024-06-01", Time: "09:00"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "permission denied")
	assert.Empty(t, emitter.types)
}

func TestWithoutStoreReportsConfiguration(t *testing.T) {
	svc, _ := newService(nil)
	_, err := svc.CreateAppointment(context.Background(), model.CreateAppointmentRequest{})
	assert.True(t, apperrors.Is(err, apperrors.ErrConfiguration))
	_, err = svc.ListAppointments(context.Background())
	assert.True(t, apperrors.Is(err, apperrors.ErrConfiguration))
}
