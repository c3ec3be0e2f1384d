package event

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fonsecabarber/barber-api/pkg/messaging"
	"github.com/fonsecabarber/barber-api/pkg/metrics"
)

func TestEmitAndListen(t *testing.T) {
	broker := messaging.NewMemoryBroker(10)
	defer broker.Close()
	svc := NewEventService(broker, "", "api-1", metrics.NewNop(), zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	received := make(chan Event, 1)
	ready := make(chan struct{})
	go func() {
		close(ready)
		_ = svc.Listen(ctx, func(_ context.Context, evt Event) { received <- evt })
	}()
	<-ready

	// Subscription is registered asynchronously; retry until it is live.
	require.Eventually(t, func() bool {
		_ = svc.Emit(ctx, AppointmentCreated, map[string]string{"client_name": "Ana"})
		select {
		case evt := <-received:
			assert.Equal(t, AppointmentCreated, evt.Type)
			assert.Equal(t, "api-1", evt.Source)
			assert.True(t, evt.ChangesContent())

			var payload map[string]string
			assert.NoError(t, evt.Decode(&payload))
			assert.Equal(t, "Ana", payload["client_name"])
			return true
		case <-time.After(10 * time.Millisecond):
			return false
		}
	}, time.Second, 20*time.Millisecond)
}

func TestEmitFailsOnClosedBroker(t *testing.T) {
	broker := messaging.NewMemoryBroker(1)
	require.NoError(t, broker.Close())

	svc := NewEventService(broker, "ch", "", metrics.NewNop(), zerolog.Nop())
	assert.NotEmpty(t, svc.Source())
	assert.ErrorIs(t, svc.Emit(context.Background(), SettingsUpdated, nil), messaging.ErrClosed)
}
