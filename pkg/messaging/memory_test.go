package messaging

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryBrokerFanOut(t *testing.T) {
	b := NewMemoryBroker(4)
	defer b.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	first, err := b.Subscribe(ctx, "barbershop.events")
	require.NoError(t, err)
	second, err := b.Subscribe(ctx, "barbershop.events")
	require.NoError(t, err)

	require.NoError(t, b.Publish(ctx, "barbershop.events", map[string]string{"type": "services.replaced"}))
	require.NoError(t, b.Publish(ctx, "other", map[string]string{"type": "ignored"}))

	for _, ch := range []<-chan []byte{first, second} {
		select {
		case msg := <-ch:
			var decoded map[string]string
			require.NoError(t, json.Unmarshal(msg, &decoded))
			assert.Equal(t, "services.replaced", decoded["type"])
		case <-time.After(time.Second):
			t.Fatal("message not delivered")
		}
	}
}

func TestMemoryBrokerUnsubscribeOnCancel(t *testing.T) {
	b := NewMemoryBroker(1)
	ctx, cancel := context.WithCancel(context.Background())

	ch, err := b.Subscribe(ctx, "events")
	require.NoError(t, err)
	cancel()

	select {
	case _, ok := <-ch:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("channel not closed after cancel")
	}

	require.NoError(t, b.Close())
	assert.ErrorIs(t, b.Publish(context.Background(), "events", "x"), ErrClosed)
}
