package event

import (
	"context"

	"github.com/rs/zerolog"
)

// Invalidator drops cached reads after a successful write.
type Invalidator interface {
	Invalidate()
}

// Notifier is called by write paths once a change is committed. It invalidates
// local caches and publishes the change for other instances and the worker.
type Notifier struct {
	emitter Emitter
	caches  []Invalidator
	logger  zerolog.Logger
}

func NewNotifier(emitter Emitter, logger zerolog.Logger, caches ...Invalidator) *Notifier {
	return &Notifier{
		emitter: emitter,
		caches:  caches,
		logger:  logger.With().Str("component", "notifier").Logger(),
	}
}

// Changed never fails: the write already succeeded, so a publish failure is only logged.
// A nil Notifier is a no-op.
func (n *Notifier) Changed(ctx context.Context, eventType EventType, payload interface{}) {
	if n == nil {
		return
	}
	for _, c := range n.caches {
		c.Invalidate()
	}
	if n.emitter == nil {
		return
	}
	if err := n.emitter.Emit(ctx, eventType, payload); err != nil {
		n.logger.Warn().Err(err).Str("type", string(eventType)).Msg("change event not delivered")
	}
}
