package event

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/fonsecabarber/barber-api/pkg/messaging"
	"github.com/fonsecabarber/barber-api/pkg/metrics"
)

// Emitter is what write paths depend on.
type Emitter interface {
	Emit(ctx context.Context, eventType EventType, payload interface{}) error
}

type EventService struct {
	broker  messaging.Broker
	channel string
	source  string
	metrics *metrics.Metrics
	logger  zerolog.Logger
	now     func() time.Time
}

// NewEventService publishes on channel; source identifies this process so it can skip its own events.
func NewEventService(broker messaging.Broker, channel, source string, m *metrics.Metrics, logger zerolog.Logger) *EventService {
	if channel == "" {
		channel = DefaultChannel
	}
	if source == "" {
		source = uuid.NewString()
	}
	return &EventService{
		broker:  broker,
		channel: channel,
		source:  source,
		metrics: m,
		logger:  logger.With().Str("component", "events").Logger(),
		now:     time.Now,
	}
}

func (s *EventService) Source() string { return s.source }

func (s *EventService) Emit(ctx context.Context, eventType EventType, payload interface{}) error {
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	evt := Event{
		ID:         uuid.New(),
		Type:       eventType,
		Source:     s.source,
		Payload:    payloadJSON,
		OccurredAt: s.now().UTC(),
	}

	err = s.broker.Publish(ctx, s.channel, evt)
	s.metrics.EventsPublished.WithLabelValues(string(eventType), metrics.Status(err)).Inc()
	if err != nil {
		s.logger.Warn().Err(err).Str("type", string(eventType)).Msg("failed to publish event")
		return fmt.Errorf("failed to publish %s: %w", eventType, err)
	}
	return nil
}

// Listen delivers decoded events to handle until ctx is done or the broker closes the subscription.
func (s *EventService) Listen(ctx context.Context, handle func(context.Context, Event)) error {
	messages, err := s.broker.Subscribe(ctx, s.channel)
	if err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", s.channel, err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case raw, ok := <-messages:
			if !ok {
				return nil
			}
			var evt Event
			if err := json.Unmarshal(raw, &evt); err != nil {
				s.logger.Warn().Err(err).Msg("dropping malformed event")
				continue
			}
			handle(ctx, evt)
		}
	}
}
