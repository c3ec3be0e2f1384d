package event

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	SettingsUpdated          EventType = "settings.updated"
	ServicesReplaced         EventType = "services.replaced"
	GalleryReplaced          EventType = "gallery.replaced"
	VideoGalleryReplaced     EventType = "video_gallery.replaced"
	MediaUploaded            EventType = "media.uploaded"
	AppointmentCreated       EventType = "appointment.created"
	AppointmentStatusUpdated EventType = "appointment.status_updated"
	AppointmentDeleted       EventType = "appointment.deleted"
)

// DefaultChannel carries every barbershop event.
const DefaultChannel = "barbershop.events"

// Event is the envelope published on the broker.
type Event struct {
	ID         uuid.UUID       `json:"id"`
	Type       EventType       `json:"type"`
	Source     string          `json:"source"`
	Payload    json.RawMessage `json:"payload,omitempty"`
	OccurredAt time.Time       `json:"occurred_at"`
}

// Decode unmarshals the payload into v.
func (e Event) Decode(v interface{}) error {
	return json.Unmarshal(e.Payload, v)
}

// ChangesContent reports whether the event makes the public content document stale.
func (e Event) ChangesContent() bool {
	switch e.Type {
	case SettingsUpdated, ServicesReplaced, GalleryReplaced, VideoGalleryReplaced, MediaUploaded,
		AppointmentCreated, AppointmentStatusUpdated, AppointmentDeleted:
		return true
	}
	return false
}
