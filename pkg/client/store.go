package client

import (
	"context"
	"sync"

	"github.com/fonsecabarber/barber-api/internal/model"
)

// Merge folds an incoming document into current and returns the result.
// A nil list in incoming means the list was absent from the response.
//
// Settings are merged key by key. Services and both galleries are replaced
// only by a non-empty list, so an empty response never blanks a populated
// page. Appointments are replaced whenever present, even when empty.
func Merge(current, incoming model.ContentDocument) model.ContentDocument {
	out := current.Clone()

	for k, v := range incoming.Settings {
		out.Settings[k] = v
	}

	if len(incoming.Services) > 0 {
		out.Services = append([]model.Service(nil), incoming.Services...)
	}
	if len(incoming.Gallery) > 0 {
		out.Gallery = append([]model.MediaItem(nil), incoming.Gallery...)
	}
	if len(incoming.VideoGallery) > 0 {
		out.VideoGallery = append([]model.MediaItem(nil), incoming.VideoGallery...)
	}
	if incoming.Appointments != nil {
		out.Appointments = append([]model.Appointment{}, incoming.Appointments...)
	}
	return out
}

// ContentSource is satisfied by *Client.
type ContentSource interface {
	Content(ctx context.Context) (model.ContentDocument, error)
}

// Store holds the last good content document, seeded with the built-in defaults.
type Store struct {
	mu  sync.RWMutex
	doc model.ContentDocument
}

func NewStore() *Store {
	return &Store{doc: model.FallbackDocument(model.SourceStore)}
}

// Snapshot returns a copy of the current document.
func (s *Store) Snapshot() model.ContentDocument {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc.Clone()
}

// Apply merges incoming into the held document.
func (s *Store) Apply(incoming model.ContentDocument) model.ContentDocument {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc = Merge(s.doc, incoming)
	return s.doc.Clone()
}

// Refresh fetches from src and merges the result. On error the held document
// is left untouched and returned alongside the error.
func (s *Store) Refresh(ctx context.Context, src ContentSource) (model.ContentDocument, error) {
	doc, err := src.Content(ctx)
	if err != nil {
		return s.Snapshot(), err
	}
	return s.Apply(doc), nil
}

// Setting returns a setting from the held document.
func (s *Store) Setting(key string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc.Settings[key]
}
