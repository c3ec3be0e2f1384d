// Package memory is an in-process Store used by tests and by local runs without a database.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/fonsecabarber/barber-api/internal/model"
	"github.com/fonsecabarber/barber-api/internal/repository"
)

// Store keeps every table behind a single lock. Delay and Failures let tests
// simulate a slow or broken table.
type Store struct {
	mu           sync.RWMutex
	nextID       int64
	settings     []model.Setting
	services     []model.Service
	gallery      []model.MediaItem
	videoGallery []model.MediaItem
	appointments []model.Appointment

	// Delay and Failures are keyed by table name.
	Delay    map[string]time.Duration
	Failures map[string]error
	now      func() time.Time
}

func NewStore() *Store {
	return &Store{
		Delay:    map[string]time.Duration{},
		Failures: map[string]error{},
		now:      time.Now,
	}
}

func (s *Store) Settings() repository.SettingRepository { return settingRepo{s} }
func (s *Store) Services() repository.ServiceRepository { return serviceRepo{s} }
func (s *Store) Gallery() repository.MediaRepository {
	return mediaRepo{s: s, table: model.TableGallery}
}
func (s *Store) VideoGallery() repository.MediaRepository {
	return mediaRepo{s: s, table: model.TableVideoGallery}
}
func (s *Store) Appointments() repository.AppointmentRepository { return appointmentRepo{s} }

func (s *Store) Ping(ctx context.Context) error { return ctx.Err() }
func (s *Store) Close() error                   { return nil }

// enter applies the configured delay and failure for table, honouring ctx.
func (s *Store) enter(ctx context.Context, table string) error {
	s.mu.RLock()
	delay, failure := s.Delay[table], s.Failures[table]
	s.mu.RUnlock()

	if delay > 0 {
		timer := time.NewTimer(delay)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	if failure != nil {
		return failure
	}
	return ctx.Err()
}

func (s *Store) id() int64 {
	s.nextID++
	return s.nextID
}

type settingRepo struct{ s *Store }

func (r settingRepo) List(ctx context.Context) ([]model.Setting, error) {
	if err := r.s.enter(ctx, model.TableSettings); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return append([]model.Setting(nil), r.s.settings...), nil
}

func (r settingRepo) Upsert(ctx context.Context, key, value string) error {
	if err := r.s.enter(ctx, model.TableSettings); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.settings {
		if r.s.settings[i].Key == key {
			r.s.settings[i].Value = value
			return nil
		}
	}
	r.s.settings = append(r.s.settings, model.Setting{Key: key, Value: value})
	return nil
}

type serviceRepo struct{ s *Store }

func (r serviceRepo) List(ctx context.Context) ([]model.Service, error) {
	if err := r.s.enter(ctx, model.TableServices); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return append([]model.Service(nil), r.s.services...), nil
}

func (r serviceRepo) ReplaceAll(ctx context.Context, services []model.Service) error {
	if err := r.s.enter(ctx, model.TableServices); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	next := make([]model.Service, 0, len(services))
	for _, svc := range services {
		svc.ID = r.s.id()
		next = append(next, svc)
	}
	r.s.services = next
	return nil
}

type mediaRepo struct {
	s     *Store
	table string
}

func (r mediaRepo) rows() *[]model.MediaItem {
	if r.table == model.TableVideoGallery {
		return &r.s.videoGallery
	}
	return &r.s.gallery
}

func (r mediaRepo) List(ctx context.Context) ([]model.MediaItem, error) {
	if err := r.s.enter(ctx, r.table); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return append([]model.MediaItem(nil), *r.rows()...), nil
}

func (r mediaRepo) ReplaceAll(ctx context.Context, items []model.MediaItem) error {
	if err := r.s.enter(ctx, r.table); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	next := make([]model.MediaItem, 0, len(items))
	for _, it := range items {
		next = append(next, model.MediaItem{ID: r.s.id(), URL: it.URL})
	}
	*r.rows() = next
	return nil
}

func (r mediaRepo) Append(ctx context.Context, url string) (model.MediaItem, error) {
	if err := r.s.enter(ctx, r.table); err != nil {
		return model.MediaItem{}, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	item := model.MediaItem{ID: r.s.id(), URL: url}
	*r.rows() = append(*r.rows(), item)
	return item, nil
}

type appointmentRepo struct{ s *Store }

func (r appointmentRepo) Create(ctx context.Context, appointment *model.Appointment) error {
	if err := r.s.enter(ctx, model.TableAppointments); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	created := r.s.now()
	appointment.ID = r.s.id()
	appointment.CreatedAt = &created
	r.s.appointments = append(r.s.appointments, *appointment)
	return nil
}

func (r appointmentRepo) List(ctx context.Context, filters model.AppointmentFilters) ([]model.Appointment, error) {
	if err := r.s.enter(ctx, model.TableAppointments); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	list := append([]model.Appointment(nil), r.s.appointments...)
	r.s.mu.RUnlock()

	sort.SliceStable(list, func(i, j int) bool { return model.NewestFirst(list[i], list[j]) })
	if filters.Limit > 0 && len(list) > filters.Limit {
		list = list[:filters.Limit]
	}
	return list, nil
}

func (r appointmentRepo) UpdateStatus(ctx context.Context, id int64, status model.AppointmentStatus) error {
	if err := r.s.enter(ctx, model.TableAppointments); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.appointments {
		if r.s.appointments[i].ID == id {
			r.s.appointments[i].Status = status
		}
	}
	return nil
}

func (r appointmentRepo) Delete(ctx context.Context, id int64) error {
	if err := r.s.enter(ctx, model.TableAppointments); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	kept := r.s.appointments[:0]
	for _, a := range r.s.appointments {
		if a.ID != id {
			kept = append(kept, a)
		}
	}
	r.s.appointments = kept
	return nil
}
