package model

import (
	"time"
)

type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "Pendente"
	AppointmentStatusCompleted AppointmentStatus = "Concluído"
	AppointmentStatusCancelled AppointmentStatus = "Cancelado"
)

func (s AppointmentStatus) Valid() bool {
	switch s {
	case AppointmentStatusPending, AppointmentStatusCompleted, AppointmentStatusCancelled:
		return true
	}
	return false
}

// DefaultServiceName is used when a booking names no service.
const DefaultServiceName = "Geral"

type Appointment struct {
	ID          int64             `db:"id" json:"id"`
	ClientName  string            `db:"client_name" json:"client_name"`
	ServiceName string            `db:"service_name" json:"service_name"`
	Date        string            `db:"date" json:"date"`
	Time        string            `db:"time" json:"time"`
	Status      AppointmentStatus `db:"status" json:"status"`
	CreatedAt   *time.Time        `db:"created_at" json:"created_at,omitempty"`
}

// NewestFirst orders appointments by date, then time, then id, all descending.
func NewestFirst(a, b Appointment) bool {
	if a.Date != b.Date {
		return a.Date > b.Date
	}
	if a.Time != b.Time {
		return a.Time > b.Time
	}
	return a.ID > b.ID
}

type AppointmentFilters struct {
	Limit int
}
