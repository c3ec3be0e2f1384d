package postgres

import (
	"context"
	"fmt"

	"github.com/fonsecabarber/barber-api/internal/model"
	"github.com/fonsecabarber/barber-api/internal/repository"
)

type appointmentRepository struct {
	BaseRepository
}

func NewAppointmentRepository(base BaseRepository) repository.AppointmentRepository {
	return &appointmentRepository{base}
}

func (r *appointmentRepository) Create(ctx context.Context, appointment *model.Appointment) error {
	query := `
		INSERT INTO appointments (client_name, service_name, date, time, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`
	err := r.db.QueryRowxContext(ctx, query,
		appointment.ClientName,
		appointment.ServiceName,
		appointment.Date,
		appointment.Time,
		appointment.Status,
	).Scan(&appointment.ID, &appointment.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create appointment: %w", err)
	}
	return nil
}

// List returns appointments newest first; filters.Limit <= 0 means no cap.
func (r *appointmentRepository) List(ctx context.Context, filters model.AppointmentFilters) ([]model.Appointment, error) {
	query := `
		SELECT id, client_name, service_name, date::text AS date, time::text AS time, status, created_at
		FROM appointments
		ORDER BY date DESC, time DESC, id DESC
	`
	args := []interface{}{}
	if filters.Limit > 0 {
		query += ` LIMIT $1`
		args = append(args, filters.Limit)
	}

	var appointments []model.Appointment
	if err := r.db.SelectContext(ctx, &appointments, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appointments, nil
}

func (r *appointmentRepository) UpdateStatus(ctx context.Context, id int64, status model.AppointmentStatus) error {
	query := `UPDATE appointments SET status = $1 WHERE id = $2`
	if _, err := r.db.ExecContext(ctx, query, status, id); err != nil {
		return fmt.Errorf("failed to update appointment status: %w", err)
	}
	return nil
}

func (r *appointmentRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM appointments WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("failed to delete appointment: %w", err)
	}
	return nil
}
