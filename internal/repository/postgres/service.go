package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/fonsecabarber/barber-api/internal/model"
	"github.com/fonsecabarber/barber-api/internal/repository"
)

type serviceRepository struct {
	BaseRepository
}

func NewServiceRepository(base BaseRepository) repository.ServiceRepository {
	return &serviceRepository{base}
}

func (r *serviceRepository) List(ctx context.Context) ([]model.Service, error) {
	query := `SELECT id, name, price, description FROM services ORDER BY id`

	var services []model.Service
	if err := r.db.SelectContext(ctx, &services, query); err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	return services, nil
}

// ReplaceAll swaps the whole price list inside one transaction, so a failed insert
// leaves the previous list in place.
func (r *serviceRepository) ReplaceAll(ctx context.Context, services []model.Service) error {
	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM services`); err != nil {
			return fmt.Errorf("failed to clear services: %w", err)
		}
		if len(services) == 0 {
			return nil
		}

		query := `INSERT INTO services (name, price, description) VALUES (:name, :price, :description)`
		if _, err := tx.NamedExecContext(ctx, query, services); err != nil {
			return fmt.Errorf("failed to insert services: %w", err)
		}
		return nil
	})
}
