package postgres

import (
	"context"
	"fmt"

	"github.com/fonsecabarber/barber-api/internal/model"
	"github.com/fonsecabarber/barber-api/internal/repository"
)

type settingRepository struct {
	BaseRepository
}

func NewSettingRepository(base BaseRepository) repository.SettingRepository {
	return &settingRepository{base}
}

func (r *settingRepository) List(ctx context.Context) ([]model.Setting, error) {
	query := `SELECT key, value FROM settings`

	var settings []model.Setting
	if err := r.db.SelectContext(ctx, &settings, query); err != nil {
		return nil, fmt.Errorf("failed to list settings: %w", err)
	}
	return settings, nil
}

func (r *settingRepository) Upsert(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO settings (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value
	`
	if _, err := r.db.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("failed to upsert setting %s: %w", key, err)
	}
	return nil
}
