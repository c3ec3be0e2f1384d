package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/fonsecabarber/barber-api/internal/model"
	"github.com/fonsecabarber/barber-api/internal/repository"
)

// mediaRepository serves gallery and video_gallery; table is one of the model.Table* constants.
type mediaRepository struct {
	BaseRepository
	table string
}

func NewMediaRepository(base BaseRepository, table string) repository.MediaRepository {
	return &mediaRepository{BaseRepository: base, table: table}
}

func (r *mediaRepository) List(ctx context.Context) ([]model.MediaItem, error) {
	query := fmt.Sprintf(`SELECT id, url FROM %s ORDER BY id`, r.table)

	var items []model.MediaItem
	if err := r.db.SelectContext(ctx, &items, query); err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", r.table, err)
	}
	return items, nil
}

func (r *mediaRepository) ReplaceAll(ctx context.Context, items []model.MediaItem) error {
	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s`, r.table)); err != nil {
			return fmt.Errorf("failed to clear %s: %w", r.table, err)
		}
		if len(items) == 0 {
			return nil
		}

		query := fmt.Sprintf(`INSERT INTO %s (url) VALUES (:url)`, r.table)
		if _, err := tx.NamedExecContext(ctx, query, items); err != nil {
			return fmt.Errorf("failed to insert %s: %w", r.table, err)
		}
		return nil
	})
}

func (r *mediaRepository) Append(ctx context.Context, url string) (model.MediaItem, error) {
	query := fmt.Sprintf(`INSERT INTO %s (url) VALUES ($1) RETURNING id`, r.table)

	item := model.MediaItem{URL: url}
	if err := r.db.QueryRowxContext(ctx, query, url).Scan(&item.ID); err != nil {
		return model.MediaItem{}, fmt.Errorf("failed to append to %s: %w", r.table, err)
	}
	return item, nil
}
