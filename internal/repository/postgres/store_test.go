package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fonsecabarber/barber-api/internal/model"
)

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewStore(sqlx.NewDb(db, "postgres")), mock
}

func TestSettingsListAndUpsert(t *testing.T) {
	store, mock := newMockStore(t)
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT key, value FROM settings`)).
		WillReturnRows(sqlmock.NewRows([]string{"key", "value"}).
			AddRow("whatsapp_number", "5511888888888").
			AddRow("address", "Av. Brasil, 1"))

	settings, err := store.Settings().List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []model.Setting{
		{Key: "whatsapp_number", Value: "5511888888888"},
		{Key: "address", Value: "Av. Brasil, 1"},
	}, settings)

	mock.ExpectExec(`INSERT INTO settings .* ON CONFLICT \(key\) DO UPDATE`).
		WithArgs("address", "Rua Nova, 2").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, store.Settings().Upsert(ctx, "address", "Rua Nova, 2"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestServicesReplaceAllRunsInTransaction(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM services`)).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(`INSERT INTO services \(name, price, description\) VALUES`).
		WithArgs("Corte", "R$ 50", "Tesoura", "Barba", "R$ 30", "").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	err := store.Services().ReplaceAll(context.Background(), []model.Service{
		{Name: "Corte", Price: "R$ 50", Desc: "Tesoura"},
		{Name: "Barba", Price: "R$ 30"},
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestServicesReplaceAllRollsBackOnInsertFailure(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM services`)).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(`INSERT INTO services`).
		WillReturnError(errors.New("value too long"))
	mock.ExpectRollback()

	err := store.Services().ReplaceAll(context.Background(), []model.Service{{Name: "Corte"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "value too long")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestServicesReplaceAllWithEmptyListOnlyClears(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM services`)).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectCommit()

	require.NoError(t, store.Services().ReplaceAll(context.Background(), nil))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMediaRepositoryUsesItsTable(t *testing.T) {
	store, mock := newMockStore(t)
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, url FROM video_gallery ORDER BY id`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "url"}).AddRow(1, "https://cdn/v1.mp4"))

	items, err := store.VideoGallery().List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []model.MediaItem{{ID: 1, URL: "https://cdn/v1.mp4"}}, items)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO gallery (url) VALUES ($1) RETURNING id`)).
		WithArgs("https://cdn/p.jpg").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(9))

	item, err := store.Gallery().Append(ctx, "https://cdn/p.jpg")
	require.NoError(t, err)
	assert.Equal(t, model.MediaItem{ID: 9, URL: "https://cdn/p.jpg"}, item)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAppointmentCreateScansGeneratedColumns(t *testing.T) {
	store, mock := newMockStore(t)
	created := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`INSERT INTO appointments`).
		WithArgs("João", "Corte", "2024-06-10", "14:30", model.AppointmentStatusPending).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(42, created))

	appt := &model.Appointment{
		ClientName:  "João",
		ServiceName: "Corte",
		Date:        "2024-06-10",
		Time:        "14:30",
		Status:      model.AppointmentStatusPending,
	}
	require.NoError(t, store.Appointments().Create(context.Background(), appt))
	assert.Equal(t, int64(42), appt.ID)
	require.NotNil(t, appt.CreatedAt)
	assert.True(t, created.Equal(*appt.CreatedAt))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAppointmentListAppliesLimit(t *testing.T) {
	store, mock := newMockStore(t)
	columns := []string{"id", "client_name", "service_name", "date", "time", "status", "created_at"}

	mock.ExpectQuery(`ORDER BY date DESC, time DESC, id DESC\s+LIMIT \$1`).
		WithArgs(20).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(2, "Ana", "Barba", "2024-06-11", "09:00", "Pendente", nil))

	list, err := store.Appointments().List(context.Background(), model.AppointmentFilters{Limit: 20})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Ana", list[0].ClientName)
	assert.Nil(t, list[0].CreatedAt)

	mock.ExpectQuery(`ORDER BY date DESC, time DESC, id DESC\s*$`).
		WillReturnRows(sqlmock.NewRows(columns))

	list, err = store.Appointments().List(context.Background(), model.AppointmentFilters{})
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAppointmentStatusAndDeleteIgnoreMissingRows(t *testing.T) {
	store, mock := newMockStore(t)
	ctx := context.Background()

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE appointments SET status = $1 WHERE id = $2`)).
		WithArgs(model.AppointmentStatusCancelled, int64(404)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM appointments WHERE id = $1`)).
		WithArgs(int64(404)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, store.Appointments().UpdateStatus(ctx, 404, model.AppointmentStatusCancelled))
	assert.NoError(t, store.Appointments().Delete(ctx, 404))
	assert.NoError(t, mock.ExpectationsWereMet())
}
