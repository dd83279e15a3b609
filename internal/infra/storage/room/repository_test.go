package room

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CoworkingBooking/internal/domain"
	"github.com/m04kA/SMC-CoworkingBooking/pkg/dbmetrics"
)

func newTestRepository(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	return NewRepository(dbmetrics.Wrap(sqlDB, nil)), mock
}

func TestRepository_Create(t *testing.T) {
	repo, mock := newTestRepository(t)
	created := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(
		"INSERT INTO rooms (id,name,description,image) VALUES ($1,$2,$3,$4) RETURNING created_at, updated_at")).
		WithArgs("r1", "Conference Room A", "10 seats", "").
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(created, created))

	got, err := repo.Create(context.Background(), &domain.Room{ID: "r1", Name: "Conference Room A", Description: "10 seats"})
	require.NoError(t, err)
	assert.Equal(t, created, got.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByID(t *testing.T) {
	repo, mock := newTestRepository(t)
	created := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("FROM rooms WHERE id = $1")).
		WithArgs("r1").
		WillReturnRows(sqlmock.NewRows(columns).AddRow("r1", "Conference Room A", "", "", created, created))
	mock.ExpectQuery(regexp.QuoteMeta("FROM rooms WHERE id = $1")).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(columns))

	got, err := repo.GetByID(context.Background(), "r1")
	require.NoError(t, err)
	assert.Equal(t, "Conference Room A", got.Name)

	_, err = repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestRepository_List(t *testing.T) {
	repo, mock := newTestRepository(t)
	created := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("FROM rooms ORDER BY name ASC, id ASC")).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow("r1", "A", "", "", created, created).
			AddRow("r2", "B", "", "", created, created))

	got, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, domain.RoomID("r2"), got[1].ID)
}

func TestRepository_Update_NotFound(t *testing.T) {
	repo, mock := newTestRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE rooms SET name = $1, description = $2, image = $3, updated_at = NOW() WHERE id = $4")).
		WithArgs("New", "", "", "r9").
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}))

	_, err := repo.Update(context.Background(), &domain.Room{ID: "r9", Name: "New"})
	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestRepository_Delete(t *testing.T) {
	repo, mock := newTestRepository(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM rooms WHERE id = $1")).
		WithArgs("r1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM rooms WHERE id = $1")).
		WithArgs("r2").
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, repo.Delete(context.Background(), "r1"))
	assert.ErrorIs(t, repo.Delete(context.Background(), "r2"), ErrRoomNotFound)
}
