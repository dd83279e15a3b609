package blockedslot

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CoworkingBooking/internal/domain"
	"github.com/m04kA/SMC-CoworkingBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-CoworkingBooking/pkg/txmanager"
)

func newTestRepository(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	return NewRepository(dbmetrics.Wrap(sqlDB, nil)), mock
}

func at(hour, minute int) time.Time {
	return time.Date(2024, 6, 1, hour, minute, 0, 0, time.UTC)
}

func TestRepository_Create(t *testing.T) {
	repo, mock := newTestRepository(t)

	slot := &domain.BlockedSlot{
		ID:        "s1",
		RoomID:    "r1",
		RoomName:  "Conference Room A",
		Start:     at(13, 0),
		End:       at(15, 0),
		Reason:    "Cleaning",
		CreatedAt: at(8, 0),
	}

	mock.ExpectExec(regexp.QuoteMeta(
		"INSERT INTO blocked_slots (id,room_id,room_name,start_time,end_time,reason,created_at) VALUES ($1,$2,$3,$4,$5,$6,$7)")).
		WithArgs("s1", "r1", "Conference Room A", at(13, 0), at(15, 0), "Cleaning", at(8, 0)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	got, err := repo.Create(context.Background(), slot)
	require.NoError(t, err)
	assert.Equal(t, slot, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_OverlappingBlocks(t *testing.T) {
	repo, mock := newTestRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta(
		"FROM blocked_slots WHERE room_id = $1 AND start_time < $2 AND end_time > $3 ORDER BY start_time ASC, id ASC")).
		WithArgs("r1", at(14, 0), at(13, 30)).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow("s1", "r1", "Conference Room A", at(13, 0), at(15, 0), "Cleaning", at(8, 0)))

	got, err := repo.OverlappingBlocks(context.Background(), "r1", at(13, 30), at(14, 0))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, domain.BlockedSlotID("s1"), got[0].ID)
	assert.Equal(t, "Cleaning", got[0].Reason)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_List_ByRoom(t *testing.T) {
	repo, mock := newTestRepository(t)
	roomID := domain.RoomID("r2")

	mock.ExpectQuery(regexp.QuoteMeta("FROM blocked_slots WHERE room_id = $1 ORDER BY start_time ASC")).
		WithArgs("r2").
		WillReturnRows(sqlmock.NewRows(columns))

	got, err := repo.List(context.Background(), &roomID)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRepository_Delete(t *testing.T) {
	repo, mock := newTestRepository(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM blocked_slots WHERE id = $1")).
		WithArgs("s1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM blocked_slots WHERE id = $1")).
		WithArgs("s2").
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, repo.Delete(context.Background(), "s1"))
	assert.ErrorIs(t, repo.Delete(context.Background(), "s2"), ErrBlockedSlotNotFound)
}

func TestRepository_OverlappingBlocks_KeepsDriverError(t *testing.T) {
	repo, mock := newTestRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM blocked_slots WHERE room_id = $1")).
		WillReturnError(&pq.Error{Code: "40001", Message: "could not serialize access"})

	_, err := repo.OverlappingBlocks(context.Background(), "r1", at(9, 0), at(10, 0))
	assert.ErrorIs(t, err, ErrExecQuery)
	assert.True(t, txmanager.IsSerializationFailure(err))
}
