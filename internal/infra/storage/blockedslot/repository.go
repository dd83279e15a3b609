package blockedslot

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-CoworkingBooking/internal/domain"
	"github.com/m04kA/SMC-CoworkingBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-CoworkingBooking/pkg/psqlbuilder"
)

const table = "blocked_slots"

var columns = []string{
	"id",
	"room_id",
	"room_name",
	"start_time",
	"end_time",
	"reason",
	"created_at",
}

// Repository репозиторий блокировок (окон обслуживания) комнат
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория блокировок
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет новую блокировку
func (r *Repository) Create(ctx context.Context, slot *domain.BlockedSlot) (*domain.BlockedSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns(columns...).
		Values(slot.ID, slot.RoomID, slot.RoomName, slot.Start, slot.End, slot.Reason, slot.CreatedAt).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return slot, nil
}

// OverlappingBlocks возвращает блокировки комнаты, пересекающиеся с [start, end)
func (r *Repository) OverlappingBlocks(ctx context.Context, roomID domain.RoomID, start, end time.Time) ([]*domain.BlockedSlot, error) {
	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"room_id": roomID}).
		Where(squirrel.Lt{"start_time": end}).
		Where(squirrel.Gt{"end_time": start}).
		OrderBy("start_time ASC", "id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: OverlappingBlocks - build select query: %v", ErrBuildQuery, err)
	}

	return r.query(ctx, "OverlappingBlocks", query, args)
}

// List возвращает блокировки, опционально только для одной комнаты
func (r *Repository) List(ctx context.Context, roomID *domain.RoomID) ([]*domain.BlockedSlot, error) {
	selectBuilder := psqlbuilder.Select(columns...).From(table)
	if roomID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"room_id": *roomID})
	}

	query, args, err := selectBuilder.OrderBy("start_time ASC", "id ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	return r.query(ctx, "List", query, args)
}

// Delete удаляет блокировку
func (r *Repository) Delete(ctx context.Context, id domain.BlockedSlotID) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrBlockedSlotNotFound
	}

	return nil
}

func (r *Repository) query(ctx context.Context, op string, query string, args []interface{}) ([]*domain.BlockedSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %w", ErrExecQuery, op, err)
	}
	defer rows.Close()

	return scanBlockedSlots(rows)
}

func scanBlockedSlots(rows *sql.Rows) ([]*domain.BlockedSlot, error) {
	slots := make([]*domain.BlockedSlot, 0)

	for rows.Next() {
		var (
			slot      domain.BlockedSlot
			createdAt sql.NullTime
		)
		if err := rows.Scan(
			&slot.ID,
			&slot.RoomID,
			&slot.RoomName,
			&slot.Start,
			&slot.End,
			&slot.Reason,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("%w: scanBlockedSlots - scan row: %v", ErrScanRow, err)
		}
		slot.CreatedAt = createdAt.Time
		slots = append(slots, &slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBlockedSlots - rows error: %w", ErrScanRow, err)
	}

	return slots, nil
}
