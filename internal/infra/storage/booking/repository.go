package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-CoworkingBooking/internal/domain"
	"github.com/m04kA/SMC-CoworkingBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-CoworkingBooking/pkg/psqlbuilder"
)

const table = "bookings"

// SQLSTATE коды Postgres, означающие конфликт интервалов
const (
	pqExclusionViolation   = "23P01"
	pqSerializationFailure = "40001"
	pqDeadlockDetected     = "40P01"
)

var columns = []string{
	"id",
	"user_id",
	"username",
	"room_id",
	"room_name",
	"start_time",
	"end_time",
	"duration_minutes",
	"status",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет новое бронирование
// Если в контексте передана активная транзакция, использует её.
//
// Таблица bookings защищена exclusion constraint по (room_id, [start_time, end_time)),
// поэтому пересечение, пропущенное проверками на уровне приложения, всё равно
// будет отклонено хранилищем и вернётся как ErrSlotConflict.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"id",
			"user_id",
			"username",
			"room_id",
			"room_name",
			"start_time",
			"end_time",
			"duration_minutes",
			"status",
			"created_at",
			"updated_at",
		).
		Values(
			booking.ID,
			booking.UserID,
			booking.Username,
			booking.RoomID,
			booking.RoomName,
			booking.Start,
			booking.End,
			booking.DurationMinutes,
			booking.Status,
			booking.CreatedAt,
			booking.CreatedAt,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)
	if err != nil {
		if isSlotConflict(err) {
			return nil, fmt.Errorf("%w: Create - room=%s: %v", ErrSlotConflict, booking.RoomID, err)
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// LockRoom берёт транзакционную advisory-блокировку комнаты
// Блокировка сериализует проверку и запись бронирований одной комнаты между
// всеми экземплярами сервиса и снимается автоматически при commit/rollback
func (r *Repository) LockRoom(ctx context.Context, roomID domain.RoomID) error {
	if !dbmetrics.IsInTransaction(ctx) {
		return fmt.Errorf("%w: LockRoom - advisory lock requires a transaction", ErrTransaction)
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if _, err := executor.ExecContext(ctx, "SELECT pg_advisory_xact_lock(hashtext($1))", roomID); err != nil {
		if isSerializationConflict(err) {
			return fmt.Errorf("%w: LockRoom - room=%s: %w", ErrSlotConflict, roomID, err)
		}
		return fmt.Errorf("%w: LockRoom - room=%s: %v", ErrExecQuery, roomID, err)
	}
	return nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id domain.BookingID) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// DayBookings возвращает бронирования комнаты, начинающиеся в [dayStart, dayEnd),
// которые занимают слот (active, completed). Сортировка по start_time, затем по id
func (r *Repository) DayBookings(ctx context.Context, roomID domain.RoomID, dayStart, dayEnd time.Time) ([]*domain.Booking, error) {
	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"room_id": roomID}).
		Where(squirrel.Eq{"status": holdingStatuses()}).
		Where(squirrel.GtOrEq{"start_time": dayStart}).
		Where(squirrel.Lt{"start_time": dayEnd}).
		OrderBy("start_time ASC", "id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: DayBookings - build select query: %v", ErrBuildQuery, err)
	}

	return r.query(ctx, "DayBookings", query, args)
}

// OverlappingBookings возвращает бронирования комнаты, пересекающиеся с [start, end)
// Касание концами пересечением не считается
func (r *Repository) OverlappingBookings(ctx context.Context, roomID domain.RoomID, start, end time.Time) ([]*domain.Booking, error) {
	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"room_id": roomID}).
		Where(squirrel.Eq{"status": holdingStatuses()}).
		Where(squirrel.Lt{"start_time": end}).
		Where(squirrel.Gt{"end_time": start}).
		OrderBy("start_time ASC", "id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: OverlappingBookings - build select query: %v", ErrBuildQuery, err)
	}

	return r.query(ctx, "OverlappingBookings", query, args)
}

// GetByUserID получает список бронирований пользователя (сначала новые)
// Опционально фильтрует по статусу
func (r *Repository) GetByUserID(ctx context.Context, userID domain.UserID, status *domain.BookingStatus) ([]*domain.Booking, error) {
	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("start_time DESC", "id ASC")

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - build select query: %v", ErrBuildQuery, err)
	}

	return r.query(ctx, "GetByUserID", query, args)
}

// List получает бронирования для административной панели
func (r *Repository) List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	selectBuilder := psqlbuilder.Select(columns...).From(table)

	if filter.RoomID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"room_id": *filter.RoomID})
	}
	if filter.UserID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"user_id": *filter.UserID})
	}
	if filter.From != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"start_time": *filter.From})
	}
	if filter.To != nil {
		selectBuilder = selectBuilder.Where(squirrel.Lt{"start_time": *filter.To})
	}
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}

	query, args, err := selectBuilder.OrderBy("start_time DESC", "id ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	return r.query(ctx, "List", query, args)
}

// Cancel переводит активное бронирование в статус cancelled
// Возвращает ErrCannotCancel, если бронирование отсутствует или уже не активно
func (r *Repository) Cancel(ctx context.Context, id domain.BookingID, cancelledAt time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("status", domain.StatusCancelled).
		Set("cancelled_at", cancelledAt).
		Set("updated_at", cancelledAt).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": domain.StatusActive}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Cancel - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrCannotCancel
	}

	return nil
}

// CompleteEnded переводит активные бронирования, закончившиеся к now, в статус completed
// Возвращает количество обновлённых бронирований
func (r *Repository) CompleteEnded(ctx context.Context, now time.Time) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("status", domain.StatusCompleted).
		Set("updated_at", now).
		Where(squirrel.Eq{"status": domain.StatusActive}).
		Where(squirrel.LtOrEq{"end_time": now}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CompleteEnded - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: CompleteEnded - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: CompleteEnded - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected, nil
}

// Delete удаляет бронирование (физическое удаление, только для администратора)
func (r *Repository) Delete(ctx context.Context, id domain.BookingID) error {
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
		return ErrBookingNotFound
	}

	return nil
}

func (r *Repository) query(ctx context.Context, op string, query string, args []interface{}) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		if isSerializationConflict(err) {
			return nil, fmt.Errorf("%w: %s - read conflict: %w", ErrSlotConflict, op, err)
		}
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	bookings, err := scanBookings(rows)
	if err != nil && isSerializationConflict(err) {
		return nil, fmt.Errorf("%w: %s - read conflict: %w", ErrSlotConflict, op, err)
	}
	return bookings, err
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var (
		booking              domain.Booking
		cancelledAt          sql.NullTime
		createdAt, updatedAt sql.NullTime
	)

	err := row.Scan(
		&booking.ID,
		&booking.UserID,
		&booking.Username,
		&booking.RoomID,
		&booking.RoomName,
		&booking.Start,
		&booking.End,
		&booking.DurationMinutes,
		&booking.Status,
		&cancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if cancelledAt.Valid {
		t := cancelledAt.Time
		booking.CancelledAt = &t
	}
	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %w", ErrScanRow, err)
	}

	return bookings, nil
}

func holdingStatuses() []string {
	statuses := make([]string, len(domain.HoldingStatuses))
	for i, s := range domain.HoldingStatuses {
		statuses[i] = string(s)
	}
	return statuses
}

// isSerializationConflict конфликт сериализации или deadlock, на чтении тоже
func isSerializationConflict(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return pqErr.Code == pqSerializationFailure || pqErr.Code == pqDeadlockDetected
}

func isSlotConflict(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	switch pqErr.Code {
	case pqExclusionViolation, pqSerializationFailure, pqDeadlockDetected:
		return true
	default:
		return false
	}
}
