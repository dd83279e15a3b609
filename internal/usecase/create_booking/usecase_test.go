package create_booking

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/m04kA/SMC-CoworkingBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-CoworkingBooking/internal/infra/storage/booking"
	"github.com/m04kA/SMC-CoworkingBooking/internal/infra/storage/memory"
	"github.com/m04kA/SMC-CoworkingBooking/pkg/keymutex"
	"github.com/m04kA/SMC-CoworkingBooking/pkg/logger"
	"github.com/m04kA/SMC-CoworkingBooking/pkg/timeutil"
	"github.com/m04kA/SMC-CoworkingBooking/pkg/txmanager"
)

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type sequenceIDs struct{ n atomic.Int64 }

func (s *sequenceIDs) NewBookingID() domain.BookingID {
	return domain.BookingID(fmt.Sprintf("b%d", s.n.Add(1)))
}

// countingRepo считает попытки записи и позволяет подменить результат Create
type countingRepo struct {
	BookingRepository

	writes   atomic.Int64
	createFn func(ctx context.Context, b *domain.Booking) (*domain.Booking, error)
	readErr  error

	// первые readConflicts чтений DayBookings возвращают conflictErr
	dayReads      atomic.Int64
	readConflicts int
	conflictErr   error
}

func (r *countingRepo) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	r.writes.Add(1)
	if r.createFn != nil {
		return r.createFn(ctx, b)
	}
	return r.BookingRepository.Create(ctx, b)
}

func (r *countingRepo) DayBookings(ctx context.Context, roomID domain.RoomID, dayStart, dayEnd time.Time) ([]*domain.Booking, error) {
	r.dayReads.Add(1)
	if r.readConflicts > 0 {
		r.readConflicts--
		return nil, r.conflictErr
	}
	if r.readErr != nil {
		return nil, r.readErr
	}
	return r.BookingRepository.DayBookings(ctx, roomID, dayStart, dayEnd)
}

type admissionCounter struct {
	mu     sync.Mutex
	counts map[string]int
}

func (a *admissionCounter) ObserveAdmission(result string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.counts[result]++
}

type fixture struct {
	store    *memory.Store
	repo     *countingRepo
	metrics  *admissionCounter
	uc       *UseCase
	calendar *timeutil.Calendar
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := memory.NewStore()
	repo := &countingRepo{BookingRepository: store.Bookings()}
	calendar := timeutil.NewCalendarIn(time.UTC)
	counter := &admissionCounter{counts: make(map[string]int)}

	uc := NewUseCase(
		repo,
		store.BlockedSlots(),
		memory.NewTxManager(),
		keymutex.New(),
		calendar,
		Options{MaxDurationMinutes: 60, DailyQuotaMinutes: 60},
		counter,
		logger.NewDiscard(),
	)
	uc.timeProvider = fixedTime{now: time.Date(2024, 5, 31, 12, 0, 0, 0, time.UTC)}
	uc.idGenerator = &sequenceIDs{}

	return &fixture{store: store, repo: repo, metrics: counter, uc: uc, calendar: calendar}
}

func at(hour, minute int) time.Time {
	return time.Date(2024, 6, 1, hour, minute, 0, 0, time.UTC)
}

func request(user domain.UserID, room domain.RoomID, start, end time.Time) *Request {
	return &Request{
		UserID:   user,
		Username: "user-" + string(user),
		RoomID:   room,
		RoomName: "Room " + string(room),
		Start:    start,
		End:      end,
	}
}

func (f *fixture) blockRoom(t *testing.T, room domain.RoomID, start, end time.Time) {
	t.Helper()
	_, err := f.store.BlockedSlots().Create(context.Background(), &domain.BlockedSlot{
		ID:     domain.BlockedSlotID("blk-" + string(room)),
		RoomID: room,
		Start:  start,
		End:    end,
		Reason: "Cleaning",
	})
	require.NoError(t, err)
}

func TestExecute_ConferenceRoomScenario(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.uc.Execute(ctx, request("u1", "r1", at(9, 0), at(9, 40)))
	require.NoError(t, err)
	assert.Equal(t, 40, first.DurationMinutes)
	assert.Equal(t, domain.StatusActive, first.Status)
	assert.Equal(t, domain.BookingID("b1"), first.ID)
	assert.Equal(t, time.Date(2024, 5, 31, 12, 0, 0, 0, time.UTC), first.CreatedAt)

	_, err = f.uc.Execute(ctx, request("u1", "r1", at(9, 40), at(10, 10)))
	require.ErrorIs(t, err, ErrQuotaExceeded)
	var quotaErr *QuotaExceededError
	require.True(t, errors.As(err, &quotaErr))
	assert.Equal(t, 20, quotaErr.Remaining)

	third, err := f.uc.Execute(ctx, request("u1", "r1", at(9, 40), at(10, 0)))
	require.NoError(t, err)
	assert.Equal(t, 20, third.DurationMinutes)

	assert.Equal(t, 2, f.metrics.counts[resultAdmitted])
	assert.Equal(t, 1, f.metrics.counts[resultQuotaExceeded])
}

func TestExecute_RejectsBeforeTouchingStorage(t *testing.T) {
	tests := []struct {
		name    string
		req     *Request
		wantErr error
	}{
		{"end before start", request("u1", "r1", at(10, 0), at(9, 0)), ErrInvalidRange},
		{"empty interval", request("u1", "r1", at(10, 0), at(10, 0)), ErrInvalidRange},
		{"rounds to zero minutes", request("u1", "r1", at(10, 0), at(10, 0).Add(20*time.Second)), ErrInvalidRange},
		{"longer than an hour", request("u1", "r1", at(10, 0), at(11, 1)), ErrDurationExceeded},
		{"missing user", request("", "r1", at(10, 0), at(10, 30)), ErrInvalidInput},
		{"missing room", request("u1", "", at(10, 0), at(10, 30)), ErrInvalidInput},
		{"zero start", request("u1", "r1", time.Time{}, at(10, 30)), ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			_, err := f.uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Zero(t, f.repo.writes.Load())
		})
	}
}

func TestExecute_NilRequest(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Execute(context.Background(), nil)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_ExactlyOneHourIsAllowed(t *testing.T) {
	f := newFixture(t)

	resp, err := f.uc.Execute(context.Background(), request("u1", "r1", at(10, 0), at(11, 0)))
	require.NoError(t, err)
	assert.Equal(t, 60, resp.DurationMinutes)
}

func TestExecute_HalfOpenBoundary(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.uc.Execute(ctx, request("u1", "r1", at(10, 0), at(11, 0)))
	require.NoError(t, err)

	_, err = f.uc.Execute(ctx, request("u2", "r1", at(11, 0), at(12, 0)))
	assert.NoError(t, err)

	_, err = f.uc.Execute(ctx, request("u3", "r1", at(9, 0), at(10, 0)))
	assert.NoError(t, err)
}

func TestExecute_OverlapRejected(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.uc.Execute(ctx, request("u1", "r1", at(10, 0), at(11, 0)))
	require.NoError(t, err)

	_, err = f.uc.Execute(ctx, request("u2", "r1", at(10, 59), at(11, 30)))
	assert.ErrorIs(t, err, ErrSlotUnavailable)

	// та же комната, но другой день
	_, err = f.uc.Execute(ctx, request("u2", "r1", at(10, 0).AddDate(0, 0, 1), at(11, 0).AddDate(0, 0, 1)))
	assert.NoError(t, err)
}

func TestExecute_CancelledBookingFreesSlotAndQuota(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	resp, err := f.uc.Execute(ctx, request("u1", "r1", at(10, 0), at(11, 0)))
	require.NoError(t, err)
	require.NoError(t, f.store.Bookings().Cancel(ctx, resp.ID, at(8, 0)))

	_, err = f.uc.Execute(ctx, request("u1", "r1", at(10, 0), at(11, 0)))
	assert.NoError(t, err)
}

func TestExecute_QuotaPrecedesOverlap(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.uc.Execute(ctx, request("u1", "r1", at(9, 0), at(9, 50)))
	require.NoError(t, err)
	_, err = f.uc.Execute(ctx, request("u2", "r1", at(14, 0), at(14, 30)))
	require.NoError(t, err)

	// окно свободно, но квота превышена
	_, err = f.uc.Execute(ctx, request("u1", "r1", at(12, 0), at(12, 20)))
	var quotaErr *QuotaExceededError
	require.ErrorAs(t, err, &quotaErr)
	assert.Equal(t, 10, quotaErr.Remaining)

	// окно занято и квота превышена: побеждает квота
	_, err = f.uc.Execute(ctx, request("u1", "r1", at(14, 0), at(14, 20)))
	assert.ErrorIs(t, err, ErrQuotaExceeded)
	assert.NotErrorIs(t, err, ErrSlotUnavailable)
}

func TestExecute_QuotaIsPerRoom(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.uc.Execute(ctx, request("u1", "r1", at(9, 0), at(10, 0)))
	require.NoError(t, err)

	_, err = f.uc.Execute(ctx, request("u1", "r2", at(9, 0), at(10, 0)))
	assert.NoError(t, err)

	_, err = f.uc.Execute(ctx, request("u1", "r1", at(11, 0), at(11, 15)))
	assert.ErrorIs(t, err, ErrQuotaExceeded)
}

func TestExecute_QuotaUsesConfiguredTimezone(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.uc.calendar = timeutil.NewCalendarIn(time.FixedZone("UTC+3", 3*60*60))

	// 21:00-22:00 UTC 1 июня - это уже 2 июня в UTC+3
	_, err := f.uc.Execute(ctx, request("u1", "r1", at(21, 0), at(22, 0)))
	require.NoError(t, err)

	_, err = f.uc.Execute(ctx, request("u1", "r1", at(9, 0), at(10, 0)))
	assert.NoError(t, err)
}

func TestExecute_BlackoutPrecedence(t *testing.T) {
	f := newFixture(t)
	f.blockRoom(t, "r1", at(13, 0), at(15, 0))

	_, err := f.uc.Execute(context.Background(), request("u1", "r1", at(14, 0), at(14, 30)))
	assert.ErrorIs(t, err, ErrSlotUnavailable)
	assert.Zero(t, f.repo.writes.Load())

	_, err = f.uc.Execute(context.Background(), request("u1", "r1", at(15, 0), at(15, 30)))
	assert.NoError(t, err)
}

func TestExecute_QuotaPrecedesBlackout(t *testing.T) {
	f := newFixture(t)
	f.blockRoom(t, "r1", at(13, 0), at(15, 0))

	_, err := f.uc.Execute(context.Background(), request("u1", "r1", at(9, 0), at(10, 0)))
	require.NoError(t, err)

	_, err = f.uc.Execute(context.Background(), request("u1", "r1", at(13, 0), at(13, 30)))
	assert.ErrorIs(t, err, ErrQuotaExceeded)
}

func TestExecute_ConcurrentSameSlotExactlyOneWins(t *testing.T) {
	f := newFixture(t)
	const attempts = 20

	var admitted, unavailable atomic.Int64
	var g errgroup.Group
	for i := 0; i < attempts; i++ {
		user := domain.UserID(fmt.Sprintf("u%d", i))
		g.Go(func() error {
			_, err := f.uc.Execute(context.Background(), request(user, "r1", at(10, 0), at(10, 30)))
			switch {
			case err == nil:
				admitted.Add(1)
			case errors.Is(err, ErrSlotUnavailable):
				unavailable.Add(1)
			default:
				return err
			}
			return nil
		})
	}

	require.NoError(t, g.Wait())
	assert.Equal(t, int64(1), admitted.Load())
	assert.Equal(t, int64(attempts-1), unavailable.Load())

	got, err := f.store.Bookings().OverlappingBookings(context.Background(), "r1", at(10, 0), at(10, 30))
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestExecute_ConcurrentQuotaNeverExceeded(t *testing.T) {
	f := newFixture(t)

	// четыре непересекающихся окна по 20 минут: квоту 60 минут вмещают только три
	var g errgroup.Group
	var admitted, quota atomic.Int64
	for i := 0; i < 4; i++ {
		start := at(9+i, 0)
		g.Go(func() error {
			_, err := f.uc.Execute(context.Background(), request("u1", "r1", start, start.Add(20*time.Minute)))
			switch {
			case err == nil:
				admitted.Add(1)
			case errors.Is(err, ErrQuotaExceeded):
				quota.Add(1)
			default:
				return err
			}
			return nil
		})
	}

	require.NoError(t, g.Wait())
	assert.Equal(t, int64(3), admitted.Load())
	assert.Equal(t, int64(1), quota.Load())
}

func TestExecute_SeparateInstancesRelyOnStorageExclusion(t *testing.T) {
	store := memory.NewStore()
	calendar := timeutil.NewCalendarIn(time.UTC)
	opts := Options{MaxDurationMinutes: 60, DailyQuotaMinutes: 60}

	// у каждого экземпляра свой keymutex, как у отдельных процессов
	newInstance := func(i int) *UseCase {
		uc := NewUseCase(store.Bookings(), store.BlockedSlots(), memory.NewTxManager(),
			keymutex.New(), calendar, opts, nil, logger.NewDiscard())
		uc.idGenerator = &prefixedIDs{prefix: fmt.Sprintf("i%d-", i)}
		return uc
	}

	instances := []*UseCase{newInstance(0), newInstance(1), newInstance(2)}

	var admitted atomic.Int64
	var g errgroup.Group
	for i, uc := range instances {
		uc := uc
		user := domain.UserID(fmt.Sprintf("u%d", i))
		g.Go(func() error {
			_, err := uc.Execute(context.Background(), request(user, "r1", at(10, 0), at(10, 30)))
			if err == nil {
				admitted.Add(1)
				return nil
			}
			if errors.Is(err, ErrSlotUnavailable) {
				return nil
			}
			return err
		})
	}

	require.NoError(t, g.Wait())
	assert.Equal(t, int64(1), admitted.Load())
}

type prefixedIDs struct {
	prefix string
	n      atomic.Int64
}

func (p *prefixedIDs) NewBookingID() domain.BookingID {
	return domain.BookingID(fmt.Sprintf("%s%d", p.prefix, p.n.Add(1)))
}

func TestExecute_RetriesOnceOnCommitConflict(t *testing.T) {
	f := newFixture(t)

	conflicts := 1
	f.repo.createFn = func(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
		if conflicts > 0 {
			conflicts--
			return nil, fmt.Errorf("%w: exclusion violation", bookingRepo.ErrSlotConflict)
		}
		return f.store.Bookings().Create(ctx, b)
	}

	resp, err := f.uc.Execute(context.Background(), request("u1", "r1", at(10, 0), at(10, 30)))
	require.NoError(t, err)
	assert.Equal(t, domain.BookingID("b2"), resp.ID)
	assert.Equal(t, int64(2), f.repo.writes.Load())
}

func TestExecute_SecondCommitConflictIsSlotUnavailable(t *testing.T) {
	f := newFixture(t)

	f.repo.createFn = func(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
		return nil, fmt.Errorf("%w: exclusion violation", bookingRepo.ErrSlotConflict)
	}

	_, err := f.uc.Execute(context.Background(), request("u1", "r1", at(10, 0), at(10, 30)))
	assert.ErrorIs(t, err, ErrSlotUnavailable)
	assert.Equal(t, int64(2), f.repo.writes.Load())
}

type failingCommitTx struct {
	failures int
}

func (m *failingCommitTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := fn(ctx); err != nil {
		return err
	}
	if m.failures > 0 {
		m.failures--
		return fmt.Errorf("%w: could not serialize access", txmanager.ErrSerializationFailure)
	}
	return nil
}

func TestExecute_SerializationFailureIsRetried(t *testing.T) {
	f := newFixture(t)
	tx := &failingCommitTx{failures: 1}
	f.uc.txManager = tx

	// первая попытка записала бронирование в память, но "транзакция" откатилась,
	// поэтому пишем только во второй попытке
	attempt := 0
	f.repo.createFn = func(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
		attempt++
		if attempt == 1 {
			return b, nil
		}
		return f.store.Bookings().Create(ctx, b)
	}

	_, err := f.uc.Execute(context.Background(), request("u1", "r1", at(10, 0), at(10, 30)))
	require.NoError(t, err)
	assert.Equal(t, 2, attempt)
}

func TestExecute_ReadConflictIsRetried(t *testing.T) {
	f := newFixture(t)
	f.repo.readConflicts = 1
	f.repo.conflictErr = fmt.Errorf("%w: DayBookings - read conflict: %w", bookingRepo.ErrSlotConflict,
		&pq.Error{Code: "40001", Message: "could not serialize access due to read/write dependencies"})

	resp, err := f.uc.Execute(context.Background(), request("u1", "r1", at(10, 0), at(10, 30)))
	require.NoError(t, err)
	assert.Equal(t, domain.StatusActive, resp.Status)
	assert.Equal(t, int64(2), f.repo.dayReads.Load())
	assert.Equal(t, int64(1), f.repo.writes.Load())
}

func TestExecute_RepeatedReadConflictIsSlotUnavailable(t *testing.T) {
	f := newFixture(t)
	// ошибка чтения без sentinel репозитория, но с кодом драйвера в цепочке
	f.repo.readErr = fmt.Errorf("query failed: %w", &pq.Error{Code: "40P01", Message: "deadlock detected"})

	_, err := f.uc.Execute(context.Background(), request("u1", "r1", at(10, 0), at(10, 30)))
	assert.ErrorIs(t, err, ErrSlotUnavailable)
	assert.NotErrorIs(t, err, ErrStorageUnavailable)
	assert.Equal(t, int64(2), f.repo.dayReads.Load())
	assert.Zero(t, f.repo.writes.Load())
}

func TestExecute_StorageUnavailable(t *testing.T) {
	f := newFixture(t)
	f.repo.readErr = errors.New("connection refused")

	_, err := f.uc.Execute(context.Background(), request("u1", "r1", at(10, 0), at(10, 30)))
	assert.ErrorIs(t, err, ErrStorageUnavailable)
	assert.Zero(t, f.repo.writes.Load())
	assert.Equal(t, 1, f.metrics.counts[resultStorageFailure])
}

func TestExecute_WriteFailureIsStorageUnavailable(t *testing.T) {
	f := newFixture(t)
	f.repo.createFn = func(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
		return nil, errors.New("disk full")
	}

	_, err := f.uc.Execute(context.Background(), request("u1", "r1", at(10, 0), at(10, 30)))
	assert.ErrorIs(t, err, ErrStorageUnavailable)
	assert.Equal(t, int64(1), f.repo.writes.Load())
}

func TestExecute_CancelledContextWhileWaitingForRoom(t *testing.T) {
	f := newFixture(t)
	locks := keymutex.New()
	f.uc.roomLocks = locks

	unlock := locks.Lock("r1")
	defer unlock()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.uc.Execute(ctx, request("u1", "r1", at(10, 0), at(10, 30)))
	assert.ErrorIs(t, err, ErrStorageUnavailable)
	assert.Zero(t, f.repo.writes.Load())
}

func TestQuotaExceededError(t *testing.T) {
	var err error = &QuotaExceededError{Remaining: 15}

	assert.ErrorIs(t, err, ErrQuotaExceeded)
	assert.Contains(t, err.Error(), "15 minutes remaining")
}
