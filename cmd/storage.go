package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/m04kA/SMC-CoworkingBooking/internal/config"
	"github.com/m04kA/SMC-CoworkingBooking/internal/domain"
	blockedSlotRepo "github.com/m04kA/SMC-CoworkingBooking/internal/infra/storage/blockedslot"
	bookingRepo "github.com/m04kA/SMC-CoworkingBooking/internal/infra/storage/booking"
	"github.com/m04kA/SMC-CoworkingBooking/internal/infra/storage/memory"
	roomRepo "github.com/m04kA/SMC-CoworkingBooking/internal/infra/storage/room"
	userRepo "github.com/m04kA/SMC-CoworkingBooking/internal/infra/storage/user"
	"github.com/m04kA/SMC-CoworkingBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-CoworkingBooking/pkg/logger"
	"github.com/m04kA/SMC-CoworkingBooking/pkg/metrics"
	"github.com/m04kA/SMC-CoworkingBooking/pkg/txmanager"
)

type bookingStore interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	LockRoom(ctx context.Context, roomID domain.RoomID) error
	GetByID(ctx context.Context, id domain.BookingID) (*domain.Booking, error)
	DayBookings(ctx context.Context, roomID domain.RoomID, dayStart, dayEnd time.Time) ([]*domain.Booking, error)
	OverlappingBookings(ctx context.Context, roomID domain.RoomID, start, end time.Time) ([]*domain.Booking, error)
	GetByUserID(ctx context.Context, userID domain.UserID, status *domain.BookingStatus) ([]*domain.Booking, error)
	List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
	Cancel(ctx context.Context, id domain.BookingID, cancelledAt time.Time) error
	CompleteEnded(ctx context.Context, now time.Time) (int64, error)
	Delete(ctx context.Context, id domain.BookingID) error
}

type blockedSlotStore interface {
	Create(ctx context.Context, slot *domain.BlockedSlot) (*domain.BlockedSlot, error)
	OverlappingBlocks(ctx context.Context, roomID domain.RoomID, start, end time.Time) ([]*domain.BlockedSlot, error)
	List(ctx context.Context, roomID *domain.RoomID) ([]*domain.BlockedSlot, error)
	Delete(ctx context.Context, id domain.BlockedSlotID) error
}

type roomStore interface {
	Create(ctx context.Context, room *domain.Room) (*domain.Room, error)
	GetByID(ctx context.Context, id domain.RoomID) (*domain.Room, error)
	List(ctx context.Context) ([]*domain.Room, error)
	Update(ctx context.Context, room *domain.Room) (*domain.Room, error)
	Delete(ctx context.Context, id domain.RoomID) error
}

type userStore interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	GetByID(ctx context.Context, id domain.UserID) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	Delete(ctx context.Context, id domain.UserID) error
}

type transactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// storage набор репозиториев выбранного драйвера
type storage struct {
	bookings     bookingStore
	blockedSlots blockedSlotStore
	rooms        roomStore
	users        userStore
	txManager    transactionManager
	close        func() error
}

// openStorage подключает хранилище согласно storage.driver
// stop останавливает фоновый сбор статистики пула соединений
func openStorage(cfg *config.Config, m *metrics.Metrics, stop <-chan struct{}, log *logger.Logger) (*storage, error) {
	if cfg.Storage.Driver == config.StorageDriverMemory {
		log.Warn("Using in-memory storage, data is lost on restart")
		store := memory.NewStore()
		if cfg.Storage.Seed {
			if err := store.Seed(context.Background()); err != nil {
				return nil, fmt.Errorf("seed memory storage: %w", err)
			}
			log.Info("Memory storage seeded: admin id=%s, client id=%s, password %q",
				memory.SeedAdminID, memory.SeedClientID, memory.SeedPassword)
		}
		return &storage{
			bookings:     store.Bookings(),
			blockedSlots: store.BlockedSlots(),
			rooms:        store.Rooms(),
			users:        store.Users(),
			txManager:    memory.NewTxManager(),
			close:        func() error { return nil },
		}, nil
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// При выключенных метриках обёртка только пробрасывает запросы
	wrappedDB := dbmetrics.WrapWithDefault(db, m, stop)

	return &storage{
		bookings:     bookingRepo.NewRepository(wrappedDB),
		blockedSlots: blockedSlotRepo.NewRepository(wrappedDB),
		rooms:        roomRepo.NewRepository(wrappedDB),
		users:        userRepo.NewRepository(wrappedDB),
		txManager:    txmanager.NewTransactionManager(wrappedDB),
		close:        db.Close,
	}, nil
}
