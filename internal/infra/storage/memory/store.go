// Package memory provides an in-process storage backend with the same
// contracts as the Postgres repositories. It is selected with
// storage.driver = "memory" and used by use-case tests.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/m04kA/SMC-CoworkingBooking/internal/domain"
)

// Store хранит все сущности сервиса в памяти процесса
type Store struct {
	mu sync.RWMutex

	rooms    map[domain.RoomID]domain.Room
	users    map[domain.UserID]domain.User
	bookings map[domain.BookingID]domain.Booking
	blocked  map[domain.BlockedSlotID]domain.BlockedSlot

	now func() time.Time
}

// NewStore создает пустое хранилище
func NewStore() *Store {
	return &Store{
		rooms:    make(map[domain.RoomID]domain.Room),
		users:    make(map[domain.UserID]domain.User),
		bookings: make(map[domain.BookingID]domain.Booking),
		blocked:  make(map[domain.BlockedSlotID]domain.BlockedSlot),
		now:      time.Now,
	}
}

// Rooms возвращает репозиторий комнат
func (s *Store) Rooms() *RoomRepository {
	return &RoomRepository{s: s}
}

// Users возвращает репозиторий пользователей
func (s *Store) Users() *UserRepository {
	return &UserRepository{s: s}
}

// Bookings возвращает репозиторий бронирований
func (s *Store) Bookings() *BookingRepository {
	return &BookingRepository{s: s}
}

// BlockedSlots возвращает репозиторий блокировок
func (s *Store) BlockedSlots() *BlockedSlotRepository {
	return &BlockedSlotRepository{s: s}
}

// TxManager выполняет функции без транзакции: каждая операция Store атомарна,
// а проверка и запись бронирований одной комнаты сериализуются вызывающей стороной
type TxManager struct{}

// NewTxManager создает менеджер транзакций для хранилища в памяти
func NewTxManager() *TxManager {
	return &TxManager{}
}

// Do выполняет fn
func (TxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
