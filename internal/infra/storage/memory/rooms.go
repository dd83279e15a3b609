package memory

import (
	"context"
	"sort"

	"github.com/m04kA/SMC-CoworkingBooking/internal/domain"
	roomRepo "github.com/m04kA/SMC-CoworkingBooking/internal/infra/storage/room"
)

// RoomRepository комнаты в памяти
type RoomRepository struct {
	s *Store
}

func (r *RoomRepository) Create(_ context.Context, room *domain.Room) (*domain.Room, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	now := r.s.now()
	room.CreatedAt = now
	room.UpdatedAt = now
	r.s.rooms[room.ID] = *room

	return room, nil
}

func (r *RoomRepository) GetByID(_ context.Context, id domain.RoomID) (*domain.Room, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	room, ok := r.s.rooms[id]
	if !ok {
		return nil, roomRepo.ErrRoomNotFound
	}
	return &room, nil
}

func (r *RoomRepository) List(_ context.Context) ([]*domain.Room, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	rooms := make([]*domain.Room, 0, len(r.s.rooms))
	for _, room := range r.s.rooms {
		room := room
		rooms = append(rooms, &room)
	}
	sort.Slice(rooms, func(i, j int) bool {
		if rooms[i].Name != rooms[j].Name {
			return rooms[i].Name < rooms[j].Name
		}
		return rooms[i].ID < rooms[j].ID
	})

	return rooms, nil
}

func (r *RoomRepository) Update(_ context.Context, room *domain.Room) (*domain.Room, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	existing, ok := r.s.rooms[room.ID]
	if !ok {
		return nil, roomRepo.ErrRoomNotFound
	}

	room.CreatedAt = existing.CreatedAt
	room.UpdatedAt = r.s.now()
	r.s.rooms[room.ID] = *room

	return room, nil
}

func (r *RoomRepository) Delete(_ context.Context, id domain.RoomID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.rooms[id]; !ok {
		return roomRepo.ErrRoomNotFound
	}
	delete(r.s.rooms, id)

	return nil
}
