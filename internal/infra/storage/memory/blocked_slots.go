package memory

import (
	"context"
	"sort"
	"time"

	"github.com/m04kA/SMC-CoworkingBooking/internal/domain"
	blockedSlotRepo "github.com/m04kA/SMC-CoworkingBooking/internal/infra/storage/blockedslot"
	"github.com/m04kA/SMC-CoworkingBooking/pkg/timeutil"
)

// BlockedSlotRepository блокировки комнат в памяти
type BlockedSlotRepository struct {
	s *Store
}

func (r *BlockedSlotRepository) Create(_ context.Context, slot *domain.BlockedSlot) (*domain.BlockedSlot, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.blocked[slot.ID] = *slot
	return slot, nil
}

func (r *BlockedSlotRepository) OverlappingBlocks(_ context.Context, roomID domain.RoomID, start, end time.Time) ([]*domain.BlockedSlot, error) {
	return r.filter(func(b domain.BlockedSlot) bool {
		return b.RoomID == roomID && timeutil.Overlaps(b.Start, b.End, start, end)
	}), nil
}

func (r *BlockedSlotRepository) List(_ context.Context, roomID *domain.RoomID) ([]*domain.BlockedSlot, error) {
	return r.filter(func(b domain.BlockedSlot) bool {
		return roomID == nil || b.RoomID == *roomID
	}), nil
}

func (r *BlockedSlotRepository) Delete(_ context.Context, id domain.BlockedSlotID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.blocked[id]; !ok {
		return blockedSlotRepo.ErrBlockedSlotNotFound
	}
	delete(r.s.blocked, id)

	return nil
}

func (r *BlockedSlotRepository) filter(keep func(b domain.BlockedSlot) bool) []*domain.BlockedSlot {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	result := make([]*domain.BlockedSlot, 0)
	for _, slot := range r.s.blocked {
		if keep(slot) {
			slot := slot
			result = append(result, &slot)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].Start.Equal(result[j].Start) {
			return result[i].Start.Before(result[j].Start)
		}
		return result[i].ID < result[j].ID
	})
	return result
}
