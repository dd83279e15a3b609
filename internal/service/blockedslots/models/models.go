package models

import (
	"time"

	"github.com/m04kA/SMC-CoworkingBooking/internal/domain"
)

// BlockedSlotResponse ответ с данными блокировки
type BlockedSlotResponse struct {
	ID        string    `json:"id"`
	RoomID    string    `json:"roomId"`
	RoomName  string    `json:"roomName"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	Reason    string    `json:"reason"`
	CreatedAt time.Time `json:"createdAt"`
}

// BlockedSlotListResponse ответ со списком блокировок
type BlockedSlotListResponse struct {
	BlockedSlots []BlockedSlotResponse `json:"blockedSlots"`
}

// FromDomainBlockedSlot конвертирует domain модель в DTO
func FromDomainBlockedSlot(b *domain.BlockedSlot) *BlockedSlotResponse {
	if b == nil {
		return nil
	}

	return &BlockedSlotResponse{
		ID:        b.ID.String(),
		RoomID:    b.RoomID.String(),
		RoomName:  b.RoomName,
		StartTime: b.Start,
		EndTime:   b.End,
		Reason:    b.Reason,
		CreatedAt: b.CreatedAt,
	}
}

// FromDomainBlockedSlotList конвертирует список domain моделей в DTO
func FromDomainBlockedSlotList(slots []*domain.BlockedSlot) *BlockedSlotListResponse {
	resp := &BlockedSlotListResponse{
		BlockedSlots: make([]BlockedSlotResponse, 0, len(slots)),
	}

	for _, slot := range slots {
		if s := FromDomainBlockedSlot(slot); s != nil {
			resp.BlockedSlots = append(resp.BlockedSlots, *s)
		}
	}

	return resp
}
