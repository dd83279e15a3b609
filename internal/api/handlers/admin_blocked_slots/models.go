package admin_blocked_slots

import (
	"time"

	"github.com/m04kA/SMC-CoworkingBooking/internal/domain"
	createBlockedSlot "github.com/m04kA/SMC-CoworkingBooking/internal/usecase/create_blocked_slot"
)

// CreateBlockedSlotRequest HTTP request model
type CreateBlockedSlotRequest struct {
	RoomID    string    `json:"roomId"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	Reason    string    `json:"reason,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBlockedSlotRequest) ToUseCaseRequest() *createBlockedSlot.Request {
	return &createBlockedSlot.Request{
		RoomID: domain.RoomID(r.RoomID),
		Start:  r.StartTime,
		End:    r.EndTime,
		Reason: r.Reason,
	}
}
