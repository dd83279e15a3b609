package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-CoworkingBooking/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-CoworkingBooking/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date     string          `json:"date"`
	RoomID   string          `json:"roomId"`
	RoomName string          `json:"roomName"`
	Slots    []AvailableSlot `json:"slots"`
}

// AvailableSlot модель ячейки расписания
type AvailableSlot struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Label     string `json:"label"` // "09:00"
	Available bool   `json:"available"`
	Blocked   bool   `json:"blocked,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]AvailableSlot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = AvailableSlot{
			StartTime: slot.Start.Format(time.RFC3339),
			EndTime:   slot.End.Format(time.RFC3339),
			Label:     slot.Start.Format(domain.TimeFormat),
			Available: slot.Available,
			Blocked:   slot.Blocked,
		}
	}

	return &AvailableSlotsResponse{
		Date:     resp.Date.Format(domain.DateFormat),
		RoomID:   resp.RoomID.String(),
		RoomName: resp.RoomName,
		Slots:    slots,
	}
}

// ToUseCaseRequest создает запрос use case из параметров запроса
func ToUseCaseRequest(parser DateParser, roomID, dateStr string) (*getAvailableSlots.Request, error) {
	date, err := parser.ParseDate(dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailableSlots.Request{
		RoomID: domain.RoomID(roomID),
		Date:   date,
	}, nil
}
