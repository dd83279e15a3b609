package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-CoworkingBooking/internal/domain"
)

// Options сетка расписания комнаты на день
type Options struct {
	DayStartHour    int
	DayEndHour      int
	SlotStepMinutes int
}

// Request модель запроса на получение слотов
type Request struct {
	RoomID domain.RoomID
	Date   time.Time // любой момент нужного дня, день определяется часовым поясом календаря
}

// Response модель ответа со списком слотов
type Response struct {
	RoomID   domain.RoomID
	RoomName string
	Date     time.Time // локальная полночь
	Slots    []domain.AvailableSlot
}
