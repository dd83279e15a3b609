package create_blocked_slot

import (
	"time"

	"github.com/m04kA/SMC-CoworkingBooking/internal/domain"
)

// Request модель запроса на блокировку комнаты
type Request struct {
	RoomID domain.RoomID
	Start  time.Time
	End    time.Time
	Reason string
}
