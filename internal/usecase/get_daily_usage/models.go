package get_daily_usage

import (
	"time"

	"github.com/m04kA/SMC-CoworkingBooking/internal/domain"
)

// Request модель запроса использованной квоты
type Request struct {
	UserID domain.UserID
	RoomID domain.RoomID
	Date   time.Time
}
