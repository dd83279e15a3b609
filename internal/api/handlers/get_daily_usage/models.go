package get_daily_usage

import (
	"github.com/m04kA/SMC-CoworkingBooking/internal/domain"
)

// DailyUsageResponse HTTP response model
type DailyUsageResponse struct {
	UserID           string `json:"userId"`
	RoomID           string `json:"roomId"`
	Date             string `json:"date"`
	UsedMinutes      int    `json:"usedMinutes"`
	QuotaMinutes     int    `json:"quotaMinutes"`
	RemainingMinutes int    `json:"remainingMinutes"`
}

// FromDomainUsage конвертирует результат use case в HTTP response
func FromDomainUsage(u *domain.DailyUsage) *DailyUsageResponse {
	return &DailyUsageResponse{
		UserID:           u.UserID.String(),
		RoomID:           u.RoomID.String(),
		Date:             u.Day.Format(domain.DateFormat),
		UsedMinutes:      u.UsedMinutes,
		QuotaMinutes:     u.QuotaMinutes,
		RemainingMinutes: u.RemainingMinutes,
	}
}
