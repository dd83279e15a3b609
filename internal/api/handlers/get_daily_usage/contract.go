package get_daily_usage

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CoworkingBooking/internal/domain"
	getDailyUsage "github.com/m04kA/SMC-CoworkingBooking/internal/usecase/get_daily_usage"
)

type GetDailyUsageUseCase interface {
	Execute(ctx context.Context, req *getDailyUsage.Request) (*domain.DailyUsage, error)
}

// DateParser разбирает дату YYYY-MM-DD в часовом поясе коворкинга
type DateParser interface {
	ParseDate(value string) (time.Time, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
