package domain

// Default booking rules
const (
	DefaultMaxDurationMinutes  = 60
	DefaultDailyQuotaMinutes   = 60
	DefaultCancelNoticeMinutes = 120
	DefaultDayStartHour        = 9
	DefaultDayEndHour          = 21
	DefaultSlotStepMinutes     = 15
)

// Business validation constants
const (
	MaxRoomNameLength        = 200
	MaxRoomDescriptionLength = 2000
	MaxBlockReasonLength     = 500
	MinUsernameLength        = 3
	MaxUsernameLength        = 64
	MinPasswordLength        = 8
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// DefaultBlockReason используется, если администратор не указал причину блокировки
const DefaultBlockReason = "Blocked"

// HoldingStatuses статусы бронирований, которые занимают интервал комнаты
// и учитываются в дневной квоте пользователя
var HoldingStatuses = []BookingStatus{
	StatusActive,
	StatusCompleted,
}

// AllStatuses все допустимые статусы бронирования
var AllStatuses = []BookingStatus{
	StatusActive,
	StatusCompleted,
	StatusCancelled,
}
