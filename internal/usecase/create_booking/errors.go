package create_booking

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInvalidRange возвращается, когда конец не позже начала или длительность округляется до нуля
	ErrInvalidRange = errors.New("create_booking: invalid time range")

	// ErrDurationExceeded возвращается, когда длительность больше допустимой
	ErrDurationExceeded = errors.New("create_booking: booking duration exceeded")

	// ErrQuotaExceeded возвращается, когда бронирование превысит дневную квоту пользователя в комнате
	// Конкретная ошибка имеет тип *QuotaExceededError и содержит остаток квоты
	ErrQuotaExceeded = errors.New("create_booking: daily quota exceeded")

	// ErrSlotUnavailable возвращается, когда интервал пересекается с бронированием или блокировкой
	ErrSlotUnavailable = errors.New("create_booking: slot is not available")

	// ErrStorageUnavailable возвращается, когда хранилище не смогло выполнить чтение или запись
	ErrStorageUnavailable = errors.New("create_booking: storage unavailable")
)

// QuotaExceededError сообщает, сколько минут квоты осталось у пользователя на этот день
type QuotaExceededError struct {
	Remaining int
}

func (e *QuotaExceededError) Error() string {
	return fmt.Sprintf("%s: %d minutes remaining", ErrQuotaExceeded, e.Remaining)
}

// Is позволяет проверять ошибку через errors.Is(err, ErrQuotaExceeded)
func (e *QuotaExceededError) Is(target error) bool {
	return target == ErrQuotaExceeded
}

// errCommitConflict внутренний признак конфликта с параллельной транзакцией
// (на записи, чтении или commit), после которого допуск повторяется
var errCommitConflict = errors.New("create_booking: commit conflict")
