package booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrSlotConflict возвращается, когда хранилище отклонило запись из-за пересечения
	// с другим бронированием комнаты (exclusion constraint), а также при конфликте
	// сериализации или deadlock на записи, чтении или взятии блокировки комнаты
	ErrSlotConflict = errors.New("booking.repository: slot conflict")

	// ErrCannotCancel возвращается, когда бронирование уже не активно
	ErrCannotCancel = errors.New("booking.repository: booking cannot be cancelled")

	// ErrTransaction возвращается при ошибках работы с транзакцией
	ErrTransaction = errors.New("booking.repository: transaction error")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")
)
