package appointments

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("appointments: appointment not found")

	// ErrCannotCancel возвращается, когда статус записи не допускает отмену
	ErrCannotCancel = errors.New("appointments: appointment cannot be cancelled")

	// ErrCancellationWindowExceeded возвращается, когда до начала записи осталось
	// меньше минимального окна отмены. Статус записи не меняется.
	ErrCancellationWindowExceeded = errors.New("appointments: cancellation window exceeded")

	// ErrInvalidTransition возвращается при недопустимом переходе статуса
	ErrInvalidTransition = errors.New("appointments: invalid status transition")

	// ErrSlotNoLongerAvailable возвращается, когда слот занят конкурентным
	// бронированием между запросом доступности и созданием записи
	ErrSlotNoLongerAvailable = errors.New("appointments: slot is no longer available")

	// ErrUnavailableService возвращается, когда услуга неактивна или не существует
	ErrUnavailableService = errors.New("appointments: service is unavailable")

	// ErrInvalidDate возвращается при некорректной дате записи
	ErrInvalidDate = errors.New("appointments: invalid booking date")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("appointments: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("appointments: internal error")
)
