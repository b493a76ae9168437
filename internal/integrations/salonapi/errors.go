package salonapi

import "errors"

var (
	// ErrUnauthorized возвращается при отсутствии или недействительности учетных данных
	ErrUnauthorized = errors.New("salonapi client: unauthorized")

	// ErrNotFound возвращается, когда запрошенный ресурс не найден
	ErrNotFound = errors.New("salonapi client: resource not found")

	// ErrUnavailableService возвращается, когда услуга неактивна или не существует
	ErrUnavailableService = errors.New("salonapi client: service is unavailable")

	// ErrInvalidDate возвращается, когда дата в прошлом или за пределами горизонта бронирования
	ErrInvalidDate = errors.New("salonapi client: invalid booking date")

	// ErrSlotNoLongerAvailable возвращается, когда выбранный слот занят конкурентным бронированием.
	// Клиент должен заново запросить доступность; автоматический повтор не выполняется.
	ErrSlotNoLongerAvailable = errors.New("salonapi client: slot is no longer available")

	// ErrCancellationWindowExceeded возвращается, когда до начала записи осталось
	// меньше минимального окна отмены
	ErrCancellationWindowExceeded = errors.New("salonapi client: cancellation window exceeded")

	// ErrInvalidTransition возвращается при недопустимом переходе статуса записи
	ErrInvalidTransition = errors.New("salonapi client: invalid status transition")

	// ErrValidation возвращается, когда сервер отклонил запрос как некорректный
	ErrValidation = errors.New("salonapi client: validation failed")

	// ErrNetwork возвращается при транспортной ошибке, в отличие от корректно
	// оформленного ответа с ошибкой
	ErrNetwork = errors.New("salonapi client: network error")

	// ErrInvalidResponse возвращается при некорректном ответе сервера
	ErrInvalidResponse = errors.New("salonapi client: invalid response")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("salonapi client: internal error")
)
