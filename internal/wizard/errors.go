package wizard

import "errors"

var (
	// ErrWrongStep возвращается, когда операция недопустима на текущем шаге
	ErrWrongStep = errors.New("wizard: operation not allowed at current step")

	// ErrNoServiceSelected возвращается, когда шаг требует выбранной услуги
	ErrNoServiceSelected = errors.New("wizard: no service selected")

	// ErrServiceNotBookable возвращается при попытке выбрать неактивную услугу
	ErrServiceNotBookable = errors.New("wizard: service is not bookable")

	// ErrDateOutsideWindow возвращается, когда дата вне окна бронирования
	// (завтра ... сегодня + горизонт)
	ErrDateOutsideWindow = errors.New("wizard: date is outside the booking window")

	// ErrDateClosed возвращается, когда салон закрыт в выбранную дату
	ErrDateClosed = errors.New("wizard: salon is closed on this date")

	// ErrSlotsNotLoaded возвращается, когда переход требует свежего списка слотов.
	// Смена даты или услуги делает предыдущий список устаревшим.
	ErrSlotsNotLoaded = errors.New("wizard: available slots are not loaded for the current selection")

	// ErrSlotNotOffered возвращается, когда выбранное время отсутствует
	// в последнем списке доступных слотов
	ErrSlotNotOffered = errors.New("wizard: start time is not in the available slots")

	// ErrFetchSuperseded возвращается, когда ответ на запрос доступности пришел
	// после смены выбора (date, service) и был отброшен
	ErrFetchSuperseded = errors.New("wizard: availability response superseded by a newer selection")

	// ErrRequestInFlight возвращается при попытке повторной отправки,
	// пока предыдущий запрос не завершен
	ErrRequestInFlight = errors.New("wizard: request already in flight")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("wizard: invalid input data")
)
