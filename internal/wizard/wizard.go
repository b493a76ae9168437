package wizard

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/RBeauty-BookingClient/internal/domain"
	"github.com/m04kA/RBeauty-BookingClient/internal/service/appointments"
	"github.com/m04kA/RBeauty-BookingClient/pkg/types"
)

// Wizard конечный автомат мастера записи:
// service_selection -> date_selection -> time_selection -> confirmation,
// с одношаговой навигацией назад. Все переходы - синхронные локальные
// обновления состояния; точки приостановки - только сетевые вызовы
// (загрузка слотов, создание записи).
//
// Мастер рассчитан на кооперативное использование одним потребителем:
// один запрос в полете, повторная отправка блокируется.
type Wizard struct {
	booker       AppointmentBooker
	availability AvailabilityClient
	policy       domain.BookingPolicy
	timeProvider TimeProvider
	logger       Logger

	step      Step
	service   *domain.Service
	date      time.Time
	startTime types.TimeString
	notes     *string

	// Список слотов привязан к поколению выбора (date, service).
	// Ответ для устаревшего поколения отбрасывается - иначе при быстрой
	// смене выбора можно показать слоты чужой даты или услуги.
	slots       []types.TimeString
	slotsLoaded bool
	fetchGen    uint64
	slotsGen    uint64

	submitting bool
}

// New создает мастер в начальном состоянии
func New(booker AppointmentBooker, availability AvailabilityClient, policy domain.BookingPolicy, logger Logger) *Wizard {
	return &Wizard{
		booker:       booker,
		availability: availability,
		policy:       policy,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
		step:         StepServiceSelection,
	}
}

// WithTimeProvider подменяет провайдер времени (для тестирования)
func (w *Wizard) WithTimeProvider(tp TimeProvider) *Wizard {
	w.timeProvider = tp
	return w
}

// Step возвращает текущий шаг мастера
func (w *Wizard) Step() Step {
	return w.step
}

// Draft возвращает текущие выбранные значения
func (w *Wizard) Draft() Draft {
	return Draft{
		Service:   w.service,
		Date:      w.date,
		StartTime: w.startTime,
		Notes:     w.notes,
	}
}

// SelectService выбирает услугу и переводит мастер к выбору даты.
// Выбор другой услуги сбрасывает дату и время: доступность зависит
// от услуги, прежний слот больше ничего не значит.
func (w *Wizard) SelectService(svc *domain.Service) error {
	if svc == nil {
		return fmt.Errorf("%w: service is required", ErrInvalidInput)
	}
	if !svc.IsBookable() {
		w.logger.Warn("SelectService: service id=%s is not bookable", svc.ID)
		return ErrServiceNotBookable
	}

	w.service = svc
	w.clearDate()
	w.step = StepDateSelection

	w.logger.Info("SelectService: service=%s (%s), step=%s", svc.ID, svc.Name, w.step)
	return nil
}

// DateOptions возвращает календарь окна бронирования: каждую дату от завтра
// до конца горизонта, с флагом доступности. Закрытые дни присутствуют
// в списке выключенными.
func (w *Wizard) DateOptions() []DateOption {
	now := w.timeProvider.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	options := make([]DateOption, 0, w.policy.AdvanceBookingDays)
	for i := 1; i <= w.policy.AdvanceBookingDays; i++ {
		date := today.AddDate(0, 0, i)
		opt := DateOption{Date: date, Enabled: true}
		if w.policy.IsClosed(date) {
			opt.Enabled = false
			opt.Reason = DateReasonClosed
		}
		options = append(options, opt)
	}

	return options
}

// SelectDate выбирает дату и переводит мастер к выбору времени.
// Прежний список слотов становится устаревшим до завершения новой загрузки.
func (w *Wizard) SelectDate(date time.Time) error {
	if w.service == nil {
		return ErrNoServiceSelected
	}
	if w.step == StepServiceSelection {
		return fmt.Errorf("%w: step=%s", ErrWrongStep, w.step)
	}

	now := w.timeProvider.Now()
	if !w.policy.WithinHorizon(date, now) {
		w.logger.Warn("SelectDate: date %s is outside the booking window", date.Format(domain.DateFormat))
		return ErrDateOutsideWindow
	}
	if w.policy.IsClosed(date) {
		w.logger.Warn("SelectDate: salon is closed on %s", date.Format(domain.DateFormat))
		return ErrDateClosed
	}

	w.date = time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	w.startTime = ""
	w.invalidateSlots()
	w.step = StepTimeSelection

	w.logger.Info("SelectDate: date=%s, step=%s", w.date.Format(domain.DateFormat), w.step)
	return nil
}

// LoadSlots загружает доступные слоты для текущей пары (date, service).
// Ответ применяется только если выбор не изменился за время запроса;
// устаревший ответ отбрасывается с ErrFetchSuperseded. Пустой список -
// корректный бизнес-результат, а не ошибка.
func (w *Wizard) LoadSlots(ctx context.Context) ([]types.TimeString, error) {
	if w.service == nil {
		return nil, ErrNoServiceSelected
	}
	if w.date.IsZero() {
		return nil, fmt.Errorf("%w: date is not selected", ErrWrongStep)
	}

	gen := w.fetchGen
	date, serviceID := w.date, w.service.ID

	slots, err := w.availability.GetAvailableSlots(ctx, date, serviceID)
	if err != nil {
		w.logger.Error("LoadSlots: fetch failed for date=%s, service=%s: %v",
			date.Format(domain.DateFormat), serviceID, err)
		return nil, err
	}

	if gen != w.fetchGen {
		// Выбор сменился, пока запрос был в полете
		w.logger.Warn("LoadSlots: discarding stale response for date=%s, service=%s",
			date.Format(domain.DateFormat), serviceID)
		return nil, ErrFetchSuperseded
	}

	w.slots = slots
	w.slotsLoaded = true
	w.slotsGen = gen

	w.logger.Info("LoadSlots: %d slots for date=%s, service=%s",
		len(slots), date.Format(domain.DateFormat), serviceID)
	return slots, nil
}

// Slots возвращает последний загруженный список слотов и признак его свежести
func (w *Wizard) Slots() ([]types.TimeString, bool) {
	return w.slots, w.slotsFresh()
}

// SelectTime выбирает время начала из свежего списка слотов и переводит
// мастер к подтверждению. Пока список устарел, переход заблокирован.
func (w *Wizard) SelectTime(startTime types.TimeString) error {
	if w.step != StepTimeSelection {
		return fmt.Errorf("%w: step=%s", ErrWrongStep, w.step)
	}
	if !w.slotsFresh() {
		return ErrSlotsNotLoaded
	}

	offered := false
	for _, slot := range w.slots {
		if slot == startTime {
			offered = true
			break
		}
	}
	if !offered {
		w.logger.Warn("SelectTime: %s is not in the offered slots", startTime)
		return ErrSlotNotOffered
	}

	w.startTime = startTime
	w.step = StepConfirmation

	w.logger.Info("SelectTime: start=%s, step=%s", startTime, w.step)
	return nil
}

// SetNotes устанавливает заметки к записи
func (w *Wizard) SetNotes(notes string) error {
	if len(notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must not exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}
	if notes == "" {
		w.notes = nil
		return nil
	}
	w.notes = &notes
	return nil
}

// Confirm отправляет запись. Успех сбрасывает мастер в начальное состояние
// (готов к повторному использованию) и возвращает созданную запись.
// Неудача оставляет шаг подтверждения и все выбранные значения - состояние
// восстановимо, пользователь может повторить или уйти назад.
func (w *Wizard) Confirm(ctx context.Context) (*domain.Appointment, error) {
	if w.step != StepConfirmation {
		return nil, fmt.Errorf("%w: step=%s", ErrWrongStep, w.step)
	}
	if w.submitting {
		return nil, ErrRequestInFlight
	}
	if w.service == nil || w.date.IsZero() || w.startTime.IsZero() {
		return nil, fmt.Errorf("%w: incomplete selection", ErrInvalidInput)
	}

	w.submitting = true
	defer func() { w.submitting = false }()

	req := &appointments.CreateRequest{
		ServiceID: w.service.ID,
		Date:      w.date,
		StartTime: w.startTime,
		Notes:     w.notes,
	}

	appt, err := w.booker.Create(ctx, req)
	if err != nil {
		w.logger.Warn("Confirm: create failed for service=%s, date=%s, start=%s: %v",
			req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime, err)
		return nil, err
	}

	w.logger.Info("Confirm: booked appointment id=%s, start=%s %s",
		appt.ID, req.Date.Format(domain.DateFormat), req.StartTime)

	w.Reset()
	return appt, nil
}

// Back выполняет одношаговую навигацию назад, очищая ровно то состояние,
// которое было введено на покидаемом уровне
func (w *Wizard) Back() error {
	switch w.step {
	case StepConfirmation:
		w.step = StepTimeSelection
		return nil
	case StepTimeSelection:
		w.startTime = ""
		w.step = StepDateSelection
		return nil
	case StepDateSelection:
		w.clearDate()
		w.step = StepServiceSelection
		return nil
	default:
		return fmt.Errorf("%w: already at the initial step", ErrWrongStep)
	}
}

// Reset возвращает мастер в начальное состояние
func (w *Wizard) Reset() {
	w.service = nil
	w.notes = nil
	w.clearDate()
	w.step = StepServiceSelection
}

// clearDate сбрасывает дату, время и делает список слотов устаревшим
func (w *Wizard) clearDate() {
	w.date = time.Time{}
	w.startTime = ""
	w.invalidateSlots()
}

// invalidateSlots помечает текущий список слотов устаревшим: следующий
// ответ применится только для нового поколения выбора
func (w *Wizard) invalidateSlots() {
	w.slots = nil
	w.slotsLoaded = false
	w.fetchGen++
}

// slotsFresh сообщает, соответствует ли загруженный список текущему выбору
func (w *Wizard) slotsFresh() bool {
	return w.slotsLoaded && w.slotsGen == w.fetchGen
}
