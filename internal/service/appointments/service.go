package appointments

import (
	"context"
	"errors"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/m04kA/RBeauty-BookingClient/internal/domain"
	"github.com/m04kA/RBeauty-BookingClient/internal/integrations/salonapi"
)

// TTL кэша страниц списка записей. Снапшоты живут недолго и принудительно
// сбрасываются после каждой мутации (create/cancel/update status).
const listSnapshotTTL = time.Minute

// Service управляет жизненным циклом записей: создание, отмена,
// административные переходы статусов и постраничный список.
// Сервер остается источником истины; все локальные проверки
// (окно отмены, таблица переходов) рекомендательные и выполняются
// до сетевого вызова, чтобы не отправлять заведомо невалидные запросы.
type Service struct {
	client       SalonAPIClient
	policy       domain.BookingPolicy
	listCache    *gocache.Cache
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(client SalonAPIClient, policy domain.BookingPolicy, logger Logger) *Service {
	return &Service{
		client:       client,
		policy:       policy,
		listCache:    gocache.New(listSnapshotTTL, 2*listSnapshotTTL),
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет провайдер времени (для тестирования)
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// Create создает запись. Проверка пересечений делегируется серверу:
// его набор слотов авторитетен на момент отправки. При гонке с конкурентным
// бронированием возвращается ErrSlotNoLongerAvailable; автоматический повтор
// не выполняется - вызывающая сторона обязана заново запросить доступность.
func (s *Service) Create(ctx context.Context, req *CreateRequest) (*domain.Appointment, error) {
	if err := validateCreateRequest(req); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	s.logger.Info("Create: service=%s, date=%s, start=%s",
		req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime)

	apiReq := &salonapi.CreateAppointmentRequest{
		ServiceID: req.ServiceID,
		Date:      req.Date.Format(domain.DateFormat),
		StartTime: req.StartTime.String(),
		Notes:     req.Notes,
	}

	appt, err := s.client.CreateAppointment(ctx, apiReq)
	if err != nil {
		switch {
		case errors.Is(err, salonapi.ErrSlotNoLongerAvailable):
			s.logger.Warn("Create: slot taken by concurrent booking: date=%s, start=%s", apiReq.Date, apiReq.StartTime)
			return nil, fmt.Errorf("%w: %v", ErrSlotNoLongerAvailable, err)
		case errors.Is(err, salonapi.ErrUnavailableService):
			return nil, fmt.Errorf("%w: %v", ErrUnavailableService, err)
		case errors.Is(err, salonapi.ErrInvalidDate):
			return nil, fmt.Errorf("%w: %v", ErrInvalidDate, err)
		case errors.Is(err, salonapi.ErrValidation):
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		default:
			s.logger.Error("Create: client error: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrInternal, err)
		}
	}

	// Статус новой записи задает политика бэкенда; расхождение с настройками
	// означает рассинхронизацию конфигурации клиента
	if appt.Status != s.policy.InitialStatus {
		s.logger.Warn("Create: appointment id=%s created with status %s, policy expects %s",
			appt.ID, appt.Status, s.policy.InitialStatus)
	}

	// Успешное создание меняет и занятость слотов, и список записей -
	// ранее полученные снапшоты становятся недействительными
	s.invalidateSnapshots()

	s.logger.Info("Create: created appointment id=%s, status=%s", appt.ID, appt.Status)
	return appt, nil
}

// List возвращает страницу записей текущего пользователя.
// Страницы кэшируются до первой мутации.
func (s *Service) List(ctx context.Context, page, limit int) (*Page, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = domain.DefaultPageLimit
	}
	if limit > domain.MaxPageLimit {
		limit = domain.MaxPageLimit
	}

	key := fmt.Sprintf("my:%d:%d", page, limit)
	if cached, ok := s.listCache.Get(key); ok {
		return cached.(*Page), nil
	}

	apiPage, err := s.client.GetMyAppointments(ctx, page, limit)
	if err != nil {
		s.logger.Error("List: client error: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	result := fromAPIPage(apiPage)
	s.listCache.SetDefault(key, result)
	return result, nil
}

// Cancel отменяет запись. Разрешено только из активного статуса и только
// пока до начала остается больше окна отмены. Нарушение окна обнаруживается
// локально и не выполняет ни запроса, ни мутации; сервер всё равно
// перепроверяет окно как источник истины. Отмена необратима.
func (s *Service) Cancel(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	if appt == nil || appt.ID == "" {
		return nil, fmt.Errorf("%w: appointment is required", ErrInvalidInput)
	}

	s.logger.Info("Cancel: appointment id=%s, status=%s", appt.ID, appt.Status)

	if !appt.CanBeCancelled() {
		s.logger.Warn("Cancel: appointment id=%s cannot be cancelled, status=%s", appt.ID, appt.Status)
		return nil, ErrCannotCancel
	}

	now := s.timeProvider.Now()
	ok, err := appt.WithinCancellationWindow(now, s.policy.CancellationWindow)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	if !ok {
		s.logger.Warn("Cancel: window exceeded for appointment id=%s, start=%s %s",
			appt.ID, appt.Date.Format(domain.DateFormat), appt.StartTime)
		return nil, ErrCancellationWindowExceeded
	}

	cancelled, err := s.client.CancelAppointment(ctx, appt.ID)
	if err != nil {
		switch {
		case errors.Is(err, salonapi.ErrCancellationWindowExceeded):
			return nil, fmt.Errorf("%w: %v", ErrCancellationWindowExceeded, err)
		case errors.Is(err, salonapi.ErrNotFound):
			return nil, ErrAppointmentNotFound
		default:
			s.logger.Error("Cancel: client error for id=%s: %v", appt.ID, err)
			return nil, fmt.Errorf("%w: %v", ErrInternal, err)
		}
	}

	// Отмена освобождает слот и меняет список - сбрасываем снапшоты
	s.invalidateSnapshots()

	s.logger.Info("Cancel: cancelled appointment id=%s", appt.ID)
	return cancelled, nil
}

// UpdateStatus выполняет административный переход статуса.
// Переходы монотонны: назад по жизненному циклу пути нет, кроме явной
// отмены или no_show из активного статуса. Недопустимый переход
// отклоняется локально, без запроса.
func (s *Service) UpdateStatus(ctx context.Context, appt *domain.Appointment, newStatus domain.AppointmentStatus) (*domain.Appointment, error) {
	if appt == nil || appt.ID == "" {
		return nil, fmt.Errorf("%w: appointment is required", ErrInvalidInput)
	}

	if _, err := domain.ParseAppointmentStatus(string(newStatus)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if !domain.CanTransition(appt.Status, newStatus) {
		s.logger.Warn("UpdateStatus: transition %s -> %s is not permitted for id=%s",
			appt.Status, newStatus, appt.ID)
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, appt.Status, newStatus)
	}

	updated, err := s.client.UpdateAppointmentStatus(ctx, appt.ID, newStatus)
	if err != nil {
		switch {
		case errors.Is(err, salonapi.ErrInvalidTransition):
			return nil, fmt.Errorf("%w: %v", ErrInvalidTransition, err)
		case errors.Is(err, salonapi.ErrNotFound):
			return nil, ErrAppointmentNotFound
		default:
			s.logger.Error("UpdateStatus: client error for id=%s: %v", appt.ID, err)
			return nil, fmt.Errorf("%w: %v", ErrInternal, err)
		}
	}

	s.invalidateSnapshots()

	s.logger.Info("UpdateStatus: appointment id=%s, status %s -> %s", appt.ID, appt.Status, newStatus)
	return updated, nil
}

// AdminList возвращает страницу всех записей с фильтрацией (административный путь)
func (s *Service) AdminList(ctx context.Context, filter AdminFilter) (*Page, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = domain.DefaultPageLimit
	}

	apiFilter := salonapi.AdminAppointmentsFilter{
		Page:   filter.Page,
		Limit:  filter.Limit,
		Status: filter.Status,
	}
	if filter.Date != nil {
		formatted := filter.Date.Format(domain.DateFormat)
		apiFilter.Date = &formatted
	}

	apiPage, err := s.client.GetAllAppointments(ctx, apiFilter)
	if err != nil {
		s.logger.Error("AdminList: client error: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	return fromAPIPage(apiPage), nil
}

// Policy возвращает действующую политику бронирования
func (s *Service) Policy() domain.BookingPolicy {
	return s.policy
}

// invalidateSnapshots сбрасывает все закэшированные страницы списка
func (s *Service) invalidateSnapshots() {
	s.listCache.Flush()
}

// validateCreateRequest валидирует входные данные запроса
func validateCreateRequest(req *CreateRequest) error {
	if req == nil {
		return fmt.Errorf("%w: request is required", ErrInvalidInput)
	}

	if req.ServiceID == "" {
		return fmt.Errorf("%w: serviceID is required", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must not exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}
