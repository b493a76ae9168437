package salonapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/RBeauty-BookingClient/internal/domain"
	"github.com/m04kA/RBeauty-BookingClient/pkg/metrics"
	"github.com/m04kA/RBeauty-BookingClient/pkg/types"
)

// Client клиент для работы с API салона
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenProvider
	log        Logger
}

// Option настраивает клиент
type Option func(*Client)

// WithTransport подменяет транспорт HTTP клиента (метрики, тесты)
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) {
		c.httpClient.Transport = rt
	}
}

// NewClient создает новый экземпляр клиента API салона
func NewClient(baseURL string, timeout time.Duration, tokens TokenProvider, log Logger, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		tokens: tokens,
		log:    log,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Login аутентифицирует пользователя и возвращает токен с профилем
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	var result LoginResult
	err := c.do(ctx, http.MethodPost, "/auth/login", "/auth/login",
		&loginRequest{Email: email, Password: password}, false, &result)
	if err != nil {
		return nil, err
	}

	c.log.Info("Login: authenticated user email=%s", email)
	return &result, nil
}

// Me возвращает профиль текущего пользователя
func (c *Client) Me(ctx context.Context) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodGet, "/auth/me", "/auth/me", nil, true, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// GetServices возвращает каталог услуг, сгруппированный по категориям
func (c *Client) GetServices(ctx context.Context) (map[domain.ServiceCategory][]domain.Service, error) {
	var data servicesData
	if err := c.do(ctx, http.MethodGet, "/services", "/services", nil, false, &data); err != nil {
		return nil, err
	}

	result := make(map[domain.ServiceCategory][]domain.Service, len(data.Services))
	for category, services := range data.Services {
		group := make([]domain.Service, 0, len(services))
		for i := range services {
			group = append(group, services[i].toDomain())
		}
		result[domain.ServiceCategory(category)] = group
	}

	c.log.Info("GetServices: fetched %d categories", len(result))
	return result, nil
}

// GetAvailableSlots возвращает упорядоченный список свободных времен начала
// для услуги на дату. Результат никогда не кэшируется - занятость слотов
// меняется между запросами.
func (c *Client) GetAvailableSlots(ctx context.Context, date time.Time, serviceID string) ([]types.TimeString, error) {
	day := date.Format(domain.DateFormat)
	path := fmt.Sprintf("/appointments/available-slots/%s?serviceId=%s", day, url.QueryEscape(serviceID))

	var data availableSlotsData
	err := c.do(ctx, http.MethodGet, "/appointments/available-slots/{date}", path, nil, true, &data)
	if err != nil {
		return nil, err
	}

	slots := make([]types.TimeString, 0, len(data.Slots))
	for _, raw := range data.Slots {
		slot, err := types.NewTimeStringFromString(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: bad slot %q: %v", ErrInvalidResponse, raw, err)
		}
		slots = append(slots, slot)
	}

	c.log.Info("GetAvailableSlots: date=%s, service=%s, slots=%d", day, serviceID, len(slots))
	return slots, nil
}

// CreateAppointment создает запись. Проверка занятости слота выполняется
// сервером; при гонке с конкурентным бронированием возвращается
// ErrSlotNoLongerAvailable и вызывающая сторона должна заново запросить
// доступность.
func (c *Client) CreateAppointment(ctx context.Context, req *CreateAppointmentRequest) (*domain.Appointment, error) {
	var data apiAppointment
	if err := c.do(ctx, http.MethodPost, "/appointments", "/appointments", req, true, &data); err != nil {
		return nil, err
	}

	appt, err := data.toDomain()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	c.log.Info("CreateAppointment: created id=%s, date=%s, start=%s, status=%s",
		appt.ID, req.Date, req.StartTime, appt.Status)
	return appt, nil
}

// GetMyAppointments возвращает страницу записей текущего пользователя
func (c *Client) GetMyAppointments(ctx context.Context, page, limit int) (*AppointmentPage, error) {
	path := fmt.Sprintf("/appointments/my-appointments?page=%d&limit=%d", page, limit)

	var data paginatedAppointments
	err := c.do(ctx, http.MethodGet, "/appointments/my-appointments", path, nil, true, &data)
	if err != nil {
		return nil, err
	}

	result, err := data.toDomain()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	c.log.Info("GetMyAppointments: page=%d/%d, total=%d", result.CurrentPage, result.TotalPages, result.Total)
	return result, nil
}

// CancelAppointment отменяет запись. Окно отмены контролируется сервером,
// клиентская проверка носит рекомендательный характер.
func (c *Client) CancelAppointment(ctx context.Context, appointmentID string) (*domain.Appointment, error) {
	path := fmt.Sprintf("/appointments/%s/cancel", url.PathEscape(appointmentID))

	var data apiAppointment
	err := c.do(ctx, http.MethodPatch, "/appointments/{id}/cancel", path, nil, true, &data)
	if err != nil {
		return nil, err
	}

	appt, err := data.toDomain()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	c.log.Info("CancelAppointment: cancelled id=%s", appointmentID)
	return appt, nil
}

// UpdateAppointmentStatus выполняет административный переход статуса
func (c *Client) UpdateAppointmentStatus(ctx context.Context, appointmentID string, status domain.AppointmentStatus) (*domain.Appointment, error) {
	path := fmt.Sprintf("/admin/appointments/%s/status", url.PathEscape(appointmentID))

	var data apiAppointment
	err := c.do(ctx, http.MethodPatch, "/admin/appointments/{id}/status", path,
		&updateStatusRequest{Status: string(status)}, true, &data)
	if err != nil {
		return nil, err
	}

	appt, err := data.toDomain()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	c.log.Info("UpdateAppointmentStatus: id=%s, status=%s", appointmentID, status)
	return appt, nil
}

// GetAllAppointments возвращает страницу всех записей (административный путь)
func (c *Client) GetAllAppointments(ctx context.Context, filter AdminAppointmentsFilter) (*AppointmentPage, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(filter.Page))
	query.Set("limit", strconv.Itoa(filter.Limit))
	if filter.Date != nil {
		query.Set("date", *filter.Date)
	}
	if filter.Status != nil {
		query.Set("status", string(*filter.Status))
	}

	var data paginatedAppointments
	err := c.do(ctx, http.MethodGet, "/admin/appointments", "/admin/appointments?"+query.Encode(), nil, true, &data)
	if err != nil {
		return nil, err
	}

	result, err := data.toDomain()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	return result, nil
}

// GetDashboardStats возвращает статистику для админ-панели
func (c *Client) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	var stats DashboardStats
	if err := c.do(ctx, http.MethodGet, "/admin/dashboard", "/admin/dashboard", nil, true, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// do выполняет HTTP запрос к API и раскладывает конверт {success, message, data, error}
func (c *Client) do(ctx context.Context, method, endpoint, path string, body interface{}, authorized bool, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%w: failed to marshal request: %v", ErrInternal, err)
		}
		reqBody = bytes.NewReader(raw)
	}

	// Метка endpoint для метрик - всегда шаблон маршрута, не сырой путь
	ctx = metrics.WithEndpoint(ctx, endpoint)

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	if authorized {
		token, err := c.tokens.Token()
		if err != nil {
			return fmt.Errorf("%w: %v", ErrUnauthorized, err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Транспортная ошибка, отличаем от оформленного ответа с ошибкой
		return fmt.Errorf("%w: %s %s: %v", ErrNetwork, method, endpoint, err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("%w: failed to decode response (%s %s, status %d): %v",
			ErrInvalidResponse, method, endpoint, resp.StatusCode, err)
	}

	if resp.StatusCode >= 400 || !env.Success {
		return c.mapError(resp.StatusCode, &env, method, endpoint)
	}

	if out != nil {
		if env.Data == nil {
			return fmt.Errorf("%w: missing data field (%s %s)", ErrInvalidResponse, method, endpoint)
		}
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("%w: failed to decode data (%s %s): %v", ErrInvalidResponse, method, endpoint, err)
		}
	}

	return nil
}

// mapError конвертирует ответ с ошибкой в типизированную ошибку клиента.
// Сначала по машинному коду из конверта, затем по HTTP статусу.
func (c *Client) mapError(status int, env *envelope, method, endpoint string) error {
	switch env.Error {
	case codeSlotNotAvailable:
		return fmt.Errorf("%w: %s", ErrSlotNoLongerAvailable, env.Message)
	case codeCancellationWindow:
		return fmt.Errorf("%w: %s", ErrCancellationWindowExceeded, env.Message)
	case codeInvalidTransition:
		return fmt.Errorf("%w: %s", ErrInvalidTransition, env.Message)
	case codeServiceUnavailable:
		return fmt.Errorf("%w: %s", ErrUnavailableService, env.Message)
	case codeInvalidDate:
		return fmt.Errorf("%w: %s", ErrInvalidDate, env.Message)
	}

	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: %s", ErrUnauthorized, env.Message)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s %s", ErrNotFound, method, endpoint)
	case http.StatusConflict:
		return fmt.Errorf("%w: %s", ErrSlotNoLongerAvailable, env.Message)
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return fmt.Errorf("%w: %s", ErrValidation, env.Message)
	default:
		return fmt.Errorf("%w: unexpected status %d (%s %s): %s",
			ErrInvalidResponse, status, method, endpoint, env.Message)
	}
}
