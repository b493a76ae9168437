package salonapi

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/m04kA/RBeauty-BookingClient/internal/domain"
	"github.com/m04kA/RBeauty-BookingClient/pkg/types"
)

// envelope стандартный конверт ответа API: {success, message, data?, error?}
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// Машинные коды ошибок в поле error конверта
const (
	codeServiceUnavailable = "SERVICE_UNAVAILABLE"
	codeInvalidDate        = "INVALID_DATE"
	codeSlotNotAvailable   = "SLOT_NOT_AVAILABLE"
	codeCancellationWindow = "CANCELLATION_WINDOW_EXCEEDED"
	codeInvalidTransition  = "INVALID_TRANSITION"
)

// User модель пользователя из API
type User struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
	Role  string `json:"role"`
}

// LoginResult результат аутентификации
type LoginResult struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// apiService модель услуги на проводе
type apiService struct {
	ID          string  `json:"_id"`
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Description *string `json:"description,omitempty"`
	Price       float64 `json:"price"`
	Duration    int     `json:"duration"` // minutes
	IsActive    bool    `json:"isActive"`
}

func (s *apiService) toDomain() domain.Service {
	return domain.Service{
		ID:              s.ID,
		Name:            s.Name,
		Category:        domain.ServiceCategory(s.Category),
		Description:     s.Description,
		Price:           s.Price,
		DurationMinutes: s.Duration,
		IsActive:        s.IsActive,
	}
}

// serviceRef ссылка на услугу в записи: бэкенд возвращает либо ID,
// либо развернутый объект услуги
type serviceRef struct {
	ID      string
	Service *apiService
}

func (r *serviceRef) UnmarshalJSON(data []byte) error {
	var id string
	if err := json.Unmarshal(data, &id); err == nil {
		r.ID = id
		return nil
	}

	var svc apiService
	if err := json.Unmarshal(data, &svc); err != nil {
		return fmt.Errorf("service reference is neither id nor object: %w", err)
	}
	r.ID = svc.ID
	r.Service = &svc
	return nil
}

// apiAppointment модель записи на проводе
type apiAppointment struct {
	ID        string     `json:"_id"`
	Client    string     `json:"client"`
	Service   serviceRef `json:"service"`
	Date      string     `json:"date"`      // YYYY-MM-DD
	StartTime string     `json:"startTime"` // HH:MM
	EndTime   string     `json:"endTime"`   // HH:MM
	Status    string     `json:"status"`
	Notes     *string    `json:"notes,omitempty"`
	Price     float64    `json:"price"`
	CreatedBy string     `json:"createdBy"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

func (a *apiAppointment) toDomain() (*domain.Appointment, error) {
	date, err := time.ParseInLocation(domain.DateFormat, a.Date, time.Local)
	if err != nil {
		return nil, fmt.Errorf("invalid appointment date %q: %w", a.Date, err)
	}

	startTime, err := types.NewTimeStringFromString(a.StartTime)
	if err != nil {
		return nil, fmt.Errorf("invalid startTime: %w", err)
	}

	endTime, err := types.NewTimeStringFromString(a.EndTime)
	if err != nil {
		return nil, fmt.Errorf("invalid endTime: %w", err)
	}

	status, err := domain.ParseAppointmentStatus(a.Status)
	if err != nil {
		return nil, err
	}

	appt := &domain.Appointment{
		ID:        a.ID,
		ClientID:  a.Client,
		ServiceID: a.Service.ID,
		Date:      date,
		StartTime: startTime,
		EndTime:   endTime,
		Status:    status,
		Notes:     a.Notes,
		Price:     a.Price,
		CreatedBy: a.CreatedBy,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}

	// Снапшот услуги, если бэкенд вернул развернутый объект
	if a.Service.Service != nil {
		appt.ServiceName = a.Service.Service.Name
		appt.DurationMinutes = a.Service.Service.Duration
	}

	return appt, nil
}

// CreateAppointmentRequest запрос на создание записи
type CreateAppointmentRequest struct {
	ServiceID string  `json:"serviceId"`
	Date      string  `json:"date"`      // YYYY-MM-DD
	StartTime string  `json:"startTime"` // HH:MM
	Notes     *string `json:"notes,omitempty"`
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

// paginatedAppointments конверт пагинации:
// {data[], totalPages, currentPage, total, hasNext, hasPrev}
type paginatedAppointments struct {
	Data        []apiAppointment `json:"data"`
	TotalPages  int              `json:"totalPages"`
	CurrentPage int              `json:"currentPage"`
	Total       int              `json:"total"`
	HasNext     bool             `json:"hasNext"`
	HasPrev     bool             `json:"hasPrev"`
}

// AppointmentPage страница списка записей
type AppointmentPage struct {
	Appointments []*domain.Appointment
	TotalPages   int
	CurrentPage  int
	Total        int
	HasNext      bool
	HasPrev      bool
}

func (p *paginatedAppointments) toDomain() (*AppointmentPage, error) {
	page := &AppointmentPage{
		Appointments: make([]*domain.Appointment, 0, len(p.Data)),
		TotalPages:   p.TotalPages,
		CurrentPage:  p.CurrentPage,
		Total:        p.Total,
		HasNext:      p.HasNext,
		HasPrev:      p.HasPrev,
	}

	for i := range p.Data {
		appt, err := p.Data[i].toDomain()
		if err != nil {
			return nil, err
		}
		page.Appointments = append(page.Appointments, appt)
	}

	return page, nil
}

// availableSlotsData ответ на запрос доступных слотов
type availableSlotsData struct {
	Slots []string `json:"slots"`
}

// servicesData каталог услуг, сгруппированный по категориям
type servicesData struct {
	Services map[string][]apiService `json:"services"`
}

// DashboardStats статистика для админ-панели
type DashboardStats struct {
	TodayAppointments int     `json:"todayAppointments"`
	WeekAppointments  int     `json:"weekAppointments"`
	TotalClients      int     `json:"totalClients"`
	MonthRevenue      float64 `json:"monthRevenue"`
	PendingCount      int     `json:"pendingCount"`
}

// AdminAppointmentsFilter фильтр списка записей для администратора
type AdminAppointmentsFilter struct {
	Page   int
	Limit  int
	Date   *string // YYYY-MM-DD
	Status *domain.AppointmentStatus
}
