package appointments

import (
	"context"
	"time"

	"github.com/m04kA/RBeauty-BookingClient/internal/domain"
	"github.com/m04kA/RBeauty-BookingClient/internal/integrations/salonapi"
)

// SalonAPIClient интерфейс клиента API салона
type SalonAPIClient interface {
	CreateAppointment(ctx context.Context, req *salonapi.CreateAppointmentRequest) (*domain.Appointment, error)
	GetMyAppointments(ctx context.Context, page, limit int) (*salonapi.AppointmentPage, error)
	CancelAppointment(ctx context.Context, appointmentID string) (*domain.Appointment, error)
	UpdateAppointmentStatus(ctx context.Context, appointmentID string, status domain.AppointmentStatus) (*domain.Appointment, error)
	GetAllAppointments(ctx context.Context, filter salonapi.AdminAppointmentsFilter) (*salonapi.AppointmentPage, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
