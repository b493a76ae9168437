package wizard

import (
	"context"
	"time"

	"github.com/m04kA/RBeauty-BookingClient/internal/domain"
	"github.com/m04kA/RBeauty-BookingClient/internal/service/appointments"
	"github.com/m04kA/RBeauty-BookingClient/pkg/types"
)

// AvailabilityClient интерфейс для получения доступных слотов.
// Результат авторитетен только на момент запроса и никогда не кэшируется
// между сменами (date, service).
type AvailabilityClient interface {
	GetAvailableSlots(ctx context.Context, date time.Time, serviceID string) ([]types.TimeString, error)
}

// AppointmentBooker интерфейс создания записи (менеджер жизненного цикла)
type AppointmentBooker interface {
	Create(ctx context.Context, req *appointments.CreateRequest) (*domain.Appointment, error)
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
