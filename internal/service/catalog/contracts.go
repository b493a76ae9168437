package catalog

import (
	"context"

	"github.com/m04kA/RBeauty-BookingClient/internal/domain"
)

// SalonAPIClient интерфейс клиента API салона
type SalonAPIClient interface {
	GetServices(ctx context.Context) (map[domain.ServiceCategory][]domain.Service, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
