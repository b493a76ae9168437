package appointments

import (
	"time"

	"github.com/m04kA/RBeauty-BookingClient/internal/domain"
	"github.com/m04kA/RBeauty-BookingClient/internal/integrations/salonapi"
	"github.com/m04kA/RBeauty-BookingClient/pkg/types"
)

// CreateRequest запрос на создание записи
type CreateRequest struct {
	ServiceID string
	Date      time.Time        // дата записи (без времени)
	StartTime types.TimeString // время начала, из последнего запроса доступности
	Notes     *string
}

// Page страница списка записей
type Page struct {
	Appointments []*domain.Appointment
	TotalPages   int
	CurrentPage  int
	Total        int
	HasNext      bool
	HasPrev      bool
}

func fromAPIPage(p *salonapi.AppointmentPage) *Page {
	return &Page{
		Appointments: p.Appointments,
		TotalPages:   p.TotalPages,
		CurrentPage:  p.CurrentPage,
		Total:        p.Total,
		HasNext:      p.HasNext,
		HasPrev:      p.HasPrev,
	}
}

// AdminFilter фильтр административного списка записей
type AdminFilter struct {
	Page   int
	Limit  int
	Date   *time.Time
	Status *domain.AppointmentStatus
}
