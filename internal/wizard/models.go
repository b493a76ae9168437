package wizard

import (
	"time"

	"github.com/m04kA/RBeauty-BookingClient/internal/domain"
	"github.com/m04kA/RBeauty-BookingClient/pkg/types"
)

// Step шаг мастера записи
type Step string

const (
	StepServiceSelection Step = "service_selection"
	StepDateSelection    Step = "date_selection"
	StepTimeSelection    Step = "time_selection"
	StepConfirmation     Step = "confirmation"
)

// Причины недоступности даты в календаре
const (
	DateReasonClosed        = "closed"
	DateReasonOutsideWindow = "outside_window"
)

// DateOption дата в календаре мастера. Недоступные даты показываются
// выключенными, а не скрываются - так пользователь видит границу окна.
type DateOption struct {
	Date    time.Time
	Enabled bool
	Reason  string // пусто для доступных дат
}

// Draft текущие выбранные значения мастера (для экрана подтверждения)
type Draft struct {
	Service   *domain.Service
	Date      time.Time
	StartTime types.TimeString
	Notes     *string
}
