package appointments

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/RBeauty-BookingClient/internal/domain"
	"github.com/m04kA/RBeauty-BookingClient/internal/integrations/salonapi"
	"github.com/m04kA/RBeauty-BookingClient/pkg/ptr"
	"github.com/m04kA/RBeauty-BookingClient/pkg/types"
)

// --- фейки для тестирования ---

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type fakeClient struct {
	createReq     *salonapi.CreateAppointmentRequest
	createResult  *domain.Appointment
	createErr     error
	listCalls     int
	listResult    *salonapi.AppointmentPage
	listErr       error
	cancelledID   string
	cancelResult  *domain.Appointment
	cancelErr     error
	updatedID     string
	updatedStatus domain.AppointmentStatus
	updateResult  *domain.Appointment
	updateErr     error
	adminFilter   *salonapi.AdminAppointmentsFilter
	adminResult   *salonapi.AppointmentPage
}

func (f *fakeClient) CreateAppointment(ctx context.Context, req *salonapi.CreateAppointmentRequest) (*domain.Appointment, error) {
	f.createReq = req
	if f.createErr != nil {
		return nil, f.createErr
	}
	return f.createResult, nil
}

func (f *fakeClient) GetMyAppointments(ctx context.Context, page, limit int) (*salonapi.AppointmentPage, error) {
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.listResult, nil
}

func (f *fakeClient) CancelAppointment(ctx context.Context, appointmentID string) (*domain.Appointment, error) {
	f.cancelledID = appointmentID
	if f.cancelErr != nil {
		return nil, f.cancelErr
	}
	return f.cancelResult, nil
}

func (f *fakeClient) UpdateAppointmentStatus(ctx context.Context, appointmentID string, status domain.AppointmentStatus) (*domain.Appointment, error) {
	f.updatedID = appointmentID
	f.updatedStatus = status
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return f.updateResult, nil
}

func (f *fakeClient) GetAllAppointments(ctx context.Context, filter salonapi.AdminAppointmentsFilter) (*salonapi.AppointmentPage, error) {
	f.adminFilter = &filter
	return f.adminResult, nil
}

// --- вспомогательные данные ---

var testNow = time.Date(2026, 9, 14, 10, 0, 0, 0, time.UTC)

func testPolicy() domain.BookingPolicy {
	return domain.BookingPolicy{
		InitialStatus:      domain.StatusConfirmed,
		CancellationWindow: 24 * time.Hour,
		AdvanceBookingDays: 30,
		ClosedWeekdays:     []time.Weekday{time.Sunday},
	}
}

func newTestService(client *fakeClient) *Service {
	return NewService(client, testPolicy(), nopLogger{}).WithTimeProvider(fixedTime{testNow})
}

func confirmedAppointment(start time.Time, startTime types.TimeString) *domain.Appointment {
	return &domain.Appointment{
		ID:        "appt-1",
		ServiceID: "svc-manicure",
		Date:      time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location()),
		StartTime: startTime,
		EndTime:   "15:00",
		Status:    domain.StatusConfirmed,
	}
}

func validCreateRequest() *CreateRequest {
	return &CreateRequest{
		ServiceID: "svc-manicure",
		Date:      time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
		StartTime: "09:30",
	}
}

// --- тесты ---

func TestService_Create(t *testing.T) {
	client := &fakeClient{
		createResult: &domain.Appointment{ID: "appt-1", Status: domain.StatusConfirmed},
	}
	svc := newTestService(client)

	appt, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)
	assert.Equal(t, "appt-1", appt.ID)

	// Запрос сериализован в формат API
	require.NotNil(t, client.createReq)
	assert.Equal(t, "svc-manicure", client.createReq.ServiceID)
	assert.Equal(t, "2026-09-15", client.createReq.Date)
	assert.Equal(t, "09:30", client.createReq.StartTime)
}

func TestService_Create_Validation(t *testing.T) {
	svc := newTestService(&fakeClient{})

	tests := []struct {
		name   string
		mutate func(*CreateRequest)
	}{
		{name: "missing service", mutate: func(r *CreateRequest) { r.ServiceID = "" }},
		{name: "missing date", mutate: func(r *CreateRequest) { r.Date = time.Time{} }},
		{name: "missing start time", mutate: func(r *CreateRequest) { r.StartTime = "" }},
		{name: "bad start time format", mutate: func(r *CreateRequest) { r.StartTime = "9:30am" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validCreateRequest()
			tt.mutate(req)
			_, err := svc.Create(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}

	_, err := svc.Create(context.Background(), nil)
	assert.ErrorIs(t, err, ErrInvalidInput)

	long := make([]byte, domain.MaxNotesLength+1)
	for i := range long {
		long[i] = 'a'
	}
	req := validCreateRequest()
	req.Notes = ptr.Ptr(string(long))
	_, err = svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_Create_MapsClientErrors(t *testing.T) {
	tests := []struct {
		name      string
		clientErr error
		wantErr   error
	}{
		{name: "slot taken", clientErr: salonapi.ErrSlotNoLongerAvailable, wantErr: ErrSlotNoLongerAvailable},
		{name: "service unavailable", clientErr: salonapi.ErrUnavailableService, wantErr: ErrUnavailableService},
		{name: "invalid date", clientErr: salonapi.ErrInvalidDate, wantErr: ErrInvalidDate},
		{name: "validation", clientErr: salonapi.ErrValidation, wantErr: ErrInvalidInput},
		{name: "network", clientErr: salonapi.ErrNetwork, wantErr: ErrInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(&fakeClient{createErr: tt.clientErr})
			_, err := svc.Create(context.Background(), validCreateRequest())
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestService_List_CachesPages(t *testing.T) {
	client := &fakeClient{
		listResult: &salonapi.AppointmentPage{
			Appointments: []*domain.Appointment{{ID: "appt-1"}},
			TotalPages:   1,
			CurrentPage:  1,
			Total:        1,
		},
	}
	svc := newTestService(client)

	page, err := svc.List(context.Background(), 1, 10)
	require.NoError(t, err)
	require.Len(t, page.Appointments, 1)
	assert.Equal(t, 1, client.listCalls)

	// Повторный запрос той же страницы обслуживается из кэша
	_, err = svc.List(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, client.listCalls)

	// Другая страница - отдельный ключ
	_, err = svc.List(context.Background(), 2, 10)
	require.NoError(t, err)
	assert.Equal(t, 2, client.listCalls)
}

func TestService_List_SnapshotInvalidatedByCreate(t *testing.T) {
	client := &fakeClient{
		createResult: &domain.Appointment{ID: "appt-2", Status: domain.StatusConfirmed},
		listResult:   &salonapi.AppointmentPage{CurrentPage: 1, TotalPages: 1},
	}
	svc := newTestService(client)

	_, err := svc.List(context.Background(), 1, 10)
	require.NoError(t, err)
	require.Equal(t, 1, client.listCalls)

	// Создание записи сбрасывает снапшоты списка
	_, err = svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	_, err = svc.List(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 2, client.listCalls)
}

func TestService_List_NormalizesPagination(t *testing.T) {
	client := &fakeClient{listResult: &salonapi.AppointmentPage{CurrentPage: 1}}
	svc := newTestService(client)

	_, err := svc.List(context.Background(), 0, 0)
	require.NoError(t, err)

	_, err = svc.List(context.Background(), -1, domain.MaxPageLimit+100)
	require.NoError(t, err)
}

func TestService_Cancel(t *testing.T) {
	// Начало через 25 часов: окно в 24 часа соблюдено
	client := &fakeClient{
		cancelResult: &domain.Appointment{ID: "appt-1", Status: domain.StatusCancelled},
	}
	svc := newTestService(client)

	appt := confirmedAppointment(testNow.AddDate(0, 0, 1), "11:00")

	cancelled, err := svc.Cancel(context.Background(), appt)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, cancelled.Status)
	assert.Equal(t, "appt-1", client.cancelledID)
}

func TestService_Cancel_WindowExceeded(t *testing.T) {
	client := &fakeClient{}
	svc := newTestService(client)

	// Начало сегодня в 12:00, сейчас 10:00 - осталось 2 часа из необходимых 24
	appt := confirmedAppointment(testNow, "12:00")

	_, err := svc.Cancel(context.Background(), appt)
	assert.ErrorIs(t, err, ErrCancellationWindowExceeded)

	// Запрос к серверу не выполнялся, статус не менялся
	assert.Empty(t, client.cancelledID)
	assert.Equal(t, domain.StatusConfirmed, appt.Status)
}

func TestService_Cancel_TerminalStatus(t *testing.T) {
	client := &fakeClient{}
	svc := newTestService(client)

	for _, status := range []domain.AppointmentStatus{domain.StatusCompleted, domain.StatusCancelled, domain.StatusNoShow} {
		appt := confirmedAppointment(testNow.AddDate(0, 0, 2), "11:00")
		appt.Status = status

		_, err := svc.Cancel(context.Background(), appt)
		assert.ErrorIs(t, err, ErrCannotCancel, "status %s", status)
		assert.Empty(t, client.cancelledID)
	}
}

func TestService_Cancel_ServerRejectsWindow(t *testing.T) {
	// Локальная проверка прошла, но сервер - источник истины - отклонил
	client := &fakeClient{cancelErr: salonapi.ErrCancellationWindowExceeded}
	svc := newTestService(client)

	appt := confirmedAppointment(testNow.AddDate(0, 0, 2), "11:00")

	_, err := svc.Cancel(context.Background(), appt)
	assert.ErrorIs(t, err, ErrCancellationWindowExceeded)
}

func TestService_Cancel_NotFound(t *testing.T) {
	client := &fakeClient{cancelErr: salonapi.ErrNotFound}
	svc := newTestService(client)

	appt := confirmedAppointment(testNow.AddDate(0, 0, 2), "11:00")

	_, err := svc.Cancel(context.Background(), appt)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestService_UpdateStatus(t *testing.T) {
	client := &fakeClient{
		updateResult: &domain.Appointment{ID: "appt-1", Status: domain.StatusCompleted},
	}
	svc := newTestService(client)

	appt := confirmedAppointment(testNow.AddDate(0, 0, 1), "11:00")

	updated, err := svc.UpdateStatus(context.Background(), appt, domain.StatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, updated.Status)
	assert.Equal(t, "appt-1", client.updatedID)
	assert.Equal(t, domain.StatusCompleted, client.updatedStatus)
}

func TestService_UpdateStatus_InvalidTransition(t *testing.T) {
	client := &fakeClient{}
	svc := newTestService(client)

	appt := confirmedAppointment(testNow.AddDate(0, 0, 1), "11:00")
	appt.Status = domain.StatusCompleted

	// Назад по жизненному циклу пути нет
	_, err := svc.UpdateStatus(context.Background(), appt, domain.StatusPending)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	// Недопустимый переход отклонен локально, без запроса
	assert.Empty(t, client.updatedID)
}

func TestService_UpdateStatus_UnknownStatus(t *testing.T) {
	svc := newTestService(&fakeClient{})

	appt := confirmedAppointment(testNow.AddDate(0, 0, 1), "11:00")

	_, err := svc.UpdateStatus(context.Background(), appt, domain.AppointmentStatus("archived"))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_AdminList(t *testing.T) {
	client := &fakeClient{
		adminResult: &salonapi.AppointmentPage{CurrentPage: 1, TotalPages: 1},
	}
	svc := newTestService(client)

	date := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	status := ptr.Ptr(domain.StatusPending)

	_, err := svc.AdminList(context.Background(), AdminFilter{Date: &date, Status: status})
	require.NoError(t, err)

	require.NotNil(t, client.adminFilter)
	require.NotNil(t, client.adminFilter.Date)
	assert.Equal(t, "2026-09-15", *client.adminFilter.Date)
	assert.Equal(t, status, client.adminFilter.Status)
	assert.Equal(t, 1, client.adminFilter.Page)
	assert.Equal(t, domain.DefaultPageLimit, client.adminFilter.Limit)
}

func TestService_Cancel_MapsUnknownErrors(t *testing.T) {
	client := &fakeClient{cancelErr: errors.New("boom")}
	svc := newTestService(client)

	appt := confirmedAppointment(testNow.AddDate(0, 0, 2), "11:00")

	_, err := svc.Cancel(context.Background(), appt)
	assert.ErrorIs(t, err, ErrInternal)
}
