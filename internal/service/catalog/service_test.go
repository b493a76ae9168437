package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/RBeauty-BookingClient/internal/domain"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fakeClient struct {
	catalog map[domain.ServiceCategory][]domain.Service
	err     error
	calls   int
}

func (f *fakeClient) GetServices(ctx context.Context) (map[domain.ServiceCategory][]domain.Service, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.catalog, nil
}

func testCatalog() map[domain.ServiceCategory][]domain.Service {
	return map[domain.ServiceCategory][]domain.Service{
		domain.CategoryManicure: {
			{ID: "svc-1", Name: "Classic Manicure", Category: domain.CategoryManicure, Price: 30, DurationMinutes: 30, IsActive: true},
			{ID: "svc-2", Name: "Gel Manicure", Category: domain.CategoryManicure, Price: 45, DurationMinutes: 60, IsActive: false},
		},
		domain.CategoryFacial: {
			{ID: "svc-3", Name: "Deep Cleansing", Category: domain.CategoryFacial, Price: 60, DurationMinutes: 45, IsActive: true},
		},
	}
}

func TestService_GetCatalog_Caches(t *testing.T) {
	client := &fakeClient{catalog: testCatalog()}
	svc := NewService(client, 5*time.Minute, nopLogger{})

	catalog, err := svc.GetCatalog(context.Background())
	require.NoError(t, err)
	assert.Len(t, catalog, 2)
	assert.Equal(t, 1, client.calls)

	// Повторный вызов обслуживается из кэша
	_, err = svc.GetCatalog(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, client.calls)

	// Сброс кэша приводит к новому запросу
	svc.Invalidate()
	_, err = svc.GetCatalog(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, client.calls)
}

func TestService_GetCatalog_ClientError(t *testing.T) {
	client := &fakeClient{err: errors.New("network down")}
	svc := NewService(client, 5*time.Minute, nopLogger{})

	_, err := svc.GetCatalog(context.Background())
	assert.ErrorIs(t, err, ErrInternal)

	// Ошибка не кэшируется
	_, _ = svc.GetCatalog(context.Background())
	assert.Equal(t, 2, client.calls)
}

func TestService_FindService(t *testing.T) {
	client := &fakeClient{catalog: testCatalog()}
	svc := NewService(client, 5*time.Minute, nopLogger{})

	found, err := svc.FindService(context.Background(), "svc-1")
	require.NoError(t, err)
	assert.Equal(t, "Classic Manicure", found.Name)

	// Неактивная услуга не может быть выбрана
	_, err = svc.FindService(context.Background(), "svc-2")
	assert.ErrorIs(t, err, ErrServiceInactive)

	_, err = svc.FindService(context.Background(), "svc-missing")
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestService_FindService_ReturnsCopy(t *testing.T) {
	client := &fakeClient{catalog: testCatalog()}
	svc := NewService(client, 5*time.Minute, nopLogger{})

	found, err := svc.FindService(context.Background(), "svc-1")
	require.NoError(t, err)

	// Мутация результата не затрагивает кэшированный каталог
	found.Price = 999

	again, err := svc.FindService(context.Background(), "svc-1")
	require.NoError(t, err)
	assert.Equal(t, 30.0, again.Price)
}
