package catalog

import (
	"context"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/m04kA/RBeauty-BookingClient/internal/domain"
)

const cacheKeyCatalog = "catalog"

// Service сервис каталога услуг.
// Каталог меняется редко, поэтому кэшируется с TTL - в отличие от
// доступности слотов, которая не кэшируется никогда.
type Service struct {
	client SalonAPIClient
	cache  *gocache.Cache
	logger Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(client SalonAPIClient, ttl time.Duration, logger Logger) *Service {
	return &Service{
		client: client,
		cache:  gocache.New(ttl, 2*ttl),
		logger: logger,
	}
}

// GetCatalog возвращает каталог услуг, сгруппированный по категориям
func (s *Service) GetCatalog(ctx context.Context) (map[domain.ServiceCategory][]domain.Service, error) {
	if cached, ok := s.cache.Get(cacheKeyCatalog); ok {
		catalog := cached.(map[domain.ServiceCategory][]domain.Service)
		s.logger.Info("GetCatalog: served %d categories from cache", len(catalog))
		return catalog, nil
	}

	catalog, err := s.client.GetServices(ctx)
	if err != nil {
		s.logger.Error("GetCatalog: failed to fetch services: %v", err)
		return nil, fmt.Errorf("%w: failed to fetch services: %v", ErrInternal, err)
	}

	s.cache.SetDefault(cacheKeyCatalog, catalog)
	s.logger.Info("GetCatalog: fetched %d categories", len(catalog))
	return catalog, nil
}

// FindService ищет услугу по идентификатору.
// Неактивная услуга не может быть выбрана мастером записи.
func (s *Service) FindService(ctx context.Context, serviceID string) (*domain.Service, error) {
	catalog, err := s.GetCatalog(ctx)
	if err != nil {
		return nil, err
	}

	for _, services := range catalog {
		for i := range services {
			if services[i].ID != serviceID {
				continue
			}
			if !services[i].IsBookable() {
				s.logger.Warn("FindService: service id=%s is inactive", serviceID)
				return nil, ErrServiceInactive
			}
			svc := services[i]
			return &svc, nil
		}
	}

	s.logger.Warn("FindService: service id=%s not found", serviceID)
	return nil, ErrServiceNotFound
}

// Invalidate сбрасывает кэш каталога
func (s *Service) Invalidate() {
	s.cache.Flush()
	s.logger.Info("Invalidate: catalog cache flushed")
}
