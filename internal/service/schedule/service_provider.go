package schedule

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/lalbertoreis/mikro-kontrola-app-blueprint-67-sub001/internal/domain"
	serviceRepo "github.com/lalbertoreis/mikro-kontrola-app-blueprint-67-sub001/internal/infra/storage/service"
	"github.com/lalbertoreis/mikro-kontrola-app-blueprint-67-sub001/pkg/ttlcache"
)

// ServiceInfoProvider отдает параметры услуги с кэшированием.
// Отсутствующая или недоступная услуга деградирует до значений по умолчанию:
// расчет слотов продолжается, а не падает из-за неполных справочных данных.
type ServiceInfoProvider struct {
	repo   ServiceRepository
	cache  *ttlcache.Cache[*domain.ServiceInfo]
	logger Logger
}

// NewServiceInfoProvider создает новый провайдер параметров услуг
func NewServiceInfoProvider(repo ServiceRepository, cache *ttlcache.Cache[*domain.ServiceInfo], logger Logger) *ServiceInfoProvider {
	return &ServiceInfoProvider{
		repo:   repo,
		cache:  cache,
		logger: logger,
	}
}

// GetServiceInfo возвращает параметры услуги с подставленными дефолтами.
// Никогда не возвращает nil.
func (p *ServiceInfoProvider) GetServiceInfo(ctx context.Context, tenantID, serviceID uuid.UUID) *domain.ServiceInfo {
	key := serviceCacheKey(tenantID, serviceID)

	info, err := p.cache.GetOrFetch(key, domain.ServiceCacheTTL, func() (*domain.ServiceInfo, error) {
		info, err := p.repo.GetByID(ctx, tenantID, serviceID)
		if err != nil {
			if errors.Is(err, serviceRepo.ErrServiceNotFound) {
				// Отсутствие услуги - устойчивый факт, кэшируем дефолты
				p.logger.Warn("GetServiceInfo: service id=%s not found, using defaults", serviceID)
				return domain.DefaultServiceInfo(serviceID), nil
			}
			return nil, err
		}
		info.ApplyDefaults()
		return info, nil
	})

	if err != nil {
		p.logger.Error("GetServiceInfo: degraded to defaults for service=%s: %v", serviceID, err)
		return domain.DefaultServiceInfo(serviceID)
	}

	return info
}

// Invalidate сбрасывает кэш параметров услуги
func (p *ServiceInfoProvider) Invalidate(tenantID, serviceID uuid.UUID) {
	p.cache.Invalidate(serviceCacheKey(tenantID, serviceID))
}

func serviceCacheKey(tenantID, serviceID uuid.UUID) string {
	return fmt.Sprintf("service:%s:%s", tenantID, serviceID)
}
