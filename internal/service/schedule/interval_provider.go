package schedule

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/lalbertoreis/mikro-kontrola-app-blueprint-67-sub001/internal/domain"
	"github.com/lalbertoreis/mikro-kontrola-app-blueprint-67-sub001/pkg/ttlcache"
)

// SlotIntervalProvider отдает настроенный шаг сетки слотов тенанта.
// При сбое или отсутствии настройки деградирует до шага по умолчанию.
type SlotIntervalProvider struct {
	repo   TenantRepository
	cache  *ttlcache.Cache[int]
	logger Logger
}

// NewSlotIntervalProvider создает новый провайдер шага сетки
func NewSlotIntervalProvider(repo TenantRepository, cache *ttlcache.Cache[int], logger Logger) *SlotIntervalProvider {
	return &SlotIntervalProvider{
		repo:   repo,
		cache:  cache,
		logger: logger,
	}
}

// GetInterval возвращает шаг сетки слотов тенанта в минутах
func (p *SlotIntervalProvider) GetInterval(ctx context.Context, tenantID uuid.UUID) int {
	key := intervalCacheKey(tenantID)

	interval, err := p.cache.GetOrFetch(key, domain.SlotIntervalTTL, func() (int, error) {
		tenant, err := p.repo.GetByID(ctx, tenantID)
		if err != nil {
			return 0, err
		}
		return tenant.EffectiveSlotInterval(), nil
	})

	if err != nil {
		p.logger.Error("GetInterval: degraded to default interval for tenant=%s: %v", tenantID, err)
		return domain.DefaultSlotIntervalMinutes
	}

	return interval
}

// Invalidate сбрасывает кэш шага сетки тенанта.
// Вызывается после изменения настроек, чтобы новый шаг применился сразу.
func (p *SlotIntervalProvider) Invalidate(tenantID uuid.UUID) {
	p.cache.Invalidate(intervalCacheKey(tenantID))
}

func intervalCacheKey(tenantID uuid.UUID) string {
	return fmt.Sprintf("interval:%s", tenantID)
}
