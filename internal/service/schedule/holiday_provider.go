package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/lalbertoreis/mikro-kontrola-app-blueprint-67-sub001/internal/domain"
	"github.com/lalbertoreis/mikro-kontrola-app-blueprint-67-sub001/pkg/ttlcache"
)

// HolidayProvider отдает активные блокировки тенанта на дату с кэшированием.
// При сбое источника деградирует до пустого списка: день считается рабочим.
type HolidayProvider struct {
	repo   HolidayRepository
	cache  *ttlcache.Cache[[]*domain.Holiday]
	logger Logger
}

// NewHolidayProvider создает новый провайдер блокировок
func NewHolidayProvider(repo HolidayRepository, cache *ttlcache.Cache[[]*domain.Holiday], logger Logger) *HolidayProvider {
	return &HolidayProvider{
		repo:   repo,
		cache:  cache,
		logger: logger,
	}
}

// GetHolidays возвращает активные блокировки тенанта на точную дату
func (p *HolidayProvider) GetHolidays(ctx context.Context, tenantID uuid.UUID, date time.Time) []*domain.Holiday {
	key := holidayCacheKey(tenantID, date)

	holidays, err := p.cache.GetOrFetch(key, domain.HolidayCacheTTL, func() ([]*domain.Holiday, error) {
		return p.repo.ListActiveByDate(ctx, tenantID, date)
	})

	if err != nil {
		p.logger.Error("GetHolidays: degraded to empty list for tenant=%s date=%s: %v",
			tenantID, date.Format(domain.DateFormat), err)
		return []*domain.Holiday{}
	}

	return holidays
}

// Invalidate сбрасывает кэш блокировок тенанта на дату
func (p *HolidayProvider) Invalidate(tenantID uuid.UUID, date time.Time) {
	p.cache.Invalidate(holidayCacheKey(tenantID, date))
}

func holidayCacheKey(tenantID uuid.UUID, date time.Time) string {
	return fmt.Sprintf("holidays:%s:%s", tenantID, date.Format(domain.DateFormat))
}
