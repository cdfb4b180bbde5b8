package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/lalbertoreis/mikro-kontrola-app-blueprint-67-sub001/internal/domain"
	"github.com/lalbertoreis/mikro-kontrola-app-blueprint-67-sub001/pkg/ttlcache"
)

// ShiftProvider отдает смену сотрудника на день недели с кэшированием.
// При сбое источника деградирует до nil (нет смены - нет доступных слотов).
type ShiftProvider struct {
	repo   ShiftRepository
	cache  *ttlcache.Cache[*domain.Shift]
	logger Logger
}

// NewShiftProvider создает новый провайдер смен
func NewShiftProvider(repo ShiftRepository, cache *ttlcache.Cache[*domain.Shift], logger Logger) *ShiftProvider {
	return &ShiftProvider{
		repo:   repo,
		cache:  cache,
		logger: logger,
	}
}

// GetShift возвращает смену сотрудника на день недели или nil, если смены нет.
// При нескольких сменах на один день побеждает первая созданная.
func (p *ShiftProvider) GetShift(ctx context.Context, tenantID, employeeID uuid.UUID, weekday time.Weekday) *domain.Shift {
	key := shiftCacheKey(tenantID, employeeID, weekday)

	shift, err := p.cache.GetOrFetch(key, domain.ShiftCacheTTL, func() (*domain.Shift, error) {
		shifts, err := p.repo.ListByEmployeeAndWeekday(ctx, tenantID, employeeID, weekday)
		if err != nil {
			return nil, err
		}
		for _, s := range shifts {
			if s.IsValid() {
				return s, nil
			}
			p.logger.Warn("GetShift: skipping invalid shift id=%s (start=%s end=%s)", s.ID, s.StartTime, s.EndTime)
		}
		return nil, nil
	})

	if err != nil {
		p.logger.Error("GetShift: degraded to no shift for employee=%s weekday=%d: %v", employeeID, weekday, err)
		return nil
	}

	return shift
}

// Invalidate сбрасывает кэш смены сотрудника на день недели
func (p *ShiftProvider) Invalidate(tenantID, employeeID uuid.UUID, weekday time.Weekday) {
	p.cache.Invalidate(shiftCacheKey(tenantID, employeeID, weekday))
}

func shiftCacheKey(tenantID, employeeID uuid.UUID, weekday time.Weekday) string {
	return fmt.Sprintf("shift:%s:%s:%d", tenantID, employeeID, weekday)
}
