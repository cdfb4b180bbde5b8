package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/lalbertoreis/mikro-kontrola-app-blueprint-67-sub001/internal/domain"
	"github.com/lalbertoreis/mikro-kontrola-app-blueprint-67-sub001/pkg/ttlcache"
)

// AppointmentProvider отдает занимающие слот записи сотрудника на дату.
// TTL короткий: записи меняются в реальном времени, и устаревшая занятость
// напрямую ведет к показу уже занятых слотов.
//
// Деградация при сбое - пустой список. Это может показать занятый слот как
// свободный, но финальную защиту дает проверка лимита в транзакции создания.
type AppointmentProvider struct {
	repo   AppointmentRepository
	cache  *ttlcache.Cache[[]*domain.Appointment]
	logger Logger
}

// NewAppointmentProvider создает новый провайдер занятости
func NewAppointmentProvider(repo AppointmentRepository, cache *ttlcache.Cache[[]*domain.Appointment], logger Logger) *AppointmentProvider {
	return &AppointmentProvider{
		repo:   repo,
		cache:  cache,
		logger: logger,
	}
}

// GetAppointmentsForDay возвращает занимающие слот записи сотрудника на дату
func (p *AppointmentProvider) GetAppointmentsForDay(ctx context.Context, tenantID, employeeID uuid.UUID, date time.Time) []*domain.Appointment {
	key := appointmentsCacheKey(tenantID, employeeID, date)

	appointments, err := p.cache.GetOrFetch(key, domain.AppointmentCacheTTL, func() ([]*domain.Appointment, error) {
		return p.repo.ListForEmployeeOnDate(ctx, tenantID, employeeID, date)
	})

	if err != nil {
		p.logger.Error("GetAppointmentsForDay: degraded to empty list for employee=%s date=%s: %v",
			employeeID, date.Format(domain.DateFormat), err)
		return []*domain.Appointment{}
	}

	return appointments
}

// InvalidateDay сбрасывает кэш занятости сотрудника на дату.
// Вызывается после создания или отмены записи, чтобы следующий расчет
// доступности не ждал истечения TTL.
func (p *AppointmentProvider) InvalidateDay(tenantID, employeeID uuid.UUID, date time.Time) {
	p.cache.Invalidate(appointmentsCacheKey(tenantID, employeeID, date))
}

func appointmentsCacheKey(tenantID, employeeID uuid.UUID, date time.Time) string {
	return fmt.Sprintf("appointments:%s:%s:%s", tenantID, employeeID, date.Format(domain.DateFormat))
}
