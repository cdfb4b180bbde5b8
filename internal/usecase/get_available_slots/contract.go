package get_available_slots

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/lalbertoreis/mikro-kontrola-app-blueprint-67-sub001/internal/domain"
)

// TenantProvider интерфейс для резолвинга тенанта по slug
type TenantProvider interface {
	GetBySlug(ctx context.Context, slug string) (*domain.Tenant, error)
}

// ShiftProvider интерфейс для получения смены сотрудника на день недели
type ShiftProvider interface {
	GetShift(ctx context.Context, tenantID, employeeID uuid.UUID, weekday time.Weekday) *domain.Shift
}

// ServiceInfoProvider интерфейс для получения параметров услуги
type ServiceInfoProvider interface {
	GetServiceInfo(ctx context.Context, tenantID, serviceID uuid.UUID) *domain.ServiceInfo
}

// AppointmentProvider интерфейс для получения занятости сотрудника на дату
type AppointmentProvider interface {
	GetAppointmentsForDay(ctx context.Context, tenantID, employeeID uuid.UUID, date time.Time) []*domain.Appointment
}

// HolidayProvider интерфейс для получения блокировок тенанта на дату
type HolidayProvider interface {
	GetHolidays(ctx context.Context, tenantID uuid.UUID, date time.Time) []*domain.Holiday
}

// SlotIntervalProvider интерфейс для получения шага сетки слотов тенанта
type SlotIntervalProvider interface {
	GetInterval(ctx context.Context, tenantID uuid.UUID) int
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
