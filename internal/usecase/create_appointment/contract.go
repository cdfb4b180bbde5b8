package create_appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/lalbertoreis/mikro-kontrola-app-blueprint-67-sub001/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error)
	// ListForEmployeeOnDate внутри транзакции блокирует строки FOR UPDATE
	ListForEmployeeOnDate(ctx context.Context, tenantID, employeeID uuid.UUID, date time.Time) ([]*domain.Appointment, error)
}

// ShiftRepository интерфейс репозитория смен
type ShiftRepository interface {
	ListByEmployeeAndWeekday(ctx context.Context, tenantID, employeeID uuid.UUID, weekday time.Weekday) ([]*domain.Shift, error)
}

// ServiceRepository интерфейс репозитория услуг
type ServiceRepository interface {
	GetByID(ctx context.Context, tenantID, serviceID uuid.UUID) (*domain.ServiceInfo, error)
}

// HolidayRepository интерфейс репозитория праздников/блокировок
type HolidayRepository interface {
	ListActiveByDate(ctx context.Context, tenantID uuid.UUID, date time.Time) ([]*domain.Holiday, error)
}

// TenantProvider интерфейс для резолвинга тенанта по slug
type TenantProvider interface {
	GetBySlug(ctx context.Context, slug string) (*domain.Tenant, error)
}

// AvailabilityInvalidator сбрасывает кэш занятости после изменения записей,
// чтобы расчет доступности не ждал истечения TTL
type AvailabilityInvalidator interface {
	InvalidateDay(tenantID, employeeID uuid.UUID, date time.Time)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
