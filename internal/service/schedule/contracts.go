package schedule

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/lalbertoreis/mikro-kontrola-app-blueprint-67-sub001/internal/domain"
)

// ShiftRepository интерфейс репозитория смен
type ShiftRepository interface {
	ListByEmployeeAndWeekday(ctx context.Context, tenantID uuid.UUID, employeeID uuid.UUID, weekday time.Weekday) ([]*domain.Shift, error)
}

// ServiceRepository интерфейс репозитория услуг
type ServiceRepository interface {
	GetByID(ctx context.Context, tenantID uuid.UUID, serviceID uuid.UUID) (*domain.ServiceInfo, error)
}

// AppointmentRepository интерфейс репозитория записей для чтения занятости
type AppointmentRepository interface {
	ListForEmployeeOnDate(ctx context.Context, tenantID uuid.UUID, employeeID uuid.UUID, date time.Time) ([]*domain.Appointment, error)
}

// HolidayRepository интерфейс репозитория праздников/блокировок
type HolidayRepository interface {
	ListActiveByDate(ctx context.Context, tenantID uuid.UUID, date time.Time) ([]*domain.Holiday, error)
}

// TenantRepository интерфейс репозитория тенантов и профилей
type TenantRepository interface {
	GetBySlug(ctx context.Context, slug string) (*domain.Tenant, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Tenant, error)
	GetProfile(ctx context.Context, profileID uuid.UUID) (*domain.Profile, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
