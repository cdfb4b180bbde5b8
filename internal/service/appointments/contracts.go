package appointments

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/lalbertoreis/mikro-kontrola-app-blueprint-67-sub001/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Appointment, error)
	ListByClient(ctx context.Context, tenantID uuid.UUID, clientID uuid.UUID, status *domain.AppointmentStatus) ([]*domain.Appointment, error)
	ListWithFilter(ctx context.Context, filter domain.EmployeeAppointmentsFilter) ([]*domain.Appointment, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.AppointmentStatus) error
	Cancel(ctx context.Context, id uuid.UUID, reason string) error
}

// ServiceRepository интерфейс репозитория услуг
type ServiceRepository interface {
	GetByID(ctx context.Context, tenantID, serviceID uuid.UUID) (*domain.ServiceInfo, error)
}

// ProfileRepository интерфейс для получения профилей пользователей
type ProfileRepository interface {
	GetProfile(ctx context.Context, profileID uuid.UUID) (*domain.Profile, error)
}

// AvailabilityInvalidator сбрасывает кэш занятости после изменения записей
type AvailabilityInvalidator interface {
	InvalidateDay(tenantID, employeeID uuid.UUID, date time.Time)
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
