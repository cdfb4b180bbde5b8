package tenantsettings

import (
	"context"

	"github.com/google/uuid"

	"github.com/lalbertoreis/mikro-kontrola-app-blueprint-67-sub001/internal/domain"
)

// TenantRepository интерфейс репозитория тенантов
type TenantRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Tenant, error)
	UpdateSlotInterval(ctx context.Context, tenantID uuid.UUID, minutes int) error
	GetProfile(ctx context.Context, profileID uuid.UUID) (*domain.Profile, error)
}

// IntervalInvalidator сбрасывает кэшированный шаг сетки тенанта после обновления
type IntervalInvalidator interface {
	Invalidate(tenantID uuid.UUID)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
