package service

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/lalbertoreis/mikro-kontrola-app-blueprint-67-sub001/internal/domain"
	"github.com/lalbertoreis/mikro-kontrola-app-blueprint-67-sub001/pkg/dbmetrics"
	"github.com/lalbertoreis/mikro-kontrola-app-blueprint-67-sub001/pkg/psqlbuilder"
)

// Repository репозиторий для работы с услугами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория услуг
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает услугу по ID в рамках тенанта.
// Опциональные поля (лимиты, длительность) могут быть NULL - тогда в
// domain модель попадают нули, дефолты подставляет провайдер.
func (r *Repository) GetByID(ctx context.Context, tenantID uuid.UUID, serviceID uuid.UUID) (*domain.ServiceInfo, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"tenant_id",
		"name",
		"duration_minutes",
		"simultaneous_limit",
		"future_booking_limit_days",
		"cancel_min_notice_hours",
		"price",
	).
		From("services").
		Where(squirrel.Eq{
			"id":        serviceID,
			"tenant_id": tenantID,
		}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var info domain.ServiceInfo
	var duration, limit, futureDays, cancelHours sql.NullInt64
	var price sql.NullFloat64

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&info.ID,
		&info.TenantID,
		&info.Name,
		&duration,
		&limit,
		&futureDays,
		&cancelHours,
		&price,
	)

	if err == sql.ErrNoRows {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan service: %v", ErrScanRow, err)
	}

	info.DurationMinutes = int(duration.Int64)
	info.SimultaneousLimit = int(limit.Int64)
	info.FutureBookingLimitDays = int(futureDays.Int64)
	info.CancelMinNoticeHours = int(cancelHours.Int64)
	if price.Valid {
		info.Price = &price.Float64
	}

	return &info, nil
}
