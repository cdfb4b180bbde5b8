package holiday

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/lalbertoreis/mikro-kontrola-app-blueprint-67-sub001/internal/domain"
	"github.com/lalbertoreis/mikro-kontrola-app-blueprint-67-sub001/pkg/dbmetrics"
	"github.com/lalbertoreis/mikro-kontrola-app-blueprint-67-sub001/pkg/psqlbuilder"
	"github.com/lalbertoreis/mikro-kontrola-app-blueprint-67-sub001/pkg/types"
)

// Repository репозиторий для работы с праздниками/блокировками
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория праздников
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListActiveByDate получает активные блокировки тенанта на точную дату
func (r *Repository) ListActiveByDate(ctx context.Context, tenantID uuid.UUID, date time.Time) ([]*domain.Holiday, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"tenant_id",
		"date",
		"is_active",
		"blocking_type",
		"custom_start_time",
		"custom_end_time",
		"reason",
	).
		From("holidays").
		Where(squirrel.Eq{
			"tenant_id": tenantID,
			"date":      date,
			"is_active": true,
		}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveByDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveByDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	holidays := make([]*domain.Holiday, 0)

	for rows.Next() {
		var h domain.Holiday
		var customStart, customEnd types.TimeString

		err := rows.Scan(
			&h.ID,
			&h.TenantID,
			&h.Date,
			&h.IsActive,
			&h.BlockingType,
			&customStart,
			&customEnd,
			&h.Reason,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListActiveByDate - scan row: %v", ErrScanRow, err)
		}

		if !customStart.IsZero() {
			h.CustomStartTime = &customStart
		}
		if !customEnd.IsZero() {
			h.CustomEndTime = &customEnd
		}

		holidays = append(holidays, &h)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListActiveByDate - rows error: %v", ErrScanRow, err)
	}

	return holidays, nil
}
