package shift

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/lalbertoreis/mikro-kontrola-app-blueprint-67-sub001/internal/domain"
	"github.com/lalbertoreis/mikro-kontrola-app-blueprint-67-sub001/pkg/dbmetrics"
	"github.com/lalbertoreis/mikro-kontrola-app-blueprint-67-sub001/pkg/psqlbuilder"
)

// Repository репозиторий для работы с рабочими сменами сотрудников
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория смен
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListByEmployeeAndWeekday получает смены сотрудника на день недели.
// Сортировка по created_at: у сотрудника ожидается одна смена на день,
// при дублях побеждает первая созданная (first match wins).
func (r *Repository) ListByEmployeeAndWeekday(
	ctx context.Context,
	tenantID uuid.UUID,
	employeeID uuid.UUID,
	weekday time.Weekday,
) ([]*domain.Shift, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"tenant_id",
		"employee_id",
		"day_of_week",
		"start_time",
		"end_time",
	).
		From("shifts").
		Where(squirrel.Eq{
			"tenant_id":   tenantID,
			"employee_id": employeeID,
			"day_of_week": int(weekday),
		}).
		OrderBy("created_at ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByEmployeeAndWeekday - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByEmployeeAndWeekday - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	shifts := make([]*domain.Shift, 0)

	for rows.Next() {
		var s domain.Shift
		var weekdayInt int

		err := rows.Scan(
			&s.ID,
			&s.TenantID,
			&s.EmployeeID,
			&weekdayInt,
			&s.StartTime,
			&s.EndTime,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByEmployeeAndWeekday - scan row: %v", ErrScanRow, err)
		}

		s.Weekday = time.Weekday(weekdayInt)
		shifts = append(shifts, &s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByEmployeeAndWeekday - rows error: %v", ErrScanRow, err)
	}

	return shifts, nil
}
