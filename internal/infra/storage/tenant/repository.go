package tenant

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

// Repository репозиторий для работы с тенантами и профилями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория тенантов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetBySlug получает тенанта по slug (адрес бизнеса в URL)
func (r *Repository) GetBySlug(ctx context.Context, slug string) (*domain.Tenant, error) {
	return r.getOne(ctx, squirrel.Eq{"slug": slug}, "GetBySlug")
}

// GetByID получает тенанта по ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Tenant, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id}, "GetByID")
}

func (r *Repository) getOne(ctx context.Context, where squirrel.Eq, method string) (*domain.Tenant, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"slug",
		"name",
		"slot_interval_minutes",
	).
		From("tenants").
		Where(where).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, method, err)
	}

	var t domain.Tenant
	var interval sql.NullInt64

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&t.ID,
		&t.Slug,
		&t.Name,
		&interval,
	)

	if err == sql.ErrNoRows {
		return nil, ErrTenantNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan tenant: %v", ErrScanRow, method, err)
	}

	if interval.Valid {
		v := int(interval.Int64)
		t.SlotIntervalMinutes = &v
	}

	return &t, nil
}

// UpdateSlotInterval обновляет настроенный шаг сетки слотов тенанта
func (r *Repository) UpdateSlotInterval(ctx context.Context, tenantID uuid.UUID, minutes int) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("tenants").
		Set("slot_interval_minutes", minutes).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": tenantID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateSlotInterval - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateSlotInterval - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateSlotInterval - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrTenantNotFound
	}

	return nil
}

// GetProfile получает профиль пользователя (роль и принадлежность тенанту)
func (r *Repository) GetProfile(ctx context.Context, profileID uuid.UUID) (*domain.Profile, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"tenant_id",
		"role",
	).
		From("profiles").
		Where(squirrel.Eq{"id": profileID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetProfile - build select query: %v", ErrBuildQuery, err)
	}

	var p domain.Profile
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&p.ID,
		&p.TenantID,
		&p.Role,
	)

	if err == sql.ErrNoRows {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetProfile - scan profile: %v", ErrScanRow, err)
	}

	return &p, nil
}

// ResolveEffectiveOwner возвращает тенанта, от имени которого действует
// пользователь. Для сотрудников это владеющий бизнес (его праздники и
// настройки), а не их собственная учетная запись.
func (r *Repository) ResolveEffectiveOwner(ctx context.Context, profileID uuid.UUID) (uuid.UUID, error) {
	profile, err := r.GetProfile(ctx, profileID)
	if err != nil {
		return uuid.Nil, err
	}
	return profile.TenantID, nil
}
