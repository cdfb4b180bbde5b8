package schedule

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/lalbertoreis/mikro-kontrola-app-blueprint-67-sub001/internal/domain"
	tenantRepo "github.com/lalbertoreis/mikro-kontrola-app-blueprint-67-sub001/internal/infra/storage/tenant"
	"github.com/lalbertoreis/mikro-kontrola-app-blueprint-67-sub001/pkg/ttlcache"
)

// TenantProvider отдает тенантов и профили с кэшированием.
// В отличие от остальных провайдеров не деградирует: несуществующий тенант -
// это ошибка маршрутизации запроса, а не повод вернуть дефолт.
type TenantProvider struct {
	repo   TenantRepository
	cache  *ttlcache.Cache[*domain.Tenant]
	owners *ttlcache.Cache[uuid.UUID]
	logger Logger
}

// NewTenantProvider создает новый провайдер тенантов
func NewTenantProvider(
	repo TenantRepository,
	cache *ttlcache.Cache[*domain.Tenant],
	owners *ttlcache.Cache[uuid.UUID],
	logger Logger,
) *TenantProvider {
	return &TenantProvider{
		repo:   repo,
		cache:  cache,
		owners: owners,
		logger: logger,
	}
}

// GetBySlug возвращает тенанта по slug
func (p *TenantProvider) GetBySlug(ctx context.Context, slug string) (*domain.Tenant, error) {
	key := fmt.Sprintf("tenant:slug:%s", slug)

	tenant, err := p.cache.GetOrFetch(key, domain.TenantCacheTTL, func() (*domain.Tenant, error) {
		return p.repo.GetBySlug(ctx, slug)
	})

	if err != nil {
		if errors.Is(err, tenantRepo.ErrTenantNotFound) {
			return nil, ErrTenantNotFound
		}
		p.logger.Error("GetBySlug: failed to get tenant slug=%s: %v", slug, err)
		return nil, fmt.Errorf("%w: failed to get tenant: %v", ErrInternal, err)
	}

	return tenant, nil
}

// ResolveEffectiveOwner возвращает тенанта, от имени которого действует
// пользователь. Блокировки и настройки сотрудника принадлежат владеющему
// бизнесу, поэтому для ролей employee и owner берется tenant_id профиля.
func (p *TenantProvider) ResolveEffectiveOwner(ctx context.Context, profileID uuid.UUID) (uuid.UUID, error) {
	key := fmt.Sprintf("owner:%s", profileID)

	ownerID, err := p.owners.GetOrFetch(key, domain.TenantCacheTTL, func() (uuid.UUID, error) {
		profile, err := p.repo.GetProfile(ctx, profileID)
		if err != nil {
			return uuid.Nil, err
		}
		return profile.TenantID, nil
	})

	if err != nil {
		if errors.Is(err, tenantRepo.ErrProfileNotFound) {
			return uuid.Nil, ErrProfileNotFound
		}
		p.logger.Error("ResolveEffectiveOwner: failed to resolve owner for profile=%s: %v", profileID, err)
		return uuid.Nil, fmt.Errorf("%w: failed to resolve owner: %v", ErrInternal, err)
	}

	return ownerID, nil
}
