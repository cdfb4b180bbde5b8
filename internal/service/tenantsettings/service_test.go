package tenantsettings

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lalbertoreis/mikro-kontrola-app-blueprint-67-sub001/internal/domain"
	tenantRepo "github.com/lalbertoreis/mikro-kontrola-app-blueprint-67-sub001/internal/infra/storage/tenant"
	"github.com/lalbertoreis/mikro-kontrola-app-blueprint-67-sub001/internal/service/tenantsettings/models"
	"github.com/lalbertoreis/mikro-kontrola-app-blueprint-67-sub001/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fakeTenantRepo struct {
	tenant      *domain.Tenant
	profiles    map[uuid.UUID]*domain.Profile
	updateCalls int
	updatedTo   int
}

func (f *fakeTenantRepo) GetByID(_ context.Context, _ uuid.UUID) (*domain.Tenant, error) {
	if f.tenant == nil {
		return nil, tenantRepo.ErrTenantNotFound
	}
	return f.tenant, nil
}

func (f *fakeTenantRepo) UpdateSlotInterval(_ context.Context, _ uuid.UUID, minutes int) error {
	f.updateCalls++
	f.updatedTo = minutes
	return nil
}

func (f *fakeTenantRepo) GetProfile(_ context.Context, profileID uuid.UUID) (*domain.Profile, error) {
	p, ok := f.profiles[profileID]
	if !ok {
		return nil, tenantRepo.ErrProfileNotFound
	}
	return p, nil
}

type fakeInvalidator struct {
	calls int
}

func (f *fakeInvalidator) Invalidate(_ uuid.UUID) {
	f.calls++
}

func newTestService() (*Service, *fakeTenantRepo, *fakeInvalidator, uuid.UUID, uuid.UUID, uuid.UUID) {
	tenantID := uuid.New()
	ownerID := uuid.New()
	employeeID := uuid.New()

	repo := &fakeTenantRepo{
		tenant: &domain.Tenant{ID: tenantID, Slug: "barbearia-silva", SlotIntervalMinutes: ptr.Ptr(15)},
		profiles: map[uuid.UUID]*domain.Profile{
			ownerID:    {ID: ownerID, TenantID: tenantID, Role: domain.RoleOwner},
			employeeID: {ID: employeeID, TenantID: tenantID, Role: domain.RoleEmployee},
		},
	}
	invalidator := &fakeInvalidator{}
	svc := NewService(repo, invalidator, nopLogger{})

	return svc, repo, invalidator, tenantID, ownerID, employeeID
}

func TestGet_ReturnsEffectiveInterval(t *testing.T) {
	svc, _, _, tenantID, ownerID, _ := newTestService()

	resp, err := svc.Get(context.Background(), &models.GetSettingsRequest{UserID: ownerID, TenantID: tenantID})

	require.NoError(t, err)
	assert.Equal(t, 15, resp.SlotIntervalMinutes)
}

func TestGet_DefaultIntervalWhenUnset(t *testing.T) {
	svc, repo, _, tenantID, _, employeeID := newTestService()
	repo.tenant.SlotIntervalMinutes = nil

	resp, err := svc.Get(context.Background(), &models.GetSettingsRequest{UserID: employeeID, TenantID: tenantID})

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultSlotIntervalMinutes, resp.SlotIntervalMinutes)
}

func TestGet_UnknownUserDenied(t *testing.T) {
	svc, _, _, tenantID, _, _ := newTestService()

	_, err := svc.Get(context.Background(), &models.GetSettingsRequest{UserID: uuid.New(), TenantID: tenantID})

	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestUpdate_ByOwnerInvalidatesCache(t *testing.T) {
	svc, repo, invalidator, tenantID, ownerID, _ := newTestService()

	resp, err := svc.Update(context.Background(), &models.UpdateSettingsRequest{
		UserID:              ownerID,
		TenantID:            tenantID,
		SlotIntervalMinutes: 20,
	})

	require.NoError(t, err)
	assert.Equal(t, 20, resp.SlotIntervalMinutes)
	assert.Equal(t, 1, repo.updateCalls)
	assert.Equal(t, 20, repo.updatedTo)
	assert.Equal(t, 1, invalidator.calls, "interval cache must be invalidated so the new step applies immediately")
}

func TestUpdate_EmployeeDenied(t *testing.T) {
	svc, repo, _, tenantID, _, employeeID := newTestService()

	_, err := svc.Update(context.Background(), &models.UpdateSettingsRequest{
		UserID:              employeeID,
		TenantID:            tenantID,
		SlotIntervalMinutes: 20,
	})

	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Equal(t, 0, repo.updateCalls)
}

func TestUpdate_IntervalOutOfRange(t *testing.T) {
	svc, _, _, tenantID, ownerID, _ := newTestService()

	for _, minutes := range []int{0, domain.MinSlotIntervalMinutes - 1, domain.MaxSlotIntervalMinutes + 1} {
		_, err := svc.Update(context.Background(), &models.UpdateSettingsRequest{
			UserID:              ownerID,
			TenantID:            tenantID,
			SlotIntervalMinutes: minutes,
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	}
}
