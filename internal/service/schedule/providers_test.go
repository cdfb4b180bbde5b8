package schedule

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lalbertoreis/mikro-kontrola-app-blueprint-67-sub001/internal/domain"
	serviceRepo "github.com/lalbertoreis/mikro-kontrola-app-blueprint-67-sub001/internal/infra/storage/service"
	tenantRepo "github.com/lalbertoreis/mikro-kontrola-app-blueprint-67-sub001/internal/infra/storage/tenant"
	"github.com/lalbertoreis/mikro-kontrola-app-blueprint-67-sub001/pkg/ttlcache"
	"github.com/lalbertoreis/mikro-kontrola-app-blueprint-67-sub001/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fakeShiftRepo struct {
	calls  int
	shifts []*domain.Shift
	err    error
}

func (f *fakeShiftRepo) ListByEmployeeAndWeekday(_ context.Context, _, _ uuid.UUID, _ time.Weekday) ([]*domain.Shift, error) {
	f.calls++
	return f.shifts, f.err
}

type fakeServiceRepo struct {
	calls int
	info  *domain.ServiceInfo
	err   error
}

func (f *fakeServiceRepo) GetByID(_ context.Context, _, _ uuid.UUID) (*domain.ServiceInfo, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	cp := *f.info
	return &cp, nil
}

type fakeAppointmentRepo struct {
	calls        int
	appointments []*domain.Appointment
	err          error
}

func (f *fakeAppointmentRepo) ListForEmployeeOnDate(_ context.Context, _, _ uuid.UUID, _ time.Time) ([]*domain.Appointment, error) {
	f.calls++
	return f.appointments, f.err
}

type fakeHolidayRepo struct {
	calls    int
	holidays []*domain.Holiday
	err      error
}

func (f *fakeHolidayRepo) ListActiveByDate(_ context.Context, _ uuid.UUID, _ time.Time) ([]*domain.Holiday, error) {
	f.calls++
	return f.holidays, f.err
}

type fakeTenantRepo struct {
	calls   int
	tenant  *domain.Tenant
	profile *domain.Profile
	err     error
}

func (f *fakeTenantRepo) GetBySlug(_ context.Context, _ string) (*domain.Tenant, error) {
	f.calls++
	return f.tenant, f.err
}

func (f *fakeTenantRepo) GetByID(_ context.Context, _ uuid.UUID) (*domain.Tenant, error) {
	f.calls++
	return f.tenant, f.err
}

func (f *fakeTenantRepo) GetProfile(_ context.Context, _ uuid.UUID) (*domain.Profile, error) {
	f.calls++
	return f.profile, f.err
}

func testShift(start, end string) *domain.Shift {
	return &domain.Shift{
		ID:         uuid.New(),
		TenantID:   uuid.New(),
		EmployeeID: uuid.New(),
		Weekday:    time.Monday,
		StartTime:  types.TimeString(start),
		EndTime:    types.TimeString(end),
	}
}

func TestShiftProvider_GetShift_CachesResult(t *testing.T) {
	repo := &fakeShiftRepo{shifts: []*domain.Shift{testShift("09:00", "18:00")}}
	provider := NewShiftProvider(repo, ttlcache.New[*domain.Shift](), nopLogger{})

	tenantID, employeeID := uuid.New(), uuid.New()

	first := provider.GetShift(context.Background(), tenantID, employeeID, time.Monday)
	second := provider.GetShift(context.Background(), tenantID, employeeID, time.Monday)

	require.NotNil(t, first)
	assert.Equal(t, types.TimeString("09:00"), first.StartTime)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, repo.calls, "second call must be served from cache")
}

func TestShiftProvider_GetShift_FirstValidShiftWins(t *testing.T) {
	invalid := testShift("18:00", "09:00")
	valid := testShift("10:00", "16:00")
	repo := &fakeShiftRepo{shifts: []*domain.Shift{invalid, valid}}
	provider := NewShiftProvider(repo, ttlcache.New[*domain.Shift](), nopLogger{})

	shift := provider.GetShift(context.Background(), uuid.New(), uuid.New(), time.Monday)

	require.NotNil(t, shift)
	assert.Equal(t, valid.ID, shift.ID)
}

func TestShiftProvider_GetShift_DegradesToNilAndRetries(t *testing.T) {
	repo := &fakeShiftRepo{err: errors.New("connection refused")}
	provider := NewShiftProvider(repo, ttlcache.New[*domain.Shift](), nopLogger{})

	tenantID, employeeID := uuid.New(), uuid.New()

	assert.Nil(t, provider.GetShift(context.Background(), tenantID, employeeID, time.Monday))
	assert.Nil(t, provider.GetShift(context.Background(), tenantID, employeeID, time.Monday))
	assert.Equal(t, 2, repo.calls, "errors must not be cached")

	// Источник восстановился - следующий вызов получает данные
	repo.err = nil
	repo.shifts = []*domain.Shift{testShift("09:00", "18:00")}
	assert.NotNil(t, provider.GetShift(context.Background(), tenantID, employeeID, time.Monday))
}

func TestShiftProvider_GetShift_NoShiftIsCached(t *testing.T) {
	repo := &fakeShiftRepo{shifts: nil}
	provider := NewShiftProvider(repo, ttlcache.New[*domain.Shift](), nopLogger{})

	tenantID, employeeID := uuid.New(), uuid.New()

	assert.Nil(t, provider.GetShift(context.Background(), tenantID, employeeID, time.Sunday))
	assert.Nil(t, provider.GetShift(context.Background(), tenantID, employeeID, time.Sunday))
	assert.Equal(t, 1, repo.calls, "absence of a shift is a valid cacheable result")
}

func TestServiceInfoProvider_GetServiceInfo_AppliesDefaults(t *testing.T) {
	serviceID := uuid.New()
	repo := &fakeServiceRepo{info: &domain.ServiceInfo{
		ID:              serviceID,
		Name:            "Corte de cabelo",
		DurationMinutes: 45,
		// SimultaneousLimit не задан
	}}
	provider := NewServiceInfoProvider(repo, ttlcache.New[*domain.ServiceInfo](), nopLogger{})

	info := provider.GetServiceInfo(context.Background(), uuid.New(), serviceID)

	require.NotNil(t, info)
	assert.Equal(t, 45, info.DurationMinutes)
	assert.Equal(t, domain.DefaultSimultaneousLimit, info.SimultaneousLimit)
}

func TestServiceInfoProvider_GetServiceInfo_NotFoundUsesDefaultsAndCaches(t *testing.T) {
	repo := &fakeServiceRepo{err: serviceRepo.ErrServiceNotFound}
	provider := NewServiceInfoProvider(repo, ttlcache.New[*domain.ServiceInfo](), nopLogger{})

	tenantID, serviceID := uuid.New(), uuid.New()

	info := provider.GetServiceInfo(context.Background(), tenantID, serviceID)
	require.NotNil(t, info)
	assert.Equal(t, serviceID, info.ID)
	assert.Equal(t, domain.DefaultServiceDurationMinutes, info.DurationMinutes)

	provider.GetServiceInfo(context.Background(), tenantID, serviceID)
	assert.Equal(t, 1, repo.calls, "not found is a stable fact and must be cached")
}

func TestServiceInfoProvider_GetServiceInfo_ErrorDegradesWithoutCaching(t *testing.T) {
	repo := &fakeServiceRepo{err: errors.New("timeout")}
	provider := NewServiceInfoProvider(repo, ttlcache.New[*domain.ServiceInfo](), nopLogger{})

	tenantID, serviceID := uuid.New(), uuid.New()

	info := provider.GetServiceInfo(context.Background(), tenantID, serviceID)
	require.NotNil(t, info)
	assert.Equal(t, domain.DefaultServiceDurationMinutes, info.DurationMinutes)

	provider.GetServiceInfo(context.Background(), tenantID, serviceID)
	assert.Equal(t, 2, repo.calls, "infrastructure errors must not be cached")
}

func TestAppointmentProvider_GetAppointmentsForDay_ExpiresByTTL(t *testing.T) {
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	repo := &fakeAppointmentRepo{appointments: []*domain.Appointment{}}
	provider := NewAppointmentProvider(repo, ttlcache.NewWithClock[[]*domain.Appointment](clock), nopLogger{})

	tenantID, employeeID := uuid.New(), uuid.New()
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	provider.GetAppointmentsForDay(context.Background(), tenantID, employeeID, date)
	provider.GetAppointmentsForDay(context.Background(), tenantID, employeeID, date)
	assert.Equal(t, 1, repo.calls)

	now = now.Add(domain.AppointmentCacheTTL + time.Second)
	provider.GetAppointmentsForDay(context.Background(), tenantID, employeeID, date)
	assert.Equal(t, 2, repo.calls, "entry older than TTL must be refetched")
}

func TestAppointmentProvider_GetAppointmentsForDay_DegradesToEmpty(t *testing.T) {
	repo := &fakeAppointmentRepo{err: errors.New("connection reset")}
	provider := NewAppointmentProvider(repo, ttlcache.New[[]*domain.Appointment](), nopLogger{})

	appointments := provider.GetAppointmentsForDay(context.Background(), uuid.New(), uuid.New(), time.Now())

	assert.NotNil(t, appointments)
	assert.Empty(t, appointments)
}

func TestAppointmentProvider_InvalidateDay(t *testing.T) {
	repo := &fakeAppointmentRepo{appointments: []*domain.Appointment{}}
	provider := NewAppointmentProvider(repo, ttlcache.New[[]*domain.Appointment](), nopLogger{})

	tenantID, employeeID := uuid.New(), uuid.New()
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	provider.GetAppointmentsForDay(context.Background(), tenantID, employeeID, date)
	provider.InvalidateDay(tenantID, employeeID, date)
	provider.GetAppointmentsForDay(context.Background(), tenantID, employeeID, date)

	assert.Equal(t, 2, repo.calls, "invalidation must force a refetch")
}

func TestHolidayProvider_GetHolidays_DegradesToEmpty(t *testing.T) {
	repo := &fakeHolidayRepo{err: errors.New("query canceled")}
	provider := NewHolidayProvider(repo, ttlcache.New[[]*domain.Holiday](), nopLogger{})

	holidays := provider.GetHolidays(context.Background(), uuid.New(), time.Now())

	assert.NotNil(t, holidays)
	assert.Empty(t, holidays)
}

func TestSlotIntervalProvider_GetInterval(t *testing.T) {
	interval := 15
	repo := &fakeTenantRepo{tenant: &domain.Tenant{ID: uuid.New(), SlotIntervalMinutes: &interval}}
	provider := NewSlotIntervalProvider(repo, ttlcache.New[int](), nopLogger{})

	assert.Equal(t, 15, provider.GetInterval(context.Background(), repo.tenant.ID))
	assert.Equal(t, 15, provider.GetInterval(context.Background(), repo.tenant.ID))
	assert.Equal(t, 1, repo.calls)
}

func TestSlotIntervalProvider_GetInterval_DefaultOnError(t *testing.T) {
	repo := &fakeTenantRepo{err: errors.New("connection refused")}
	provider := NewSlotIntervalProvider(repo, ttlcache.New[int](), nopLogger{})

	assert.Equal(t, domain.DefaultSlotIntervalMinutes, provider.GetInterval(context.Background(), uuid.New()))
}

func TestSlotIntervalProvider_Invalidate(t *testing.T) {
	interval := 20
	repo := &fakeTenantRepo{tenant: &domain.Tenant{ID: uuid.New(), SlotIntervalMinutes: &interval}}
	provider := NewSlotIntervalProvider(repo, ttlcache.New[int](), nopLogger{})

	assert.Equal(t, 20, provider.GetInterval(context.Background(), repo.tenant.ID))

	interval = 60
	provider.Invalidate(repo.tenant.ID)
	assert.Equal(t, 60, provider.GetInterval(context.Background(), repo.tenant.ID))
}

func TestTenantProvider_GetBySlug(t *testing.T) {
	tenant := &domain.Tenant{ID: uuid.New(), Slug: "barbearia-silva", Name: "Barbearia Silva"}
	repo := &fakeTenantRepo{tenant: tenant}
	provider := NewTenantProvider(repo, ttlcache.New[*domain.Tenant](), ttlcache.New[uuid.UUID](), nopLogger{})

	got, err := provider.GetBySlug(context.Background(), "barbearia-silva")
	require.NoError(t, err)
	assert.Equal(t, tenant.ID, got.ID)

	_, err = provider.GetBySlug(context.Background(), "barbearia-silva")
	require.NoError(t, err)
	assert.Equal(t, 1, repo.calls)
}

func TestTenantProvider_GetBySlug_NotFound(t *testing.T) {
	repo := &fakeTenantRepo{err: tenantRepo.ErrTenantNotFound}
	provider := NewTenantProvider(repo, ttlcache.New[*domain.Tenant](), ttlcache.New[uuid.UUID](), nopLogger{})

	_, err := provider.GetBySlug(context.Background(), "missing")

	assert.ErrorIs(t, err, ErrTenantNotFound)
}

func TestTenantProvider_ResolveEffectiveOwner(t *testing.T) {
	ownerTenantID := uuid.New()
	profileID := uuid.New()
	repo := &fakeTenantRepo{profile: &domain.Profile{ID: profileID, TenantID: ownerTenantID, Role: domain.RoleEmployee}}
	provider := NewTenantProvider(repo, ttlcache.New[*domain.Tenant](), ttlcache.New[uuid.UUID](), nopLogger{})

	got, err := provider.ResolveEffectiveOwner(context.Background(), profileID)
	require.NoError(t, err)
	assert.Equal(t, ownerTenantID, got)

	_, err = provider.ResolveEffectiveOwner(context.Background(), profileID)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.calls)
}
