package get_available_slots

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lalbertoreis/mikro-kontrola-app-blueprint-67-sub001/internal/domain"
	"github.com/lalbertoreis/mikro-kontrola-app-blueprint-67-sub001/internal/service/schedule"
	"github.com/lalbertoreis/mikro-kontrola-app-blueprint-67-sub001/pkg/ttlcache"
	"github.com/lalbertoreis/mikro-kontrola-app-blueprint-67-sub001/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time {
	return p.now
}

type fakeTenantProvider struct {
	calls  int
	tenant *domain.Tenant
	err    error
}

func (f *fakeTenantProvider) GetBySlug(_ context.Context, _ string) (*domain.Tenant, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.tenant, nil
}

type fakeShiftProvider struct {
	calls int
	shift *domain.Shift
}

func (f *fakeShiftProvider) GetShift(_ context.Context, _, _ uuid.UUID, _ time.Weekday) *domain.Shift {
	f.calls++
	return f.shift
}

type fakeServiceProvider struct {
	calls int
	info  *domain.ServiceInfo
}

func (f *fakeServiceProvider) GetServiceInfo(_ context.Context, _, _ uuid.UUID) *domain.ServiceInfo {
	f.calls++
	return f.info
}

type fakeAppointmentProvider struct {
	calls        int
	appointments []*domain.Appointment
}

func (f *fakeAppointmentProvider) GetAppointmentsForDay(_ context.Context, _, _ uuid.UUID, _ time.Time) []*domain.Appointment {
	f.calls++
	return f.appointments
}

type fakeHolidayProvider struct {
	calls    int
	holidays []*domain.Holiday
}

func (f *fakeHolidayProvider) GetHolidays(_ context.Context, _ uuid.UUID, _ time.Time) []*domain.Holiday {
	f.calls++
	return f.holidays
}

type fakeIntervalProvider struct {
	calls    int
	interval int
}

func (f *fakeIntervalProvider) GetInterval(_ context.Context, _ uuid.UUID) int {
	f.calls++
	return f.interval
}

type testEnv struct {
	uc           *UseCase
	tenants      *fakeTenantProvider
	shifts       *fakeShiftProvider
	services     *fakeServiceProvider
	appointments *fakeAppointmentProvider
	holidays     *fakeHolidayProvider
	intervals    *fakeIntervalProvider
}

func newTestEnv(now time.Time) *testEnv {
	env := &testEnv{
		tenants: &fakeTenantProvider{tenant: &domain.Tenant{
			ID:   uuid.New(),
			Slug: "barbearia-silva",
			Name: "Barbearia Silva",
		}},
		shifts: &fakeShiftProvider{shift: &domain.Shift{
			ID:        uuid.New(),
			StartTime: "09:00",
			EndTime:   "12:00",
		}},
		services: &fakeServiceProvider{info: &domain.ServiceInfo{
			ID:                uuid.New(),
			Name:              "Corte de cabelo",
			DurationMinutes:   30,
			SimultaneousLimit: 1,
		}},
		appointments: &fakeAppointmentProvider{appointments: []*domain.Appointment{}},
		holidays:     &fakeHolidayProvider{holidays: []*domain.Holiday{}},
		intervals:    &fakeIntervalProvider{interval: 30},
	}

	env.uc = NewUseCase(
		env.tenants,
		env.shifts,
		env.services,
		env.appointments,
		env.holidays,
		env.intervals,
		ttlcache.New[[]types.TimeString](),
		nopLogger{},
	)
	env.uc.timeProvider = &fixedTimeProvider{now: now}

	return env
}

func validRequest(date time.Time) *Request {
	return &Request{
		TenantSlug: "barbearia-silva",
		EmployeeID: uuid.New(),
		ServiceID:  uuid.New(),
		Date:       date,
	}
}

var testNow = time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC) // понедельник 08:00

func tomorrow() time.Time {
	return time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC)
}

func TestExecute_ReturnsSlotsForOpenDay(t *testing.T) {
	env := newTestEnv(testNow)

	resp, err := env.uc.Execute(context.Background(), validRequest(tomorrow()))

	require.NoError(t, err)
	assert.Equal(t, []types.TimeString{"09:00", "09:30", "10:00", "10:30", "11:00", "11:30"}, resp.Slots)
}

func TestExecute_AppointmentExcludesItsSlot(t *testing.T) {
	env := newTestEnv(testNow)
	env.appointments.appointments = []*domain.Appointment{
		{StartTime: "10:00", DurationMinutes: 30, Status: domain.StatusScheduled},
	}

	resp, err := env.uc.Execute(context.Background(), validRequest(tomorrow()))

	require.NoError(t, err)
	assert.Equal(t, []types.TimeString{"09:00", "09:30", "10:30", "11:00", "11:30"}, resp.Slots)
}

func TestExecute_FullDayHolidayYieldsEmptyList(t *testing.T) {
	env := newTestEnv(testNow)
	env.holidays.holidays = []*domain.Holiday{
		{BlockingType: domain.BlockingFullDay, IsActive: true},
	}

	resp, err := env.uc.Execute(context.Background(), validRequest(tomorrow()))

	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_NoShiftShortCircuits(t *testing.T) {
	env := newTestEnv(testNow)
	env.shifts.shift = nil

	resp, err := env.uc.Execute(context.Background(), validRequest(tomorrow()))

	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
	// Ранний выход: занятость и блокировки не запрашиваются вовсе
	assert.Equal(t, 0, env.appointments.calls)
	assert.Equal(t, 0, env.holidays.calls)
}

func TestExecute_SecondCallServedFromCache(t *testing.T) {
	env := newTestEnv(testNow)
	req := validRequest(tomorrow())

	first, err := env.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	second, err := env.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, first.Slots, second.Slots)
	assert.Equal(t, 1, env.tenants.calls, "cached result must not hit providers")
	assert.Equal(t, 1, env.shifts.calls)
	assert.Equal(t, 1, env.services.calls)
	assert.Equal(t, 1, env.appointments.calls)
	assert.Equal(t, 1, env.holidays.calls)
	assert.Equal(t, 1, env.intervals.calls)
}

func TestExecute_EmptyResultIsCachedToo(t *testing.T) {
	env := newTestEnv(testNow)
	env.shifts.shift = nil
	req := validRequest(tomorrow())

	resp, err := env.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)

	_, err = env.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 1, env.shifts.calls)
}

func TestExecute_TodayHidesPastTimes(t *testing.T) {
	// Сегодня 10:05 - утренние слоты уже прошли
	env := newTestEnv(time.Date(2026, 3, 2, 10, 5, 0, 0, time.UTC))
	req := validRequest(time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC))

	resp, err := env.uc.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, []types.TimeString{"10:30", "11:00", "11:30"}, resp.Slots)
}

func TestExecute_PastDateYieldsEmptyList(t *testing.T) {
	env := newTestEnv(testNow)
	req := validRequest(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))

	resp, err := env.uc.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_DateBeyondBookingHorizonYieldsEmptyList(t *testing.T) {
	env := newTestEnv(testNow)
	env.services.info.FutureBookingLimitDays = 7
	req := validRequest(time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC))

	resp, err := env.uc.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_TenantNotFound(t *testing.T) {
	env := newTestEnv(testNow)
	env.tenants.err = schedule.ErrTenantNotFound
	env.tenants.tenant = nil

	_, err := env.uc.Execute(context.Background(), validRequest(tomorrow()))

	assert.ErrorIs(t, err, ErrTenantNotFound)
}

func TestExecute_TenantLookupFailureDegradesToEmptyList(t *testing.T) {
	env := newTestEnv(testNow)
	env.tenants.err = fmt.Errorf("%w: connection refused", ErrInternal)

	resp, err := env.uc.Execute(context.Background(), validRequest(tomorrow()))

	require.NoError(t, err, "public entry point must not propagate internal failures")
	assert.Empty(t, resp.Slots)
}

func TestExecute_ValidationErrors(t *testing.T) {
	env := newTestEnv(testNow)

	tests := []struct {
		name string
		req  *Request
	}{
		{"missing slug", &Request{EmployeeID: uuid.New(), ServiceID: uuid.New(), Date: tomorrow()}},
		{"missing employee", &Request{TenantSlug: "x", ServiceID: uuid.New(), Date: tomorrow()}},
		{"missing service", &Request{TenantSlug: "x", EmployeeID: uuid.New(), Date: tomorrow()}},
		{"missing date", &Request{TenantSlug: "x", EmployeeID: uuid.New(), ServiceID: uuid.New()}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
