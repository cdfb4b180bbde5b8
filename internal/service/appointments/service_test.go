package appointments

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lalbertoreis/mikro-kontrola-app-blueprint-67-sub001/internal/domain"
	appointmentRepo "github.com/lalbertoreis/mikro-kontrola-app-blueprint-67-sub001/internal/infra/storage/appointment"
	serviceRepo "github.com/lalbertoreis/mikro-kontrola-app-blueprint-67-sub001/internal/infra/storage/service"
	tenantRepo "github.com/lalbertoreis/mikro-kontrola-app-blueprint-67-sub001/internal/infra/storage/tenant"
	"github.com/lalbertoreis/mikro-kontrola-app-blueprint-67-sub001/internal/service/appointments/models"
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

type fakeAppointmentRepo struct {
	appointment  *domain.Appointment
	list         []*domain.Appointment
	cancelCalls  int
	cancelReason string
	statusCalls  int
	newStatus    domain.AppointmentStatus
}

func (f *fakeAppointmentRepo) GetByID(_ context.Context, _ uuid.UUID) (*domain.Appointment, error) {
	if f.appointment == nil {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	return f.appointment, nil
}

func (f *fakeAppointmentRepo) ListByClient(_ context.Context, _, _ uuid.UUID, _ *domain.AppointmentStatus) ([]*domain.Appointment, error) {
	return f.list, nil
}

func (f *fakeAppointmentRepo) ListWithFilter(_ context.Context, _ domain.EmployeeAppointmentsFilter) ([]*domain.Appointment, error) {
	return f.list, nil
}

func (f *fakeAppointmentRepo) UpdateStatus(_ context.Context, _ uuid.UUID, status domain.AppointmentStatus) error {
	f.statusCalls++
	f.newStatus = status
	return nil
}

func (f *fakeAppointmentRepo) Cancel(_ context.Context, _ uuid.UUID, reason string) error {
	f.cancelCalls++
	f.cancelReason = reason
	return nil
}

type fakeServiceRepo struct {
	info *domain.ServiceInfo
	err  error
}

func (f *fakeServiceRepo) GetByID(_ context.Context, _, _ uuid.UUID) (*domain.ServiceInfo, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.info, nil
}

type fakeProfileRepo struct {
	profiles map[uuid.UUID]*domain.Profile
}

func (f *fakeProfileRepo) GetProfile(_ context.Context, profileID uuid.UUID) (*domain.Profile, error) {
	p, ok := f.profiles[profileID]
	if !ok {
		return nil, tenantRepo.ErrProfileNotFound
	}
	return p, nil
}

type fakeInvalidator struct {
	calls int
}

func (f *fakeInvalidator) InvalidateDay(_, _ uuid.UUID, _ time.Time) {
	f.calls++
}

var (
	testNow      = time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	testTenantID = uuid.New()
	clientID     = uuid.New()
	ownerID      = uuid.New()
	strangerID   = uuid.New()
)

type testEnv struct {
	svc          *Service
	appointments *fakeAppointmentRepo
	services     *fakeServiceRepo
	invalidator  *fakeInvalidator
}

func newTestEnv() *testEnv {
	// Запись завтра в 10:00
	appointment := &domain.Appointment{
		ID:              uuid.New(),
		TenantID:        testTenantID,
		EmployeeID:      uuid.New(),
		ServiceID:       uuid.New(),
		ClientID:        clientID,
		Date:            time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC),
		StartTime:       "10:00",
		DurationMinutes: 30,
		Status:          domain.StatusScheduled,
	}

	env := &testEnv{
		appointments: &fakeAppointmentRepo{appointment: appointment},
		services: &fakeServiceRepo{info: &domain.ServiceInfo{
			DurationMinutes:      30,
			SimultaneousLimit:    1,
			CancelMinNoticeHours: 0,
		}},
		invalidator: &fakeInvalidator{},
	}

	profiles := &fakeProfileRepo{profiles: map[uuid.UUID]*domain.Profile{
		ownerID:    {ID: ownerID, TenantID: testTenantID, Role: domain.RoleOwner},
		strangerID: {ID: strangerID, TenantID: uuid.New(), Role: domain.RoleClient},
	}}

	env.svc = NewService(env.appointments, env.services, profiles, env.invalidator, nopLogger{})
	env.svc.timeProvider = &fixedTimeProvider{now: testNow}

	return env
}

func TestGetByID_ClientSeesOwnAppointment(t *testing.T) {
	env := newTestEnv()

	resp, err := env.svc.GetByID(context.Background(), env.appointments.appointment.ID, clientID)

	require.NoError(t, err)
	assert.Equal(t, "10:00", resp.StartTime)
	assert.Equal(t, "2026-03-03", resp.Date)
}

func TestGetByID_OwnerSeesTenantAppointment(t *testing.T) {
	env := newTestEnv()

	_, err := env.svc.GetByID(context.Background(), env.appointments.appointment.ID, ownerID)

	require.NoError(t, err)
}

func TestGetByID_StrangerDenied(t *testing.T) {
	env := newTestEnv()

	_, err := env.svc.GetByID(context.Background(), env.appointments.appointment.ID, strangerID)

	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetByID_NotFound(t *testing.T) {
	env := newTestEnv()
	env.appointments.appointment = nil

	_, err := env.svc.GetByID(context.Background(), uuid.New(), clientID)

	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestCancel_ByClient(t *testing.T) {
	env := newTestEnv()

	err := env.svc.Cancel(context.Background(), env.appointments.appointment.ID, &models.CancelAppointmentRequest{
		UserID:             clientID,
		CancellationReason: "imprevisto",
	})

	require.NoError(t, err)
	assert.Equal(t, 1, env.appointments.cancelCalls)
	assert.Equal(t, "imprevisto", env.appointments.cancelReason)
	assert.Equal(t, 1, env.invalidator.calls, "freed slot must reappear in availability")
}

func TestCancel_ClientBlockedByNoticePeriod(t *testing.T) {
	env := newTestEnv()
	// Запись завтра в 10:00, сейчас 08:00 - до начала 26 часов, требуется 48
	env.services.info.CancelMinNoticeHours = 48

	err := env.svc.Cancel(context.Background(), env.appointments.appointment.ID, &models.CancelAppointmentRequest{
		UserID: clientID,
	})

	assert.ErrorIs(t, err, ErrCancelNoticeExpired)
	assert.Equal(t, 0, env.appointments.cancelCalls)
}

func TestCancel_ClientWithinNoticePeriod(t *testing.T) {
	env := newTestEnv()
	env.services.info.CancelMinNoticeHours = 12

	err := env.svc.Cancel(context.Background(), env.appointments.appointment.ID, &models.CancelAppointmentRequest{
		UserID: clientID,
	})

	require.NoError(t, err)
}

func TestCancel_BusinessIgnoresNoticePeriod(t *testing.T) {
	env := newTestEnv()
	env.services.info.CancelMinNoticeHours = 48

	err := env.svc.Cancel(context.Background(), env.appointments.appointment.ID, &models.CancelAppointmentRequest{
		UserID:             ownerID,
		CancellationReason: "employee unavailable",
	})

	require.NoError(t, err)
}

func TestCancel_MissingServiceLiftsNoticeRestriction(t *testing.T) {
	env := newTestEnv()
	env.services.err = serviceRepo.ErrServiceNotFound

	err := env.svc.Cancel(context.Background(), env.appointments.appointment.ID, &models.CancelAppointmentRequest{
		UserID: clientID,
	})

	require.NoError(t, err)
}

func TestCancel_StrangerDenied(t *testing.T) {
	env := newTestEnv()

	err := env.svc.Cancel(context.Background(), env.appointments.appointment.ID, &models.CancelAppointmentRequest{
		UserID: strangerID,
	})

	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestCancel_AlreadyCompleted(t *testing.T) {
	env := newTestEnv()
	env.appointments.appointment.Status = domain.StatusCompleted

	err := env.svc.Cancel(context.Background(), env.appointments.appointment.ID, &models.CancelAppointmentRequest{
		UserID: clientID,
	})

	assert.ErrorIs(t, err, ErrCannotCancel)
}

func TestUpdateStatus_ByOwner(t *testing.T) {
	env := newTestEnv()

	err := env.svc.UpdateStatus(context.Background(), env.appointments.appointment.ID, &models.UpdateStatusRequest{
		UserID: ownerID,
		Status: "confirmed",
	})

	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, env.appointments.newStatus)
	assert.Equal(t, 1, env.invalidator.calls)
}

func TestUpdateStatus_InvalidStatus(t *testing.T) {
	env := newTestEnv()

	err := env.svc.UpdateStatus(context.Background(), env.appointments.appointment.ID, &models.UpdateStatusRequest{
		UserID: ownerID,
		Status: "nonsense",
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetEmployeeAgenda_AccessControl(t *testing.T) {
	env := newTestEnv()
	env.appointments.list = []*domain.Appointment{env.appointments.appointment}

	resp, err := env.svc.GetEmployeeAgenda(context.Background(), &models.GetEmployeeAgendaRequest{
		UserID:     ownerID,
		TenantID:   testTenantID,
		EmployeeID: env.appointments.appointment.EmployeeID,
	})
	require.NoError(t, err)
	assert.Len(t, resp.Appointments, 1)

	_, err = env.svc.GetEmployeeAgenda(context.Background(), &models.GetEmployeeAgendaRequest{
		UserID:     strangerID,
		TenantID:   testTenantID,
		EmployeeID: env.appointments.appointment.EmployeeID,
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}
