package appointments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/lalbertoreis/mikro-kontrola-app-blueprint-67-sub001/internal/domain"
	appointmentRepo "github.com/lalbertoreis/mikro-kontrola-app-blueprint-67-sub001/internal/infra/storage/appointment"
	serviceRepo "github.com/lalbertoreis/mikro-kontrola-app-blueprint-67-sub001/internal/infra/storage/service"
	tenantRepo "github.com/lalbertoreis/mikro-kontrola-app-blueprint-67-sub001/internal/infra/storage/tenant"
	"github.com/lalbertoreis/mikro-kontrola-app-blueprint-67-sub001/internal/service/appointments/models"
)

// Service сервис для работы с записями
type Service struct {
	appointmentRepo AppointmentRepository
	serviceRepo     ServiceRepository
	profileRepo     ProfileRepository
	invalidator     AvailabilityInvalidator
	timeProvider    TimeProvider
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	appointmentRepo AppointmentRepository,
	serviceRepo ServiceRepository,
	profileRepo ProfileRepository,
	invalidator AvailabilityInvalidator,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		serviceRepo:     serviceRepo,
		profileRepo:     profileRepo,
		invalidator:     invalidator,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// GetByID получает запись по ID
// Проверяет права доступа - клиент видит только свои записи,
// владелец и сотрудники бизнеса видят записи своего тенанта
func (s *Service) GetByID(ctx context.Context, id uuid.UUID, userID uuid.UUID) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%s for user=%s", id, userID)

	appointment, err := s.getAppointment(ctx, id, "GetByID")
	if err != nil {
		return nil, err
	}

	if err := s.checkUserAccess(ctx, appointment, userID); err != nil {
		s.logger.Warn("GetByID: access denied for user=%s to appointment id=%s", userID, id)
		return nil, err
	}

	s.logger.Info("GetByID: successfully fetched appointment id=%s", id)
	return models.FromDomainAppointment(appointment), nil
}

// GetClientAppointments получает историю записей клиента
// Опционально фильтрует по статусу
func (s *Service) GetClientAppointments(ctx context.Context, req *models.GetClientAppointmentsRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("GetClientAppointments: fetching appointments for client=%s, status=%v", req.ClientID, req.Status)

	var domainStatus *domain.AppointmentStatus
	if req.Status != nil {
		status, err := models.ToDomainAppointmentStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetClientAppointments: invalid status=%s for client=%s", *req.Status, req.ClientID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	appointments, err := s.appointmentRepo.ListByClient(ctx, req.TenantID, req.ClientID, domainStatus)
	if err != nil {
		s.logger.Error("GetClientAppointments: repository error for client=%s: %v", req.ClientID, err)
		return nil, fmt.Errorf("%w: GetClientAppointments - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetClientAppointments: successfully fetched %d appointments for client=%s",
		len(appointments), req.ClientID)
	return models.FromDomainAppointmentList(appointments), nil
}

// GetEmployeeAgenda получает записи сотрудника с гибкой фильтрацией.
// Доступно владельцу и сотрудникам бизнеса.
//
// Примеры использования:
// - Записи на дату: StartDate и EndDate указывают на одну дату
// - Записи за период: StartDate и EndDate указывают на разные даты
// - Только подтвержденные: указать Status = "confirmed"
// - Вместе со служебными блокировками времени: IncludeBlocked = true
func (s *Service) GetEmployeeAgenda(ctx context.Context, req *models.GetEmployeeAgendaRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("GetEmployeeAgenda: fetching agenda for employee=%s, tenant=%s, user=%s",
		req.EmployeeID, req.TenantID, req.UserID)

	if err := s.checkBusinessAccess(ctx, req.TenantID, req.UserID); err != nil {
		return nil, err
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetEmployeeAgenda: invalid filter for employee=%s: %v", req.EmployeeID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	appointments, err := s.appointmentRepo.ListWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetEmployeeAgenda: repository error for employee=%s: %v", req.EmployeeID, err)
		return nil, fmt.Errorf("%w: GetEmployeeAgenda - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetEmployeeAgenda: successfully fetched %d appointments for employee=%s",
		len(appointments), req.EmployeeID)
	return models.FromDomainAppointmentList(appointments), nil
}

// Cancel отменяет запись
// Клиент может отменить свою запись с учетом минимального срока отмены услуги.
// Владелец и сотрудники бизнеса могут отменить любую запись тенанта без ограничения по сроку.
func (s *Service) Cancel(ctx context.Context, appointmentID uuid.UUID, req *models.CancelAppointmentRequest) error {
	s.logger.Info("Cancel: cancelling appointment id=%s by user=%s", appointmentID, req.UserID)

	appointment, err := s.getAppointment(ctx, appointmentID, "Cancel")
	if err != nil {
		return err
	}

	if !appointment.CanBeCancelled() {
		s.logger.Warn("Cancel: appointment id=%s cannot be cancelled, status=%s", appointmentID, appointment.Status)
		return ErrCannotCancel
	}

	if appointment.ClientID == req.UserID {
		// Клиент отменяет свою запись - действует минимальный срок отмены
		if err := s.checkCancelNotice(ctx, appointment); err != nil {
			return err
		}
	} else {
		if err := s.checkBusinessAccess(ctx, appointment.TenantID, req.UserID); err != nil {
			s.logger.Warn("Cancel: access denied for user=%s to cancel appointment id=%s", req.UserID, appointmentID)
			return ErrAccessDenied
		}
	}

	if err := s.appointmentRepo.Cancel(ctx, appointmentID, req.CancellationReason); err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("Cancel: appointment id=%s not found during cancellation", appointmentID)
			return ErrAppointmentNotFound
		}
		s.logger.Error("Cancel: repository error for appointment id=%s: %v", appointmentID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	// Освободившийся слот должен появиться в доступности сразу
	s.invalidator.InvalidateDay(appointment.TenantID, appointment.EmployeeID, appointment.Date)

	s.logger.Info("Cancel: successfully cancelled appointment id=%s", appointmentID)
	return nil
}

// UpdateStatus обновляет статус записи
// Доступно владельцу и сотрудникам бизнеса
func (s *Service) UpdateStatus(ctx context.Context, appointmentID uuid.UUID, req *models.UpdateStatusRequest) error {
	s.logger.Info("UpdateStatus: updating appointment id=%s to status=%s by user=%s",
		appointmentID, req.Status, req.UserID)

	appointment, err := s.getAppointment(ctx, appointmentID, "UpdateStatus")
	if err != nil {
		return err
	}

	if err := s.checkBusinessAccess(ctx, appointment.TenantID, req.UserID); err != nil {
		return err
	}

	newStatus, err := models.ToDomainAppointmentStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for appointment id=%s", req.Status, appointmentID)
		return fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	if err := s.appointmentRepo.UpdateStatus(ctx, appointmentID, newStatus); err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("UpdateStatus: appointment id=%s not found during update", appointmentID)
			return ErrAppointmentNotFound
		}
		s.logger.Error("UpdateStatus: repository error for appointment id=%s: %v", appointmentID, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	// Смена статуса может занять или освободить слот
	s.invalidator.InvalidateDay(appointment.TenantID, appointment.EmployeeID, appointment.Date)

	s.logger.Info("UpdateStatus: successfully updated appointment id=%s to status=%s", appointmentID, newStatus)
	return nil
}

// Вспомогательные методы

func (s *Service) getAppointment(ctx context.Context, id uuid.UUID, method string) (*domain.Appointment, error) {
	appointment, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("%s: appointment id=%s not found", method, id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("%s: repository error for appointment id=%s: %v", method, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, method, err)
	}
	return appointment, nil
}

// checkUserAccess проверяет, что пользователь имеет доступ к записи.
// Клиент видит свою запись, владелец и сотрудники - записи своего тенанта.
func (s *Service) checkUserAccess(ctx context.Context, appointment *domain.Appointment, userID uuid.UUID) error {
	if appointment.ClientID == userID {
		return nil
	}

	if err := s.checkBusinessAccess(ctx, appointment.TenantID, userID); err != nil {
		return ErrAccessDenied
	}

	return nil
}

// checkBusinessAccess проверяет, что пользователь действует от имени бизнеса-тенанта
func (s *Service) checkBusinessAccess(ctx context.Context, tenantID uuid.UUID, userID uuid.UUID) error {
	profile, err := s.profileRepo.GetProfile(ctx, userID)
	if err != nil {
		if errors.Is(err, tenantRepo.ErrProfileNotFound) {
			s.logger.Warn("checkBusinessAccess: profile id=%s not found", userID)
			return ErrAccessDenied
		}
		s.logger.Error("checkBusinessAccess: failed to get profile id=%s: %v", userID, err)
		return fmt.Errorf("%w: checkBusinessAccess - failed to get profile: %v", ErrInternal, err)
	}

	if profile.TenantID != tenantID {
		s.logger.Warn("checkBusinessAccess: user=%s belongs to another tenant", userID)
		return ErrAccessDenied
	}

	if profile.Role != domain.RoleOwner && profile.Role != domain.RoleEmployee {
		s.logger.Warn("checkBusinessAccess: user=%s has role=%s, business role required", userID, profile.Role)
		return ErrAccessDenied
	}

	return nil
}

// checkCancelNotice проверяет минимальный срок отмены услуги.
// Если услуга уже удалена, ограничение не применяется.
func (s *Service) checkCancelNotice(ctx context.Context, appointment *domain.Appointment) error {
	info, err := s.serviceRepo.GetByID(ctx, appointment.TenantID, appointment.ServiceID)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			return nil
		}
		s.logger.Error("checkCancelNotice: failed to get service id=%s: %v", appointment.ServiceID, err)
		return fmt.Errorf("%w: checkCancelNotice - failed to get service: %v", ErrInternal, err)
	}

	if info.CancelMinNoticeHours <= 0 {
		return nil
	}

	start, err := appointmentStart(appointment)
	if err != nil {
		s.logger.Error("checkCancelNotice: failed to compute start of appointment id=%s: %v", appointment.ID, err)
		return fmt.Errorf("%w: checkCancelNotice - invalid start time: %v", ErrInternal, err)
	}

	deadline := start.Add(-time.Duration(info.CancelMinNoticeHours) * time.Hour)
	if s.timeProvider.Now().After(deadline) {
		s.logger.Warn("checkCancelNotice: appointment id=%s requires %d hours notice",
			appointment.ID, info.CancelMinNoticeHours)
		return fmt.Errorf("%w: requires %d hours notice", ErrCancelNoticeExpired, info.CancelMinNoticeHours)
	}

	return nil
}

// appointmentStart собирает момент начала записи из даты и времени начала
func appointmentStart(a *domain.Appointment) (time.Time, error) {
	minutes, err := a.StartTime.Minutes()
	if err != nil {
		return time.Time{}, err
	}

	day := time.Date(a.Date.Year(), a.Date.Month(), a.Date.Day(), 0, 0, 0, 0, a.Date.Location())
	return day.Add(time.Duration(minutes) * time.Minute), nil
}
