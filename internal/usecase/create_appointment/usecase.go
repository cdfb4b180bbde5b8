package create_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/lalbertoreis/mikro-kontrola-app-blueprint-67-sub001/internal/domain"
	serviceRepo "github.com/lalbertoreis/mikro-kontrola-app-blueprint-67-sub001/internal/infra/storage/service"
	"github.com/lalbertoreis/mikro-kontrola-app-blueprint-67-sub001/internal/service/schedule"
)

// UseCase use case для создания записи к сотруднику.
//
// Показанная клиенту доступность - только ориентир: между показом и
// подтверждением слот могли занять. Авторитетная проверка лимита выполняется
// здесь, в сериализуемой транзакции с блокировкой записей дня.
type UseCase struct {
	appointmentRepo AppointmentRepository
	shiftRepo       ShiftRepository
	serviceRepo     ServiceRepository
	holidayRepo     HolidayRepository
	tenantProvider  TenantProvider
	invalidator     AvailabilityInvalidator
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	shiftRepo ShiftRepository,
	serviceRepo ServiceRepository,
	holidayRepo HolidayRepository,
	tenantProvider TenantProvider,
	invalidator AvailabilityInvalidator,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		shiftRepo:       shiftRepo,
		serviceRepo:     serviceRepo,
		holidayRepo:     holidayRepo,
		tenantProvider:  tenantProvider,
		invalidator:     invalidator,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания записи
// Использует сериализуемую транзакцию для предотвращения гонки данных
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: tenant=%s, client=%s, employee=%s, service=%s, date=%s, time=%s",
		req.TenantSlug, req.ClientID, req.EmployeeID, req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	// 2. Резолвим тенанта по slug
	tenant, err := uc.tenantProvider.GetBySlug(ctx, req.TenantSlug)
	if err != nil {
		if errors.Is(err, schedule.ErrTenantNotFound) {
			uc.logger.Warn("CreateAppointment: tenant slug=%s not found", req.TenantSlug)
			return nil, ErrTenantNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get tenant slug=%s: %v", req.TenantSlug, err)
		return nil, fmt.Errorf("%w: failed to get tenant: %v", ErrInternal, err)
	}

	// 3. Получаем услугу. В отличие от расчета доступности здесь нет
	// деградации до дефолтов: записаться можно только на существующую услугу
	serviceInfo, err := uc.serviceRepo.GetByID(ctx, tenant.ID, req.ServiceID)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateAppointment: service id=%s not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get service id=%s: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	serviceInfo.ApplyDefaults()

	// 4. Валидация даты и времени
	if err := validateDate(req.Date, now, serviceInfo.FutureBookingLimitDays); err != nil {
		uc.logger.Warn("CreateAppointment: date validation failed: %v", err)
		return nil, err
	}

	if err := validateStartTimeNotPassed(req.Date, req.StartTime, now); err != nil {
		uc.logger.Warn("CreateAppointment: start time validation failed: %v", err)
		return nil, err
	}

	slotEnd, err := req.StartTime.AddMinutes(serviceInfo.DurationMinutes)
	if err != nil {
		uc.logger.Warn("CreateAppointment: slot does not fit into the day: %v", err)
		return nil, fmt.Errorf("%w: slot end out of range: %v", ErrInvalidInput, err)
	}

	// 5. Проверяем смену сотрудника
	weekday := domain.WeekdayAtNoon(req.Date)
	shifts, err := uc.shiftRepo.ListByEmployeeAndWeekday(ctx, tenant.ID, req.EmployeeID, weekday)
	if err != nil {
		uc.logger.Error("CreateAppointment: failed to get shifts: %v", err)
		return nil, fmt.Errorf("%w: failed to get shifts: %v", ErrInternal, err)
	}

	shift := firstValidShift(shifts)
	if shift == nil {
		uc.logger.Warn("CreateAppointment: employee=%s has no shift on weekday=%d", req.EmployeeID, weekday)
		return nil, ErrEmployeeNotWorking
	}

	if err := validateWithinShift(shift, req.StartTime, slotEnd); err != nil {
		uc.logger.Warn("CreateAppointment: slot %s-%s outside shift %s-%s",
			req.StartTime, slotEnd, shift.StartTime, shift.EndTime)
		return nil, err
	}

	// 6. Проверяем блокировки даты
	holidays, err := uc.holidayRepo.ListActiveByDate(ctx, tenant.ID, req.Date)
	if err != nil {
		uc.logger.Error("CreateAppointment: failed to get holidays: %v", err)
		return nil, fmt.Errorf("%w: failed to get holidays: %v", ErrInternal, err)
	}

	if err := validateNotBlocked(holidays, req.StartTime, slotEnd); err != nil {
		uc.logger.Warn("CreateAppointment: date %s is blocked", req.Date.Format(domain.DateFormat))
		return nil, err
	}

	var result *domain.Appointment

	// 7. Проверка лимита и вставка в сериализуемой транзакции.
	// Повторное чтение записей дня внутри транзакции блокирует их FOR UPDATE:
	// конкурентное создание на тот же слот не пройдет проверку одновременно
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		appointments, err := uc.appointmentRepo.ListForEmployeeOnDate(txCtx, tenant.ID, req.EmployeeID, req.Date)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to get appointments: %v", err)
			return fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
		}

		overlapping := countOverlappingAppointments(req.StartTime, slotEnd, appointments)
		if overlapping >= serviceInfo.SimultaneousLimit {
			uc.logger.Warn("CreateAppointment: slot not available, %d/%d spots taken",
				overlapping, serviceInfo.SimultaneousLimit)
			return ErrSlotNotAvailable
		}

		uc.logger.Info("CreateAppointment: slot available, %d/%d spots taken",
			overlapping, serviceInfo.SimultaneousLimit)

		appointment := &domain.Appointment{
			TenantID:        tenant.ID,
			EmployeeID:      req.EmployeeID,
			ServiceID:       req.ServiceID,
			ClientID:        req.ClientID,
			Date:            req.Date,
			StartTime:       req.StartTime,
			DurationMinutes: serviceInfo.DurationMinutes,
			Status:          domain.StatusScheduled,
			// Денормализация данных услуги на момент записи
			ServiceName:  serviceInfo.Name,
			ServicePrice: servicePrice(serviceInfo),
			Notes:        req.Notes,
		}

		created, err := uc.appointmentRepo.Create(txCtx, appointment)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	// 8. Сбрасываем кэш занятости дня - доступность пересчитается сразу
	uc.invalidator.InvalidateDay(tenant.ID, req.EmployeeID, req.Date)

	uc.logger.Info("CreateAppointment: successfully created appointment id=%s", result.ID)

	return &Response{
		ID:              result.ID,
		TenantID:        result.TenantID,
		EmployeeID:      result.EmployeeID,
		ServiceID:       result.ServiceID,
		ClientID:        result.ClientID,
		Date:            result.Date,
		StartTime:       result.StartTime,
		DurationMinutes: result.DurationMinutes,
		Status:          string(result.Status),
		ServiceName:     result.ServiceName,
		ServicePrice:    result.ServicePrice,
		Notes:           result.Notes,
		CreatedAt:       result.CreatedAt,
		UpdatedAt:       result.UpdatedAt,
	}, nil
}

// firstValidShift возвращает первую валидную смену из списка или nil
func firstValidShift(shifts []*domain.Shift) *domain.Shift {
	for _, s := range shifts {
		if s.IsValid() {
			return s
		}
	}
	return nil
}

// servicePrice извлекает цену из услуги
// Если цена не указана (nil), возвращает 0.0
func servicePrice(info *domain.ServiceInfo) float64 {
	if info.Price == nil {
		return 0.0
	}
	return *info.Price
}
