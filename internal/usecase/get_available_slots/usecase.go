package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/lalbertoreis/mikro-kontrola-app-blueprint-67-sub001/internal/domain"
	"github.com/lalbertoreis/mikro-kontrola-app-blueprint-67-sub001/internal/service/schedule"
	"github.com/lalbertoreis/mikro-kontrola-app-blueprint-67-sub001/pkg/ttlcache"
	"github.com/lalbertoreis/mikro-kontrola-app-blueprint-67-sub001/pkg/types"
)

// UseCase use case для получения доступных слотов для записи.
//
// Публичная точка входа никогда не падает из-за внутренних сбоев: при
// недоступности источников ответ деградирует до пустого списка слотов.
// Наружу уходят только ошибки валидации и "тенант не найден".
type UseCase struct {
	tenantProvider      TenantProvider
	shiftProvider       ShiftProvider
	serviceProvider     ServiceInfoProvider
	appointmentProvider AppointmentProvider
	holidayProvider     HolidayProvider
	intervalProvider    SlotIntervalProvider
	resultCache         *ttlcache.Cache[[]types.TimeString]
	timeProvider        TimeProvider
	logger              Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	tenantProvider TenantProvider,
	shiftProvider ShiftProvider,
	serviceProvider ServiceInfoProvider,
	appointmentProvider AppointmentProvider,
	holidayProvider HolidayProvider,
	intervalProvider SlotIntervalProvider,
	resultCache *ttlcache.Cache[[]types.TimeString],
	logger Logger,
) *UseCase {
	return &UseCase{
		tenantProvider:      tenantProvider,
		shiftProvider:       shiftProvider,
		serviceProvider:     serviceProvider,
		appointmentProvider: appointmentProvider,
		holidayProvider:     holidayProvider,
		intervalProvider:    intervalProvider,
		resultCache:         resultCache,
		timeProvider:        &RealTimeProvider{},
		logger:              logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: tenant=%s, employee=%s, service=%s, date=%s",
		req.TenantSlug, req.EmployeeID, req.ServiceID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Кэш готового результата: повторный запрос в пределах TTL не делает
	// ни одного обращения к источникам
	cacheKey := resultCacheKey(req)
	if slots, ok := uc.resultCache.Get(cacheKey, domain.SlotsResultCacheTTL); ok {
		uc.logger.Info("GetAvailableSlots: cache hit for %s", cacheKey)
		return uc.response(req, slots), nil
	}

	// 3. Резолвим тенанта по slug
	tenant, err := uc.tenantProvider.GetBySlug(ctx, req.TenantSlug)
	if err != nil {
		if errors.Is(err, schedule.ErrTenantNotFound) {
			uc.logger.Warn("GetAvailableSlots: tenant slug=%s not found", req.TenantSlug)
			return nil, ErrTenantNotFound
		}
		// Внутренний сбой - деградируем до пустого списка, не роняя вызывающего
		uc.logger.Error("GetAvailableSlots: degraded to empty list, tenant lookup failed: %v", err)
		return uc.response(req, []types.TimeString{}), nil
	}

	slots := uc.computeSlots(ctx, tenant, req)

	// Пустой результат кэшируется наравне с непустым
	uc.resultCache.Set(cacheKey, slots)

	uc.logger.Info("GetAvailableSlots: %d slots for tenant=%s, employee=%s, date=%s",
		len(slots), req.TenantSlug, req.EmployeeID, req.Date.Format(domain.DateFormat))

	return uc.response(req, slots), nil
}

// computeSlots считает доступные слоты. Провайдеры деградируют до безопасных
// значений сами, поэтому расчет всегда завершается списком (возможно пустым).
func (uc *UseCase) computeSlots(ctx context.Context, tenant *domain.Tenant, req *Request) []types.TimeString {
	now := uc.timeProvider.Now()

	if isDateInPast(req.Date, now) {
		uc.logger.Info("GetAvailableSlots: date %s is in the past", req.Date.Format(domain.DateFormat))
		return []types.TimeString{}
	}

	// День недели берем от полудня даты, чтобы сдвиг таймзоны через полночь
	// не уводил на соседний день
	weekday := domain.WeekdayAtNoon(req.Date)

	// Нет смены - сотрудник в этот день не работает
	shift := uc.shiftProvider.GetShift(ctx, tenant.ID, req.EmployeeID, weekday)
	if shift == nil {
		uc.logger.Info("GetAvailableSlots: no shift for employee=%s on weekday=%d", req.EmployeeID, weekday)
		return []types.TimeString{}
	}

	serviceInfo := uc.serviceProvider.GetServiceInfo(ctx, tenant.ID, req.ServiceID)

	if isBeyondFutureLimit(req.Date, now, serviceInfo.FutureBookingLimitDays) {
		uc.logger.Info("GetAvailableSlots: date %s is beyond the %d-day booking horizon",
			req.Date.Format(domain.DateFormat), serviceInfo.FutureBookingLimitDays)
		return []types.TimeString{}
	}

	appointments := uc.appointmentProvider.GetAppointmentsForDay(ctx, tenant.ID, req.EmployeeID, req.Date)
	interval := uc.intervalProvider.GetInterval(ctx, tenant.ID)
	holidays := uc.holidayProvider.GetHolidays(ctx, tenant.ID, req.Date)

	candidates := generateTimeSlots(shift.StartTime, shift.EndTime, interval, serviceInfo.DurationMinutes)

	// На сегодня не показываем уже прошедшее время
	if isSameDay(req.Date, now) {
		candidates = filterPastSlots(candidates, types.NewTimeString(now))
	}

	return filterSlots(candidates, serviceInfo.DurationMinutes, holidays, appointments, serviceInfo.SimultaneousLimit)
}

func (uc *UseCase) response(req *Request, slots []types.TimeString) *Response {
	return &Response{
		Date:       req.Date,
		EmployeeID: req.EmployeeID,
		ServiceID:  req.ServiceID,
		Slots:      slots,
	}
}

// resultCacheKey строит ключ кэша результата по всем входам запроса.
// Slug тенанта входит в ключ, чтобы исключить межтенантное переиспользование.
func resultCacheKey(req *Request) string {
	return fmt.Sprintf("slots:%s:%s:%s:%s",
		req.TenantSlug, req.EmployeeID, req.ServiceID, req.Date.Format(domain.DateFormat))
}
