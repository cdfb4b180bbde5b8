package create_appointment

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/lalbertoreis/mikro-kontrola-app-blueprint-67-sub001/internal/domain"
	"github.com/lalbertoreis/mikro-kontrola-app-blueprint-67-sub001/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.TenantSlug == "" {
		return fmt.Errorf("%w: tenantSlug is required", ErrInvalidInput)
	}

	if req.ClientID == uuid.Nil {
		return fmt.Errorf("%w: clientID is required", ErrInvalidInput)
	}

	if req.EmployeeID == uuid.Nil {
		return fmt.Errorf("%w: employeeID is required", ErrInvalidInput)
	}

	if req.ServiceID == uuid.Nil {
		return fmt.Errorf("%w: serviceID is required", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must be at most %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// validateDate проверяет, что дата подходит для записи
func validateDate(date time.Time, now time.Time, futureLimitDays int) error {
	if isDateInPast(date, now) {
		return ErrInvalidDate
	}

	// futureLimitDays = 0 означает отсутствие ограничения
	if futureLimitDays <= 0 {
		return nil
	}

	maxDate := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).
		AddDate(0, 0, futureLimitDays)

	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())

	if dateOnly.After(maxDate) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, futureLimitDays)
	}

	return nil
}

// validateStartTimeNotPassed проверяет, что при записи на сегодня время еще не прошло
func validateStartTimeNotPassed(date time.Time, startTime types.TimeString, now time.Time) error {
	if !isSameDay(date, now) {
		return nil
	}

	if startTime.IsBefore(types.NewTimeString(now)) {
		return fmt.Errorf("%w: start time has already passed", ErrInvalidDate)
	}

	return nil
}

// validateWithinShift проверяет, что слот целиком умещается в смену сотрудника
func validateWithinShift(shift *domain.Shift, slotStart, slotEnd types.TimeString) error {
	if slotStart.IsBefore(shift.StartTime) || slotEnd.IsAfter(shift.EndTime) {
		return ErrOutsideWorkingHours
	}
	return nil
}

// validateNotBlocked проверяет, что слот не попадает под блокировки даты
func validateNotBlocked(holidays []*domain.Holiday, slotStart, slotEnd types.TimeString) error {
	for _, h := range holidays {
		if h.IsFullDay() {
			return ErrDateBlocked
		}

		blockStart, blockEnd, ok := h.BlockWindow()
		if !ok {
			continue
		}
		if slotStart.IsBefore(blockEnd) && blockStart.IsBefore(slotEnd) {
			return ErrDateBlocked
		}
	}
	return nil
}

// countOverlappingAppointments подсчитывает количество занимающих слот записей,
// пересекающихся с [slotStart, slotEnd). Строгие неравенства: граничащие
// точка-в-точку интервалы пересечением не считаются.
func countOverlappingAppointments(slotStart, slotEnd types.TimeString, appointments []*domain.Appointment) int {
	count := 0

	for _, a := range appointments {
		if !a.Occupies() {
			continue
		}

		apptEnd, err := a.EndTime()
		if err != nil {
			continue
		}

		if a.StartTime.IsBefore(slotEnd) && apptEnd.IsAfter(slotStart) {
			count++
		}
	}

	return count
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	// Обнуляем время, чтобы сравнивать только даты
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
