package get_available_slots

import (
	"github.com/lalbertoreis/mikro-kontrola-app-blueprint-67-sub001/internal/domain"
	"github.com/lalbertoreis/mikro-kontrola-app-blueprint-67-sub001/pkg/types"
)

// generateTimeSlots генерирует кандидатные слоты в пределах смены.
// Кандидаты идут от начала смены с фиксированным шагом intervalMinutes,
// строго по возрастанию. Кандидат попадает в результат, только если услуга
// целиком умещается до конца смены: slotStart + durationMinutes <= shiftEnd.
//
// Пустая или вырожденная смена и услуга длиннее смены дают пустой список,
// а не ошибку.
func generateTimeSlots(shiftStart, shiftEnd types.TimeString, intervalMinutes, durationMinutes int) []types.TimeString {
	slots := make([]types.TimeString, 0)

	if intervalMinutes <= 0 || durationMinutes <= 0 || !shiftStart.IsBefore(shiftEnd) {
		return slots
	}

	current := shiftStart
	for current.IsBefore(shiftEnd) {
		slotEnd, err := current.AddMinutes(durationMinutes)
		if err != nil || slotEnd.IsAfter(shiftEnd) {
			// Следующие кандидаты только позже - дальше не уместится ничего
			break
		}

		slots = append(slots, current)

		next, err := current.AddMinutes(intervalMinutes)
		if err != nil {
			break
		}
		current = next
	}

	return slots
}

// filterSlots отбрасывает кандидатов, попадающих под блокировки или
// исчерпавших лимит одновременных записей.
//
// Блокировка full_day убирает весь день независимо от кандидатов.
// Частичные блокировки (morning/afternoon/custom) и записи проверяются
// пересечением полуоткрытых интервалов [start, end).
func filterSlots(
	candidates []types.TimeString,
	durationMinutes int,
	holidays []*domain.Holiday,
	appointments []*domain.Appointment,
	simultaneousLimit int,
) []types.TimeString {
	result := make([]types.TimeString, 0, len(candidates))

	for _, h := range holidays {
		if h.IsFullDay() {
			return result
		}
	}

	for _, slotStart := range candidates {
		slotEnd, err := slotStart.AddMinutes(durationMinutes)
		if err != nil {
			continue
		}

		if overlapsHolidayBlock(slotStart, slotEnd, holidays) {
			continue
		}

		if countOverlappingAppointments(slotStart, slotEnd, appointments) >= simultaneousLimit {
			continue
		}

		result = append(result, slotStart)
	}

	return result
}

// overlapsHolidayBlock проверяет, пересекается ли слот с окном частичной блокировки
func overlapsHolidayBlock(slotStart, slotEnd types.TimeString, holidays []*domain.Holiday) bool {
	for _, h := range holidays {
		blockStart, blockEnd, ok := h.BlockWindow()
		if !ok {
			continue
		}
		if intervalsOverlap(slotStart, slotEnd, blockStart, blockEnd) {
			return true
		}
	}
	return false
}

// countOverlappingAppointments подсчитывает количество записей, пересекающихся со слотом.
// Учитываются только записи, занимающие слот (отмененные и завершенные - нет).
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

		if intervalsOverlap(a.StartTime, apptEnd, slotStart, slotEnd) {
			count++
		}
	}

	return count
}

// intervalsOverlap проверяет реальное пересечение полуоткрытых интервалов [a1,a2) и [b1,b2).
// Используются строгие неравенства: интервалы, граничащие точка-в-точку
// (a2 == b1 или b2 == a1), пересечением НЕ считаются.
//
// Примеры:
// - Слот 11:30-12:00, запись 11:20-11:40 → ЕСТЬ пересечение (11:30-11:40)
// - Слот 11:30-12:00, запись 11:00-11:30 → НЕТ пересечения (граничат)
// - Слот 11:30-12:00, запись 12:00-12:30 → НЕТ пересечения (граничат)
func intervalsOverlap(a1, a2, b1, b2 types.TimeString) bool {
	return a1.IsBefore(b2) && b1.IsBefore(a2)
}

// filterPastSlots убирает слоты, начинающиеся раньше minStart.
// Применяется при запросе слотов на сегодня, чтобы не показывать уже прошедшее время.
func filterPastSlots(slots []types.TimeString, minStart types.TimeString) []types.TimeString {
	result := make([]types.TimeString, 0, len(slots))
	for _, s := range slots {
		if !s.IsBefore(minStart) {
			result = append(result, s)
		}
	}
	return result
}
