package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/lalbertoreis/mikro-kontrola-app-blueprint-67-sub001/pkg/types"
)

// Shift represents one contiguous working window of an employee on one
// weekday. An employee has at most one shift per weekday in this model;
// if several rows exist, the first match wins.
type Shift struct {
	ID         uuid.UUID
	TenantID   uuid.UUID
	EmployeeID uuid.UUID
	Weekday    time.Weekday // 0=Sunday .. 6=Saturday
	StartTime  types.TimeString
	EndTime    types.TimeString
}

// IsValid returns true if the shift window is non-empty
func (s *Shift) IsValid() bool {
	return !s.StartTime.IsZero() && !s.EndTime.IsZero() && s.StartTime.IsBefore(s.EndTime)
}

// HolidayBlockingType describes how a holiday removes availability
type HolidayBlockingType string

const (
	BlockingFullDay   HolidayBlockingType = "full_day"
	BlockingMorning   HolidayBlockingType = "morning"
	BlockingAfternoon HolidayBlockingType = "afternoon"
	BlockingCustom    HolidayBlockingType = "custom"
)

const (
	morningBlockStart   = types.TimeString("00:00")
	morningBlockEnd     = types.TimeString("12:00")
	afternoonBlockStart = types.TimeString("12:00")
	afternoonBlockEnd   = types.TimeString("24:00")
)

// Holiday represents a date-scoped blackout rule of a business,
// independent of shifts and appointments
type Holiday struct {
	ID              uuid.UUID
	TenantID        uuid.UUID
	Date            time.Time
	IsActive        bool
	BlockingType    HolidayBlockingType
	CustomStartTime *types.TimeString
	CustomEndTime   *types.TimeString
	Reason          *string
}

// IsFullDay returns true if the holiday removes the whole date
func (h *Holiday) IsFullDay() bool {
	return h.BlockingType == BlockingFullDay
}

// BlockWindow returns the half-open [start, end) window the holiday blocks.
// Returns ok=false for full_day holidays (the caller short-circuits those)
// and for custom holidays missing either boundary.
func (h *Holiday) BlockWindow() (start, end types.TimeString, ok bool) {
	switch h.BlockingType {
	case BlockingMorning:
		return morningBlockStart, morningBlockEnd, true
	case BlockingAfternoon:
		return afternoonBlockStart, afternoonBlockEnd, true
	case BlockingCustom:
		if h.CustomStartTime == nil || h.CustomEndTime == nil {
			return "", "", false
		}
		return *h.CustomStartTime, *h.CustomEndTime, true
	default:
		return "", "", false
	}
}

// WeekdayAtNoon derives the weekday of a date using noon as the reference
// time of day. Deriving from midnight is fragile: a timezone or DST shift
// can move midnight across a day boundary and yield the previous weekday.
func WeekdayAtNoon(date time.Time) time.Weekday {
	noon := time.Date(date.Year(), date.Month(), date.Day(), 12, 0, 0, 0, date.Location())
	return noon.Weekday()
}
