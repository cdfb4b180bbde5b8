package domain

import "time"

// Default configuration values
const (
	DefaultServiceDurationMinutes = 30
	DefaultSimultaneousLimit      = 3
	DefaultSlotIntervalMinutes    = 30
	DefaultFutureBookingLimitDays = 0 // 0 = unlimited
	DefaultCancelMinNoticeHours   = 0
)

// Business validation constants
const (
	MinSlotIntervalMinutes      = 5
	MaxSlotIntervalMinutes      = 480 // 8 hours
	MinSimultaneousLimit        = 1
	MaxSimultaneousLimit        = 100
	MaxFutureBookingLimitDays   = 365 // 1 year
	MaxCancelMinNoticeHours     = 168 // 1 week
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
)

// Cache TTLs per data kind. Shifts, services, holidays and slot intervals
// change rarely; appointments change in near-real-time, so stale data there
// directly causes double-booking risk and gets a much shorter TTL.
const (
	ShiftCacheTTL       = 5 * time.Minute
	ServiceCacheTTL     = 5 * time.Minute
	HolidayCacheTTL     = 5 * time.Minute
	SlotIntervalTTL     = 5 * time.Minute
	TenantCacheTTL      = 5 * time.Minute
	AppointmentCacheTTL = 30 * time.Second
	SlotsResultCacheTTL = 60 * time.Second
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// OccupyingStatuses список статусов, занимающих слот
// Используется при подсчете пересечений для доступности
var OccupyingStatuses = []AppointmentStatus{
	StatusScheduled,
	StatusConfirmed,
	StatusInProgress,
	StatusBlocked,
}
