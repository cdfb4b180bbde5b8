package domain

import (
	"github.com/google/uuid"
)

// ServiceInfo represents a bookable service's duration and booking constraints
type ServiceInfo struct {
	ID                     uuid.UUID
	TenantID               uuid.UUID
	Name                   string
	DurationMinutes        int
	SimultaneousLimit      int // Max overlapping bookings at the same instant (group sessions)
	FutureBookingLimitDays int // 0 = unlimited
	CancelMinNoticeHours   int
	Price                  *float64
}

// DefaultServiceInfo returns the fallback used when the service record is
// missing or unreadable. Availability must degrade gracefully rather than
// fail bookings on a lookup error.
func DefaultServiceInfo(serviceID uuid.UUID) *ServiceInfo {
	return &ServiceInfo{
		ID:                     serviceID,
		DurationMinutes:        DefaultServiceDurationMinutes,
		SimultaneousLimit:      DefaultSimultaneousLimit,
		FutureBookingLimitDays: DefaultFutureBookingLimitDays,
		CancelMinNoticeHours:   DefaultCancelMinNoticeHours,
	}
}

// ApplyDefaults substitutes defaults for missing optional fields
func (s *ServiceInfo) ApplyDefaults() {
	if s.DurationMinutes <= 0 {
		s.DurationMinutes = DefaultServiceDurationMinutes
	}
	if s.SimultaneousLimit <= 0 {
		s.SimultaneousLimit = DefaultSimultaneousLimit
	}
	if s.FutureBookingLimitDays < 0 {
		s.FutureBookingLimitDays = DefaultFutureBookingLimitDays
	}
	if s.CancelMinNoticeHours < 0 {
		s.CancelMinNoticeHours = DefaultCancelMinNoticeHours
	}
}

// AllowsSimultaneous returns true if the service supports overlapping bookings
func (s *ServiceInfo) AllowsSimultaneous() bool {
	return s.SimultaneousLimit > 1
}

// HasFutureBookingLimit returns true if bookings are limited in how far
// ahead they can be made
func (s *ServiceInfo) HasFutureBookingLimit() bool {
	return s.FutureBookingLimitDays > 0
}
