package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/lalbertoreis/mikro-kontrola-app-blueprint-67-sub001/pkg/types"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusScheduled  AppointmentStatus = "scheduled"
	StatusConfirmed  AppointmentStatus = "confirmed"
	StatusInProgress AppointmentStatus = "in_progress"
	StatusCompleted  AppointmentStatus = "completed"
	StatusCanceled   AppointmentStatus = "canceled"
	// StatusBlocked marks time reserved by the business itself (day off,
	// lunch break). Blocked entries are stored as appointments against a
	// reserved system client so that they take part in conflict checks.
	StatusBlocked AppointmentStatus = "blocked"
)

// Appointment represents a booked service slot in an employee's agenda
type Appointment struct {
	ID              uuid.UUID
	TenantID        uuid.UUID
	EmployeeID      uuid.UUID
	ServiceID       uuid.UUID
	ClientID        uuid.UUID
	Date            time.Time
	StartTime       types.TimeString
	DurationMinutes int
	Status          AppointmentStatus

	// Denormalized data for history
	ServiceName  string
	ServicePrice float64
	Notes        *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// EndTime returns the appointment end as a TimeString
func (a *Appointment) EndTime() (types.TimeString, error) {
	return a.StartTime.AddMinutes(a.DurationMinutes)
}

// Occupies returns true if the appointment takes up its time slot.
// Canceled and completed appointments free the slot.
func (a *Appointment) Occupies() bool {
	switch a.Status {
	case StatusScheduled, StatusConfirmed, StatusInProgress, StatusBlocked:
		return true
	default:
		return false
	}
}

// CanBeCancelled returns true if the appointment can still be cancelled
func (a *Appointment) CanBeCancelled() bool {
	return a.Status == StatusScheduled || a.Status == StatusConfirmed
}

// IsCanceled returns true if the appointment has been cancelled
func (a *Appointment) IsCanceled() bool {
	return a.Status == StatusCanceled
}

// EmployeeAppointmentsFilter фильтр для выборки записей сотрудника
type EmployeeAppointmentsFilter struct {
	TenantID       uuid.UUID
	EmployeeID     uuid.UUID
	StartDate      *time.Time         // Начало периода (опционально)
	EndDate        *time.Time         // Конец периода (опционально)
	Status         *AppointmentStatus // Фильтр по статусу (опционально)
	OccupyingOnly  bool               // Только записи, занимающие слот
	IncludeBlocked bool               // Включать ли служебные blocked записи
}
