package models

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/lalbertoreis/mikro-kontrola-app-blueprint-67-sub001/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid appointment status")
)

// Request модели

// CancelAppointmentRequest запрос на отмену записи
type CancelAppointmentRequest struct {
	UserID             uuid.UUID `json:"userId"`
	CancellationReason string    `json:"cancellationReason"`
}

// UpdateStatusRequest запрос на обновление статуса записи
type UpdateStatusRequest struct {
	UserID uuid.UUID `json:"userId"`
	Status string    `json:"status"`
}

// GetClientAppointmentsRequest запрос на получение записей клиента
type GetClientAppointmentsRequest struct {
	TenantID uuid.UUID `json:"tenantId"`
	ClientID uuid.UUID `json:"clientId"`
	Status   *string   `json:"status,omitempty"`
}

// GetEmployeeAgendaRequest запрос на получение расписания сотрудника
type GetEmployeeAgendaRequest struct {
	UserID         uuid.UUID  `json:"userId"`
	TenantID       uuid.UUID  `json:"tenantId"`
	EmployeeID     uuid.UUID  `json:"employeeId"`
	StartDate      *time.Time `json:"startDate,omitempty"`      // Начало периода (опционально)
	EndDate        *time.Time `json:"endDate,omitempty"`        // Конец периода (опционально)
	Status         *string    `json:"status,omitempty"`         // Фильтр по статусу (опционально)
	IncludeBlocked bool       `json:"includeBlocked,omitempty"` // Включать служебные blocked записи
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetEmployeeAgendaRequest) ToDomainFilter() (domain.EmployeeAppointmentsFilter, error) {
	filter := domain.EmployeeAppointmentsFilter{
		TenantID:       r.TenantID,
		EmployeeID:     r.EmployeeID,
		StartDate:      r.StartDate,
		EndDate:        r.EndDate,
		IncludeBlocked: r.IncludeBlocked,
	}

	if r.Status != nil {
		status, err := ToDomainAppointmentStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// AppointmentResponse ответ с данными записи
type AppointmentResponse struct {
	ID              uuid.UUID `json:"id"`
	TenantID        uuid.UUID `json:"tenantId"`
	EmployeeID      uuid.UUID `json:"employeeId"`
	ServiceID       uuid.UUID `json:"serviceId"`
	ClientID        uuid.UUID `json:"clientId"`
	Date            string    `json:"date"`      // "2026-03-02"
	StartTime       string    `json:"startTime"` // "10:00"
	DurationMinutes int       `json:"durationMinutes"`
	Status          string    `json:"status"`

	// Денормализованные данные
	ServiceName  string  `json:"serviceName"`
	ServicePrice float64 `json:"servicePrice"`
	Notes        *string `json:"notes,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AppointmentListResponse ответ со списком записей
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
}

// Методы конвертации

// FromDomainAppointment конвертирует domain модель в DTO
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	if a == nil {
		return nil
	}

	resp := &AppointmentResponse{
		ID:                 a.ID,
		TenantID:           a.TenantID,
		EmployeeID:         a.EmployeeID,
		ServiceID:          a.ServiceID,
		ClientID:           a.ClientID,
		Date:               a.Date.Format(domain.DateFormat),
		StartTime:          a.StartTime.String(),
		DurationMinutes:    a.DurationMinutes,
		Status:             string(a.Status),
		ServiceName:        a.ServiceName,
		ServicePrice:       a.ServicePrice,
		Notes:              a.Notes,
		CancellationReason: a.CancellationReason,
		CreatedAt:          a.CreatedAt,
		UpdatedAt:          a.UpdatedAt,
	}

	// Конвертируем CancelledAt в строку ISO 8601
	if a.CancelledAt != nil {
		cancelledStr := a.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainAppointmentList конвертирует список domain моделей в DTO
func FromDomainAppointmentList(appointments []*domain.Appointment) *AppointmentListResponse {
	if appointments == nil {
		return &AppointmentListResponse{
			Appointments: []AppointmentResponse{},
		}
	}

	resp := &AppointmentListResponse{
		Appointments: make([]AppointmentResponse, len(appointments)),
	}

	for i, appointment := range appointments {
		if apptResp := FromDomainAppointment(appointment); apptResp != nil {
			resp.Appointments[i] = *apptResp
		}
	}

	return resp
}

// ToDomainAppointmentStatus конвертирует строку в domain.AppointmentStatus с валидацией
func ToDomainAppointmentStatus(status string) (domain.AppointmentStatus, error) {
	s := domain.AppointmentStatus(status)

	validStatuses := []domain.AppointmentStatus{
		domain.StatusScheduled,
		domain.StatusConfirmed,
		domain.StatusInProgress,
		domain.StatusCompleted,
		domain.StatusCanceled,
		domain.StatusBlocked,
	}

	for _, valid := range validStatuses {
		if s == valid {
			return s, nil
		}
	}

	return "", ErrInvalidStatus
}
