package create_appointment

import (
	"time"

	"github.com/google/uuid"

	"github.com/lalbertoreis/mikro-kontrola-app-blueprint-67-sub001/internal/domain"
	createAppointment "github.com/lalbertoreis/mikro-kontrola-app-blueprint-67-sub001/internal/usecase/create_appointment"
	"github.com/lalbertoreis/mikro-kontrola-app-blueprint-67-sub001/pkg/types"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	EmployeeID uuid.UUID `json:"employeeId"`
	ServiceID  uuid.UUID `json:"serviceId"`
	Date       string    `json:"date"`      // "2026-03-02"
	StartTime  string    `json:"startTime"` // "10:00"
	Notes      *string   `json:"notes,omitempty"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID              uuid.UUID `json:"id"`
	TenantID        uuid.UUID `json:"tenantId"`
	EmployeeID      uuid.UUID `json:"employeeId"`
	ServiceID       uuid.UUID `json:"serviceId"`
	ClientID        uuid.UUID `json:"clientId"`
	Date            string    `json:"date"`
	StartTime       string    `json:"startTime"`
	DurationMinutes int       `json:"durationMinutes"`
	Status          string    `json:"status"`
	ServiceName     string    `json:"serviceName"`
	ServicePrice    float64   `json:"servicePrice"`
	Notes           *string   `json:"notes,omitempty"`
	CreatedAt       string    `json:"createdAt"`
	UpdatedAt       string    `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateAppointmentRequest) ToUseCaseRequest(tenantSlug string, clientID uuid.UUID) (*createAppointment.Request, error) {
	// Парсим дату
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	// Парсим время
	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createAppointment.Request{
		TenantSlug: tenantSlug,
		ClientID:   clientID,
		EmployeeID: r.EmployeeID,
		ServiceID:  r.ServiceID,
		Date:       date,
		StartTime:  startTime,
		Notes:      r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createAppointment.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:              resp.ID,
		TenantID:        resp.TenantID,
		EmployeeID:      resp.EmployeeID,
		ServiceID:       resp.ServiceID,
		ClientID:        resp.ClientID,
		Date:            resp.Date.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		DurationMinutes: resp.DurationMinutes,
		Status:          resp.Status,
		ServiceName:     resp.ServiceName,
		ServicePrice:    resp.ServicePrice,
		Notes:           resp.Notes,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
