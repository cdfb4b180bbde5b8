package get_available_slots

import (
	"time"

	"github.com/google/uuid"

	"github.com/lalbertoreis/mikro-kontrola-app-blueprint-67-sub001/internal/domain"
	getAvailableSlots "github.com/lalbertoreis/mikro-kontrola-app-blueprint-67-sub001/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date       string    `json:"date"`       // "2026-03-02"
	EmployeeID uuid.UUID `json:"employeeId"`
	ServiceID  uuid.UUID `json:"serviceId"`
	Slots      []string  `json:"slots"` // ["09:00", "09:30", ...]
}

// ToUseCaseRequest конвертирует параметры HTTP запроса в модель use case
func ToUseCaseRequest(tenantSlug string, employeeID, serviceID uuid.UUID, dateStr string) (*getAvailableSlots.Request, error) {
	// Парсим дату
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailableSlots.Request{
		TenantSlug: tenantSlug,
		EmployeeID: employeeID,
		ServiceID:  serviceID,
		Date:       date,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]string, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = slot.String()
	}

	return &AvailableSlotsResponse{
		Date:       resp.Date.Format(domain.DateFormat),
		EmployeeID: resp.EmployeeID,
		ServiceID:  resp.ServiceID,
		Slots:      slots,
	}
}
