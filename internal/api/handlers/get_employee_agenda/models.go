package get_employee_agenda

import (
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/lalbertoreis/mikro-kontrola-app-blueprint-67-sub001/internal/domain"
	"github.com/lalbertoreis/mikro-kontrola-app-blueprint-67-sub001/internal/service/appointments/models"
)

// ToServiceRequest собирает запрос к сервису из path-параметров и query-фильтров.
// startDate и endDate ожидаются в формате YYYY-MM-DD, includeBlocked - "true"/"false".
func ToServiceRequest(userID, tenantID, employeeID uuid.UUID, query url.Values) (*models.GetEmployeeAgendaRequest, error) {
	req := &models.GetEmployeeAgendaRequest{
		UserID:     userID,
		TenantID:   tenantID,
		EmployeeID: employeeID,
	}

	if startDateStr := query.Get("startDate"); startDateStr != "" {
		startDate, err := time.Parse(domain.DateFormat, startDateStr)
		if err != nil {
			return nil, err
		}
		req.StartDate = &startDate
	}

	if endDateStr := query.Get("endDate"); endDateStr != "" {
		endDate, err := time.Parse(domain.DateFormat, endDateStr)
		if err != nil {
			return nil, err
		}
		req.EndDate = &endDate
	}

	if status := query.Get("status"); status != "" {
		req.Status = &status
	}

	req.IncludeBlocked = query.Get("includeBlocked") == "true"

	return req, nil
}
