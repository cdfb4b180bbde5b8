package get_employee_agenda

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/lalbertoreis/mikro-kontrola-app-blueprint-67-sub001/internal/api/handlers"
	"github.com/lalbertoreis/mikro-kontrola-app-blueprint-67-sub001/internal/api/middleware"
	"github.com/lalbertoreis/mikro-kontrola-app-blueprint-67-sub001/internal/service/appointments"
)

const (
	msgInvalidTenantID   = "некорректный ID тенанта"
	msgInvalidEmployeeID = "некорректный ID сотрудника"
	msgMissingUserID     = "отсутствует ID пользователя"
	msgInvalidFilter     = "некорректные параметры фильтра"
	msgForbidden         = "доступ запрещен"
)

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/tenants/{tenantId}/employees/{employeeId}/agenda
// Query params: startDate, endDate (YYYY-MM-DD), status, includeBlocked - все опциональны
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	tenantID, err := uuid.Parse(vars["tenantId"])
	if err != nil {
		h.logger.Warn("GET /tenants/{id}/employees/{id}/agenda - Invalid tenant ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTenantID)
		return
	}

	employeeID, err := uuid.Parse(vars["employeeId"])
	if err != nil {
		h.logger.Warn("GET /tenants/{id}/employees/{id}/agenda - Invalid employee ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEmployeeID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /tenants/{id}/employees/{id}/agenda - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Формируем запрос к сервису (с парсингом дат периода)
	serviceReq, err := ToServiceRequest(userID, tenantID, employeeID, r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /tenants/{id}/employees/{id}/agenda - Invalid filter: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFilter)
		return
	}

	result, err := h.service.GetEmployeeAgenda(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrAccessDenied):
			h.logger.Warn("GET /tenants/{id}/employees/{id}/agenda - Access denied: tenant_id=%s, user_id=%s",
				tenantID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("GET /tenants/{id}/employees/{id}/agenda - Invalid filter: employee_id=%s, error=%v",
				employeeID, err)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		default:
			h.logger.Error("GET /tenants/{id}/employees/{id}/agenda - Failed to get agenda: employee_id=%s, error=%v",
				employeeID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /tenants/{id}/employees/{id}/agenda - Agenda retrieved successfully: employee_id=%s, count=%d",
		employeeID, len(result.Appointments))
	handlers.RespondJSON(w, http.StatusOK, result)
}
