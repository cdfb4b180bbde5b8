package get_client_appointments

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/lalbertoreis/mikro-kontrola-app-blueprint-67-sub001/internal/api/handlers"
	"github.com/lalbertoreis/mikro-kontrola-app-blueprint-67-sub001/internal/api/middleware"
	"github.com/lalbertoreis/mikro-kontrola-app-blueprint-67-sub001/internal/service/appointments"
	"github.com/lalbertoreis/mikro-kontrola-app-blueprint-67-sub001/internal/service/appointments/models"
)

const (
	msgInvalidTenantID = "некорректный ID тенанта"
	msgInvalidClientID = "некорректный ID клиента"
	msgMissingUserID   = "отсутствует ID пользователя"
	msgForbidden       = "доступ запрещен"
	msgInvalidStatus   = "недопустимый статус записи"
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

// Handle GET /api/v1/tenants/{tenantId}/clients/{clientId}/appointments
// Query params: status (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	tenantID, err := uuid.Parse(vars["tenantId"])
	if err != nil {
		h.logger.Warn("GET /tenants/{id}/clients/{id}/appointments - Invalid tenant ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTenantID)
		return
	}

	clientID, err := uuid.Parse(vars["clientId"])
	if err != nil {
		h.logger.Warn("GET /tenants/{id}/clients/{id}/appointments - Invalid client ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidClientID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /tenants/{id}/clients/{id}/appointments - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Клиент может смотреть только свою историю записей
	if userID != clientID {
		h.logger.Warn("GET /tenants/{id}/clients/{id}/appointments - Access denied: user_id=%s, client_id=%s",
			userID, clientID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	// Получаем status из query параметров (опционально)
	status := r.URL.Query().Get("status")
	var statusPtr *string
	if status != "" {
		statusPtr = &status
	}

	serviceReq := &models.GetClientAppointmentsRequest{
		TenantID: tenantID,
		ClientID: clientID,
		Status:   statusPtr,
	}

	result, err := h.service.GetClientAppointments(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("GET /tenants/{id}/clients/{id}/appointments - Invalid status: client_id=%s, status=%s",
				clientID, status)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /tenants/{id}/clients/{id}/appointments - Failed to get appointments: client_id=%s, error=%v",
				clientID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /tenants/{id}/clients/{id}/appointments - Appointments retrieved successfully: client_id=%s, count=%d",
		clientID, len(result.Appointments))
	handlers.RespondJSON(w, http.StatusOK, result)
}
