package update_tenant_settings

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/lalbertoreis/mikro-kontrola-app-blueprint-67-sub001/internal/api/handlers"
	"github.com/lalbertoreis/mikro-kontrola-app-blueprint-67-sub001/internal/api/middleware"
	"github.com/lalbertoreis/mikro-kontrola-app-blueprint-67-sub001/internal/service/tenantsettings"
)

const (
	msgInvalidTenantID    = "некорректный ID тенанта"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgTenantNotFound     = "тенант не найден"
	msgForbidden          = "доступ запрещен"
	msgInvalidInterval    = "некорректный шаг сетки слотов"
)

type Handler struct {
	service SettingsService
	logger  Logger
}

func NewHandler(service SettingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/tenants/{tenantId}/settings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем tenantId из URL
	vars := mux.Vars(r)
	tenantID, err := uuid.Parse(vars["tenantId"])
	if err != nil {
		h.logger.Warn("PUT /tenants/{id}/settings - Invalid tenant ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTenantID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /tenants/{id}/settings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Декодируем body
	var req UpdateSettingsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /tenants/{id}/settings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	settings, err := h.service.Update(r.Context(), req.ToServiceRequest(userID, tenantID))
	if err != nil {
		switch {
		case errors.Is(err, tenantsettings.ErrTenantNotFound):
			h.logger.Warn("PUT /tenants/{id}/settings - Tenant not found: tenant_id=%s", tenantID)
			handlers.RespondNotFound(w, msgTenantNotFound)

		case errors.Is(err, tenantsettings.ErrAccessDenied):
			h.logger.Warn("PUT /tenants/{id}/settings - Access denied: tenant_id=%s, user_id=%s",
				tenantID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, tenantsettings.ErrInvalidInput):
			h.logger.Warn("PUT /tenants/{id}/settings - Invalid interval: tenant_id=%s, interval=%d",
				tenantID, req.SlotIntervalMinutes)
			handlers.RespondBadRequest(w, msgInvalidInterval)

		default:
			h.logger.Error("PUT /tenants/{id}/settings - Failed to update settings: tenant_id=%s, error=%v",
				tenantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /tenants/{id}/settings - Settings updated successfully: tenant_id=%s, interval=%d",
		tenantID, settings.SlotIntervalMinutes)
	handlers.RespondJSON(w, http.StatusOK, settings)
}
