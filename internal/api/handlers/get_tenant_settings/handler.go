package get_tenant_settings

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/lalbertoreis/mikro-kontrola-app-blueprint-67-sub001/internal/api/handlers"
	"github.com/lalbertoreis/mikro-kontrola-app-blueprint-67-sub001/internal/api/middleware"
	"github.com/lalbertoreis/mikro-kontrola-app-blueprint-67-sub001/internal/service/tenantsettings"
	"github.com/lalbertoreis/mikro-kontrola-app-blueprint-67-sub001/internal/service/tenantsettings/models"
)

const (
	msgInvalidTenantID = "некорректный ID тенанта"
	msgMissingUserID   = "отсутствует ID пользователя"
	msgTenantNotFound  = "тенант не найден"
	msgForbidden       = "доступ запрещен"
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

// Handle GET /api/v1/tenants/{tenantId}/settings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем tenantId из URL
	vars := mux.Vars(r)
	tenantID, err := uuid.Parse(vars["tenantId"])
	if err != nil {
		h.logger.Warn("GET /tenants/{id}/settings - Invalid tenant ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTenantID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /tenants/{id}/settings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	settings, err := h.service.Get(r.Context(), &models.GetSettingsRequest{
		UserID:   userID,
		TenantID: tenantID,
	})
	if err != nil {
		switch {
		case errors.Is(err, tenantsettings.ErrTenantNotFound):
			h.logger.Warn("GET /tenants/{id}/settings - Tenant not found: tenant_id=%s", tenantID)
			handlers.RespondNotFound(w, msgTenantNotFound)

		case errors.Is(err, tenantsettings.ErrAccessDenied):
			h.logger.Warn("GET /tenants/{id}/settings - Access denied: tenant_id=%s, user_id=%s",
				tenantID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /tenants/{id}/settings - Failed to get settings: tenant_id=%s, error=%v",
				tenantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /tenants/{id}/settings - Settings retrieved successfully: tenant_id=%s", tenantID)
	handlers.RespondJSON(w, http.StatusOK, settings)
}
