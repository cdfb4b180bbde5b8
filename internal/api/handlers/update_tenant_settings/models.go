package update_tenant_settings

import (
	"github.com/google/uuid"

	"github.com/lalbertoreis/mikro-kontrola-app-blueprint-67-sub001/internal/service/tenantsettings/models"
)

// UpdateSettingsRequest HTTP request model
type UpdateSettingsRequest struct {
	SlotIntervalMinutes int `json:"slotIntervalMinutes"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateSettingsRequest) ToServiceRequest(userID, tenantID uuid.UUID) *models.UpdateSettingsRequest {
	return &models.UpdateSettingsRequest{
		UserID:              userID,
		TenantID:            tenantID,
		SlotIntervalMinutes: r.SlotIntervalMinutes,
	}
}
