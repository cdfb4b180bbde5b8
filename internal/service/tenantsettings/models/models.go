package models

import (
	"github.com/google/uuid"
)

// GetSettingsRequest запрос на получение настроек расписания тенанта
type GetSettingsRequest struct {
	UserID   uuid.UUID `json:"userId"`
	TenantID uuid.UUID `json:"tenantId"`
}

// UpdateSettingsRequest запрос на обновление настроек расписания тенанта
type UpdateSettingsRequest struct {
	UserID              uuid.UUID `json:"userId"`
	TenantID            uuid.UUID `json:"tenantId"`
	SlotIntervalMinutes int       `json:"slotIntervalMinutes"`
}

// SettingsResponse ответ с настройками расписания тенанта
type SettingsResponse struct {
	TenantID            uuid.UUID `json:"tenantId"`
	SlotIntervalMinutes int       `json:"slotIntervalMinutes"`
}
