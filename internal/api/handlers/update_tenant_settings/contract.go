package update_tenant_settings

import (
	"context"

	"github.com/lalbertoreis/mikro-kontrola-app-blueprint-67-sub001/internal/service/tenantsettings/models"
)

type SettingsService interface {
	Update(ctx context.Context, req *models.UpdateSettingsRequest) (*models.SettingsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
