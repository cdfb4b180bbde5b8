package tenantsettings

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/lalbertoreis/mikro-kontrola-app-blueprint-67-sub001/internal/domain"
	tenantRepo "github.com/lalbertoreis/mikro-kontrola-app-blueprint-67-sub001/internal/infra/storage/tenant"
	"github.com/lalbertoreis/mikro-kontrola-app-blueprint-67-sub001/internal/service/tenantsettings/models"
)

// Service сервис для работы с настройками расписания тенанта
type Service struct {
	tenantRepo  TenantRepository
	invalidator IntervalInvalidator
	logger      Logger
}

// NewService создает новый экземпляр сервиса настроек
func NewService(tenantRepo TenantRepository, invalidator IntervalInvalidator, logger Logger) *Service {
	return &Service{
		tenantRepo:  tenantRepo,
		invalidator: invalidator,
		logger:      logger,
	}
}

// Get возвращает настройки расписания тенанта
// Доступно владельцу и сотрудникам бизнеса
func (s *Service) Get(ctx context.Context, req *models.GetSettingsRequest) (*models.SettingsResponse, error) {
	s.logger.Info("Get: fetching settings for tenant=%s by user=%s", req.TenantID, req.UserID)

	if err := s.checkAccess(ctx, req.TenantID, req.UserID, false); err != nil {
		return nil, err
	}

	tenant, err := s.tenantRepo.GetByID(ctx, req.TenantID)
	if err != nil {
		if errors.Is(err, tenantRepo.ErrTenantNotFound) {
			s.logger.Warn("Get: tenant id=%s not found", req.TenantID)
			return nil, ErrTenantNotFound
		}
		s.logger.Error("Get: repository error for tenant id=%s: %v", req.TenantID, err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}

	return &models.SettingsResponse{
		TenantID:            tenant.ID,
		SlotIntervalMinutes: tenant.EffectiveSlotInterval(),
	}, nil
}

// Update обновляет шаг сетки слотов тенанта
// Доступно только владельцу бизнеса
func (s *Service) Update(ctx context.Context, req *models.UpdateSettingsRequest) (*models.SettingsResponse, error) {
	s.logger.Info("Update: updating slot interval for tenant=%s to %d by user=%s",
		req.TenantID, req.SlotIntervalMinutes, req.UserID)

	if req.SlotIntervalMinutes < domain.MinSlotIntervalMinutes || req.SlotIntervalMinutes > domain.MaxSlotIntervalMinutes {
		s.logger.Warn("Update: slot interval %d out of range", req.SlotIntervalMinutes)
		return nil, fmt.Errorf("%w: slotIntervalMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinSlotIntervalMinutes, domain.MaxSlotIntervalMinutes)
	}

	if err := s.checkAccess(ctx, req.TenantID, req.UserID, true); err != nil {
		return nil, err
	}

	if err := s.tenantRepo.UpdateSlotInterval(ctx, req.TenantID, req.SlotIntervalMinutes); err != nil {
		if errors.Is(err, tenantRepo.ErrTenantNotFound) {
			s.logger.Warn("Update: tenant id=%s not found", req.TenantID)
			return nil, ErrTenantNotFound
		}
		s.logger.Error("Update: repository error for tenant id=%s: %v", req.TenantID, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	// Новый шаг должен применяться к расчету доступности сразу, не дожидаясь TTL
	s.invalidator.Invalidate(req.TenantID)

	s.logger.Info("Update: successfully updated slot interval for tenant=%s", req.TenantID)

	return &models.SettingsResponse{
		TenantID:            req.TenantID,
		SlotIntervalMinutes: req.SlotIntervalMinutes,
	}, nil
}

// checkAccess проверяет принадлежность пользователя тенанту.
// ownerOnly=true дополнительно требует роль владельца.
func (s *Service) checkAccess(ctx context.Context, tenantID uuid.UUID, userID uuid.UUID, ownerOnly bool) error {
	profile, err := s.tenantRepo.GetProfile(ctx, userID)
	if err != nil {
		if errors.Is(err, tenantRepo.ErrProfileNotFound) {
			s.logger.Warn("checkAccess: profile id=%s not found", userID)
			return ErrAccessDenied
		}
		s.logger.Error("checkAccess: failed to get profile id=%s: %v", userID, err)
		return fmt.Errorf("%w: checkAccess - failed to get profile: %v", ErrInternal, err)
	}

	if profile.TenantID != tenantID {
		s.logger.Warn("checkAccess: user=%s belongs to another tenant", userID)
		return ErrAccessDenied
	}

	if ownerOnly && profile.Role != domain.RoleOwner {
		s.logger.Warn("checkAccess: user=%s has role=%s, owner role required", userID, profile.Role)
		return ErrAccessDenied
	}

	if !ownerOnly && profile.Role != domain.RoleOwner && profile.Role != domain.RoleEmployee {
		s.logger.Warn("checkAccess: user=%s has role=%s, business role required", userID, profile.Role)
		return ErrAccessDenied
	}

	return nil
}
