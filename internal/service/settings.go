package service

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/SilvioBaratto/diet-generator/internal/models"
	"github.com/SilvioBaratto/diet-generator/internal/repository"
	"github.com/SilvioBaratto/diet-generator/internal/types"
)

// SettingsService handles the user settings profile.
type SettingsService struct {
	db *gorm.DB
}

// Ensure SettingsService implements ISettingsService
var _ ISettingsService = (*SettingsService)(nil)

// NewSettingsService creates a new SettingsService instance
func NewSettingsService(db *gorm.DB) *SettingsService {
	return &SettingsService{db: db}
}

// GetUserSettings returns the user's settings row.
func (s *SettingsService) GetUserSettings(ctx context.Context, userID uuid.UUID) (*types.SettingsResponse, error) {
	settings, err := repository.NewUserSettingsRepository(s.db).GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		return nil, ErrSettingsNotFound
	}
	return settingsResponse(settings), nil
}

// UpdateUserSettings creates the settings row on first call and patches only
// the supplied fields on subsequent calls.
func (s *SettingsService) UpdateUserSettings(ctx context.Context, userID uuid.UUID, req *types.UpdateSettingsRequest) (*types.SettingsResponse, error) {
	var updated *models.UserSettings

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := repository.NewUserSettingsRepository(tx)

		settings, err := repo.GetByUserID(ctx, userID)
		if err != nil {
			return err
		}

		if settings == nil {
			settings = &models.UserSettings{
				ID:        uuid.New(),
				UserID:    userID,
				Weight:    req.Weight,
				Height:    req.Height,
				OtherData: req.OtherData,
				Goals:     req.Goals,
			}
			if err := repo.Create(ctx, settings); err != nil {
				return err
			}
			updated = settings
			return nil
		}

		fields := make(map[string]any)
		if req.Weight != nil {
			fields["weight"] = *req.Weight
		}
		if req.Height != nil {
			fields["height"] = *req.Height
		}
		if req.OtherData != nil {
			fields["other_data"] = *req.OtherData
		}
		if req.Goals != nil {
			fields["goals"] = *req.Goals
		}
		if len(fields) == 0 {
			updated = settings
			return nil
		}

		updated, err = repo.Update(ctx, settings.ID, fields)
		return err
	})
	if err != nil {
		return nil, err
	}

	return settingsResponse(updated), nil
}

func settingsResponse(settings *models.UserSettings) *types.SettingsResponse {
	return &types.SettingsResponse{
		ID:        settings.ID,
		UserID:    settings.UserID,
		Weight:    settings.Weight,
		Height:    settings.Height,
		OtherData: settings.OtherData,
		Goals:     settings.Goals,
		CreatedAt: settings.CreatedAt,
		UpdatedAt: settings.UpdatedAt,
	}
}
