package postgres

import (
	"context"
	"fmt"

	"kledje/domain"

	"gorm.io/gorm"
)

type SettingsRepository struct {
	DB *gorm.DB
}

func NewSettingsRepository(db *gorm.DB) *SettingsRepository {
	return &SettingsRepository{
		DB: db,
	}
}

func (r *SettingsRepository) Get(ctx context.Context) (*domain.SiteSettings, error) {
	var settings domain.SiteSettings

	if err := r.DB.WithContext(ctx).Where("id = ?", domain.SettingsID).First(&settings).Error; err != nil {
		return nil, storeError("find settings", err)
	}

	return &settings, nil
}

// Update applies column -> value pairs to the singleton row.
func (r *SettingsRepository) Update(ctx context.Context, fields map[string]any) error {
	result := r.DB.WithContext(ctx).Model(&domain.SiteSettings{}).
		Where("id = ?", domain.SettingsID).
		Updates(fields)
	if result.Error != nil {
		return storeError("update settings", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("update settings: %w", domain.ErrNotFound)
	}

	return nil
}

// EnsureDefaults inserts the singleton row when it does not exist yet.
func (r *SettingsRepository) EnsureDefaults(ctx context.Context, defaults *domain.SiteSettings) error {
	defaults.ID = domain.SettingsID

	err := r.DB.WithContext(ctx).
		Where("id = ?", domain.SettingsID).
		FirstOrCreate(defaults).Error
	if err != nil {
		return storeError("ensure settings", err)
	}

	return nil
}
