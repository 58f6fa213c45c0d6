package services

import (
	"context"
	"errors"

	"github.com/coffeemate/random-coffee-backend/internal/models"
	"github.com/coffeemate/random-coffee-backend/internal/repositories"
)

// Compile-time check to ensure SettingsServiceImpl implements SettingsService
var _ SettingsService = (*SettingsServiceImpl)(nil)

// SettingsServiceImpl handles the draw schedule settings
type SettingsServiceImpl struct {
	settingsRepo repositories.DrawSettingsRepository
}

// NewSettingsService creates a new SettingsServiceImpl
func NewSettingsService(settingsRepo repositories.DrawSettingsRepository) *SettingsServiceImpl {
	return &SettingsServiceImpl{settingsRepo: settingsRepo}
}

// GetSettings retrieves the draw settings, creating defaults when absent
func (s *SettingsServiceImpl) GetSettings(ctx context.Context) (*models.DrawSettings, error) {
	return s.settingsRepo.Get(ctx)
}

// UpdateSettings validates and stores new draw settings. Changes take
// effect on the scheduler's next tick, no restart needed.
func (s *SettingsServiceImpl) UpdateSettings(ctx context.Context, settings *models.DrawSettings) error {
	if settings.CadenceDays < 1 {
		return errors.New("cadence must be at least one day")
	}
	if settings.DayOfWeek != nil && (*settings.DayOfWeek < 0 || *settings.DayOfWeek > 6) {
		return errors.New("day of week must be between 0 (Sunday) and 6 (Saturday)")
	}
	current, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return err
	}
	settings.ID = current.ID
	settings.CreatedAt = current.CreatedAt
	return s.settingsRepo.Update(ctx, settings)
}
