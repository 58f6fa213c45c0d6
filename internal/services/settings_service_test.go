package services

import (
	"context"
	"testing"

	"github.com/coffeemate/random-coffee-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateSettingsValidation(t *testing.T) {
	svc := NewSettingsService(&fakeSettingsRepo{})
	ctx := context.Background()

	assert.Error(t, svc.UpdateSettings(ctx, &models.DrawSettings{CadenceDays: 0}))

	bad := 7
	assert.Error(t, svc.UpdateSettings(ctx, &models.DrawSettings{CadenceDays: 7, DayOfWeek: &bad}))

	monday := 1
	require.NoError(t, svc.UpdateSettings(ctx, &models.DrawSettings{CadenceDays: 14, DayOfWeek: &monday}))

	stored, err := svc.GetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, 14, stored.CadenceDays)
	require.NotNil(t, stored.DayOfWeek)
	assert.Equal(t, monday, *stored.DayOfWeek)
}

func TestUpdateSettingsClearingWeekdayGate(t *testing.T) {
	repo := &fakeSettingsRepo{}
	svc := NewSettingsService(repo)
	ctx := context.Background()

	friday := 5
	require.NoError(t, svc.UpdateSettings(ctx, &models.DrawSettings{CadenceDays: 7, DayOfWeek: &friday}))
	require.NoError(t, svc.UpdateSettings(ctx, &models.DrawSettings{CadenceDays: 7}))

	stored, err := svc.GetSettings(ctx)
	require.NoError(t, err)
	assert.Nil(t, stored.DayOfWeek, "omitting the weekday must clear the gate")
}
