package handlers

import (
	"net/http"

	"github.com/coffeemate/random-coffee-backend/internal/models"
	"github.com/coffeemate/random-coffee-backend/internal/services"
	"github.com/gin-gonic/gin"
)

// SettingsHandler handles draw settings HTTP requests
type SettingsHandler struct {
	settingsService services.SettingsService
}

// NewSettingsHandler creates a new SettingsHandler
func NewSettingsHandler(settingsService services.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// GetSettings handles GET /settings
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	settings, err := h.settingsService.GetSettings(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get settings: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, settings)
}

// UpdateSettings handles PUT /settings
func (h *SettingsHandler) UpdateSettings(c *gin.Context) {
	var settings models.DrawSettings
	if err := c.ShouldBindJSON(&settings); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if claims, ok := c.Get("claims"); ok {
		if m, ok := claims.(map[string]interface{}); ok {
			if sub, ok := m["sub"].(string); ok {
				settings.UpdatedBy = sub
			}
		}
	}

	if err := h.settingsService.UpdateSettings(c, &settings); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to update settings: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, settings)
}
