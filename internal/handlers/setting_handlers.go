package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"delizzia_backoffice/internal/config"
	"delizzia_backoffice/internal/models"
)

// SettingHandler exposes the enumerations and business thresholds in effect.
type SettingHandler struct {
	settings config.Settings
}

// NewSettingHandler creates a new SettingHandler.
func NewSettingHandler(s config.Settings) *SettingHandler {
	return &SettingHandler{settings: s}
}

// GetOptions lists the values every selector in the back office offers
func (h *SettingHandler) GetOptions(c *gin.Context) {
	c.JSON(http.StatusOK, models.AllOptions())
}

// GetSettings returns the thresholds loaded at startup
func (h *SettingHandler) GetSettings(c *gin.Context) {
	c.JSON(http.StatusOK, h.settings)
}
