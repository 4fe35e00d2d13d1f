package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"focusorbit/backend/internal/middleware"
	"focusorbit/backend/internal/model"
	"focusorbit/backend/internal/service"
)

type SettingsHandler struct {
	settingsService *service.SettingsService
}

func NewSettingsHandler(settingsService *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

func (h *SettingsHandler) Get(c *gin.Context) {
	settings, apiErr := h.settingsService.GetSettings(c.Request.Context(), middleware.UserID(c))
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"settings": settings})
}

func (h *SettingsHandler) Update(c *gin.Context) {
	var req model.UserSettings
	if !bindJSON(c, &req) {
		return
	}

	settings, apiErr := h.settingsService.SetSettings(c.Request.Context(), middleware.UserID(c), req)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"settings": settings})
}
