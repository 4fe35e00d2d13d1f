package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"focusorbit/backend/internal/middleware"
	"focusorbit/backend/internal/model"
	"focusorbit/backend/internal/service"
)

type ProfileHandler struct {
	profileService *service.ProfileService
}

type saveProfileRequest struct {
	Name  string  `json:"name"`
	Email *string `json:"email"`
}

func NewProfileHandler(profileService *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

func (h *ProfileHandler) GetMine(c *gin.Context) {
	profile, apiErr := h.profileService.GetProfile(c.Request.Context(), middleware.UserID(c))
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

func (h *ProfileHandler) SaveMine(c *gin.Context) {
	var req saveProfileRequest
	if !bindJSON(c, &req) {
		return
	}

	profile, apiErr := h.profileService.SaveProfile(c.Request.Context(), middleware.UserID(c), model.UserProfile{
		Name:  req.Name,
		Email: req.Email,
	})
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

// GetUser is readable by anyone, signed in or not.
func (h *ProfileHandler) GetUser(c *gin.Context) {
	profile, apiErr := h.profileService.GetProfile(c.Request.Context(), c.Param("id"))
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": profile})
}
