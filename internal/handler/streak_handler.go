package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"focusorbit/backend/internal/middleware"
	"focusorbit/backend/internal/service"
)

type StreakHandler struct {
	streakService *service.StreakService
}

type updateStreakRequest struct {
	CurrentStreak   int    `json:"currentStreak"`
	LongestStreak   int    `json:"longestStreak"`
	LastActiveDate  string `json:"lastActiveDate"`
	FreezeBalance   int    `json:"freezeBalance"`
	FreezeUsedToday bool   `json:"freezeUsedToday"`
	BaseVersion     int    `json:"baseVersion"`
}

func NewStreakHandler(streakService *service.StreakService) *StreakHandler {
	return &StreakHandler{streakService: streakService}
}

func (h *StreakHandler) Get(c *gin.Context) {
	streak, apiErr := h.streakService.GetStreakData(c.Request.Context(), middleware.UserID(c))
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"streak": streak})
}

func (h *StreakHandler) Update(c *gin.Context) {
	var req updateStreakRequest
	if !bindJSON(c, &req) {
		return
	}

	streak, apiErr := h.streakService.UpdateStreak(c.Request.Context(), middleware.UserID(c), service.UpdateStreakInput{
		CurrentStreak:   req.CurrentStreak,
		LongestStreak:   req.LongestStreak,
		LastActiveDate:  req.LastActiveDate,
		FreezeBalance:   req.FreezeBalance,
		FreezeUsedToday: req.FreezeUsedToday,
		BaseVersion:     req.BaseVersion,
	})
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"streak": streak})
}

func (h *StreakHandler) UseFreeze(c *gin.Context) {
	streak, apiErr := h.streakService.UseFreeze(c.Request.Context(), middleware.UserID(c))
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"streak": streak})
}

func (h *StreakHandler) EarnFreeze(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.UserID(c)
	if apiErr := h.streakService.EarnFreeze(ctx, userID); apiErr != nil {
		writeError(c, apiErr)
		return
	}

	streak, apiErr := h.streakService.GetStreakData(ctx, userID)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"streak": streak})
}

func (h *StreakHandler) FreezeBalance(c *gin.Context) {
	balance, apiErr := h.streakService.GetFreezeBalance(c.Request.Context(), middleware.UserID(c))
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"freezeBalance": balance})
}
