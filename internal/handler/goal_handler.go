package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "focusorbit/backend/internal/errors"
	"focusorbit/backend/internal/middleware"
	"focusorbit/backend/internal/service"
)

type GoalHandler struct {
	goalService *service.GoalService
}

type addGoalRequest struct {
	ID                  string `json:"id"`
	Name                string `json:"name"`
	DailyTargetSessions int    `json:"dailyTargetSessions"`
}

// Update replaces the whole goal, so active must be sent explicitly.
type updateGoalRequest struct {
	Name                string `json:"name"`
	DailyTargetSessions int    `json:"dailyTargetSessions"`
	Active              *bool  `json:"active"`
}

func NewGoalHandler(goalService *service.GoalService) *GoalHandler {
	return &GoalHandler{goalService: goalService}
}

func (h *GoalHandler) List(c *gin.Context) {
	goals, apiErr := h.goalService.GetAllGoals(c.Request.Context(), middleware.UserID(c))
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"goals": goals})
}

func (h *GoalHandler) Add(c *gin.Context) {
	var req addGoalRequest
	if !bindJSON(c, &req) {
		return
	}

	goal, apiErr := h.goalService.AddGoal(c.Request.Context(), middleware.UserID(c), req.ID, req.Name, req.DailyTargetSessions)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"goal": goal})
}

func (h *GoalHandler) Update(c *gin.Context) {
	var req updateGoalRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.Active == nil {
		writeError(c, apperrors.BadRequest("invalid_goal", "active is required"))
		return
	}

	goal, apiErr := h.goalService.UpdateGoal(c.Request.Context(), middleware.UserID(c), c.Param("id"), req.Name, req.DailyTargetSessions, *req.Active)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"goal": goal})
}

func (h *GoalHandler) Delete(c *gin.Context) {
	if apiErr := h.goalService.DeleteGoal(c.Request.Context(), middleware.UserID(c), c.Param("id")); apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *GoalHandler) Progress(c *gin.Context) {
	progress, apiErr := h.goalService.Progress(c.Request.Context(), middleware.UserID(c), c.Query("date"))
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, progress)
}
