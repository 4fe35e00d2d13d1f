package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"focusorbit/backend/internal/middleware"
	"focusorbit/backend/internal/service"
)

type SessionHandler struct {
	sessionService *service.SessionService
}

type logSessionRequest struct {
	Duration    int    `json:"duration"`
	SessionType string `json:"sessionType"`
	DateString  string `json:"dateString"`
}

func (r logSessionRequest) input() service.LogSessionInput {
	return service.LogSessionInput{
		Duration:    r.Duration,
		SessionType: r.SessionType,
		DateString:  r.DateString,
	}
}

func NewSessionHandler(sessionService *service.SessionService) *SessionHandler {
	return &SessionHandler{sessionService: sessionService}
}

func (h *SessionHandler) Log(c *gin.Context) {
	var req logSessionRequest
	if !bindJSON(c, &req) {
		return
	}

	id, apiErr := h.sessionService.LogSession(c.Request.Context(), middleware.UserID(c), req.input())
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (h *SessionHandler) Complete(c *gin.Context) {
	var req logSessionRequest
	if !bindJSON(c, &req) {
		return
	}

	result, apiErr := h.sessionService.CompleteSession(c.Request.Context(), middleware.UserID(c), req.input())
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusCreated, result)
}

func (h *SessionHandler) List(c *gin.Context) {
	sessions, apiErr := h.sessionService.GetSessionsByDateRange(
		c.Request.Context(),
		middleware.UserID(c),
		c.Query("start"),
		c.Query("end"),
	)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sessions": sessions})
}

func (h *SessionHandler) Summary(c *gin.Context) {
	summary, apiErr := h.sessionService.Summarize(
		c.Request.Context(),
		middleware.UserID(c),
		c.Query("start"),
		c.Query("end"),
	)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *SessionHandler) Clear(c *gin.Context) {
	if apiErr := h.sessionService.ClearAllSessions(c.Request.Context(), middleware.UserID(c)); apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.Status(http.StatusNoContent)
}
