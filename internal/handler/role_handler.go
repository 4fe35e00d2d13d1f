package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"focusorbit/backend/internal/middleware"
	"focusorbit/backend/internal/model"
	"focusorbit/backend/internal/service"
)

type RoleHandler struct {
	roleService *service.RoleService
}

type assignRoleRequest struct {
	Role string `json:"role"`
}

func NewRoleHandler(roleService *service.RoleService) *RoleHandler {
	return &RoleHandler{roleService: roleService}
}

// Mine answers for anonymous callers too; they are guests.
func (h *RoleHandler) Mine(c *gin.Context) {
	role, apiErr := h.roleService.GetCallerUserRole(c.Request.Context(), middleware.UserID(c))
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"role": role})
}

func (h *RoleHandler) IsAdmin(c *gin.Context) {
	isAdmin, apiErr := h.roleService.IsCallerAdmin(c.Request.Context(), middleware.UserID(c))
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"isAdmin": isAdmin})
}

func (h *RoleHandler) Assign(c *gin.Context) {
	var req assignRoleRequest
	if !bindJSON(c, &req) {
		return
	}

	targetID := c.Param("id")
	role := model.UserRole(req.Role)
	if apiErr := h.roleService.AssignCallerUserRole(c.Request.Context(), middleware.UserID(c), targetID, role); apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"userId": targetID, "role": role})
}
