package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sahayak/sahayak-backend/internal/common"
	"github.com/sahayak/sahayak-backend/internal/middleware"
	"github.com/sahayak/sahayak-backend/internal/service"
)

// AdminHandler handles moderation and user management endpoints
type AdminHandler struct {
	service service.AdminService
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(service service.AdminService) *AdminHandler {
	return &AdminHandler{service: service}
}

// Queue godoc
// @Summary      Pending review queue
// @Description  Returns unpublished subjects awaiting moderation, oldest first
// @Tags         admin
// @Produce      json
// @Success      200  {array}  domain.Subject
// @Security     BearerAuth
// @Router       /admin/queue [get]
func (h *AdminHandler) Queue(c *gin.Context) {
	subjects, err := h.service.Queue()
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to load review queue", err)
		return
	}

	c.JSON(http.StatusOK, subjects)
}

// Publish handles PUT /admin/publish/:id
func (h *AdminHandler) Publish(c *gin.Context) {
	id := c.Param("id")
	reviewerID := middleware.GetUserID(c)

	subject, err := h.service.Publish(c.Request.Context(), id, reviewerID)
	if errors.Is(err, common.ErrSubjectNotFound) {
		common.ErrorResponse(c, http.StatusNotFound, "Subject not found", nil)
		return
	}
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to publish subject", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Subject published",
		"id":      subject.ID,
	})
}

// Reject handles PUT /admin/reject/:id?reason=
func (h *AdminHandler) Reject(c *gin.Context) {
	id := c.Param("id")
	reason := c.Query("reason")
	reviewerID := middleware.GetUserID(c)

	subject, err := h.service.Reject(c.Request.Context(), id, reviewerID, reason)
	if errors.Is(err, common.ErrSubjectNotFound) {
		common.ErrorResponse(c, http.StatusNotFound, "Subject not found", nil)
		return
	}
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to reject subject", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Subject rejected",
		"id":      subject.ID,
	})
}

// ListUsers handles GET /admin/users
func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.service.ListUsers()
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to list users", err)
		return
	}

	meta := &common.Meta{Total: int64(len(users))}
	common.SuccessResponse(c, users, meta)
}

// UpdateUserRole handles PUT /admin/users/:id/role?role=
func (h *AdminHandler) UpdateUserRole(c *gin.Context) {
	id := c.Param("id")
	role := c.Query("role")

	user, err := h.service.UpdateUserRole(id, role)
	switch {
	case errors.Is(err, common.ErrInvalidRole):
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid role", nil)
		return
	case errors.Is(err, common.ErrUserNotFound):
		common.ErrorResponse(c, http.StatusNotFound, "User not found", nil)
		return
	case err != nil:
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to update role", err)
		return
	}

	common.SuccessResponse(c, user, nil)
}
