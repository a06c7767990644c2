package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sahayak/sahayak-backend/internal/common"
	"github.com/sahayak/sahayak-backend/internal/domain"
	"github.com/sahayak/sahayak-backend/internal/middleware"
	"github.com/sahayak/sahayak-backend/internal/service"
)

// AuthHandler handles authentication requests
type AuthHandler struct {
	service service.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(service service.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

// Register godoc
// @Summary      Register a new account
// @Description  Creates a user account; duplicate email or username is rejected
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body  domain.RegisterRequest  true  "Registration payload"
// @Success      201  {object}  map[string]string
// @Failure      400  {object}  common.APIResponse
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req domain.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	user, err := h.service.Register(&req)
	switch {
	case errors.Is(err, common.ErrEmailTaken):
		common.ErrorResponse(c, http.StatusBadRequest, "Email already registered", nil)
		return
	case errors.Is(err, common.ErrUsernameTaken):
		common.ErrorResponse(c, http.StatusBadRequest, "Username already taken", nil)
		return
	case errors.Is(err, common.ErrInvalidRole):
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid role", nil)
		return
	case err != nil:
		common.ErrorResponse(c, http.StatusInternalServerError, "Registration failed", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully",
		"id":      user.ID,
	})
}

// Login godoc
// @Summary      Log in
// @Description  Authenticates by email and password and returns a bearer token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body  domain.LoginRequest  true  "Login payload"
// @Success      200  {object}  domain.LoginResponse
// @Failure      401  {object}  common.APIResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req domain.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	response, err := h.service.Login(req.Email, req.Password)
	if errors.Is(err, common.ErrInvalidCredentials) {
		common.ErrorResponse(c, http.StatusUnauthorized, "Invalid email or password", nil)
		return
	}
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "Login failed", err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// Me handles GET /auth/me (requires JWT)
func (h *AuthHandler) Me(c *gin.Context) {
	userID := middleware.GetUserID(c)

	user, err := h.service.CurrentUser(userID)
	if errors.Is(err, common.ErrUserNotFound) {
		common.ErrorResponse(c, http.StatusNotFound, "User not found", nil)
		return
	}
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to load user", err)
		return
	}

	c.JSON(http.StatusOK, user)
}
