package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sahayak/sahayak-backend/internal/common"
	"github.com/sahayak/sahayak-backend/internal/domain"
	"github.com/sahayak/sahayak-backend/internal/middleware"
	"github.com/sahayak/sahayak-backend/internal/service"
)

// SubjectHandler handles subject browsing and submission endpoints
type SubjectHandler struct {
	service service.SubjectService
}

// NewSubjectHandler creates a new SubjectHandler
func NewSubjectHandler(service service.SubjectService) *SubjectHandler {
	return &SubjectHandler{service: service}
}

// List godoc
// @Summary      List published subjects
// @Description  Returns published subjects, filterable by department, semester and name search
// @Tags         subjects
// @Produce      json
// @Param        department  query  string  false  "Department filter"
// @Param        semester    query  int     false  "Semester filter"
// @Param        search      query  string  false  "Name search"
// @Success      200  {array}  domain.Subject
// @Router       /subjects [get]
func (h *SubjectHandler) List(c *gin.Context) {
	filter := domain.SubjectListFilter{
		Department: c.Query("department"),
		Search:     c.Query("search"),
	}
	if s := c.Query("semester"); s != "" {
		semester, err := strconv.Atoi(s)
		if err != nil {
			common.ErrorResponse(c, http.StatusBadRequest, "Invalid semester", err)
			return
		}
		filter.Semester = semester
	}

	subjects, err := h.service.ListPublished(c.Request.Context(), filter)
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to list subjects", err)
		return
	}

	c.JSON(http.StatusOK, subjects)
}

// GetBySlug godoc
// @Summary      Get a published subject
// @Tags         subjects
// @Produce      json
// @Param        slug  path  string  true  "Subject slug"
// @Success      200  {object}  domain.Subject
// @Failure      404  {object}  common.APIResponse
// @Router       /subjects/{slug} [get]
func (h *SubjectHandler) GetBySlug(c *gin.Context) {
	slug := c.Param("key")

	subject, err := h.service.GetBySlug(c.Request.Context(), slug)
	if errors.Is(err, common.ErrSubjectNotFound) {
		common.ErrorResponse(c, http.StatusNotFound, "Subject not found", nil)
		return
	}
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to load subject", err)
		return
	}

	c.JSON(http.StatusOK, subject)
}

// Create godoc
// @Summary      Submit a subject for review
// @Description  Stores the submission unpublished until an admin reviews it
// @Tags         subjects
// @Accept       json
// @Produce      json
// @Param        request  body  domain.SubjectCreateRequest  true  "Subject payload"
// @Success      201  {object}  map[string]string
// @Failure      400  {object}  common.APIResponse
// @Security     BearerAuth
// @Router       /subjects [post]
func (h *SubjectHandler) Create(c *gin.Context) {
	var req domain.SubjectCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	userID := middleware.GetUserID(c)
	displayName := middleware.GetDisplayName(c)

	subject, err := h.service.Create(c.Request.Context(), &req, userID, displayName)
	if errors.Is(err, common.ErrSlugTaken) {
		common.ErrorResponse(c, http.StatusBadRequest, "A subject with this slug already exists", nil)
		return
	}
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to submit subject", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Subject submitted for review",
		"id":      subject.ID,
	})
}

// Update handles PUT /subjects/:id (author or admin)
func (h *SubjectHandler) Update(c *gin.Context) {
	var req domain.SubjectUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	id := c.Param("key")
	userID := middleware.GetUserID(c)
	role := middleware.GetRole(c)

	subject, err := h.service.Update(c.Request.Context(), id, &req, userID, role)
	switch {
	case errors.Is(err, common.ErrSubjectNotFound):
		common.ErrorResponse(c, http.StatusNotFound, "Subject not found", nil)
		return
	case errors.Is(err, common.ErrForbidden):
		common.ErrorResponse(c, http.StatusForbidden, "Only an author or an admin may edit this subject", nil)
		return
	case err != nil:
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to update subject", err)
		return
	}

	c.JSON(http.StatusOK, subject)
}

// Delete handles DELETE /subjects/:id (author or admin)
func (h *SubjectHandler) Delete(c *gin.Context) {
	id := c.Param("key")
	userID := middleware.GetUserID(c)
	role := middleware.GetRole(c)

	err := h.service.Delete(c.Request.Context(), id, userID, role)
	switch {
	case errors.Is(err, common.ErrSubjectNotFound):
		common.ErrorResponse(c, http.StatusNotFound, "Subject not found", nil)
		return
	case errors.Is(err, common.ErrForbidden):
		common.ErrorResponse(c, http.StatusForbidden, "Only an author or an admin may delete this subject", nil)
		return
	case err != nil:
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to delete subject", err)
		return
	}

	c.Status(http.StatusNoContent)
}

// MySubjects handles GET /users/me/subjects (requires JWT)
func (h *SubjectHandler) MySubjects(c *gin.Context) {
	userID := middleware.GetUserID(c)

	subjects, err := h.service.ListBySubmitter(userID)
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to list submissions", err)
		return
	}

	c.JSON(http.StatusOK, subjects)
}
