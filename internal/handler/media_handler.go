package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sahayak/sahayak-backend/internal/common"
	"github.com/sahayak/sahayak-backend/internal/service"
)

// MediaHandler handles syllabus image and question-paper uploads
type MediaHandler struct {
	mediaService *service.MediaService
}

// NewMediaHandler creates a new MediaHandler
func NewMediaHandler(mediaService *service.MediaService) *MediaHandler {
	return &MediaHandler{mediaService: mediaService}
}

// UploadImage handles syllabus image upload with optional resize
// POST /media/upload
func (h *MediaHandler) UploadImage(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "File is required", nil)
		return
	}

	maxWidth, _ := strconv.Atoi(c.DefaultPostForm("max_width", "1920"))

	result, err := h.mediaService.UploadImage(c.Request.Context(), file, maxWidth)
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, err.Error(), nil)
		return
	}

	common.CreatedResponse(c, result)
}

// UploadDocument handles question paper PDF upload
// POST /media/documents
func (h *MediaHandler) UploadDocument(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "File is required", nil)
		return
	}

	result, err := h.mediaService.UploadDocument(c.Request.Context(), file)
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, err.Error(), nil)
		return
	}

	common.CreatedResponse(c, result)
}
