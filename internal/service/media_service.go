package service

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"path"
	"strings"

	pkglogger "github.com/sahayak/sahayak-backend/pkg/logger"
	"github.com/sahayak/sahayak-backend/pkg/storage"
)

// MediaService handles syllabus image and question-paper uploads to S3 storage
type MediaService struct {
	s3      *storage.S3Client
	maxSize int64 // max file size in bytes
}

// NewMediaService creates a new MediaService
func NewMediaService(s3Client *storage.S3Client) *MediaService {
	return &MediaService{
		s3:      s3Client,
		maxSize: 20 * 1024 * 1024, // 20MB
	}
}

// MediaUploadResult represents the result of an upload operation
type MediaUploadResult struct {
	Key         string `json:"key"`
	URL         string `json:"url"`
	CDNURL      string `json:"cdn_url,omitempty"`
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
	Width       int    `json:"width,omitempty"`
	Height      int    `json:"height,omitempty"`
}

var imageExts = []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}

func isImageExt(ext string) bool {
	for _, e := range imageExts {
		if ext == e {
			return true
		}
	}
	return false
}

// sanitizeFilename keeps only safe characters and forces the given extension
func sanitizeFilename(filename, ext string) string {
	base := strings.TrimSuffix(path.Base(filename), path.Ext(filename))
	var b strings.Builder
	for _, r := range base {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	name := b.String()
	if name == "" {
		name = "upload"
	}
	return name + ext
}

// resizeImage scales an image down to maxWidth preserving aspect ratio
func resizeImage(img image.Image, maxWidth int) image.Image {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if width <= maxWidth {
		return img
	}

	newWidth := maxWidth
	newHeight := height * maxWidth / width

	dst := image.NewRGBA(image.Rect(0, 0, newWidth, newHeight))
	for y := 0; y < newHeight; y++ {
		srcY := y * height / newHeight
		for x := 0; x < newWidth; x++ {
			srcX := x * width / newWidth
			dst.Set(x, y, img.At(bounds.Min.X+srcX, bounds.Min.Y+srcY))
		}
	}
	return dst
}

// UploadImage uploads a syllabus or PYQ image, resizing oversized rasters
func (s *MediaService) UploadImage(ctx context.Context, file *multipart.FileHeader, maxWidth int) (*MediaUploadResult, error) {
	if file.Size > s.maxSize {
		return nil, fmt.Errorf("file too large (max %dMB)", s.maxSize/(1024*1024))
	}

	ext := strings.ToLower(path.Ext(file.Filename))
	if !isImageExt(ext) {
		return nil, fmt.Errorf("unsupported image format: %s", ext)
	}

	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return nil, err
	}

	contentType := http.DetectContentType(data)
	var reader io.Reader = bytes.NewReader(data)
	size := int64(len(data))
	var width, height int

	// Decode and resize raster images; GIFs are passed through untouched
	if ext != ".gif" {
		img, format, decErr := image.Decode(bytes.NewReader(data))
		if decErr == nil {
			bounds := img.Bounds()
			width = bounds.Dx()
			height = bounds.Dy()

			if maxWidth > 0 && width > maxWidth {
				img = resizeImage(img, maxWidth)
				bounds = img.Bounds()
				width = bounds.Dx()
				height = bounds.Dy()
			}

			var buf bytes.Buffer
			switch format {
			case "png":
				if err := png.Encode(&buf, img); err == nil {
					reader = &buf
					size = int64(buf.Len())
					contentType = "image/png"
					ext = ".png"
				}
			default:
				if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 85}); err == nil {
					reader = &buf
					size = int64(buf.Len())
					contentType = "image/jpeg"
					ext = ".jpg"
				}
			}
		}
	}

	key := storage.GenerateKey("images", sanitizeFilename(file.Filename, ext))

	result, err := s.s3.Upload(ctx, key, reader, contentType, size)
	if err != nil {
		return nil, err
	}

	pkglogger.GetLogger().Info().
		Str("key", result.Key).
		Int64("size", size).
		Msg("image uploaded")

	return &MediaUploadResult{
		Key:         result.Key,
		URL:         result.URL,
		CDNURL:      result.CDNURL,
		Filename:    file.Filename,
		ContentType: contentType,
		Size:        size,
		Width:       width,
		Height:      height,
	}, nil
}

// UploadDocument uploads a question paper PDF
func (s *MediaService) UploadDocument(ctx context.Context, file *multipart.FileHeader) (*MediaUploadResult, error) {
	if file.Size > s.maxSize {
		return nil, fmt.Errorf("file too large (max %dMB)", s.maxSize/(1024*1024))
	}

	ext := strings.ToLower(path.Ext(file.Filename))
	if ext != ".pdf" {
		return nil, fmt.Errorf("unsupported document format: %s", ext)
	}

	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	key := storage.GenerateKey("documents", sanitizeFilename(file.Filename, ext))

	result, err := s.s3.Upload(ctx, key, src, "application/pdf", file.Size)
	if err != nil {
		return nil, err
	}

	pkglogger.GetLogger().Info().
		Str("key", result.Key).
		Int64("size", file.Size).
		Msg("document uploaded")

	return &MediaUploadResult{
		Key:         result.Key,
		URL:         result.URL,
		CDNURL:      result.CDNURL,
		Filename:    file.Filename,
		ContentType: "application/pdf",
		Size:        file.Size,
	}, nil
}
