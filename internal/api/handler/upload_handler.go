package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tailorhub/marketplace/internal/api/metrics"
	"github.com/tailorhub/marketplace/internal/core/domain"
	"github.com/tailorhub/marketplace/internal/core/ports"
	"github.com/tailorhub/marketplace/internal/core/service"
)

// UploadHandler handles standalone image uploads.
type UploadHandler struct {
	uploads ports.UploadService
}

func NewUploadHandler(uploads ports.UploadService) *UploadHandler {
	return &UploadHandler{uploads: uploads}
}

type uploadResponse struct {
	URL string `json:"url"`
}

type uploadMultipleResponse struct {
	URLs []string `json:"urls"`
}

// Single handles POST /api/upload/single.
//
// @Summary      Upload a single image
// @Tags         upload
// @Accept       mpfd
// @Produce      json
// @Security     BearerAuth
// @Param        file  formData  file  true  "Image file (max 5MB)"
// @Success      201   {object}  uploadResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/upload/single [post]
func (h *UploadHandler) Single(c echo.Context) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "file is required")
	}

	f, err := fh.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unreadable file")
	}
	defer f.Close()

	url, err := h.uploads.UploadSingle(c.Request().Context(), ports.UploadInput{
		Filename: fh.Filename,
		Size:     fh.Size,
		Reader:   f,
	})
	if err != nil {
		countRejection(err)
		return err
	}

	metrics.UploadBytes.Observe(float64(fh.Size))
	return c.JSON(http.StatusCreated, uploadResponse{URL: url})
}

// Multiple handles POST /api/upload/multiple — up to 5 files.
//
// @Summary      Upload multiple images
// @Tags         upload
// @Accept       mpfd
// @Produce      json
// @Security     BearerAuth
// @Param        files  formData  file  true  "Image files (max 5, each max 5MB)"
// @Success      201    {object}  uploadMultipleResponse
// @Failure      422    {object}  errorResponse
// @Router       /api/upload/multiple [post]
func (h *UploadHandler) Multiple(c echo.Context) error {
	form, err := c.MultipartForm()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid multipart form")
	}

	files := form.File["files"]
	if len(files) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "at least one file is required")
	}

	inputs := make([]ports.UploadInput, 0, len(files))
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "unreadable file")
		}
		defer f.Close()
		inputs = append(inputs, ports.UploadInput{Filename: fh.Filename, Size: fh.Size, Reader: f})
	}

	urls, err := h.uploads.UploadMultiple(c.Request().Context(), inputs)
	if err != nil {
		countRejection(err)
		return err
	}

	for _, fh := range files {
		metrics.UploadBytes.Observe(float64(fh.Size))
	}
	return c.JSON(http.StatusCreated, uploadMultipleResponse{URLs: urls})
}

func countRejection(err error) {
	switch {
	case errors.Is(err, service.ErrFileTooLarge):
		metrics.UploadRejectedTotal.WithLabelValues("too_large").Inc()
	case errors.Is(err, domain.ErrTooManyImages):
		metrics.UploadRejectedTotal.WithLabelValues("too_many").Inc()
	case errors.Is(err, service.ErrNotAnImage):
		metrics.UploadRejectedTotal.WithLabelValues("not_image").Inc()
	}
}
