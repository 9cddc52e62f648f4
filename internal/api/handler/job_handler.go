package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/tailorhub/marketplace/internal/api/metrics"
	"github.com/tailorhub/marketplace/internal/core/domain"
	"github.com/tailorhub/marketplace/internal/core/ports"
)

// JobHandler handles HTTP requests for job posting and the public
// marketplace listing.
type JobHandler struct {
	jobs    ports.JobService
	uploads ports.UploadService
}

func NewJobHandler(jobs ports.JobService, uploads ports.UploadService) *JobHandler {
	return &JobHandler{jobs: jobs, uploads: uploads}
}

type createJobRequest struct {
	Title       string  `json:"title"       validate:"required"`
	Category    string  `json:"category"    validate:"required"`
	Budget      float64 `json:"budget"      validate:"required,gt=0"`
	Description string  `json:"description" validate:"required"`
}

// Create handles POST /api/jobs. JSON carries the fields; multipart
// additionally accepts up to 5 reference images.
//
// @Summary      Post a new job
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createJobRequest  true  "Job details"
// @Success      201   {object}  domain.Job
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/jobs [post]
func (h *JobHandler) Create(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req createJobRequest
	var imageURLs []string

	if strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm) {
		budget, err := strconv.ParseFloat(c.FormValue("budget"), 64)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnprocessableEntity, "budget must be a number")
		}
		req = createJobRequest{
			Title:       c.FormValue("title"),
			Category:    c.FormValue("category"),
			Budget:      budget,
			Description: c.FormValue("description"),
		}

		form, err := c.MultipartForm()
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid multipart form")
		}
		files := form.File["images"]
		if len(files) > domain.MaxJobImages {
			metrics.UploadRejectedTotal.WithLabelValues("too_many").Inc()
			return echo.NewHTTPError(http.StatusUnprocessableEntity, domain.ErrTooManyImages.Error())
		}

		inputs := make([]ports.UploadInput, 0, len(files))
		for _, fh := range files {
			f, err := fh.Open()
			if err != nil {
				return echo.NewHTTPError(http.StatusBadRequest, "unreadable image file")
			}
			defer f.Close()
			inputs = append(inputs, ports.UploadInput{Filename: fh.Filename, Size: fh.Size, Reader: f})
		}
		if len(inputs) > 0 {
			imageURLs, err = h.uploads.UploadMultiple(c.Request().Context(), inputs)
			if err != nil {
				return err
			}
		}
	} else {
		if err := c.Bind(&req); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
		}
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	job, err := h.jobs.CreateJob(c.Request().Context(), ports.CreateJobInput{
		Title:       req.Title,
		Category:    req.Category,
		Budget:      req.Budget,
		Description: req.Description,
		ImageURLs:   imageURLs,
		ClientID:    userID,
	})
	if err != nil {
		return err
	}

	metrics.JobsCreatedTotal.WithLabelValues(job.Category).Inc()
	return c.JSON(http.StatusCreated, job)
}

// List handles GET /api/jobs — the public marketplace listing of approved
// jobs, newest first.
//
// @Summary      List approved jobs
// @Tags         jobs
// @Produce      json
// @Success      200  {array}  domain.Job
// @Router       /api/jobs [get]
func (h *JobHandler) List(c echo.Context) error {
	jobs, err := h.jobs.ListApproved(c.Request().Context())
	if err != nil {
		return err
	}
	if jobs == nil {
		jobs = []domain.Job{}
	}
	return c.JSON(http.StatusOK, jobs)
}
