package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/tailorhub/marketplace/internal/api/metrics"
	"github.com/tailorhub/marketplace/internal/core/domain"
	"github.com/tailorhub/marketplace/internal/core/ports"
)

// AdminHandler handles moderation and platform settings. Every route is
// behind Auth + RBAC(ADMIN); the handlers still re-check identity because
// claims are what ties a decision to its moderator.
type AdminHandler struct {
	admin   ports.AdminService
	jobs    ports.JobService
	uploads ports.UploadService
}

func NewAdminHandler(admin ports.AdminService, jobs ports.JobService, uploads ports.UploadService) *AdminHandler {
	return &AdminHandler{admin: admin, jobs: jobs, uploads: uploads}
}

// ListUsers handles GET /api/admin/users.
//
// @Summary      List all users
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.User
// @Failure      403  {object}  errorResponse
// @Router       /api/admin/users [get]
func (h *AdminHandler) ListUsers(c echo.Context) error {
	users, err := h.admin.ListUsers(c.Request().Context())
	if err != nil {
		return err
	}
	if users == nil {
		users = []domain.User{}
	}
	return c.JSON(http.StatusOK, users)
}

// ListJobs handles GET /api/admin/jobs — the moderation queue. An optional
// ?status= filter narrows to one state.
//
// @Summary      List jobs for moderation
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        status  query  string  false  "Filter by status (PENDING, APPROVED, REJECTED)"
// @Success      200  {array}  domain.Job
// @Failure      403  {object}  errorResponse
// @Router       /api/admin/jobs [get]
func (h *AdminHandler) ListJobs(c echo.Context) error {
	status := domain.JobStatus(c.QueryParam("status"))
	jobs, err := h.jobs.ListAll(c.Request().Context(), status)
	if err != nil {
		return err
	}
	if jobs == nil {
		jobs = []domain.Job{}
	}
	return c.JSON(http.StatusOK, jobs)
}

// ApproveJob handles PUT /api/admin/jobs/:id/approve.
//
// @Summary      Approve a job
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Job ID"
// @Success      200  {object}  domain.Job
// @Failure      404  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Router       /api/admin/jobs/{id}/approve [put]
func (h *AdminHandler) ApproveJob(c echo.Context) error {
	return h.moderate(c, domain.JobApproved)
}

// RejectJob handles PUT /api/admin/jobs/:id/reject.
//
// @Summary      Reject a job
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Job ID"
// @Success      200  {object}  domain.Job
// @Failure      404  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Router       /api/admin/jobs/{id}/reject [put]
func (h *AdminHandler) RejectJob(c echo.Context) error {
	return h.moderate(c, domain.JobRejected)
}

func (h *AdminHandler) moderate(c echo.Context, decision domain.JobStatus) error {
	adminID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	job, err := h.jobs.Moderate(c.Request().Context(), c.Param("id"), decision, adminID)
	if err != nil {
		return err
	}

	metrics.JobsModeratedTotal.WithLabelValues(string(decision)).Inc()
	return c.JSON(http.StatusOK, job)
}

type commissionRequest struct {
	Rate float64 `json:"rate" validate:"gte=0,lte=30"`
}

// CommissionSettings handles GET /api/admin/commission/settings.
//
// @Summary      Get commission settings
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.CommissionConfig
// @Router       /api/admin/commission/settings [get]
func (h *AdminHandler) CommissionSettings(c echo.Context) error {
	cfg, err := h.admin.CommissionSettings(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cfg)
}

// UpdateCommission handles PUT /api/admin/commission/settings.
//
// @Summary      Update commission rate
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      commissionRequest  true  "New rate"
// @Success      200   {object}  domain.CommissionConfig
// @Failure      422   {object}  errorResponse
// @Router       /api/admin/commission/settings [put]
func (h *AdminHandler) UpdateCommission(c echo.Context) error {
	adminID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req commissionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	cfg, err := h.admin.UpdateCommissionRate(c.Request().Context(), req.Rate, adminID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cfg)
}

// CommissionStats handles GET /api/admin/commission/stats.
//
// @Summary      Commission statistics
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.CommissionStats
// @Router       /api/admin/commission/stats [get]
func (h *AdminHandler) CommissionStats(c echo.Context) error {
	stats, err := h.admin.CommissionStats(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}

// CreateCard handles POST /api/admin/cards (multipart for the optional image).
//
// @Summary      Create payment card
// @Tags         admin
// @Accept       mpfd
// @Produce      json
// @Security     BearerAuth
// @Success      201  {object}  domain.PaymentCard
// @Failure      400  {object}  errorResponse
// @Router       /api/admin/cards [post]
func (h *AdminHandler) CreateCard(c echo.Context) error {
	input, err := h.bindCard(c)
	if err != nil {
		return err
	}

	card, err := h.admin.CreateCard(c.Request().Context(), input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, card)
}

// UpdateCard handles PUT /api/admin/cards/:id.
//
// @Summary      Update payment card
// @Tags         admin
// @Accept       mpfd
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Card ID"
// @Success      200  {object}  domain.PaymentCard
// @Failure      404  {object}  errorResponse
// @Router       /api/admin/cards/{id} [put]
func (h *AdminHandler) UpdateCard(c echo.Context) error {
	input, err := h.bindCard(c)
	if err != nil {
		return err
	}

	card, err := h.admin.UpdateCard(c.Request().Context(), c.Param("id"), input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, card)
}

// DeleteCard handles DELETE /api/admin/cards/:id.
//
// @Summary      Delete payment card
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Card ID"
// @Success      204  "No Content"
// @Failure      404  {object}  errorResponse
// @Router       /api/admin/cards/{id} [delete]
func (h *AdminHandler) DeleteCard(c echo.Context) error {
	if err := h.admin.DeleteCard(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ListCards handles GET /api/admin/cards.
//
// @Summary      List payment cards
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.PaymentCard
// @Router       /api/admin/cards [get]
func (h *AdminHandler) ListCards(c echo.Context) error {
	cards, err := h.admin.ListCards(c.Request().Context())
	if err != nil {
		return err
	}
	if cards == nil {
		cards = []domain.PaymentCard{}
	}
	return c.JSON(http.StatusOK, cards)
}

// ActiveCard handles the public GET /api/cards/active. The card number is
// masked before it leaves the service.
//
// @Summary      Get the active payment card
// @Tags         cards
// @Produce      json
// @Success      200  {object}  domain.PaymentCard
// @Failure      404  {object}  errorResponse
// @Router       /api/cards/active [get]
func (h *AdminHandler) ActiveCard(c echo.Context) error {
	card, err := h.admin.ActiveCard(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, card)
}

func (h *AdminHandler) bindCard(c echo.Context) (ports.CardInput, error) {
	input := ports.CardInput{
		CardNumber: c.FormValue("cardNumber"),
		CardHolder: c.FormValue("cardHolder"),
		Expiry:     c.FormValue("expiry"),
		CVC:        c.FormValue("cvc"),
	}
	if input.CardNumber == "" || input.CardHolder == "" || input.Expiry == "" {
		return input, echo.NewHTTPError(http.StatusBadRequest, "cardNumber, cardHolder and expiry are required")
	}

	if strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm) {
		if fh, err := c.FormFile("image"); err == nil {
			f, err := fh.Open()
			if err != nil {
				return input, echo.NewHTTPError(http.StatusBadRequest, "unreadable image file")
			}
			defer f.Close()

			url, err := h.uploads.UploadSingle(c.Request().Context(), ports.UploadInput{
				Filename: fh.Filename,
				Size:     fh.Size,
				Reader:   f,
			})
			if err != nil {
				return input, err
			}
			input.ImageURL = url
		}
	}
	return input, nil
}
