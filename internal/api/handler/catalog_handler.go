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

// CatalogHandler handles tailor service listings.
type CatalogHandler struct {
	catalog ports.CatalogService
	uploads ports.UploadService
}

func NewCatalogHandler(catalog ports.CatalogService, uploads ports.UploadService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, uploads: uploads}
}

type createServiceRequest struct {
	Title       string   `json:"title"       validate:"required"`
	Skills      []string `json:"skills"      validate:"required,min=1"`
	Price       float64  `json:"price"       validate:"required,gt=0"`
	Delivery    string   `json:"delivery"    validate:"required"`
	Description string   `json:"description" validate:"required"`
}

// Create handles POST /api/services. JSON carries the fields; multipart
// additionally accepts one optional image.
//
// @Summary      Publish a service listing
// @Tags         services
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createServiceRequest  true  "Service details"
// @Success      201   {object}  domain.Service
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/services [post]
func (h *CatalogHandler) Create(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req createServiceRequest
	var imageURL string

	if strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm) {
		price, err := strconv.ParseFloat(c.FormValue("price"), 64)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnprocessableEntity, "price must be a number")
		}
		req = createServiceRequest{
			Title:       c.FormValue("title"),
			Skills:      splitSkills(c.FormValue("skills")),
			Price:       price,
			Delivery:    c.FormValue("delivery"),
			Description: c.FormValue("description"),
		}

		if fh, err := c.FormFile("image"); err == nil {
			f, err := fh.Open()
			if err != nil {
				return echo.NewHTTPError(http.StatusBadRequest, "unreadable image file")
			}
			defer f.Close()

			imageURL, err = h.uploads.UploadSingle(c.Request().Context(), ports.UploadInput{
				Filename: fh.Filename,
				Size:     fh.Size,
				Reader:   f,
			})
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

	svc, err := h.catalog.CreateService(c.Request().Context(), ports.CreateServiceInput{
		Title:       req.Title,
		Skills:      req.Skills,
		Price:       req.Price,
		Delivery:    req.Delivery,
		Description: req.Description,
		ImageURL:    imageURL,
		TailorID:    userID,
	})
	if err != nil {
		return err
	}

	metrics.ServicesCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, svc)
}

// List handles GET /api/services — all listings, newest first.
//
// @Summary      List services
// @Tags         services
// @Produce      json
// @Success      200  {array}  domain.Service
// @Router       /api/services [get]
func (h *CatalogHandler) List(c echo.Context) error {
	services, err := h.catalog.ListServices(c.Request().Context())
	if err != nil {
		return err
	}
	if services == nil {
		services = []domain.Service{}
	}
	return c.JSON(http.StatusOK, services)
}

// splitSkills parses the comma-separated skills field of a multipart submission.
func splitSkills(raw string) []string {
	parts := strings.Split(raw, ",")
	skills := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			skills = append(skills, s)
		}
	}
	return skills
}
