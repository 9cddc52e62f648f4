package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/tailorhub/marketplace/internal/core/ports"
)

type UserHandler struct {
	users   ports.UserService
	uploads ports.UploadService
}

func NewUserHandler(users ports.UserService, uploads ports.UploadService) *UserHandler {
	return &UserHandler{users: users, uploads: uploads}
}

type updateProfileRequest struct {
	Name *string `json:"name,omitempty"`
	Bio  *string `json:"bio,omitempty"`
}

// Profile handles GET /api/users/profile.
//
// @Summary      Get own profile
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.User
// @Failure      401  {object}  errorResponse
// @Router       /api/users/profile [get]
func (h *UserHandler) Profile(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	user, err := h.users.Profile(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateProfile handles PUT /api/users/profile. JSON updates name/bio;
// multipart additionally accepts an avatar image.
//
// @Summary      Update own profile
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateProfileRequest  true  "Profile fields"
// @Success      200   {object}  domain.User
// @Failure      401   {object}  errorResponse
// @Router       /api/users/profile [put]
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var update ports.ProfileUpdate

	if strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm) {
		if name := c.FormValue("name"); name != "" {
			update.Name = &name
		}
		if bio := c.FormValue("bio"); bio != "" {
			update.Bio = &bio
		}
		if fh, err := c.FormFile("avatar"); err == nil {
			f, err := fh.Open()
			if err != nil {
				return echo.NewHTTPError(http.StatusBadRequest, "unreadable avatar file")
			}
			defer f.Close()

			url, err := h.uploads.UploadSingle(c.Request().Context(), ports.UploadInput{
				Filename: fh.Filename,
				Size:     fh.Size,
				Reader:   f,
			})
			if err != nil {
				return err
			}
			update.AvatarURL = &url
		}
	} else {
		var req updateProfileRequest
		if err := c.Bind(&req); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
		}
		update.Name = req.Name
		update.Bio = req.Bio
	}

	user, err := h.users.UpdateProfile(c.Request().Context(), userID, update)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}
