package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tailorhub/marketplace/internal/core/domain"
	"github.com/tailorhub/marketplace/internal/core/ports"
)

// SocialHandler handles the community feed.
type SocialHandler struct {
	social ports.SocialService
	users  ports.UserService
}

func NewSocialHandler(social ports.SocialService, users ports.UserService) *SocialHandler {
	return &SocialHandler{social: social, users: users}
}

type createPostRequest struct {
	Content  string `json:"content" validate:"required"`
	ImageURL string `json:"imageUrl,omitempty"`
}

type likeRequest struct {
	PostID string `json:"postId" validate:"required"`
}

type likeResponse struct {
	Liked bool  `json:"liked"`
	Likes int64 `json:"likes"`
}

type followRequest struct {
	UserID string `json:"userId" validate:"required"`
}

type followResponse struct {
	Following bool `json:"following"`
}

// CreatePost handles POST /api/social/post.
//
// @Summary      Create a feed post
// @Tags         social
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createPostRequest  true  "Post content"
// @Success      201   {object}  domain.Post
// @Router       /api/social/post [post]
func (h *SocialHandler) CreatePost(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req createPostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	author, err := h.users.Profile(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	post, err := h.social.CreatePost(c.Request().Context(), userID, author.Name, req.Content, req.ImageURL)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, post)
}

// Feed handles GET /api/social/feed — public, newest first.
//
// @Summary      Community feed
// @Tags         social
// @Produce      json
// @Success      200  {array}  domain.Post
// @Router       /api/social/feed [get]
func (h *SocialHandler) Feed(c echo.Context) error {
	posts, err := h.social.Feed(c.Request().Context())
	if err != nil {
		return err
	}
	if posts == nil {
		posts = []domain.Post{}
	}
	return c.JSON(http.StatusOK, posts)
}

// Like handles POST /api/social/like — a toggle.
//
// @Summary      Toggle a like
// @Tags         social
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      likeRequest  true  "Post to like"
// @Success      200   {object}  likeResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/social/like [post]
func (h *SocialHandler) Like(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req likeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.social.Like(c.Request().Context(), req.PostID, userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, likeResponse{Liked: result.Liked, Likes: result.Likes})
}

// Follow handles POST /api/social/follow — a toggle.
//
// @Summary      Toggle a follow
// @Tags         social
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      followRequest  true  "User to follow"
// @Success      200   {object}  followResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/social/follow [post]
func (h *SocialHandler) Follow(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req followRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	following, err := h.social.Follow(c.Request().Context(), userID, req.UserID)
	if err != nil {
		if err == domain.ErrSelfFollow {
			return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
		}
		return err
	}
	return c.JSON(http.StatusOK, followResponse{Following: following})
}
