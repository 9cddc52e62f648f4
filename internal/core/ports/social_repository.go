package ports

import (
	"context"

	"github.com/tailorhub/marketplace/internal/core/domain"
)

// SocialRepository persists feed posts, likes and follows.
type SocialRepository interface {
	CreatePost(ctx context.Context, post *domain.Post) error
	// ListPosts returns posts newest first with their like counts.
	ListPosts(ctx context.Context) ([]domain.Post, error)
	FindPost(ctx context.Context, id string) (*domain.Post, error)
	// ToggleLike flips userID's like on postID and returns the new state and count.
	ToggleLike(ctx context.Context, postID, userID string) (liked bool, likes int64, err error)
	// ToggleFollow flips followerID following followeeID and returns the new state.
	ToggleFollow(ctx context.Context, followerID, followeeID string) (following bool, err error)
}
