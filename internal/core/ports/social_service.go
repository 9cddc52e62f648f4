package ports

import (
	"context"

	"github.com/tailorhub/marketplace/internal/core/domain"
)

// LikeResult is returned by a like toggle.
type LikeResult struct {
	Liked bool
	Likes int64
}

// SocialService defines community feed operations.
type SocialService interface {
	CreatePost(ctx context.Context, authorID, authorName, content, imageURL string) (*domain.Post, error)
	Feed(ctx context.Context) ([]domain.Post, error)
	Like(ctx context.Context, postID, userID string) (*LikeResult, error)
	Follow(ctx context.Context, followerID, followeeID string) (following bool, err error)
}
