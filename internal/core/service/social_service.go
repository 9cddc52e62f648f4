package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/tailorhub/marketplace/internal/core/domain"
	"github.com/tailorhub/marketplace/internal/core/ports"
)

// SocialService implements the community feed.
type SocialService struct {
	repo ports.SocialRepository
	log  zerolog.Logger
}

func NewSocialService(repo ports.SocialRepository, log zerolog.Logger) *SocialService {
	return &SocialService{repo: repo, log: log}
}

func (s *SocialService) CreatePost(ctx context.Context, authorID, authorName, content, imageURL string) (*domain.Post, error) {
	if content == "" {
		return nil, errors.New("post content is required")
	}

	post := &domain.Post{
		AuthorID:   authorID,
		AuthorName: authorName,
		Content:    content,
		ImageURL:   imageURL,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.repo.CreatePost(ctx, post); err != nil {
		return nil, err
	}

	s.log.Info().Str("post_id", post.ID).Str("author", authorID).Msg("post created")
	return post, nil
}

func (s *SocialService) Feed(ctx context.Context) ([]domain.Post, error) {
	return s.repo.ListPosts(ctx)
}

// Like toggles the caller's like on a post.
func (s *SocialService) Like(ctx context.Context, postID, userID string) (*ports.LikeResult, error) {
	if _, err := s.repo.FindPost(ctx, postID); err != nil {
		return nil, err
	}
	liked, likes, err := s.repo.ToggleLike(ctx, postID, userID)
	if err != nil {
		return nil, err
	}
	return &ports.LikeResult{Liked: liked, Likes: likes}, nil
}

// Follow toggles the caller following another user.
func (s *SocialService) Follow(ctx context.Context, followerID, followeeID string) (bool, error) {
	if followerID == followeeID {
		return false, domain.ErrSelfFollow
	}
	return s.repo.ToggleFollow(ctx, followerID, followeeID)
}
