package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tailorhub/marketplace/internal/core/domain"
)

const (
	collectionPosts   = "posts"
	collectionLikes   = "likes"
	collectionFollows = "follows"
)

type SocialRepository struct {
	posts   *mongo.Collection
	likes   *mongo.Collection
	follows *mongo.Collection
}

func NewSocialRepository(db *mongo.Database) *SocialRepository {
	return &SocialRepository{
		posts:   db.Collection(collectionPosts),
		likes:   db.Collection(collectionLikes),
		follows: db.Collection(collectionFollows),
	}
}

type mongoPost struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	AuthorID   string             `bson:"author_id"`
	AuthorName string             `bson:"author_name"`
	Content    string             `bson:"content"`
	ImageURL   string             `bson:"image_url,omitempty"`
	Likes      int64              `bson:"likes"`
	CreatedAt  time.Time          `bson:"created_at"`
}

func (r *SocialRepository) CreatePost(ctx context.Context, post *domain.Post) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoPost{
		AuthorID:   post.AuthorID,
		AuthorName: post.AuthorName,
		Content:    post.Content,
		ImageURL:   post.ImageURL,
		CreatedAt:  post.CreatedAt,
	}
	res, err := r.posts.InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("insert post: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		post.ID = oid.Hex()
	}
	return nil
}

func (r *SocialRepository) ListPosts(ctx context.Context) ([]domain.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.posts.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer cur.Close(ctx)

	var posts []domain.Post
	for cur.Next(ctx) {
		var mp mongoPost
		if err := cur.Decode(&mp); err != nil {
			return nil, fmt.Errorf("decode post: %w", err)
		}
		posts = append(posts, *mp.toDomain())
	}
	return posts, cur.Err()
}

func (r *SocialRepository) FindPost(ctx context.Context, id string) (*domain.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrPostNotFound
	}

	var mp mongoPost
	if err := r.posts.FindOne(ctx, bson.M{"_id": oid}).Decode(&mp); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPostNotFound
		}
		return nil, fmt.Errorf("find post: %w", err)
	}
	return mp.toDomain(), nil
}

// ToggleLike flips the (post, user) like edge and keeps the denormalized
// counter on the post in step.
func (r *SocialRepository) ToggleLike(ctx context.Context, postID, userID string) (bool, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return false, 0, domain.ErrPostNotFound
	}

	edge := bson.M{"post_id": postID, "user_id": userID}
	res, err := r.likes.DeleteOne(ctx, edge)
	if err != nil {
		return false, 0, fmt.Errorf("toggle like: %w", err)
	}

	liked := res.DeletedCount == 0
	delta := int64(-1)
	if liked {
		if _, err := r.likes.InsertOne(ctx, edge); err != nil {
			return false, 0, fmt.Errorf("toggle like: %w", err)
		}
		delta = 1
	}

	var mp mongoPost
	after := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err = r.posts.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$inc": bson.M{"likes": delta}},
		after,
	).Decode(&mp)
	if err != nil {
		return false, 0, fmt.Errorf("update like count: %w", err)
	}

	return liked, mp.Likes, nil
}

// ToggleFollow flips the (follower, followee) edge.
func (r *SocialRepository) ToggleFollow(ctx context.Context, followerID, followeeID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	edge := bson.M{"follower_id": followerID, "followee_id": followeeID}
	res, err := r.follows.DeleteOne(ctx, edge)
	if err != nil {
		return false, fmt.Errorf("toggle follow: %w", err)
	}
	if res.DeletedCount > 0 {
		return false, nil
	}
	if _, err := r.follows.InsertOne(ctx, edge); err != nil {
		return false, fmt.Errorf("toggle follow: %w", err)
	}
	return true, nil
}

// EnsureIndexes creates the unique edge indexes for likes and follows.
func (r *SocialRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if _, err := r.likes.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "post_id", Value: 1}, {Key: "user_id", Value: 1}},
		Options: indexUnique(),
	}); err != nil {
		return err
	}
	_, err := r.follows.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "follower_id", Value: 1}, {Key: "followee_id", Value: 1}},
		Options: indexUnique(),
	})
	return err
}

func (mp *mongoPost) toDomain() *domain.Post {
	return &domain.Post{
		ID:         mp.ID.Hex(),
		AuthorID:   mp.AuthorID,
		AuthorName: mp.AuthorName,
		Content:    mp.Content,
		ImageURL:   mp.ImageURL,
		Likes:      mp.Likes,
		CreatedAt:  mp.CreatedAt,
	}
}
