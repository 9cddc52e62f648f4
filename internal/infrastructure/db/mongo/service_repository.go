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

const collectionServices = "services"

type ServiceRepository struct {
	col *mongo.Collection
}

func NewServiceRepository(db *mongo.Database) *ServiceRepository {
	return &ServiceRepository{col: db.Collection(collectionServices)}
}

type mongoService struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Skills      []string           `bson:"skills,omitempty"`
	Price       float64            `bson:"price"`
	Delivery    string             `bson:"delivery"`
	Description string             `bson:"description"`
	ImageURL    string             `bson:"image_url,omitempty"`
	TailorID    string             `bson:"tailor_id"`
	CreatedAt   time.Time          `bson:"created_at"`
}

func (r *ServiceRepository) Create(ctx context.Context, svc *domain.Service) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoService{
		Title:       svc.Title,
		Skills:      svc.Skills,
		Price:       svc.Price,
		Delivery:    svc.Delivery,
		Description: svc.Description,
		ImageURL:    svc.ImageURL,
		TailorID:    svc.TailorID,
		CreatedAt:   svc.CreatedAt,
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("insert service: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		svc.ID = oid.Hex()
	}
	return nil
}

func (r *ServiceRepository) FindByID(ctx context.Context, id string) (*domain.Service, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrServiceNotFound
	}

	var ms mongoService
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&ms); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrServiceNotFound
		}
		return nil, fmt.Errorf("find service: %w", err)
	}
	return ms.toDomain(), nil
}

func (r *ServiceRepository) List(ctx context.Context) ([]domain.Service, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}
	defer cur.Close(ctx)

	var services []domain.Service
	for cur.Next(ctx) {
		var ms mongoService
		if err := cur.Decode(&ms); err != nil {
			return nil, fmt.Errorf("decode service: %w", err)
		}
		services = append(services, *ms.toDomain())
	}
	return services, cur.Err()
}

// EnsureIndexes creates necessary indexes on the services collection.
func (r *ServiceRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "tailor_id", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

func (ms *mongoService) toDomain() *domain.Service {
	return &domain.Service{
		ID:          ms.ID.Hex(),
		Title:       ms.Title,
		Skills:      ms.Skills,
		Price:       ms.Price,
		Delivery:    ms.Delivery,
		Description: ms.Description,
		ImageURL:    ms.ImageURL,
		TailorID:    ms.TailorID,
		CreatedAt:   ms.CreatedAt,
	}
}
