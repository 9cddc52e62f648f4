package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tailorhub/marketplace/internal/core/domain"
	"github.com/tailorhub/marketplace/internal/core/ports"
)

const collectionOrders = "orders"

type OrderRepository struct {
	col *mongo.Collection
}

func NewOrderRepository(db *mongo.Database) *OrderRepository {
	return &OrderRepository{col: db.Collection(collectionOrders)}
}

type mongoOrder struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	ServiceID  string             `bson:"service_id"`
	ClientID   string             `bson:"client_id"`
	TailorID   string             `bson:"tailor_id"`
	Amount     float64            `bson:"amount"`
	Commission float64            `bson:"commission"`
	Status     string             `bson:"status"`
	CreatedAt  time.Time          `bson:"created_at"`
}

func (r *OrderRepository) Create(ctx context.Context, order *domain.Order) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoOrder{
		ServiceID:  order.ServiceID,
		ClientID:   order.ClientID,
		TailorID:   order.TailorID,
		Amount:     order.Amount,
		Commission: order.Commission,
		Status:     string(order.Status),
		CreatedAt:  order.CreatedAt,
	}
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		order.ID = oid.Hex()
	}
	return nil
}

func (r *OrderRepository) ListByClient(ctx context.Context, clientID string) ([]domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{"client_id": clientID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer cur.Close(ctx)

	var orders []domain.Order
	for cur.Next(ctx) {
		var mo mongoOrder
		if err := cur.Decode(&mo); err != nil {
			return nil, fmt.Errorf("decode order: %w", err)
		}
		orders = append(orders, domain.Order{
			ID:         mo.ID.Hex(),
			ServiceID:  mo.ServiceID,
			ClientID:   mo.ClientID,
			TailorID:   mo.TailorID,
			Amount:     mo.Amount,
			Commission: mo.Commission,
			Status:     domain.OrderStatus(mo.Status),
			CreatedAt:  mo.CreatedAt,
		})
	}
	return orders, cur.Err()
}

// Stats aggregates count, volume and commission over all orders.
func (r *OrderRepository) Stats(ctx context.Context) (*ports.OrderStats, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "volume", Value: bson.D{{Key: "$sum", Value: "$amount"}}},
			{Key: "commission", Value: bson.D{{Key: "$sum", Value: "$commission"}}},
		}}},
	}

	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("order stats: %w", err)
	}
	defer cur.Close(ctx)

	var row struct {
		Count      int64   `bson:"count"`
		Volume     float64 `bson:"volume"`
		Commission float64 `bson:"commission"`
	}
	if cur.Next(ctx) {
		if err := cur.Decode(&row); err != nil {
			return nil, fmt.Errorf("decode stats: %w", err)
		}
	}
	return &ports.OrderStats{
		Count:           row.Count,
		TotalVolume:     row.Volume,
		TotalCommission: row.Commission,
	}, cur.Err()
}

// EnsureIndexes creates necessary indexes on the orders collection.
func (r *OrderRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "client_id", Value: 1}, {Key: "created_at", Value: -1}},
	})
	return err
}
