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
	collectionSettings = "settings"
	collectionCards    = "payment_cards"

	commissionDocID = "commission"
)

// CommissionRepository stores the singleton commission config as a fixed-ID
// document in the settings collection.
type CommissionRepository struct {
	col *mongo.Collection
}

func NewCommissionRepository(db *mongo.Database) *CommissionRepository {
	return &CommissionRepository{col: db.Collection(collectionSettings)}
}

type mongoCommission struct {
	ID        string    `bson:"_id"`
	Rate      float64   `bson:"rate"`
	UpdatedAt time.Time `bson:"updated_at"`
	UpdatedBy string    `bson:"updated_by,omitempty"`
}

func (r *CommissionRepository) Get(ctx context.Context) (*domain.CommissionConfig, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mc mongoCommission
	if err := r.col.FindOne(ctx, bson.M{"_id": commissionDocID}).Decode(&mc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, mongo.ErrNoDocuments
		}
		return nil, fmt.Errorf("get commission config: %w", err)
	}
	return &domain.CommissionConfig{Rate: mc.Rate, UpdatedAt: mc.UpdatedAt, UpdatedBy: mc.UpdatedBy}, nil
}

func (r *CommissionRepository) Set(ctx context.Context, cfg *domain.CommissionConfig) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoCommission{
		ID:        commissionDocID,
		Rate:      cfg.Rate,
		UpdatedAt: cfg.UpdatedAt,
		UpdatedBy: cfg.UpdatedBy,
	}
	_, err := r.col.ReplaceOne(ctx, bson.M{"_id": commissionDocID}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("set commission config: %w", err)
	}
	return nil
}

// CardRepository persists admin payment cards. Creating or updating a card
// makes it the single active one.
type CardRepository struct {
	col *mongo.Collection
}

func NewCardRepository(db *mongo.Database) *CardRepository {
	return &CardRepository{col: db.Collection(collectionCards)}
}

type mongoCard struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	CardNumber string             `bson:"card_number"`
	CardHolder string             `bson:"card_holder"`
	Expiry     string             `bson:"expiry"`
	CVC        string             `bson:"cvc"`
	ImageURL   string             `bson:"image_url,omitempty"`
	Active     bool               `bson:"active"`
	CreatedAt  time.Time          `bson:"created_at"`
}

func (r *CardRepository) Create(ctx context.Context, card *domain.PaymentCard) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if err := r.deactivateAll(ctx); err != nil {
		return err
	}

	doc := mongoCard{
		CardNumber: card.CardNumber,
		CardHolder: card.CardHolder,
		Expiry:     card.Expiry,
		CVC:        card.CVC,
		ImageURL:   card.ImageURL,
		Active:     true,
		CreatedAt:  card.CreatedAt,
	}
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("insert card: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		card.ID = oid.Hex()
	}
	return nil
}

func (r *CardRepository) Update(ctx context.Context, id string, card *domain.PaymentCard) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrCardNotFound
	}

	// Update the target before touching the others, so a stale id cannot
	// leave the collection without an active card.
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var mc mongoCard
	err = r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"card_number": card.CardNumber,
		"card_holder": card.CardHolder,
		"expiry":      card.Expiry,
		"cvc":         card.CVC,
		"image_url":   card.ImageURL,
		"active":      true,
	}}, opts).Decode(&mc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.ErrCardNotFound
		}
		return fmt.Errorf("update card: %w", err)
	}
	card.CreatedAt = mc.CreatedAt

	return r.deactivateOthers(ctx, oid)
}

func (r *CardRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrCardNotFound
	}

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete card: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrCardNotFound
	}
	return nil
}

func (r *CardRepository) FindActive(ctx context.Context) (*domain.PaymentCard, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mc mongoCard
	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if err := r.col.FindOne(ctx, bson.M{"active": true}, opts).Decode(&mc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCardNotFound
		}
		return nil, fmt.Errorf("find active card: %w", err)
	}
	return mc.toDomain(), nil
}

func (r *CardRepository) List(ctx context.Context) ([]domain.PaymentCard, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list cards: %w", err)
	}
	defer cur.Close(ctx)

	var cards []domain.PaymentCard
	for cur.Next(ctx) {
		var mc mongoCard
		if err := cur.Decode(&mc); err != nil {
			return nil, fmt.Errorf("decode card: %w", err)
		}
		cards = append(cards, *mc.toDomain())
	}
	return cards, cur.Err()
}

func (r *CardRepository) deactivateAll(ctx context.Context) error {
	_, err := r.col.UpdateMany(ctx, bson.M{"active": true}, bson.M{"$set": bson.M{"active": false}})
	if err != nil {
		return fmt.Errorf("deactivate cards: %w", err)
	}
	return nil
}

func (r *CardRepository) deactivateOthers(ctx context.Context, keep primitive.ObjectID) error {
	filter := bson.M{"active": true, "_id": bson.M{"$ne": keep}}
	_, err := r.col.UpdateMany(ctx, filter, bson.M{"$set": bson.M{"active": false}})
	if err != nil {
		return fmt.Errorf("deactivate cards: %w", err)
	}
	return nil
}

func (mc *mongoCard) toDomain() *domain.PaymentCard {
	return &domain.PaymentCard{
		ID:         mc.ID.Hex(),
		CardNumber: mc.CardNumber,
		CardHolder: mc.CardHolder,
		Expiry:     mc.Expiry,
		CVC:        mc.CVC,
		ImageURL:   mc.ImageURL,
		Active:     mc.Active,
		CreatedAt:  mc.CreatedAt,
	}
}
