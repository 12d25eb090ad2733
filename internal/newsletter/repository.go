package newsletter

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrNotFound = errors.New("not found")

type Repository interface {
	ByEmail(ctx context.Context, email string) (*Subscriber, error)
	ByToken(ctx context.Context, token string) (*Subscriber, error)
	Insert(ctx context.Context, sub Subscriber) error
	Reactivate(ctx context.Context, email, token string) error
	Deactivate(ctx context.Context, token string) error
	List(ctx context.Context) ([]Subscriber, error)
	Active(ctx context.Context) ([]Subscriber, error)
}

type MongoRepository struct {
	subscribers *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{subscribers: db.Collection("newsletter")}
}

func (r *MongoRepository) ByEmail(ctx context.Context, email string) (*Subscriber, error) {
	var sub Subscriber
	err := r.subscribers.FindOne(ctx, bson.M{"email": email}).Decode(&sub)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find subscriber %s: %w", email, err)
	}
	return &sub, nil
}

func (r *MongoRepository) ByToken(ctx context.Context, token string) (*Subscriber, error) {
	var sub Subscriber
	err := r.subscribers.FindOne(ctx, bson.M{"unsubscribeToken": token}).Decode(&sub)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find subscriber by token: %w", err)
	}
	return &sub, nil
}

func (r *MongoRepository) Insert(ctx context.Context, sub Subscriber) error {
	if _, err := r.subscribers.InsertOne(ctx, sub); err != nil {
		return fmt.Errorf("insert subscriber %s: %w", sub.Email, err)
	}
	return nil
}

func (r *MongoRepository) Reactivate(ctx context.Context, email, token string) error {
	now := time.Now().UTC()
	_, err := r.subscribers.UpdateOne(ctx,
		bson.M{"email": email},
		bson.M{
			"$set": bson.M{
				"status":           StatusSubscribed,
				"subscribedAt":     now,
				"unsubscribeToken": token,
				"lastUpdated":      now,
			},
			"$unset": bson.M{"unsubscribedAt": ""},
		},
	)
	if err != nil {
		return fmt.Errorf("reactivate subscriber %s: %w", email, err)
	}
	return nil
}

// Deactivate flips the subscriber to unsubscribed and burns the token
// so the link cannot be replayed.
func (r *MongoRepository) Deactivate(ctx context.Context, token string) error {
	now := time.Now().UTC()
	_, err := r.subscribers.UpdateOne(ctx,
		bson.M{"unsubscribeToken": token},
		bson.M{"$set": bson.M{
			"status":           StatusUnsubscribed,
			"unsubscribedAt":   now,
			"lastUpdated":      now,
			"unsubscribeToken": nil,
		}},
	)
	if err != nil {
		return fmt.Errorf("deactivate subscriber: %w", err)
	}
	return nil
}

func (r *MongoRepository) List(ctx context.Context) ([]Subscriber, error) {
	opts := options.Find().SetSort(bson.D{{Key: "subscribedAt", Value: -1}})
	cur, err := r.subscribers.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list subscribers: %w", err)
	}
	defer cur.Close(ctx)

	var out []Subscriber
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode subscribers: %w", err)
	}
	return out, nil
}

func (r *MongoRepository) Active(ctx context.Context) ([]Subscriber, error) {
	cur, err := r.subscribers.Find(ctx, bson.M{"status": StatusSubscribed})
	if err != nil {
		return nil, fmt.Errorf("list active subscribers: %w", err)
	}
	defer cur.Close(ctx)

	var out []Subscriber
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode active subscribers: %w", err)
	}
	return out, nil
}
