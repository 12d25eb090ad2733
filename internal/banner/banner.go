// Package banner manages the promotional banners shown on the
// storefront's landing page. Banners are ordered explicitly so the
// admin controls the carousel sequence.
package banner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ErrNotFound  = errors.New("banner not found")
	ErrInvalidID = errors.New("invalid banner id")
)

type Banner struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ImageURL  string             `bson:"imageUrl" json:"imageUrl"`
	Title     string             `bson:"title,omitempty" json:"title,omitempty"`
	Link      string             `bson:"link,omitempty" json:"link,omitempty"`
	Order     int                `bson:"order" json:"order"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// Update carries a partial banner update; nil fields are left alone.
type Update struct {
	ImageURL *string `json:"imageUrl"`
	Title    *string `json:"title"`
	Link     *string `json:"link"`
	Order    *int    `json:"order"`
}

type Repository interface {
	List(ctx context.Context) ([]Banner, error)
	ByID(ctx context.Context, id string) (*Banner, error)
	Create(ctx context.Context, b Banner) (*Banner, error)
	Update(ctx context.Context, id string, upd Update) (*Banner, error)
	Delete(ctx context.Context, id string) error
}

type MongoRepository struct {
	banners *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{banners: db.Collection("banners")}
}

func (r *MongoRepository) List(ctx context.Context) ([]Banner, error) {
	opts := options.Find().SetSort(bson.D{{Key: "order", Value: 1}})
	cur, err := r.banners.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list banners: %w", err)
	}
	defer cur.Close(ctx)

	var out []Banner
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode banners: %w", err)
	}
	return out, nil
}

func (r *MongoRepository) ByID(ctx context.Context, id string) (*Banner, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	var b Banner
	err = r.banners.FindOne(ctx, bson.M{"_id": oid}).Decode(&b)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find banner %s: %w", id, err)
	}
	return &b, nil
}

func (r *MongoRepository) Create(ctx context.Context, b Banner) (*Banner, error) {
	b.ID = primitive.NewObjectID()
	b.CreatedAt = time.Now().UTC()

	if _, err := r.banners.InsertOne(ctx, b); err != nil {
		return nil, fmt.Errorf("insert banner: %w", err)
	}
	return &b, nil
}

func (r *MongoRepository) Update(ctx context.Context, id string, upd Update) (*Banner, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	set := bson.M{}
	if upd.ImageURL != nil {
		set["imageUrl"] = *upd.ImageURL
	}
	if upd.Title != nil {
		set["title"] = *upd.Title
	}
	if upd.Link != nil {
		set["link"] = *upd.Link
	}
	if upd.Order != nil {
		set["order"] = *upd.Order
	}
	if len(set) == 0 {
		return r.ByID(ctx, id)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var b Banner
	err = r.banners.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&b)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update banner %s: %w", id, err)
	}
	return &b, nil
}

func (r *MongoRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}

	res, err := r.banners.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete banner %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
