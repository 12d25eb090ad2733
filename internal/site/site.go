// Package site exposes the storefront's stored layout settings. The
// settings collection holds one document per settings type; only the
// layout document is served today.
package site

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

var ErrNotFound = errors.New("settings not found")

type Repository interface {
	Layout(ctx context.Context) (map[string]any, error)
}

type MongoRepository struct {
	settings *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{settings: db.Collection("site_settings")}
}

// Layout returns the layout settings document as-is. The shape is
// owned by the frontend, so the backend passes it through untyped.
func (r *MongoRepository) Layout(ctx context.Context) (map[string]any, error) {
	var doc map[string]any
	err := r.settings.FindOne(ctx, bson.M{"type": "layout"}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find layout settings: %w", err)
	}

	delete(doc, "_id")
	return doc, nil
}
