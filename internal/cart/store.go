package cart

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store persists per-user carts. Users are keyed by email; the cart is
// an embedded array on the user document.
//
// AddQuantity and SetQuantity target one line item in place.
// AddQuantity is an atomic field increment so concurrent taps on the
// +/- buttons cannot lose updates; SetQuantity and Replace are plain
// sets and may race with concurrent increments, which is acceptable
// for the idempotent repair path that uses them.
type Store interface {
	Items(ctx context.Context, userID string) ([]LineItem, error)
	Replace(ctx context.Context, userID string, items []LineItem) error
	Append(ctx context.Context, userID string, item LineItem) error
	AddQuantity(ctx context.Context, userID, productID string, delta int, color, size string) error
	SetQuantity(ctx context.Context, userID, productID string, quantity int) error
	Remove(ctx context.Context, userID, productID string) (bool, error)
	Clear(ctx context.Context, userID string) (bool, error)
}

type MongoStore struct {
	users *mongo.Collection
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{users: db.Collection("users")}
}

func (s *MongoStore) Items(ctx context.Context, userID string) ([]LineItem, error) {
	var doc struct {
		Cart []LineItem `bson:"cart"`
	}
	err := s.users.FindOne(ctx, bson.M{"email": userID},
		options.FindOne().SetProjection(bson.M{"cart": 1})).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			// sessions are resolved against the users collection, so a
			// missing owner here is store corruption, not user error
			return nil, fmt.Errorf("cart owner %s not found", userID)
		}
		return nil, fmt.Errorf("load cart for %s: %w", userID, err)
	}
	return doc.Cart, nil
}

func (s *MongoStore) Replace(ctx context.Context, userID string, items []LineItem) error {
	if items == nil {
		items = []LineItem{}
	}
	_, err := s.users.UpdateOne(ctx,
		bson.M{"email": userID},
		bson.M{"$set": bson.M{"cart": items}},
	)
	if err != nil {
		return fmt.Errorf("replace cart for %s: %w", userID, err)
	}
	return nil
}

func (s *MongoStore) Append(ctx context.Context, userID string, item LineItem) error {
	_, err := s.users.UpdateOne(ctx,
		bson.M{"email": userID},
		bson.M{"$push": bson.M{"cart": item}},
	)
	if err != nil {
		return fmt.Errorf("append cart item for %s: %w", userID, err)
	}
	return nil
}

func (s *MongoStore) AddQuantity(ctx context.Context, userID, productID string, delta int, color, size string) error {
	update := bson.M{"$inc": bson.M{"cart.$.quantity": delta}}

	set := bson.M{}
	if color != "" {
		set["cart.$.color"] = color
	}
	if size != "" {
		set["cart.$.size"] = size
	}
	if len(set) > 0 {
		update["$set"] = set
	}

	res, err := s.users.UpdateOne(ctx,
		bson.M{"email": userID, "cart.productId": productID},
		update,
	)
	if err != nil {
		return fmt.Errorf("increment cart item for %s: %w", userID, err)
	}
	if res.MatchedCount == 0 {
		return ErrItemNotFound
	}
	return nil
}

func (s *MongoStore) SetQuantity(ctx context.Context, userID, productID string, quantity int) error {
	res, err := s.users.UpdateOne(ctx,
		bson.M{"email": userID, "cart.productId": productID},
		bson.M{"$set": bson.M{"cart.$.quantity": quantity}},
	)
	if err != nil {
		return fmt.Errorf("set cart quantity for %s: %w", userID, err)
	}
	if res.MatchedCount == 0 {
		return ErrItemNotFound
	}
	return nil
}

func (s *MongoStore) Remove(ctx context.Context, userID, productID string) (bool, error) {
	res, err := s.users.UpdateOne(ctx,
		bson.M{"email": userID},
		bson.M{"$pull": bson.M{"cart": bson.M{"productId": productID}}},
	)
	if err != nil {
		return false, fmt.Errorf("remove cart item for %s: %w", userID, err)
	}
	return res.ModifiedCount > 0, nil
}

// Clear empties the cart and reports whether it was already empty.
func (s *MongoStore) Clear(ctx context.Context, userID string) (bool, error) {
	res, err := s.users.UpdateOne(ctx,
		bson.M{"email": userID},
		bson.M{"$set": bson.M{"cart": []LineItem{}}},
	)
	if err != nil {
		return false, fmt.Errorf("clear cart for %s: %w", userID, err)
	}
	return res.ModifiedCount == 0, nil
}
