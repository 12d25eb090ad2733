package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

var ErrNotFound = errors.New("not found")

type Repository interface {
	UserByEmail(ctx context.Context, email string) (*User, error)
	UserExists(ctx context.Context, email, phone string) (bool, error)
	InsertUser(ctx context.Context, u *User) error
	TouchLastLogin(ctx context.Context, email string) error

	SavePending(ctx context.Context, p PendingRegistration) error
	PendingByEmail(ctx context.Context, email string) (*PendingRegistration, error)
	DeletePending(ctx context.Context, email string) error

	ReplaceMagicLink(ctx context.Context, link MagicLink) error
	MagicLinkByToken(ctx context.Context, token string) (*MagicLink, error)
	DeleteMagicLinks(ctx context.Context, email string) error
}

type MongoRepository struct {
	users         *mongo.Collection
	magicLinks    *mongo.Collection
	verifications *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{
		users:         db.Collection("users"),
		magicLinks:    db.Collection("magicLinks"),
		verifications: db.Collection("verifications"),
	}
}

func (r *MongoRepository) UserByEmail(ctx context.Context, email string) (*User, error) {
	var u User
	err := r.users.FindOne(ctx, bson.M{"email": email}).Decode(&u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find user %s: %w", email, err)
	}
	return &u, nil
}

func (r *MongoRepository) UserExists(ctx context.Context, email, phone string) (bool, error) {
	n, err := r.users.CountDocuments(ctx, bson.M{
		"$or": bson.A{bson.M{"email": email}, bson.M{"phone": phone}},
	})
	if err != nil {
		return false, fmt.Errorf("check user exists: %w", err)
	}
	return n > 0, nil
}

func (r *MongoRepository) InsertUser(ctx context.Context, u *User) error {
	if _, err := r.users.InsertOne(ctx, u); err != nil {
		return fmt.Errorf("insert user %s: %w", u.Email, err)
	}
	return nil
}

func (r *MongoRepository) TouchLastLogin(ctx context.Context, email string) error {
	_, err := r.users.UpdateOne(ctx,
		bson.M{"email": email},
		bson.M{"$set": bson.M{"lastLoginAt": time.Now().UTC()}},
	)
	if err != nil {
		return fmt.Errorf("touch last login for %s: %w", email, err)
	}
	return nil
}

func (r *MongoRepository) SavePending(ctx context.Context, p PendingRegistration) error {
	// re-submitting the form restarts the clock
	_, err := r.verifications.DeleteMany(ctx, bson.M{"email": p.Email})
	if err != nil {
		return fmt.Errorf("reset pending registration: %w", err)
	}
	if _, err := r.verifications.InsertOne(ctx, p); err != nil {
		return fmt.Errorf("save pending registration: %w", err)
	}
	return nil
}

func (r *MongoRepository) PendingByEmail(ctx context.Context, email string) (*PendingRegistration, error) {
	var p PendingRegistration
	err := r.verifications.FindOne(ctx, bson.M{"email": email}).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find pending registration: %w", err)
	}
	return &p, nil
}

func (r *MongoRepository) DeletePending(ctx context.Context, email string) error {
	if _, err := r.verifications.DeleteMany(ctx, bson.M{"email": email}); err != nil {
		return fmt.Errorf("delete pending registration: %w", err)
	}
	return nil
}

// ReplaceMagicLink invalidates any outstanding links for the email
// before storing the new one; at most one link is live per user.
func (r *MongoRepository) ReplaceMagicLink(ctx context.Context, link MagicLink) error {
	if _, err := r.magicLinks.DeleteMany(ctx, bson.M{"email": link.Email}); err != nil {
		return fmt.Errorf("invalidate magic links: %w", err)
	}
	if _, err := r.magicLinks.InsertOne(ctx, link); err != nil {
		return fmt.Errorf("insert magic link: %w", err)
	}
	return nil
}

func (r *MongoRepository) MagicLinkByToken(ctx context.Context, token string) (*MagicLink, error) {
	var link MagicLink
	err := r.magicLinks.FindOne(ctx, bson.M{
		"token":     token,
		"expiresAt": bson.M{"$gt": time.Now().UTC()},
	}).Decode(&link)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find magic link: %w", err)
	}
	return &link, nil
}

func (r *MongoRepository) DeleteMagicLinks(ctx context.Context, email string) error {
	if _, err := r.magicLinks.DeleteMany(ctx, bson.M{"email": email}); err != nil {
		return fmt.Errorf("delete magic links: %w", err)
	}
	return nil
}
