package catalog

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrNotFound = errors.New("not found")

type Repository interface {
	ProductByID(ctx context.Context, id string) (Product, error)
	ProductsByIDs(ctx context.Context, ids []string) ([]Product, error)
	ListProducts(ctx context.Context, skip, limit int64) ([]Product, error)
	ListByCategory(ctx context.Context, category string, skip, limit int64) ([]Product, error)
	FeaturedProducts(ctx context.Context, limit int64) ([]Product, error)
	RelatedProducts(ctx context.Context, productID string, size int) ([]Product, error)
	CountProducts(ctx context.Context) (int64, error)
	CountByCategory(ctx context.Context, category string) (int64, error)
	Categories(ctx context.Context) ([]CategorySummary, error)
	ReviewsByIDs(ctx context.Context, ids []string) ([]Review, error)
}

type MongoRepository struct {
	products *mongo.Collection
	reviews  *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{
		products: db.Collection("products"),
		reviews:  db.Collection("reviews"),
	}
}

func (r *MongoRepository) ProductByID(ctx context.Context, id string) (Product, error) {
	var p Product
	err := r.products.FindOne(ctx, bson.M{"id": id}).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Product{}, ErrNotFound
		}
		return Product{}, fmt.Errorf("find product %s: %w", id, err)
	}
	p.FillDefaults()
	return p, nil
}

// ProductsByIDs fetches every referenced product in one query. Missing
// ids are simply absent from the result; callers decide what a gap
// means.
func (r *MongoRepository) ProductsByIDs(ctx context.Context, ids []string) ([]Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	cur, err := r.products.Find(ctx, bson.M{"id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("find products by ids: %w", err)
	}
	return decodeProducts(ctx, cur)
}

func (r *MongoRepository) ListProducts(ctx context.Context, skip, limit int64) ([]Product, error) {
	opts := options.Find().SetSkip(skip).SetLimit(limit)
	cur, err := r.products.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return decodeProducts(ctx, cur)
}

func (r *MongoRepository) ListByCategory(ctx context.Context, category string, skip, limit int64) ([]Product, error) {
	opts := options.Find().SetSkip(skip).SetLimit(limit)
	cur, err := r.products.Find(ctx, bson.M{"category": category}, opts)
	if err != nil {
		return nil, fmt.Errorf("list products in %s: %w", category, err)
	}
	return decodeProducts(ctx, cur)
}

func (r *MongoRepository) FeaturedProducts(ctx context.Context, limit int64) ([]Product, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(limit)
	cur, err := r.products.Find(ctx, bson.M{"isFeatured": true}, opts)
	if err != nil {
		return nil, fmt.Errorf("list featured products: %w", err)
	}
	return decodeProducts(ctx, cur)
}

// RelatedProducts samples products sharing the given product's category.
func (r *MongoRepository) RelatedProducts(ctx context.Context, productID string, size int) ([]Product, error) {
	var current struct {
		Category string `bson:"category"`
	}
	err := r.products.FindOne(ctx, bson.M{"id": productID},
		options.FindOne().SetProjection(bson.M{"category": 1})).Decode(&current)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find product %s: %w", productID, err)
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"category": current.Category,
			"id":       bson.M{"$ne": productID},
		}}},
		{{Key: "$sample", Value: bson.M{"size": size}}},
	}
	cur, err := r.products.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("sample related products: %w", err)
	}
	return decodeProducts(ctx, cur)
}

func (r *MongoRepository) CountProducts(ctx context.Context) (int64, error) {
	n, err := r.products.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return n, nil
}

func (r *MongoRepository) CountByCategory(ctx context.Context, category string) (int64, error) {
	n, err := r.products.CountDocuments(ctx, bson.M{"category": category})
	if err != nil {
		return 0, fmt.Errorf("count products in %s: %w", category, err)
	}
	return n, nil
}

// Categories groups the catalog by category, counting products and
// picking one image per group for the category tiles.
func (r *MongoRepository) Categories(ctx context.Context) ([]CategorySummary, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"category":           bson.M{"$exists": true, "$ne": nil},
			"media.primaryImage": bson.M{"$exists": true, "$ne": nil},
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":           "$category",
			"totalProducts": bson.M{"$sum": 1},
			"sampleImage":   bson.M{"$first": "$media.primaryImage"},
		}}},
		{{Key: "$project", Value: bson.M{
			"_id":           0,
			"category":      "$_id",
			"totalProducts": 1,
			"sampleImage":   1,
		}}},
		{{Key: "$sort", Value: bson.M{"category": 1}}},
	}

	cur, err := r.products.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate categories: %w", err)
	}
	defer cur.Close(ctx)

	var out []CategorySummary
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode categories: %w", err)
	}
	return out, nil
}

func (r *MongoRepository) ReviewsByIDs(ctx context.Context, ids []string) ([]Review, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	cur, err := r.reviews.Find(ctx, bson.M{"reviewId": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("find reviews: %w", err)
	}
	defer cur.Close(ctx)

	var out []Review
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode reviews: %w", err)
	}
	return out, nil
}

func decodeProducts(ctx context.Context, cur *mongo.Cursor) ([]Product, error) {
	defer cur.Close(ctx)

	var out []Product
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}
	for i := range out {
		out[i].FillDefaults()
	}
	return out, nil
}
