package catalog

import (
	"context"
	"errors"
	"fmt"
)

var (
	ErrInvalidPage    = errors.New("page and limit must be positive")
	ErrPageOutOfRange = errors.New("page exceeds total number of products")
)

// Service composes the repository into the listing surfaces the
// storefront renders: paginated lists, single product detail, featured
// rail, category tiles.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) ListProducts(ctx context.Context, page, limit int) ([]Listing, Pagination, error) {
	if page < 1 || limit < 1 {
		return nil, Pagination{}, ErrInvalidPage
	}

	total, err := s.repo.CountProducts(ctx)
	if err != nil {
		return nil, Pagination{}, err
	}

	skip := int64(page-1) * int64(limit)
	if skip >= total && total != 0 {
		return nil, Pagination{}, ErrPageOutOfRange
	}

	products, err := s.repo.ListProducts(ctx, skip, int64(limit))
	if err != nil {
		return nil, Pagination{}, err
	}

	listings, err := s.attachRatings(ctx, products)
	if err != nil {
		return nil, Pagination{}, err
	}

	return listings, paginate(total, page, limit), nil
}

func (s *Service) Product(ctx context.Context, id string) (Detail, error) {
	p, err := s.repo.ProductByID(ctx, id)
	if err != nil {
		return Detail{}, err
	}

	reviews, err := s.repo.ReviewsByIDs(ctx, p.Specifications.ReviewIDs)
	if err != nil {
		return Detail{}, err
	}

	summary := AggregateRatings(reviews)
	if reviews == nil {
		reviews = []Review{}
	}
	return Detail{
		Product: p,
		Reviews: DetailReviews{
			Total:  summary.Total,
			Rating: summary.Rating,
			List:   reviews,
		},
	}, nil
}

func (s *Service) Featured(ctx context.Context) ([]FeaturedCard, error) {
	products, err := s.repo.FeaturedProducts(ctx, 10)
	if err != nil {
		return nil, err
	}

	listings, err := s.attachRatings(ctx, products)
	if err != nil {
		return nil, err
	}

	cards := make([]FeaturedCard, 0, len(listings))
	for _, l := range listings {
		cards = append(cards, FeaturedCard{
			ID:          l.ID,
			Category:    l.Category,
			Name:        l.Name,
			Description: l.Description,
			Pricing:     l.Pricing,
			Media:       Media{PrimaryImage: l.Media.PrimaryImage},
			Reviews:     l.Reviews,
		})
	}
	return cards, nil
}

func (s *Service) Categories(ctx context.Context) ([]CategorySummary, error) {
	return s.repo.Categories(ctx)
}

func (s *Service) ProductsByCategory(ctx context.Context, category string, page, limit int) ([]Listing, Pagination, error) {
	if page < 1 || limit < 1 {
		return nil, Pagination{}, ErrInvalidPage
	}

	total, err := s.repo.CountByCategory(ctx, category)
	if err != nil {
		return nil, Pagination{}, err
	}

	skip := int64(page-1) * int64(limit)
	products, err := s.repo.ListByCategory(ctx, category, skip, int64(limit))
	if err != nil {
		return nil, Pagination{}, err
	}

	listings, err := s.attachRatings(ctx, products)
	if err != nil {
		return nil, Pagination{}, err
	}

	return listings, paginate(total, page, limit), nil
}

func (s *Service) RelatedProducts(ctx context.Context, productID string) ([]Product, error) {
	return s.repo.RelatedProducts(ctx, productID, 4)
}

// attachRatings enriches a page of products with their rating summaries
// using a single review lookup for the whole page.
func (s *Service) attachRatings(ctx context.Context, products []Product) ([]Listing, error) {
	union := make([]string, 0, len(products)*4)
	for _, p := range products {
		union = append(union, p.Specifications.ReviewIDs...)
	}

	reviews, err := s.repo.ReviewsByIDs(ctx, union)
	if err != nil {
		return nil, fmt.Errorf("load reviews: %w", err)
	}

	byID := make(map[string]Review, len(reviews))
	for _, r := range reviews {
		byID[r.ReviewID] = r
	}

	listings := make([]Listing, 0, len(products))
	for _, p := range products {
		own := make([]Review, 0, len(p.Specifications.ReviewIDs))
		for _, id := range p.Specifications.ReviewIDs {
			if r, ok := byID[id]; ok {
				own = append(own, r)
			}
		}
		listings = append(listings, Listing{Product: p, Reviews: AggregateRatings(own)})
	}
	return listings, nil
}

func paginate(total int64, page, limit int) Pagination {
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return Pagination{
		Total:       total,
		Page:        page,
		Limit:       limit,
		TotalPages:  totalPages,
		HasNextPage: page < totalPages,
		HasPrevPage: page > 1,
	}
}
