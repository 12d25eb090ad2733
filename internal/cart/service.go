package cart

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sohaibalidev/Zeevno/internal/catalog"
	"github.com/sohaibalidev/Zeevno/internal/validate"
)

// ProductGetter is the single-product lookup the mutation surface
// needs for stock checks.
type ProductGetter interface {
	ProductByID(ctx context.Context, id string) (catalog.Product, error)
}

// Service implements the cart mutation surface: add, update (inc/dec
// or direct set), remove, clear. All state lives in the Store; nothing
// is cached in process.
type Service struct {
	store    Store
	products ProductGetter
}

func NewService(store Store, products ProductGetter) *Service {
	return &Service{store: store, products: products}
}

// AddItem puts a product into the cart or bumps the quantity of an
// existing line. Unlike the read-time repair path, an add that would
// exceed stock is reported as an error rather than silently clamped:
// the user asked for it and expects feedback. The returned item
// carries the resulting quantity; created reports whether a new line
// was inserted.
func (s *Service) AddItem(ctx context.Context, userID, productID string, requestedQty int, color, size string) (LineItem, bool, error) {
	if !validate.ProductID(productID) {
		return LineItem{}, false, ErrInvalidProductID
	}
	if requestedQty < 1 {
		return LineItem{}, false, ErrInvalidQuantity
	}

	product, err := s.products.ProductByID(ctx, productID)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return LineItem{}, false, ErrProductNotFound
		}
		return LineItem{}, false, fmt.Errorf("load product %s: %w", productID, err)
	}

	stock := product.Inventory.StockQuantity
	if stock < 1 {
		return LineItem{}, false, ErrOutOfStock
	}

	items, err := s.store.Items(ctx, userID)
	if err != nil {
		return LineItem{}, false, err
	}

	for _, existing := range items {
		if existing.ProductID != productID {
			continue
		}

		newQty := existing.Quantity + requestedQty
		if newQty > stock {
			return LineItem{}, false, fmt.Errorf("%w: only %d available", ErrInsufficientStock, stock)
		}

		if err := s.store.AddQuantity(ctx, userID, productID, requestedQty, color, size); err != nil {
			return LineItem{}, false, err
		}

		existing.Quantity = newQty
		if color != "" {
			existing.Color = color
		}
		if size != "" {
			existing.Size = size
		}
		return existing, false, nil
	}

	item := LineItem{
		ProductID: productID,
		Quantity:  min(requestedQty, stock),
		Color:     color,
		Size:      size,
		AddedAt:   time.Now().UTC(),
	}
	if err := s.store.Append(ctx, userID, item); err != nil {
		return LineItem{}, false, err
	}
	return item, true, nil
}

// UpdateRequest is the PATCH body: either an inc/dec action or a
// direct target quantity. Action wins when both are present.
type UpdateRequest struct {
	Action   string
	Quantity *int
}

// UpdateItem adjusts the quantity of an existing line item and returns
// the resulting quantity. Increments and decrements are applied as
// atomic field increments at the store so concurrent taps are safe.
func (s *Service) UpdateItem(ctx context.Context, userID, productID string, req UpdateRequest) (int, error) {
	if !validate.ProductID(productID) {
		return 0, ErrInvalidProductID
	}

	product, err := s.products.ProductByID(ctx, productID)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return 0, ErrProductNotFound
		}
		return 0, fmt.Errorf("load product %s: %w", productID, err)
	}
	stock := product.Inventory.StockQuantity

	items, err := s.store.Items(ctx, userID)
	if err != nil {
		return 0, err
	}

	var current *LineItem
	for i := range items {
		if items[i].ProductID == productID {
			current = &items[i]
			break
		}
	}
	if current == nil {
		return 0, ErrItemNotFound
	}

	switch {
	case req.Action != "":
		switch req.Action {
		case "inc":
			if stock < 1 {
				return 0, ErrOutOfStock
			}
			if current.Quantity >= stock {
				return 0, fmt.Errorf("%w: no more than %d of this item", ErrMaxQuantity, stock)
			}
			if err := s.store.AddQuantity(ctx, userID, productID, 1, "", ""); err != nil {
				return 0, err
			}
			return current.Quantity + 1, nil

		case "dec":
			if current.Quantity <= 1 {
				// removal is a separate, explicit operation
				return 0, ErrMinQuantity
			}
			if err := s.store.AddQuantity(ctx, userID, productID, -1, "", ""); err != nil {
				return 0, err
			}
			return current.Quantity - 1, nil

		default:
			return 0, ErrInvalidAction
		}

	case req.Quantity != nil:
		q := *req.Quantity
		if q < 1 {
			return 0, ErrInvalidQuantity
		}
		if q > stock {
			return 0, fmt.Errorf("%w: only %d available", ErrInsufficientStock, stock)
		}
		if err := s.store.SetQuantity(ctx, userID, productID, q); err != nil {
			return 0, err
		}
		return q, nil

	default:
		return 0, ErrMissingUpdate
	}
}

func (s *Service) RemoveItem(ctx context.Context, userID, productID string) error {
	if !validate.ProductID(productID) {
		return ErrInvalidProductID
	}

	removed, err := s.store.Remove(ctx, userID, productID)
	if err != nil {
		return err
	}
	if !removed {
		return ErrItemNotFound
	}
	return nil
}

// ClearCart empties the cart. Clearing an already-empty cart is not an
// error; the flag lets the handler phrase the response differently.
func (s *Service) ClearCart(ctx context.Context, userID string) (alreadyEmpty bool, err error) {
	return s.store.Clear(ctx, userID)
}
