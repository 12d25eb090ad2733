package cart

import "errors"

// Domain errors surfaced by the mutation operations. Handlers map
// these onto 4xx responses; anything else is a repository failure and
// maps to a 500.
var (
	ErrInvalidProductID  = errors.New("invalid product id")
	ErrInvalidQuantity   = errors.New("invalid quantity")
	ErrInvalidAction     = errors.New("invalid action")
	ErrMissingUpdate     = errors.New("either action or quantity must be provided")
	ErrProductNotFound   = errors.New("product not found")
	ErrOutOfStock        = errors.New("product out of stock")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrMaxQuantity       = errors.New("maximum quantity reached")
	ErrMinQuantity       = errors.New("minimum quantity reached")
	ErrItemNotFound      = errors.New("item not in cart")
)
