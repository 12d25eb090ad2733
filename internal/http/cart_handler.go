package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/sohaibalidev/Zeevno/internal/cart"
)

// CartReconciler is the read path: it heals and enriches a stored cart.
type CartReconciler interface {
	Reconcile(ctx context.Context, userID string, stored []cart.LineItem) ([]cart.ReconciledItem, bool, error)
}

// CartMutator is the write path for individual cart operations.
type CartMutator interface {
	AddItem(ctx context.Context, userID, productID string, requestedQty int, color, size string) (cart.LineItem, bool, error)
	UpdateItem(ctx context.Context, userID, productID string, req cart.UpdateRequest) (int, error)
	RemoveItem(ctx context.Context, userID, productID string) error
	ClearCart(ctx context.Context, userID string) (bool, error)
}

type CartHandler struct {
	engine CartReconciler
	svc    CartMutator
	logger *log.Logger
}

func NewCartHandler(engine CartReconciler, svc CartMutator, logger *log.Logger) *CartHandler {
	return &CartHandler{engine: engine, svc: svc, logger: logger}
}

// Get returns the reconciled cart. The stored cart rides along on the
// session user, so no extra read is needed before reconciliation.
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, _ := UserFrom(r.Context())

	items, _, err := h.engine.Reconcile(r.Context(), user.Email, user.Cart)
	if err != nil {
		writeServerError(w, h.logger, err)
		return
	}

	writeData(w, http.StatusOK, map[string]any{
		"items":      items,
		"totalItems": len(items),
	})
}

// Summary returns the pricing summary for the reconciled cart. An
// optional promo discount comes in via ?discount=.
func (h *CartHandler) Summary(w http.ResponseWriter, r *http.Request) {
	user, _ := UserFrom(r.Context())

	promo := 0.0
	if raw := r.URL.Query().Get("discount"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "validation_error", "discount must be a number")
			return
		}
		promo = parsed
	}

	items, _, err := h.engine.Reconcile(r.Context(), user.Email, user.Cart)
	if err != nil {
		writeServerError(w, h.logger, err)
		return
	}

	writeData(w, http.StatusOK, cart.Summarize(items, promo))
}

type addItemRequest struct {
	Quantity int    `json:"quantity"`
	Color    string `json:"color"`
	Size     string `json:"size"`
}

func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	user, _ := UserFrom(r.Context())
	productID := chi.URLParam(r, "productId")

	req := addItemRequest{Quantity: 1}
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "validation_error", "invalid request body")
			return
		}
		if req.Quantity == 0 {
			req.Quantity = 1
		}
	}

	item, created, err := h.svc.AddItem(r.Context(), user.Email, productID, req.Quantity, req.Color, req.Size)
	if err != nil {
		h.writeCartError(w, err)
		return
	}

	status := http.StatusOK
	message := "Cart item updated"
	if created {
		status = http.StatusCreated
		message = "Item added to cart"
	}
	writeDataMessage(w, status, item, message)
}

type updateItemRequest struct {
	Action   string `json:"action"`
	Quantity *int   `json:"quantity"`
}

func (h *CartHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, _ := UserFrom(r.Context())
	productID := chi.URLParam(r, "productId")

	var req updateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "validation_error", "invalid request body")
		return
	}

	quantity, err := h.svc.UpdateItem(r.Context(), user.Email, productID, cart.UpdateRequest{
		Action:   req.Action,
		Quantity: req.Quantity,
	})
	if err != nil {
		h.writeCartError(w, err)
		return
	}

	writeData(w, http.StatusOK, map[string]any{
		"productId": productID,
		"quantity":  quantity,
	})
}

func (h *CartHandler) Remove(w http.ResponseWriter, r *http.Request) {
	user, _ := UserFrom(r.Context())
	productID := chi.URLParam(r, "productId")

	if err := h.svc.RemoveItem(r.Context(), user.Email, productID); err != nil {
		h.writeCartError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "Item removed from cart")
}

func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	user, _ := UserFrom(r.Context())

	alreadyEmpty, err := h.svc.ClearCart(r.Context(), user.Email)
	if err != nil {
		h.writeCartError(w, err)
		return
	}

	if alreadyEmpty {
		writeMessage(w, http.StatusOK, "Cart was already empty")
		return
	}
	writeMessage(w, http.StatusOK, "Cart cleared")
}

// writeCartError maps the cart error taxonomy onto statuses: validation
// problems are 400, missing things are 404, stock conflicts are 409.
func (h *CartHandler) writeCartError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, cart.ErrInvalidProductID),
		errors.Is(err, cart.ErrInvalidQuantity),
		errors.Is(err, cart.ErrInvalidAction),
		errors.Is(err, cart.ErrMissingUpdate):
		writeError(w, http.StatusBadRequest, "validation_error", err.Error())

	case errors.Is(err, cart.ErrProductNotFound):
		writeError(w, http.StatusNotFound, "product_not_found", "Product not found")

	case errors.Is(err, cart.ErrItemNotFound):
		writeError(w, http.StatusNotFound, "item_not_found", "Item not found in cart")

	case errors.Is(err, cart.ErrOutOfStock):
		writeError(w, http.StatusConflict, "out_of_stock", "This product is out of stock")

	case errors.Is(err, cart.ErrInsufficientStock):
		writeError(w, http.StatusConflict, "insufficient_stock", err.Error())

	case errors.Is(err, cart.ErrMaxQuantity):
		writeError(w, http.StatusConflict, "max_quantity", err.Error())

	case errors.Is(err, cart.ErrMinQuantity):
		writeError(w, http.StatusConflict, "min_quantity", "Quantity cannot go below 1; remove the item instead")

	default:
		writeServerError(w, h.logger, err)
	}
}
