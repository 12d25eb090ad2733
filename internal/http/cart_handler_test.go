package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sohaibalidev/Zeevno/internal/auth"
	"github.com/sohaibalidev/Zeevno/internal/cart"
	"github.com/sohaibalidev/Zeevno/internal/catalog"
)

func cartPricing(currentPrice float64) catalog.Pricing {
	return catalog.Pricing{CurrentPrice: currentPrice}
}

type fakeEngine struct {
	items   []cart.ReconciledItem
	mutated bool
	err     error
}

func (f *fakeEngine) Reconcile(ctx context.Context, userID string, stored []cart.LineItem) ([]cart.ReconciledItem, bool, error) {
	if f.err != nil {
		return nil, false, f.err
	}
	return f.items, f.mutated, nil
}

type fakeMutator struct {
	addFn    func(ctx context.Context, userID, productID string, qty int, color, size string) (cart.LineItem, bool, error)
	updateFn func(ctx context.Context, userID, productID string, req cart.UpdateRequest) (int, error)
	removeFn func(ctx context.Context, userID, productID string) error
	clearFn  func(ctx context.Context, userID string) (bool, error)
}

func (f *fakeMutator) AddItem(ctx context.Context, userID, productID string, qty int, color, size string) (cart.LineItem, bool, error) {
	return f.addFn(ctx, userID, productID, qty, color, size)
}

func (f *fakeMutator) UpdateItem(ctx context.Context, userID, productID string, req cart.UpdateRequest) (int, error) {
	return f.updateFn(ctx, userID, productID, req)
}

func (f *fakeMutator) RemoveItem(ctx context.Context, userID, productID string) error {
	return f.removeFn(ctx, userID, productID)
}

func (f *fakeMutator) ClearCart(ctx context.Context, userID string) (bool, error) {
	return f.clearFn(ctx, userID)
}

// cartRouter mounts the cart routes the way the real router does, with
// a fixed session user injected ahead of the auth guard.
func cartRouter(engine CartReconciler, svc CartMutator, user *auth.User) http.Handler {
	h := NewCartHandler(engine, svc, log.New(io.Discard, "", 0))

	r := chi.NewRouter()
	if user != nil {
		r.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				next.ServeHTTP(w, req.WithContext(context.WithValue(req.Context(), userKey, user)))
			})
		})
	}
	r.Route("/api/cart", func(r chi.Router) {
		r.Use(RequireAuth)
		r.Get("/", h.Get)
		r.Get("/summary", h.Summary)
		r.Delete("/", h.Clear)
		r.Post("/{productId}", h.Add)
		r.Patch("/{productId}", h.Update)
		r.Delete("/{productId}", h.Remove)
	})
	return r
}

func testUser() *auth.User {
	return &auth.User{
		Email: "buyer@gmail.com",
		Cart:  []cart.LineItem{{ProductID: "100001", Quantity: 2}},
	}
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&env))
	return env
}

func TestCartGet(t *testing.T) {
	t.Run("requires a session", func(t *testing.T) {
		router := cartRouter(&fakeEngine{}, &fakeMutator{}, nil)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/cart", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "unauthorized", decodeEnvelope(t, rec).Error)
	})

	t.Run("returns the reconciled cart", func(t *testing.T) {
		engine := &fakeEngine{items: []cart.ReconciledItem{
			{LineItem: cart.LineItem{ProductID: "100001", Quantity: 2}, Name: "Desk Lamp"},
		}}
		router := cartRouter(engine, &fakeMutator{}, testUser())

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/cart", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		env := decodeEnvelope(t, rec)
		assert.True(t, env.Success)
		data := env.Data.(map[string]any)
		assert.Equal(t, float64(1), data["totalItems"])
	})

	t.Run("reconcile failure is a 500", func(t *testing.T) {
		router := cartRouter(&fakeEngine{err: errors.New("mongo down")}, &fakeMutator{}, testUser())

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/cart", nil))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		env := decodeEnvelope(t, rec)
		assert.Equal(t, "internal_error", env.Error)
		assert.NotContains(t, env.Message, "mongo", "internals must not leak")
	})
}

func TestCartSummary(t *testing.T) {
	price := func(p float64) cart.ReconciledItem {
		return cart.ReconciledItem{
			LineItem: cart.LineItem{ProductID: "100001", Quantity: 1},
			Pricing:  cartPricing(p),
		}
	}

	t.Run("applies the promo discount", func(t *testing.T) {
		router := cartRouter(&fakeEngine{items: []cart.ReconciledItem{price(100)}}, &fakeMutator{}, testUser())

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/cart/summary?discount=25", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		data := decodeEnvelope(t, rec).Data.(map[string]any)
		assert.Equal(t, float64(75), data["finalTotal"])
		assert.Equal(t, float64(25), data["promoDiscount"])
	})

	t.Run("rejects a non-numeric discount", func(t *testing.T) {
		router := cartRouter(&fakeEngine{}, &fakeMutator{}, testUser())

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/cart/summary?discount=abc", nil))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "validation_error", decodeEnvelope(t, rec).Error)
	})
}

func TestCartAdd(t *testing.T) {
	tests := map[string]struct {
		addErr      error
		wantStatus  int
		wantErrCode string
	}{
		"product not found":  {addErr: cart.ErrProductNotFound, wantStatus: http.StatusNotFound, wantErrCode: "product_not_found"},
		"out of stock":       {addErr: cart.ErrOutOfStock, wantStatus: http.StatusConflict, wantErrCode: "out_of_stock"},
		"insufficient stock": {addErr: cart.ErrInsufficientStock, wantStatus: http.StatusConflict, wantErrCode: "insufficient_stock"},
		"invalid quantity":   {addErr: cart.ErrInvalidQuantity, wantStatus: http.StatusBadRequest, wantErrCode: "validation_error"},
		"invalid product id": {addErr: cart.ErrInvalidProductID, wantStatus: http.StatusBadRequest, wantErrCode: "validation_error"},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			svc := &fakeMutator{
				addFn: func(ctx context.Context, userID, productID string, qty int, color, size string) (cart.LineItem, bool, error) {
					return cart.LineItem{}, false, tc.addErr
				},
			}
			router := cartRouter(&fakeEngine{}, svc, testUser())

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/cart/100001", nil))

			assert.Equal(t, tc.wantStatus, rec.Code)
			assert.Equal(t, tc.wantErrCode, decodeEnvelope(t, rec).Error)
		})
	}

	t.Run("new item is a 201", func(t *testing.T) {
		svc := &fakeMutator{
			addFn: func(ctx context.Context, userID, productID string, qty int, color, size string) (cart.LineItem, bool, error) {
				assert.Equal(t, "buyer@gmail.com", userID)
				assert.Equal(t, "100001", productID)
				assert.Equal(t, 2, qty)
				assert.Equal(t, "red", color)
				return cart.LineItem{ProductID: productID, Quantity: qty, Color: color}, true, nil
			},
		}
		router := cartRouter(&fakeEngine{}, svc, testUser())

		body := bytes.NewBufferString(`{"quantity":2,"color":"red"}`)
		req := httptest.NewRequest(http.MethodPost, "/api/cart/100001", body)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("bumping an existing item is a 200", func(t *testing.T) {
		svc := &fakeMutator{
			addFn: func(ctx context.Context, userID, productID string, qty int, color, size string) (cart.LineItem, bool, error) {
				assert.Equal(t, 1, qty, "missing body defaults quantity to 1")
				return cart.LineItem{ProductID: productID, Quantity: 3}, false, nil
			},
		}
		router := cartRouter(&fakeEngine{}, svc, testUser())

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/cart/100001", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestCartUpdate(t *testing.T) {
	tests := map[string]struct {
		body        string
		updateErr   error
		wantStatus  int
		wantErrCode string
	}{
		"invalid action":  {body: `{"action":"bump"}`, updateErr: cart.ErrInvalidAction, wantStatus: http.StatusBadRequest, wantErrCode: "validation_error"},
		"missing update":  {body: `{}`, updateErr: cart.ErrMissingUpdate, wantStatus: http.StatusBadRequest, wantErrCode: "validation_error"},
		"below minimum":   {body: `{"action":"dec"}`, updateErr: cart.ErrMinQuantity, wantStatus: http.StatusConflict, wantErrCode: "min_quantity"},
		"above stock":     {body: `{"action":"inc"}`, updateErr: cart.ErrMaxQuantity, wantStatus: http.StatusConflict, wantErrCode: "max_quantity"},
		"not in the cart": {body: `{"action":"inc"}`, updateErr: cart.ErrItemNotFound, wantStatus: http.StatusNotFound, wantErrCode: "item_not_found"},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			svc := &fakeMutator{
				updateFn: func(ctx context.Context, userID, productID string, req cart.UpdateRequest) (int, error) {
					return 0, tc.updateErr
				},
			}
			router := cartRouter(&fakeEngine{}, svc, testUser())

			req := httptest.NewRequest(http.MethodPatch, "/api/cart/100001", bytes.NewBufferString(tc.body))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tc.wantStatus, rec.Code)
			assert.Equal(t, tc.wantErrCode, decodeEnvelope(t, rec).Error)
		})
	}

	t.Run("returns the resulting quantity", func(t *testing.T) {
		svc := &fakeMutator{
			updateFn: func(ctx context.Context, userID, productID string, req cart.UpdateRequest) (int, error) {
				assert.Equal(t, "inc", req.Action)
				return 3, nil
			},
		}
		router := cartRouter(&fakeEngine{}, svc, testUser())

		req := httptest.NewRequest(http.MethodPatch, "/api/cart/100001", bytes.NewBufferString(`{"action":"inc"}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		data := decodeEnvelope(t, rec).Data.(map[string]any)
		assert.Equal(t, float64(3), data["quantity"])
	})
}

func TestCartRemoveAndClear(t *testing.T) {
	t.Run("remove missing item", func(t *testing.T) {
		svc := &fakeMutator{
			removeFn: func(ctx context.Context, userID, productID string) error { return cart.ErrItemNotFound },
		}
		router := cartRouter(&fakeEngine{}, svc, testUser())

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/cart/100001", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("clear distinguishes an already-empty cart", func(t *testing.T) {
		for _, alreadyEmpty := range []bool{false, true} {
			svc := &fakeMutator{
				clearFn: func(ctx context.Context, userID string) (bool, error) { return alreadyEmpty, nil },
			}
			router := cartRouter(&fakeEngine{}, svc, testUser())

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/cart", nil))

			assert.Equal(t, http.StatusOK, rec.Code)
			env := decodeEnvelope(t, rec)
			if alreadyEmpty {
				assert.Contains(t, env.Message, "already empty")
			} else {
				assert.Equal(t, "Cart cleared", env.Message)
			}
		}
	})
}
