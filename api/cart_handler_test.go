package api_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/proteuswear/storefront-api/api"
	"github.com/proteuswear/storefront-api/catalog"
	"github.com/proteuswear/storefront-api/config"
	"github.com/proteuswear/storefront-api/models"
	"github.com/proteuswear/storefront-api/store"
	"github.com/proteuswear/storefront-api/tryon"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cartBody struct {
	Items     []models.CartLine `json:"items"`
	ItemCount int               `json:"item_count"`
}

func newTestHandler() *api.Handler {
	config.JWTSecret = "test-secret"
	return api.New(
		store.NewCartStore(),
		store.NewSessionStore(nil),
		catalog.NewSeeded(),
		tryon.NewOrchestrator(nil, nil),
	)
}

// doJSON sends one request through the session middleware. The returned
// token identifies the session for follow-up calls.
func doJSON(t *testing.T, handler http.HandlerFunc, method, target, token string, payload interface{}) (*httptest.ResponseRecorder, string) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, target, body)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	api.SessionMiddleware(handler)(rr, req)

	next := rr.Header().Get("X-Session-Token")
	if next == "" {
		next = token
	}
	return rr, next
}

func decodeCart(t *testing.T, rr *httptest.ResponseRecorder) cartBody {
	t.Helper()
	var body cartBody
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	return body
}

func TestCartAddMergeRemoveScenario(t *testing.T) {
	h := newTestHandler()

	// Add product 7 size M twice.
	rr, token := doJSON(t, h.CartItemsHandler, http.MethodPost, "/cart/items", "",
		api.CartItemRequest{ProductID: 7, Size: "M"})
	require.Equal(t, http.StatusOK, rr.Code)
	require.NotEmpty(t, token)

	rr, token = doJSON(t, h.CartItemsHandler, http.MethodPost, "/cart/items", token,
		api.CartItemRequest{ProductID: 7, Size: "M"})
	require.Equal(t, http.StatusOK, rr.Code)

	cart := decodeCart(t, rr)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 7, cart.Items[0].ProductID)
	assert.Equal(t, "M", cart.Items[0].Size)
	assert.Equal(t, 2, cart.Items[0].Quantity)
	assert.Equal(t, 2, cart.ItemCount)
	assert.Equal(t, "Merino crew sweater", cart.Items[0].DisplayName)

	// Remove the line; the cart must end up empty.
	rr, token = doJSON(t, h.CartItemsHandler, http.MethodDelete, "/cart/items?product_id=7&size=M", token, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	cart = decodeCart(t, rr)
	assert.Empty(t, cart.Items)
	assert.Equal(t, 0, cart.ItemCount)

	rr, _ = doJSON(t, h.CartHandler, http.MethodGet, "/cart", token, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 0, decodeCart(t, rr).ItemCount)
}

func TestCartUpdateQuantity(t *testing.T) {
	h := newTestHandler()

	rr, token := doJSON(t, h.CartItemsHandler, http.MethodPost, "/cart/items", "",
		api.CartItemRequest{ProductID: 3, Size: "L"})
	require.Equal(t, http.StatusOK, rr.Code)

	rr, token = doJSON(t, h.CartItemsHandler, http.MethodPut, "/cart/items", token,
		api.CartItemRequest{ProductID: 3, Size: "L", Quantity: 4})
	require.Equal(t, http.StatusOK, rr.Code)

	cart := decodeCart(t, rr)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 4, cart.Items[0].Quantity)
	assert.Equal(t, 4, cart.ItemCount)
}

func TestCartUpdateToZeroRemovesLine(t *testing.T) {
	h := newTestHandler()

	rr, token := doJSON(t, h.CartItemsHandler, http.MethodPost, "/cart/items", "",
		api.CartItemRequest{ProductID: 3, Size: "L"})
	require.Equal(t, http.StatusOK, rr.Code)

	// The quantity stepper hitting zero means removal, routed by the
	// handler rather than the store.
	rr, _ = doJSON(t, h.CartItemsHandler, http.MethodPut, "/cart/items", token,
		api.CartItemRequest{ProductID: 3, Size: "L", Quantity: 0})
	require.Equal(t, http.StatusOK, rr.Code)

	cart := decodeCart(t, rr)
	assert.Empty(t, cart.Items)
	assert.Equal(t, 0, cart.ItemCount)
}

func TestCartAddUnknownProduct(t *testing.T) {
	h := newTestHandler()

	rr, _ := doJSON(t, h.CartItemsHandler, http.MethodPost, "/cart/items", "",
		api.CartItemRequest{ProductID: 9999, Size: "M"})
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestCartClear(t *testing.T) {
	h := newTestHandler()

	rr, token := doJSON(t, h.CartItemsHandler, http.MethodPost, "/cart/items", "",
		api.CartItemRequest{ProductID: 1, Size: "S"})
	require.Equal(t, http.StatusOK, rr.Code)

	rr, _ = doJSON(t, h.CartHandler, http.MethodDelete, "/cart", token, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 0, decodeCart(t, rr).ItemCount)
}

func TestSessionsDoNotShareCarts(t *testing.T) {
	h := newTestHandler()

	rr, _ := doJSON(t, h.CartItemsHandler, http.MethodPost, "/cart/items", "",
		api.CartItemRequest{ProductID: 1, Size: "S"})
	require.Equal(t, http.StatusOK, rr.Code)

	// No token: a fresh guest session with an empty cart.
	rr, _ = doJSON(t, h.CartHandler, http.MethodGet, "/cart", "", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 0, decodeCart(t, rr).ItemCount)
}
