package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/proteuswear/storefront-api/models"
	"github.com/proteuswear/storefront-api/utils"
)

// CartItemRequest identifies a line for add/update/remove operations
type CartItemRequest struct {
	ProductID int    `json:"product_id"`
	Size      string `json:"size"`
	Quantity  int    `json:"quantity,omitempty"`
}

type cartResponse struct {
	Items     []models.CartLine `json:"items"`
	ItemCount int               `json:"item_count"`
}

// CartHandler serves the whole-cart routes: GET returns the lines and
// count, DELETE clears the cart.
func (h *Handler) CartHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer func() {
		fmt.Println(logMessageBuilder.String())
	}()
	utils.AddToLogMessage(&logMessageBuilder, "[Cart API]")

	sessionID, err := GetSessionIDFromContext(r.Context())
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, "Session not resolved", http.StatusInternalServerError)
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.respondCart(w, sessionID)
	case http.MethodDelete:
		h.Carts.Clear(sessionID)
		utils.AddToLogMessage(&logMessageBuilder, "Cart cleared")
		h.respondCart(w, sessionID)
	default:
		utils.RespondError(w, &logMessageBuilder, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// CartItemsHandler serves the line-level routes: POST adds one unit, PUT
// sets a quantity, DELETE removes a line.
func (h *Handler) CartItemsHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer func() {
		fmt.Println(logMessageBuilder.String())
	}()
	utils.AddToLogMessage(&logMessageBuilder, "[Cart Items API]")

	sessionID, err := GetSessionIDFromContext(r.Context())
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, "Session not resolved", http.StatusInternalServerError)
		return
	}

	switch r.Method {
	case http.MethodPost:
		h.addCartItem(w, r, &logMessageBuilder, sessionID)
	case http.MethodPut:
		h.updateCartItem(w, r, &logMessageBuilder, sessionID)
	case http.MethodDelete:
		h.removeCartItem(w, r, &logMessageBuilder, sessionID)
	default:
		utils.RespondError(w, &logMessageBuilder, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *Handler) addCartItem(w http.ResponseWriter, r *http.Request, logger *strings.Builder, sessionID string) {
	var req CartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, logger, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	if req.ProductID == 0 || req.Size == "" {
		utils.RespondError(w, logger, "product_id and size are required", http.StatusBadRequest)
		return
	}

	product, ok := h.Catalog.Get(req.ProductID)
	if !ok {
		utils.RespondError(w, logger, "Product not found", http.StatusNotFound)
		return
	}

	h.Carts.Add(sessionID, models.CartLine{
		ProductID:   product.ID,
		Size:        req.Size,
		UnitPrice:   product.Price,
		DisplayName: product.Name,
		ImageRef:    product.GarmentImage(),
	})

	utils.AddToLogMessage(logger, fmt.Sprintf("Added product %d size %s", req.ProductID, req.Size))
	h.respondCart(w, sessionID)
}

func (h *Handler) updateCartItem(w http.ResponseWriter, r *http.Request, logger *strings.Builder, sessionID string) {
	var req CartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, logger, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	if req.ProductID == 0 || req.Size == "" {
		utils.RespondError(w, logger, "product_id and size are required", http.StatusBadRequest)
		return
	}

	// The store only defines quantities >= 1; anything lower means the
	// shopper drove the stepper to zero, which is a removal.
	if req.Quantity < 1 {
		h.Carts.Remove(sessionID, req.ProductID, req.Size)
		utils.AddToLogMessage(logger, fmt.Sprintf("Quantity below 1, removed product %d size %s", req.ProductID, req.Size))
		h.respondCart(w, sessionID)
		return
	}

	if !h.Carts.UpdateQuantity(sessionID, req.ProductID, req.Size, req.Quantity) {
		utils.RespondError(w, logger, "Cart line not found", http.StatusNotFound)
		return
	}

	utils.AddToLogMessage(logger, fmt.Sprintf("Set product %d size %s quantity to %d", req.ProductID, req.Size, req.Quantity))
	h.respondCart(w, sessionID)
}

func (h *Handler) removeCartItem(w http.ResponseWriter, r *http.Request, logger *strings.Builder, sessionID string) {
	productID, err := strconv.Atoi(r.URL.Query().Get("product_id"))
	size := r.URL.Query().Get("size")
	if err != nil || size == "" {
		utils.RespondError(w, logger, "product_id and size query parameters are required", http.StatusBadRequest)
		return
	}

	h.Carts.Remove(sessionID, productID, size)
	utils.AddToLogMessage(logger, fmt.Sprintf("Removed product %d size %s", productID, size))
	h.respondCart(w, sessionID)
}

func (h *Handler) respondCart(w http.ResponseWriter, sessionID string) {
	utils.RespondJSON(w, http.StatusOK, cartResponse{
		Items:     h.Carts.Lines(sessionID),
		ItemCount: h.Carts.ItemCount(sessionID),
	})
}
