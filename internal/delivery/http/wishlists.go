package http

import (
	"net/http"

	"github.com/google/uuid"
)

type WishlistItemRequest struct {
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
	UnitPrice float64   `json:"unit_price"`
}

func (h *Handler) GetWishlist(w http.ResponseWriter, r *http.Request) {
	userID, ok := urlUUID(r, "userID")
	if !ok {
		writeInvalid(w, "invalid user id")
		return
	}

	list, err := h.wishlists.Get(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *Handler) AddWishlistItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := urlUUID(r, "userID")
	if !ok {
		writeInvalid(w, "invalid user id")
		return
	}

	var req WishlistItemRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.ProductID == uuid.Nil {
		writeInvalid(w, "product_id is required")
		return
	}

	list, err := h.wishlists.AddItem(r.Context(), userID, req.ProductID, req.Name, req.UnitPrice)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *Handler) RemoveWishlistItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := urlUUID(r, "userID")
	if !ok {
		writeInvalid(w, "invalid user id")
		return
	}
	productID, ok := urlUUID(r, "productID")
	if !ok {
		writeInvalid(w, "invalid product id")
		return
	}

	list, err := h.wishlists.RemoveItem(r.Context(), userID, productID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *Handler) MoveWishlistItemToCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := urlUUID(r, "userID")
	if !ok {
		writeInvalid(w, "invalid user id")
		return
	}
	productID, ok := urlUUID(r, "productID")
	if !ok {
		writeInvalid(w, "invalid product id")
		return
	}

	cart, err := h.wishlists.MoveToCart(r.Context(), userID, productID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cart)
}
