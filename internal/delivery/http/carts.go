package http

import (
	"net/http"

	"github.com/google/uuid"
)

type CartItemRequest struct {
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
	UnitPrice float64   `json:"unit_price"`
	Quantity  int       `json:"quantity"`
}

type CheckoutRequest struct {
	CouponCode       string    `json:"coupon_code"`
	Country          string    `json:"country"`
	ShippingMethodID uuid.UUID `json:"shipping_method_id"`
}

func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := urlUUID(r, "userID")
	if !ok {
		writeInvalid(w, "invalid user id")
		return
	}

	cart, err := h.carts.Get(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

func (h *Handler) AddCartItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := urlUUID(r, "userID")
	if !ok {
		writeInvalid(w, "invalid user id")
		return
	}

	var req CartItemRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.ProductID == uuid.Nil {
		writeInvalid(w, "product_id is required")
		return
	}

	cart, err := h.carts.AddItem(r.Context(), userID, req.ProductID, req.Name, req.UnitPrice, req.Quantity)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

func (h *Handler) UpdateCartItem(w http.ResponseWriter, r *http.Request) {
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

	var req QuantityRequest
	if !decodeBody(w, r, &req) {
		return
	}

	cart, err := h.carts.UpdateItem(r.Context(), userID, productID, req.Quantity)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

func (h *Handler) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
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

	cart, err := h.carts.RemoveItem(r.Context(), userID, productID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := urlUUID(r, "userID")
	if !ok {
		writeInvalid(w, "invalid user id")
		return
	}

	if err := h.carts.Clear(r.Context(), userID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	userID, ok := urlUUID(r, "userID")
	if !ok {
		writeInvalid(w, "invalid user id")
		return
	}

	var req CheckoutRequest
	if !decodeBody(w, r, &req) {
		return
	}

	summary, err := h.carts.Checkout(r.Context(), userID, req.CouponCode, req.Country, req.ShippingMethodID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}
