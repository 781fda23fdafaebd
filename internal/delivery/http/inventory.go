package http

import (
	"net/http"

	"github.com/google/uuid"

	"storefront/internal/domain"
)

type InventoryRequest struct {
	ProductID         uuid.UUID `json:"product_id"`
	SKU               string    `json:"sku"`
	Quantity          int       `json:"quantity"`
	LowStockThreshold int       `json:"low_stock_threshold"`
}

type AdjustRequest struct {
	Delta int `json:"delta"`
}

type QuantityRequest struct {
	Quantity int `json:"quantity"`
}

func (h *Handler) UpsertInventory(w http.ResponseWriter, r *http.Request) {
	var req InventoryRequest
	if !decodeBody(w, r, &req) {
		return
	}

	item := &domain.InventoryItem{
		ProductID:         req.ProductID,
		SKU:               req.SKU,
		Quantity:          req.Quantity,
		LowStockThreshold: req.LowStockThreshold,
	}
	if err := h.inventory.Upsert(r.Context(), item); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *Handler) GetInventory(w http.ResponseWriter, r *http.Request) {
	productID, ok := urlUUID(r, "productID")
	if !ok {
		writeInvalid(w, "invalid product id")
		return
	}

	item, err := h.inventory.Get(r.Context(), productID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *Handler) AdjustStock(w http.ResponseWriter, r *http.Request) {
	productID, ok := urlUUID(r, "productID")
	if !ok {
		writeInvalid(w, "invalid product id")
		return
	}

	var req AdjustRequest
	if !decodeBody(w, r, &req) {
		return
	}

	item, err := h.inventory.Adjust(r.Context(), productID, req.Delta)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *Handler) ReserveStock(w http.ResponseWriter, r *http.Request) {
	productID, ok := urlUUID(r, "productID")
	if !ok {
		writeInvalid(w, "invalid product id")
		return
	}

	var req QuantityRequest
	if !decodeBody(w, r, &req) {
		return
	}

	item, err := h.inventory.Reserve(r.Context(), productID, req.Quantity)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *Handler) ReleaseStock(w http.ResponseWriter, r *http.Request) {
	productID, ok := urlUUID(r, "productID")
	if !ok {
		writeInvalid(w, "invalid product id")
		return
	}

	var req QuantityRequest
	if !decodeBody(w, r, &req) {
		return
	}

	item, err := h.inventory.Release(r.Context(), productID, req.Quantity)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}
