package http

import (
	"net/http"

	"github.com/google/uuid"

	"storefront/internal/domain"
)

type AddressRequest struct {
	UserID     uuid.UUID `json:"user_id"`
	Type       string    `json:"type"`
	FullName   string    `json:"full_name"`
	Line1      string    `json:"line1"`
	Line2      string    `json:"line2"`
	City       string    `json:"city"`
	State      string    `json:"state"`
	PostalCode string    `json:"postal_code"`
	Country    string    `json:"country"`
	Phone      string    `json:"phone"`
	IsDefault  bool      `json:"is_default"`
}

func (req *AddressRequest) toAddress() *domain.Address {
	return &domain.Address{
		UserID:     req.UserID,
		Type:       req.Type,
		FullName:   req.FullName,
		Line1:      req.Line1,
		Line2:      req.Line2,
		City:       req.City,
		State:      req.State,
		PostalCode: req.PostalCode,
		Country:    req.Country,
		Phone:      req.Phone,
		IsDefault:  req.IsDefault,
	}
}

func (h *Handler) CreateAddress(w http.ResponseWriter, r *http.Request) {
	var req AddressRequest
	if !decodeBody(w, r, &req) {
		return
	}

	address := req.toAddress()
	if err := h.addresses.Create(r.Context(), address); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, address)
}

func (h *Handler) ListAddresses(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(r.URL.Query().Get("user_id"))
	if err != nil {
		writeInvalid(w, "user_id query parameter is required")
		return
	}

	addresses, listErr := h.addresses.List(r.Context(), userID)
	if listErr != nil {
		writeError(w, listErr)
		return
	}
	if addresses == nil {
		addresses = []domain.Address{}
	}
	writeJSON(w, http.StatusOK, addresses)
}

func (h *Handler) GetAddress(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(r, "id")
	if !ok {
		writeInvalid(w, "invalid address id")
		return
	}

	address, err := h.addresses.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, address)
}

func (h *Handler) UpdateAddress(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(r, "id")
	if !ok {
		writeInvalid(w, "invalid address id")
		return
	}

	var req AddressRequest
	if !decodeBody(w, r, &req) {
		return
	}

	address := req.toAddress()
	address.ID = id
	if err := h.addresses.Update(r.Context(), address); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, address)
}

func (h *Handler) SetDefaultAddress(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(r, "id")
	if !ok {
		writeInvalid(w, "invalid address id")
		return
	}

	address, err := h.addresses.SetDefault(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, address)
}

func (h *Handler) DeleteAddress(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(r, "id")
	if !ok {
		writeInvalid(w, "invalid address id")
		return
	}

	if err := h.addresses.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
