package http

import (
	"net/http"
	"strconv"

	"storefront/internal/domain"
	"storefront/internal/usecase"
)

type ShippingMethodRequest struct {
	Name                  string   `json:"name"`
	BaseRate              float64  `json:"base_rate"`
	FreeShippingThreshold *float64 `json:"free_shipping_threshold"`
	IncludedCountries     []string `json:"included_countries"`
	ExcludedCountries     []string `json:"excluded_countries"`
	EstimatedDays         int      `json:"estimated_days"`
	IsActive              bool     `json:"is_active"`
	IsDefault             bool     `json:"is_default"`
}

func (req *ShippingMethodRequest) toMethod() *domain.ShippingMethod {
	return &domain.ShippingMethod{
		Name:                  req.Name,
		BaseRate:              req.BaseRate,
		FreeShippingThreshold: req.FreeShippingThreshold,
		IncludedCountries:     req.IncludedCountries,
		ExcludedCountries:     req.ExcludedCountries,
		EstimatedDays:         req.EstimatedDays,
		IsActive:              req.IsActive,
		IsDefault:             req.IsDefault,
	}
}

func (h *Handler) CreateShippingMethod(w http.ResponseWriter, r *http.Request) {
	var req ShippingMethodRequest
	if !decodeBody(w, r, &req) {
		return
	}

	method := req.toMethod()
	if err := h.shipping.Create(r.Context(), method); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, method)
}

func (h *Handler) ListShippingMethods(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active") == "true"

	methods, err := h.shipping.List(r.Context(), activeOnly)
	if err != nil {
		writeError(w, err)
		return
	}
	if methods == nil {
		methods = []domain.ShippingMethod{}
	}
	writeJSON(w, http.StatusOK, methods)
}

func (h *Handler) GetShippingMethod(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(r, "id")
	if !ok {
		writeInvalid(w, "invalid shipping method id")
		return
	}

	method, err := h.shipping.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, method)
}

func (h *Handler) UpdateShippingMethod(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(r, "id")
	if !ok {
		writeInvalid(w, "invalid shipping method id")
		return
	}

	var req ShippingMethodRequest
	if !decodeBody(w, r, &req) {
		return
	}

	method := req.toMethod()
	method.ID = id
	if err := h.shipping.Update(r.Context(), method); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, method)
}

func (h *Handler) SetDefaultShippingMethod(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(r, "id")
	if !ok {
		writeInvalid(w, "invalid shipping method id")
		return
	}

	method, err := h.shipping.SetDefault(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, method)
}

func (h *Handler) DeleteShippingMethod(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(r, "id")
	if !ok {
		writeInvalid(w, "invalid shipping method id")
		return
	}

	if err := h.shipping.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) QuoteShipping(w http.ResponseWriter, r *http.Request) {
	country := r.URL.Query().Get("country")
	if country == "" {
		writeInvalid(w, "country query parameter is required")
		return
	}

	orderTotal, err := strconv.ParseFloat(r.URL.Query().Get("order_total"), 64)
	if err != nil || orderTotal < 0 {
		writeInvalid(w, "order_total query parameter must be a non-negative number")
		return
	}

	options, quoteErr := h.shipping.Quote(r.Context(), country, orderTotal)
	if quoteErr != nil {
		writeError(w, quoteErr)
		return
	}
	if options == nil {
		options = []usecase.QuoteOption{}
	}
	writeJSON(w, http.StatusOK, options)
}
