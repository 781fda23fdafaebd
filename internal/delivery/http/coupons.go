package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"storefront/internal/domain"
)

type CouponRequest struct {
	Code         string     `json:"code"`
	Type         string     `json:"type"`
	Value        float64    `json:"value"`
	MinPurchase  float64    `json:"min_purchase"`
	MaxDiscount  *float64   `json:"max_discount"`
	IsActive     bool       `json:"is_active"`
	StartDate    time.Time  `json:"start_date"`
	EndDate      time.Time  `json:"end_date"`
	UsageLimit   *int       `json:"usage_limit"`
	PerUserLimit int        `json:"per_user_limit"`
}

func (req *CouponRequest) toCoupon() *domain.Coupon {
	return &domain.Coupon{
		Code:         req.Code,
		Type:         domain.CouponType(req.Type),
		Value:        req.Value,
		MinPurchase:  req.MinPurchase,
		MaxDiscount:  req.MaxDiscount,
		IsActive:     req.IsActive,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		UsageLimit:   req.UsageLimit,
		PerUserLimit: req.PerUserLimit,
	}
}

type PreviewRequest struct {
	Code      string  `json:"code"`
	CartTotal float64 `json:"cart_total"`
}

type RedeemRequest struct {
	Code      string    `json:"code"`
	UserID    uuid.UUID `json:"user_id"`
	OrderID   uuid.UUID `json:"order_id"`
	CartTotal float64   `json:"cart_total"`
}

func (h *Handler) CreateCoupon(w http.ResponseWriter, r *http.Request) {
	var req CouponRequest
	if !decodeBody(w, r, &req) {
		return
	}

	coupon := req.toCoupon()
	if err := h.coupons.Create(r.Context(), coupon); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, coupon)
}

func (h *Handler) ListCoupons(w http.ResponseWriter, r *http.Request) {
	coupons, err := h.coupons.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if coupons == nil {
		coupons = []domain.Coupon{}
	}
	writeJSON(w, http.StatusOK, coupons)
}

func (h *Handler) GetCoupon(w http.ResponseWriter, r *http.Request) {
	coupon, err := h.coupons.GetByCode(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, coupon)
}

func (h *Handler) UpdateCoupon(w http.ResponseWriter, r *http.Request) {
	existing, err := h.coupons.GetByCode(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		writeError(w, err)
		return
	}

	var req CouponRequest
	if !decodeBody(w, r, &req) {
		return
	}

	coupon := req.toCoupon()
	coupon.ID = existing.ID
	// The code in the path is the resource identity; a code in the body is
	// ignored, renames are not supported.
	coupon.Code = existing.Code
	if err := h.coupons.Update(r.Context(), coupon); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, coupon)
}

func (h *Handler) DeleteCoupon(w http.ResponseWriter, r *http.Request) {
	existing, err := h.coupons.GetByCode(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.coupons.Delete(r.Context(), existing.ID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) PreviewCoupon(w http.ResponseWriter, r *http.Request) {
	var req PreviewRequest
	if !decodeBody(w, r, &req) {
		return
	}

	result, err := h.coupons.Preview(r.Context(), req.Code, req.CartTotal)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) RedeemCoupon(w http.ResponseWriter, r *http.Request) {
	var req RedeemRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.UserID == uuid.Nil || req.OrderID == uuid.Nil {
		writeInvalid(w, "user_id and order_id are required")
		return
	}

	redemption, err := h.coupons.Redeem(r.Context(), req.Code, req.UserID, req.OrderID, req.CartTotal)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, redemption)
}
