package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-faster/jx"
)

type addToCartReq struct {
	ItemID   string `json:"item_id"`
	Quantity int    `json:"quantity"`
}

type checkoutReq struct {
	PromoCode string `json:"promo_code"`
}

// ViewCart returns the session's cart lines and live total.
func (h *Handler) ViewCart(w http.ResponseWriter, r *http.Request) {
	s := h.sessionFor(r)
	writeJSON(w, http.StatusOK, func(e *jx.Encoder) {
		encodeCart(e, s)
	})
}

// AddToCart reserves stock for the given item and merges it into the cart.
func (h *Handler) AddToCart(w http.ResponseWriter, r *http.Request) {
	var req addToCartReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid JSON body")
		return
	}

	s := h.sessionFor(r)
	if err := s.Add(req.ItemID, req.Quantity); err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, func(e *jx.Encoder) {
		encodeCart(e, s)
	})
}

// RemoveFromCart removes the cart line at the 0-based path index and
// releases its reserved stock.
func (h *Handler) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "index must be an integer")
		return
	}

	s := h.sessionFor(r)
	line, err := s.Remove(index)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, func(e *jx.Encoder) {
		e.Obj(func(e *jx.Encoder) {
			e.Field("removed", func(e *jx.Encoder) {
				encodeLine(e, s, line)
			})
			e.Field("total", func(e *jx.Encoder) { e.Str(s.Total().StringFixed(2)) })
		})
	})
}

// ClearCart empties the cart and returns all reserved stock to the catalog.
func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request) {
	if err := h.sessionFor(r).Clear(); err != nil {
		writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Checkout commits the sale and returns the receipt. The promo code is
// optional; an empty body means no promo.
func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req checkoutReq
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", "invalid JSON body")
			return
		}
	}

	receipt, err := h.sessionFor(r).Checkout(r.Context(), req.PromoCode)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, func(e *jx.Encoder) {
		encodeReceipt(e, receipt)
	})
}
