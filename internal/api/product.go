package api

import (
	"net/http"

	"github.com/go-faster/jx"
)

// ListProducts returns every catalog item with its current stock, in
// definition order.
func (h *Handler) ListProducts(w http.ResponseWriter, _ *http.Request) {
	items := h.catalog.List()

	writeJSON(w, http.StatusOK, func(e *jx.Encoder) {
		e.Arr(func(e *jx.Encoder) {
			for _, it := range items {
				encodeItem(e, it)
			}
		})
	})
}

// GetProduct returns a single catalog item by ID.
func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	it, err := h.catalog.Get(r.PathValue("id"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, func(e *jx.Encoder) {
		encodeItem(e, it)
	})
}
