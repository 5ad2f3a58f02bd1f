package api

import (
	"net/http"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/xenking/storefront/internal/auth"
	"github.com/xenking/storefront/internal/cart"
	"github.com/xenking/storefront/internal/catalog"
	"github.com/xenking/storefront/internal/promo"
	"github.com/xenking/storefront/internal/store"
)

// writeJSON encodes the response body with fn and writes it with the given
// status code.
func writeJSON(w http.ResponseWriter, status int, fn func(e *jx.Encoder)) {
	var e jx.Encoder
	fn(&e)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(e.Bytes())
}

// writeError writes a JSON error body with a machine-readable code and a
// human-readable message.
func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, func(e *jx.Encoder) {
		e.Obj(func(e *jx.Encoder) {
			e.Field("code", func(e *jx.Encoder) { e.Str(code) })
			e.Field("message", func(e *jx.Encoder) { e.Str(message) })
		})
	})
}

// writeDomainError maps a store/catalog/cart/promo/auth error to an HTTP
// status and error code. Unrecognized errors are logged and become 500s.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		stockErr *catalog.InsufficientStockError
		idxErr   *cart.IndexOutOfRangeError
	)

	switch {
	case errors.Is(err, catalog.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", "item not found")
	case errors.Is(err, catalog.ErrInvalidQuantity), errors.Is(err, cart.ErrInvalidQuantity):
		writeError(w, http.StatusBadRequest, "invalid_quantity", "quantity must be greater than 0")
	case errors.As(err, &stockErr):
		writeError(w, http.StatusConflict, "insufficient_stock", stockErr.Error())
	case errors.As(err, &idxErr):
		writeError(w, http.StatusBadRequest, "index_out_of_range", idxErr.Error())
	case errors.Is(err, store.ErrEmptyCart):
		writeError(w, http.StatusBadRequest, "empty_cart", "cart is empty")
	case errors.Is(err, promo.ErrInvalidCode):
		writeError(w, http.StatusUnprocessableEntity, "invalid_promo_code", "invalid promo code")
	case errors.Is(err, auth.ErrUserExists):
		writeError(w, http.StatusConflict, "user_exists", "username already exists")
	case errors.Is(err, auth.ErrEmptyCredentials):
		writeError(w, http.StatusBadRequest, "empty_credentials", "username and password cannot be empty")
	case errors.Is(err, auth.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "invalid_credentials", "invalid credentials")
	default:
		zctx.From(r.Context()).Error("unhandled error", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal", "internal server error")
	}
}

// encodeItem writes one catalog item.
func encodeItem(e *jx.Encoder, it catalog.Item) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("id", func(e *jx.Encoder) { e.Str(it.ID) })
		e.Field("name", func(e *jx.Encoder) { e.Str(it.Name) })
		e.Field("price", func(e *jx.Encoder) { e.Str(it.Price.StringFixed(2)) })
		e.Field("category", func(e *jx.Encoder) { e.Str(it.Category) })
		e.Field("stock", func(e *jx.Encoder) { e.Int(it.Stock) })
	})
}

// encodeCart writes the session's lines and live total. Line subtotals and
// the total are rounded here, at the display boundary.
func encodeCart(e *jx.Encoder, s *store.Session) {
	lines := s.Lines()
	total := s.Total()

	e.Obj(func(e *jx.Encoder) {
		e.Field("lines", func(e *jx.Encoder) {
			e.Arr(func(e *jx.Encoder) {
				for _, line := range lines {
					encodeLine(e, s, line)
				}
			})
		})
		e.Field("total", func(e *jx.Encoder) { e.Str(total.StringFixed(2)) })
	})
}

func encodeLine(e *jx.Encoder, s *store.Session, line cart.Line) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("item_id", func(e *jx.Encoder) { e.Str(line.ItemID) })
		e.Field("name", func(e *jx.Encoder) { e.Str(line.Name) })
		e.Field("unit_price", func(e *jx.Encoder) { e.Str(line.UnitPrice.StringFixed(2)) })
		e.Field("quantity", func(e *jx.Encoder) { e.Int(line.Quantity) })
		e.Field("subtotal", func(e *jx.Encoder) { e.Str(s.Subtotal(line).StringFixed(2)) })
		e.Field("discounted", func(e *jx.Encoder) { e.Bool(line.Discounted()) })
	})
}

// encodeReceipt writes a committed checkout receipt.
func encodeReceipt(e *jx.Encoder, rc *store.Receipt) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("id", func(e *jx.Encoder) { e.Str(rc.ID) })
		e.Field("lines", func(e *jx.Encoder) {
			e.Arr(func(e *jx.Encoder) {
				for _, line := range rc.Lines {
					e.Obj(func(e *jx.Encoder) {
						e.Field("item_id", func(e *jx.Encoder) { e.Str(line.ItemID) })
						e.Field("name", func(e *jx.Encoder) { e.Str(line.Name) })
						e.Field("quantity", func(e *jx.Encoder) { e.Int(line.Quantity) })
						e.Field("subtotal", func(e *jx.Encoder) { e.Str(line.Subtotal.StringFixed(2)) })
						e.Field("discounted", func(e *jx.Encoder) { e.Bool(line.Discounted) })
					})
				}
			})
		})
		e.Field("subtotal", func(e *jx.Encoder) { e.Str(rc.Subtotal.StringFixed(2)) })
		if rc.PromoCode != "" {
			e.Field("promo_code", func(e *jx.Encoder) { e.Str(rc.PromoCode) })
			e.Field("promo_detail", func(e *jx.Encoder) { e.Str(rc.PromoDetail) })
		}
		e.Field("discount", func(e *jx.Encoder) { e.Str(rc.Discount.StringFixed(2)) })
		e.Field("total", func(e *jx.Encoder) { e.Str(rc.Total.StringFixed(2)) })
		e.Field("created_at", func(e *jx.Encoder) { e.Str(rc.CreatedAt.UTC().Format(time.RFC3339)) })
	})
}
