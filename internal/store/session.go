// Package store orchestrates catalog and cart into one shopping session:
// it is the only place stock moves between available and committed, and the
// only place a checkout can happen.
package store

import (
	"context"
	"sync"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/xenking/storefront/internal/cart"
	"github.com/xenking/storefront/internal/catalog"
	"github.com/xenking/storefront/internal/promo"
)

// ErrEmptyCart is returned when checkout is attempted with no cart lines.
var ErrEmptyCart = errors.New("cart is empty")

// ReceiptLine is one priced line of a committed checkout.
type ReceiptLine struct {
	ItemID     string
	Name       string
	Quantity   int
	Subtotal   decimal.Decimal
	Discounted bool
}

// Receipt is the immutable snapshot produced by a successful checkout.
// Subtotals and totals are rounded to 2 places; the grand total is rounded
// once, from the exact sum.
type Receipt struct {
	ID          string
	Lines       []ReceiptLine
	Subtotal    decimal.Decimal
	PromoCode   string
	PromoDetail string
	Discount    decimal.Decimal
	Total       decimal.Decimal
	CreatedAt   time.Time
}

// Session is one shopper's view of the store: a shared catalog plus a
// private cart. All operations are atomic under the session mutex, and every
// compound operation either fully applies or leaves both catalog and cart
// untouched.
type Session struct {
	mu      sync.Mutex
	catalog *catalog.Catalog
	cart    *cart.Cart
	promos  promo.Validator
	now     func() time.Time
}

// NewSession creates a session against cat. promos may be nil when promo
// codes are not offered; Checkout then rejects any non-empty code.
func NewSession(cat *catalog.Catalog, promos promo.Validator) *Session {
	return &Session{
		catalog: cat,
		cart:    cart.New(),
		promos:  promos,
		now:     time.Now,
	}
}

// Add reserves quantity units of the item and merges them into the cart.
// Reservation and cart mutation succeed or fail together: a cart failure
// rolls the reservation back. Errors: catalog.ErrNotFound,
// catalog.ErrInvalidQuantity, *catalog.InsufficientStockError.
func (s *Session) Add(itemID string, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, err := s.catalog.Get(itemID)
	if err != nil {
		return err
	}
	if err := s.catalog.Reserve(itemID, quantity); err != nil {
		return err
	}
	if err := s.cart.Add(item, quantity); err != nil {
		// Roll the reservation back so no stock dangles without a line.
		if rbErr := s.catalog.Release(itemID, quantity); rbErr != nil {
			return errors.Wrap(rbErr, "rollback reservation")
		}
		return err
	}
	return nil
}

// Remove deletes the cart line at the 0-based index and returns its stock to
// the catalog. A failed removal mutates nothing.
func (s *Session) Remove(index int) (cart.Line, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	line, err := s.cart.Remove(index)
	if err != nil {
		return cart.Line{}, err
	}
	if err := s.catalog.Release(line.ItemID, line.Quantity); err != nil {
		return cart.Line{}, errors.Wrap(err, "release stock")
	}
	return line, nil
}

// Lines returns the current cart lines in insertion order.
func (s *Session) Lines() []cart.Line {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Lines()
}

// Subtotal returns the exact cost of one line under its pricing policy.
func (s *Session) Subtotal(line cart.Line) decimal.Decimal {
	return s.cart.Subtotal(line)
}

// Total returns the exact cart total. Round for display only.
func (s *Session) Total() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Total()
}

// Clear empties the cart and returns every reserved unit to the catalog.
func (s *Session) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, line := range s.cart.Lines() {
		if err := s.catalog.Release(line.ItemID, line.Quantity); err != nil {
			return errors.Wrapf(err, "release %s", line.ItemID)
		}
	}
	s.cart.Clear()
	return nil
}

// Checkout commits the sale: it builds a receipt from the current lines,
// applies an optional promo code, clears the cart, and keeps the stock
// consumed. An empty cart returns ErrEmptyCart and touches nothing.
func (s *Session) Checkout(ctx context.Context, promoCode string) (*Receipt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.cart.Lines()
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	receiptLines := make([]ReceiptLine, len(lines))
	promoItems := make([]promo.Item, len(lines))
	subtotal := decimal.Zero
	for i, line := range lines {
		lineCost := s.cart.Subtotal(line)
		subtotal = subtotal.Add(lineCost)
		receiptLines[i] = ReceiptLine{
			ItemID:     line.ItemID,
			Name:       line.Name,
			Quantity:   line.Quantity,
			Subtotal:   lineCost.Round(2),
			Discounted: line.Discounted(),
		}
		promoItems[i] = promo.Item{
			ItemID:   line.ItemID,
			Price:    line.UnitPrice,
			Quantity: line.Quantity,
		}
	}

	discount := decimal.Zero
	detail := ""
	if promoCode != "" {
		if s.promos == nil {
			return nil, promo.ErrInvalidCode
		}
		d, err := s.promos.Validate(ctx, promoCode, promoItems)
		if err != nil {
			return nil, err
		}
		discount = d.Amount
		detail = d.Description
	}

	total := subtotal.Sub(discount)
	if total.IsNegative() {
		total = decimal.Zero
	}

	s.cart.Clear()

	return &Receipt{
		ID:          uuid.New().String(),
		Lines:       receiptLines,
		Subtotal:    subtotal.Round(2),
		PromoCode:   promoCode,
		PromoDetail: detail,
		Discount:    discount.Round(2),
		Total:       total.Round(2),
		CreatedAt:   s.now(),
	}, nil
}
