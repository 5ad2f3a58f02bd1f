// Package cart holds the quantities a session has reserved, in insertion
// order. The cart is a pure collection: it never touches catalog stock and
// holds no reference back to the catalog. Stock bookkeeping belongs to the
// store session that feeds it.
package cart

import (
	"fmt"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/xenking/storefront/internal/catalog"
	"github.com/xenking/storefront/internal/pricing"
)

// ErrInvalidQuantity is returned when a line is added with quantity <= 0.
var ErrInvalidQuantity = errors.New("quantity must be greater than 0")

// IndexOutOfRangeError indicates a removal index outside the cart's bounds.
type IndexOutOfRangeError struct {
	Index int
	Len   int
}

func (e *IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("cart index %d out of range [0,%d)", e.Index, e.Len)
}

// Line is one distinct item held in the cart. It records the item's identity
// and the unit price captured from the catalog entry; it never owns a copy
// of the catalog's stock count.
type Line struct {
	ItemID    string
	Name      string
	UnitPrice decimal.Decimal
	Quantity  int
}

// Discounted reports whether this line's merged quantity earns bulk pricing.
func (l Line) Discounted() bool {
	return pricing.Discounted(l.Quantity)
}

// Cart is an ordered collection of lines, at most one per item identity.
// Adding an item already present merges into its existing line.
type Cart struct {
	lines []Line
}

// New creates an empty cart.
func New() *Cart {
	return &Cart{}
}

// Add merges quantity into the existing line for item, or appends a new line
// at the end. It returns ErrInvalidQuantity for quantity <= 0 and applies
// nothing in that case; callers must not have reserved stock for a rejected
// add.
func (c *Cart) Add(item catalog.Item, quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	for i := range c.lines {
		if c.lines[i].ItemID == item.ID {
			c.lines[i].Quantity += quantity
			return nil
		}
	}
	c.lines = append(c.lines, Line{
		ItemID:    item.ID,
		Name:      item.Name,
		UnitPrice: item.Price,
		Quantity:  quantity,
	})
	return nil
}

// Remove deletes the line at the given 0-based index and returns it so the
// caller can release the reserved stock. Order of the remaining lines is
// preserved.
func (c *Cart) Remove(index int) (Line, error) {
	if index < 0 || index >= len(c.lines) {
		return Line{}, &IndexOutOfRangeError{Index: index, Len: len(c.lines)}
	}
	removed := c.lines[index]
	c.lines = append(c.lines[:index], c.lines[index+1:]...)
	return removed, nil
}

// Lines returns a snapshot of the cart's lines in insertion order.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// Len returns the number of distinct lines.
func (c *Cart) Len() int {
	return len(c.lines)
}

// Subtotal returns the cost of one line under the pricing policy selected by
// its quantity. The value is exact; rounding happens after summation.
func (c *Cart) Subtotal(line Line) decimal.Decimal {
	return pricing.Cost(line.UnitPrice, line.Quantity)
}

// Total sums the exact subtotals of all lines. The sum is not rounded here:
// per-line rounding before summation compounds rounding error.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.lines {
		total = total.Add(c.Subtotal(l))
	}
	return total
}

// Clear empties the cart. It does not release stock; the store session owns
// that decision (checkout keeps the reservation, explicit clear returns it).
func (c *Cart) Clear() {
	c.lines = c.lines[:0]
}
