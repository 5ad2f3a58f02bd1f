// Package catalog owns the set of sellable items and their stock counts.
package catalog

import (
	"fmt"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// Sentinel errors for catalog lookups and stock mutation.
var (
	// ErrNotFound is returned when a requested item does not exist.
	ErrNotFound = errors.New("item not found")
	// ErrInvalidQuantity is returned when a stock mutation is requested
	// with a non-positive quantity.
	ErrInvalidQuantity = errors.New("quantity must be greater than 0")
)

// InsufficientStockError indicates a reservation asked for more units than
// the catalog currently holds.
type InsufficientStockError struct {
	ItemID    string
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for item %s: requested %d, available %d",
		e.ItemID, e.Requested, e.Available)
}

// Item is a sellable catalog entry. ID is the item's identity; Stock is the
// count of units still available for reservation.
type Item struct {
	ID       string
	Name     string
	Price    decimal.Decimal
	Category string
	Stock    int
}

// NewItem builds an Item, clamping a negative price to zero. A negative
// price is a data error, not a reason to refuse to trade the item.
func NewItem(id, name string, price decimal.Decimal, category string, stock int) Item {
	if price.IsNegative() {
		price = decimal.Zero
	}
	if stock < 0 {
		stock = 0
	}
	return Item{
		ID:       id,
		Name:     name,
		Price:    price,
		Category: category,
		Stock:    stock,
	}
}
