// Package promo validates promotional codes presented at checkout and
// computes the discount they grant on the cart's already-priced lines.
package promo

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// Type enumerates the supported promo discount strategies.
type Type string

const (
	// TypePercentage takes a percentage off the cart subtotal.
	TypePercentage Type = "percentage"
	// TypeFixed takes a fixed amount off, capped at the subtotal.
	TypeFixed Type = "fixed"
	// TypeFreeLowest removes the cost of the cheapest unit in the cart.
	TypeFreeLowest Type = "free_lowest"
)

// ErrInvalidCode is returned when a promo code is unknown or the cart does
// not satisfy the code's minimum item requirement.
var ErrInvalidCode = errors.New("invalid promo code")

// Rule defines a promo code's discount behaviour and eligibility.
type Rule struct {
	Code        string
	Type        Type
	Value       decimal.Decimal
	MinItems    int
	Description string
}

// Discount is a computed promo reduction.
type Discount struct {
	Amount      decimal.Decimal
	Description string
}

// Item is a cart line viewed by the promo calculator: identity, unit price,
// and merged quantity.
type Item struct {
	ItemID   string
	Price    decimal.Decimal
	Quantity int
}

// Validator resolves a promo code against the cart items and returns the
// discount it grants.
type Validator interface {
	Validate(ctx context.Context, code string, items []Item) (*Discount, error)
}

var hundred = decimal.NewFromInt(100)

// Apply computes the discount for rule against items. It returns
// ErrInvalidCode when the cart holds fewer total units than the rule's
// minimum.
func Apply(rule *Rule, items []Item) (Discount, error) {
	if rule.MinItems > 0 && unitCount(items) < rule.MinItems {
		return Discount{}, ErrInvalidCode
	}

	switch rule.Type {
	case TypePercentage:
		amount := subtotal(items).Mul(rule.Value).Div(hundred)
		return Discount{Amount: clampRound(amount), Description: rule.Description}, nil
	case TypeFixed:
		amount := decimal.Min(rule.Value, subtotal(items))
		return Discount{Amount: clampRound(amount), Description: rule.Description}, nil
	case TypeFreeLowest:
		return Discount{Amount: clampRound(lowestUnitPrice(items)), Description: rule.Description}, nil
	default:
		return Discount{}, errors.Errorf("unsupported promo type: %q", rule.Type)
	}
}

func subtotal(items []Item) decimal.Decimal {
	sum := decimal.Zero
	for _, it := range items {
		sum = sum.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return sum
}

func unitCount(items []Item) int {
	n := 0
	for _, it := range items {
		n += it.Quantity
	}
	return n
}

func lowestUnitPrice(items []Item) decimal.Decimal {
	lowest := decimal.Zero
	for i, it := range items {
		if i == 0 || it.Price.LessThan(lowest) {
			lowest = it.Price
		}
	}
	return lowest
}

func clampRound(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		d = decimal.Zero
	}
	return d.Round(2)
}
