// Package pricing computes line costs for cart quantities.
//
// Two policies exist: Normal charges the plain unit price, Bulk applies a
// 20% reduction. Bulk kicks in when a line's merged quantity reaches
// BulkThreshold; the selection is a property of the whole line, never of an
// individual add call.
package pricing

import "github.com/shopspring/decimal"

// BulkThreshold is the line quantity at which the bulk rate applies.
const BulkThreshold = 3

// bulkRate is the multiplier applied to bulk-priced lines.
var bulkRate = decimal.RequireFromString("0.8")

// Policy computes the cost of a line given its unit price and quantity.
// Implementations are pure; callers must reject quantity <= 0 before calling.
type Policy interface {
	Cost(unitPrice decimal.Decimal, quantity int) decimal.Decimal
}

// Normal charges unitPrice * quantity with no reduction.
type Normal struct{}

// Cost returns unitPrice * quantity.
func (Normal) Cost(unitPrice decimal.Decimal, quantity int) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
}

// Bulk charges unitPrice * quantity at the reduced bulk rate.
type Bulk struct{}

// Cost returns unitPrice * quantity * 0.8.
func (Bulk) Cost(unitPrice decimal.Decimal, quantity int) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity))).Mul(bulkRate)
}

// For selects the policy for a line of the given quantity.
func For(quantity int) Policy {
	if quantity >= BulkThreshold {
		return Bulk{}
	}
	return Normal{}
}

// Discounted reports whether a line of the given quantity is bulk priced.
func Discounted(quantity int) bool {
	return quantity >= BulkThreshold
}

// Cost computes a line cost using the policy selected by For. Results are
// exact; rounding to 2 places happens only at display and receipt boundaries,
// after summation.
func Cost(unitPrice decimal.Decimal, quantity int) decimal.Decimal {
	return For(quantity).Cost(unitPrice, quantity)
}
