package promo

import (
	"context"

	"github.com/shopspring/decimal"
)

// RuleValidator implements Validator against a fixed set of named rules plus
// an optional CodeSet of bulk-generated generic codes. A generic code that
// passes the set's membership check earns the fallback rule.
type RuleValidator struct {
	rules    map[string]Rule
	generic  *CodeSet
	fallback Rule
}

// DefaultGenericRule is the discount granted to valid bulk-generated codes
// that have no named rule of their own.
var DefaultGenericRule = Rule{
	Type:        TypePercentage,
	Value:       decimal.NewFromInt(10),
	Description: "Valid promo code: 10% off",
}

// NewRuleValidator builds a RuleValidator from named rules. generic may be
// nil when no bulk code set was loaded.
func NewRuleValidator(rules []Rule, generic *CodeSet) *RuleValidator {
	byCode := make(map[string]Rule, len(rules))
	for _, r := range rules {
		byCode[r.Code] = r
	}
	return &RuleValidator{
		rules:    byCode,
		generic:  generic,
		fallback: DefaultGenericRule,
	}
}

// Validate resolves code to a named rule or a generic code-set hit and
// applies it to items. Unknown codes return ErrInvalidCode.
func (v *RuleValidator) Validate(_ context.Context, code string, items []Item) (*Discount, error) {
	rule, ok := v.rules[code]
	if !ok {
		if v.generic == nil || !v.generic.Contains(code) {
			return nil, ErrInvalidCode
		}
		rule = v.fallback
		rule.Code = code
	}

	d, err := Apply(&rule, items)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
