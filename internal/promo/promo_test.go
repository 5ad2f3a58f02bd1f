package promo

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testItems() []Item {
	return []Item{
		{ItemID: "tee", Price: decimal.RequireFromString("10.00"), Quantity: 2},
		{ItemID: "shirt", Price: decimal.RequireFromString("20.00"), Quantity: 1},
	}
}

func TestApply_Percentage(t *testing.T) {
	rule := &Rule{
		Code:  "FIFTYOFF",
		Type:  TypePercentage,
		Value: decimal.NewFromInt(50),
	}

	d, err := Apply(rule, testItems())
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("20.00").Equal(d.Amount))
}

func TestApply_FixedCappedAtSubtotal(t *testing.T) {
	rule := &Rule{
		Code:  "BIGFIXED",
		Type:  TypeFixed,
		Value: decimal.NewFromInt(999),
	}

	d, err := Apply(rule, testItems())
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("40.00").Equal(d.Amount))
}

func TestApply_FreeLowest(t *testing.T) {
	rule := &Rule{Code: "BIRTHDAY", Type: TypeFreeLowest}

	d, err := Apply(rule, testItems())
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("10.00").Equal(d.Amount))
}

func TestApply_MinItemsNotMet(t *testing.T) {
	rule := &Rule{
		Code:     "BUYGETON",
		Type:     TypeFreeLowest,
		MinItems: 4,
	}

	_, err := Apply(rule, testItems())
	require.ErrorIs(t, err, ErrInvalidCode)
}

func TestApply_UnsupportedType(t *testing.T) {
	rule := &Rule{Code: "X", Type: Type("mystery")}

	_, err := Apply(rule, testItems())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported promo type")
}

func TestRuleValidator_NamedRule(t *testing.T) {
	v := NewRuleValidator([]Rule{{
		Code:        "TENOFF",
		Type:        TypeFixed,
		Value:       decimal.NewFromInt(10),
		Description: "$10 off",
	}}, nil)

	d, err := v.Validate(context.Background(), "TENOFF", testItems())
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("10.00").Equal(d.Amount))
	assert.Equal(t, "$10 off", d.Description)
}

func TestRuleValidator_UnknownCode(t *testing.T) {
	v := NewRuleValidator(nil, nil)

	_, err := v.Validate(context.Background(), "NOPE1234", testItems())
	require.ErrorIs(t, err, ErrInvalidCode)
}

func TestRuleValidator_GenericCodeFallsBack(t *testing.T) {
	set := newTestCodeSet(t, "SAVEMORE")
	v := NewRuleValidator(nil, set)

	d, err := v.Validate(context.Background(), "SAVEMORE", testItems())
	require.NoError(t, err)
	// Default generic rule: 10% of 40.00.
	assert.True(t, decimal.RequireFromString("4.00").Equal(d.Amount))
}
