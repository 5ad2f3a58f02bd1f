package app

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xenking/storefront/internal/promo"
)

func TestSeedCatalog(t *testing.T) {
	cat, err := SeedCatalog()
	require.NoError(t, err)

	items := cat.List()
	require.Len(t, items, 3)
	assert.Equal(t, "vintage-tee", items[0].ID)
	assert.True(t, decimal.RequireFromString("14.99").Equal(items[0].Price))
	assert.Equal(t, 10, items[0].Stock)
	assert.Equal(t, "plain-white-tee", items[2].ID)
	assert.Equal(t, 20, items[2].Stock)
}

func TestSeedPromoRules(t *testing.T) {
	rules, err := SeedPromoRules()
	require.NoError(t, err)
	require.NotEmpty(t, rules)

	byCode := make(map[string]promo.Rule, len(rules))
	for _, r := range rules {
		byCode[r.Code] = r
	}

	fifty, ok := byCode["FIFTYOFF"]
	require.True(t, ok)
	assert.Equal(t, promo.TypePercentage, fifty.Type)
	assert.True(t, decimal.NewFromInt(50).Equal(fifty.Value))

	buyGet, ok := byCode["BUYGETON"]
	require.True(t, ok)
	assert.Equal(t, promo.TypeFreeLowest, buyGet.Type)
	assert.Equal(t, 2, buyGet.MinItems)
}
