package app

import (
	"encoding/json"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/xenking/storefront/data"
	"github.com/xenking/storefront/internal/catalog"
	"github.com/xenking/storefront/internal/promo"
)

type productSeed struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Category string          `json:"category"`
	Stock    int             `json:"stock"`
}

type promoSeed struct {
	Code        string          `json:"code"`
	Type        string          `json:"type"`
	Value       decimal.Decimal `json:"value"`
	MinItems    int             `json:"min_items"`
	Description string          `json:"description"`
}

// SeedCatalog builds the catalog from the embedded products file.
func SeedCatalog() (*catalog.Catalog, error) {
	var seeds []productSeed
	if err := json.Unmarshal(data.ProductsJSON, &seeds); err != nil {
		return nil, errors.Wrap(err, "parse products seed")
	}

	items := make([]catalog.Item, len(seeds))
	for i, s := range seeds {
		items[i] = catalog.NewItem(s.ID, s.Name, s.Price, s.Category, s.Stock)
	}
	return catalog.New(items...), nil
}

// SeedPromoRules decodes the embedded named promo rules.
func SeedPromoRules() ([]promo.Rule, error) {
	var seeds []promoSeed
	if err := json.Unmarshal(data.PromosJSON, &seeds); err != nil {
		return nil, errors.Wrap(err, "parse promos seed")
	}

	rules := make([]promo.Rule, len(seeds))
	for i, s := range seeds {
		rules[i] = promo.Rule{
			Code:        s.Code,
			Type:        promo.Type(s.Type),
			Value:       s.Value,
			MinItems:    s.MinItems,
			Description: s.Description,
		}
	}
	return rules, nil
}
