// Package data provides the embedded seed files: the product catalog and
// the named promo code rules.
package data

import _ "embed"

// ProductsJSON contains the seed catalog: one object per item with id, name,
// price (decimal string), category, and starting stock.
//
//go:embed products.json
var ProductsJSON []byte

// PromosJSON contains the named promo code rules.
//
//go:embed promos.json
var PromosJSON []byte
