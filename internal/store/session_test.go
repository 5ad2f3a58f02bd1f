package store

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xenking/storefront/internal/cart"
	"github.com/xenking/storefront/internal/catalog"
	"github.com/xenking/storefront/internal/promo"
)

type stubValidator struct {
	discount *promo.Discount
	err      error
}

func (s *stubValidator) Validate(_ context.Context, _ string, _ []promo.Item) (*promo.Discount, error) {
	return s.discount, s.err
}

func newTestCatalog() *catalog.Catalog {
	return catalog.New(
		catalog.NewItem("tee", "Tee", decimal.RequireFromString("10.00"), "shirts", 5),
		catalog.NewItem("shirt", "Graphic Shirt", decimal.RequireFromString("19.99"), "shirts", 5),
	)
}

func mustStock(t *testing.T, c *catalog.Catalog, id string) int {
	t.Helper()
	stock, err := c.Stock(id)
	require.NoError(t, err)
	return stock
}

func TestAdd_ReservesStock(t *testing.T) {
	cat := newTestCatalog()
	s := NewSession(cat, nil)

	require.NoError(t, s.Add("tee", 3))

	assert.Equal(t, 2, mustStock(t, cat, "tee"))
	assert.True(t, decimal.RequireFromString("24.00").Equal(s.Total()))
}

func TestAdd_UnknownItem(t *testing.T) {
	s := NewSession(newTestCatalog(), nil)

	require.ErrorIs(t, s.Add("missing", 1), catalog.ErrNotFound)
}

func TestAdd_ExceedingStockMutatesNothing(t *testing.T) {
	cat := newTestCatalog()
	s := NewSession(cat, nil)

	err := s.Add("tee", 6)

	var isErr *catalog.InsufficientStockError
	require.ErrorAs(t, err, &isErr)
	assert.Equal(t, 5, mustStock(t, cat, "tee"))
	assert.Empty(t, s.Lines())
}

func TestAdd_InvalidQuantityMutatesNothing(t *testing.T) {
	cat := newTestCatalog()
	s := NewSession(cat, nil)

	require.ErrorIs(t, s.Add("tee", 0), catalog.ErrInvalidQuantity)
	assert.Equal(t, 5, mustStock(t, cat, "tee"))
	assert.Empty(t, s.Lines())
}

func TestRemove_ReleasesStock(t *testing.T) {
	cat := newTestCatalog()
	s := NewSession(cat, nil)
	require.NoError(t, s.Add("tee", 3))

	line, err := s.Remove(0)
	require.NoError(t, err)
	assert.Equal(t, "tee", line.ItemID)
	assert.Equal(t, 3, line.Quantity)
	assert.Equal(t, 5, mustStock(t, cat, "tee"))
	assert.Empty(t, s.Lines())
}

func TestRemove_BadIndexMutatesNothing(t *testing.T) {
	cat := newTestCatalog()
	s := NewSession(cat, nil)
	require.NoError(t, s.Add("tee", 2))

	_, err := s.Remove(3)

	var oorErr *cart.IndexOutOfRangeError
	require.ErrorAs(t, err, &oorErr)
	assert.Equal(t, 3, mustStock(t, cat, "tee"))
	assert.Len(t, s.Lines(), 1)
}

func TestCheckout_EmptyCart(t *testing.T) {
	cat := newTestCatalog()
	s := NewSession(cat, nil)

	_, err := s.Checkout(context.Background(), "")
	require.ErrorIs(t, err, ErrEmptyCart)
	assert.Equal(t, 5, mustStock(t, cat, "tee"))
}

func TestCheckout_CommitsSale(t *testing.T) {
	cat := newTestCatalog()
	s := NewSession(cat, nil)
	require.NoError(t, s.Add("tee", 3))
	require.NoError(t, s.Add("shirt", 1))

	receipt, err := s.Checkout(context.Background(), "")
	require.NoError(t, err)

	require.Len(t, receipt.Lines, 2)
	assert.Equal(t, "Tee", receipt.Lines[0].Name)
	assert.True(t, receipt.Lines[0].Discounted)
	assert.True(t, decimal.RequireFromString("24.00").Equal(receipt.Lines[0].Subtotal))
	assert.False(t, receipt.Lines[1].Discounted)
	assert.True(t, decimal.RequireFromString("43.99").Equal(receipt.Total))
	assert.NotEmpty(t, receipt.ID)

	// Sold stock stays consumed; the cart is empty again.
	assert.Equal(t, 2, mustStock(t, cat, "tee"))
	assert.Equal(t, 4, mustStock(t, cat, "shirt"))
	assert.Empty(t, s.Lines())
}

func TestCheckout_WithPromo(t *testing.T) {
	s := NewSession(newTestCatalog(), &stubValidator{
		discount: &promo.Discount{
			Amount:      decimal.RequireFromString("5.00"),
			Description: "$5 off",
		},
	})
	require.NoError(t, s.Add("tee", 1))

	receipt, err := s.Checkout(context.Background(), "SAVE5")
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("5.00").Equal(receipt.Total))
	assert.True(t, decimal.RequireFromString("5.00").Equal(receipt.Discount))
	assert.Equal(t, "$5 off", receipt.PromoDetail)
}

func TestCheckout_InvalidPromoKeepsCart(t *testing.T) {
	cat := newTestCatalog()
	s := NewSession(cat, &stubValidator{err: promo.ErrInvalidCode})
	require.NoError(t, s.Add("tee", 1))

	_, err := s.Checkout(context.Background(), "BOGUS")
	require.ErrorIs(t, err, promo.ErrInvalidCode)

	// Failed checkout leaves the cart and reservation intact.
	assert.Len(t, s.Lines(), 1)
	assert.Equal(t, 4, mustStock(t, cat, "tee"))
}

func TestCheckout_PromoFlooredAtZero(t *testing.T) {
	s := NewSession(newTestCatalog(), &stubValidator{
		discount: &promo.Discount{Amount: decimal.RequireFromString("999.00")},
	})
	require.NoError(t, s.Add("tee", 1))

	receipt, err := s.Checkout(context.Background(), "HUGE")
	require.NoError(t, err)
	assert.True(t, decimal.Zero.Equal(receipt.Total))
}

func TestCheckout_PromoCodeWithoutValidator(t *testing.T) {
	s := NewSession(newTestCatalog(), nil)
	require.NoError(t, s.Add("tee", 1))

	_, err := s.Checkout(context.Background(), "ANYCODE1")
	require.ErrorIs(t, err, promo.ErrInvalidCode)
}

func TestClear_ReleasesEverything(t *testing.T) {
	cat := newTestCatalog()
	s := NewSession(cat, nil)
	require.NoError(t, s.Add("tee", 3))
	require.NoError(t, s.Add("shirt", 2))

	require.NoError(t, s.Clear())

	assert.Empty(t, s.Lines())
	assert.Equal(t, 5, mustStock(t, cat, "tee"))
	assert.Equal(t, 5, mustStock(t, cat, "shirt"))
}

// Mirrors the full shopping scenario: reserve, release, buy, and verify the
// stock ledger at each step.
func TestScenario_ReserveReleaseCheckout(t *testing.T) {
	cat := catalog.New(
		catalog.NewItem("tee", "Tee", decimal.RequireFromString("10.00"), "shirts", 5),
	)
	s := NewSession(cat, nil)

	require.NoError(t, s.Add("tee", 3))
	assert.Equal(t, 2, mustStock(t, cat, "tee"))
	assert.True(t, decimal.RequireFromString("24.00").Equal(s.Total()))

	_, err := s.Remove(0)
	require.NoError(t, err)
	assert.Equal(t, 5, mustStock(t, cat, "tee"))
	assert.Empty(t, s.Lines())

	require.NoError(t, s.Add("tee", 1))
	receipt, err := s.Checkout(context.Background(), "")
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("10.00").Equal(receipt.Total))
	assert.Equal(t, 4, mustStock(t, cat, "tee"))
	assert.Empty(t, s.Lines())
}
