package catalog

import (
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCatalog() *Catalog {
	return New(
		NewItem("vintage-tee", "Vintage Tee", decimal.RequireFromString("14.99"), "shirts", 10),
		NewItem("graphic-shirt", "Graphic Shirt", decimal.RequireFromString("19.99"), "shirts", 5),
	)
}

func TestList_DefinitionOrder(t *testing.T) {
	c := newTestCatalog()

	items := c.List()
	require.Len(t, items, 2)
	assert.Equal(t, "vintage-tee", items[0].ID)
	assert.Equal(t, "graphic-shirt", items[1].ID)
}

func TestGet_Unknown(t *testing.T) {
	c := newTestCatalog()

	_, err := c.Get("missing")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestNewItem_ClampsNegativePrice(t *testing.T) {
	it := NewItem("x", "X", decimal.RequireFromString("-1.00"), "shirts", 1)
	assert.True(t, decimal.Zero.Equal(it.Price))
}

func TestReserve_DecrementsStock(t *testing.T) {
	c := newTestCatalog()

	require.NoError(t, c.Reserve("vintage-tee", 3))

	stock, err := c.Stock("vintage-tee")
	require.NoError(t, err)
	assert.Equal(t, 7, stock)
}

func TestReserve_InsufficientStock(t *testing.T) {
	c := newTestCatalog()

	err := c.Reserve("graphic-shirt", 6)

	var isErr *InsufficientStockError
	require.ErrorAs(t, err, &isErr)
	assert.Equal(t, "graphic-shirt", isErr.ItemID)
	assert.Equal(t, 6, isErr.Requested)
	assert.Equal(t, 5, isErr.Available)

	// Failed reservation must not change stock.
	stock, err := c.Stock("graphic-shirt")
	require.NoError(t, err)
	assert.Equal(t, 5, stock)
}

func TestReserve_InvalidQuantity(t *testing.T) {
	c := newTestCatalog()

	require.ErrorIs(t, c.Reserve("vintage-tee", 0), ErrInvalidQuantity)
	require.ErrorIs(t, c.Reserve("vintage-tee", -2), ErrInvalidQuantity)
}

func TestReserve_Unknown(t *testing.T) {
	c := newTestCatalog()

	require.ErrorIs(t, c.Reserve("missing", 1), ErrNotFound)
}

func TestRelease_InverseOfReserve(t *testing.T) {
	c := newTestCatalog()

	require.NoError(t, c.Reserve("vintage-tee", 4))
	require.NoError(t, c.Release("vintage-tee", 4))

	stock, err := c.Stock("vintage-tee")
	require.NoError(t, err)
	assert.Equal(t, 10, stock)
}

func TestReserve_ConcurrentNeverOversells(t *testing.T) {
	c := New(NewItem("tee", "Tee", decimal.RequireFromString("10.00"), "shirts", 50))

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		wins int
	)
	for range 100 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := c.Reserve("tee", 1); err == nil {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	stock, err := c.Stock("tee")
	require.NoError(t, err)
	assert.Equal(t, 50, wins)
	assert.Equal(t, 0, stock)
}
