package catalog

import "sync"

// Catalog is an in-memory item store. Reserve and Release are atomic
// read-modify-write operations, so concurrent sessions cannot both win the
// last units of an item.
type Catalog struct {
	mu    sync.RWMutex
	order []string
	items map[string]*Item
}

// New creates a Catalog from the given items, preserving definition order
// for List. Later duplicates of an ID replace earlier ones in place.
func New(items ...Item) *Catalog {
	c := &Catalog{
		items: make(map[string]*Item, len(items)),
	}
	for _, it := range items {
		it := NewItem(it.ID, it.Name, it.Price, it.Category, it.Stock)
		if _, ok := c.items[it.ID]; !ok {
			c.order = append(c.order, it.ID)
		}
		c.items[it.ID] = &it
	}
	return c
}

// List returns a snapshot of all items in definition order.
func (c *Catalog) List() []Item {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]Item, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, *c.items[id])
	}
	return out
}

// Get returns a snapshot of the item with the given ID.
func (c *Catalog) Get(id string) (Item, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	it, ok := c.items[id]
	if !ok {
		return Item{}, ErrNotFound
	}
	return *it, nil
}

// Stock returns the available stock for the item with the given ID.
func (c *Catalog) Stock(id string) (int, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	it, ok := c.items[id]
	if !ok {
		return 0, ErrNotFound
	}
	return it.Stock, nil
}

// Reserve decrements the item's stock by quantity. It returns ErrNotFound
// for an unknown ID, ErrInvalidQuantity for quantity <= 0, and
// InsufficientStockError when quantity exceeds the available stock. On any
// error the stock count is unchanged.
func (c *Catalog) Reserve(id string, quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	it, ok := c.items[id]
	if !ok {
		return ErrNotFound
	}
	if quantity > it.Stock {
		return &InsufficientStockError{
			ItemID:    id,
			Requested: quantity,
			Available: it.Stock,
		}
	}
	it.Stock -= quantity
	return nil
}

// Release returns quantity units of the item to available stock. It is the
// exact inverse of Reserve. The caller is responsible for never releasing
// more than it reserved; Release itself enforces no upper bound.
func (c *Catalog) Release(id string, quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	it, ok := c.items[id]
	if !ok {
		return ErrNotFound
	}
	it.Stock += quantity
	return nil
}
