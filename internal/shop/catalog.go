// Package shop implements the points store: a fixed catalog, purchases
// paid from the user's wallet and admin coin grants.
package shop

import (
	"fmt"

	"github.com/mdlunited/arcade/internal/config"
)

// Catalog is an immutable, validated list of store items.
type Catalog struct {
	currency string
	items    []config.StoreItem
	byID     map[string]config.StoreItem
}

// NewCatalog validates cfg: ids must be unique and non-empty, prices
// positive.
func NewCatalog(cfg config.StoreConfig) (*Catalog, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("shop: %w", err)
	}

	c := &Catalog{
		currency: cfg.Currency,
		items:    make([]config.StoreItem, 0, len(cfg.Items)),
		byID:     make(map[string]config.StoreItem, len(cfg.Items)),
	}
	if c.currency == "" {
		c.currency = "coins"
	}

	for _, it := range cfg.Items {
		if it.Name == "" {
			it.Name = it.ID
		}
		c.items = append(c.items, it)
		c.byID[it.ID] = it
	}
	return c, nil
}

// Items returns the catalog in config order.
func (c *Catalog) Items() []config.StoreItem {
	out := make([]config.StoreItem, len(c.items))
	copy(out, c.items)
	return out
}

// Lookup finds an item by id.
func (c *Catalog) Lookup(id string) (config.StoreItem, bool) {
	it, ok := c.byID[id]
	return it, ok
}

// Currency is the display name of the points unit.
func (c *Catalog) Currency() string { return c.currency }
