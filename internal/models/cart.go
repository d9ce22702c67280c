package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartEntry is one selected item in a session cart. Name and UnitPrice
// are snapshots taken when the item was first added.
type CartEntry struct {
	MenuItemID uuid.UUID       `json:"menu_item_id"`
	Name       string          `json:"name"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	Quantity   int             `json:"quantity"`
}

// Cart is the transient per-session collection of selected items.
// Entries keep insertion order so views are stable.
type Cart struct {
	Entries []CartEntry `json:"entries"`
}

// Add increments the quantity of an existing entry or appends a new
// entry snapshotting the item's current name and price.
func (c *Cart) Add(item MenuItem) {
	for i := range c.Entries {
		if c.Entries[i].MenuItemID == item.ID {
			c.Entries[i].Quantity++
			return
		}
	}
	c.Entries = append(c.Entries, CartEntry{
		MenuItemID: item.ID,
		Name:       item.Name,
		UnitPrice:  item.Price,
		Quantity:   1,
	})
}

// Total returns the exact sum of unit price times quantity over all entries.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, e := range c.Entries {
		total = total.Add(e.UnitPrice.Mul(decimal.NewFromInt(int64(e.Quantity))))
	}
	return total
}

// IsEmpty reports whether the cart has no entries.
func (c *Cart) IsEmpty() bool {
	return len(c.Entries) == 0
}
