package entities

import "fmt"

// ItemID uniquely identifies a catalog item
type ItemID string

// Item represents a catalog unit with its ordering and transfer limits.
// Items are immutable for the duration of a planning horizon.
type Item struct {
	ID             ItemID
	Name           string
	MinOrderQty    float64
	MaxOrderQty    float64
	MinTransferQty float64
}

// Validate checks the item's quantity bounds
func (i *Item) Validate() error {
	if i.ID == "" {
		return fmt.Errorf("item: missing item id")
	}
	if i.MinOrderQty < 0 || i.MaxOrderQty < 0 || i.MinTransferQty < 0 {
		return fmt.Errorf("item %s: order/transfer quantities must be non-negative", i.ID)
	}
	if i.MinOrderQty > i.MaxOrderQty {
		return fmt.Errorf("item %s: min order qty %v exceeds max order qty %v", i.ID, i.MinOrderQty, i.MaxOrderQty)
	}
	return nil
}
