package entities

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// InventoryPosition represents the opening inventory and unit holding cost of
// an item at a site, effective at the start of the planning horizon.
// A missing position defaults to zero opening inventory.
type InventoryPosition struct {
	ItemID           ItemID
	SiteID           SiteID
	OpeningInventory float64
	UnitHoldingCost  decimal.Decimal
}

// Validate checks the inventory position
func (p *InventoryPosition) Validate() error {
	if p.OpeningInventory < 0 {
		return fmt.Errorf("inventory %s@%s: opening inventory must be non-negative", p.ItemID, p.SiteID)
	}
	if p.UnitHoldingCost.IsNegative() {
		return fmt.Errorf("inventory %s@%s: unit holding cost must be non-negative", p.ItemID, p.SiteID)
	}
	return nil
}
