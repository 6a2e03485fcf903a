package entities

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ProcurementCost represents the unit purchase cost of an item at the
// supplier during a period
type ProcurementCost struct {
	ItemID   ItemID
	PeriodID PeriodID
	UnitCost decimal.Decimal
}

// Validate checks the cost record
func (c *ProcurementCost) Validate() error {
	if c.UnitCost.IsNegative() {
		return fmt.Errorf("procurement cost %s/%d: unit cost must be non-negative", c.ItemID, c.PeriodID)
	}
	return nil
}
