package entities

import "fmt"

// DemandRecord represents required warehouse demand for an item in a period,
// together with the minimum inventory floor to keep at the warehouse.
// Absence of a record for an (item, period) pair means "no requirement".
type DemandRecord struct {
	ItemID       ItemID
	PeriodID     PeriodID
	Quantity     float64
	MinInventory float64
}

// Validate checks the demand record's quantities
func (d *DemandRecord) Validate() error {
	if d.Quantity < 0 {
		return fmt.Errorf("demand %s/%d: demand qty must be non-negative", d.ItemID, d.PeriodID)
	}
	if d.MinInventory < 0 {
		return fmt.Errorf("demand %s/%d: min inventory must be non-negative", d.ItemID, d.PeriodID)
	}
	return nil
}
