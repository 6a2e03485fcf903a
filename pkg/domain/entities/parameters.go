package entities

import "fmt"

// Default scalar parameter values, applied when a parameter is absent from
// the input.
const (
	DefaultMaxAgingTime               = 7
	DefaultSupplierExpeditionCapacity = 6_000
	DefaultWarehouseReceivingCapacity = 20
	DefaultSupplierInventoryCapacity  = 1_000_000
	DefaultWarehouseInventoryCapacity = 550_000
)

// Parameters holds the scalar operational limits of the planning problem
type Parameters struct {
	// MaxAgingTime is the number of periods an item may sit in supplier
	// stock before it must be shipped out.
	MaxAgingTime int
	// SupplierExpeditionCapacity caps the total volume shipped from the
	// supplier per period.
	SupplierExpeditionCapacity float64
	// WarehouseReceivingCapacity caps the number of distinct items the
	// warehouse can receive per period.
	WarehouseReceivingCapacity float64
	// SupplierInventoryCapacity caps the aggregate supplier inventory
	// volume per period.
	SupplierInventoryCapacity float64
	// WarehouseInventoryCapacity caps the aggregate warehouse inventory
	// volume per period.
	WarehouseInventoryCapacity float64
}

// DefaultParameters returns the parameter set with all defaults applied
func DefaultParameters() Parameters {
	return Parameters{
		MaxAgingTime:               DefaultMaxAgingTime,
		SupplierExpeditionCapacity: DefaultSupplierExpeditionCapacity,
		WarehouseReceivingCapacity: DefaultWarehouseReceivingCapacity,
		SupplierInventoryCapacity:  DefaultSupplierInventoryCapacity,
		WarehouseInventoryCapacity: DefaultWarehouseInventoryCapacity,
	}
}

// Validate checks that every parameter is non-negative
func (p *Parameters) Validate() error {
	if p.MaxAgingTime < 0 {
		return fmt.Errorf("parameters: max aging time must be non-negative")
	}
	if p.SupplierExpeditionCapacity < 0 {
		return fmt.Errorf("parameters: supplier expedition capacity must be non-negative")
	}
	if p.WarehouseReceivingCapacity < 0 {
		return fmt.Errorf("parameters: warehouse receiving capacity must be non-negative")
	}
	if p.SupplierInventoryCapacity < 0 {
		return fmt.Errorf("parameters: supplier inventory capacity must be non-negative")
	}
	if p.WarehouseInventoryCapacity < 0 {
		return fmt.Errorf("parameters: warehouse inventory capacity must be non-negative")
	}
	return nil
}
