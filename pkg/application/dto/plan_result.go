package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/optiplan/procure/pkg/domain/entities"
)

// KPI names reported by the planner
const (
	KPITotalCost            = "Total Cost"
	KPITotalProcurementCost = "Total Procurement Cost"
	KPISupplierHoldingCost  = "Total Inventory Holding Cost (supplier)"
	KPIWarehouseHoldingCost = "Total Inventory Holding Cost (warehouse)"
)

// OrderLine is one purchase order: an (item, period) with materially
// nonzero order quantity.
type OrderLine struct {
	OrderID     string
	ItemID      entities.ItemID
	PeriodID    entities.PeriodID
	OrderQty    float64
	MinOrderQty float64
	MaxOrderQty float64
	UnitCost    decimal.Decimal
	OrderCost   decimal.Decimal
}

// ShipmentLine is one supplier-to-warehouse shipment with materially
// nonzero transferred quantity.
type ShipmentLine struct {
	ShipmentID     string
	ItemID         entities.ItemID
	PeriodID       entities.PeriodID
	TransferredQty float64
	MinTransferQty float64
}

// SupplierFlowLine is the supplier inventory flow of one (item, period)
type SupplierFlowLine struct {
	ItemID           entities.ItemID
	PeriodID         entities.PeriodID
	InitialInventory float64
	OrderQty         float64
	TransferredQty   float64
	FinalInventory   float64
	UnitHoldingCost  decimal.Decimal
	HoldingCost      decimal.Decimal
}

// WarehouseFlowLine is the warehouse inventory flow of one (item, period)
type WarehouseFlowLine struct {
	ItemID           entities.ItemID
	PeriodID         entities.PeriodID
	InitialInventory float64
	ReceivedQty      float64
	DemandQty        float64
	FinalInventory   float64
	MinInventory     float64
	UnitHoldingCost  decimal.Decimal
	HoldingCost      decimal.Decimal
}

// TotalInventoryLine reports a site's aggregate ending inventory against
// its capacity for one period.
type TotalInventoryLine struct {
	SiteID            entities.SiteID
	PeriodID          entities.PeriodID
	FinalInventory    float64
	InventoryCapacity float64
}

// KPILine is one scalar summary metric
type KPILine struct {
	Name  string
	Value decimal.Decimal
}

// PlanResult contains the complete output of one planning run
type PlanResult struct {
	Status         string
	ObjectiveValue float64
	SolveTime      time.Duration

	KPIs           []KPILine
	Orders         []OrderLine
	Shipments      []ShipmentLine
	SupplierFlow   []SupplierFlowLine
	WarehouseFlow  []WarehouseFlowLine
	TotalInventory []TotalInventoryLine
}
