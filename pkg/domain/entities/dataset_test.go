package entities

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func validDataset() *Dataset {
	start := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)
	return &Dataset{
		Items: []Item{
			{ID: "A", Name: "Item A", MinOrderQty: 0, MaxOrderQty: 1000, MinTransferQty: 0},
		},
		Periods: []Period{
			{ID: 1, StartDate: start, EndDate: start.AddDate(0, 0, 6)},
			{ID: 2, StartDate: start.AddDate(0, 0, 7), EndDate: start.AddDate(0, 0, 13)},
		},
		Sites: []Site{
			{ID: "S", Name: "Supplier", Type: Supplier},
			{ID: "W", Name: "Warehouse", Type: Warehouse},
		},
		Costs: []ProcurementCost{
			{ItemID: "A", PeriodID: 1, UnitCost: decimal.NewFromInt(1)},
			{ItemID: "A", PeriodID: 2, UnitCost: decimal.NewFromInt(1)},
		},
		Demands: []DemandRecord{
			{ItemID: "A", PeriodID: 1, Quantity: 10},
			{ItemID: "A", PeriodID: 2, Quantity: 5},
		},
		Inventory: []InventoryPosition{
			{ItemID: "A", SiteID: "S", OpeningInventory: 0, UnitHoldingCost: decimal.NewFromFloat(0.1)},
			{ItemID: "A", SiteID: "W", OpeningInventory: 0, UnitHoldingCost: decimal.NewFromFloat(0.2)},
		},
		Parameters: DefaultParameters(),
	}
}

func TestDataset_Validate(t *testing.T) {
	if err := validDataset().Validate(); err != nil {
		t.Fatalf("valid dataset failed validation: %v", err)
	}
}

func TestDataset_Validate_Failures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Dataset)
	}{
		{
			name: "duplicate item id",
			mutate: func(d *Dataset) {
				d.Items = append(d.Items, Item{ID: "A", MaxOrderQty: 10})
			},
		},
		{
			name: "duplicate period id",
			mutate: func(d *Dataset) {
				d.Periods = append(d.Periods, d.Periods[0])
			},
		},
		{
			name: "cost references unknown item",
			mutate: func(d *Dataset) {
				d.Costs[0].ItemID = "GHOST"
			},
		},
		{
			name: "cost references unknown period",
			mutate: func(d *Dataset) {
				d.Costs[0].PeriodID = 99
			},
		},
		{
			name: "demand references unknown item",
			mutate: func(d *Dataset) {
				d.Demands[0].ItemID = "GHOST"
			},
		},
		{
			name: "inventory references unknown site",
			mutate: func(d *Dataset) {
				d.Inventory[0].SiteID = "GHOST"
			},
		},
		{
			name: "negative demand",
			mutate: func(d *Dataset) {
				d.Demands[0].Quantity = -4
			},
		},
		{
			name: "negative parameter",
			mutate: func(d *Dataset) {
				d.Parameters.SupplierExpeditionCapacity = -1
			},
		},
		{
			name: "period with reversed dates",
			mutate: func(d *Dataset) {
				d.Periods[0].StartDate, d.Periods[0].EndDate = d.Periods[0].EndDate, d.Periods[0].StartDate
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validDataset()
			tt.mutate(d)
			if err := d.Validate(); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

func TestDataset_Clone_Independence(t *testing.T) {
	original := validDataset()
	clone := original.Clone()

	clone.Items[0].MaxOrderQty = 5
	clone.Demands[0].Quantity = 999
	clone.Parameters.MaxAgingTime = 1

	if original.Items[0].MaxOrderQty != 1000 {
		t.Error("mutating the clone changed the original items table")
	}
	if original.Demands[0].Quantity != 10 {
		t.Error("mutating the clone changed the original demand table")
	}
	if original.Parameters.MaxAgingTime != DefaultMaxAgingTime {
		t.Error("mutating the clone changed the original parameters")
	}
}
