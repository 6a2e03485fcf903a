package testing

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/optiplan/procure/pkg/domain/entities"
	"github.com/optiplan/procure/pkg/infrastructure/repositories/memory"
)

// BuildRetailTestData builds a four-week retail replenishment scenario:
// three items with different lot sizes, one supplier, one warehouse, and
// demand that forces both ordering and early transfers.
func BuildRetailTestData() *memory.Repositories {
	repos := memory.NewRepositories()

	items := []*entities.Item{
		{
			ID:             "ESPRESSO_BEANS",
			Name:           "Espresso Beans 1kg",
			MinOrderQty:    50,
			MaxOrderQty:    2000,
			MinTransferQty: 10,
		},
		{
			ID:             "FILTER_PAPER",
			Name:           "Filter Paper Pack",
			MinOrderQty:    0,
			MaxOrderQty:    5000,
			MinTransferQty: 0,
		},
		{
			ID:             "CERAMIC_MUG",
			Name:           "Ceramic Mug",
			MinOrderQty:    24,
			MaxOrderQty:    960,
			MinTransferQty: 24,
		},
	}
	if err := repos.Items.LoadItems(items); err != nil {
		panic(err)
	}

	start := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	var periods []*entities.Period
	for week := 0; week < 4; week++ {
		periods = append(periods, &entities.Period{
			ID:        entities.PeriodID(week + 1),
			StartDate: start.AddDate(0, 0, 7*week),
			EndDate:   start.AddDate(0, 0, 7*week+6),
		})
	}
	if err := repos.Periods.LoadPeriods(periods); err != nil {
		panic(err)
	}

	sites := []*entities.Site{
		{ID: "SUP_NORTH", Name: "Northern Roastery", Type: entities.Supplier},
		{ID: "WH_CENTRAL", Name: "Central Warehouse", Type: entities.Warehouse},
	}
	if err := repos.Sites.LoadSites(sites); err != nil {
		panic(err)
	}

	unitCosts := map[entities.ItemID]string{
		"ESPRESSO_BEANS": "14.80",
		"FILTER_PAPER":   "0.35",
		"CERAMIC_MUG":    "2.10",
	}
	var costs []*entities.ProcurementCost
	for _, item := range items {
		for _, period := range periods {
			costs = append(costs, &entities.ProcurementCost{
				ItemID:   item.ID,
				PeriodID: period.ID,
				UnitCost: decimal.RequireFromString(unitCosts[item.ID]),
			})
		}
	}
	if err := repos.Costs.LoadCosts(costs); err != nil {
		panic(err)
	}

	demands := []*entities.DemandRecord{
		{ItemID: "ESPRESSO_BEANS", PeriodID: 1, Quantity: 60},
		{ItemID: "ESPRESSO_BEANS", PeriodID: 2, Quantity: 80, MinInventory: 20},
		{ItemID: "ESPRESSO_BEANS", PeriodID: 3, Quantity: 75, MinInventory: 20},
		{ItemID: "ESPRESSO_BEANS", PeriodID: 4, Quantity: 90, MinInventory: 20},
		{ItemID: "FILTER_PAPER", PeriodID: 1, Quantity: 300},
		{ItemID: "FILTER_PAPER", PeriodID: 2, Quantity: 280},
		{ItemID: "FILTER_PAPER", PeriodID: 3, Quantity: 310},
		{ItemID: "FILTER_PAPER", PeriodID: 4, Quantity: 290},
		{ItemID: "CERAMIC_MUG", PeriodID: 2, Quantity: 48},
		{ItemID: "CERAMIC_MUG", PeriodID: 4, Quantity: 72},
	}
	if err := repos.Demands.LoadDemands(demands); err != nil {
		panic(err)
	}

	var positions []*entities.InventoryPosition
	opening := map[entities.ItemID]float64{
		"ESPRESSO_BEANS": 40,
		"FILTER_PAPER":   150,
		"CERAMIC_MUG":    0,
	}
	for _, item := range items {
		positions = append(positions,
			&entities.InventoryPosition{
				ItemID:          item.ID,
				SiteID:          "SUP_NORTH",
				UnitHoldingCost: decimal.RequireFromString("0.02"),
			},
			&entities.InventoryPosition{
				ItemID:           item.ID,
				SiteID:           "WH_CENTRAL",
				OpeningInventory: opening[item.ID],
				UnitHoldingCost:  decimal.RequireFromString("0.05"),
			})
	}
	if err := repos.Inventory.LoadPositions(positions); err != nil {
		panic(err)
	}

	return repos
}

// BuildSingleItemTestData builds the smallest useful scenario: one item,
// two periods, no lot sizes, zero opening inventory.
func BuildSingleItemTestData() *memory.Repositories {
	repos := memory.NewRepositories()

	if err := repos.Items.AddItem(entities.Item{ID: "A", Name: "Item A", MaxOrderQty: 1000}); err != nil {
		panic(err)
	}

	start := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	for week := 0; week < 2; week++ {
		err := repos.Periods.AddPeriod(entities.Period{
			ID:        entities.PeriodID(week + 1),
			StartDate: start.AddDate(0, 0, 7*week),
			EndDate:   start.AddDate(0, 0, 7*week+6),
		})
		if err != nil {
			panic(err)
		}
	}

	for _, site := range []entities.Site{
		{ID: "S", Name: "Supplier", Type: entities.Supplier},
		{ID: "W", Name: "Warehouse", Type: entities.Warehouse},
	} {
		if err := repos.Sites.AddSite(site); err != nil {
			panic(err)
		}
	}

	for period := 1; period <= 2; period++ {
		err := repos.Costs.AddCost(entities.ProcurementCost{
			ItemID:   "A",
			PeriodID: entities.PeriodID(period),
			UnitCost: decimal.NewFromInt(1),
		})
		if err != nil {
			panic(err)
		}
	}

	for _, demand := range []entities.DemandRecord{
		{ItemID: "A", PeriodID: 1, Quantity: 10},
		{ItemID: "A", PeriodID: 2, Quantity: 5},
	} {
		if err := repos.Demands.AddDemand(demand); err != nil {
			panic(err)
		}
	}

	for _, site := range []entities.SiteID{"S", "W"} {
		if err := repos.Inventory.AddPosition(entities.InventoryPosition{ItemID: "A", SiteID: site}); err != nil {
			panic(err)
		}
	}

	return repos
}
