package main

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/optiplan/procure/pkg/application/services/planner"
	"github.com/optiplan/procure/pkg/domain/entities"
	"github.com/optiplan/procure/pkg/infrastructure/repositories/memory"
)

func main() {
	ctx := context.Background()

	// Build a small coffee-shop replenishment scenario in memory
	repos := memory.NewRepositories()
	setupCoffeeScenario(repos)

	dataset, err := repos.BuildDataset(entities.DefaultParameters())
	if err != nil {
		fmt.Printf("❌ Failed to build dataset: %v\n", err)
		return
	}

	fmt.Println("☕ Planning coffee shop replenishment...")
	fmt.Printf("Items: %d | Periods: %d | Demand records: %d\n\n",
		len(dataset.Items), len(dataset.Periods), len(dataset.Demands))

	config := planner.DefaultConfig()
	config.TimeLimit = 30 * time.Second

	result, err := planner.New(config).Plan(ctx, dataset)
	if err != nil {
		fmt.Printf("❌ Planning failed: %v\n", err)
		return
	}

	fmt.Printf("📊 Plan solved in %v (status: %s)\n\n", result.SolveTime, result.Status)

	fmt.Println("💰 Cost Breakdown:")
	for _, kpi := range result.KPIs {
		fmt.Printf("  %-42s %s\n", kpi.Name, kpi.Value.StringFixed(2))
	}
	fmt.Println()

	if len(result.Orders) > 0 {
		fmt.Println("📝 Purchase Orders:")
		for _, order := range result.Orders {
			fmt.Printf("  Order %s: %s x %.0f in period %d (cost %s)\n",
				order.OrderID, order.ItemID, order.OrderQty, order.PeriodID,
				order.OrderCost.StringFixed(2))
		}
		fmt.Println()
	}

	if len(result.Shipments) > 0 {
		fmt.Println("🚚 Warehouse Shipments:")
		for _, shipment := range result.Shipments {
			fmt.Printf("  Shipment %s: %s x %.0f in period %d\n",
				shipment.ShipmentID, shipment.ItemID, shipment.TransferredQty,
				shipment.PeriodID)
		}
		fmt.Println()
	}

	fmt.Println("🏭 Warehouse Inventory Flow:")
	for _, row := range result.WarehouseFlow {
		fmt.Printf("  %s period %d: start %.0f, received %.0f, demand %.0f, end %.0f\n",
			row.ItemID, row.PeriodID, row.InitialInventory, row.ReceivedQty,
			row.DemandQty, row.FinalInventory)
	}
}

func setupCoffeeScenario(repos *memory.Repositories) {
	items := []*entities.Item{
		{ID: "BEANS", Name: "Espresso Beans 1kg", MinOrderQty: 20, MaxOrderQty: 500, MinTransferQty: 5},
		{ID: "CUPS", Name: "Paper Cups Pack", MaxOrderQty: 2000},
	}
	must(repos.Items.LoadItems(items))

	start := time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC)
	for week := 0; week < 3; week++ {
		must(repos.Periods.AddPeriod(entities.Period{
			ID:        entities.PeriodID(week + 1),
			StartDate: start.AddDate(0, 0, 7*week),
			EndDate:   start.AddDate(0, 0, 7*week+6),
		}))
	}

	must(repos.Sites.AddSite(entities.Site{ID: "ROASTERY", Name: "Roastery", Type: entities.Supplier}))
	must(repos.Sites.AddSite(entities.Site{ID: "SHOP", Name: "Shop Storeroom", Type: entities.Warehouse}))

	costs := map[entities.ItemID]string{"BEANS": "15.50", "CUPS": "0.08"}
	for id, cost := range costs {
		for period := 1; period <= 3; period++ {
			must(repos.Costs.AddCost(entities.ProcurementCost{
				ItemID:   id,
				PeriodID: entities.PeriodID(period),
				UnitCost: decimal.RequireFromString(cost),
			}))
		}
	}

	demands := []entities.DemandRecord{
		{ItemID: "BEANS", PeriodID: 1, Quantity: 25},
		{ItemID: "BEANS", PeriodID: 2, Quantity: 30, MinInventory: 5},
		{ItemID: "BEANS", PeriodID: 3, Quantity: 28, MinInventory: 5},
		{ItemID: "CUPS", PeriodID: 1, Quantity: 400},
		{ItemID: "CUPS", PeriodID: 2, Quantity: 450},
		{ItemID: "CUPS", PeriodID: 3, Quantity: 420},
	}
	for _, demand := range demands {
		must(repos.Demands.AddDemand(demand))
	}

	positions := []entities.InventoryPosition{
		{ItemID: "BEANS", SiteID: "ROASTERY", UnitHoldingCost: decimal.RequireFromString("0.03")},
		{ItemID: "BEANS", SiteID: "SHOP", OpeningInventory: 10, UnitHoldingCost: decimal.RequireFromString("0.08")},
		{ItemID: "CUPS", SiteID: "ROASTERY", UnitHoldingCost: decimal.RequireFromString("0.001")},
		{ItemID: "CUPS", SiteID: "SHOP", OpeningInventory: 120, UnitHoldingCost: decimal.RequireFromString("0.002")},
	}
	for _, position := range positions {
		must(repos.Inventory.AddPosition(position))
	}
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}
