package planner

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/optiplan/procure/pkg/domain/entities"
	"github.com/optiplan/procure/pkg/planning"
)

// Live-solver tests. They need the HiGHS provider available to the nextmv
// runtime, so they only run when PROCURE_SOLVER_TEST is set.
func requireSolver(t *testing.T) {
	t.Helper()
	if os.Getenv("PROCURE_SOLVER_TEST") == "" {
		t.Skip("set PROCURE_SOLVER_TEST to run live solver tests")
	}
}

func solverConfig() Config {
	config := DefaultConfig()
	config.TimeLimit = 30 * time.Second
	return config
}

func TestIntegration_SingleItemTwoPeriods(t *testing.T) {
	requireSolver(t)

	result, err := New(solverConfig()).Plan(context.Background(), singleItemDataset())
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}

	if result.Status != string(planning.StatusOptimal) {
		t.Fatalf("Status = %s, want optimal", result.Status)
	}

	var procurement decimal.Decimal
	for _, kpi := range result.KPIs {
		if kpi.Name == "Total Procurement Cost" {
			procurement = kpi.Value
		}
	}
	if procurement.LessThan(decimal.NewFromInt(15)) {
		t.Errorf("Procurement cost = %s, want >= 15 (cumulative demand at unit cost 1)", procurement)
	}

	// flow balance holds in the decoded tables: cumulative orders minus
	// cumulative demand equals warehouse ending inventory
	var ordered, demanded float64
	for _, order := range result.Orders {
		ordered += order.OrderQty
	}
	for _, row := range result.WarehouseFlow {
		demanded += row.DemandQty
	}
	final := result.WarehouseFlow[len(result.WarehouseFlow)-1].FinalInventory
	if diff := ordered - demanded - final; diff > 1e-6 || diff < -1e-6 {
		t.Errorf("Flow imbalance: ordered %v, demanded %v, final %v", ordered, demanded, final)
	}
}

func TestIntegration_InfeasibleDemand(t *testing.T) {
	requireSolver(t)

	dataset := singleItemDataset()
	// demand with no opening inventory and no ordering allowed
	dataset.Items[0].MaxOrderQty = 0

	result, err := New(solverConfig()).Plan(context.Background(), dataset)
	if result != nil {
		t.Errorf("Expected no tables for infeasible scenario, got %+v", result)
	}
	var badSolution *planning.BadSolutionError
	if !errors.As(err, &badSolution) {
		t.Fatalf("Expected BadSolutionError, got %v", err)
	}
}

func TestIntegration_AssortmentPenalty(t *testing.T) {
	requireSolver(t)

	// six items must each receive one shipment, two receipts over the free
	// threshold of four
	dataset := &entities.Dataset{
		Periods: []entities.Period{{ID: 1}},
		Sites: []entities.Site{
			{ID: "S", Type: entities.Supplier},
			{ID: "W", Type: entities.Warehouse},
		},
		Parameters: entities.DefaultParameters(),
	}
	items := []entities.ItemID{"A", "B", "C", "D", "E", "F"}
	for _, id := range items {
		dataset.Items = append(dataset.Items, entities.Item{ID: id, MaxOrderQty: 1000})
		dataset.Costs = append(dataset.Costs, entities.ProcurementCost{
			ItemID: id, PeriodID: 1, UnitCost: decimal.NewFromInt(1),
		})
		dataset.Demands = append(dataset.Demands, entities.DemandRecord{
			ItemID: id, PeriodID: 1, Quantity: 10,
		})
		dataset.Inventory = append(dataset.Inventory,
			entities.InventoryPosition{ItemID: id, SiteID: "S"},
			entities.InventoryPosition{ItemID: id, SiteID: "W"},
		)
	}

	result, err := New(solverConfig()).Plan(context.Background(), dataset)
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}

	var total, procurement decimal.Decimal
	for _, kpi := range result.KPIs {
		switch kpi.Name {
		case "Total Cost":
			total = kpi.Value
		case "Total Procurement Cost":
			procurement = kpi.Value
		}
	}
	// 6 receipts − 4 free = 2 × 10000 penalty on top of the purchase cost
	penalty := total.Sub(procurement)
	if !penalty.Equal(decimal.NewFromInt(20_000)) {
		t.Errorf("Assortment penalty = %s, want 20000", penalty)
	}
}

func TestIntegration_AgingForcesEarlyTransfer(t *testing.T) {
	requireSolver(t)

	// buying in period 1 is five times cheaper, but stock may sit at the
	// supplier for at most one period, so the shipment must go out in
	// period 2 even though demand falls in period 3
	dataset := &entities.Dataset{
		Items: []entities.Item{
			{ID: "A", MaxOrderQty: 1000},
		},
		Periods: []entities.Period{{ID: 1}, {ID: 2}, {ID: 3}},
		Sites: []entities.Site{
			{ID: "S", Type: entities.Supplier},
			{ID: "W", Type: entities.Warehouse},
		},
		Costs: []entities.ProcurementCost{
			{ItemID: "A", PeriodID: 1, UnitCost: decimal.NewFromInt(1)},
			{ItemID: "A", PeriodID: 2, UnitCost: decimal.NewFromInt(5)},
			{ItemID: "A", PeriodID: 3, UnitCost: decimal.NewFromInt(5)},
		},
		Demands: []entities.DemandRecord{
			{ItemID: "A", PeriodID: 3, Quantity: 10},
		},
		Inventory: []entities.InventoryPosition{
			{ItemID: "A", SiteID: "S", UnitHoldingCost: decimal.Zero},
			{ItemID: "A", SiteID: "W", UnitHoldingCost: decimal.NewFromFloat(0.01)},
		},
		Parameters: entities.DefaultParameters(),
	}
	dataset.Parameters.MaxAgingTime = 1

	result, err := New(solverConfig()).Plan(context.Background(), dataset)
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}

	var procurement decimal.Decimal
	for _, kpi := range result.KPIs {
		if kpi.Name == "Total Procurement Cost" {
			procurement = kpi.Value
		}
	}
	if !procurement.Equal(decimal.NewFromInt(10)) {
		t.Errorf("Procurement cost = %s, want 10 (all bought at unit cost 1)", procurement)
	}

	if len(result.Shipments) != 1 {
		t.Fatalf("Expected a single shipment, got %+v", result.Shipments)
	}
	shipment := result.Shipments[0]
	if shipment.PeriodID != 2 || shipment.TransferredQty < 10-1e-4 {
		t.Errorf("Shipment = period %d qty %v, want period 2 qty 10", shipment.PeriodID, shipment.TransferredQty)
	}

	// supplier stock at the end of each period must leave within one period
	transferred := make(map[entities.PeriodID]float64)
	for _, row := range result.Shipments {
		transferred[row.PeriodID] += row.TransferredQty
	}
	for _, row := range result.SupplierFlow {
		if row.PeriodID == 3 {
			continue
		}
		if row.FinalInventory > transferred[row.PeriodID+1]+1e-4 {
			t.Errorf("Period %d supplier stock %v exceeds next-period transfer %v",
				row.PeriodID, row.FinalInventory, transferred[row.PeriodID+1])
		}
	}
}

func TestIntegration_MinOrderQtyForcesOverOrder(t *testing.T) {
	requireSolver(t)

	// demand is 10 but any order must be at least 25
	dataset := &entities.Dataset{
		Items: []entities.Item{
			{ID: "A", MinOrderQty: 25, MaxOrderQty: 100},
		},
		Periods: []entities.Period{{ID: 1}},
		Sites: []entities.Site{
			{ID: "S", Type: entities.Supplier},
			{ID: "W", Type: entities.Warehouse},
		},
		Costs: []entities.ProcurementCost{
			{ItemID: "A", PeriodID: 1, UnitCost: decimal.NewFromInt(1)},
		},
		Demands: []entities.DemandRecord{
			{ItemID: "A", PeriodID: 1, Quantity: 10},
		},
		Inventory: []entities.InventoryPosition{
			{ItemID: "A", SiteID: "S"},
			{ItemID: "A", SiteID: "W"},
		},
		Parameters: entities.DefaultParameters(),
	}

	result, err := New(solverConfig()).Plan(context.Background(), dataset)
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}

	if len(result.Orders) != 1 {
		t.Fatalf("Expected a single order, got %+v", result.Orders)
	}
	order := result.Orders[0]
	if order.OrderQty < 25-1e-4 || order.OrderQty > 25+1e-4 {
		t.Errorf("Order qty = %v, want the minimum order quantity 25", order.OrderQty)
	}

	var procurement decimal.Decimal
	for _, kpi := range result.KPIs {
		if kpi.Name == "Total Procurement Cost" {
			procurement = kpi.Value
		}
	}
	if procurement.LessThan(decimal.NewFromInt(25)) {
		t.Errorf("Procurement cost = %s, want >= 25", procurement)
	}
}

func TestIntegration_ExpeditionCapacitySplitsShipments(t *testing.T) {
	requireSolver(t)

	// demand of 18 in period 2 cannot move in one trip when the supplier
	// can ship at most 10 per period
	dataset := &entities.Dataset{
		Items: []entities.Item{
			{ID: "A", MaxOrderQty: 1000},
		},
		Periods: []entities.Period{{ID: 1}, {ID: 2}},
		Sites: []entities.Site{
			{ID: "S", Type: entities.Supplier},
			{ID: "W", Type: entities.Warehouse},
		},
		Costs: []entities.ProcurementCost{
			{ItemID: "A", PeriodID: 1, UnitCost: decimal.NewFromInt(1)},
			{ItemID: "A", PeriodID: 2, UnitCost: decimal.NewFromInt(1)},
		},
		Demands: []entities.DemandRecord{
			{ItemID: "A", PeriodID: 2, Quantity: 18},
		},
		Inventory: []entities.InventoryPosition{
			{ItemID: "A", SiteID: "S"},
			{ItemID: "A", SiteID: "W"},
		},
		Parameters: entities.DefaultParameters(),
	}
	dataset.Parameters.SupplierExpeditionCapacity = 10

	result, err := New(solverConfig()).Plan(context.Background(), dataset)
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}

	shipped := make(map[entities.PeriodID]float64)
	var total float64
	for _, row := range result.Shipments {
		shipped[row.PeriodID] += row.TransferredQty
		total += row.TransferredQty
	}
	if total < 18-1e-4 {
		t.Errorf("Total shipped = %v, want 18", total)
	}
	if len(shipped) < 2 {
		t.Errorf("Expected shipments spread over both periods, got %v", shipped)
	}
	for period, qty := range shipped {
		if qty > 10+1e-4 {
			t.Errorf("Period %d shipped %v, exceeds expedition capacity 10", period, qty)
		}
	}
}

func TestIntegration_ReceivingCapacityStaggersItems(t *testing.T) {
	requireSolver(t)

	// two items both due in period 2, but the warehouse accepts only one
	// distinct item per period, so one must arrive early
	dataset := &entities.Dataset{
		Periods: []entities.Period{{ID: 1}, {ID: 2}},
		Sites: []entities.Site{
			{ID: "S", Type: entities.Supplier},
			{ID: "W", Type: entities.Warehouse},
		},
		Parameters: entities.DefaultParameters(),
	}
	for _, id := range []entities.ItemID{"A", "B"} {
		dataset.Items = append(dataset.Items, entities.Item{ID: id, MaxOrderQty: 1000})
		for _, period := range []entities.PeriodID{1, 2} {
			dataset.Costs = append(dataset.Costs, entities.ProcurementCost{
				ItemID: id, PeriodID: period, UnitCost: decimal.NewFromInt(1),
			})
		}
		dataset.Demands = append(dataset.Demands, entities.DemandRecord{
			ItemID: id, PeriodID: 2, Quantity: 10,
		})
		dataset.Inventory = append(dataset.Inventory,
			entities.InventoryPosition{ItemID: id, SiteID: "S"},
			entities.InventoryPosition{ItemID: id, SiteID: "W"},
		)
	}
	dataset.Parameters.WarehouseReceivingCapacity = 1

	result, err := New(solverConfig()).Plan(context.Background(), dataset)
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}

	itemsByPeriod := make(map[entities.PeriodID]map[entities.ItemID]bool)
	shippedItems := make(map[entities.ItemID]bool)
	for _, row := range result.Shipments {
		if itemsByPeriod[row.PeriodID] == nil {
			itemsByPeriod[row.PeriodID] = make(map[entities.ItemID]bool)
		}
		itemsByPeriod[row.PeriodID][row.ItemID] = true
		shippedItems[row.ItemID] = true
	}
	for period, items := range itemsByPeriod {
		if len(items) > 1 {
			t.Errorf("Period %d received %d distinct items, capacity is 1", period, len(items))
		}
	}
	if !shippedItems["A"] || !shippedItems["B"] {
		t.Errorf("Both items must ship, got %v", shippedItems)
	}
}
