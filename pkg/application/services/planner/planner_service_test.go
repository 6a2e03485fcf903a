package planner

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/optiplan/procure/pkg/domain/entities"
	"github.com/optiplan/procure/pkg/planning"
)

// stubSolver returns a prepared solution without running a solver process
type stubSolver struct {
	solution *planning.Solution
	err      error
	calls    int
}

func (s *stubSolver) Solve(ctx context.Context, model *planning.Model) (*planning.Solution, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.solution, nil
}

func singleItemDataset() *entities.Dataset {
	return &entities.Dataset{
		Items: []entities.Item{
			{ID: "A", MinOrderQty: 0, MaxOrderQty: 1000, MinTransferQty: 0},
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
			{ItemID: "A", PeriodID: 1, Quantity: 10},
			{ItemID: "A", PeriodID: 2, Quantity: 5},
		},
		Inventory: []entities.InventoryPosition{
			{ItemID: "A", SiteID: "S", UnitHoldingCost: decimal.Zero},
			{ItemID: "A", SiteID: "W", UnitHoldingCost: decimal.Zero},
		},
		Parameters: entities.DefaultParameters(),
	}
}

// optimalSolution serves demand 10 and 5 with a single order of 15
func optimalSolution() *planning.Solution {
	return &planning.Solution{
		Status:         planning.StatusOptimal,
		ObjectiveValue: 15,
		Order: map[planning.ItemPeriod]float64{
			{Item: "A", Period: 1}: 15,
		},
		SupplierStock: map[planning.ItemPeriod]float64{
			{Item: "A", Period: 0}: 0,
			{Item: "A", Period: 1}: 0,
			{Item: "A", Period: 2}: 0,
		},
		WarehouseStock: map[planning.ItemPeriod]float64{
			{Item: "A", Period: 0}: 0,
			{Item: "A", Period: 1}: 5,
			{Item: "A", Period: 2}: 0,
		},
		Transfer: map[planning.ItemPeriod]float64{
			{Item: "A", Period: 1}: 15,
		},
	}
}

func TestService_Plan_Pipeline(t *testing.T) {
	requireSolver(t) // Plan builds the model, which loads the solver runtime
	stub := &stubSolver{solution: optimalSolution()}
	service := NewWithSolver(DefaultConfig(), stub)

	result, err := service.Plan(context.Background(), singleItemDataset())
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}
	if stub.calls != 1 {
		t.Errorf("Solver called %d times, want 1", stub.calls)
	}

	if result.Status != string(planning.StatusOptimal) {
		t.Errorf("Status = %s, want optimal", result.Status)
	}
	if len(result.Orders) != 1 || result.Orders[0].OrderQty != 15 {
		t.Errorf("Expected single order of 15, got %+v", result.Orders)
	}
	// warehouse final inventory equals cumulative orders minus cumulative demand
	if got := result.WarehouseFlow[1].FinalInventory; got != 0 {
		t.Errorf("Warehouse final inventory after period 2 = %v, want 0", got)
	}
	for _, kpi := range result.KPIs {
		if kpi.Name == "Total Procurement Cost" && kpi.Value.LessThan(decimal.NewFromInt(15)) {
			t.Errorf("Procurement cost = %s, want >= 15", kpi.Value)
		}
	}
}

func TestService_Plan_InputShapeErrorsPropagate(t *testing.T) {
	stub := &stubSolver{solution: optimalSolution()}
	service := NewWithSolver(DefaultConfig(), stub)

	dataset := singleItemDataset()
	dataset.Periods = []entities.Period{{ID: 1}, {ID: 5}}
	dataset.Demands = nil
	dataset.Costs = nil

	_, err := service.Plan(context.Background(), dataset)
	if !errors.Is(err, planning.ErrPeriodsNotConsecutive) {
		t.Errorf("Expected ErrPeriodsNotConsecutive, got %v", err)
	}
	if stub.calls != 0 {
		t.Error("Solver ran despite fatal input-shape error")
	}
}

func TestService_Plan_BadSolution(t *testing.T) {
	requireSolver(t)
	stub := &stubSolver{solution: &planning.Solution{Status: planning.StatusInfeasible}}
	service := NewWithSolver(DefaultConfig(), stub)

	result, err := service.Plan(context.Background(), singleItemDataset())
	if result != nil {
		t.Errorf("Expected no result for infeasible solve, got %+v", result)
	}
	var badSolution *planning.BadSolutionError
	if !errors.As(err, &badSolution) {
		t.Fatalf("Expected BadSolutionError, got %v", err)
	}
	if badSolution.Status != planning.StatusInfeasible {
		t.Errorf("BadSolutionError status = %s, want infeasible", badSolution.Status)
	}
}

func TestService_Plan_SolverErrorPropagates(t *testing.T) {
	requireSolver(t)
	solverErr := errors.New("solver crashed")
	service := NewWithSolver(DefaultConfig(), &stubSolver{err: solverErr})

	_, err := service.Plan(context.Background(), singleItemDataset())
	if !errors.Is(err, solverErr) {
		t.Errorf("Expected wrapped solver error, got %v", err)
	}
}
