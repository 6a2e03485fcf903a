package planning

import (
	"context"
	"fmt"
	"time"

	"github.com/nextmv-io/sdk/mip"

	"github.com/optiplan/procure/pkg/domain/entities"
)

// SolveStatus is the terminal outcome of one solver invocation
type SolveStatus string

const (
	// StatusOptimal means the solver proved optimality within the gap
	StatusOptimal SolveStatus = "optimal"
	// StatusSuboptimal means a feasible incumbent exists but optimality was
	// not proven, typically after the time limit expired
	StatusSuboptimal SolveStatus = "suboptimal"
	// StatusInfeasible means the solver found no feasible assignment
	StatusInfeasible SolveStatus = "infeasible"
)

// Solution is the immutable snapshot of one solver run: the terminal status
// and the raw variable assignment, keyed the same way as the model data's
// key spaces. It is produced once and only read afterwards.
type Solution struct {
	Status         SolveStatus
	ObjectiveValue float64
	RunTime        time.Duration

	Order          map[ItemPeriod]float64
	SupplierStock  map[ItemPeriod]float64
	WarehouseStock map[ItemPeriod]float64
	Transfer       map[ItemPeriod]float64
	OrderPlaced    map[ItemPeriod]bool
	TransferPlaced map[ItemPeriod]bool
	ReceivedItems  map[entities.PeriodID]float64
	Penalty        float64
}

// Solver runs one built model to a terminal status
type Solver interface {
	Solve(ctx context.Context, model *Model) (*Solution, error)
}

// SolveOptions bound one solver invocation. On time-limit expiry the solver
// returns its best incumbent with a non-optimal status instead of blocking.
type SolveOptions struct {
	TimeLimit   time.Duration
	RelativeGap float64
	Verbose     bool
}

// DefaultSolveOptions returns the standard solve budget: ten minutes of
// wall clock and a 1% relative optimality gap.
func DefaultSolveOptions() SolveOptions {
	return SolveOptions{
		TimeLimit:   10 * time.Minute,
		RelativeGap: 0.01,
	}
}

// HighsSolver solves models through the HiGHS provider of the nextmv mip
// runtime. Each Solve call owns one solver process; concurrent calls on
// separate models are safe.
type HighsSolver struct {
	options SolveOptions
}

// NewHighsSolver creates a HiGHS-backed solver with the given budget
func NewHighsSolver(options SolveOptions) *HighsSolver {
	return &HighsSolver{options: options}
}

// Verify interface compliance
var _ Solver = (*HighsSolver)(nil)

// Solve runs the built model to a terminal status and snapshots the
// variable assignment. The model must be in the ObjectiveSet state.
func (s *HighsSolver) Solve(ctx context.Context, model *Model) (*Solution, error) {
	if model.state != stateObjectiveSet {
		return nil, fmt.Errorf("%w: solve called in state %s, want ObjectiveSet", ErrModelState, model.state)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	solver, err := mip.NewSolver("highs", model.mip)
	if err != nil {
		return nil, fmt.Errorf("failed to create solver: %w", err)
	}

	solveOptions := mip.NewSolveOptions()
	if err := solveOptions.SetMaximumDuration(s.options.TimeLimit); err != nil {
		return nil, fmt.Errorf("failed to set time limit: %w", err)
	}
	if err := solveOptions.SetMIPGapRelative(s.options.RelativeGap); err != nil {
		return nil, fmt.Errorf("failed to set relative gap: %w", err)
	}
	if s.options.Verbose {
		solveOptions.SetVerbosity(mip.High)
	} else {
		solveOptions.SetVerbosity(mip.Off)
	}

	raw, err := solver.Solve(solveOptions)
	model.state = stateSolved
	if err != nil {
		return nil, fmt.Errorf("solve failed: %w", err)
	}

	return snapshot(model, raw), nil
}

// snapshot copies the solver's variable values into an independent Solution
func snapshot(model *Model, raw mip.Solution) *Solution {
	sol := &Solution{Status: StatusInfeasible}
	if raw == nil {
		return sol
	}
	sol.RunTime = raw.RunTime()
	if !raw.HasValues() {
		return sol
	}
	if raw.IsOptimal() {
		sol.Status = StatusOptimal
	} else {
		sol.Status = StatusSuboptimal
	}
	sol.ObjectiveValue = raw.ObjectiveValue()

	d, v := model.data, model.vars
	sol.Order = make(map[ItemPeriod]float64, len(d.OrderKeys))
	sol.OrderPlaced = make(map[ItemPeriod]bool, len(d.OrderKeys))
	for _, key := range d.OrderKeys {
		sol.Order[key] = raw.Value(v.Order[key])
		sol.OrderPlaced[key] = raw.Value(v.OrderPlaced[key]) > 0.5
	}
	sol.SupplierStock = make(map[ItemPeriod]float64, len(d.SupplierStockKeys))
	for _, key := range d.SupplierStockKeys {
		sol.SupplierStock[key] = raw.Value(v.SupplierStock[key])
	}
	sol.WarehouseStock = make(map[ItemPeriod]float64, len(d.WarehouseStockKeys))
	for _, key := range d.WarehouseStockKeys {
		sol.WarehouseStock[key] = raw.Value(v.WarehouseStock[key])
	}
	sol.Transfer = make(map[ItemPeriod]float64, len(d.TransferKeys))
	sol.TransferPlaced = make(map[ItemPeriod]bool, len(d.TransferKeys))
	for _, key := range d.TransferKeys {
		sol.Transfer[key] = raw.Value(v.Transfer[key])
		sol.TransferPlaced[key] = raw.Value(v.TransferPlaced[key]) > 0.5
	}
	sol.ReceivedItems = make(map[entities.PeriodID]float64, len(d.Periods))
	for _, period := range d.Periods {
		sol.ReceivedItems[period] = raw.Value(v.ReceivedItems[period])
	}
	sol.Penalty = raw.Value(v.Penalty)
	return sol
}
