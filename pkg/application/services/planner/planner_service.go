package planner

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/optiplan/procure/pkg/application/dto"
	"github.com/optiplan/procure/pkg/domain/entities"
	"github.com/optiplan/procure/pkg/planning"
)

// Holding-cost caps applied when Config.HoldingCostCap is enabled
const (
	SupplierHoldingCostCap  = 10_000
	WarehouseHoldingCostCap = 210_000
)

// Config holds the solve budget and optional model extensions
type Config struct {
	// TimeLimit bounds the wall-clock time of one solver call
	TimeLimit time.Duration
	// RelativeGap is the accepted optimality gap before stopping early
	RelativeGap float64
	// HoldingCostCap enables the aggregate holding-cost cap per echelon
	HoldingCostCap bool
	// Verbose forwards the solver's own log output
	Verbose bool
}

// DefaultConfig returns the standard planning configuration
func DefaultConfig() Config {
	options := planning.DefaultSolveOptions()
	return Config{
		TimeLimit:   options.TimeLimit,
		RelativeGap: options.RelativeGap,
	}
}

// Service plans procurement and transfers for one dataset per call. Each
// call owns an independent copy of its input and a fresh model instance,
// so concurrent calls need no coordination.
type Service struct {
	config Config
	solver planning.Solver
	logger zerolog.Logger
}

// New creates a planner service backed by the HiGHS solver
func New(config Config) *Service {
	return NewWithSolver(config, planning.NewHighsSolver(planning.SolveOptions{
		TimeLimit:   config.TimeLimit,
		RelativeGap: config.RelativeGap,
		Verbose:     config.Verbose,
	}))
}

// NewWithSolver creates a planner service with a custom solver, used by
// tests and alternative solver backends.
func NewWithSolver(config Config, solver planning.Solver) *Service {
	return &Service{
		config: config,
		solver: solver,
		logger: zerolog.Nop(),
	}
}

// WithLogger returns the service with structured phase logging enabled
func (s *Service) WithLogger(logger zerolog.Logger) *Service {
	s.logger = logger
	return s
}

// Plan runs the full pipeline: parameter extraction, model construction,
// one bounded solver call, and solution decoding.
func (s *Service) Plan(ctx context.Context, dataset *entities.Dataset) (*dto.PlanResult, error) {
	started := time.Now()
	data, err := planning.NewModelData(dataset)
	if err != nil {
		return nil, fmt.Errorf("failed to extract model data: %w", err)
	}
	s.logger.Debug().
		Int("items", len(data.Items)).
		Int("periods", len(data.Periods)).
		Dur("took", time.Since(started)).
		Msg("extracted model data")

	started = time.Now()
	model := planning.NewModel(data)
	if err := model.Build(); err != nil {
		return nil, fmt.Errorf("failed to build model: %w", err)
	}
	if s.config.HoldingCostCap {
		if err := model.AddHoldingCostCap(SupplierHoldingCostCap, WarehouseHoldingCostCap); err != nil {
			return nil, fmt.Errorf("failed to add holding cost cap: %w", err)
		}
	}
	s.logger.Debug().
		Dur("took", time.Since(started)).
		Msg("built optimization model")

	sol, err := s.solver.Solve(ctx, model)
	if err != nil {
		return nil, fmt.Errorf("solver failed: %w", err)
	}
	s.logger.Info().
		Str("status", string(sol.Status)).
		Float64("objective", sol.ObjectiveValue).
		Dur("took", sol.RunTime).
		Msg("solved optimization model")

	result, err := planning.NewDecoder(data).Decode(sol)
	if err != nil {
		return nil, err
	}
	return result, nil
}
