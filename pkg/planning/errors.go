package planning

import (
	"errors"
	"fmt"
)

// ErrPeriodsNotConsecutive is returned when the period ids of the horizon do
// not form a consecutive increasing integer sequence.
var ErrPeriodsNotConsecutive = errors.New("period ids must be consecutive increasing integers")

// ErrTooManySites is returned for networks with more than one supplier and
// one warehouse.
var ErrTooManySites = errors.New("multi-supplier/multi-warehouse networks are not implemented")

// ErrModelState is returned when model operations run out of order, e.g.
// solving before the objective is set.
var ErrModelState = errors.New("invalid model state")

// BadSolutionError is returned by the decoder when the solver produced
// anything other than an optimal solution. No report tables are emitted.
type BadSolutionError struct {
	Status SolveStatus
}

func (e *BadSolutionError) Error() string {
	return fmt.Sprintf("cannot process solution because it is not optimal: status %s", e.Status)
}
