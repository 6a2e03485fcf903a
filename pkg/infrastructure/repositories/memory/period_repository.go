package memory

import (
	"fmt"

	"github.com/optiplan/procure/pkg/domain/entities"
	"github.com/optiplan/procure/pkg/domain/repositories"
)

// PeriodRepository provides in-memory time period storage
type PeriodRepository struct {
	periods []entities.Period
	index   map[entities.PeriodID]int
}

// NewPeriodRepository creates a new in-memory period repository
func NewPeriodRepository() *PeriodRepository {
	return &PeriodRepository{index: make(map[entities.PeriodID]int)}
}

// Verify interface compliance
var _ repositories.PeriodRepository = (*PeriodRepository)(nil)

// LoadPeriods loads periods into the repository
func (r *PeriodRepository) LoadPeriods(periods []*entities.Period) error {
	for _, period := range periods {
		if err := r.AddPeriod(*period); err != nil {
			return err
		}
	}
	return nil
}

// AddPeriod adds a single period to the repository
func (r *PeriodRepository) AddPeriod(period entities.Period) error {
	if _, exists := r.index[period.ID]; exists {
		return fmt.Errorf("period %d already loaded", period.ID)
	}
	r.index[period.ID] = len(r.periods)
	r.periods = append(r.periods, period)
	return nil
}

// GetPeriod returns the period with the given id
func (r *PeriodRepository) GetPeriod(id entities.PeriodID) (*entities.Period, error) {
	i, exists := r.index[id]
	if !exists {
		return nil, fmt.Errorf("period %d not found", id)
	}
	return &r.periods[i], nil
}

// GetAllPeriods returns all periods in insertion order
func (r *PeriodRepository) GetAllPeriods() ([]*entities.Period, error) {
	out := make([]*entities.Period, len(r.periods))
	for i := range r.periods {
		out[i] = &r.periods[i]
	}
	return out, nil
}
