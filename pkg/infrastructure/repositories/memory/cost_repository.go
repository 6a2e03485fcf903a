package memory

import (
	"fmt"

	"github.com/optiplan/procure/pkg/domain/entities"
	"github.com/optiplan/procure/pkg/domain/repositories"
)

type costKey struct {
	item   entities.ItemID
	period entities.PeriodID
}

// CostRepository provides in-memory procurement cost storage
type CostRepository struct {
	costs []entities.ProcurementCost
	index map[costKey]int
}

// NewCostRepository creates a new in-memory cost repository
func NewCostRepository() *CostRepository {
	return &CostRepository{index: make(map[costKey]int)}
}

// Verify interface compliance
var _ repositories.CostRepository = (*CostRepository)(nil)

// LoadCosts loads procurement cost records into the repository
func (r *CostRepository) LoadCosts(costs []*entities.ProcurementCost) error {
	for _, cost := range costs {
		if err := r.AddCost(*cost); err != nil {
			return err
		}
	}
	return nil
}

// AddCost adds a single cost record to the repository
func (r *CostRepository) AddCost(cost entities.ProcurementCost) error {
	key := costKey{cost.ItemID, cost.PeriodID}
	if _, exists := r.index[key]; exists {
		return fmt.Errorf("procurement cost for %s/%d already loaded", cost.ItemID, cost.PeriodID)
	}
	r.index[key] = len(r.costs)
	r.costs = append(r.costs, cost)
	return nil
}

// GetCost returns the procurement cost for an item and period
func (r *CostRepository) GetCost(item entities.ItemID, period entities.PeriodID) (*entities.ProcurementCost, error) {
	i, exists := r.index[costKey{item, period}]
	if !exists {
		return nil, fmt.Errorf("procurement cost for %s/%d not found", item, period)
	}
	return &r.costs[i], nil
}

// GetAllCosts returns all cost records in insertion order
func (r *CostRepository) GetAllCosts() ([]*entities.ProcurementCost, error) {
	out := make([]*entities.ProcurementCost, len(r.costs))
	for i := range r.costs {
		out[i] = &r.costs[i]
	}
	return out, nil
}
