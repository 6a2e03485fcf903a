package memory

import (
	"fmt"

	"github.com/optiplan/procure/pkg/domain/entities"
	"github.com/optiplan/procure/pkg/domain/repositories"
)

type demandKey struct {
	item   entities.ItemID
	period entities.PeriodID
}

// DemandRepository provides in-memory demand record storage
type DemandRepository struct {
	demands []entities.DemandRecord
	index   map[demandKey]int
}

// NewDemandRepository creates a new in-memory demand repository
func NewDemandRepository() *DemandRepository {
	return &DemandRepository{index: make(map[demandKey]int)}
}

// Verify interface compliance
var _ repositories.DemandRepository = (*DemandRepository)(nil)

// LoadDemands loads demand records into the repository
func (r *DemandRepository) LoadDemands(demands []*entities.DemandRecord) error {
	for _, demand := range demands {
		if err := r.AddDemand(*demand); err != nil {
			return err
		}
	}
	return nil
}

// AddDemand adds a single demand record to the repository
func (r *DemandRepository) AddDemand(demand entities.DemandRecord) error {
	key := demandKey{demand.ItemID, demand.PeriodID}
	if _, exists := r.index[key]; exists {
		return fmt.Errorf("demand for %s/%d already loaded", demand.ItemID, demand.PeriodID)
	}
	r.index[key] = len(r.demands)
	r.demands = append(r.demands, demand)
	return nil
}

// GetDemand returns the demand record for an item and period
func (r *DemandRepository) GetDemand(item entities.ItemID, period entities.PeriodID) (*entities.DemandRecord, error) {
	i, exists := r.index[demandKey{item, period}]
	if !exists {
		return nil, fmt.Errorf("demand for %s/%d not found", item, period)
	}
	return &r.demands[i], nil
}

// GetAllDemands returns all demand records in insertion order
func (r *DemandRepository) GetAllDemands() ([]*entities.DemandRecord, error) {
	out := make([]*entities.DemandRecord, len(r.demands))
	for i := range r.demands {
		out[i] = &r.demands[i]
	}
	return out, nil
}
