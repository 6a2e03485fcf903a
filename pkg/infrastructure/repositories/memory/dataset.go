package memory

import (
	"fmt"

	"github.com/optiplan/procure/pkg/domain/entities"
)

// Repositories bundles the in-memory stores backing one planning dataset
type Repositories struct {
	Items     *ItemRepository
	Periods   *PeriodRepository
	Sites     *SiteRepository
	Costs     *CostRepository
	Demands   *DemandRepository
	Inventory *InventoryRepository
}

// NewRepositories creates an empty repository bundle
func NewRepositories() *Repositories {
	return &Repositories{
		Items:     NewItemRepository(),
		Periods:   NewPeriodRepository(),
		Sites:     NewSiteRepository(),
		Costs:     NewCostRepository(),
		Demands:   NewDemandRepository(),
		Inventory: NewInventoryRepository(),
	}
}

// BuildDataset assembles a validated dataset from the repositories
func (r *Repositories) BuildDataset(params entities.Parameters) (*entities.Dataset, error) {
	dataset := &entities.Dataset{Parameters: params}

	items, err := r.Items.GetAllItems()
	if err != nil {
		return nil, fmt.Errorf("failed to read items: %w", err)
	}
	for _, item := range items {
		dataset.Items = append(dataset.Items, *item)
	}

	periods, err := r.Periods.GetAllPeriods()
	if err != nil {
		return nil, fmt.Errorf("failed to read periods: %w", err)
	}
	for _, period := range periods {
		dataset.Periods = append(dataset.Periods, *period)
	}

	sites, err := r.Sites.GetAllSites()
	if err != nil {
		return nil, fmt.Errorf("failed to read sites: %w", err)
	}
	for _, site := range sites {
		dataset.Sites = append(dataset.Sites, *site)
	}

	costs, err := r.Costs.GetAllCosts()
	if err != nil {
		return nil, fmt.Errorf("failed to read procurement costs: %w", err)
	}
	for _, cost := range costs {
		dataset.Costs = append(dataset.Costs, *cost)
	}

	demands, err := r.Demands.GetAllDemands()
	if err != nil {
		return nil, fmt.Errorf("failed to read demand: %w", err)
	}
	for _, demand := range demands {
		dataset.Demands = append(dataset.Demands, *demand)
	}

	positions, err := r.Inventory.GetAllPositions()
	if err != nil {
		return nil, fmt.Errorf("failed to read inventory: %w", err)
	}
	for _, pos := range positions {
		dataset.Inventory = append(dataset.Inventory, *pos)
	}

	if err := dataset.Validate(); err != nil {
		return nil, err
	}
	return dataset, nil
}
