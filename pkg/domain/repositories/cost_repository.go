package repositories

import "github.com/optiplan/procure/pkg/domain/entities"

// CostRepository provides access to per-period procurement costs
type CostRepository interface {
	GetCost(item entities.ItemID, period entities.PeriodID) (*entities.ProcurementCost, error)
	GetAllCosts() ([]*entities.ProcurementCost, error)
	LoadCosts(costs []*entities.ProcurementCost) error
}
