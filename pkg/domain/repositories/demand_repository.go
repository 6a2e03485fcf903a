package repositories

import "github.com/optiplan/procure/pkg/domain/entities"

// DemandRepository provides access to warehouse demand records
type DemandRepository interface {
	GetDemand(item entities.ItemID, period entities.PeriodID) (*entities.DemandRecord, error)
	GetAllDemands() ([]*entities.DemandRecord, error)
	LoadDemands(demands []*entities.DemandRecord) error
}
