package repositories

import "github.com/optiplan/procure/pkg/domain/entities"

// PeriodRepository provides access to the planning horizon's time periods
type PeriodRepository interface {
	GetPeriod(id entities.PeriodID) (*entities.Period, error)
	GetAllPeriods() ([]*entities.Period, error)
	LoadPeriods(periods []*entities.Period) error
}
