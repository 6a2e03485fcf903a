package entities

import (
	"fmt"
	"time"
)

// PeriodID identifies a discrete time bucket. Period IDs across a planning
// horizon must form a consecutive increasing integer sequence.
type PeriodID int

// Period represents a discrete time bucket in the planning horizon
type Period struct {
	ID        PeriodID
	StartDate time.Time
	EndDate   time.Time
}

// Validate checks the period's date range
func (p *Period) Validate() error {
	if p.EndDate.Before(p.StartDate) {
		return fmt.Errorf("period %d: start date %s is after end date %s",
			p.ID, p.StartDate.Format("2006-01-02"), p.EndDate.Format("2006-01-02"))
	}
	return nil
}
