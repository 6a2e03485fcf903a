package entities

import "fmt"

// Dataset aggregates the validated input tables of one planning problem.
// Row order is preserved as loaded; report tables follow it.
type Dataset struct {
	Items      []Item
	Periods    []Period
	Sites      []Site
	Costs      []ProcurementCost
	Demands    []DemandRecord
	Inventory  []InventoryPosition
	Parameters Parameters
}

// Clone returns a deep copy of the dataset, so the planning engine can own
// its input independently of the caller.
func (d *Dataset) Clone() *Dataset {
	out := &Dataset{
		Items:      make([]Item, len(d.Items)),
		Periods:    make([]Period, len(d.Periods)),
		Sites:      make([]Site, len(d.Sites)),
		Costs:      make([]ProcurementCost, len(d.Costs)),
		Demands:    make([]DemandRecord, len(d.Demands)),
		Inventory:  make([]InventoryPosition, len(d.Inventory)),
		Parameters: d.Parameters,
	}
	copy(out.Items, d.Items)
	copy(out.Periods, d.Periods)
	copy(out.Sites, d.Sites)
	copy(out.Costs, d.Costs)
	copy(out.Demands, d.Demands)
	copy(out.Inventory, d.Inventory)
	return out
}

// Validate checks row-level rules, key uniqueness and referential integrity
// across the tables. It does not check period contiguity or the site-count
// limit; those belong to the planning engine.
func (d *Dataset) Validate() error {
	items := make(map[ItemID]bool, len(d.Items))
	for i := range d.Items {
		item := &d.Items[i]
		if err := item.Validate(); err != nil {
			return err
		}
		if items[item.ID] {
			return fmt.Errorf("items: duplicate item id %s", item.ID)
		}
		items[item.ID] = true
	}

	periods := make(map[PeriodID]bool, len(d.Periods))
	for i := range d.Periods {
		period := &d.Periods[i]
		if err := period.Validate(); err != nil {
			return err
		}
		if periods[period.ID] {
			return fmt.Errorf("time periods: duplicate period id %d", period.ID)
		}
		periods[period.ID] = true
	}

	sites := make(map[SiteID]bool, len(d.Sites))
	for i := range d.Sites {
		site := &d.Sites[i]
		if site.ID == "" {
			return fmt.Errorf("sites: missing site id")
		}
		if sites[site.ID] {
			return fmt.Errorf("sites: duplicate site id %s", site.ID)
		}
		sites[site.ID] = true
	}

	costKeys := make(map[[2]string]bool, len(d.Costs))
	for i := range d.Costs {
		cost := &d.Costs[i]
		if err := cost.Validate(); err != nil {
			return err
		}
		if !items[cost.ItemID] {
			return fmt.Errorf("procurement costs: unknown item id %s", cost.ItemID)
		}
		if !periods[cost.PeriodID] {
			return fmt.Errorf("procurement costs: unknown period id %d", cost.PeriodID)
		}
		key := [2]string{string(cost.ItemID), fmt.Sprint(cost.PeriodID)}
		if costKeys[key] {
			return fmt.Errorf("procurement costs: duplicate record for %s/%d", cost.ItemID, cost.PeriodID)
		}
		costKeys[key] = true
	}

	demandKeys := make(map[[2]string]bool, len(d.Demands))
	for i := range d.Demands {
		dem := &d.Demands[i]
		if err := dem.Validate(); err != nil {
			return err
		}
		if !items[dem.ItemID] {
			return fmt.Errorf("demand: unknown item id %s", dem.ItemID)
		}
		if !periods[dem.PeriodID] {
			return fmt.Errorf("demand: unknown period id %d", dem.PeriodID)
		}
		key := [2]string{string(dem.ItemID), fmt.Sprint(dem.PeriodID)}
		if demandKeys[key] {
			return fmt.Errorf("demand: duplicate record for %s/%d", dem.ItemID, dem.PeriodID)
		}
		demandKeys[key] = true
	}

	invKeys := make(map[[2]string]bool, len(d.Inventory))
	for i := range d.Inventory {
		pos := &d.Inventory[i]
		if err := pos.Validate(); err != nil {
			return err
		}
		if !items[pos.ItemID] {
			return fmt.Errorf("inventory: unknown item id %s", pos.ItemID)
		}
		if !sites[pos.SiteID] {
			return fmt.Errorf("inventory: unknown site id %s", pos.SiteID)
		}
		key := [2]string{string(pos.ItemID), string(pos.SiteID)}
		if invKeys[key] {
			return fmt.Errorf("inventory: duplicate record for %s@%s", pos.ItemID, pos.SiteID)
		}
		invKeys[key] = true
	}

	return d.Parameters.Validate()
}
