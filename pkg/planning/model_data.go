package planning

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/optiplan/procure/pkg/domain/entities"
)

// ItemPeriod is the composite key of all per-item-per-period model data
type ItemPeriod struct {
	Item   entities.ItemID
	Period entities.PeriodID
}

// ModelData is the read-only view of one planning problem: index sets,
// parameter maps and decision-variable key spaces, extracted once per solve
// from a private copy of the input dataset. Sparse maps are read through
// the *At accessors, which centralize the zero-default policy.
type ModelData struct {
	// index sets
	Items        []entities.ItemID   // catalog order, as loaded
	Periods      []entities.PeriodID // ascending, consecutive
	SupplierIDs  []entities.SiteID
	WarehouseIDs []entities.SiteID

	// periodsAsLoaded keeps the input row order of the periods table;
	// order and shipment ids are sequenced over it
	periodsAsLoaded []entities.PeriodID

	// FirstPeriod is t0; the pre-horizon inventory slot lives at t0-1
	FirstPeriod entities.PeriodID

	// parameters keyed by item
	openingSupplier  map[entities.ItemID]float64
	openingWarehouse map[entities.ItemID]float64
	supplierHolding  map[entities.ItemID]decimal.Decimal
	warehouseHolding map[entities.ItemID]decimal.Decimal
	minOrderQty      map[entities.ItemID]float64
	maxOrderQty      map[entities.ItemID]float64
	minTransferQty   map[entities.ItemID]float64

	// parameters keyed by (item, period)
	demand       map[ItemPeriod]float64
	minInventory map[ItemPeriod]float64
	unitCost     map[ItemPeriod]decimal.Decimal

	// scalar parameters
	MaxAgingTime       int
	ExpeditionCapacity float64
	ReceivingCapacity  float64
	SupplierCapacity   float64
	WarehouseCapacity  float64

	// decision-variable key spaces
	OrderKeys          []ItemPeriod // Items × Periods (order qty and indicator)
	TransferKeys       []ItemPeriod // Items × Periods (transfer qty and indicator)
	SupplierStockKeys  []ItemPeriod // Items × ({t0-1} ∪ Periods)
	WarehouseStockKeys []ItemPeriod // Items × ({t0-1} ∪ Periods)
}

// NewModelData extracts the model's data view from the input dataset. The
// dataset is deep-copied first; the caller keeps ownership of its tables.
// Fatal input-shape errors: non-contiguous periods, more than two sites.
func NewModelData(dataset *entities.Dataset) (*ModelData, error) {
	dat := dataset.Clone()

	d := &ModelData{
		openingSupplier:  make(map[entities.ItemID]float64),
		openingWarehouse: make(map[entities.ItemID]float64),
		supplierHolding:  make(map[entities.ItemID]decimal.Decimal),
		warehouseHolding: make(map[entities.ItemID]decimal.Decimal),
		minOrderQty:      make(map[entities.ItemID]float64),
		maxOrderQty:      make(map[entities.ItemID]float64),
		minTransferQty:   make(map[entities.ItemID]float64),
		demand:           make(map[ItemPeriod]float64),
		minInventory:     make(map[ItemPeriod]float64),
		unitCost:         make(map[ItemPeriod]decimal.Decimal),
	}

	if err := d.populateIndexSets(dat); err != nil {
		return nil, err
	}
	d.populateParameters(dat)
	d.deriveKeySpaces()
	return d, nil
}

func (d *ModelData) populateIndexSets(dat *entities.Dataset) error {
	for i := range dat.Items {
		d.Items = append(d.Items, dat.Items[i].ID)
	}

	for i := range dat.Periods {
		d.Periods = append(d.Periods, dat.Periods[i].ID)
	}
	d.periodsAsLoaded = append([]entities.PeriodID(nil), d.Periods...)
	sort.Slice(d.Periods, func(i, j int) bool { return d.Periods[i] < d.Periods[j] })
	if !isConsecutive(d.Periods) {
		return ErrPeriodsNotConsecutive
	}
	if len(d.Periods) > 0 {
		d.FirstPeriod = d.Periods[0]
	}

	for i := range dat.Sites {
		site := &dat.Sites[i]
		switch site.Type {
		case entities.Supplier:
			d.SupplierIDs = append(d.SupplierIDs, site.ID)
		case entities.Warehouse:
			d.WarehouseIDs = append(d.WarehouseIDs, site.ID)
		}
	}
	if len(d.SupplierIDs)+len(d.WarehouseIDs) >= 3 {
		return ErrTooManySites
	}
	return nil
}

func (d *ModelData) populateParameters(dat *entities.Dataset) {
	suppliers := make(map[entities.SiteID]bool, len(d.SupplierIDs))
	for _, id := range d.SupplierIDs {
		suppliers[id] = true
	}

	for i := range dat.Inventory {
		pos := &dat.Inventory[i]
		if suppliers[pos.SiteID] {
			d.openingSupplier[pos.ItemID] = pos.OpeningInventory
			d.supplierHolding[pos.ItemID] = pos.UnitHoldingCost
		} else {
			d.openingWarehouse[pos.ItemID] = pos.OpeningInventory
			d.warehouseHolding[pos.ItemID] = pos.UnitHoldingCost
		}
	}

	for i := range dat.Items {
		item := &dat.Items[i]
		d.minOrderQty[item.ID] = item.MinOrderQty
		d.maxOrderQty[item.ID] = item.MaxOrderQty
		d.minTransferQty[item.ID] = item.MinTransferQty
	}

	for i := range dat.Demands {
		rec := &dat.Demands[i]
		key := ItemPeriod{rec.ItemID, rec.PeriodID}
		d.demand[key] = rec.Quantity
		d.minInventory[key] = rec.MinInventory
	}

	for i := range dat.Costs {
		rec := &dat.Costs[i]
		d.unitCost[ItemPeriod{rec.ItemID, rec.PeriodID}] = rec.UnitCost
	}

	d.MaxAgingTime = dat.Parameters.MaxAgingTime
	d.ExpeditionCapacity = dat.Parameters.SupplierExpeditionCapacity
	d.ReceivingCapacity = dat.Parameters.WarehouseReceivingCapacity
	d.SupplierCapacity = dat.Parameters.SupplierInventoryCapacity
	d.WarehouseCapacity = dat.Parameters.WarehouseInventoryCapacity
}

func (d *ModelData) deriveKeySpaces() {
	n := len(d.Items) * len(d.Periods)
	d.OrderKeys = make([]ItemPeriod, 0, n)
	d.TransferKeys = make([]ItemPeriod, 0, n)
	d.SupplierStockKeys = make([]ItemPeriod, 0, n+len(d.Items))
	d.WarehouseStockKeys = make([]ItemPeriod, 0, n+len(d.Items))

	for _, item := range d.Items {
		d.SupplierStockKeys = append(d.SupplierStockKeys, ItemPeriod{item, d.FirstPeriod - 1})
		d.WarehouseStockKeys = append(d.WarehouseStockKeys, ItemPeriod{item, d.FirstPeriod - 1})
		for _, period := range d.Periods {
			key := ItemPeriod{item, period}
			d.OrderKeys = append(d.OrderKeys, key)
			d.TransferKeys = append(d.TransferKeys, key)
			d.SupplierStockKeys = append(d.SupplierStockKeys, key)
			d.WarehouseStockKeys = append(d.WarehouseStockKeys, key)
		}
	}
}

// LastPeriod returns the final period of the horizon
func (d *ModelData) LastPeriod() entities.PeriodID {
	if len(d.Periods) == 0 {
		return d.FirstPeriod
	}
	return d.Periods[len(d.Periods)-1]
}

// DemandAt returns the warehouse demand for an item and period, zero when
// no demand record exists.
func (d *ModelData) DemandAt(item entities.ItemID, period entities.PeriodID) float64 {
	return d.demand[ItemPeriod{item, period}]
}

// MinInventoryKeys returns the (item, period) keys that carry an explicit
// minimum inventory floor.
func (d *ModelData) MinInventoryKeys() []ItemPeriod {
	keys := make([]ItemPeriod, 0, len(d.minInventory))
	for key := range d.minInventory {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Item != keys[j].Item {
			return keys[i].Item < keys[j].Item
		}
		return keys[i].Period < keys[j].Period
	})
	return keys
}

// MinInventoryAt returns the warehouse inventory floor for an item and
// period, zero when no floor is defined.
func (d *ModelData) MinInventoryAt(item entities.ItemID, period entities.PeriodID) float64 {
	return d.minInventory[ItemPeriod{item, period}]
}

// UnitCostAt returns the procurement unit cost as a solver coefficient,
// zero when no cost record exists.
func (d *ModelData) UnitCostAt(item entities.ItemID, period entities.PeriodID) float64 {
	return d.unitCost[ItemPeriod{item, period}].InexactFloat64()
}

// UnitCostMoneyAt returns the procurement unit cost at full precision
func (d *ModelData) UnitCostMoneyAt(item entities.ItemID, period entities.PeriodID) decimal.Decimal {
	return d.unitCost[ItemPeriod{item, period}]
}

// OpeningSupplierAt returns the opening supplier inventory for an item,
// zero when it has no position at the supplier.
func (d *ModelData) OpeningSupplierAt(item entities.ItemID) float64 {
	return d.openingSupplier[item]
}

// OpeningWarehouseAt returns the opening warehouse inventory for an item,
// zero when it has no position at the warehouse.
func (d *ModelData) OpeningWarehouseAt(item entities.ItemID) float64 {
	return d.openingWarehouse[item]
}

// SupplierHoldingCostAt returns the per-unit supplier holding cost as a
// solver coefficient.
func (d *ModelData) SupplierHoldingCostAt(item entities.ItemID) float64 {
	return d.supplierHolding[item].InexactFloat64()
}

// WarehouseHoldingCostAt returns the per-unit warehouse holding cost as a
// solver coefficient.
func (d *ModelData) WarehouseHoldingCostAt(item entities.ItemID) float64 {
	return d.warehouseHolding[item].InexactFloat64()
}

// SupplierHoldingMoneyAt returns the supplier holding cost at full precision
func (d *ModelData) SupplierHoldingMoneyAt(item entities.ItemID) decimal.Decimal {
	return d.supplierHolding[item]
}

// WarehouseHoldingMoneyAt returns the warehouse holding cost at full precision
func (d *ModelData) WarehouseHoldingMoneyAt(item entities.ItemID) decimal.Decimal {
	return d.warehouseHolding[item]
}

// MinOrderQtyAt returns the minimum order quantity for an item
func (d *ModelData) MinOrderQtyAt(item entities.ItemID) float64 {
	return d.minOrderQty[item]
}

// MaxOrderQtyAt returns the maximum order quantity for an item
func (d *ModelData) MaxOrderQtyAt(item entities.ItemID) float64 {
	return d.maxOrderQty[item]
}

// MinTransferQtyAt returns the minimum transfer quantity for an item
func (d *ModelData) MinTransferQtyAt(item entities.ItemID) float64 {
	return d.minTransferQty[item]
}

func isConsecutive(periods []entities.PeriodID) bool {
	for i := 1; i < len(periods); i++ {
		if periods[i] != periods[i-1]+1 {
			return false
		}
	}
	return true
}
