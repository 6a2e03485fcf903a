package planning

import (
	"fmt"
	"math"

	"github.com/nextmv-io/sdk/mip"

	"github.com/optiplan/procure/pkg/domain/entities"
)

// Assortment diversity settings: receiving more than penaltyFreeReceipts
// distinct item receipts across the horizon is charged at penaltyPerReceipt
// per receipt over the threshold. Each period can count at most
// maxReceiptsPerPeriod distinct items.
const (
	maxReceiptsPerPeriod = 30
	penaltyFreeReceipts  = 4
	penaltyPerReceipt    = 10_000
)

type buildState int

const (
	stateEmpty buildState = iota
	stateVariablesDeclared
	stateConstraintsAdded
	stateObjectiveSet
	stateSolved
)

func (s buildState) String() string {
	switch s {
	case stateEmpty:
		return "Empty"
	case stateVariablesDeclared:
		return "VariablesDeclared"
	case stateConstraintsAdded:
		return "ConstraintsAdded"
	case stateObjectiveSet:
		return "ObjectiveSet"
	case stateSolved:
		return "Solved"
	default:
		return "Unknown"
	}
}

// modelVariables holds one named field per decision-variable family
type modelVariables struct {
	// Order is the quantity purchased for delivery to supplier stock
	Order map[ItemPeriod]mip.Float
	// OrderPlaced indicates a nonzero order in a period
	OrderPlaced map[ItemPeriod]mip.Bool
	// SupplierStock is the supplier ending inventory, incl. the t0-1 slot
	SupplierStock map[ItemPeriod]mip.Float
	// WarehouseStock is the warehouse ending inventory, incl. the t0-1 slot
	WarehouseStock map[ItemPeriod]mip.Float
	// Transfer is the quantity shipped supplier → warehouse
	Transfer map[ItemPeriod]mip.Float
	// TransferPlaced indicates a nonzero transfer in a period
	TransferPlaced map[ItemPeriod]mip.Bool
	// ReceivedItems counts distinct items received at the warehouse per period
	ReceivedItems map[entities.PeriodID]mip.Int
	// Penalty is the assortment diversity penalty charged in the objective
	Penalty mip.Float
}

// Model is one MILP instance of the procurement planning problem. A model is
// built exactly once and solved exactly once; re-solving with different
// parameters requires a new instance.
type Model struct {
	data  *ModelData
	mip   mip.Model
	vars  modelVariables
	state buildState
}

// NewModel creates an empty model instance over the given data view.
// The underlying solver model is allocated lazily in Build, so an unbuilt
// Model never touches the solver runtime.
func NewModel(data *ModelData) *Model {
	return &Model{data: data, state: stateEmpty}
}

// Data returns the model's read-only data view
func (m *Model) Data() *ModelData {
	return m.data
}

// Build declares the decision variables, adds all constraints and composes
// the objective. It must be called exactly once per model instance.
func (m *Model) Build() error {
	if m.state != stateEmpty {
		return fmt.Errorf("%w: build called in state %s, want Empty", ErrModelState, m.state)
	}
	m.mip = mip.NewModel()
	m.declareVariables()
	m.state = stateVariablesDeclared

	m.addConstraints()
	m.state = stateConstraintsAdded

	m.setObjective()
	m.state = stateObjectiveSet
	return nil
}

func (m *Model) declareVariables() {
	d := m.data
	v := modelVariables{
		Order:          make(map[ItemPeriod]mip.Float, len(d.OrderKeys)),
		OrderPlaced:    make(map[ItemPeriod]mip.Bool, len(d.OrderKeys)),
		SupplierStock:  make(map[ItemPeriod]mip.Float, len(d.SupplierStockKeys)),
		WarehouseStock: make(map[ItemPeriod]mip.Float, len(d.WarehouseStockKeys)),
		Transfer:       make(map[ItemPeriod]mip.Float, len(d.TransferKeys)),
		TransferPlaced: make(map[ItemPeriod]mip.Bool, len(d.TransferKeys)),
		ReceivedItems:  make(map[entities.PeriodID]mip.Int, len(d.Periods)),
	}

	for _, key := range d.OrderKeys {
		v.Order[key] = m.mip.NewFloat(0, math.MaxFloat64)
		v.OrderPlaced[key] = m.mip.NewBool()
	}
	for _, key := range d.SupplierStockKeys {
		v.SupplierStock[key] = m.mip.NewFloat(0, math.MaxFloat64)
	}
	for _, key := range d.WarehouseStockKeys {
		v.WarehouseStock[key] = m.mip.NewFloat(0, math.MaxFloat64)
	}
	for _, key := range d.TransferKeys {
		v.Transfer[key] = m.mip.NewFloat(0, math.MaxFloat64)
		v.TransferPlaced[key] = m.mip.NewBool()
	}
	for _, period := range d.Periods {
		v.ReceivedItems[period] = m.mip.NewInt(0, maxReceiptsPerPeriod)
	}
	v.Penalty = m.mip.NewFloat(0, math.MaxFloat64)

	m.vars = v
}

func (m *Model) addConstraints() {
	m.addBoundaryConstraints()
	m.addFlowBalanceConstraints()
	m.addOrderLotSizeConstraints()
	m.addMinInventoryConstraints()
	m.addInventoryCapacityConstraints()
	m.addTransferLotSizeConstraints()
	m.addExpeditionCapacityConstraints()
	m.addReceivingCapacityConstraints()
	m.addAgingConstraints()
	m.addDiversityConstraints()
}

// addBoundaryConstraints pins the pre-horizon inventory slots to the
// opening inventories.
func (m *Model) addBoundaryConstraints() {
	d, v := m.data, m.vars
	preHorizon := d.FirstPeriod - 1
	for _, item := range d.Items {
		key := ItemPeriod{item, preHorizon}

		supplier := m.mip.NewConstraint(mip.Equal, d.OpeningSupplierAt(item))
		supplier.NewTerm(1, v.SupplierStock[key])

		warehouse := m.mip.NewConstraint(mip.Equal, d.OpeningWarehouseAt(item))
		warehouse.NewTerm(1, v.WarehouseStock[key])
	}
}

// addFlowBalanceConstraints conserves flow at both echelons:
// supplier: ys[i,t-1] + x[i,t] = w[i,t] + ys[i,t]
// warehouse: y[i,t-1] + w[i,t] = demand[i,t] + y[i,t]
func (m *Model) addFlowBalanceConstraints() {
	d, v := m.data, m.vars
	for _, item := range d.Items {
		for _, period := range d.Periods {
			key := ItemPeriod{item, period}
			prev := ItemPeriod{item, period - 1}

			supplier := m.mip.NewConstraint(mip.Equal, 0)
			supplier.NewTerm(1, v.SupplierStock[prev])
			supplier.NewTerm(1, v.Order[key])
			supplier.NewTerm(-1, v.Transfer[key])
			supplier.NewTerm(-1, v.SupplierStock[key])

			warehouse := m.mip.NewConstraint(mip.Equal, d.DemandAt(item, period))
			warehouse.NewTerm(1, v.WarehouseStock[prev])
			warehouse.NewTerm(1, v.Transfer[key])
			warehouse.NewTerm(-1, v.WarehouseStock[key])
		}
	}
}

// addOrderLotSizeConstraints links order quantities to their indicators:
// moq[i]·z[i,t] ≤ x[i,t] ≤ maxoq[i]·z[i,t]
func (m *Model) addOrderLotSizeConstraints() {
	d, v := m.data, m.vars
	for _, key := range d.OrderKeys {
		lower := m.mip.NewConstraint(mip.LessThanOrEqual, 0)
		lower.NewTerm(d.MinOrderQtyAt(key.Item), v.OrderPlaced[key])
		lower.NewTerm(-1, v.Order[key])

		upper := m.mip.NewConstraint(mip.LessThanOrEqual, 0)
		upper.NewTerm(1, v.Order[key])
		upper.NewTerm(-d.MaxOrderQtyAt(key.Item), v.OrderPlaced[key])
	}
}

// addMinInventoryConstraints enforces warehouse inventory floors where the
// input defines one.
func (m *Model) addMinInventoryConstraints() {
	d, v := m.data, m.vars
	for _, key := range d.MinInventoryKeys() {
		floor := m.mip.NewConstraint(mip.GreaterThanOrEqual, d.MinInventoryAt(key.Item, key.Period))
		floor.NewTerm(1, v.WarehouseStock[key])
	}
}

// addInventoryCapacityConstraints caps aggregate ending inventory per
// period at each site.
func (m *Model) addInventoryCapacityConstraints() {
	d, v := m.data, m.vars
	for _, period := range d.Periods {
		warehouse := m.mip.NewConstraint(mip.LessThanOrEqual, d.WarehouseCapacity)
		supplier := m.mip.NewConstraint(mip.LessThanOrEqual, d.SupplierCapacity)
		for _, item := range d.Items {
			key := ItemPeriod{item, period}
			warehouse.NewTerm(1, v.WarehouseStock[key])
			supplier.NewTerm(1, v.SupplierStock[key])
		}
	}
}

// addTransferLotSizeConstraints links transfer quantities to their
// indicators: mtq[i]·zs[i,t] ≤ w[i,t] ≤ ec·zs[i,t]
func (m *Model) addTransferLotSizeConstraints() {
	d, v := m.data, m.vars
	for _, key := range d.TransferKeys {
		lower := m.mip.NewConstraint(mip.LessThanOrEqual, 0)
		lower.NewTerm(d.MinTransferQtyAt(key.Item), v.TransferPlaced[key])
		lower.NewTerm(-1, v.Transfer[key])

		upper := m.mip.NewConstraint(mip.LessThanOrEqual, 0)
		upper.NewTerm(1, v.Transfer[key])
		upper.NewTerm(-d.ExpeditionCapacity, v.TransferPlaced[key])
	}
}

// addExpeditionCapacityConstraints caps the aggregate shipped volume per
// period.
func (m *Model) addExpeditionCapacityConstraints() {
	d, v := m.data, m.vars
	for _, period := range d.Periods {
		expedition := m.mip.NewConstraint(mip.LessThanOrEqual, d.ExpeditionCapacity)
		for _, item := range d.Items {
			expedition.NewTerm(1, v.Transfer[ItemPeriod{item, period}])
		}
	}
}

// addReceivingCapacityConstraints caps the number of distinct items
// received at the warehouse per period.
func (m *Model) addReceivingCapacityConstraints() {
	d, v := m.data, m.vars
	for _, period := range d.Periods {
		receiving := m.mip.NewConstraint(mip.LessThanOrEqual, d.ReceivingCapacity)
		for _, item := range d.Items {
			receiving.NewTerm(1, v.TransferPlaced[ItemPeriod{item, period}])
		}
	}
}

// addAgingConstraints bounds supplier ending inventory by the shipments of
// the following MaxAgingTime periods, so stock cannot sit at the supplier
// beyond the aging horizon: ys[i,t] ≤ Σ_{t'=t+1}^{t+tu} w[i,t']
func (m *Model) addAgingConstraints() {
	d, v := m.data, m.vars
	tu := entities.PeriodID(d.MaxAgingTime)
	for t := d.FirstPeriod - 1; t <= d.LastPeriod()-tu; t++ {
		for _, item := range d.Items {
			aging := m.mip.NewConstraint(mip.LessThanOrEqual, 0)
			aging.NewTerm(1, v.SupplierStock[ItemPeriod{item, t}])
			for tp := t + 1; tp <= t+tu; tp++ {
				aging.NewTerm(-1, v.Transfer[ItemPeriod{item, tp}])
			}
		}
	}
}

// addDiversityConstraints ties the per-period received-items counters to
// the transfer indicators, caps them, and activates the penalty once the
// cumulative count across the horizon exceeds the free threshold:
// p ≥ penaltyPerReceipt·(Σ_t r[t] − penaltyFreeReceipts)
func (m *Model) addDiversityConstraints() {
	d, v := m.data, m.vars

	for _, period := range d.Periods {
		link := m.mip.NewConstraint(mip.LessThanOrEqual, 0)
		for _, item := range d.Items {
			link.NewTerm(1, v.TransferPlaced[ItemPeriod{item, period}])
		}
		link.NewTerm(-1, v.ReceivedItems[period])

		limit := m.mip.NewConstraint(mip.LessThanOrEqual, maxReceiptsPerPeriod)
		limit.NewTerm(1, v.ReceivedItems[period])
	}

	penalty := m.mip.NewConstraint(mip.GreaterThanOrEqual, -penaltyFreeReceipts*penaltyPerReceipt)
	penalty.NewTerm(1, v.Penalty)
	for _, period := range d.Periods {
		penalty.NewTerm(-penaltyPerReceipt, v.ReceivedItems[period])
	}
}

// setObjective composes the full cost expression once: purchase cost plus
// holding cost at both echelons plus the diversity penalty. Holding cost
// runs over the in-horizon periods; the pinned t0-1 slots are constants
// and stay out of the objective.
func (m *Model) setObjective() {
	d, v := m.data, m.vars
	objective := m.mip.Objective()
	objective.SetMinimize()

	for _, key := range d.OrderKeys {
		objective.NewTerm(d.UnitCostAt(key.Item, key.Period), v.Order[key])
	}
	for _, item := range d.Items {
		for _, period := range d.Periods {
			key := ItemPeriod{item, period}
			objective.NewTerm(d.WarehouseHoldingCostAt(item), v.WarehouseStock[key])
			objective.NewTerm(d.SupplierHoldingCostAt(item), v.SupplierStock[key])
		}
	}
	objective.NewTerm(1, v.Penalty)
}

// AddHoldingCostCap caps the aggregate holding cost per echelon across the
// horizon. Optional extension; call after Build and before solving.
func (m *Model) AddHoldingCostCap(supplierMax, warehouseMax float64) error {
	if m.state != stateObjectiveSet {
		return fmt.Errorf("%w: holding cost cap requested in state %s, want ObjectiveSet", ErrModelState, m.state)
	}
	d, v := m.data, m.vars

	supplier := m.mip.NewConstraint(mip.LessThanOrEqual, supplierMax)
	warehouse := m.mip.NewConstraint(mip.LessThanOrEqual, warehouseMax)
	for _, item := range d.Items {
		for _, period := range d.Periods {
			key := ItemPeriod{item, period}
			supplier.NewTerm(d.SupplierHoldingCostAt(item), v.SupplierStock[key])
			warehouse.NewTerm(d.WarehouseHoldingCostAt(item), v.WarehouseStock[key])
		}
	}
	return nil
}
