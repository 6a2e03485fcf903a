package planning

import (
	"sort"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/optiplan/procure/pkg/application/dto"
)

// zeroTolerance suppresses numerical noise in order and transfer
// quantities: values at or below it are treated as exactly zero.
// Inventory levels are reported at full precision.
const zeroTolerance = 1e-2

// Decoder turns a raw solver assignment back into domain-shaped report
// tables. Decoding is a pure transformation; running it twice on the same
// solution yields identical results.
type Decoder struct {
	data *ModelData
}

// NewDecoder creates a decoder over the model's data view
func NewDecoder(data *ModelData) *Decoder {
	return &Decoder{data: data}
}

// Decode validates the solve status and builds the report tables. Any
// status other than optimal yields a BadSolutionError and no tables.
func (dec *Decoder) Decode(sol *Solution) (*dto.PlanResult, error) {
	if sol.Status != StatusOptimal {
		return nil, &BadSolutionError{Status: sol.Status}
	}

	result := &dto.PlanResult{
		Status:         string(sol.Status),
		ObjectiveValue: sol.ObjectiveValue,
		SolveTime:      sol.RunTime,
	}
	result.Orders = dec.buildOrders(sol)
	result.Shipments = dec.buildShipments(sol)
	result.SupplierFlow = dec.buildSupplierFlow(sol)
	result.WarehouseFlow = dec.buildWarehouseFlow(sol)
	result.TotalInventory = dec.buildTotalInventory(sol)
	result.KPIs = dec.buildKPIs(sol)
	return result, nil
}

// buildOrders lists the materially nonzero purchase orders in input
// item/period order, with sequential ids.
func (dec *Decoder) buildOrders(sol *Solution) []dto.OrderLine {
	d := dec.data
	orders := make([]dto.OrderLine, 0, len(d.OrderKeys))
	for _, item := range d.Items {
		for _, period := range d.periodsAsLoaded {
			qty := sol.Order[ItemPeriod{item, period}]
			if qty <= zeroTolerance {
				continue
			}
			unitCost := d.UnitCostMoneyAt(item, period)
			orders = append(orders, dto.OrderLine{
				OrderID:     strconv.Itoa(len(orders) + 1),
				ItemID:      item,
				PeriodID:    period,
				OrderQty:    qty,
				MinOrderQty: d.MinOrderQtyAt(item),
				MaxOrderQty: d.MaxOrderQtyAt(item),
				UnitCost:    unitCost,
				OrderCost:   unitCost.Mul(decimal.NewFromFloat(qty)),
			})
		}
	}
	return orders
}

// buildShipments lists the materially nonzero transfers in input
// item/period order, with sequential ids.
func (dec *Decoder) buildShipments(sol *Solution) []dto.ShipmentLine {
	d := dec.data
	shipments := make([]dto.ShipmentLine, 0, len(d.TransferKeys))
	for _, item := range d.Items {
		for _, period := range d.periodsAsLoaded {
			qty := sol.Transfer[ItemPeriod{item, period}]
			if qty <= zeroTolerance {
				continue
			}
			shipments = append(shipments, dto.ShipmentLine{
				ShipmentID:     strconv.Itoa(len(shipments) + 1),
				ItemID:         item,
				PeriodID:       period,
				TransferredQty: qty,
				MinTransferQty: d.MinTransferQtyAt(item),
			})
		}
	}
	return shipments
}

// buildSupplierFlow reconstructs the supplier inventory time series over
// the full item×period grid. Initial inventory is the previous period's
// final inventory; for the first period it is the opening inventory.
func (dec *Decoder) buildSupplierFlow(sol *Solution) []dto.SupplierFlowLine {
	d := dec.data
	flow := make([]dto.SupplierFlowLine, 0, len(d.Items)*len(d.Periods))
	for _, item := range d.Items {
		for _, period := range d.Periods {
			key := ItemPeriod{item, period}
			initial := d.OpeningSupplierAt(item)
			if period != d.FirstPeriod {
				initial = sol.SupplierStock[ItemPeriod{item, period - 1}]
			}
			final := sol.SupplierStock[key]
			holding := d.SupplierHoldingMoneyAt(item)
			flow = append(flow, dto.SupplierFlowLine{
				ItemID:           item,
				PeriodID:         period,
				InitialInventory: initial,
				OrderQty:         materialQty(sol.Order[key]),
				TransferredQty:   materialQty(sol.Transfer[key]),
				FinalInventory:   final,
				UnitHoldingCost:  holding,
				HoldingCost:      holding.Mul(decimal.NewFromFloat(final)),
			})
		}
	}
	return flow
}

// buildWarehouseFlow reconstructs the warehouse inventory time series over
// the full item×period grid.
func (dec *Decoder) buildWarehouseFlow(sol *Solution) []dto.WarehouseFlowLine {
	d := dec.data
	flow := make([]dto.WarehouseFlowLine, 0, len(d.Items)*len(d.Periods))
	for _, item := range d.Items {
		for _, period := range d.Periods {
			key := ItemPeriod{item, period}
			initial := d.OpeningWarehouseAt(item)
			if period != d.FirstPeriod {
				initial = sol.WarehouseStock[ItemPeriod{item, period - 1}]
			}
			final := sol.WarehouseStock[key]
			holding := d.WarehouseHoldingMoneyAt(item)
			flow = append(flow, dto.WarehouseFlowLine{
				ItemID:           item,
				PeriodID:         period,
				InitialInventory: initial,
				ReceivedQty:      materialQty(sol.Transfer[key]),
				DemandQty:        d.DemandAt(item, period),
				MinInventory:     d.MinInventoryAt(item, period),
				FinalInventory:   final,
				UnitHoldingCost:  holding,
				HoldingCost:      holding.Mul(decimal.NewFromFloat(final)),
			})
		}
	}
	return flow
}

// buildTotalInventory aggregates ending inventory per site and period
// against the site's capacity, ordered by site id then period.
func (dec *Decoder) buildTotalInventory(sol *Solution) []dto.TotalInventoryLine {
	d := dec.data
	var lines []dto.TotalInventoryLine
	for _, site := range d.SupplierIDs {
		for _, period := range d.Periods {
			total := 0.0
			for _, item := range d.Items {
				total += sol.SupplierStock[ItemPeriod{item, period}]
			}
			lines = append(lines, dto.TotalInventoryLine{
				SiteID:            site,
				PeriodID:          period,
				FinalInventory:    total,
				InventoryCapacity: d.SupplierCapacity,
			})
		}
	}
	for _, site := range d.WarehouseIDs {
		for _, period := range d.Periods {
			total := 0.0
			for _, item := range d.Items {
				total += sol.WarehouseStock[ItemPeriod{item, period}]
			}
			lines = append(lines, dto.TotalInventoryLine{
				SiteID:            site,
				PeriodID:          period,
				FinalInventory:    total,
				InventoryCapacity: d.WarehouseCapacity,
			})
		}
	}
	sort.SliceStable(lines, func(i, j int) bool {
		if lines[i].SiteID != lines[j].SiteID {
			return lines[i].SiteID < lines[j].SiteID
		}
		return lines[i].PeriodID < lines[j].PeriodID
	})
	return lines
}

// buildKPIs derives the cost summary from the raw assignment. Total cost is
// the sum of the named cost terms plus the diversity penalty, matching the
// objective composition.
func (dec *Decoder) buildKPIs(sol *Solution) []dto.KPILine {
	d := dec.data

	purchase := decimal.Zero
	for _, key := range d.OrderKeys {
		qty := sol.Order[key]
		if qty == 0 {
			continue
		}
		purchase = purchase.Add(d.UnitCostMoneyAt(key.Item, key.Period).Mul(decimal.NewFromFloat(qty)))
	}

	supplierHolding := decimal.Zero
	warehouseHolding := decimal.Zero
	for _, item := range d.Items {
		for _, period := range d.Periods {
			key := ItemPeriod{item, period}
			if ys := sol.SupplierStock[key]; ys != 0 {
				supplierHolding = supplierHolding.Add(d.SupplierHoldingMoneyAt(item).Mul(decimal.NewFromFloat(ys)))
			}
			if y := sol.WarehouseStock[key]; y != 0 {
				warehouseHolding = warehouseHolding.Add(d.WarehouseHoldingMoneyAt(item).Mul(decimal.NewFromFloat(y)))
			}
		}
	}

	total := purchase.
		Add(supplierHolding).
		Add(warehouseHolding).
		Add(decimal.NewFromFloat(sol.Penalty))

	return []dto.KPILine{
		{Name: dto.KPITotalCost, Value: total},
		{Name: dto.KPITotalProcurementCost, Value: purchase},
		{Name: dto.KPISupplierHoldingCost, Value: supplierHolding},
		{Name: dto.KPIWarehouseHoldingCost, Value: warehouseHolding},
	}
}

// materialQty zeroes quantities within solver noise
func materialQty(qty float64) float64 {
	if qty <= zeroTolerance {
		return 0
	}
	return qty
}
