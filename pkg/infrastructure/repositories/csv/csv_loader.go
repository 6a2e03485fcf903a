package csv

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/optiplan/procure/pkg/domain/entities"
)

// Loader handles loading planning data from CSV files
type Loader struct{}

// NewLoader creates a new CSV loader
func NewLoader() *Loader {
	return &Loader{}
}

// Standard file names of a scenario directory
const (
	ItemsFile      = "items.csv"
	PeriodsFile    = "time_periods.csv"
	SitesFile      = "sites.csv"
	CostsFile      = "procurement_costs.csv"
	DemandFile     = "demand.csv"
	InventoryFile  = "inventory.csv"
	ParametersFile = "parameters.csv"
)

// LoadDataset loads all input tables from a scenario directory and returns
// an unvalidated dataset. parameters.csv is optional; absent parameters
// keep their defaults.
func (l *Loader) LoadDataset(dir string) (*entities.Dataset, error) {
	items, err := l.LoadItems(filepath.Join(dir, ItemsFile))
	if err != nil {
		return nil, err
	}

	periods, err := l.LoadPeriods(filepath.Join(dir, PeriodsFile))
	if err != nil {
		return nil, err
	}

	sites, err := l.LoadSites(filepath.Join(dir, SitesFile))
	if err != nil {
		return nil, err
	}

	costs, err := l.LoadCosts(filepath.Join(dir, CostsFile))
	if err != nil {
		return nil, err
	}

	demands, err := l.LoadDemands(filepath.Join(dir, DemandFile))
	if err != nil {
		return nil, err
	}

	inventory, err := l.LoadInventory(filepath.Join(dir, InventoryFile))
	if err != nil {
		return nil, err
	}

	parameters := entities.DefaultParameters()
	parametersPath := filepath.Join(dir, ParametersFile)
	if _, err := os.Stat(parametersPath); err == nil {
		parameters, err = l.LoadParameters(parametersPath)
		if err != nil {
			return nil, err
		}
	}

	return &entities.Dataset{
		Items:      items,
		Periods:    periods,
		Sites:      sites,
		Costs:      costs,
		Demands:    demands,
		Inventory:  inventory,
		Parameters: parameters,
	}, nil
}

// LoadItems loads items from a CSV file
func (l *Loader) LoadItems(filename string) ([]entities.Item, error) {
	records, err := readTable(filename, "items",
		[]string{"item_id", "item_name", "min_order_qty", "max_order_qty", "min_transfer_qty"})
	if err != nil {
		return nil, err
	}

	var items []entities.Item
	for i, record := range records {
		item, err := parseItem(record)
		if err != nil {
			return nil, fmt.Errorf("items CSV row %d: %w", i+2, err)
		}
		items = append(items, item)
	}

	return items, nil
}

// LoadPeriods loads time periods from a CSV file
func (l *Loader) LoadPeriods(filename string) ([]entities.Period, error) {
	records, err := readTable(filename, "time periods",
		[]string{"period_id", "start_date", "end_date"})
	if err != nil {
		return nil, err
	}

	var periods []entities.Period
	for i, record := range records {
		period, err := parsePeriod(record)
		if err != nil {
			return nil, fmt.Errorf("time periods CSV row %d: %w", i+2, err)
		}
		periods = append(periods, period)
	}

	return periods, nil
}

// LoadSites loads sites from a CSV file
func (l *Loader) LoadSites(filename string) ([]entities.Site, error) {
	records, err := readTable(filename, "sites",
		[]string{"site_id", "site_name", "site_type"})
	if err != nil {
		return nil, err
	}

	var sites []entities.Site
	for i, record := range records {
		siteType, err := entities.ParseSiteType(strings.TrimSpace(record[2]))
		if err != nil {
			return nil, fmt.Errorf("sites CSV row %d: %w", i+2, err)
		}
		sites = append(sites, entities.Site{
			ID:   entities.SiteID(record[0]),
			Name: record[1],
			Type: siteType,
		})
	}

	return sites, nil
}

// LoadCosts loads procurement costs from a CSV file
func (l *Loader) LoadCosts(filename string) ([]entities.ProcurementCost, error) {
	records, err := readTable(filename, "procurement costs",
		[]string{"item_id", "period_id", "unit_cost"})
	if err != nil {
		return nil, err
	}

	var costs []entities.ProcurementCost
	for i, record := range records {
		cost, err := parseCost(record)
		if err != nil {
			return nil, fmt.Errorf("procurement costs CSV row %d: %w", i+2, err)
		}
		costs = append(costs, cost)
	}

	return costs, nil
}

// LoadDemands loads demand records from a CSV file
func (l *Loader) LoadDemands(filename string) ([]entities.DemandRecord, error) {
	records, err := readTable(filename, "demand",
		[]string{"item_id", "period_id", "demand_qty", "min_inventory"})
	if err != nil {
		return nil, err
	}

	var demands []entities.DemandRecord
	for i, record := range records {
		demand, err := parseDemand(record)
		if err != nil {
			return nil, fmt.Errorf("demand CSV row %d: %w", i+2, err)
		}
		demands = append(demands, demand)
	}

	return demands, nil
}

// LoadInventory loads opening inventory positions from a CSV file
func (l *Loader) LoadInventory(filename string) ([]entities.InventoryPosition, error) {
	records, err := readTable(filename, "inventory",
		[]string{"item_id", "site_id", "opening_inventory", "unit_holding_cost"})
	if err != nil {
		return nil, err
	}

	var positions []entities.InventoryPosition
	for i, record := range records {
		position, err := parseInventoryPosition(record)
		if err != nil {
			return nil, fmt.Errorf("inventory CSV row %d: %w", i+2, err)
		}
		positions = append(positions, position)
	}

	return positions, nil
}

// LoadParameters loads scalar parameters from a name/value CSV file.
// Parameters not present in the file keep their default values.
func (l *Loader) LoadParameters(filename string) (entities.Parameters, error) {
	parameters := entities.DefaultParameters()

	records, err := readTable(filename, "parameters", []string{"parameter", "value"})
	if err != nil {
		return parameters, err
	}

	for i, record := range records {
		name := strings.TrimSpace(record[0])
		value, err := strconv.ParseFloat(strings.TrimSpace(record[1]), 64)
		if err != nil {
			return parameters, fmt.Errorf("parameters CSV row %d: invalid value for %q: %s", i+2, name, record[1])
		}

		switch name {
		case "Max Aging Time":
			parameters.MaxAgingTime = int(value)
		case "Supplier Expedition Capacity":
			parameters.SupplierExpeditionCapacity = value
		case "Warehouse Receiving Capacity":
			parameters.WarehouseReceivingCapacity = value
		case "Supplier Inventory Capacity":
			parameters.SupplierInventoryCapacity = value
		case "Warehouse Inventory Capacity":
			parameters.WarehouseInventoryCapacity = value
		default:
			return parameters, fmt.Errorf("parameters CSV row %d: unknown parameter %q", i+2, name)
		}
	}

	return parameters, nil
}

// readTable opens a CSV file, validates its header against the expected
// column names, checks per-row column counts and returns the data rows.
func readTable(filename, table string, expectedHeader []string) ([][]string, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s file %s: %w", table, filename, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // column counts are checked per row below
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s CSV: %w", table, err)
	}

	if len(records) < 2 {
		return nil, fmt.Errorf("%s CSV must have header and at least one data row", table)
	}

	header := records[0]
	if !validateHeader(header, expectedHeader) {
		return nil, fmt.Errorf("%s CSV header mismatch. Expected: %v, Got: %v", table, expectedHeader, header)
	}

	for i, record := range records[1:] {
		if len(record) != len(expectedHeader) {
			return nil, fmt.Errorf("%s CSV row %d: expected %d columns, got %d", table, i+2, len(expectedHeader), len(record))
		}
	}

	return records[1:], nil
}

func validateHeader(actual, expected []string) bool {
	if len(actual) != len(expected) {
		return false
	}

	for i, col := range expected {
		if strings.ToLower(strings.TrimSpace(actual[i])) != col {
			return false
		}
	}

	return true
}

func parseItem(record []string) (entities.Item, error) {
	minOrderQty, err := strconv.ParseFloat(record[2], 64)
	if err != nil {
		return entities.Item{}, fmt.Errorf("invalid min_order_qty: %s", record[2])
	}

	maxOrderQty, err := strconv.ParseFloat(record[3], 64)
	if err != nil {
		return entities.Item{}, fmt.Errorf("invalid max_order_qty: %s", record[3])
	}

	minTransferQty, err := strconv.ParseFloat(record[4], 64)
	if err != nil {
		return entities.Item{}, fmt.Errorf("invalid min_transfer_qty: %s", record[4])
	}

	return entities.Item{
		ID:             entities.ItemID(record[0]),
		Name:           record[1],
		MinOrderQty:    minOrderQty,
		MaxOrderQty:    maxOrderQty,
		MinTransferQty: minTransferQty,
	}, nil
}

func parsePeriod(record []string) (entities.Period, error) {
	id, err := strconv.Atoi(record[0])
	if err != nil {
		return entities.Period{}, fmt.Errorf("invalid period_id: %s", record[0])
	}

	startDate, err := time.Parse("2006-01-02", record[1])
	if err != nil {
		return entities.Period{}, fmt.Errorf("invalid start_date format: %s (expected YYYY-MM-DD)", record[1])
	}

	endDate, err := time.Parse("2006-01-02", record[2])
	if err != nil {
		return entities.Period{}, fmt.Errorf("invalid end_date format: %s (expected YYYY-MM-DD)", record[2])
	}

	return entities.Period{
		ID:        entities.PeriodID(id),
		StartDate: startDate,
		EndDate:   endDate,
	}, nil
}

func parseCost(record []string) (entities.ProcurementCost, error) {
	periodID, err := strconv.Atoi(record[1])
	if err != nil {
		return entities.ProcurementCost{}, fmt.Errorf("invalid period_id: %s", record[1])
	}

	unitCost, err := decimal.NewFromString(record[2])
	if err != nil {
		return entities.ProcurementCost{}, fmt.Errorf("invalid unit_cost: %s", record[2])
	}

	return entities.ProcurementCost{
		ItemID:   entities.ItemID(record[0]),
		PeriodID: entities.PeriodID(periodID),
		UnitCost: unitCost,
	}, nil
}

func parseDemand(record []string) (entities.DemandRecord, error) {
	periodID, err := strconv.Atoi(record[1])
	if err != nil {
		return entities.DemandRecord{}, fmt.Errorf("invalid period_id: %s", record[1])
	}

	quantity, err := strconv.ParseFloat(record[2], 64)
	if err != nil {
		return entities.DemandRecord{}, fmt.Errorf("invalid demand_qty: %s", record[2])
	}

	minInventory, err := strconv.ParseFloat(record[3], 64)
	if err != nil {
		return entities.DemandRecord{}, fmt.Errorf("invalid min_inventory: %s", record[3])
	}

	return entities.DemandRecord{
		ItemID:       entities.ItemID(record[0]),
		PeriodID:     entities.PeriodID(periodID),
		Quantity:     quantity,
		MinInventory: minInventory,
	}, nil
}

func parseInventoryPosition(record []string) (entities.InventoryPosition, error) {
	openingInventory, err := strconv.ParseFloat(record[2], 64)
	if err != nil {
		return entities.InventoryPosition{}, fmt.Errorf("invalid opening_inventory: %s", record[2])
	}

	unitHoldingCost, err := decimal.NewFromString(record[3])
	if err != nil {
		return entities.InventoryPosition{}, fmt.Errorf("invalid unit_holding_cost: %s", record[3])
	}

	return entities.InventoryPosition{
		ItemID:           entities.ItemID(record[0]),
		SiteID:           entities.SiteID(record[1]),
		OpeningInventory: openingInventory,
		UnitHoldingCost:  unitHoldingCost,
	}, nil
}
