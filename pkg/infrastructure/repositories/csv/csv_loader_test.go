package csv

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/optiplan/procure/pkg/domain/entities"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
}

func writeScenario(t *testing.T, dir string) {
	t.Helper()
	writeFile(t, dir, ItemsFile,
		"item_id,item_name,min_order_qty,max_order_qty,min_transfer_qty\n"+
			"A,Widget,5,100,2\n"+
			"B,Gadget,0,50,0\n")
	writeFile(t, dir, PeriodsFile,
		"period_id,start_date,end_date\n"+
			"1,2026-01-05,2026-01-11\n"+
			"2,2026-01-12,2026-01-18\n")
	writeFile(t, dir, SitesFile,
		"site_id,site_name,site_type\n"+
			"S1,Main Supplier,Supplier\n"+
			"W1,Central Warehouse,Warehouse\n")
	writeFile(t, dir, CostsFile,
		"item_id,period_id,unit_cost\n"+
			"A,1,2.50\n"+
			"A,2,2.75\n"+
			"B,1,1.00\n"+
			"B,2,1.00\n")
	writeFile(t, dir, DemandFile,
		"item_id,period_id,demand_qty,min_inventory\n"+
			"A,1,10,0\n"+
			"A,2,20,5\n"+
			"B,2,8,0\n")
	writeFile(t, dir, InventoryFile,
		"item_id,site_id,opening_inventory,unit_holding_cost\n"+
			"A,S1,0,0.05\n"+
			"A,W1,12,0.10\n"+
			"B,S1,0,0.05\n"+
			"B,W1,0,0.10\n")
}

func TestLoadDataset(t *testing.T) {
	dir := t.TempDir()
	writeScenario(t, dir)
	writeFile(t, dir, ParametersFile,
		"parameter,value\n"+
			"Max Aging Time,3\n"+
			"Supplier Expedition Capacity,500\n")

	dataset, err := NewLoader().LoadDataset(dir)
	if err != nil {
		t.Fatalf("LoadDataset failed: %v", err)
	}

	if len(dataset.Items) != 2 || len(dataset.Periods) != 2 || len(dataset.Sites) != 2 {
		t.Errorf("Table sizes = %d items, %d periods, %d sites, want 2 each",
			len(dataset.Items), len(dataset.Periods), len(dataset.Sites))
	}
	if len(dataset.Costs) != 4 || len(dataset.Demands) != 3 || len(dataset.Inventory) != 4 {
		t.Errorf("Table sizes = %d costs, %d demands, %d positions, want 4/3/4",
			len(dataset.Costs), len(dataset.Demands), len(dataset.Inventory))
	}

	item := dataset.Items[0]
	if item.ID != "A" || item.MinOrderQty != 5 || item.MaxOrderQty != 100 || item.MinTransferQty != 2 {
		t.Errorf("Item A = %+v, want bounds 5/100/2", item)
	}

	if dataset.Sites[0].Type != entities.Supplier {
		t.Errorf("Site S1 type = %v, want Supplier", dataset.Sites[0].Type)
	}

	if !dataset.Costs[1].UnitCost.Equal(decimal.RequireFromString("2.75")) {
		t.Errorf("Cost A/2 = %s, want 2.75", dataset.Costs[1].UnitCost)
	}

	if dataset.Demands[1].MinInventory != 5 {
		t.Errorf("Demand A/2 min inventory = %v, want 5", dataset.Demands[1].MinInventory)
	}

	// overridden parameters take effect, the rest keep defaults
	if dataset.Parameters.MaxAgingTime != 3 {
		t.Errorf("MaxAgingTime = %d, want 3", dataset.Parameters.MaxAgingTime)
	}
	if dataset.Parameters.SupplierExpeditionCapacity != 500 {
		t.Errorf("SupplierExpeditionCapacity = %v, want 500", dataset.Parameters.SupplierExpeditionCapacity)
	}
	if dataset.Parameters.WarehouseReceivingCapacity != entities.DefaultWarehouseReceivingCapacity {
		t.Errorf("WarehouseReceivingCapacity = %v, want default %v",
			dataset.Parameters.WarehouseReceivingCapacity, entities.DefaultWarehouseReceivingCapacity)
	}

	if err := dataset.Validate(); err != nil {
		t.Errorf("Loaded dataset failed validation: %v", err)
	}
}

func TestLoadDataset_MissingParametersFileUsesDefaults(t *testing.T) {
	dir := t.TempDir()
	writeScenario(t, dir)

	dataset, err := NewLoader().LoadDataset(dir)
	if err != nil {
		t.Fatalf("LoadDataset failed: %v", err)
	}

	if dataset.Parameters != entities.DefaultParameters() {
		t.Errorf("Parameters = %+v, want defaults", dataset.Parameters)
	}
}

func TestLoadDataset_MissingRequiredFile(t *testing.T) {
	dir := t.TempDir()
	writeScenario(t, dir)
	if err := os.Remove(filepath.Join(dir, DemandFile)); err != nil {
		t.Fatalf("Failed to remove demand file: %v", err)
	}

	_, err := NewLoader().LoadDataset(dir)
	if err == nil {
		t.Fatal("Expected error for missing demand file")
	}
	if !strings.Contains(err.Error(), "demand") {
		t.Errorf("Error should name the missing table, got: %v", err)
	}
}

func TestLoadItems_HeaderMismatch(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ItemsFile,
		"item_id,name,min_order_qty,max_order_qty,min_transfer_qty\n"+
			"A,Widget,5,100,2\n")

	_, err := NewLoader().LoadItems(filepath.Join(dir, ItemsFile))
	if err == nil {
		t.Fatal("Expected header mismatch error")
	}
	if !strings.Contains(err.Error(), "header mismatch") {
		t.Errorf("Expected header mismatch error, got: %v", err)
	}
}

func TestLoadItems_RowErrors(t *testing.T) {
	tests := []struct {
		name    string
		row     string
		wantErr string
	}{
		{
			name:    "bad min order qty",
			row:     "A,Widget,five,100,2",
			wantErr: "row 2: invalid min_order_qty",
		},
		{
			name:    "bad max order qty",
			row:     "A,Widget,5,?,2",
			wantErr: "row 2: invalid max_order_qty",
		},
		{
			name:    "bad min transfer qty",
			row:     "A,Widget,5,100,x",
			wantErr: "row 2: invalid min_transfer_qty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeFile(t, dir, ItemsFile,
				"item_id,item_name,min_order_qty,max_order_qty,min_transfer_qty\n"+tt.row+"\n")

			_, err := NewLoader().LoadItems(filepath.Join(dir, ItemsFile))
			if err == nil {
				t.Fatal("Expected parse error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Error = %v, want substring %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadPeriods_BadDate(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, PeriodsFile,
		"period_id,start_date,end_date\n"+
			"1,2026-01-05,2026-01-11\n"+
			"2,01/12/2026,2026-01-18\n")

	_, err := NewLoader().LoadPeriods(filepath.Join(dir, PeriodsFile))
	if err == nil {
		t.Fatal("Expected date parse error")
	}
	if !strings.Contains(err.Error(), "row 3") {
		t.Errorf("Error should point at row 3, got: %v", err)
	}
}

func TestLoadSites_UnknownType(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, SitesFile,
		"site_id,site_name,site_type\n"+
			"D1,Depot,Depot\n")

	_, err := NewLoader().LoadSites(filepath.Join(dir, SitesFile))
	if err == nil {
		t.Fatal("Expected site type error")
	}
	if !strings.Contains(err.Error(), "unknown site type") {
		t.Errorf("Error = %v, want unknown site type", err)
	}
}

func TestLoadParameters_UnknownName(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ParametersFile,
		"parameter,value\n"+
			"Max Aging Time,3\n"+
			"Truck Capacity,40\n")

	_, err := NewLoader().LoadParameters(filepath.Join(dir, ParametersFile))
	if err == nil {
		t.Fatal("Expected unknown parameter error")
	}
	if !strings.Contains(err.Error(), "unknown parameter") {
		t.Errorf("Error = %v, want unknown parameter", err)
	}
}

func TestLoadCosts_ColumnCount(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, CostsFile,
		"item_id,period_id,unit_cost\n"+
			"A,1\n")

	_, err := NewLoader().LoadCosts(filepath.Join(dir, CostsFile))
	if err == nil {
		t.Fatal("Expected column count error")
	}
	if !strings.Contains(err.Error(), "expected 3 columns") {
		t.Errorf("Error = %v, want column count mismatch", err)
	}
}
