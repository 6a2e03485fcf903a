package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/optiplan/procure/pkg/application/dto"
)

// Config holds configuration for output generation
type Config struct {
	Format    string
	OutputDir string
	Verbose   bool
}

// Generate creates output in the specified format
func Generate(result *dto.PlanResult, config Config) error {
	switch config.Format {
	case "text":
		return generateTextOutput(result, config)
	case "json":
		return generateJSONOutput(result, config)
	case "csv":
		return generateCSVOutput(result, config)
	default:
		return fmt.Errorf("unsupported output format: %s", config.Format)
	}
}

// generateTextOutput creates human-readable text output
func generateTextOutput(result *dto.PlanResult, config Config) error {
	fmt.Printf("📊 Procurement Plan Summary\n")
	fmt.Printf("===========================\n\n")

	fmt.Printf("Status: %s\n", result.Status)
	fmt.Printf("Objective Value: %.2f\n", result.ObjectiveValue)
	fmt.Printf("Solve Time: %v\n\n", result.SolveTime)

	if len(result.KPIs) > 0 {
		fmt.Printf("💰 Cost Breakdown:\n")
		for _, kpi := range result.KPIs {
			fmt.Printf("  %-42s %s\n", kpi.Name, kpi.Value.StringFixed(2))
		}
		fmt.Println()
	}

	if len(result.Orders) > 0 {
		fmt.Printf("📋 Purchase Orders:\n")
		fmt.Printf("%-10s %-12s %-8s %-12s %-12s %-12s\n",
			"Order ID", "Item", "Period", "Order Qty", "Unit Cost", "Order Cost")
		fmt.Printf("%-10s %-12s %-8s %-12s %-12s %-12s\n",
			"----------", "------------", "--------", "------------", "------------", "------------")

		for _, order := range result.Orders {
			fmt.Printf("%-10s %-12s %-8d %-12.2f %-12s %-12s\n",
				order.OrderID,
				order.ItemID,
				order.PeriodID,
				order.OrderQty,
				order.UnitCost.StringFixed(2),
				order.OrderCost.StringFixed(2))
		}
		fmt.Println()
	}

	if len(result.Shipments) > 0 {
		fmt.Printf("🚚 Shipments:\n")
		fmt.Printf("%-12s %-12s %-8s %-14s\n",
			"Shipment ID", "Item", "Period", "Transferred")
		fmt.Printf("%-12s %-12s %-8s %-14s\n",
			"------------", "------------", "--------", "--------------")

		for _, shipment := range result.Shipments {
			fmt.Printf("%-12s %-12s %-8d %-14.2f\n",
				shipment.ShipmentID,
				shipment.ItemID,
				shipment.PeriodID,
				shipment.TransferredQty)
		}
		fmt.Println()
	}

	if len(result.TotalInventory) > 0 {
		fmt.Printf("🏭 Site Inventory:\n")
		fmt.Printf("%-10s %-8s %-16s %-16s\n",
			"Site", "Period", "Final Inventory", "Capacity")
		fmt.Printf("%-10s %-8s %-16s %-16s\n",
			"----------", "--------", "----------------", "----------------")

		for _, row := range result.TotalInventory {
			fmt.Printf("%-10s %-8d %-16.2f %-16.0f\n",
				row.SiteID,
				row.PeriodID,
				row.FinalInventory,
				row.InventoryCapacity)
		}
		fmt.Println()
	}

	if config.OutputDir != "" {
		if err := generateCSVOutput(result, config); err != nil {
			return err
		}
	}

	return nil
}

// generateJSONOutput creates JSON output
func generateJSONOutput(result *dto.PlanResult, config Config) error {
	jsonData, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if config.OutputDir == "" {
		fmt.Println(string(jsonData))
		return nil
	}

	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	filename := filepath.Join(config.OutputDir, "plan_results.json")
	if err := os.WriteFile(filename, jsonData, 0644); err != nil {
		return fmt.Errorf("failed to write JSON file: %w", err)
	}

	if config.Verbose {
		fmt.Printf("💾 JSON results saved to: %s\n", filename)
	}

	return nil
}

// generateCSVOutput writes the six report tables as CSV files
func generateCSVOutput(result *dto.PlanResult, config Config) error {
	if config.OutputDir == "" {
		return fmt.Errorf("output directory required for CSV format")
	}

	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	tables := []struct {
		name  string
		write func(*csv.Writer) error
	}{
		{"orders.csv", func(w *csv.Writer) error { return writeOrdersCSV(result.Orders, w) }},
		{"shipments.csv", func(w *csv.Writer) error { return writeShipmentsCSV(result.Shipments, w) }},
		{"supplier_flow.csv", func(w *csv.Writer) error { return writeSupplierFlowCSV(result.SupplierFlow, w) }},
		{"warehouse_flow.csv", func(w *csv.Writer) error { return writeWarehouseFlowCSV(result.WarehouseFlow, w) }},
		{"total_inventory.csv", func(w *csv.Writer) error { return writeTotalInventoryCSV(result.TotalInventory, w) }},
		{"kpis.csv", func(w *csv.Writer) error { return writeKPIsCSV(result.KPIs, w) }},
	}

	for _, table := range tables {
		filename := filepath.Join(config.OutputDir, table.name)
		if err := writeCSVFile(filename, table.write); err != nil {
			return fmt.Errorf("failed to write %s: %w", table.name, err)
		}
		if config.Verbose {
			fmt.Printf("💾 %s\n", filename)
		}
	}

	return nil
}

func writeCSVFile(filename string, write func(*csv.Writer) error) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := write(writer); err != nil {
		return err
	}
	writer.Flush()
	return writer.Error()
}

func writeOrdersCSV(orders []dto.OrderLine, w *csv.Writer) error {
	header := []string{"order_id", "item_id", "period_id", "order_qty",
		"min_order_qty", "max_order_qty", "unit_cost", "order_cost"}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, order := range orders {
		record := []string{
			order.OrderID,
			string(order.ItemID),
			strconv.Itoa(int(order.PeriodID)),
			formatQty(order.OrderQty),
			formatQty(order.MinOrderQty),
			formatQty(order.MaxOrderQty),
			order.UnitCost.String(),
			order.OrderCost.String(),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	return nil
}

func writeShipmentsCSV(shipments []dto.ShipmentLine, w *csv.Writer) error {
	header := []string{"shipment_id", "item_id", "period_id", "transferred_qty", "min_transfer_qty"}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, shipment := range shipments {
		record := []string{
			shipment.ShipmentID,
			string(shipment.ItemID),
			strconv.Itoa(int(shipment.PeriodID)),
			formatQty(shipment.TransferredQty),
			formatQty(shipment.MinTransferQty),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	return nil
}

func writeSupplierFlowCSV(rows []dto.SupplierFlowLine, w *csv.Writer) error {
	header := []string{"item_id", "period_id", "initial_inventory", "order_qty",
		"transferred_qty", "final_inventory", "unit_holding_cost", "holding_cost"}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, row := range rows {
		record := []string{
			string(row.ItemID),
			strconv.Itoa(int(row.PeriodID)),
			formatQty(row.InitialInventory),
			formatQty(row.OrderQty),
			formatQty(row.TransferredQty),
			formatQty(row.FinalInventory),
			row.UnitHoldingCost.String(),
			row.HoldingCost.String(),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	return nil
}

func writeWarehouseFlowCSV(rows []dto.WarehouseFlowLine, w *csv.Writer) error {
	header := []string{"item_id", "period_id", "initial_inventory", "received_qty",
		"demand_qty", "final_inventory", "min_inventory", "unit_holding_cost", "holding_cost"}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, row := range rows {
		record := []string{
			string(row.ItemID),
			strconv.Itoa(int(row.PeriodID)),
			formatQty(row.InitialInventory),
			formatQty(row.ReceivedQty),
			formatQty(row.DemandQty),
			formatQty(row.FinalInventory),
			formatQty(row.MinInventory),
			row.UnitHoldingCost.String(),
			row.HoldingCost.String(),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	return nil
}

func writeTotalInventoryCSV(rows []dto.TotalInventoryLine, w *csv.Writer) error {
	header := []string{"site_id", "period_id", "final_inventory", "inventory_capacity"}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, row := range rows {
		record := []string{
			string(row.SiteID),
			strconv.Itoa(int(row.PeriodID)),
			formatQty(row.FinalInventory),
			formatQty(row.InventoryCapacity),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	return nil
}

func writeKPIsCSV(kpis []dto.KPILine, w *csv.Writer) error {
	if err := w.Write([]string{"kpi", "value"}); err != nil {
		return err
	}
	for _, kpi := range kpis {
		if err := w.Write([]string{kpi.Name, kpi.Value.String()}); err != nil {
			return err
		}
	}
	return nil
}

func formatQty(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
