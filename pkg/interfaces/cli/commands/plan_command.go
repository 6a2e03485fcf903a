package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/optiplan/procure/pkg/application/services/planner"
	"github.com/optiplan/procure/pkg/domain/entities"
	"github.com/optiplan/procure/pkg/infrastructure/repositories/csv"
	"github.com/optiplan/procure/pkg/interfaces/cli/output"
)

// Config holds configuration for the plan command
type Config struct {
	ScenarioDir    string
	ItemsFile      string
	PeriodsFile    string
	SitesFile      string
	CostsFile      string
	DemandFile     string
	InventoryFile  string
	ParametersFile string
	OutputDir      string
	Format         string
	TimeLimit      time.Duration
	RelativeGap    float64
	HoldingCostCap bool
	Verbose        bool
	Help           bool
}

// PlanCommand handles the main planning execution logic
type PlanCommand struct {
	config Config
}

// NewPlanCommand creates a new plan command with the given configuration
func NewPlanCommand(config Config) *PlanCommand {
	return &PlanCommand{
		config: config,
	}
}

// Execute runs the plan command
func (c *PlanCommand) Execute(ctx context.Context) error {
	if c.config.Help {
		c.showHelp()
		return nil
	}

	if err := c.validateInputs(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	files, err := c.resolveInputFiles()
	if err != nil {
		return fmt.Errorf("failed to resolve input files: %w", err)
	}

	if c.config.Verbose {
		fmt.Println("📂 Loading scenario from CSV files...")
	}

	dataset, err := c.loadDataset(files)
	if err != nil {
		return err
	}

	if err := dataset.Validate(); err != nil {
		return fmt.Errorf("invalid scenario: %w", err)
	}

	if c.config.Verbose {
		fmt.Printf("✅ Scenario loaded:\n")
		fmt.Printf("  Items: %d\n", len(dataset.Items))
		fmt.Printf("  Periods: %d\n", len(dataset.Periods))
		fmt.Printf("  Sites: %d\n", len(dataset.Sites))
		fmt.Printf("  Demand Records: %d\n", len(dataset.Demands))
		fmt.Println()
	}

	plannerConfig := planner.Config{
		TimeLimit:      c.config.TimeLimit,
		RelativeGap:    c.config.RelativeGap,
		HoldingCostCap: c.config.HoldingCostCap,
		Verbose:        c.config.Verbose,
	}
	service := planner.New(plannerConfig)
	if c.config.Verbose {
		logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
			With().Timestamp().Logger()
		service = service.WithLogger(logger)
	}

	if c.config.Verbose {
		fmt.Println("🔄 Solving procurement plan...")
	}

	result, err := service.Plan(ctx, dataset)
	if err != nil {
		return fmt.Errorf("error solving plan: %w", err)
	}

	if c.config.Verbose {
		fmt.Printf("✅ Solved in %v (status: %s)\n\n", result.SolveTime, result.Status)
	}

	outputConfig := output.Config{
		Format:    c.config.Format,
		OutputDir: c.config.OutputDir,
		Verbose:   c.config.Verbose,
	}

	if err := output.Generate(result, outputConfig); err != nil {
		return fmt.Errorf("error generating output: %w", err)
	}

	if c.config.Verbose {
		fmt.Println("🏁 Planning complete!")
	}

	return nil
}

// validateInputs validates the command configuration
func (c *PlanCommand) validateInputs() error {
	if c.config.ScenarioDir == "" &&
		(c.config.ItemsFile == "" || c.config.PeriodsFile == "" ||
			c.config.SitesFile == "" || c.config.CostsFile == "" ||
			c.config.DemandFile == "" || c.config.InventoryFile == "") {
		return fmt.Errorf("must specify either -scenario directory or individual CSV files")
	}
	return nil
}

// resolveInputFiles determines the actual file paths to use. Individual
// file flags override the scenario directory defaults; parameters.csv is
// optional either way.
func (c *PlanCommand) resolveInputFiles() (map[string]string, error) {
	files := map[string]string{
		"Items":      c.config.ItemsFile,
		"Periods":    c.config.PeriodsFile,
		"Sites":      c.config.SitesFile,
		"Costs":      c.config.CostsFile,
		"Demand":     c.config.DemandFile,
		"Inventory":  c.config.InventoryFile,
		"Parameters": c.config.ParametersFile,
	}

	if c.config.ScenarioDir != "" {
		defaults := map[string]string{
			"Items":      csv.ItemsFile,
			"Periods":    csv.PeriodsFile,
			"Sites":      csv.SitesFile,
			"Costs":      csv.CostsFile,
			"Demand":     csv.DemandFile,
			"Inventory":  csv.InventoryFile,
			"Parameters": csv.ParametersFile,
		}
		for name, base := range defaults {
			if files[name] == "" {
				files[name] = filepath.Join(c.config.ScenarioDir, base)
			}
		}
	}

	for name, path := range files {
		if name == "Parameters" {
			continue
		}
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return nil, fmt.Errorf("%s file not found: %s", name, path)
		}
	}

	return files, nil
}

// loadDataset loads all resolved input files into a dataset
func (c *PlanCommand) loadDataset(files map[string]string) (*entities.Dataset, error) {
	loader := csv.NewLoader()

	items, err := loader.LoadItems(files["Items"])
	if err != nil {
		return nil, fmt.Errorf("error loading items: %w", err)
	}

	periods, err := loader.LoadPeriods(files["Periods"])
	if err != nil {
		return nil, fmt.Errorf("error loading time periods: %w", err)
	}

	sites, err := loader.LoadSites(files["Sites"])
	if err != nil {
		return nil, fmt.Errorf("error loading sites: %w", err)
	}

	costs, err := loader.LoadCosts(files["Costs"])
	if err != nil {
		return nil, fmt.Errorf("error loading procurement costs: %w", err)
	}

	demands, err := loader.LoadDemands(files["Demand"])
	if err != nil {
		return nil, fmt.Errorf("error loading demand: %w", err)
	}

	inventory, err := loader.LoadInventory(files["Inventory"])
	if err != nil {
		return nil, fmt.Errorf("error loading inventory: %w", err)
	}

	parameters := entities.DefaultParameters()
	if path := files["Parameters"]; path != "" {
		if _, err := os.Stat(path); err == nil {
			parameters, err = loader.LoadParameters(path)
			if err != nil {
				return nil, fmt.Errorf("error loading parameters: %w", err)
			}
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

func (c *PlanCommand) showHelp() {
	fmt.Printf(`Procure CLI - Multi-Period Procurement and Transfer Planning

USAGE:
    procure -scenario <directory>              # Use scenario directory with CSV files
    procure -items <file> -periods <file> ...  # Use individual CSV files

OPTIONS:
    -scenario <dir>     Path to scenario directory containing CSV files
    -items <file>       Path to items CSV file
    -periods <file>     Path to time periods CSV file
    -sites <file>       Path to sites CSV file
    -costs <file>       Path to procurement costs CSV file
    -demand <file>      Path to demand CSV file
    -inventory <file>   Path to inventory CSV file
    -parameters <file>  Path to parameters CSV file (optional)
    -output <dir>       Output directory for result tables (optional)
    -format <fmt>       Output format: text, json, csv (default: text)
    -time-limit <dur>   Solver time limit (default: 10m)
    -gap <float>        Relative optimality gap (default: 0.01)
    -holding-cost-cap   Enable aggregate holding cost caps per echelon
    -verbose            Enable verbose output
    -help               Show this help message

SCENARIO DIRECTORY STRUCTURE:
    scenario_name/
    ├── items.csv               # Item master data with order/transfer bounds
    ├── time_periods.csv        # Planning horizon buckets
    ├── sites.csv               # Supplier and warehouse sites
    ├── procurement_costs.csv   # Unit purchase cost per item and period
    ├── demand.csv              # Warehouse demand and minimum inventory
    ├── inventory.csv           # Opening inventory and holding costs
    └── parameters.csv          # Scalar limits (optional, defaults applied)

CSV FILE FORMATS:

items.csv:
    item_id,item_name,min_order_qty,max_order_qty,min_transfer_qty
    A,Widget,5,100,2

time_periods.csv:
    period_id,start_date,end_date
    1,2026-01-05,2026-01-11

sites.csv:
    site_id,site_name,site_type
    S1,Main Supplier,Supplier
    W1,Central Warehouse,Warehouse

procurement_costs.csv:
    item_id,period_id,unit_cost
    A,1,2.50

demand.csv:
    item_id,period_id,demand_qty,min_inventory
    A,1,10,0

inventory.csv:
    item_id,site_id,opening_inventory,unit_holding_cost
    A,W1,12,0.10

parameters.csv:
    parameter,value
    Max Aging Time,7
    Supplier Expedition Capacity,6000
    Warehouse Receiving Capacity,20
    Supplier Inventory Capacity,1000000
    Warehouse Inventory Capacity,550000

EXAMPLES:
    procure -scenario examples/basic_scenario
    procure -scenario scenario/ -output results/ -format csv
    procure -scenario scenario/ -demand stress_demand.csv -verbose
    procure -scenario scenario/ -time-limit 2m -gap 0.05
`)
}
