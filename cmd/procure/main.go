package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/optiplan/procure/pkg/interfaces/cli/commands"
)

func main() {
	// Command line flags
	var (
		scenarioDir = flag.String(
			"scenario",
			"",
			"Path to scenario directory containing CSV files",
		)
		itemsFile      = flag.String("items", "", "Path to items CSV file")
		periodsFile    = flag.String("periods", "", "Path to time periods CSV file")
		sitesFile      = flag.String("sites", "", "Path to sites CSV file")
		costsFile      = flag.String("costs", "", "Path to procurement costs CSV file")
		demandFile     = flag.String("demand", "", "Path to demand CSV file")
		inventoryFile  = flag.String("inventory", "", "Path to inventory CSV file")
		parametersFile = flag.String("parameters", "", "Path to parameters CSV file")
		outputDir      = flag.String("output", "", "Output directory for results (optional)")
		format         = flag.String("format", "text", "Output format: text, json, csv")
		timeLimit      = flag.Duration("time-limit", 10*time.Minute, "Solver time limit")
		relativeGap    = flag.Float64("gap", 0.01, "Relative optimality gap")
		holdingCostCap = flag.Bool("holding-cost-cap", false, "Enable aggregate holding cost caps")
		verbose        = flag.Bool("verbose", false, "Enable verbose output")
		help           = flag.Bool("help", false, "Show help message")
	)

	flag.Parse()

	// Create command configuration
	config := commands.Config{
		ScenarioDir:    *scenarioDir,
		ItemsFile:      *itemsFile,
		PeriodsFile:    *periodsFile,
		SitesFile:      *sitesFile,
		CostsFile:      *costsFile,
		DemandFile:     *demandFile,
		InventoryFile:  *inventoryFile,
		ParametersFile: *parametersFile,
		OutputDir:      *outputDir,
		Format:         *format,
		TimeLimit:      *timeLimit,
		RelativeGap:    *relativeGap,
		HoldingCostCap: *holdingCostCap,
		Verbose:        *verbose,
		Help:           *help,
	}

	// Create and execute command
	cmd := commands.NewPlanCommand(config)
	ctx := context.Background()

	if err := cmd.Execute(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
