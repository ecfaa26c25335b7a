package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	config "demandrecon/configs"
	"demandrecon/pkg/interfaces/cli/commands"
)

func main() {
	cfg := config.LoadConfig()

	// Command line flags
	var (
		mode = flag.String("mode", "pivot", "Command to run: pivot, accuracy, waterfall")

		scenarioDir = flag.String(
			"scenario",
			"",
			"Path to scenario directory containing hierarchy.csv and series.csv",
		)
		hierarchyFile   = flag.String("hierarchy", "", "Path to hierarchy CSV file")
		seriesFile      = flag.String("series", "", "Path to series CSV file")
		definitionsFile = flag.String("definitions", "", "Path to series definitions YAML file (optional)")

		category    = flag.String("category", "", "Category to resolve (required for pivot and accuracy)")
		subcategory = flag.String("subcategory", "", "Subcategory to narrow the selection")
		subclass    = flag.String("subclass", "", "Subclass to narrow the selection")
		class       = flag.String("class", "", "Class to narrow the selection")

		product  = flag.String("product", "", "Product id for waterfall decomposition")
		customer = flag.String("customer", "", "Customer id for waterfall decomposition (optional)")
		location = flag.String("location", "", "Location id for waterfall decomposition (optional)")

		atDate       = flag.String("at-date", "", "Date for build-up waterfall (YYYY-MM-DD)")
		currentDate  = flag.String("current-date", "", "Current period for waterfall comparison")
		previousDate = flag.String("previous-date", "", "Previous period for waterfall comparison")
		compare      = flag.Bool("compare", false, "Compare two periods instead of building up from zero")

		threshold = flag.Float64("threshold", cfg.AccuracyThreshold, "Low-accuracy threshold (0-100)")
		precision = flag.Int("precision", int(cfg.WaterfallPrecision), "Waterfall rounding precision (decimal places)")
		format    = flag.String("format", "text", "Output format: text, json, csv, xlsx")
		outputDir = flag.String("output", cfg.OutputDir, "Output directory for results (optional)")
		verbose   = flag.Bool("verbose", false, "Enable verbose output")
		help      = flag.Bool("help", false, "Show help message")
	)

	flag.Parse()

	if *help {
		flag.Usage()
		os.Exit(0)
	}

	cmdConfig := commands.Config{
		ScenarioDir:     *scenarioDir,
		HierarchyFile:   *hierarchyFile,
		SeriesFile:      *seriesFile,
		DefinitionsFile: *definitionsFile,
		Category:        *category,
		Subcategory:     *subcategory,
		Subclass:        *subclass,
		Class:           *class,
		Product:         *product,
		Customer:        *customer,
		Location:        *location,
		AtDate:          *atDate,
		CurrentDate:     *currentDate,
		PreviousDate:    *previousDate,
		Compare:         *compare,
		Threshold:       *threshold,
		Precision:       int32(*precision),
		Format:          *format,
		OutputDir:       *outputDir,
		Verbose:         *verbose,
	}

	ctx := context.Background()

	var err error
	switch *mode {
	case "pivot":
		err = commands.NewPivotCommand(cmdConfig).Execute(ctx)
	case "accuracy":
		err = commands.NewAccuracyCommand(cmdConfig).Execute(ctx)
	case "waterfall":
		err = commands.NewWaterfallCommand(cmdConfig).Execute(ctx)
	default:
		err = fmt.Errorf("unknown mode %q (expected pivot, accuracy, or waterfall)", *mode)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
