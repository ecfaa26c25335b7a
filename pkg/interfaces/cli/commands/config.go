package commands

import (
	"fmt"
	"os"
	"path/filepath"

	config "demandrecon/configs"
	"demandrecon/pkg/domain/entities"
	"demandrecon/pkg/infrastructure/repositories/csv"
	"demandrecon/pkg/infrastructure/repositories/memory"
)

// Config holds configuration shared by the review commands
type Config struct {
	ScenarioDir     string
	HierarchyFile   string
	SeriesFile      string
	DefinitionsFile string

	Category    string
	Subcategory string
	Subclass    string
	Class       string

	Product  string
	Customer string
	Location string

	AtDate       string
	CurrentDate  string
	PreviousDate string
	Compare      bool

	Threshold float64
	Precision int32
	Format    string
	OutputDir string
	Verbose   bool
	Help      bool
}

// resolveInputFiles determines the scenario files from the scenario
// directory or explicit flags, explicit flags winning
func (c *Config) resolveInputFiles() (map[string]string, error) {
	files := map[string]string{
		"Hierarchy": c.HierarchyFile,
		"Series":    c.SeriesFile,
	}

	if c.ScenarioDir != "" {
		defaults := map[string]string{
			"Hierarchy": "hierarchy.csv",
			"Series":    "series.csv",
		}
		for name, base := range defaults {
			if files[name] == "" {
				files[name] = filepath.Join(c.ScenarioDir, base)
			}
		}
	}

	for name, path := range files {
		if path == "" {
			return nil, fmt.Errorf("%s file not specified (use -scenario or the explicit file flag)", name)
		}
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("%s file not found: %s", name, path)
		}
	}

	return files, nil
}

// loadScenario loads the CSV scenario into in-memory repositories along
// with the series definitions
func loadScenario(c Config) (*memory.HierarchyRepository, *memory.SeriesRepository, entities.SeriesDefinitions, error) {
	files, err := c.resolveInputFiles()
	if err != nil {
		return nil, nil, nil, err
	}

	if c.Verbose {
		fmt.Println("📂 Loading scenario...")
	}

	csvLoader := csv.NewLoader()

	snapshot, err := csvLoader.LoadHierarchy(files["Hierarchy"])
	if err != nil {
		return nil, nil, nil, fmt.Errorf("error loading hierarchy: %w", err)
	}

	points, err := csvLoader.LoadSeries(files["Series"])
	if err != nil {
		return nil, nil, nil, fmt.Errorf("error loading series: %w", err)
	}

	defs, err := config.LoadSeriesDefinitions(c.DefinitionsFile)
	if err != nil {
		return nil, nil, nil, err
	}

	hierarchyRepo := memory.NewHierarchyRepository()
	if err := hierarchyRepo.LoadSnapshot(snapshot); err != nil {
		return nil, nil, nil, err
	}
	seriesRepo := memory.NewSeriesRepository()
	if err := seriesRepo.LoadPoints(points); err != nil {
		return nil, nil, nil, err
	}

	if c.Verbose {
		fmt.Printf("✅ Scenario loaded: %d hierarchy nodes, %d series rows\n\n", snapshot.Len(), len(points))
	}

	return hierarchyRepo, seriesRepo, defs, nil
}
