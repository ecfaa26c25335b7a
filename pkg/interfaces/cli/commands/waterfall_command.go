package commands

import (
	"context"
	"fmt"

	"demandrecon/pkg/application/services/orchestration"
	"demandrecon/pkg/domain/entities"
	"demandrecon/pkg/interfaces/cli/output"
)

// WaterfallCommand decomposes one entity's forecast, either building it
// up from zero at a date or comparing two periods
type WaterfallCommand struct {
	config Config
}

// NewWaterfallCommand creates a new waterfall command with the given
// configuration
func NewWaterfallCommand(config Config) *WaterfallCommand {
	return &WaterfallCommand{config: config}
}

// Execute runs the waterfall command
func (c *WaterfallCommand) Execute(ctx context.Context) error {
	if c.config.Product == "" {
		return fmt.Errorf("waterfall requires -product")
	}
	if c.config.Compare {
		if c.config.CurrentDate == "" || c.config.PreviousDate == "" {
			return fmt.Errorf("compare mode requires -current-date and -previous-date")
		}
	} else if c.config.AtDate == "" {
		return fmt.Errorf("build-up mode requires -at-date")
	}

	hierarchyRepo, seriesRepo, _, err := loadScenario(c.config)
	if err != nil {
		return err
	}

	orchestrator := orchestration.NewReviewOrchestrator(seriesRepo, hierarchyRepo, nil)
	batch, err := orchestrator.RunWaterfall(ctx, orchestration.WaterfallRequest{
		Entities: []entities.EntityKey{{
			ProductID:  entities.ProductID(c.config.Product),
			CustomerID: entities.CustomerID(c.config.Customer),
			LocationID: entities.LocationID(c.config.Location),
		}},
		Compare:      c.config.Compare,
		AtDate:       c.config.AtDate,
		CurrentDate:  c.config.CurrentDate,
		PreviousDate: c.config.PreviousDate,
		Precision:    c.config.Precision,
	})
	if err != nil {
		return fmt.Errorf("failed to run waterfall: %w", err)
	}

	return output.WriteWaterfall(batch, output.Config{
		Format:    c.config.Format,
		OutputDir: c.config.OutputDir,
		Verbose:   c.config.Verbose,
	})
}
