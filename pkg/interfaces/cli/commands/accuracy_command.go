package commands

import (
	"context"
	"fmt"

	"demandrecon/pkg/application/services/hierarchy"
	"demandrecon/pkg/application/services/orchestration"
	"demandrecon/pkg/interfaces/cli/output"
)

// AccuracyCommand scores forecast accuracy for every product under a
// selection
type AccuracyCommand struct {
	config Config
}

// NewAccuracyCommand creates a new accuracy command with the given
// configuration
func NewAccuracyCommand(config Config) *AccuracyCommand {
	return &AccuracyCommand{config: config}
}

// Execute runs the accuracy command
func (c *AccuracyCommand) Execute(ctx context.Context) error {
	if c.config.Category == "" {
		return fmt.Errorf("accuracy requires -category")
	}

	hierarchyRepo, seriesRepo, _, err := loadScenario(c.config)
	if err != nil {
		return err
	}

	orchestrator := orchestration.NewReviewOrchestrator(seriesRepo, hierarchyRepo, nil)
	report, err := orchestrator.RunAccuracy(ctx, hierarchy.Selection{
		Category:    c.config.Category,
		Subcategory: c.config.Subcategory,
		Subclass:    c.config.Subclass,
		Class:       c.config.Class,
	}, c.config.Threshold)
	if err != nil {
		return fmt.Errorf("failed to compute accuracy: %w", err)
	}

	return output.WriteAccuracy(report, output.Config{
		Format:    c.config.Format,
		OutputDir: c.config.OutputDir,
		Verbose:   c.config.Verbose,
	})
}
