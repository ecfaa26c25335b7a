package commands

import (
	"context"
	"fmt"

	"demandrecon/pkg/application/services/hierarchy"
	"demandrecon/pkg/application/services/orchestration"
	"demandrecon/pkg/interfaces/cli/output"
)

// PivotCommand builds the review pivot for a hierarchy selection
type PivotCommand struct {
	config Config
}

// NewPivotCommand creates a new pivot command with the given
// configuration
func NewPivotCommand(config Config) *PivotCommand {
	return &PivotCommand{config: config}
}

// Execute runs the pivot command
func (c *PivotCommand) Execute(ctx context.Context) error {
	if c.config.Category == "" {
		return fmt.Errorf("pivot requires -category")
	}

	hierarchyRepo, seriesRepo, defs, err := loadScenario(c.config)
	if err != nil {
		return err
	}

	orchestrator := orchestration.NewReviewOrchestrator(seriesRepo, hierarchyRepo, nil)
	result, err := orchestrator.BuildPivot(ctx, hierarchy.Selection{
		Category:    c.config.Category,
		Subcategory: c.config.Subcategory,
		Subclass:    c.config.Subclass,
		Class:       c.config.Class,
	}, defs)
	if err != nil {
		return fmt.Errorf("failed to build pivot: %w", err)
	}

	return output.WritePivot(result, output.Config{
		Format:    c.config.Format,
		OutputDir: c.config.OutputDir,
		Verbose:   c.config.Verbose,
	})
}
