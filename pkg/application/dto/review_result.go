package dto

import (
	"time"

	"demandrecon/pkg/application/services/accuracy"
	"demandrecon/pkg/domain/entities"
)

// PivotResult is a materialized review pivot for one selection
type PivotResult struct {
	Category    string                         `json:"category"`
	Subcategory string                         `json:"subcategory,omitempty"`
	Subclass    string                         `json:"subclass,omitempty"`
	Class       string                         `json:"class,omitempty"`
	ChildGroups []string                       `json:"child_groups"`
	LeafCount   int                            `json:"leaf_count"`
	Rows        []entities.AggregatedSeriesRow `json:"rows"`
	ComputedAt  time.Time                      `json:"computed_at"`
}

// AccuracyReport is a batch accuracy run plus the low-accuracy slice the
// review screens surface
type AccuracyReport struct {
	Threshold   float64                    `json:"threshold"`
	Records     []*entities.AccuracyRecord `json:"records"`
	LowAccuracy []*entities.AccuracyRecord `json:"low_accuracy"`
	Excluded    []accuracy.ExcludedEntity  `json:"excluded"`
	ComputedAt  time.Time                  `json:"computed_at"`
}

// WaterfallResult is one entity's decomposition
type WaterfallResult struct {
	Entity     entities.EntityKey            `json:"entity"`
	Mode       string                        `json:"mode"`
	Components []entities.WaterfallComponent `json:"components"`
	ComputedAt time.Time                     `json:"computed_at"`
}

// WaterfallFailure reports one entity whose decomposition failed in a
// batch run
type WaterfallFailure struct {
	Entity entities.EntityKey `json:"entity"`
	Reason string             `json:"reason"`
}

// WaterfallBatch holds a batch decomposition's partial success
type WaterfallBatch struct {
	Results    []*WaterfallResult `json:"results"`
	Failures   []WaterfallFailure `json:"failures"`
	ComputedAt time.Time          `json:"computed_at"`
}
