package accuracy

import (
	"context"

	"demandrecon/pkg/domain/entities"
)

// BatchInput is one entity's records for a batch accuracy run
type BatchInput struct {
	EntityKey string
	Kind      entities.EntityKind
	Records   []ForecastRecord
}

// ExcludedEntity reports an entity dropped from a batch with the reason
type ExcludedEntity struct {
	EntityKey string `json:"entity_key"`
	Reason    string `json:"reason"`
}

// BatchResult holds a batch accuracy run's partial success: the scored
// records plus the entities excluded for insufficient data
type BatchResult struct {
	Records  []*entities.AccuracyRecord `json:"records"`
	Excluded []ExcludedEntity           `json:"excluded"`
}

// ComputeBatch scores every input entity, isolating failures per entity:
// entities that cannot be scored land in Excluded and the rest of the
// batch continues.
func ComputeBatch(ctx context.Context, inputs []BatchInput) (*BatchResult, error) {
	result := &BatchResult{}
	for _, input := range inputs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		record, err := Compute(input.EntityKey, input.Kind, input.Records)
		if err != nil {
			result.Excluded = append(result.Excluded, ExcludedEntity{
				EntityKey: input.EntityKey,
				Reason:    err.Error(),
			})
			continue
		}
		result.Records = append(result.Records, record)
	}
	return result, nil
}

// BelowThreshold returns the scored entities whose accuracy falls below
// the caller-supplied threshold, the ones a "low accuracy" query
// surfaces. Excluded entities never appear here.
func (r *BatchResult) BelowThreshold(threshold float64) []*entities.AccuracyRecord {
	var low []*entities.AccuracyRecord
	for _, record := range r.Records {
		if record.AccuracyScore < threshold {
			low = append(low, record)
		}
	}
	return low
}
