package waterfall

import (
	"github.com/shopspring/decimal"

	"demandrecon/pkg/domain/entities"
)

// SourceSeries is the materialized per-entity series the waterfall engine
// decomposes: one value per (metric, date), summed across the raw rows
// that match the entity key. An empty customer or location on the key
// matches every customer or location.
type SourceSeries struct {
	Entity entities.EntityKey
	values map[entities.MetricName]map[string]decimal.Decimal
}

// NewSourceSeries materializes the entity's series from raw points. Null
// values are skipped; they never establish a baseline.
func NewSourceSeries(entity entities.EntityKey, points []*entities.TimeSeriesPoint) *SourceSeries {
	series := &SourceSeries{
		Entity: entity,
		values: make(map[entities.MetricName]map[string]decimal.Decimal),
	}
	for _, point := range points {
		if point.Value == nil || !matches(entity, point.Entity) {
			continue
		}
		dates, ok := series.values[point.Metric]
		if !ok {
			dates = make(map[string]decimal.Decimal)
			series.values[point.Metric] = dates
		}
		date := point.DateKey()
		dates[date] = dates[date].Add(decimal.NewFromFloat(*point.Value))
	}
	return series
}

func matches(key, candidate entities.EntityKey) bool {
	if key.ProductID != candidate.ProductID {
		return false
	}
	if key.CustomerID != "" && key.CustomerID != candidate.CustomerID {
		return false
	}
	if key.LocationID != "" && key.LocationID != candidate.LocationID {
		return false
	}
	return true
}

// Value returns the summed value for a metric at a date and whether any
// source row carried it
func (s *SourceSeries) Value(metric entities.MetricName, date string) (decimal.Decimal, bool) {
	v, ok := s.values[metric][date]
	return v, ok
}

// valueOrZero treats a missing optional driver as "no effect"
func (s *SourceSeries) valueOrZero(metric entities.MetricName, date string) decimal.Decimal {
	v, ok := s.Value(metric, date)
	if !ok {
		return decimal.Zero
	}
	return v
}
