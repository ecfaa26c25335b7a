package entities

import (
	"sort"

	"github.com/shopspring/decimal"
)

// TotalGroupKey is the group key of the synthetic total row summing every
// leaf in the selection
const TotalGroupKey = "Total Categoría"

// AggregatedSeriesRow is one pivot row: a group (dimension node name or
// the synthetic total) crossed with a display series, holding one value
// per ISO date. For every date, the value equals the exact sum of the
// group's leaf values for the series' source metric.
type AggregatedSeriesRow struct {
	GroupKey string                     `json:"group_key"`
	Series   SeriesName                 `json:"series_name"`
	Values   map[string]decimal.Decimal `json:"values"`
}

// NewAggregatedSeriesRow creates an empty row for the given group and
// series
func NewAggregatedSeriesRow(groupKey string, series SeriesName) AggregatedSeriesRow {
	return AggregatedSeriesRow{
		GroupKey: groupKey,
		Series:   series,
		Values:   make(map[string]decimal.Decimal),
	}
}

// Dates returns the row's date keys in ascending order
func (r AggregatedSeriesRow) Dates() []string {
	dates := make([]string, 0, len(r.Values))
	for date := range r.Values {
		dates = append(dates, date)
	}
	sort.Strings(dates)
	return dates
}

// Value returns the row's value at the given date, zero when absent
func (r AggregatedSeriesRow) Value(date string) decimal.Decimal {
	if v, ok := r.Values[date]; ok {
		return v
	}
	return decimal.Zero
}
