package pivot

import (
	"sort"

	"github.com/shopspring/decimal"

	"demandrecon/pkg/domain/entities"
)

// Aggregate sums raw leaf points into per-group pivot rows, one row per
// (group, series) pair plus a synthetic total row per series.
//
// For every series the emitted dates are the union of dates present in
// any leaf's points for the series' source metric, a date missing from a
// given leaf contributing zero. Null values also contribute zero; a group
// with partial data still sums the values it has.
//
// Rows are emitted series-major in definition order, the total row first,
// then the child groups in the supplied order. The total row is computed
// independently over all leaves, not by re-summing group rows, though the
// two must agree exactly.
func Aggregate(points []*entities.TimeSeriesPoint, groupOf map[entities.ProductID]string, groupOrder []string, defs entities.SeriesDefinitions) []entities.AggregatedSeriesRow {
	var rows []entities.AggregatedSeriesRow

	for _, def := range defs {
		dates := metricDates(points, def.Metric, groupOf)

		total := entities.NewAggregatedSeriesRow(entities.TotalGroupKey, def.Name)
		groupRows := make(map[string]*entities.AggregatedSeriesRow, len(groupOrder))
		for _, group := range groupOrder {
			row := entities.NewAggregatedSeriesRow(group, def.Name)
			groupRows[group] = &row
		}

		for _, date := range dates {
			total.Values[date] = decimal.Zero
			for _, row := range groupRows {
				row.Values[date] = decimal.Zero
			}
		}

		for _, point := range points {
			if point.Metric != def.Metric || point.Value == nil {
				continue
			}
			group, ok := groupOf[point.Entity.ProductID]
			if !ok {
				continue
			}
			date := point.DateKey()
			value := decimal.NewFromFloat(*point.Value)
			total.Values[date] = total.Values[date].Add(value)
			if row, ok := groupRows[group]; ok {
				row.Values[date] = row.Values[date].Add(value)
			}
		}

		rows = append(rows, total)
		for _, group := range groupOrder {
			rows = append(rows, *groupRows[group])
		}
	}

	return rows
}

// metricDates collects the sorted union of dates carried by any in-scope
// leaf for the metric. Presence counts even when the value is null.
func metricDates(points []*entities.TimeSeriesPoint, metric entities.MetricName, groupOf map[entities.ProductID]string) []string {
	seen := make(map[string]bool)
	for _, point := range points {
		if point.Metric != metric {
			continue
		}
		if _, ok := groupOf[point.Entity.ProductID]; !ok {
			continue
		}
		seen[point.DateKey()] = true
	}
	dates := make([]string, 0, len(seen))
	for date := range seen {
		dates = append(dates, date)
	}
	sort.Strings(dates)
	return dates
}
