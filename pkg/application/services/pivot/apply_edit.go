package pivot

import (
	"fmt"

	"github.com/shopspring/decimal"

	"demandrecon/pkg/application/services/fairshare"
	"demandrecon/pkg/domain/entities"
)

// ApplyAggregateEdit applies a user edit of a total cell to the pivot
// rows in place: the delta against the current total is fair-shared
// across the child rows for the same series and date, and the total row
// takes the edited value.
//
// The edit only ever touches the child rows present for the series; the
// reconciled children must sum exactly to the new total or the edit fails
// with ErrRoundingInvariant and the rows are left unmodified.
func ApplyAggregateEdit(rows []entities.AggregatedSeriesRow, series entities.SeriesName, date string, newTotal decimal.Decimal) error {
	totalIdx := -1
	var childIdx []int
	for i, row := range rows {
		if row.Series != series {
			continue
		}
		if row.GroupKey == entities.TotalGroupKey {
			totalIdx = i
		} else {
			childIdx = append(childIdx, i)
		}
	}
	if totalIdx < 0 {
		return fmt.Errorf("no total row for series %q", series)
	}
	if len(childIdx) == 0 {
		return fmt.Errorf("no child rows for series %q", series)
	}

	oldTotal := rows[totalIdx].Value(date)
	delta := newTotal.Sub(oldTotal)

	children := make([]fairshare.Child, 0, len(childIdx))
	for _, i := range childIdx {
		children = append(children, fairshare.Child{
			Key:   rows[i].GroupKey,
			Value: rows[i].Value(date),
		})
	}

	reconciled, err := fairshare.Redistribute(delta, children)
	if err != nil {
		return fmt.Errorf("failed to redistribute edit of %q at %s: %w", series, date, err)
	}

	childSum := decimal.Zero
	for _, child := range reconciled {
		childSum = childSum.Add(child.Value)
	}
	if !childSum.Equal(newTotal) {
		return fmt.Errorf("%w: children sum to %s, aggregate is %s",
			entities.ErrRoundingInvariant, childSum, newTotal)
	}

	for i, child := range reconciled {
		rows[childIdx[i]].Values[date] = child.Value
	}
	rows[totalIdx].Values[date] = newTotal
	return nil
}
