package entities

import (
	"errors"
	"fmt"
)

// InvalidSelectionError reports a hierarchy path inconsistent with the
// supplied snapshot. Surfaced to the caller; never retried.
type InvalidSelectionError struct {
	Level HierarchyLevel
	Name  string
}

func (e *InvalidSelectionError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("invalid selection: %s is required", e.Level)
	}
	return fmt.Sprintf("invalid selection: %s %q not found in hierarchy snapshot", e.Level, e.Name)
}

// InsufficientDataError marks an entity excluded from results because it
// has no scoreable records. Callers must treat this as "excluded", never
// as zero accuracy.
type InsufficientDataError struct {
	EntityKey string
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("insufficient data to score entity %q", e.EntityKey)
}

// MissingBaselineError reports that a waterfall decomposition could not
// resolve its baseline value from source data. Fatal for that single
// computation only; other entities in a batch continue.
type MissingBaselineError struct {
	EntityKey string
	Metric    MetricName
	Date      string
}

func (e *MissingBaselineError) Error() string {
	return fmt.Sprintf("missing baseline: no %s value for entity %q at %s", e.Metric, e.EntityKey, e.Date)
}

// ErrRoundingInvariant signals that reconciled children do not sum
// exactly to the edited aggregate. A programming-bug signal, asserted in
// tests, never an expected runtime outcome.
var ErrRoundingInvariant = errors.New("rounding invariant violated: children do not sum to the aggregate")

// IsInsufficientData reports whether err marks an entity as excluded for
// lack of data
func IsInsufficientData(err error) bool {
	var target *InsufficientDataError
	return errors.As(err, &target)
}

// IsMissingBaseline reports whether err is a missing-baseline failure
func IsMissingBaseline(err error) bool {
	var target *MissingBaselineError
	return errors.As(err, &target)
}
