package repositories

import "demandrecon/pkg/domain/entities"

// SeriesRepository provides access to raw time-series rows. The engines
// never query it directly; the orchestration layer materializes the rows
// and passes them in.
type SeriesRepository interface {
	GetPoints() ([]*entities.TimeSeriesPoint, error)
	LoadPoints(points []*entities.TimeSeriesPoint) error
}
