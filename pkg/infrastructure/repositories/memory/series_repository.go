package memory

import (
	"demandrecon/pkg/domain/entities"
	"demandrecon/pkg/domain/repositories"
)

// SeriesRepository provides in-memory time-series storage
type SeriesRepository struct {
	points []entities.TimeSeriesPoint
}

// NewSeriesRepository creates a new in-memory series repository
func NewSeriesRepository() *SeriesRepository {
	return &SeriesRepository{
		points: []entities.TimeSeriesPoint{},
	}
}

// Verify interface compliance
var _ repositories.SeriesRepository = (*SeriesRepository)(nil)

// LoadPoints loads time-series points into the repository
func (r *SeriesRepository) LoadPoints(points []*entities.TimeSeriesPoint) error {
	for _, point := range points {
		r.points = append(r.points, *point)
	}
	return nil
}

// GetPoints returns all time-series points
func (r *SeriesRepository) GetPoints() ([]*entities.TimeSeriesPoint, error) {
	var points []*entities.TimeSeriesPoint
	for i := range r.points {
		points = append(points, &r.points[i])
	}
	return points, nil
}
