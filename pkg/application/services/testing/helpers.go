package testing

import (
	"time"

	"demandrecon/pkg/domain/entities"
	"demandrecon/pkg/infrastructure/repositories/memory"
)

// mustCreatePoint is a helper for tests - panics on validation error
func mustCreatePoint(product, customer, location, date string, metric entities.MetricName, value *float64) *entities.TimeSeriesPoint {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		panic(err)
	}
	point, err := entities.NewTimeSeriesPoint(entities.EntityKey{
		ProductID:  entities.ProductID(product),
		CustomerID: entities.CustomerID(customer),
		LocationID: entities.LocationID(location),
	}, day, metric, value)
	if err != nil {
		panic(err)
	}
	return point
}

// Val returns a pointer to a float value for building points
func Val(v float64) *float64 {
	return &v
}

// Point builds a product-level point with no customer or location
func Point(product, date string, metric entities.MetricName, value float64) *entities.TimeSeriesPoint {
	return mustCreatePoint(product, "", "", date, metric, Val(value))
}

// NullPoint builds a product-level point carrying a null observation
func NullPoint(product, date string, metric entities.MetricName) *entities.TimeSeriesPoint {
	return mustCreatePoint(product, "", "", date, metric, nil)
}

// BuildBeverageSnapshot builds the hierarchy used across the service
// tests: Bebidas with two subcategories, Snacks with one
func BuildBeverageSnapshot() *entities.HierarchySnapshot {
	snapshot := entities.NewHierarchySnapshot()
	rows := [][5]string{
		{"Bebidas", "Gaseosas", "Colas", "Regular", "P001"},
		{"Bebidas", "Gaseosas", "Colas", "Light", "P002"},
		{"Bebidas", "Jugos", "Néctar", "Durazno", "P003"},
		{"Bebidas", "Jugos", "Néctar", "Mango", "P004"},
		{"Snacks", "Salados", "Papas", "Clásicas", "P101"},
	}
	for _, row := range rows {
		if err := snapshot.AddProduct(row[0], row[1], row[2], row[3], entities.ProductID(row[4])); err != nil {
			panic(err)
		}
	}
	return snapshot
}

// BuildReviewScenario builds loaded repositories for orchestrator tests:
// the beverage hierarchy with forecast and sales history for the Bebidas
// leaves at two dates. P004 carries no data at all, so the presence
// filter drops it.
func BuildReviewScenario() (*memory.HierarchyRepository, *memory.SeriesRepository) {
	hierarchyRepo := memory.NewHierarchyRepository()
	if err := hierarchyRepo.LoadSnapshot(BuildBeverageSnapshot()); err != nil {
		panic(err)
	}

	points := []*entities.TimeSeriesPoint{
		Point("P001", "2025-01-01", entities.MetricForecast, 100),
		Point("P001", "2025-02-01", entities.MetricForecast, 120),
		Point("P001", "2025-01-01", entities.MetricSalesHistory, 90),
		Point("P001", "2025-02-01", entities.MetricSalesHistory, 110),
		Point("P002", "2025-01-01", entities.MetricForecast, 50),
		Point("P002", "2025-02-01", entities.MetricForecast, 60),
		Point("P002", "2025-01-01", entities.MetricSalesHistory, 55),
		Point("P003", "2025-01-01", entities.MetricForecast, 30),
		Point("P003", "2025-01-01", entities.MetricSalesHistory, 30),
	}

	seriesRepo := memory.NewSeriesRepository()
	if err := seriesRepo.LoadPoints(points); err != nil {
		panic(err)
	}
	return hierarchyRepo, seriesRepo
}
