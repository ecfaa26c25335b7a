package csv

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"demandrecon/pkg/domain/entities"
)

// Loader handles loading review scenarios from CSV files
type Loader struct{}

// NewLoader creates a new CSV loader
func NewLoader() *Loader {
	return &Loader{}
}

// LoadHierarchy loads the dimension snapshot from a CSV file with one
// row per leaf product
func (l *Loader) LoadHierarchy(filename string) (*entities.HierarchySnapshot, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open hierarchy file %s: %w", filename, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read hierarchy CSV: %w", err)
	}

	if len(records) < 2 {
		return nil, fmt.Errorf("hierarchy CSV must have header and at least one data row")
	}

	// Validate header
	expectedHeader := []string{"category", "subcategory", "subclass", "class", "product_id"}
	if !validateHeader(records[0], expectedHeader) {
		return nil, fmt.Errorf("hierarchy CSV header mismatch. Expected: %v, Got: %v", expectedHeader, records[0])
	}

	snapshot := entities.NewHierarchySnapshot()
	for i, record := range records[1:] {
		if len(record) != len(expectedHeader) {
			return nil, fmt.Errorf("hierarchy CSV row %d: expected %d columns, got %d", i+2, len(expectedHeader), len(record))
		}
		err := snapshot.AddProduct(record[0], record[1], record[2], record[3], entities.ProductID(record[4]))
		if err != nil {
			return nil, fmt.Errorf("hierarchy CSV row %d: %w", i+2, err)
		}
	}

	return snapshot, nil
}

// LoadSeries loads raw time-series points from a CSV file. An empty value
// column is a null observation and is kept: nulls matter to the presence
// filter and the date union.
func (l *Loader) LoadSeries(filename string) ([]*entities.TimeSeriesPoint, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open series file %s: %w", filename, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read series CSV: %w", err)
	}

	if len(records) < 2 {
		return nil, fmt.Errorf("series CSV must have header and at least one data row")
	}

	// Validate header
	expectedHeader := []string{"product_id", "customer_id", "location_id", "date", "metric", "value"}
	if !validateHeader(records[0], expectedHeader) {
		return nil, fmt.Errorf("series CSV header mismatch. Expected: %v, Got: %v", expectedHeader, records[0])
	}

	var points []*entities.TimeSeriesPoint
	for i, record := range records[1:] {
		if len(record) != len(expectedHeader) {
			return nil, fmt.Errorf("series CSV row %d: expected %d columns, got %d", i+2, len(expectedHeader), len(record))
		}

		point, err := parsePoint(record)
		if err != nil {
			return nil, fmt.Errorf("series CSV row %d: %w", i+2, err)
		}
		points = append(points, point)
	}

	return points, nil
}

// Helper functions for parsing CSV records

func parsePoint(record []string) (*entities.TimeSeriesPoint, error) {
	date, err := time.Parse("2006-01-02", record[3])
	if err != nil {
		return nil, fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", record[3])
	}

	var value *float64
	if strings.TrimSpace(record[5]) != "" {
		parsed, err := strconv.ParseFloat(record[5], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid value %q", record[5])
		}
		value = &parsed
	}

	entity := entities.EntityKey{
		ProductID:  entities.ProductID(record[0]),
		CustomerID: entities.CustomerID(record[1]),
		LocationID: entities.LocationID(record[2]),
	}
	return entities.NewTimeSeriesPoint(entity, date, entities.MetricName(record[4]), value)
}

func validateHeader(actual, expected []string) bool {
	if len(actual) != len(expected) {
		return false
	}

	for i, col := range expected {
		if strings.ToLower(strings.TrimSpace(actual[i])) != col {
			return false
		}
	}

	return true
}
