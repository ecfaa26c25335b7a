package entities

import (
	"fmt"
	"time"
)

// ProductID identifies a leaf product in the dimension hierarchy
type ProductID string

// CustomerID identifies a customer; empty means "all customers"
type CustomerID string

// LocationID identifies a location; empty means "all locations"
type LocationID string

// MetricName identifies a raw source metric in the time-series store
type MetricName string

// Source metrics the engines read. The loader accepts arbitrary metric
// names; these are the ones the canonical series definitions and the
// waterfall drivers bind to.
const (
	MetricSalesHistory    MetricName = "sales_history"
	MetricForecast        MetricName = "forecast"
	MetricInitialPlan     MetricName = "initial_plan"
	MetricDemandPlanner   MetricName = "demand_planner"
	MetricSalesLY         MetricName = "sales_ly"
	MetricKAMInput        MetricName = "kam_input"
	MetricAdjustedHistory MetricName = "adjusted_history"

	MetricBaseDemand  MetricName = "base_demand"
	MetricPromoLift   MetricName = "promo_lift"
	MetricEventImpact MetricName = "event_impact"
)

// EntityKey identifies a leaf time series: a product, optionally narrowed
// by customer and location
type EntityKey struct {
	ProductID  ProductID
	CustomerID CustomerID
	LocationID LocationID
}

// String renders the key in product|customer|location form for use as a
// map or cache key
func (k EntityKey) String() string {
	return fmt.Sprintf("%s|%s|%s", k.ProductID, k.CustomerID, k.LocationID)
}

// TimeSeriesPoint is one raw observation from the external time-series
// store. Value is nil when the source row carried no value for the date.
// Points are immutable once ingested; the engines only derive new series
// from them.
type TimeSeriesPoint struct {
	Entity EntityKey
	Date   time.Time
	Metric MetricName
	Value  *float64
}

// NewTimeSeriesPoint creates a validated TimeSeriesPoint
func NewTimeSeriesPoint(entity EntityKey, date time.Time, metric MetricName, value *float64) (*TimeSeriesPoint, error) {
	if entity.ProductID == "" {
		return nil, fmt.Errorf("product id cannot be empty")
	}
	if date.IsZero() {
		return nil, fmt.Errorf("date cannot be zero")
	}
	if metric == "" {
		return nil, fmt.Errorf("metric name cannot be empty")
	}
	return &TimeSeriesPoint{
		Entity: entity,
		Date:   date,
		Metric: metric,
		Value:  value,
	}, nil
}

// DateKey returns the point's date as an ISO day string, the key format
// used throughout the pivot rows
func (p *TimeSeriesPoint) DateKey() string {
	return p.Date.Format("2006-01-02")
}

// SeriesName is a display series in the review pivot
type SeriesName string

// The canonical review series, in their fixed render order
const (
	SeriesSalesHistory    SeriesName = "Historia de ventas"
	SeriesForecast        SeriesName = "Forecast"
	SeriesInitialPlan     SeriesName = "Plan inicial"
	SeriesDemandPlanner   SeriesName = "Demand Planner"
	SeriesSalesLY         SeriesName = "Ventas LY"
	SeriesKAMInput        SeriesName = "KAM input"
	SeriesAdjustedHistory SeriesName = "Historia ajustada"
)

// SeriesDefinition binds a display series to the source metric it sums
type SeriesDefinition struct {
	Name   SeriesName
	Metric MetricName
}

// SeriesDefinitions is an ordered list of series definitions; the order
// defines the emission order of pivot rows
type SeriesDefinitions []SeriesDefinition

// DefaultSeriesDefinitions returns the canonical seven review series in
// their fixed order
func DefaultSeriesDefinitions() SeriesDefinitions {
	return SeriesDefinitions{
		{Name: SeriesSalesHistory, Metric: MetricSalesHistory},
		{Name: SeriesForecast, Metric: MetricForecast},
		{Name: SeriesInitialPlan, Metric: MetricInitialPlan},
		{Name: SeriesDemandPlanner, Metric: MetricDemandPlanner},
		{Name: SeriesSalesLY, Metric: MetricSalesLY},
		{Name: SeriesKAMInput, Metric: MetricKAMInput},
		{Name: SeriesAdjustedHistory, Metric: MetricAdjustedHistory},
	}
}

// MetricFor returns the source metric bound to a series name
func (d SeriesDefinitions) MetricFor(name SeriesName) (MetricName, bool) {
	for _, def := range d {
		if def.Name == name {
			return def.Metric, true
		}
	}
	return "", false
}

// Metrics returns the source metrics referenced by the definitions, in
// definition order
func (d SeriesDefinitions) Metrics() []MetricName {
	metrics := make([]MetricName, 0, len(d))
	for _, def := range d {
		metrics = append(metrics, def.Metric)
	}
	return metrics
}
