package entities

import "time"

// EntityKind classifies what an accuracy record scores
type EntityKind int

const (
	KindProduct EntityKind = iota
	KindCustomer
	KindProductCustomer
)

// String method for EntityKind enum
func (k EntityKind) String() string {
	switch k {
	case KindProduct:
		return "product"
	case KindCustomer:
		return "customer"
	case KindProductCustomer:
		return "product_customer"
	default:
		return "Unknown"
	}
}

// Trend classifies how an entity's forecast error is moving over the
// scored window
type Trend int

const (
	TrendStable Trend = iota
	TrendImproving
	TrendDeclining
)

// String method for Trend enum
func (t Trend) String() string {
	switch t {
	case TrendStable:
		return "stable"
	case TrendImproving:
		return "improving"
	case TrendDeclining:
		return "declining"
	default:
		return "Unknown"
	}
}

// AccuracyRecord is the derived forecast-accuracy score for one entity
// over a trailing window. Recomputed on demand; never stored durably by
// the engines.
type AccuracyRecord struct {
	EntityKey          string     `json:"entity_key"`
	Kind               EntityKind `json:"entity_kind"`
	AccuracyScore      float64    `json:"accuracy_score"`
	AvgErrorPercentage float64    `json:"avg_error_percentage"`
	ForecastCount      int        `json:"forecast_count"`
	LastForecastDate   time.Time  `json:"last_forecast_date"`
	Trend              Trend      `json:"trend"`
	ForecastBias       *float64   `json:"forecast_bias,omitempty"`
}
