package waterfall

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"demandrecon/pkg/domain/entities"
)

const (
	jan = "2025-01-01"
	feb = "2025-02-01"
)

func point(t *testing.T, product entities.ProductID, date string, metric entities.MetricName, value float64) *entities.TimeSeriesPoint {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", date)
	require.NoError(t, err)
	p, err := entities.NewTimeSeriesPoint(
		entities.EntityKey{ProductID: product, CustomerID: "C001", LocationID: "L001"},
		parsed, metric, &value,
	)
	require.NoError(t, err)
	return p
}

func seriesFor(t *testing.T, points ...*entities.TimeSeriesPoint) *SourceSeries {
	t.Helper()
	return NewSourceSeries(entities.EntityKey{ProductID: "P001"}, points)
}

func TestBuildUp_DecomposesForecast(t *testing.T) {
	series := seriesFor(t,
		point(t, "P001", jan, entities.MetricForecast, 130),
		point(t, "P001", jan, entities.MetricBaseDemand, 100),
		point(t, "P001", jan, entities.MetricPromoLift, 20),
		point(t, "P001", jan, entities.MetricEventImpact, 5),
	)

	components, err := BuildUp(series, jan, 0)
	require.NoError(t, err)
	require.Len(t, components, 4)

	assert.Equal(t, entities.ComponentBaseDemand, components[0].Name)
	assert.Equal(t, "100", components[0].Value.String())
	assert.Equal(t, entities.ComponentPromotions, components[1].Name)
	assert.Equal(t, "20", components[1].Value.String())
	assert.Equal(t, entities.ComponentEvents, components[2].Name)
	assert.Equal(t, "5", components[2].Value.String())
	assert.Equal(t, entities.ComponentExogenous, components[3].Name)
	assert.Equal(t, "5", components[3].Value.String())

	// Chain starts at zero and closes on the forecast total
	assert.True(t, components[0].BaselineValue.IsZero())
	assert.Equal(t, "130", components[3].FinalValue.String())
	assert.True(t, entities.ChainIsConsistent(components))
}

func TestBuildUp_ZeroDriversStillAppear(t *testing.T) {
	series := seriesFor(t,
		point(t, "P001", jan, entities.MetricForecast, 100),
		point(t, "P001", jan, entities.MetricBaseDemand, 100),
	)

	components, err := BuildUp(series, jan, 0)
	require.NoError(t, err)
	require.Len(t, components, 4)

	assert.True(t, components[1].Value.IsZero())
	assert.True(t, components[2].Value.IsZero())
	assert.True(t, components[3].Value.IsZero())
	assert.True(t, components[1].IsPositive)
}

func TestBuildUp_MissingForecast(t *testing.T) {
	series := seriesFor(t,
		point(t, "P001", jan, entities.MetricBaseDemand, 100),
	)

	_, err := BuildUp(series, jan, 0)
	require.Error(t, err)
	assert.True(t, entities.IsMissingBaseline(err))
}

func TestBuildUp_MissingBaseDemand(t *testing.T) {
	series := seriesFor(t,
		point(t, "P001", jan, entities.MetricForecast, 100),
	)

	_, err := BuildUp(series, jan, 0)
	require.Error(t, err)
	assert.True(t, entities.IsMissingBaseline(err))

	var missing *entities.MissingBaselineError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, entities.MetricBaseDemand, missing.Metric)
}

func TestBuildUp_NegativeDriver(t *testing.T) {
	series := seriesFor(t,
		point(t, "P001", jan, entities.MetricForecast, 90),
		point(t, "P001", jan, entities.MetricBaseDemand, 100),
		point(t, "P001", jan, entities.MetricEventImpact, -10),
	)

	components, err := BuildUp(series, jan, 0)
	require.NoError(t, err)

	assert.Equal(t, "-10", components[2].Value.String())
	assert.False(t, components[2].IsPositive)
	assert.Equal(t, "90", components[3].FinalValue.String())
	assert.True(t, entities.ChainIsConsistent(components))
}

func TestBuildUp_RoundsOncePerComponent(t *testing.T) {
	series := seriesFor(t,
		point(t, "P001", jan, entities.MetricForecast, 100.4),
		point(t, "P001", jan, entities.MetricBaseDemand, 80.3),
		point(t, "P001", jan, entities.MetricPromoLift, 10.6),
	)

	components, err := BuildUp(series, jan, 0)
	require.NoError(t, err)

	assert.Equal(t, "80", components[0].Value.String())
	assert.Equal(t, "11", components[1].Value.String())
	// Exogenous closes the rounded chain exactly: 100 - 80 - 11 - 0
	assert.Equal(t, "9", components[3].Value.String())
	assert.Equal(t, "100", components[3].FinalValue.String())
	assert.True(t, entities.ChainIsConsistent(components))
}

func TestComparePeriods_DriverDeltas(t *testing.T) {
	series := seriesFor(t,
		point(t, "P001", jan, entities.MetricForecast, 100),
		point(t, "P001", jan, entities.MetricBaseDemand, 80),
		point(t, "P001", jan, entities.MetricPromoLift, 20),
		point(t, "P001", feb, entities.MetricForecast, 130),
		point(t, "P001", feb, entities.MetricBaseDemand, 90),
		point(t, "P001", feb, entities.MetricPromoLift, 25),
	)

	components, err := ComparePeriods(series, feb, jan, 0)
	require.NoError(t, err)
	require.Len(t, components, 4)

	assert.Equal(t, entities.ComponentBaseDemand, components[0].Name)
	assert.Equal(t, "10", components[0].Value.String())
	assert.Equal(t, entities.ComponentPromotions, components[1].Name)
	assert.Equal(t, "5", components[1].Value.String())
	assert.Equal(t, entities.ComponentEvents, components[2].Name)
	assert.True(t, components[2].Value.IsZero())
	assert.Equal(t, entities.ComponentResidual, components[3].Name)
	assert.Equal(t, "15", components[3].Value.String())

	// Chain runs from the previous total to the current total
	assert.Equal(t, "100", components[0].BaselineValue.String())
	assert.Equal(t, "130", components[3].FinalValue.String())
	assert.True(t, entities.ChainIsConsistent(components))
}

func TestComparePeriods_DecreasedForecast(t *testing.T) {
	series := seriesFor(t,
		point(t, "P001", jan, entities.MetricForecast, 130),
		point(t, "P001", jan, entities.MetricPromoLift, 30),
		point(t, "P001", feb, entities.MetricForecast, 95),
	)

	components, err := ComparePeriods(series, feb, jan, 0)
	require.NoError(t, err)

	// Promo ran out: delta -30, residual closes the remaining -5
	assert.Equal(t, "-30", components[1].Value.String())
	assert.False(t, components[1].IsPositive)
	assert.Equal(t, "-5", components[3].Value.String())
	assert.Equal(t, "95", components[3].FinalValue.String())
	assert.True(t, entities.ChainIsConsistent(components))
}

func TestComparePeriods_MissingPreviousTotal(t *testing.T) {
	series := seriesFor(t,
		point(t, "P001", feb, entities.MetricForecast, 130),
	)

	_, err := ComparePeriods(series, feb, jan, 0)
	require.Error(t, err)

	var missing *entities.MissingBaselineError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, jan, missing.Date)
}

func TestComparePeriods_MissingCurrentTotal(t *testing.T) {
	series := seriesFor(t,
		point(t, "P001", jan, entities.MetricForecast, 100),
	)

	_, err := ComparePeriods(series, feb, jan, 0)
	require.Error(t, err)
	assert.True(t, entities.IsMissingBaseline(err))
}

func TestSourceSeries_SumsAcrossCustomersAndLocations(t *testing.T) {
	v1, v2 := 60.0, 40.0
	p1, err := entities.NewTimeSeriesPoint(
		entities.EntityKey{ProductID: "P001", CustomerID: "C001", LocationID: "L001"},
		time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), entities.MetricForecast, &v1,
	)
	require.NoError(t, err)
	p2, err := entities.NewTimeSeriesPoint(
		entities.EntityKey{ProductID: "P001", CustomerID: "C002", LocationID: "L002"},
		time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), entities.MetricForecast, &v2,
	)
	require.NoError(t, err)

	series := NewSourceSeries(entities.EntityKey{ProductID: "P001"}, []*entities.TimeSeriesPoint{p1, p2})
	value, ok := series.Value(entities.MetricForecast, jan)
	require.True(t, ok)
	assert.Equal(t, "100", value.String())

	// Narrowed to one customer only that customer's rows count
	narrowed := NewSourceSeries(entities.EntityKey{ProductID: "P001", CustomerID: "C002"}, []*entities.TimeSeriesPoint{p1, p2})
	value, ok = narrowed.Value(entities.MetricForecast, jan)
	require.True(t, ok)
	assert.Equal(t, "40", value.String())
}

func TestSourceSeries_NullValuesNeverEstablishBaseline(t *testing.T) {
	p, err := entities.NewTimeSeriesPoint(
		entities.EntityKey{ProductID: "P001", CustomerID: "C001", LocationID: "L001"},
		time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), entities.MetricForecast, nil,
	)
	require.NoError(t, err)

	series := NewSourceSeries(entities.EntityKey{ProductID: "P001"}, []*entities.TimeSeriesPoint{p})
	_, ok := series.Value(entities.MetricForecast, jan)
	assert.False(t, ok)
}

func TestBuildUp_PrecisionParameter(t *testing.T) {
	series := seriesFor(t,
		point(t, "P001", jan, entities.MetricForecast, 100.456),
		point(t, "P001", jan, entities.MetricBaseDemand, 80.123),
	)

	components, err := BuildUp(series, jan, 2)
	require.NoError(t, err)

	assert.Equal(t, "80.12", components[0].Value.String())
	assert.Equal(t, "100.46", components[3].FinalValue.String())
	assert.True(t, entities.ChainIsConsistent(components))
}

func TestBuildChainOrderIsStable(t *testing.T) {
	components := buildChain(decimal.Zero, []namedValue{
		{entities.ComponentBaseDemand, decimal.NewFromInt(10)},
		{entities.ComponentPromotions, decimal.NewFromInt(-3)},
	})

	assert.Equal(t, 0, components[0].Order)
	assert.Equal(t, 1, components[1].Order)
	assert.Equal(t, "10", components[1].BaselineValue.String())
	assert.Equal(t, "7", components[1].FinalValue.String())
}
