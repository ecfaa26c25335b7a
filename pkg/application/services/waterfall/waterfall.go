package waterfall

import (
	"github.com/shopspring/decimal"

	"demandrecon/pkg/domain/entities"
)

// BuildUp decomposes one date's forecast into its named drivers from a
// zero baseline: base demand, promotional lift, event impact, and an
// exogenous adjustment closing the chain exactly on the forecast value.
//
// Base demand and the forecast itself must be resolvable from source
// data; a missing baseline fails with MissingBaselineError rather than
// silently substituting zero, which would corrupt every downstream
// component. Promotional and event drivers default to zero-valued
// components, which still appear: they mean "no effect", not absent data.
//
// Values are rounded to the series' working precision exactly once, after
// each component's underlying causes are summed.
func BuildUp(series *SourceSeries, atDate string, precision int32) ([]entities.WaterfallComponent, error) {
	total, ok := series.Value(entities.MetricForecast, atDate)
	if !ok {
		return nil, &entities.MissingBaselineError{
			EntityKey: series.Entity.String(),
			Metric:    entities.MetricForecast,
			Date:      atDate,
		}
	}
	base, ok := series.Value(entities.MetricBaseDemand, atDate)
	if !ok {
		return nil, &entities.MissingBaselineError{
			EntityKey: series.Entity.String(),
			Metric:    entities.MetricBaseDemand,
			Date:      atDate,
		}
	}

	total = total.Round(precision)
	base = base.Round(precision)
	promo := series.valueOrZero(entities.MetricPromoLift, atDate).Round(precision)
	event := series.valueOrZero(entities.MetricEventImpact, atDate).Round(precision)
	exogenous := total.Sub(base).Sub(promo).Sub(event)

	return buildChain(decimal.Zero, []namedValue{
		{entities.ComponentBaseDemand, base},
		{entities.ComponentPromotions, promo},
		{entities.ComponentEvents, event},
		{entities.ComponentExogenous, exogenous},
	}), nil
}

// ComparePeriods decomposes the forecast change between two periods into
// per-driver deltas plus a residual adjustment, so the signed components
// sum exactly to current minus previous.
//
// Both period totals must be resolvable; the previous period especially
// is the chain's baseline and is never defaulted.
func ComparePeriods(series *SourceSeries, currentDate, previousDate string, precision int32) ([]entities.WaterfallComponent, error) {
	previous, ok := series.Value(entities.MetricForecast, previousDate)
	if !ok {
		return nil, &entities.MissingBaselineError{
			EntityKey: series.Entity.String(),
			Metric:    entities.MetricForecast,
			Date:      previousDate,
		}
	}
	current, ok := series.Value(entities.MetricForecast, currentDate)
	if !ok {
		return nil, &entities.MissingBaselineError{
			EntityKey: series.Entity.String(),
			Metric:    entities.MetricForecast,
			Date:      currentDate,
		}
	}

	previous = previous.Round(precision)
	current = current.Round(precision)

	deltas := make([]decimal.Decimal, 0, 3)
	for _, metric := range []entities.MetricName{
		entities.MetricBaseDemand,
		entities.MetricPromoLift,
		entities.MetricEventImpact,
	} {
		delta := series.valueOrZero(metric, currentDate).
			Sub(series.valueOrZero(metric, previousDate)).
			Round(precision)
		deltas = append(deltas, delta)
	}

	residual := current.Sub(previous)
	for _, delta := range deltas {
		residual = residual.Sub(delta)
	}

	return buildChain(previous, []namedValue{
		{entities.ComponentBaseDemand, deltas[0]},
		{entities.ComponentPromotions, deltas[1]},
		{entities.ComponentEvents, deltas[2]},
		{entities.ComponentResidual, residual},
	}), nil
}

type namedValue struct {
	name  string
	value decimal.Decimal
}

// buildChain accumulates the components from the starting baseline,
// assigning the stable render order
func buildChain(baseline decimal.Decimal, values []namedValue) []entities.WaterfallComponent {
	components := make([]entities.WaterfallComponent, 0, len(values))
	running := baseline
	for i, nv := range values {
		final := running.Add(nv.value)
		components = append(components, entities.WaterfallComponent{
			Name:          nv.name,
			Order:         i,
			Value:         nv.value,
			IsPositive:    !nv.value.IsNegative(),
			BaselineValue: running,
			FinalValue:    final,
		})
		running = final
	}
	return components
}
