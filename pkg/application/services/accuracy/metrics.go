package accuracy

import (
	"math"
	"sort"
	"time"

	"demandrecon/pkg/domain/entities"
)

const (
	// zeroActualEpsilon classifies an actual as a zero-demand period.
	// Zero-actual records are excluded from the error-percentage mean but
	// still count toward ForecastCount.
	zeroActualEpsilon = 1e-9

	// trendMargin is the relative margin between the trailing-third and
	// leading-third mean error before a trend counts as a move. Applied
	// uniformly to every entity kind so trends stay comparable.
	trendMargin = 0.05
)

// ForecastRecord pairs one forecast with the actual observed for the same
// date. Actual is nil when the period has not been observed yet.
type ForecastRecord struct {
	Forecast float64
	Actual   *float64
	Date     time.Time
}

// Compute scores a single entity's forecast accuracy over its records.
//
// The error percentage of a record is abs(forecast-actual)/abs(actual),
// averaged over all observed, non-zero-actual records. The accuracy score
// is 100 minus that mean, clamped to [0,100]. Returns
// InsufficientDataError when no record has an observed actual; callers
// must exclude such entities from results, never score them as zero.
func Compute(entityKey string, kind entities.EntityKind, records []ForecastRecord) (*entities.AccuracyRecord, error) {
	observed := make([]ForecastRecord, 0, len(records))
	for _, record := range records {
		if record.Actual != nil {
			observed = append(observed, record)
		}
	}
	if len(observed) == 0 {
		return nil, &entities.InsufficientDataError{EntityKey: entityKey}
	}

	sort.Slice(observed, func(i, j int) bool {
		return observed[i].Date.Before(observed[j].Date)
	})

	errs := make([]float64, 0, len(observed))
	biasSum := 0.0
	for _, record := range observed {
		actual := *record.Actual
		if math.Abs(actual) <= zeroActualEpsilon {
			continue
		}
		errs = append(errs, math.Abs(record.Forecast-actual)/math.Abs(actual)*100)
		biasSum += (record.Forecast - actual) / math.Abs(actual) * 100
	}

	record := &entities.AccuracyRecord{
		EntityKey:        entityKey,
		Kind:             kind,
		ForecastCount:    len(observed),
		LastForecastDate: observed[len(observed)-1].Date,
		Trend:            classifyTrend(errs),
	}

	if len(errs) > 0 {
		sum := 0.0
		for _, e := range errs {
			sum += e
		}
		record.AvgErrorPercentage = sum / float64(len(errs))
		bias := biasSum / float64(len(errs))
		record.ForecastBias = &bias
	}
	record.AccuracyScore = clamp(100-record.AvgErrorPercentage, 0, 100)

	return record, nil
}

// classifyTrend compares the mean error of the most recent third of the
// window against the earliest third, with errs already in date order
func classifyTrend(errs []float64) entities.Trend {
	third := len(errs) / 3
	if third == 0 {
		return entities.TrendStable
	}

	early := mean(errs[:third])
	recent := mean(errs[len(errs)-third:])

	if early == 0 {
		if recent > 0 {
			return entities.TrendDeclining
		}
		return entities.TrendStable
	}
	switch {
	case recent < early*(1-trendMargin):
		return entities.TrendImproving
	case recent > early*(1+trendMargin):
		return entities.TrendDeclining
	default:
		return entities.TrendStable
	}
}

func mean(values []float64) float64 {
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
