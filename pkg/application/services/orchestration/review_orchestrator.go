package orchestration

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"demandrecon/pkg/application/dto"
	"demandrecon/pkg/application/services/accuracy"
	"demandrecon/pkg/application/services/hierarchy"
	"demandrecon/pkg/application/services/pivot"
	"demandrecon/pkg/application/services/waterfall"
	"demandrecon/pkg/domain/entities"
	"demandrecon/pkg/domain/repositories"
	"demandrecon/pkg/infrastructure/cache"
)

// ReviewOrchestrator coordinates the review engines over the repositories:
// it materializes the snapshot and rows, runs resolve/aggregate/score
// flows, and writes results behind to the cache when one is attached.
type ReviewOrchestrator struct {
	seriesRepo    repositories.SeriesRepository
	hierarchyRepo repositories.HierarchyRepository
	resultCache   *cache.ResultCache
}

// NewReviewOrchestrator creates a new review orchestrator. The cache is
// optional; pass nil to recompute on every call.
func NewReviewOrchestrator(
	seriesRepo repositories.SeriesRepository,
	hierarchyRepo repositories.HierarchyRepository,
	resultCache *cache.ResultCache,
) *ReviewOrchestrator {
	return &ReviewOrchestrator{
		seriesRepo:    seriesRepo,
		hierarchyRepo: hierarchyRepo,
		resultCache:   resultCache,
	}
}

// BuildPivot resolves the selection and aggregates the raw rows into the
// review pivot
func (o *ReviewOrchestrator) BuildPivot(ctx context.Context, sel hierarchy.Selection, defs entities.SeriesDefinitions) (*dto.PivotResult, error) {
	key := cache.Key("pivot", sel.Category, sel.Subcategory, sel.Subclass, sel.Class)
	if o.resultCache != nil {
		if cached, ok := o.resultCache.Get(key); ok {
			if result, ok := cached.(*dto.PivotResult); ok {
				return result, nil
			}
		}
	}

	snapshot, err := o.hierarchyRepo.GetSnapshot()
	if err != nil {
		return nil, fmt.Errorf("failed to load hierarchy snapshot: %w", err)
	}
	points, err := o.seriesRepo.GetPoints()
	if err != nil {
		return nil, fmt.Errorf("failed to load time-series rows: %w", err)
	}

	presence := hierarchy.BuildPresence(points)
	resolution, err := hierarchy.Resolve(snapshot, sel, presence, defs.Metrics())
	if err != nil {
		return nil, err
	}

	rows := pivot.Aggregate(points, resolution.GroupOf, resolution.ChildGroups, defs)

	result := &dto.PivotResult{
		Category:    sel.Category,
		Subcategory: sel.Subcategory,
		Subclass:    sel.Subclass,
		Class:       sel.Class,
		ChildGroups: resolution.ChildGroups,
		LeafCount:   len(resolution.LeafProductIDs),
		Rows:        rows,
		ComputedAt:  time.Now(),
	}

	if o.resultCache != nil {
		o.resultCache.Put(key, result)
	}
	return result, nil
}

// ApplyEdit fair-shares an edit of a total cell across the pivot's child
// rows and invalidates the cached pivot for the selection
func (o *ReviewOrchestrator) ApplyEdit(result *dto.PivotResult, series entities.SeriesName, date string, newTotal decimal.Decimal) error {
	if err := pivot.ApplyAggregateEdit(result.Rows, series, date, newTotal); err != nil {
		return err
	}
	if o.resultCache != nil {
		o.resultCache.Invalidate(cache.Key("pivot", result.Category, result.Subcategory, result.Subclass, result.Class))
	}
	return nil
}

// RunAccuracy scores every leaf product under the selection against its
// sales history, isolating unscoreable entities per the batch contract
func (o *ReviewOrchestrator) RunAccuracy(ctx context.Context, sel hierarchy.Selection, threshold float64) (*dto.AccuracyReport, error) {
	snapshot, err := o.hierarchyRepo.GetSnapshot()
	if err != nil {
		return nil, fmt.Errorf("failed to load hierarchy snapshot: %w", err)
	}
	points, err := o.seriesRepo.GetPoints()
	if err != nil {
		return nil, fmt.Errorf("failed to load time-series rows: %w", err)
	}

	presence := hierarchy.BuildPresence(points)
	resolution, err := hierarchy.Resolve(snapshot, sel, presence, []entities.MetricName{entities.MetricForecast})
	if err != nil {
		return nil, err
	}

	inputs := make([]accuracy.BatchInput, 0, len(resolution.LeafProductIDs))
	for _, product := range resolution.LeafProductIDs {
		inputs = append(inputs, accuracy.BatchInput{
			EntityKey: string(product),
			Kind:      entities.KindProduct,
			Records:   forecastRecords(points, product),
		})
	}

	batch, err := accuracy.ComputeBatch(ctx, inputs)
	if err != nil {
		return nil, err
	}

	return &dto.AccuracyReport{
		Threshold:   threshold,
		Records:     batch.Records,
		LowAccuracy: batch.BelowThreshold(threshold),
		Excluded:    batch.Excluded,
		ComputedAt:  time.Now(),
	}, nil
}

// forecastRecords pairs a product's forecast with its observed sales
// history by date, summed across customers and locations
func forecastRecords(points []*entities.TimeSeriesPoint, product entities.ProductID) []accuracy.ForecastRecord {
	forecasts := make(map[string]float64)
	actuals := make(map[string]float64)
	for _, point := range points {
		if point.Entity.ProductID != product || point.Value == nil {
			continue
		}
		switch point.Metric {
		case entities.MetricForecast:
			forecasts[point.DateKey()] += *point.Value
		case entities.MetricSalesHistory:
			actuals[point.DateKey()] += *point.Value
		}
	}

	dates := make([]string, 0, len(forecasts))
	for date := range forecasts {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	records := make([]accuracy.ForecastRecord, 0, len(dates))
	for _, date := range dates {
		day, err := time.Parse("2006-01-02", date)
		if err != nil {
			continue
		}
		record := accuracy.ForecastRecord{Forecast: forecasts[date], Date: day}
		if actual, ok := actuals[date]; ok {
			record.Actual = &actual
		}
		records = append(records, record)
	}
	return records
}

// WaterfallRequest describes one batch decomposition run
type WaterfallRequest struct {
	Entities     []entities.EntityKey
	Compare      bool
	AtDate       string
	CurrentDate  string
	PreviousDate string
	Precision    int32
}

// RunWaterfall decomposes every requested entity, isolating per-entity
// missing-baseline failures so the rest of the batch reports
func (o *ReviewOrchestrator) RunWaterfall(ctx context.Context, req WaterfallRequest) (*dto.WaterfallBatch, error) {
	points, err := o.seriesRepo.GetPoints()
	if err != nil {
		return nil, fmt.Errorf("failed to load time-series rows: %w", err)
	}

	batch := &dto.WaterfallBatch{ComputedAt: time.Now()}
	for _, entity := range req.Entities {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		series := waterfall.NewSourceSeries(entity, points)

		var components []entities.WaterfallComponent
		var mode string
		if req.Compare {
			mode = "compare"
			components, err = waterfall.ComparePeriods(series, req.CurrentDate, req.PreviousDate, req.Precision)
		} else {
			mode = "buildup"
			components, err = waterfall.BuildUp(series, req.AtDate, req.Precision)
		}
		if err != nil {
			batch.Failures = append(batch.Failures, dto.WaterfallFailure{
				Entity: entity,
				Reason: err.Error(),
			})
			continue
		}

		batch.Results = append(batch.Results, &dto.WaterfallResult{
			Entity:     entity,
			Mode:       mode,
			Components: components,
			ComputedAt: time.Now(),
		})
	}
	return batch, nil
}
