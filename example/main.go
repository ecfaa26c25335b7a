package main

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"demandrecon/pkg/application/services/hierarchy"
	"demandrecon/pkg/application/services/orchestration"
	"demandrecon/pkg/domain/entities"
	"demandrecon/pkg/infrastructure/cache"
	"demandrecon/pkg/infrastructure/repositories/memory"
)

func main() {
	ctx := context.Background()

	hierarchyRepo, seriesRepo := setupBeverageScenario()
	resultCache := cache.NewResultCache(15 * time.Minute)
	orchestrator := orchestration.NewReviewOrchestrator(seriesRepo, hierarchyRepo, resultCache)

	fmt.Println("📊 Building review pivot for Bebidas...")
	selection := hierarchy.Selection{Category: "Bebidas"}
	pivotResult, err := orchestrator.BuildPivot(ctx, selection, entities.DefaultSeriesDefinitions())
	if err != nil {
		fmt.Printf("❌ Pivot failed: %v\n", err)
		return
	}
	fmt.Printf("  Groups: %v | Leaf products: %d\n\n", pivotResult.ChildGroups, pivotResult.LeafCount)

	for _, row := range pivotResult.Rows {
		if row.Series != entities.SeriesForecast {
			continue
		}
		fmt.Printf("  %-16s", row.GroupKey)
		for _, date := range row.Dates() {
			fmt.Printf(" %s=%s", date, row.Value(date).String())
		}
		fmt.Println()
	}
	fmt.Println()

	fmt.Println("✏️  Editing January forecast total to 200...")
	if err := orchestrator.ApplyEdit(pivotResult, entities.SeriesForecast, "2025-01-01", decimal.NewFromInt(200)); err != nil {
		fmt.Printf("❌ Edit failed: %v\n", err)
		return
	}
	for _, row := range pivotResult.Rows {
		if row.Series != entities.SeriesForecast {
			continue
		}
		fmt.Printf("  %-16s 2025-01-01=%s\n", row.GroupKey, row.Value("2025-01-01").String())
	}
	fmt.Println()

	fmt.Println("🎯 Scoring forecast accuracy (threshold 95)...")
	report, err := orchestrator.RunAccuracy(ctx, selection, 95)
	if err != nil {
		fmt.Printf("❌ Accuracy failed: %v\n", err)
		return
	}
	for _, record := range report.Records {
		fmt.Printf("  %s: %.1f (%s)\n", record.EntityKey, record.AccuracyScore, record.Trend)
	}
	fmt.Printf("  Below threshold: %d | Excluded: %d\n\n", len(report.LowAccuracy), len(report.Excluded))

	fmt.Println("🌊 Decomposing P001 January forecast...")
	batch, err := orchestrator.RunWaterfall(ctx, orchestration.WaterfallRequest{
		Entities: []entities.EntityKey{{ProductID: "P001"}},
		AtDate:   "2025-01-01",
	})
	if err != nil {
		fmt.Printf("❌ Waterfall failed: %v\n", err)
		return
	}
	for _, result := range batch.Results {
		for _, component := range result.Components {
			fmt.Printf("  %d. %-16s %8s -> %s\n",
				component.Order, component.Name,
				component.Value.String(), component.FinalValue.String())
		}
	}
}

func setupBeverageScenario() (*memory.HierarchyRepository, *memory.SeriesRepository) {
	snapshot := entities.NewHierarchySnapshot()
	products := [][5]string{
		{"Bebidas", "Gaseosas", "Colas", "Regular", "P001"},
		{"Bebidas", "Gaseosas", "Colas", "Light", "P002"},
		{"Bebidas", "Jugos", "Néctar", "Durazno", "P003"},
	}
	for _, row := range products {
		if err := snapshot.AddProduct(row[0], row[1], row[2], row[3], entities.ProductID(row[4])); err != nil {
			panic(err)
		}
	}
	hierarchyRepo := memory.NewHierarchyRepository()
	if err := hierarchyRepo.LoadSnapshot(snapshot); err != nil {
		panic(err)
	}

	type raw struct {
		product string
		date    string
		metric  entities.MetricName
		value   float64
	}
	rows := []raw{
		{"P001", "2025-01-01", entities.MetricForecast, 100},
		{"P001", "2025-02-01", entities.MetricForecast, 120},
		{"P001", "2025-01-01", entities.MetricSalesHistory, 90},
		{"P001", "2025-02-01", entities.MetricSalesHistory, 110},
		{"P001", "2025-01-01", entities.MetricBaseDemand, 80},
		{"P001", "2025-01-01", entities.MetricPromoLift, 15},
		{"P002", "2025-01-01", entities.MetricForecast, 50},
		{"P002", "2025-01-01", entities.MetricSalesHistory, 55},
		{"P003", "2025-01-01", entities.MetricForecast, 30},
		{"P003", "2025-01-01", entities.MetricSalesHistory, 30},
	}

	points := make([]*entities.TimeSeriesPoint, 0, len(rows))
	for _, r := range rows {
		day, err := time.Parse("2006-01-02", r.date)
		if err != nil {
			panic(err)
		}
		value := r.value
		point, err := entities.NewTimeSeriesPoint(
			entities.EntityKey{ProductID: entities.ProductID(r.product)},
			day, r.metric, &value,
		)
		if err != nil {
			panic(err)
		}
		points = append(points, point)
	}

	seriesRepo := memory.NewSeriesRepository()
	if err := seriesRepo.LoadPoints(points); err != nil {
		panic(err)
	}
	return hierarchyRepo, seriesRepo
}
