package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"demandrecon/pkg/application/dto"
)

// Config holds configuration for output generation
type Config struct {
	Format    string
	OutputDir string
	Verbose   bool
}

// WritePivot emits a pivot result in the configured format
func WritePivot(result *dto.PivotResult, config Config) error {
	switch config.Format {
	case "text":
		return writePivotText(result)
	case "json":
		return writeJSON(result, config, "pivot.json")
	case "csv":
		return writePivotCSV(result, config)
	case "xlsx":
		return WritePivotWorkbook(result, filepath.Join(config.OutputDir, "pivot.xlsx"))
	default:
		return fmt.Errorf("unsupported output format: %s", config.Format)
	}
}

// WriteAccuracy emits an accuracy report in the configured format
func WriteAccuracy(report *dto.AccuracyReport, config Config) error {
	switch config.Format {
	case "text":
		return writeAccuracyText(report)
	case "json":
		return writeJSON(report, config, "accuracy.json")
	case "xlsx":
		return WriteAccuracyWorkbook(report, filepath.Join(config.OutputDir, "accuracy.xlsx"))
	default:
		return fmt.Errorf("unsupported output format: %s", config.Format)
	}
}

// WriteWaterfall emits a waterfall batch in the configured format
func WriteWaterfall(batch *dto.WaterfallBatch, config Config) error {
	switch config.Format {
	case "text":
		return writeWaterfallText(batch)
	case "json":
		return writeJSON(batch, config, "waterfall.json")
	case "xlsx":
		return WriteWaterfallWorkbook(batch, filepath.Join(config.OutputDir, "waterfall.xlsx"))
	default:
		return fmt.Errorf("unsupported output format: %s", config.Format)
	}
}

func writePivotText(result *dto.PivotResult) error {
	fmt.Printf("📊 Review Pivot: %s\n", selectionLabel(result))
	fmt.Printf("Groups: %d  Leaf products: %d\n\n", len(result.ChildGroups), result.LeafCount)

	dates := pivotDates(result)
	header := fmt.Sprintf("%-22s %-20s", "Series", "Group")
	for _, date := range dates {
		header += fmt.Sprintf(" %12s", date)
	}
	fmt.Println(header)

	for _, row := range result.Rows {
		line := fmt.Sprintf("%-22s %-20s", row.Series, row.GroupKey)
		for _, date := range dates {
			line += fmt.Sprintf(" %12s", row.Value(date).String())
		}
		fmt.Println(line)
	}
	fmt.Println()
	return nil
}

func writeAccuracyText(report *dto.AccuracyReport) error {
	fmt.Printf("🎯 Forecast Accuracy (threshold %.0f)\n\n", report.Threshold)
	fmt.Printf("%-15s %-18s %10s %10s %8s %-10s\n",
		"Entity", "Kind", "Accuracy", "AvgErr%", "Count", "Trend")

	for _, record := range report.Records {
		fmt.Printf("%-15s %-18s %10.1f %10.1f %8d %-10s\n",
			record.EntityKey,
			record.Kind.String(),
			record.AccuracyScore,
			record.AvgErrorPercentage,
			record.ForecastCount,
			record.Trend.String())
	}

	if len(report.LowAccuracy) > 0 {
		fmt.Printf("\n⚠️  Below threshold: %d\n", len(report.LowAccuracy))
		for _, record := range report.LowAccuracy {
			fmt.Printf("  %s (%.1f)\n", record.EntityKey, record.AccuracyScore)
		}
	}
	if len(report.Excluded) > 0 {
		fmt.Printf("\nExcluded (insufficient data): %d\n", len(report.Excluded))
		for _, excluded := range report.Excluded {
			fmt.Printf("  %s: %s\n", excluded.EntityKey, excluded.Reason)
		}
	}
	fmt.Println()
	return nil
}

func writeWaterfallText(batch *dto.WaterfallBatch) error {
	for _, result := range batch.Results {
		fmt.Printf("🌊 Waterfall (%s): %s\n", result.Mode, result.Entity.String())
		fmt.Printf("%-4s %-16s %12s %12s %12s\n",
			"#", "Component", "Baseline", "Value", "Final")
		for _, component := range result.Components {
			fmt.Printf("%-4d %-16s %12s %12s %12s\n",
				component.Order,
				component.Name,
				component.BaselineValue.String(),
				component.Value.String(),
				component.FinalValue.String())
		}
		fmt.Println()
	}

	if len(batch.Failures) > 0 {
		fmt.Printf("Failed entities: %d\n", len(batch.Failures))
		for _, failure := range batch.Failures {
			fmt.Printf("  %s: %s\n", failure.Entity.String(), failure.Reason)
		}
		fmt.Println()
	}
	return nil
}

func writePivotCSV(result *dto.PivotResult, config Config) error {
	if config.OutputDir == "" {
		return fmt.Errorf("csv output requires an output directory")
	}
	if err := os.MkdirAll(config.OutputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	path := filepath.Join(config.OutputDir, "pivot.csv")
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	dates := pivotDates(result)
	header := append([]string{"series", "group"}, dates...)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, row := range result.Rows {
		record := []string{string(row.Series), row.GroupKey}
		for _, date := range dates {
			record = append(record, row.Value(date).String())
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	if config.Verbose {
		fmt.Printf("📄 Wrote %s\n", path)
	}
	return nil
}

func writeJSON(payload any, config Config, basename string) error {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}

	if config.OutputDir == "" {
		fmt.Println(string(data))
		return nil
	}

	if err := os.MkdirAll(config.OutputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	path := filepath.Join(config.OutputDir, basename)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if config.Verbose {
		fmt.Printf("📄 Wrote %s\n", path)
	}
	return nil
}

// pivotDates collects the union of dates across rows so the table stays
// rectangular even when series cover different windows
func pivotDates(result *dto.PivotResult) []string {
	seen := make(map[string]bool)
	for _, row := range result.Rows {
		for date := range row.Values {
			seen[date] = true
		}
	}
	dates := make([]string, 0, len(seen))
	for date := range seen {
		dates = append(dates, date)
	}
	sort.Strings(dates)
	return dates
}

func selectionLabel(result *dto.PivotResult) string {
	label := result.Category
	for _, part := range []string{result.Subcategory, result.Subclass, result.Class} {
		if part == "" {
			break
		}
		label += " / " + part
	}
	return label
}
