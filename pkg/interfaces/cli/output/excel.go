package output

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"demandrecon/pkg/application/dto"
)

// WritePivotWorkbook exports a pivot result as an xlsx workbook, one row
// per (series, group) pair and one column per date, the shape the
// planners' spreadsheets expect
func WritePivotWorkbook(result *dto.PivotResult, path string) error {
	if err := ensureDir(path); err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Pivot"
	f.SetSheetName("Sheet1", sheet)

	dates := pivotDates(result)
	if err := setRow(f, sheet, 1, append([]any{"Series", "Group"}, toAny(dates)...)); err != nil {
		return err
	}

	for i, row := range result.Rows {
		cells := []any{string(row.Series), row.GroupKey}
		for _, date := range dates {
			value, _ := row.Value(date).Float64()
			cells = append(cells, value)
		}
		if err := setRow(f, sheet, i+2, cells); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook %s: %w", path, err)
	}
	return nil
}

// WriteAccuracyWorkbook exports an accuracy report as an xlsx workbook
// with scored and excluded entities on separate sheets
func WriteAccuracyWorkbook(report *dto.AccuracyReport, path string) error {
	if err := ensureDir(path); err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Accuracy"
	f.SetSheetName("Sheet1", sheet)

	header := []any{"Entity", "Kind", "Accuracy", "AvgError%", "Count", "LastForecast", "Trend", "Bias"}
	if err := setRow(f, sheet, 1, header); err != nil {
		return err
	}
	for i, record := range report.Records {
		cells := []any{
			record.EntityKey,
			record.Kind.String(),
			record.AccuracyScore,
			record.AvgErrorPercentage,
			record.ForecastCount,
			record.LastForecastDate.Format("2006-01-02"),
			record.Trend.String(),
		}
		if record.ForecastBias != nil {
			cells = append(cells, *record.ForecastBias)
		} else {
			cells = append(cells, "")
		}
		if err := setRow(f, sheet, i+2, cells); err != nil {
			return err
		}
	}

	if len(report.Excluded) > 0 {
		excludedSheet := "Excluded"
		if _, err := f.NewSheet(excludedSheet); err != nil {
			return fmt.Errorf("failed to add sheet: %w", err)
		}
		if err := setRow(f, excludedSheet, 1, []any{"Entity", "Reason"}); err != nil {
			return err
		}
		for i, excluded := range report.Excluded {
			if err := setRow(f, excludedSheet, i+2, []any{excluded.EntityKey, excluded.Reason}); err != nil {
				return err
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook %s: %w", path, err)
	}
	return nil
}

// WriteWaterfallWorkbook exports a waterfall batch as an xlsx workbook
// with the baseline/value/final chain per component row
func WriteWaterfallWorkbook(batch *dto.WaterfallBatch, path string) error {
	if err := ensureDir(path); err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Waterfall"
	f.SetSheetName("Sheet1", sheet)

	header := []any{"Entity", "Mode", "Order", "Component", "Baseline", "Value", "Final"}
	if err := setRow(f, sheet, 1, header); err != nil {
		return err
	}

	line := 2
	for _, result := range batch.Results {
		for _, component := range result.Components {
			baseline, _ := component.BaselineValue.Float64()
			value, _ := component.Value.Float64()
			final, _ := component.FinalValue.Float64()
			cells := []any{
				result.Entity.String(),
				result.Mode,
				component.Order,
				component.Name,
				baseline,
				value,
				final,
			}
			if err := setRow(f, sheet, line, cells); err != nil {
				return err
			}
			line++
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook %s: %w", path, err)
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, cells []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("failed to build cell reference: %w", err)
	}
	if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
		return fmt.Errorf("failed to write sheet row %d: %w", row, err)
	}
	return nil
}

func toAny(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "" || dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}
	return nil
}
