package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"demandrecon/pkg/domain/entities"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("DEMANDRECON_ACCURACY_THRESHOLD", "")
	t.Setenv("DEMANDRECON_WATERFALL_PRECISION", "")
	t.Setenv("DEMANDRECON_CACHE_TTL", "")
	t.Setenv("DEMANDRECON_OUTPUT_DIR", "")

	cfg := LoadConfig()
	assert.Equal(t, 75.0, cfg.AccuracyThreshold)
	assert.Equal(t, int32(0), cfg.WaterfallPrecision)
	assert.Equal(t, 15*time.Minute, cfg.CacheTTL)
	assert.Empty(t, cfg.OutputDir)
}

func TestLoadConfig_FromEnvironment(t *testing.T) {
	t.Setenv("DEMANDRECON_ACCURACY_THRESHOLD", "90.5")
	t.Setenv("DEMANDRECON_WATERFALL_PRECISION", "2")
	t.Setenv("DEMANDRECON_CACHE_TTL", "1h")
	t.Setenv("DEMANDRECON_OUTPUT_DIR", "/tmp/out")

	cfg := LoadConfig()
	assert.Equal(t, 90.5, cfg.AccuracyThreshold)
	assert.Equal(t, int32(2), cfg.WaterfallPrecision)
	assert.Equal(t, time.Hour, cfg.CacheTTL)
	assert.Equal(t, "/tmp/out", cfg.OutputDir)
}

func TestLoadConfig_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("DEMANDRECON_ACCURACY_THRESHOLD", "not-a-number")
	t.Setenv("DEMANDRECON_CACHE_TTL", "soon")

	cfg := LoadConfig()
	assert.Equal(t, 75.0, cfg.AccuracyThreshold)
	assert.Equal(t, 15*time.Minute, cfg.CacheTTL)
}

func TestLoadSeriesDefinitions_EmptyPath(t *testing.T) {
	defs, err := LoadSeriesDefinitions("")
	require.NoError(t, err)
	assert.Equal(t, entities.DefaultSeriesDefinitions(), defs)
}

func TestLoadSeriesDefinitions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "series.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"series:\n"+
			"  - name: \"Forecast\"\n"+
			"    metric: \"forecast\"\n"+
			"  - name: \"Historia de ventas\"\n"+
			"    metric: \"sales_history\"\n"), 0644))

	defs, err := LoadSeriesDefinitions(path)
	require.NoError(t, err)
	require.Len(t, defs, 2)

	// File order defines the pivot's series order
	assert.Equal(t, entities.SeriesForecast, defs[0].Name)
	assert.Equal(t, entities.MetricForecast, defs[0].Metric)
	assert.Equal(t, entities.SeriesSalesHistory, defs[1].Name)
	assert.Equal(t, entities.MetricSalesHistory, defs[1].Metric)
}

func TestLoadSeriesDefinitions_NoSeries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "series.yaml")
	require.NoError(t, os.WriteFile(path, []byte("series: []\n"), 0644))

	_, err := LoadSeriesDefinitions(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "define no series")
}

func TestLoadSeriesDefinitions_MissingFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "series.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"series:\n  - name: \"Forecast\"\n"), 0644))

	_, err := LoadSeriesDefinitions(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name and metric are required")
}

func TestLoadSeriesDefinitions_MissingFile(t *testing.T) {
	_, err := LoadSeriesDefinitions(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read")
}
