package hierarchy

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	testhelpers "demandrecon/pkg/application/services/testing"
	"demandrecon/pkg/domain/entities"
)

func scenarioPresence() Presence {
	points := []*entities.TimeSeriesPoint{
		testhelpers.Point("P001", "2025-01-01", entities.MetricForecast, 100),
		testhelpers.Point("P002", "2025-01-01", entities.MetricForecast, 50),
		testhelpers.Point("P003", "2025-01-01", entities.MetricSalesHistory, 30),
		// P004 is only ever null, so it has no presence
		testhelpers.NullPoint("P004", "2025-01-01", entities.MetricForecast),
	}
	return BuildPresence(points)
}

func TestResolve_CategoryOnly(t *testing.T) {
	snapshot := testhelpers.BuildBeverageSnapshot()
	presence := scenarioPresence()

	resolution, err := Resolve(snapshot, Selection{Category: "Bebidas"}, presence,
		[]entities.MetricName{entities.MetricForecast, entities.MetricSalesHistory})
	require.NoError(t, err)

	assert.Equal(t, []string{"Gaseosas", "Jugos"}, resolution.ChildGroups)
	assert.Equal(t, []entities.ProductID{"P001", "P002", "P003"}, resolution.LeafProductIDs)
	assert.Equal(t, "Gaseosas", resolution.GroupOf["P001"])
	assert.Equal(t, "Jugos", resolution.GroupOf["P003"])
	assert.Equal(t, entities.LevelSubcategory, resolution.GroupLevel)
}

func TestResolve_DataPresenceFilter(t *testing.T) {
	snapshot := testhelpers.BuildBeverageSnapshot()
	presence := scenarioPresence()

	// Only forecast requested: P003 has sales history only, so Jugos
	// drops out entirely
	resolution, err := Resolve(snapshot, Selection{Category: "Bebidas"}, presence,
		[]entities.MetricName{entities.MetricForecast})
	require.NoError(t, err)

	assert.Equal(t, []string{"Gaseosas"}, resolution.ChildGroups)
	assert.Equal(t, []entities.ProductID{"P001", "P002"}, resolution.LeafProductIDs)
	assert.NotContains(t, resolution.GroupOf, entities.ProductID("P003"))
}

func TestResolve_NullsDoNotEstablishPresence(t *testing.T) {
	presence := scenarioPresence()
	assert.NotContains(t, presence, entities.ProductID("P004"))
}

func TestResolve_Subcategory(t *testing.T) {
	snapshot := testhelpers.BuildBeverageSnapshot()
	presence := scenarioPresence()

	resolution, err := Resolve(snapshot, Selection{Category: "Bebidas", Subcategory: "Gaseosas"}, presence,
		[]entities.MetricName{entities.MetricForecast})
	require.NoError(t, err)

	assert.Equal(t, []string{"Colas"}, resolution.ChildGroups)
	assert.Equal(t, []entities.ProductID{"P001", "P002"}, resolution.LeafProductIDs)
	assert.Equal(t, "Colas", resolution.GroupOf["P001"])
	assert.Equal(t, entities.LevelSubclass, resolution.GroupLevel)
}

func TestResolve_EmptyMetricsDisablesFilter(t *testing.T) {
	snapshot := testhelpers.BuildBeverageSnapshot()

	resolution, err := Resolve(snapshot, Selection{Category: "Bebidas"}, Presence{}, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"Gaseosas", "Jugos"}, resolution.ChildGroups)
	assert.Len(t, resolution.LeafProductIDs, 4)
}

func TestResolve_InvalidSelection(t *testing.T) {
	snapshot := testhelpers.BuildBeverageSnapshot()
	presence := scenarioPresence()
	metrics := []entities.MetricName{entities.MetricForecast}

	tests := []struct {
		name  string
		sel   Selection
		level entities.HierarchyLevel
	}{
		{"missing category", Selection{}, entities.LevelCategory},
		{"unknown category", Selection{Category: "Lácteos"}, entities.LevelCategory},
		{"unknown subcategory", Selection{Category: "Bebidas", Subcategory: "Aguas"}, entities.LevelSubcategory},
		{"subcategory under wrong category", Selection{Category: "Snacks", Subcategory: "Gaseosas"}, entities.LevelSubcategory},
		{"subclass without subcategory", Selection{Category: "Bebidas", Subclass: "Colas"}, entities.LevelSubcategory},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Resolve(snapshot, tt.sel, presence, metrics)
			require.Error(t, err)

			var selErr *entities.InvalidSelectionError
			require.True(t, errors.As(err, &selErr))
			assert.Equal(t, tt.level, selErr.Level)
		})
	}
}
