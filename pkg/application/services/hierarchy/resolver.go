package hierarchy

import (
	"demandrecon/pkg/domain/entities"
)

// Selection is a partial path down the product dimension tree. Category
// is mandatory; each deeper level narrows the resolved leaf set by one
// level.
type Selection struct {
	Category    string
	Subcategory string
	Subclass    string
	Class       string
}

// Presence maps each leaf product to the metrics it has non-null data
// for. Built once per request from the materialized time-series rows.
type Presence map[entities.ProductID]map[entities.MetricName]bool

// BuildPresence derives the metric-presence map from raw points. A point
// with a nil value does not establish presence.
func BuildPresence(points []*entities.TimeSeriesPoint) Presence {
	presence := make(Presence)
	for _, point := range points {
		if point.Value == nil {
			continue
		}
		metrics, ok := presence[point.Entity.ProductID]
		if !ok {
			metrics = make(map[entities.MetricName]bool)
			presence[point.Entity.ProductID] = metrics
		}
		metrics[point.Metric] = true
	}
	return presence
}

// Resolution is the result of resolving a selection: the leaf products it
// represents, the immediate child groups that carry data, and the group
// each leaf rolls up into.
type Resolution struct {
	LeafProductIDs []entities.ProductID
	ChildGroups    []string
	GroupOf        map[entities.ProductID]string
	GroupLevel     entities.HierarchyLevel
}

// Resolve maps a selection onto the snapshot. Child groups with no leaf
// holding non-null data for any of the requested metrics are excluded;
// this presence filter decides which rows appear in the pivot. An empty
// metrics list disables the filter.
//
// Pure function over the supplied snapshot and presence map; the snapshot
// is never mutated.
func Resolve(snapshot *entities.HierarchySnapshot, sel Selection, presence Presence, metrics []entities.MetricName) (*Resolution, error) {
	if sel.Category == "" {
		return nil, &entities.InvalidSelectionError{Level: entities.LevelCategory}
	}

	idx, ok := snapshot.Category(sel.Category)
	if !ok {
		return nil, &entities.InvalidSelectionError{Level: entities.LevelCategory, Name: sel.Category}
	}

	path := []struct {
		level entities.HierarchyLevel
		name  string
	}{
		{entities.LevelSubcategory, sel.Subcategory},
		{entities.LevelSubclass, sel.Subclass},
		{entities.LevelClass, sel.Class},
	}

	deepest := entities.LevelCategory
	skipped := entities.HierarchyLevel(-1)
	for _, step := range path {
		if step.name == "" {
			if skipped < 0 {
				skipped = step.level
			}
			continue
		}
		// A named level below a skipped one is not a contiguous path
		if skipped >= 0 {
			return nil, &entities.InvalidSelectionError{Level: skipped}
		}
		child, ok := snapshot.Child(idx, step.name)
		if !ok {
			return nil, &entities.InvalidSelectionError{Level: step.level, Name: step.name}
		}
		idx = child
		deepest = step.level
	}

	resolution := &Resolution{
		GroupOf:    make(map[entities.ProductID]string),
		GroupLevel: deepest + 1,
	}

	node := snapshot.Node(idx)
	for _, childIdx := range node.Children {
		childName := snapshot.Node(childIdx).Name
		included := false
		for _, leaf := range snapshot.Leaves(childIdx) {
			if !hasData(presence, leaf, metrics) {
				continue
			}
			resolution.LeafProductIDs = append(resolution.LeafProductIDs, leaf)
			resolution.GroupOf[leaf] = childName
			included = true
		}
		if included {
			resolution.ChildGroups = append(resolution.ChildGroups, childName)
		}
	}

	return resolution, nil
}

func hasData(presence Presence, leaf entities.ProductID, metrics []entities.MetricName) bool {
	if len(metrics) == 0 {
		return true
	}
	for _, metric := range metrics {
		if presence[leaf][metric] {
			return true
		}
	}
	return false
}
