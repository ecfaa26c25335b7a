package entities

import "fmt"

// HierarchyLevel is one level of the product dimension tree
type HierarchyLevel int

const (
	LevelCategory HierarchyLevel = iota
	LevelSubcategory
	LevelSubclass
	LevelClass
	LevelProduct
)

// String method for HierarchyLevel enum
func (l HierarchyLevel) String() string {
	switch l {
	case LevelCategory:
		return "category"
	case LevelSubcategory:
		return "subcategory"
	case LevelSubclass:
		return "subclass"
	case LevelClass:
		return "class"
	case LevelProduct:
		return "product"
	default:
		return "Unknown"
	}
}

// DimensionNode is one node of the hierarchy snapshot. Children are
// indexes into the snapshot's node arena; Parent is kept as a name only,
// for display and lookup, never for traversal.
type DimensionNode struct {
	Level    HierarchyLevel
	Name     string
	Parent   string
	Children []int
}

// HierarchySnapshot is a per-request, read-only snapshot of the product
// dimension tree, built from the external hierarchy store. Nodes live in
// a flat arena; identity is positional, so equal names under different
// parents stay distinct.
type HierarchySnapshot struct {
	nodes      []DimensionNode
	roots      []int
	childIndex map[int]map[string]int
	rootIndex  map[string]int
}

// NewHierarchySnapshot creates an empty snapshot
func NewHierarchySnapshot() *HierarchySnapshot {
	return &HierarchySnapshot{
		childIndex: make(map[int]map[string]int),
		rootIndex:  make(map[string]int),
	}
}

// AddProduct inserts one full category path ending at a leaf product.
// Intermediate nodes are created on first sight and reused afterwards, so
// insertion order defines child order.
func (s *HierarchySnapshot) AddProduct(category, subcategory, subclass, class string, product ProductID) error {
	if category == "" {
		return fmt.Errorf("category cannot be empty")
	}
	if product == "" {
		return fmt.Errorf("product id cannot be empty")
	}
	names := []string{category, subcategory, subclass, class, string(product)}
	for i := 1; i < len(names)-1; i++ {
		if names[i] == "" {
			return fmt.Errorf("%s cannot be empty for product %s", HierarchyLevel(i), product)
		}
	}

	parent := -1
	parentName := ""
	for level, name := range names {
		idx, ok := s.findChild(parent, name)
		if !ok {
			idx = len(s.nodes)
			s.nodes = append(s.nodes, DimensionNode{
				Level:  HierarchyLevel(level),
				Name:   name,
				Parent: parentName,
			})
			if parent < 0 {
				s.roots = append(s.roots, idx)
				s.rootIndex[name] = idx
			} else {
				s.nodes[parent].Children = append(s.nodes[parent].Children, idx)
				if s.childIndex[parent] == nil {
					s.childIndex[parent] = make(map[string]int)
				}
				s.childIndex[parent][name] = idx
			}
		}
		parent = idx
		parentName = name
	}
	return nil
}

func (s *HierarchySnapshot) findChild(parent int, name string) (int, bool) {
	if parent < 0 {
		idx, ok := s.rootIndex[name]
		return idx, ok
	}
	idx, ok := s.childIndex[parent][name]
	return idx, ok
}

// Category returns the arena index of the named category
func (s *HierarchySnapshot) Category(name string) (int, bool) {
	idx, ok := s.rootIndex[name]
	return idx, ok
}

// Child returns the arena index of the named child of the given node
func (s *HierarchySnapshot) Child(parent int, name string) (int, bool) {
	return s.findChild(parent, name)
}

// Node returns the node at the given arena index
func (s *HierarchySnapshot) Node(idx int) DimensionNode {
	return s.nodes[idx]
}

// Categories returns the category names in insertion order
func (s *HierarchySnapshot) Categories() []string {
	names := make([]string, 0, len(s.roots))
	for _, idx := range s.roots {
		names = append(names, s.nodes[idx].Name)
	}
	return names
}

// ChildNames returns the names of a node's children in insertion order
func (s *HierarchySnapshot) ChildNames(idx int) []string {
	node := s.nodes[idx]
	names := make([]string, 0, len(node.Children))
	for _, child := range node.Children {
		names = append(names, s.nodes[child].Name)
	}
	return names
}

// Leaves returns every product id under the given node, in insertion
// order
func (s *HierarchySnapshot) Leaves(idx int) []ProductID {
	node := s.nodes[idx]
	if node.Level == LevelProduct {
		return []ProductID{ProductID(node.Name)}
	}
	var leaves []ProductID
	for _, child := range node.Children {
		leaves = append(leaves, s.Leaves(child)...)
	}
	return leaves
}

// Len returns the number of nodes in the snapshot arena
func (s *HierarchySnapshot) Len() int {
	return len(s.nodes)
}
