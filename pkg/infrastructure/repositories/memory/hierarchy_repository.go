package memory

import (
	"fmt"

	"demandrecon/pkg/domain/entities"
	"demandrecon/pkg/domain/repositories"
)

// HierarchyRepository provides in-memory hierarchy snapshot storage
type HierarchyRepository struct {
	snapshot *entities.HierarchySnapshot
}

// NewHierarchyRepository creates a new in-memory hierarchy repository
func NewHierarchyRepository() *HierarchyRepository {
	return &HierarchyRepository{}
}

// Verify interface compliance
var _ repositories.HierarchyRepository = (*HierarchyRepository)(nil)

// LoadSnapshot stores the hierarchy snapshot
func (r *HierarchyRepository) LoadSnapshot(snapshot *entities.HierarchySnapshot) error {
	if snapshot == nil {
		return fmt.Errorf("snapshot cannot be nil")
	}
	r.snapshot = snapshot
	return nil
}

// GetSnapshot returns the stored hierarchy snapshot
func (r *HierarchyRepository) GetSnapshot() (*entities.HierarchySnapshot, error) {
	if r.snapshot == nil {
		return nil, fmt.Errorf("no hierarchy snapshot loaded")
	}
	return r.snapshot, nil
}
