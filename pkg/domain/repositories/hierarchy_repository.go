package repositories

import "demandrecon/pkg/domain/entities"

// HierarchyRepository provides access to the product dimension snapshot
type HierarchyRepository interface {
	GetSnapshot() (*entities.HierarchySnapshot, error)
	LoadSnapshot(snapshot *entities.HierarchySnapshot) error
}
