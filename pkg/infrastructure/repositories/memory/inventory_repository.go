package memory

import (
	"fmt"

	"github.com/optiplan/procure/pkg/domain/entities"
	"github.com/optiplan/procure/pkg/domain/repositories"
)

type positionKey struct {
	item entities.ItemID
	site entities.SiteID
}

// InventoryRepository provides in-memory opening inventory storage
type InventoryRepository struct {
	positions []entities.InventoryPosition
	index     map[positionKey]int
}

// NewInventoryRepository creates a new in-memory inventory repository
func NewInventoryRepository() *InventoryRepository {
	return &InventoryRepository{index: make(map[positionKey]int)}
}

// Verify interface compliance
var _ repositories.InventoryRepository = (*InventoryRepository)(nil)

// LoadPositions loads inventory positions into the repository
func (r *InventoryRepository) LoadPositions(positions []*entities.InventoryPosition) error {
	for _, pos := range positions {
		if err := r.AddPosition(*pos); err != nil {
			return err
		}
	}
	return nil
}

// AddPosition adds a single inventory position to the repository
func (r *InventoryRepository) AddPosition(pos entities.InventoryPosition) error {
	key := positionKey{pos.ItemID, pos.SiteID}
	if _, exists := r.index[key]; exists {
		return fmt.Errorf("inventory position for %s@%s already loaded", pos.ItemID, pos.SiteID)
	}
	r.index[key] = len(r.positions)
	r.positions = append(r.positions, pos)
	return nil
}

// GetPosition returns the inventory position for an item at a site
func (r *InventoryRepository) GetPosition(item entities.ItemID, site entities.SiteID) (*entities.InventoryPosition, error) {
	i, exists := r.index[positionKey{item, site}]
	if !exists {
		return nil, fmt.Errorf("inventory position for %s@%s not found", item, site)
	}
	return &r.positions[i], nil
}

// GetAllPositions returns all inventory positions in insertion order
func (r *InventoryRepository) GetAllPositions() ([]*entities.InventoryPosition, error) {
	out := make([]*entities.InventoryPosition, len(r.positions))
	for i := range r.positions {
		out[i] = &r.positions[i]
	}
	return out, nil
}
