package memory

import (
	"fmt"

	"github.com/optiplan/procure/pkg/domain/entities"
	"github.com/optiplan/procure/pkg/domain/repositories"
)

// ItemRepository provides in-memory item catalog storage.
// Insertion order is preserved; report tables depend on it.
type ItemRepository struct {
	items []entities.Item
	index map[entities.ItemID]int
}

// NewItemRepository creates a new in-memory item repository
func NewItemRepository() *ItemRepository {
	return &ItemRepository{index: make(map[entities.ItemID]int)}
}

// Verify interface compliance
var _ repositories.ItemRepository = (*ItemRepository)(nil)

// LoadItems loads items into the repository
func (r *ItemRepository) LoadItems(items []*entities.Item) error {
	for _, item := range items {
		if err := r.AddItem(*item); err != nil {
			return err
		}
	}
	return nil
}

// AddItem adds a single item to the repository
func (r *ItemRepository) AddItem(item entities.Item) error {
	if _, exists := r.index[item.ID]; exists {
		return fmt.Errorf("item %s already loaded", item.ID)
	}
	r.index[item.ID] = len(r.items)
	r.items = append(r.items, item)
	return nil
}

// GetItem returns the item with the given id
func (r *ItemRepository) GetItem(id entities.ItemID) (*entities.Item, error) {
	i, exists := r.index[id]
	if !exists {
		return nil, fmt.Errorf("item %s not found", id)
	}
	return &r.items[i], nil
}

// GetAllItems returns all items in insertion order
func (r *ItemRepository) GetAllItems() ([]*entities.Item, error) {
	out := make([]*entities.Item, len(r.items))
	for i := range r.items {
		out[i] = &r.items[i]
	}
	return out, nil
}
