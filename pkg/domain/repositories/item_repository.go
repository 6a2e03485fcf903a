package repositories

import "github.com/optiplan/procure/pkg/domain/entities"

// ItemRepository provides access to the item catalog
type ItemRepository interface {
	GetItem(id entities.ItemID) (*entities.Item, error)
	GetAllItems() ([]*entities.Item, error)
	LoadItems(items []*entities.Item) error
}
