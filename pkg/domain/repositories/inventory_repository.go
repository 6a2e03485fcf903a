package repositories

import "github.com/optiplan/procure/pkg/domain/entities"

// InventoryRepository provides access to opening inventory positions
type InventoryRepository interface {
	GetPosition(item entities.ItemID, site entities.SiteID) (*entities.InventoryPosition, error)
	GetAllPositions() ([]*entities.InventoryPosition, error)
	LoadPositions(positions []*entities.InventoryPosition) error
}
