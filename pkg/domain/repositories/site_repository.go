package repositories

import "github.com/optiplan/procure/pkg/domain/entities"

// SiteRepository provides access to the supply chain sites
type SiteRepository interface {
	GetSite(id entities.SiteID) (*entities.Site, error)
	GetAllSites() ([]*entities.Site, error)
	GetSitesByType(siteType entities.SiteType) ([]*entities.Site, error)
	LoadSites(sites []*entities.Site) error
}
