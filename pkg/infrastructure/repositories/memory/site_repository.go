package memory

import (
	"fmt"

	"github.com/optiplan/procure/pkg/domain/entities"
	"github.com/optiplan/procure/pkg/domain/repositories"
)

// SiteRepository provides in-memory site storage
type SiteRepository struct {
	sites []entities.Site
	index map[entities.SiteID]int
}

// NewSiteRepository creates a new in-memory site repository
func NewSiteRepository() *SiteRepository {
	return &SiteRepository{index: make(map[entities.SiteID]int)}
}

// Verify interface compliance
var _ repositories.SiteRepository = (*SiteRepository)(nil)

// LoadSites loads sites into the repository
func (r *SiteRepository) LoadSites(sites []*entities.Site) error {
	for _, site := range sites {
		if err := r.AddSite(*site); err != nil {
			return err
		}
	}
	return nil
}

// AddSite adds a single site to the repository
func (r *SiteRepository) AddSite(site entities.Site) error {
	if _, exists := r.index[site.ID]; exists {
		return fmt.Errorf("site %s already loaded", site.ID)
	}
	r.index[site.ID] = len(r.sites)
	r.sites = append(r.sites, site)
	return nil
}

// GetSite returns the site with the given id
func (r *SiteRepository) GetSite(id entities.SiteID) (*entities.Site, error) {
	i, exists := r.index[id]
	if !exists {
		return nil, fmt.Errorf("site %s not found", id)
	}
	return &r.sites[i], nil
}

// GetAllSites returns all sites in insertion order
func (r *SiteRepository) GetAllSites() ([]*entities.Site, error) {
	out := make([]*entities.Site, len(r.sites))
	for i := range r.sites {
		out[i] = &r.sites[i]
	}
	return out, nil
}

// GetSitesByType returns the sites of the given type in insertion order
func (r *SiteRepository) GetSitesByType(siteType entities.SiteType) ([]*entities.Site, error) {
	var out []*entities.Site
	for i := range r.sites {
		if r.sites[i].Type == siteType {
			out = append(out, &r.sites[i])
		}
	}
	return out, nil
}
