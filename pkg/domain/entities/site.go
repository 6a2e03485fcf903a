package entities

import "fmt"

// SiteID uniquely identifies a supply chain site
type SiteID string

// SiteType represents the role of a site in the two-echelon network
type SiteType int

const (
	Warehouse SiteType = iota
	Supplier
)

// String method for SiteType enum
func (s SiteType) String() string {
	switch s {
	case Warehouse:
		return "Warehouse"
	case Supplier:
		return "Supplier"
	default:
		return "Unknown"
	}
}

// ParseSiteType parses the textual site type used by the input tables
func ParseSiteType(s string) (SiteType, error) {
	switch s {
	case "Warehouse":
		return Warehouse, nil
	case "Supplier":
		return Supplier, nil
	default:
		return 0, fmt.Errorf("unknown site type %q (want Warehouse or Supplier)", s)
	}
}

// Site represents a supplier or warehouse location
type Site struct {
	ID   SiteID
	Name string
	Type SiteType
}
