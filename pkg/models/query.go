package models

// Pagination defaults and bounds
const (
	DefaultLimit = 100
	MaxLimit     = 1000
)

// Sentinel values meaning "no filter"
const (
	AllSectors   = "Todos os setores"
	GlobalRegion = "Global"
)

// IndustryFilters are exact-match filters for listing industries
type IndustryFilters struct {
	Sector  string `query:"sector" json:"sector,omitempty"`
	Country string `query:"country" json:"country,omitempty"`
	Status  string `query:"status" json:"status,omitempty"`
}

// IsEmpty reports whether no filter was supplied
func (f IndustryFilters) IsEmpty() bool {
	return f == (IndustryFilters{})
}

// SearchQuery holds free-text search parameters
type SearchQuery struct {
	Query  string `query:"q" json:"q,omitempty"`
	Sector string `query:"sector" json:"sector,omitempty"`
	Region string `query:"region" json:"region,omitempty"`
}

// SectorFilter returns the sector to match, or "" when no sector filter applies
func (q SearchQuery) SectorFilter() string {
	if q.Sector == AllSectors {
		return ""
	}
	return q.Sector
}

// RegionFilter returns the region to match, or "" when no region filter applies
func (q SearchQuery) RegionFilter() string {
	if q.Region == GlobalRegion {
		return ""
	}
	return q.Region
}

// Page is a limit/skip window. Skip is applied before Limit.
type Page struct {
	Limit int `json:"limit"`
	Skip  int `json:"skip"`
}

// DefaultPage returns the window used when none is supplied
func DefaultPage() Page {
	return Page{Limit: DefaultLimit}
}

// Normalize clamps the window into valid bounds
func (p Page) Normalize() Page {
	if p.Limit <= 0 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	if p.Skip < 0 {
		p.Skip = 0
	}
	return p
}

// Apply returns the window of items selected by the page
func Apply[T any](items []T, p Page) []T {
	p = p.Normalize()
	if p.Skip >= len(items) {
		return []T{}
	}
	items = items[p.Skip:]
	if len(items) > p.Limit {
		items = items[:p.Limit]
	}
	return items
}
