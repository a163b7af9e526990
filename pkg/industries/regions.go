package industries

import "sort"

// Regions maps a region label to the countries it groups.
// It is a fixed lookup, not a stored entity.
type Regions map[string][]string

// DefaultRegions returns the built-in region table
func DefaultRegions() Regions {
	return Regions{
		"América do Sul":   {"Brasil", "Argentina", "Chile", "Paraguai", "Uruguai", "Colômbia", "Peru"},
		"Europa":           {"Alemanha", "Portugal", "França", "Espanha", "Itália"},
		"América do Norte": {"Estados Unidos", "Canadá", "México"},
		"Ásia":             {"Japão", "China", "Índia", "Coreia do Sul"},
		"África":           {"África do Sul", "Egito", "Nigéria"},
		"Oceania":          {"Austrália", "Nova Zelândia"},
	}
}

// Countries returns the countries of region. Unknown labels report false.
func (r Regions) Countries(region string) ([]string, bool) {
	countries, ok := r[region]
	return countries, ok
}

// Contains reports whether country belongs to region
func (r Regions) Contains(region, country string) bool {
	for _, c := range r[region] {
		if c == country {
			return true
		}
	}
	return false
}

// RegionOf returns the region a country belongs to, or "" if none
func (r Regions) RegionOf(country string) string {
	for _, name := range r.Names() {
		if r.Contains(name, country) {
			return name
		}
	}
	return ""
}

// Names returns the region labels in ascending order
func (r Regions) Names() []string {
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
