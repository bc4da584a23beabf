package catalog

import "strings"

const usaCountry = "United States"

// Criteria is one filter request. An empty accepted-value set means
// "no constraint" for that attribute; all constraints combine with
// logical AND.
type Criteria struct {
	Countries map[string]struct{}
	Regions   map[string]struct{}
	Varietals map[string]struct{}

	// Search is a case-insensitive title substring.
	Search string

	InStock      bool
	OnlyVintages bool
	ExcludeUSA   bool
	OnSale       bool

	// FavoritesOnly keeps products whose ID is in Favorites.
	FavoritesOnly bool
	Favorites     map[string]struct{}
}

// ValueSet builds an accepted-value set from option values, ignoring
// blanks. A nil result means no constraint.
func ValueSet(values ...string) map[string]struct{} {
	var set map[string]struct{}
	for _, v := range values {
		if v == "" {
			continue
		}
		if set == nil {
			set = make(map[string]struct{}, len(values))
		}
		set[v] = struct{}{}
	}
	return set
}

// Apply filters products against the criteria, preserving input order.
// An empty result means no matches, never an error.
func Apply(products []Product, c Criteria) []Product {
	out := make([]Product, 0, len(products))
	search := strings.ToLower(c.Search)

	for _, p := range products {
		if !matches(p, c, search) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func matches(p Product, c Criteria, search string) bool {
	if !member(c.Countries, p.Country) {
		return false
	}
	if !member(c.Regions, p.Region) {
		return false
	}
	if !member(c.Varietals, p.Varietal) {
		return false
	}
	if search != "" && !strings.Contains(strings.ToLower(p.Title), search) {
		return false
	}
	if c.InStock && p.Inventory <= 0 {
		return false
	}
	if c.OnlyVintages && !strings.Contains(p.Program, "Vintages") {
		return false
	}
	if c.ExcludeUSA && p.Country == usaCountry {
		return false
	}
	if c.OnSale && !p.OnSale() {
		return false
	}
	if c.FavoritesOnly {
		if _, ok := c.Favorites[p.ID]; !ok {
			return false
		}
	}
	return true
}

// member treats an empty set as "no constraint".
func member(set map[string]struct{}, v string) bool {
	if len(set) == 0 {
		return true
	}
	_, ok := set[v]
	return ok
}
