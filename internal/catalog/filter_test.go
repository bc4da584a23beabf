package catalog_test

import (
	"testing"

	"github.com/wineguy-maker/lcbo-app/internal/catalog"
)

func testProducts() []catalog.Product {
	return []catalog.Product{
		{ID: "a", Title: "Chateau Alpha", Country: "France", Region: "Bordeaux", Varietal: "Merlot", Inventory: 3, Program: "['Vintages']", WeightedRating: 4.0},
		{ID: "b", Title: "Beta Ridge", Country: "United States", Region: "Napa", Varietal: "Merlot", Inventory: 0, PromoPriceCents: 1500, WeightedRating: 3.5},
		{ID: "c", Title: "Gamma Estate", Country: "France", Region: "Rhone", Varietal: "Cabernet", Inventory: 5, WeightedRating: 4.5},
	}
}

func ids(products []catalog.Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}

func wantIDs(t *testing.T, got []catalog.Product, want ...string) {
	t.Helper()
	g := ids(got)
	if len(g) != len(want) {
		t.Fatalf("got %v, want %v", g, want)
	}
	for i := range want {
		if g[i] != want[i] {
			t.Fatalf("got %v, want %v", g, want)
		}
	}
}

func TestApply_EmptyCriteriaIsIdentity(t *testing.T) {
	in := testProducts()
	out := catalog.Apply(in, catalog.Criteria{})
	wantIDs(t, out, "a", "b", "c")
}

func TestApply_SingleAttribute(t *testing.T) {
	out := catalog.Apply(testProducts(), catalog.Criteria{
		Countries: catalog.ValueSet("France"),
	})
	wantIDs(t, out, "a", "c")
}

func TestApply_AttributesCombineWithAND(t *testing.T) {
	out := catalog.Apply(testProducts(), catalog.Criteria{
		Countries: catalog.ValueSet("France"),
		Varietals: catalog.ValueSet("Merlot"),
	})
	wantIDs(t, out, "a")
}

func TestApply_MultiValueSetIsMembership(t *testing.T) {
	out := catalog.Apply(testProducts(), catalog.Criteria{
		Regions: catalog.ValueSet("Bordeaux", "Napa"),
	})
	wantIDs(t, out, "a", "b")
}

func TestApply_NoMatchesIsEmptyNotError(t *testing.T) {
	out := catalog.Apply(testProducts(), catalog.Criteria{
		Countries: catalog.ValueSet("Chile"),
	})
	if len(out) != 0 {
		t.Fatalf("got %v, want empty", ids(out))
	}
}

func TestApply_ResultSatisfiesEveryConstraint(t *testing.T) {
	c := catalog.Criteria{
		Countries: catalog.ValueSet("France", "United States"),
		Varietals: catalog.ValueSet("Merlot"),
		InStock:   true,
	}
	for _, p := range catalog.Apply(testProducts(), c) {
		if _, ok := c.Countries[p.Country]; !ok {
			t.Errorf("%s violates country constraint", p.ID)
		}
		if _, ok := c.Varietals[p.Varietal]; !ok {
			t.Errorf("%s violates varietal constraint", p.ID)
		}
		if p.Inventory <= 0 {
			t.Errorf("%s violates in-stock constraint", p.ID)
		}
	}
}

func TestApply_Flags(t *testing.T) {
	tests := []struct {
		name string
		c    catalog.Criteria
		want []string
	}{
		{"in stock", catalog.Criteria{InStock: true}, []string{"a", "c"}},
		{"only vintages", catalog.Criteria{OnlyVintages: true}, []string{"a"}},
		{"exclude usa", catalog.Criteria{ExcludeUSA: true}, []string{"a", "c"}},
		{"on sale", catalog.Criteria{OnSale: true}, []string{"b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wantIDs(t, catalog.Apply(testProducts(), tt.c), tt.want...)
		})
	}
}

func TestApply_Search(t *testing.T) {
	out := catalog.Apply(testProducts(), catalog.Criteria{Search: "chateau"})
	wantIDs(t, out, "a")

	out = catalog.Apply(testProducts(), catalog.Criteria{Search: "ZZZ"})
	wantIDs(t, out)
}

func TestApply_FavoritesOnly(t *testing.T) {
	out := catalog.Apply(testProducts(), catalog.Criteria{
		FavoritesOnly: true,
		Favorites:     catalog.ValueSet("b", "c"),
	})
	wantIDs(t, out, "b", "c")

	// No favorites at all means nothing matches.
	out = catalog.Apply(testProducts(), catalog.Criteria{FavoritesOnly: true})
	wantIDs(t, out)
}

func TestApply_PreservesOrder(t *testing.T) {
	in := testProducts()
	// Reverse the slice; output must follow input order, not ID order.
	rev := []catalog.Product{in[2], in[1], in[0]}
	out := catalog.Apply(rev, catalog.Criteria{Countries: catalog.ValueSet("France")})
	wantIDs(t, out, "c", "a")
}
