package catalog_test

import (
	"testing"

	"github.com/wineguy-maker/lcbo-app/internal/catalog"
)

func TestStore_GetAndList(t *testing.T) {
	s := catalog.NewStore(testProducts())

	if s.Len() != 3 {
		t.Fatalf("Len = %d, want 3", s.Len())
	}

	p, ok := s.Get("b")
	if !ok || p.Title != "Beta Ridge" {
		t.Fatalf("Get(b) = %+v, %v", p, ok)
	}
	if _, ok := s.Get("nope"); ok {
		t.Fatalf("Get(nope) should miss")
	}

	wantIDs(t, s.List(), "a", "b", "c")
}

func TestStore_ListReturnsCopy(t *testing.T) {
	s := catalog.NewStore(testProducts())

	list := s.List()
	list[0].Title = "mutated"

	again := s.List()
	if again[0].Title != "Chateau Alpha" {
		t.Fatalf("store contents changed through List copy")
	}
}

func TestStore_Facets(t *testing.T) {
	products := testProducts()
	products = append(products, catalog.Product{ID: "d", Title: "No Facets"})
	s := catalog.NewStore(products)

	countries := s.Countries()
	if len(countries) != 2 || countries[0] != "France" || countries[1] != "United States" {
		t.Fatalf("Countries = %v", countries)
	}

	regions := s.Regions()
	if len(regions) != 3 || regions[0] != "Bordeaux" {
		t.Fatalf("Regions = %v", regions)
	}

	varietals := s.Varietals()
	if len(varietals) != 2 || varietals[0] != "Cabernet" {
		t.Fatalf("Varietals = %v", varietals)
	}
}

func TestStore_Replace(t *testing.T) {
	s := catalog.NewStore(testProducts())

	s.Replace([]catalog.Product{{ID: "z", Title: "New Table", Country: "Spain"}})

	if s.Len() != 1 {
		t.Fatalf("Len = %d, want 1 after replace", s.Len())
	}
	if _, ok := s.Get("a"); ok {
		t.Fatalf("old product survived replace")
	}
	if _, ok := s.Get("z"); !ok {
		t.Fatalf("new product missing after replace")
	}
	if c := s.Countries(); len(c) != 1 || c[0] != "Spain" {
		t.Fatalf("Countries = %v after replace", c)
	}
}
