package catalog_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/wineguy-maker/lcbo-app/internal/catalog"
)

const testHeader = "uri,title,raw_country_of_manufacture,raw_lcbo_region_name,raw_lcbo_varietal_name,raw_ec_rating,raw_ec_price,raw_ec_promo_price,stores_inventory,raw_lcbo_program,weighted_rating,raw_avg_reviews"

func readCSV(t *testing.T, rows ...string) ([]catalog.Product, catalog.Report, error) {
	t.Helper()
	doc := strings.Join(append([]string{testHeader}, rows...), "\n")
	return catalog.ReadProducts(strings.NewReader(doc))
}

func TestReadProducts_OK(t *testing.T) {
	products, rep, err := readCSV(t,
		`w1,Chateau Test,France,Bordeaux,Merlot,4.2,19.95,,12,"Vintages",4.1,120`,
		`w2,Test Cellars,United States,Napa,Cabernet,3.9,24.00,21.50,0,,3.8,44`,
	)
	if err != nil {
		t.Fatalf("ReadProducts: %v", err)
	}
	if rep.Skipped != 0 || rep.Duplicates != 0 || rep.Rows != 2 {
		t.Fatalf("unexpected report: %+v", rep)
	}
	if len(products) != 2 {
		t.Fatalf("got %d products, want 2", len(products))
	}

	p := products[0]
	if p.ID != "w1" || p.Title != "Chateau Test" || p.Country != "France" {
		t.Errorf("unexpected product: %+v", p)
	}
	if p.PriceCents != 1995 {
		t.Errorf("PriceCents = %d, want 1995", p.PriceCents)
	}
	if p.Rating != 4.2 || p.WeightedRating != 4.1 || p.Reviews != 120 {
		t.Errorf("unexpected numeric fields: %+v", p)
	}
	if p.OnSale() {
		t.Errorf("w1 should not be on sale")
	}

	if got := products[1].PromoPriceCents; got != 2150 {
		t.Errorf("w2 PromoPriceCents = %d, want 2150", got)
	}
	if !products[1].OnSale() {
		t.Errorf("w2 should be on sale")
	}
}

func TestReadProducts_MissingColumns(t *testing.T) {
	_, _, err := catalog.ReadProducts(strings.NewReader("uri,title\nw1,Wine"))
	if !errors.Is(err, catalog.ErrBadHeader) {
		t.Fatalf("err = %v, want ErrBadHeader", err)
	}
}

func TestReadProducts_SkipsMalformedRows(t *testing.T) {
	products, rep, err := readCSV(t,
		`w1,Good Wine,France,Bordeaux,Merlot,4.2,19.95,,1,,4.1,10`,
		`,Missing ID,France,Bordeaux,Merlot,4.2,19.95,,1,,4.1,10`,
		`w3,Bad Price,France,Bordeaux,Merlot,4.2,not-a-price,,1,,4.1,10`,
		`w4,Bad Rating,France,Bordeaux,Merlot,oops,19.95,,1,,4.1,10`,
	)
	if err != nil {
		t.Fatalf("ReadProducts: %v", err)
	}
	if len(products) != 1 || products[0].ID != "w1" {
		t.Fatalf("got %d products, want only w1", len(products))
	}
	if rep.Skipped != 3 {
		t.Errorf("Skipped = %d, want 3", rep.Skipped)
	}
}

func TestReadProducts_EmptyCatalog(t *testing.T) {
	_, _, err := readCSV(t,
		`,No ID,France,Bordeaux,Merlot,4.2,19.95,,1,,4.1,10`,
	)
	if !errors.Is(err, catalog.ErrEmptyCatalog) {
		t.Fatalf("err = %v, want ErrEmptyCatalog", err)
	}

	_, _, err = catalog.ReadProducts(strings.NewReader(testHeader))
	if !errors.Is(err, catalog.ErrEmptyCatalog) {
		t.Fatalf("header-only err = %v, want ErrEmptyCatalog", err)
	}
}

func TestReadProducts_DuplicateLastWins(t *testing.T) {
	products, rep, err := readCSV(t,
		`w1,First Version,France,Bordeaux,Merlot,4.0,10.00,,1,,4.0,10`,
		`w2,Other Wine,Italy,Tuscany,Sangiovese,4.5,15.00,,1,,4.4,20`,
		`w1,Second Version,France,Bordeaux,Merlot,4.1,11.00,,1,,4.1,11`,
	)
	if err != nil {
		t.Fatalf("ReadProducts: %v", err)
	}
	if rep.Duplicates != 1 {
		t.Errorf("Duplicates = %d, want 1", rep.Duplicates)
	}
	if len(products) != 2 {
		t.Fatalf("got %d products, want 2", len(products))
	}
	// Last row wins but keeps the original position.
	if products[0].ID != "w1" || products[0].Title != "Second Version" {
		t.Errorf("w1 = %+v, want second version first", products[0])
	}
	if products[0].PriceCents != 1100 {
		t.Errorf("w1 PriceCents = %d, want 1100", products[0].PriceCents)
	}
}

func TestReadProducts_BlankNumericsAreZero(t *testing.T) {
	products, _, err := readCSV(t,
		`w1,Blank Numbers,France,Bordeaux,Merlot,,,,,,N/A,`,
	)
	if err != nil {
		t.Fatalf("ReadProducts: %v", err)
	}
	p := products[0]
	if p.PriceCents != 0 || p.Rating != 0 || p.WeightedRating != 0 || p.Reviews != 0 {
		t.Errorf("blank numerics should be zero: %+v", p)
	}
}
