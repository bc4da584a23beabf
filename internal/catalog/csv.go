package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

var (
	ErrBadHeader    = errors.New("catalog header missing required columns")
	ErrEmptyCatalog = errors.New("catalog has no usable rows")
)

// Column names as exported by the LCBO scrape.
const (
	colID          = "uri"
	colTitle       = "title"
	colCountry     = "raw_country_of_manufacture"
	colRegion      = "raw_lcbo_region_name"
	colVarietal    = "raw_lcbo_varietal_name"
	colProgram     = "raw_lcbo_program"
	colVolume      = "raw_lcbo_unit_volume"
	colDescription = "raw_ec_shortdesc"
	colThumbnail   = "raw_ec_thumbnails"
	colPrice       = "raw_ec_price"
	colPromoPrice  = "raw_ec_promo_price"
	colRating      = "raw_ec_rating"
	colWeighted    = "weighted_rating"
	colReviews     = "raw_avg_reviews"
	colInventory   = "stores_inventory"
	colViewYearly  = "raw_view_rank_yearly"
	colViewMonthly = "raw_view_rank_monthly"
	colSellYearly  = "raw_sell_rank_yearly"
	colSellMonthly = "raw_sell_rank_monthly"
)

var requiredColumns = []string{
	colID, colTitle, colCountry, colRegion, colVarietal, colRating, colPrice,
}

// Report describes what happened during a catalog load.
type Report struct {
	Rows       int // data rows seen
	Skipped    int // rows dropped as malformed
	Duplicates int // rows that replaced an earlier row with the same ID
}

// ReadProducts parses the catalog CSV. The header must name every
// required column or the whole load fails with ErrBadHeader.
// Malformed rows are skipped and counted in the Report; a duplicate ID
// replaces the earlier row in place (last wins). Zero usable rows is
// ErrEmptyCatalog.
func ReadProducts(r io.Reader) ([]Product, Report, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, Report{}, fmt.Errorf("read catalog header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}

	var missing []string
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, Report{}, fmt.Errorf("%w: %s", ErrBadHeader, strings.Join(missing, ", "))
	}

	var (
		rep   Report
		out   []Product
		index = make(map[string]int)
	)

	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			rep.Rows++
			rep.Skipped++
			continue
		}

		rep.Rows++
		p, ok := parseRow(record, cols)
		if !ok {
			rep.Skipped++
			continue
		}

		if at, dup := index[p.ID]; dup {
			out[at] = p
			rep.Duplicates++
			continue
		}
		index[p.ID] = len(out)
		out = append(out, p)
	}

	if len(out) == 0 {
		return nil, rep, ErrEmptyCatalog
	}
	return out, rep, nil
}

func parseRow(record []string, cols map[string]int) (Product, bool) {
	field := func(name string) string {
		i, ok := cols[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	p := Product{
		ID:          field(colID),
		Title:       field(colTitle),
		Country:     field(colCountry),
		Region:      field(colRegion),
		Varietal:    field(colVarietal),
		Program:     field(colProgram),
		Volume:      field(colVolume),
		Description: field(colDescription),
		Thumbnail:   field(colThumbnail),
	}
	if p.ID == "" || p.Title == "" {
		return Product{}, false
	}

	var ok bool
	if p.PriceCents, ok = parseCents(field(colPrice)); !ok {
		return Product{}, false
	}
	if p.Rating, ok = parseFloat(field(colRating)); !ok {
		return Product{}, false
	}

	// Optional numeric columns: blanks and junk become zero values.
	p.PromoPriceCents, _ = parseCents(field(colPromoPrice))
	p.WeightedRating, _ = parseFloat(field(colWeighted))
	p.Reviews = parseCount(field(colReviews))
	p.Inventory = parseCount(field(colInventory))
	p.ViewRankYearly = parseCount(field(colViewYearly))
	p.ViewRankMonthly = parseCount(field(colViewMonthly))
	p.SellRankYearly = parseCount(field(colSellYearly))
	p.SellRankMonthly = parseCount(field(colSellMonthly))

	return p, true
}

// parseCents converts a dollar amount like "19.95" to cents. Blank and
// the scraper's "N/A" placeholder mean "no value", which is valid.
func parseCents(s string) (int64, bool) {
	f, ok := parseFloat(s)
	if !ok {
		return 0, false
	}
	return int64(math.Round(f * 100)), true
}

func parseFloat(s string) (float64, bool) {
	if s == "" || strings.EqualFold(s, "n/a") {
		return 0, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func parseCount(s string) int {
	f, ok := parseFloat(s)
	if !ok || f < 0 {
		return 0
	}
	return int(f)
}
