package catalog

import "sort"

// SortOrder names one of the supported result orderings.
type SortOrder string

const (
	SortWeightedRating SortOrder = "weighted_rating" // default
	SortReviews        SortOrder = "reviews"
	SortRating         SortOrder = "rating"
	SortViewsYearly    SortOrder = "views_year"
	SortViewsMonthly   SortOrder = "views_month"
	SortSalesYearly    SortOrder = "sales_year"
	SortSalesMonthly   SortOrder = "sales_month"
)

// ParseSortOrder maps a query value to a SortOrder. Blank means the
// default weighted-rating order.
func ParseSortOrder(s string) (SortOrder, bool) {
	switch SortOrder(s) {
	case "":
		return SortWeightedRating, true
	case SortWeightedRating, SortReviews, SortRating,
		SortViewsYearly, SortViewsMonthly, SortSalesYearly, SortSalesMonthly:
		return SortOrder(s), true
	}
	return "", false
}

// Sort orders products in place. Rating-style orders are descending;
// rank-style orders are ascending with unranked products (rank 0)
// last. The sort is stable so ties keep catalog order.
func Sort(products []Product, order SortOrder) {
	var less func(a, b Product) bool

	switch order {
	case SortReviews:
		less = func(a, b Product) bool { return a.Reviews > b.Reviews }
	case SortRating:
		less = func(a, b Product) bool { return a.Rating > b.Rating }
	case SortViewsYearly:
		less = rankLess(func(p Product) int { return p.ViewRankYearly })
	case SortViewsMonthly:
		less = rankLess(func(p Product) int { return p.ViewRankMonthly })
	case SortSalesYearly:
		less = rankLess(func(p Product) int { return p.SellRankYearly })
	case SortSalesMonthly:
		less = rankLess(func(p Product) int { return p.SellRankMonthly })
	default:
		less = func(a, b Product) bool { return a.WeightedRating > b.WeightedRating }
	}

	sort.SliceStable(products, func(i, j int) bool { return less(products[i], products[j]) })
}

func rankLess(rank func(Product) int) func(a, b Product) bool {
	return func(a, b Product) bool {
		ra, rb := rank(a), rank(b)
		if ra == 0 {
			return false
		}
		if rb == 0 {
			return true
		}
		return ra < rb
	}
}
