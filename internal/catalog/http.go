package catalog

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/wineguy-maker/lcbo-app/pkg/kit"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// FavoriteSource supplies the favorite IDs for the favorites_only
// filter. Nil disables that filter.
type FavoriteSource interface {
	List(ctx context.Context) ([]string, error)
}

type Server struct {
	Store     *Store
	Favorites FavoriteSource
	Log       *zap.Logger
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/products", s.list)
	r.Get("/products/{id}", s.get)
	r.Get("/facets", s.facets)

	return r
}

type productPage struct {
	Total    int       `json:"total"`
	Page     int       `json:"page"`
	PageSize int       `json:"page_size"`
	Products []Product `json:"products"`
}

func (s *Server) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	order, ok := ParseSortOrder(q.Get("sort"))
	if !ok {
		kit.WriteError(w, r, http.StatusBadRequest, "unknown sort order", map[string]any{"sort": q.Get("sort")})
		return
	}

	c := Criteria{
		Countries:     ValueSet(q["country"]...),
		Regions:       ValueSet(q["region"]...),
		Varietals:     ValueSet(q["varietal"]...),
		Search:        q.Get("q"),
		InStock:       boolParam(q.Get("in_stock")),
		OnlyVintages:  boolParam(q.Get("only_vintages")),
		ExcludeUSA:    boolParam(q.Get("exclude_usa")),
		OnSale:        boolParam(q.Get("on_sale")),
		FavoritesOnly: boolParam(q.Get("favorites_only")),
	}

	if c.FavoritesOnly {
		if s.Favorites == nil {
			kit.WriteError(w, r, http.StatusBadRequest, "favorites filter unavailable", nil)
			return
		}
		ids, err := s.Favorites.List(r.Context())
		if err != nil {
			if s.Log != nil {
				s.Log.Error("load favorites for filter failed", zap.Error(err))
			}
			kit.WriteError(w, r, http.StatusServiceUnavailable, "favorites unavailable", nil)
			return
		}
		c.Favorites = ValueSet(ids...)
		if c.Favorites == nil {
			c.Favorites = map[string]struct{}{}
		}
	}

	matched := Apply(s.Store.List(), c)
	Sort(matched, order)

	page, pageSize := pageParams(q.Get("page"), q.Get("page_size"))
	kit.WriteJSON(w, http.StatusOK, productPage{
		Total:    len(matched),
		Page:     page,
		PageSize: pageSize,
		Products: slicePage(matched, page, pageSize),
	})
}

func (s *Server) get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	p, ok := s.Store.Get(id)
	if !ok {
		kit.WriteError(w, r, http.StatusNotFound, "not found", map[string]any{"id": id})
		return
	}
	kit.WriteJSON(w, http.StatusOK, p)
}

func (s *Server) facets(w http.ResponseWriter, r *http.Request) {
	kit.WriteJSON(w, http.StatusOK, map[string][]string{
		"countries": s.Store.Countries(),
		"regions":   s.Store.Regions(),
		"varietals": s.Store.Varietals(),
	})
}

func boolParam(v string) bool {
	b, err := strconv.ParseBool(v)
	return err == nil && b
}

func pageParams(pageStr, sizeStr string) (page, size int) {
	page, size = 1, defaultPageSize

	if n, err := strconv.Atoi(pageStr); err == nil && n > 0 {
		page = n
	}
	if n, err := strconv.Atoi(sizeStr); err == nil && n > 0 {
		size = n
		if size > maxPageSize {
			size = maxPageSize
		}
	}
	return page, size
}

func slicePage(products []Product, page, size int) []Product {
	// Compare before multiplying: (page-1)*size overflows for huge
	// page values and a negative start would slice out of range.
	if page-1 > len(products)/size {
		return []Product{}
	}
	start := (page - 1) * size
	if start >= len(products) {
		return []Product{}
	}
	end := start + size
	if end > len(products) {
		end = len(products)
	}
	return products[start:end]
}
