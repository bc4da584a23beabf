package favorites

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/wineguy-maker/lcbo-app/internal/catalog"
	"github.com/wineguy-maker/lcbo-app/pkg/kit"
)

// Server exposes the favorites set. Reads are open; mutations must sit
// behind the session middleware the router applies. The store itself
// does not check sessions.
type Server struct {
	Store   Store
	Catalog *catalog.Store
	Log     *zap.Logger
}

// Routes wires the favorites endpoints, meant to be mounted at
// /favorites. requireSession guards the mutating verbs only.
func (s *Server) Routes(requireSession func(http.Handler) http.Handler) http.Handler {
	r := chi.NewRouter()

	r.Get("/", s.list)
	r.Group(func(r chi.Router) {
		r.Use(requireSession)
		r.Put("/{id}", s.add)
		r.Delete("/{id}", s.remove)
	})

	return r
}

type listResp struct {
	Products []catalog.Product `json:"products"`
}

// list returns the favorite products. IDs no longer present in the
// catalog are ignored, not an error: the catalog may have been
// refreshed since the favorite was saved.
func (s *Server) list(w http.ResponseWriter, r *http.Request) {
	ids, err := s.Store.List(r.Context())
	if err != nil {
		s.writeStoreError(w, r, "list favorites", err)
		return
	}

	products := make([]catalog.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := s.Catalog.Get(id); ok {
			products = append(products, p)
		}
	}

	kit.WriteJSON(w, http.StatusOK, listResp{Products: products})
}

func (s *Server) add(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if _, ok := s.Catalog.Get(id); !ok {
		kit.WriteError(w, r, http.StatusNotFound, "unknown product", map[string]any{"id": id})
		return
	}

	already, err := s.Store.Contains(r.Context(), id)
	if err != nil {
		s.writeStoreError(w, r, "check favorite", err)
		return
	}

	if err := s.Store.Add(r.Context(), id); err != nil {
		s.writeStoreError(w, r, "add favorite", err)
		return
	}

	if already {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (s *Server) remove(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := s.Store.Remove(r.Context(), id); err != nil {
		s.writeStoreError(w, r, "remove favorite", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) writeStoreError(w http.ResponseWriter, r *http.Request, op string, err error) {
	if s.Log != nil {
		s.Log.Error(op+" failed", zap.Error(err))
	}
	if errors.Is(err, ErrPersistence) {
		kit.WriteError(w, r, http.StatusServiceUnavailable, "favorites storage unavailable", nil)
		return
	}
	kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
}
