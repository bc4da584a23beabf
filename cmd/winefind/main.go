package main

import (
	"database/sql"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/wineguy-maker/lcbo-app/internal/app"
	"github.com/wineguy-maker/lcbo-app/internal/auth"
	"github.com/wineguy-maker/lcbo-app/internal/catalog"
	"github.com/wineguy-maker/lcbo-app/internal/config"
	"github.com/wineguy-maker/lcbo-app/internal/favorites"
	"github.com/wineguy-maker/lcbo-app/pkg/kit"
)

const service = "winefind"

func main() {
	log := kit.NewLogger(service)
	defer func() { _ = log.Sync() }()

	cfg, err := config.Load(getenv("WINEFIND_CONFIG", "winefind.yaml"))
	if err != nil {
		log.Fatal("config", zap.Error(err))
	}

	store := loadCatalog(cfg.CatalogPath, log)

	favStore, closeDB := newFavoritesStore(cfg, log)
	defer closeDB()

	gate := auth.NewGate(cfg.PIN)
	jwt := auth.NewTokenMaker(cfg.SessionSecret)

	if cfg.WatchCatalog {
		w, err := catalog.NewWatcher(cfg.CatalogPath, store, log)
		if err != nil {
			log.Fatal("catalog watcher", zap.Error(err))
		}
		defer func() { _ = w.Close() }()
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	h := app.NewHandler(app.Deps{
		Log:     log,
		Service: service,
		Catalog: &catalog.Server{
			Store:     store,
			Favorites: favStore,
			Log:       log,
		},
		Auth: &auth.Server{
			Log:  log,
			Gate: gate,
			JWT:  jwt,
			TTL:  cfg.SessionDuration(),
		},
		Favorites: &favorites.Server{
			Store:   favStore,
			Catalog: store,
			Log:     log,
		},
		Registry:       registry,
		MetricsEnabled: cfg.Metrics.Enabled,
		MetricsToken:   cfg.Metrics.Token,
	})

	if err := kit.RunHTTPServer(cfg.Addr, h, log); err != nil {
		log.Fatal("http server stopped", zap.Error(err))
	}
}

func loadCatalog(path string, log *zap.Logger) *catalog.Store {
	f, err := os.Open(path)
	if err != nil {
		log.Fatal("open catalog", zap.String("path", path), zap.Error(err))
	}
	defer func() { _ = f.Close() }()

	products, rep, err := catalog.ReadProducts(f)
	if err != nil {
		log.Fatal("load catalog", zap.String("path", path), zap.Error(err))
	}

	log.Info("catalog loaded",
		zap.String("path", path),
		zap.Int("products", len(products)),
		zap.Int("skipped", rep.Skipped),
		zap.Int("duplicates", rep.Duplicates))

	return catalog.NewStore(products)
}

func newFavoritesStore(cfg config.Config, log *zap.Logger) (favorites.Store, func()) {
	if cfg.DatabaseURL != "" {
		db, err := sql.Open("pgx", cfg.DatabaseURL)
		if err != nil {
			log.Fatal("open favorites db", zap.Error(err))
		}
		log.Info("favorites store: postgres")
		return favorites.NewPostgresStore(db), func() { _ = db.Close() }
	}

	s, err := favorites.NewFileStore(cfg.FavoritesPath)
	if err != nil {
		log.Fatal("open favorites file", zap.String("path", cfg.FavoritesPath), zap.Error(err))
	}
	log.Info("favorites store: file", zap.String("path", cfg.FavoritesPath))
	return s, func() {}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
