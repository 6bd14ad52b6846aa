package main

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Simplici0/groentetuin/internal/catalog"
	"github.com/Simplici0/groentetuin/internal/config"
	"github.com/Simplici0/groentetuin/internal/db"
	"github.com/Simplici0/groentetuin/internal/harvest"
	"github.com/Simplici0/groentetuin/internal/migrations"
	"github.com/Simplici0/groentetuin/internal/seed"
	"github.com/Simplici0/groentetuin/internal/store"
)

type server struct {
	store    *store.Store
	mode     harvest.Mode
	currency string
	metrics  *metrics
	registry *prometheus.Registry
}

func newServer(st *store.Store, mode harvest.Mode, currency string) *server {
	registry := prometheus.NewRegistry()
	return &server{
		store:    st,
		mode:     mode,
		currency: currency,
		metrics:  newMetrics(registry),
		registry: registry,
	}
}

func main() {
	cfg := config.Load()

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer database.Close()

	if cfg.IsDev() {
		if err := migrations.Up(database.DB, cfg.MigrationsDir); err != nil {
			log.Fatalf("failed to run database migrations: %v", err)
		}
		stats, err := seed.Run(database)
		if err != nil {
			log.Fatalf("failed to seed database: %v", err)
		}
		log.Printf("seed: %d inserts, %d updates", stats.Inserts, stats.Updates)
	}

	st := store.New(database)
	if cfg.CatalogPath != "" {
		crops, err := catalog.LoadFile(cfg.CatalogPath)
		if err != nil {
			log.Fatalf("failed to load crop catalog: %v", err)
		}
		stats, err := catalog.Import(st, crops)
		if err != nil {
			log.Fatalf("failed to import crop catalog: %v", err)
		}
		log.Printf("catalog %s: %d inserts, %d updates", cfg.CatalogPath, stats.Inserts, stats.Updates)
	}

	mode := harvest.Permissive
	if cfg.StrictCalc {
		mode = harvest.Strict
	}
	srv := newServer(st, mode, cfg.Currency)
	srv.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (%s calculations)", addr, mode)
	if err := http.ListenAndServe(addr, srv.routes()); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Get("/healthz", s.handleHealth)
	r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))

	r.Get("/crops", s.handleCropsList)
	r.Get("/crops/{name}", s.handleCropGet)
	r.Put("/crops/{name}", s.handleCropPut)
	r.Get("/crops/{name}/yield", s.handleCropYield)

	r.Post("/farms", s.handleFarmCreate)
	r.Get("/farms", s.handleFarmsList)
	r.Get("/farms/{id}", s.handleFarmGet)
	r.Get("/farms/{id}/yield", s.handleFarmYield)
	r.Get("/farms/{id}/profit", s.handleFarmProfit)
	r.Get("/farms/{id}/report", s.handleFarmReport)

	r.Post("/calculate", s.handleCalculate)
	return r
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}
