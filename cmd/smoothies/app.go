package main

import (
	"database/sql"
	"fmt"

	"smoothies/internal/database"
	"smoothies/internal/service"
)

type app struct {
	db       *sql.DB
	catalogs *service.CatalogCache
	enricher *service.Enricher
	orders   *service.OrderService
}

func newApp() (*app, error) {
	db, err := database.NewDB(cfg.DatabaseURI)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to DB: %w", err)
	}

	if err := database.InitSchema(db, cfg.DatabaseURI); err != nil {
		database.CloseDB(db, logger)
		return nil, fmt.Errorf("failed to init DB schema: %w", err)
	}

	fruits := service.NewFruitClient(cfg.FruitAPIAddress, cfg.LookupTimeout)

	return &app{
		db:       db,
		catalogs: service.NewCatalogCache(service.NewCatalogService(db, logger), cfg.CatalogRefresh),
		enricher: service.NewEnricher(fruits, logger),
		orders:   service.NewOrderService(db, cfg.Policy(), logger),
	}, nil
}

func (a *app) close() {
	database.CloseDB(a.db, logger)
}
