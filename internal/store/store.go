// Package store fetches order facts from the warehouse. Two drivers
// implement the same interface: postgres against the dw star schema, and
// sqlite against a flat local fixture for development.
package store

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/partsight/insight-cli/internal/config"
	"github.com/partsight/insight-cli/internal/model"
)

// FactSource is the warehouse read interface the analytics engine and the
// API server consume.
type FactSource interface {
	FetchOrderFacts(ctx context.Context, filter model.FilterSpec) ([]model.OrderFact, error)
	ListInsurers(ctx context.Context) ([]model.Insurer, error)
	Ping(ctx context.Context) error
	Close() error
}

// Open creates the FactSource named by the store configuration.
func Open(ctx context.Context, cfg config.StoreConfig) (FactSource, error) {
	switch cfg.Driver {
	case "postgres":
		return NewPostgres(ctx, cfg)
	case "sqlite":
		return NewSQLite(cfg.DatabaseURL)
	default:
		return nil, eris.Errorf("store: unknown driver %q", cfg.Driver)
	}
}

// scanner abstracts pgx.Rows and database/sql rows; both drivers select the
// same column list so one scan routine serves both.
type scanner interface {
	Scan(dest ...any) error
}
