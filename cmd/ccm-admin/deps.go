package main

import (
	"context"
	"fmt"

	"github.com/ccmadmin/ccm-admin/internal/admin"
	"github.com/ccmadmin/ccm-admin/internal/apptree"
	"github.com/ccmadmin/ccm-admin/internal/config"
	"github.com/ccmadmin/ccm-admin/internal/db/gen"
	"github.com/jackc/pgx/v5/pgxpool"
)

func openPool(ctx context.Context, cfg config.Config) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("open database pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return pool, nil
}

// loadRegistry reads APP_TYPES_FILE when set and the compiled-in types otherwise.
func loadRegistry(cfg config.Config) (*apptree.Registry, error) {
	if cfg.AppTypesFile != "" {
		reg, err := apptree.LoadRegistry(cfg.AppTypesFile)
		if err != nil {
			return nil, fmt.Errorf("load application types: %w", err)
		}
		return reg, nil
	}
	return apptree.DefaultRegistry()
}

func newAdminService(pool *pgxpool.Pool, reg *apptree.Registry) (*admin.Service, *gen.Queries) {
	queries := gen.New(pool)
	return admin.NewService(queries, admin.PoolTransactor{Pool: pool, Queries: queries}, reg), queries
}
