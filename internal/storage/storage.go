// Package storage opens the backend named by DB_DRIVER.
package storage

import (
	"context"
	"fmt"

	"novadash/internal/config"
	"novadash/internal/mongostore"
	"novadash/internal/repos"
	"novadash/internal/services"
)

// Open returns the configured stores and a func that releases the connection.
func Open(ctx context.Context, cfg config.Config) (services.Stores, func() error, error) {
	switch cfg.DBDriver {
	case "", "sqlite":
		db, err := repos.OpenDB(cfg.DBDSN)
		if err != nil {
			return services.Stores{}, nil, fmt.Errorf("open sqlite %s: %w", cfg.DBDSN, err)
		}
		return repos.Stores(db), db.Close, nil
	case "mongo":
		s, err := mongostore.Open(ctx, cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			return services.Stores{}, nil, err
		}
		return s.Stores(), func() error { return s.Close(context.Background()) }, nil
	default:
		return services.Stores{}, nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
}
