package main

import (
	"context"
	"log"
	"time"

	"novadash/internal/auth"
	"novadash/internal/config"
	applog "novadash/internal/log"
	"novadash/internal/services"
	"novadash/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	stores, closeStore, err := storage.Open(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer closeStore()

	authSvc := services.NewAuthService(stores.Users, auth.NewTokens(cfg.JWTSecret, cfg.JWTExpires))
	res, err := services.Seed(ctx, stores, authSvc)
	if err != nil {
		applog.Event(applog.LevelError, "seed.fail", err, nil)
		closeStore()
		log.Fatal("seed failed")
	}

	if res.AdminCreated {
		applog.Event(applog.LevelInfo, "seed.admin.create", nil, map[string]any{"email": services.SeedAdminEmail})
	} else {
		applog.Event(applog.LevelInfo, "seed.admin.exists", nil, map[string]any{"email": services.SeedAdminEmail})
	}
	applog.Event(applog.LevelInfo, "seed.complete", nil, map[string]any{
		"customers": res.Customers,
		"products":  res.Products,
		"orders":    res.Orders,
	})
}
