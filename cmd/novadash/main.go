package main

import (
	"context"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"novadash/internal/auth"
	"novadash/internal/config"
	"novadash/internal/http/handlers"
	applog "novadash/internal/log"
	"novadash/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			log.SetOutput(io.MultiWriter(os.Stdout, f))
		}
	}

	stores, closeStore, err := storage.Open(context.Background(), cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer func() {
		if err := closeStore(); err != nil {
			log.Printf("[warn] closing store: %v", err)
		}
	}()

	tokens := auth.NewTokens(cfg.JWTSecret, cfg.JWTExpires)
	app := handlers.NewApp(cfg, handlers.NewDeps(stores, tokens))

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig
		applog.Event(applog.LevelInfo, "server.shutdown", nil, nil)
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Printf("[warn] shutdown: %v", err)
		}
	}()

	applog.Event(applog.LevelInfo, "server.start", nil, map[string]any{"port": cfg.Port, "driver": cfg.DBDriver})
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
