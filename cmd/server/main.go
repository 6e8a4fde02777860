package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"lunchbot/internal/chat"
	"lunchbot/internal/config"
	"lunchbot/internal/server"
	"lunchbot/internal/service"
	"lunchbot/internal/storage"
	mongostore "lunchbot/internal/storage/mongo"
	"lunchbot/internal/storage/sqlite"
	"lunchbot/pkg/logging"
)

func main() {
	cfg := config.Load()
	logging.Setup(cfg.LogLevel)

	store, err := openStore(cfg)
	if err != nil {
		slog.Error("Failed to initialize storage", "backend", cfg.Backend, "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "backend", cfg.Backend)

	groups := service.NewGroups(store)
	events := service.NewEvents(store)
	machine := chat.NewMachine(groups, events, cfg.SessionIdleTTL)

	srv := server.New(groups, events, machine)

	slog.Info("Server starting", "address", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, srv.Router()); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func openStore(cfg config.Config) (storage.Store, error) {
	switch cfg.Backend {
	case "mongo":
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return mongostore.New(ctx, cfg.MongoURI, cfg.MongoDB)
	default:
		return sqlite.New(cfg.DBPath)
	}
}
