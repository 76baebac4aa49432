package main

import (
	"context"
	"database/sql"
	"log"

	"pdfdocs-backend/internal/shared/config"
	"pdfdocs-backend/internal/shared/server"
	"pdfdocs-backend/internal/shared/storage/db"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	var sqlDB *sql.DB
	if cfg.DatabaseURL != "" {
		opts := db.OptionsFromEnv(db.DefaultServerOptions())
		conn, err := db.Connect(ctx, cfg.DatabaseURL, opts)
		if err != nil {
			log.Printf("failed to connect database, falling back to memory: %v", err)
		} else if err := db.RunMigrations(ctx, conn); err != nil {
			log.Printf("failed to run migrations, falling back to memory: %v", err)
			conn.Close()
			conn = nil
		}
		sqlDB = conn
	}
	if sqlDB != nil {
		defer sqlDB.Close()
	}

	r := server.NewRouter(cfg, sqlDB)
	addr := server.Addr(cfg.Port)
	log.Printf("Starting API server on %s", addr)

	if err := r.Run(addr); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
