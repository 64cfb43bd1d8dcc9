package main

import (
	"database/sql"
	"net/http"
	"os"

	"dogwalks/internal/adapters/storage/postgres"
	"dogwalks/internal/config"
	"dogwalks/internal/platform/logger"
	"dogwalks/internal/router"
)

func main() {
	cfg := config.Load()

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
	})

	r := router.NewRouter(router.Options{
		AuthVerifier: nil, // sin verifier para modo dev
		DB:           openDB(cfg, log),
		Logger:       log,
		Cfg:          cfg,
	})

	addr := ":" + cfg.Port
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	log.Info("starting server", map[string]any{"addr": addr})
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
}

// openDB abre Postgres si hay DSN configurado; sin DSN el servicio corre
// con repos in-memory. Si la DB está configurada pero no responde, abortamos:
// mejor que arrancar con un storage que no es el pedido.
func openDB(cfg config.Config, log logger.Logger) *sql.DB {
	if cfg.DBDSN == "" {
		log.Info("no DB_DSN, using in-memory storage", nil)
		return nil
	}

	db, err := postgres.Open(cfg.DBDSN)
	if err != nil {
		log.Error("postgres connection failed", map[string]any{"error": err.Error()})
		os.Exit(1)
	}

	if cfg.MigrateOnStart {
		if err := postgres.RunMigrations(db); err != nil {
			log.Error("migrations failed", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
		log.Info("migrations applied", nil)
	}

	return db
}
