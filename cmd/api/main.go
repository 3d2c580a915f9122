package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	pg "pet-boarding/internal/adapters/storage/postgres"
	"pet-boarding/internal/config"
	"pet-boarding/internal/platform/idgen"
	"pet-boarding/internal/platform/logger"
	"pet-boarding/internal/router"

	"go.uber.org/zap"
)

// @title Pet Boarding API
// @version 1.0
// @description Estancias, ingresos, costos, ocupación y reportes financieros de una guardería de mascotas.
// @BasePath /
func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(".env")
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	log, err := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Format: logger.ParseFormat(cfg.Log.Format),
		App:    cfg.App.Name,
	})
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	ids, err := idgen.New(cfg.App.IDNode)
	if err != nil {
		return err
	}

	var db *sql.DB
	if cfg.UsesDatabase() {
		db, err = pg.Open(cfg.DB.DSN, pg.PoolOptions{
			MaxOpenConns: cfg.DB.MaxOpenConns,
			MaxIdleConns: cfg.DB.MaxIdleConns,
		})
		if err != nil {
			return fmt.Errorf("open db: %w", err)
		}
		defer db.Close()

		if cfg.DB.AutoMigrate {
			if err := pg.Migrate(db, log.Named("migrate")); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
		}
		log.Info("using postgres store")
	} else {
		log.Warn("DB_DSN not set, using in-memory store")
	}

	h, err := router.NewRouter(router.Options{
		DB:       db,
		Logger:   log,
		Location: cfg.Location(),
		IDs:      ids,
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      h,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
