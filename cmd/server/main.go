package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"hornada/internal/catalog"
	catalogrepo "hornada/internal/catalog/repository"
	"hornada/internal/commons"
	"hornada/internal/config"
	"hornada/internal/costing"
	"hornada/internal/infrastructure/logger"
	"hornada/internal/infrastructure/mysql"
	"hornada/internal/ledger"
	"hornada/internal/recipe"
	"hornada/internal/report"
	reportrepo "hornada/internal/report/repository"
	"hornada/internal/server"
)

func main() {
	_ = godotenv.Load()

	var cfg *config.Config
	var err error
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		cfg, err = commons.LoadConfig(path)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	zapLogger, err := logger.New(cfg.Log.Level)
	if err != nil {
		log.Fatalf("creating logger: %v", err)
	}
	defer zapLogger.Sync()

	db, err := mysql.NewConnection(cfg.Database)
	if err != nil {
		zapLogger.Fatal("connecting to database", zap.Error(err))
	}
	defer db.Close()
	zapLogger.Info("database connected")

	snapshotRepo := reportrepo.NewMySQLSnapshotRepository(db)
	costWriter := catalogrepo.NewMySQLRepository(db)
	refresher := costing.NewRefresher(snapshotRepo, costWriter, zapLogger)

	catalogCtrl := catalog.NewModule(db, refresher, zapLogger)
	recipeCtrl := recipe.NewModule(db, refresher, zapLogger)
	ledgerCtrl := ledger.NewModule(db, cfg, zapLogger)
	reportCtrl := report.NewModule(db, zapLogger)

	router := server.NewRouter(catalogCtrl, recipeCtrl, ledgerCtrl, reportCtrl, zapLogger)

	srv := server.New(cfg.Server.Port, router, zapLogger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.Start(); err != nil {
			zapLogger.Fatal("server error", zap.Error(err))
		}
	}()

	<-quit
	zapLogger.Info("received shutdown signal")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Fatal("server shutdown failed", zap.Error(err))
	}

	zapLogger.Info("server stopped gracefully")
}
