package main

import (
	"context"
	"flag"
	"log"
	"os"

	"lms-quiz/internal/config"
	"lms-quiz/internal/database"
	"lms-quiz/internal/logger"

	"go.uber.org/zap"
)

func main() {
	dir := flag.String("dir", "database/migrations", "directory holding *.up.sql files")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	l := logger.Get()
	defer logger.Sync()

	db, err := database.NewMigrateOracleDB(cfg.GetDSN())
	if err != nil {
		l.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := database.RunMigrations(context.Background(), db, os.DirFS(*dir)); err != nil {
		l.Fatal("Failed to run migrations", zap.Error(err), zap.String("dir", *dir))
	}
}
