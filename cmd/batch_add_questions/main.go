package main

import (
	"context"
	"flag"
	"fmt" // For initial error printing before logger is up
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"lms-quiz/internal/adapter"
	"lms-quiz/internal/app"
	"lms-quiz/internal/cache"
	"lms-quiz/internal/config"
	"lms-quiz/internal/database"
	"lms-quiz/internal/domain"
	"lms-quiz/internal/logger"
	"lms-quiz/internal/repository"
	"lms-quiz/internal/service"

	"go.uber.org/zap"
)

// Imports every file given on the command line into one lesson, e.g.
//
//	batch_add_questions -course C1 -lesson L1 -max 10 slides.pdf notes.txt
func main() {
	courseID := flag.String("course", "", "course id (required)")
	lessonID := flag.String("lesson", "", "lesson id (required)")
	maxQuestions := flag.Int("max", 0, "maximum questions per file (0 uses the configured default)")
	lang := flag.String("lang", "", "OCR language hint, e.g. vie+eng")
	flag.Parse()

	if *courseID == "" || *lessonID == "" || flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: batch_add_questions -course ID -lesson ID [-max N] [-lang L] FILE...")
		os.Exit(2)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	log := logger.Get()

	ctx := context.Background()

	db, err := database.NewSQLXOracleDB(cfg)
	if err != nil {
		log.Fatal("Failed to connect to Oracle database", zap.Error(err))
	}
	defer db.Close()

	var cacheAdapter domain.Cache
	if cfg.Redis.Address != "" {
		redisClient, err := cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			log.Warn("Redis cache unavailable. Running without cache.", zap.Error(err))
		} else {
			defer redisClient.Close()
			cacheAdapter = adapter.NewRedisCacheAdapter(redisClient)
		}
	}

	pipeline, err := app.NewPipeline(ctx, cfg, cacheAdapter, log)
	if err != nil {
		log.Fatal("Failed to build ingestion pipeline", zap.Error(err))
	}
	defer pipeline.Close()

	quizRepo := repository.NewQuizDatabaseAdapter(db, repository.NewTransactionManagerAdapter(db))
	ingestion := service.NewIngestionService(
		repository.NewTargetDatabaseAdapter(db),
		pipeline.Extractor, pipeline.Generator, pipeline.Resolver,
		quizRepo, cfg.Ingest, log,
	)

	target := domain.Target{CourseID: *courseID, LessonID: *lessonID}
	total, failed := 0, 0
	for _, path := range flag.Args() {
		data, err := os.ReadFile(path)
		if err != nil {
			log.Error("Failed to read file", zap.String("path", path), zap.Error(err))
			failed++
			continue
		}

		result, err := ingestion.Ingest(ctx, domain.IngestRequest{
			Document: domain.RawDocument{
				Data:         data,
				MediaType:    mediaTypeOf(path, data),
				LanguageHint: *lang,
			},
			Target:       target,
			MaxQuestions: *maxQuestions,
		})
		if err != nil {
			log.Error("Import failed", zap.String("path", path), zap.String("code", string(domain.CodeOf(err))), zap.Error(err))
			failed++
			continue
		}
		total += result.InsertedCount
		log.Info("Imported file", zap.String("path", path), zap.Int("questions", result.InsertedCount))
	}

	log.Info("Batch import finished", zap.Int("questions", total), zap.Int("failed_files", failed))
	if failed > 0 {
		os.Exit(1)
	}
}

func mediaTypeOf(path string, data []byte) string {
	if mt := mime.TypeByExtension(strings.ToLower(filepath.Ext(path))); mt != "" {
		return mt
	}
	return http.DetectContentType(data)
}
