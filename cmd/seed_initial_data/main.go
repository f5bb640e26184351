package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"lms-quiz/cmd/seed_initial_data/internal/seedmodels"
	"lms-quiz/internal/config"
	"lms-quiz/internal/database"
	"lms-quiz/internal/domain"
	"lms-quiz/internal/logger"
	"lms-quiz/internal/repository"

	"go.uber.org/zap"
)

const defaultSeedFilePath = "config/seed_data/demo_quizzes.json"

func main() {
	seedFilePath := flag.String("file", defaultSeedFilePath, "JSON seed file")
	flag.Parse()

	ctx := context.Background()
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

	log.Info("Starting demo quiz seeding process...")
	db, err := database.NewSQLXOracleDB(cfg)
	if err != nil {
		log.Fatal("Failed to connect to Oracle database", zap.Error(err))
	}
	defer db.Close()

	byteValue, err := os.ReadFile(*seedFilePath)
	if err != nil {
		log.Fatal("Failed to read seed file", zap.String("path", *seedFilePath), zap.Error(err))
	}

	var lessons []seedmodels.SeedLesson
	if err := json.Unmarshal(byteValue, &lessons); err != nil {
		log.Fatal("Failed to unmarshal seed data", zap.Error(err))
	}
	log.Info("Loaded seed data", zap.Int("lessons", len(lessons)))

	// Each lesson is inserted in its own transaction; a failing lesson does not stop the rest.
	quizRepo := repository.NewQuizDatabaseAdapter(db, repository.NewTransactionManagerAdapter(db))
	for _, lesson := range lessons {
		if err := seedLesson(ctx, quizRepo, log, lesson); err != nil {
			log.Error("Error seeding lesson, transaction rolled back", zap.String("lesson_id", lesson.LessonID), zap.Error(err))
		}
	}
	log.Info("Demo quiz seeding process completed.")
}

func seedLesson(ctx context.Context, repo domain.QuizRepository, log *zap.Logger, lesson seedmodels.SeedLesson) error {
	quizzes, skipped := lesson.Build()
	if skipped > 0 {
		log.Warn("Skipped invalid seed quizzes", zap.String("lesson_id", lesson.LessonID), zap.Int("skipped", skipped))
	}
	if len(quizzes) == 0 {
		return nil
	}
	if err := repo.BulkInsert(ctx, quizzes); err != nil {
		return err
	}
	log.Info("Seeded lesson", zap.String("course_id", lesson.CourseID), zap.String("lesson_id", lesson.LessonID), zap.Int("quizzes", len(quizzes)))
	return nil
}
