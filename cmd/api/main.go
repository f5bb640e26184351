// @title LMS Quiz API
// @version 1.0
// @description Quiz ingestion, authoring and grading for the LMS.
// @host localhost:8090
// @BasePath /api
// @schemes http https
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
// @description Type 'Bearer YOUR_JWT_TOKEN' to authorize.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"lms-quiz/internal/adapter"
	"lms-quiz/internal/app"
	"lms-quiz/internal/cache"
	"lms-quiz/internal/config"
	"lms-quiz/internal/database"
	"lms-quiz/internal/domain"
	"lms-quiz/internal/handler"
	"lms-quiz/internal/logger"
	"lms-quiz/internal/middleware"
	"lms-quiz/internal/repository"
	"lms-quiz/internal/service"
	"lms-quiz/internal/validation"

	_ "lms-quiz/cmd/api/docs"

	"github.com/gofiber/swagger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	ctx := context.Background()

	// Connect to database
	db, err := database.NewSQLXOracleDB(cfg)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Redis is optional: without it generation results are simply not cached.
	var cacheAdapter domain.Cache
	redisClient, err := cache.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		appLogger.Warn("Redis unavailable, generation cache disabled", zap.Error(err))
	} else {
		defer redisClient.Close()
		cacheAdapter = adapter.NewRedisCacheAdapter(redisClient)
		appLogger.Info("RedisCacheAdapter initialized")
	}

	pipeline, err := app.NewPipeline(ctx, cfg, cacheAdapter, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to build ingestion pipeline", zap.Error(err))
	}
	defer pipeline.Close()

	// Initialize repositories
	txManager := repository.NewTransactionManagerAdapter(db)
	quizRepository := repository.NewQuizDatabaseAdapter(db, txManager)
	targetValidator := repository.NewTargetDatabaseAdapter(db)
	submissionRepository := repository.NewSubmissionDatabaseAdapter(db)

	// Initialize services
	ingestionService := service.NewIngestionService(targetValidator, pipeline.Extractor, pipeline.Generator, pipeline.Resolver, quizRepository, cfg.Ingest, appLogger)
	quizService := service.NewQuizService(quizRepository, submissionRepository, targetValidator)
	authService, err := service.NewAuthService(cfg.Auth)
	if err != nil {
		appLogger.Fatal("Failed to create AuthService", zap.Error(err))
	}

	validator := validation.NewValidator()
	validationMiddleware := middleware.NewValidationMiddleware(validator)

	// Initialize handlers
	quizHandler := handler.NewQuizHandler(quizService, validator)
	importHandler := handler.NewImportHandler(ingestionService, validator)
	healthHandler := handler.NewHealthHandler(db, cacheAdapter)

	bodyLimit := cfg.Server.BodyLimitMB
	if bodyLimit <= 0 {
		bodyLimit = 20
	}
	server := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  30 * time.Second,
		BodyLimit:    bodyLimit * 1024 * 1024,
		ErrorHandler: middleware.ErrorHandler(),
	})

	server.Use(middleware.RequestLogger())
	server.Use(cors.New(cors.Config{AllowOrigins: "*", AllowMethods: "GET,POST,PUT,DELETE,OPTIONS", AllowHeaders: "Origin,Content-Type,Accept,Authorization", MaxAge: 300}))
	server.Use(recover.New())

	server.Get("/health", healthHandler.Health)
	server.Get("/swagger/*", swagger.HandlerDefault)

	api := server.Group("/api")
	protected := middleware.Protected(authService)
	quizID := validationMiddleware.ValidateQuizID()

	// Public reads
	api.Get("/quizzes", quizHandler.ListQuizzes)
	api.Get("/quizzes/:id", quizID, quizHandler.GetQuiz)
	api.Get("/lessons/:lessonId/quiz-stats", quizHandler.LessonStats)

	// Staff authoring
	api.Post("/quizzes/import", protected, middleware.StaffOnly(), importHandler.ImportQuizzes)
	api.Post("/quizzes", protected, middleware.StaffOnly(), quizHandler.CreateQuiz)
	api.Put("/quizzes/:id", protected, middleware.StaffOnly(), quizID, quizHandler.UpdateQuiz)
	api.Delete("/quizzes/:id", protected, middleware.StaffOnly(), quizID, quizHandler.DeleteQuiz)

	// Any authenticated user
	api.Post("/quizzes/:id/submit", protected, quizID, quizHandler.SubmitAnswer)

	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", cfg.Logger.Env))
		if err := server.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.ShutdownWithContext(shutdownCtx); err != nil {
		appLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
