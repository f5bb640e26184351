package service

import (
	"context"
	"strings"
	"time"

	"lms-quiz/internal/config"
	"lms-quiz/internal/domain"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	defaultMaxQuestions        = 10
	defaultMaxQuestionsLimit   = 50
	defaultResolverConcurrency = 4
)

// ingestionService implements domain.IngestionService
type ingestionService struct {
	targets   domain.TargetValidator
	extractor domain.TextExtractor
	generator domain.QuestionGenerator
	resolver  domain.AnswerResolver
	repo      domain.QuizRepository
	cfg       config.IngestConfig
	logger    *zap.Logger
}

// NewIngestionService wires the document-to-quiz pipeline.
func NewIngestionService(
	targets domain.TargetValidator,
	extractor domain.TextExtractor,
	generator domain.QuestionGenerator,
	resolver domain.AnswerResolver,
	repo domain.QuizRepository,
	cfg config.IngestConfig,
	logger *zap.Logger,
) domain.IngestionService {
	if cfg.DefaultMaxQuestions <= 0 {
		cfg.DefaultMaxQuestions = defaultMaxQuestions
	}
	if cfg.MaxQuestionsLimit <= 0 {
		cfg.MaxQuestionsLimit = defaultMaxQuestionsLimit
	}
	if cfg.ResolverConcurrency <= 0 {
		cfg.ResolverConcurrency = defaultResolverConcurrency
	}
	return &ingestionService{
		targets:   targets,
		extractor: extractor,
		generator: generator,
		resolver:  resolver,
		repo:      repo,
		cfg:       cfg,
		logger:    logger,
	}
}

// Ingest runs the pipeline. Nothing is written unless at least one question
// survives normalization, and then all survivors are written together.
func (s *ingestionService) Ingest(ctx context.Context, req domain.IngestRequest) (*domain.IngestResult, error) {
	start := time.Now()
	log := s.logger.With(
		zap.String("course_id", req.Target.CourseID),
		zap.String("lesson_id", req.Target.LessonID),
		zap.String("media_type", req.Document.MediaType))

	if err := checkTarget(ctx, s.targets, req.Target); err != nil {
		return nil, err
	}

	text, err := s.extractor.Extract(ctx, req.Document)
	if err != nil {
		return nil, err
	}

	limit := s.clampMaxQuestions(req.MaxQuestions)
	generated, err := s.generator.Generate(ctx, text, limit)
	if err != nil {
		return nil, err
	}
	log.Info("Generated question candidates", zap.Int("candidates", len(generated)), zap.Int("max_questions", limit))

	resolutions := s.resolveMissingAnswers(ctx, generated, log)

	quizzes := make([]*domain.Quiz, 0, len(generated))
	for i, q := range generated {
		if r, ok := resolutions[i]; ok {
			q.Answer = r.Answer
		}
		normalized := domain.NormalizeQuizPayload(domain.PayloadFromGenerated(q))
		if !normalized.Valid() {
			log.Debug("Dropping invalid candidate", zap.Int("index", i), zap.String("content", q.Content))
			continue
		}
		quizzes = append(quizzes, domain.NewQuiz(req.Target, normalized))
	}

	if len(quizzes) == 0 {
		log.Warn("No valid questions after normalization", zap.Int("candidates", len(generated)))
		return nil, domain.NewNoValidQuestionsError()
	}

	// The caller may have gone away while the backends were working.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := s.repo.BulkInsert(ctx, quizzes); err != nil {
		if domain.CodeOf(err) != "" {
			return nil, err
		}
		return nil, domain.NewInternalError("Failed to save quizzes", err)
	}

	log.Info("Ingestion completed",
		zap.Int("inserted", len(quizzes)),
		zap.Int("dropped", len(generated)-len(quizzes)),
		zap.Duration("elapsed", time.Since(start)))

	return &domain.IngestResult{InsertedCount: len(quizzes), Records: quizzes}, nil
}

func (s *ingestionService) clampMaxQuestions(n int) int {
	if n <= 0 {
		n = s.cfg.DefaultMaxQuestions
	}
	if n > s.cfg.MaxQuestionsLimit {
		n = s.cfg.MaxQuestionsLimit
	}
	return n
}

// resolveMissingAnswers asks the resolver for every candidate without an answer.
// The map is keyed by candidate index. A failed resolution has an empty answer,
// so the candidate is later dropped by the validity gate.
func (s *ingestionService) resolveMissingAnswers(ctx context.Context, generated []domain.GeneratedQuestion, log *zap.Logger) map[int]domain.Resolution {
	results := make([]domain.Resolution, len(generated))
	pending := make([]bool, len(generated))

	var g errgroup.Group
	g.SetLimit(s.cfg.ResolverConcurrency)
	for i, q := range generated {
		if strings.TrimSpace(q.Answer) != "" {
			continue
		}
		pending[i] = true
		g.Go(func() error {
			answer, err := s.resolver.Resolve(ctx, q.Content, q.Options)
			if err != nil {
				log.Warn("Answer resolution failed", zap.Int("index", i), zap.Error(err))
				results[i] = domain.Resolution{Err: err}
				return nil
			}
			results[i] = domain.Resolution{Answer: answer}
			return nil
		})
	}
	_ = g.Wait()

	out := make(map[int]domain.Resolution)
	for i, r := range results {
		if !pending[i] {
			continue
		}
		if !r.Ok() {
			r.Answer = ""
		}
		out[i] = r
	}
	if len(out) > 0 {
		log.Info("Resolved missing answers", zap.Int("attempted", len(out)))
	}
	return out
}

var _ domain.IngestionService = (*ingestionService)(nil)
