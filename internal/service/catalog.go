package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/aliskhannn/quiz-bot/internal/domain/entities"
)

var ErrDuplicateQuizID = errors.New("duplicate quiz id")

// CatalogSource provides candidate quiz definitions. Entries may be malformed.
type CatalogSource interface {
	LoadAll(ctx context.Context) ([]entities.Quiz, error)
}

// DroppedQuiz describes a catalog entry rejected by FilterCatalog.
type DroppedQuiz struct {
	Position int // index in the candidate list
	ID       string
	Err      error
}

// FilterCatalog keeps the well-formed candidates in their original order.
// The first entry with a given ID wins.
func FilterCatalog(candidates []entities.Quiz) ([]entities.Quiz, []DroppedQuiz) {
	kept := make([]entities.Quiz, 0, len(candidates))
	var dropped []DroppedQuiz
	seen := make(map[string]struct{}, len(candidates))

	for i, q := range candidates {
		err := q.Validate()
		if err == nil {
			if _, ok := seen[q.ID]; ok {
				err = ErrDuplicateQuizID
			}
		}
		if err != nil {
			dropped = append(dropped, DroppedQuiz{Position: i, ID: q.ID, Err: err})
			continue
		}
		seen[q.ID] = struct{}{}
		kept = append(kept, q)
	}

	return kept, dropped
}

// CatalogService reads the quiz catalog once at startup.
type CatalogService struct {
	source CatalogSource
	logger *zap.Logger
}

// NewCatalogService creates a CatalogService reading from source.
func NewCatalogService(source CatalogSource, logger *zap.Logger) *CatalogService {
	return &CatalogService{
		source: source,
		logger: logger,
	}
}

// Load returns the usable catalog. Malformed entries are logged and skipped;
// only a failing source is an error.
func (s *CatalogService) Load(ctx context.Context) ([]entities.Quiz, error) {
	candidates, err := s.source.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	kept, dropped := FilterCatalog(candidates)
	logDropped(s.logger, dropped)

	s.logger.Info("catalog loaded",
		zap.Int("quizzes", len(kept)),
		zap.Int("dropped", len(dropped)),
	)

	return kept, nil
}

func logDropped(logger *zap.Logger, dropped []DroppedQuiz) {
	for _, d := range dropped {
		logger.Warn("skipping malformed quiz",
			zap.Int("position", d.Position),
			zap.String("quiz_id", d.ID),
			zap.Error(d.Err),
		)
	}
}
