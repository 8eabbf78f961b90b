package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/aliskhannn/quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/quiz-bot/internal/infra/postgres"
)

// TxRunner runs a function inside a read-only transaction.
type TxRunner interface {
	WithinReadOnlyTx(ctx context.Context, fn func(ctx context.Context, tx postgres.DBTX) error) error
}

// CatalogRepository reads quizzes and their questions from PostgreSQL.
type CatalogRepository struct {
	tx TxRunner
}

// NewCatalogRepository creates a new CatalogRepository.
func NewCatalogRepository(tx TxRunner) *CatalogRepository {
	return &CatalogRepository{tx: tx}
}

// questionRow is a question together with the quiz it belongs to.
type questionRow struct {
	QuizID   string
	Question entities.Question
}

// LoadAll returns every quiz with its questions in display order.
// Both tables are read from the same snapshot.
func (r *CatalogRepository) LoadAll(ctx context.Context) ([]entities.Quiz, error) {
	var (
		quizzes   []entities.Quiz
		questions []questionRow
	)

	err := r.tx.WithinReadOnlyTx(ctx, func(ctx context.Context, tx postgres.DBTX) error {
		var err error
		if quizzes, err = selectQuizzes(ctx, tx); err != nil {
			return err
		}
		questions, err = selectQuestions(ctx, tx)
		return err
	})
	if err != nil {
		return nil, err
	}

	return assembleCatalog(quizzes, questions), nil
}

func selectQuizzes(ctx context.Context, db postgres.DBTX) ([]entities.Quiz, error) {
	query := `
		SELECT id, title, difficulty, color
		FROM quizzes
		ORDER BY position, id
	`

	rows, err := db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("select quizzes: %w", err)
	}

	quizzes, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (entities.Quiz, error) {
		var q entities.Quiz
		err := row.Scan(&q.ID, &q.Title, &q.Difficulty, &q.Color)
		return q, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan quizzes: %w", err)
	}

	return quizzes, nil
}

func selectQuestions(ctx context.Context, db postgres.DBTX) ([]questionRow, error) {
	query := `
		SELECT quiz_id, text, COALESCE(image, ''), options,
		       correct_index, COALESCE(explanation, '')
		FROM questions
		ORDER BY quiz_id, position
	`

	rows, err := db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("select questions: %w", err)
	}

	questions, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (questionRow, error) {
		var qr questionRow
		err := row.Scan(
			&qr.QuizID,
			&qr.Question.Text,
			&qr.Question.Image,
			&qr.Question.Options,
			&qr.Question.CorrectIndex,
			&qr.Question.Explanation,
		)
		return qr, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan questions: %w", err)
	}

	return questions, nil
}

// assembleCatalog attaches questions to their quizzes, keeping the quiz order.
// Questions of unknown quizzes are ignored.
func assembleCatalog(quizzes []entities.Quiz, questions []questionRow) []entities.Quiz {
	byID := make(map[string]int, len(quizzes))
	for i := range quizzes {
		if _, ok := byID[quizzes[i].ID]; !ok {
			byID[quizzes[i].ID] = i
		}
	}

	for _, qr := range questions {
		i, ok := byID[qr.QuizID]
		if !ok {
			continue
		}
		quizzes[i].Questions = append(quizzes[i].Questions, qr.Question)
	}

	return quizzes
}
