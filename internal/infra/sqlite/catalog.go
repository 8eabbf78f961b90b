package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/aliskhannn/quiz-bot/internal/domain/entities"
)

// CatalogRepository reads the quiz catalog from an SQLite database.
type CatalogRepository struct {
	db *sql.DB
}

func NewCatalogRepository(db *sql.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// LoadAll returns every quiz with its questions in display order.
// A question whose options are not a JSON string array is returned without options,
// so catalog filtering drops its quiz.
// Both tables are read in one transaction.
func (r *CatalogRepository) LoadAll(ctx context.Context) ([]entities.Quiz, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	quizzes, err := selectQuizzes(ctx, tx)
	if err != nil {
		return nil, err
	}

	if err := attachQuestions(ctx, tx, quizzes); err != nil {
		return nil, err
	}

	return quizzes, nil
}

func selectQuizzes(ctx context.Context, tx *sql.Tx) ([]entities.Quiz, error) {
	rows, err := tx.QueryContext(ctx, `
		SELECT id, title, difficulty, color
		FROM quizzes
		ORDER BY position, id
	`)
	if err != nil {
		return nil, fmt.Errorf("select quizzes: %w", err)
	}
	defer rows.Close()

	var quizzes []entities.Quiz
	for rows.Next() {
		var q entities.Quiz
		if err := rows.Scan(&q.ID, &q.Title, &q.Difficulty, &q.Color); err != nil {
			return nil, fmt.Errorf("scan quiz: %w", err)
		}
		quizzes = append(quizzes, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate quizzes: %w", err)
	}

	return quizzes, nil
}

func attachQuestions(ctx context.Context, tx *sql.Tx, quizzes []entities.Quiz) error {
	byID := make(map[string]int, len(quizzes))
	for i := range quizzes {
		byID[quizzes[i].ID] = i
	}

	rows, err := tx.QueryContext(ctx, `
		SELECT quiz_id, text, COALESCE(image, ''), options,
		       correct_index, COALESCE(explanation, '')
		FROM questions
		ORDER BY quiz_id, position
	`)
	if err != nil {
		return fmt.Errorf("select questions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			quizID  string
			options string
			q       entities.Question
		)
		if err := rows.Scan(&quizID, &q.Text, &q.Image, &options, &q.CorrectIndex, &q.Explanation); err != nil {
			return fmt.Errorf("scan question: %w", err)
		}

		i, ok := byID[quizID]
		if !ok {
			continue
		}
		if json.Unmarshal([]byte(options), &q.Options) != nil {
			q.Options = nil
		}
		quizzes[i].Questions = append(quizzes[i].Questions, q)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate questions: %w", err)
	}

	return nil
}
