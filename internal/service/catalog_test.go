package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/aliskhannn/quiz-bot/internal/domain/entities"
)

type fakeSource struct {
	quizzes []entities.Quiz
	err     error
}

func (s fakeSource) LoadAll(context.Context) ([]entities.Quiz, error) {
	return s.quizzes, s.err
}

func TestFilterCatalogReportsReasons(t *testing.T) {
	candidates := []entities.Quiz{
		{ID: "", Questions: []entities.Question{question("q", 0)}},
		{ID: "no-questions"},
		{ID: "one-option", Questions: []entities.Question{{Text: "q", Options: []string{"a"}}}},
		{ID: "no-answer", Questions: []entities.Question{{Text: "q", Options: []string{"a", "b"}, CorrectIndex: entities.NoCorrectIndex}}},
		{ID: strings.Repeat("x", entities.MaxQuizIDBytes+1), Questions: []entities.Question{question("q", 0)}},
		{ID: strings.Repeat("y", entities.MaxQuizIDBytes), Questions: []entities.Question{question("q", 0)}},
		{ID: "good", Questions: []entities.Question{question("q", 0)}},
		{ID: "good", Questions: []entities.Question{question("q", 0)}},
	}

	kept, dropped := FilterCatalog(candidates)

	if len(kept) != 2 || kept[1].ID != "good" {
		t.Fatalf("unexpected kept catalog: %+v", kept)
	}

	want := []error{
		entities.ErrEmptyQuizID,
		entities.ErrNoQuestions,
		entities.ErrTooFewOptions,
		entities.ErrMissingCorrectIndex,
		entities.ErrQuizIDTooLong,
		ErrDuplicateQuizID,
	}
	if len(dropped) != len(want) {
		t.Fatalf("expected %d dropped entries, got %d", len(want), len(dropped))
	}
	for i, d := range dropped {
		if !errors.Is(d.Err, want[i]) {
			t.Errorf("dropped[%d]: expected %v, got %v", i, want[i], d.Err)
		}
	}
	if dropped[5].Position != 7 {
		t.Errorf("expected duplicate at position 7, got %d", dropped[5].Position)
	}
}

func TestCatalogServiceLoad(t *testing.T) {
	svc := NewCatalogService(fakeSource{quizzes: sampleCatalog()}, zaptest.NewLogger(t))

	quizzes, err := svc.Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(quizzes) != 2 {
		t.Errorf("expected 2 quizzes, got %d", len(quizzes))
	}
}

func TestCatalogServiceLoadSourceError(t *testing.T) {
	sourceErr := errors.New("boom")
	svc := NewCatalogService(fakeSource{err: sourceErr}, zaptest.NewLogger(t))

	if _, err := svc.Load(context.Background()); !errors.Is(err, sourceErr) {
		t.Fatalf("expected wrapped source error, got %v", err)
	}
}
