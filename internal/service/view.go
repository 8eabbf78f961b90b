package service

import (
	"errors"
	"fmt"

	"github.com/aliskhannn/quiz-bot/internal/domain/entities"
)

var ErrInconsistentSnapshot = errors.New("inconsistent navigator snapshot")

// ViewBuilder maps navigator snapshots to view models. It has no side effects.
type ViewBuilder struct {
	prefixes ExplanationPrefixes
}

// NewViewBuilder creates a ViewBuilder using the given explanation markers.
func NewViewBuilder(prefixes ExplanationPrefixes) *ViewBuilder {
	return &ViewBuilder{prefixes: prefixes}
}

// Build returns the view model for the snapshot's current view.
func (b *ViewBuilder) Build(s entities.State) (entities.View, error) {
	switch s.View {
	case entities.ViewHome:
		return b.home(s.Quizzes), nil
	case entities.ViewQuiz:
		v, err := b.quiz(s.Attempt)
		if err != nil {
			return nil, err
		}
		return v, nil
	case entities.ViewResult:
		v, err := b.result(s.Attempt)
		if err != nil {
			return nil, err
		}
		return v, nil
	default:
		return nil, fmt.Errorf("%w: unknown view %q", ErrInconsistentSnapshot, s.View)
	}
}

func (b *ViewBuilder) home(quizzes []entities.Quiz) entities.HomeView {
	cards := make([]entities.QuizCard, 0, len(quizzes))
	for _, q := range quizzes {
		cards = append(cards, entities.QuizCard{
			ID:            q.ID,
			Title:         q.Title,
			Difficulty:    q.Difficulty,
			Color:         q.Color,
			QuestionCount: len(q.Questions),
		})
	}
	return entities.HomeView{Quizzes: cards}
}

func (b *ViewBuilder) quiz(a *entities.Attempt) (entities.QuizView, error) {
	if a == nil {
		return entities.QuizView{}, fmt.Errorf("%w: quiz view without attempt", ErrInconsistentSnapshot)
	}
	total := a.Total()
	if a.Index < 0 || a.Index >= total {
		return entities.QuizView{}, fmt.Errorf("%w: index %d of %d", ErrInconsistentSnapshot, a.Index, total)
	}

	q := a.Current()
	selected, answered := a.Answers.Get(a.Index)
	correct := answered && q.IsCorrect(selected)

	options := make([]entities.OptionView, len(q.Options))
	for i, text := range q.Options {
		options[i] = entities.OptionView{
			Index:    i,
			Text:     text,
			State:    ClassifyOption(q, i, selected),
			Selected: answered && i == selected,
		}
	}

	v := entities.QuizView{
		QuizID:     a.Quiz.ID,
		Title:      a.Quiz.Title,
		Difficulty: a.Quiz.Difficulty,
		Color:      a.Quiz.Color,
		Number:     a.Index + 1,
		Total:      total,
		Progress:   ProgressPercent(a.Index, total),
		Text:       q.Text,
		Image:      q.Image,
		Options:    options,
		Answered:   answered,
		Correct:    correct,
		CanPrev:    a.Index > 0,
		CanNext:    answered,
		IsLast:     a.IsLast(),
	}

	if a.ShowExplanation && answered {
		v.Explanation = b.prefixes.Polarize(q.Explanation, correct)
		v.ExplanationCorrect = correct
	}

	return v, nil
}

func (b *ViewBuilder) result(a *entities.Attempt) (entities.ResultView, error) {
	if a == nil || !a.Completed {
		return entities.ResultView{}, fmt.Errorf("%w: result view without completed attempt", ErrInconsistentSnapshot)
	}

	total := a.Total()
	percent := ScorePercent(a.Score, total)

	breakdown := make([]entities.BreakdownItem, len(a.Quiz.Questions))
	for i, q := range a.Quiz.Questions {
		selected, answered := a.Answers.Get(i)
		breakdown[i] = entities.BreakdownItem{
			Number:      i + 1,
			Text:        q.Text,
			Correct:     answered && q.IsCorrect(selected),
			Answered:    answered,
			Explanation: b.prefixes.Strip(q.Explanation),
		}
	}

	return entities.ResultView{
		QuizID:     a.Quiz.ID,
		Title:      a.Quiz.Title,
		Difficulty: a.Quiz.Difficulty,
		Score:      a.Score,
		Total:      total,
		Percent:    percent,
		Tier:       TierFor(percent),
		Breakdown:  breakdown,
	}, nil
}
