package service

import (
	"errors"

	"go.uber.org/zap"

	"github.com/aliskhannn/quiz-bot/internal/domain/entities"
)

// Navigation diagnostics. A transition returning one of these left the state untouched.
var (
	ErrQuizNotFound     = errors.New("quiz not found")
	ErrNotInQuiz        = errors.New("no quiz in progress")
	ErrAlreadyAnswered  = errors.New("question already answered")
	ErrOptionOutOfRange = errors.New("option index out of range")
	ErrUnanswered       = errors.New("current question is not answered")
	ErrFirstQuestion    = errors.New("already at the first question")
)

// Navigator drives one user through the catalog: home, quiz and result views.
// It is not safe for concurrent use; callers serialize actions.
type Navigator struct {
	state  entities.State
	logger *zap.Logger
}

// NewNavigator creates a navigator in the home view with an empty catalog.
func NewNavigator(logger *zap.Logger) *Navigator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Navigator{
		state:  entities.State{View: entities.ViewHome},
		logger: logger,
	}
}

// Load replaces the catalog with the well-formed entries of catalog and shows the home view.
func (n *Navigator) Load(catalog []entities.Quiz) {
	kept, dropped := FilterCatalog(catalog)
	logDropped(n.logger, dropped)

	n.state = entities.State{
		View:    entities.ViewHome,
		Quizzes: kept,
	}
}

// StartQuiz begins a fresh attempt on the quiz with the given id.
// It also restarts a quiz from the result view.
func (n *Navigator) StartQuiz(id string) error {
	quiz, ok := n.find(id)
	if !ok {
		return n.reject("start quiz", ErrQuizNotFound, zap.String("quiz_id", id))
	}

	n.state.Attempt = entities.NewAttempt(quiz)
	n.state.View = entities.ViewQuiz
	return nil
}

// SelectAnswer records option for the current question. Answers are final.
func (n *Navigator) SelectAnswer(option int) error {
	a, err := n.activeAttempt("select answer")
	if err != nil {
		return err
	}

	if a.Answers.Answered(a.Index) {
		return n.reject("select answer", ErrAlreadyAnswered, zap.Int("index", a.Index))
	}
	if option < 0 || option >= len(a.Current().Options) {
		return n.reject("select answer", ErrOptionOutOfRange, zap.Int("option", option))
	}

	a.Answers.Set(a.Index, option)
	a.ShowExplanation = true
	return nil
}

// Next moves to the following question, or finishes the attempt on the last one.
func (n *Navigator) Next() error {
	a, err := n.activeAttempt("next")
	if err != nil {
		return err
	}

	if !a.Answers.Answered(a.Index) {
		return n.reject("next", ErrUnanswered, zap.Int("index", a.Index))
	}
	if a.IsLast() {
		return n.Finish()
	}

	a.Index++
	a.ShowExplanation = false
	return nil
}

// Prev moves to the previous question. Its recorded answer stays as it was.
func (n *Navigator) Prev() error {
	a, err := n.activeAttempt("prev")
	if err != nil {
		return err
	}

	if a.Index == 0 {
		return n.reject("prev", ErrFirstQuestion)
	}

	a.Index--
	a.ShowExplanation = false
	return nil
}

// Finish scores the attempt and shows the result view.
func (n *Navigator) Finish() error {
	a, err := n.activeAttempt("finish")
	if err != nil {
		return err
	}

	a.Score = Score(a.Quiz.Questions, a.Answers)
	a.Completed = true
	a.ShowExplanation = false
	n.state.View = entities.ViewResult

	n.logger.Debug("quiz finished",
		zap.String("quiz_id", a.Quiz.ID),
		zap.Int("score", a.Score),
		zap.Int("total", a.Total()),
	)
	return nil
}

// GoHome discards the attempt and shows the catalog.
func (n *Navigator) GoHome() {
	n.state.Attempt = nil
	n.state.View = entities.ViewHome
}

// View returns the current view mode.
func (n *Navigator) View() entities.ViewMode {
	return n.state.View
}

// CurrentIndex returns the index of the shown question. ok is false outside the quiz view.
func (n *Navigator) CurrentIndex() (index int, ok bool) {
	if n.state.View != entities.ViewQuiz || n.state.Attempt == nil {
		return 0, false
	}
	return n.state.Attempt.Index, true
}

// Snapshot returns a copy of the state that the caller may read freely.
func (n *Navigator) Snapshot() entities.State {
	return entities.State{
		View:    n.state.View,
		Quizzes: n.state.Quizzes,
		Attempt: n.state.Attempt.Clone(),
	}
}

func (n *Navigator) find(id string) (entities.Quiz, bool) {
	for _, q := range n.state.Quizzes {
		if q.ID == id {
			return q, true
		}
	}
	return entities.Quiz{}, false
}

func (n *Navigator) activeAttempt(op string) (*entities.Attempt, error) {
	if n.state.View != entities.ViewQuiz || n.state.Attempt == nil {
		return nil, n.reject(op, ErrNotInQuiz, zap.String("view", string(n.state.View)))
	}
	return n.state.Attempt, nil
}

func (n *Navigator) reject(op string, err error, fields ...zap.Field) error {
	n.logger.Debug("navigation ignored",
		append([]zap.Field{zap.String("op", op), zap.Error(err)}, fields...)...,
	)
	return err
}
