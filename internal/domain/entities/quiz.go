package entities

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyQuizID       = errors.New("quiz id is empty")
	ErrNoQuestions       = errors.New("quiz has no questions")
	ErrTooFewOptions     = errors.New("question must have at least two options")
	ErrCorrectIndexRange = errors.New("correct index is out of options range")

	ErrMissingCorrectIndex = errors.New("question has no correct index")
	ErrQuizIDTooLong       = errors.New("quiz id is too long")
)

// MaxQuizIDBytes bounds quiz ids so that a start action for any quiz fits
// into a 64-byte Telegram callback payload.
const MaxQuizIDBytes = 58

// Quiz is a named, ordered collection of questions sharing difficulty and color metadata.
// Catalog quizzes are never mutated; an attempt works on a Clone.
type Quiz struct {
	ID         string     // unique quiz identifier, at most MaxQuizIDBytes long
	Title      string     // display title
	Difficulty string     // free-form difficulty label
	Color      string     // display color, e.g. "#4f46e5"
	Questions  []Question // ordered questions
}

// Validate reports why the quiz cannot be used, or nil if it is well-formed.
func (q Quiz) Validate() error {
	if q.ID == "" {
		return ErrEmptyQuizID
	}
	if len(q.ID) > MaxQuizIDBytes {
		return ErrQuizIDTooLong
	}
	if len(q.Questions) == 0 {
		return ErrNoQuestions
	}
	for i := range q.Questions {
		if err := q.Questions[i].Validate(); err != nil {
			return &QuestionError{Index: i, Err: err}
		}
	}
	return nil
}

// Clone returns a deep copy of the quiz.
func (q Quiz) Clone() Quiz {
	out := q
	if q.Questions != nil {
		out.Questions = make([]Question, len(q.Questions))
		for i := range q.Questions {
			out.Questions[i] = q.Questions[i].Clone()
		}
	}
	return out
}

// QuestionError wraps a validation error of a single question.
type QuestionError struct {
	Index int
	Err   error
}

func (e *QuestionError) Error() string {
	return fmt.Sprintf("question %d: %v", e.Index+1, e.Err)
}

func (e *QuestionError) Unwrap() error {
	return e.Err
}
