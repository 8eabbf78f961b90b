package entities

// ViewMode determines which snapshot is rendered.
type ViewMode string

const (
	ViewHome   ViewMode = "home"
	ViewQuiz   ViewMode = "quiz"
	ViewResult ViewMode = "result"
)

// Attempt is one in-progress or completed run through a single quiz.
type Attempt struct {
	Quiz            Quiz         // private copy of the catalog quiz
	Index           int          // current question, 0-based
	Answers         AnswerRecord // one slot per question
	Score           int          // number of correct answers, set on completion
	Completed       bool         // whether Score has been computed
	ShowExplanation bool         // whether the current question's explanation is visible
}

// NewAttempt starts an attempt on a deep copy of quiz.
func NewAttempt(quiz Quiz) *Attempt {
	q := quiz.Clone()
	return &Attempt{
		Quiz:    q,
		Answers: NewAnswerRecord(len(q.Questions)),
	}
}

// Total returns the number of questions in the attempt.
func (a *Attempt) Total() int {
	return len(a.Quiz.Questions)
}

// Current returns the question at Index.
func (a *Attempt) Current() Question {
	return a.Quiz.Questions[a.Index]
}

// IsLast reports whether Index points at the last question.
func (a *Attempt) IsLast() bool {
	return a.Index == a.Total()-1
}

// Clone returns a deep copy of the attempt.
func (a *Attempt) Clone() *Attempt {
	if a == nil {
		return nil
	}
	out := *a
	out.Quiz = a.Quiz.Clone()
	out.Answers = a.Answers.Clone()
	return &out
}

// State is the navigator's single source of truth: the current view and the active attempt.
type State struct {
	View    ViewMode
	Quizzes []Quiz
	Attempt *Attempt
}
