package entities

// View is a render-ready description of one screen.
// It is one of HomeView, QuizView, ResultView or ErrorView.
type View interface {
	isView()
}

// OptionState is the render classification of an answer option.
type OptionState string

const (
	OptionNeutral OptionState = "neutral"
	OptionCorrect OptionState = "correct"
	OptionWrong   OptionState = "wrong"
)

// ResultTier buckets a result percentage into a feedback level.
type ResultTier string

const (
	TierExcellent ResultTier = "excellent" // 80% and above
	TierGood      ResultTier = "good"
	TierNeedsWork ResultTier = "needs_work" // below 50%
)

// QuizCard is a catalog entry on the home screen.
type QuizCard struct {
	ID            string
	Title         string
	Difficulty    string
	Color         string
	QuestionCount int
}

// HomeView lists the available quizzes. An empty list is the empty-catalog state.
type HomeView struct {
	Quizzes []QuizCard
}

// OptionView is one answer option of the current question.
type OptionView struct {
	Index    int
	Text     string
	State    OptionState
	Selected bool
}

// QuizView shows the current question of an attempt.
type QuizView struct {
	QuizID     string
	Title      string
	Difficulty string
	Color      string

	Number   int // 1-based question number
	Total    int
	Progress int // percent of questions completed before this one

	Text    string
	Image   string
	Options []OptionView

	Answered bool
	Correct  bool

	// Explanation is empty unless it should be shown.
	Explanation        string
	ExplanationCorrect bool

	CanPrev bool
	CanNext bool // the current question is answered
	IsLast  bool // "finish" replaces "next"
}

// BreakdownItem is the per-question line of a result.
type BreakdownItem struct {
	Number      int
	Text        string
	Correct     bool
	Answered    bool
	Explanation string
}

// ResultView shows the score of a completed attempt.
type ResultView struct {
	QuizID     string
	Title      string
	Difficulty string
	Score      int
	Total      int
	Percent    int
	Tier       ResultTier
	Breakdown  []BreakdownItem
}

// ErrorView replaces a screen that failed to render. Its only action is returning home.
type ErrorView struct{}

func (HomeView) isView()   {}
func (QuizView) isView()   {}
func (ResultView) isView() {}
func (ErrorView) isView()  {}
