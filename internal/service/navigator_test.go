package service

import (
	"errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"

	"github.com/aliskhannn/quiz-bot/internal/domain/entities"
)

func question(text string, correct int) entities.Question {
	return entities.Question{
		Text:         text,
		Options:      []string{"a", "b", "c"},
		CorrectIndex: correct,
		Explanation:  "Correct: because " + text,
	}
}

func sampleCatalog() []entities.Quiz {
	return []entities.Quiz{
		{
			ID:         "capitals",
			Title:      "Capitals",
			Difficulty: "easy",
			Color:      "#4f46e5",
			Questions: []entities.Question{
				question("q1", 1),
				question("q2", 0),
				question("q3", 2),
			},
		},
		{
			ID:        "single",
			Title:     "Single",
			Questions: []entities.Question{question("only", 0)},
		},
	}
}

func newLoadedNavigator(t *testing.T) *Navigator {
	t.Helper()
	n := NewNavigator(zaptest.NewLogger(t))
	n.Load(sampleCatalog())
	return n
}

func mustDo(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestNavigatorStartsAtHome(t *testing.T) {
	n := NewNavigator(nil)
	if n.View() != entities.ViewHome {
		t.Fatalf("expected home view, got %s", n.View())
	}
	if n.Snapshot().Attempt != nil {
		t.Fatal("expected no attempt before any quiz is started")
	}
}

func TestLoadKeepsOnlyWellFormedEntries(t *testing.T) {
	catalog := []entities.Quiz{
		{ID: "ok", Questions: []entities.Question{question("q", 0)}},
		{ID: "", Questions: []entities.Question{question("q", 0)}},
		{ID: "empty"},
		{ID: "bad-option", Questions: []entities.Question{{Text: "q", Options: []string{"a", "b"}, CorrectIndex: 5}}},
		{ID: "ok", Questions: []entities.Question{question("dup", 0)}},
		{ID: "ok2", Questions: []entities.Question{question("q", 1)}},
	}

	core, logs := observer.New(zapcore.WarnLevel)
	n := NewNavigator(zap.New(core))
	n.Load(catalog)

	snap := n.Snapshot()
	if len(snap.Quizzes) != 2 {
		t.Fatalf("expected 2 quizzes, got %d", len(snap.Quizzes))
	}
	if snap.Quizzes[0].ID != "ok" || snap.Quizzes[1].ID != "ok2" {
		t.Errorf("unexpected kept ids: %q, %q", snap.Quizzes[0].ID, snap.Quizzes[1].ID)
	}
	if snap.Quizzes[0].Questions[0].Text != "q" {
		t.Error("expected the first entry with a duplicate id to win")
	}
	for _, q := range snap.Quizzes {
		if q.ID == "" || len(q.Questions) == 0 {
			t.Errorf("malformed quiz survived: %+v", q)
		}
	}
	if got := logs.FilterMessage("skipping malformed quiz").Len(); got != 4 {
		t.Errorf("expected 4 warnings, got %d", got)
	}
	if n.View() != entities.ViewHome {
		t.Errorf("expected home view after load, got %s", n.View())
	}
}

func TestLoadResetsActiveAttempt(t *testing.T) {
	n := newLoadedNavigator(t)
	mustDo(t, n.StartQuiz("capitals"))

	n.Load(sampleCatalog())

	if n.View() != entities.ViewHome || n.Snapshot().Attempt != nil {
		t.Fatal("expected load to return to home without an attempt")
	}
}

func TestStartQuizUnknownIDIsNoOp(t *testing.T) {
	n := newLoadedNavigator(t)

	err := n.StartQuiz("missing-id")
	if !errors.Is(err, ErrQuizNotFound) {
		t.Fatalf("expected ErrQuizNotFound, got %v", err)
	}
	if n.View() != entities.ViewHome {
		t.Errorf("expected view to stay home, got %s", n.View())
	}
	if n.Snapshot().Attempt != nil {
		t.Error("expected no attempt to be created")
	}
}

func TestStartQuizUnknownIDFromResultKeepsResult(t *testing.T) {
	n := newLoadedNavigator(t)
	mustDo(t, n.StartQuiz("single"))
	mustDo(t, n.SelectAnswer(0))
	mustDo(t, n.Finish())

	if err := n.StartQuiz("nope"); !errors.Is(err, ErrQuizNotFound) {
		t.Fatalf("expected ErrQuizNotFound, got %v", err)
	}
	if n.View() != entities.ViewResult {
		t.Errorf("expected result view to stay, got %s", n.View())
	}
	if a := n.Snapshot().Attempt; a == nil || a.Score != 1 {
		t.Error("expected the completed attempt to be kept")
	}
}

func TestStartQuizInitializesAttempt(t *testing.T) {
	n := newLoadedNavigator(t)
	mustDo(t, n.StartQuiz("capitals"))

	a := n.Snapshot().Attempt
	if n.View() != entities.ViewQuiz {
		t.Fatalf("expected quiz view, got %s", n.View())
	}
	if a.Index != 0 || a.Score != 0 || a.ShowExplanation || a.Completed {
		t.Errorf("attempt not zeroed: %+v", a)
	}
	if len(a.Answers) != 3 {
		t.Fatalf("expected 3 answer slots, got %d", len(a.Answers))
	}
	for i := range a.Answers {
		if a.Answers.Answered(i) {
			t.Errorf("slot %d should be unanswered", i)
		}
	}
}

func TestAttemptDoesNotShareCatalogData(t *testing.T) {
	catalog := sampleCatalog()
	n := NewNavigator(zaptest.NewLogger(t))
	n.Load(catalog)
	mustDo(t, n.StartQuiz("capitals"))

	n.state.Attempt.Quiz.Questions[0].Options[0] = "mutated"
	n.state.Attempt.Quiz.Title = "mutated"

	if catalog[0].Questions[0].Options[0] != "a" {
		t.Error("attempt mutation leaked into the caller's catalog")
	}
	if n.state.Quizzes[0].Title != "Capitals" || n.state.Quizzes[0].Questions[0].Options[0] != "a" {
		t.Error("attempt mutation leaked into the loaded catalog")
	}
}

func TestSelectAnswerIsFinal(t *testing.T) {
	n := newLoadedNavigator(t)
	mustDo(t, n.StartQuiz("capitals"))
	mustDo(t, n.SelectAnswer(2))

	for _, j := range []int{0, 1, 2} {
		if err := n.SelectAnswer(j); !errors.Is(err, ErrAlreadyAnswered) {
			t.Errorf("SelectAnswer(%d): expected ErrAlreadyAnswered, got %v", j, err)
		}
	}

	a := n.Snapshot().Attempt
	if got, _ := a.Answers.Get(0); got != 2 {
		t.Errorf("expected stored answer 2, got %d", got)
	}
	if !a.ShowExplanation {
		t.Error("expected explanation to be visible after answering")
	}
	if n.View() != entities.ViewQuiz {
		t.Errorf("expected view to stay quiz, got %s", n.View())
	}
}

func TestSelectAnswerRejectsOutOfRange(t *testing.T) {
	n := newLoadedNavigator(t)
	mustDo(t, n.StartQuiz("capitals"))

	for _, opt := range []int{-1, 3, 100} {
		if err := n.SelectAnswer(opt); !errors.Is(err, ErrOptionOutOfRange) {
			t.Errorf("SelectAnswer(%d): expected ErrOptionOutOfRange, got %v", opt, err)
		}
	}
	if n.Snapshot().Attempt.Answers.Answered(0) {
		t.Error("out of range option must not be recorded")
	}
}

func TestTransitionsWithoutAttempt(t *testing.T) {
	n := newLoadedNavigator(t)

	ops := map[string]func() error{
		"select": func() error { return n.SelectAnswer(0) },
		"next":   n.Next,
		"prev":   n.Prev,
		"finish": n.Finish,
	}
	for name, op := range ops {
		t.Run(name, func(t *testing.T) {
			if err := op(); !errors.Is(err, ErrNotInQuiz) {
				t.Fatalf("expected ErrNotInQuiz, got %v", err)
			}
			if n.View() != entities.ViewHome {
				t.Fatalf("expected home view, got %s", n.View())
			}
		})
	}
}

func TestNextRequiresAnswer(t *testing.T) {
	n := newLoadedNavigator(t)
	mustDo(t, n.StartQuiz("capitals"))

	if err := n.Next(); !errors.Is(err, ErrUnanswered) {
		t.Fatalf("expected ErrUnanswered, got %v", err)
	}
	if idx := n.Snapshot().Attempt.Index; idx != 0 {
		t.Fatalf("expected index 0, got %d", idx)
	}

	mustDo(t, n.SelectAnswer(1))
	mustDo(t, n.Next())

	a := n.Snapshot().Attempt
	if a.Index != 1 {
		t.Errorf("expected index 1, got %d", a.Index)
	}
	if a.ShowExplanation {
		t.Error("expected explanation to be hidden after next")
	}
}

func TestPrevAtFirstQuestion(t *testing.T) {
	n := newLoadedNavigator(t)
	mustDo(t, n.StartQuiz("capitals"))

	if err := n.Prev(); !errors.Is(err, ErrFirstQuestion) {
		t.Fatalf("expected ErrFirstQuestion, got %v", err)
	}
}

func TestPrevThenNextKeepsAnswers(t *testing.T) {
	n := newLoadedNavigator(t)
	mustDo(t, n.StartQuiz("capitals"))
	mustDo(t, n.SelectAnswer(1))
	mustDo(t, n.Next())
	mustDo(t, n.SelectAnswer(2))

	before := n.Snapshot().Attempt

	mustDo(t, n.Prev())
	if err := n.SelectAnswer(0); !errors.Is(err, ErrAlreadyAnswered) {
		t.Fatalf("expected previous answer to stay fixed, got %v", err)
	}
	mustDo(t, n.Next())

	after := n.Snapshot().Attempt
	if after.Index != before.Index {
		t.Errorf("expected index %d, got %d", before.Index, after.Index)
	}
	for i := range before.Answers {
		if before.Answers[i] != after.Answers[i] {
			t.Errorf("slot %d changed: %d -> %d", i, before.Answers[i], after.Answers[i])
		}
	}
}

func TestFinishScoresAnswers(t *testing.T) {
	n := newLoadedNavigator(t)
	mustDo(t, n.StartQuiz("capitals"))

	for _, opt := range []int{1, 1, 2} {
		mustDo(t, n.SelectAnswer(opt))
		mustDo(t, n.Next())
	}

	a := n.Snapshot().Attempt
	if n.View() != entities.ViewResult {
		t.Fatalf("expected result view, got %s", n.View())
	}
	if a.Score != 2 {
		t.Errorf("expected score 2, got %d", a.Score)
	}
	if pct := ScorePercent(a.Score, a.Total()); pct != 67 {
		t.Errorf("expected 67%%, got %d%%", pct)
	}
	if tier := TierFor(ScorePercent(a.Score, a.Total())); tier != entities.TierGood {
		t.Errorf("expected middle tier, got %s", tier)
	}
}

func TestFinishCountsUnansweredAsWrong(t *testing.T) {
	n := newLoadedNavigator(t)
	mustDo(t, n.StartQuiz("capitals"))
	mustDo(t, n.SelectAnswer(1))
	mustDo(t, n.Finish())

	if a := n.Snapshot().Attempt; a.Score != 1 {
		t.Errorf("expected score 1, got %d", a.Score)
	}
}

func TestFinishIsComputedOnce(t *testing.T) {
	n := newLoadedNavigator(t)
	mustDo(t, n.StartQuiz("single"))
	mustDo(t, n.SelectAnswer(0))
	mustDo(t, n.Finish())

	if err := n.Finish(); !errors.Is(err, ErrNotInQuiz) {
		t.Fatalf("expected ErrNotInQuiz on second finish, got %v", err)
	}
}

func TestNextOnLastQuestionEqualsFinish(t *testing.T) {
	play := func(t *testing.T, last func(n *Navigator) error) entities.State {
		n := newLoadedNavigator(t)
		mustDo(t, n.StartQuiz("capitals"))
		mustDo(t, n.SelectAnswer(1))
		mustDo(t, n.Next())
		mustDo(t, n.SelectAnswer(0))
		mustDo(t, n.Next())
		mustDo(t, n.SelectAnswer(0))
		mustDo(t, last(n))
		return n.Snapshot()
	}

	viaNext := play(t, (*Navigator).Next)
	viaFinish := play(t, (*Navigator).Finish)

	if viaNext.View != viaFinish.View {
		t.Errorf("view mismatch: %s vs %s", viaNext.View, viaFinish.View)
	}
	a, b := viaNext.Attempt, viaFinish.Attempt
	if a.Score != b.Score || a.Index != b.Index || a.Completed != b.Completed || a.ShowExplanation != b.ShowExplanation {
		t.Errorf("attempt mismatch: %+v vs %+v", a, b)
	}
}

func TestRestartFromResult(t *testing.T) {
	n := newLoadedNavigator(t)
	mustDo(t, n.StartQuiz("single"))
	mustDo(t, n.SelectAnswer(0))
	mustDo(t, n.Next())

	mustDo(t, n.StartQuiz("single"))

	a := n.Snapshot().Attempt
	if n.View() != entities.ViewQuiz || a.Index != 0 || a.Answers.Answered(0) || a.Completed {
		t.Errorf("expected a fresh attempt, got view %s attempt %+v", n.View(), a)
	}
}

func TestGoHomeDiscardsAttempt(t *testing.T) {
	n := newLoadedNavigator(t)
	mustDo(t, n.StartQuiz("capitals"))
	mustDo(t, n.SelectAnswer(1))

	n.GoHome()

	if n.View() != entities.ViewHome {
		t.Fatalf("expected home view, got %s", n.View())
	}
	if n.Snapshot().Attempt != nil {
		t.Error("expected attempt to be discarded")
	}
	if err := n.Next(); !errors.Is(err, ErrNotInQuiz) {
		t.Errorf("expected ErrNotInQuiz after going home, got %v", err)
	}
}

func TestSnapshotIsIndependent(t *testing.T) {
	n := newLoadedNavigator(t)
	mustDo(t, n.StartQuiz("capitals"))

	snap := n.Snapshot()
	snap.Attempt.Answers[0] = 2
	snap.Attempt.Index = 2

	a := n.Snapshot().Attempt
	if a.Answers.Answered(0) || a.Index != 0 {
		t.Error("mutating a snapshot changed navigator state")
	}
}

func TestRejectedTransitionsAreLogged(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	n := NewNavigator(zap.New(core))
	n.Load(sampleCatalog())

	_ = n.StartQuiz("missing-id")

	entries := logs.FilterMessage("navigation ignored").All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 diagnostic, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["op"] != "start quiz" || fields["quiz_id"] != "missing-id" {
		t.Errorf("unexpected diagnostic fields: %v", fields)
	}
}

func TestCurrentIndex(t *testing.T) {
	n := newLoadedNavigator(t)

	if _, ok := n.CurrentIndex(); ok {
		t.Fatal("expected no current index at home")
	}

	mustDo(t, n.StartQuiz("capitals"))
	mustDo(t, n.SelectAnswer(1))
	mustDo(t, n.Next())

	if i, ok := n.CurrentIndex(); !ok || i != 1 {
		t.Fatalf("expected index 1, got %d (ok=%v)", i, ok)
	}

	mustDo(t, n.Finish())
	if _, ok := n.CurrentIndex(); ok {
		t.Fatal("expected no current index on the result view")
	}
}
