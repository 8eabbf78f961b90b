package storage

import (
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/aliskhannn/quiz-bot/internal/domain/entities"
)

func catalog() []entities.Quiz {
	return []entities.Quiz{{
		ID: "q",
		Questions: []entities.Question{
			{Text: "t", Options: []string{"a", "b"}, CorrectIndex: 1},
		},
	}}
}

func TestNavigatorStoragePerChat(t *testing.T) {
	s := NewNavigatorStorage(catalog(), zaptest.NewLogger(t))

	a := s.Get(1)
	if a != s.Get(1) {
		t.Fatal("expected the same navigator for the same chat")
	}
	b := s.Get(2)
	if a == b {
		t.Fatal("expected separate navigators for separate chats")
	}

	if err := a.StartQuiz("q"); err != nil {
		t.Fatalf("start quiz: %v", err)
	}
	if b.View() != entities.ViewHome {
		t.Errorf("chat 2 must not see chat 1's attempt, got view %s", b.View())
	}
	if a.View() != entities.ViewQuiz {
		t.Errorf("expected chat 1 in a quiz, got view %s", a.View())
	}
}

func TestNavigatorStorageDelete(t *testing.T) {
	s := NewNavigatorStorage(catalog(), zaptest.NewLogger(t))

	nav := s.Get(7)
	if err := nav.StartQuiz("q"); err != nil {
		t.Fatalf("start quiz: %v", err)
	}
	s.Delete(7)

	if fresh := s.Get(7); fresh == nav || fresh.View() != entities.ViewHome {
		t.Error("expected a fresh navigator after delete")
	}
}
