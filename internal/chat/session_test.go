package chat

import (
	"testing"

	"github.com/goncaloam132/CHATBOT-WITH-RAG/internal/models"
)

func TestAddFileDeduplicates(t *testing.T) {
	s := NewSession()

	if !s.AddFile("a.pdf") {
		t.Error("first add should report new")
	}
	if s.AddFile("a.pdf") {
		t.Error("second add should report duplicate")
	}
	s.AddFile("b.pdf")

	files := s.Files()
	if len(files) != 2 || files[0] != "a.pdf" || files[1] != "b.pdf" {
		t.Errorf("unexpected files: %v", files)
	}
	if !s.HasFile("a.pdf") || s.HasFile("c.pdf") {
		t.Error("HasFile lookup wrong")
	}
}

func TestAppendKeepsAlternation(t *testing.T) {
	s := NewSession()
	s.Append("q1", "a1")
	s.Append("q2", "a2")

	turns := s.History()
	if len(turns) != 4 {
		t.Fatalf("expected 4 turns, got %d", len(turns))
	}
	want := []models.ChatTurn{
		{Role: models.RoleUser, Content: "q1"},
		{Role: models.RoleAssistant, Content: "a1"},
		{Role: models.RoleUser, Content: "q2"},
		{Role: models.RoleAssistant, Content: "a2"},
	}
	for i := range want {
		if turns[i] != want[i] {
			t.Errorf("turn %d = %+v, want %+v", i, turns[i], want[i])
		}
	}
}

func TestHistoryReturnsCopy(t *testing.T) {
	s := NewSession()
	s.Append("q", "a")

	turns := s.History()
	turns[0].Content = "mutated"
	if s.History()[0].Content != "q" {
		t.Error("History must return a copy")
	}

	s.AddFile("a.pdf")
	files := s.Files()
	files[0] = "mutated.pdf"
	if s.Files()[0] != "a.pdf" {
		t.Error("Files must return a copy")
	}
}
