// Package chat holds the process-lifetime session state: the list of known
// uploaded documents and the append-only conversation log. Neither survives
// a restart.
package chat

import (
	"sync"

	"github.com/goncaloam132/CHATBOT-WITH-RAG/internal/models"
)

// Session starts empty and is injected into every request handler; there is
// no teardown.
type Session struct {
	mu    sync.Mutex
	files []string
	turns []models.ChatTurn
}

func NewSession() *Session {
	return &Session{}
}

// AddFile registers an uploaded filename, ignoring duplicates. It reports
// whether the name was newly added.
func (s *Session) AddFile(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, f := range s.files {
		if f == name {
			return false
		}
	}
	s.files = append(s.files, name)
	return true
}

// Files returns a copy of the known filenames in upload order.
func (s *Session) Files() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.files))
	copy(out, s.files)
	return out
}

// HasFile reports whether name was previously uploaded.
func (s *Session) HasFile(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, f := range s.files {
		if f == name {
			return true
		}
	}
	return false
}

// Append records a completed question/answer exchange as two turns, keeping
// the strict user/assistant alternation.
func (s *Session) Append(question, answer string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.turns = append(s.turns,
		models.ChatTurn{Role: models.RoleUser, Content: question},
		models.ChatTurn{Role: models.RoleAssistant, Content: answer},
	)
}

// History returns a copy of all turns in order.
func (s *Session) History() []models.ChatTurn {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.ChatTurn, len(s.turns))
	copy(out, s.turns)
	return out
}
