package provider

import (
	"errors"
	"testing"

	"github.com/goncaloam132/CHATBOT-WITH-RAG/internal/config"
	"github.com/goncaloam132/CHATBOT-WITH-RAG/internal/models"
)

func testConfig() *config.Config {
	return &config.Config{
		Cloud: config.ProviderConfig{
			APIKey:         "sk-test",
			Model:          "gpt-3.5-turbo",
			EmbeddingModel: "text-embedding-ada-002",
		},
		Local: config.ProviderConfig{
			BaseURL:        "http://localhost:11434",
			Model:          "qwen2.5:1.5b",
			EmbeddingModel: "granite-embedding:278m",
		},
	}
}

func TestKnown(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{Cloud, true},
		{Local, true},
		{"foo", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := Known(tt.name); got != tt.want {
			t.Errorf("Known(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestNewUnknownProvider(t *testing.T) {
	_, err := New("foo", testConfig())
	var unknown *models.UnknownProviderError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownProviderError, got %T: %v", err, err)
	}
	if unknown.Name != "foo" {
		t.Errorf("error names %q, want foo", unknown.Name)
	}
}

func TestNewSupportedProviders(t *testing.T) {
	for _, name := range []string{Cloud, Local} {
		p, err := New(name, testConfig())
		if err != nil {
			t.Fatalf("New(%q): %v", name, err)
		}
		if p.Name() != name {
			t.Errorf("Name() = %q, want %q", p.Name(), name)
		}
	}
}
