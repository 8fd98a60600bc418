package chunk

import (
	"strings"
	"testing"

	"github.com/goncaloam132/CHATBOT-WITH-RAG/internal/models"
	"github.com/goncaloam132/CHATBOT-WITH-RAG/internal/provider"
)

func TestProfileFor(t *testing.T) {
	tests := []struct {
		provider string
		want     Profile
	}{
		{provider.Cloud, CloudProfile},
		{provider.Local, LocalProfile},
		{"something-else", CloudProfile},
	}
	for _, tt := range tests {
		if got := ProfileFor(tt.provider); got != tt.want {
			t.Errorf("ProfileFor(%q) = %+v, want %+v", tt.provider, got, tt.want)
		}
	}
}

func TestSplitPropagatesProvenance(t *testing.T) {
	pages := []models.PageRecord{
		{Text: strings.Repeat("first page sentence. ", 40), Page: 1, Filename: "report.pdf"},
		{Text: strings.Repeat("second page sentence. ", 40), Page: 3, Filename: "report.pdf"},
	}

	chunks, err := Split(pages, Profile{Name: "test", ChunkSize: 120, ChunkOverlap: 20})
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	if len(chunks) < 4 {
		t.Fatalf("expected several chunks per page, got %d", len(chunks))
	}

	for _, c := range chunks {
		if c.Filename != "report.pdf" {
			t.Errorf("chunk lost filename: %+v", c)
		}
		if c.Page != 1 && c.Page != 3 {
			t.Errorf("chunk has page outside its sources: %+v", c)
		}
		// A chunk must come from exactly one page; the two pages use
		// disjoint vocabulary.
		onFirst := strings.Contains(c.Text, "first")
		onSecond := strings.Contains(c.Text, "second")
		if onFirst == onSecond {
			t.Errorf("chunk mixes or matches no page text: %q", c.Text)
		}
		if onFirst && c.Page != 1 {
			t.Errorf("first-page text tagged with page %d", c.Page)
		}
		if onSecond && c.Page != 3 {
			t.Errorf("second-page text tagged with page %d", c.Page)
		}
	}
}

func TestSplitRespectsChunkSize(t *testing.T) {
	text := strings.Repeat("some words that should be split at word boundaries ", 30)
	pages := []models.PageRecord{{Text: text, Page: 1, Filename: "a.txt"}}

	const size = 100
	chunks, err := Split(pages, Profile{Name: "test", ChunkSize: size, ChunkOverlap: 10})
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	if len(chunks) == 0 {
		t.Fatal("expected chunks")
	}
	for _, c := range chunks {
		if len(c.Text) > size {
			t.Errorf("chunk exceeds size %d: %d chars", size, len(c.Text))
		}
		if strings.TrimSpace(c.Text) == "" {
			t.Error("empty chunk produced")
		}
	}
}

func TestSplitShortPageIsSingleChunk(t *testing.T) {
	pages := []models.PageRecord{{Text: "just a short page", Page: 2, Filename: "r.pdf"}}

	chunks, err := Split(pages, CloudProfile)
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0].Text != "just a short page" || chunks[0].Page != 2 || chunks[0].Filename != "r.pdf" {
		t.Errorf("unexpected chunk: %+v", chunks[0])
	}
}

func TestSplitNoPages(t *testing.T) {
	chunks, err := Split(nil, LocalProfile)
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	if len(chunks) != 0 {
		t.Fatalf("expected no chunks, got %d", len(chunks))
	}
}
