// Package chunk splits extracted pages into overlapping retrieval chunks.
package chunk

import (
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/textsplitter"

	"github.com/goncaloam132/CHATBOT-WITH-RAG/internal/models"
	"github.com/goncaloam132/CHATBOT-WITH-RAG/internal/provider"
)

// Profile names a chunk_size/chunk_overlap pair. Profiles are keyed by the
// embedding provider: the cloud models take much larger contexts than the
// local ones.
type Profile struct {
	Name         string
	ChunkSize    int
	ChunkOverlap int
}

var (
	CloudProfile = Profile{Name: provider.Cloud, ChunkSize: 10000, ChunkOverlap: 1000}
	LocalProfile = Profile{Name: provider.Local, ChunkSize: 1200, ChunkOverlap: 200}
)

// ProfileFor selects the chunking profile for a provider name. Callers are
// expected to have validated the provider already; anything unrecognized
// falls back to the cloud profile.
func ProfileFor(providerName string) Profile {
	if providerName == provider.Local {
		return LocalProfile
	}
	return CloudProfile
}

// Splitting works down a separator priority list: paragraph break, line
// break, sentence end, word boundary, then single characters.
var separators = []string{"\n\n", "\n", ". ", " ", ""}

// Split chunks each page independently, so no chunk ever mixes text from two
// pages, and every chunk inherits its page's filename and page number.
func Split(pages []models.PageRecord, p Profile) ([]models.Chunk, error) {
	splitter := textsplitter.NewRecursiveCharacter(
		textsplitter.WithChunkSize(p.ChunkSize),
		textsplitter.WithChunkOverlap(p.ChunkOverlap),
		textsplitter.WithSeparators(separators),
	)

	var chunks []models.Chunk
	for _, page := range pages {
		pieces, err := splitter.SplitText(page.Text)
		if err != nil {
			return nil, fmt.Errorf("split page %d of %s: %w", page.Page, page.Filename, err)
		}
		for _, piece := range pieces {
			if strings.TrimSpace(piece) == "" {
				continue
			}
			chunks = append(chunks, models.Chunk{
				Text:     piece,
				Page:     page.Page,
				Filename: page.Filename,
			})
		}
	}
	return chunks, nil
}
