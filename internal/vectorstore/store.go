// Package vectorstore persists one similarity-search index per provider on
// the local filesystem, backed by chromem-go.
//
// Layout per provider, under the store root:
//
//	index_<provider>/chromem/        persisted chromem collection
//	index_<provider>/manifest.yaml   sidecar written last, marks a complete build
//
// A build is staged in a sibling directory and swapped in with a rename, so
// readers observe either the previous complete index or the next one.
package vectorstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"sync"
	"time"

	"github.com/philippgille/chromem-go"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/goncaloam132/CHATBOT-WITH-RAG/internal/helper"
	"github.com/goncaloam132/CHATBOT-WITH-RAG/internal/models"
)

const (
	collectionName = "documents"
	dbDirName      = "chromem"
	manifestName   = "manifest.yaml"

	metaFilename = "filename"
	metaPage     = "page"

	compress = false
)

// Embedder is the single capability the store needs from a provider.
type Embedder interface {
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}

// Store manages the per-provider index directories. The lock serializes
// builds against loads so a reader never sees a half-written index.
type Store struct {
	root string
	mu   sync.RWMutex
}

func New(root string) *Store {
	return &Store{root: root}
}

// Handle is a loaded, queryable index.
type Handle struct {
	provider   string
	collection *chromem.Collection
}

// Result is one retrieval hit, in descending similarity order.
type Result struct {
	Text       string
	Source     models.Source
	Similarity float32
}

type manifest struct {
	Provider  string    `yaml:"provider"`
	Documents int       `yaml:"documents"`
	CreatedAt time.Time `yaml:"created_at"`
}

func (s *Store) providerDir(provider string) string {
	return filepath.Join(s.root, "index_"+provider)
}

// Build embeds every chunk and replaces the provider's index wholesale.
// There is no incremental path: the new index contains exactly the given
// chunks. Zero chunks fail with *models.EmptyInputError.
func (s *Store) Build(ctx context.Context, provider string, embedder Embedder, chunks []models.Chunk) error {
	if len(chunks) == 0 {
		return &models.EmptyInputError{Provider: provider}
	}

	dir := s.providerDir(provider)
	staging := dir + ".build"
	if err := os.RemoveAll(staging); err != nil {
		return fmt.Errorf("clear staging dir: %w", err)
	}
	defer os.RemoveAll(staging)

	db, err := chromem.NewPersistentDB(filepath.Join(staging, dbDirName), compress)
	if err != nil {
		return fmt.Errorf("create vector database: %w", err)
	}
	collection, err := db.GetOrCreateCollection(collectionName, nil, nil)
	if err != nil {
		return fmt.Errorf("create collection: %w", err)
	}

	docs := make([]chromem.Document, 0, len(chunks))
	for _, chunk := range chunks {
		id, err := helper.GenerateUUID()
		if err != nil {
			return err
		}
		vec, err := embedder.EmbedQuery(ctx, chunk.Text)
		if err != nil {
			return fmt.Errorf("embed chunk: %w", err)
		}
		docs = append(docs, chromem.Document{
			ID:      id,
			Content: chunk.Text,
			Metadata: map[string]string{
				metaFilename: chunk.Filename,
				metaPage:     strconv.Itoa(chunk.Page),
			},
			Embedding: vec,
		})
	}

	if err := collection.AddDocuments(ctx, docs, runtime.NumCPU()); err != nil {
		return fmt.Errorf("add documents: %w", err)
	}

	if err := writeManifest(staging, manifest{
		Provider:  provider,
		Documents: len(docs),
		CreatedAt: time.Now().UTC(),
	}); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("remove previous index: %w", err)
	}
	if err := os.Rename(staging, dir); err != nil {
		return fmt.Errorf("activate index: %w", err)
	}

	log.Info().Str("provider", provider).Int("documents", len(docs)).Msg("Vector index rebuilt")
	return nil
}

// Exists reports whether a complete index is present for the provider,
// without loading it. Both the database directory and the sidecar manifest
// must be there; the manifest is written last during a build.
func (s *Store) Exists(provider string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.exists(provider)
}

func (s *Store) exists(provider string) bool {
	dir := s.providerDir(provider)
	if info, err := os.Stat(filepath.Join(dir, dbDirName)); err != nil || !info.IsDir() {
		return false
	}
	if _, err := os.Stat(filepath.Join(dir, manifestName)); err != nil {
		return false
	}
	return true
}

// Load opens the provider's persisted index. The on-disk format is trusted
// as process-owned; Load fails with *models.IndexNotFoundError when the
// index was never built, naming the missing path.
func (s *Store) Load(ctx context.Context, provider string) (*Handle, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	dir := s.providerDir(provider)
	if _, err := os.Stat(dir); err != nil {
		return nil, &models.IndexNotFoundError{Provider: provider, Path: dir}
	}
	if !s.exists(provider) {
		return nil, &models.IndexNotFoundError{Provider: provider, Path: filepath.Join(dir, manifestName)}
	}

	db, err := chromem.NewPersistentDB(filepath.Join(dir, dbDirName), compress)
	if err != nil {
		return nil, fmt.Errorf("open vector database: %w", err)
	}
	collection := db.GetCollection(collectionName, nil)
	if collection == nil {
		return nil, &models.IndexNotFoundError{Provider: provider, Path: filepath.Join(dir, dbDirName)}
	}

	return &Handle{provider: provider, collection: collection}, nil
}

// Retrieve embeds the query and returns up to k nearest chunks, most similar
// first, each tagged with the filename and page it came from.
func (s *Store) Retrieve(ctx context.Context, handle *Handle, embedder Embedder, query string, k int) ([]Result, error) {
	vec, err := embedder.EmbedQuery(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	// chromem rejects asking for more results than the collection holds.
	if count := handle.collection.Count(); k > count {
		k = count
	}
	if k <= 0 {
		return nil, nil
	}

	hits, err := handle.collection.QueryEmbedding(ctx, vec, k, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("query by similarity: %w", err)
	}

	results := make([]Result, 0, len(hits))
	for _, hit := range hits {
		page, _ := strconv.Atoi(hit.Metadata[metaPage])
		results = append(results, Result{
			Text: hit.Content,
			Source: models.Source{
				Filename: hit.Metadata[metaFilename],
				Page:     page,
			},
			Similarity: hit.Similarity,
		})
	}
	return results, nil
}

func writeManifest(dir string, m manifest) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, manifestName), data, 0o644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}
