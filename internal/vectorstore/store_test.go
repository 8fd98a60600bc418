package vectorstore

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/goncaloam132/CHATBOT-WITH-RAG/internal/models"
)

// stubEmbedder maps a small keyword vocabulary onto vector axes so tests get
// deterministic, meaningful similarities without a real provider.
type stubEmbedder struct {
	calls int
}

var vocabulary = []string{"alpha", "beta", "gamma", "delta"}

func (e *stubEmbedder) EmbedQuery(_ context.Context, text string) ([]float32, error) {
	e.calls++
	vec := make([]float32, len(vocabulary)+1)
	vec[len(vocabulary)] = 0.1 // keeps vectors non-zero
	for i, word := range vocabulary {
		if strings.Contains(text, word) {
			vec[i] = 1
		}
	}
	var norm float64
	for _, v := range vec {
		norm += float64(v) * float64(v)
	}
	norm = math.Sqrt(norm)
	for i := range vec {
		vec[i] = float32(float64(vec[i]) / norm)
	}
	return vec, nil
}

func testChunks() []models.Chunk {
	return []models.Chunk{
		{Text: "alpha facts about the first topic", Page: 1, Filename: "a.pdf"},
		{Text: "beta notes on the second topic", Page: 2, Filename: "a.pdf"},
		{Text: "gamma details from another file", Page: 1, Filename: "b.pdf"},
	}
}

func TestBuildEmptyInput(t *testing.T) {
	store := New(t.TempDir())

	err := store.Build(context.Background(), "cloud", &stubEmbedder{}, nil)
	var empty *models.EmptyInputError
	if !errors.As(err, &empty) {
		t.Fatalf("expected EmptyInputError, got %T: %v", err, err)
	}
	if store.Exists("cloud") {
		t.Error("failed build must not leave an index behind")
	}
}

func TestExistsBeforeAndAfterBuild(t *testing.T) {
	store := New(t.TempDir())

	if store.Exists("cloud") {
		t.Fatal("index exists before any build")
	}
	if err := store.Build(context.Background(), "cloud", &stubEmbedder{}, testChunks()); err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !store.Exists("cloud") {
		t.Fatal("index missing after build")
	}
	// Provider namespaces are independent.
	if store.Exists("local") {
		t.Error("build for cloud leaked into local namespace")
	}
}

func TestLoadWithoutBuild(t *testing.T) {
	store := New(t.TempDir())

	_, err := store.Load(context.Background(), "local")
	var notFound *models.IndexNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected IndexNotFoundError, got %T: %v", err, err)
	}
	if notFound.Provider != "local" {
		t.Errorf("error names provider %q, want local", notFound.Provider)
	}
	if notFound.Path == "" {
		t.Error("error must name the missing path")
	}
}

func TestBuildLoadRetrieve(t *testing.T) {
	ctx := context.Background()
	store := New(t.TempDir())
	embedder := &stubEmbedder{}

	if err := store.Build(ctx, "cloud", embedder, testChunks()); err != nil {
		t.Fatalf("Build: %v", err)
	}

	handle, err := store.Load(ctx, "cloud")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	results, err := store.Retrieve(ctx, handle, embedder, "tell me about alpha", 2)
	if err != nil {
		t.Fatalf("Retrieve: %v", err)
	}
	if len(results) == 0 || len(results) > 2 {
		t.Fatalf("expected 1..2 results, got %d", len(results))
	}
	if got := results[0].Source; got.Filename != "a.pdf" || got.Page != 1 {
		t.Errorf("best hit should be the alpha chunk, got %+v", got)
	}
	for i := 1; i < len(results); i++ {
		if results[i].Similarity > results[i-1].Similarity {
			t.Errorf("results not in descending similarity order at %d", i)
		}
	}
}

func TestRetrieveCapsKAtIndexSize(t *testing.T) {
	ctx := context.Background()
	store := New(t.TempDir())
	embedder := &stubEmbedder{}

	if err := store.Build(ctx, "cloud", embedder, testChunks()); err != nil {
		t.Fatalf("Build: %v", err)
	}
	handle, err := store.Load(ctx, "cloud")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	results, err := store.Retrieve(ctx, handle, embedder, "beta", 50)
	if err != nil {
		t.Fatalf("Retrieve: %v", err)
	}
	if len(results) != len(testChunks()) {
		t.Fatalf("expected %d results, got %d", len(testChunks()), len(results))
	}
}

func TestRebuildReplacesWholesale(t *testing.T) {
	ctx := context.Background()
	store := New(t.TempDir())
	embedder := &stubEmbedder{}

	if err := store.Build(ctx, "cloud", embedder, testChunks()); err != nil {
		t.Fatalf("Build: %v", err)
	}
	replacement := []models.Chunk{
		{Text: "delta content only", Page: 7, Filename: "c.pdf"},
	}
	if err := store.Build(ctx, "cloud", embedder, replacement); err != nil {
		t.Fatalf("rebuild: %v", err)
	}

	handle, err := store.Load(ctx, "cloud")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	results, err := store.Retrieve(ctx, handle, embedder, "anything at all", 10)
	if err != nil {
		t.Fatalf("Retrieve: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("rebuild must replace, not merge: got %d results", len(results))
	}
	if results[0].Source.Filename != "c.pdf" || results[0].Source.Page != 7 {
		t.Errorf("unexpected surviving chunk: %+v", results[0])
	}
}
