// Package rag decides, per question, between retrieval-augmented answering
// and asking the language model directly, and turns every internal failure
// of the answer path into a readable answer instead of an error.
package rag

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/goncaloam132/CHATBOT-WITH-RAG/internal/chat"
	"github.com/goncaloam132/CHATBOT-WITH-RAG/internal/models"
	"github.com/goncaloam132/CHATBOT-WITH-RAG/internal/vectorstore"
)

// Provider is the pair of capabilities the orchestrator needs from a
// backend.
type Provider interface {
	Name() string
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
	Complete(ctx context.Context, prompt string) (string, error)
}

// ProviderFunc resolves a provider name, failing with
// *models.UnknownProviderError for unsupported names.
type ProviderFunc func(name string) (Provider, error)

// indexAvailability names the two states the RAG branch can find the index
// in. Missing is a valid cold-start state, not a fault.
type indexAvailability int

const (
	indexReady indexAvailability = iota
	indexMissing
)

type Orchestrator struct {
	store     *vectorstore.Store
	providers ProviderFunc
	topK      int
}

func NewOrchestrator(store *vectorstore.Store, providers ProviderFunc, topK int) *Orchestrator {
	if topK <= 0 {
		topK = 4
	}
	return &Orchestrator{store: store, providers: providers, topK: topK}
}

// Answer runs one question through the two-mode flow and appends the
// exchange to the session log.
//
// Only request validation can fail: an empty question
// (*models.InvalidRequestError) or an unsupported provider
// (*models.UnknownProviderError), and neither appends a turn. Everything
// after validation always produces an answer; failures along the answer
// path are reported inside it with empty sources.
func (o *Orchestrator) Answer(ctx context.Context, session *chat.Session, question, providerName string, useRAG bool) (models.AnswerResult, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return models.AnswerResult{}, &models.InvalidRequestError{Reason: "no question provided"}
	}

	p, err := o.providers(providerName)
	if err != nil {
		return models.AnswerResult{}, err
	}

	answer, sources, err := o.answer(ctx, p, question, useRAG)
	if err != nil {
		log.Error().Err(err).Str("provider", p.Name()).Msg("Answer path failed")
		answer = fmt.Sprintf("An error occurred: %v", err)
		sources = nil
	}

	session.Append(question, answer)
	return models.AnswerResult{Answer: answer, Sources: sources}, nil
}

func (o *Orchestrator) answer(ctx context.Context, p Provider, question string, useRAG bool) (string, []models.Source, error) {
	if useRAG {
		switch o.availability(p.Name()) {
		case indexReady:
			return o.answerFromIndex(ctx, p, question)
		case indexMissing:
			// Nothing indexed yet: downgrade to direct mode instead of
			// failing the question.
			log.Debug().Str("provider", p.Name()).Msg("No vector index yet, answering directly")
		}
	}

	answer, err := p.Complete(ctx, question)
	if err != nil {
		return "", nil, err
	}
	return answer, nil, nil
}

func (o *Orchestrator) availability(provider string) indexAvailability {
	if o.store.Exists(provider) {
		return indexReady
	}
	return indexMissing
}

func (o *Orchestrator) answerFromIndex(ctx context.Context, p Provider, question string) (string, []models.Source, error) {
	handle, err := o.store.Load(ctx, p.Name())
	if err != nil {
		return "", nil, err
	}

	hits, err := o.store.Retrieve(ctx, handle, p, question, o.topK)
	if err != nil {
		return "", nil, err
	}

	var contextText strings.Builder
	sources := make([]models.Source, 0, len(hits))
	for _, hit := range hits {
		contextText.WriteString(hit.Text)
		contextText.WriteString("\n\n")
		if hit.Source.Filename != "" && hit.Source.Page > 0 {
			sources = append(sources, hit.Source)
		}
	}

	prompt, err := answerPrompt.Format(map[string]any{
		"context":  contextText.String(),
		"question": question,
	})
	if err != nil {
		return "", nil, err
	}

	answer, err := p.Complete(ctx, prompt)
	if err != nil {
		return "", nil, err
	}
	return answer, sources, nil
}
