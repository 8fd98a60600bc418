// Package provider wires the two supported embedding/LLM backends: a
// cloud-hosted OpenAI-compatible API and a locally hosted Ollama server.
package provider

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/goncaloam132/CHATBOT-WITH-RAG/internal/config"
	"github.com/goncaloam132/CHATBOT-WITH-RAG/internal/models"
)

const (
	Cloud = "cloud"
	Local = "local"
)

// Known reports whether name is a supported provider.
func Known(name string) bool {
	return name == Cloud || name == Local
}

// Provider bundles the two capabilities every backend must offer: embedding
// a text into a vector and completing a prompt into an answer.
type Provider struct {
	name        string
	embedder    *embeddings.EmbedderImpl
	llm         llms.Model
	temperature float64
}

// New builds the provider for name, or *models.UnknownProviderError for any
// name outside the supported set.
func New(name string, cfg *config.Config) (*Provider, error) {
	switch name {
	case Cloud:
		return newCloud(&cfg.Cloud)
	case Local:
		return newLocal(&cfg.Local)
	default:
		return nil, &models.UnknownProviderError{Name: name}
	}
}

func newCloud(cfg *config.ProviderConfig) (*Provider, error) {
	opts := []openai.Option{openai.WithToken(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
	}

	llm, err := openai.New(append(opts, openai.WithModel(cfg.Model))...)
	if err != nil {
		return nil, err
	}

	embedLLM, err := openai.New(append(opts, openai.WithModel(cfg.EmbeddingModel))...)
	if err != nil {
		return nil, err
	}
	embedder, err := embeddings.NewEmbedder(embedLLM)
	if err != nil {
		return nil, err
	}

	return &Provider{name: Cloud, embedder: embedder, llm: llm, temperature: 0.3}, nil
}

func newLocal(cfg *config.ProviderConfig) (*Provider, error) {
	llm, err := ollama.New(
		ollama.WithServerURL(cfg.BaseURL),
		ollama.WithModel(cfg.Model),
	)
	if err != nil {
		return nil, err
	}

	embedLLM, err := ollama.New(
		ollama.WithServerURL(cfg.BaseURL),
		ollama.WithModel(cfg.EmbeddingModel),
	)
	if err != nil {
		return nil, err
	}
	embedder, err := embeddings.NewEmbedder(embedLLM)
	if err != nil {
		return nil, err
	}

	return &Provider{name: Local, embedder: embedder, llm: llm}, nil
}

func (p *Provider) Name() string { return p.name }

// EmbedQuery converts text into an embedding vector.
func (p *Provider) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	return p.embedder.EmbedQuery(ctx, text)
}

// Complete sends a single prompt to the language model and returns the
// generated text.
func (p *Provider) Complete(ctx context.Context, prompt string) (string, error) {
	log.Debug().Str("provider", p.name).Int("prompt_len", len(prompt)).Msg("Generating completion")

	var opts []llms.CallOption
	if p.temperature > 0 {
		opts = append(opts, llms.WithTemperature(p.temperature))
	}
	return llms.GenerateFromSinglePrompt(ctx, p.llm, prompt, opts...)
}
