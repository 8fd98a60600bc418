package config

import (
	"errors"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ProviderConfig holds the connection details for one embedding/LLM provider.
type ProviderConfig struct {
	BaseURL        string `yaml:"base_url"`
	APIKey         string `yaml:"api_key"`
	Model          string `yaml:"model"`
	EmbeddingModel string `yaml:"embedding_model"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

type StorageConfig struct {
	UploadDir string `yaml:"upload_dir"`
	IndexDir  string `yaml:"index_dir"`
}

type RAGConfig struct {
	TopK int `yaml:"top_k"`
}

type Config struct {
	Server  ServerConfig   `yaml:"server"`
	Storage StorageConfig  `yaml:"storage"`
	Cloud   ProviderConfig `yaml:"cloud"`
	Local   ProviderConfig `yaml:"local"`
	RAG     RAGConfig      `yaml:"rag"`
}

// Load reads the YAML config at path, falling back to defaults when the file
// does not exist. A .env file (if present) and the environment supply the
// cloud API credential.
func Load(path string) (*Config, error) {
	// .env is optional; a missing file is not an error.
	_ = godotenv.Load()

	cfg := defaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	applyDefaults(cfg)

	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		cfg.Cloud.APIKey = key
	}
	return cfg, nil
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{Addr: ":5000"},
		Storage: StorageConfig{
			UploadDir: "data/raw_pdfs",
			IndexDir:  "data",
		},
		Cloud: ProviderConfig{
			Model:          "gpt-3.5-turbo",
			EmbeddingModel: "text-embedding-ada-002",
		},
		Local: ProviderConfig{
			BaseURL:        "http://localhost:11434",
			Model:          "qwen2.5:1.5b",
			EmbeddingModel: "granite-embedding:278m",
		},
		RAG: RAGConfig{TopK: 4},
	}
}

func applyDefaults(cfg *Config) {
	def := defaultConfig()
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = def.Server.Addr
	}
	if cfg.Storage.UploadDir == "" {
		cfg.Storage.UploadDir = def.Storage.UploadDir
	}
	if cfg.Storage.IndexDir == "" {
		cfg.Storage.IndexDir = def.Storage.IndexDir
	}
	if cfg.Cloud.Model == "" {
		cfg.Cloud.Model = def.Cloud.Model
	}
	if cfg.Cloud.EmbeddingModel == "" {
		cfg.Cloud.EmbeddingModel = def.Cloud.EmbeddingModel
	}
	if cfg.Local.BaseURL == "" {
		cfg.Local.BaseURL = def.Local.BaseURL
	}
	if cfg.Local.Model == "" {
		cfg.Local.Model = def.Local.Model
	}
	if cfg.Local.EmbeddingModel == "" {
		cfg.Local.EmbeddingModel = def.Local.EmbeddingModel
	}
	if cfg.RAG.TopK <= 0 {
		cfg.RAG.TopK = def.RAG.TopK
	}
}
