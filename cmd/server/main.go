package main

import (
	"flag"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/goncaloam132/CHATBOT-WITH-RAG/internal/chat"
	"github.com/goncaloam132/CHATBOT-WITH-RAG/internal/config"
	"github.com/goncaloam132/CHATBOT-WITH-RAG/internal/helper"
	"github.com/goncaloam132/CHATBOT-WITH-RAG/internal/provider"
	"github.com/goncaloam132/CHATBOT-WITH-RAG/internal/rag"
	"github.com/goncaloam132/CHATBOT-WITH-RAG/internal/server"
	"github.com/goncaloam132/CHATBOT-WITH-RAG/internal/vectorstore"
)

const configFilePath = "./configs/config.yaml"

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).With().Caller().Logger()

	configPath := flag.String("config", configFilePath, "Path to the config file")
	addr := flag.String("addr", "", "Listen address, overrides the config")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Error loading config")
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}

	if err := helper.CreateFolder(cfg.Storage.UploadDir); err != nil {
		log.Fatal().Err(err).Msg("Error creating upload folder")
	}
	if err := helper.CreateFolder(cfg.Storage.IndexDir); err != nil {
		log.Fatal().Err(err).Msg("Error creating index folder")
	}

	store := vectorstore.New(cfg.Storage.IndexDir)
	session := chat.NewSession()
	providers := func(name string) (rag.Provider, error) {
		p, err := provider.New(name, cfg)
		if err != nil {
			return nil, err
		}
		return p, nil
	}
	orch := rag.NewOrchestrator(store, providers, cfg.RAG.TopK)
	srv := server.New(cfg, session, store, providers, orch)

	log.Info().Str("addr", cfg.Server.Addr).Msg("Listening")
	if err := http.ListenAndServe(cfg.Server.Addr, srv); err != nil {
		log.Fatal().Err(err).Msg("Server stopped")
	}
}
