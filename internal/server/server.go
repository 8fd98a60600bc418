// Package server is the thin HTTP layer over the ingestion pipeline and the
// answer orchestrator.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/goncaloam132/CHATBOT-WITH-RAG/internal/chat"
	"github.com/goncaloam132/CHATBOT-WITH-RAG/internal/chunk"
	"github.com/goncaloam132/CHATBOT-WITH-RAG/internal/config"
	"github.com/goncaloam132/CHATBOT-WITH-RAG/internal/extract"
	"github.com/goncaloam132/CHATBOT-WITH-RAG/internal/models"
	"github.com/goncaloam132/CHATBOT-WITH-RAG/internal/rag"
	"github.com/goncaloam132/CHATBOT-WITH-RAG/internal/vectorstore"
)

const maxUploadBytes = 64 << 20

type Server struct {
	cfg       *config.Config
	session   *chat.Session
	store     *vectorstore.Store
	orch      *rag.Orchestrator
	providers rag.ProviderFunc
	handler   http.Handler
}

type messageResponse struct {
	Message string `json:"message"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type uploadResponse struct {
	Message string   `json:"message"`
	Files   []string `json:"pdfs"`
}

type processRequest struct {
	Provider string `json:"provider"`
}

type processResponse struct {
	Message   string   `json:"message"`
	Documents int      `json:"documents"`
	Chunks    int      `json:"chunks"`
	Failed    []string `json:"failed,omitempty"`
}

type chatRequest struct {
	Question string `json:"question"`
	Provider string `json:"provider"`
	UseRAG   bool   `json:"use_rag"`
}

type chatResponse struct {
	Response string            `json:"response"`
	Sources  []models.Source   `json:"sources"`
	History  []models.ChatTurn `json:"chat_history"`
}

func New(cfg *config.Config, session *chat.Session, store *vectorstore.Store, providers rag.ProviderFunc, orch *rag.Orchestrator) *Server {
	s := &Server{
		cfg:       cfg,
		session:   session,
		store:     store,
		orch:      orch,
		providers: providers,
	}
	s.handler = s.routes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("POST /upload", s.handleUpload)
	mux.HandleFunc("GET /list", s.handleList)
	mux.HandleFunc("POST /process", s.handleProcess)
	mux.HandleFunc("GET /view/{name}", s.handleView)
	mux.HandleFunc("GET /download/{name}", s.handleDownload)
	mux.HandleFunc("POST /chat", s.handleChat)
	return mux
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, messageResponse{Message: "ok"})
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("parse upload: %w", err))
		return
	}
	files := r.MultipartForm.File["pdfs"]
	if len(files) == 0 {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("no files sent"))
		return
	}

	for _, header := range files {
		name := secureFilename(header.Filename)
		if name == "" {
			continue
		}
		if err := s.saveUpload(header, name); err != nil {
			s.writeError(w, http.StatusInternalServerError, fmt.Errorf("save %s: %w", name, err))
			return
		}
		s.session.AddFile(name)
		log.Info().Str("file", name).Msg("Stored upload")
	}

	s.writeJSON(w, http.StatusOK, uploadResponse{
		Message: "files uploaded",
		Files:   s.session.Files(),
	})
}

// saveUpload writes through a temp file and renames it into place, so the
// processing path never reads a half-written document.
func (s *Server) saveUpload(header *multipart.FileHeader, name string) error {
	src, err := header.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	tmp, err := os.CreateTemp(s.cfg.Storage.UploadDir, ".upload-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, src); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), filepath.Join(s.cfg.Storage.UploadDir, name))
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string][]string{"pdfs": s.session.Files()})
}

func (s *Server) handleProcess(w http.ResponseWriter, r *http.Request) {
	var req processRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("decode request: %w", err))
		return
	}

	files := s.session.Files()
	if len(files) == 0 {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("no documents uploaded"))
		return
	}

	p, err := s.providers(req.Provider)
	if err != nil {
		var unknown *models.UnknownProviderError
		if errors.As(err, &unknown) {
			s.writeError(w, http.StatusBadRequest, err)
			return
		}
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}

	// One unreadable document skips that document, not the batch.
	var (
		pages  []models.PageRecord
		failed []string
	)
	for _, name := range files {
		docPages, err := extract.File(filepath.Join(s.cfg.Storage.UploadDir, name))
		if err != nil {
			log.Warn().Err(err).Str("file", name).Msg("Skipping unreadable document")
			failed = append(failed, name)
			continue
		}
		pages = append(pages, docPages...)
	}

	chunks, err := chunk.Split(pages, chunk.ProfileFor(p.Name()))
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}

	if err := s.store.Build(r.Context(), p.Name(), p, chunks); err != nil {
		var empty *models.EmptyInputError
		if errors.As(err, &empty) {
			s.writeError(w, http.StatusBadRequest, err)
			return
		}
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}

	s.writeJSON(w, http.StatusOK, processResponse{
		Message:   "processing complete",
		Documents: len(files) - len(failed),
		Chunks:    len(chunks),
		Failed:    failed,
	})
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	name := secureFilename(r.PathValue("name"))
	if name == "" || !s.session.HasFile(name) {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", name))
	http.ServeFile(w, r, filepath.Join(s.cfg.Storage.UploadDir, name))
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("decode request: %w", err))
		return
	}

	result, err := s.orch.Answer(r.Context(), s.session, req.Question, req.Provider, req.UseRAG)
	if err != nil {
		var (
			invalid *models.InvalidRequestError
			unknown *models.UnknownProviderError
		)
		switch {
		case errors.As(err, &invalid), errors.As(err, &unknown):
			s.writeError(w, http.StatusBadRequest, err)
		default:
			s.writeError(w, http.StatusInternalServerError, err)
		}
		return
	}

	s.writeJSON(w, http.StatusOK, chatResponse{
		Response: result.Answer,
		Sources:  result.Sources,
		History:  s.session.History(),
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Error().Err(err).Msg("Encode response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	log.Warn().Int("status", status).Err(err).Msg("Request failed")
	s.writeJSON(w, status, errorResponse{Error: err.Error()})
}

func decodeJSON(r *http.Request, dst any) error {
	if r.Body == nil {
		return nil
	}
	defer r.Body.Close()

	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		if err == io.EOF {
			return nil
		}
		return err
	}
	return nil
}

// secureFilename strips any path components from an uploaded name so files
// can only land directly inside the upload directory.
func secureFilename(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = filepath.Base(name)
	if name == "." || name == ".." || name == "/" || strings.HasPrefix(name, ".upload-") {
		return ""
	}
	return name
}
