package server

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/goncaloam132/CHATBOT-WITH-RAG/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

type renderedTurn struct {
	Role    string
	Content template.HTML
}

type indexPage struct {
	Files   []string
	History []renderedTurn
}

type viewPage struct {
	Filename string
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	page := indexPage{
		Files:   s.session.Files(),
		History: renderHistory(s.session.History()),
	}
	s.renderTemplate(w, "index.html", page)
}

func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	name := secureFilename(r.PathValue("name"))
	if name == "" || !s.session.HasFile(name) {
		http.NotFound(w, r)
		return
	}
	s.renderTemplate(w, "view.html", viewPage{Filename: name})
}

func (s *Server) renderTemplate(w http.ResponseWriter, name string, data any) {
	var buf bytes.Buffer
	if err := pageTemplates.ExecuteTemplate(&buf, name, data); err != nil {
		log.Error().Err(err).Str("template", name).Msg("Render template")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := buf.WriteTo(w); err != nil {
		log.Error().Err(err).Msg("Write page")
	}
}

// renderHistory converts assistant markdown to HTML for the UI; user turns
// stay escaped plain text.
func renderHistory(turns []models.ChatTurn) []renderedTurn {
	rendered := make([]renderedTurn, 0, len(turns))
	for _, turn := range turns {
		if turn.Role != models.RoleAssistant {
			rendered = append(rendered, renderedTurn{
				Role:    turn.Role,
				Content: template.HTML(template.HTMLEscapeString(turn.Content)),
			})
			continue
		}
		var buf bytes.Buffer
		if err := markdown.Convert([]byte(turn.Content), &buf); err != nil {
			log.Warn().Err(err).Msg("Render assistant markdown")
			buf.Reset()
			buf.WriteString(template.HTMLEscapeString(turn.Content))
		}
		rendered = append(rendered, renderedTurn{
			Role:    turn.Role,
			Content: template.HTML(buf.String()),
		})
	}
	return rendered
}
