// Package extract turns uploaded documents into page-tagged text records.
//
// PDF is the primary format and keeps true page numbers. The secondary
// formats carry a best-effort page: sheet number for spreadsheets,
// slide-less formats collapse to page 1.
package extract

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/goncaloam132/CHATBOT-WITH-RAG/internal/models"
)

// File parses the document at path and returns its non-empty pages in order.
// The filename recorded on every PageRecord is the base name of path.
// A document that cannot be parsed fails as a whole with
// *models.DocumentReadError; partial results are never returned.
func File(path string) ([]models.PageRecord, error) {
	filename := filepath.Base(path)

	var (
		pages []models.PageRecord
		err   error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".pdf":
		pages, err = pdfPages(path, filename)
	case ".txt":
		pages, err = textPages(path, filename)
	case ".docx":
		pages, err = docxPages(path, filename)
	case ".xlsx":
		pages, err = xlsxPages(path, filename)
	case ".ods":
		pages, err = odsPages(path, filename)
	default:
		err = fmt.Errorf("unsupported file format: %s", ext)
	}
	if err != nil {
		return nil, &models.DocumentReadError{Filename: filename, Err: err}
	}
	return pages, nil
}
