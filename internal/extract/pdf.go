package extract

import (
	"os"

	"github.com/ledongthuc/pdf"

	"github.com/goncaloam132/CHATBOT-WITH-RAG/internal/models"
)

// pdfPages extracts text page by page, 1-indexed. Pages without extractable
// text (scanned images, blank pages) are skipped, not emitted empty.
func pdfPages(path, filename string) ([]models.PageRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, err
	}

	reader, err := pdf.NewReader(f, stat.Size())
	if err != nil {
		return nil, err
	}

	var pages []models.PageRecord
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			return nil, err
		}
		if isBlank(pageText) {
			continue
		}
		pages = append(pages, models.PageRecord{
			Text:     pageText,
			Page:     i,
			Filename: filename,
		})
	}
	return pages, nil
}
