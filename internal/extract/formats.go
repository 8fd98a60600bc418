package extract

import (
	"fmt"
	"os"
	"strings"

	"github.com/nguyenthenguyen/docx"
	"github.com/tealeg/xlsx"
	"github.com/xuri/excelize/v2"

	"github.com/goncaloam132/CHATBOT-WITH-RAG/internal/models"
)

// Formats without native pagination report page 1.
const defaultPageNumber = 1

func textPages(path, filename string) ([]models.PageRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if isBlank(string(data)) {
		return nil, nil
	}
	return []models.PageRecord{{
		Text:     string(data),
		Page:     defaultPageNumber,
		Filename: filename,
	}}, nil
}

func docxPages(path, filename string) ([]models.PageRecord, error) {
	r, err := docx.ReadDocxFile(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	content := r.Editable().GetContent()
	if isBlank(content) {
		return nil, nil
	}
	return []models.PageRecord{{
		Text:     content,
		Page:     defaultPageNumber,
		Filename: filename,
	}}, nil
}

// xlsxPages flattens each sheet into one record, sheet number as the page.
func xlsxPages(path, filename string) ([]models.PageRecord, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, err
	}

	var pages []models.PageRecord
	for sheetNum, sheet := range f.Sheets {
		var text strings.Builder
		text.WriteString(fmt.Sprintf("Sheet: %s\n", sheet.Name))
		for _, row := range sheet.Rows {
			for _, cell := range row.Cells {
				text.WriteString(cell.String() + "\t")
			}
			text.WriteString("\n")
		}
		if isBlank(strings.TrimPrefix(text.String(), "Sheet: "+sheet.Name)) {
			continue
		}
		pages = append(pages, models.PageRecord{
			Text:     text.String(),
			Page:     sheetNum + 1,
			Filename: filename,
		})
	}
	return pages, nil
}

func odsPages(path, filename string) ([]models.PageRecord, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var pages []models.PageRecord
	for sheetNum, sheetName := range f.GetSheetList() {
		rows, err := f.GetRows(sheetName)
		if err != nil {
			continue
		}
		var text strings.Builder
		text.WriteString(fmt.Sprintf("Sheet: %s\n", sheetName))
		empty := true
		for _, row := range rows {
			for _, cell := range row {
				if !isBlank(cell) {
					empty = false
				}
				text.WriteString(cell + "\t")
			}
			text.WriteString("\n")
		}
		if empty {
			continue
		}
		pages = append(pages, models.PageRecord{
			Text:     text.String(),
			Page:     sheetNum + 1,
			Filename: filename,
		})
	}
	return pages, nil
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
