// Package pdf renders catalog reports as PDF documents. The services treat it
// as an opaque renderer behind the services.ReportRenderer interface.
package pdf

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/bibliotek/catalog/internal/services"
)

// AuthorReportRenderer renders the author→books→subjects tree as an A4 PDF.
type AuthorReportRenderer struct{}

var _ services.ReportRenderer = (*AuthorReportRenderer)(nil)

// NewAuthorReportRenderer creates a new renderer.
func NewAuthorReportRenderer() *AuthorReportRenderer {
	return &AuthorReportRenderer{}
}

// RenderAuthorReport lays out one section per author with a line per book and
// the book's subjects underneath, and returns the document bytes.
func (r *AuthorReportRenderer) RenderAuthorReport(authors []services.AuthorReport) ([]byte, error) {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetTitle("Books by Author", false)
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 16)
	doc.CellFormat(0, 10, "Books by Author", "", 1, "L", false, 0, "")
	doc.Ln(4)

	for _, author := range authors {
		doc.SetFont("Helvetica", "B", 12)
		doc.CellFormat(0, 8, fmt.Sprintf("%s (#%d)", author.AuthorName, author.AuthorID), "", 1, "L", false, 0, "")

		if len(author.Books) == 0 {
			doc.SetFont("Helvetica", "I", 10)
			doc.CellFormat(0, 6, "No books registered", "", 1, "L", false, 0, "")
			doc.Ln(2)
			continue
		}

		for _, book := range author.Books {
			doc.SetFont("Helvetica", "", 10)
			line := fmt.Sprintf("%s - %s, edition %d, %s - %s",
				book.Title, book.Publisher, book.Edition, book.PublicationYear, book.Amount)
			doc.CellFormat(0, 6, line, "", 1, "L", false, 0, "")

			if len(book.Subjects) > 0 {
				doc.SetFont("Helvetica", "I", 9)
				doc.CellFormat(0, 5, "Subjects: "+strings.Join(book.Subjects, ", "), "", 1, "L", false, 0, "")
			}
		}
		doc.Ln(3)
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render author report: %w", err)
	}
	return buf.Bytes(), nil
}
