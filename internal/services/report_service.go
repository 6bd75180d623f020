package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/bibliotek/catalog/internal/database"
	"github.com/bibliotek/catalog/internal/database/reports"
	"github.com/bibliotek/catalog/internal/entities"
	"github.com/bibliotek/catalog/internal/logging"
)

// AuthorReport is one entry of the nested author→books→subjects report tree.
// Authors without books keep an empty (never nil) Books list.
type AuthorReport struct {
	AuthorID   uint         `json:"authorId"`
	AuthorName string       `json:"authorName"`
	Books      []BookReport `json:"books"`
}

// BookReport is one book inside an author's report entry.
type BookReport struct {
	BookID          uint     `json:"bookId"`
	Title           string   `json:"bookTitle"`
	Publisher       string   `json:"publisher"`
	Edition         int      `json:"edition"`
	PublicationYear string   `json:"publicationYear"`
	Amount          string   `json:"amount"`
	Subjects        []string `json:"subjects"`
}

// ReportRenderer turns a prepared report tree into a binary document. The
// service treats the renderer as an opaque collaborator.
type ReportRenderer interface {
	RenderAuthorReport(authors []AuthorReport) ([]byte, error)
}

// ReportService builds the author report tree and hands it to the renderer.
type ReportService struct {
	repo     *reports.Repository
	renderer ReportRenderer
	log      logging.Logger
}

// NewReportService creates a new report service.
func NewReportService(repo *reports.Repository, renderer ReportRenderer, log logging.Logger) *ReportService {
	return &ReportService{repo: repo, renderer: renderer, log: log}
}

// ByAuthors traverses every author, each of their books and each book's
// subjects into a strict one-to-many-to-many projection.
func (s *ReportService) ByAuthors() ([]AuthorReport, error) {
	s.log.Info("building author report")

	authors, err := s.repo.AuthorsWithBooksAndSubjects()
	if err != nil {
		s.log.Error("failed to load authors for report", zap.Error(err))
		return nil, err
	}

	result := make([]AuthorReport, 0, len(authors))
	for _, author := range authors {
		entry := AuthorReport{
			AuthorID:   author.ID,
			AuthorName: author.Name,
			Books:      make([]BookReport, 0, len(author.Books)),
		}
		for _, book := range author.Books {
			subjectNames := make([]string, 0, len(book.Subjects))
			for _, subject := range book.Subjects {
				subjectNames = append(subjectNames, subject.Description)
			}
			entry.Books = append(entry.Books, BookReport{
				BookID:          book.ID,
				Title:           book.Title,
				Publisher:       book.Publisher,
				Edition:         book.Edition,
				PublicationYear: book.PublicationYear,
				Amount:          FormatAmount(book.Price),
				Subjects:        subjectNames,
			})
		}
		result = append(result, entry)
	}

	s.log.Info("author report built", zap.Int("authors", len(result)))
	return result, nil
}

// Download renders the prepared report tree into a PDF document and returns
// the timestamp-suffixed filename alongside the binary payload. A renderer
// failure is logged and returned unchanged.
func (s *ReportService) Download(authors []AuthorReport) (string, []byte, error) {
	s.log.Info("rendering author report", zap.Int("authors", len(authors)))

	payload, err := s.renderer.RenderAuthorReport(authors)
	if err != nil {
		s.log.Error("failed to render author report", zap.Error(err))
		return "", nil, err
	}

	filename := fmt.Sprintf("report_authors_%s.pdf", time.Now().Format("20060102150405"))
	s.log.Info("author report rendered", zap.String("filename", filename), zap.Int("bytes", len(payload)))
	return filename, payload, nil
}

// Rows returns one page of the flat report view.
func (s *ReportService) Rows(filters map[string]string, sortField, sortDir string, page, perPage int) (*database.Page[entities.ReportAuthorRow], error) {
	s.log.Info("fetching report rows",
		zap.Any("filters", filters), zap.String("sort", sortField), zap.String("dir", sortDir))
	result, err := s.repo.Rows(filters, sortField, sortDir, page, perPage)
	if err != nil {
		s.log.Error("failed to fetch report rows", zap.Error(err), zap.Any("filters", filters))
		return nil, err
	}
	return result, nil
}

// Statistics summarizes the report view.
func (s *ReportService) Statistics() (*reports.Statistics, error) {
	s.log.Info("fetching report statistics")
	stats, err := s.repo.GetStatistics()
	if err != nil {
		s.log.Error("failed to fetch report statistics", zap.Error(err))
		return nil, err
	}
	return stats, nil
}

// TopAuthors ranks authors by book count.
func (s *ReportService) TopAuthors(limit int) ([]reports.TopAuthor, error) {
	s.log.Info("fetching top authors", zap.Int("limit", limit))
	rows, err := s.repo.TopAuthors(limit)
	if err != nil {
		s.log.Error("failed to fetch top authors", zap.Error(err))
		return nil, err
	}
	return rows, nil
}

// FormatAmount renders a price the way the report displays it: comma as the
// decimal separator and dots grouping thousands, e.g. 1119.5 -> "1.119,50".
func FormatAmount(price decimal.Decimal) string {
	fixed := price.StringFixed(2)
	negative := strings.HasPrefix(fixed, "-")
	fixed = strings.TrimPrefix(fixed, "-")

	intPart, fracPart, _ := strings.Cut(fixed, ".")
	var groups []string
	for len(intPart) > 3 {
		groups = append([]string{intPart[len(intPart)-3:]}, groups...)
		intPart = intPart[:len(intPart)-3]
	}
	groups = append([]string{intPart}, groups...)

	out := strings.Join(groups, ".") + "," + fracPart
	if negative {
		out = "-" + out
	}
	return out
}
