// Package reports provides the read-only aggregation queries behind the
// author report and the statistics views: the nested author→book→subject
// traversal plus queries over the view_report_author view.
package reports

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/bibliotek/catalog/internal/database"
	"github.com/bibliotek/catalog/internal/entities"
)

// Repository handles all reporting queries. It never writes.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new reports repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// viewColumns whitelists the view's columns for filtering and sorting so raw
// request input never reaches the query text.
var viewColumns = map[string]bool{
	"id":               true,
	"author_id":        true,
	"author_name":      true,
	"book_id":          true,
	"book_title":       true,
	"publisher":        true,
	"edition":          true,
	"publication_year": true,
	"amount":           true,
	"subjects":         true,
}

// AuthorsWithBooksAndSubjects loads every author with their books and each
// book's subjects, ordered by author id. This is the source tree for the
// author report; authors without books come back with an empty Books slice.
func (r *Repository) AuthorsWithBooksAndSubjects() ([]entities.Author, error) {
	var authors []entities.Author
	err := r.db.Preload("Books.Subjects").Order("id ASC").Find(&authors).Error
	return authors, err
}

// Rows returns one page of report view rows. publication_year filters compare
// exactly, every other filter is a substring match. Unknown filter or sort
// columns are ignored.
func (r *Repository) Rows(filters map[string]string, sortField, sortDir string, page, perPage int) (*database.Page[entities.ReportAuthorRow], error) {
	if page < 1 {
		page = 1
	}
	if !viewColumns[sortField] {
		sortField = "author_name"
	}
	if sortDir != "desc" {
		sortDir = "asc"
	}

	query := r.db.Model(&entities.ReportAuthorRow{})
	for field, value := range filters {
		if !viewColumns[field] {
			continue
		}
		if field == "publication_year" {
			query = query.Where("publication_year = ?", value)
		} else {
			query = query.Where(fmt.Sprintf("%s LIKE ?", field), "%"+value+"%")
		}
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var rows []entities.ReportAuthorRow
	err := query.
		Order(fmt.Sprintf("%s %s", sortField, sortDir)).
		Offset((page - 1) * perPage).Limit(perPage).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	return database.NewPage(rows, page, perPage, total), nil
}

// Statistics summarizes the report view. Averages and year bounds are nil when
// the catalog has no books.
type Statistics struct {
	TotalAuthors     int64    `json:"total_authors"`
	TotalBooks       int64    `json:"total_books"`
	TotalPublishers  int64    `json:"total_publishers"`
	AverageBookPrice *float64 `json:"average_book_price"`
	OldestPublication *string `json:"oldest_publication"`
	NewestPublication *string `json:"newest_publication"`
}

// GetStatistics aggregates distinct author/book/publisher counts, the average
// price and the publication year bounds over the report view.
func (r *Repository) GetStatistics() (*Statistics, error) {
	var stats Statistics
	err := r.db.Table("view_report_author").
		Select(`COUNT(DISTINCT author_id) AS total_authors,
			COUNT(DISTINCT book_id) AS total_books,
			COUNT(DISTINCT publisher) AS total_publishers,
			AVG(amount) AS average_book_price,
			MIN(publication_year) AS oldest_publication,
			MAX(publication_year) AS newest_publication`).
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// TopAuthor is one row of the top-authors ranking.
type TopAuthor struct {
	AuthorID    uint    `json:"author_id"`
	AuthorName  string  `json:"author_name"`
	TotalBooks  int64   `json:"total_books"`
	AllSubjects *string `json:"all_subjects"`
}

// TopAuthors ranks authors by distinct book count, descending, with their
// subject lists concatenated.
func (r *Repository) TopAuthors(limit int) ([]TopAuthor, error) {
	var rows []TopAuthor
	err := r.db.Table("view_report_author").
		Select("author_id, author_name, COUNT(DISTINCT book_id) AS total_books, GROUP_CONCAT(DISTINCT subjects) AS all_subjects").
		Group("author_id, author_name").
		Order("total_books DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}
