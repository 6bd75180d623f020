package entities

import (
	"github.com/shopspring/decimal"
)

// Book is a catalog entry. The publication year travels as the 4-digit string
// the boundary formats expect; the price always carries two fraction digits.
type Book struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	Title           string          `gorm:"size:40;not null" json:"title"`
	Publisher       string          `gorm:"size:40;not null" json:"publisher"`
	Edition         int             `gorm:"not null" json:"edition"`
	PublicationYear string          `gorm:"size:4;not null" json:"publication_year"`
	Price           decimal.Decimal `gorm:"type:decimal(10,2)" json:"price"`
	Authors         []Author        `gorm:"many2many:book_authors;constraint:OnDelete:CASCADE" json:"authors,omitempty"`
	Subjects        []Subject       `gorm:"many2many:book_subjects;constraint:OnDelete:CASCADE" json:"subjects,omitempty"`

	// Relation load markers. Repositories flip these after preloading so
	// serialization can tell "loaded but empty" from "never fetched" without
	// ever reaching back into the store.
	AuthorsLoaded  bool `gorm:"-" json:"-"`
	SubjectsLoaded bool `gorm:"-" json:"-"`
}

type Author struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Name  string `gorm:"uniqueIndex;size:40;not null" json:"name"`
	Books []Book `gorm:"many2many:book_authors" json:"books,omitempty"`
}

type Subject struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Description string `gorm:"uniqueIndex;size:40;not null" json:"description"`
	Books       []Book `gorm:"many2many:book_subjects" json:"books,omitempty"`
}

// BookAuthor is the Book<->Author join row. The id pair is the primary key and
// both foreign keys cascade on parent deletion.
type BookAuthor struct {
	BookID   uint `gorm:"primaryKey"`
	AuthorID uint `gorm:"primaryKey"`
}

// BookSubject is the Book<->Subject join row.
type BookSubject struct {
	BookID    uint `gorm:"primaryKey"`
	SubjectID uint `gorm:"primaryKey"`
}

// ReportAuthorRow is one (author, book) pair from the reporting view, with the
// book's subject descriptions collapsed into a single delimited string.
// Read-only: the view is derived from the base tables and never written to.
// Book columns are nullable because authors without books still get a row.
type ReportAuthorRow struct {
	ID              uint             `json:"id"`
	AuthorID        uint             `json:"author_id"`
	AuthorName      string           `json:"author_name"`
	BookID          *uint            `json:"book_id"`
	BookTitle       *string          `json:"book_title"`
	Publisher       *string          `json:"publisher"`
	Edition         *int             `json:"edition"`
	PublicationYear *string          `json:"publication_year"`
	Amount          *decimal.Decimal `json:"amount"`
	Subjects        *string          `json:"subjects"`
}

func (Book) TableName() string {
	return "books"
}

func (Author) TableName() string {
	return "authors"
}

func (Subject) TableName() string {
	return "subjects"
}

func (BookAuthor) TableName() string {
	return "book_authors"
}

func (BookSubject) TableName() string {
	return "book_subjects"
}

func (ReportAuthorRow) TableName() string {
	return "view_report_author"
}
