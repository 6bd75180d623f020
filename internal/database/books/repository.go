// Package books provides database operations for catalog books, including the
// author/subject association reconciliation used by the write paths.
//
// # Usage
//
//	repo := books.NewRepository(db)
//	book, err := repo.FindByID(123)
package books

import (
	"gorm.io/gorm"

	"github.com/bibliotek/catalog/internal/database"
	"github.com/bibliotek/catalog/internal/entities"
)

// Repository handles all book database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new books repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a copy of the repository bound to the given transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// Transaction runs fn against a repository bound to a single transaction.
// Any error from fn rolls the whole transaction back.
func (r *Repository) Transaction(fn func(*Repository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(r.WithTx(tx))
	})
}

// applyFilters narrows query per the listing contract: "search" is an OR of
// substring matches over title, publisher and the id's decimal text form,
// the named fields compare exactly, and "publisher" adds its own independent
// substring match. An empty search string matches every row.
func applyFilters(query *gorm.DB, filters map[string]string) *gorm.DB {
	if len(filters) == 0 {
		return query
	}

	if search, ok := filters["search"]; ok {
		pattern := "%" + search + "%"
		query = query.Where(
			"title LIKE ? OR publisher LIKE ? OR CAST(id AS TEXT) LIKE ?",
			pattern, pattern, pattern,
		)
	}

	if v, ok := filters["edition"]; ok {
		query = query.Where("edition = ?", v)
	}
	if v, ok := filters["year"]; ok {
		query = query.Where("publication_year = ?", v)
	}
	if v, ok := filters["price"]; ok {
		query = query.Where("price = ?", v)
	}
	if v, ok := filters["id"]; ok {
		query = query.Where("id = ?", v)
	}

	if v, ok := filters["publisher"]; ok {
		query = query.Where("publisher LIKE ?", "%"+v+"%")
	}

	return query
}

// Paginate returns one page of books ordered by id descending, with both
// relation collections loaded.
func (r *Repository) Paginate(filters map[string]string, page, perPage int) (*database.Page[entities.Book], error) {
	if page < 1 {
		page = 1
	}

	filtered := applyFilters(r.db.Model(&entities.Book{}), filters).Session(&gorm.Session{})

	var total int64
	if err := filtered.Count(&total).Error; err != nil {
		return nil, err
	}

	var items []entities.Book
	err := filtered.
		Preload("Authors").Preload("Subjects").
		Order("id DESC").
		Offset((page - 1) * perPage).Limit(perPage).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	markLoaded(items)

	return database.NewPage(items, page, perPage, total), nil
}

// FindByID retrieves a book with both relation collections loaded.
func (r *Repository) FindByID(id uint) (*entities.Book, error) {
	var book entities.Book
	err := r.db.Preload("Authors").Preload("Subjects").First(&book, id).Error
	if err != nil {
		return nil, err
	}
	book.AuthorsLoaded = true
	book.SubjectsLoaded = true
	return &book, nil
}

// GetAll retrieves every book, id descending, relations loaded.
func (r *Repository) GetAll() ([]entities.Book, error) {
	var items []entities.Book
	err := r.db.Preload("Authors").Preload("Subjects").Order("id DESC").Find(&items).Error
	if err != nil {
		return nil, err
	}
	markLoaded(items)
	return items, nil
}

// Count returns the number of books.
func (r *Repository) Count() (int64, error) {
	var total int64
	err := r.db.Model(&entities.Book{}).Count(&total).Error
	return total, err
}

// Create persists the book's primary fields. Association columns are omitted;
// the join tables are only ever touched through ReplaceAuthors/ReplaceSubjects.
func (r *Repository) Create(book *entities.Book) error {
	return r.db.Omit("Authors", "Subjects").Create(book).Error
}

// Update persists changes to the book's primary fields.
func (r *Repository) Update(book *entities.Book) error {
	return r.db.Omit("Authors", "Subjects").Save(book).Error
}

// Delete removes the book. Join rows are cleaned up by the store's cascade
// behavior, not here.
func (r *Repository) Delete(book *entities.Book) error {
	return r.db.Delete(book).Error
}

// ReplaceAuthors reconciles the book's author set to exactly authorIDs:
// missing pairs are inserted, stale pairs deleted, unchanged rows untouched.
// This is a full overwrite, never a merge.
func (r *Repository) ReplaceAuthors(book *entities.Book, authorIDs []uint) error {
	var current []entities.BookAuthor
	if err := r.db.Where("book_id = ?", book.ID).Find(&current).Error; err != nil {
		return err
	}

	wanted := make(map[uint]bool, len(authorIDs))
	for _, id := range authorIDs {
		wanted[id] = true
	}
	existing := make(map[uint]bool, len(current))
	for _, row := range current {
		existing[row.AuthorID] = true
	}

	var stale []uint
	for id := range existing {
		if !wanted[id] {
			stale = append(stale, id)
		}
	}
	if len(stale) > 0 {
		err := r.db.Where("book_id = ? AND author_id IN ?", book.ID, stale).
			Delete(&entities.BookAuthor{}).Error
		if err != nil {
			return err
		}
	}

	var added []entities.BookAuthor
	for _, id := range authorIDs {
		if !existing[id] {
			existing[id] = true
			added = append(added, entities.BookAuthor{BookID: book.ID, AuthorID: id})
		}
	}
	if len(added) > 0 {
		if err := r.db.Create(&added).Error; err != nil {
			return err
		}
	}

	return nil
}

// ReplaceSubjects reconciles the book's subject set to exactly subjectIDs.
func (r *Repository) ReplaceSubjects(book *entities.Book, subjectIDs []uint) error {
	var current []entities.BookSubject
	if err := r.db.Where("book_id = ?", book.ID).Find(&current).Error; err != nil {
		return err
	}

	wanted := make(map[uint]bool, len(subjectIDs))
	for _, id := range subjectIDs {
		wanted[id] = true
	}
	existing := make(map[uint]bool, len(current))
	for _, row := range current {
		existing[row.SubjectID] = true
	}

	var stale []uint
	for id := range existing {
		if !wanted[id] {
			stale = append(stale, id)
		}
	}
	if len(stale) > 0 {
		err := r.db.Where("book_id = ? AND subject_id IN ?", book.ID, stale).
			Delete(&entities.BookSubject{}).Error
		if err != nil {
			return err
		}
	}

	var added []entities.BookSubject
	for _, id := range subjectIDs {
		if !existing[id] {
			existing[id] = true
			added = append(added, entities.BookSubject{BookID: book.ID, SubjectID: id})
		}
	}
	if len(added) > 0 {
		if err := r.db.Create(&added).Error; err != nil {
			return err
		}
	}

	return nil
}

func markLoaded(items []entities.Book) {
	for i := range items {
		items[i].AuthorsLoaded = true
		items[i].SubjectsLoaded = true
	}
}
