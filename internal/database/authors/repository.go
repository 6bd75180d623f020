// Package authors provides database operations for catalog authors.
package authors

import (
	"gorm.io/gorm"

	"github.com/bibliotek/catalog/internal/database"
	"github.com/bibliotek/catalog/internal/entities"
)

// Repository handles all author database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new authors repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a copy of the repository bound to the given transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// Transaction runs fn against a repository bound to a single transaction.
func (r *Repository) Transaction(fn func(*Repository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(r.WithTx(tx))
	})
}

func applyFilters(query *gorm.DB, filters map[string]string) *gorm.DB {
	if len(filters) == 0 {
		return query
	}

	if search, ok := filters["search"]; ok {
		query = query.Where("name LIKE ?", "%"+search+"%")
	}
	if v, ok := filters["id"]; ok {
		query = query.Where("id = ?", v)
	}
	if v, ok := filters["name"]; ok {
		query = query.Where("name LIKE ?", "%"+v+"%")
	}

	return query
}

// Paginate returns one page of authors ordered by id ascending. Relations are
// not loaded on listing paths.
func (r *Repository) Paginate(filters map[string]string, page, perPage int) (*database.Page[entities.Author], error) {
	if page < 1 {
		page = 1
	}

	filtered := applyFilters(r.db.Model(&entities.Author{}), filters).Session(&gorm.Session{})

	var total int64
	if err := filtered.Count(&total).Error; err != nil {
		return nil, err
	}

	var items []entities.Author
	err := filtered.
		Order("id ASC").
		Offset((page - 1) * perPage).Limit(perPage).
		Find(&items).Error
	if err != nil {
		return nil, err
	}

	return database.NewPage(items, page, perPage, total), nil
}

// FindByID retrieves an author without loading relations.
func (r *Repository) FindByID(id uint) (*entities.Author, error) {
	var author entities.Author
	if err := r.db.First(&author, id).Error; err != nil {
		return nil, err
	}
	return &author, nil
}

// GetAll retrieves every author, id ascending, without relations.
func (r *Repository) GetAll() ([]entities.Author, error) {
	var items []entities.Author
	err := r.db.Order("id ASC").Find(&items).Error
	return items, err
}

// Count returns the number of authors.
func (r *Repository) Count() (int64, error) {
	var total int64
	err := r.db.Model(&entities.Author{}).Count(&total).Error
	return total, err
}

// Create persists a new author. The store assigns the id and enforces name
// uniqueness; duplicates surface as a constraint error, never a pre-check.
func (r *Repository) Create(author *entities.Author) error {
	return r.db.Create(author).Error
}

// Update persists changes to the author.
func (r *Repository) Update(author *entities.Author) error {
	return r.db.Save(author).Error
}

// Delete removes the author; the store cascades the book_authors rows.
func (r *Repository) Delete(author *entities.Author) error {
	return r.db.Delete(author).Error
}
