// Package subjects provides database operations for catalog subjects,
// including the book-count aggregation used by the dashboard.
package subjects

import (
	"gorm.io/gorm"

	"github.com/bibliotek/catalog/internal/database"
	"github.com/bibliotek/catalog/internal/entities"
)

// Repository handles all subject database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new subjects repository.
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

// SubjectWithBookCount is a subject together with the number of books
// associated with it.
type SubjectWithBookCount struct {
	entities.Subject
	BookCount int64 `json:"book_count"`
}

func applyFilters(query *gorm.DB, filters map[string]string) *gorm.DB {
	if len(filters) == 0 {
		return query
	}

	if search, ok := filters["search"]; ok {
		query = query.Where("description LIKE ?", "%"+search+"%")
	}
	if v, ok := filters["id"]; ok {
		query = query.Where("id = ?", v)
	}
	if v, ok := filters["description"]; ok {
		query = query.Where("description LIKE ?", "%"+v+"%")
	}

	return query
}

// Paginate returns one page of subjects in store order.
func (r *Repository) Paginate(filters map[string]string, page, perPage int) (*database.Page[entities.Subject], error) {
	if page < 1 {
		page = 1
	}

	filtered := applyFilters(r.db.Model(&entities.Subject{}), filters).Session(&gorm.Session{})

	var total int64
	if err := filtered.Count(&total).Error; err != nil {
		return nil, err
	}

	var items []entities.Subject
	err := filtered.
		Offset((page - 1) * perPage).Limit(perPage).
		Find(&items).Error
	if err != nil {
		return nil, err
	}

	return database.NewPage(items, page, perPage, total), nil
}

// FindByID retrieves a subject without loading relations.
func (r *Repository) FindByID(id uint) (*entities.Subject, error) {
	var subject entities.Subject
	if err := r.db.First(&subject, id).Error; err != nil {
		return nil, err
	}
	return &subject, nil
}

// GetAll retrieves every subject without relations.
func (r *Repository) GetAll() ([]entities.Subject, error) {
	var items []entities.Subject
	err := r.db.Find(&items).Error
	return items, err
}

// Count returns the number of subjects.
func (r *Repository) Count() (int64, error) {
	var total int64
	err := r.db.Model(&entities.Subject{}).Count(&total).Error
	return total, err
}

// Create persists a new subject; duplicate descriptions surface as a
// constraint error from the store.
func (r *Repository) Create(subject *entities.Subject) error {
	return r.db.Create(subject).Error
}

// Update persists changes to the subject.
func (r *Repository) Update(subject *entities.Subject) error {
	return r.db.Save(subject).Error
}

// Delete removes the subject; the store cascades the book_subjects rows.
func (r *Repository) Delete(subject *entities.Subject) error {
	return r.db.Delete(subject).Error
}

// TopByBookCount returns up to limit subjects ordered by associated book count
// descending. Ordering between subjects with equal counts follows the store
// default and is not deterministic.
func (r *Repository) TopByBookCount(limit int) ([]SubjectWithBookCount, error) {
	var rows []SubjectWithBookCount
	err := r.db.Model(&entities.Subject{}).
		Select("subjects.*, COUNT(book_subjects.book_id) AS book_count").
		Joins("LEFT JOIN book_subjects ON book_subjects.subject_id = subjects.id").
		Group("subjects.id").
		Order("book_count DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}
