package services

import (
	"go.uber.org/zap"

	"github.com/bibliotek/catalog/internal/database"
	"github.com/bibliotek/catalog/internal/database/authors"
	"github.com/bibliotek/catalog/internal/dto"
	"github.com/bibliotek/catalog/internal/entities"
	"github.com/bibliotek/catalog/internal/logging"
)

// AuthorService orchestrates author operations. Name uniqueness is enforced
// by the store and surfaces as a UniquenessError on the write paths.
type AuthorService struct {
	repo *authors.Repository
	log  logging.Logger
}

// NewAuthorService creates a new author service.
func NewAuthorService(repo *authors.Repository, log logging.Logger) *AuthorService {
	return &AuthorService{repo: repo, log: log}
}

// GetAll returns every author.
func (s *AuthorService) GetAll() ([]entities.Author, error) {
	s.log.Info("fetching all authors")
	items, err := s.repo.GetAll()
	if err != nil {
		s.log.Error("failed to fetch all authors", zap.Error(err))
		return nil, err
	}
	return items, nil
}

// List returns one page of authors matching filters.
func (s *AuthorService) List(filters map[string]string, page, perPage int) (*database.Page[entities.Author], error) {
	s.log.Info("fetching paginated authors",
		zap.Any("filters", filters), zap.Int("page", page), zap.Int("per_page", perPage))
	result, err := s.repo.Paginate(filters, page, perPage)
	if err != nil {
		s.log.Error("failed to fetch paginated authors", zap.Error(err), zap.Any("filters", filters))
		return nil, err
	}
	return result, nil
}

// Count returns the number of authors.
func (s *AuthorService) Count() (int64, error) {
	return s.repo.Count()
}

// GetOne fetches an author by id; a miss is a NotFoundError.
func (s *AuthorService) GetOne(id uint) (*entities.Author, error) {
	s.log.Info("fetching author", zap.Uint("author_id", id))
	author, err := s.repo.FindByID(id)
	if err != nil {
		err = mapFindErr("author", id, err)
		s.log.Error("failed to fetch author", zap.Uint("author_id", id), zap.Error(err))
		return nil, err
	}
	return author, nil
}

// Create persists a new author inside a transaction.
func (s *AuthorService) Create(d *dto.AuthorDTO) (*entities.Author, error) {
	s.log.Info("creating author", zap.Any("payload", d.Serialize()))

	author := &entities.Author{Name: d.Name}
	err := s.repo.Transaction(func(tx *authors.Repository) error {
		return tx.Create(author)
	})
	if err != nil {
		err = mapWriteErr("author", "create author", err)
		s.log.Error("failed to create author", zap.Error(err), zap.Any("payload", d.Serialize()))
		return nil, err
	}

	s.log.Info("author created", zap.Uint("author_id", author.ID), zap.String("name", author.Name))
	return author, nil
}

// Update persists field changes to the author inside a transaction.
func (s *AuthorService) Update(author *entities.Author, d *dto.AuthorDTO) (*entities.Author, error) {
	s.log.Info("updating author", zap.Uint("author_id", author.ID), zap.Any("payload", d.Serialize()))

	author.Name = d.Name
	err := s.repo.Transaction(func(tx *authors.Repository) error {
		return tx.Update(author)
	})
	if err != nil {
		err = mapWriteErr("author", "update author", err)
		s.log.Error("failed to update author",
			zap.Uint("author_id", author.ID), zap.Error(err), zap.Any("payload", d.Serialize()))
		return nil, err
	}

	s.log.Info("author updated", zap.Uint("author_id", author.ID))
	return author, nil
}

// Delete removes the author; associated join rows are cascade-deleted.
func (s *AuthorService) Delete(author *entities.Author) (bool, error) {
	s.log.Info("deleting author", zap.Uint("author_id", author.ID))
	if err := s.repo.Delete(author); err != nil {
		s.log.Error("failed to delete author", zap.Uint("author_id", author.ID), zap.Error(err))
		return false, err
	}
	s.log.Info("author deleted", zap.Uint("author_id", author.ID))
	return true, nil
}
