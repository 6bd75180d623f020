package services

import (
	"go.uber.org/zap"

	"github.com/bibliotek/catalog/internal/database"
	"github.com/bibliotek/catalog/internal/database/books"
	"github.com/bibliotek/catalog/internal/dto"
	"github.com/bibliotek/catalog/internal/entities"
	"github.com/bibliotek/catalog/internal/logging"
)

// BookService orchestrates book writes inside request-scoped transactions and
// keeps the author/subject association sets in sync with normalized input.
// Failures are logged with their operation context and returned unchanged;
// nothing is swallowed or retried here.
type BookService struct {
	repo *books.Repository
	log  logging.Logger
}

// NewBookService creates a new book service.
func NewBookService(repo *books.Repository, log logging.Logger) *BookService {
	return &BookService{repo: repo, log: log}
}

// GetAll returns every book with both relation collections loaded.
func (s *BookService) GetAll() ([]entities.Book, error) {
	s.log.Info("fetching all books")
	items, err := s.repo.GetAll()
	if err != nil {
		s.log.Error("failed to fetch all books", zap.Error(err))
		return nil, err
	}
	return items, nil
}

// List returns one page of books matching filters.
func (s *BookService) List(filters map[string]string, page, perPage int) (*database.Page[entities.Book], error) {
	s.log.Info("fetching paginated books",
		zap.Any("filters", filters), zap.Int("page", page), zap.Int("per_page", perPage))
	result, err := s.repo.Paginate(filters, page, perPage)
	if err != nil {
		s.log.Error("failed to fetch paginated books", zap.Error(err), zap.Any("filters", filters))
		return nil, err
	}
	return result, nil
}

// Count returns the number of books.
func (s *BookService) Count() (int64, error) {
	return s.repo.Count()
}

// GetOne fetches a book by id; a miss is a NotFoundError.
func (s *BookService) GetOne(id uint) (*entities.Book, error) {
	s.log.Info("fetching book", zap.Uint("book_id", id))
	book, err := s.repo.FindByID(id)
	if err != nil {
		err = mapFindErr("book", id, err)
		s.log.Error("failed to fetch book", zap.Uint("book_id", id), zap.Error(err))
		return nil, err
	}
	return book, nil
}

// Create persists the book's primary fields and, for each non-nil association
// id list, replaces that association set — all inside one transaction. The
// created book comes back with both relations freshly loaded.
func (s *BookService) Create(d *dto.BookDTO) (*entities.Book, error) {
	s.log.Info("creating book", zap.Any("payload", d.Serialize()))

	book := &entities.Book{}
	applyBookDTO(book, d)

	err := s.repo.Transaction(func(tx *books.Repository) error {
		if err := tx.Create(book); err != nil {
			return err
		}
		if d.AuthorIDs != nil {
			if err := tx.ReplaceAuthors(book, d.AuthorIDs); err != nil {
				return err
			}
		}
		if d.SubjectIDs != nil {
			if err := tx.ReplaceSubjects(book, d.SubjectIDs); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		err = mapWriteErr("book", "create book", err)
		s.log.Error("failed to create book", zap.Error(err), zap.Any("payload", d.Serialize()))
		return nil, err
	}

	created, err := s.repo.FindByID(book.ID)
	if err != nil {
		s.log.Error("failed to reload created book", zap.Uint("book_id", book.ID), zap.Error(err))
		return nil, err
	}

	s.log.Info("book created", zap.Uint("book_id", created.ID), zap.String("title", created.Title))
	return created, nil
}

// Update persists field changes and replaces each association whose id list
// is non-nil: an empty list clears the set, nil leaves it untouched. The
// whole write is one transaction; a failed replacement rolls back the field
// changes too.
func (s *BookService) Update(book *entities.Book, d *dto.BookDTO) (*entities.Book, error) {
	s.log.Info("updating book", zap.Uint("book_id", book.ID), zap.Any("payload", d.Serialize()))

	applyBookDTO(book, d)

	err := s.repo.Transaction(func(tx *books.Repository) error {
		if err := tx.Update(book); err != nil {
			return err
		}
		if d.AuthorIDs != nil {
			if err := tx.ReplaceAuthors(book, d.AuthorIDs); err != nil {
				return err
			}
		}
		if d.SubjectIDs != nil {
			if err := tx.ReplaceSubjects(book, d.SubjectIDs); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		err = mapWriteErr("book", "update book", err)
		s.log.Error("failed to update book",
			zap.Uint("book_id", book.ID), zap.Error(err), zap.Any("payload", d.Serialize()))
		return nil, err
	}

	updated, err := s.repo.FindByID(book.ID)
	if err != nil {
		s.log.Error("failed to reload updated book", zap.Uint("book_id", book.ID), zap.Error(err))
		return nil, err
	}

	s.log.Info("book updated", zap.Uint("book_id", updated.ID))
	return updated, nil
}

// Delete removes the book; the store's cascade cleans up the join rows.
func (s *BookService) Delete(book *entities.Book) (bool, error) {
	s.log.Info("deleting book", zap.Uint("book_id", book.ID))
	if err := s.repo.Delete(book); err != nil {
		s.log.Error("failed to delete book", zap.Uint("book_id", book.ID), zap.Error(err))
		return false, err
	}
	s.log.Info("book deleted", zap.Uint("book_id", book.ID))
	return true, nil
}

func applyBookDTO(book *entities.Book, d *dto.BookDTO) {
	book.Title = d.Title
	book.Publisher = d.Publisher
	book.Edition = d.Edition
	book.PublicationYear = d.PublicationYear
	book.Price = d.PriceDecimal()
}
