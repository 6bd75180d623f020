package services

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bibliotek/catalog/internal/database"
	"github.com/bibliotek/catalog/internal/database/authors"
	"github.com/bibliotek/catalog/internal/database/books"
	"github.com/bibliotek/catalog/internal/database/reports"
	"github.com/bibliotek/catalog/internal/database/subjects"
	"github.com/bibliotek/catalog/internal/dto"
	"github.com/bibliotek/catalog/internal/entities"
	"github.com/bibliotek/catalog/internal/logging"
)

type testEnv struct {
	db       *database.Database
	books    *BookService
	authors  *AuthorService
	subjects *SubjectService
}

func setupTestEnv(t *testing.T) (*testEnv, func()) {
	dbPath := "./test_services_" + t.Name() + ".db"

	db, err := database.New(dbPath)
	require.NoError(t, err)

	log := logging.NewNop()
	env := &testEnv{
		db:       db,
		books:    NewBookService(books.NewRepository(db.DB), log),
		authors:  NewAuthorService(authors.NewRepository(db.DB), log),
		subjects: NewSubjectService(subjects.NewRepository(db.DB), log),
	}

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}

	return env, cleanup
}

func (e *testEnv) reportService(t *testing.T, renderer ReportRenderer) *ReportService {
	t.Helper()
	return NewReportService(reports.NewRepository(e.db.DB), renderer, logging.NewNop())
}

func (e *testEnv) dashboardService() *DashboardService {
	return NewDashboardService(
		books.NewRepository(e.db.DB),
		authors.NewRepository(e.db.DB),
		subjects.NewRepository(e.db.DB),
		logging.NewNop(),
	)
}

func (e *testEnv) createAuthor(t *testing.T, name string) *entities.Author {
	t.Helper()
	d, err := dto.AuthorFromInput(map[string]any{"name": name})
	require.NoError(t, err)
	author, err := e.authors.Create(d)
	require.NoError(t, err)
	return author
}

func (e *testEnv) createSubject(t *testing.T, description string) *entities.Subject {
	t.Helper()
	d, err := dto.SubjectFromInput(map[string]any{"description": description})
	require.NoError(t, err)
	subject, err := e.subjects.Create(d)
	require.NoError(t, err)
	return subject
}

func (e *testEnv) createBook(t *testing.T, fields map[string]any) *entities.Book {
	t.Helper()
	d, err := dto.BookFromInput(fields)
	require.NoError(t, err)
	book, err := e.books.Create(d)
	require.NoError(t, err)
	return book
}
