package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibliotek/catalog/internal/dto"
)

func bookFields(title string, extra map[string]any) map[string]any {
	fields := map[string]any{
		"title":            title,
		"publisher":        "Addison-Wesley",
		"edition":          1,
		"publication_year": "2002",
		"price":            "149.90",
	}
	for k, v := range extra {
		fields[k] = v
	}
	return fields
}

func TestBookService_Create(t *testing.T) {
	env, cleanup := setupTestEnv(t)
	defer cleanup()

	book := env.createBook(t, bookFields("TDD", nil))

	assert.NotZero(t, book.ID)
	assert.Equal(t, "TDD", book.Title)
	assert.Equal(t, "149.9", book.Price.String())
	assert.True(t, book.AuthorsLoaded)
	assert.Empty(t, book.Authors)
}

func TestBookService_Create_WithAssociations(t *testing.T) {
	env, cleanup := setupTestEnv(t)
	defer cleanup()

	beck := env.createAuthor(t, "Kent Beck")
	fowler := env.createAuthor(t, "Martin Fowler")
	subj := env.createSubject(t, "Testing")

	book := env.createBook(t, bookFields("TDD", map[string]any{
		"authors":  []any{int(beck.ID), int(fowler.ID)},
		"subjects": []any{int(subj.ID)},
	}))

	assert.Len(t, book.Authors, 2)
	require.Len(t, book.Subjects, 1)
	assert.Equal(t, "Testing", book.Subjects[0].Description)
}

func TestBookService_Create_NonexistentAuthorRollsBack(t *testing.T) {
	env, cleanup := setupTestEnv(t)
	defer cleanup()

	d, err := dto.BookFromInput(bookFields("Ghost", map[string]any{
		"authors": []any{9999},
	}))
	require.NoError(t, err)

	_, err = env.books.Create(d)

	var txErr *TransactionError
	require.ErrorAs(t, err, &txErr)

	// The book row itself was rolled back with the failed association write.
	count, countErr := env.books.Count()
	require.NoError(t, countErr)
	assert.Equal(t, int64(0), count)
}

func TestBookService_Update_FieldsAndAssociations(t *testing.T) {
	env, cleanup := setupTestEnv(t)
	defer cleanup()

	beck := env.createAuthor(t, "Kent Beck")
	fowler := env.createAuthor(t, "Martin Fowler")
	book := env.createBook(t, bookFields("TDD", map[string]any{
		"authors": []any{int(beck.ID)},
	}))

	d, err := dto.BookFromInput(bookFields("TDD by Example", map[string]any{
		"authors": []any{int(fowler.ID)},
	}))
	require.NoError(t, err)

	updated, err := env.books.Update(book, d)

	require.NoError(t, err)
	assert.Equal(t, "TDD by Example", updated.Title)
	require.Len(t, updated.Authors, 1)
	assert.Equal(t, "Martin Fowler", updated.Authors[0].Name)
}

func TestBookService_Update_NilListKeepsAssociations(t *testing.T) {
	env, cleanup := setupTestEnv(t)
	defer cleanup()

	beck := env.createAuthor(t, "Kent Beck")
	book := env.createBook(t, bookFields("TDD", map[string]any{
		"authors": []any{int(beck.ID)},
	}))

	// No "authors" key at all: the association set stays untouched.
	d, err := dto.BookFromInput(bookFields("TDD by Example", nil))
	require.NoError(t, err)

	updated, err := env.books.Update(book, d)

	require.NoError(t, err)
	assert.Equal(t, "TDD by Example", updated.Title)
	require.Len(t, updated.Authors, 1)
	assert.Equal(t, "Kent Beck", updated.Authors[0].Name)
}

func TestBookService_Update_EmptyListClearsAssociations(t *testing.T) {
	env, cleanup := setupTestEnv(t)
	defer cleanup()

	beck := env.createAuthor(t, "Kent Beck")
	book := env.createBook(t, bookFields("TDD", map[string]any{
		"authors": []any{int(beck.ID)},
	}))

	d, err := dto.BookFromInput(bookFields("TDD", map[string]any{
		"authors": []any{},
	}))
	require.NoError(t, err)

	updated, err := env.books.Update(book, d)

	require.NoError(t, err)
	assert.Empty(t, updated.Authors)
}

func TestBookService_Update_FailedAssociationRollsBackFields(t *testing.T) {
	env, cleanup := setupTestEnv(t)
	defer cleanup()

	book := env.createBook(t, bookFields("TDD", nil))

	d, err := dto.BookFromInput(bookFields("Renamed", map[string]any{
		"authors": []any{9999},
	}))
	require.NoError(t, err)

	_, err = env.books.Update(book, d)

	var txErr *TransactionError
	require.ErrorAs(t, err, &txErr)

	reloaded, reloadErr := env.books.GetOne(book.ID)
	require.NoError(t, reloadErr)
	assert.Equal(t, "TDD", reloaded.Title)
}

func TestBookService_GetOne_NotFound(t *testing.T) {
	env, cleanup := setupTestEnv(t)
	defer cleanup()

	_, err := env.books.GetOne(404)

	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "book", notFound.Entity)
	assert.Equal(t, uint(404), notFound.ID)
}

func TestBookService_Delete(t *testing.T) {
	env, cleanup := setupTestEnv(t)
	defer cleanup()

	book := env.createBook(t, bookFields("TDD", nil))

	ok, err := env.books.Delete(book)

	require.NoError(t, err)
	assert.True(t, ok)

	_, err = env.books.GetOne(book.ID)
	var notFound *NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestBookService_List_PassesFiltersThrough(t *testing.T) {
	env, cleanup := setupTestEnv(t)
	defer cleanup()

	env.createBook(t, bookFields("Refactoring", nil))
	env.createBook(t, bookFields("Clean Code", nil))

	page, err := env.books.List(map[string]string{"search": "Clean"}, 1, 15)

	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)
}
