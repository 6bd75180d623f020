package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibliotek/catalog/internal/dto"
)

func TestAuthorService_Create(t *testing.T) {
	env, cleanup := setupTestEnv(t)
	defer cleanup()

	author := env.createAuthor(t, "Kent Beck")

	assert.NotZero(t, author.ID)
	assert.Equal(t, "Kent Beck", author.Name)
}

func TestAuthorService_Create_DuplicateName(t *testing.T) {
	env, cleanup := setupTestEnv(t)
	defer cleanup()

	env.createAuthor(t, "Kent Beck")

	d, err := dto.AuthorFromInput(map[string]any{"name": "Kent Beck"})
	require.NoError(t, err)

	_, err = env.authors.Create(d)

	var uniqErr *UniquenessError
	require.ErrorAs(t, err, &uniqErr)
	assert.Equal(t, "author", uniqErr.Entity)

	// The rejected write left no partial row behind.
	page, listErr := env.authors.List(nil, 1, 10)
	require.NoError(t, listErr)
	assert.Equal(t, int64(1), page.Total)
}

func TestAuthorService_Update(t *testing.T) {
	env, cleanup := setupTestEnv(t)
	defer cleanup()

	author := env.createAuthor(t, "Kent Back")

	d, err := dto.AuthorFromInput(map[string]any{"name": "Kent Beck"})
	require.NoError(t, err)

	updated, err := env.authors.Update(author, d)

	require.NoError(t, err)
	assert.Equal(t, "Kent Beck", updated.Name)
}

func TestAuthorService_Update_DuplicateName(t *testing.T) {
	env, cleanup := setupTestEnv(t)
	defer cleanup()

	env.createAuthor(t, "Kent Beck")
	other := env.createAuthor(t, "Martin Fowler")

	d, err := dto.AuthorFromInput(map[string]any{"name": "Kent Beck"})
	require.NoError(t, err)

	_, err = env.authors.Update(other, d)

	var uniqErr *UniquenessError
	assert.ErrorAs(t, err, &uniqErr)
}

func TestAuthorService_GetOne_NotFound(t *testing.T) {
	env, cleanup := setupTestEnv(t)
	defer cleanup()

	_, err := env.authors.GetOne(404)

	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "author", notFound.Entity)
}

func TestAuthorService_Delete(t *testing.T) {
	env, cleanup := setupTestEnv(t)
	defer cleanup()

	author := env.createAuthor(t, "Kent Beck")

	ok, err := env.authors.Delete(author)

	require.NoError(t, err)
	assert.True(t, ok)
}
