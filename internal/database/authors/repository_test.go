package authors

import (
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/bibliotek/catalog/internal/database"
	"github.com/bibliotek/catalog/internal/entities"
)

func setupTestDB(t *testing.T) (*Repository, func()) {
	dbPath := "./test_authors_" + t.Name() + ".db"

	db, err := database.New(dbPath)
	require.NoError(t, err)

	repo := NewRepository(db.DB)

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}

	return repo, cleanup
}

func createTestAuthor(t *testing.T, repo *Repository, name string) *entities.Author {
	t.Helper()
	author := &entities.Author{Name: name}
	require.NoError(t, repo.Create(author))
	return author
}

func TestRepository_Create(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	author := createTestAuthor(t, repo, "Kent Beck")

	assert.NotZero(t, author.ID)
	assert.Equal(t, "Kent Beck", author.Name)
}

func TestRepository_Create_DuplicateName(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	createTestAuthor(t, repo, "Kent Beck")

	err := repo.Create(&entities.Author{Name: "Kent Beck"})

	assert.True(t, errors.Is(err, gorm.ErrDuplicatedKey))
}

func TestRepository_FindByID_NotFound(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	_, err := repo.FindByID(42)

	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestRepository_Paginate_OrderedAscending(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	createTestAuthor(t, repo, "Martin Fowler")
	createTestAuthor(t, repo, "Kent Beck")
	createTestAuthor(t, repo, "Eric Evans")

	page, err := repo.Paginate(nil, 1, 2)

	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Total)
	assert.Equal(t, 2, page.LastPage)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "Martin Fowler", page.Items[0].Name)
	assert.Equal(t, "Kent Beck", page.Items[1].Name)
}

func TestRepository_Paginate_SearchByName(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	createTestAuthor(t, repo, "Martin Fowler")
	createTestAuthor(t, repo, "Robert C. Martin")
	createTestAuthor(t, repo, "Eric Evans")

	page, err := repo.Paginate(map[string]string{"search": "Martin"}, 1, 10)

	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Total)
}

func TestRepository_Paginate_FilterByID(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	createTestAuthor(t, repo, "Martin Fowler")
	second := createTestAuthor(t, repo, "Kent Beck")

	page, err := repo.Paginate(map[string]string{"id": "2"}, 1, 10)

	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, second.ID, page.Items[0].ID)
}

func TestRepository_Update(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	author := createTestAuthor(t, repo, "Kent Back")

	author.Name = "Kent Beck"
	require.NoError(t, repo.Update(author))

	loaded, err := repo.FindByID(author.ID)
	require.NoError(t, err)
	assert.Equal(t, "Kent Beck", loaded.Name)
}

func TestRepository_Delete(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	author := createTestAuthor(t, repo, "Kent Beck")

	require.NoError(t, repo.Delete(author))

	count, err := repo.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestRepository_GetAll(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	createTestAuthor(t, repo, "Beta")
	createTestAuthor(t, repo, "Alpha")

	all, err := repo.GetAll()

	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Beta", all[0].Name)
}
