package reports

import (
	"os"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibliotek/catalog/internal/database"
	"github.com/bibliotek/catalog/internal/entities"
)

func setupTestDB(t *testing.T) (*Repository, func()) {
	dbPath := "./test_reports_" + t.Name() + ".db"

	db, err := database.New(dbPath)
	require.NoError(t, err)

	repo := NewRepository(db.DB)

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}

	return repo, cleanup
}

func seedAuthor(t *testing.T, repo *Repository, name string) *entities.Author {
	t.Helper()
	author := &entities.Author{Name: name}
	require.NoError(t, repo.db.Create(author).Error)
	return author
}

func seedSubject(t *testing.T, repo *Repository, description string) *entities.Subject {
	t.Helper()
	subject := &entities.Subject{Description: description}
	require.NoError(t, repo.db.Create(subject).Error)
	return subject
}

func seedBook(t *testing.T, repo *Repository, title, publisher, year, price string, authorIDs, subjectIDs []uint) *entities.Book {
	t.Helper()
	p, err := decimal.NewFromString(price)
	require.NoError(t, err)

	book := &entities.Book{Title: title, Publisher: publisher, Edition: 1, PublicationYear: year, Price: p}
	require.NoError(t, repo.db.Omit("Authors", "Subjects").Create(book).Error)
	for _, id := range authorIDs {
		require.NoError(t, repo.db.Create(&entities.BookAuthor{BookID: book.ID, AuthorID: id}).Error)
	}
	for _, id := range subjectIDs {
		require.NoError(t, repo.db.Create(&entities.BookSubject{BookID: book.ID, SubjectID: id}).Error)
	}
	return book
}

func TestRepository_AuthorsWithBooksAndSubjects(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	beck := seedAuthor(t, repo, "Kent Beck")
	evans := seedAuthor(t, repo, "Eric Evans")
	tdd := seedSubject(t, repo, "Testing")
	seedBook(t, repo, "TDD", "Addison-Wesley", "2002", "149.90", []uint{beck.ID}, []uint{tdd.ID})
	seedBook(t, repo, "XP Explained", "Addison-Wesley", "2004", "99.00", []uint{beck.ID}, nil)

	authors, err := repo.AuthorsWithBooksAndSubjects()

	require.NoError(t, err)
	require.Len(t, authors, 2)
	assert.Equal(t, "Kent Beck", authors[0].Name)
	require.Len(t, authors[0].Books, 2)
	// Bookless authors still appear, with no books attached.
	assert.Equal(t, evans.ID, authors[1].ID)
	assert.Empty(t, authors[1].Books)

	for _, book := range authors[0].Books {
		if book.Title == "TDD" {
			require.Len(t, book.Subjects, 1)
			assert.Equal(t, "Testing", book.Subjects[0].Description)
		}
	}
}

func TestRepository_Rows(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	beck := seedAuthor(t, repo, "Kent Beck")
	evans := seedAuthor(t, repo, "Eric Evans")
	s1 := seedSubject(t, repo, "Testing")
	s2 := seedSubject(t, repo, "Software Engineering")
	seedBook(t, repo, "TDD", "Addison-Wesley", "2002", "149.90", []uint{beck.ID}, []uint{s1.ID, s2.ID})
	seedBook(t, repo, "DDD", "Addison-Wesley", "2003", "189.00", []uint{evans.ID}, nil)

	page, err := repo.Rows(nil, "author_name", "asc", 1, 10)

	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Total)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "Eric Evans", page.Items[0].AuthorName)
	assert.Equal(t, "Kent Beck", page.Items[1].AuthorName)

	beckRow := page.Items[1]
	require.NotNil(t, beckRow.BookTitle)
	assert.Equal(t, "TDD", *beckRow.BookTitle)
	require.NotNil(t, beckRow.Subjects)
	assert.Contains(t, *beckRow.Subjects, "Testing")
	assert.Contains(t, *beckRow.Subjects, "Software Engineering")
}

func TestRepository_Rows_BooklessAuthorHasNullBookColumns(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	seedAuthor(t, repo, "Eric Evans")

	page, err := repo.Rows(nil, "author_name", "asc", 1, 10)

	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	row := page.Items[0]
	assert.Equal(t, "Eric Evans", row.AuthorName)
	assert.Nil(t, row.BookID)
	assert.Nil(t, row.BookTitle)
	assert.Nil(t, row.Subjects)
}

func TestRepository_Rows_YearFilterIsExact(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	beck := seedAuthor(t, repo, "Kent Beck")
	seedBook(t, repo, "TDD", "Addison-Wesley", "2002", "149.90", []uint{beck.ID}, nil)
	seedBook(t, repo, "XP Explained", "Addison-Wesley", "2004", "99.00", []uint{beck.ID}, nil)

	page, err := repo.Rows(map[string]string{"publication_year": "2002"}, "id", "asc", 1, 10)

	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "TDD", *page.Items[0].BookTitle)

	// "200" is not an exact year, so it matches nothing.
	none, err := repo.Rows(map[string]string{"publication_year": "200"}, "id", "asc", 1, 10)
	require.NoError(t, err)
	assert.Empty(t, none.Items)
}

func TestRepository_Rows_IgnoresUnknownColumns(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	beck := seedAuthor(t, repo, "Kent Beck")
	seedBook(t, repo, "TDD", "Addison-Wesley", "2002", "149.90", []uint{beck.ID}, nil)

	page, err := repo.Rows(
		map[string]string{"no_such_column": "x"},
		"no_such_column; DROP TABLE books", "asc", 1, 10,
	)

	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)
}

func TestRepository_GetStatistics(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	beck := seedAuthor(t, repo, "Kent Beck")
	evans := seedAuthor(t, repo, "Eric Evans")
	seedBook(t, repo, "TDD", "Addison-Wesley", "2002", "100.00", []uint{beck.ID}, nil)
	seedBook(t, repo, "DDD", "Prentice Hall", "2003", "200.00", []uint{evans.ID}, nil)

	stats, err := repo.GetStatistics()

	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalAuthors)
	assert.Equal(t, int64(2), stats.TotalBooks)
	assert.Equal(t, int64(2), stats.TotalPublishers)
	require.NotNil(t, stats.AverageBookPrice)
	assert.InDelta(t, 150.0, *stats.AverageBookPrice, 0.01)
	require.NotNil(t, stats.OldestPublication)
	assert.Equal(t, "2002", *stats.OldestPublication)
	require.NotNil(t, stats.NewestPublication)
	assert.Equal(t, "2003", *stats.NewestPublication)
}

func TestRepository_GetStatistics_EmptyCatalog(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	stats, err := repo.GetStatistics()

	require.NoError(t, err)
	assert.Equal(t, int64(0), stats.TotalAuthors)
	assert.Equal(t, int64(0), stats.TotalBooks)
	assert.Nil(t, stats.AverageBookPrice)
	assert.Nil(t, stats.OldestPublication)
}

func TestRepository_TopAuthors(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	beck := seedAuthor(t, repo, "Kent Beck")
	evans := seedAuthor(t, repo, "Eric Evans")
	seedBook(t, repo, "TDD", "Addison-Wesley", "2002", "149.90", []uint{beck.ID}, nil)
	seedBook(t, repo, "XP Explained", "Addison-Wesley", "2004", "99.00", []uint{beck.ID}, nil)
	seedBook(t, repo, "DDD", "Addison-Wesley", "2003", "189.00", []uint{evans.ID}, nil)

	rows, err := repo.TopAuthors(10)

	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Kent Beck", rows[0].AuthorName)
	assert.Equal(t, int64(2), rows[0].TotalBooks)
	assert.Equal(t, "Eric Evans", rows[1].AuthorName)
	assert.Equal(t, int64(1), rows[1].TotalBooks)
}
