// Package database wires the catalog's sqlite store: connection setup, schema
// migration, join table registration and the reporting view.
package database

import (
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/bibliotek/catalog/internal/entities"
)

// reportAuthorView denormalizes the catalog into one row per (author, book)
// pair with the book's subjects concatenated. Authors without books keep a row
// with NULL book columns so reporting never silently drops them.
const reportAuthorView = `
CREATE VIEW IF NOT EXISTS view_report_author AS
SELECT
    ROW_NUMBER() OVER (ORDER BY a.name, b.id) AS id,
    a.id                AS author_id,
    a.name              AS author_name,
    b.id                AS book_id,
    b.title             AS book_title,
    b.publisher         AS publisher,
    b.edition           AS edition,
    b.publication_year  AS publication_year,
    b.price             AS amount,
    GROUP_CONCAT(s.description, ', ') AS subjects
FROM authors a
LEFT JOIN book_authors ba ON ba.author_id = a.id
LEFT JOIN books b ON b.id = ba.book_id
LEFT JOIN book_subjects bs ON bs.book_id = b.id
LEFT JOIN subjects s ON s.id = bs.subject_id
GROUP BY a.id, a.name, b.id, b.title, b.publisher, b.edition, b.publication_year, b.price
`

type Database struct {
	DB *gorm.DB
}

// New opens the sqlite database at dbPath, migrates the schema and installs
// the reporting view. Foreign key enforcement is switched on through the DSN
// so it applies to every pooled connection; the join tables rely on it for
// cascade deletes.
func New(dbPath string) (*Database, error) {
	dsn := fmt.Sprintf("%s?_foreign_keys=on", dbPath)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.SetupJoinTable(&entities.Book{}, "Authors", &entities.BookAuthor{}); err != nil {
		return nil, fmt.Errorf("failed to set up book_authors join table: %w", err)
	}
	if err := db.SetupJoinTable(&entities.Book{}, "Subjects", &entities.BookSubject{}); err != nil {
		return nil, fmt.Errorf("failed to set up book_subjects join table: %w", err)
	}

	err = db.AutoMigrate(
		&entities.Author{},
		&entities.Subject{},
		&entities.Book{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	if err := db.Exec(reportAuthorView).Error; err != nil {
		return nil, fmt.Errorf("failed to create report view: %w", err)
	}

	return &Database{DB: db}, nil
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
