// Command seed_demo creates a demo catalog database with sample authors,
// subjects and books, going through the service layer so the seeded data
// takes the same path as real input.
// Usage: go run cmd/seed_demo/main.go [-db path/to/catalog.db]
package main

import (
	"flag"
	"log"
	"os"

	"github.com/bibliotek/catalog/internal/config"
	"github.com/bibliotek/catalog/internal/database"
	"github.com/bibliotek/catalog/internal/database/authors"
	"github.com/bibliotek/catalog/internal/database/books"
	"github.com/bibliotek/catalog/internal/database/subjects"
	"github.com/bibliotek/catalog/internal/dto"
	"github.com/bibliotek/catalog/internal/logging"
	"github.com/bibliotek/catalog/internal/services"
)

type demoBook struct {
	title     string
	publisher string
	edition   int
	year      string
	price     string
	authors   []string
	subjects  []string
}

var demoAuthors = []string{
	"Kent Beck",
	"Martin Fowler",
	"Eric Evans",
	"Robert C. Martin",
}

var demoSubjects = []string{
	"Software Engineering",
	"Refactoring",
	"Domain Modeling",
	"Testing",
}

var demoBooks = []demoBook{
	{
		title:     "Test-Driven Development",
		publisher: "Addison-Wesley",
		edition:   1,
		year:      "2002",
		price:     "149,90",
		authors:   []string{"Kent Beck"},
		subjects:  []string{"Testing", "Software Engineering"},
	},
	{
		title:     "Refactoring",
		publisher: "Addison-Wesley",
		edition:   2,
		year:      "2018",
		price:     "199.50",
		authors:   []string{"Martin Fowler", "Kent Beck"},
		subjects:  []string{"Refactoring"},
	},
	{
		title:     "Domain-Driven Design",
		publisher: "Addison-Wesley",
		edition:   1,
		year:      "2003",
		price:     "189.00",
		authors:   []string{"Eric Evans"},
		subjects:  []string{"Domain Modeling", "Software Engineering"},
	},
	{
		title:     "Clean Code",
		publisher: "Prentice Hall",
		edition:   1,
		year:      "2008",
		price:     "119,00",
		authors:   []string{"Robert C. Martin"},
		subjects:  []string{"Software Engineering"},
	},
}

func main() {
	dbPath := flag.String("db", config.DefaultDatabasePath, "path to the catalog database file")
	flag.Parse()

	log.Printf("Seeding demo catalog at %s...", *dbPath)

	if err := os.Remove(*dbPath); err != nil && !os.IsNotExist(err) {
		log.Fatalf("Failed to remove existing database: %v", err)
	}

	db, err := database.New(*dbPath)
	if err != nil {
		log.Fatalf("Failed to create database: %v", err)
	}
	defer db.Close()

	logger := logging.NewNop()
	authorService := services.NewAuthorService(authors.NewRepository(db.DB), logger)
	subjectService := services.NewSubjectService(subjects.NewRepository(db.DB), logger)
	bookService := services.NewBookService(books.NewRepository(db.DB), logger)

	authorIDs := make(map[string]uint)
	for _, name := range demoAuthors {
		d, err := dto.AuthorFromInput(map[string]any{"name": name})
		if err != nil {
			log.Fatalf("Failed to build author %q: %v", name, err)
		}
		created, err := authorService.Create(d)
		if err != nil {
			log.Fatalf("Failed to create author %q: %v", name, err)
		}
		authorIDs[name] = created.ID
		log.Printf("Created author: %s (#%d)", created.Name, created.ID)
	}

	subjectIDs := make(map[string]uint)
	for _, description := range demoSubjects {
		d, err := dto.SubjectFromInput(map[string]any{"description": description})
		if err != nil {
			log.Fatalf("Failed to build subject %q: %v", description, err)
		}
		created, err := subjectService.Create(d)
		if err != nil {
			log.Fatalf("Failed to create subject %q: %v", description, err)
		}
		subjectIDs[description] = created.ID
		log.Printf("Created subject: %s (#%d)", created.Description, created.ID)
	}

	for _, b := range demoBooks {
		var aIDs, sIDs []any
		for _, name := range b.authors {
			aIDs = append(aIDs, int(authorIDs[name]))
		}
		for _, description := range b.subjects {
			sIDs = append(sIDs, int(subjectIDs[description]))
		}

		d, err := dto.BookFromInput(map[string]any{
			"title":            b.title,
			"publisher":        b.publisher,
			"edition":          b.edition,
			"publication_year": b.year,
			"price":            b.price,
			"authors":          aIDs,
			"subjects":         sIDs,
		})
		if err != nil {
			log.Fatalf("Failed to build book %q: %v", b.title, err)
		}
		if err := d.Validate(); err != nil {
			log.Fatalf("Invalid demo book %q: %v", b.title, err)
		}

		created, err := bookService.Create(d)
		if err != nil {
			log.Fatalf("Failed to create book %q: %v", b.title, err)
		}
		log.Printf("Created book: %s (#%d, %d authors, %d subjects)",
			created.Title, created.ID, len(created.Authors), len(created.Subjects))
	}

	log.Printf("Demo catalog seeded successfully")
}
