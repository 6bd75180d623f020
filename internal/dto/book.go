package dto

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bibliotek/catalog/internal/entities"
)

// AuthorRef is the nested author payload carried inside a serialized book.
type AuthorRef struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// SubjectRef is the nested subject payload carried inside a serialized book.
type SubjectRef struct {
	ID          uint   `json:"id"`
	Description string `json:"description"`
}

// BookDTO carries a normalized book payload. AuthorIDs and SubjectIDs keep
// the tri-state the services depend on: nil means "leave the association
// untouched", an empty list means "clear it". Authors/Subjects hold relation
// data projected from a loaded entity and are never populated from input.
type BookDTO struct {
	ID              *uint
	Title           string `validate:"required,max=40"`
	Publisher       string `validate:"required,max=40"`
	Edition         int    `validate:"min=1"`
	PublicationYear string `validate:"required,len=4,number"`
	Price           string `validate:"required"`
	AuthorIDs       []uint
	SubjectIDs      []uint
	Authors         []AuthorRef
	Subjects        []SubjectRef
}

// BookFromInput normalizes a raw field mapping into a BookDTO. The price
// accepts numbers or strings with either decimal separator; association id
// lists pass through ordered, with absence kept distinct from emptiness.
func BookFromInput(fields map[string]any) (*BookDTO, error) {
	d := &BookDTO{}

	id, err := optionalID(fields, "id")
	if err != nil {
		return nil, err
	}
	d.ID = id

	if raw, ok := fields["title"]; ok {
		d.Title = coerceString(raw)
	}
	if raw, ok := fields["publisher"]; ok {
		d.Publisher = coerceString(raw)
	}
	if raw, ok := fields["edition"]; ok {
		n, err := coerceInt("edition", raw)
		if err != nil {
			return nil, err
		}
		d.Edition = n
	}
	if raw, ok := fields["publication_year"]; ok {
		d.PublicationYear = coerceString(raw)
	}

	if raw, ok := fields["price"]; ok {
		price, err := NormalizePrice(raw)
		if err != nil {
			return nil, err
		}
		d.Price = price
	} else {
		d.Price = "0.00"
	}

	if raw, ok := fields["authors"]; ok && raw != nil {
		list, err := coerceIDList("authors", raw)
		if err != nil {
			return nil, err
		}
		d.AuthorIDs = list
	}
	if raw, ok := fields["subjects"]; ok && raw != nil {
		list, err := coerceIDList("subjects", raw)
		if err != nil {
			return nil, err
		}
		d.SubjectIDs = list
	}

	return d, nil
}

// BookFromEntity projects a loaded book. A relation is mapped only when the
// repository marked it loaded; an unloaded relation comes through as an empty
// (non-nil) list rather than triggering a fetch.
func BookFromEntity(book *entities.Book) *BookDTO {
	id := book.ID
	d := &BookDTO{
		ID:              &id,
		Title:           book.Title,
		Publisher:       book.Publisher,
		Edition:         book.Edition,
		PublicationYear: book.PublicationYear,
		Price:           book.Price.StringFixed(2),
		Authors:         []AuthorRef{},
		Subjects:        []SubjectRef{},
	}
	if book.AuthorsLoaded {
		for _, a := range book.Authors {
			d.Authors = append(d.Authors, AuthorRef{ID: a.ID, Name: a.Name})
		}
	}
	if book.SubjectsLoaded {
		for _, s := range book.Subjects {
			d.Subjects = append(d.Subjects, SubjectRef{ID: s.ID, Description: s.Description})
		}
	}
	return d
}

// Serialize returns the sparse output mapping: optional fields with no value
// are omitted entirely rather than emitted as null.
func (d *BookDTO) Serialize() map[string]any {
	out := map[string]any{
		"title":            d.Title,
		"publisher":        d.Publisher,
		"edition":          d.Edition,
		"publication_year": d.PublicationYear,
		"price":            d.Price,
	}
	if d.ID != nil {
		out["id"] = *d.ID
	}
	switch {
	case d.Authors != nil:
		out["authors"] = d.Authors
	case d.AuthorIDs != nil:
		out["authors"] = d.AuthorIDs
	}
	switch {
	case d.Subjects != nil:
		out["subjects"] = d.Subjects
	case d.SubjectIDs != nil:
		out["subjects"] = d.SubjectIDs
	}
	return out
}

// PriceDecimal returns the normalized price as a decimal value.
func (d *BookDTO) PriceDecimal() decimal.Decimal {
	v, err := decimal.NewFromString(d.Price)
	if err != nil {
		return decimal.Zero
	}
	return v
}

// Validate checks the shape rules of the write path: field lengths, a
// publication year between 1000 and the current year, a non-negative price
// and, when an association list is supplied, at least one id in it.
func (d *BookDTO) Validate() error {
	if err := validate.Struct(d); err != nil {
		return err
	}

	year, err := strconv.Atoi(d.PublicationYear)
	if err != nil || year < 1000 || year > time.Now().Year() {
		return &FormatError{Field: "publication_year", Value: d.PublicationYear}
	}
	if d.PriceDecimal().IsNegative() {
		return &FormatError{Field: "price", Value: d.Price}
	}
	if d.AuthorIDs != nil && len(d.AuthorIDs) == 0 {
		return &FormatError{Field: "authors", Value: d.AuthorIDs}
	}
	if d.SubjectIDs != nil && len(d.SubjectIDs) == 0 {
		return &FormatError{Field: "subjects", Value: d.SubjectIDs}
	}
	return nil
}
