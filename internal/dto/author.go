package dto

import (
	"github.com/bibliotek/catalog/internal/entities"
)

// AuthorDTO carries a normalized author payload.
type AuthorDTO struct {
	ID   *uint
	Name string `validate:"required,min=3,max=40"`
}

// AuthorFromInput normalizes a raw field mapping into an AuthorDTO.
func AuthorFromInput(fields map[string]any) (*AuthorDTO, error) {
	d := &AuthorDTO{}

	id, err := optionalID(fields, "id")
	if err != nil {
		return nil, err
	}
	d.ID = id

	if raw, ok := fields["name"]; ok {
		d.Name = coerceString(raw)
	}
	return d, nil
}

// AuthorFromEntity projects a loaded author.
func AuthorFromEntity(author *entities.Author) *AuthorDTO {
	id := author.ID
	return &AuthorDTO{ID: &id, Name: author.Name}
}

// Serialize returns the sparse output mapping.
func (d *AuthorDTO) Serialize() map[string]any {
	out := map[string]any{"name": d.Name}
	if d.ID != nil {
		out["id"] = *d.ID
	}
	return out
}

// Validate checks the author shape rules.
func (d *AuthorDTO) Validate() error {
	return validate.Struct(d)
}
