package dto

import (
	"github.com/bibliotek/catalog/internal/entities"
)

// SubjectDTO carries a normalized subject payload.
type SubjectDTO struct {
	ID          *uint
	Description string `validate:"required,min=3,max=40"`
}

// SubjectFromInput normalizes a raw field mapping into a SubjectDTO.
func SubjectFromInput(fields map[string]any) (*SubjectDTO, error) {
	d := &SubjectDTO{}

	id, err := optionalID(fields, "id")
	if err != nil {
		return nil, err
	}
	d.ID = id

	if raw, ok := fields["description"]; ok {
		d.Description = coerceString(raw)
	}
	return d, nil
}

// SubjectFromEntity projects a loaded subject.
func SubjectFromEntity(subject *entities.Subject) *SubjectDTO {
	id := subject.ID
	return &SubjectDTO{ID: &id, Description: subject.Description}
}

// Serialize returns the sparse output mapping.
func (d *SubjectDTO) Serialize() map[string]any {
	out := map[string]any{"description": d.Description}
	if d.ID != nil {
		out["id"] = *d.ID
	}
	return out
}

// Validate checks the subject shape rules.
func (d *SubjectDTO) Validate() error {
	return validate.Struct(d)
}
