package models

import (
	"fmt"

	"github.com/google/uuid"
)

// Category groups accounts by purpose. Type is never empty.
type Category struct {
	UUID     uuid.UUID    `json:"uuid"`
	Name     string       `json:"name"`
	Comment  string       `json:"comment"`
	Type     CategoryType `json:"type"`
	IconUUID uuid.UUID    `json:"icon_uuid"` // uuid.Nil when no icon
	Created  int64        `json:"created"`
	Modified int64        `json:"modified"`
}

func (c Category) Key() uuid.UUID      { return c.UUID }
func (c Category) LastModified() int64 { return c.Modified }

// CategoryBuilder assembles a Category. The zero value describes a new record.
type CategoryBuilder struct {
	UUID     uuid.UUID
	Name     string
	Comment  string
	Type     CategoryType
	IconUUID uuid.UUID
	Created  int64
	Modified int64
}

// Build validates the builder and returns the immutable Category value.
func (b CategoryBuilder) Build() (Category, error) {
	if b.Name == "" {
		return Category{}, fmt.Errorf("%w: category name cannot be blank", ErrValidation)
	}
	if !ValidCategoryType(b.Type) {
		return Category{}, fmt.Errorf("%w: unknown category type %q", ErrValidation, b.Type)
	}

	id, created, modified := resolveIdentity(b.UUID, b.Created, b.Modified)
	return Category{
		UUID:     id,
		Name:     b.Name,
		Comment:  b.Comment,
		Type:     b.Type,
		IconUUID: b.IconUUID,
		Created:  created,
		Modified: modified,
	}, nil
}

// Builder returns a builder seeded from the existing record.
func (c Category) Builder() CategoryBuilder {
	return CategoryBuilder{
		UUID:     c.UUID,
		Name:     c.Name,
		Comment:  c.Comment,
		Type:     c.Type,
		IconUUID: c.IconUUID,
		Created:  c.Created,
		Modified: c.Modified,
	}
}
