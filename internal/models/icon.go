package models

import (
	"fmt"

	"github.com/google/uuid"
)

// Icon is a named image referenced weakly by categories, accounts, and
// contacts. Its content is immutable once created.
type Icon struct {
	UUID     uuid.UUID `json:"uuid"`
	Name     string    `json:"name"`
	Bytes    []byte    `json:"bytes"`
	Created  int64     `json:"created"`
	Modified int64     `json:"modified"`
}

func (i Icon) Key() uuid.UUID      { return i.UUID }
func (i Icon) LastModified() int64 { return i.Modified }

// IconBuilder assembles an Icon. The zero value describes a new record.
type IconBuilder struct {
	UUID     uuid.UUID
	Name     string
	Bytes    []byte
	Created  int64
	Modified int64
}

// Build validates the builder and returns the immutable Icon value.
func (b IconBuilder) Build() (Icon, error) {
	if b.Name == "" {
		return Icon{}, fmt.Errorf("%w: icon name cannot be blank", ErrValidation)
	}
	if len(b.Bytes) == 0 {
		return Icon{}, fmt.Errorf("%w: icon has no image data", ErrValidation)
	}

	id, created, modified := resolveIdentity(b.UUID, b.Created, b.Modified)
	return Icon{
		UUID:     id,
		Name:     b.Name,
		Bytes:    b.Bytes,
		Created:  created,
		Modified: modified,
	}, nil
}

// Builder returns a builder seeded from the existing record.
func (i Icon) Builder() IconBuilder {
	return IconBuilder{
		UUID:     i.UUID,
		Name:     i.Name,
		Bytes:    i.Bytes,
		Created:  i.Created,
		Modified: i.Modified,
	}
}
