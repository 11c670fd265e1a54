package models

import (
	"fmt"

	"github.com/google/uuid"
)

// Contact is a counterparty referenced by transactions.
type Contact struct {
	UUID     uuid.UUID   `json:"uuid"`
	Name     string      `json:"name"`
	Type     ContactType `json:"type"`
	Phone    string      `json:"phone"`
	Mobile   string      `json:"mobile"`
	Email    string      `json:"email"`
	Web      string      `json:"web"`
	Comment  string      `json:"comment"`
	Street   string      `json:"street"`
	City     string      `json:"city"`
	Country  string      `json:"country"`
	Zip      string      `json:"zip"`
	IconUUID uuid.UUID   `json:"icon_uuid"`
	Created  int64       `json:"created"`
	Modified int64       `json:"modified"`
}

func (c Contact) Key() uuid.UUID      { return c.UUID }
func (c Contact) LastModified() int64 { return c.Modified }

// ContactBuilder assembles a Contact. The zero value describes a new record;
// an empty Type defaults to personal.
type ContactBuilder struct {
	UUID     uuid.UUID
	Name     string
	Type     ContactType
	Phone    string
	Mobile   string
	Email    string
	Web      string
	Comment  string
	Street   string
	City     string
	Country  string
	Zip      string
	IconUUID uuid.UUID
	Created  int64
	Modified int64
}

// Build validates the builder and returns the immutable Contact value.
func (b ContactBuilder) Build() (Contact, error) {
	if b.Name == "" {
		return Contact{}, fmt.Errorf("%w: contact name cannot be blank", ErrValidation)
	}
	if b.Type == "" {
		b.Type = ContactPersonal
	}
	if !ValidContactType(b.Type) {
		return Contact{}, fmt.Errorf("%w: unknown contact type %q", ErrValidation, b.Type)
	}

	id, created, modified := resolveIdentity(b.UUID, b.Created, b.Modified)
	return Contact{
		UUID:     id,
		Name:     b.Name,
		Type:     b.Type,
		Phone:    b.Phone,
		Mobile:   b.Mobile,
		Email:    b.Email,
		Web:      b.Web,
		Comment:  b.Comment,
		Street:   b.Street,
		City:     b.City,
		Country:  b.Country,
		Zip:      b.Zip,
		IconUUID: b.IconUUID,
		Created:  created,
		Modified: modified,
	}, nil
}

// Builder returns a builder seeded from the existing record.
func (c Contact) Builder() ContactBuilder {
	return ContactBuilder{
		UUID:     c.UUID,
		Name:     c.Name,
		Type:     c.Type,
		Phone:    c.Phone,
		Mobile:   c.Mobile,
		Email:    c.Email,
		Web:      c.Web,
		Comment:  c.Comment,
		Street:   c.Street,
		City:     c.City,
		Country:  c.Country,
		Zip:      c.Zip,
		IconUUID: c.IconUUID,
		Created:  c.Created,
		Modified: c.Modified,
	}
}
