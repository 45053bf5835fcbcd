package model

import (
	"encoding/json"
)

// Collection names.
const (
	CollectionUsers  = "users"
	CollectionMenu   = "menu"
	CollectionReview = "review"
	CollectionCarts  = "carts"
)

// RoleAdmin is the role value granting access to user management.
const RoleAdmin = "admin"

// Document keys with a dedicated field.
const (
	KeyID    = "_id"
	KeyEmail = "email"
	KeyRole  = "role"
)

// A Document represents a schema-less database record.
// Email and Role are extracted from the payload so they can be indexed and checked,
// everything else is kept verbatim in Fields.
type Document struct {
	Base `msgpack:",inline" storm:"inline"`

	Email  string `msgpack:"email"            storm:"index"`
	Role   string `msgpack:"role,omitempty"`
	Fields M      `msgpack:"fields,omitempty"`
}

// NewDocument returns a document built from the given attributes.
func NewDocument(attributes M) *Document {
	d := &Document{}
	d.SetAttributes(attributes)
	return d
}

// SetAttributes replaces the document content by the given attributes.
// Non-string values of the dedicated keys are kept in Fields.
func (d *Document) SetAttributes(attributes M) {
	d.ID = ""
	d.Email = ""
	d.Role = ""
	d.Fields = M{}

	for k, v := range attributes {
		s, isString := v.(string)
		switch {
		case k == KeyID && isString:
			d.ID = s
		case k == KeyEmail && isString:
			d.Email = s
		case k == KeyRole && isString:
			d.Role = s
		default:
			d.Fields[k] = v
		}
	}
}

// Attributes returns the flattened representation of the document.
func (d *Document) Attributes() M {
	m := make(M, len(d.Fields)+3)
	for k, v := range d.Fields {
		m[k] = v
	}

	if d.ID != "" {
		m[KeyID] = d.ID
	}
	if d.Email != "" {
		m[KeyEmail] = d.Email
	}
	if d.Role != "" {
		m[KeyRole] = d.Role
	}
	return m
}

// IsAdmin returns true if the document holds the admin role.
func (d *Document) IsAdmin() bool {
	return d != nil && d.Role == RoleAdmin
}

// MarshalJSON implements json.Marshaler.
func (d Document) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Attributes())
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Document) UnmarshalJSON(data []byte) error {
	var attributes M
	if err := json.Unmarshal(data, &attributes); err != nil {
		return err
	}

	d.SetAttributes(attributes)
	return nil
}
