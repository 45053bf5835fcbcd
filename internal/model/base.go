package model

type (
	// A Model defines an object that can be stored in database.
	Model interface {
		// GetID returns the model's ID.
		GetID() string
		// SetID defines the model's ID.
		SetID(string)
	}

	// A Base contains the default model fields.
	Base struct {
		ID string `msgpack:"id" storm:"id"`
	}

	// M is an arbitrary map.
	M map[string]any
)

// GetID returns the model's ID.
func (m *Base) GetID() string {
	return m.ID
}

// SetID defines the model's ID.
func (m *Base) SetID(id string) {
	m.ID = id
}
