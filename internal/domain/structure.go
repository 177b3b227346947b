package domain

// Boundary names the grouping that encloses an element
type Boundary string

const (
	BoundaryInternal Boundary = "internal"
	BoundaryExternal Boundary = "external"
)

// Identified is implemented by every element that carries an identity
type Identified interface {
	Identity() Identity
}

// Structure is the base architecture element. It is an immutable value: the
// With* methods return modified copies and never touch the receiver. The
// identity is fixed at construction and carried into every copy.
type Structure struct {
	identity    Identity
	label       string
	description string
	boundary    Boundary
	tags        Tags
}

// NewStructure creates a canonical structure
func NewStructure(alias, label string) (Structure, error) {
	id, err := NewIdentity(alias, "")
	if err != nil {
		return Structure{}, err
	}
	return newStructure(id, label), nil
}

// MustStructure is like NewStructure but panics on an invalid alias
func MustStructure(alias, label string) Structure {
	s, err := NewStructure(alias, label)
	if err != nil {
		panic(err)
	}
	return s
}

func newStructure(id Identity, label string) Structure {
	return Structure{
		identity: id,
		label:    label,
		boundary: BoundaryInternal,
	}
}

// Identity returns the element identity
func (s Structure) Identity() Identity {
	return s.identity
}

// Alias returns the identity value, the key other elements use to reference this one
func (s Structure) Alias() string {
	return s.identity.Value()
}

// Label returns the display name
func (s Structure) Label() string {
	return s.label
}

// Description returns the optional description
func (s Structure) Description() string {
	return s.description
}

// Boundary returns the enclosing boundary
func (s Structure) Boundary() Boundary {
	return s.boundary
}

// Tags returns the tag set
func (s Structure) Tags() Tags {
	return s.tags
}

// WithLabel returns a copy with a new label
func (s Structure) WithLabel(label string) Structure {
	s.label = label
	return s
}

// WithDescription returns a copy with a new description
func (s Structure) WithDescription(description string) Structure {
	s.description = description
	return s
}

// WithBoundary returns a copy with a new boundary
func (s Structure) WithBoundary(boundary Boundary) Structure {
	s.boundary = boundary
	return s
}

// WithTags returns a copy whose tag set is replaced
func (s Structure) WithTags(tags ...string) Structure {
	s.tags = NewTags(tags...)
	return s
}

// WithTag returns a copy with one more tag
func (s Structure) WithTag(tag string) Structure {
	s.tags = s.tags.Add(tag)
	return s
}

// withIdentity is the only path that changes an identity; it is used when
// interning instances
func (s Structure) withIdentity(id Identity) Structure {
	s.identity = id
	return s
}
