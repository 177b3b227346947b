package domain

// ElementKind classifies an element in the C4 vocabulary
type ElementKind string

const (
	ElementStructure      ElementKind = "structure"
	ElementPerson         ElementKind = "person"
	ElementSoftwareSystem ElementKind = "software_system"
	ElementContainer      ElementKind = "container"
)

// Element is the read-only view shared by every element a workspace holds
type Element interface {
	Identified
	Alias() string
	Label() string
	Description() string
	Boundary() Boundary
	Tags() Tags
	ElementKind() ElementKind
}

// ElementKind implements Element
func (s Structure) ElementKind() ElementKind {
	return ElementStructure
}

// ElementKind implements Element
func (c *Container) ElementKind() ElementKind {
	return ElementContainer
}

// Person is a human user of a software system
type Person struct {
	Structure
}

// NewPerson creates a person
func NewPerson(alias, label, description string) (Person, error) {
	s, err := NewStructure(alias, label)
	if err != nil {
		return Person{}, err
	}
	return Person{Structure: s.WithDescription(description)}, nil
}

// ElementKind implements Element
func (Person) ElementKind() ElementKind {
	return ElementPerson
}

// SoftwareSystem is the highest level of abstraction: something that
// delivers value to its users
type SoftwareSystem struct {
	Structure
}

// NewSoftwareSystem creates a software system
func NewSoftwareSystem(alias, label, description string) (SoftwareSystem, error) {
	s, err := NewStructure(alias, label)
	if err != nil {
		return SoftwareSystem{}, err
	}
	return SoftwareSystem{Structure: s.WithDescription(description)}, nil
}

// ElementKind implements Element
func (SoftwareSystem) ElementKind() ElementKind {
	return ElementSoftwareSystem
}
