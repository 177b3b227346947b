package domain

import (
	"sort"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"
)

// Kind is a well-known element kind. Implementations are zero-size types whose
// KindName is a constant, e.g.
//
//	type PaymentsAPI struct{}
//	func (PaymentsAPI) KindName() string { return "PaymentsAPI" }
type Kind interface {
	KindName() string
}

// Declare builds a canonical container whose alias and label are derived
// from the kind name. Declaring the same kind twice yields containers with
// the same alias and label.
func Declare[K Kind](containerType ContainerType, technology, description string) (*Container, error) {
	var k K
	return declareKind(k.KindName(), containerType, technology, description)
}

// MustDeclare is like Declare but panics on an invalid kind name
func MustDeclare[K Kind](containerType ContainerType, technology, description string) *Container {
	c, err := Declare[K](containerType, technology, description)
	if err != nil {
		panic(err)
	}
	return c
}

func declareKind(name string, containerType ContainerType, technology, description string) (*Container, error) {
	id, err := NewIdentity(ToAlias(name), "")
	if err != nil {
		return nil, errors.Wrapf(err, "kind %q", name)
	}
	return newContainer(id, ToLabel(name), containerType, technology, description), nil
}

// KindDescriptor is the static description of a kind: its name and the
// defaults a typed declaration starts from
type KindDescriptor struct {
	Name        string        `json:"name" yaml:"name"`
	Type        ContainerType `json:"type" yaml:"type"`
	Technology  string        `json:"technology,omitempty" yaml:"technology,omitempty"`
	Description string        `json:"description,omitempty" yaml:"description,omitempty"`
}

// KindName implements Kind
func (d KindDescriptor) KindName() string {
	return d.Name
}

// Alias returns the alias every declaration of this kind receives
func (d KindDescriptor) Alias() string {
	return ToAlias(d.Name)
}

// Label returns the label every declaration of this kind receives
func (d KindDescriptor) Label() string {
	return ToLabel(d.Name)
}

// Declare builds a canonical container from the descriptor
func (d KindDescriptor) Declare() (*Container, error) {
	return declareKind(d.Name, d.Type, d.Technology, d.Description)
}

// KindCatalog maps kind names to descriptors. It is safe for concurrent use.
type KindCatalog struct {
	mu    sync.RWMutex
	kinds map[string]KindDescriptor
}

// NewKindCatalog creates an empty catalog
func NewKindCatalog() *KindCatalog {
	return &KindCatalog{
		kinds: make(map[string]KindDescriptor),
	}
}

// Register adds a descriptor. Registering an identical descriptor again is a
// no-op; registering a different one under the same name fails.
func (c *KindCatalog) Register(d KindDescriptor) error {
	d.Name = strings.TrimSpace(d.Name)
	if ToAlias(d.Name) == "" {
		return errors.Wrapf(ErrInvalidIdentity, "kind name %q", d.Name)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if existing, ok := c.kinds[d.Name]; ok {
		if existing != d {
			return errors.Wrapf(ErrKindConflict, "kind %q", d.Name)
		}
		return nil
	}
	c.kinds[d.Name] = d
	return nil
}

// Lookup returns the descriptor registered under name
func (c *KindCatalog) Lookup(name string) (KindDescriptor, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	d, ok := c.kinds[name]
	return d, ok
}

// Declare builds a container for the named kind
func (c *KindCatalog) Declare(name string) (*Container, error) {
	d, ok := c.Lookup(name)
	if !ok {
		return nil, errors.Wrapf(ErrUnknownKind, "%q", name)
	}
	return d.Declare()
}

// Entries returns the descriptors sorted by name
func (c *KindCatalog) Entries() []KindDescriptor {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]KindDescriptor, 0, len(c.kinds))
	for _, d := range c.kinds {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Count returns the number of registered kinds
func (c *KindCatalog) Count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.kinds)
}
