package domain

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
)

// Workspace holds a complete architecture model: its elements keyed by
// identity value and the relationships between them. It is safe for
// concurrent use.
type Workspace struct {
	Name        string
	Description string
	Version     string
	UpdatedAt   time.Time

	mu            sync.RWMutex
	elements      map[string]Element
	relationships map[string]*Relationship
}

// NewWorkspace creates an empty workspace
func NewWorkspace(name string) *Workspace {
	return &Workspace{
		Name:          name,
		Version:       "1",
		UpdatedAt:     time.Now(),
		elements:      make(map[string]Element),
		relationships: make(map[string]*Relationship),
	}
}

// Add declares an element. Declaring a key twice fails with ErrDuplicateAlias.
func (w *Workspace) Add(e Element) error {
	key := e.Identity().Value()
	if key == "" {
		return errors.Wrap(ErrInvalidIdentity, "element has no identity")
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if _, exists := w.elements[key]; exists {
		return errors.Wrapf(ErrDuplicateAlias, "%q", key)
	}
	w.elements[key] = e
	w.UpdatedAt = time.Now()
	return nil
}

// AddStructure declares a structure
func (w *Workspace) AddStructure(s Structure) error {
	return w.Add(s)
}

// AddContainer declares a container
func (w *Workspace) AddContainer(c *Container) error {
	return w.Add(c)
}

// Instance resolves the declared container alias, interns the named instance
// through its registry, and declares the instance in the workspace. The
// second return value reports whether the instance was created by this call.
//
// An instance key that collides with a different element fails with
// ErrAmbiguousInstance.
func (w *Workspace) Instance(alias, name string) (*Container, bool, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	e, ok := w.elements[alias]
	if !ok {
		return nil, false, errors.Wrapf(ErrUnknownElement, "%q", alias)
	}
	c, ok := e.(*Container)
	if !ok {
		return nil, false, errors.Newf("element %q is a %s, not a container", alias, e.ElementKind())
	}

	id, err := NewIdentity(c.Alias(), name)
	if err != nil {
		return nil, false, err
	}
	if existing, ok := w.elements[id.Value()]; ok {
		if inst, ok := c.LookupInstance(name); ok && Element(inst) == existing {
			return inst, false, nil
		}
		return nil, false, errors.Wrapf(ErrAmbiguousInstance, "%q", id.Value())
	}

	inst, created := c.Intern(name)
	w.elements[inst.Alias()] = inst
	w.UpdatedAt = time.Now()
	return inst, created, nil
}

// AddRelationship adds a relationship whose endpoints are both declared.
// Adding a relationship with an existing ID replaces it.
func (w *Workspace) AddRelationship(r *Relationship) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	for _, key := range []string{r.From, r.To} {
		if _, ok := w.elements[key]; !ok {
			return errors.Wrapf(ErrUnknownElement, "relationship endpoint %q", key)
		}
	}
	if r.ID == "" {
		r.ID = r.GenerateID()
	}
	w.relationships[r.ID] = r
	w.UpdatedAt = time.Now()
	return nil
}

// Element returns the element with the given key
func (w *Workspace) Element(key string) (Element, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	e, ok := w.elements[key]
	return e, ok
}

// Container returns the container with the given key
func (w *Workspace) Container(key string) (*Container, bool) {
	e, ok := w.Element(key)
	if !ok {
		return nil, false
	}
	c, ok := e.(*Container)
	return c, ok
}

// Elements returns all elements sorted by key
func (w *Workspace) Elements() []Element {
	w.mu.RLock()
	defer w.mu.RUnlock()

	out := make([]Element, 0, len(w.elements))
	for _, e := range w.elements {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Alias() < out[j].Alias() })
	return out
}

// Relationships returns all relationships sorted by ID
func (w *Workspace) Relationships() []*Relationship {
	w.mu.RLock()
	defer w.mu.RUnlock()

	out := make([]*Relationship, 0, len(w.relationships))
	for _, r := range w.relationships {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// RelationshipsOf returns the relationships touching an element key
func (w *Workspace) RelationshipsOf(key string) []*Relationship {
	var out []*Relationship
	for _, r := range w.Relationships() {
		if r.Involves(key) {
			out = append(out, r)
		}
	}
	return out
}

// Len returns the number of elements
func (w *Workspace) Len() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.elements)
}

// Summary returns a human-readable summary
func (w *Workspace) Summary() string {
	counts := make(map[ElementKind]int)
	instances := 0
	for _, e := range w.Elements() {
		counts[e.ElementKind()]++
		if e.Identity().IsInstance() {
			instances++
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Workspace: %s\n", w.Name)
	fmt.Fprintf(&b, "People: %d, Systems: %d, Containers: %d (instances: %d), Structures: %d\n",
		counts[ElementPerson], counts[ElementSoftwareSystem], counts[ElementContainer], instances, counts[ElementStructure])
	fmt.Fprintf(&b, "Relationships: %d", len(w.Relationships()))
	return b.String()
}
