package domain

import (
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"
)

// ContainerType represents the kind of runtime unit a container is
type ContainerType string

const (
	ContainerTypeNone               ContainerType = "none"
	ContainerTypeServerConsole      ContainerType = "server_console"
	ContainerTypeWebApp             ContainerType = "web_app"
	ContainerTypeSPA                ContainerType = "spa"
	ContainerTypeMobile             ContainerType = "mobile"
	ContainerTypeDesktop            ContainerType = "desktop"
	ContainerTypeDatabase           ContainerType = "database"
	ContainerTypeBlob               ContainerType = "blob"
	ContainerTypeFileSystem         ContainerType = "file_system"
	ContainerTypeShellScript        ContainerType = "shell_script"
	ContainerTypeServerlessFunction ContainerType = "serverless_function"
	ContainerTypeQueue              ContainerType = "queue"
)

var containerTypes = []ContainerType{
	ContainerTypeNone,
	ContainerTypeServerConsole,
	ContainerTypeWebApp,
	ContainerTypeSPA,
	ContainerTypeMobile,
	ContainerTypeDesktop,
	ContainerTypeDatabase,
	ContainerTypeBlob,
	ContainerTypeFileSystem,
	ContainerTypeShellScript,
	ContainerTypeServerlessFunction,
	ContainerTypeQueue,
}

// ContainerTypes lists every known container type
func ContainerTypes() []ContainerType {
	return slices.Clone(containerTypes)
}

// ParseContainerType converts the string form to a ContainerType.
// An empty string yields ContainerTypeNone.
func ParseContainerType(s string) (ContainerType, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ContainerTypeNone, nil
	}
	for _, ct := range containerTypes {
		if string(ct) == s {
			return ct, nil
		}
	}
	return ContainerTypeNone, errors.Wrapf(ErrUnknownContainerType, "%q", s)
}

// Container is a separately runnable or deployable unit of a software system
// (a web app, a database, a mobile app), not an OS-level container.
//
// A Container owns an instance registry. Instances are created lazily on the
// first request for a name and then returned unchanged for the lifetime of
// the declaring Container; there is no eviction. Containers must be handled
// by pointer.
type Container struct {
	Structure
	containerType ContainerType
	technology    string

	mu        sync.Mutex
	instances map[string]*Container
	order     []string
}

// NewContainer declares a canonical container
func NewContainer(alias, label string, containerType ContainerType, technology, description string) (*Container, error) {
	id, err := NewIdentity(alias, "")
	if err != nil {
		return nil, err
	}
	return newContainer(id, label, containerType, technology, description), nil
}

// MustContainer is like NewContainer but panics on an invalid alias.
// It is intended for package-level declarations.
func MustContainer(alias, label string, containerType ContainerType, technology, description string) *Container {
	c, err := NewContainer(alias, label, containerType, technology, description)
	if err != nil {
		panic(err)
	}
	return c
}

func newContainer(id Identity, label string, containerType ContainerType, technology, description string) *Container {
	return &Container{
		Structure:     newStructure(id, label).WithDescription(description),
		containerType: containerType,
		technology:    technology,
	}
}

// Type returns the container type
func (c *Container) Type() ContainerType {
	return c.containerType
}

// Technology returns the optional technology description
func (c *Container) Technology() string {
	return c.technology
}

// Instance returns the instance with the given index. It is equivalent to
// Named(strconv.Itoa(index)).
func (c *Container) Instance(index int) *Container {
	return c.GetOrCreateInstance(strconv.Itoa(index))
}

// Named returns the instance with the given name
func (c *Container) Named(name string) *Container {
	return c.GetOrCreateInstance(name)
}

// GetOrCreateInstance returns the interned instance for name, creating it on
// first use. Repeated calls with the same name return the same pointer.
func (c *Container) GetOrCreateInstance(name string) *Container {
	inst, _ := c.Intern(name)
	return inst
}

// Intern is the single lookup-or-insert operation of the registry. It reports
// whether the instance was created by this call. The lookup and the insert
// happen under one lock, so concurrent callers asking for the same name
// observe a single instance.
//
// Interning on an instance is allowed and yields a compound key such as
// "web-app:1:blue".
func (c *Container) Intern(name string) (*Container, bool) {
	// The receiver's alias was validated when it was declared; a zero
	// Container is a programming error.
	id := MustIdentity(c.Alias(), name)

	c.mu.Lock()
	defer c.mu.Unlock()

	if inst, ok := c.instances[id.Value()]; ok {
		return inst, false
	}

	inst := &Container{
		Structure:     c.Structure.withIdentity(id),
		containerType: c.containerType,
		technology:    c.technology,
	}
	if c.instances == nil {
		c.instances = make(map[string]*Container)
	}
	c.instances[id.Value()] = inst
	c.order = append(c.order, id.Value())

	return inst, true
}

// LookupInstance returns an already interned instance without creating one
func (c *Container) LookupInstance(name string) (*Container, bool) {
	id, err := NewIdentity(c.Alias(), name)
	if err != nil {
		return nil, false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	inst, ok := c.instances[id.Value()]
	return inst, ok
}

// Instances returns the interned instances in creation order
func (c *Container) Instances() []*Container {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]*Container, 0, len(c.order))
	for _, key := range c.order {
		out = append(out, c.instances[key])
	}
	return out
}

// InstanceCount returns the number of interned instances
func (c *Container) InstanceCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.instances)
}

// WithLabel returns a new canonical container with a new label
func (c *Container) WithLabel(label string) *Container {
	n := c.clone()
	n.Structure = n.Structure.WithLabel(label)
	return n
}

// WithDescription returns a new canonical container with a new description
func (c *Container) WithDescription(description string) *Container {
	n := c.clone()
	n.Structure = n.Structure.WithDescription(description)
	return n
}

// WithBoundary returns a new canonical container with a new boundary
func (c *Container) WithBoundary(boundary Boundary) *Container {
	n := c.clone()
	n.Structure = n.Structure.WithBoundary(boundary)
	return n
}

// WithTags returns a new canonical container whose tags are replaced
func (c *Container) WithTags(tags ...string) *Container {
	n := c.clone()
	n.Structure = n.Structure.WithTags(tags...)
	return n
}

// WithTag returns a new canonical container with one more tag
func (c *Container) WithTag(tag string) *Container {
	n := c.clone()
	n.Structure = n.Structure.WithTag(tag)
	return n
}

// WithTechnology returns a new canonical container with a new technology
func (c *Container) WithTechnology(technology string) *Container {
	n := c.clone()
	n.technology = technology
	return n
}

// WithType returns a new canonical container with a new container type
func (c *Container) WithType(containerType ContainerType) *Container {
	n := c.clone()
	n.containerType = containerType
	return n
}

// clone copies the descriptive fields. The copy starts with an empty
// registry: registries are never shared between declarations.
func (c *Container) clone() *Container {
	return &Container{
		Structure:     c.Structure,
		containerType: c.containerType,
		technology:    c.technology,
	}
}
