package loader

import (
	"os"
	"strings"

	"c4model/internal/domain"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

// WorkspaceYAML represents the definition file structure
type WorkspaceYAML struct {
	Version       string             `yaml:"version"`
	Name          string             `yaml:"name"`
	Description   string             `yaml:"description,omitempty"`
	Kinds         []KindYAML         `yaml:"kinds,omitempty"`
	People        []ElementYAML      `yaml:"people,omitempty"`
	Systems       []ElementYAML      `yaml:"systems,omitempty"`
	Containers    []ContainerYAML    `yaml:"containers,omitempty"`
	Relationships []RelationshipYAML `yaml:"relationships,omitempty"`
}

// KindYAML represents a kind descriptor
type KindYAML struct {
	Name        string `yaml:"name"`
	Type        string `yaml:"type"`
	Technology  string `yaml:"technology,omitempty"`
	Description string `yaml:"description,omitempty"`
}

// ElementYAML represents a person or software system
type ElementYAML struct {
	Alias       string   `yaml:"alias"`
	Label       string   `yaml:"label"`
	Description string   `yaml:"description,omitempty"`
	Boundary    string   `yaml:"boundary,omitempty"`
	Tags        []string `yaml:"tags,omitempty"`
}

// ContainerYAML represents a container declaration. Either alias/label or
// kind is set; when kind is set, alias and label come from the kind name and
// the remaining fields override the kind defaults.
type ContainerYAML struct {
	Kind        string   `yaml:"kind,omitempty"`
	Alias       string   `yaml:"alias,omitempty"`
	Label       string   `yaml:"label,omitempty"`
	Type        string   `yaml:"type,omitempty"`
	Technology  string   `yaml:"technology,omitempty"`
	Description string   `yaml:"description,omitempty"`
	Boundary    string   `yaml:"boundary,omitempty"`
	Tags        []string `yaml:"tags,omitempty"`
	Instances   []string `yaml:"instances,omitempty"`
}

// RelationshipYAML represents a relationship. Endpoints may name instances
// ("web-app:1"); those are interned on demand.
type RelationshipYAML struct {
	From       string   `yaml:"from"`
	To         string   `yaml:"to"`
	Label      string   `yaml:"label"`
	Technology string   `yaml:"technology,omitempty"`
	Direction  string   `yaml:"direction,omitempty"`
	Tags       []string `yaml:"tags,omitempty"`
}

// LoadYAML loads a workspace from a YAML definition file
func LoadYAML(path string) (*domain.Workspace, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read file")
	}

	return ParseYAML(data)
}

// ParseYAML parses a workspace from YAML bytes
func ParseYAML(data []byte) (*domain.Workspace, error) {
	var yamlData WorkspaceYAML
	if err := yaml.Unmarshal(data, &yamlData); err != nil {
		return nil, errors.Wrap(err, "failed to parse YAML")
	}

	return convertYAMLToWorkspace(&yamlData)
}

func convertYAMLToWorkspace(y *WorkspaceYAML) (*domain.Workspace, error) {
	ws := domain.NewWorkspace(y.Name)
	ws.Description = y.Description
	if y.Version != "" {
		ws.Version = y.Version
	}

	catalog := domain.NewKindCatalog()
	for i, k := range y.Kinds {
		ct, err := domain.ParseContainerType(k.Type)
		if err != nil {
			return nil, errors.Wrapf(err, "kinds[%d]", i)
		}
		if err := catalog.Register(domain.KindDescriptor{
			Name:        k.Name,
			Type:        ct,
			Technology:  k.Technology,
			Description: k.Description,
		}); err != nil {
			return nil, errors.Wrapf(err, "kinds[%d]", i)
		}
	}

	for i, p := range y.People {
		s, err := convertElement(p)
		if err != nil {
			return nil, errors.Wrapf(err, "people[%d]", i)
		}
		if err := ws.Add(domain.Person{Structure: s}); err != nil {
			return nil, errors.Wrapf(err, "people[%d]", i)
		}
	}

	for i, sys := range y.Systems {
		s, err := convertElement(sys)
		if err != nil {
			return nil, errors.Wrapf(err, "systems[%d]", i)
		}
		if err := ws.Add(domain.SoftwareSystem{Structure: s}); err != nil {
			return nil, errors.Wrapf(err, "systems[%d]", i)
		}
	}

	for i, yc := range y.Containers {
		c, err := convertContainer(yc, catalog)
		if err != nil {
			return nil, errors.Wrapf(err, "containers[%d]", i)
		}
		if err := ws.AddContainer(c); err != nil {
			return nil, errors.Wrapf(err, "containers[%d]", i)
		}
		for _, name := range yc.Instances {
			if _, _, err := ws.Instance(c.Alias(), name); err != nil {
				return nil, errors.Wrapf(err, "containers[%d] instance %q", i, name)
			}
		}
	}

	for i, yr := range y.Relationships {
		for _, key := range []string{yr.From, yr.To} {
			if err := ensureElement(ws, key); err != nil {
				return nil, errors.Wrapf(err, "relationships[%d]", i)
			}
		}

		rel := domain.NewRelationshipByKey(yr.From, yr.To, yr.Label)
		rel.Technology = yr.Technology
		if yr.Direction != "" {
			rel.Direction = domain.Direction(yr.Direction)
		}
		rel.Tags = domain.NewTags(yr.Tags...).Slice()
		if err := ws.AddRelationship(rel); err != nil {
			return nil, errors.Wrapf(err, "relationships[%d]", i)
		}
	}

	return ws, nil
}

func convertElement(e ElementYAML) (domain.Structure, error) {
	s, err := domain.NewStructure(e.Alias, e.Label)
	if err != nil {
		return domain.Structure{}, err
	}
	s = s.WithDescription(e.Description).WithTags(e.Tags...)
	if e.Boundary != "" {
		s = s.WithBoundary(domain.Boundary(e.Boundary))
	}
	return s, nil
}

func convertContainer(yc ContainerYAML, catalog *domain.KindCatalog) (*domain.Container, error) {
	var c *domain.Container

	if yc.Kind != "" {
		kc, err := catalog.Declare(yc.Kind)
		if err != nil {
			return nil, err
		}
		c = kc
		if yc.Type != "" {
			ct, err := domain.ParseContainerType(yc.Type)
			if err != nil {
				return nil, err
			}
			c = c.WithType(ct)
		}
		if yc.Technology != "" {
			c = c.WithTechnology(yc.Technology)
		}
		if yc.Description != "" {
			c = c.WithDescription(yc.Description)
		}
		if yc.Label != "" {
			c = c.WithLabel(yc.Label)
		}
	} else {
		ct, err := domain.ParseContainerType(yc.Type)
		if err != nil {
			return nil, err
		}
		nc, err := domain.NewContainer(yc.Alias, yc.Label, ct, yc.Technology, yc.Description)
		if err != nil {
			return nil, err
		}
		c = nc
	}

	if len(yc.Tags) > 0 {
		c = c.WithTags(yc.Tags...)
	}
	if yc.Boundary != "" {
		c = c.WithBoundary(domain.Boundary(yc.Boundary))
	}
	return c, nil
}

// ensureElement makes an instance endpoint ("alias:name") resolvable by
// interning it through its canonical container
func ensureElement(ws *domain.Workspace, key string) error {
	if _, ok := ws.Element(key); ok {
		return nil
	}

	idx := strings.LastIndex(key, domain.QualifierSeparator)
	if idx <= 0 || idx == len(key)-1 {
		return errors.Wrapf(domain.ErrUnknownElement, "%q", key)
	}
	if err := ensureElement(ws, key[:idx]); err != nil {
		return err
	}
	_, _, err := ws.Instance(key[:idx], key[idx+1:])
	return err
}
