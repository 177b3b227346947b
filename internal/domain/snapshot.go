package domain

import (
	"sort"

	"github.com/cockroachdb/errors"
)

// Snapshot is the flat, serializable form of a Workspace
type Snapshot struct {
	Name          string          `json:"name" yaml:"name"`
	Description   string          `json:"description,omitempty" yaml:"description,omitempty"`
	Version       string          `json:"version" yaml:"version"`
	Elements      []ElementRecord `json:"elements" yaml:"elements"`
	Relationships []Relationship  `json:"relationships" yaml:"relationships"`
}

// ElementRecord is one element of a snapshot. For instances, Alias is the
// key of the element the instance was interned from.
type ElementRecord struct {
	Key         string        `json:"key" yaml:"key"`
	Alias       string        `json:"alias" yaml:"alias"`
	Qualifier   string        `json:"qualifier,omitempty" yaml:"qualifier,omitempty"`
	Kind        ElementKind   `json:"kind" yaml:"kind"`
	Label       string        `json:"label" yaml:"label"`
	Description string        `json:"description,omitempty" yaml:"description,omitempty"`
	Boundary    Boundary      `json:"boundary,omitempty" yaml:"boundary,omitempty"`
	Tags        []string      `json:"tags,omitempty" yaml:"tags,omitempty"`
	Type        ContainerType `json:"type,omitempty" yaml:"type,omitempty"`
	Technology  string        `json:"technology,omitempty" yaml:"technology,omitempty"`
}

// Snapshot flattens the workspace
func (w *Workspace) Snapshot() *Snapshot {
	s := &Snapshot{
		Name:          w.Name,
		Description:   w.Description,
		Version:       w.Version,
		Elements:      make([]ElementRecord, 0, w.Len()),
		Relationships: make([]Relationship, 0),
	}

	for _, e := range w.Elements() {
		rec := ElementRecord{
			Key:         e.Identity().Value(),
			Alias:       e.Identity().Alias(),
			Qualifier:   e.Identity().Qualifier(),
			Kind:        e.ElementKind(),
			Label:       e.Label(),
			Description: e.Description(),
			Boundary:    e.Boundary(),
			Tags:        e.Tags().Slice(),
		}
		if c, ok := e.(*Container); ok {
			rec.Type = c.Type()
			rec.Technology = c.Technology()
		}
		s.Elements = append(s.Elements, rec)
	}

	for _, r := range w.Relationships() {
		s.Relationships = append(s.Relationships, *r)
	}

	return s
}

// RestoreWorkspace rebuilds a workspace from a snapshot. Canonical elements
// are declared first; instances are then interned through their parent
// container, shortest key first, so nested instances find their parent and
// every instance takes its attributes from the canonical declaration.
func RestoreWorkspace(s *Snapshot) (*Workspace, error) {
	ws := NewWorkspace(s.Name)
	ws.Description = s.Description
	if s.Version != "" {
		ws.Version = s.Version
	}

	var instances []ElementRecord
	for _, rec := range s.Elements {
		if rec.Qualifier != "" {
			instances = append(instances, rec)
			continue
		}

		e, err := rec.element()
		if err != nil {
			return nil, errors.Wrapf(err, "element %q", rec.Key)
		}
		if err := ws.Add(e); err != nil {
			return nil, err
		}
	}

	sort.SliceStable(instances, func(i, j int) bool {
		return len(instances[i].Key) < len(instances[j].Key)
	})
	for _, rec := range instances {
		if _, _, err := ws.Instance(rec.Alias, rec.Qualifier); err != nil {
			return nil, errors.Wrapf(err, "instance %q", rec.Key)
		}
	}

	for i := range s.Relationships {
		r := s.Relationships[i]
		if err := ws.AddRelationship(&r); err != nil {
			return nil, err
		}
	}

	return ws, nil
}

func (rec ElementRecord) element() (Element, error) {
	s, err := NewStructure(rec.Alias, rec.Label)
	if err != nil {
		return nil, err
	}
	s = s.WithDescription(rec.Description).WithTags(rec.Tags...)
	if rec.Boundary != "" {
		s = s.WithBoundary(rec.Boundary)
	}

	switch rec.Kind {
	case ElementPerson:
		return Person{Structure: s}, nil
	case ElementSoftwareSystem:
		return SoftwareSystem{Structure: s}, nil
	case ElementContainer:
		c := newContainer(s.Identity(), s.Label(), rec.Type, rec.Technology, s.Description())
		c.Structure = s
		return c, nil
	case ElementStructure, "":
		return s, nil
	default:
		return nil, errors.Newf("unknown element kind %q", rec.Kind)
	}
}
