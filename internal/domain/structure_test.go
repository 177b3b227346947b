package domain

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStructure(t *testing.T) {
	t.Run("creates structure with defaults", func(t *testing.T) {
		s, err := NewStructure("api", "API")
		require.NoError(t, err)
		assert.Equal(t, "api", s.Alias())
		assert.Equal(t, "API", s.Label())
		assert.Equal(t, BoundaryInternal, s.Boundary())
		assert.Equal(t, 0, s.Tags().Len())
		assert.Equal(t, ElementStructure, s.ElementKind())
	})

	t.Run("empty alias fails", func(t *testing.T) {
		_, err := NewStructure("", "API")
		assert.True(t, errors.Is(err, ErrInvalidIdentity))
	})
}

func TestStructureWithFields(t *testing.T) {
	base := MustStructure("api", "API")

	changed := base.
		WithLabel("Public API").
		WithDescription("Entry point").
		WithBoundary(BoundaryExternal).
		WithTags("edge", "public").
		WithTag("v2")

	assert.Equal(t, "API", base.Label(), "receiver must not change")
	assert.Equal(t, "", base.Description())
	assert.Equal(t, 0, base.Tags().Len())

	assert.True(t, changed.Identity().Equal(base.Identity()), "identity is carried over")
	assert.Equal(t, "Public API", changed.Label())
	assert.Equal(t, "Entry point", changed.Description())
	assert.Equal(t, BoundaryExternal, changed.Boundary())
	assert.Equal(t, []string{"edge", "public", "v2"}, changed.Tags().Slice())
}

func TestTags(t *testing.T) {
	a := NewTags("b", " a ", "b", "")
	b := NewTags("a", "b")

	assert.True(t, a.Equal(b))
	assert.Equal(t, 2, a.Len())
	assert.True(t, a.Has("a"))
	assert.False(t, a.Has("c"))
	assert.Equal(t, "a,b", a.String())

	c := a.Add("c")
	assert.Equal(t, 2, a.Len(), "Add must not mutate the receiver")
	assert.Equal(t, []string{"a", "b", "c"}, c.Slice())
}

func TestPersonAndSystem(t *testing.T) {
	p, err := NewPerson("customer", "Customer", "A bank customer")
	require.NoError(t, err)
	assert.Equal(t, ElementPerson, p.ElementKind())
	assert.Equal(t, "A bank customer", p.Description())

	s, err := NewSoftwareSystem("banking", "Internet Banking", "")
	require.NoError(t, err)
	assert.Equal(t, ElementSoftwareSystem, s.ElementKind())

	_, err = NewPerson(" ", "Nobody", "")
	assert.True(t, errors.Is(err, ErrInvalidIdentity))
}
