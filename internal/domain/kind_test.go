package domain

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mobileBankingApp struct{}

func (mobileBankingApp) KindName() string { return "MobileBankingApp" }

func TestDeclare(t *testing.T) {
	a, err := Declare[mobileBankingApp](ContainerTypeMobile, "Flutter", "Customer app")
	require.NoError(t, err)
	b, err := Declare[mobileBankingApp](ContainerTypeMobile, "Swift", "iOS build")
	require.NoError(t, err)

	assert.Equal(t, "mobile-banking-app", a.Alias())
	assert.Equal(t, "Mobile Banking App", a.Label())
	assert.Equal(t, a.Alias(), b.Alias())
	assert.Equal(t, a.Label(), b.Label())
	assert.False(t, a.Identity().IsInstance())
	assert.NotSame(t, a, b)
	assert.Equal(t, "Flutter", a.Technology())

	assert.Equal(t, "mobile-banking-app:1", a.Instance(1).Alias())
}

func TestMobile(t *testing.T) {
	m, err := NewMobile("app", "App", "Kotlin", "Android app")
	require.NoError(t, err)
	assert.Equal(t, ContainerTypeMobile, m.Type())

	typed, err := DeclareMobile[mobileBankingApp]("Flutter", "Customer app")
	require.NoError(t, err)
	assert.Equal(t, ContainerTypeMobile, typed.Type())
	assert.Equal(t, "mobile-banking-app", typed.Alias())
}

func TestKindCatalog(t *testing.T) {
	catalog := NewKindCatalog()
	d := KindDescriptor{Name: "PaymentsAPI", Type: ContainerTypeServerConsole, Technology: "Go"}

	t.Run("register and declare", func(t *testing.T) {
		require.NoError(t, catalog.Register(d))
		require.NoError(t, catalog.Register(d), "identical re-registration is a no-op")
		assert.Equal(t, 1, catalog.Count())

		c, err := catalog.Declare("PaymentsAPI")
		require.NoError(t, err)
		assert.Equal(t, "payments-api", c.Alias())
		assert.Equal(t, "Payments API", c.Label())
		assert.Equal(t, d.Alias(), c.Alias())
		assert.Equal(t, d.Label(), c.Label())
	})

	t.Run("conflicting descriptor fails", func(t *testing.T) {
		other := d
		other.Technology = "Java"
		err := catalog.Register(other)
		assert.True(t, errors.Is(err, ErrKindConflict))
	})

	t.Run("unknown kind fails", func(t *testing.T) {
		_, err := catalog.Declare("Nope")
		assert.True(t, errors.Is(err, ErrUnknownKind))
	})

	t.Run("blank name fails", func(t *testing.T) {
		err := catalog.Register(KindDescriptor{Name: "  "})
		assert.True(t, errors.Is(err, ErrInvalidIdentity))
	})

	t.Run("entries sorted", func(t *testing.T) {
		require.NoError(t, catalog.Register(KindDescriptor{Name: "Analytics", Type: ContainerTypeDatabase}))
		entries := catalog.Entries()
		require.Len(t, entries, 2)
		assert.Equal(t, "Analytics", entries[0].Name)
	})
}
