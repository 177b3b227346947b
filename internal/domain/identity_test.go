package domain

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestNewIdentity(t *testing.T) {
	tests := []struct {
		name      string
		alias     string
		qualifier string
		want      string
	}{
		{"canonical", "web-app", "", "web-app"},
		{"indexed instance", "web-app", "1", "web-app:1"},
		{"named instance", "web-app", "replica-A", "web-app:replica-A"},
		{"compound", "web-app:1", "blue", "web-app:1:blue"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := NewIdentity(tt.alias, tt.qualifier)
			require.NoError(t, err)
			assert.Equal(t, tt.want, id.Value())
			assert.Equal(t, tt.alias, id.Alias())
			assert.Equal(t, tt.qualifier, id.Qualifier())
			assert.Equal(t, tt.qualifier != "", id.IsInstance())
		})
	}
}

func TestNewIdentityRejectsBlankAlias(t *testing.T) {
	for _, alias := range []string{"", " ", "\t\n"} {
		_, err := NewIdentity(alias, "1")
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidIdentity), "alias %q", alias)
	}

	assert.Panics(t, func() { MustIdentity("", "") })
}

func TestIdentityEqual(t *testing.T) {
	canonical := MustIdentity("web-app", "")
	instance := MustIdentity("web-app", "1")

	assert.True(t, canonical.Equal(MustIdentity("web-app", "")))
	assert.True(t, instance.Equal(MustIdentity("web-app", "1")))
	assert.False(t, canonical.Equal(instance), "alias alone must not match a qualified identity")
	assert.True(t, Identity{}.IsZero())
}

type paymentsAPI struct{}

func (paymentsAPI) KindName() string { return "PaymentsAPI" }

func TestIdentityFor(t *testing.T) {
	id, err := IdentityFor[paymentsAPI]()
	require.NoError(t, err)
	assert.Equal(t, "payments-api", id.Value())
	assert.False(t, id.IsInstance())
}

func TestIdentityValueProperty(t *testing.T) {
	rapid.Check(t, func(r *rapid.T) {
		alias := rapid.StringMatching(`[a-z][a-z0-9-]{0,15}`).Draw(r, "alias")
		q1 := rapid.StringMatching(`[A-Za-z0-9]{1,8}`).Draw(r, "q1")
		q2 := rapid.StringMatching(`[A-Za-z0-9]{1,8}`).Draw(r, "q2")

		id1 := MustIdentity(alias, q1)
		id2 := MustIdentity(alias, q2)

		if (q1 == q2) != id1.Equal(id2) {
			r.Fatalf("qualifiers %q/%q gave equality %v", q1, q2, id1.Equal(id2))
		}
		if id1.Value() != alias+":"+q1 {
			r.Fatalf("unexpected value %q", id1.Value())
		}
	})
}
