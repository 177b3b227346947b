package domain

import (
	"strings"

	"github.com/cockroachdb/errors"
)

// QualifierSeparator joins an alias and an instance qualifier in an identity value.
const QualifierSeparator = ":"

// Identity is the unique key of an element within a workspace
type Identity struct {
	alias     string
	qualifier string
	value     string
}

// NewIdentity creates an identity from an alias and an optional instance qualifier.
// The alias must not be blank.
func NewIdentity(alias, qualifier string) (Identity, error) {
	if strings.TrimSpace(alias) == "" {
		return Identity{}, errors.Wrapf(ErrInvalidIdentity, "alias is blank (qualifier %q)", qualifier)
	}

	value := alias
	if qualifier != "" {
		value = alias + QualifierSeparator + qualifier
	}

	return Identity{alias: alias, qualifier: qualifier, value: value}, nil
}

// MustIdentity is like NewIdentity but panics on a blank alias
func MustIdentity(alias, qualifier string) Identity {
	id, err := NewIdentity(alias, qualifier)
	if err != nil {
		panic(err)
	}
	return id
}

// IdentityFor derives a canonical identity from a kind name
func IdentityFor[K Kind]() (Identity, error) {
	var k K
	return NewIdentity(ToAlias(k.KindName()), "")
}

// Alias returns the declared alias (without qualifier)
func (i Identity) Alias() string {
	return i.alias
}

// Qualifier returns the instance qualifier, empty for canonical elements
func (i Identity) Qualifier() string {
	return i.qualifier
}

// Value returns the composite key
func (i Identity) Value() string {
	return i.value
}

// IsZero reports whether the identity was never constructed
func (i Identity) IsZero() bool {
	return i.value == ""
}

// IsInstance reports whether the identity names an instance
func (i Identity) IsInstance() bool {
	return i.qualifier != ""
}

// Equal compares composite keys. The alias alone is never enough once a
// qualifier is present.
func (i Identity) Equal(other Identity) bool {
	return i.value == other.value
}

// String implements fmt.Stringer
func (i Identity) String() string {
	return i.value
}
