package domain

import "github.com/cockroachdb/errors"

var (
	// ErrInvalidIdentity is returned when an identity is built from a blank alias.
	ErrInvalidIdentity = errors.New("invalid identity")

	// ErrDuplicateAlias is returned when an element key is declared twice in a workspace.
	ErrDuplicateAlias = errors.New("duplicate alias")

	// ErrAmbiguousInstance is returned when an instance key collides with
	// another element of the same workspace.
	ErrAmbiguousInstance = errors.New("ambiguous instance key")

	// ErrUnknownElement is returned when a key does not resolve to a declared element.
	ErrUnknownElement = errors.New("unknown element")

	// ErrUnknownKind is returned when a kind name is not in the catalog.
	ErrUnknownKind = errors.New("unknown kind")

	// ErrKindConflict is returned when a kind name is registered with a different descriptor.
	ErrKindConflict = errors.New("conflicting kind descriptor")

	// ErrUnknownContainerType is returned by ParseContainerType.
	ErrUnknownContainerType = errors.New("unknown container type")
)
