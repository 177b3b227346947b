// Package domain defines the core types for modeling software architecture
// as data, following the C4 notation.
//
// This package contains the elements of an architecture model (structures,
// containers, people, software systems), the relationships between them, and
// the Workspace aggregate that holds a complete model.
//
// # Identity
//
// Identity is the composite key of an element: an alias plus an optional
// instance qualifier. The value is the alias alone for a canonical element
// and "alias:qualifier" for an instance. Two identities are equal exactly
// when their values are equal.
//
// # Containers and Instances
//
// A Container is declared once. Asking it for an instance by index or name
// returns a Container that shares every descriptive attribute of the
// canonical declaration but carries its own identity. Instances are interned
// in a registry owned by the canonical Container: asking twice for the same
// name returns the same *Container.
//
// # Kinds
//
// A Kind is a zero-size type whose KindName drives the alias and label of a
// typed declaration, so two declaration sites for the same kind always
// resolve to the same element without hand-written aliases.
//
// # Design Principles
//
// - Immutable value objects; "changes" produce new values
// - No database or I/O dependencies
// - Fail fast at declaration time
package domain
