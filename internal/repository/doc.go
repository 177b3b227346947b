// Package repository defines the data access interfaces for c4model.
//
// This package provides the repository abstraction layer for persisting and
// retrieving workspaces. The actual implementation is in the sqlite
// subpackage.
//
// # Repository Interface
//
// The Repository interface stores whole workspaces by name. A save replaces
// the stored elements and relationships of that workspace in one
// transaction; a load rebuilds the workspace through domain.RestoreWorkspace,
// so instances come back interned in their canonical container's registry.
//
// # SQLite Implementation
//
// The sqlite implementation uses the pure-Go modernc.org/sqlite driver with
// WAL mode and foreign keys enabled. The schema is migrated on open.
package repository
