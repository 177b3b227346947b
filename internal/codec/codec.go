// Package codec converts workspaces to and from snapshot documents.
//
// A snapshot is the flat form of a workspace (see domain.Snapshot). Importing
// a snapshot re-interns instances through their canonical containers, so an
// imported workspace keeps the same registry guarantees as a declared one.
package codec

import (
	"io"

	"c4model/internal/domain"

	"github.com/cockroachdb/errors"
)

// Importer interface for importing workspaces from various formats
type Importer interface {
	Parse(r io.Reader) (*domain.Workspace, error)
	Format() string
}

// Exporter interface for exporting workspaces to various formats
type Exporter interface {
	Export(ws *domain.Workspace, w io.Writer) error
	Format() string
}

// Codec is both an Importer and an Exporter
type Codec interface {
	Importer
	Exporter
}

// ForFormat returns the codec for a format name
func ForFormat(format string) (Codec, error) {
	switch format {
	case "json", "":
		return NewJSONCodec(), nil
	case "yaml", "yml":
		return NewYAMLCodec(), nil
	default:
		return nil, errors.Newf("unsupported format %q", format)
	}
}
