package codec

import (
	"encoding/json"
	"io"

	"c4model/internal/domain"

	"github.com/cockroachdb/errors"
)

// JSONCodec handles JSON import/export
type JSONCodec struct{}

// NewJSONCodec creates a new JSON codec
func NewJSONCodec() *JSONCodec {
	return &JSONCodec{}
}

// Format returns the codec format identifier
func (c *JSONCodec) Format() string {
	return "json"
}

// Parse imports a workspace from a JSON snapshot
func (c *JSONCodec) Parse(r io.Reader) (*domain.Workspace, error) {
	var snap domain.Snapshot
	decoder := json.NewDecoder(r)
	if err := decoder.Decode(&snap); err != nil {
		return nil, errors.Wrap(err, "failed to parse JSON")
	}

	return domain.RestoreWorkspace(&snap)
}

// Export exports a workspace as a JSON snapshot
func (c *JSONCodec) Export(ws *domain.Workspace, w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(ws.Snapshot()); err != nil {
		return errors.Wrap(err, "failed to encode JSON")
	}

	return nil
}
