package codec

import (
	"io"

	"c4model/internal/domain"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

// YAMLCodec handles YAML snapshot import/export. Definition files written by
// hand use the loader format instead.
type YAMLCodec struct{}

// NewYAMLCodec creates a new YAML codec
func NewYAMLCodec() *YAMLCodec {
	return &YAMLCodec{}
}

// Format returns the codec format identifier
func (c *YAMLCodec) Format() string {
	return "yaml"
}

// Parse imports a workspace from a YAML snapshot
func (c *YAMLCodec) Parse(r io.Reader) (*domain.Workspace, error) {
	var snap domain.Snapshot
	decoder := yaml.NewDecoder(r)
	if err := decoder.Decode(&snap); err != nil {
		return nil, errors.Wrap(err, "failed to parse YAML")
	}

	return domain.RestoreWorkspace(&snap)
}

// Export exports a workspace as a YAML snapshot
func (c *YAMLCodec) Export(ws *domain.Workspace, w io.Writer) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	defer encoder.Close()

	if err := encoder.Encode(ws.Snapshot()); err != nil {
		return errors.Wrap(err, "failed to encode YAML")
	}

	return nil
}
