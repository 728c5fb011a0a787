package assembler

import (
	"encoding/json"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Output formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// ErrUnsupportedFormat is returned for output formats other than json/yaml.
var ErrUnsupportedFormat = errors.New("unsupported output format")

// Encode serializes the document in the requested format.
func (d *Document) Encode(format string) ([]byte, error) {
	switch format {
	case FormatJSON:
		out, err := json.MarshalIndent(d, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(out, '\n'), nil
	case FormatYAML, "yml":
		return yaml.Marshal(d)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}
