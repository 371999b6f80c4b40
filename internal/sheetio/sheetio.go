// Package sheetio reads and writes persisted character records as JSON or
// YAML files. YAML is converted through JSON so both formats share one
// decoder, including legacy schema upgrades.
package sheetio

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/rpg-sheet/internal/entities/pf2e"
	"github.com/KirkDiggler/rpg-sheet/internal/errors"
)

// Format is a file encoding
type Format string

// Supported formats
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the format by file extension
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", errors.InvalidArgumentf("unsupported sheet file extension %q (want .json, .yaml or .yml)", filepath.Ext(path))
	}
}

// Decode parses a record in the given format
func Decode(data []byte, format Format) (*pf2e.SimpleCharacter, error) {
	switch format {
	case FormatJSON:
		return pf2e.DecodeSimpleCharacter(data)
	case FormatYAML:
		var doc any
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, errors.Misconfigured(err, "character record is not valid YAML")
		}
		converted, err := json.Marshal(doc)
		if err != nil {
			return nil, errors.Misconfigured(err, "character record cannot be represented as JSON")
		}
		return pf2e.DecodeSimpleCharacter(converted)
	default:
		return nil, errors.InvalidArgumentf("unsupported format %q", format)
	}
}

// Encode renders a record in the given format. Field order follows the
// JSON encoding in both formats.
func Encode(record *pf2e.SimpleCharacter, format Format) ([]byte, error) {
	if record == nil {
		return nil, errors.InvalidArgument("character record is required")
	}

	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal character record")
	}

	switch format {
	case FormatJSON:
		return append(data, '\n'), nil
	case FormatYAML:
		return jsonToYAML(data)
	default:
		return nil, errors.InvalidArgumentf("unsupported format %q", format)
	}
}

// jsonToYAML re-reads JSON as a YAML node tree, which keeps key order, and
// re-renders it in block style with scalar lists kept inline.
func jsonToYAML(data []byte) ([]byte, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, "failed to convert record to YAML")
	}
	restyle(&doc)

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return nil, errors.Wrap(err, "failed to encode YAML")
	}
	if err := enc.Close(); err != nil {
		return nil, errors.Wrap(err, "failed to encode YAML")
	}
	return buf.Bytes(), nil
}

func restyle(n *yaml.Node) {
	switch n.Kind {
	case yaml.ScalarNode:
		n.Style = 0
	case yaml.SequenceNode:
		n.Style = 0
		if len(n.Content) == 0 || allScalars(n.Content) {
			n.Style = yaml.FlowStyle
		}
	case yaml.MappingNode:
		n.Style = 0
		if len(n.Content) == 0 {
			n.Style = yaml.FlowStyle
		}
	}
	for _, child := range n.Content {
		restyle(child)
	}
}

func allScalars(nodes []*yaml.Node) bool {
	for _, n := range nodes {
		if n.Kind != yaml.ScalarNode {
			return false
		}
	}
	return true
}

// ReadFile loads a record, choosing the format by extension
func ReadFile(path string) (*pf2e.SimpleCharacter, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapWithCodef(err, errors.CodeInvalidArgument, "failed to read %s", path)
	}
	return Decode(data, format)
}

// WriteFile saves a record, choosing the format by extension
func WriteFile(path string, record *pf2e.SimpleCharacter) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	data, err := Encode(record, format)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return errors.Wrapf(err, "failed to write %s", path)
	}
	return nil
}
