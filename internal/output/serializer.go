package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"

	sigsyaml "sigs.k8s.io/yaml"
)

// Serialize converts v to canonical YAML bytes. Struct fields follow their
// json tags, map keys are sorted and null values are dropped.
func Serialize(v any) ([]byte, error) {
	yamlBytes, err := sigsyaml.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("serializing YAML: %w", err)
	}

	yamlBytes = stripNullFields(yamlBytes)

	return ensureTrailingNewline(yamlBytes), nil
}

// SerializeJSON converts v to indented JSON bytes with sorted keys.
func SerializeJSON(v any, indent string) ([]byte, error) {
	if indent == "" {
		indent = "  "
	}

	// Round-trip through YAML so maps and structs share one key ordering.
	yamlBytes, err := sigsyaml.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("serializing intermediate YAML: %w", err)
	}

	jsonOut, err := sigsyaml.YAMLToJSON(yamlBytes)
	if err != nil {
		return nil, fmt.Errorf("converting to JSON: %w", err)
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, jsonOut, "", indent); err != nil {
		return nil, fmt.Errorf("formatting JSON: %w", err)
	}

	return ensureTrailingNewline(buf.Bytes()), nil
}

// nullFieldRe matches YAML lines whose value is an explicit null.
var nullFieldRe = regexp.MustCompile(`(?m)^\s*[A-Za-z0-9_.-]+:\s*null\s*\n`)

// stripNullFields removes "key: null" lines left behind by nil pointers
// and maps that carry no omitempty tag.
func stripNullFields(data []byte) []byte {
	return nullFieldRe.ReplaceAll(data, nil)
}

func ensureTrailingNewline(b []byte) []byte {
	if len(b) > 0 && b[len(b)-1] != '\n' {
		b = append(b, '\n')
	}

	return b
}
