package hydrate

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// yamlEntry is the structured form of a mapping entry in YAML.
type yamlEntry struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

// LoadMappingFile loads and parses a YAML mapping file from the given path.
func LoadMappingFile(path string) (Mapping, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read mapping file %s: %w", path, err)
	}

	return ParseMapping(data)
}

// ParseMapping parses a YAML mapping document. The document is a map from
// source key to either a target field name (shorthand) or a map with "name"
// and "type". Entry order follows the document.
//
//	id:
//	  name: ID
//	  type: int
//	name: Name
//	created:
//	  name: Created
//	  type: timestamp
func ParseMapping(data []byte) (Mapping, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse mapping YAML: %w", err)
	}

	if doc.Kind == 0 || len(doc.Content) == 0 {
		return Mapping{}, nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: mapping document must be a map (line %d)", ErrInvalidMapping, root.Line)
	}

	m := make(Mapping, 0, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, val := root.Content[i], root.Content[i+1]

		switch val.Kind {
		case yaml.ScalarNode:
			m = append(m, Shorthand(key.Value, val.Value))
		case yaml.MappingNode:
			var ye yamlEntry
			if err := val.Decode(&ye); err != nil {
				return nil, fmt.Errorf("failed to decode entry %q: %w", key.Value, err)
			}
			m = append(m, Entry{
				Source: key.Value,
				Field:  ye.Name,
				Type:   ParseFieldType(ye.Type),
			})
		default:
			return nil, fmt.Errorf("%w: entry %q must be a string or a map (line %d)",
				ErrInvalidMapping, key.Value, val.Line)
		}
	}

	return m, nil
}
