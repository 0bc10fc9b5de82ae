package chip

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/atsam3x/sam3hal/pkg/capability"
	"github.com/atsam3x/sam3hal/pkg/version"
)

// yamlTable represents the YAML structure of a variant table.
type yamlTable struct {
	Version  string        `yaml:"version"`
	Variants []yamlVariant `yaml:"variants"`
}

// yamlVariant represents one part in YAML format.
type yamlVariant struct {
	ID          string         `yaml:"id"`
	Tags        capability.Set `yaml:"tags"`
	Pins        int            `yaml:"pins"`
	Peripherals []string       `yaml:"peripherals"`
	PAC         PAC            `yaml:"pac"`
}

// LoadTableYAML reads a variant table from a YAML file.
func LoadTableYAML(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	t, err := ParseTableYAML(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// ParseTableYAML parses a variant table in YAML format.
func ParseTableYAML(data []byte) (*Table, error) {
	var y yamlTable
	if err := yaml.Unmarshal(data, &y); err != nil {
		return nil, fmt.Errorf("YAML parse error: %w", err)
	}
	if err := version.CheckDocument(y.Version); err != nil {
		return nil, err
	}

	lineNumbers, err := variantLines(data)
	if err != nil {
		return nil, err
	}

	variants := make([]Variant, 0, len(y.Variants))
	for i, yv := range y.Variants {
		v, err := yv.variant()
		if err != nil {
			if i < len(lineNumbers) {
				return nil, fmt.Errorf("line %d: %w", lineNumbers[i], err)
			}
			return nil, err
		}
		variants = append(variants, v)
	}
	return NewTable(variants...)
}

func (yv yamlVariant) variant() (Variant, error) {
	ids := make([]PeripheralID, 0, len(yv.Peripherals))
	for _, name := range yv.Peripherals {
		id, err := ParsePeripheral(name)
		if err != nil {
			return Variant{}, fmt.Errorf("variant %q: %w", yv.ID, err)
		}
		ids = append(ids, id)
	}
	return Variant{
		ID:          yv.ID,
		Tags:        yv.Tags,
		Pins:        yv.Pins,
		Peripherals: peripherals(ids),
		PAC:         yv.PAC,
	}, nil
}

// variantLines returns the source line of each entry of the variants list.
func variantLines(data []byte) ([]int, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("YAML node parse error: %w", err)
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return nil, nil
	}
	doc := root.Content[0]
	if doc.Kind != yaml.MappingNode {
		return nil, nil
	}
	var lines []int
	for i := 0; i < len(doc.Content)-1; i += 2 {
		keyNode := doc.Content[i]
		valueNode := doc.Content[i+1]
		if keyNode.Value == "variants" && valueNode.Kind == yaml.SequenceNode {
			for _, item := range valueNode.Content {
				lines = append(lines, item.Line)
			}
		}
	}
	return lines, nil
}

// MarshalTableYAML renders a table in the format read by ParseTableYAML.
func MarshalTableYAML(t *Table) ([]byte, error) {
	y := yamlTable{Version: version.Current}
	for _, v := range t.variants {
		names := make([]string, len(v.Peripherals))
		for i, id := range v.Peripherals {
			names[i] = id.String()
		}
		y.Variants = append(y.Variants, yamlVariant{
			ID:          v.ID,
			Tags:        v.Tags,
			Pins:        v.Pins,
			Peripherals: names,
			PAC:         v.PAC,
		})
	}
	return yaml.Marshal(y)
}
