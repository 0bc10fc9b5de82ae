package board

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/atsam3x/sam3hal/pkg/version"
)

type yamlDocument struct {
	Version string        `yaml:"version"`
	Boards  []yamlProfile `yaml:"boards"`
}

type yamlProfile struct {
	Name         string   `yaml:"name"`
	Variant      string   `yaml:"variant"`
	Runtime      bool     `yaml:"runtime,omitempty"`
	Panic        string   `yaml:"panic,omitempty"`
	Freestanding *bool    `yaml:"freestanding,omitempty"`
	Features     string   `yaml:"features,omitempty"`
	Modules      []string `yaml:"modules,omitempty,flow"`
	Tags         []string `yaml:"tags,omitempty,flow"`
}

// LoadProfilesYAML reads board profiles from a YAML file.
func LoadProfilesYAML(path string) ([]Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	profiles, err := ParseProfilesYAML(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return profiles, nil
}

// ParseProfilesYAML parses board profiles. An entry without a freestanding
// key is freestanding. Profiles are checked with Validate; errors name the
// line of the offending entry.
func ParseProfilesYAML(data []byte) ([]Profile, error) {
	var doc yamlDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("YAML parse error: %w", err)
	}
	if err := version.CheckDocument(doc.Version); err != nil {
		return nil, err
	}

	lines, err := boardLines(data)
	if err != nil {
		return nil, err
	}
	at := func(i int, err error) error {
		if i < len(lines) {
			return fmt.Errorf("line %d: %w", lines[i], err)
		}
		return err
	}

	seen := make(map[string]bool, len(doc.Boards))
	profiles := make([]Profile, 0, len(doc.Boards))
	for i, yp := range doc.Boards {
		p, err := yp.profile()
		if err != nil {
			return nil, at(i, err)
		}
		if err := p.Validate(); err != nil {
			return nil, at(i, err)
		}
		if seen[p.Name] {
			return nil, at(i, fmt.Errorf("%w: duplicate board %s", ErrInvalidProfile, p.Name))
		}
		seen[p.Name] = true
		profiles = append(profiles, p)
	}
	return profiles, nil
}

func (yp yamlProfile) profile() (Profile, error) {
	panicStrategy, err := ParsePanicStrategy(yp.Panic)
	if err != nil {
		return Profile{}, fmt.Errorf("%w: board %s: %v", ErrInvalidProfile, yp.Name, err)
	}
	features, err := ParseFeaturePolicy(yp.Features)
	if err != nil {
		return Profile{}, fmt.Errorf("%w: board %s: %v", ErrInvalidProfile, yp.Name, err)
	}
	// Boards are freestanding unless the entry opts out.
	freestanding := yp.Freestanding == nil || *yp.Freestanding
	return Profile{
		Name:         yp.Name,
		Variant:      yp.Variant,
		Runtime:      yp.Runtime,
		Panic:        panicStrategy,
		Freestanding: freestanding,
		Features:     features,
		Modules:      yp.Modules,
		Tags:         yp.Tags,
	}, nil
}

func boardLines(data []byte) ([]int, error) {
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
	for i := 0; i+1 < len(doc.Content); i += 2 {
		if doc.Content[i].Value != "boards" || doc.Content[i+1].Kind != yaml.SequenceNode {
			continue
		}
		lines := make([]int, len(doc.Content[i+1].Content))
		for j, item := range doc.Content[i+1].Content {
			lines[j] = item.Line
		}
		return lines, nil
	}
	return nil, nil
}

// MarshalProfilesYAML renders profiles in the format read by
// ParseProfilesYAML.
func MarshalProfilesYAML(profiles ...Profile) ([]byte, error) {
	doc := yamlDocument{Version: version.Current}
	for _, p := range profiles {
		yp := yamlProfile{
			Name:    p.Name,
			Variant: p.Variant,
			Runtime: p.Runtime,
			Modules: p.Modules,
			Tags:    p.Tags,
		}
		if !p.Freestanding {
			hosted := false
			yp.Freestanding = &hosted
		}
		if p.Panic != PanicNone {
			yp.Panic = p.Panic.String()
		}
		if p.Features != FeaturesDefault {
			yp.Features = p.Features.String()
		}
		doc.Boards = append(doc.Boards, yp)
	}
	return yaml.Marshal(doc)
}
