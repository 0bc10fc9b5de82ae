package board

import (
	"embed"
	"fmt"
	"io/fs"
	"maps"
	"slices"
	"sync"
)

//go:embed profiles/*.yaml
var profileFS embed.FS

var builtin = sync.OnceValue(func() map[string]Profile {
	files, err := fs.Glob(profileFS, "profiles/*.yaml")
	if err != nil {
		panic(err)
	}
	out := make(map[string]Profile)
	for _, name := range files {
		data, err := profileFS.ReadFile(name)
		if err != nil {
			panic(err)
		}
		profiles, err := ParseProfilesYAML(data)
		if err != nil {
			panic(fmt.Sprintf("built-in %s: %v", name, err))
		}
		for _, p := range profiles {
			if _, dup := out[p.Name]; dup {
				panic(fmt.Sprintf("built-in %s: duplicate board %s", name, p.Name))
			}
			out[p.Name] = p
		}
	}
	return out
})

// Lookup returns the built-in profile with the given name.
func Lookup(name string) (Profile, error) {
	p, ok := builtin()[name]
	if !ok {
		return Profile{}, fmt.Errorf("%w: %q (known: %v)", ErrUnknownBoard, name, Names())
	}
	p.Modules = slices.Clone(p.Modules)
	return p, nil
}

// Names returns the built-in board names in sorted order.
func Names() []string {
	return slices.Sorted(maps.Keys(builtin()))
}

// Profiles returns the built-in profiles sorted by name.
func Profiles() []Profile {
	names := Names()
	out := make([]Profile, len(names))
	for i, name := range names {
		out[i], _ = Lookup(name)
	}
	return out
}
