package chip

import (
	"slices"

	"github.com/atsam3x/sam3hal/pkg/capability"
)

// PAC is the handle to a part's peripheral-access package. The package
// itself is opaque; only the presence of its register surface and of its
// runtime entry point matter here.
type PAC struct {
	// Name is the package name, e.g. "atsam3x8e".
	Name string `yaml:"name"`

	// ImportPath is the Go import path of the package.
	ImportPath string `yaml:"import"`

	// Version is the package version the table was written against.
	Version string `yaml:"version,omitempty"`

	// Runtime is true if the package ships a startup/runtime entry point
	// (vector table and reset handler).
	Runtime bool `yaml:"runtime"`

	// RuntimeEntry names the entry symbol when Runtime is true.
	RuntimeEntry string `yaml:"entry,omitempty"`
}

// Variant describes one supported part number.
type Variant struct {
	// ID is the part number token, e.g. "sam3x8e". Matching is case-sensitive.
	ID string

	// Tags are the intrinsic capability tags of the part. They never include
	// capability.RuntimePresence, which is a selection choice.
	Tags capability.Set

	// Pins is the package pin count.
	Pins int

	// Peripherals lists the peripheral IDs present on the die, ascending.
	Peripherals []PeripheralID

	// PAC is the part's peripheral-access package.
	PAC PAC
}

// HasPeripheral reports whether the part has the given peripheral.
func (v Variant) HasPeripheral(id PeripheralID) bool {
	return slices.Contains(v.Peripherals, id)
}

// PIOGroups returns the PIO controllers of the part in order.
func (v Variant) PIOGroups() []PeripheralID {
	var groups []PeripheralID
	for _, id := range pioGroups {
		if v.HasPeripheral(id) {
			groups = append(groups, id)
		}
	}
	return groups
}

// RegisterSurface returns the PAC register blocks keyed by peripheral name.
func (v Variant) RegisterSurface() map[string]PeripheralID {
	surface := make(map[string]PeripheralID, len(v.Peripherals))
	for _, id := range v.Peripherals {
		surface[id.String()] = id
	}
	return surface
}

// SupportsRuntime reports whether the PAC offers a runtime entry point.
func (v Variant) SupportsRuntime() bool {
	return v.PAC.Runtime
}

// BuildTag returns the Go build tag selecting this part.
func (v Variant) BuildTag() string {
	return v.ID
}

func (v Variant) clone() Variant {
	v.Peripherals = slices.Clone(v.Peripherals)
	return v
}
