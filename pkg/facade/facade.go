package facade

import (
	"errors"
	"fmt"
	"slices"

	"github.com/atsam3x/sam3hal/pkg/capability"
	"github.com/atsam3x/sam3hal/pkg/chip"
	"github.com/atsam3x/sam3hal/pkg/resolve"
)

// ErrIncoherentTags is returned when an activation would hand the facade an
// ambiguous or unsatisfiable tag set.
var ErrIncoherentTags = errors.New("incoherent capability tags")

// Facade is the module surface compiled for one activation.
type Facade struct {
	variant chip.Variant
	tags    capability.Set
	modules []Module
}

// Compose evaluates the default catalogue against act.
func Compose(act resolve.Activation) (Facade, error) {
	return defaultCatalogue.Compose(act)
}

// Compose evaluates every module constraint against the activation's build
// tags. The activation must carry exactly one generation and one package
// tag, and every enabled module's peripherals must exist on the part.
func (c *Catalogue) Compose(act resolve.Activation) (Facade, error) {
	for _, axis := range []capability.Axis{capability.AxisGeneration, capability.AxisPackage} {
		if n := len(act.Tags.OnAxis(axis)); n != 1 {
			return Facade{}, fmt.Errorf("%w: %s has %d %s tags in %s",
				ErrIncoherentTags, act.Variant.ID, n, axis, act.Tags)
		}
	}

	tags := act.BuildTags()
	f := Facade{variant: act.Variant, tags: act.Tags}
	for _, m := range c.modules {
		if !m.Enabled(tags) {
			continue
		}
		for _, p := range m.Peripherals {
			if !act.Variant.HasPeripheral(p) {
				return Facade{}, fmt.Errorf("%w: module %s needs %s, absent on %s",
					ErrIncoherentTags, m.Name, p, act.Variant.ID)
			}
		}
		f.modules = append(f.modules, m)
	}
	return f, nil
}

// Variant returns the part the facade was composed for.
func (f Facade) Variant() chip.Variant {
	return f.variant
}

// Tags returns the activated tags the facade was composed from.
func (f Facade) Tags() capability.Set {
	return f.tags
}

// Has reports whether the named module is compiled in.
func (f Facade) Has(name string) bool {
	return slices.ContainsFunc(f.modules, func(m Module) bool { return m.Name == name })
}

// Modules returns the names of the compiled modules in catalogue order.
func (f Facade) Modules() []string {
	names := make([]string, len(f.modules))
	for i, m := range f.modules {
		names[i] = m.Name
	}
	return names
}

// PIOGroups returns the part's PIO controllers.
func (f Facade) PIOGroups() []chip.PeripheralID {
	return f.variant.PIOGroups()
}
