package facade

import (
	"errors"
	"fmt"
	"go/build/constraint"
	"slices"

	"github.com/atsam3x/sam3hal/pkg/chip"
)

// ErrInvalidCatalogue is returned for malformed module declarations.
var ErrInvalidCatalogue = errors.New("invalid facade catalogue")

// Module is one HAL facade module.
type Module struct {
	// Name is the module path, e.g. "gpio/piocd".
	Name string

	// Constraint is the build-constraint expression without the
	// "//go:build" prefix, e.g. "sam3x && sam3_e".
	Constraint string

	// Peripherals must all be present on any part the module compiles for.
	Peripherals []chip.PeripheralID

	expr constraint.Expr
}

// Enabled reports whether the module compiles for the given build tags.
func (m Module) Enabled(tags []string) bool {
	return m.expr.Eval(func(tag string) bool {
		return slices.Contains(tags, tag)
	})
}

// BuildLine returns the //go:build line for the module's source files.
func (m Module) BuildLine() string {
	return "//go:build " + m.expr.String()
}

func (m *Module) parse() error {
	if m.Name == "" {
		return fmt.Errorf("%w: module without a name", ErrInvalidCatalogue)
	}
	expr, err := constraint.Parse("//go:build " + m.Constraint)
	if err != nil {
		return fmt.Errorf("%w: module %s: %v", ErrInvalidCatalogue, m.Name, err)
	}
	m.expr = expr
	return nil
}

// Catalogue is an ordered, immutable set of modules.
type Catalogue struct {
	modules []Module
}

// NewCatalogue parses every module's constraint.
func NewCatalogue(modules ...Module) (*Catalogue, error) {
	c := &Catalogue{modules: make([]Module, 0, len(modules))}
	seen := make(map[string]bool, len(modules))
	for _, m := range modules {
		if seen[m.Name] {
			return nil, fmt.Errorf("%w: duplicate module %s", ErrInvalidCatalogue, m.Name)
		}
		seen[m.Name] = true
		m.Peripherals = slices.Clone(m.Peripherals)
		if err := m.parse(); err != nil {
			return nil, err
		}
		c.modules = append(c.modules, m)
	}
	return c, nil
}

// MustCatalogue is like NewCatalogue but panics on error.
func MustCatalogue(modules ...Module) *Catalogue {
	c, err := NewCatalogue(modules...)
	if err != nil {
		panic(err)
	}
	return c
}

// Modules returns the declared modules in order.
func (c *Catalogue) Modules() []Module {
	return slices.Clone(c.modules)
}

// Module looks up a module by name.
func (c *Catalogue) Module(name string) (Module, bool) {
	for _, m := range c.modules {
		if m.Name == name {
			return m, true
		}
	}
	return Module{}, false
}

var defaultCatalogue = MustCatalogue(
	Module{Name: "clock", Constraint: "sam3_c || sam3_e", Peripherals: []chip.PeripheralID{chip.IDPmc}},
	Module{Name: "gpio/pioab", Constraint: "sam3_c || sam3_e", Peripherals: []chip.PeripheralID{chip.IDPioA, chip.IDPioB}},
	Module{Name: "gpio/piocd", Constraint: "sam3_e", Peripherals: []chip.PeripheralID{chip.IDPioC, chip.IDPioD}},
	Module{Name: "gpio/pioef", Constraint: "sam3x8h", Peripherals: []chip.PeripheralID{chip.IDPioE, chip.IDPioF}},
	Module{Name: "usb", Constraint: "sam3x", Peripherals: []chip.PeripheralID{chip.IDUotghs}},
	Module{Name: "can", Constraint: "sam3x", Peripherals: []chip.PeripheralID{chip.IDCan0, chip.IDCan1}},
	Module{Name: "emac", Constraint: "sam3x", Peripherals: []chip.PeripheralID{chip.IDEmac}},
	Module{Name: "sdramc", Constraint: "sam3x8h", Peripherals: []chip.PeripheralID{chip.IDSdramc}},
	Module{Name: "rt", Constraint: "rt"},
)

// DefaultCatalogue returns the HAL's module catalogue.
func DefaultCatalogue() *Catalogue {
	return defaultCatalogue
}
