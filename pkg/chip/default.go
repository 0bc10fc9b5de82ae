package chip

import "github.com/atsam3x/sam3hal/pkg/capability"

const pacVersion = "0.1.2"

func pac(name string, runtime bool) PAC {
	p := PAC{
		Name:       name,
		ImportPath: "github.com/atsam3x/sam3hal-pac/" + name,
		Version:    pacVersion,
		Runtime:    runtime,
	}
	if runtime {
		p.RuntimeEntry = "Reset"
	}
	return p
}

var (
	sam3aC = capability.NewSet(capability.GenerationA, capability.PackageClass1)
	sam3xC = capability.NewSet(capability.GenerationB, capability.PackageClass1)
	sam3xE = capability.NewSet(capability.GenerationB, capability.PackageClass2)
)

// The 217-pin sam3x8h keeps the sam3_e package tag: its PIO layout is a
// superset of the 144-pin one. PIOE/PIOF and SDRAMC are listed as
// peripherals. Its PAC is published without a runtime entry point.
var defaultTable = MustTable(
	Variant{
		ID:          "sam3a4c",
		Tags:        sam3aC,
		Pins:        100,
		Peripherals: peripherals(corePeripherals),
		PAC:         pac("atsam3a4c", true),
	},
	Variant{
		ID:          "sam3a8c",
		Tags:        sam3aC,
		Pins:        100,
		Peripherals: peripherals(corePeripherals),
		PAC:         pac("atsam3a8c", true),
	},
	Variant{
		ID:          "sam3x4c",
		Tags:        sam3xC,
		Pins:        100,
		Peripherals: peripherals(corePeripherals, []PeripheralID{IDEmac}),
		PAC:         pac("atsam3x4c", true),
	},
	Variant{
		ID:          "sam3x4e",
		Tags:        sam3xE,
		Pins:        144,
		Peripherals: peripherals(corePeripherals, []PeripheralID{IDEmac}, package144Peripherals),
		PAC:         pac("atsam3x4e", true),
	},
	Variant{
		ID:          "sam3x8c",
		Tags:        sam3xC,
		Pins:        100,
		Peripherals: peripherals(corePeripherals, []PeripheralID{IDEmac}),
		PAC:         pac("atsam3x8c", true),
	},
	Variant{
		ID:          "sam3x8e",
		Tags:        sam3xE,
		Pins:        144,
		Peripherals: peripherals(corePeripherals, []PeripheralID{IDEmac}, package144Peripherals),
		PAC:         pac("atsam3x8e", true),
	},
	Variant{
		ID:          "sam3x8h",
		Tags:        sam3xE,
		Pins:        217,
		Peripherals: peripherals(corePeripherals, []PeripheralID{IDEmac}, package144Peripherals, package217Peripherals),
		PAC:         pac("atsam3x8h", false),
	},
)
