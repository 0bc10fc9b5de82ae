package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/atsam3x/sam3hal/pkg/chip"
	"github.com/atsam3x/sam3hal/pkg/facade"
	"github.com/atsam3x/sam3hal/pkg/resolve"
)

func writeJSON(w io.Writer, data any) error {
	j, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(j))
	return err
}

// VariantOutput is the JSON form of a variant.
type VariantOutput struct {
	ID          string   `json:"id"`
	Tags        []string `json:"tags"`
	Pins        int      `json:"pins"`
	PAC         string   `json:"pac"`
	PACImport   string   `json:"pac_import"`
	Runtime     bool     `json:"runtime"`
	PIOGroups   []string `json:"pio_groups,omitempty"`
	Peripherals []string `json:"peripherals,omitempty"`
	Modules     []string `json:"modules,omitempty"`
}

func variantOutput(v chip.Variant, detail bool) VariantOutput {
	out := VariantOutput{
		ID:        v.ID,
		Tags:      v.Tags.BuildTags(),
		Pins:      v.Pins,
		PAC:       v.PAC.Name,
		PACImport: v.PAC.ImportPath,
		Runtime:   v.SupportsRuntime(),
	}
	if detail {
		out.PIOGroups = peripheralNames(v.PIOGroups())
		out.Peripherals = peripheralNames(v.Peripherals)
	}
	return out
}

func peripheralNames(ids []chip.PeripheralID) []string {
	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = id.String()
	}
	return names
}

// ActivationOutput is the JSON form of an activation.
type ActivationOutput struct {
	Variant     string   `json:"variant"`
	Tags        []string `json:"tags"`
	PAC         string   `json:"pac"`
	RuntimeShim bool     `json:"runtime_shim"`
	BuildTags   []string `json:"build_tags"`
	GoFlags     string   `json:"go_flags"`
	Fingerprint string   `json:"fingerprint"`
	Packages    []string `json:"packages"`
	Modules     []string `json:"modules"`
}

func activationOutput(act resolve.Activation, f facade.Facade) ActivationOutput {
	pkgs := act.Packages()
	names := make([]string, len(pkgs))
	for i, p := range pkgs {
		names[i] = p.Name
	}
	return ActivationOutput{
		Variant:     act.Variant.ID,
		Tags:        act.Tags.BuildTags(),
		PAC:         act.PAC().Name,
		RuntimeShim: act.RuntimeShim,
		BuildTags:   act.BuildTags(),
		GoFlags:     act.GoFlags(),
		Fingerprint: act.Fingerprint(),
		Packages:    names,
		Modules:     f.Modules(),
	}
}

func printActivation(w io.Writer, act resolve.Activation, f facade.Facade) {
	fmt.Fprintf(w, "Variant:     %s\n", act.Variant.ID)
	fmt.Fprintf(w, "Tags:        %s\n", act.Tags)
	fmt.Fprintf(w, "PAC:         %s (%s)\n", act.PAC().Name, act.PAC().ImportPath)
	fmt.Fprintf(w, "Runtime:     %t\n", act.RuntimeShim)
	fmt.Fprintf(w, "Modules:     %s\n", strings.Join(f.Modules(), ", "))
	fmt.Fprintf(w, "Fingerprint: %s\n", act.Fingerprint())
	fmt.Fprintf(w, "Flags:       %s\n", act.GoFlags())
}
