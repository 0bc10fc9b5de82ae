package resolve

import (
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/blake2b"

	"github.com/atsam3x/sam3hal/pkg/capability"
	"github.com/atsam3x/sam3hal/pkg/chip"
)

// Selection is one consumer's choice of part.
type Selection struct {
	// Variant is the part identifier, matched case-sensitively.
	Variant string `yaml:"variant" json:"variant"`

	// WantsRuntime requests the startup/runtime shim.
	WantsRuntime bool `yaml:"runtime" json:"runtime"`
}

// String returns "variant" or "variant+rt".
func (s Selection) String() string {
	if s.WantsRuntime {
		return s.Variant + "+rt"
	}
	return s.Variant
}

// ParseSelection parses the form printed by Selection.String: a variant
// identifier with an optional "+rt" suffix.
func ParseSelection(s string) (Selection, error) {
	variant, rt := strings.CutSuffix(s, "+rt")
	if variant == "" || strings.ContainsAny(variant, "+ \t") {
		return Selection{}, fmt.Errorf("invalid selection %q: want <variant> or <variant>+rt", s)
	}
	return Selection{Variant: variant, WantsRuntime: rt}, nil
}

// PackageKind distinguishes optional compile units.
type PackageKind string

const (
	PackagePAC     PackageKind = "pac"
	PackageRuntime PackageKind = "runtime"
)

// Package is an optional compile unit included by an activation.
type Package struct {
	Kind       PackageKind
	Name       string
	ImportPath string
}

// Activation is the activated capability set of one build.
type Activation struct {
	// Variant is the selected part.
	Variant chip.Variant

	// Tags are the intrinsic tags plus RuntimePresence when activated.
	Tags capability.Set

	// RuntimeShim is true when the runtime entry point is included.
	RuntimeShim bool
}

// PAC returns the peripheral-access package of the build.
func (a Activation) PAC() chip.PAC {
	return a.Variant.PAC
}

// Intrinsic returns the tags the part carries by itself.
func (a Activation) Intrinsic() capability.Set {
	return a.Variant.Tags
}

// Selection returns the selection this activation satisfies.
func (a Activation) Selection() Selection {
	return Selection{Variant: a.Variant.ID, WantsRuntime: a.RuntimeShim}
}

// Packages lists exactly the optional compile units of the build: the PAC
// and, when activated, its runtime shim.
func (a Activation) Packages() []Package {
	pac := a.Variant.PAC
	pkgs := []Package{{Kind: PackagePAC, Name: pac.Name, ImportPath: pac.ImportPath}}
	if a.RuntimeShim {
		pkgs = append(pkgs, Package{Kind: PackageRuntime, Name: pac.Name + "/" + pac.RuntimeEntry, ImportPath: pac.ImportPath})
	}
	return pkgs
}

// BuildTags returns the Go build tags of the build: the part identifier
// followed by the activated capability tokens.
func (a Activation) BuildTags() []string {
	return append([]string{a.Variant.BuildTag()}, a.Tags.BuildTags()...)
}

// GoFlags renders the build tags as a go/tinygo command-line flag.
func (a Activation) GoFlags() string {
	return "-tags=" + strings.Join(a.BuildTags(), ",")
}

// Equal reports whether two activations select the same compile units.
func (a Activation) Equal(b Activation) bool {
	return a.Variant.ID == b.Variant.ID &&
		a.Tags == b.Tags &&
		a.RuntimeShim == b.RuntimeShim &&
		a.Variant.PAC == b.Variant.PAC
}

// Fingerprint returns a stable hex digest of the activation.
func (a Activation) Fingerprint() string {
	pac := a.Variant.PAC
	canonical := fmt.Sprintf("v1|%s|%s|%s|%s|%t",
		a.Variant.ID, strings.Join(a.Tags.BuildTags(), ","), pac.Name, pac.ImportPath, a.RuntimeShim)
	sum := blake2b.Sum256([]byte(canonical))
	return hex.EncodeToString(sum[:16])
}

// String returns a one-line summary.
func (a Activation) String() string {
	return fmt.Sprintf("%s %s", a.Variant.ID, a.Tags)
}
