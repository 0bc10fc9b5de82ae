package rules

import (
	"fmt"
	"slices"

	"github.com/atsam3x/sam3hal/pkg/capability"
	"github.com/atsam3x/sam3hal/pkg/chip"
	"github.com/atsam3x/sam3hal/pkg/selfcheck"
)

// RegisterPackageRules registers the pinout class rules.
func RegisterPackageRules(registry *selfcheck.RuleRegistry) {
	registry.Register(NewPKG001())
	registry.Register(NewPKG002())
	registry.Register(NewPIN001())
	registry.Register(NewPIN002())
}

// PKG001 checks that every variant carries a package-class tag.
type PKG001 struct {
	*selfcheck.BaseRule
}

func NewPKG001() *PKG001 {
	return &PKG001{
		BaseRule: selfcheck.NewBaseRule("PKG-001", "Package-class tag required", "package", selfcheck.SeverityError),
	}
}

func (r *PKG001) Check(t *chip.Table) []selfcheck.Violation {
	var out []selfcheck.Violation
	for _, v := range t.All() {
		if v.Tags.Has(capability.AxisPackage) {
			continue
		}
		viol := r.Violation(fmt.Sprintf("%s carries no package-class tag", v.ID), v.ID)
		viol.Suggestion = "tag 100-pin parts sam3_c and parts with PIOA-PIOD sam3_e"
		out = append(out, viol)
	}
	return out
}

// PKG002 checks that package-class tags are mutually exclusive.
type PKG002 struct {
	*selfcheck.BaseRule
}

func NewPKG002() *PKG002 {
	return &PKG002{
		BaseRule: selfcheck.NewBaseRule("PKG-002", "Package-class tags are exclusive", "package", selfcheck.SeverityError),
	}
}

func (r *PKG002) Check(t *chip.Table) []selfcheck.Violation {
	var out []selfcheck.Violation
	for _, v := range t.All() {
		if pkgs := v.Tags.OnAxis(capability.AxisPackage); len(pkgs) > 1 {
			out = append(out, r.Violation(fmt.Sprintf("%s carries %d package-class tags %v", v.ID, len(pkgs), pkgs), v.ID))
		}
	}
	return out
}

var (
	pioAB   = []chip.PeripheralID{chip.IDPioA, chip.IDPioB}
	pioAToD = []chip.PeripheralID{chip.IDPioA, chip.IDPioB, chip.IDPioC, chip.IDPioD}
)

// PIN001 checks that the PIO controllers match the package class.
type PIN001 struct {
	*selfcheck.BaseRule
}

func NewPIN001() *PIN001 {
	return &PIN001{
		BaseRule: selfcheck.NewBaseRule("PIN-001", "PIO layout matches package class", "package", selfcheck.SeverityError),
	}
}

func (r *PIN001) Check(t *chip.Table) []selfcheck.Violation {
	var out []selfcheck.Violation
	for _, v := range t.All() {
		groups := v.PIOGroups()
		switch {
		case v.Tags.Contains(capability.PackageClass1) && !slices.Equal(groups, pioAB):
			out = append(out, r.Violation(fmt.Sprintf("%s is sam3_c but has PIO controllers %v, want %v", v.ID, groups, pioAB), v.ID))
		case v.Tags.Contains(capability.PackageClass2) && (len(groups) < len(pioAToD) || !slices.Equal(groups[:len(pioAToD)], pioAToD)):
			out = append(out, r.Violation(fmt.Sprintf("%s is sam3_e but has PIO controllers %v, want at least %v", v.ID, groups, pioAToD), v.ID))
		}
	}
	return out
}

// PIN002 checks that the pin count matches the package class.
type PIN002 struct {
	*selfcheck.BaseRule
}

func NewPIN002() *PIN002 {
	return &PIN002{
		BaseRule: selfcheck.NewBaseRule("PIN-002", "Pin count matches package class", "package", selfcheck.SeverityWarning),
	}
}

func (r *PIN002) Check(t *chip.Table) []selfcheck.Violation {
	var out []selfcheck.Violation
	for _, v := range t.All() {
		switch {
		case v.Tags.Contains(capability.PackageClass1) && v.Pins != 100:
			out = append(out, r.Violation(fmt.Sprintf("%s is sam3_c but has %d pins", v.ID, v.Pins), v.ID))
		case v.Tags.Contains(capability.PackageClass2) && v.Pins < 144:
			out = append(out, r.Violation(fmt.Sprintf("%s is sam3_e but has %d pins", v.ID, v.Pins), v.ID))
		}
	}
	return out
}
