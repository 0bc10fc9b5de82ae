package rules

import (
	"fmt"

	"github.com/atsam3x/sam3hal/pkg/chip"
	"github.com/atsam3x/sam3hal/pkg/selfcheck"
)

// RegisterPACRules registers the peripheral-access package rules.
func RegisterPACRules(registry *selfcheck.RuleRegistry) {
	registry.Register(NewPAC001())
	registry.Register(NewPAC002())
}

// PAC001 checks that each variant references a usable PAC: a name, an
// import path and a non-empty register surface.
type PAC001 struct {
	*selfcheck.BaseRule
}

func NewPAC001() *PAC001 {
	return &PAC001{
		BaseRule: selfcheck.NewBaseRule("PAC-001", "PAC present", "pac", selfcheck.SeverityError),
	}
}

func (r *PAC001) Check(t *chip.Table) []selfcheck.Violation {
	var out []selfcheck.Violation
	for _, v := range t.All() {
		switch {
		case v.PAC.Name == "":
			out = append(out, r.Violation(fmt.Sprintf("%s has no peripheral-access package", v.ID), v.ID))
		case v.PAC.ImportPath == "":
			out = append(out, r.Violation(fmt.Sprintf("%s: PAC %s has no import path", v.ID, v.PAC.Name), v.ID))
		case len(v.RegisterSurface()) == 0:
			out = append(out, r.Violation(fmt.Sprintf("%s: PAC %s exposes no register blocks", v.ID, v.PAC.Name), v.ID))
		}
	}
	return out
}

// PAC002 checks that no two variants share a PAC. Two parts pulling the
// same package would make the one-package-per-build rule unenforceable.
type PAC002 struct {
	*selfcheck.BaseRule
}

func NewPAC002() *PAC002 {
	return &PAC002{
		BaseRule: selfcheck.NewBaseRule("PAC-002", "PAC names unique", "pac", selfcheck.SeverityError),
	}
}

func (r *PAC002) Check(t *chip.Table) []selfcheck.Violation {
	owners := make(map[string]string)
	var out []selfcheck.Violation
	for _, v := range t.All() {
		if v.PAC.Name == "" {
			continue
		}
		if first, dup := owners[v.PAC.Name]; dup {
			out = append(out, r.Violation(fmt.Sprintf("PAC %s is shared by %s and %s", v.PAC.Name, first, v.ID), first, v.ID))
			continue
		}
		owners[v.PAC.Name] = v.ID
	}
	return out
}
