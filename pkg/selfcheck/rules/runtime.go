package rules

import (
	"fmt"

	"github.com/atsam3x/sam3hal/pkg/capability"
	"github.com/atsam3x/sam3hal/pkg/chip"
	"github.com/atsam3x/sam3hal/pkg/selfcheck"
)

// RegisterRuntimeRules registers the runtime presence rules.
func RegisterRuntimeRules(registry *selfcheck.RuleRegistry) {
	registry.Register(NewRT001())
	registry.Register(NewRT002())
}

// RT001 checks that RuntimePresence is never an intrinsic tag. It is added
// by the resolver when a board asks for it.
type RT001 struct {
	*selfcheck.BaseRule
}

func NewRT001() *RT001 {
	return &RT001{
		BaseRule: selfcheck.NewBaseRule("RT-001", "Runtime is not intrinsic", "runtime", selfcheck.SeverityError),
	}
}

func (r *RT001) Check(t *chip.Table) []selfcheck.Violation {
	var out []selfcheck.Violation
	for _, v := range t.All() {
		if v.Tags.Contains(capability.RuntimePresence) {
			viol := r.Violation(fmt.Sprintf("%s declares the rt tag intrinsically", v.ID), v.ID)
			viol.Suggestion = "drop rt from the tags and set pac.runtime instead"
			out = append(out, viol)
		}
	}
	return out
}

// RT002 checks that a PAC offering a runtime names its entry point.
type RT002 struct {
	*selfcheck.BaseRule
}

func NewRT002() *RT002 {
	return &RT002{
		BaseRule: selfcheck.NewBaseRule("RT-002", "Runtime entry point named", "runtime", selfcheck.SeverityWarning),
	}
}

func (r *RT002) Check(t *chip.Table) []selfcheck.Violation {
	var out []selfcheck.Violation
	for _, v := range t.All() {
		if v.PAC.Runtime && v.PAC.RuntimeEntry == "" {
			out = append(out, r.Violation(fmt.Sprintf("%s: PAC %s offers a runtime without an entry symbol", v.ID, v.PAC.Name), v.ID))
		}
	}
	return out
}
