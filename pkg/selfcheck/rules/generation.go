package rules

import (
	"fmt"

	"github.com/atsam3x/sam3hal/pkg/capability"
	"github.com/atsam3x/sam3hal/pkg/chip"
	"github.com/atsam3x/sam3hal/pkg/selfcheck"
)

// RegisterGenerationRules registers the die generation rules.
func RegisterGenerationRules(registry *selfcheck.RuleRegistry) {
	registry.Register(NewGEN001())
	registry.Register(NewGEN002())
}

// GEN001 checks that every variant carries a generation tag.
type GEN001 struct {
	*selfcheck.BaseRule
}

func NewGEN001() *GEN001 {
	return &GEN001{
		BaseRule: selfcheck.NewBaseRule("GEN-001", "Generation tag required", "generation", selfcheck.SeverityError),
	}
}

func (r *GEN001) Check(t *chip.Table) []selfcheck.Violation {
	var out []selfcheck.Violation
	for _, v := range t.All() {
		if v.Tags.Has(capability.AxisGeneration) {
			continue
		}
		viol := r.Violation(fmt.Sprintf("%s carries no generation tag", v.ID), v.ID)
		viol.Suggestion = "tag the part sam3a or sam3x"
		out = append(out, viol)
	}
	return out
}

// GEN002 checks that no variant carries both generation tags.
type GEN002 struct {
	*selfcheck.BaseRule
}

func NewGEN002() *GEN002 {
	return &GEN002{
		BaseRule: selfcheck.NewBaseRule("GEN-002", "Generation tags are exclusive", "generation", selfcheck.SeverityError),
	}
}

func (r *GEN002) Check(t *chip.Table) []selfcheck.Violation {
	var out []selfcheck.Violation
	for _, v := range t.All() {
		if gens := v.Tags.OnAxis(capability.AxisGeneration); len(gens) > 1 {
			out = append(out, r.Violation(fmt.Sprintf("%s carries %d generation tags %v", v.ID, len(gens), gens), v.ID))
		}
	}
	return out
}
