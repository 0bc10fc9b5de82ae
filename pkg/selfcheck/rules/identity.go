package rules

import (
	"fmt"
	"regexp"

	"github.com/atsam3x/sam3hal/pkg/capability"
	"github.com/atsam3x/sam3hal/pkg/chip"
	"github.com/atsam3x/sam3hal/pkg/selfcheck"
)

// RegisterIdentityRules registers the part identifier rules.
func RegisterIdentityRules(registry *selfcheck.RuleRegistry) {
	registry.Register(NewID001())
}

var buildTagToken = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// ID001 checks that identifiers are usable as Go build tags and do not
// shadow a capability token.
type ID001 struct {
	*selfcheck.BaseRule
}

func NewID001() *ID001 {
	return &ID001{
		BaseRule: selfcheck.NewBaseRule("ID-001", "Identifier is a build tag", "identity", selfcheck.SeverityError),
	}
}

func (r *ID001) Check(t *chip.Table) []selfcheck.Violation {
	var out []selfcheck.Violation
	for _, v := range t.All() {
		if !buildTagToken.MatchString(v.ID) {
			viol := r.Violation(fmt.Sprintf("identifier %q is not a lowercase build tag", v.ID), v.ID)
			viol.Suggestion = "use lowercase letters, digits and underscores"
			out = append(out, viol)
			continue
		}
		if _, err := capability.ParseTag(v.ID); err == nil {
			out = append(out, r.Violation(fmt.Sprintf("identifier %q collides with a capability token", v.ID), v.ID))
		}
	}
	return out
}
