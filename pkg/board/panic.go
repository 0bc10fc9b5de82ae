package board

import "fmt"

// PanicStrategy is what a freestanding binary does when it panics.
type PanicStrategy uint8

const (
	// PanicNone means no strategy was chosen. It is not valid for
	// freestanding targets.
	PanicNone PanicStrategy = iota
	PanicHalt
	PanicAbort
	PanicReset
	PanicSemihosting
	PanicITM
)

var panicNames = [...]string{
	PanicNone:        "none",
	PanicHalt:        "halt",
	PanicAbort:       "abort",
	PanicReset:       "reset",
	PanicSemihosting: "semihosting",
	PanicITM:         "itm",
}

func (p PanicStrategy) String() string {
	if int(p) < len(panicNames) {
		return panicNames[p]
	}
	return fmt.Sprintf("PanicStrategy(%d)", p)
}

// ParsePanicStrategy parses a strategy name. The empty string is PanicNone.
func ParsePanicStrategy(s string) (PanicStrategy, error) {
	if s == "" {
		return PanicNone, nil
	}
	for i, name := range panicNames {
		if name == s {
			return PanicStrategy(i), nil
		}
	}
	return PanicNone, fmt.Errorf("unknown panic strategy %q", s)
}

// FeaturePolicy selects which implicit requests a profile keeps.
type FeaturePolicy uint8

const (
	// FeaturesDefault keeps the profile's runtime request.
	FeaturesDefault FeaturePolicy = iota
	// FeaturesMinimal drops it; the build gets the bare PAC.
	FeaturesMinimal
)

func (f FeaturePolicy) String() string {
	switch f {
	case FeaturesDefault:
		return "default"
	case FeaturesMinimal:
		return "minimal"
	default:
		return fmt.Sprintf("FeaturePolicy(%d)", f)
	}
}

// ParseFeaturePolicy parses a policy name. The empty string is FeaturesDefault.
func ParseFeaturePolicy(s string) (FeaturePolicy, error) {
	switch s {
	case "", "default":
		return FeaturesDefault, nil
	case "minimal":
		return FeaturesMinimal, nil
	default:
		return FeaturesDefault, fmt.Errorf("unknown feature policy %q", s)
	}
}
