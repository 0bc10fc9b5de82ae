package board

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/atsam3x/sam3hal/pkg/capability"
	"github.com/atsam3x/sam3hal/pkg/facade"
	"github.com/atsam3x/sam3hal/pkg/resolve"
)

// Profile describes a board.
type Profile struct {
	Name    string
	Variant string

	// Runtime requests the runtime shim unless Features is FeaturesMinimal.
	Runtime bool

	Panic PanicStrategy

	// Freestanding marks a target without a host OS. A profile that
	// activates the runtime shim is freestanding regardless.
	Freestanding bool

	Features FeaturePolicy

	// Modules are facade modules the board cannot do without.
	Modules []string

	// Tags are extra feature tokens passed to the Go build alongside the
	// activation. They may not spell a capability tag, a board tag or a
	// part number.
	Tags []string
}

// Selection returns the variant selection the profile makes.
func (p Profile) Selection() resolve.Selection {
	return resolve.Selection{
		Variant:      p.Variant,
		WantsRuntime: p.Runtime && p.Features != FeaturesMinimal,
	}
}

// IsFreestanding reports whether the built binary runs without a host OS:
// the profile says so, or it activates the runtime shim.
func (p Profile) IsFreestanding() bool {
	return p.Freestanding || p.Selection().WantsRuntime
}

// Validate checks the profile without resolving it.
func (p Profile) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidProfile)
	}
	if p.Variant == "" {
		return fmt.Errorf("%w: board %s: missing variant", ErrInvalidProfile, p.Name)
	}
	if p.IsFreestanding() && p.Panic == PanicNone {
		return &NoPanicStrategyError{Board: p.Name}
	}
	for _, tag := range p.Tags {
		if err := checkExtraTag(tag); err != nil {
			return fmt.Errorf("%w: board %s: %v", ErrInvalidProfile, p.Name, err)
		}
	}
	return nil
}

func checkExtraTag(tag string) error {
	if tag == "" {
		return errors.New("empty feature token")
	}
	for _, r := range tag {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '_' || r == '.') {
			return fmt.Errorf("feature token %q is not a valid build tag", tag)
		}
	}
	if _, err := capability.ParseTag(tag); err == nil {
		return fmt.Errorf("feature token %q is a capability tag", tag)
	}
	if strings.HasPrefix(tag, "board_") {
		return fmt.Errorf("feature token %q is a board tag", tag)
	}
	return nil
}

// Board is a built profile: one resolved activation and its facade.
type Board struct {
	profile    Profile
	activation resolve.Activation
	facade     facade.Facade
}

// Build validates the profile, resolves its selection with r and composes
// the facade. Failures are recorded as rejection events on r.
func (p Profile) Build(r *resolve.Resolver) (*Board, error) {
	r = r.ForBoard(p.Name)
	b, err := p.build(r)
	if err != nil {
		if !isResolverError(err) {
			r.Reject(p.Variant, err)
		}
		return nil, err
	}
	return b, nil
}

func (p Profile) build(r *resolve.Resolver) (*Board, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	for _, tag := range p.Tags {
		if _, err := r.Table().Describe(tag); err == nil {
			return nil, fmt.Errorf("%w: board %s: feature token %q is a part number", ErrInvalidProfile, p.Name, tag)
		}
	}

	act, err := r.Resolve(p.Selection())
	if err != nil {
		return nil, fmt.Errorf("board %s: %w", p.Name, err)
	}

	f, err := facade.Compose(act)
	if err != nil {
		return nil, fmt.Errorf("board %s: %w", p.Name, err)
	}
	for _, m := range p.Modules {
		if !f.Has(m) {
			return nil, fmt.Errorf("%w: board %s needs %s, not available on %s",
				ErrMissingModule, p.Name, m, act.Variant.ID)
		}
	}

	p.Modules = slices.Clone(p.Modules)
	p.Tags = slices.Clone(p.Tags)
	return &Board{profile: p, activation: act, facade: f}, nil
}

// Resolve already logged these.
func isResolverError(err error) bool {
	switch resolve.Kind(err) {
	case "UnknownVariant", "RuntimeUnsupported":
		return true
	}
	return false
}

// Name returns the board name.
func (b *Board) Name() string { return b.profile.Name }

// Profile returns the profile the board was built from.
func (b *Board) Profile() Profile { return b.profile }

// Activation returns the board's single activated capability set.
func (b *Board) Activation() resolve.Activation { return b.activation }

// Facade returns the composed module surface.
func (b *Board) Facade() facade.Facade { return b.facade }

// PanicStrategy returns the board's panic strategy.
func (b *Board) PanicStrategy() PanicStrategy { return b.profile.Panic }

// BuildTags returns the build tags of the board's activation.
func (b *Board) BuildTags() []string { return b.activation.BuildTags() }

// Tag returns the build tag that selects the board, e.g. "board_arduino_due".
func (b *Board) Tag() string { return Tag(b.profile.Name) }

// GoFlags returns the -tags flag selecting the board, its activation and
// its extra feature tokens.
func (b *Board) GoFlags() string {
	tags := append([]string{b.Tag()}, b.BuildTags()...)
	return "-tags=" + strings.Join(append(tags, b.profile.Tags...), ",")
}

// Tag converts a board name to its build tag. Characters that are not
// valid in a build tag become underscores.
func Tag(name string) string {
	return "board_" + strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		default:
			return '_'
		}
	}, name)
}
