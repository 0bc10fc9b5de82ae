package resolve

import (
	"time"

	"github.com/google/uuid"

	"github.com/atsam3x/sam3hal/pkg/capability"
	"github.com/atsam3x/sam3hal/pkg/chip"
	"github.com/atsam3x/sam3hal/pkg/log"
	"github.com/atsam3x/sam3hal/pkg/selfcheck"
	"github.com/atsam3x/sam3hal/pkg/selfcheck/rules"
)

// Resolver resolves selections against one variant table.
// It is safe for concurrent use.
type Resolver struct {
	table    *chip.Table
	logger   log.Logger
	registry *selfcheck.RuleRegistry
	buildID  string
	board    string
	now      func() time.Time
}

// Config configures a Resolver.
type Config struct {
	// Logger receives resolution events.
	// Set to nil to disable event logging.
	Logger log.Logger

	// Registry holds the self-check rules applied to the table.
	// nil means rules.NewDefaultRegistry().
	Registry *selfcheck.RuleRegistry

	// BuildID is attached to every event.
	// Empty means a random UUID.
	BuildID string
}

// New creates a Resolver over table. The table is self-checked first; a
// table with error violations is rejected.
func New(table *chip.Table, cfg Config) (*Resolver, error) {
	r := &Resolver{
		table:    table,
		logger:   cfg.Logger,
		registry: cfg.Registry,
		buildID:  cfg.BuildID,
		now:      time.Now,
	}
	if r.logger == nil {
		r.logger = log.NoopLogger{}
	}
	if r.registry == nil {
		r.registry = rules.NewDefaultRegistry()
	}
	if r.buildID == "" {
		r.buildID = uuid.NewString()
	}

	result := selfcheck.Validate(table, r.registry)
	for _, group := range [][]selfcheck.Violation{result.Errors, result.Warnings} {
		for _, v := range group {
			r.logger.Log(log.Event{
				Timestamp: r.now(),
				BuildID:   r.buildID,
				Category:  log.CategoryCheck,
				Check: &log.CheckEvent{
					RuleID:   v.RuleID,
					Severity: v.Severity.String(),
					Message:  v.Message,
					Variants: v.Variants,
				},
			})
		}
	}
	if err := result.Err(); err != nil {
		return nil, err
	}
	return r, nil
}

// MustNew is like New but panics if the table fails its self-check.
func MustNew(table *chip.Table, cfg Config) *Resolver {
	r, err := New(table, cfg)
	if err != nil {
		panic(err)
	}
	return r
}

// The shipped table is self-checked when the package initializes, so a
// table that fails its rules panics before anything resolves against it.
var defaultResolver = MustNew(chip.Default(), Config{})

// Default returns the resolver over the shipped table.
func Default() *Resolver {
	return defaultResolver
}

// Resolve resolves a selection against the shipped table.
func Resolve(sel Selection) (Activation, error) {
	return Default().Resolve(sel)
}

// Table returns the resolver's table.
func (r *Resolver) Table() *chip.Table {
	return r.table
}

// BuildID returns the build identifier attached to events.
func (r *Resolver) BuildID() string {
	return r.buildID
}

// ForBoard returns a copy of the resolver whose events carry the board name.
func (r *Resolver) ForBoard(name string) *Resolver {
	c := *r
	c.board = name
	return &c
}

// Resolve activates the tags of one selection.
func (r *Resolver) Resolve(sel Selection) (Activation, error) {
	r.log(sel.Variant, func(e *log.Event) {
		e.Category = log.CategorySelection
		e.Selection = &log.SelectionEvent{WantsRuntime: sel.WantsRuntime}
	})

	act, err := r.resolve(sel)
	if err != nil {
		r.reject(sel.Variant, err)
		return Activation{}, err
	}

	r.log(sel.Variant, func(e *log.Event) {
		e.Category = log.CategoryActivation
		e.Activation = &log.ActivationEvent{
			Tags:        act.Tags.BuildTags(),
			PAC:         act.Variant.PAC.Name,
			RuntimeShim: act.RuntimeShim,
			Fingerprint: act.Fingerprint(),
		}
	})
	return act, nil
}

func (r *Resolver) resolve(sel Selection) (Activation, error) {
	v, err := r.table.Describe(sel.Variant)
	if err != nil {
		return Activation{}, err
	}

	tags := v.Tags
	if sel.WantsRuntime {
		if !v.SupportsRuntime() {
			return Activation{}, &RuntimeUnsupportedError{Variant: v.ID, PAC: v.PAC.Name}
		}
		tags = tags.With(capability.RuntimePresence)
	}

	return Activation{
		Variant:     v,
		Tags:        tags,
		RuntimeShim: sel.WantsRuntime,
	}, nil
}

// ResolveBuild resolves every selection made by the compile units of one
// build. Repeating a selection is harmless; two different selections
// (another part, or the same part with and without the runtime) fail with
// ErrConflictingVariants.
func (r *Resolver) ResolveBuild(sels ...Selection) (Activation, error) {
	if len(sels) == 0 {
		r.reject("", ErrNoSelection)
		return Activation{}, ErrNoSelection
	}
	first := sels[0]
	for _, s := range sels[1:] {
		if s != first {
			err := &ConflictingVariantsError{Selections: []Selection{first, s}}
			r.reject(s.Variant, err)
			return Activation{}, err
		}
	}
	return r.Resolve(first)
}

// Reject records a rejection raised outside the resolver, for example by a
// board profile that cannot be built.
func (r *Resolver) Reject(variant string, err error) {
	r.reject(variant, err)
}

func (r *Resolver) reject(variant string, err error) {
	r.log(variant, func(e *log.Event) {
		e.Category = log.CategoryRejection
		e.Rejection = &log.RejectionEvent{Kind: Kind(err), Message: err.Error()}
	})
}

func (r *Resolver) log(variant string, fill func(*log.Event)) {
	e := log.Event{
		Timestamp: r.now(),
		BuildID:   r.buildID,
		Board:     r.board,
		Variant:   variant,
	}
	fill(&e)
	r.logger.Log(e)
}
