package log

import "time"

// Event is a single resolution event.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred.
	Timestamp time.Time `cbor:"1,keyasint"`

	// BuildID identifies the build the event belongs to (UUID).
	BuildID string `cbor:"2,keyasint,omitempty"`

	// Category classifies the event type.
	Category Category `cbor:"3,keyasint"`

	// Board is the board profile name, if resolution ran for a board.
	Board string `cbor:"4,keyasint,omitempty"`

	// Variant is the part identifier involved.
	Variant string `cbor:"5,keyasint,omitempty"`

	// Type-specific payload (one of these will be set).
	Selection  *SelectionEvent  `cbor:"10,keyasint,omitempty"`
	Activation *ActivationEvent `cbor:"11,keyasint,omitempty"`
	Rejection  *RejectionEvent  `cbor:"12,keyasint,omitempty"`
	Check      *CheckEvent      `cbor:"13,keyasint,omitempty"`
}

// Category classifies events.
type Category uint8

const (
	// CategorySelection records a variant selection entering the resolver.
	CategorySelection Category = 0
	// CategoryActivation records a successful activation.
	CategoryActivation Category = 1
	// CategoryRejection records a failed resolution or board build.
	CategoryRejection Category = 2
	// CategoryCheck records a self-check violation.
	CategoryCheck Category = 3
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategorySelection:
		return "SELECTION"
	case CategoryActivation:
		return "ACTIVATION"
	case CategoryRejection:
		return "REJECTION"
	case CategoryCheck:
		return "CHECK"
	default:
		return "UNKNOWN"
	}
}

// ParseCategory parses a category name as printed by String.
func ParseCategory(s string) (Category, bool) {
	for c := CategorySelection; c <= CategoryCheck; c++ {
		if c.String() == s {
			return c, true
		}
	}
	return 0, false
}

// SelectionEvent contains the selection handed to the resolver.
type SelectionEvent struct {
	WantsRuntime bool `cbor:"1,keyasint"`
}

// ActivationEvent contains the activated capability set.
type ActivationEvent struct {
	// Tags are the activated feature tokens.
	Tags []string `cbor:"1,keyasint"`

	// PAC is the peripheral-access package included in the build.
	PAC string `cbor:"2,keyasint"`

	// RuntimeShim is true when the runtime entry point is included.
	RuntimeShim bool `cbor:"3,keyasint,omitempty"`

	// Fingerprint is the hex activation fingerprint.
	Fingerprint string `cbor:"4,keyasint,omitempty"`
}

// RejectionEvent describes why a resolution failed.
type RejectionEvent struct {
	// Kind is the error kind, e.g. "UnknownVariant".
	Kind string `cbor:"1,keyasint"`

	// Message is the full error message.
	Message string `cbor:"2,keyasint"`
}

// CheckEvent describes a self-check violation.
type CheckEvent struct {
	RuleID   string   `cbor:"1,keyasint"`
	Severity string   `cbor:"2,keyasint"`
	Message  string   `cbor:"3,keyasint"`
	Variants []string `cbor:"4,keyasint,omitempty"`
}
