package capability

import (
	"errors"
	"fmt"
)

// ErrUnknownTag is returned when a token does not name a capability tag.
var ErrUnknownTag = errors.New("unknown capability tag")

// Tag is a single capability tag. The set of tags is closed.
type Tag uint8

const (
	// GenerationA marks SAM3A parts.
	GenerationA Tag = iota
	// GenerationB marks SAM3X parts.
	GenerationB
	// PackageClass1 marks 100-pin parts (PIOA-PIOB).
	PackageClass1
	// PackageClass2 marks parts with at least the 144-pin PIOA-PIOD layout.
	PackageClass2
	// RuntimePresence marks builds that include the startup/runtime shim.
	RuntimePresence

	numTags
)

// Axis is the classification axis a tag belongs to.
type Axis uint8

const (
	AxisGeneration Axis = iota
	AxisPackage
	AxisRuntime

	// AxisUnknown is reported for tags outside the closed enumeration.
	AxisUnknown
)

// String returns the axis name.
func (a Axis) String() string {
	switch a {
	case AxisGeneration:
		return "generation"
	case AxisPackage:
		return "package"
	case AxisRuntime:
		return "runtime"
	default:
		return fmt.Sprintf("unknown(%d)", a)
	}
}

type tagInfo struct {
	name  string
	token string
	axis  Axis
}

var tagTable = [numTags]tagInfo{
	GenerationA:     {"GenerationA", "sam3a", AxisGeneration},
	GenerationB:     {"GenerationB", "sam3x", AxisGeneration},
	PackageClass1:   {"PackageClass1", "sam3_c", AxisPackage},
	PackageClass2:   {"PackageClass2", "sam3_e", AxisPackage},
	RuntimePresence: {"RuntimePresence", "rt", AxisRuntime},
}

// All returns every tag in declaration order.
func All() []Tag {
	tags := make([]Tag, 0, numTags)
	for t := Tag(0); t < numTags; t++ {
		tags = append(tags, t)
	}
	return tags
}

// Valid reports whether t is a member of the closed tag set.
func (t Tag) Valid() bool {
	return t < numTags
}

// String returns the tag name (e.g. "GenerationB").
func (t Tag) String() string {
	if !t.Valid() {
		return fmt.Sprintf("Tag(%d)", t)
	}
	return tagTable[t].name
}

// Token returns the feature token, which is also the Go build tag.
func (t Tag) Token() string {
	if !t.Valid() {
		return ""
	}
	return tagTable[t].token
}

// Axis returns the axis the tag classifies, or AxisUnknown for an invalid
// tag.
func (t Tag) Axis() Axis {
	if !t.Valid() {
		return AxisUnknown
	}
	return tagTable[t].axis
}

// ParseTag maps a feature token or tag name to its tag.
func ParseTag(s string) (Tag, error) {
	for t := Tag(0); t < numTags; t++ {
		if tagTable[t].token == s || tagTable[t].name == s {
			return t, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownTag, s)
}

// MarshalText implements encoding.TextMarshaler using the feature token.
func (t Tag) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownTag, uint8(t))
	}
	return []byte(t.Token()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Tag) UnmarshalText(text []byte) error {
	parsed, err := ParseTag(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
