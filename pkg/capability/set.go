package capability

import (
	"fmt"
	"strings"
)

// Set is an immutable set of capability tags.
// The zero value is the empty set. Sets are comparable with ==.
type Set uint8

// NewSet returns a set containing the given tags.
func NewSet(tags ...Tag) Set {
	var s Set
	for _, t := range tags {
		s = s.With(t)
	}
	return s
}

// ParseSet parses feature tokens (or tag names) into a set.
func ParseSet(tokens ...string) (Set, error) {
	var s Set
	for _, tok := range tokens {
		t, err := ParseTag(strings.TrimSpace(tok))
		if err != nil {
			return 0, err
		}
		s = s.With(t)
	}
	return s, nil
}

// With returns s with t added. Invalid tags are ignored.
func (s Set) With(t Tag) Set {
	if !t.Valid() {
		return s
	}
	return s | 1<<t
}

// Without returns s with t removed.
func (s Set) Without(t Tag) Set {
	if !t.Valid() {
		return s
	}
	return s &^ (1 << t)
}

// Contains reports whether t is in s.
func (s Set) Contains(t Tag) bool {
	return t.Valid() && s&(1<<t) != 0
}

// Union returns the union of s and other.
func (s Set) Union(other Set) Set {
	return s | other
}

// IsSupersetOf reports whether every tag of other is in s.
func (s Set) IsSupersetOf(other Set) bool {
	return s&other == other
}

// IsEmpty reports whether s has no tags.
func (s Set) IsEmpty() bool {
	return s == 0
}

// Len returns the number of tags in s.
func (s Set) Len() int {
	n := 0
	for t := Tag(0); t < numTags; t++ {
		if s.Contains(t) {
			n++
		}
	}
	return n
}

// Tags returns the tags in declaration order.
func (s Set) Tags() []Tag {
	var tags []Tag
	for t := Tag(0); t < numTags; t++ {
		if s.Contains(t) {
			tags = append(tags, t)
		}
	}
	return tags
}

// OnAxis returns the tags of s on the given axis.
func (s Set) OnAxis(a Axis) []Tag {
	var tags []Tag
	for _, t := range s.Tags() {
		if t.Axis() == a {
			tags = append(tags, t)
		}
	}
	return tags
}

// Has reports whether s holds at least one tag on the given axis.
func (s Set) Has(a Axis) bool {
	return len(s.OnAxis(a)) > 0
}

// BuildTags returns the feature tokens in declaration order.
func (s Set) BuildTags() []string {
	tags := s.Tags()
	out := make([]string, len(tags))
	for i, t := range tags {
		out[i] = t.Token()
	}
	return out
}

// String returns the tag names, e.g. "{GenerationB, PackageClass2}".
func (s Set) String() string {
	tags := s.Tags()
	names := make([]string, len(tags))
	for i, t := range tags {
		names[i] = t.String()
	}
	return "{" + strings.Join(names, ", ") + "}"
}

// MarshalYAML encodes the set as a list of feature tokens.
func (s Set) MarshalYAML() (any, error) {
	return s.BuildTags(), nil
}

// UnmarshalYAML decodes a list of feature tokens.
func (s *Set) UnmarshalYAML(unmarshal func(any) error) error {
	var tokens []string
	if err := unmarshal(&tokens); err != nil {
		return fmt.Errorf("capability set: %w", err)
	}
	parsed, err := ParseSet(tokens...)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
