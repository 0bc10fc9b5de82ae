package chip

import (
	"fmt"

	"github.com/atsam3x/sam3hal/pkg/capability"
)

// Table is an immutable, ordered descriptor table. It is safe for
// concurrent use.
type Table struct {
	variants []Variant
	byID     map[string]int
}

// NewTable builds a table from the given variants, in order.
// Identifiers must be non-empty and unique. Semantic checks (tag axes, PIO
// layout) are the job of package selfcheck.
func NewTable(variants ...Variant) (*Table, error) {
	t := &Table{
		variants: make([]Variant, 0, len(variants)),
		byID:     make(map[string]int, len(variants)),
	}
	for i, v := range variants {
		if v.ID == "" {
			return nil, fmt.Errorf("%w: entry %d has no identifier", ErrInvalidTable, i)
		}
		if _, dup := t.byID[v.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate identifier %q", ErrInvalidTable, v.ID)
		}
		t.byID[v.ID] = len(t.variants)
		t.variants = append(t.variants, v.clone())
	}
	return t, nil
}

// MustTable is like NewTable but panics on error. It is meant for tables
// defined at package initialization.
func MustTable(variants ...Variant) *Table {
	t, err := NewTable(variants...)
	if err != nil {
		panic(err)
	}
	return t
}

// Describe returns the variant with the given identifier.
func (t *Table) Describe(id string) (Variant, error) {
	i, ok := t.byID[id]
	if !ok {
		return Variant{}, unknownVariant(t, id)
	}
	return t.variants[i].clone(), nil
}

// All returns every variant in table order.
func (t *Table) All() []Variant {
	out := make([]Variant, len(t.variants))
	for i, v := range t.variants {
		out[i] = v.clone()
	}
	return out
}

// IDs returns the identifiers in table order.
func (t *Table) IDs() []string {
	ids := make([]string, len(t.variants))
	for i, v := range t.variants {
		ids[i] = v.ID
	}
	return ids
}

// Len returns the number of variants.
func (t *Table) Len() int {
	return len(t.variants)
}

// TagsFor returns the intrinsic capability tags of a part.
func (t *Table) TagsFor(id string) (capability.Set, error) {
	v, err := t.Describe(id)
	if err != nil {
		return 0, err
	}
	return v.Tags, nil
}

// Default returns the shipped table of SAM3A/SAM3X parts.
func Default() *Table {
	return defaultTable
}

// Describe looks up a part in the default table.
func Describe(id string) (Variant, error) {
	return defaultTable.Describe(id)
}

// All returns every part of the default table.
func All() []Variant {
	return defaultTable.All()
}

// TagsFor returns the intrinsic tags of a part in the default table.
func TagsFor(id string) (capability.Set, error) {
	return defaultTable.TagsFor(id)
}
