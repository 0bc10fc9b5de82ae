package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckDocument(t *testing.T) {
	for _, declared := range []string{"", Current, "1.00"} {
		assert.NoError(t, CheckDocument(declared), declared)
	}
	for _, declared := range []string{"1", "1.1", "2.0", "0.9", "one", "1.x", "1.0.0", "-1.0", ".0"} {
		assert.ErrorIs(t, CheckDocument(declared), ErrUnsupported, declared)
	}
}
