// Package version checks the schema version declared by the YAML documents
// sam3hal reads (variant tables and board profiles).
package version

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Current is the schema version written into documents.
const Current = "1.0"

const (
	currentMajor = 1
	currentMinor = 0
)

// ErrUnsupported is returned for documents this library cannot read.
var ErrUnsupported = errors.New("unsupported schema version")

// CheckDocument accepts a declared "major.minor" version with the current
// major and a minor no newer than Current. An empty declaration means
// Current.
func CheckDocument(declared string) error {
	if declared == "" {
		return nil
	}
	majorStr, minorStr, ok := strings.Cut(declared, ".")
	major, errMajor := strconv.ParseUint(majorStr, 10, 16)
	minor, errMinor := strconv.ParseUint(minorStr, 10, 16)
	if !ok || errMajor != nil || errMinor != nil {
		return fmt.Errorf("%w: %q is not major.minor", ErrUnsupported, declared)
	}
	if major != currentMajor || minor > currentMinor {
		return fmt.Errorf("%w: %s (this library reads %s)", ErrUnsupported, declared, Current)
	}
	return nil
}
