package core

import (
	"fmt"
	"strings"
)

// FormatError reports a source file whose header block cannot be located,
// typically because the "# Fields:" marker is missing or the file is
// truncated before the header line.
type FormatError struct {
	Path   string
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Reason)
}

// DriftError reports declared columns that are missing from the header
// actually found in a source file. How it is handled is a policy decision
// of the caller, see DriftPolicy.
type DriftError struct {
	Table   string
	Missing []string
	Actual  []string
}

func (e *DriftError) Error() string {
	return fmt.Sprintf("table %s: columns [%s] not found in file header [%s]",
		e.Table, strings.Join(e.Missing, ", "), strings.Join(e.Actual, ", "))
}
