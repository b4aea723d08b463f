package core

// header.go locates the column header of a CTD export and reconciles it
// against a table's declared columns.
//
// CTD files carry their header inside the leading comment block:
//
//	# Fields:
//	# ChemicalName	ChemicalID	CasRN	...
//
// The marker line matches `#\s*Fields\s*:$`; the next comment line that is
// neither empty nor a bare "#" holds the tab-separated column names.

import (
	"bufio"
	"io"
	"regexp"
	"strings"
)

var fieldsMarker = regexp.MustCompile(`#\s*Fields\s*:$`)

// maxHeaderLine bounds the scanner buffer while searching for the header.
const maxHeaderLine = 4 * 1024 * 1024

// HeaderColumns returns the column names of a CTD export file,
// transparently decompressing gzip sources. A missing Fields marker is a
// *FormatError.
func HeaderColumns(path string) ([]string, error) {
	rc, err := OpenSource(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return scanHeader(rc, path)
}

// scanHeader reads lines until the Fields marker, then returns the
// tab-separated names from the following non-empty comment line.
func scanHeader(r io.Reader, path string) ([]string, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxHeaderLine)

	seenMarker := false
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		switch {
		case !seenMarker:
			if fieldsMarker.MatchString(line) {
				seenMarker = true
			}
		case line != "" && line != "#":
			line = strings.TrimPrefix(line, "#")
			parts := strings.Split(line, "\t")
			cols := make([]string, len(parts))
			for i, p := range parts {
				cols[i] = strings.TrimSpace(p)
			}
			return cols, nil
		}
	}
	if err := sc.Err(); err != nil {
		return nil, &FormatError{Path: path, Reason: "scanning for header: " + err.Error()}
	}
	if seenMarker {
		return nil, &FormatError{Path: path, Reason: "Fields marker present but no header line follows"}
	}
	return nil, &FormatError{Path: path, Reason: "no Fields marker found"}
}

// ReadPlan is the outcome of reconciling declared columns with a file's
// actual header: which file indices to read, in file order, and the
// destination column name for each.
type ReadPlan struct {
	Indices     []int
	FileColumns []string
	DBColumns   []string
}

// Reconcile computes the read plan for a file whose header is actual.
// Columns absent from the rename map are dropped. If expected is not a
// subset of actual, the intersection plan is still returned together with
// a *DriftError so that callers can apply their drift policy.
func Reconcile(expected []string, rename map[string]string, actual []string) (ReadPlan, error) {
	present := make(map[string]bool, len(actual))
	for _, col := range actual {
		present[col] = true
	}

	var plan ReadPlan
	for i, col := range actual {
		if db, ok := rename[col]; ok {
			plan.Indices = append(plan.Indices, i)
			plan.FileColumns = append(plan.FileColumns, col)
			plan.DBColumns = append(plan.DBColumns, db)
		}
	}

	var missing []string
	for _, col := range expected {
		if !present[col] {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return plan, &DriftError{Missing: missing, Actual: actual}
	}
	return plan, nil
}
