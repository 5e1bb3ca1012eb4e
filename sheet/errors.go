/*
errors.go - Structural errors for table readers

PURPOSE:
  All wrong-file-for-this-step errors in one place. A structural error
  means the table handed in does not have the shape this step needs
  (missing day headers, missing name column, too few columns) and the
  run must stop: working around a mis-picked file would fill the wrong
  cells with real payroll numbers.

  Anything that is NOT structural (a name that won't match, an odd
  hours value) is accumulated into the run's result collections and
  never raised as an error.

USAGE:
  Callers distinguish structural failures from plumbing failures with

    if sheet.IsStructural(err) { ... tell the user which file is wrong ... }

SEE ALSO:
  - reconcile/: raises DateNotFound and missing-column errors
  - payroll/, loans/: raise column errors over their table shapes
*/
package sheet

import (
	"errors"
	"fmt"
	"strings"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrNoDayHeaders is returned when a timesheet has no recognizable
	// day-header cells at all.
	ErrNoDayHeaders = errors.New("no day headers found")

	// ErrDateNotFound is returned when the requested report date is not
	// among the timesheet's day headers.
	ErrDateNotFound = errors.New("date not present in timesheet")

	// ErrMissingColumn is returned when a required column cannot be
	// located by its header.
	ErrMissingColumn = errors.New("required column missing")

	// ErrMissingLabel is returned when an anchor label the layout hangs
	// off ("Week Of :", "Employee Name:") is nowhere in the sheet.
	ErrMissingLabel = errors.New("anchor label missing")

	// ErrTooFewColumns is returned when a fixed-layout sheet is narrower
	// than its layout requires.
	ErrTooFewColumns = errors.New("too few columns")
)

// =============================================================================
// STRUCTURED ERRORS - Carry the actionable detail
// =============================================================================

// DateNotFoundError reports which dates the sheet does carry, so the
// operator can see at a glance that the wrong week's file was picked.
type DateNotFoundError struct {
	Sheet     string
	Requested string
	Found     []string
}

func (e *DateNotFoundError) Error() string {
	return fmt.Sprintf("the date %s does not exist in %s; found day headers for: %s",
		e.Requested, e.Sheet, strings.Join(e.Found, ", "))
}

func (e *DateNotFoundError) Unwrap() error { return ErrDateNotFound }

// NoDayHeadersError reports a sheet with no parseable day headers.
type NoDayHeadersError struct {
	Sheet string
}

func (e *NoDayHeadersError) Error() string {
	return fmt.Sprintf("no day headers found in %s: not a weekly timesheet?", e.Sheet)
}

func (e *NoDayHeadersError) Unwrap() error { return ErrNoDayHeaders }

// MissingColumnError names the column that could not be located.
type MissingColumnError struct {
	Sheet  string
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("%s: could not locate a %q column", e.Sheet, e.Column)
}

func (e *MissingColumnError) Unwrap() error { return ErrMissingColumn }

// MissingLabelError names the anchor label that could not be found.
type MissingLabelError struct {
	Sheet string
	Label string
}

func (e *MissingLabelError) Error() string {
	return fmt.Sprintf("%s: could not find a %q row", e.Sheet, e.Label)
}

func (e *MissingLabelError) Unwrap() error { return ErrMissingLabel }

// ColumnCountError reports a sheet narrower than its fixed layout.
type ColumnCountError struct {
	Sheet string
	Got   int
	Want  int
}

func (e *ColumnCountError) Error() string {
	return fmt.Sprintf("%s: layout needs at least %d columns, sheet has %d",
		e.Sheet, e.Want, e.Got)
}

func (e *ColumnCountError) Unwrap() error { return ErrTooFewColumns }

// =============================================================================
// CLASSIFICATION
// =============================================================================

// IsStructural reports whether err is a fatal wrong-file error, as
// opposed to an accumulated anomaly or an I/O failure.
func IsStructural(err error) bool {
	return errors.Is(err, ErrNoDayHeaders) ||
		errors.Is(err, ErrDateNotFound) ||
		errors.Is(err, ErrMissingColumn) ||
		errors.Is(err, ErrMissingLabel) ||
		errors.Is(err, ErrTooFewColumns)
}
