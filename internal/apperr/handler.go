package apperr

import (
	"errors"
	"fmt"
	"io/fs"
)

const (
	ExitOK      = 0
	ExitIssues  = 1
	ExitFatal   = 2
	ExitUnknown = 3
)

// ExitError carries a process exit code through cobra's error return.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// ExitCode maps an error returned by a command to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	var ee *ExitError
	if errors.As(err, &ee) {
		return ee.Code
	}

	var de *DataFormatError
	if errors.As(err, &de) {
		return ExitFatal
	}

	var se *SubmissionFormatError
	if errors.As(err, &se) {
		return ExitFatal
	}

	var pe *fs.PathError
	if errors.As(err, &pe) {
		return ExitFatal
	}

	return ExitUnknown
}
