package apperr

import "fmt"

// DataFormatError reports malformed query, judgment, candidate or corpus input.
type DataFormatError struct {
	File    string
	Line    int
	Message string
	Err     error
}

func (e *DataFormatError) Error() string {
	return formatMessage(e.File, e.Line, e.Message, e.Err)
}

func (e *DataFormatError) Unwrap() error {
	return e.Err
}

func NewDataFormat(file string, line int, msg string) *DataFormatError {
	return &DataFormatError{File: file, Line: line, Message: msg}
}

func NewDataFormatWrap(file string, line int, msg string, err error) *DataFormatError {
	return &DataFormatError{File: file, Line: line, Message: msg, Err: err}
}

// SubmissionFormatError reports a submission file that cannot be parsed.
type SubmissionFormatError struct {
	File    string
	Line    int
	Message string
	Err     error
}

func (e *SubmissionFormatError) Error() string {
	return formatMessage(e.File, e.Line, e.Message, e.Err)
}

func (e *SubmissionFormatError) Unwrap() error {
	return e.Err
}

func NewSubmissionFormat(file string, line int, msg string) *SubmissionFormatError {
	return &SubmissionFormatError{File: file, Line: line, Message: msg}
}

func NewSubmissionFormatWrap(file string, line int, msg string, err error) *SubmissionFormatError {
	return &SubmissionFormatError{File: file, Line: line, Message: msg, Err: err}
}

// formatMessage renders "file:line: message: cause"; a zero line is omitted.
func formatMessage(file string, line int, msg string, err error) string {
	prefix := file
	if line > 0 {
		prefix = fmt.Sprintf("%s:%d", file, line)
	}
	s := msg
	if prefix != "" {
		s = prefix + ": " + msg
	}
	if err != nil {
		s += ": " + err.Error()
	}
	return s
}
