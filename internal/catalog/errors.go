package catalog

import "fmt"

// Code is one kind from the pictDB error taxonomy. Every operation that can
// fail returns an error wrapping exactly one Code, so callers can branch on
// it with errors.As without string-matching messages.
type Code int

const (
	CodeInvalidArgument Code = iota
	CodeNotEnoughArguments
	CodeInvalidCommand
	CodeFileNotFound
	CodeIO
	CodeOutOfMemory
	CodeFullDatabase
	CodeDuplicateID
	CodeCodec
	CodeInvalidPictID
	CodeMaxFilesOutOfRange
	CodeResolutionsOutOfRange
)

// messages holds the fixed, user-facing text for each Code, mirroring the
// original format's ERROR_MESSAGES table.
var messages = map[Code]string{
	CodeInvalidArgument:       "invalid argument",
	CodeNotEnoughArguments:    "not enough arguments",
	CodeInvalidCommand:        "invalid command",
	CodeFileNotFound:          "picture not found in the database",
	CodeIO:                    "I/O error",
	CodeOutOfMemory:           "out of memory",
	CodeFullDatabase:          "database is full",
	CodeDuplicateID:           "picture id already exists",
	CodeCodec:                 "codec error",
	CodeInvalidPictID:         "invalid picture id",
	CodeMaxFilesOutOfRange:    "max_files is out of range",
	CodeResolutionsOutOfRange: "resolution bound is out of range",
}

// Message returns the fixed user-facing text for a Code.
func (c Code) Message() string {
	if m, ok := messages[c]; ok {
		return m
	}
	return "unknown error"
}

func (c Code) String() string { return c.Message() }

// Error wraps an underlying cause (possibly nil) with its taxonomy Code.
type Error struct {
	Code Code
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Code.Message()
	}
	return fmt.Sprintf("%s: %v", e.Code.Message(), e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// newErr builds an *Error, wrapping cause (which may be nil).
func newErr(code Code, cause error) *Error {
	return &Error{Code: code, Err: cause}
}

// CodeOf extracts the Code from err, defaulting to CodeIO for unrecognised
// errors (e.g. raw os errors that escaped wrapping).
func CodeOf(err error) Code {
	var asErr *Error
	if as, ok := err.(*Error); ok {
		asErr = as
		return asErr.Code
	}
	return CodeIO
}
