package particlewav

import (
	"errors"
	"fmt"
)

// Code identifies a processing failure category. The zero value means
// success; failures are negative so a Code can be handed straight to the
// process exit status.
type Code int16

const (
	CodeSuccess                 Code = 0
	CodeOutOfMemory             Code = -1
	CodeFileNotFound            Code = -2
	CodeInvalidWritePermissions Code = -3
	CodeNoDiskSpace             Code = -4
	CodeInvalidFileType         Code = -5
	CodeInvalidCall             Code = -6
	CodeInvalidData             Code = -7
	CodeInternalError           Code = -8
	CodeFeatureNotSupported     Code = -9
	CodePartialFailure          Code = -10
	CodeBadVersion              Code = -11
	CodeFileOverflow            Code = -12
	CodeFileWriteError          Code = -13
	CodeBadFormat               Code = -14
	CodeUnsupportedSize         Code = -15
)

// String returns the printable message for the code.
func (c Code) String() string {
	switch c {
	case CodeSuccess:
		return "Success."
	case CodeOutOfMemory:
		return "Out of memory."
	case CodeFileNotFound:
		return "File not found."
	case CodeInvalidWritePermissions:
		return "Invalid write permissions."
	case CodeNoDiskSpace:
		return "Not enough disk space for file write operation."
	case CodeInvalidFileType:
		return "File exists but is in an unexpected format."
	case CodeInvalidCall:
		return "Invalid call."
	case CodeInvalidData:
		return "Invalid data."
	case CodeInternalError:
		return "Internal error."
	case CodeFeatureNotSupported:
		return "Feature not yet supported."
	case CodePartialFailure:
		return "One or more tasks failed."
	case CodeBadVersion:
		return "Invalid version."
	case CodeFileOverflow:
		return "File overflow."
	case CodeFileWriteError:
		return "File write error."
	case CodeBadFormat:
		return "Bad data format."
	case CodeUnsupportedSize:
		return "A value is too large for the type required by a given file format."
	default:
		return fmt.Sprintf("Unknown error (%d).", int16(c))
	}
}

// Error is a failure with an associated exit code. All package sentinel
// errors are of this type so that a wrapped chain maps back to a Code.
type Error struct {
	code Code
	text string
}

func newError(code Code, text string) *Error {
	return &Error{code: code, text: text}
}

// Error implements the error interface.
func (e *Error) Error() string { return e.text }

// Code returns the exit code associated with the error.
func (e *Error) Code() Code { return e.code }

var (
	// ErrTruncated is returned when a read extends past the end of the
	// buffer or declared chunk payload.
	ErrTruncated = newError(CodeBadFormat, "unexpected end of data")
	// ErrBadFormat is returned when bytes are not laid out the way the
	// container requires.
	ErrBadFormat = newError(CodeBadFormat, "bad data format")
	// ErrUnsupportedVersion is returned for recognized chunks whose
	// version cannot be decoded (e.g. non-2.3 ID3 tags).
	ErrUnsupportedVersion = newError(CodeBadVersion, "unsupported version")
	// ErrInvalidData is returned when a declared size cannot possibly be
	// satisfied by the file image.
	ErrInvalidData = newError(CodeInvalidData, "invalid data")
	// ErrInvalidCall is returned when an operation is invoked with
	// arguments that can never succeed.
	ErrInvalidCall = newError(CodeInvalidCall, "invalid call")
	// ErrUnsupportedSize is returned when a value does not fit the field
	// width the file format requires.
	ErrUnsupportedSize = newError(CodeUnsupportedSize, "value too large for file format field")
	// ErrFeatureNotSupported is returned for recognized sample layouts
	// that have no decoder (compressed formats, unusual bit depths).
	ErrFeatureNotSupported = newError(CodeFeatureNotSupported, "feature not supported")
)

// CodeOf maps an error chain to its exit code. A nil error is success;
// errors from outside the package map to CodeInternalError.
func CodeOf(err error) Code {
	if err == nil {
		return CodeSuccess
	}

	var e *Error
	if errors.As(err, &e) {
		return e.code
	}

	return CodeInternalError
}
