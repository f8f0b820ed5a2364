package jsonextract

import (
	"errors"
	"fmt"
)

// Application error codes.
const (
	// EUNSUPPORTED means the file does not declare a JSON media type.
	EUNSUPPORTED = "unsupported"
	// EREAD means the file bytes could not be read or decoded.
	EREAD = "read"
	// EPARSE means the text is not a single valid JSON document.
	EPARSE = "parse"
	// ENOMATCH means the document parsed but nothing matched.
	ENOMATCH = "nomatch"

	EINVALID  = "invalid"
	ENOTFOUND = "not_found"
	EINTERNAL = "internal"
)

// Error represents an application-specific error. Message is safe to show
// to the user.
type Error struct {
	Code    string
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// Errorf is a helper function to return an Error with a given code and
// formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// ErrorCode unwraps an application error and returns its code.
// Non-application errors always return EINTERNAL.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage unwraps an application error and returns its message.
// Non-application errors always return "Internal error.".
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return "Internal error."
}
