// Package errors defines the coded errors returned by lsr packages.
//
// Every failure that callers may want to branch on carries a [Code]. The
// code survives wrapping, so a scene loader can wrap a config error and
// callers can still ask for either code:
//
//	err := errors.Wrap(errors.ErrCodeInvalidScene, cause, "scene %s", path)
//	errors.Is(err, errors.ErrCodeInvalidScene) // true
//	errors.GetCode(err)                        // INVALID_SCENE
//
// [ErrCodeInvalidRoot] and [ErrCodeInvalidConfig] are configuration
// errors: the effect reports them before it touches any element. See
// [IsConfigurationError].
package errors

import (
	"errors"
	"fmt"
)

// Code is a machine-readable error category.
type Code string

const (
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"
	ErrCodeInvalidRoot   Code = "INVALID_ROOT"
	ErrCodeInvalidScene  Code = "INVALID_SCENE"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidEvent  Code = "INVALID_EVENT"

	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error is an error with a code, a message and an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return string(e.Code) + ": " + e.Message
	}
	return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
}

func (e *Error) Unwrap() error { return e.Cause }

// New returns an Error with a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap returns an Error with a formatted message around cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// Is reports whether any *Error in err's chain has code.
func Is(err error, code Code) bool {
	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			return false
		}
		if e.Code == code {
			return true
		}
		err = e.Cause
	}
	return false
}

// GetCode returns the code of the outermost *Error in err's chain, or ""
// when there is none.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns err without code prefixes: the messages of the
// chain joined by ": ", ending with the first uncoded cause.
func UserMessage(err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return err.Error()
	}
	if e.Cause == nil {
		return e.Message
	}
	return e.Message + ": " + UserMessage(e.Cause)
}

// IsConfigurationError reports whether err aborted effect construction
// because of the root selector or the configuration values.
func IsConfigurationError(err error) bool {
	return Is(err, ErrCodeInvalidRoot) || Is(err, ErrCodeInvalidConfig)
}
