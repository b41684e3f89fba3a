package errors

import (
	"errors"
	"fmt"
)

const (
	// SuccessCode is returned by Info for a nil error.
	SuccessCode = 0

	// All unclassified errors that do not provide a code are clubbed under
	// an internal error code and a generic message instead of the detailed
	// error string.
	internalCode uint32 = 1
	internalLog         = "internal error"
)

// Info returns the code and the log message that can be returned to a
// client. Any error that does not wrap a registered root error is reported
// with code 1.
// When not running in a debug mode all messages of errors that do not
// provide a code are replaced with generic "internal error".
func Info(err error, debug bool) (uint32, string) {
	if isNilErr(err) {
		return SuccessCode, ""
	}

	if c := code(err); c != internalCode {
		if debug {
			return c, fmt.Sprintf("%+v", err)
		}
		return c, err.Error()
	}

	if debug {
		return internalCode, fmt.Sprintf("%+v", err)
	}
	return internalCode, internalLog
}

type coder interface {
	Code() uint32
}

// code tests if given error contains a code and returns the value of it if
// available. This function is testing for the causer interface as well and
// unwraps the error.
func code(err error) uint32 {
	if isNilErr(err) {
		return SuccessCode
	}

	for {
		if c, ok := err.(coder); ok {
			return c.Code()
		}

		if c, ok := err.(causer); ok {
			err = c.Cause()
		} else {
			return internalCode
		}
	}
}

// Redact replaces all errors that do not wrap a registered root error with a
// generic internal error instance. Panics are always redacted.
//
// This is a no-operation function when running in debug mode.
func Redact(err error, debug bool) error {
	if debug {
		return err
	}
	if ErrPanic.Is(err) {
		return errors.New(internalLog)
	}
	if code(err) == internalCode {
		return errors.New(internalLog)
	}
	return err
}
