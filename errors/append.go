package errors

import (
	"reflect"
	"strings"
)

// Append clubs together all provided errors. Nil values are ignored.
//
// The result is nil when no error was given, the error itself when exactly
// one was given and a multi error otherwise. A multi error reports the code
// of its first member.
func Append(errs ...error) error {
	var res multiErr
	for _, e := range errs {
		if isNilErr(e) {
			continue
		}
		if m, ok := e.(multiErr); ok {
			res = append(res, m...)
		} else {
			res = append(res, e)
		}
	}
	switch len(res) {
	case 0:
		return nil
	case 1:
		return res[0]
	default:
		return res
	}
}

type multiErr []error

func (m multiErr) Error() string {
	msgs := make([]string, len(m))
	for i, e := range m {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "; ")
}

// Unpack implements unpacker interface.
func (m multiErr) Unpack() []error {
	return m
}

// Code returns the code of the first error.
func (m multiErr) Code() uint32 {
	return code(m[0])
}

// unpacker is implemented by errors that represent a collection of errors.
type unpacker interface {
	Unpack() []error
}

func isNilErr(err error) bool {
	if err == nil {
		return true
	}
	if val := reflect.ValueOf(err); val.Kind() == reflect.Ptr {
		return val.IsNil()
	}
	return false
}
