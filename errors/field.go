package errors

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Field attaches err to the named field of a validated object. Nil errors
// stay nil, so validations can be chained with AppendField without checks.
// Name fields the Go way; build nested and indexed names with FieldPath.
func Field(fieldName string, err error, description string, args ...interface{}) error {
	if isNilErr(err) {
		return nil
	}
	if stackTrace(err) == nil {
		err = errors.WithStack(err)
	}
	if len(args) > 0 {
		description = fmt.Sprintf(description, args...)
	}
	return &fieldError{parent: err, field: fieldName, desc: description}
}

// AppendField adds a field error to errs. Nothing is added when fieldErr is
// nil.
func AppendField(errs error, fieldName string, fieldErr error) error {
	return Append(errs, Field(fieldName, fieldErr, ""))
}

// FieldPath joins a field name with nested names or element indexes, for
// example FieldPath("Owners", 2) is "Owners.2".
func FieldPath(name string, elems ...interface{}) string {
	parts := []string{name}
	for _, e := range elems {
		switch e := e.(type) {
		case int:
			parts = append(parts, strconv.Itoa(e))
		default:
			parts = append(parts, fmt.Sprint(e))
		}
	}
	return strings.Join(parts, ".")
}

type fieldError struct {
	parent error
	field  string
	desc   string
}

func (err *fieldError) Error() string {
	if err.desc == "" {
		return fmt.Sprintf("field %q: %s", err.field, err.parent)
	}
	return fmt.Sprintf("field %q: %s: %s", err.field, err.desc, err.parent)
}

func (err *fieldError) Cause() error {
	return err.parent
}

func (err *fieldError) Field() string {
	return err.field
}

type fielder interface {
	Field() string
}

// FieldErrors collects the errors attached to given field. Collections
// built with Append are searched element by element.
func FieldErrors(err error, fieldName string) []error {
	var res []error
	for !isNilErr(err) {
		if f, ok := err.(fielder); ok && f.Field() == fieldName {
			return append(res, err)
		}
		switch e := err.(type) {
		case unpacker:
			for _, child := range e.Unpack() {
				res = append(res, FieldErrors(child, fieldName)...)
			}
			return res
		case causer:
			err = e.Cause()
		default:
			return res
		}
	}
	return res
}
