package assert

import (
	"fmt"
	"testing"

	"github.com/iov-one/vault/errors"
)

type recorder struct {
	testing.TB
	failed bool
}

func (r *recorder) Helper() {}

func (r *recorder) Fatal(args ...interface{}) { r.failed = true }

func (r *recorder) Fatalf(format string, args ...interface{}) { r.failed = true }

func TestIsNil(t *testing.T) {
	var nilErr *errors.Error
	cases := map[string]struct {
		value interface{}
		want  bool
	}{
		"nil":             {value: nil, want: true},
		"typed nil":       {value: nilErr, want: true},
		"nil slice":       {value: []byte(nil), want: true},
		"string":          {value: "", want: false},
		"non nil pointer": {value: errors.ErrEmpty, want: false},
		"integer":         {value: 0, want: false},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			if got := isNil(tc.value); got != tc.want {
				t.Fatalf("want %v, got %v", tc.want, got)
			}
		})
	}
}

func TestFieldError(t *testing.T) {
	err := errors.Append(
		errors.Field("Owners", errors.ErrDuplicate, "owner 2"),
		errors.Field("Amount", errors.ErrAmount, "negative"),
	)

	r := &recorder{}
	FieldError(r, err, "Owners", errors.ErrDuplicate)
	if r.failed {
		t.Fatal("matching field error was not accepted")
	}

	r = &recorder{}
	FieldError(r, err, "Memo", nil)
	if r.failed {
		t.Fatal("missing field error was not accepted")
	}

	r = &recorder{}
	FieldError(r, err, "Amount", errors.ErrEmpty)
	if !r.failed {
		t.Fatal("wrong field error was accepted")
	}
}

func TestIsErr(t *testing.T) {
	r := &recorder{}
	IsErr(r, errors.ErrNotFound, errors.Wrap(errors.ErrNotFound, "wallet"))
	if r.failed {
		t.Fatal("wrapped error did not match")
	}

	r = &recorder{}
	IsErr(r, errors.ErrNotFound, fmt.Errorf("not found"))
	if !r.failed {
		t.Fatal("stdlib error must not match")
	}
}
