package errors

import (
	stdlib "errors"
	"fmt"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestCause(t *testing.T) {
	std := stdlib.New("this is a stdlib error")

	cases := map[string]struct {
		err  error
		root error
	}{
		"Errors are self-causing": {
			err:  ErrNotFound,
			root: ErrNotFound,
		},
		"Wrap reveals root cause": {
			err:  Wrap(ErrNotFound, "foo"),
			root: ErrNotFound,
		},
		"Cause works for stderr as root": {
			err:  Wrap(std, "Some helpful text"),
			root: std,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if got := errors.Cause(tc.err); got != tc.root {
				t.Fatal("unexpected result")
			}
		})
	}
}

func TestErrorIs(t *testing.T) {
	cases := map[string]struct {
		a      *Error
		b      error
		wantIs bool
	}{
		"instance of the same error": {
			a:      ErrNotFound,
			b:      ErrNotFound,
			wantIs: true,
		},
		"two different coded errors": {
			a:      ErrNotFound,
			b:      ErrModel,
			wantIs: false,
		},
		"successful comparison to a wrapped error": {
			a:      ErrNotFound,
			b:      Wrap(ErrNotFound, "gone"),
			wantIs: true,
		},
		"unsuccessful comparison to a wrapped error": {
			a:      ErrNotFound,
			b:      Wrap(ErrOverflow, "too big"),
			wantIs: false,
		},
		"not equal to stdlib error": {
			a:      ErrNotFound,
			b:      fmt.Errorf("stdlib error"),
			wantIs: false,
		},
		"field error unwraps": {
			a:      ErrAmount,
			b:      Field("Amount", ErrAmount, "negative"),
			wantIs: true,
		},
		"multi error contains": {
			a:      ErrEmpty,
			b:      Append(ErrInput, Wrap(ErrEmpty, "name")),
			wantIs: true,
		},
		"multi error does not contain": {
			a:      ErrState,
			b:      Append(ErrInput, ErrEmpty),
			wantIs: false,
		},
		"nil is nil": {
			a:      nil,
			b:      nil,
			wantIs: true,
		},
		"nil is not an error": {
			a:      nil,
			b:      ErrInput,
			wantIs: false,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if got := tc.a.Is(tc.b); got != tc.wantIs {
				t.Fatalf("unexpected result - got:%v want: %v", got, tc.wantIs)
			}
		})
	}
}

func TestRegisterDuplicatedCodePanics(t *testing.T) {
	assert.Panics(t, func() {
		Register(ErrNotFound.Code(), "my not found")
	})
}

func TestRecover(t *testing.T) {
	run := func() (err error) {
		defer Recover(&err)
		panic("boom")
	}
	err := run()
	assert.True(t, ErrPanic.Is(err))
	assert.Contains(t, err.Error(), "boom")
}

func TestAppend(t *testing.T) {
	assert.Nil(t, Append())
	assert.Nil(t, Append(nil, nil))
	assert.Equal(t, ErrInput, Append(nil, ErrInput, nil))

	err := Append(ErrInput, Append(ErrEmpty, ErrAmount))
	assert.Equal(t, "invalid input; value is empty; invalid amount", err.Error())
	code, _ := Info(err, false)
	assert.Equal(t, ErrInput.Code(), code)
}

func TestFieldErrors(t *testing.T) {
	err := Append(
		Field("Owners", ErrInput, "too short"),
		Field("Amount", ErrAmount, "negative"),
		Field("Owners", ErrDuplicate, "twice"),
	)
	assert.Len(t, FieldErrors(err, "Owners"), 2)
	assert.Len(t, FieldErrors(err, "Amount"), 1)
	assert.Len(t, FieldErrors(err, "Memo"), 0)
	assert.Nil(t, FieldErrors(nil, "Owners"))

	wrapped := Wrap(AppendField(nil, FieldPath("Owners", 1), ErrInput), "wallet")
	assert.Len(t, FieldErrors(wrapped, "Owners.1"), 1)
	assert.Nil(t, AppendField(nil, "Owners", nil))
}

func TestFieldPath(t *testing.T) {
	assert.Equal(t, "Owners", FieldPath("Owners"))
	assert.Equal(t, "Owners.2", FieldPath("Owners", 2))
	assert.Equal(t, "Funds.Ticker", FieldPath("Funds", "Ticker"))
	assert.Equal(t, "Wallets.0.Owners.3", FieldPath("Wallets", 0, "Owners", 3))
}

func TestInfo(t *testing.T) {
	cases := map[string]struct {
		err      error
		debug    bool
		wantCode uint32
		wantLog  string
	}{
		"nil error": {
			err:      nil,
			wantCode: SuccessCode,
			wantLog:  "",
		},
		"registered error": {
			err:      Wrap(ErrNotFound, "wallet"),
			wantCode: ErrNotFound.Code(),
			wantLog:  "wallet: not found",
		},
		"stdlib error is redacted": {
			err:      fmt.Errorf("secret path /etc"),
			wantCode: 1,
			wantLog:  "internal error",
		},
		"stdlib error in debug mode": {
			err:      fmt.Errorf("secret path /etc"),
			debug:    true,
			wantCode: 1,
			wantLog:  "secret path /etc",
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			code, log := Info(tc.err, tc.debug)
			assert.Equal(t, tc.wantCode, code)
			assert.Equal(t, tc.wantLog, log)
		})
	}
}

func TestRedact(t *testing.T) {
	assert.Equal(t, "internal error", Redact(Wrap(ErrPanic, "oops"), false).Error())
	assert.Equal(t, "internal error", Redact(fmt.Errorf("io failure"), false).Error())
	assert.True(t, ErrNotFound.Is(Redact(Wrap(ErrNotFound, "x"), false)))
	assert.True(t, ErrPanic.Is(Redact(Wrap(ErrPanic, "oops"), true)))
}
