package orm

import (
	"testing"

	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/x"
	"github.com/stretchr/testify/assert"
)

func TestSimpleObjValidate(t *testing.T) {
	cases := map[string]struct {
		obj       x.Validater
		wantErr   *errors.Error
		wantField string
	}{
		"valid": {
			obj: NewSimpleObj([]byte("a"), &counter{Count: 1}),
		},
		"missing key": {
			obj:       NewSimpleObj(nil, &counter{Count: 1}),
			wantErr:   errors.ErrEmpty,
			wantField: "Key",
		},
		"missing value": {
			obj:       NewSimpleObj([]byte("a"), nil),
			wantErr:   errors.ErrEmpty,
			wantField: "Value",
		},
		"invalid value": {
			obj:       NewSimpleObj([]byte("a"), &counter{Count: -1}),
			wantErr:   errors.ErrInput,
			wantField: "Count",
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			err := tc.obj.Validate()
			if tc.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.True(t, tc.wantErr.Is(err), "%+v", err)
			assert.Len(t, errors.FieldErrors(err, tc.wantField), 1)
		})
	}
}
