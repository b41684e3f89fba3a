package orm

import (
	"github.com/iov-one/vault/errors"
)

// orm reserves 100~109 error codes

// ErrInvalidIndex is returned when an index specified is invalid.
var ErrInvalidIndex = errors.Register(100, "invalid index")

// ErrUniqueConstraint is returned when a unique index already holds a
// value for another key.
var ErrUniqueConstraint = errors.Register(101, "duplicate unique index")
