package sigs

import "github.com/iov-one/vault/errors"

// ErrInvalidSequence is returned when a signature carries a sequence that
// does not match the stored one.
var ErrInvalidSequence = errors.Register(120, "invalid sequence number")
