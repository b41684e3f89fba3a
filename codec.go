package vault

import (
	"reflect"

	"github.com/iov-one/vault/errors"
	amino "github.com/tendermint/go-amino"
)

// Codec serializes all persisted models, messages and transactions. Every
// message type must be registered with RegisterMsg before it can travel
// inside of a transaction.
var Codec = amino.NewCodec()

func init() {
	Codec.RegisterInterface((*Msg)(nil), nil)
}

// RegisterMsg registers a message implementation under given name. The name
// must be unique and must never change, as it is part of the binary
// representation.
func RegisterMsg(msg Msg, name string) {
	Codec.RegisterConcrete(msg, name, nil)
}

// Marshal serializes given object into its binary representation.
func Marshal(o interface{}) ([]byte, error) {
	bz, err := Codec.MarshalBinaryBare(o)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrType, "marshal %T: %s", o, err)
	}
	// A stored nil value reads as a missing one.
	if bz == nil {
		bz = []byte{}
	}
	return bz, nil
}

// Unmarshal deserializes binary data into given pointer. An empty input
// resets the destination to its zero value, because the binary format
// encodes a zero value as no bytes at all.
func Unmarshal(bz []byte, ptr interface{}) error {
	if len(bz) == 0 {
		v := reflect.ValueOf(ptr)
		if v.Kind() != reflect.Ptr || v.IsNil() {
			return errors.Wrap(errors.ErrHuman, "unmarshal destination must be a non nil pointer")
		}
		v.Elem().Set(reflect.Zero(v.Elem().Type()))
		return nil
	}
	if err := Codec.UnmarshalBinaryBare(bz, ptr); err != nil {
		return errors.Wrapf(errors.ErrType, "unmarshal %T: %s", ptr, err)
	}
	return nil
}
