/*
Package codec serializes models, messages and transactions with the
gogo/protobuf table encoder.

Schemas are declared with protobuf struct tags, as protoc-gen-gogo would
generate them from cmd/escrowd/app/codec.proto. A type that implements
Marshal itself cannot be passed to proto.Marshal, because the encoder
would call back into that method. Such a type declares a wire twin
without methods and implements proto.Message on it:

	type escrowWire Escrow

	func (m *escrowWire) Reset()         { *m = escrowWire{} }
	func (m *escrowWire) String() string { return proto.CompactTextString(m) }
	func (*escrowWire) ProtoMessage()    {}

	func (e *Escrow) Marshal() ([]byte, error) {
		return codec.Marshal((*escrowWire)(e))
	}

Default values are omitted on the wire and unknown fields are dropped on
decoding, so a schema can grow without breaking stored data.
*/
package codec

import (
	"github.com/campuspay/ledger/errors"
	"github.com/gogo/protobuf/proto"
)

// Marshal returns the protobuf encoding of m.
func Marshal(m proto.Message) ([]byte, error) {
	raw, err := proto.Marshal(m)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	return raw, nil
}

// Unmarshal resets m and decodes raw into it.
func Unmarshal(raw []byte, m proto.Message) error {
	if err := proto.Unmarshal(raw, m); err != nil {
		return errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	return nil
}
