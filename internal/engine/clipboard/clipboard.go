// Package clipboard serializes list items for copy and paste.
//
// A payload is a CBOR map holding a type name and the items. Paste refuses
// payloads whose type name differs from the one requested, so items copied
// from one kind of list cannot be pasted into another.
package clipboard

import (
	"errors"
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

var (
	// ErrTypeMismatch is returned when a payload holds a different item type.
	ErrTypeMismatch = errors.New("clipboard: type mismatch")

	// ErrEmpty is returned when there is nothing to copy or paste.
	ErrEmpty = errors.New("clipboard: no items")
)

// encMode produces deterministic output so equal selections copy to equal
// bytes.
var encMode cbor.EncMode

var decMode cbor.DecMode

func init() {
	var err error

	encOpts := cbor.EncOptions{
		Sort:          cbor.SortCanonical,
		IndefLength:   cbor.IndefLengthForbidden,
		NilContainers: cbor.NilContainerAsNull,
	}
	encMode, err = encOpts.EncMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create clipboard CBOR encoder mode: %v", err))
	}

	decOpts := cbor.DecOptions{
		DupMapKey:   cbor.DupMapKeyEnforcedAPF,
		IndefLength: cbor.IndefLengthForbidden,
	}
	decMode, err = decOpts.DecMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create clipboard CBOR decoder mode: %v", err))
	}
}

type payload[T any] struct {
	Type  string `cbor:"1,keyasint"`
	Items []T    `cbor:"2,keyasint"`
}

// Copy encodes items under typeName.
func Copy[T any](typeName string, items []T) ([]byte, error) {
	if len(items) == 0 {
		return nil, ErrEmpty
	}
	data, err := encMode.Marshal(payload[T]{Type: typeName, Items: items})
	if err != nil {
		return nil, fmt.Errorf("clipboard: encode %s: %w", typeName, err)
	}
	return data, nil
}

// Paste decodes items copied under typeName.
func Paste[T any](data []byte, typeName string) ([]T, error) {
	var p payload[T]
	if err := decMode.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("clipboard: decode: %w", err)
	}
	if p.Type != typeName {
		return nil, fmt.Errorf("%w: have %q, want %q", ErrTypeMismatch, p.Type, typeName)
	}
	if len(p.Items) == 0 {
		return nil, ErrEmpty
	}
	return p.Items, nil
}

// TypeOf returns the type name of T, used when no explicit name is given.
func TypeOf[T any]() string {
	var zero T
	return fmt.Sprintf("%T", zero)
}
