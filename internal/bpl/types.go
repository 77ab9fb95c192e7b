package bpl

import "fmt"

// Type is an IR type.
type Type interface {
	String() string
}

// BasicType is a built-in or declared sort.
type BasicType string

func (t BasicType) String() string { return string(t) }

// Built-in types. Ref is the declared sort for object references.
const (
	Int  BasicType = "int"
	Bool BasicType = "bool"
	Real BasicType = "real"
	Ref  BasicType = "Ref"
)

// MapType is a one-dimensional map, used for instance field storage.
type MapType struct {
	Key   Type
	Value Type
}

func (m *MapType) String() string {
	return fmt.Sprintf("[%s]%s", m.Key, m.Value)
}

// TypesEqual reports structural equality of two types.
func TypesEqual(a, b Type) bool {
	switch at := a.(type) {
	case BasicType:
		bt, ok := b.(BasicType)
		return ok && at == bt
	case *MapType:
		bt, ok := b.(*MapType)
		return ok && TypesEqual(at.Key, bt.Key) && TypesEqual(at.Value, bt.Value)
	default:
		return a == nil && b == nil
	}
}
