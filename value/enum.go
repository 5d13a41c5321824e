package value

import "rigz/codec"

// EnumValue is a named variant with an optional payload, e.g. the result of
// constructing `Some(1)` / `Color::Red`. Grounded on original_source's
// crates/core/src/value/mod.rs enum-variant representation; the teacher has
// no analogue, so only the Value interface shape (ToBytes/Equal/Compare)
// follows the teacher's other composite types.
type EnumValue struct {
	EnumName string
	Variant  string
	Index    int64
	Payload  Value
}

func NewEnum(enumName, variant string, index int64, payload Value) EnumValue {
	if payload == nil {
		payload = None
	}
	return EnumValue{EnumName: enumName, Variant: variant, Index: index, Payload: payload}
}

func (e EnumValue) Type() TypeCode { return TypeEnum }

func (e EnumValue) String() string {
	if e.Payload == nil || e.Payload == Value(None) {
		return e.EnumName + "::" + e.Variant
	}
	return e.EnumName + "::" + e.Variant + "(" + e.Payload.String() + ")"
}

func (e EnumValue) Truthy() bool { return true }

func (e EnumValue) ToBytes() []byte {
	out := []byte{discEnum}
	out = codec.PutString(out, e.EnumName)
	out = codec.PutString(out, e.Variant)
	out = codec.PutInt64(out, e.Index)
	payload := e.Payload
	if payload == nil {
		payload = None
	}
	return append(out, payload.ToBytes()...)
}

func (e EnumValue) Equal(other Value) bool {
	o, ok := other.(EnumValue)
	if !ok {
		return false
	}
	if e.EnumName != o.EnumName || e.Variant != o.Variant {
		return false
	}
	ep, op := e.Payload, o.Payload
	if ep == nil {
		ep = None
	}
	if op == nil {
		op = None
	}
	return ep.Equal(op)
}

func (e EnumValue) Compare(other Value) int {
	o, ok := other.(EnumValue)
	if !ok {
		return compareByShape(e, other)
	}
	if e.EnumName != o.EnumName {
		if e.EnumName < o.EnumName {
			return -1
		}
		return 1
	}
	return compareInt64(e.Index, o.Index)
}
