package value

import (
	"strings"

	"rigz/codec"
)

// StringValue is a UTF-8 string. Grounded on MongooseMoo-barn/types/str.go.
type StringValue string

func NewString(s string) StringValue { return StringValue(s) }

func (s StringValue) Type() TypeCode { return TypeString }
func (s StringValue) String() string { return string(s) }
func (s StringValue) Truthy() bool   { return len(s) > 0 }

func (s StringValue) ToBytes() []byte {
	disc, _ := TypeString.primitiveDiscriminant()
	out := []byte{discPrimitive, disc}
	return codec.PutString(out, string(s))
}

func (s StringValue) Equal(other Value) bool {
	switch o := other.(type) {
	case StringValue:
		return s == o
	case IntValue:
		n, err := parseNumber(string(s))
		return err == nil && n.Equal(o)
	case FloatValue:
		n, err := parseNumber(string(s))
		return err == nil && n.Equal(o)
	default:
		return false
	}
}

func (s StringValue) Compare(other Value) int {
	if o, ok := other.(StringValue); ok {
		return strings.Compare(string(s), string(o))
	}
	return compareByShape(s, other)
}
