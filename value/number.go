package value

import (
	"math"
	"strconv"

	"rigz/codec"
)

// IntValue and FloatValue together form the spec's "Number" sum (spec.md
// §3): arithmetic promotes to float if either side is float, else stays
// integer. Grounded on MongooseMoo-barn/types/int.go and types/float.go.
type IntValue int64

func NewInt(v int64) IntValue { return IntValue(v) }

func (i IntValue) Type() TypeCode    { return TypeInt }
func (i IntValue) String() string    { return strconv.FormatInt(int64(i), 10) }
func (i IntValue) Truthy() bool      { return i != 0 }
func (i IntValue) AsInt() int64      { return int64(i) }
func (i IntValue) AsFloat() float64  { return float64(i) }
func (i IntValue) IsFloat() bool     { return false }

func (i IntValue) ToBytes() []byte {
	disc, _ := TypeInt.primitiveDiscriminant()
	out := []byte{discPrimitive, disc}
	return codec.PutInt64(out, int64(i))
}

func (i IntValue) Equal(other Value) bool {
	switch o := other.(type) {
	case IntValue:
		return i == o
	case FloatValue:
		return float64(i) == float64(o)
	case BoolValue:
		return o.Equal(i)
	case NoneValue:
		return i == 0
	case StringValue:
		n, err := parseNumber(string(o))
		return err == nil && n.Equal(i)
	default:
		return false
	}
}

func (i IntValue) Compare(other Value) int {
	switch o := other.(type) {
	case IntValue:
		return compareInt64(int64(i), int64(o))
	case FloatValue:
		return compareFloat64(float64(i), float64(o))
	default:
		return compareByShape(i, other)
	}
}

type FloatValue float64

func NewFloat(v float64) FloatValue { return FloatValue(v) }

func (f FloatValue) Type() TypeCode    { return TypeFloat }
func (f FloatValue) String() string    { return strconv.FormatFloat(float64(f), 'g', -1, 64) }
func (f FloatValue) Truthy() bool      { return f != 0 }
func (f FloatValue) AsInt() int64      { return int64(f) }
func (f FloatValue) AsFloat() float64  { return float64(f) }
func (f FloatValue) IsFloat() bool     { return true }

func (f FloatValue) ToBytes() []byte {
	disc, _ := TypeFloat.primitiveDiscriminant()
	out := []byte{discPrimitive, disc}
	bits := math.Float64bits(float64(f))
	return codec.PutUint64(out, bits)
}

func (f FloatValue) Equal(other Value) bool {
	switch o := other.(type) {
	case FloatValue:
		return f == o
	case IntValue:
		return float64(f) == float64(o)
	case NoneValue:
		return f == 0
	case StringValue:
		n, err := parseNumber(string(o))
		return err == nil && n.Equal(f)
	default:
		return false
	}
}

func (f FloatValue) Compare(other Value) int {
	switch o := other.(type) {
	case FloatValue:
		return compareFloat64(float64(f), float64(o))
	case IntValue:
		return compareFloat64(float64(f), float64(o))
	default:
		return compareByShape(f, other)
	}
}

func compareInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareFloat64(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// parseNumber implements the Number×String coercion from spec.md §4.1:
// if the string parses as a number, numeric ops apply.
func parseNumber(s string) (Number, error) {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return IntValue(n), nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}
	return FloatValue(f), nil
}

// reverseBits64 implements the Number reverse rule from spec.md §4.1:
// "numbers reverse by bit-reversal of their 64-bit representation".
func reverseBits64(v uint64) uint64 {
	var r uint64
	for i := 0; i < 64; i++ {
		r = (r << 1) | (v & 1)
		v >>= 1
	}
	return r
}
