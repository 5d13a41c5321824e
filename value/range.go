package value

import (
	"fmt"

	"rigz/codec"
)

// RangeValue is a half-open [Start,End) range of either integers or
// characters, per spec.md §3. Grounded on
// original_source/crates/core/src/primitive/value_range/mod.rs; the
// teacher has no direct analogue, so the shape follows the original
// source closely while the operator behaviour is reworked in the
// teacher's Go idiom (see ops_binary.go).
type RangeValue struct {
	Start  int64
	End    int64
	IsChar bool
}

func NewIntRange(start, end int64) RangeValue {
	return RangeValue{Start: start, End: end}
}

func NewCharRange(start, end rune) RangeValue {
	return RangeValue{Start: int64(start), End: int64(end), IsChar: true}
}

func (r RangeValue) Type() TypeCode { return TypeRange }

func (r RangeValue) String() string {
	if r.IsChar {
		return fmt.Sprintf("%c..%c", rune(r.Start), rune(r.End))
	}
	return fmt.Sprintf("%d..%d", r.Start, r.End)
}

func (r RangeValue) Truthy() bool { return r.End > r.Start }

func (r RangeValue) ToBytes() []byte {
	disc, _ := TypeRange.primitiveDiscriminant()
	out := []byte{discPrimitive, disc}
	out = codec.PutBool(out, r.IsChar)
	out = codec.PutInt64(out, r.Start)
	out = codec.PutInt64(out, r.End)
	return out
}

func (r RangeValue) Equal(other Value) bool {
	o, ok := other.(RangeValue)
	return ok && r == o
}

func (r RangeValue) Compare(other Value) int {
	o, ok := other.(RangeValue)
	if !ok {
		return compareByShape(r, other)
	}
	if c := compareInt64(r.Start, o.Start); c != 0 {
		return c
	}
	return compareInt64(r.End, o.End)
}

// Len returns the number of elements the range iterates, never negative.
func (r RangeValue) Len() int64 {
	if r.End <= r.Start {
		return 0
	}
	return r.End - r.Start
}
