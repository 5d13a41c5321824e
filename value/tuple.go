package value

import "rigz/codec"

// TupleValue is a fixed-size, immutable grouping, unlike ListValue it holds
// plain Values rather than Cells: tuples are copied, not aliased, per
// spec.md §3's "(a, b)" tuple note. Grounded on the shape of
// MongooseMoo-barn/types/list.go, adapted to drop Cell indirection since
// tuples never mutate in place.
type TupleValue struct {
	Elements []Value
}

func NewTuple(items ...Value) TupleValue {
	return TupleValue{Elements: append([]Value(nil), items...)}
}

func (t TupleValue) Type() TypeCode { return TypeTuple }
func (t TupleValue) Len() int       { return len(t.Elements) }

func (t TupleValue) String() string {
	s := "("
	for i, v := range t.Elements {
		if i > 0 {
			s += ", "
		}
		s += v.String()
	}
	return s + ")"
}

func (t TupleValue) Truthy() bool { return len(t.Elements) > 0 }

func (t TupleValue) ToBytes() []byte {
	out := []byte{discTuple}
	out = codec.PutUint64(out, uint64(len(t.Elements)))
	for _, v := range t.Elements {
		out = append(out, v.ToBytes()...)
	}
	return out
}

func (t TupleValue) Equal(other Value) bool {
	switch o := other.(type) {
	case TupleValue:
		if len(t.Elements) != len(o.Elements) {
			return false
		}
		for i, v := range t.Elements {
			if !v.Equal(o.Elements[i]) {
				return false
			}
		}
		return true
	case NoneValue:
		return len(t.Elements) == 0
	case BoolValue:
		return !bool(o) && len(t.Elements) == 0
	case MapValue:
		// (List|Tuple, Map) => both empty, per original_source's
		// crates/core/src/object/mod.rs PartialEq arm.
		return len(t.Elements) == 0 && o.Len() == 0
	default:
		return false
	}
}

func (t TupleValue) Compare(other Value) int {
	o, ok := other.(TupleValue)
	if !ok {
		return compareByShape(t, other)
	}
	n := len(t.Elements)
	if len(o.Elements) < n {
		n = len(o.Elements)
	}
	for i := 0; i < n; i++ {
		if c := t.Elements[i].Compare(o.Elements[i]); c != 0 {
			return c
		}
	}
	return compareInt64(int64(len(t.Elements)), int64(len(o.Elements)))
}
