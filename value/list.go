package value

import "rigz/codec"

// ListValue is a growable, shared-by-reference sequence. Each element is
// stored behind a Cell (see cell.go) so that aliasing a list and mutating
// one alias is visible through the other, mirroring MongooseMoo-barn's
// types/list.go while swapping its copy-on-write slice for Cell indirection
// to satisfy the engine's shared-mutable-value requirement.
type ListValue struct {
	Elements []*Cell
}

func NewList(items ...Value) ListValue {
	l := ListValue{Elements: make([]*Cell, 0, len(items))}
	for _, it := range items {
		l.Elements = append(l.Elements, NewCell(it))
	}
	return l
}

func (l ListValue) Type() TypeCode { return TypeList }

func (l ListValue) Len() int { return len(l.Elements) }

func (l ListValue) Get(i int) (Value, bool) {
	if i < 0 || i >= len(l.Elements) {
		return None, false
	}
	return l.Elements[i].Get(), true
}

// Push appends in place; since Elements is shared through the ListValue's
// backing array only when callers share the same *Cell slice header, Push
// is normally called through the Cell holding the list itself.
func (l *ListValue) Push(v Value) {
	l.Elements = append(l.Elements, NewCell(v))
}

func (l ListValue) String() string {
	s := "["
	for i, c := range l.Elements {
		if i > 0 {
			s += ", "
		}
		s += c.Get().String()
	}
	return s + "]"
}

func (l ListValue) Truthy() bool { return len(l.Elements) > 0 }

func (l ListValue) ToBytes() []byte {
	out := []byte{discList}
	out = codec.PutUint64(out, uint64(len(l.Elements)))
	for _, c := range l.Elements {
		out = append(out, c.Get().ToBytes()...)
	}
	return out
}

func (l ListValue) Equal(other Value) bool {
	switch o := other.(type) {
	case ListValue:
		if len(l.Elements) != len(o.Elements) {
			return false
		}
		for i, c := range l.Elements {
			if !c.Get().Equal(o.Elements[i].Get()) {
				return false
			}
		}
		return true
	case NoneValue:
		return len(l.Elements) == 0
	case BoolValue:
		return !bool(o) && len(l.Elements) == 0
	case MapValue:
		// (List|Tuple, Map) => both empty, per original_source's
		// crates/core/src/object/mod.rs PartialEq arm.
		return len(l.Elements) == 0 && o.Len() == 0
	default:
		return false
	}
}

func (l ListValue) Compare(other Value) int {
	o, ok := other.(ListValue)
	if !ok {
		return compareByShape(l, other)
	}
	n := len(l.Elements)
	if len(o.Elements) < n {
		n = len(o.Elements)
	}
	for i := 0; i < n; i++ {
		if c := l.Elements[i].Get().Compare(o.Elements[i].Get()); c != 0 {
			return c
		}
	}
	return compareInt64(int64(len(l.Elements)), int64(len(o.Elements)))
}
