package value

import (
	"fmt"

	"rigz/codec"
)

// mapEntry pairs the original key Value with a Cell holding its mapped
// value, so a map alias observes in-place value mutation the same way
// ListValue does.
type mapEntry struct {
	key Value
	val *Cell
}

// MapValue is an insertion-ordered associative structure. Grounded on
// MongooseMoo-barn/types/map.go's goMap (hash-the-String()-form key, keep
// an order slice beside the lookup table); the teacher's copy-on-write
// immutable Set/Delete are replaced here with in-place mutation through
// Cells to match this engine's shared-mutable-value model.
type MapValue struct {
	order []string
	pairs map[string]*mapEntry
}

func NewMap() MapValue {
	return MapValue{pairs: make(map[string]*mapEntry)}
}

func keyHash(v Value) string {
	return fmt.Sprintf("%d:%s", v.Type(), v.String())
}

func (m MapValue) Type() TypeCode { return TypeMap }
func (m MapValue) Len() int       { return len(m.pairs) }

func (m MapValue) Get(k Value) (Value, bool) {
	if e, ok := m.pairs[keyHash(k)]; ok {
		return e.val.Get(), true
	}
	return None, false
}

func (m *MapValue) Set(k, v Value) {
	if m.pairs == nil {
		m.pairs = make(map[string]*mapEntry)
	}
	h := keyHash(k)
	if e, ok := m.pairs[h]; ok {
		e.val.Set(v)
		return
	}
	m.pairs[h] = &mapEntry{key: k, val: NewCell(v)}
	m.order = append(m.order, h)
}

func (m *MapValue) Delete(k Value) bool {
	h := keyHash(k)
	if _, ok := m.pairs[h]; !ok {
		return false
	}
	delete(m.pairs, h)
	for i, oh := range m.order {
		if oh == h {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return true
}

func (m MapValue) Keys() []Value {
	keys := make([]Value, 0, len(m.order))
	for _, h := range m.order {
		keys = append(keys, m.pairs[h].key)
	}
	return keys
}

func (m MapValue) String() string {
	s := "{"
	for i, h := range m.order {
		if i > 0 {
			s += ", "
		}
		e := m.pairs[h]
		s += e.key.String() + ": " + e.val.Get().String()
	}
	return s + "}"
}

func (m MapValue) Truthy() bool { return len(m.pairs) > 0 }

func (m MapValue) ToBytes() []byte {
	out := []byte{discMap}
	out = codec.PutUint64(out, uint64(len(m.order)))
	for _, h := range m.order {
		e := m.pairs[h]
		out = append(out, e.key.ToBytes()...)
		out = append(out, e.val.Get().ToBytes()...)
	}
	return out
}

func (m MapValue) Equal(other Value) bool {
	switch o := other.(type) {
	case MapValue:
		if len(m.pairs) != len(o.pairs) {
			return false
		}
		for h, e := range m.pairs {
			oe, ok := o.pairs[h]
			if !ok || !e.val.Get().Equal(oe.val.Get()) {
				return false
			}
		}
		return true
	case NoneValue:
		return len(m.pairs) == 0
	case BoolValue:
		return !bool(o) && len(m.pairs) == 0
	case ListValue:
		return len(m.pairs) == 0 && o.Len() == 0
	case TupleValue:
		return len(m.pairs) == 0 && len(o.Elements) == 0
	default:
		return false
	}
}

func (m MapValue) Compare(other Value) int {
	o, ok := other.(MapValue)
	if !ok {
		return compareByShape(m, other)
	}
	return compareInt64(int64(len(m.pairs)), int64(len(o.pairs)))
}
