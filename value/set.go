package value

import "rigz/codec"

// SetValue is an insertion-ordered collection of unique values. The teacher
// has no Set type; this follows original_source's
// crates/core/src/value/mod.rs `RigzType::Set` behaviour (uniqueness by
// structural equality) expressed with the same hash-the-String()-form
// bookkeeping as MapValue above so the two composites stay consistent.
type SetValue struct {
	order   []string
	members map[string]Value
}

func NewSet(items ...Value) SetValue {
	s := SetValue{members: make(map[string]Value)}
	for _, it := range items {
		s.Add(it)
	}
	return s
}

func (s SetValue) Type() TypeCode { return TypeSet }
func (s SetValue) Len() int       { return len(s.members) }

func (s *SetValue) Add(v Value) bool {
	if s.members == nil {
		s.members = make(map[string]Value)
	}
	h := keyHash(v)
	if _, ok := s.members[h]; ok {
		return false
	}
	s.members[h] = v
	s.order = append(s.order, h)
	return true
}

func (s SetValue) Contains(v Value) bool {
	_, ok := s.members[keyHash(v)]
	return ok
}

func (s *SetValue) Remove(v Value) bool {
	h := keyHash(v)
	if _, ok := s.members[h]; !ok {
		return false
	}
	delete(s.members, h)
	for i, oh := range s.order {
		if oh == h {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

func (s SetValue) Values() []Value {
	out := make([]Value, 0, len(s.order))
	for _, h := range s.order {
		out = append(out, s.members[h])
	}
	return out
}

func (s SetValue) String() string {
	str := "{"
	for i, h := range s.order {
		if i > 0 {
			str += ", "
		}
		str += s.members[h].String()
	}
	return str + "}"
}

func (s SetValue) Truthy() bool { return len(s.members) > 0 }

func (s SetValue) ToBytes() []byte {
	out := []byte{discSet}
	out = codec.PutUint64(out, uint64(len(s.order)))
	for _, h := range s.order {
		out = append(out, s.members[h].ToBytes()...)
	}
	return out
}

func (s SetValue) Equal(other Value) bool {
	switch o := other.(type) {
	case SetValue:
		if len(s.members) != len(o.members) {
			return false
		}
		for h := range s.members {
			if _, ok := o.members[h]; !ok {
				return false
			}
		}
		return true
	case NoneValue:
		return len(s.members) == 0
	case BoolValue:
		return !bool(o) && len(s.members) == 0
	default:
		return false
	}
}

func (s SetValue) Compare(other Value) int {
	o, ok := other.(SetValue)
	if !ok {
		return compareByShape(s, other)
	}
	return compareInt64(int64(len(s.members)), int64(len(o.members)))
}
