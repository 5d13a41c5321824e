package value

import "strconv"

// ToBool, ToInt, ToFloat, ToString and the *Checked functions implement the
// `to_x` / `to_x!` conversion family from spec.md §4.1. The non-`!` forms
// (Bool, Int, Float and String only) never fail (they fall back to a
// zero-ish value); the `!` forms (ToIntChecked, ToFloatChecked,
// ToNumberChecked, ToListChecked, ToMapChecked, ToSetChecked) return an
// ErrorValue on failure, matching the teacher's Go convention of pairing a
// best-effort conversion with a checked one (see
// MongooseMoo-barn/types/convert.go).
func ToBool(v Value) BoolValue { return BoolValue(v.Truthy()) }

func ToInt(v Value) IntValue {
	i, _ := toIntChecked(v)
	return i
}

func ToIntChecked(v Value) (IntValue, ErrorValue, bool) {
	i, err := toIntChecked(v)
	if err != (ErrorValue{}) {
		return 0, err, false
	}
	return i, ErrorValue{}, true
}

func toIntChecked(v Value) (IntValue, ErrorValue) {
	switch n := v.(type) {
	case IntValue:
		return n, ErrorValue{}
	case FloatValue:
		return IntValue(int64(n)), ErrorValue{}
	case BoolValue:
		if n {
			return 1, ErrorValue{}
		}
		return 0, ErrorValue{}
	case NoneValue:
		return 0, ErrorValue{}
	case StringValue:
		if i, err := strconv.ParseInt(string(n), 10, 64); err == nil {
			return IntValue(i), ErrorValue{}
		}
		if f, err := strconv.ParseFloat(string(n), 64); err == nil {
			return IntValue(int64(f)), ErrorValue{}
		}
		return 0, NewError(ErrConversion, "cannot convert "+string(n)+" to Int")
	default:
		return 0, NewError(ErrConversion, "cannot convert "+v.String()+" to Int")
	}
}

func ToFloat(v Value) FloatValue {
	f, _ := toFloatChecked(v)
	return f
}

func ToFloatChecked(v Value) (FloatValue, ErrorValue, bool) {
	f, err := toFloatChecked(v)
	if err != (ErrorValue{}) {
		return 0, err, false
	}
	return f, ErrorValue{}, true
}

func toFloatChecked(v Value) (FloatValue, ErrorValue) {
	switch n := v.(type) {
	case FloatValue:
		return n, ErrorValue{}
	case IntValue:
		return FloatValue(n), ErrorValue{}
	case BoolValue:
		if n {
			return 1, ErrorValue{}
		}
		return 0, ErrorValue{}
	case NoneValue:
		return 0, ErrorValue{}
	case StringValue:
		if f, err := strconv.ParseFloat(string(n), 64); err == nil {
			return FloatValue(f), ErrorValue{}
		}
		return 0, NewError(ErrConversion, "cannot convert "+string(n)+" to Float")
	default:
		return 0, NewError(ErrConversion, "cannot convert "+v.String()+" to Float")
	}
}

// ToNumberChecked picks Int or Float depending on the source, failing for values
// with no numeric reading at all.
func ToNumberChecked(v Value) (Number, ErrorValue, bool) {
	switch n := v.(type) {
	case Number:
		return n, ErrorValue{}, true
	case StringValue:
		num, err := parseNumber(string(n))
		if err != nil {
			return nil, NewError(ErrConversion, "cannot convert "+string(n)+" to Number"), false
		}
		return num, ErrorValue{}, true
	case BoolValue:
		if n {
			return IntValue(1), ErrorValue{}, true
		}
		return IntValue(0), ErrorValue{}, true
	case NoneValue:
		return IntValue(0), ErrorValue{}, true
	default:
		return nil, NewError(ErrConversion, "cannot convert "+v.String()+" to Number"), false
	}
}

func ToString(v Value) StringValue { return StringValue(v.String()) }

func ToListChecked(v Value) (ListValue, ErrorValue, bool) {
	switch n := v.(type) {
	case ListValue:
		return n, ErrorValue{}, true
	case TupleValue:
		return NewList(n.Elements...), ErrorValue{}, true
	case SetValue:
		return NewList(n.Values()...), ErrorValue{}, true
	case RangeValue:
		l := NewList()
		if n.IsChar {
			for r := rune(n.Start); r < rune(n.End); r++ {
				l.Push(StringValue(string(r)))
			}
		} else {
			for i := n.Start; i < n.End; i++ {
				l.Push(IntValue(i))
			}
		}
		return l, ErrorValue{}, true
	case NoneValue:
		return NewList(), ErrorValue{}, true
	default:
		return ListValue{}, NewError(ErrConversion, "cannot convert "+v.String()+" to List"), false
	}
}

func ToSetChecked(v Value) (SetValue, ErrorValue, bool) {
	switch n := v.(type) {
	case SetValue:
		return n, ErrorValue{}, true
	case ListValue:
		s := NewSet()
		for _, c := range n.Elements {
			s.Add(c.Get())
		}
		return s, ErrorValue{}, true
	case TupleValue:
		return NewSet(n.Elements...), ErrorValue{}, true
	case NoneValue:
		return NewSet(), ErrorValue{}, true
	default:
		return SetValue{}, NewError(ErrConversion, "cannot convert "+v.String()+" to Set"), false
	}
}

func ToMapChecked(v Value) (MapValue, ErrorValue, bool) {
	switch n := v.(type) {
	case MapValue:
		return n, ErrorValue{}, true
	case ListValue:
		m := NewMap()
		for i, c := range n.Elements {
			m.Set(IntValue(int64(i)), c.Get())
		}
		return m, ErrorValue{}, true
	case NoneValue:
		return NewMap(), ErrorValue{}, true
	default:
		return MapValue{}, NewError(ErrConversion, "cannot convert "+v.String()+" to Map"), false
	}
}

// RigzType returns the TypeValue naming v's type, the result of the
// `rigz_type` builtin.
func RigzType(v Value) TypeValue { return NewType(v.Type()) }
