package value

import "rigz/codec"

// ObjectValue is a named, field-ordered record — the result of constructing
// a composite lifecycle type (spec.md §4.3 "Composite" lifecycle tag).
// Structurally it is a MapValue with a class name attached, but per §9 Open
// Question #1 it is never Equal to a plain MapValue even when their fields
// match: identity includes the class name. Grounded on MongooseMoo-barn's
// object-ish types/map.go shape, split out as its own type rather than
// reusing MapValue so that distinction is enforced by the type system.
type ObjectValue struct {
	ClassName string
	order     []string
	fields    map[string]*Cell
}

func NewObject(className string) ObjectValue {
	return ObjectValue{ClassName: className, fields: make(map[string]*Cell)}
}

func (o ObjectValue) Type() TypeCode { return TypeObject }

func (o ObjectValue) Get(name string) (Value, bool) {
	if c, ok := o.fields[name]; ok {
		return c.Get(), true
	}
	return None, false
}

func (o *ObjectValue) Set(name string, v Value) {
	if o.fields == nil {
		o.fields = make(map[string]*Cell)
	}
	if c, ok := o.fields[name]; ok {
		c.Set(v)
		return
	}
	o.fields[name] = NewCell(v)
	o.order = append(o.order, name)
}

func (o ObjectValue) Fields() []string {
	return append([]string(nil), o.order...)
}

func (o ObjectValue) String() string {
	s := o.ClassName + "{"
	for i, name := range o.order {
		if i > 0 {
			s += ", "
		}
		s += name + ": " + o.fields[name].Get().String()
	}
	return s + "}"
}

func (o ObjectValue) Truthy() bool { return true }

func (o ObjectValue) ToBytes() []byte {
	out := []byte{discObject}
	out = codec.PutString(out, o.ClassName)
	out = codec.PutUint64(out, uint64(len(o.order)))
	for _, name := range o.order {
		out = codec.PutString(out, name)
		out = append(out, o.fields[name].Get().ToBytes()...)
	}
	return out
}

// Equal enforces §9 Open Question #1: an ObjectValue never equals a
// MapValue with the same fields, only another ObjectValue of the same
// class with equal fields.
func (o ObjectValue) Equal(other Value) bool {
	oo, ok := other.(ObjectValue)
	if !ok || oo.ClassName != o.ClassName || len(oo.fields) != len(o.fields) {
		return false
	}
	for name, c := range o.fields {
		oc, ok := oo.fields[name]
		if !ok || !c.Get().Equal(oc.Get()) {
			return false
		}
	}
	return true
}

func (o ObjectValue) Compare(other Value) int {
	oo, ok := other.(ObjectValue)
	if !ok {
		return compareByShape(o, other)
	}
	if o.ClassName != oo.ClassName {
		if o.ClassName < oo.ClassName {
			return -1
		}
		return 1
	}
	return compareInt64(int64(len(o.fields)), int64(len(oo.fields)))
}
