package value

// BoolValue is a boolean. Grounded on MongooseMoo-barn/types/bool.go.
type BoolValue bool

func NewBool(b bool) BoolValue { return BoolValue(b) }

func (b BoolValue) Type() TypeCode { return TypeBool }

func (b BoolValue) String() string {
	if b {
		return "true"
	}
	return "false"
}

func (b BoolValue) Truthy() bool { return bool(b) }

func (b BoolValue) ToBytes() []byte {
	disc, _ := TypeBool.primitiveDiscriminant()
	out := []byte{discPrimitive, disc}
	if b {
		return append(out, 1)
	}
	return append(out, 0)
}

func (b BoolValue) Equal(other Value) bool {
	switch o := other.(type) {
	case BoolValue:
		return b == o
	case NoneValue:
		return !bool(b)
	case ListValue:
		return !bool(b) && len(o.Elements) == 0
	case TupleValue:
		return !bool(b) && len(o.Elements) == 0
	case MapValue:
		return !bool(b) && o.Len() == 0
	case IntValue:
		if b {
			return o == 1
		}
		return o == 0
	default:
		return false
	}
}

func (b BoolValue) Compare(other Value) int {
	if o, ok := other.(BoolValue); ok {
		if b == o {
			return 0
		}
		if !b {
			return -1
		}
		return 1
	}
	return compareByShape(b, other)
}
