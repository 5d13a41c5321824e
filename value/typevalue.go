package value

// TypeValue names a type tag as a first-class value, the result of
// `rigz_type` / the `Cast` instruction's type operand. Grounded on the
// teacher's TypeCode string identity (types/typecode.go) promoted here to
// a real Value so scripts can compare/branch on types.
type TypeValue struct {
	T TypeCode
}

func NewType(t TypeCode) TypeValue { return TypeValue{T: t} }

func (t TypeValue) Type() TypeCode { return TypeType }
func (t TypeValue) String() string { return t.T.String() }
func (t TypeValue) Truthy() bool   { return true }

func (t TypeValue) ToBytes() []byte {
	disc, _ := TypeType.primitiveDiscriminant()
	return []byte{discPrimitive, disc, byte(t.T)}
}

func (t TypeValue) Equal(other Value) bool {
	o, ok := other.(TypeValue)
	return ok && t.T == o.T
}

func (t TypeValue) Compare(other Value) int {
	o, ok := other.(TypeValue)
	if !ok {
		return compareByShape(t, other)
	}
	return compareInt64(int64(t.T), int64(o.T))
}
