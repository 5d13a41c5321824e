package value

// TypeCode tags every Value's shape. Primitive members keep the §6
// discriminant numbering from the spec so snapshot encoding/rigz_type casts
// can be expressed as simple arithmetic; composite members follow on from
// them (List=8, Map=9, Set=10, Tuple=11, Enum=12, Object=13). The snapshot
// codec's composite discriminants are separate constants in value.go.
type TypeCode int

const (
	TypeNone TypeCode = iota
	TypeBool
	TypeInt
	TypeFloat
	TypeString
	TypeRange
	TypeError
	TypeType
	TypeList
	TypeMap
	TypeSet
	TypeTuple
	TypeEnum
	TypeObject
)

func (t TypeCode) String() string {
	switch t {
	case TypeNone:
		return "None"
	case TypeBool:
		return "Bool"
	case TypeInt:
		return "Int"
	case TypeFloat:
		return "Float"
	case TypeString:
		return "String"
	case TypeRange:
		return "Range"
	case TypeError:
		return "Error"
	case TypeType:
		return "Type"
	case TypeList:
		return "List"
	case TypeMap:
		return "Map"
	case TypeSet:
		return "Set"
	case TypeTuple:
		return "Tuple"
	case TypeEnum:
		return "Enum"
	case TypeObject:
		return "Object"
	default:
		return "Unknown"
	}
}

// shapeRank implements the §9 Open Question #3 decision: cross-shape `<`
// orders as primitive < (list, set, tuple, enum) < map < object, pinned once here
// instead of re-derived at each comparison site.
func (t TypeCode) shapeRank() int {
	switch t {
	case TypeList, TypeSet, TypeTuple, TypeEnum:
		return 1
	case TypeMap:
		return 2
	case TypeObject:
		return 3
	default:
		return 0
	}
}

// primitiveDiscriminant returns the §6 Primitive sub-discriminant byte.
func (t TypeCode) primitiveDiscriminant() (byte, bool) {
	switch t {
	case TypeNone:
		return 0, true
	case TypeBool:
		return 1, true
	case TypeInt:
		return 2, true
	case TypeFloat:
		return 3, true
	case TypeString:
		return 4, true
	case TypeRange:
		return 5, true
	case TypeError:
		return 6, true
	case TypeType:
		return 7, true
	default:
		return 0, false
	}
}
