package value

import (
	"fmt"
	"math"

	"rigz/codec"
)

// Decode is the inverse of Value.ToBytes, dispatching on the leading
// discriminant byte(s) written by each ToBytes implementation. Grounded
// on the snapshot round-trip shape MongooseMoo-barn/db/reader.go uses
// (read a tag, switch on it, recurse for composite fields).
func Decode(c *codec.Cursor, location string) (Value, error) {
	disc, err := c.Byte(location + ".discriminant")
	if err != nil {
		return nil, err
	}
	switch disc {
	case discPrimitive:
		return decodePrimitive(c, location)
	case discList:
		return decodeList(c, location)
	case discMap:
		return decodeMap(c, location)
	case discTuple:
		return decodeTuple(c, location)
	case discObject:
		return decodeObject(c, location)
	case discEnum:
		return decodeEnum(c, location)
	case discSet:
		return decodeSet(c, location)
	default:
		return nil, errString(location, errUnknownDiscriminant(disc))
	}
}

func errUnknownDiscriminant(b byte) error {
	return fmt.Errorf("unknown value discriminant: %d", b)
}

func decodePrimitive(c *codec.Cursor, location string) (Value, error) {
	sub, err := c.Byte(location + ".primitive")
	if err != nil {
		return nil, err
	}
	switch sub {
	case 0:
		return None, nil
	case 1:
		b, err := c.Bool(location + ".bool")
		if err != nil {
			return nil, err
		}
		return BoolValue(b), nil
	case 2:
		n, err := c.Int64(location + ".int")
		if err != nil {
			return nil, err
		}
		return IntValue(n), nil
	case 3:
		bits, err := c.Uint64(location + ".float")
		if err != nil {
			return nil, err
		}
		return FloatValue(math.Float64frombits(bits)), nil
	case 4:
		s, err := c.String(location + ".string")
		if err != nil {
			return nil, err
		}
		return StringValue(s), nil
	case 5:
		isChar, err := c.Bool(location + ".range.isChar")
		if err != nil {
			return nil, err
		}
		start, err := c.Int64(location + ".range.start")
		if err != nil {
			return nil, err
		}
		end, err := c.Int64(location + ".range.end")
		if err != nil {
			return nil, err
		}
		return RangeValue{Start: start, End: end, IsChar: isChar}, nil
	case 6:
		kind, err := c.Byte(location + ".error.kind")
		if err != nil {
			return nil, err
		}
		msg, err := c.String(location + ".error.message")
		if err != nil {
			return nil, err
		}
		return ErrorValue{Kind: ErrorKind(kind), Message: msg}, nil
	case 7:
		t, err := c.Byte(location + ".type")
		if err != nil {
			return nil, err
		}
		return TypeValue{T: TypeCode(t)}, nil
	default:
		return nil, errString(location, errUnknownDiscriminant(sub))
	}
}

func decodeList(c *codec.Cursor, location string) (Value, error) {
	n, err := c.USize(location + ".list.len")
	if err != nil {
		return nil, err
	}
	l := NewList()
	for i := 0; i < n; i++ {
		v, err := Decode(c, location+".list[]")
		if err != nil {
			return nil, err
		}
		l.Push(v)
	}
	return l, nil
}

func decodeTuple(c *codec.Cursor, location string) (Value, error) {
	n, err := c.USize(location + ".tuple.len")
	if err != nil {
		return nil, err
	}
	elems := make([]Value, 0, n)
	for i := 0; i < n; i++ {
		v, err := Decode(c, location+".tuple[]")
		if err != nil {
			return nil, err
		}
		elems = append(elems, v)
	}
	return TupleValue{Elements: elems}, nil
}

func decodeSet(c *codec.Cursor, location string) (Value, error) {
	n, err := c.USize(location + ".set.len")
	if err != nil {
		return nil, err
	}
	s := NewSet()
	for i := 0; i < n; i++ {
		v, err := Decode(c, location+".set[]")
		if err != nil {
			return nil, err
		}
		s.Add(v)
	}
	return s, nil
}

func decodeMap(c *codec.Cursor, location string) (Value, error) {
	n, err := c.USize(location + ".map.len")
	if err != nil {
		return nil, err
	}
	m := NewMap()
	for i := 0; i < n; i++ {
		k, err := Decode(c, location+".map.key")
		if err != nil {
			return nil, err
		}
		v, err := Decode(c, location+".map.value")
		if err != nil {
			return nil, err
		}
		m.Set(k, v)
	}
	return m, nil
}

func decodeObject(c *codec.Cursor, location string) (Value, error) {
	className, err := c.String(location + ".object.class")
	if err != nil {
		return nil, err
	}
	n, err := c.USize(location + ".object.len")
	if err != nil {
		return nil, err
	}
	o := NewObject(className)
	for i := 0; i < n; i++ {
		name, err := c.String(location + ".object.field.name")
		if err != nil {
			return nil, err
		}
		v, err := Decode(c, location+".object.field.value")
		if err != nil {
			return nil, err
		}
		o.Set(name, v)
	}
	return o, nil
}

func decodeEnum(c *codec.Cursor, location string) (Value, error) {
	enumName, err := c.String(location + ".enum.name")
	if err != nil {
		return nil, err
	}
	variant, err := c.String(location + ".enum.variant")
	if err != nil {
		return nil, err
	}
	idx, err := c.Int64(location + ".enum.index")
	if err != nil {
		return nil, err
	}
	payload, err := Decode(c, location+".enum.payload")
	if err != nil {
		return nil, err
	}
	return EnumValue{EnumName: enumName, Variant: variant, Index: idx, Payload: payload}, nil
}
