package value

import "testing"

func TestNoneEqualsFalsyValues(t *testing.T) {
	cases := []Value{
		NewBool(false),
		NewList(),
		NewTuple(),
		NewMap(),
		NewInt(0),
	}
	for _, v := range cases {
		if !None.Equal(v) {
			t.Errorf("None.Equal(%v) = false, want true", v)
		}
		if !v.Equal(None) {
			t.Errorf("%v.Equal(None) = false, want true", v)
		}
	}
}

func TestNoneNotEqualTruthyValues(t *testing.T) {
	cases := []Value{
		NewBool(true),
		NewInt(1),
		NewString("x"),
	}
	for _, v := range cases {
		if None.Equal(v) {
			t.Errorf("None.Equal(%v) = true, want false", v)
		}
	}
}

func TestIntStringCoercion(t *testing.T) {
	if !NewInt(42).Equal(NewString("42")) {
		t.Error("42.Equal(\"42\") should be true via numeric coercion")
	}
	if NewInt(42).Equal(NewString("not a number")) {
		t.Error("42.Equal(\"not a number\") should be false")
	}
}

func TestFloatIntEquality(t *testing.T) {
	if !NewFloat(3.0).Equal(NewInt(3)) {
		t.Error("3.0 should equal 3")
	}
}

func TestCompareByShapeOrdering(t *testing.T) {
	prim := NewInt(1)
	list := NewList(NewInt(1))
	m := NewMap()
	obj := NewObject("Foo")

	if prim.Compare(list) >= 0 {
		t.Error("primitive should sort before list")
	}
	if list.Compare(m) >= 0 {
		t.Error("list should sort before map")
	}
	if m.Compare(obj) >= 0 {
		t.Error("map should sort before object")
	}
}

func TestObjectNeverEqualsMap(t *testing.T) {
	obj := NewObject("Point")
	obj.Set("x", NewInt(1))
	m := NewMap()
	m.Set(NewString("x"), NewInt(1))

	if obj.Equal(m) || m.Equal(obj) {
		t.Error("Object and Map with matching fields must never compare equal")
	}
}
