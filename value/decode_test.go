package value

import (
	"testing"

	"rigz/codec"
)

func roundTrip(t *testing.T, v Value) Value {
	t.Helper()
	data := v.ToBytes()
	got, err := Decode(codec.NewCursor(data), "test")
	if err != nil {
		t.Fatalf("Decode(%v) failed: %v", v, err)
	}
	return got
}

func TestDecodeRoundTripsPrimitives(t *testing.T) {
	cases := []Value{
		None,
		NewBool(true),
		NewBool(false),
		NewInt(-42),
		NewFloat(3.25),
		NewString("hello"),
		NewIntRange(1, 5),
		NewError(ErrTimeout, "too slow"),
		NewType(TypeList),
	}
	for _, v := range cases {
		got := roundTrip(t, v)
		if !got.Equal(v) {
			t.Errorf("round trip of %v (%T) produced %v (%T)", v, v, got, got)
		}
	}
}

func TestDecodeRoundTripsComposites(t *testing.T) {
	list := NewList(NewInt(1), NewString("two"), NewBool(true))
	if got := roundTrip(t, list); !got.Equal(list) {
		t.Errorf("list round trip: got %v, want %v", got, list)
	}

	tup := NewTuple(NewInt(1), NewInt(2))
	if got := roundTrip(t, tup); !got.Equal(tup) {
		t.Errorf("tuple round trip: got %v, want %v", got, tup)
	}

	m := NewMap()
	m.Set(NewString("a"), NewInt(1))
	m.Set(NewString("b"), NewInt(2))
	got := roundTrip(t, m)
	gm, ok := got.(MapValue)
	if !ok || gm.Len() != 2 {
		t.Fatalf("map round trip produced %v", got)
	}
	if v, found := gm.Get(NewString("a")); !found || !v.Equal(NewInt(1)) {
		t.Errorf("decoded map missing key a: %v", got)
	}

	set := NewSet(NewInt(1), NewInt(2), NewInt(1))
	gotSet := roundTrip(t, set)
	gs, ok := gotSet.(SetValue)
	if !ok || len(gs.Values()) != 2 {
		t.Fatalf("set round trip produced %v, want 2 distinct members", gotSet)
	}

	obj := NewObject("Point")
	obj.Set("x", NewInt(1))
	obj.Set("y", NewInt(2))
	gotObj := roundTrip(t, obj)
	go2, ok := gotObj.(ObjectValue)
	if !ok || go2.ClassName != "Point" {
		t.Fatalf("object round trip produced %v", gotObj)
	}
	if xv, found := go2.Get("x"); !found || !xv.Equal(NewInt(1)) {
		t.Errorf("decoded object missing field x: %v", gotObj)
	}

	enum := NewEnum("Color", "Red", 0, None)
	if got := roundTrip(t, enum); !got.Equal(enum) {
		t.Errorf("enum round trip: got %v, want %v", got, enum)
	}
}

func TestDecodeTruncatedFails(t *testing.T) {
	v := NewString("hello world")
	data := v.ToBytes()
	_, err := Decode(codec.NewCursor(data[:len(data)-2]), "test")
	if err == nil {
		t.Fatal("decoding truncated bytes should fail")
	}
}

func TestDecodeUnknownDiscriminant(t *testing.T) {
	_, err := Decode(codec.NewCursor([]byte{0xFF}), "test")
	if err == nil {
		t.Fatal("decoding an unknown discriminant byte should fail")
	}
}
