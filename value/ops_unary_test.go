package value

import "testing"

func TestNegate(t *testing.T) {
	if v := Negate(NewInt(5)); !v.Equal(NewInt(-5)) {
		t.Errorf("-5 negate = %v", v)
	}
	if v := Negate(NewBool(true)); !v.Equal(NewBool(false)) {
		t.Errorf("-true = %v, want false", v)
	}
	if v := Negate(None); v != Value(None) {
		t.Errorf("-none = %v, want none", v)
	}
}

func TestReverseStringAndList(t *testing.T) {
	if v := Reverse(NewString("abc")); !v.Equal(NewString("cba")) {
		t.Errorf("reverse(\"abc\") = %v, want cba", v)
	}
	l := NewList(NewInt(1), NewInt(2), NewInt(3))
	rv := Reverse(l)
	rl, ok := rv.(ListValue)
	if !ok || rl.Len() != 3 {
		t.Fatalf("reverse(list) = %v", rv)
	}
	first, _ := rl.Get(0)
	if !first.Equal(NewInt(3)) {
		t.Errorf("reverse([1,2,3])[0] = %v, want 3", first)
	}
}

func TestReverseFloatRoundTrip(t *testing.T) {
	f := NewFloat(12.5)
	twice := Reverse(Reverse(f))
	if !twice.Equal(f) {
		t.Errorf("double bit-reversal of a float should be identity, got %v want %v", twice, f)
	}
}

func TestApplyUnaryNot(t *testing.T) {
	if v := ApplyUnary(OpNot, NewBool(false)); !v.Truthy() {
		t.Error("!false should be true")
	}
	if v := ApplyUnary(OpNot, NewInt(0)); !v.Truthy() {
		t.Error("!0 should be true (0 is falsy)")
	}
}
