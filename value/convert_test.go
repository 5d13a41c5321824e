package value

import "testing"

func TestToIntConversions(t *testing.T) {
	if ToInt(NewFloat(3.9)) != 3 {
		t.Errorf("to_int(3.9) should truncate to 3")
	}
	if ToInt(NewString("42")) != 42 {
		t.Error("to_int(\"42\") should be 42")
	}
	if ToInt(NewBool(true)) != 1 {
		t.Error("to_int(true) should be 1")
	}
}

func TestToIntCheckedFailure(t *testing.T) {
	_, errv, ok := ToIntChecked(NewString("not a number"))
	if ok {
		t.Fatal("to_int! on a non-numeric string should fail")
	}
	if errv.Kind != ErrConversion {
		t.Errorf("expected ErrConversion, got %v", errv.Kind)
	}
}

func TestToListChecked(t *testing.T) {
	r := NewIntRange(0, 3)
	l, _, ok := ToListChecked(r)
	if !ok || l.Len() != 3 {
		t.Fatalf("to_list(0..3) = %v, want 3-element list", l)
	}
	first, _ := l.Get(0)
	if !first.Equal(NewInt(0)) {
		t.Errorf("to_list(0..3)[0] = %v, want 0", first)
	}
}

func TestToMapCheckedFromList(t *testing.T) {
	l := NewList(NewString("a"), NewString("b"))
	m, _, ok := ToMapChecked(l)
	if !ok {
		t.Fatal("to_map(list) should succeed, indexing by position")
	}
	v, found := m.Get(NewInt(0))
	if !found || !v.Equal(NewString("a")) {
		t.Errorf("to_map([a,b]).get(0) = %v, want a", v)
	}
}

func TestRigzType(t *testing.T) {
	if RigzType(NewInt(1)).T != TypeInt {
		t.Error("rigz_type(1) should be TypeInt")
	}
	if RigzType(NewString("x")).T != TypeString {
		t.Error("rigz_type(\"x\") should be TypeString")
	}
}

func TestToStringNeverFails(t *testing.T) {
	if ToString(None) != StringValue("none") {
		t.Errorf("to_string(none) = %q, want \"none\"", ToString(None))
	}
}
