package value

import "testing"

func TestApplyAddNumericPromotion(t *testing.T) {
	if v := Apply(OpAdd, NewInt(2), NewInt(3)); !v.Equal(NewInt(5)) {
		t.Errorf("2+3 = %v, want 5", v)
	}
	if v := Apply(OpAdd, NewInt(2), NewFloat(0.5)); !v.Equal(NewFloat(2.5)) {
		t.Errorf("2+0.5 = %v, want 2.5", v)
	}
}

func TestApplyAddStringConcat(t *testing.T) {
	v := Apply(OpAdd, NewString("foo"), NewString("bar"))
	if !v.Equal(NewString("foobar")) {
		t.Errorf("\"foo\"+\"bar\" = %v, want foobar", v)
	}
}

func TestApplyAddNumberStringCoercion(t *testing.T) {
	v := Apply(OpAdd, NewInt(1), NewString("2"))
	if !v.Equal(NewInt(3)) {
		t.Errorf("1 + \"2\" = %v, want 3 (numeric coercion)", v)
	}
	v2 := Apply(OpAdd, NewInt(1), NewString("abc"))
	if !v2.Equal(NewString("1abc")) {
		t.Errorf("1 + \"abc\" = %v, want concatenation fallback", v2)
	}
}

func TestApplyAddNoneIsIdentity(t *testing.T) {
	if v := Apply(OpAdd, None, NewInt(5)); !v.Equal(NewInt(5)) {
		t.Errorf("none + 5 = %v, want 5", v)
	}
	if v := Apply(OpAdd, NewInt(5), None); !v.Equal(NewInt(5)) {
		t.Errorf("5 + none = %v, want 5", v)
	}
}

func TestApplyDivByZeroIsError(t *testing.T) {
	v := Apply(OpDiv, NewInt(1), NewInt(0))
	if _, ok := v.(ErrorValue); !ok {
		t.Errorf("1/0 = %v (%T), want ErrorValue", v, v)
	}
}

func TestApplyErrorPropagates(t *testing.T) {
	e := NewError(ErrRuntime, "boom")
	v := Apply(OpAdd, e, NewInt(1))
	if got, ok := v.(ErrorValue); !ok || got != e {
		t.Errorf("error operand should propagate unchanged, got %v", v)
	}
}

func TestApplyComparisonOps(t *testing.T) {
	if !Apply(OpLt, NewInt(1), NewInt(2)).Truthy() {
		t.Error("1 < 2 should be true")
	}
	if Apply(OpGt, NewInt(1), NewInt(2)).Truthy() {
		t.Error("1 > 2 should be false")
	}
	if !Apply(OpEq, NewString("x"), NewString("x")).Truthy() {
		t.Error("\"x\" == \"x\" should be true")
	}
}

func TestApplyElvis(t *testing.T) {
	if v := Apply(OpElvis, None, NewInt(7)); !v.Equal(NewInt(7)) {
		t.Errorf("none ?: 7 = %v, want 7", v)
	}
	if v := Apply(OpElvis, NewInt(3), NewInt(7)); !v.Equal(NewInt(3)) {
		t.Errorf("3 ?: 7 = %v, want 3", v)
	}
}

func TestApplyListConcatAndDiff(t *testing.T) {
	a := NewList(NewInt(1), NewInt(2))
	b := NewList(NewInt(2), NewInt(3))
	sum := Apply(OpAdd, a, b)
	l, ok := sum.(ListValue)
	if !ok || l.Len() != 4 {
		t.Fatalf("[1,2]+[2,3] = %v, want 4-element list", sum)
	}
	diff := Apply(OpSub, a, b)
	dl, ok := diff.(ListValue)
	if !ok || dl.Len() != 1 {
		t.Fatalf("[1,2]-[2,3] = %v, want 1-element list", diff)
	}
}

func TestApplyTupleZipsElementwise(t *testing.T) {
	a := NewTuple(NewInt(1), NewInt(2))
	b := NewTuple(NewInt(10), NewInt(20))
	v := Apply(OpAdd, a, b)
	tup, ok := v.(TupleValue)
	if !ok || tup.Len() != 2 {
		t.Fatalf("tuple+tuple = %v, want 2-element tuple", v)
	}
	first, _ := tup.Elements[0], tup.Elements[1]
	if !first.Equal(NewInt(11)) {
		t.Errorf("tuple zip first = %v, want 11", first)
	}
}
