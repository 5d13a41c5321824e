package value

import "testing"

func TestCellAliasingObservesMutation(t *testing.T) {
	c := NewCell(NewInt(1))
	alias := c.Alias()
	alias.Set(NewInt(2))
	if !c.Get().Equal(NewInt(2)) {
		t.Errorf("mutation through an alias should be visible on the original cell, got %v", c.Get())
	}
}

func TestCellCloneIsIndependent(t *testing.T) {
	c := NewCell(NewInt(1))
	clone := c.Clone()
	clone.Set(NewInt(99))
	if !c.Get().Equal(NewInt(1)) {
		t.Errorf("mutating a clone should not affect the original, got %v", c.Get())
	}
}

func TestListElementsShareCellsAcrossAliases(t *testing.T) {
	l := NewList(NewInt(1), NewInt(2))
	alias := l
	alias.Elements[0].Set(NewInt(100))
	if v, _ := l.Get(0); !v.Equal(NewInt(100)) {
		t.Errorf("list copies share backing cells; mutation via alias should be visible, got %v", v)
	}
}

func TestTupleCopiesRatherThanAliasesElements(t *testing.T) {
	original := []Value{NewInt(1), NewInt(2)}
	tup := NewTuple(original...)
	original[0] = NewInt(999)
	if !tup.Elements[0].Equal(NewInt(1)) {
		t.Errorf("tuple should copy its element slice at construction, got %v", tup.Elements[0])
	}
}
