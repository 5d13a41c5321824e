package vm

import "rigz/value"

// stackTag distinguishes StackValue's three shapes (spec.md §3 "StackValue").
type stackTag int

const (
	tagValue stackTag = iota
	tagScopeID
	tagConstant
)

// StackValue is what actually lives on the VM's operand stack: either a
// resolved Value (behind a shared Cell so aliasing works), an unevaluated
// scope reference (a lazy thunk — how `if`/`unless`/blocks-as-expressions
// defer evaluating a branch until it's known to be taken), or a constant
// pool index (deferred constant load, used when a literal is pushed but
// might never be read, e.g. inside a branch that isn't taken). Resolve
// forces whichever shape down to a concrete Value. Grounded on the
// StackFrame/Value split in MongooseMoo-barn/vm/vm.go, extended with the
// thunk tags original_source's crates/vm/src/value.rs models as a
// `VMStackValue` enum (`Value(Rc<RefCell<...>>)`, `ScopeId(usize)`,
// `Constant(usize)`).
type StackValue struct {
	tag      stackTag
	cell     *value.Cell
	scopeID  int
	constant int
}

func ValueStack(v value.Value) StackValue {
	return StackValue{tag: tagValue, cell: value.NewCell(v)}
}

func CellStack(c *value.Cell) StackValue {
	return StackValue{tag: tagValue, cell: c}
}

func ScopeStack(scopeID int) StackValue {
	return StackValue{tag: tagScopeID, scopeID: scopeID}
}

func ConstantStack(idx int) StackValue {
	return StackValue{tag: tagConstant, constant: idx}
}

// Resolve forces sv down to a concrete Value, running vm's scope
// evaluator for a thunk or reading the constant pool for a deferred
// literal. Resolving a tagValue StackValue is free (no evaluation).
func (sv StackValue) Resolve(vm *VM) (value.Value, error) {
	switch sv.tag {
	case tagValue:
		return sv.cell.Get(), nil
	case tagConstant:
		return vm.constant(sv.constant)
	case tagScopeID:
		return vm.evalScopeAsExpression(sv.scopeID)
	default:
		return value.None, &RuntimeError{Value: errEmptyStack()}
	}
}

// Cell returns the backing Cell for a tagValue StackValue, used by
// instructions that need to alias rather than copy (e.g. storing into a
// variable that another binding already points at). For thunk tags it
// resolves first and wraps the result in a fresh Cell.
func (sv StackValue) Cell(vm *VM) (*value.Cell, error) {
	if sv.tag == tagValue {
		return sv.cell, nil
	}
	v, err := sv.Resolve(vm)
	if err != nil {
		return nil, err
	}
	return value.NewCell(v), nil
}
