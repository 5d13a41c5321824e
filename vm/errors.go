package vm

import (
	"fmt"

	"rigz/value"
)

// RuntimeError is a Go error wrapper around an ErrorValue, used at the two
// unwind boundaries (Eval/Test) where a propagating error value must
// become a real `error` return. Grounded on
// MongooseMoo-barn/vm/vm.go's MooError (a thin Error()-only wrapper over
// the teacher's own error-code value type).
type RuntimeError struct {
	Value value.ErrorValue
}

func (e *RuntimeError) Error() string { return e.Value.String() }

// VMException carries a non-error value thrown across an unwind boundary,
// mirroring MongooseMoo-barn/vm/vm.go's VMException (their raise()
// payload wrapper) generalized to any Value rather than only error codes.
type VMException struct {
	Value value.Value
}

func (e *VMException) Error() string {
	return fmt.Sprintf("uncaught: %s", e.Value)
}

func errScopeMissing(id int) value.ErrorValue {
	return value.NewError(value.ErrScopeDoesNotExist, fmt.Sprintf("scope %d does not exist", id))
}

func errVariableMissing(name string) value.ErrorValue {
	return value.NewError(value.ErrVariableDoesNotExist, fmt.Sprintf("variable %q does not exist", name))
}

func errEmptyStack() value.ErrorValue {
	return value.NewError(value.ErrEmptyStack, "operand stack is empty")
}

func errMaxDepth(depth int) value.ErrorValue {
	return value.NewError(value.ErrRuntime, fmt.Sprintf("max call depth exceeded: %d", depth))
}

func errLetRedeclared(name string) value.ErrorValue {
	return value.NewError(value.ErrRuntime, fmt.Sprintf("cannot redeclare let %q without shadowing", name))
}
