package value

import (
	"fmt"

	"rigz/codec"
)

// ErrorKind enumerates the taxonomy from spec.md §7. Wire-serialized as a
// single discriminant byte, grounded on
// MongooseMoo-barn/types/base.go's ErrorCode but renamed/renumbered to the
// engine's own ten kinds (the teacher's MOO error codes are a different,
// domain-specific taxonomy; only the "typed Go error + first-class value"
// pattern is reused, not the numbering).
type ErrorKind byte

const (
	ErrRuntime ErrorKind = iota
	ErrEmptyStack
	ErrConversion
	ErrScopeDoesNotExist
	ErrUnsupportedOperation
	ErrVariableDoesNotExist
	ErrInvalidModule
	ErrInvalidModuleFunction
	ErrLifecycle
	ErrTimeout
)

func (k ErrorKind) String() string {
	switch k {
	case ErrRuntime:
		return "RuntimeError"
	case ErrEmptyStack:
		return "EmptyStack"
	case ErrConversion:
		return "ConversionError"
	case ErrScopeDoesNotExist:
		return "ScopeDoesNotExist"
	case ErrUnsupportedOperation:
		return "UnsupportedOperation"
	case ErrVariableDoesNotExist:
		return "VariableDoesNotExist"
	case ErrInvalidModule:
		return "InvalidModule"
	case ErrInvalidModuleFunction:
		return "InvalidModuleFunction"
	case ErrLifecycle:
		return "LifecycleError"
	case ErrTimeout:
		return "TimeoutError"
	default:
		return "UnknownError"
	}
}

// ErrorValue is a first-class runtime error. Per spec.md §7, any operator
// or instruction that fails pushes one of these rather than unwinding; the
// only two unwind sites are Eval() and Test() (see vm package).
type ErrorValue struct {
	Kind    ErrorKind
	Message string
}

func NewError(kind ErrorKind, message string) ErrorValue {
	return ErrorValue{Kind: kind, Message: message}
}

func Runtimef(format string, args ...any) ErrorValue {
	return NewError(ErrRuntime, fmt.Sprintf(format, args...))
}

func (e ErrorValue) Type() TypeCode { return TypeError }
func (e ErrorValue) String() string { return fmt.Sprintf("%s: %s", e.Kind, e.Message) }

// Truthy: per spec.md §4.1, Error is false for to_bool ("false for to_bool
// but propagates for operators" — the operator short-circuit is handled
// separately in ops_binary.go/ops_unary.go, not here).
func (e ErrorValue) Truthy() bool { return false }

func (e ErrorValue) ToBytes() []byte {
	disc, _ := TypeError.primitiveDiscriminant()
	out := []byte{discPrimitive, disc, byte(e.Kind)}
	return codec.PutString(out, e.Message)
}

func (e ErrorValue) Equal(other Value) bool {
	o, ok := other.(ErrorValue)
	return ok && e.Kind == o.Kind && e.Message == o.Message
}

func (e ErrorValue) Compare(other Value) int {
	o, ok := other.(ErrorValue)
	if !ok {
		return compareByShape(e, other)
	}
	if e.Kind != o.Kind {
		return compareInt64(int64(e.Kind), int64(o.Kind))
	}
	if e.Message == o.Message {
		return 0
	}
	if e.Message < o.Message {
		return -1
	}
	return 1
}
