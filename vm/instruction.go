package vm

import "rigz/value"

// OpCode enumerates the engine's instruction set (spec.md §4.3). Grounded
// on the shape of MongooseMoo-barn/vm/opcodes.go (a flat iota enum, one
// opcode per case in the Execute switch); the concrete set of opcodes
// follows this engine's stack-VM-with-lazy-thunks design rather than the
// teacher's MOO-statement opcodes.
type OpCode byte

const (
	OpHalt OpCode = iota
	OpPushConstant
	OpPushNone
	OpPop
	OpDup
	OpLoadLet            // pop one, bind in current frame as a let (fails to redeclare unless shadowed)
	OpLoadMut            // pop one, bind in current frame as a mut (freely reassignable)
	OpGetVariable        // push a shared-cell clone of a bound variable, walking parent frames
	OpGetMutableVariable // same, but fails if the resolved binding is a let
	OpNewScopeValue // push a StackValue(ScopeId(n)) thunk without evaluating it
	OpResolve       // force a StackValue thunk on top of stack to a concrete Value
	OpBinary
	OpUnary
	OpJump
	OpJumpIfFalse
	OpJumpIfTrue
	OpCall     // call a named scope as a function
	OpCallSelf // reserved: Run has no handler for it and reports UnsupportedOperation; set_self is a Scope flag honoured by OpCall
	OpRet
	OpCallMemo  // call a Memo-lifecycle scope, consulting/populating its cache
	OpCallModule
	OpCallModuleExtension
	OpCallModuleMutableExtension
	OpCallModuleVM
	OpCast
	OpMakeList
	OpMakeMap
	OpMakeSet
	OpMakeTuple
	OpSpawn
	OpSend
	OpReceive
	OpBroadcast
)

func (op OpCode) String() string {
	names := [...]string{
		"Halt", "PushConstant", "PushNone", "Pop", "Dup", "LoadLet", "LoadMut",
		"GetVariable", "GetMutableVariable",
		"NewScopeValue", "Resolve", "Binary", "Unary", "Jump", "JumpIfFalse",
		"JumpIfTrue", "Call", "CallSelf", "Ret", "CallMemo", "CallModule",
		"CallModuleExtension", "CallModuleMutableExtension", "CallModuleVM",
		"Cast", "MakeList", "MakeMap", "MakeSet", "MakeTuple", "Spawn", "Send",
		"Receive", "Broadcast",
	}
	if int(op) < len(names) {
		return names[op]
	}
	return "Unknown"
}

// Instruction is one decoded bytecode instruction. A is the primary
// operand (constant index, jump target, scope id, binary/unary op code,
// cast target type...); B is a secondary operand used by a handful of
// opcodes (argument count for scope, spawn and module calls).
// S carries any string operand (variable name, module name, function
// name). Keeping one flat struct (rather than per-opcode structs) mirrors
// how MongooseMoo-barn/vm/opcodes.go's Execute switch pulls operands
// directly off an untyped operand list per opcode.
type Instruction struct {
	Op OpCode
	A  int
	B  int
	S  string
}

func Push(idx int) Instruction              { return Instruction{Op: OpPushConstant, A: idx} }
func PushNone() Instruction                 { return Instruction{Op: OpPushNone} }
func Pop() Instruction                      { return Instruction{Op: OpPop} }
func Dup() Instruction                      { return Instruction{Op: OpDup} }
// LoadLet pops the top of stack and binds it as a let in the current
// frame. Redeclaring an existing let in the same frame without going
// through LoadLetShadow pushes a RuntimeError instead of overwriting it
// (spec.md §4.3).
func LoadLet(name string) Instruction { return Instruction{Op: OpLoadLet, S: name} }

// LoadLetShadow is LoadLet with the build-time shadow flag set, letting a
// let binding be deliberately redeclared (e.g. `let x = 1; let x = x + 1`).
func LoadLetShadow(name string) Instruction { return Instruction{Op: OpLoadLet, A: 1, S: name} }

// LoadMut pops the top of stack and binds it as a mut in the current
// frame, overwriting any existing binding of the same name regardless of
// its own let/mut tag.
func LoadMut(name string) Instruction { return Instruction{Op: OpLoadMut, S: name} }

// GetVariable pushes a shared-cell clone of the named binding, resolved
// upward through parent frames; a missing name pushes a
// VariableDoesNotExist error value.
func GetVariable(name string) Instruction { return Instruction{Op: OpGetVariable, S: name} }

// GetMutableVariable is GetVariable but fails (pushes a
// VariableDoesNotExist error value) when the resolved binding is a let.
func GetMutableVariable(name string) Instruction {
	return Instruction{Op: OpGetMutableVariable, S: name}
}
func Binary(op value.BinaryOp) Instruction  { return Instruction{Op: OpBinary, A: int(op)} }
func Unary(op value.UnaryOp) Instruction    { return Instruction{Op: OpUnary, A: int(op)} }
func Jump(target int) Instruction           { return Instruction{Op: OpJump, A: target} }
func JumpIfFalse(target int) Instruction    { return Instruction{Op: OpJumpIfFalse, A: target} }
func JumpIfTrue(target int) Instruction     { return Instruction{Op: OpJumpIfTrue, A: target} }
func Call(scopeID, argc int) Instruction    { return Instruction{Op: OpCall, A: scopeID, B: argc} }
func CallMemo(scopeID, argc int) Instruction {
	return Instruction{Op: OpCallMemo, A: scopeID, B: argc}
}
func Ret() Instruction { return Instruction{Op: OpRet} }
func CallModule(module, fn string, argc int) Instruction {
	return Instruction{Op: OpCallModule, S: module + "." + fn, B: argc}
}
func MakeList(n int) Instruction  { return Instruction{Op: OpMakeList, A: n} }
func MakeMap(n int) Instruction   { return Instruction{Op: OpMakeMap, A: n} }
func MakeSet(n int) Instruction   { return Instruction{Op: OpMakeSet, A: n} }
func MakeTuple(n int) Instruction { return Instruction{Op: OpMakeTuple, A: n} }
func Spawn(scopeID, argc int) Instruction { return Instruction{Op: OpSpawn, A: scopeID, B: argc} }

// Send pops nargs values off the stack and restores their push order; the
// first one pushed (and so the first in that restored order) is the
// target (event name string or pid), the rest are the payload (spec.md
// §4.3).
func Send(nargs int) Instruction { return Instruction{Op: OpSend, A: nargs} }

// Receive pops a process id and blocks on its mailbox. timeoutMs of zero
// blocks forever; a positive value bounds the wait and yields a
// TimeoutError (value.ErrTimeout) if nothing arrives in time.
func Receive(timeoutMs int) Instruction { return Instruction{Op: OpReceive, A: timeoutMs} }
func Broadcast() Instruction            { return Instruction{Op: OpBroadcast} }
func Halt() Instruction                 { return Instruction{Op: OpHalt} }
