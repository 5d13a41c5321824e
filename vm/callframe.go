package vm

import "rigz/value"

// CallFrame is one entry on the VM's call stack. Parent is an index into
// vm.Frames pointing at the frame variables resolve against when not
// found locally (-1 for none). A called scope's Parent is the calling
// frame, and a scope forced as a lazy thunk (a StackValue ScopeId) gets
// the frame on top at the moment it is forced. Grounded on
// MongooseMoo-barn/vm/vm.go's StackFrame (Locals/BasePointer/IP), with
// Parent added per original_source's crates/vm/src/call_frame.rs
// CallFrame.parent field, which this engine's lexical-ish scoping over
// lazy thunks actually depends on.
// binding pairs a variable's shared cell with the let/mut tag spec.md §3
// "Variable binding" and §4.3 require: a let binding rejects a same-frame
// LoadLet redeclaration unless the shadow flag is set at build time; a mut
// binding is freely reassignable; GetMutableVariable must fail when the
// resolved binding is a let.
type binding struct {
	cell *value.Cell
	mut  bool
}

type CallFrame struct {
	ScopeID   int
	PC        int
	Variables map[string]*binding
	Parent    int // index into VM.Frames, or -1 for the root frame
	SetSelf   bool
	Self      *value.Cell
}

func newCallFrame(scopeID, parent int) *CallFrame {
	return &CallFrame{
		ScopeID:   scopeID,
		Variables: make(map[string]*binding),
		Parent:    parent,
	}
}

// lookupVar resolves name in this frame's variables, walking Parent links
// when not found locally, per spec.md §3 CallFrame semantics.
func (vm *VM) lookupVar(frameIdx int, name string) (*binding, bool) {
	for frameIdx >= 0 {
		f := vm.Frames[frameIdx]
		if b, ok := f.Variables[name]; ok {
			return b, true
		}
		frameIdx = f.Parent
	}
	return nil, false
}
