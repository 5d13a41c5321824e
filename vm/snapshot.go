package vm

import (
	"fmt"

	"rigz/codec"
	"rigz/value"
)

// Snapshot serializes the whole VM — not just its static program but the
// live execution state too — into the binary format spec.md §4.8
// mandates: "options, current scope pointer, operand stack, scopes,
// frames, lifecycles, constants." Lifecycle tags are folded into each
// scope's own encoding (encodeScope writes Lifecycle.Kind/Name inline)
// rather than a separate redundant section, since this engine keeps a
// Scope's lifecycle as a field of the scope itself rather than a parallel
// table. Capturing Stack/Frames lets a caller snapshot mid-execution (see
// RunBudget) and resume from the exact paused instruction, per scenario S7.
func (vm *VM) Snapshot() []byte {
	var out []byte
	out = append(out, vm.Opts.ToBytes()...)

	currentScope := int64(-1)
	if len(vm.Frames) > 0 {
		currentScope = int64(vm.Frames[len(vm.Frames)-1].ScopeID)
	}
	out = codec.PutInt64(out, currentScope)

	out = codec.PutUint64(out, uint64(len(vm.Stack)))
	for _, sv := range vm.Stack {
		out = encodeStackValue(out, sv)
	}

	out = codec.PutUint64(out, uint64(len(vm.Scopes)))
	for _, s := range vm.Scopes {
		out = encodeScope(out, s)
	}

	out = codec.PutUint64(out, uint64(len(vm.Frames)))
	for _, f := range vm.Frames {
		out = encodeFrame(out, f)
	}

	out = codec.PutUint64(out, uint64(len(vm.Constants)))
	for _, c := range vm.Constants {
		out = append(out, c.ToBytes()...)
	}
	return out
}

// encodeStackValue writes one operand stack entry: a tag byte followed by
// the tag's payload (a full Value for a resolved cell, a bare scope/
// constant index for a still-lazy thunk).
func encodeStackValue(out []byte, sv StackValue) []byte {
	out = codec.PutByte(out, byte(sv.tag))
	switch sv.tag {
	case tagValue:
		out = append(out, sv.cell.Get().ToBytes()...)
	case tagScopeID:
		out = codec.PutInt64(out, int64(sv.scopeID))
	case tagConstant:
		out = codec.PutInt64(out, int64(sv.constant))
	}
	return out
}

func decodeStackValue(c *codec.Cursor) (StackValue, error) {
	tag, err := c.Byte("vm.snapshot.stack.tag")
	if err != nil {
		return StackValue{}, err
	}
	switch stackTag(tag) {
	case tagValue:
		v, err := value.Decode(c, "vm.snapshot.stack.value")
		if err != nil {
			return StackValue{}, err
		}
		return ValueStack(v), nil
	case tagScopeID:
		id, err := c.Int64("vm.snapshot.stack.scopeID")
		if err != nil {
			return StackValue{}, err
		}
		return ScopeStack(int(id)), nil
	case tagConstant:
		idx, err := c.Int64("vm.snapshot.stack.constant")
		if err != nil {
			return StackValue{}, err
		}
		return ConstantStack(int(idx)), nil
	default:
		return StackValue{}, &RuntimeError{Value: value.Runtimef("unknown stack value tag: %d", tag)}
	}
}

// encodeFrame writes one call frame: its scope/pc/parent/self-binding,
// then its variable table as a count followed by alternating
// name/mut-flag/value triples (the spec's generic Map<K,V> shape, with the
// mut flag riding alongside each value).
func encodeFrame(out []byte, f *CallFrame) []byte {
	out = codec.PutInt64(out, int64(f.ScopeID))
	out = codec.PutInt64(out, int64(f.PC))
	out = codec.PutInt64(out, int64(f.Parent))
	out = codec.PutBool(out, f.SetSelf)
	out = codec.PutBool(out, f.Self != nil)
	if f.Self != nil {
		out = append(out, f.Self.Get().ToBytes()...)
	}

	out = codec.PutUint64(out, uint64(len(f.Variables)))
	for name, b := range f.Variables {
		out = codec.PutString(out, name)
		out = codec.PutBool(out, b.mut)
		out = append(out, b.cell.Get().ToBytes()...)
	}
	return out
}

func decodeFrame(c *codec.Cursor) (*CallFrame, error) {
	scopeID, err := c.Int64("vm.snapshot.frame.scopeID")
	if err != nil {
		return nil, err
	}
	pc, err := c.Int64("vm.snapshot.frame.pc")
	if err != nil {
		return nil, err
	}
	parent, err := c.Int64("vm.snapshot.frame.parent")
	if err != nil {
		return nil, err
	}
	setSelf, err := c.Bool("vm.snapshot.frame.setSelf")
	if err != nil {
		return nil, err
	}
	hasSelf, err := c.Bool("vm.snapshot.frame.hasSelf")
	if err != nil {
		return nil, err
	}
	var self *value.Cell
	if hasSelf {
		v, err := value.Decode(c, "vm.snapshot.frame.self")
		if err != nil {
			return nil, err
		}
		self = value.NewCell(v)
	}

	nVars, err := c.USize("vm.snapshot.frame.variables.len")
	if err != nil {
		return nil, err
	}
	vars := make(map[string]*binding, nVars)
	for i := 0; i < nVars; i++ {
		name, err := c.String("vm.snapshot.frame.variable.name")
		if err != nil {
			return nil, err
		}
		mut, err := c.Bool("vm.snapshot.frame.variable.mut")
		if err != nil {
			return nil, err
		}
		v, err := value.Decode(c, "vm.snapshot.frame.variable.value")
		if err != nil {
			return nil, err
		}
		vars[name] = &binding{cell: value.NewCell(v), mut: mut}
	}

	return &CallFrame{
		ScopeID:   int(scopeID),
		PC:        int(pc),
		Parent:    int(parent),
		SetSelf:   setSelf,
		Self:      self,
		Variables: vars,
	}, nil
}

func encodeScope(out []byte, s *Scope) []byte {
	out = codec.PutInt64(out, int64(s.ID))
	out = codec.PutString(out, s.Name)
	out = codec.PutByte(out, s.Lifecycle.Kind.discriminant())
	out = codec.PutString(out, s.Lifecycle.Name)
	out = codec.PutBool(out, s.SetSelf)

	out = codec.PutUint64(out, uint64(len(s.Args)))
	for _, a := range s.Args {
		out = codec.PutString(out, a)
	}

	out = codec.PutUint64(out, uint64(len(s.Instructions)))
	for _, instr := range s.Instructions {
		out = codec.PutByte(out, byte(instr.Op))
		out = codec.PutInt64(out, int64(instr.A))
		out = codec.PutInt64(out, int64(instr.B))
		out = codec.PutString(out, instr.S)
	}
	return out
}

// LoadSnapshot rebuilds a VM's static definition from bytes produced by
// Snapshot: a fresh VM with an empty module registry (callers wire their
// own modules back in afterwards via vm.Modules.Register, the same way a
// restored MongooseMoo-barn db.Store needs its builtins.Registry rebuilt
// by the process that loads it).
func LoadSnapshot(data []byte) (*VM, error) {
	c := codec.NewCursor(data)

	opts, err := OptionsFromBytes(c)
	if err != nil {
		return nil, err
	}

	vm := New(opts, nil)

	currentScope, err := c.Int64("vm.snapshot.currentScope")
	if err != nil {
		return nil, err
	}

	nStack, err := c.USize("vm.snapshot.stack.len")
	if err != nil {
		return nil, err
	}
	stack := make([]StackValue, 0, nStack)
	for i := 0; i < nStack; i++ {
		sv, err := decodeStackValue(c)
		if err != nil {
			return nil, err
		}
		stack = append(stack, sv)
	}

	nScopes, err := c.USize("vm.snapshot.scopes.len")
	if err != nil {
		return nil, err
	}
	for i := 0; i < nScopes; i++ {
		s, err := decodeScope(c)
		if err != nil {
			return nil, err
		}
		vm.AddScope(s)
	}

	nFrames, err := c.USize("vm.snapshot.frames.len")
	if err != nil {
		return nil, err
	}
	frames := make([]*CallFrame, 0, nFrames)
	for i := 0; i < nFrames; i++ {
		f, err := decodeFrame(c)
		if err != nil {
			return nil, err
		}
		frames = append(frames, f)
	}
	if len(frames) > 0 && int64(frames[len(frames)-1].ScopeID) != currentScope {
		return nil, fmt.Errorf("vm.snapshot: current scope pointer %d does not match top frame's scope %d", currentScope, frames[len(frames)-1].ScopeID)
	}

	nConst, err := c.USize("vm.snapshot.constants.len")
	if err != nil {
		return nil, err
	}
	for i := 0; i < nConst; i++ {
		v, err := value.Decode(c, "vm.snapshot.constants[]")
		if err != nil {
			return nil, err
		}
		vm.Constants = append(vm.Constants, v)
	}

	vm.Stack = stack
	vm.Frames = frames
	return vm, nil
}

func decodeScope(c *codec.Cursor) (*Scope, error) {
	id, err := c.Int64("vm.snapshot.scope.id")
	if err != nil {
		return nil, err
	}
	name, err := c.String("vm.snapshot.scope.name")
	if err != nil {
		return nil, err
	}
	lifecycleKind, err := c.Byte("vm.snapshot.scope.lifecycle.kind")
	if err != nil {
		return nil, err
	}
	lifecycleName, err := c.String("vm.snapshot.scope.lifecycle.name")
	if err != nil {
		return nil, err
	}
	setSelf, err := c.Bool("vm.snapshot.scope.setSelf")
	if err != nil {
		return nil, err
	}

	nArgs, err := c.USize("vm.snapshot.scope.args.len")
	if err != nil {
		return nil, err
	}
	args := make([]string, 0, nArgs)
	for i := 0; i < nArgs; i++ {
		a, err := c.String("vm.snapshot.scope.args[]")
		if err != nil {
			return nil, err
		}
		args = append(args, a)
	}

	nInstr, err := c.USize("vm.snapshot.scope.instructions.len")
	if err != nil {
		return nil, err
	}
	instrs := make([]Instruction, 0, nInstr)
	for i := 0; i < nInstr; i++ {
		op, err := c.Byte("vm.snapshot.scope.instruction.op")
		if err != nil {
			return nil, err
		}
		a, err := c.Int64("vm.snapshot.scope.instruction.a")
		if err != nil {
			return nil, err
		}
		b, err := c.Int64("vm.snapshot.scope.instruction.b")
		if err != nil {
			return nil, err
		}
		s, err := c.String("vm.snapshot.scope.instruction.s")
		if err != nil {
			return nil, err
		}
		instrs = append(instrs, Instruction{Op: OpCode(op), A: int(a), B: int(b), S: s})
	}

	return &Scope{
		ID:           int(id),
		Name:         name,
		Instructions: instrs,
		Args:         args,
		SetSelf:      setSelf,
		Lifecycle:    Lifecycle{Kind: LifecycleKind(lifecycleKind), Name: lifecycleName},
	}, nil
}
