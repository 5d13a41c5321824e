package vm

import (
	"rigz/module"
	"rigz/value"
)

// Builder constructs a VM's scopes and constant pool programmatically,
// standing in for the front-end (parser/compiler) that spec.md declares
// out of scope. Grounded on
// original_source/crates/vm/src/macros/builder.rs's generate_builder!
// macro (enter_scope/exit_scope/add_instruction/add_constant/
// register_module), translated from Rust's macro-generated trait methods
// into a plain Go struct with chainable methods.
type Builder struct {
	vm      *VM
	current int
}

// NewBuilder starts building against a fresh VM.
func NewBuilder(opts Options, modules *module.Registry) *Builder {
	return &Builder{vm: New(opts, modules)}
}

// On wraps an existing VM so scopes can be added incrementally (e.g. by
// modulestd setup code that needs to register scopes after construction).
func On(vm *VM) *Builder {
	return &Builder{vm: vm}
}

func (b *Builder) VM() *VM { return b.vm }

// EnterScope begins a new ordinary (non-lifecycle) scope named `named`
// and makes it current; instructions added afterwards land in it.
func (b *Builder) EnterScope(named string, args ...string) int {
	s := NewScope(0, named)
	s.Args = args
	id := b.vm.AddScope(s)
	b.current = id
	return id
}

// EnterLifecycleScope is EnterScope plus a Lifecycle tag, registering the
// scope into the VM's On/After/Composite dispatch tables as a side
// effect of AddScope.
func (b *Builder) EnterLifecycleScope(named string, lifecycle Lifecycle, args ...string) int {
	s := NewScope(0, named)
	s.Args = args
	s.Lifecycle = lifecycle
	id := b.vm.AddScope(s)
	b.current = id
	return id
}

// SetSelf marks the current scope as binding its first argument as self.
func (b *Builder) SetSelf() *Builder {
	b.vm.Scopes[b.current].SetSelf = true
	return b
}

// ExitScope emits a Ret instruction in the current scope and switches
// back to scope `to` for subsequent instructions.
func (b *Builder) ExitScope(to int) *Builder {
	b.Emit(Ret())
	b.current = to
	return b
}

// Scope switches which scope subsequent Emit calls append to, without
// creating a new one (used to interleave instructions across sibling
// scopes while building, e.g. a branch's then/else bodies).
func (b *Builder) Scope(id int) *Builder {
	b.current = id
	return b
}

func (b *Builder) CurrentScope() int { return b.current }

// Emit appends instr to the current scope and returns its index, useful
// for later patching a jump target once the destination is known.
func (b *Builder) Emit(instr Instruction) int {
	s := b.vm.Scopes[b.current]
	s.Instructions = append(s.Instructions, instr)
	return len(s.Instructions) - 1
}

// Patch overwrites the A operand of a previously emitted instruction,
// used to back-patch forward jumps once their target offset is known.
func (b *Builder) Patch(scopeID, instrIndex, target int) {
	b.vm.Scopes[scopeID].Instructions[instrIndex].A = target
}

// Here returns the index the next Emit call in the current scope will
// land at — the jump target for "jump to right after this point".
func (b *Builder) Here() int {
	return len(b.vm.Scopes[b.current].Instructions)
}

func (b *Builder) AddConstant(v value.Value) int {
	return b.vm.AddConstant(v)
}

func (b *Builder) RegisterModule(m module.Module) *Builder {
	b.vm.Modules.Register(m)
	return b
}
