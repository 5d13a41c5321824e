// Package vm implements the bytecode virtual machine: the stack/call-frame
// execution model, module dispatch, memoization, lifecycle-driven scope
// registration, and the binary snapshot codec from spec.md §4. Grounded
// throughout on MongooseMoo-barn/vm/vm.go's fetch-decode-execute loop
// (Push/Pop/ReadByte/Execute), restructured around this engine's own
// instruction set and StackValue thunk model (see stackvalue.go).
package vm

import (
	"context"
	"fmt"
	"time"

	"rigz/module"
	"rigz/process"
	"rigz/value"
)

// VM is one instance of the engine: a constant pool, a table of compiled
// Scopes, an operand stack, a call stack, and the module/process
// subsystems it dispatches into. Grounded on
// MongooseMoo-barn/vm/vm.go's VM struct (Stack/SP/Frames/FP plus a
// Builtins registry), generalized to many named Scopes instead of one
// Program and a real module.Registry instead of a flat builtin map.
type VM struct {
	Opts Options

	Constants []value.Value
	Scopes    []*Scope

	Stack  []StackValue
	Frames []*CallFrame

	Modules   *module.Registry
	Processes *process.Manager

	memo map[int]map[string]value.Value

	afterHandlers map[string][]int
	composites    map[string]int

	trace *tracer
	depth int
}

func New(opts Options, modules *module.Registry) *VM {
	if modules == nil {
		modules = module.NewRegistry()
	}
	vm := &VM{
		Opts:          opts,
		Modules:       modules,
		memo:          make(map[int]map[string]value.Value),
		afterHandlers: make(map[string][]int),
		composites:    make(map[string]int),
		trace:         newTracer(opts.EnableLogging),
	}
	vm.Processes = process.NewManager(vm, process.ModeCooperative)
	return vm
}

// UseThreadedProcesses switches the process manager to goroutine-backed
// scheduling, per spec.md's dual concurrency model.
func (vm *VM) UseThreadedProcesses() {
	vm.Processes = process.NewManager(vm, process.ModeThreaded)
}

func (vm *VM) AddConstant(v value.Value) int {
	vm.Constants = append(vm.Constants, v)
	return len(vm.Constants) - 1
}

func (vm *VM) constant(idx int) (value.Value, error) {
	if idx < 0 || idx >= len(vm.Constants) {
		return value.None, &RuntimeError{Value: value.Runtimef("constant %d out of range", idx)}
	}
	return vm.Constants[idx], nil
}

// AddScope registers a compiled Scope and indexes its Lifecycle tag, if
// any, into the VM's dispatch tables. An On-lifecycle scope is registered
// as a real process.Manager process here rather than at a separate "run
// start" hook, since this engine has no lifetime distinct from the VM's
// own construction (spec.md §4.7: "created eagerly for every On-tagged
// scope at VM run start").
func (vm *VM) AddScope(s *Scope) int {
	s.ID = len(vm.Scopes)
	vm.Scopes = append(vm.Scopes, s)
	switch s.Lifecycle.Kind {
	case LifecycleOn:
		vm.Processes.RegisterOn(s.ID, s.Lifecycle.Name)
	case LifecycleAfter:
		vm.afterHandlers[s.Lifecycle.Name] = append(vm.afterHandlers[s.Lifecycle.Name], s.ID)
	case LifecycleComposite:
		vm.composites[s.Lifecycle.Name] = s.ID
	}
	return s.ID
}

func (vm *VM) scope(id int) (*Scope, error) {
	if id < 0 || id >= len(vm.Scopes) {
		return nil, &RuntimeError{Value: errScopeMissing(id)}
	}
	return vm.Scopes[id], nil
}

// Run is the top-level entry point: invoke scopeID with args and return
// its result, translating a propagating ErrorValue into a Go error at
// this unwind boundary (spec.md §4.7: "the only two unwind sites are
// Eval() and Test()").
func (vm *VM) Run(scopeID int, args []value.Value) (value.Value, error) {
	return vm.Eval(scopeID, args)
}

// Eval is one of the engine's two unwind boundaries: it runs scopeID and
// converts a terminal ErrorValue result into a returned error rather than
// letting it keep propagating as a value.
func (vm *VM) Eval(scopeID int, args []value.Value) (value.Value, error) {
	v, err := vm.callScope(scopeID, args, -1)
	if err != nil {
		return value.None, err
	}
	if ev, ok := v.(value.ErrorValue); ok {
		return v, &RuntimeError{Value: ev}
	}
	return v, nil
}

// Test runs a Test-lifecycle scope and reports pass/fail, the engine's
// other unwind boundary: any ErrorValue or false-returning scope is a
// failing test, never a Go panic.
func (vm *VM) Test(scopeID int) (bool, error) {
	s, err := vm.scope(scopeID)
	if err != nil {
		return false, err
	}
	if s.Lifecycle.Kind != LifecycleTest {
		return false, fmt.Errorf("scope %d is not a Test scope", scopeID)
	}
	v, err := vm.callScope(scopeID, nil, -1)
	if err != nil {
		return false, err
	}
	if ev, ok := v.(value.ErrorValue); ok {
		return false, &RuntimeError{Value: ev}
	}
	return v.Truthy(), nil
}

// Reset clears the operand and call stacks (but keeps Scopes/Constants/
// memo cache), letting one VM instance run a fresh top-level evaluation.
func (vm *VM) Reset() {
	vm.Stack = vm.Stack[:0]
	vm.Frames = vm.Frames[:0]
	vm.depth = 0
}

// RunProcess implements process.Runner so a process.Manager can drive
// scopes without the process package importing vm.
func (vm *VM) RunProcess(scopeID int, args []value.Value) (value.Value, error) {
	return vm.Eval(scopeID, args)
}

// CallScope implements module.VMHost so a module can invoke a scope as a
// callback (e.g. `list.each(fn)`).
func (vm *VM) CallScope(scopeID int, args []value.Value) (value.Value, error) {
	v, err := vm.callScope(scopeID, args, -1)
	if err != nil {
		return value.None, err
	}
	return v, nil
}

// RunAfter runs every After-lifecycle handler registered for stage.
func (vm *VM) RunAfter(stage Stage, args []value.Value) error {
	for _, id := range vm.afterHandlers[string(stage)] {
		if _, err := vm.callScope(id, args, -1); err != nil {
			return err
		}
	}
	return nil
}

// Construct invokes the Composite-lifecycle constructor registered for
// typeName, the `rigz_type` family's counterpart for building instances.
func (vm *VM) Construct(typeName string, args []value.Value) (value.Value, error) {
	id, ok := vm.composites[typeName]
	if !ok {
		return value.None, &RuntimeError{Value: value.NewError(value.ErrInvalidModule, "no composite type: "+typeName)}
	}
	return vm.callScope(id, args, -1)
}

// callScope pushes a new CallFrame for scopeID, binds args to its formal
// parameters, runs its instructions to completion, and pops the frame.
// parentFrame is the frame index new variable lookups should chain to
// when not found locally (see CallFrame.Parent); -1 means "no parent",
// used for top-level Eval/Test/process entry points.
func (vm *VM) callScope(scopeID int, args []value.Value, parentFrame int) (value.Value, error) {
	vm.depth++
	defer func() { vm.depth-- }()
	if vm.Opts.MaxDepth > 0 && uint64(vm.depth) > vm.Opts.MaxDepth {
		return value.None, &RuntimeError{Value: errMaxDepth(vm.depth)}
	}

	s, err := vm.scope(scopeID)
	if err != nil {
		return value.None, err
	}

	frame := newCallFrame(scopeID, parentFrame)
	for i, name := range s.Args {
		var v value.Value = value.None
		if i < len(args) {
			v = args[i]
		}
		// Call arguments are bound as mut: Scope.Args carries no per-arg
		// let/mut tag (out of scope for this engine's builder), and a
		// formal parameter being freely reassignable inside its own body
		// is the more useful default.
		frame.Variables[name] = &binding{cell: value.NewCell(v), mut: true}
	}
	if s.SetSelf && len(args) > 0 {
		frame.SetSelf = true
		frame.Self = value.NewCell(args[0])
	}

	vm.Frames = append(vm.Frames, frame)
	frameIdx := len(vm.Frames) - 1

	vm.trace.scopeEnter(s.Name, vm.depth)
	result, err := vm.run(frameIdx)
	vm.trace.scopeExit(s.Name, vm.depth, result.String())

	vm.Frames = vm.Frames[:frameIdx]
	if !vm.Opts.DisableVariableCleanup {
		frame.Variables = nil
	}
	return result, err
}

// evalScopeAsExpression runs scopeID as the thunk StackValue.Resolve
// needs: a zero-argument call chained to whichever frame is on top when
// the thunk is forced. A tagScopeID StackValue carries no frame
// reference, so the thunk resolves against the frame that forces it, not
// necessarily the frame that created it.
func (vm *VM) evalScopeAsExpression(scopeID int) (value.Value, error) {
	parent := -1
	if len(vm.Frames) > 0 {
		parent = len(vm.Frames) - 1
	}
	return vm.callScope(scopeID, nil, parent)
}

// run is the fetch-decode-execute loop for the frame at vm.Frames[frameIdx],
// run to completion.
func (vm *VM) run(frameIdx int) (value.Value, error) {
	_, result, err := vm.RunBudget(frameIdx, -1)
	return result, err
}

// RunBudget is the same fetch-decode-execute loop as run, bounded to at
// most maxSteps instructions (maxSteps <= 0 means unlimited). finished
// reports whether the frame reached Halt, Ret, or ran off the end of its
// instructions within that budget; when it is false, the frame (and
// vm.Stack/vm.Frames) is left exactly where execution paused, so a caller
// can take a snapshot mid-execution and later resume by calling RunBudget
// again on the restored VM — the hook spec.md §8 scenario S7 requires
// ("take a snapshot before the last instruction and continue from that
// exact point"). Exported because tests exercise it directly; ordinary
// execution always goes through run/callScope with an unlimited budget.
func (vm *VM) RunBudget(frameIdx int, maxSteps int) (finished bool, result value.Value, err error) {
	frame := vm.Frames[frameIdx]
	s := vm.Scopes[frame.ScopeID]

	for steps := 0; maxSteps <= 0 || steps < maxSteps; steps++ {
		if frame.PC >= len(s.Instructions) {
			return true, value.None, nil
		}
		instr := s.Instructions[frame.PC]
		frame.PC++

		switch instr.Op {
		case OpHalt:
			return true, value.None, nil

		case OpPushConstant:
			v, err := vm.constant(instr.A)
			if err != nil {
				return true, value.None, err
			}
			vm.push(ValueStack(v))

		case OpPushNone:
			vm.push(ValueStack(value.None))

		case OpPop:
			if _, err := vm.pop(); err != nil {
				return true, value.None, err
			}

		case OpDup:
			top, err := vm.peek()
			if err != nil {
				return true, value.None, err
			}
			vm.push(top)

		case OpLoadLet:
			sv, err := vm.pop()
			if err != nil {
				return true, value.None, err
			}
			cell, err := sv.Cell(vm)
			if err != nil {
				return true, value.None, err
			}
			if existing, ok := frame.Variables[instr.S]; ok && !existing.mut && instr.A == 0 {
				vm.push(ValueStack(errLetRedeclared(instr.S)))
				break
			}
			frame.Variables[instr.S] = &binding{cell: cell, mut: false}

		case OpLoadMut:
			sv, err := vm.pop()
			if err != nil {
				return true, value.None, err
			}
			cell, err := sv.Cell(vm)
			if err != nil {
				return true, value.None, err
			}
			frame.Variables[instr.S] = &binding{cell: cell, mut: true}

		case OpGetVariable:
			b, ok := vm.lookupVar(frameIdx, instr.S)
			if !ok {
				vm.push(ValueStack(errVariableMissing(instr.S)))
				break
			}
			vm.push(CellStack(b.cell))

		case OpGetMutableVariable:
			b, ok := vm.lookupVar(frameIdx, instr.S)
			if !ok || !b.mut {
				vm.push(ValueStack(errVariableMissing(instr.S)))
				break
			}
			vm.push(CellStack(b.cell))

		case OpNewScopeValue:
			vm.push(ScopeStack(instr.A))

		case OpResolve:
			sv, err := vm.pop()
			if err != nil {
				return true, value.None, err
			}
			v, err := sv.Resolve(vm)
			if err != nil {
				return true, value.None, err
			}
			vm.push(ValueStack(v))

		case OpBinary:
			rhs, lhs, err := vm.popPairResolved()
			if err != nil {
				return true, value.None, err
			}
			vm.push(ValueStack(value.Apply(value.BinaryOp(instr.A), lhs, rhs)))

		case OpUnary:
			sv, err := vm.pop()
			if err != nil {
				return true, value.None, err
			}
			v, err := sv.Resolve(vm)
			if err != nil {
				return true, value.None, err
			}
			vm.push(ValueStack(value.ApplyUnary(value.UnaryOp(instr.A), v)))

		case OpJump:
			frame.PC = instr.A

		case OpJumpIfFalse:
			sv, err := vm.pop()
			if err != nil {
				return true, value.None, err
			}
			v, err := sv.Resolve(vm)
			if err != nil {
				return true, value.None, err
			}
			if !v.Truthy() {
				frame.PC = instr.A
			}

		case OpJumpIfTrue:
			sv, err := vm.pop()
			if err != nil {
				return true, value.None, err
			}
			v, err := sv.Resolve(vm)
			if err != nil {
				return true, value.None, err
			}
			if v.Truthy() {
				frame.PC = instr.A
			}

		case OpCall:
			args, err := vm.popArgsResolved(instr.B)
			if err != nil {
				return true, value.None, err
			}
			v, err := vm.callScope(instr.A, args, frameIdx)
			if err != nil {
				return true, value.None, err
			}
			vm.push(ValueStack(v))

		case OpCallMemo:
			args, err := vm.popArgsResolved(instr.B)
			if err != nil {
				return true, value.None, err
			}
			v, err := vm.callMemoized(instr.A, args, frameIdx)
			if err != nil {
				return true, value.None, err
			}
			vm.push(ValueStack(v))

		case OpRet:
			sv, err := vm.pop()
			if err != nil {
				// An empty operand stack makes the scope's result an
				// EmptyStack error value rather than aborting the caller.
				return true, errEmptyStack(), nil
			}
			v, err := sv.Resolve(vm)
			return true, v, err

		case OpCallModule:
			module, fn := splitModuleFn(instr.S)
			args, err := vm.popArgsResolved(instr.B)
			if err != nil {
				return true, value.None, err
			}
			if vm.Opts.DisableModules {
				vm.push(ValueStack(value.NewError(value.ErrInvalidModule, "modules are disabled")))
				break
			}
			vm.push(ValueStack(vm.Modules.Dispatch(module, fn, args)))

		case OpCallModuleExtension:
			moduleName, fn := splitModuleFn(instr.S)
			args, err := vm.popArgsResolved(instr.B)
			if err != nil {
				return true, value.None, err
			}
			thisSV, err := vm.pop()
			if err != nil {
				return true, value.None, err
			}
			this, err := thisSV.Resolve(vm)
			if err != nil {
				return true, value.None, err
			}
			vm.push(ValueStack(vm.Modules.DispatchExtension(moduleName, fn, this, args)))

		case OpCallModuleMutableExtension:
			moduleName, fn := splitModuleFn(instr.S)
			args, err := vm.popArgsResolved(instr.B)
			if err != nil {
				return true, value.None, err
			}
			thisSV, err := vm.pop()
			if err != nil {
				return true, value.None, err
			}
			cell, err := thisSV.Cell(vm)
			if err != nil {
				return true, value.None, err
			}
			vm.push(ValueStack(vm.Modules.DispatchMutableExtension(moduleName, fn, cell, args)))

		case OpCallModuleVM:
			moduleName, fn := splitModuleFn(instr.S)
			args, err := vm.popArgsResolved(instr.B)
			if err != nil {
				return true, value.None, err
			}
			vm.push(ValueStack(vm.Modules.DispatchVM(moduleName, fn, vm, args)))

		case OpCast:
			sv, err := vm.pop()
			if err != nil {
				return true, value.None, err
			}
			v, err := sv.Resolve(vm)
			if err != nil {
				return true, value.None, err
			}
			vm.push(ValueStack(castTo(v, value.TypeCode(instr.A))))

		case OpMakeList:
			items, err := vm.popArgsResolved(instr.A)
			if err != nil {
				return true, value.None, err
			}
			vm.push(ValueStack(value.NewList(items...)))

		case OpMakeTuple:
			items, err := vm.popArgsResolved(instr.A)
			if err != nil {
				return true, value.None, err
			}
			vm.push(ValueStack(value.NewTuple(items...)))

		case OpMakeSet:
			items, err := vm.popArgsResolved(instr.A)
			if err != nil {
				return true, value.None, err
			}
			vm.push(ValueStack(value.NewSet(items...)))

		case OpMakeMap:
			items, err := vm.popArgsResolved(instr.A * 2)
			if err != nil {
				return true, value.None, err
			}
			m := value.NewMap()
			for i := 0; i+1 < len(items); i += 2 {
				m.Set(items[i], items[i+1])
			}
			vm.push(ValueStack(m))

		case OpSpawn:
			args, err := vm.popArgsResolved(instr.B)
			if err != nil {
				return true, value.None, err
			}
			p := vm.Processes.Spawn(instr.A, args)
			vm.push(ValueStack(value.NewInt(p.ID)))

		case OpSend:
			args, err := vm.popArgsResolved(instr.A)
			if err != nil {
				return true, value.None, err
			}
			if len(args) == 0 {
				vm.push(ValueStack(value.NewError(value.ErrRuntime, "send: requires at least a target argument")))
				break
			}
			target, payload := args[0], args[1:]
			if name, ok := target.(value.StringValue); ok {
				ids, matched := vm.Processes.SendEvent(string(name), payload)
				if !matched {
					vm.push(ValueStack(value.NewError(value.ErrRuntime, "send: no process registered for event "+string(name))))
					break
				}
				vm.push(ValueStack(pidsToValue(ids)))
				break
			}
			id, errv, ok := value.ToIntChecked(target)
			if !ok {
				vm.push(ValueStack(errv))
				break
			}
			if !vm.Processes.Send(int64(id), packPayload(payload)) {
				vm.push(ValueStack(value.NewError(value.ErrRuntime, fmt.Sprintf("send: no process %d", int64(id)))))
				break
			}
			vm.push(ValueStack(pidsToValue([]int64{int64(id)})))

		case OpReceive:
			sv, err := vm.pop()
			if err != nil {
				return true, value.None, err
			}
			v, err := sv.Resolve(vm)
			if err != nil {
				return true, value.None, err
			}
			id, _, ok := value.ToIntChecked(v)
			if !ok {
				vm.push(ValueStack(value.NewError(value.ErrRuntime, "receive: not a process id")))
				break
			}
			ctx := context.Background()
			cancel := func() {}
			if instr.A > 0 {
				ctx, cancel = context.WithTimeout(ctx, time.Duration(instr.A)*time.Millisecond)
			}
			got, ok := vm.Processes.Receive(ctx, int64(id))
			cancel()
			if !ok {
				if instr.A > 0 && ctx.Err() != nil {
					vm.push(ValueStack(value.NewError(value.ErrTimeout, fmt.Sprintf("receive on process %d timed out after %dms", id, instr.A))))
					break
				}
				vm.push(ValueStack(value.None))
				break
			}
			vm.push(ValueStack(got))

		case OpBroadcast:
			sv, err := vm.pop()
			if err != nil {
				return true, value.None, err
			}
			v, err := sv.Resolve(vm)
			if err != nil {
				return true, value.None, err
			}
			vm.Processes.Broadcast(v)

		default:
			return true, value.None, &RuntimeError{Value: value.NewError(value.ErrUnsupportedOperation, instr.Op.String())}
		}
	}
	return false, value.None, nil
}

// packPayload collapses a Send/receive payload vector into the single
// value a process's mailbox or call arguments expect: none for an empty
// payload, the lone value for a single argument, and a Tuple otherwise.
func packPayload(args []value.Value) value.Value {
	switch len(args) {
	case 0:
		return value.None
	case 1:
		return args[0]
	default:
		return value.NewTuple(args...)
	}
}

// pidsToValue renders the pid(s) a Send targeted as the instruction's
// result: a lone Number for a single pid, a List for several (spec.md
// §4.3 "Push pid or list of pids").
func pidsToValue(pids []int64) value.Value {
	if len(pids) == 1 {
		return value.NewInt(pids[0])
	}
	items := make([]value.Value, len(pids))
	for i, id := range pids {
		items[i] = value.NewInt(id)
	}
	return value.NewList(items...)
}

func splitModuleFn(combined string) (string, string) {
	for i := 0; i < len(combined); i++ {
		if combined[i] == '.' {
			return combined[:i], combined[i+1:]
		}
	}
	return combined, ""
}

func (vm *VM) push(sv StackValue) { vm.Stack = append(vm.Stack, sv) }

func (vm *VM) pop() (StackValue, error) {
	if len(vm.Stack) == 0 {
		return StackValue{}, &RuntimeError{Value: errEmptyStack()}
	}
	sv := vm.Stack[len(vm.Stack)-1]
	vm.Stack = vm.Stack[:len(vm.Stack)-1]
	return sv, nil
}

func (vm *VM) peek() (StackValue, error) {
	if len(vm.Stack) == 0 {
		return StackValue{}, &RuntimeError{Value: errEmptyStack()}
	}
	return vm.Stack[len(vm.Stack)-1], nil
}

func (vm *VM) popPairResolved() (rhs, lhs value.Value, err error) {
	rsv, err := vm.pop()
	if err != nil {
		return value.None, value.None, err
	}
	lsv, err := vm.pop()
	if err != nil {
		return value.None, value.None, err
	}
	rhs, err = rsv.Resolve(vm)
	if err != nil {
		return value.None, value.None, err
	}
	lhs, err = lsv.Resolve(vm)
	if err != nil {
		return value.None, value.None, err
	}
	return rhs, lhs, nil
}

// popArgsResolved pops n StackValues (pushed in left-to-right order, so
// they come off the stack in reverse) and resolves each to a Value.
func (vm *VM) popArgsResolved(n int) ([]value.Value, error) {
	if n == 0 {
		return nil, nil
	}
	out := make([]value.Value, n)
	for i := n - 1; i >= 0; i-- {
		sv, err := vm.pop()
		if err != nil {
			return nil, err
		}
		v, err := sv.Resolve(vm)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func castTo(v value.Value, t value.TypeCode) value.Value {
	switch t {
	case value.TypeBool:
		return value.ToBool(v)
	case value.TypeInt:
		return value.ToInt(v)
	case value.TypeFloat:
		return value.ToFloat(v)
	case value.TypeString:
		return value.ToString(v)
	case value.TypeList:
		l, errv, ok := value.ToListChecked(v)
		if !ok {
			return errv
		}
		return l
	case value.TypeMap:
		m, errv, ok := value.ToMapChecked(v)
		if !ok {
			return errv
		}
		return m
	case value.TypeSet:
		s, errv, ok := value.ToSetChecked(v)
		if !ok {
			return errv
		}
		return s
	case value.TypeType:
		return value.RigzType(v)
	default:
		return v
	}
}
