// Package module implements the engine's module registry: the pluggable
// ABI (spec.md §2/§4) through which a VM reaches native functionality
// (crypto, config, I/O) without the core VM importing any of it directly.
// Grounded on MongooseMoo-barn/builtins/registry.go's name-keyed dispatch
// table, generalized from a single flat function map to the spec's four
// call shapes (plain, extension, mutable extension, VM-aware).
package module

import "rigz/value"

// VMHost is the narrow interface a module's CallVM functions use to reach
// back into the running VM (e.g. to invoke a scope as a callback). Kept
// here rather than importing the vm package, which would cycle back to
// module; vm.VM implements this the same way MongooseMoo-barn's
// task.ForkCreator lets task.Task create forked tasks without importing
// the scheduler that creates Tasks.
type VMHost interface {
	CallScope(scopeID int, args []value.Value) (value.Value, error)
}

// Module is the ABI every registrable module satisfies. Fn is always the
// bare function name (no module prefix); the registry resolves the
// "module.fn" pair before dispatch.
type Module interface {
	Name() string

	// Call handles `module.fn(args...)`.
	Call(fn string, args []value.Value) (value.Value, error)

	// CallExtension handles `this.fn(args...)` where `this` is read-only
	// from the module's point of view (the receiver is passed by value).
	CallExtension(fn string, this value.Value, args []value.Value) (value.Value, error)

	// CallMutableExtension handles `this.fn(args...)` where fn may mutate
	// the receiver in place; `this` is passed as its backing Cell.
	CallMutableExtension(fn string, this *value.Cell, args []value.Value) (value.Value, error)

	// CallVM handles functions that need to run VM scopes as callbacks,
	// e.g. a `list.each(fn)` implemented by a module rather than a
	// dedicated instruction.
	CallVM(fn string, host VMHost, args []value.Value) (value.Value, error)
}

// Registry maps module names to their Module implementation. A VM holds
// exactly one Registry (see the vm.VM Modules field).
type Registry struct {
	modules map[string]Module
}

func NewRegistry() *Registry {
	return &Registry{modules: make(map[string]Module)}
}

func (r *Registry) Register(m Module) {
	r.modules[m.Name()] = m
}

func (r *Registry) Lookup(name string) (Module, bool) {
	m, ok := r.modules[name]
	return m, ok
}

func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.modules))
	for n := range r.modules {
		names = append(names, n)
	}
	return names
}

// Dispatch resolves moduleName and invokes Call on it, translating a
// missing module/function into the engine's InvalidModule/
// InvalidModuleFunction error kinds rather than a Go error, so VM
// execution can keep treating errors as first-class values.
func (r *Registry) Dispatch(moduleName, fn string, args []value.Value) value.Value {
	m, ok := r.modules[moduleName]
	if !ok {
		return value.NewError(value.ErrInvalidModule, "no such module: "+moduleName)
	}
	v, err := m.Call(fn, args)
	if err != nil {
		return value.NewError(value.ErrInvalidModuleFunction, moduleName+"."+fn+": "+err.Error())
	}
	return v
}

func (r *Registry) DispatchExtension(moduleName, fn string, this value.Value, args []value.Value) value.Value {
	m, ok := r.modules[moduleName]
	if !ok {
		return value.NewError(value.ErrInvalidModule, "no such module: "+moduleName)
	}
	v, err := m.CallExtension(fn, this, args)
	if err != nil {
		return value.NewError(value.ErrInvalidModuleFunction, moduleName+"."+fn+": "+err.Error())
	}
	return v
}

func (r *Registry) DispatchMutableExtension(moduleName, fn string, this *value.Cell, args []value.Value) value.Value {
	m, ok := r.modules[moduleName]
	if !ok {
		return value.NewError(value.ErrInvalidModule, "no such module: "+moduleName)
	}
	v, err := m.CallMutableExtension(fn, this, args)
	if err != nil {
		return value.NewError(value.ErrInvalidModuleFunction, moduleName+"."+fn+": "+err.Error())
	}
	return v
}

func (r *Registry) DispatchVM(moduleName, fn string, host VMHost, args []value.Value) value.Value {
	m, ok := r.modules[moduleName]
	if !ok {
		return value.NewError(value.ErrInvalidModule, "no such module: "+moduleName)
	}
	v, err := m.CallVM(fn, host, args)
	if err != nil {
		return value.NewError(value.ErrInvalidModuleFunction, moduleName+"."+fn+": "+err.Error())
	}
	return v
}

// BaseModule is an embeddable helper giving a concrete Module a name and
// default "unsupported" behaviour for the three call shapes it doesn't
// use, the way most MongooseMoo-barn builtins only ever implement the
// plain Call shape.
type BaseModule struct {
	ModuleName string
}

func (b BaseModule) Name() string { return b.ModuleName }

func (b BaseModule) CallExtension(fn string, this value.Value, args []value.Value) (value.Value, error) {
	return nil, &UnsupportedCallError{Module: b.ModuleName, Fn: fn, Shape: "extension"}
}

func (b BaseModule) CallMutableExtension(fn string, this *value.Cell, args []value.Value) (value.Value, error) {
	return nil, &UnsupportedCallError{Module: b.ModuleName, Fn: fn, Shape: "mutable extension"}
}

func (b BaseModule) CallVM(fn string, host VMHost, args []value.Value) (value.Value, error) {
	return nil, &UnsupportedCallError{Module: b.ModuleName, Fn: fn, Shape: "vm"}
}

type UnsupportedCallError struct {
	Module, Fn, Shape string
}

func (e *UnsupportedCallError) Error() string {
	return e.Module + "." + e.Fn + " does not support " + e.Shape + " calls"
}
