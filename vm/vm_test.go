package vm

import (
	"testing"

	"rigz/module"
	"rigz/value"
)

func TestEvalSimpleArithmetic(t *testing.T) {
	b := NewBuilder(DefaultOptions(), nil)
	b.EnterScope("main")
	two := b.AddConstant(value.NewInt(2))
	three := b.AddConstant(value.NewInt(3))
	b.Emit(Push(two))
	b.Emit(Push(three))
	b.Emit(Binary(value.OpAdd))
	b.Emit(Ret())

	result, err := b.VM().Eval(b.CurrentScope(), nil)
	if err != nil {
		t.Fatalf("Eval failed: %v", err)
	}
	if !result.Equal(value.NewInt(5)) {
		t.Errorf("2+3 = %v, want 5", result)
	}
}

func TestEvalVariableStoreAndLoad(t *testing.T) {
	b := NewBuilder(DefaultOptions(), nil)
	b.EnterScope("main")
	c := b.AddConstant(value.NewInt(41))
	b.Emit(Push(c))
	b.Emit(LoadMut("x"))
	b.Emit(GetVariable("x"))
	one := b.AddConstant(value.NewInt(1))
	b.Emit(Push(one))
	b.Emit(Binary(value.OpAdd))
	b.Emit(Ret())

	result, err := b.VM().Eval(b.CurrentScope(), nil)
	if err != nil {
		t.Fatalf("Eval failed: %v", err)
	}
	if !result.Equal(value.NewInt(42)) {
		t.Errorf("x+1 = %v, want 42", result)
	}
}

func TestLetRedeclarationFails(t *testing.T) {
	b := NewBuilder(DefaultOptions(), nil)
	b.EnterScope("main")
	one := b.AddConstant(value.NewInt(1))
	two := b.AddConstant(value.NewInt(2))
	b.Emit(Push(one))
	b.Emit(LoadLet("x"))
	b.Emit(Push(two))
	b.Emit(LoadLet("x"))
	b.Emit(Ret())

	_, err := b.VM().Eval(b.CurrentScope(), nil)
	if err == nil {
		t.Fatal("let x=1; let x=2 should fail without a shadow flag")
	}
	rerr, ok := err.(*RuntimeError)
	if !ok || rerr.Value.Kind != value.ErrRuntime {
		t.Errorf("err = %v, want a RuntimeError", err)
	}
}

func TestLetShadowingSucceeds(t *testing.T) {
	b := NewBuilder(DefaultOptions(), nil)
	b.EnterScope("main")
	one := b.AddConstant(value.NewInt(1))
	two := b.AddConstant(value.NewInt(2))
	b.Emit(Push(one))
	b.Emit(LoadLet("x"))
	b.Emit(Push(two))
	b.Emit(LoadLetShadow("x"))
	b.Emit(GetVariable("x"))
	b.Emit(Ret())

	result, err := b.VM().Eval(b.CurrentScope(), nil)
	if err != nil {
		t.Fatalf("Eval failed: %v", err)
	}
	if !result.Equal(value.NewInt(2)) {
		t.Errorf("shadowed let x = %v, want 2", result)
	}
}

func TestGetMutableVariableRejectsLet(t *testing.T) {
	b := NewBuilder(DefaultOptions(), nil)
	b.EnterScope("main")
	one := b.AddConstant(value.NewInt(1))
	b.Emit(Push(one))
	b.Emit(LoadLet("x"))
	b.Emit(GetMutableVariable("x"))
	b.Emit(Ret())

	_, err := b.VM().Eval(b.CurrentScope(), nil)
	if err == nil {
		t.Fatal("GetMutableVariable on a let binding should fail")
	}
	rerr, ok := err.(*RuntimeError)
	if !ok || rerr.Value.Kind != value.ErrVariableDoesNotExist {
		t.Errorf("err = %v, want a VariableDoesNotExist RuntimeError", err)
	}
}

func TestGetMutableVariableAcceptsMut(t *testing.T) {
	b := NewBuilder(DefaultOptions(), nil)
	b.EnterScope("main")
	one := b.AddConstant(value.NewInt(1))
	b.Emit(Push(one))
	b.Emit(LoadMut("x"))
	b.Emit(GetMutableVariable("x"))
	b.Emit(Ret())

	result, err := b.VM().Eval(b.CurrentScope(), nil)
	if err != nil {
		t.Fatalf("Eval failed: %v", err)
	}
	if !result.Equal(value.NewInt(1)) {
		t.Errorf("mut x = %v, want 1", result)
	}
}

func TestEvalFunctionArguments(t *testing.T) {
	b := NewBuilder(DefaultOptions(), nil)
	double := b.EnterScope("double", "n")
	b.Emit(GetVariable("n"))
	two := b.AddConstant(value.NewInt(2))
	b.Emit(Push(two))
	b.Emit(Binary(value.OpMul))
	b.Emit(Ret())

	main := b.EnterScope("main")
	five := b.AddConstant(value.NewInt(5))
	b.Emit(Push(five))
	b.Emit(Call(double, 1))
	b.Emit(Ret())

	result, err := b.VM().Eval(main, nil)
	if err != nil {
		t.Fatalf("Eval failed: %v", err)
	}
	if !result.Equal(value.NewInt(10)) {
		t.Errorf("double(5) = %v, want 10", result)
	}
}

func TestEvalConditionalJump(t *testing.T) {
	b := NewBuilder(DefaultOptions(), nil)
	b.EnterScope("main")
	truthy := b.AddConstant(value.NewBool(false))
	onTrue := b.AddConstant(value.NewString("yes"))
	onFalse := b.AddConstant(value.NewString("no"))

	b.Emit(Push(truthy))
	jumpIfFalse := b.Emit(JumpIfFalse(0))
	b.Emit(Push(onTrue))
	b.Emit(Ret())
	elseTarget := b.Here()
	b.Patch(b.CurrentScope(), jumpIfFalse, elseTarget)
	b.Emit(Push(onFalse))
	b.Emit(Ret())

	result, err := b.VM().Eval(b.CurrentScope(), nil)
	if err != nil {
		t.Fatalf("Eval failed: %v", err)
	}
	if !result.Equal(value.NewString("no")) {
		t.Errorf("conditional on false = %v, want \"no\"", result)
	}
}

func TestMemoScopeCachesResult(t *testing.T) {
	calls := 0
	callsCounterModuleName := "counter"
	reg := module.NewRegistry()
	reg.Register(&countingModule{name: callsCounterModuleName, calls: &calls})
	b := NewBuilder(DefaultOptions(), reg)

	memo := b.EnterLifecycleScope("expensive", MemoLifecycle(), "n")
	b.Emit(GetVariable("n"))
	b.Emit(CallModule(callsCounterModuleName, "bump", 1))
	b.Emit(Ret())

	main := b.EnterScope("main")
	seven := b.AddConstant(value.NewInt(7))
	b.Emit(Push(seven))
	b.Emit(CallMemo(memo, 1))
	b.Emit(Push(seven))
	b.Emit(CallMemo(memo, 1))
	b.Emit(Ret())

	result, err := b.VM().Eval(main, nil)
	if err != nil {
		t.Fatalf("Eval failed: %v", err)
	}
	if !result.Equal(value.NewInt(7)) {
		t.Errorf("memoized result = %v, want 7", result)
	}
	if calls != 1 {
		t.Errorf("expensive scope ran %d times, want 1 (memoized)", calls)
	}
}

func TestEvalModuleCall(t *testing.T) {
	reg := module.NewRegistry()
	reg.Register(&echoModule{})
	b := NewBuilder(DefaultOptions(), reg)
	b.EnterScope("main")
	c := b.AddConstant(value.NewString("ping"))
	b.Emit(Push(c))
	b.Emit(CallModule("echo", "identity", 1))
	b.Emit(Ret())

	result, err := b.VM().Eval(b.CurrentScope(), nil)
	if err != nil {
		t.Fatalf("Eval failed: %v", err)
	}
	if !result.Equal(value.NewString("ping")) {
		t.Errorf("echo.identity(\"ping\") = %v, want ping", result)
	}
}

func TestTestLifecycleRequiresTestKind(t *testing.T) {
	b := NewBuilder(DefaultOptions(), nil)
	ordinary := b.EnterScope("main")
	b.Emit(PushNone())
	b.Emit(Ret())

	if _, err := b.VM().Test(ordinary); err == nil {
		t.Fatal("Test() on a non-Test scope should return an error")
	}
}

func TestTestLifecyclePassAndFail(t *testing.T) {
	b := NewBuilder(DefaultOptions(), nil)
	passing := b.EnterLifecycleScope("assert_true", TestLifecycle())
	b.Emit(Push(b.AddConstant(value.NewBool(true))))
	b.Emit(Ret())

	failing := b.EnterLifecycleScope("assert_false", TestLifecycle())
	b.Emit(Push(b.AddConstant(value.NewBool(false))))
	b.Emit(Ret())

	ok, err := b.VM().Test(passing)
	if err != nil || !ok {
		t.Errorf("passing test: ok=%v err=%v, want ok=true", ok, err)
	}
	ok, err = b.VM().Test(failing)
	if err != nil || ok {
		t.Errorf("failing test: ok=%v err=%v, want ok=false", ok, err)
	}
}

func TestMaxDepthExceeded(t *testing.T) {
	opts := DefaultOptions()
	opts.MaxDepth = 3
	b := NewBuilder(opts, nil)
	self := b.EnterScope("recurse")
	b.Emit(Call(self, 0))
	b.Emit(Ret())

	_, err := b.VM().Eval(self, nil)
	if err == nil {
		t.Fatal("unbounded recursion should hit MaxDepth and return an error")
	}
}

type echoModule struct{ module.BaseModule }

func (m *echoModule) Name() string { return "echo" }

func (m *echoModule) Call(fn string, args []value.Value) (value.Value, error) {
	if fn == "identity" && len(args) == 1 {
		return args[0], nil
	}
	return value.None, nil
}

type countingModule struct {
	module.BaseModule
	name  string
	calls *int
}

func (m *countingModule) Name() string { return m.name }

func (m *countingModule) Call(fn string, args []value.Value) (value.Value, error) {
	*m.calls++
	return args[0], nil
}
