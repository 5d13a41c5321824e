package vm

import (
	"testing"

	"rigz/value"
)

func TestSnapshotRoundTripsScopesAndConstants(t *testing.T) {
	b := NewBuilder(DefaultOptions(), nil)
	b.EnterScope("main")
	two := b.AddConstant(value.NewInt(2))
	three := b.AddConstant(value.NewInt(3))
	b.Emit(Push(two))
	b.Emit(Push(three))
	b.Emit(Binary(value.OpAdd))
	b.Emit(Ret())

	data := b.VM().Snapshot()

	restored, err := LoadSnapshot(data)
	if err != nil {
		t.Fatalf("LoadSnapshot failed: %v", err)
	}
	if len(restored.Scopes) != len(b.VM().Scopes) {
		t.Fatalf("restored %d scopes, want %d", len(restored.Scopes), len(b.VM().Scopes))
	}
	if len(restored.Constants) != len(b.VM().Constants) {
		t.Fatalf("restored %d constants, want %d", len(restored.Constants), len(b.VM().Constants))
	}

	result, err := restored.Eval(b.CurrentScope(), nil)
	if err != nil {
		t.Fatalf("Eval on restored VM failed: %v", err)
	}
	if !result.Equal(value.NewInt(5)) {
		t.Errorf("restored program 2+3 = %v, want 5", result)
	}
}

func TestOptionsRoundTrip(t *testing.T) {
	opts := Options{EnableLogging: true, DisableModules: true, MaxDepth: 512}
	b := NewBuilder(opts, nil)
	b.EnterScope("main")
	b.Emit(PushNone())
	b.Emit(Ret())

	restored, err := LoadSnapshot(b.VM().Snapshot())
	if err != nil {
		t.Fatalf("LoadSnapshot failed: %v", err)
	}
	if restored.Opts != opts {
		t.Errorf("restored Options = %+v, want %+v", restored.Opts, opts)
	}
}

func TestSnapshotPreservesLifecycleTag(t *testing.T) {
	b := NewBuilder(DefaultOptions(), nil)
	memo := b.EnterLifecycleScope("expensive", MemoLifecycle(), "n")
	b.Emit(GetVariable("n"))
	b.Emit(Ret())
	_ = memo

	restored, err := LoadSnapshot(b.VM().Snapshot())
	if err != nil {
		t.Fatalf("LoadSnapshot failed: %v", err)
	}
	if restored.Scopes[0].Lifecycle.Kind != LifecycleMemo {
		t.Errorf("restored lifecycle kind = %v, want Memo", restored.Scopes[0].Lifecycle.Kind)
	}
}
