// Command rigz is a tiny embedding demo for the engine, grounded on
// MongooseMoo-barn/cmd/barn/main.go's flag-driven entry point. There is
// no front-end (parser/compiler) in scope for this engine, so instead of
// loading a script file this demo uses vm.Builder directly to construct a
// small program and run it, the way a host application embedding this
// engine would after compiling its own source language down to Scopes.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"rigz/module"
	"rigz/modulestd"
	"rigz/value"
	"rigz/vm"
)

func main() {
	traceEnabled := flag.Bool("trace", false, "Enable execution tracing")
	snapshotOut := flag.String("snapshot-out", "", "Write the demo program's snapshot to this file and exit")
	snapshotIn := flag.String("snapshot-in", "", "Load and run a previously written snapshot instead of building the demo program")
	flag.Parse()

	registry := module.NewRegistry()
	registry.Register(modulestd.NewCryptoModule())
	registry.Register(modulestd.NewConfigModule())

	if *snapshotIn != "" {
		runSnapshot(*snapshotIn, registry)
		return
	}

	opts := vm.DefaultOptions()
	opts.EnableLogging = *traceEnabled

	b := vm.NewBuilder(opts, registry)
	buildDemoProgram(b)

	if *snapshotOut != "" {
		if err := os.WriteFile(*snapshotOut, b.VM().Snapshot(), 0o644); err != nil {
			log.Fatalf("writing snapshot: %v", err)
		}
		fmt.Printf("wrote snapshot to %s\n", *snapshotOut)
		return
	}

	result, err := b.VM().Eval(b.CurrentScope(), nil)
	if err != nil {
		log.Fatalf("eval: %v", err)
	}
	fmt.Println(result)
}

func runSnapshot(path string, registry *module.Registry) {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("reading snapshot: %v", err)
	}
	restored, err := vm.LoadSnapshot(data)
	if err != nil {
		log.Fatalf("loading snapshot: %v", err)
	}
	restored.Modules = registry
	result, err := restored.Eval(len(restored.Scopes)-1, nil)
	if err != nil {
		log.Fatalf("eval: %v", err)
	}
	fmt.Println(result)
}

// buildDemoProgram builds `digest("sha256", "1" + (2 * 3))`: arithmetic
// and string coercion feed a module dispatch, exercising both in one scope.
func buildDemoProgram(b *vm.Builder) {
	b.EnterScope("main")

	two := b.AddConstant(value.NewInt(2))
	three := b.AddConstant(value.NewInt(3))
	one := b.AddConstant(value.NewString("1"))
	algo := b.AddConstant(value.NewString("sha256"))

	b.Emit(vm.Push(algo))
	b.Emit(vm.Push(one))
	b.Emit(vm.Push(two))
	b.Emit(vm.Push(three))
	b.Emit(vm.Binary(value.OpMul))
	b.Emit(vm.Binary(value.OpAdd))
	b.Emit(vm.CallModule("crypto", "digest", 2))
	b.Emit(vm.Ret())
}
