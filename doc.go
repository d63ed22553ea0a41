// Package lox implements the core of a tree-walking interpreter for a
// small dynamically-typed scripting language in the Lox family: a
// character Reader, a pull-based Scanner, a recursive-descent Parser
// with panic-mode error recovery, and a tree-walking Interpreter with
// lexically-scoped Environments and first-class closures.
//
// The package is deliberately silent on anything outside that core: no
// command-line dispatch, no classes or inheritance, no bytecode. A
// caller compiles source into a Program and feeds its statements to an
// Interpreter one at a time:
//
//	prog := lox.CompileString("<script>", `
//	  fun fib(n) {
//	    if (n <= 1) return n;
//	    return fib(n - 1) + fib(n - 2);
//	  }
//	  var r = fib(10);
//	`)
//	in := lox.NewInterpreter(os.Stdout, os.Stderr)
//	prog.Run(in)
//	r, _ := in.Lookup("r") // Value wrapping Number(55)
package lox
