package lox

import (
	"bytes"
	"testing"
)

// FuzzProgram fuzzes whole programs end to end: compile, then run every
// declaration that parsed. Nothing here should ever panic, regardless of
// how malformed the input is — scan/parse errors are recorded and
// reported, runtime errors abort only the offending statement, and the
// driver always reaches the end of the statement list.
func FuzzProgram(f *testing.F) {
	f.Add(`
		fun fib(n) {
			if (n <= 1) return n;
			return fib(n - 1) + fib(n - 2);
		}
		var r = fib(8);
		print r;
	`)
	f.Add(`
		var i = 0;
		while (i < 5) {
			print i;
			i = i + 1;
		}
	`)
	f.Add(`for (var i = 0; i < 3; i = i + 1) { print i; }`)
	f.Add(`fun f() { return; } var r = f();`)
	f.Add(`var a; print a;`)
	f.Add(`{{{{}}}}`)
	f.Add(`fun f(`)
	f.Add(`class Foo {}`)
	f.Add(`break; continue;`)
	f.Add(`var x = 1 +`)
	f.Add("")

	f.Fuzz(func(t *testing.T, src string) {
		prog := CompileString("fuzz", src)

		var stdout, stderr bytes.Buffer
		in := NewInterpreter(&stdout, &stderr)
		prog.Run(in)
	})
}
