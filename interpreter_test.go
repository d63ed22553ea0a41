package lox

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, src string) (*Interpreter, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	in := NewInterpreter(&stdout, &stderr)
	prog := CompileString(t.Name(), src)
	require.Empty(t, prog.ScanErrors)
	require.Empty(t, prog.ParseErrors)
	prog.Run(in)
	return in, &stdout, &stderr
}

func TestInterpreterArithmetic(t *testing.T) {
	in, _, _ := run(t, `var r = (2 + 3) * 4 - 10 / 2;`)
	v, ok := in.Lookup("r")
	require.True(t, ok)
	assert.Equal(t, 15.0, v.Number())
}

func TestInterpreterDivisionByZeroIsInfinity(t *testing.T) {
	in, _, _ := run(t, `var r = 1 / 0;`)
	v, ok := in.Lookup("r")
	require.True(t, ok)
	assert.True(t, v.IsNumber())
	assert.True(t, math.IsInf(v.Number(), 1))
}

func TestInterpreterStringConcatenationEitherOperand(t *testing.T) {
	in, _, _ := run(t, `
		var s1 = "one " + 1;
		var s2 = 1 + "two";
	`)
	s1, _ := in.Lookup("s1")
	s2, _ := in.Lookup("s2")
	assert.Equal(t, "one 1", s1.Str())
	assert.Equal(t, "1two", s2.Str())
}

func TestInterpreterLogicalShortCircuitReturnsOriginalValue(t *testing.T) {
	in, _, _ := run(t, `
		var a = "left" or "right";
		var b = nil and "right";
	`)
	a, _ := in.Lookup("a")
	b, _ := in.Lookup("b")
	assert.Equal(t, "left", a.Str())
	assert.True(t, b.IsNil())
}

func TestInterpreterClosureCapturesByReference(t *testing.T) {
	in, _, _ := run(t, `
		fun makeCounter() {
			var i = 0;
			fun count() {
				i = i + 1;
				return i;
			}
			return count;
		}
		var c = makeCounter();
	`)
	c, ok := in.Lookup("c")
	require.True(t, ok)

	first, err := in.Call(c, nil)
	require.NoError(t, err)
	assert.Equal(t, 1.0, first.Number())

	second, err := in.Call(c, nil)
	require.NoError(t, err)
	assert.Equal(t, 2.0, second.Number())
}

func TestInterpreterBlockScopeRestoredOnReturn(t *testing.T) {
	in, _, _ := run(t, `
		fun outer() {
			{ { return 5; } }
			return 0;
		}
		var r = outer();
	`)
	r, ok := in.Lookup("r")
	require.True(t, ok)
	assert.Equal(t, 5.0, r.Number())
}

func TestInterpreterUndefinedVariableIsRuntimeError(t *testing.T) {
	var stdout, stderr bytes.Buffer
	in := NewInterpreter(&stdout, &stderr)
	prog := CompileString(t.Name(), `var r = neverDeclared;`)
	prog.Run(in)

	assert.True(t, in.HadRuntimeError())
	assert.Contains(t, stderr.String(), "neverDeclared")
	_, ok := in.Lookup("r")
	assert.False(t, ok)
}

func TestInterpreterCallArityMismatch(t *testing.T) {
	var stdout, stderr bytes.Buffer
	in := NewInterpreter(&stdout, &stderr)
	prog := CompileString(t.Name(), `var t = clock(1);`)
	prog.Run(in)

	assert.True(t, in.HadRuntimeError())
	assert.Contains(t, stderr.String(), "Expected 0 arguments but got 1")
	_, ok := in.Lookup("t")
	assert.False(t, ok)
}

func TestInterpreterRuntimeErrorAbortsOnlyCurrentStatement(t *testing.T) {
	in, _, _ := run(t, `
		var a = 1;
		var b = a + undeclared;
		var c = 2;
	`)
	a, _ := in.Lookup("a")
	_, bOk := in.Lookup("b")
	c, cOk := in.Lookup("c")

	assert.Equal(t, 1.0, a.Number())
	assert.False(t, bOk)
	require.True(t, cOk)
	assert.Equal(t, 2.0, c.Number())
}

func TestInterpreterPrintStringifiesValue(t *testing.T) {
	_, stdout, _ := run(t, `print 1 + 1; print "hi"; print nil;`)
	assert.Equal(t, "2\nhi\nnil\n", stdout.String())
}
