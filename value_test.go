package lox

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValueStringifyNumberSuppressesTrailingZero(t *testing.T) {
	assert.Equal(t, "1", NumberValue(1).String())
	assert.Equal(t, "1.5", NumberValue(1.5).String())
	assert.Equal(t, "-2", NumberValue(-2).String())
	assert.Equal(t, "0", NumberValue(0).String())
}

func TestValueStringifyNilAndBool(t *testing.T) {
	assert.Equal(t, "nil", NilValue.String())
	assert.Equal(t, "true", BoolValue(true).String())
	assert.Equal(t, "false", BoolValue(false).String())
}

func TestValueTruthiness(t *testing.T) {
	assert.False(t, NilValue.IsTrue())
	assert.False(t, BoolValue(false).IsTrue())
	assert.True(t, BoolValue(true).IsTrue())
	assert.True(t, NumberValue(0).IsTrue(), "zero is truthy")
	assert.True(t, StringValue("").IsTrue(), "empty string is truthy")
}

func TestValueEqualityNoCoercion(t *testing.T) {
	assert.True(t, NilValue.EqualValueTo(NilValue))
	assert.False(t, NumberValue(0).EqualValueTo(BoolValue(false)))
	assert.False(t, StringValue("1").EqualValueTo(NumberValue(1)))
	assert.True(t, NumberValue(1).EqualValueTo(NumberValue(1)))
	assert.False(t, NumberValue(1).EqualValueTo(NumberValue(2)))
}

func TestValueEqualityFunctionsByIdentity(t *testing.T) {
	decl := &FunctionStmt{Name: Token{Type: Identifier, Lexeme: "f"}}
	env := NewEnvironment(nil)
	f1 := NewFunction(decl, env)
	f2 := NewFunction(decl, env)

	v1 := FunctionValue(f1)
	v2 := FunctionValue(f2)
	v1Again := FunctionValue(f1)

	assert.False(t, v1.EqualValueTo(v2), "distinct handles are never equal")
	assert.True(t, v1.EqualValueTo(v1Again), "same handle is equal to itself")
}

func TestValueAsCallable(t *testing.T) {
	n := NewNativeFunction("clock", 0, nativeClock)
	v := NativeValue(n)

	callable, ok := v.AsCallable()
	assert.True(t, ok)
	assert.Equal(t, 0, callable.Arity())
	assert.Equal(t, "<native fn>", callable.String())

	_, ok = NumberValue(1).AsCallable()
	assert.False(t, ok)
}
