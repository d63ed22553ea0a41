package lox

import (
	"fmt"
	"io"
	"time"
)

// Interpreter walks a parsed program one top-level statement at a time,
// the way a caller drives it via ParseDeclaration/Interpret: the REPL and
// the file runner both feed statements in one at a time (Program.Run is
// just that loop) and decide for themselves how to react to an error.
//
// globals is allocated once per Interpreter and never replaced; it is the
// root every environment chain eventually reaches. environment is
// whatever scope is currently active — global at the top level, or a
// block/call scope while nested inside one.
type Interpreter struct {
	globals     *Environment
	environment *Environment

	stdout io.Writer
	stderr io.Writer

	hadRuntimeError bool
}

// NewInterpreter builds an Interpreter whose `print` statements go to
// stdout and whose runtime error reports go to stderr, and binds the
// `clock` native in the global scope.
func NewInterpreter(stdout, stderr io.Writer) *Interpreter {
	globals := NewEnvironment(nil)
	in := &Interpreter{globals: globals, environment: globals, stdout: stdout, stderr: stderr}
	in.defineNatives()
	return in
}

func (in *Interpreter) defineNatives() {
	in.globals.Define("clock", NativeValue(NewNativeFunction("clock", 0, nativeClock)))
}

func nativeClock(_ *Interpreter, _ []Value) (Value, error) {
	return NumberValue(float64(time.Now().UnixNano()) / float64(time.Second)), nil
}

// Globals returns the root environment, so an embedder can query a
// top-level binding by name without needing a live Environment handle.
func (in *Interpreter) Globals() *Environment { return in.globals }

// HadRuntimeError reports whether any statement run by this Interpreter
// has raised a RuntimeError, so a script runner can choose a nonzero exit
// code. It is never cleared automatically.
func (in *Interpreter) HadRuntimeError() bool { return in.hadRuntimeError }

// Lookup queries a global binding by name, for embedders and tests. It
// returns (value, true) if name is bound in the global scope (or any
// scope it is currently shadowed from — Lookup always reads globals
// directly, not whatever scope happens to be active).
func (in *Interpreter) Lookup(name string) (Value, bool) {
	b, ok := in.globals.values[name]
	if !ok {
		return NilValue, false
	}
	if !b.hasValue {
		return NilValue, true
	}
	return b.value, true
}

// Interpret executes a single top-level declaration. A RuntimeError is
// reported to stderr, recorded via hadRuntimeError, and also returned so
// the caller can tell the statement failed; it aborts only this
// declaration, and the caller is expected to move on to the next one.
func (in *Interpreter) Interpret(stmt Stmt) error {
	if err := stmt.Execute(in); err != nil {
		if rerr, ok := err.(*RuntimeError); ok {
			in.hadRuntimeError = true
			fmt.Fprintln(in.stderr, rerr.Error())
			return rerr
		}
		return err
	}
	return nil
}

// Call invokes a Callable value directly with already-evaluated
// arguments, performing the same arity check the evaluator applies at a
// CallExpr call site. Exposed for the embedder API: tests that build a
// closure via makeCounter()-style code can call the resulting Function
// repeatedly without round-tripping through source.
func (in *Interpreter) Call(callee Value, args []Value) (Value, error) {
	fn, ok := callee.AsCallable()
	if !ok {
		return NilValue, fmt.Errorf("value is not callable")
	}
	if len(args) != fn.Arity() {
		return NilValue, fmt.Errorf("expected %d arguments but got %d", fn.Arity(), len(args))
	}
	return fn.Call(in, args)
}

// returnSignal is propagated as an error up through Execute calls to
// unwind any number of intervening BlockStmt scopes on `return`, without
// being mistaken for a RuntimeError by If/While. It is caught only at a
// function call boundary (Function.Call, callable.go).
type returnSignal struct {
	value Value
}

func (r returnSignal) Error() string { return "return" }

// executeBlockBody runs stmts under env, restoring the previously active
// environment on every exit path — normal fall-through, a runtime error,
// or a returnSignal unwind. Block and function-call scoping both funnel
// through this one place.
func (in *Interpreter) executeBlockBody(stmts []Stmt, env *Environment) error {
	previous := in.environment
	in.environment = env
	defer func() { in.environment = previous }()

	for _, stmt := range stmts {
		if err := stmt.Execute(in); err != nil {
			return err
		}
	}
	return nil
}

// --- Statement execution -------------------------------------------------

func (s *ExprStmt) Execute(in *Interpreter) error {
	_, err := s.Expression.Evaluate(in)
	return err
}

func (s *PrintStmt) Execute(in *Interpreter) error {
	v, err := s.Expression.Evaluate(in)
	if err != nil {
		return err
	}
	fmt.Fprintln(in.stdout, v.String())
	return nil
}

func (s *VarStmt) Execute(in *Interpreter) error {
	if s.Initializer == nil {
		in.environment.DefineUnset(s.Name.Lexeme)
		return nil
	}
	v, err := s.Initializer.Evaluate(in)
	if err != nil {
		return err
	}
	in.environment.Define(s.Name.Lexeme, v)
	return nil
}

func (s *BlockStmt) Execute(in *Interpreter) error {
	return in.executeBlockBody(s.Statements, NewEnvironment(in.environment))
}

func (s *IfStmt) Execute(in *Interpreter) error {
	cond, err := s.Condition.Evaluate(in)
	if err != nil {
		return err
	}
	if cond.IsTrue() {
		return s.Then.Execute(in)
	}
	if s.Else != nil {
		return s.Else.Execute(in)
	}
	return nil
}

func (s *WhileStmt) Execute(in *Interpreter) error {
	for {
		cond, err := s.Condition.Evaluate(in)
		if err != nil {
			return err
		}
		if !cond.IsTrue() {
			return nil
		}
		if err := s.Body.Execute(in); err != nil {
			return err
		}
	}
}

// FunctionStmt.Execute captures the environment active right now as the
// closure, then defines the function under its own name in that same
// scope — so the body can refer to its own name for recursion once this
// statement has finished running.
func (s *FunctionStmt) Execute(in *Interpreter) error {
	fn := NewFunction(s, in.environment)
	in.environment.Define(s.Name.Lexeme, FunctionValue(fn))
	return nil
}

func (s *ReturnStmt) Execute(in *Interpreter) error {
	value := NilValue
	if s.Value != nil {
		v, err := s.Value.Evaluate(in)
		if err != nil {
			return err
		}
		value = v
	}
	return returnSignal{value: value}
}

// --- Expression evaluation ------------------------------------------------

func (e *LiteralExpr) Evaluate(_ *Interpreter) (Value, error) {
	return e.Value, nil
}

func (e *VariableExpr) Evaluate(in *Interpreter) (Value, error) {
	return in.environment.Get(e.Name)
}

func (e *GroupingExpr) Evaluate(in *Interpreter) (Value, error) {
	return e.Inner.Evaluate(in)
}

func (e *UnaryExpr) Evaluate(in *Interpreter) (Value, error) {
	right, err := e.Right.Evaluate(in)
	if err != nil {
		return NilValue, err
	}
	switch e.Op.Type {
	case Minus:
		if !right.IsNumber() {
			return NilValue, newRuntimeError(e.Op, "Operand must be a number.")
		}
		return NumberValue(-right.Number()), nil
	case Bang:
		return BoolValue(!right.IsTrue()), nil
	}
	return NilValue, newRuntimeError(e.Op, "Unknown unary operator.")
}

// LogicalExpr.Evaluate short-circuits: `or` returns the left operand
// as-is once it's truthy, `and` returns it as-is once it's falsy, without
// evaluating the right operand at all in either case.
func (e *LogicalExpr) Evaluate(in *Interpreter) (Value, error) {
	left, err := e.Left.Evaluate(in)
	if err != nil {
		return NilValue, err
	}
	if e.Op.Type == Or {
		if left.IsTrue() {
			return left, nil
		}
	} else {
		if !left.IsTrue() {
			return left, nil
		}
	}
	return e.Right.Evaluate(in)
}

func (e *BinaryExpr) Evaluate(in *Interpreter) (Value, error) {
	left, err := e.Left.Evaluate(in)
	if err != nil {
		return NilValue, err
	}
	right, err := e.Right.Evaluate(in)
	if err != nil {
		return NilValue, err
	}

	switch e.Op.Type {
	case Minus:
		if !left.IsNumber() || !right.IsNumber() {
			return NilValue, newRuntimeError(e.Op, "Operands must be numbers.")
		}
		return NumberValue(left.Number() - right.Number()), nil
	case Star:
		if !left.IsNumber() || !right.IsNumber() {
			return NilValue, newRuntimeError(e.Op, "Operands must be numbers.")
		}
		return NumberValue(left.Number() * right.Number()), nil
	case Slash:
		if !left.IsNumber() || !right.IsNumber() {
			return NilValue, newRuntimeError(e.Op, "Operands must be numbers.")
		}
		return NumberValue(left.Number() / right.Number()), nil
	case Plus:
		return evaluatePlus(e.Op, left, right)
	case Greater:
		if !left.IsNumber() || !right.IsNumber() {
			return NilValue, newRuntimeError(e.Op, "Operands must be numbers.")
		}
		return BoolValue(left.Number() > right.Number()), nil
	case GreaterEqual:
		if !left.IsNumber() || !right.IsNumber() {
			return NilValue, newRuntimeError(e.Op, "Operands must be numbers.")
		}
		return BoolValue(left.Number() >= right.Number()), nil
	case Less:
		if !left.IsNumber() || !right.IsNumber() {
			return NilValue, newRuntimeError(e.Op, "Operands must be numbers.")
		}
		return BoolValue(left.Number() < right.Number()), nil
	case LessEqual:
		if !left.IsNumber() || !right.IsNumber() {
			return NilValue, newRuntimeError(e.Op, "Operands must be numbers.")
		}
		return BoolValue(left.Number() <= right.Number()), nil
	case EqualEqual:
		return BoolValue(left.EqualValueTo(right)), nil
	case BangEqual:
		return BoolValue(!left.EqualValueTo(right)), nil
	}
	return NilValue, newRuntimeError(e.Op, "Unknown binary operator.")
}

// evaluatePlus implements a widened `+` rule: Number+Number adds; if
// either side is a String, both are stringified and concatenated. This is
// intentionally looser than classic Lox, which requires both operands to
// be strings for concatenation — see the Open Question decision in
// DESIGN.md.
func evaluatePlus(op Token, left, right Value) (Value, error) {
	if left.IsNumber() && right.IsNumber() {
		return NumberValue(left.Number() + right.Number()), nil
	}
	if left.IsString() || right.IsString() {
		return StringValue(left.String() + right.String()), nil
	}
	return NilValue, newRuntimeError(op, "Operands must be two numbers or two strings.")
}

func (e *AssignExpr) Evaluate(in *Interpreter) (Value, error) {
	v, err := e.Value.Evaluate(in)
	if err != nil {
		return NilValue, err
	}
	if err := in.environment.Assign(e.Name, v); err != nil {
		return NilValue, err
	}
	return v, nil
}

// CallExpr.Evaluate evaluates the callee and every argument, strictly
// left to right, completing all of them before the call itself happens,
// then applies the uniform arity check shared by user functions and
// natives.
func (e *CallExpr) Evaluate(in *Interpreter) (Value, error) {
	callee, err := e.Callee.Evaluate(in)
	if err != nil {
		return NilValue, err
	}

	args := make([]Value, 0, len(e.Arguments))
	for _, a := range e.Arguments {
		v, err := a.Evaluate(in)
		if err != nil {
			return NilValue, err
		}
		args = append(args, v)
	}

	fn, ok := callee.AsCallable()
	if !ok {
		return NilValue, newRuntimeError(e.ClosingParen, "Can only call functions and classes.")
	}
	if len(args) != fn.Arity() {
		return NilValue, newRuntimeError(e.ClosingParen, fmt.Sprintf(
			"Expected %d arguments but got %d.", fn.Arity(), len(args)))
	}
	return fn.Call(in, args)
}
