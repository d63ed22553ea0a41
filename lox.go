package lox

import (
	"fmt"
	"log"
	"os"
	"strings"
)

// Version identifies this implementation of the core, independent of any
// embedding CLI or test harness.
const Version = "v1"

type loxOptions struct {
	debug bool
}

var (
	options = loxOptions{}
	logger  = log.New(os.Stdout, "[lox] ", log.LstdFlags)
)

// SetDebug toggles package-level diagnostic logging through Logf. The
// Scanner, Parser and Interpreter do not call Logf, so enabling it emits
// nothing on its own. It never affects the error taxonomy in errors.go:
// Logf is for optional tracing, not for how
// ScanError/ParseError/RuntimeError are reported.
func SetDebug(b bool) {
	options.debug = b
}

// Logf writes a tagged diagnostic line if debug logging is enabled.
// Sender names the subsystem that's talking (e.g. "scanner", "parser",
// "interpreter").
func Logf(sender, format string, items ...any) {
	if options.debug {
		logger.Printf("[%s] "+format, append([]any{sender}, items...)...)
	}
}

// Program is a fully scanned and parsed source: the sequence of
// top-level declarations the interpreter executes one at a time.
// Compiling means tokenizing then parsing to completion; Program keeps
// every declaration that parsed, even the ones following a syntax error
// elsewhere, rather than failing the whole compile.
type Program struct {
	Name        string
	Statements  []Stmt
	ScanErrors  []*ScanError
	ParseErrors []*ParseError
}

// Compile scans and parses src to completion, the way a file run is
// compiled before being handed to an Interpreter.
// Parse errors do not stop compilation: the parser synchronizes and
// keeps going, so Program.Statements may be a partial, still-useful
// program even when ParseErrors is non-empty.
func Compile(name string, r *Reader) *Program {
	scanner := NewScanner(r)
	parser := NewParser(name, scanner)

	prog := &Program{Name: name}
	for !parser.IsAtEnd() {
		stmt, err := parser.ParseDeclaration()
		for _, perr := range parser.TakeErrors() {
			prog.ParseErrors = append(prog.ParseErrors, perr)
		}
		if err == nil && stmt != nil {
			prog.Statements = append(prog.Statements, stmt)
		}
	}
	prog.ScanErrors = scanner.TakeErrors()
	return prog
}

// CompileString is a convenience wrapper building a file-mode Reader over
// an in-memory string and a discarded echo sink, useful for tests and the
// embedder API.
func CompileString(name, src string) *Program {
	r := NewFileReader(strings.NewReader(src), discardWriter{})
	return Compile(name, r)
}

// Run feeds every statement of the program to in, one at a time.
// ScanErrors and ParseErrors are written to stderr up front (they were
// already recorded at compile time), then each statement is interpreted
// in turn. A RuntimeError aborts only that statement; Run continues with
// the next one.
func (p *Program) Run(in *Interpreter) {
	for _, serr := range p.ScanErrors {
		fmt.Fprintln(os.Stderr, serr.Error())
	}
	for _, perr := range p.ParseErrors {
		fmt.Fprintln(os.Stderr, perr.Error())
	}
	for _, stmt := range p.Statements {
		_ = in.Interpret(stmt)
	}
}

// HadErrors reports whether compiling the program produced any scan or
// parse diagnostics.
func (p *Program) HadErrors() bool {
	return len(p.ScanErrors) > 0 || len(p.ParseErrors) > 0
}

type discardWriter struct{}

func (discardWriter) Write(b []byte) (int, error) { return len(b), nil }
