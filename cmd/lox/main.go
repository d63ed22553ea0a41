// Command lox is the file-vs-REPL driver for the interpreter core: one
// optional positional source file; absent means an interactive REPL.
// Flag parsing is via pborman/getopt/v2, the same getopt-style library
// goyang's command line uses.
package main

import (
	"fmt"
	"os"

	getopt "github.com/pborman/getopt/v2"

	lox "github.com/dvse/lox"
	"github.com/dvse/lox/internal/astprint"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	set := getopt.New()
	help := set.BoolLong("help", '?', "display this help")
	debug := set.BoolLong("debug", 'd', "enable diagnostic logging")
	printAST := set.BoolLong("ast", 0, "print the parsed AST of each declaration before running it")
	set.SetParameters("[SCRIPT]")

	if err := set.Getopt(args, nil); err != nil {
		fmt.Fprintln(os.Stderr, err)
		set.PrintUsage(os.Stderr)
		return 64
	}
	if *help {
		set.PrintUsage(os.Stdout)
		return 0
	}
	lox.SetDebug(*debug)

	rest := set.Args()
	switch len(rest) {
	case 0:
		runREPL(*printAST)
		return 0
	case 1:
		return runFile(rest[0], *printAST)
	default:
		fmt.Fprintln(os.Stderr, "usage: lox [SCRIPT]")
		return 64
	}
}

func runFile(path string, printAST bool) int {
	f, err := os.Open(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 66
	}
	defer f.Close()

	reader := lox.NewFileReader(f, os.Stdout)
	prog := lox.Compile(path, reader)
	if printAST {
		dumpAST(prog)
	}

	in := lox.NewInterpreter(os.Stdout, os.Stderr)
	prog.Run(in)

	if prog.HadErrors() {
		return 65
	}
	if in.HadRuntimeError() {
		return 70
	}
	return 0
}

func runREPL(printAST bool) {
	reader := lox.NewTerminalReader(os.Stdin, os.Stdout)
	in := lox.NewInterpreter(os.Stdout, os.Stderr)
	scanner := lox.NewScanner(reader)
	parser := lox.NewParser("<repl>", scanner)

	for !parser.IsAtEnd() {
		stmt, err := parser.ParseDeclaration()
		for _, perr := range parser.TakeErrors() {
			fmt.Fprintln(os.Stderr, perr.Error())
		}
		if err != nil || stmt == nil {
			continue
		}
		if printAST {
			fmt.Fprintln(os.Stdout, astprint.Dump(stmt))
		}
		_ = in.Interpret(stmt)
	}
	for _, serr := range scanner.TakeErrors() {
		fmt.Fprintln(os.Stderr, serr.Error())
	}
}

func dumpAST(prog *lox.Program) {
	for _, stmt := range prog.Statements {
		fmt.Fprintln(os.Stdout, astprint.Dump(stmt))
	}
}
