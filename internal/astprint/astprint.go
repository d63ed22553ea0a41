// Package astprint is a debugging aid, not part of the interpreter core.
// Print renders an Expr as a Lisp-style parenthesized string. Dump falls
// back to kylelemons/godebug/pretty for an exhaustive field-by-field
// rendering of any value, including statements, which the Lisp printer
// doesn't cover.
package astprint

import (
	"fmt"
	"strings"

	"github.com/kylelemons/godebug/pretty"

	lox "github.com/dvse/lox"
)

// Print renders expr the way the original's AstPrinter.print does: a
// fully parenthesized, Lisp-style dump of operator and operands. It's
// meant for debugging output and failing test messages, not for the
// language itself — `print` the statement always goes through
// Value.String (value.go), never through this package.
func Print(expr lox.Expr) string {
	switch e := expr.(type) {
	case *lox.LiteralExpr:
		return e.Value.String()
	case *lox.VariableExpr:
		return e.Name.Lexeme
	case *lox.GroupingExpr:
		return parenthesize("group", Print(e.Inner))
	case *lox.UnaryExpr:
		return parenthesize(e.Op.Lexeme, Print(e.Right))
	case *lox.BinaryExpr:
		return parenthesize(e.Op.Lexeme, Print(e.Left), Print(e.Right))
	case *lox.LogicalExpr:
		return parenthesize(e.Op.Lexeme, Print(e.Left), Print(e.Right))
	case *lox.AssignExpr:
		return parenthesize("=", e.Name.Lexeme, Print(e.Value))
	case *lox.CallExpr:
		parts := make([]string, 0, len(e.Arguments)+1)
		parts = append(parts, Print(e.Callee))
		for _, a := range e.Arguments {
			parts = append(parts, Print(a))
		}
		return parenthesize("call", parts...)
	default:
		return fmt.Sprintf("<unprintable expr %T>", expr)
	}
}

func parenthesize(name string, parts ...string) string {
	var b strings.Builder
	b.WriteString("(")
	b.WriteString(name)
	for _, p := range parts {
		b.WriteString(" ")
		b.WriteString(p)
	}
	b.WriteString(")")
	return b.String()
}

// Dump pretty-prints any value (typically a []Stmt or a whole Program)
// field by field, for when the Lisp-style Print isn't expressive enough
// — e.g. inspecting a parsed function body in a failing parser test.
func Dump(v any) string {
	return pretty.Sprint(v)
}
