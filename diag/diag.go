// Package diag renders gorb diagnostics as caret-pointing source
// snippets, the way a compiler error is shown to a human.
package diag

import (
	"fmt"
	"strings"

	"github.com/teatov/gorb/token"
)

// Format renders message against the token responsible for it:
//
//	error: MESSAGE
//	FILE:LINE:COL
//	<source line>
//	<spaces><carets> here
//
// FILE is empty when tok.File is empty (REPL input), so that line
// reads ":LINE:COL".
func Format(tok token.Token, message string) string {
	var out strings.Builder

	fmt.Fprintf(&out, "error: %s\n", message)

	fmt.Fprintf(&out, "%s:%s\n", tok.File, tok.Position)

	out.WriteString(tok.LineText)
	out.WriteByte('\n')

	width := caretWidth(tok)
	col := tok.Position.Column
	if col < 1 {
		col = 1
	}
	out.WriteString(strings.Repeat(" ", col-1))
	out.WriteString(strings.Repeat("^", width))
	out.WriteString(" here")

	return out.String()
}

// caretWidth is the literal's length, widened by 2 for string tokens to
// account for the surrounding quotes that LineText shows but Literal
// (already decoded) does not carry. It is never less than 1, so an EOF
// or zero-length literal still gets a single caret.
func caretWidth(tok token.Token) int {
	n := len(tok.Literal)
	if tok.Kind == token.STRING {
		n += 2
	}
	if n < 1 {
		n = 1
	}
	return n
}
