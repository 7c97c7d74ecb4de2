// Package repl implements gorb's read-eval-print loop and the
// equivalent one-shot file execution path, both sharing one
// environment so a file loaded with -i can be explored interactively
// afterwards.
package repl

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/teatov/gorb/diag"
	"github.com/teatov/gorb/eval"
	"github.com/teatov/gorb/lexer"
	"github.com/teatov/gorb/object"
	"github.com/teatov/gorb/parser"
)

const prompt = "> "

// ExecuteFile runs the program at path against a fresh environment and
// returns it, so a caller wanting an interactive session afterwards
// can reuse the bindings the file created. The returned error is only
// ever a host-level failure (the file could not be read); a user-level
// evaluation error is written to out and swallowed, matching the rule
// that a reported language error still exits 0.
func ExecuteFile(out io.Writer, path string) (object.Environment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	env := object.NewEnvironment()
	val := Run(string(data), path, env, out)
	if errVal, ok := val.(*object.Error); ok {
		fmt.Fprintln(out, Diagnose(errVal))
	}

	return env, nil
}

// Start runs the interactive loop, reading one line at a time from in
// until EOF or the "exit" sentinel. When env is nil a fresh one is
// created, so a caller can pass in the environment ExecuteFile left
// behind to continue a file's session.
func Start(in io.Reader, out io.Writer, env object.Environment) {
	fmt.Fprintln(out, "welcome to gorb. type \"exit\" to quit.")

	scanner := bufio.NewScanner(in)
	if env == nil {
		env = object.NewEnvironment()
	}

	for {
		fmt.Fprint(out, prompt)
		if !scanner.Scan() {
			return
		}

		line := scanner.Text()
		if line == "exit" {
			return
		}

		val := Run(line, "", env, out)
		if errVal, ok := val.(*object.Error); ok {
			fmt.Fprintln(out, Diagnose(errVal))
		} else if val != nil {
			fmt.Fprintln(out, val.Inspect())
		}
	}
}

// Run lexes, parses, and evaluates one chunk of source against env.
// Parse errors are written to out and Run returns nil; an evaluation
// error is returned as an *object.Error for the caller to report. file
// labels diagnostics; pass the empty string for REPL input.
func Run(text, file string, env object.Environment, out io.Writer) object.Value {
	l := lexer.NewFromString(text, file)
	p := parser.New(l)

	program := p.Parse()
	if errs := p.Errors(); len(errs) > 0 {
		printParseErrors(out, errs)
		return nil
	}

	return eval.Eval(program, env)
}

func printParseErrors(out io.Writer, errors []string) {
	fmt.Fprintln(out, "syntax error:")
	for _, msg := range errors {
		fmt.Fprintln(out, "\t"+msg)
	}
}

// Diagnose formats a runtime object.Error the way the CLI reports it,
// pointing at the token responsible via the diag package.
func Diagnose(err *object.Error) string {
	return diag.Format(err.Token, err.Message)
}
