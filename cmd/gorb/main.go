// Command gorb runs gorb source files and provides an interactive
// REPL.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/teatov/gorb/lexer"
	"github.com/teatov/gorb/parser"
	"github.com/teatov/gorb/repl"
	"github.com/teatov/gorb/token"
)

var version = "0.1.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var interactive bool
	var showTokens bool
	var showAST bool

	cmd := &cobra.Command{
		Use:   "gorb [file]",
		Short: "gorb is an interpreter for the gorb scripting language",
		Long: "gorb runs a source file and, with no file or with --interactive, drops\n" +
			"into a read-eval-print loop afterwards.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(args, interactive, showTokens, showAST)
		},
	}

	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false,
		"start a REPL after running the file, sharing its environment")
	cmd.Flags().BoolVarP(&showTokens, "tokens", "t", false,
		"print the token stream before evaluating")
	cmd.Flags().BoolVarP(&showAST, "ast", "a", false,
		"print the parsed syntax tree before evaluating")

	cmd.AddCommand(newVersionCmd())

	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the gorb version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(version)
		},
	}
}

func run(args []string, interactive, showTokens, showAST bool) error {
	if len(args) == 0 {
		repl.Start(os.Stdin, os.Stdout, nil)
		return nil
	}

	path := args[0]
	if !strings.HasSuffix(path, ".gorb") {
		return fmt.Errorf("%s: source files must end in .gorb", path)
	}

	if showTokens {
		if err := printTokens(path); err != nil {
			return err
		}
	}
	if showAST {
		if err := printAST(path); err != nil {
			return err
		}
	}

	env, err := repl.ExecuteFile(os.Stdout, path)
	if err != nil {
		return errors.Wrapf(err, "running %s", path)
	}

	if interactive {
		repl.Start(os.Stdin, os.Stdout, env)
	}

	return nil
}

func printTokens(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(err, "opening %s", path)
	}
	defer f.Close()

	l := lexer.New(f, path)
	for {
		tok := l.NextToken()
		fmt.Println(tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	return nil
}

func printAST(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(err, "opening %s", path)
	}
	defer f.Close()

	p := parser.NewFromReader(f, path)
	program := p.Parse()
	if errs := p.Errors(); len(errs) > 0 {
		for _, msg := range errs {
			fmt.Fprintln(os.Stderr, "syntax error:", msg)
		}
		return fmt.Errorf("%d parse error(s)", len(errs))
	}

	fmt.Println(program.String())
	return nil
}
