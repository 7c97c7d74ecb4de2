package parser

import (
	"testing"

	"github.com/teatov/gorb/lexer"
)

func parseString(t *testing.T, input string) string {
	t.Helper()
	l := lexer.NewFromString(input, "")
	p := New(l)
	program := p.Parse()
	if errs := p.Errors(); len(errs) > 0 {
		t.Fatalf("parser errors for %q: %v", input, errs)
	}
	return program.String()
}

func TestOperatorPrecedence(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"-a * b", "((-a) * b)"},
		{"a + b * c + d / e - f", "(((a + (b * c)) + (d / e)) - f)"},
		{"3 + 4 * 5 == 3 * 1 + 4 * 5", "((3 + (4 * 5)) == ((3 * 1) + (4 * 5)))"},
		{"a * [1, 2, 3, 4][b * c] * d", "((a * ([1, 2, 3, 4][(b * c)])) * d)"},
		{"add(a, b, 1, 2 * 3, 4 + 5, add(6, 7 * 8))", "add(a, b, 1, (2 * 3), (4 + 5), add(6, (7 * 8)))"},
	}

	for _, tt := range tests {
		if got := parseString(t, tt.input); got != tt.want {
			t.Errorf("parse(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestDeclarationStatement(t *testing.T) {
	l := lexer.NewFromString("so x = 5;", "")
	p := New(l)
	program := p.Parse()

	if errs := p.Errors(); len(errs) > 0 {
		t.Fatalf("parser errors: %v", errs)
	}
	if len(program.Statements) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(program.Statements))
	}
	if got, want := program.String(), "so x = 5;"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestReturnStatement(t *testing.T) {
	got := parseString(t, "return 5;")
	if want := "return 5;"; got != want {
		t.Errorf("parse = %q, want %q", got, want)
	}
}

func TestIfElseExpression(t *testing.T) {
	got := parseString(t, "if (x < y) { x } else { y }")
	if want := "if (x < y) x else y"; got != want {
		t.Errorf("parse = %q, want %q", got, want)
	}
}

func TestFunctionLiteral(t *testing.T) {
	got := parseString(t, "fn(x, y) { x + y; }")
	if want := "fn(x, y){(x + y)}"; got != want {
		t.Errorf("parse = %q, want %q", got, want)
	}
}

func TestHashLiteralPreservesParseOrder(t *testing.T) {
	got := parseString(t, `{"one": 1, "two": 2, "three": 3}`)
	if want := "{one:1, two:2, three:3}"; got != want {
		t.Errorf("parse = %q, want %q", got, want)
	}
}

func TestEmptyCollections(t *testing.T) {
	if got, want := parseString(t, "[]"), "[]"; got != want {
		t.Errorf("parse([]) = %q, want %q", got, want)
	}
	if got, want := parseString(t, "{}"), "{}"; got != want {
		t.Errorf("parse({}) = %q, want %q", got, want)
	}
}

func TestParserErrorMessages(t *testing.T) {
	l := lexer.NewFromString("so x 5;", "")
	p := New(l)
	p.Parse()

	errs := p.Errors()
	if len(errs) == 0 {
		t.Fatal("expected at least one parse error")
	}
	if want := "expected =, got INTEGER"; errs[0] != want {
		t.Errorf("errs[0] = %q, want %q", errs[0], want)
	}
}

func TestNoUnaryParseFnError(t *testing.T) {
	l := lexer.NewFromString(")", "")
	p := New(l)
	p.Parse()

	errs := p.Errors()
	if len(errs) == 0 {
		t.Fatal("expected at least one parse error")
	}
	if want := "no unary parse function for ) found"; errs[0] != want {
		t.Errorf("errs[0] = %q, want %q", errs[0], want)
	}
}
