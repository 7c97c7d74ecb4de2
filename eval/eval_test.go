package eval

import (
	"testing"

	"github.com/teatov/gorb/lexer"
	"github.com/teatov/gorb/object"
	"github.com/teatov/gorb/parser"
)

func testEval(t *testing.T, input string) object.Value {
	t.Helper()
	l := lexer.NewFromString(input, "")
	p := parser.New(l)
	program := p.Parse()
	if errs := p.Errors(); len(errs) > 0 {
		t.Fatalf("parser errors for %q: %v", input, errs)
	}
	env := object.NewEnvironment()
	return Eval(program, env)
}

func TestEndToEndScenarios(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"(5 + 10 * 2 + 15 / 3) * 2 + -10", "50"},
		{`"Hello" + " " + "World!"`, "Hello World!"},
		{"so newAdder = fn(x) { fn(y) { x + y } }; so addTwo = newAdder(2); addTwo(2);", "4"},
		{"if (10 > 1) { if (10 > 1) { return 10; } return 1; }", "10"},
		{`len("йцукен")`, "12"},
		{`{"one": 10 - 9, "two": 1 + 1}["two"]`, "2"},
	}

	for _, tt := range tests {
		val := testEval(t, tt.input)
		if val == nil {
			t.Fatalf("Eval(%q) = nil", tt.input)
		}
		if got := val.Inspect(); got != tt.want {
			t.Errorf("Eval(%q).Inspect() = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestErrorScenarios(t *testing.T) {
	tests := []struct {
		input    string
		contains string
	}{
		{"5 + true;", "type mismatch: [integer] + [boolean]"},
		{`{"name": "M"}[fn(x){x}]`, "[function] is unusable as hash key"},
		{"foobar", "identifier 'foobar' not found"},
		{`5(1)`, "[integer] is not a function"},
		{"[1][\"x\"]", "index operator is not supported"},
	}

	for _, tt := range tests {
		val := testEval(t, tt.input)
		errVal, ok := val.(*object.Error)
		if !ok {
			t.Fatalf("Eval(%q) = %T (%v), want *object.Error", tt.input, val, val)
		}
		if got := errVal.Message; !contains(got, tt.contains) {
			t.Errorf("Eval(%q) error = %q, want substring %q", tt.input, got, tt.contains)
		}
	}
}

func contains(haystack, needle string) bool {
	return len(needle) == 0 || indexOf(haystack, needle) >= 0
}

func indexOf(haystack, needle string) int {
	for i := 0; i+len(needle) <= len(haystack); i++ {
		if haystack[i:i+len(needle)] == needle {
			return i
		}
	}
	return -1
}

func TestArrayIndexBoundary(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"[1, 2, 3][0]", "1"},
		{"[1, 2, 3][3]", "null"},
		{"[1, 2, 3][-1]", "null"},
	}

	for _, tt := range tests {
		if got := testEval(t, tt.input).Inspect(); got != tt.want {
			t.Errorf("Eval(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestHashLiteralDuplicateKeyLastWins(t *testing.T) {
	val := testEval(t, `{"a": 1, "a": 2}["a"]`)
	if got, want := val.Inspect(), "2"; got != want {
		t.Errorf("duplicate key result = %q, want %q", got, want)
	}
}

func TestTruthiness(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"!true", "false"},
		{"!false", "true"},
		{"!5", "false"},
		{"!!5", "true"},
		{"!0", "false"},
	}

	for _, tt := range tests {
		if got := testEval(t, tt.input).Inspect(); got != tt.want {
			t.Errorf("Eval(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestClosures(t *testing.T) {
	val := testEval(t, "so newAdder = fn(x) { fn(y) { x + y }; }; so addTwo = newAdder(2); addTwo(3);")
	if got, want := val.Inspect(), "5"; got != want {
		t.Errorf("closure result = %q, want %q", got, want)
	}
}

func TestDeclarationProducesNull(t *testing.T) {
	val := testEval(t, "so x = 5;")
	if got, want := val.Inspect(), "null"; got != want {
		t.Errorf("Eval(%q) = %q, want %q", "so x = 5;", got, want)
	}
}

func TestTopLevelReturnUnwraps(t *testing.T) {
	val := testEval(t, "return 5;")
	if _, ok := val.(*object.ReturnValue); ok {
		t.Fatalf("Eval(%q) = %T, top level must unwrap ReturnValue", "return 5;", val)
	}
	if got, want := val.Inspect(), "5"; got != want {
		t.Errorf("Eval(%q) = %q, want %q", "return 5;", got, want)
	}
}

func TestStringEqualityIsNotSupported(t *testing.T) {
	val := testEval(t, `"a" == "a"`)
	errVal, ok := val.(*object.Error)
	if !ok {
		t.Fatalf("Eval(%q) = %T, want *object.Error", `"a" == "a"`, val)
	}
	if !contains(errVal.Message, "unknown operation") {
		t.Errorf("error = %q, want it to mention unknown operation", errVal.Message)
	}
}
