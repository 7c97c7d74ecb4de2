package eval

import (
	"fmt"
	"os"

	"github.com/teatov/gorb/object"
	"github.com/teatov/gorb/token"
)

// builtins is the fixed set of host functions every identifier lookup
// falls back to once the environment chain comes up empty.
var builtins = map[string]*object.Builtin{
	"len":   {Fn: builtinLen},
	"first": {Fn: builtinFirst},
	"last":  {Fn: builtinLast},
	"rest":  {Fn: builtinRest},
	"push":  {Fn: builtinPush},
	"puts":  {Fn: builtinPuts},
}

// argCountPhrase pluralizes "N argument(s)" for arity-mismatch messages.
func argCountPhrase(n int) string {
	if n == 1 {
		return "1 argument"
	}
	return fmt.Sprintf("%d arguments", n)
}

func wrongArgCount(tok token.Token, want, got int) *object.Error {
	return object.Newf(tok, "expected %s, got %d", argCountPhrase(want), got)
}

func unsupported(tok token.Token, name string, arg object.Value) *object.Error {
	return object.Newf(tok, "'%s' does not support %s", name, object.Stringify(arg))
}

func builtinLen(tok token.Token, args ...object.Value) object.Value {
	if len(args) != 1 {
		return wrongArgCount(tok, 1, len(args))
	}

	switch arg := args[0].(type) {
	case *object.String:
		return &object.Integer{Value: int32(len(arg.Value))}
	case *object.Array:
		return &object.Integer{Value: int32(len(arg.Elements))}
	default:
		return unsupported(tok, "len", arg)
	}
}

func builtinFirst(tok token.Token, args ...object.Value) object.Value {
	if len(args) != 1 {
		return wrongArgCount(tok, 1, len(args))
	}
	arr, ok := args[0].(*object.Array)
	if !ok {
		return unsupported(tok, "first", args[0])
	}
	if len(arr.Elements) == 0 {
		return null
	}
	return arr.Elements[0]
}

func builtinLast(tok token.Token, args ...object.Value) object.Value {
	if len(args) != 1 {
		return wrongArgCount(tok, 1, len(args))
	}
	arr, ok := args[0].(*object.Array)
	if !ok {
		return unsupported(tok, "last", args[0])
	}
	if len(arr.Elements) == 0 {
		return null
	}
	return arr.Elements[len(arr.Elements)-1]
}

func builtinRest(tok token.Token, args ...object.Value) object.Value {
	if len(args) != 1 {
		return wrongArgCount(tok, 1, len(args))
	}
	arr, ok := args[0].(*object.Array)
	if !ok {
		return unsupported(tok, "rest", args[0])
	}
	length := len(arr.Elements)
	if length == 0 {
		return null
	}

	newElements := make([]object.Value, length-1)
	copy(newElements, arr.Elements[1:length])
	return &object.Array{Elements: newElements}
}

func builtinPush(tok token.Token, args ...object.Value) object.Value {
	if len(args) != 2 {
		return wrongArgCount(tok, 2, len(args))
	}
	arr, ok := args[0].(*object.Array)
	if !ok {
		return unsupported(tok, "push", args[0])
	}

	length := len(arr.Elements)
	newElements := make([]object.Value, length+1)
	copy(newElements, arr.Elements)
	newElements[length] = args[1]
	return &object.Array{Elements: newElements}
}

func builtinPuts(tok token.Token, args ...object.Value) object.Value {
	for _, arg := range args {
		fmt.Fprintln(os.Stdout, arg.Inspect())
	}
	return null
}
