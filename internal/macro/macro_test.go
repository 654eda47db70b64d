package macro

import (
	"encoding/json"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"github.com/treep-lang/treep/internal/element"
)

func TestExpandInc(t *testing.T) {
	tree := call("inc", element.New(element.KindVar, "x"))

	got, err := New().Expand(tree)
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}

	want := call("=",
		element.New(element.KindVar, "x"),
		call("+", element.New(element.KindVar, "x"), intLit("1")),
	)
	if !element.Equal(got, want) {
		t.Fatalf("expansion mismatch:\ngot:  %+v\nwant: %+v", got, want)
	}
}

func TestExpandWhenWithLambdaBody(t *testing.T) {
	body := element.New(element.KindLambda, "", element.New(element.KindBlock, "", call("println", strLit("hi"))))
	tree := call("when", element.New(element.KindVar, "ok"), body)

	got, err := New().Expand(tree)
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	if got.Kind != element.KindIf {
		t.Fatalf("expected if node, got %v", got.Kind)
	}
	if len(got.Children) != 2 {
		t.Fatalf("expected condition+block, got %d children", len(got.Children))
	}
	if got.Children[1].Kind != element.KindBlock {
		t.Fatalf("expected lift() to unwrap the lambda, got %v", got.Children[1].Kind)
	}
}

// TestBuiltinExpansionFidelity checks each built-in's expansion against
// the normative tree, structurally (spans excluded). Body-taking macros
// are fed the lambda-wrapped shape the block-argument desugaring
// produces, so the lifted block appears directly in the output.
func TestBuiltinExpansionFidelity(t *testing.T) {
	x := func() *element.Element { return element.New(element.KindVar, "x") }
	body := func() *element.Element {
		return element.New(element.KindLambda, "", element.New(element.KindBlock, "", call("println", strLit("b"))))
	}
	lifted := func() *element.Element {
		return element.New(element.KindBlock, "", call("println", strLit("b")))
	}

	cases := []struct {
		name string
		in   *element.Element
		want *element.Element
	}{
		{"when", call("when", x(), body()),
			element.New(element.KindIf, "", cond(x()), lifted())},
		{"assert", call("assert", x()),
			element.New(element.KindIf, "",
				cond(call("unary_!", x())),
				element.New(element.KindBlock, "", call("error", strLit("Assertion failed"))))},
		{"debug", call("debug", x()),
			call("println", call("+", strLit("Debug: "), call("toString", x())))},
		{"log", call("log", x()),
			call("println", call("+", strLit("[LOG] "), x()))},
		{"trace", call("trace", x()),
			element.New(element.KindBlock, "",
				element.New(element.KindLet, "__trace_result", x()),
				call("println", call("+", strLit("Trace: "), call("toString", element.New(element.KindVar, "__trace_result")))),
				element.New(element.KindVar, "__trace_result"))},
		{"inc", call("inc", x()),
			call("=", x(), call("+", x(), intLit("1")))},
		{"dec", call("dec", x()),
			call("=", x(), call("-", x(), intLit("1")))},
		{"ifZero", call("ifZero", x(), body()),
			element.New(element.KindIf, "", cond(call("==", x(), intLit("0"))), lifted())},
		{"ifPositive", call("ifPositive", x(), body()),
			element.New(element.KindIf, "", cond(call(">", x(), intLit("0"))), lifted())},
		{"until", call("until", x(), body()),
			element.New(element.KindWhile, "", cond(call("unary_!", x())), lifted())},
	}

	e := New()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := e.Expand(tc.in)
			if err != nil {
				t.Fatalf("Expand: %v", err)
			}
			if !element.Equal(got, tc.want) {
				t.Fatalf("expansion mismatch:\ngot:  %+v\nwant: %+v", got, tc.want)
			}
			encoded, err := json.MarshalIndent(got, "", "  ")
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			snaps.MatchJSON(t, encoded)
		})
	}
}

func TestExpandUnknownCallPassesThrough(t *testing.T) {
	tree := call("notAMacro", element.New(element.KindVar, "x"))
	got, err := New().Expand(tree)
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	if !element.Equal(got, tree) {
		t.Fatalf("expected unknown call to pass through unchanged, got %+v", got)
	}
}

func TestExpandMissingArgumentErrors(t *testing.T) {
	tree := call("when", element.New(element.KindVar, "onlyCond"))
	if _, err := New().Expand(tree); err == nil {
		t.Fatal("expected error for missing body argument")
	}
}

func TestExpandIsIdempotentOnAlreadyExpanded(t *testing.T) {
	tree := call("inc", element.New(element.KindVar, "x"))
	e := New()
	once, err := e.Expand(tree)
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	twice, err := e.Expand(once)
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	if !element.Equal(once, twice) {
		t.Fatalf("expansion not idempotent:\nonce: %+v\ntwice: %+v", once, twice)
	}
}

func TestExpandRecursesIntoNonMacroChildren(t *testing.T) {
	inner := call("inc", element.New(element.KindVar, "y"))
	tree := call("print", inner)

	got, err := New().Expand(tree)
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	if got.Name != "print" {
		t.Fatalf("expected outer call preserved, got %q", got.Name)
	}
	if got.Children[0].Name != "=" {
		t.Fatalf("expected nested macro expanded, got %q", got.Children[0].Name)
	}
}
