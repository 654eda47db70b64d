package transducer

import (
	"encoding/json"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"github.com/treep-lang/treep/internal/element"
)

// TestRenameDefToFunction rewrites def nodes into function nodes (rest-
// capturing their children) while a second rule renames each param into
// an argument, exercising rest-capture splicing plus recursion into a
// generated node's children.
func TestRenameDefToFunction(t *testing.T) {
	fnRule := Rule{
		Name: "def-to-function",
		Pattern: KindPattern{
			Kind:          element.KindDef,
			NameVar:       "fname",
			ChildPatterns: []Pattern{ListPattern{RestVar: "kids"}},
		},
		Template: NodeTemplate{
			Kind:     "function",
			Name:     Var{Name: "fname"},
			Children: []Template{VarTemplate{Name: "kids"}},
		},
	}
	paramRule := Rule{
		Name:     "param-to-argument",
		Pattern:  KindPattern{Kind: element.KindParam, NameVar: "pname"},
		Template: NodeTemplate{Kind: "argument", Name: Var{Name: "pname"}},
	}

	input := element.New(element.KindDef, "add",
		element.New(element.KindParam, "x"),
		element.New(element.KindParam, "y"),
	)
	got, err := New(fnRule, paramRule).Transform(input)
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}

	want := element.New("function", "add",
		element.New("argument", "x"),
		element.New("argument", "y"),
	)
	if !element.Equal(got, want) {
		t.Fatalf("got %+v, want %+v", got, want)
	}
	encoded, err := json.MarshalIndent(got, "", "  ")
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	snaps.MatchJSON(t, encoded)
}

func TestRuleOrderPriority(t *testing.T) {
	ruleTo := func(name string) Rule {
		return Rule{
			Name:     name,
			Pattern:  KindPattern{Kind: element.KindVar, NameVar: "n"},
			Template: NodeTemplate{Kind: element.KindVar, Name: Literal{Value: name}},
		}
	}
	a, b := ruleTo("a"), ruleTo("b")
	input := element.New(element.KindVar, "x")

	got, err := New(a, b).Transform(input)
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}
	if got.Name != "a" {
		t.Fatalf("earlier rule should win, got %q", got.Name)
	}

	got, err = New(b, a).Transform(input)
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}
	if got.Name != "b" {
		t.Fatalf("swapped order should change the result, got %q", got.Name)
	}
}

// identityRule builds one arithmetic-identity rule: a binary op whose
// litSide operand is the literal litValue rewrites to the keep binding.
func identityRule(name, op, litSide, litValue, keep string) Rule {
	pattern, opCond := MatchBinaryOp(op)
	return Rule{
		Name:    name,
		Pattern: pattern,
		Condition: When(opCond, func(b Bindings) bool {
			return IsLiteral(b.Node(litSide), litValue)
		}),
		Template: VarTemplate{Name: keep},
	}
}

func zeroTemplate() Template {
	return NodeTemplate{
		Kind: element.KindLiteral,
		Attrs: []AttrTemplate{
			{Key: "type", Value: Literal{Value: element.TypeInt}},
			{Key: "value", Value: Literal{Value: "0"}},
		},
	}
}

func TestArithmeticIdentityFixpoint(t *testing.T) {
	mulZeroRule := func(name, litSide string) Rule {
		pattern, opCond := MatchBinaryOp("*")
		return Rule{
			Name:    name,
			Pattern: pattern,
			Condition: When(opCond, func(b Bindings) bool {
				return IsLiteral(b.Node(litSide), "0")
			}),
			Template: zeroTemplate(),
		}
	}
	tr := New(
		identityRule("add-zero-right", "+", "right", "0", "left"),
		identityRule("add-zero-left", "+", "left", "0", "right"),
		identityRule("mul-one-right", "*", "right", "1", "left"),
		identityRule("mul-one-left", "*", "left", "1", "right"),
		mulZeroRule("mul-zero-right", "right"),
		mulZeroRule("mul-zero-left", "left"),
	)

	// ((x+0)*1)+0
	input := element.New(element.KindCall, "+",
		element.New(element.KindCall, "*",
			element.New(element.KindCall, "+",
				element.New(element.KindVar, "x"),
				element.NewLiteral(element.TypeInt, "0"),
			),
			element.NewLiteral(element.TypeInt, "1"),
		),
		element.NewLiteral(element.TypeInt, "0"),
	)

	got, err := Fixpoint(tr, input)
	if err != nil {
		t.Fatalf("Fixpoint: %v", err)
	}
	if !IsVar(got, "x") {
		t.Fatalf("expected var(x), got %+v", got)
	}
}
