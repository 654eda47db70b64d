package transducer

import (
	"strconv"
	"testing"

	"github.com/treep-lang/treep/internal/element"
)

// TestConstantFoldAddition exercises a condition that mutates Bindings to
// stash a derived value (the folded literal) for the template, the
// pattern constant-folding rules rely on.
func TestConstantFoldAddition(t *testing.T) {
	pattern, opCond := MatchBinaryOp("+")
	rule := Rule{
		Name:    "fold-add",
		Pattern: pattern,
		Condition: When(opCond, func(b Bindings) bool {
			left, right := b.Node("left"), b.Node("right")
			if !IsLiteral(left) || !IsLiteral(right) {
				return false
			}
			_, lv, _ := left.LiteralValue()
			_, rv, _ := right.LiteralValue()
			li, err1 := strconv.Atoi(lv)
			ri, err2 := strconv.Atoi(rv)
			if err1 != nil || err2 != nil {
				return false
			}
			b["__folded"] = strconv.Itoa(li + ri)
			return true
		}),
		Template: NodeTemplate{
			Kind: element.KindLiteral,
			Attrs: []AttrTemplate{
				{Key: "type", Value: Literal{Value: element.TypeInt}},
				{Key: "value", Value: Var{Name: "__folded"}},
			},
		},
	}

	tr := New(rule)
	input := element.New(element.KindCall, "+",
		element.NewLiteral(element.TypeInt, "2"),
		element.NewLiteral(element.TypeInt, "3"),
	)
	got, err := tr.Transform(input)
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}
	_, v, ok := got.LiteralValue()
	if !ok || v != "5" {
		t.Fatalf("got %+v, want literal 5", got)
	}
}

func TestIdentityByDefault(t *testing.T) {
	tr := New() // no rules
	input := element.New(element.KindBlock, "", element.New(element.KindVar, "x"))
	got, err := tr.Transform(input)
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}
	if !element.Equal(got, input) {
		t.Fatalf("expected identity rewrite, got %+v", got)
	}
}

func TestListPatternRestCapture(t *testing.T) {
	pattern := KindPattern{
		Kind:          element.KindCall,
		ChildPatterns: []Pattern{VarPattern{Name: "first"}, ListPattern{RestVar: "rest"}},
	}
	b := Bindings{}
	node := element.New(element.KindCall, "f",
		element.New(element.KindVar, "a"),
		element.New(element.KindVar, "b"),
		element.New(element.KindVar, "c"),
	)
	if !pattern.Match(node, b) {
		t.Fatal("expected match")
	}
	if got := b.Node("first"); got == nil || got.Name != "a" {
		t.Fatalf("first binding wrong: %+v", got)
	}
	rest := b.List("rest")
	if len(rest) != 2 || rest[0].Name != "b" || rest[1].Name != "c" {
		t.Fatalf("rest binding wrong: %+v", rest)
	}
}

func TestFixpointConverges(t *testing.T) {
	// A rule that increments a literal int up to a cap, to verify Fixpoint
	// stops once the output stops changing.
	pattern := KindPattern{Kind: element.KindLiteral, AttrPatterns: []AttrPattern{
		{Key: "type", Literal: element.TypeInt, HasLit: true},
		{Key: "value", ValueVar: "v"},
	}}
	rule := Rule{
		Name:     "cap-at-3",
		Pattern:  pattern,
		Template: incrementToCapTemplate{cap: 3},
	}
	tr := New(rule)
	got, err := Fixpoint(tr, element.NewLiteral(element.TypeInt, "0"))
	if err != nil {
		t.Fatalf("Fixpoint: %v", err)
	}
	_, v, _ := got.LiteralValue()
	if v != "3" {
		t.Fatalf("got %s, want 3", v)
	}
}

// incrementToCapTemplate increments a bound int value by one, capping at
// cap, so repeated application converges — used only to exercise
// Fixpoint's apply-until-stable loop.
type incrementToCapTemplate struct{ cap int }

func (t incrementToCapTemplate) generate(b Bindings) []*element.Element {
	n, _ := strconv.Atoi(b.String("v"))
	if n < t.cap {
		n++
	}
	return one(element.NewLiteral(element.TypeInt, strconv.Itoa(n)))
}
