package normalize

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/kr/pretty"

	"github.com/treep-lang/treep/internal/element"
	"github.com/treep-lang/treep/internal/parser"
)

func normalizeSource(t *testing.T, source string) *element.Element {
	t.Helper()
	p := parser.New("test.tp", source)
	prog := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		t.Fatalf("parse errors: %v", errs)
	}
	return Normalize(prog)
}

func TestBlockArgumentEquivalence(t *testing.T) {
	sugared := normalizeSource(t, `f(1, 2) { println("x") }`)
	explicit := normalizeSource(t, `f(1, 2, () -> { println("x") })`)
	if !element.Equal(sugared, explicit) {
		t.Fatalf("block-argument desugaring mismatch:\n%s",
			strings.Join(pretty.Diff(sugared, explicit), "\n"))
	}
}

func TestBlockArgumentAppendsZeroParamLambda(t *testing.T) {
	root := normalizeSource(t, `each(xs) { println("item") }`)
	call := root.Child(0)
	if call.Kind != element.KindCall || call.Name != "each" {
		t.Fatalf("expected call each, got %# v", pretty.Formatter(call))
	}
	if len(call.Children) != 2 {
		t.Fatalf("expected 2 args after desugaring, got %d", len(call.Children))
	}
	lambda := call.Child(1)
	if lambda.Kind != element.KindLambda {
		t.Fatalf("trailing arg is %s, want lambda", lambda.Kind)
	}
	// Zero parameters: the lambda's only child is the block itself.
	if len(lambda.Children) != 1 || lambda.Child(0).Kind != element.KindBlock {
		t.Fatalf("lambda children wrong: %# v", pretty.Formatter(lambda))
	}
}

func TestDefRecordsParamTypesAsTopLevelAttrs(t *testing.T) {
	root := normalizeSource(t, `def add(x: Int, y: Int) returns: Int { return x + y }`)
	def := root.Child(0)
	if def.Kind != element.KindDef || def.Name != "add" {
		t.Fatalf("expected def add, got %# v", pretty.Formatter(def))
	}
	wantAttrs := []element.Attr{
		{Key: "x", Value: "Int"},
		{Key: "y", Value: "Int"},
		{Key: "returns", Value: "Int"},
	}
	if len(def.Attrs) != len(wantAttrs) {
		t.Fatalf("attrs: got %v, want %v", def.Attrs, wantAttrs)
	}
	for i, want := range wantAttrs {
		if def.Attrs[i] != want {
			t.Fatalf("attr %d: got %v, want %v", i, def.Attrs[i], want)
		}
	}
	// Children: param, param, block — with each param carrying its own
	// (type, T) attr.
	if len(def.Children) != 3 {
		t.Fatalf("children: got %d, want 3", len(def.Children))
	}
	for i, name := range []string{"x", "y"} {
		p := def.Child(i)
		if p.Kind != element.KindParam || p.Name != name {
			t.Fatalf("child %d: got %# v", i, pretty.Formatter(p))
		}
		if typ, ok := p.Attr("type"); !ok || typ != "Int" {
			t.Fatalf("param %s type attr: got %q, %v", name, typ, ok)
		}
	}
	if def.Child(2).Kind != element.KindBlock {
		t.Fatalf("last child is %s, want block", def.Child(2).Kind)
	}
}

func TestUnaryOperatorPrefixing(t *testing.T) {
	root := normalizeSource(t, `let b = !flag`)
	let := root.Child(0)
	call := let.Child(0)
	if call.Kind != element.KindCall || call.Name != "unary_!" {
		t.Fatalf("expected call unary_!, got %# v", pretty.Formatter(call))
	}
}

func TestNormalizeSnapshot(t *testing.T) {
	root := normalizeSource(t, `
def classify(n: Int) returns: String {
	if (n > 0) {
		return "positive"
	} else {
		return "other"
	}
}

def main() returns: Int {
	let total = 0
	for (i = 1, 10) {
		total = total + i
	}
	while (total > 100) {
		total = total - 100
	}
	println(classify(total))
	return 0
}
`)
	encoded, err := json.MarshalIndent(root, "", "  ")
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	snaps.MatchJSON(t, encoded)
}
