package interp

import (
	"bytes"
	"testing"

	"github.com/treep-lang/treep/internal/element"
	"github.com/treep-lang/treep/internal/macro"
	"github.com/treep-lang/treep/internal/normalize"
	"github.com/treep-lang/treep/internal/parser"
)

func run(t *testing.T, source string) (Object, string) {
	t.Helper()
	p := parser.New("test.tp", source)
	prog := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		t.Fatalf("parse errors: %v", errs)
	}
	tree := normalize.Normalize(prog)
	expanded, err := macro.New().Expand(tree)
	if err != nil {
		t.Fatalf("expand: %v", err)
	}
	var buf bytes.Buffer
	ev := New(&buf)
	env := ev.NewGlobalEnv()
	result, err := ev.Run(env, expanded)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	return result, buf.String()
}

func TestRunIntegerArithmetic(t *testing.T) {
	result, _ := run(t, `
def main() {
	let x = 2 + 3 * 4
	return x
}
`)
	i, ok := result.(*Integer)
	if !ok || i.Value != 14 {
		t.Fatalf("got %+v, want Integer(14)", result)
	}
}

func TestDefAndCallIdentity(t *testing.T) {
	result, _ := run(t, `
def identity(x) {
	return x
}
def main() {
	return identity(42)
}
`)
	i, ok := result.(*Integer)
	if !ok || i.Value != 42 {
		t.Fatalf("got %+v, want Integer(42)", result)
	}
}

func TestFloorDivision(t *testing.T) {
	result, _ := run(t, `
def main() {
	return -7 / 2
}
`)
	i, ok := result.(*Integer)
	if !ok || i.Value != -4 {
		t.Fatalf("got %+v, want Integer(-4) (floor division)", result)
	}
}

func TestIncMacroExpansion(t *testing.T) {
	result, _ := run(t, `
def main() {
	let x = 0
	inc(x)
	inc(x)
	return x
}
`)
	i, ok := result.(*Integer)
	if !ok || i.Value != 2 {
		t.Fatalf("got %+v, want Integer(2)", result)
	}
}

func TestStringConcatenationPolymorphicPlus(t *testing.T) {
	result, _ := run(t, `
def main() {
	return "a" + "b"
}
`)
	s, ok := result.(*String)
	if !ok || s.Value != "ab" {
		t.Fatalf("got %+v, want String(\"ab\")", result)
	}
}

func TestForLoopAccumulates(t *testing.T) {
	result, _ := run(t, `
def main() {
	let total = 0
	for (i = 1, 5) {
		total = total + i
	}
	return total
}
`)
	i, ok := result.(*Integer)
	if !ok || i.Value != 15 {
		t.Fatalf("got %+v, want Integer(15)", result)
	}
}

func TestBlockArgumentDesugaring(t *testing.T) {
	result, _ := run(t, `
def apply(f) {
	return f()
}
def main() {
	return apply() {
		return 7
	}
}
`)
	i, ok := result.(*Integer)
	if !ok || i.Value != 7 {
		t.Fatalf("got %+v, want Integer(7)", result)
	}
}

func TestEqualElementOnExpandedTree(t *testing.T) {
	// sanity check that normalize+expand produce a well-formed tree
	// (no panics) for a program using def, let, if/else and return, and
	// that expanding a program with no macro calls leaves it equal.
	source := `
def f(x: Int) returns: Int {
	let y: Int = x
	if (y > 0) {
		return y
	} else {
		return 0
	}
}
`
	p := parser.New("t.tp", source)
	prog := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		t.Fatalf("parse errors: %v", errs)
	}
	tree := normalize.Normalize(prog)
	if tree.Kind != element.KindBlock {
		t.Fatalf("expected root block, got %v", tree.Kind)
	}
	expanded, err := macro.New().Expand(tree)
	if err != nil {
		t.Fatalf("expand: %v", err)
	}
	if !element.Equal(expanded, tree) {
		t.Fatalf("expanding a macro-free program changed its tree: %+v", expanded)
	}
}
