package api

import (
	"bytes"
	"strings"
	"testing"

	"github.com/treep-lang/treep/internal/element"
	"github.com/treep-lang/treep/internal/interp"
)

func TestCompileAndRunReturnsMainResult(t *testing.T) {
	var out bytes.Buffer
	result, err := CompileAndRun(`
def main() {
	return 2 + 3 * 4
}
`, &out)
	if err != nil {
		t.Fatalf("CompileAndRun: %v", err)
	}
	i, ok := result.Value.(*interp.Integer)
	if !ok || i.Value != 14 {
		t.Fatalf("got %+v, want Integer(14)", result.Value)
	}
}

func TestCompileAndRunWritesPrintlnOutput(t *testing.T) {
	var out bytes.Buffer
	_, err := CompileAndRun(`
def main() {
	println("hello")
	return 0
}
`, &out)
	if err != nil {
		t.Fatalf("CompileAndRun: %v", err)
	}
	if strings.TrimSpace(out.String()) != "hello" {
		t.Fatalf("got output %q, want %q", out.String(), "hello")
	}
}

func TestCompileAndRunSurfacesTypeErrors(t *testing.T) {
	_, err := CompileAndRun(`
def main() {
	return 1 + "two"
}
`, nil)
	if err == nil {
		t.Fatal("expected a type error for Int + String under the monomorphic + signature")
	}
}

func TestCompileAndRunSurfacesRuntimeErrorCalls(t *testing.T) {
	_, err := CompileAndRun(`
def main() {
	return error("boom")
}
`, nil)
	if err == nil {
		t.Fatal("expected a runtime error from an explicit error() call")
	}
}

func TestExpandReturnsExpandedTree(t *testing.T) {
	tree, err := Expand(`
def main() {
	let x = 0
	inc(x)
	return x
}
`)
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	if tree == nil || tree.Kind != element.KindBlock {
		t.Fatalf("expected a root block, got %+v", tree)
	}
}

func TestFactorialEndToEnd(t *testing.T) {
	var out bytes.Buffer
	result, err := CompileAndRun(`
def factorial(n: Int) returns: Int {
	if (n <= 1) {
		return 1
	}
	return n * factorial(n - 1)
}
def main() {
	println(factorial(5))
	return 0
}
`, &out)
	if err != nil {
		t.Fatalf("CompileAndRun: %v", err)
	}
	if strings.TrimSpace(out.String()) != "120" {
		t.Fatalf("got output %q, want %q", out.String(), "120")
	}
	i, ok := result.Value.(*interp.Integer)
	if !ok || i.Value != 0 {
		t.Fatalf("got %+v, want Integer(0)", result.Value)
	}
}

func TestWhenExpansionEndToEnd(t *testing.T) {
	source := `
def main() {
	let x = 1
	when(x > 0) {
		println("positive")
	}
	return 0
}
`
	var out bytes.Buffer
	if _, err := CompileAndRun(source, &out); err != nil {
		t.Fatalf("CompileAndRun: %v", err)
	}
	if strings.TrimSpace(out.String()) != "positive" {
		t.Fatalf("got output %q, want %q", out.String(), "positive")
	}

	tree, err := Expand(source)
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	var sawIf bool
	var walk func(n *element.Element)
	walk = func(n *element.Element) {
		if n == nil {
			return
		}
		if n.Kind == element.KindCall && n.Name == "when" {
			t.Fatal("a call named when survived expansion")
		}
		if n.Kind == element.KindIf {
			sawIf = true
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(tree)
	if !sawIf {
		t.Fatal("expected the expansion to contain an if node")
	}
}

func TestTypeCheckInfersIdentityPolymorphically(t *testing.T) {
	typ, err := TypeCheck(`
def identity(x) {
	return x
}
def main() {
	return identity(42)
}
`)
	if err != nil {
		t.Fatalf("TypeCheck: %v", err)
	}
	if typ.String() != "Int" {
		t.Fatalf("got %s, want Int", typ.String())
	}
}
