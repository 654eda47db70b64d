package ruleset

import (
	"testing"

	"github.com/treep-lang/treep/internal/element"
	"github.com/treep-lang/treep/internal/transducer"
)

func TestLoadSimplifyDoubleNegation(t *testing.T) {
	yamlDoc := []byte(`
rules:
  - name: double-negation
    match:
      kind: call
      name: "unary_-"
      children:
        - kind: call
          name: "unary_-"
          children:
            - var: x
    produce:
      var: x
`)
	rules, err := Load(yamlDoc)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	td := transducer.New(rules...)

	inner := element.New(element.KindVar, "n")
	negNeg := element.New(element.KindCall, "unary_-",
		element.New(element.KindCall, "unary_-", inner))

	out, err := td.Transform(negNeg)
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}
	if !element.Equal(out, inner) {
		t.Fatalf("got %+v, want %+v", out, inner)
	}
}

func TestLoadRejectsEmptyPattern(t *testing.T) {
	_, err := Load([]byte(`
rules:
  - name: broken
    match: {}
    produce:
      literal: "x"
`))
	if err == nil {
		t.Fatal("expected an error for an empty match pattern")
	}
}

func TestLoadLiteralAttrCapture(t *testing.T) {
	yamlDoc := []byte(`
rules:
  - name: rename-literal
    match:
      kind: literal
      attrs:
        type: Int
        value: "$v"
    produce:
      kind: literal
      attrs:
        type: String
        value: "$v"
`)
	rules, err := Load(yamlDoc)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	td := transducer.New(rules...)

	lit := element.NewLiteral(element.TypeInt, "7")
	out, err := td.Transform(lit)
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}
	typ, val, ok := out.LiteralValue()
	if !ok || typ != element.TypeString || val != "7" {
		t.Fatalf("got (%s, %s), want (String, 7)", typ, val)
	}
}
