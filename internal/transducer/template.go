package transducer

import "github.com/treep-lang/treep/internal/element"

// Expr is a template-side expression: a variable reference, a literal
// string, or a concatenation of sub-expressions.
type Expr interface {
	eval(b Bindings) string
}

// Var references a bound string (typically an attribute value or a
// captured node's Name).
type Var struct{ Name string }

func (v Var) eval(b Bindings) string { return b.String(v.Name) }

// Literal is a fixed string.
type Literal struct{ Value string }

func (l Literal) eval(Bindings) string { return l.Value }

// Concat joins its parts' evaluated strings.
type Concat struct{ Parts []Expr }

func (c Concat) eval(b Bindings) string {
	out := ""
	for _, p := range c.Parts {
		out += p.eval(b)
	}
	return out
}

// AttrTemplate generates one output attribute.
type AttrTemplate struct {
	Key   string
	Value Expr
}

// Template is the interface every template shape satisfies: produce
// output node(s) from bindings. Most templates yield exactly one node;
// ListTemplate yields a splice and must only be used as a child-template.
type Template interface {
	generate(b Bindings) []*element.Element
}

// one adapts a single-node generator to the []*element.Element contract
// every Template must satisfy (for use as a direct child-template slot).
func one(e *element.Element) []*element.Element { return []*element.Element{e} }

// NodeTemplate builds a fresh node: a Kind, an optional Name expression,
// ordered attribute-templates, and ordered child-templates (any of which
// may be a ListTemplate that splices multiple children in).
type NodeTemplate struct {
	Kind      element.Kind
	Name      Expr // nil if the node carries no name
	Attrs     []AttrTemplate
	Children  []Template
}

func (t NodeTemplate) generate(b Bindings) []*element.Element {
	n := &element.Element{Kind: t.Kind}
	if t.Name != nil {
		n.Name = t.Name.eval(b)
	}
	for _, at := range t.Attrs {
		n.Attrs = append(n.Attrs, element.Attr{Key: at.Key, Value: at.Value.eval(b)})
	}
	for _, ct := range t.Children {
		n.Children = append(n.Children, ct.generate(b)...)
	}
	return one(n)
}

// VarTemplate `$v` emits the bound value: a node is emitted as-is, a
// node-list is spliced, and a plain string is wrapped as
// literal(String, s).
type VarTemplate struct {
	Name string
}

func (t VarTemplate) generate(b Bindings) []*element.Element {
	if n := b.Node(t.Name); n != nil {
		return one(n)
	}
	if list := b.List(t.Name); list != nil {
		return list
	}
	return one(element.NewLiteral(element.TypeString, b.String(t.Name)))
}

// LiteralTemplate emits literal(String, value) for a fixed string.
type LiteralTemplate struct {
	Value string
}

func (t LiteralTemplate) generate(Bindings) []*element.Element {
	return one(element.NewLiteral(element.TypeString, t.Value))
}

// ListTemplate splices a sequence of sub-templates' outputs into the
// surrounding children list. Legal only as a child-template, never as a
// rule's top-level template.
type ListTemplate struct {
	Items []Template
}

func (t ListTemplate) generate(b Bindings) []*element.Element {
	var out []*element.Element
	for _, item := range t.Items {
		out = append(out, item.generate(b)...)
	}
	return out
}
