// Package element defines ET, the single uniform tree representation every
// TreeP pipeline stage after parsing operates on. Every stage's output is an
// *Element tree: a closed vocabulary of node kinds, each carrying an
// optional name, an ordered association list of attributes, ordered
// children, and an optional source span for diagnostics.
package element

// Kind is a closed, string-tagged vocabulary of ET node shapes. Kind is
// never empty on a well-formed Element.
type Kind string

const (
	KindDef       Kind = "def"
	KindParam     Kind = "param"
	KindLet       Kind = "let"
	KindLambda    Kind = "lambda"
	KindBlock     Kind = "block"
	KindReturn    Kind = "return"
	KindIf        Kind = "if"
	KindWhile     Kind = "while"
	KindFor       Kind = "for"
	KindCondition Kind = "condition"
	KindFrom      Kind = "from"
	KindTo        Kind = "to"
	KindMacro     Kind = "macro"
	KindCall      Kind = "call"
	KindVar       Kind = "var"
	KindLiteral   Kind = "literal"
)

// Attr is a single ordered (key, value) pair. attrs is a sequence, not a
// map: the same key may recur with different semantics (see Def, which
// records each parameter's type both as a child and as a top-level attr
// keyed by the parameter's own name), and the transducer's attribute
// patterns observe declaration order.
type Attr struct {
	Key   string
	Value string
}

// Span is a source range kept for diagnostics. A zero Span carries no
// location information; its absence never affects semantics.
type Span struct {
	StartLine, StartCol int
	EndLine, EndCol      int
}

// IsZero reports whether s carries no location.
func (s Span) IsZero() bool { return s == Span{} }

// Element is the sole ET node type. A parent exclusively owns its
// Children: there is no sharing and no cycles across a tree produced by
// any pipeline stage, and every stage constructs a fresh output tree
// rather than mutating its input.
type Element struct {
	Kind     Kind
	Name     string
	Attrs    []Attr
	Children []*Element
	Span     Span
}

// New builds an Element with the given kind, name and children and no
// attrs; add attrs with WithAttr.
func New(kind Kind, name string, children ...*Element) *Element {
	return &Element{Kind: kind, Name: name, Children: children}
}

// WithAttr appends a trailing attribute to e in place and returns e, so
// construction call sites can chain it immediately after New.
func (e *Element) WithAttr(key, value string) *Element {
	e.Attrs = append(e.Attrs, Attr{Key: key, Value: value})
	return e
}

// WithSpan sets e's span and returns e.
func (e *Element) WithSpan(s Span) *Element {
	e.Span = s
	return e
}

// Attr looks up the first attribute with the given key, by position, not
// by map semantics — the same key may legitimately repeat.
func (e *Element) Attr(key string) (string, bool) {
	if e == nil {
		return "", false
	}
	for _, a := range e.Attrs {
		if a.Key == key {
			return a.Value, true
		}
	}
	return "", false
}

// Child returns the i-th child, or nil if out of range.
func (e *Element) Child(i int) *Element {
	if e == nil || i < 0 || i >= len(e.Children) {
		return nil
	}
	return e.Children[i]
}

// Clone performs a deep structural copy: no subtree of the result is
// shared with e. Every pipeline stage that rewrites a tree is expected to
// produce output via Clone-then-mutate or fresh construction, never by
// mutating its input in place.
func (e *Element) Clone() *Element {
	if e == nil {
		return nil
	}
	out := &Element{
		Kind: e.Kind,
		Name: e.Name,
		Span: e.Span,
	}
	if e.Attrs != nil {
		out.Attrs = make([]Attr, len(e.Attrs))
		copy(out.Attrs, e.Attrs)
	}
	if e.Children != nil {
		out.Children = make([]*Element, len(e.Children))
		for i, c := range e.Children {
			out.Children[i] = c.Clone()
		}
	}
	return out
}

// Equal reports structural equality, ignoring spans (spans are metadata
// and never affect semantics).
func Equal(a, b *Element) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind != b.Kind || a.Name != b.Name {
		return false
	}
	if len(a.Attrs) != len(b.Attrs) {
		return false
	}
	for i := range a.Attrs {
		if a.Attrs[i] != b.Attrs[i] {
			return false
		}
	}
	if len(a.Children) != len(b.Children) {
		return false
	}
	for i := range a.Children {
		if !Equal(a.Children[i], b.Children[i]) {
			return false
		}
	}
	return true
}

// Literal type tags, the closed vocabulary for literal attrs[(type,T)].
const (
	TypeInt    = "Int"
	TypeString = "String"
	TypeBool   = "Bool"
)

// NewLiteral builds a literal node with its attrs in the canonical
// (type, value) order.
func NewLiteral(typ, value string) *Element {
	return &Element{Kind: KindLiteral, Attrs: []Attr{{Key: "type", Value: typ}, {Key: "value", Value: value}}}
}

// LiteralValue extracts the (type, value) pair from a literal node.
func (e *Element) LiteralValue() (typ, value string, ok bool) {
	if e == nil || e.Kind != KindLiteral {
		return "", "", false
	}
	typ, okT := e.Attr("type")
	value, okV := e.Attr("value")
	return typ, value, okT && okV
}
