package transducer

import "github.com/treep-lang/treep/internal/element"

// KindOpts configures MatchKind's optional capture behavior.
type KindOpts struct {
	CaptureNameAs     string
	CaptureChildrenAs []Pattern
	Attrs             []AttrPattern
}

// MatchKind builds a KindPattern from the DSL's convenience shape.
func MatchKind(k element.Kind, opts KindOpts) KindPattern {
	return KindPattern{
		Kind:          k,
		NameVar:       opts.CaptureNameAs,
		AttrPatterns:  opts.Attrs,
		ChildPatterns: opts.CaptureChildrenAs,
	}
}

// MatchBinaryOp builds the pattern for `call name=op children=[$left,$right]`,
// with a condition requiring the matched name equal op exactly.
func MatchBinaryOp(op string) (Pattern, Condition) {
	p := KindPattern{
		Kind:          element.KindCall,
		NameVar:       "op",
		ChildPatterns: []Pattern{VarPattern{Name: "left"}, VarPattern{Name: "right"}},
	}
	return p, func(b Bindings) bool { return b.String("op") == op }
}

// MatchUnaryOp builds the pattern for `call name=op children=[$operand]`.
func MatchUnaryOp(op string) (Pattern, Condition) {
	p := KindPattern{
		Kind:          element.KindCall,
		NameVar:       "op",
		ChildPatterns: []Pattern{VarPattern{Name: "operand"}},
	}
	return p, func(b Bindings) bool { return b.String("op") == op }
}

// When AND-composes an additional predicate with an existing condition
// (nil-safe: a nil base condition is treated as always-true).
func When(base Condition, pred func(b Bindings) bool) Condition {
	return func(b Bindings) bool {
		if base != nil && !base(b) {
			return false
		}
		return pred(b)
	}
}

// GenerateNode, GenerateVar and GenerateLiteral are template-builder
// shorthands mirroring the matching-side convenience constructors.
func GenerateNode(k element.Kind, name Expr, attrs []AttrTemplate, children ...Template) Template {
	return NodeTemplate{Kind: k, Name: name, Attrs: attrs, Children: children}
}

func GenerateVar(name string) Template { return VarTemplate{Name: name} }

func GenerateLiteral(value string) Template { return LiteralTemplate{Value: value} }

// IsLiteral reports whether n is a literal node, optionally requiring its
// value equal a specific string.
func IsLiteral(n *element.Element, value ...string) bool {
	if n == nil || n.Kind != element.KindLiteral {
		return false
	}
	if len(value) == 0 {
		return true
	}
	_, v, ok := n.LiteralValue()
	return ok && v == value[0]
}

// IsVar reports whether n is a var node, optionally requiring a specific
// name.
func IsVar(n *element.Element, name ...string) bool {
	if n == nil || n.Kind != element.KindVar {
		return false
	}
	if len(name) == 0 {
		return true
	}
	return n.Name == name[0]
}

// MakeLiteral builds a literal(type, value) node directly, the
// non-template-driven counterpart to LiteralTemplate for use from
// Condition bodies that stash a folded constant under a synthetic key.
func MakeLiteral(typ, value string) *element.Element {
	return element.NewLiteral(typ, value)
}
