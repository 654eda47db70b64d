// Package transducer implements the declarative pattern/template rewrite
// engine: an ordered list of rules, each a pattern paired with a template
// and an optional condition, applied top-down with recursive descent into
// generated output. Nodes no rule matches are kept, children rewritten,
// so an empty rule set is the identity transform.
package transducer

import "github.com/treep-lang/treep/internal/element"

// Bindings is the single mutable map populated during one rule attempt:
// varName -> (*element.Element | []*element.Element | string). A failed
// match discards its Bindings entirely; a Condition may mutate Bindings
// to stash a derived value a template later references.
type Bindings map[string]any

func (b Bindings) clone() Bindings {
	out := make(Bindings, len(b))
	for k, v := range b {
		out[k] = v
	}
	return out
}

// Node extracts a *element.Element binding, or nil if absent or of a
// different shape.
func (b Bindings) Node(name string) *element.Element {
	v, _ := b[name].(*element.Element)
	return v
}

// List extracts a []*element.Element binding (a rest-capture).
func (b Bindings) List(name string) []*element.Element {
	v, _ := b[name].([]*element.Element)
	return v
}

// String extracts a string binding (an attribute value or a node's name).
func (b Bindings) String(name string) string {
	v, _ := b[name].(string)
	return v
}

// Pattern is the interface every pattern shape satisfies: attempt to
// match n, extending bindings on success.
type Pattern interface {
	Match(n *element.Element, b Bindings) bool
}

// AttrPattern constrains one attribute of the matched node, whose Key
// must be present. With HasLit set, the attribute's value must equal
// Literal verbatim (an empty Literal included); otherwise the value is
// captured under ValueVar, if that is set.
type AttrPattern struct {
	Key      string
	Literal  string
	HasLit   bool
	ValueVar string
}

func (a AttrPattern) match(n *element.Element, b Bindings) bool {
	val, ok := n.Attr(a.Key)
	if !ok {
		return false
	}
	if a.HasLit {
		return val == a.Literal
	}
	if a.ValueVar != "" {
		b[a.ValueVar] = val
	}
	return true
}

// KindPattern matches a node of a specific Kind, optionally capturing its
// Name and/or its attrs and children.
type KindPattern struct {
	Kind          element.Kind
	NameVar       string // if set, node must carry a non-empty Name, captured here
	AttrPatterns  []AttrPattern
	ChildPatterns []Pattern
}

func (p KindPattern) Match(n *element.Element, b Bindings) bool {
	if n == nil || n.Kind != p.Kind {
		return false
	}
	if p.NameVar != "" {
		if n.Name == "" {
			return false
		}
		b[p.NameVar] = n.Name
	}
	for _, ap := range p.AttrPatterns {
		if !ap.match(n, b) {
			return false
		}
	}
	return matchChildren(p.ChildPatterns, n.Children, b)
}

func matchChildren(patterns []Pattern, children []*element.Element, b Bindings) bool {
	if len(patterns) == 0 {
		return true
	}
	last := patterns[len(patterns)-1]
	if lp, ok := last.(ListPattern); ok {
		prefix := patterns[:len(patterns)-1]
		if len(children) < len(prefix) {
			return false
		}
		for i, pp := range prefix {
			if !pp.Match(children[i], b) {
				return false
			}
		}
		b[lp.RestVar] = append([]*element.Element{}, children[len(prefix):]...)
		return true
	}
	if len(patterns) != len(children) {
		return false
	}
	for i, pp := range patterns {
		if !pp.Match(children[i], b) {
			return false
		}
	}
	return true
}

// VarPattern `$v` matches any single node, binding it under Name.
type VarPattern struct {
	Name string
}

func (p VarPattern) Match(n *element.Element, b Bindings) bool {
	if n == nil {
		return false
	}
	b[p.Name] = n
	return true
}

// AnyPattern matches any single node, binding nothing.
type AnyPattern struct{}

func (AnyPattern) Match(n *element.Element, _ Bindings) bool { return n != nil }

// ListPattern is only a legal child-pattern in the last position: it
// captures every remaining sibling as a list under RestVar.
type ListPattern struct {
	RestVar string
}

// Match is never called directly for ListPattern; matchChildren detects
// it by type assertion when it occupies the final child-pattern slot.
func (p ListPattern) Match(*element.Element, Bindings) bool { return false }

// Condition is a predicate over the bindings populated by a successful
// structural match, evaluated after matching and free to mutate
// Bindings (e.g. to stash a folded literal under a synthetic key).
type Condition func(b Bindings) bool
