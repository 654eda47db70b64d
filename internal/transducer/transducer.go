package transducer

import (
	"fmt"

	"github.com/treep-lang/treep/internal/diagnostics"
	"github.com/treep-lang/treep/internal/element"
)

// Rule is one pattern/condition/template triple. Condition is optional
// and, when present, is evaluated only after a successful structural
// match, with the chance to reject the match or mutate Bindings.
type Rule struct {
	Name      string // for diagnostics only; not matched against anything
	Pattern   Pattern
	Condition Condition
	Template  Template
}

// Transducer holds an ordered, read-only rule list built once and never
// mutated at transform time, matching the single-threaded, build-once
// state the rest of the pipeline assumes.
type Transducer struct {
	rules []Rule
}

// New builds a Transducer from rules tried in declaration order.
func New(rules ...Rule) *Transducer {
	return &Transducer{rules: rules}
}

// Transform rewrites tree top-down: for the root node, the first rule
// whose pattern matches (and whose condition, if any, holds) generates
// the replacement; each child of that replacement is then recursively
// transformed. If no rule matches, the node is kept and each of its
// children is recursively transformed (identity-by-default).
func (t *Transducer) Transform(tree *element.Element) (*element.Element, error) {
	if tree == nil {
		return nil, nil
	}

	for _, rule := range t.rules {
		b := Bindings{}
		if !rule.Pattern.Match(tree, b) {
			continue
		}
		if rule.Condition != nil && !rule.Condition(b) {
			continue
		}
		out := rule.Template.generate(b)
		if len(out) != 1 {
			return nil, diagnostics.AtNode(diagnostics.KindTransducer, tree,
				"rule %q: template produced %d nodes where one was required", rule.Name, len(out))
		}
		return t.transformChildren(out[0])
	}

	return t.transformChildren(tree)
}

func (t *Transducer) transformChildren(n *element.Element) (*element.Element, error) {
	out := &element.Element{Kind: n.Kind, Name: n.Name, Attrs: n.Attrs, Span: n.Span}
	for _, c := range n.Children {
		tc, err := t.Transform(c)
		if err != nil {
			return nil, err
		}
		out.Children = append(out.Children, tc)
	}
	return out, nil
}

// Pipeline composes transducers in sequence, feeding each one's output
// to the next.
func Pipeline(tree *element.Element, stages ...*Transducer) (*element.Element, error) {
	cur := tree
	for _, stage := range stages {
		out, err := stage.Transform(cur)
		if err != nil {
			return nil, err
		}
		cur = out
	}
	return cur, nil
}

// MaxFixpointIterations bounds Fixpoint's apply-until-stable loop.
const MaxFixpointIterations = 100

// Fixpoint applies t repeatedly until the output equals the input (by
// structural equality) or MaxFixpointIterations is reached.
func Fixpoint(t *Transducer, tree *element.Element) (*element.Element, error) {
	cur := tree
	for i := 0; i < MaxFixpointIterations; i++ {
		next, err := t.Transform(cur)
		if err != nil {
			return nil, err
		}
		if element.Equal(cur, next) {
			return next, nil
		}
		cur = next
	}
	return nil, fmt.Errorf("transducer: fixpoint did not converge within %d iterations", MaxFixpointIterations)
}
