// Package ruleset loads transducer.Rule values from YAML documents, an
// alternative to constructing transducer.Rule literals directly in Go.
// It covers the structural subset of transducer.Pattern/Template: kind
// matching, variable/any/rest-capture patterns, and attribute equality
// or capture. It cannot express the computed Conditions a rule author
// writes in Go (e.g. constant-folding arithmetic) since YAML carries no
// executable predicates; rules needing those are still built in Go and
// may be mixed into the same transducer.Transducer alongside
// YAML-loaded ones.
package ruleset

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/treep-lang/treep/internal/element"
	"github.com/treep-lang/treep/internal/transducer"
)

// Document is the top-level shape of a rule-set YAML file.
type Document struct {
	Rules []RuleSpec `yaml:"rules"`
}

// RuleSpec is one YAML-authored rule: a name, a match pattern, optional
// required attribute equalities already folded into Match, and a produce
// template.
type RuleSpec struct {
	Name    string       `yaml:"name"`
	Match   PatternSpec  `yaml:"match"`
	Produce TemplateSpec `yaml:"produce"`
}

// PatternSpec mirrors transducer's pattern shapes as a YAML-friendly
// struct. Each node uses one shape, checked in this order: Var (the
// binding name, written without "$"), Rest (the name a rest-capture
// binds; effective only as the last child), Any (true to match any
// node), or a Kind block for structural matching.
type PatternSpec struct {
	Var  string `yaml:"var,omitempty"`
	Any  bool   `yaml:"any,omitempty"`
	Rest string `yaml:"rest,omitempty"`

	Kind     string            `yaml:"kind,omitempty"`
	Name     string            `yaml:"name,omitempty"`  // "$v" captures, else literal match
	Attrs    map[string]string `yaml:"attrs,omitempty"` // "$v" captures, else literal match
	Children []PatternSpec     `yaml:"children,omitempty"`
}

// TemplateSpec mirrors transducer's template shapes.
type TemplateSpec struct {
	Var     string            `yaml:"var,omitempty"`
	Literal string            `yaml:"literal,omitempty"`
	Kind    string            `yaml:"kind,omitempty"`
	Name    string            `yaml:"name,omitempty"` // "$v" references a binding, else literal
	Attrs   map[string]string `yaml:"attrs,omitempty"`

	Children []TemplateSpec `yaml:"children,omitempty"`
	List     []TemplateSpec `yaml:"list,omitempty"` // splice, legal only as a child entry
}

// Load parses a YAML document into a slice of transducer.Rule, ready to
// pass to transducer.New.
func Load(data []byte) ([]transducer.Rule, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("ruleset: %w", err)
	}
	rules := make([]transducer.Rule, 0, len(doc.Rules))
	for i, rs := range doc.Rules {
		seq := 0
		pat, cond, err := buildPattern(rs.Match, i, &seq)
		if err != nil {
			return nil, fmt.Errorf("ruleset: rule %q: %w", rs.Name, err)
		}
		tmpl, err := buildTemplate(rs.Produce)
		if err != nil {
			return nil, fmt.Errorf("ruleset: rule %q: %w", rs.Name, err)
		}
		rules = append(rules, transducer.Rule{Name: rs.Name, Pattern: pat, Condition: cond, Template: tmpl})
	}
	return rules, nil
}

// buildPattern compiles one PatternSpec into a transducer.Pattern, plus
// a Condition verifying any literal (non-capturing) node names appearing
// in it or its descendants — KindPattern itself only supports capturing
// a name, not constraining it to a fixed literal, so a fixed name is
// captured under a synthetic binding and checked by the returned
// Condition instead. ruleIdx and the shared seq counter keep synthetic
// binding names unique across an entire rule tree.
func buildPattern(s PatternSpec, ruleIdx int, seq *int) (transducer.Pattern, transducer.Condition, error) {
	switch {
	case s.Var != "":
		return transducer.VarPattern{Name: s.Var}, nil, nil
	case s.Rest != "":
		return transducer.ListPattern{RestVar: s.Rest}, nil, nil
	case s.Any:
		return transducer.AnyPattern{}, nil, nil
	case s.Kind != "":
		kp := transducer.KindPattern{Kind: element.Kind(s.Kind)}
		var cond transducer.Condition
		if isCapture(s.Name) {
			kp.NameVar = captureVar(s.Name)
		} else if s.Name != "" {
			synthetic := fmt.Sprintf("__name_%d_%d", ruleIdx, *seq)
			*seq++
			kp.NameVar = synthetic
			want := s.Name
			cond = func(b transducer.Bindings) bool { return b.String(synthetic) == want }
		}
		for k, v := range s.Attrs {
			if isCapture(v) {
				kp.AttrPatterns = append(kp.AttrPatterns, transducer.AttrPattern{Key: k, ValueVar: captureVar(v)})
			} else {
				kp.AttrPatterns = append(kp.AttrPatterns, transducer.AttrPattern{Key: k, Literal: v, HasLit: true})
			}
		}
		for _, cs := range s.Children {
			cp, ccond, err := buildPattern(cs, ruleIdx, seq)
			if err != nil {
				return nil, nil, err
			}
			kp.ChildPatterns = append(kp.ChildPatterns, cp)
			cond = transducer.When(cond, func(b transducer.Bindings) bool {
				return ccond == nil || ccond(b)
			})
		}
		return kp, cond, nil
	default:
		return nil, nil, fmt.Errorf("empty pattern spec")
	}
}

func buildTemplate(s TemplateSpec) (transducer.Template, error) {
	switch {
	case s.Var != "":
		return transducer.VarTemplate{Name: s.Var}, nil
	case s.Literal != "":
		return transducer.LiteralTemplate{Value: s.Literal}, nil
	case len(s.List) > 0:
		items := make([]transducer.Template, 0, len(s.List))
		for _, is := range s.List {
			it, err := buildTemplate(is)
			if err != nil {
				return nil, err
			}
			items = append(items, it)
		}
		return transducer.ListTemplate{Items: items}, nil
	case s.Kind != "":
		nt := transducer.NodeTemplate{Kind: element.Kind(s.Kind)}
		if s.Name != "" {
			nt.Name = exprOf(s.Name)
		}
		for k, v := range s.Attrs {
			nt.Attrs = append(nt.Attrs, transducer.AttrTemplate{Key: k, Value: exprOf(v)})
		}
		for _, cs := range s.Children {
			ct, err := buildTemplate(cs)
			if err != nil {
				return nil, err
			}
			nt.Children = append(nt.Children, ct)
		}
		return nt, nil
	default:
		return nil, fmt.Errorf("empty template spec")
	}
}

// isCapture reports whether a YAML-authored name/attr value is a binding
// reference ("$name") rather than a literal to match verbatim.
func isCapture(s string) bool {
	return len(s) > 1 && s[0] == '$'
}

func captureVar(s string) string { return s[1:] }

func exprOf(s string) transducer.Expr {
	if isCapture(s) {
		return transducer.Var{Name: captureVar(s)}
	}
	return transducer.Literal{Value: s}
}
