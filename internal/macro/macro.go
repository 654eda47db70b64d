// Package macro implements the ET-to-ET macro expander: a bottom-up,
// recursive rewrite pass that replaces `call` nodes whose name matches a
// registered macro with that macro's expansion tree. Matching is purely
// positional — the i-th pattern variable binds to the i-th call argument —
// not true syntactic pattern matching, mirroring the substitution-visitor
// shape a template-macro system built on named positional parameters
// naturally takes.
package macro

import (
	"fmt"

	"github.com/treep-lang/treep/internal/diagnostics"
	"github.com/treep-lang/treep/internal/element"
)

// Expander holds the registered macro table. The table is built once at
// construction and never mutated afterward, matching the single-threaded,
// read-only-after-init state the rest of the pipeline assumes.
type Expander struct {
	macros map[string]*macroDef
}

type macroDef struct {
	name   string
	params []string
	expand func(bindings map[string]*element.Element) (*element.Element, error)
}

// New returns an Expander preloaded with the ten built-in macros.
func New() *Expander {
	e := &Expander{macros: make(map[string]*macroDef)}
	for _, m := range builtins() {
		e.macros[m.name] = m
	}
	return e
}

// Expand rewrites tree bottom-up: every call is expanded. A call that is
// not a registered macro passes through unchanged, but its children are
// still expanded (post-order). The result of an expansion is itself
// re-expanded, so expansions that reference other macros resolve fully.
func (e *Expander) Expand(tree *element.Element) (*element.Element, error) {
	if tree == nil {
		return nil, nil
	}

	children := make([]*element.Element, len(tree.Children))
	for i, c := range tree.Children {
		expanded, err := e.Expand(c)
		if err != nil {
			return nil, err
		}
		children[i] = expanded
	}
	rewritten := &element.Element{Kind: tree.Kind, Name: tree.Name, Attrs: tree.Attrs, Children: children, Span: tree.Span}

	if rewritten.Kind != element.KindCall {
		return rewritten, nil
	}
	def, ok := e.macros[rewritten.Name]
	if !ok {
		return rewritten, nil
	}

	bindings := make(map[string]*element.Element, len(def.params))
	for i, p := range def.params {
		bindings[p] = rewritten.Child(i)
	}

	result, err := def.expand(bindings)
	if err != nil {
		return nil, diagnostics.AtNode(diagnostics.KindMacro, rewritten, "%s", err)
	}

	// Re-expand: the expansion may itself contain macro calls (e.g. a
	// built-in that is defined in terms of another).
	return e.Expand(result)
}

// bind looks up a pattern variable's binding, erroring if the call site
// did not supply enough arguments: an unbound pattern variable referenced
// by an expansion is a fatal arity underflow.
func bind(bindings map[string]*element.Element, name string) (*element.Element, error) {
	v, ok := bindings[name]
	if !ok || v == nil {
		return nil, fmt.Errorf("macro: missing argument %q", name)
	}
	return v, nil
}

// lift returns body unwrapped if it is a lambda with a single block child
// (the shape the block-argument desugaring always produces), otherwise
// wraps body in a fresh block.
func lift(body *element.Element) *element.Element {
	if body != nil && body.Kind == element.KindLambda && len(body.Children) == 1 && body.Children[0].Kind == element.KindBlock {
		return body.Children[0]
	}
	return element.New(element.KindBlock, "", body)
}

func call(name string, args ...*element.Element) *element.Element {
	return element.New(element.KindCall, name, args...)
}

func cond(expr *element.Element) *element.Element {
	return element.New(element.KindCondition, "", expr)
}

func intLit(v string) *element.Element { return element.NewLiteral(element.TypeInt, v) }
func strLit(v string) *element.Element { return element.NewLiteral(element.TypeString, v) }

func builtins() []*macroDef {
	return []*macroDef{
		{
			name: "when", params: []string{"cond", "body"},
			expand: func(b map[string]*element.Element) (*element.Element, error) {
				condExpr, err := bind(b, "cond")
				if err != nil {
					return nil, err
				}
				body, err := bind(b, "body")
				if err != nil {
					return nil, err
				}
				return element.New(element.KindIf, "", cond(condExpr), lift(body)), nil
			},
		},
		{
			name: "assert", params: []string{"cond"},
			expand: func(b map[string]*element.Element) (*element.Element, error) {
				condExpr, err := bind(b, "cond")
				if err != nil {
					return nil, err
				}
				return element.New(element.KindIf, "",
					cond(call("unary_!", condExpr)),
					element.New(element.KindBlock, "", call("error", strLit("Assertion failed"))),
				), nil
			},
		},
		{
			name: "debug", params: []string{"expr"},
			expand: func(b map[string]*element.Element) (*element.Element, error) {
				expr, err := bind(b, "expr")
				if err != nil {
					return nil, err
				}
				return call("println", call("+", strLit("Debug: "), call("toString", expr))), nil
			},
		},
		{
			name: "log", params: []string{"msg"},
			expand: func(b map[string]*element.Element) (*element.Element, error) {
				msg, err := bind(b, "msg")
				if err != nil {
					return nil, err
				}
				return call("println", call("+", strLit("[LOG] "), msg)), nil
			},
		},
		{
			name: "trace", params: []string{"expr"},
			expand: func(b map[string]*element.Element) (*element.Element, error) {
				expr, err := bind(b, "expr")
				if err != nil {
					return nil, err
				}
				const traceVar = "__trace_result"
				letResult := element.New(element.KindLet, traceVar, expr)
				printStmt := call("println", call("+", strLit("Trace: "), call("toString", element.New(element.KindVar, traceVar))))
				return element.New(element.KindBlock, "", letResult, printStmt, element.New(element.KindVar, traceVar)), nil
			},
		},
		{
			name: "inc", params: []string{"x"},
			expand: func(b map[string]*element.Element) (*element.Element, error) {
				x, err := bind(b, "x")
				if err != nil {
					return nil, err
				}
				return call("=", x, call("+", x, intLit("1"))), nil
			},
		},
		{
			name: "dec", params: []string{"x"},
			expand: func(b map[string]*element.Element) (*element.Element, error) {
				x, err := bind(b, "x")
				if err != nil {
					return nil, err
				}
				return call("=", x, call("-", x, intLit("1"))), nil
			},
		},
		{
			name: "ifZero", params: []string{"x", "body"},
			expand: func(b map[string]*element.Element) (*element.Element, error) {
				x, err := bind(b, "x")
				if err != nil {
					return nil, err
				}
				body, err := bind(b, "body")
				if err != nil {
					return nil, err
				}
				return element.New(element.KindIf, "", cond(call("==", x, intLit("0"))), lift(body)), nil
			},
		},
		{
			name: "ifPositive", params: []string{"x", "body"},
			expand: func(b map[string]*element.Element) (*element.Element, error) {
				x, err := bind(b, "x")
				if err != nil {
					return nil, err
				}
				body, err := bind(b, "body")
				if err != nil {
					return nil, err
				}
				return element.New(element.KindIf, "", cond(call(">", x, intLit("0"))), lift(body)), nil
			},
		},
		{
			name: "until", params: []string{"cond", "body"},
			expand: func(b map[string]*element.Element) (*element.Element, error) {
				condExpr, err := bind(b, "cond")
				if err != nil {
					return nil, err
				}
				body, err := bind(b, "body")
				if err != nil {
					return nil, err
				}
				return element.New(element.KindWhile, "", cond(call("unary_!", condExpr)), lift(body)), nil
			},
		},
	}
}
