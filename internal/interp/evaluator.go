package interp

import (
	"fmt"
	"strconv"

	"github.com/treep-lang/treep/internal/config"
	"github.com/treep-lang/treep/internal/element"
)

// Evaluator walks a post-type-checked ET directly against an Environment.
// Out is where println and the debug/log/trace macro expansions write.
type Evaluator struct {
	Out interface {
		Write(p []byte) (int, error)
	}
}

// New returns an Evaluator writing to out.
func New(out interface {
	Write(p []byte) (int, error)
}) *Evaluator {
	return &Evaluator{Out: out}
}

// NewGlobalEnv returns an Environment with println, toString, and error
// bound, matching the builtins seeded into the type environment.
func (ev *Evaluator) NewGlobalEnv() *Environment {
	env := NewEnvironment()
	env.Set(config.PrintlnFuncName, &Builtin{Name: config.PrintlnFuncName, Fn: ev.builtinPrintln})
	env.Set(config.ToStringFuncName, &Builtin{Name: config.ToStringFuncName, Fn: builtinToString})
	env.Set(config.ErrorFuncName, &Builtin{Name: config.ErrorFuncName, Fn: builtinError})
	return env
}

// Run evaluates every top-level statement in tree under env in order,
// then, if a top-level `main` binding exists, invokes it with no
// arguments.
func (ev *Evaluator) Run(env *Environment, tree *element.Element) (Object, error) {
	var last Object = UnitValue
	for _, stmt := range tree.Children {
		v, err := ev.Eval(env, stmt)
		if err != nil {
			return nil, err
		}
		last = v
	}
	if main, ok := env.Get("main"); ok {
		if closure, ok := main.(*Closure); ok {
			return ev.callClosure(closure, nil)
		}
	}
	return last, nil
}

// Eval dispatches on tree.Kind. A return statement, or a block ending in
// one, produces a *ReturnValue the caller unwraps or propagates.
func (ev *Evaluator) Eval(env *Environment, tree *element.Element) (Object, error) {
	switch tree.Kind {
	case element.KindLiteral:
		return ev.evalLiteral(tree)

	case element.KindVar:
		v, ok := env.Get(tree.Name)
		if !ok {
			return nil, fmt.Errorf("unbound identifier: %s", tree.Name)
		}
		return v, nil

	case element.KindCall:
		return ev.evalCall(env, tree)

	case element.KindLambda:
		return ev.makeClosure(env, tree), nil

	case element.KindDef:
		closure := ev.makeClosure(env, tree)
		env.Set(tree.Name, closure)
		return UnitValue, nil

	case element.KindLet:
		v, err := ev.Eval(env, tree.Child(0))
		if err != nil {
			return nil, err
		}
		if rv, ok := v.(*ReturnValue); ok {
			return rv, nil
		}
		env.Set(tree.Name, v)
		return UnitValue, nil

	case element.KindIf:
		return ev.evalIf(env, tree)

	case element.KindWhile:
		return ev.evalWhile(env, tree)

	case element.KindFor:
		return ev.evalFor(env, tree)

	case element.KindReturn:
		if len(tree.Children) == 0 {
			return &ReturnValue{Value: UnitValue}, nil
		}
		v, err := ev.Eval(env, tree.Child(0))
		if err != nil {
			return nil, err
		}
		if rv, ok := v.(*ReturnValue); ok {
			return rv, nil
		}
		return &ReturnValue{Value: v}, nil

	case element.KindBlock:
		return ev.evalBlock(env, tree)

	case element.KindMacro:
		return UnitValue, nil

	default:
		return nil, fmt.Errorf("interp: cannot evaluate kind %q", tree.Kind)
	}
}

func (ev *Evaluator) evalLiteral(tree *element.Element) (Object, error) {
	typ, value, ok := tree.LiteralValue()
	if !ok {
		return nil, fmt.Errorf("malformed literal node")
	}
	switch typ {
	case element.TypeInt:
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("malformed integer literal %q", value)
		}
		return &Integer{Value: n}, nil
	case element.TypeString:
		return &String{Value: value}, nil
	case element.TypeBool:
		return nativeBool(value == "true"), nil
	default:
		return nil, fmt.Errorf("unknown literal type %q", typ)
	}
}

// evalBlock evaluates statements in order; a *ReturnValue produced by any
// statement short-circuits the rest of the block. An empty block's value
// is Unit.
func (ev *Evaluator) evalBlock(env *Environment, block *element.Element) (Object, error) {
	var last Object = UnitValue
	for _, stmt := range block.Children {
		v, err := ev.Eval(env, stmt)
		if err != nil {
			return nil, err
		}
		if rv, ok := v.(*ReturnValue); ok {
			return rv, nil
		}
		last = v
	}
	return last, nil
}

func (ev *Evaluator) evalIf(env *Environment, tree *element.Element) (Object, error) {
	condVal, err := ev.Eval(env, tree.Child(0).Child(0))
	if err != nil {
		return nil, err
	}
	b, ok := condVal.(*Boolean)
	if !ok {
		return nil, fmt.Errorf("if condition must be Bool, got %s", condVal.Type())
	}
	if b.Value {
		return ev.Eval(env, tree.Child(1))
	}
	if elseBlock := tree.Child(2); elseBlock != nil {
		return ev.Eval(env, elseBlock)
	}
	return UnitValue, nil
}

func (ev *Evaluator) evalWhile(env *Environment, tree *element.Element) (Object, error) {
	condExpr := tree.Child(0).Child(0)
	body := tree.Child(1)
	for {
		condVal, err := ev.Eval(env, condExpr)
		if err != nil {
			return nil, err
		}
		b, ok := condVal.(*Boolean)
		if !ok {
			return nil, fmt.Errorf("while condition must be Bool, got %s", condVal.Type())
		}
		if !b.Value {
			return UnitValue, nil
		}
		v, err := ev.Eval(env, body)
		if err != nil {
			return nil, err
		}
		if rv, ok := v.(*ReturnValue); ok {
			return rv, nil
		}
	}
}

// evalFor iterates inclusive from `from` to `to` with step 1, binding
// the loop variable as a fresh Integer each iteration.
func (ev *Evaluator) evalFor(env *Environment, tree *element.Element) (Object, error) {
	fromVal, err := ev.Eval(env, tree.Child(0).Child(0))
	if err != nil {
		return nil, err
	}
	toVal, err := ev.Eval(env, tree.Child(1).Child(0))
	if err != nil {
		return nil, err
	}
	from, ok := fromVal.(*Integer)
	if !ok {
		return nil, fmt.Errorf("for bound must be Int, got %s", fromVal.Type())
	}
	to, ok := toVal.(*Integer)
	if !ok {
		return nil, fmt.Errorf("for bound must be Int, got %s", toVal.Type())
	}
	varName, _ := tree.Attr("var")
	body := tree.Child(2)

	loopEnv := NewEnclosedEnvironment(env)
	for i := from.Value; i <= to.Value; i++ {
		loopEnv.Set(varName, &Integer{Value: i})
		v, err := ev.Eval(loopEnv, body)
		if err != nil {
			return nil, err
		}
		if rv, ok := v.(*ReturnValue); ok {
			return rv, nil
		}
	}
	return UnitValue, nil
}

func (ev *Evaluator) makeClosure(env *Environment, node *element.Element) *Closure {
	var params []string
	var body *element.Element
	for _, c := range node.Children {
		if c.Kind == element.KindParam {
			params = append(params, c.Name)
			continue
		}
		body = c
	}
	return &Closure{Params: params, Body: body, Env: env}
}

func (ev *Evaluator) evalCall(env *Environment, call *element.Element) (Object, error) {
	if fn, ok := builtinOperators[call.Name]; ok {
		args, err := ev.evalArgs(env, call.Children)
		if err != nil {
			return nil, err
		}
		return fn(args)
	}
	if call.Name == "=" {
		return ev.evalAssign(env, call)
	}

	callee, ok := env.Get(call.Name)
	if !ok {
		return nil, fmt.Errorf("unbound identifier: %s", call.Name)
	}
	args, err := ev.evalArgs(env, call.Children)
	if err != nil {
		return nil, err
	}
	return ev.apply(callee, args)
}

// evalAssign handles `call(=, var(x), value)`: re-evaluates value and
// updates x's existing binding in whichever scope owns it.
func (ev *Evaluator) evalAssign(env *Environment, call *element.Element) (Object, error) {
	target := call.Child(0)
	if target.Kind != element.KindVar {
		return nil, fmt.Errorf("assignment target must be a variable")
	}
	v, err := ev.Eval(env, call.Child(1))
	if err != nil {
		return nil, err
	}
	if !env.Update(target.Name, v) {
		return nil, fmt.Errorf("unbound identifier: %s", target.Name)
	}
	return v, nil
}

func (ev *Evaluator) evalArgs(env *Environment, argNodes []*element.Element) ([]Object, error) {
	args := make([]Object, len(argNodes))
	for i, a := range argNodes {
		v, err := ev.Eval(env, a)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	return args, nil
}

func (ev *Evaluator) apply(callee Object, args []Object) (Object, error) {
	switch fn := callee.(type) {
	case *Builtin:
		return fn.Fn(args)
	case *Closure:
		return ev.callClosure(fn, args)
	default:
		return nil, fmt.Errorf("not callable: %s", callee.Type())
	}
}

func (ev *Evaluator) callClosure(fn *Closure, args []Object) (Object, error) {
	callEnv := NewEnclosedEnvironment(fn.Env)
	for i, p := range fn.Params {
		if i < len(args) {
			callEnv.Set(p, args[i])
		} else {
			callEnv.Set(p, UnitValue)
		}
	}
	v, err := ev.Eval(callEnv, fn.Body)
	if err != nil {
		return nil, err
	}
	if rv, ok := v.(*ReturnValue); ok {
		return rv.Value, nil
	}
	return v, nil
}

func (ev *Evaluator) builtinPrintln(args []Object) (Object, error) {
	for i, a := range args {
		if i > 0 {
			fmt.Fprint(ev.Out, " ")
		}
		fmt.Fprint(ev.Out, a.Inspect())
	}
	fmt.Fprintln(ev.Out)
	return UnitValue, nil
}

func builtinToString(args []Object) (Object, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("toString: expected 1 argument, got %d", len(args))
	}
	return &String{Value: args[0].Inspect()}, nil
}

func builtinError(args []Object) (Object, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("error: expected 1 argument, got %d", len(args))
	}
	s, ok := args[0].(*String)
	if !ok {
		return nil, fmt.Errorf("error: expected String argument, got %s", args[0].Type())
	}
	return nil, fmt.Errorf("%s", s.Value)
}
