package hm

import (
	"fmt"
	"strconv"

	"github.com/treep-lang/treep/internal/config"
	"github.com/treep-lang/treep/internal/element"
)

// Env is the type environment: a mapping from identifier to type scheme,
// chained to an enclosing scope the way the interpreter's Environment
// chains to its outer closure. Like the runtime Environment, it carries
// no lock: the pipeline, and the repl that keeps one Env across lines,
// are single-threaded.
type Env struct {
	store map[string]Scheme
	outer *Env
}

// NewEnv returns the built-in top-level environment, seeded with the
// fixed operator and builtin-function signatures.
func NewEnv() *Env {
	e := &Env{store: make(map[string]Scheme)}
	intBinOp := Mono(Func(Int, Int, Int))
	cmpOp := Mono(Func(Bool, Int, Int))
	boolBinOp := Mono(Func(Bool, Bool, Bool))
	for _, op := range []string{"+", "-", "*", "/", "%"} {
		e.store[op] = intBinOp
	}
	for _, op := range []string{"<", ">", "<=", ">=", "==", "!="} {
		e.store[op] = cmpOp
	}
	for _, op := range []string{"&&", "||"} {
		e.store[op] = boolBinOp
	}
	e.store["unary_!"] = Mono(Func(Bool, Bool))
	e.store["unary_-"] = Mono(Func(Int, Int))
	e.store["="] = Scheme{Vars: []string{"a"}, Type: Func(TVar{Name: "a"}, TVar{Name: "a"}, TVar{Name: "a"})}
	e.store[config.PrintlnFuncName] = Scheme{Vars: []string{"a"}, Type: Func(Unit, TVar{Name: "a"})}
	e.store[config.ToStringFuncName] = Scheme{Vars: []string{"a"}, Type: Func(String, TVar{Name: "a"})}
	e.store[config.ErrorFuncName] = Scheme{Vars: []string{"a"}, Type: Func(TVar{Name: "a"}, String)}
	return e
}

func (e *Env) child() *Env { return &Env{store: make(map[string]Scheme), outer: e} }

func (e *Env) get(name string) (Scheme, bool) {
	if sc, ok := e.store[name]; ok {
		return sc, true
	}
	if e.outer != nil {
		return e.outer.get(name)
	}
	return Scheme{}, false
}

func (e *Env) bind(name string, sc Scheme) { e.store[name] = sc }

// Lookup resolves name through the scope chain, for callers outside the
// inferencer (the API and CLI report a program's `main` scheme).
func (e *Env) Lookup(name string) (Scheme, bool) { return e.get(name) }

// freeInEnv collects the free type variables of every scheme reachable
// from e, used by generalize to compute what must stay monomorphic.
func freeInEnv(e *Env) map[string]bool {
	out := make(map[string]bool)
	for env := e; env != nil; env = env.outer {
		for _, sc := range env.store {
			bound := make(map[string]bool, len(sc.Vars))
			for _, v := range sc.Vars {
				bound[v] = true
			}
			for _, v := range sc.Type.FreeTypeVariables() {
				if !bound[v] {
					out[v] = true
				}
			}
		}
	}
	return out
}

// Inferencer holds the fresh-variable counter and accumulated
// substitution for one inference run.
type Inferencer struct {
	counter int
	subst   Subst
}

// NewInferencer returns an Inferencer with no substitution yet.
func NewInferencer() *Inferencer {
	return &Inferencer{subst: make(Subst)}
}

// Fresh yields a new, never-before-used type variable.
func (inf *Inferencer) Fresh() TVar {
	inf.counter++
	return TVar{Name: "t" + strconv.Itoa(inf.counter)}
}

// Apply normalizes t against the accumulated substitution.
func (inf *Inferencer) Apply(t Type) Type { return t.Apply(inf.subst) }

// unify unifies a and b against the accumulated substitution, folding the
// result back in on success.
func (inf *Inferencer) unify(a, b Type) error {
	s, err := Unify(a, b, inf.subst)
	if err != nil {
		return err
	}
	inf.subst = s
	return nil
}

// Generalize closes t over the variables free in it but not free in env,
// per classical let-polymorphism.
func (inf *Inferencer) Generalize(env *Env, t Type) Scheme {
	t = inf.Apply(t)
	envFree := freeInEnv(env)
	var vars []string
	seen := make(map[string]bool)
	for _, v := range t.FreeTypeVariables() {
		if !envFree[v] && !seen[v] {
			seen[v] = true
			vars = append(vars, v)
		}
	}
	return Scheme{Vars: vars, Type: t}
}

// Instantiate replaces a scheme's quantified variables with fresh ones.
func (inf *Inferencer) Instantiate(sc Scheme) Type {
	if len(sc.Vars) == 0 {
		return sc.Type
	}
	fresh := make(Subst, len(sc.Vars))
	for _, v := range sc.Vars {
		fresh[v] = inf.Fresh()
	}
	return sc.Type.Apply(fresh)
}

// Infer assigns a type to tree under env. It operates on
// post-macro-expansion ET.
func (inf *Inferencer) Infer(env *Env, tree *element.Element) (Type, error) {
	if tree == nil {
		return Unit, nil
	}
	switch tree.Kind {
	case element.KindLiteral:
		typ, _, ok := tree.LiteralValue()
		if !ok {
			return nil, fmt.Errorf("malformed literal node")
		}
		switch typ {
		case element.TypeInt:
			return Int, nil
		case element.TypeString:
			return String, nil
		case element.TypeBool:
			return Bool, nil
		default:
			return nil, fmt.Errorf("unknown literal type %q", typ)
		}

	case element.KindVar:
		sc, ok := env.get(tree.Name)
		if !ok {
			return nil, &UnboundError{Name: tree.Name}
		}
		return inf.Instantiate(sc), nil

	case element.KindCall:
		sc, ok := env.get(tree.Name)
		if !ok {
			return nil, &UnboundError{Name: tree.Name}
		}
		fn := inf.Instantiate(sc)
		for _, arg := range tree.Children {
			argType, err := inf.Infer(env, arg)
			if err != nil {
				return nil, err
			}
			result := inf.Fresh()
			if err := inf.unify(fn, TFunc{From: argType, To: result}); err != nil {
				return nil, err
			}
			fn = inf.Apply(result)
		}
		return fn, nil

	case element.KindLambda:
		return inf.inferLambda(env, tree)

	case element.KindDef:
		return inf.inferDef(env, tree)

	case element.KindLet:
		valueType, err := inf.Infer(env, tree.Child(0))
		if err != nil {
			return nil, err
		}
		env.bind(tree.Name, inf.Generalize(env, valueType))
		return Unit, nil

	case element.KindIf:
		cond := tree.Child(0)
		condType, err := inf.Infer(env, cond.Child(0))
		if err != nil {
			return nil, err
		}
		if err := inf.unify(condType, Bool); err != nil {
			return nil, err
		}
		thenType, err := inf.Infer(env, tree.Child(1))
		if err != nil {
			return nil, err
		}
		if elseBlock := tree.Child(2); elseBlock != nil {
			elseType, err := inf.Infer(env, elseBlock)
			if err != nil {
				return nil, err
			}
			if err := inf.unify(thenType, elseType); err != nil {
				return nil, err
			}
		}
		return inf.Apply(thenType), nil

	case element.KindWhile:
		condExpr := tree.Child(0).Child(0)
		condType, err := inf.Infer(env, condExpr)
		if err != nil {
			return nil, err
		}
		if err := inf.unify(condType, Bool); err != nil {
			return nil, err
		}
		if _, err := inf.Infer(env, tree.Child(1)); err != nil {
			return nil, err
		}
		return Unit, nil

	case element.KindFor:
		fromExpr := tree.Child(0).Child(0)
		toExpr := tree.Child(1).Child(0)
		fromType, err := inf.Infer(env, fromExpr)
		if err != nil {
			return nil, err
		}
		if err := inf.unify(fromType, Int); err != nil {
			return nil, err
		}
		toType, err := inf.Infer(env, toExpr)
		if err != nil {
			return nil, err
		}
		if err := inf.unify(toType, Int); err != nil {
			return nil, err
		}
		varName, _ := tree.Attr("var")
		bodyEnv := env.child()
		bodyEnv.bind(varName, Mono(Int))
		if _, err := inf.Infer(bodyEnv, tree.Child(2)); err != nil {
			return nil, err
		}
		return Unit, nil

	case element.KindMacro:
		// Macro declarations are a registration hook; by this stage the
		// expander has already consumed anything they could affect.
		return Unit, nil

	case element.KindReturn:
		if len(tree.Children) == 0 {
			return Unit, nil
		}
		return inf.Infer(env, tree.Child(0))

	case element.KindBlock:
		result := Type(Unit)
		for _, stmt := range tree.Children {
			t, err := inf.Infer(env, stmt)
			if err != nil {
				return nil, err
			}
			result = t
		}
		return result, nil

	default:
		return nil, fmt.Errorf("hm: cannot infer kind %q", tree.Kind)
	}
}

func (inf *Inferencer) inferLambda(env *Env, lambda *element.Element) (Type, error) {
	lambdaEnv := env.child()
	var paramTypes []Type
	for _, child := range lambda.Children {
		if child.Kind != element.KindParam {
			break
		}
		pt := inf.Fresh()
		lambdaEnv.bind(child.Name, Mono(pt))
		paramTypes = append(paramTypes, pt)
	}
	body := lambda.Children[len(lambda.Children)-1]
	bodyType, err := inf.Infer(lambdaEnv, body)
	if err != nil {
		return nil, err
	}
	return Func(inf.Apply(bodyType), paramTypes...), nil
}

func (inf *Inferencer) inferDef(env *Env, def *element.Element) (Type, error) {
	// The def's own name is visible inside its body, bound monomorphically
	// in a scope discarded afterwards, so recursive calls unify against
	// the type still being inferred while generalization happens against
	// the outer environment only.
	self := inf.Fresh()
	bodyEnv := env.child()
	bodyEnv.bind(def.Name, Mono(self))
	fnType, err := inf.inferLambda(bodyEnv, def)
	if err != nil {
		return nil, err
	}
	if err := inf.unify(self, fnType); err != nil {
		return nil, err
	}
	env.bind(def.Name, inf.Generalize(env, fnType))
	return Unit, nil
}
