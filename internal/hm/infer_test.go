package hm

import (
	"testing"

	"github.com/treep-lang/treep/internal/element"
)

func TestInferLiteral(t *testing.T) {
	inf := NewInferencer()
	typ, err := inf.Infer(NewEnv(), element.NewLiteral(element.TypeInt, "1"))
	if err != nil {
		t.Fatalf("Infer: %v", err)
	}
	if typ != Type(Int) {
		t.Fatalf("got %v, want Int", typ)
	}
}

func TestInferUnboundVariable(t *testing.T) {
	inf := NewInferencer()
	_, err := inf.Infer(NewEnv(), element.New(element.KindVar, "nope"))
	if err == nil {
		t.Fatal("expected unbound identifier error")
	}
}

func TestInferLetPolymorphismOnTopLevelDef(t *testing.T) {
	// def identity(x) { return x }
	identity := element.New(element.KindDef, "identity",
		element.New(element.KindParam, "x"),
		element.New(element.KindBlock, "",
			element.New(element.KindReturn, "", element.New(element.KindVar, "x")),
		),
	)

	env := NewEnv()
	inf := NewInferencer()
	if _, err := inf.Infer(env, identity); err != nil {
		t.Fatalf("Infer(def): %v", err)
	}

	intCall := element.New(element.KindCall, "identity", element.NewLiteral(element.TypeInt, "42"))
	intType, err := inf.Infer(env, intCall)
	if err != nil {
		t.Fatalf("Infer(identity(42)): %v", err)
	}
	if intType != Type(Int) {
		t.Fatalf("identity(42): got %v, want Int", intType)
	}

	strCall := element.New(element.KindCall, "identity", element.NewLiteral(element.TypeString, "x"))
	strType, err := inf.Infer(env, strCall)
	if err != nil {
		t.Fatalf("Infer(identity(\"x\")): %v", err)
	}
	if strType != Type(String) {
		t.Fatalf(`identity("x"): got %v, want String`, strType)
	}
}

func TestInferSelfApplicationThroughNamedDef(t *testing.T) {
	// def loop(x) { return loop(x) }
	loop := element.New(element.KindDef, "loop",
		element.New(element.KindParam, "x"),
		element.New(element.KindBlock, "",
			element.New(element.KindReturn, "",
				element.New(element.KindCall, "loop", element.New(element.KindVar, "x")),
			),
		),
	)
	env := NewEnv()
	inf := NewInferencer()
	if _, err := inf.Infer(env, loop); err != nil {
		t.Fatalf("Infer(loop): %v", err)
	}
}

func TestOccursCheckRejectsInfiniteType(t *testing.T) {
	inf := NewInferencer()
	v := inf.Fresh()
	result := inf.Fresh()
	self := TFunc{From: v, To: result}
	if err := inf.unify(v, self); err == nil {
		t.Fatal("expected occurs-check failure binding a variable to a function containing itself")
	}
}

func TestInferIfUnifiesBranches(t *testing.T) {
	ifNode := element.New(element.KindIf, "",
		element.New(element.KindCondition, "", element.NewLiteral(element.TypeBool, "true")),
		element.New(element.KindBlock, "", element.NewLiteral(element.TypeInt, "1")),
		element.New(element.KindBlock, "", element.NewLiteral(element.TypeInt, "2")),
	)
	inf := NewInferencer()
	typ, err := inf.Infer(NewEnv(), ifNode)
	if err != nil {
		t.Fatalf("Infer(if): %v", err)
	}
	if typ != Type(Int) {
		t.Fatalf("got %v, want Int", typ)
	}
}

func TestInferIfBranchMismatchFails(t *testing.T) {
	ifNode := element.New(element.KindIf, "",
		element.New(element.KindCondition, "", element.NewLiteral(element.TypeBool, "true")),
		element.New(element.KindBlock, "", element.NewLiteral(element.TypeInt, "1")),
		element.New(element.KindBlock, "", element.NewLiteral(element.TypeString, "x")),
	)
	inf := NewInferencer()
	if _, err := inf.Infer(NewEnv(), ifNode); err == nil {
		t.Fatal("expected unification failure for mismatched branch types")
	}
}
