package interp

import "fmt"

// builtinOperators implements every call whose name is one of the fixed
// operator symbols. Assignment ("=") is handled separately in evalAssign
// since it needs the caller's Environment, not just evaluated argument
// values.
var builtinOperators = map[string]func(args []Object) (Object, error){
	"+":        opPlus,
	"-":        opArith(func(a, b int64) int64 { return a - b }),
	"*":        opArith(func(a, b int64) int64 { return a * b }),
	"/":        opDivide,
	"%":        opModulo,
	"<":        opCompare(func(a, b int64) bool { return a < b }),
	">":        opCompare(func(a, b int64) bool { return a > b }),
	"<=":       opCompare(func(a, b int64) bool { return a <= b }),
	">=":       opCompare(func(a, b int64) bool { return a >= b }),
	"==":       opEquals,
	"!=":       opNotEquals,
	"&&":       opLogical(func(a, b bool) bool { return a && b }),
	"||":       opLogical(func(a, b bool) bool { return a || b }),
	"unary_!":  opNot,
	"unary_-":  opNegate,
}

func wantInts(args []Object, op string) (int64, int64, error) {
	if len(args) != 2 {
		return 0, 0, fmt.Errorf("%s: expected 2 arguments, got %d", op, len(args))
	}
	a, ok := args[0].(*Integer)
	if !ok {
		return 0, 0, fmt.Errorf("%s: expected Int, got %s", op, args[0].Type())
	}
	b, ok := args[1].(*Integer)
	if !ok {
		return 0, 0, fmt.Errorf("%s: expected Int, got %s", op, args[1].Type())
	}
	return a.Value, b.Value, nil
}

func opArith(f func(a, b int64) int64) func([]Object) (Object, error) {
	return func(args []Object) (Object, error) {
		a, b, err := wantInts(args, "arithmetic")
		if err != nil {
			return nil, err
		}
		return &Integer{Value: f(a, b)}, nil
	}
}

func opCompare(f func(a, b int64) bool) func([]Object) (Object, error) {
	return func(args []Object) (Object, error) {
		a, b, err := wantInts(args, "comparison")
		if err != nil {
			return nil, err
		}
		return nativeBool(f(a, b)), nil
	}
}

func opLogical(f func(a, b bool) bool) func([]Object) (Object, error) {
	return func(args []Object) (Object, error) {
		if len(args) != 2 {
			return nil, fmt.Errorf("logical operator: expected 2 arguments, got %d", len(args))
		}
		a, ok := args[0].(*Boolean)
		if !ok {
			return nil, fmt.Errorf("logical operator: expected Bool, got %s", args[0].Type())
		}
		b, ok := args[1].(*Boolean)
		if !ok {
			return nil, fmt.Errorf("logical operator: expected Bool, got %s", args[1].Type())
		}
		return nativeBool(f(a.Value, b.Value)), nil
	}
}

// opPlus implements the runtime's polymorphic overload of `+`: integer
// addition when both operands are Int, string concatenation when either
// operand is a String. The type environment assigns `+` the monomorphic
// Int -> Int -> Int scheme regardless; the overload is a runtime-only
// widening.
func opPlus(args []Object) (Object, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("+: expected 2 arguments, got %d", len(args))
	}
	if ls, ok := args[0].(*String); ok {
		return &String{Value: ls.Value + args[1].Inspect()}, nil
	}
	if rs, ok := args[1].(*String); ok {
		return &String{Value: args[0].Inspect() + rs.Value}, nil
	}
	a, ok := args[0].(*Integer)
	if !ok {
		return nil, fmt.Errorf("+: expected Int or String, got %s", args[0].Type())
	}
	b, ok := args[1].(*Integer)
	if !ok {
		return nil, fmt.Errorf("+: expected Int or String, got %s", args[1].Type())
	}
	return &Integer{Value: a.Value + b.Value}, nil
}

// opDivide is floor division: truncation toward negative infinity, not
// toward zero as Go's native / operator does.
func opDivide(args []Object) (Object, error) {
	a, b, err := wantInts(args, "/")
	if err != nil {
		return nil, err
	}
	if b == 0 {
		return nil, fmt.Errorf("division by zero")
	}
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return &Integer{Value: q}, nil
}

func opModulo(args []Object) (Object, error) {
	a, b, err := wantInts(args, "%")
	if err != nil {
		return nil, err
	}
	if b == 0 {
		return nil, fmt.Errorf("division by zero")
	}
	m := a % b
	if m != 0 && ((m < 0) != (b < 0)) {
		m += b
	}
	return &Integer{Value: m}, nil
}

func opEquals(args []Object) (Object, error) {
	eq, err := objectsEqual(args)
	if err != nil {
		return nil, err
	}
	return nativeBool(eq), nil
}

func opNotEquals(args []Object) (Object, error) {
	eq, err := objectsEqual(args)
	if err != nil {
		return nil, err
	}
	return nativeBool(!eq), nil
}

func objectsEqual(args []Object) (bool, error) {
	if len(args) != 2 {
		return false, fmt.Errorf("comparison: expected 2 arguments, got %d", len(args))
	}
	switch a := args[0].(type) {
	case *Integer:
		b, ok := args[1].(*Integer)
		return ok && a.Value == b.Value, nil
	case *String:
		b, ok := args[1].(*String)
		return ok && a.Value == b.Value, nil
	case *Boolean:
		b, ok := args[1].(*Boolean)
		return ok && a.Value == b.Value, nil
	default:
		return args[0] == args[1], nil
	}
}

func opNot(args []Object) (Object, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("unary_!: expected 1 argument, got %d", len(args))
	}
	b, ok := args[0].(*Boolean)
	if !ok {
		return nil, fmt.Errorf("unary_!: expected Bool, got %s", args[0].Type())
	}
	return nativeBool(!b.Value), nil
}

func opNegate(args []Object) (Object, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("unary_-: expected 1 argument, got %d", len(args))
	}
	v, ok := args[0].(*Integer)
	if !ok {
		return nil, fmt.Errorf("unary_-: expected Int, got %s", args[0].Type())
	}
	return &Integer{Value: -v.Value}, nil
}
