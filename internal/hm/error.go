package hm

import "fmt"

// UnboundError indicates a variable reference with no binding in scope.
type UnboundError struct {
	Name string
}

func (e *UnboundError) Error() string { return fmt.Sprintf("unbound identifier: %s", e.Name) }

// UnifyError indicates two types could not be reconciled.
type UnifyError struct {
	Left, Right Type
	Reason      string
}

func (e *UnifyError) Error() string {
	return fmt.Sprintf("cannot unify %s with %s: %s", e.Left, e.Right, e.Reason)
}

// OccursError indicates a type variable would have to occur within its
// own binding (an infinite type).
type OccursError struct {
	Var TVar
	In  Type
}

func (e *OccursError) Error() string {
	return fmt.Sprintf("occurs check failed: %s occurs in %s", e.Var, e.In)
}
