package hm

// Unify reconciles a and b, returning the substitution that makes them
// equal, or an error. Both sides are normalized via Apply against the
// caller's current substitution before comparison, so repeated calls
// against an evolving Subst stay consistent.
func Unify(a, b Type, current Subst) (Subst, error) {
	a = a.Apply(current)
	b = b.Apply(current)

	if av, ok := a.(TVar); ok {
		return bindVar(av, b, current)
	}
	if bv, ok := b.(TVar); ok {
		return bindVar(bv, a, current)
	}

	ac, aIsCon := a.(TCon)
	bc, bIsCon := b.(TCon)
	if aIsCon && bIsCon {
		if ac.Name != bc.Name {
			return nil, &UnifyError{Left: a, Right: b, Reason: "different constructors"}
		}
		return current, nil
	}

	af, aIsFunc := a.(TFunc)
	bf, bIsFunc := b.(TFunc)
	if aIsFunc && bIsFunc {
		s1, err := Unify(af.From, bf.From, current)
		if err != nil {
			return nil, err
		}
		return Unify(af.To, bf.To, s1)
	}

	return nil, &UnifyError{Left: a, Right: b, Reason: "incompatible type shapes"}
}

// bindVar binds type variable v to t, after an occurs-check. Binding a
// variable to itself is a no-op.
func bindVar(v TVar, t Type, current Subst) (Subst, error) {
	if tv, ok := t.(TVar); ok && tv.Name == v.Name {
		return current, nil
	}
	if Occurs(v, t, current) {
		return nil, &OccursError{Var: v, In: t}
	}
	next := make(Subst, len(current)+1)
	for k, val := range current {
		next[k] = val
	}
	next[v.Name] = t
	return next, nil
}

// Occurs reports whether v appears free within Apply(t), recursing
// through function types. Constructors are atomic by name and never
// contain a free variable.
func Occurs(v TVar, t Type, s Subst) bool {
	t = t.Apply(s)
	switch typ := t.(type) {
	case TVar:
		return typ.Name == v.Name
	case TFunc:
		return Occurs(v, typ.From, s) || Occurs(v, typ.To, s)
	default:
		return false
	}
}
