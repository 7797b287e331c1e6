package ast

// assignable reports whether an expression is legal on the left-hand
// side of an assignment, for loop or deletion. Name, Attribute and
// Subscript are assignable; Tuple and List are assignable iff every
// element is, recursively; a Starred target unwraps to its value.
// Everything else fails with ErrNotAssignable.
//
// depth tracks unpacking nesting so adversarial input fails with
// ErrNestingTooDeep instead of exhausting the stack.
func (v *validator) assignable(e Expr, depth int) error {
	if depth > v.maxDepth {
		return ErrNestingTooDeep
	}
	switch t := e.(type) {
	case *Name, *Attribute, *Subscript:
		return nil
	case *Starred:
		return v.assignable(t.Value, depth+1)
	case *Tuple:
		return v.allAssignable(t.Elts, depth+1)
	case *List:
		return v.allAssignable(t.Elts, depth+1)
	default:
		return ErrNotAssignable
	}
}

func (v *validator) allAssignable(elts []Expr, depth int) error {
	for _, e := range elts {
		if err := v.assignable(e, depth); err != nil {
			return err
		}
	}
	return nil
}
