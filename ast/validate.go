package ast

import "fmt"

// DefaultMaxDepth bounds recursive unpacking of assignment targets.
// Adversarial nesting beyond the limit fails with ErrNestingTooDeep
// instead of exhausting the call stack.
const DefaultMaxDepth = 1000

// Options configures validation.
type Options struct {
	// MaxDepth overrides DefaultMaxDepth when positive.
	MaxDepth int
}

// Validate checks a module tree for structural legality: parameter-name
// uniqueness per Arguments node, assignable targets on every assignment
// position, and keyword-argument names reducing to plain identifiers.
// Everything else is pure structural recursion.
//
// Children are visited depth-first, left to right; the first violation
// aborts the walk and is the only error reported. The tree is never
// mutated and validating it twice yields the same result.
func Validate(m *Module) error {
	return ValidateWith(m, Options{})
}

// ValidateWith is Validate with explicit Options.
func ValidateWith(m *Module, opts Options) error {
	maxDepth := opts.MaxDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	v := &validator{maxDepth: maxDepth}
	return v.stmts(m.Body)
}

type validator struct {
	maxDepth int
}

func (v *validator) stmts(body []Stmt) error {
	for _, s := range body {
		if err := v.stmt(s); err != nil {
			return err
		}
	}
	return nil
}

// stmt validates a single statement. The switch is exhaustive over all
// statement kinds; the default arm rejects unknown nodes rather than
// silently accepting them.
func (v *validator) stmt(s Stmt) error {
	switch st := s.(type) {
	case *FunctionDef:
		return first(
			v.exprs(st.Decorators),
			v.arguments(st.Args),
			v.optExpr(st.Returns),
			v.stmts(st.Body),
		)

	case *ClassDef:
		return first(
			v.exprs(st.Decorators),
			v.exprs(st.Bases),
			v.keywords(st.Keywords),
			v.stmts(st.Body),
		)

	case *Return:
		return v.optExpr(st.Value)

	case *Delete:
		for _, t := range st.Targets {
			if err := v.target(t); err != nil {
				return err
			}
		}
		return nil

	case *Assign:
		for _, t := range st.Targets {
			if err := v.target(t); err != nil {
				return err
			}
		}
		return v.expr(st.Value)

	case *AugAssign:
		return first(v.target(st.Target), v.expr(st.Value))

	case *AnnAssign:
		// Annotations are deliberately unrestricted: any expression is
		// accepted as a type annotation.
		return first(v.target(st.Target), v.expr(st.Annotation), v.optExpr(st.Value))

	case *For:
		return first(
			v.target(st.Target),
			v.expr(st.Iter),
			v.stmts(st.Body),
			v.stmts(st.OrElse),
		)

	case *While:
		return first(v.expr(st.Test), v.stmts(st.Body), v.stmts(st.OrElse))

	case *If:
		return first(v.expr(st.Test), v.stmts(st.Body), v.stmts(st.OrElse))

	case *With:
		for _, item := range st.Items {
			if err := first(v.expr(item.ContextExpr), v.optExpr(item.OptionalVars)); err != nil {
				return err
			}
		}
		return v.stmts(st.Body)

	case *Raise:
		return first(v.optExpr(st.Exc), v.optExpr(st.Cause))

	case *Try:
		if err := v.stmts(st.Body); err != nil {
			return err
		}
		for _, h := range st.Handlers {
			if err := first(v.optExpr(h.Type), v.stmts(h.Body)); err != nil {
				return err
			}
		}
		return first(v.stmts(st.OrElse), v.stmts(st.Final))

	case *Assert:
		return first(v.expr(st.Test), v.optExpr(st.Msg))

	case *ExprStmt:
		return v.expr(st.Value)

	case *Import, *ImportFrom, *Global, *Nonlocal, *Pass, *Break, *Continue:
		// Leaf statements: no expression children, nothing to check.
		// Whether Global/Nonlocal appear in a legal enclosing construct
		// is owned by a later semantic pass, not this validator.
		return nil

	default:
		return fmt.Errorf("ast: unexpected statement node %T", s)
	}
}

func (v *validator) exprs(exprs []Expr) error {
	for _, e := range exprs {
		if err := v.expr(e); err != nil {
			return err
		}
	}
	return nil
}

// optExpr validates an optional expression; nil passes.
func (v *validator) optExpr(e Expr) error {
	if e == nil {
		return nil
	}
	return v.expr(e)
}

// expr validates a single expression. The switch is exhaustive over all
// expression kinds; only genuine leaves share the no-op arm.
func (v *validator) expr(e Expr) error {
	switch ex := e.(type) {
	case *BoolOp:
		return v.exprs(ex.Values)

	case *NamedExpr:
		return first(v.expr(ex.Target), v.expr(ex.Value))

	case *BinOp:
		return first(v.expr(ex.Left), v.expr(ex.Right))

	case *UnaryOp:
		return v.expr(ex.Operand)

	case *Lambda:
		return first(v.arguments(ex.Args), v.expr(ex.Body))

	case *IfExpr:
		return first(v.expr(ex.Test), v.expr(ex.Body), v.expr(ex.OrElse))

	case *Dict:
		for _, item := range ex.Items {
			if err := first(v.optExpr(item.Key), v.expr(item.Value)); err != nil {
				return err
			}
		}
		return nil

	case *Set:
		return v.exprs(ex.Elts)

	case *ListComp:
		return first(v.expr(ex.Elt), v.comprehensions(ex.Generators))

	case *SetComp:
		return first(v.expr(ex.Elt), v.comprehensions(ex.Generators))

	case *DictComp:
		return first(v.expr(ex.Key), v.expr(ex.Value), v.comprehensions(ex.Generators))

	case *GeneratorExp:
		return first(v.expr(ex.Elt), v.comprehensions(ex.Generators))

	case *Await:
		return v.expr(ex.Value)

	case *Yield:
		return v.optExpr(ex.Value)

	case *YieldFrom:
		return v.expr(ex.Value)

	case *Compare:
		return first(v.expr(ex.Left), v.exprs(ex.Comparators))

	case *Call:
		if err := v.expr(ex.Func); err != nil {
			return err
		}
		for _, a := range ex.Args {
			if err := v.expr(a.Value); err != nil {
				return err
			}
		}
		return v.keywords(ex.Keywords)

	case *FormattedValue:
		if err := v.expr(ex.Value); err != nil {
			return err
		}
		if ex.FormatSpec != nil {
			return v.expr(ex.FormatSpec)
		}
		return nil

	case *JoinedStr:
		return v.exprs(ex.Values)

	case *Attribute:
		return v.expr(ex.Value)

	case *Subscript:
		return first(v.expr(ex.Value), v.sliceKind(ex.Index))

	case *Starred:
		return v.expr(ex.Value)

	case *List:
		return v.exprs(ex.Elts)

	case *Tuple:
		return v.exprs(ex.Elts)

	case *Constant, *Name, *RawLiteral:
		// Leaf expressions. RawLiteral is an unresolved placeholder;
		// its contents are checked when the fstring package resolves it.
		return nil

	default:
		return fmt.Errorf("ast: unexpected expression node %T", e)
	}
}

func (v *validator) sliceKind(s SliceKind) error {
	switch sl := s.(type) {
	case *SliceRange:
		return first(v.optExpr(sl.Lower), v.optExpr(sl.Upper), v.optExpr(sl.Step))
	case *ExtSlice:
		for _, dim := range sl.Dims {
			if err := v.sliceKind(dim); err != nil {
				return err
			}
		}
		return nil
	case *Index:
		return v.expr(sl.Value)
	case nil:
		return nil
	default:
		return fmt.Errorf("ast: unexpected slice node %T", s)
	}
}

// comprehensions validates the for-clauses of a comprehension. Each
// clause's target is an assignment position.
func (v *validator) comprehensions(gens []*Comprehension) error {
	for _, g := range gens {
		if err := first(v.target(g.Target), v.expr(g.Iter), v.exprs(g.Ifs)); err != nil {
			return err
		}
	}
	return nil
}

// keywords validates keyword call arguments. A present name must be a
// plain identifier.
func (v *validator) keywords(kws []*KeywordArg) error {
	for _, kw := range kws {
		if kw.Name != nil {
			if _, ok := kw.Name.(*Name); !ok {
				return ErrArgumentMustBeName
			}
		}
		if err := v.expr(kw.Value); err != nil {
			return err
		}
	}
	return nil
}

// arguments enforces parameter-name uniqueness across all four parameter
// groups, then recurses into annotations and defaults.
func (v *validator) arguments(args *Arguments) error {
	if args == nil {
		return nil
	}
	seen := make(map[string]struct{})
	note := func(a *Arg) error {
		if a == nil {
			return nil
		}
		if _, dup := seen[a.Name]; dup {
			return ErrDuplicateArgument
		}
		seen[a.Name] = struct{}{}
		return nil
	}
	for _, a := range args.Args {
		if err := note(a); err != nil {
			return err
		}
	}
	if err := note(args.Vararg); err != nil {
		return err
	}
	for _, a := range args.KwOnlyArgs {
		if err := note(a); err != nil {
			return err
		}
	}
	if err := note(args.Kwarg); err != nil {
		return err
	}

	all := make([]*Arg, 0, len(args.Args)+len(args.KwOnlyArgs)+2)
	all = append(all, args.Args...)
	if args.Vararg != nil {
		all = append(all, args.Vararg)
	}
	all = append(all, args.KwOnlyArgs...)
	if args.Kwarg != nil {
		all = append(all, args.Kwarg)
	}
	for _, a := range all {
		if err := first(v.optExpr(a.Annotation), v.optExpr(a.Default)); err != nil {
			return err
		}
	}
	return nil
}

// target validates an assignment-target position: the target must be
// assignable, and its subexpressions must themselves be valid (an
// Attribute target like f(x).attr carries an arbitrary expression).
func (v *validator) target(t Expr) error {
	return first(v.assignable(t, 0), v.expr(t))
}

// first returns the first non-nil error. Arguments are evaluated before
// the call, so sub-validations must be side-effect free; they are, and
// "first error wins" is preserved because each sub-validation reports
// only its own leftmost failure.
func first(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
