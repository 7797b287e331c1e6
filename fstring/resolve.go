package fstring

import (
	"fmt"

	"github.com/pyrite-lang/pyrite/ast"
)

// Resolution returns a Transform that replaces every RawLiteral
// placeholder left by the grammar parser with its resolved Constant or
// JoinedStr form. The input tree is never mutated; unchanged subtrees are
// shared with the output.
func Resolution(p *Parser) ast.Transform {
	return ast.TransformFunc{
		N: "literal-resolution",
		F: func(m *ast.Module) (*ast.Module, error) {
			r := &resolver{p: p}
			body, changed, err := r.walkStmts(m.Body)
			if err != nil {
				return nil, err
			}
			if !changed {
				return m, nil
			}
			return &ast.Module{Body: body}, nil
		},
	}
}

type resolver struct {
	p *Parser
}

func (r *resolver) walkStmts(stmts []ast.Stmt) ([]ast.Stmt, bool, error) {
	return ast.MapSlice(stmts, r.walkStmt)
}

func (r *resolver) walkExprs(exprs []ast.Expr) ([]ast.Expr, bool, error) {
	return ast.MapSlice(exprs, r.walkExpr)
}

// walkOptExpr walks an optional expression; nil passes through.
func (r *resolver) walkOptExpr(e ast.Expr) (ast.Expr, error) {
	if e == nil {
		return nil, nil
	}
	return r.walkExpr(e)
}

// walkStmt rewrites a single statement copy-on-write, recursing into
// every expression position a literal token can occur in.
func (r *resolver) walkStmt(s ast.Stmt) (ast.Stmt, error) {
	switch st := s.(type) {
	case *ast.FunctionDef:
		decorators, dc, err := r.walkExprs(st.Decorators)
		if err != nil {
			return nil, err
		}
		args, ac, err := r.walkArguments(st.Args)
		if err != nil {
			return nil, err
		}
		returns, err := r.walkOptExpr(st.Returns)
		if err != nil {
			return nil, err
		}
		body, bc, err := r.walkStmts(st.Body)
		if err != nil {
			return nil, err
		}
		if !dc && !ac && returns == st.Returns && !bc {
			return s, nil
		}
		cp := *st
		cp.Decorators = decorators
		cp.Args = args
		cp.Returns = returns
		cp.Body = body
		return &cp, nil

	case *ast.ClassDef:
		decorators, dc, err := r.walkExprs(st.Decorators)
		if err != nil {
			return nil, err
		}
		bases, bsc, err := r.walkExprs(st.Bases)
		if err != nil {
			return nil, err
		}
		keywords, kc, err := r.walkKeywords(st.Keywords)
		if err != nil {
			return nil, err
		}
		body, bc, err := r.walkStmts(st.Body)
		if err != nil {
			return nil, err
		}
		if !dc && !bsc && !kc && !bc {
			return s, nil
		}
		cp := *st
		cp.Decorators = decorators
		cp.Bases = bases
		cp.Keywords = keywords
		cp.Body = body
		return &cp, nil

	case *ast.Return:
		value, err := r.walkOptExpr(st.Value)
		if err != nil {
			return nil, err
		}
		if value == st.Value {
			return s, nil
		}
		return &ast.Return{Value: value}, nil

	case *ast.Delete:
		targets, changed, err := r.walkExprs(st.Targets)
		if err != nil {
			return nil, err
		}
		if !changed {
			return s, nil
		}
		return &ast.Delete{Targets: targets}, nil

	case *ast.Assign:
		targets, tc, err := r.walkExprs(st.Targets)
		if err != nil {
			return nil, err
		}
		value, err := r.walkExpr(st.Value)
		if err != nil {
			return nil, err
		}
		if !tc && value == st.Value {
			return s, nil
		}
		return &ast.Assign{Targets: targets, Value: value}, nil

	case *ast.AugAssign:
		target, err := r.walkExpr(st.Target)
		if err != nil {
			return nil, err
		}
		value, err := r.walkExpr(st.Value)
		if err != nil {
			return nil, err
		}
		if target == st.Target && value == st.Value {
			return s, nil
		}
		return &ast.AugAssign{Target: target, Op: st.Op, Value: value}, nil

	case *ast.AnnAssign:
		target, err := r.walkExpr(st.Target)
		if err != nil {
			return nil, err
		}
		annotation, err := r.walkExpr(st.Annotation)
		if err != nil {
			return nil, err
		}
		value, err := r.walkOptExpr(st.Value)
		if err != nil {
			return nil, err
		}
		if target == st.Target && annotation == st.Annotation && value == st.Value {
			return s, nil
		}
		return &ast.AnnAssign{Target: target, Annotation: annotation, Value: value}, nil

	case *ast.For:
		target, err := r.walkExpr(st.Target)
		if err != nil {
			return nil, err
		}
		iter, err := r.walkExpr(st.Iter)
		if err != nil {
			return nil, err
		}
		body, bc, err := r.walkStmts(st.Body)
		if err != nil {
			return nil, err
		}
		orElse, oc, err := r.walkStmts(st.OrElse)
		if err != nil {
			return nil, err
		}
		if target == st.Target && iter == st.Iter && !bc && !oc {
			return s, nil
		}
		cp := *st
		cp.Target = target
		cp.Iter = iter
		cp.Body = body
		cp.OrElse = orElse
		return &cp, nil

	case *ast.While:
		test, err := r.walkExpr(st.Test)
		if err != nil {
			return nil, err
		}
		body, bc, err := r.walkStmts(st.Body)
		if err != nil {
			return nil, err
		}
		orElse, oc, err := r.walkStmts(st.OrElse)
		if err != nil {
			return nil, err
		}
		if test == st.Test && !bc && !oc {
			return s, nil
		}
		return &ast.While{Test: test, Body: body, OrElse: orElse}, nil

	case *ast.If:
		test, err := r.walkExpr(st.Test)
		if err != nil {
			return nil, err
		}
		body, bc, err := r.walkStmts(st.Body)
		if err != nil {
			return nil, err
		}
		orElse, oc, err := r.walkStmts(st.OrElse)
		if err != nil {
			return nil, err
		}
		if test == st.Test && !bc && !oc {
			return s, nil
		}
		return &ast.If{Test: test, Body: body, OrElse: orElse}, nil

	case *ast.With:
		items, ic, err := ast.MapSlice(st.Items, r.walkWithItem)
		if err != nil {
			return nil, err
		}
		body, bc, err := r.walkStmts(st.Body)
		if err != nil {
			return nil, err
		}
		if !ic && !bc {
			return s, nil
		}
		cp := *st
		cp.Items = items
		cp.Body = body
		return &cp, nil

	case *ast.Raise:
		exc, err := r.walkOptExpr(st.Exc)
		if err != nil {
			return nil, err
		}
		cause, err := r.walkOptExpr(st.Cause)
		if err != nil {
			return nil, err
		}
		if exc == st.Exc && cause == st.Cause {
			return s, nil
		}
		return &ast.Raise{Exc: exc, Cause: cause}, nil

	case *ast.Try:
		body, bc, err := r.walkStmts(st.Body)
		if err != nil {
			return nil, err
		}
		handlers, hc, err := ast.MapSlice(st.Handlers, r.walkHandler)
		if err != nil {
			return nil, err
		}
		orElse, oc, err := r.walkStmts(st.OrElse)
		if err != nil {
			return nil, err
		}
		final, fc, err := r.walkStmts(st.Final)
		if err != nil {
			return nil, err
		}
		if !bc && !hc && !oc && !fc {
			return s, nil
		}
		return &ast.Try{Body: body, Handlers: handlers, OrElse: orElse, Final: final}, nil

	case *ast.Assert:
		test, err := r.walkExpr(st.Test)
		if err != nil {
			return nil, err
		}
		msg, err := r.walkOptExpr(st.Msg)
		if err != nil {
			return nil, err
		}
		if test == st.Test && msg == st.Msg {
			return s, nil
		}
		return &ast.Assert{Test: test, Msg: msg}, nil

	case *ast.ExprStmt:
		value, err := r.walkExpr(st.Value)
		if err != nil {
			return nil, err
		}
		if value == st.Value {
			return s, nil
		}
		return &ast.ExprStmt{Value: value}, nil

	case *ast.Import, *ast.ImportFrom, *ast.Global, *ast.Nonlocal,
		*ast.Pass, *ast.Break, *ast.Continue:
		// No expression children, so no literal tokens to resolve.
		return s, nil

	default:
		return nil, fmt.Errorf("fstring: unexpected statement node %T", s)
	}
}

// walkExpr rewrites a single expression copy-on-write. RawLiteral
// placeholders are the rewrite points; everything else recurses.
func (r *resolver) walkExpr(e ast.Expr) (ast.Expr, error) {
	switch ex := e.(type) {
	case *ast.RawLiteral:
		return r.p.Parse(Literal{Prefix: ex.Prefix, Quote: ex.Quote, Raw: ex.Raw})

	case *ast.BoolOp:
		values, changed, err := r.walkExprs(ex.Values)
		if err != nil {
			return nil, err
		}
		if !changed {
			return e, nil
		}
		return &ast.BoolOp{Op: ex.Op, Values: values}, nil

	case *ast.NamedExpr:
		target, err := r.walkExpr(ex.Target)
		if err != nil {
			return nil, err
		}
		value, err := r.walkExpr(ex.Value)
		if err != nil {
			return nil, err
		}
		if target == ex.Target && value == ex.Value {
			return e, nil
		}
		return &ast.NamedExpr{Target: target, Value: value}, nil

	case *ast.BinOp:
		left, err := r.walkExpr(ex.Left)
		if err != nil {
			return nil, err
		}
		right, err := r.walkExpr(ex.Right)
		if err != nil {
			return nil, err
		}
		if left == ex.Left && right == ex.Right {
			return e, nil
		}
		return &ast.BinOp{Left: left, Op: ex.Op, Right: right}, nil

	case *ast.UnaryOp:
		operand, err := r.walkExpr(ex.Operand)
		if err != nil {
			return nil, err
		}
		if operand == ex.Operand {
			return e, nil
		}
		return &ast.UnaryOp{Op: ex.Op, Operand: operand}, nil

	case *ast.Lambda:
		args, ac, err := r.walkArguments(ex.Args)
		if err != nil {
			return nil, err
		}
		body, err := r.walkExpr(ex.Body)
		if err != nil {
			return nil, err
		}
		if !ac && body == ex.Body {
			return e, nil
		}
		return &ast.Lambda{Args: args, Body: body}, nil

	case *ast.IfExpr:
		test, err := r.walkExpr(ex.Test)
		if err != nil {
			return nil, err
		}
		body, err := r.walkExpr(ex.Body)
		if err != nil {
			return nil, err
		}
		orElse, err := r.walkExpr(ex.OrElse)
		if err != nil {
			return nil, err
		}
		if test == ex.Test && body == ex.Body && orElse == ex.OrElse {
			return e, nil
		}
		return &ast.IfExpr{Test: test, Body: body, OrElse: orElse}, nil

	case *ast.Dict:
		items, changed, err := ast.MapSlice(ex.Items, r.walkKeyVal)
		if err != nil {
			return nil, err
		}
		if !changed {
			return e, nil
		}
		return &ast.Dict{Items: items}, nil

	case *ast.Set:
		elts, changed, err := r.walkExprs(ex.Elts)
		if err != nil {
			return nil, err
		}
		if !changed {
			return e, nil
		}
		return &ast.Set{Elts: elts}, nil

	case *ast.ListComp:
		elt, gens, changed, err := r.walkCompParts(ex.Elt, ex.Generators)
		if err != nil {
			return nil, err
		}
		if !changed {
			return e, nil
		}
		return &ast.ListComp{Elt: elt, Generators: gens}, nil

	case *ast.SetComp:
		elt, gens, changed, err := r.walkCompParts(ex.Elt, ex.Generators)
		if err != nil {
			return nil, err
		}
		if !changed {
			return e, nil
		}
		return &ast.SetComp{Elt: elt, Generators: gens}, nil

	case *ast.GeneratorExp:
		elt, gens, changed, err := r.walkCompParts(ex.Elt, ex.Generators)
		if err != nil {
			return nil, err
		}
		if !changed {
			return e, nil
		}
		return &ast.GeneratorExp{Elt: elt, Generators: gens}, nil

	case *ast.DictComp:
		key, err := r.walkExpr(ex.Key)
		if err != nil {
			return nil, err
		}
		value, err := r.walkExpr(ex.Value)
		if err != nil {
			return nil, err
		}
		gens, gc, err := ast.MapSlice(ex.Generators, r.walkComprehension)
		if err != nil {
			return nil, err
		}
		if key == ex.Key && value == ex.Value && !gc {
			return e, nil
		}
		return &ast.DictComp{Key: key, Value: value, Generators: gens}, nil

	case *ast.Await:
		value, err := r.walkExpr(ex.Value)
		if err != nil {
			return nil, err
		}
		if value == ex.Value {
			return e, nil
		}
		return &ast.Await{Value: value}, nil

	case *ast.Yield:
		value, err := r.walkOptExpr(ex.Value)
		if err != nil {
			return nil, err
		}
		if value == ex.Value {
			return e, nil
		}
		return &ast.Yield{Value: value}, nil

	case *ast.YieldFrom:
		value, err := r.walkExpr(ex.Value)
		if err != nil {
			return nil, err
		}
		if value == ex.Value {
			return e, nil
		}
		return &ast.YieldFrom{Value: value}, nil

	case *ast.Compare:
		left, err := r.walkExpr(ex.Left)
		if err != nil {
			return nil, err
		}
		comparators, cc, err := r.walkExprs(ex.Comparators)
		if err != nil {
			return nil, err
		}
		if left == ex.Left && !cc {
			return e, nil
		}
		return &ast.Compare{Left: left, Ops: ex.Ops, Comparators: comparators}, nil

	case *ast.Call:
		fn, err := r.walkExpr(ex.Func)
		if err != nil {
			return nil, err
		}
		args, ac, err := ast.MapSlice(ex.Args, r.walkPosArg)
		if err != nil {
			return nil, err
		}
		keywords, kc, err := r.walkKeywords(ex.Keywords)
		if err != nil {
			return nil, err
		}
		if fn == ex.Func && !ac && !kc {
			return e, nil
		}
		return &ast.Call{Func: fn, Args: args, Keywords: keywords}, nil

	case *ast.FormattedValue:
		value, err := r.walkExpr(ex.Value)
		if err != nil {
			return nil, err
		}
		spec := ex.FormatSpec
		if spec != nil {
			values, changed, err := r.walkExprs(spec.Values)
			if err != nil {
				return nil, err
			}
			if changed {
				spec = &ast.JoinedStr{Values: values}
			}
		}
		if value == ex.Value && spec == ex.FormatSpec {
			return e, nil
		}
		return &ast.FormattedValue{Value: value, Conversion: ex.Conversion, FormatSpec: spec}, nil

	case *ast.JoinedStr:
		values, changed, err := r.walkExprs(ex.Values)
		if err != nil {
			return nil, err
		}
		if !changed {
			return e, nil
		}
		return &ast.JoinedStr{Values: values}, nil

	case *ast.Attribute:
		value, err := r.walkExpr(ex.Value)
		if err != nil {
			return nil, err
		}
		if value == ex.Value {
			return e, nil
		}
		return &ast.Attribute{Value: value, Attr: ex.Attr}, nil

	case *ast.Subscript:
		value, err := r.walkExpr(ex.Value)
		if err != nil {
			return nil, err
		}
		index, ic, err := r.walkSlice(ex.Index)
		if err != nil {
			return nil, err
		}
		if value == ex.Value && !ic {
			return e, nil
		}
		return &ast.Subscript{Value: value, Index: index}, nil

	case *ast.Starred:
		value, err := r.walkExpr(ex.Value)
		if err != nil {
			return nil, err
		}
		if value == ex.Value {
			return e, nil
		}
		return &ast.Starred{Value: value}, nil

	case *ast.List:
		elts, changed, err := r.walkExprs(ex.Elts)
		if err != nil {
			return nil, err
		}
		if !changed {
			return e, nil
		}
		return &ast.List{Elts: elts}, nil

	case *ast.Tuple:
		elts, changed, err := r.walkExprs(ex.Elts)
		if err != nil {
			return nil, err
		}
		if !changed {
			return e, nil
		}
		return &ast.Tuple{Elts: elts}, nil

	case *ast.Constant, *ast.Name:
		return e, nil

	default:
		return nil, fmt.Errorf("fstring: unexpected expression node %T", e)
	}
}

func (r *resolver) walkCompParts(elt ast.Expr, gens []*ast.Comprehension) (ast.Expr, []*ast.Comprehension, bool, error) {
	newElt, err := r.walkExpr(elt)
	if err != nil {
		return nil, nil, false, err
	}
	newGens, gc, err := ast.MapSlice(gens, r.walkComprehension)
	if err != nil {
		return nil, nil, false, err
	}
	return newElt, newGens, newElt != elt || gc, nil
}

func (r *resolver) walkComprehension(g *ast.Comprehension) (*ast.Comprehension, error) {
	target, err := r.walkExpr(g.Target)
	if err != nil {
		return nil, err
	}
	iter, err := r.walkExpr(g.Iter)
	if err != nil {
		return nil, err
	}
	ifs, ic, err := r.walkExprs(g.Ifs)
	if err != nil {
		return nil, err
	}
	if target == g.Target && iter == g.Iter && !ic {
		return g, nil
	}
	return &ast.Comprehension{Target: target, Iter: iter, Ifs: ifs, Async: g.Async}, nil
}

func (r *resolver) walkKeyVal(kv *ast.KeyVal) (*ast.KeyVal, error) {
	key, err := r.walkOptExpr(kv.Key)
	if err != nil {
		return nil, err
	}
	value, err := r.walkExpr(kv.Value)
	if err != nil {
		return nil, err
	}
	if key == kv.Key && value == kv.Value {
		return kv, nil
	}
	return &ast.KeyVal{Key: key, Value: value}, nil
}

func (r *resolver) walkPosArg(a *ast.PosArg) (*ast.PosArg, error) {
	value, err := r.walkExpr(a.Value)
	if err != nil {
		return nil, err
	}
	if value == a.Value {
		return a, nil
	}
	return &ast.PosArg{Value: value}, nil
}

func (r *resolver) walkKeywords(kws []*ast.KeywordArg) ([]*ast.KeywordArg, bool, error) {
	return ast.MapSlice(kws, func(kw *ast.KeywordArg) (*ast.KeywordArg, error) {
		name, err := r.walkOptExpr(kw.Name)
		if err != nil {
			return nil, err
		}
		value, err := r.walkExpr(kw.Value)
		if err != nil {
			return nil, err
		}
		if name == kw.Name && value == kw.Value {
			return kw, nil
		}
		return &ast.KeywordArg{Name: name, Value: value}, nil
	})
}

func (r *resolver) walkArguments(args *ast.Arguments) (*ast.Arguments, bool, error) {
	if args == nil {
		return nil, false, nil
	}
	walkArg := func(a *ast.Arg) (*ast.Arg, error) {
		if a == nil {
			return nil, nil
		}
		annotation, err := r.walkOptExpr(a.Annotation)
		if err != nil {
			return nil, err
		}
		def, err := r.walkOptExpr(a.Default)
		if err != nil {
			return nil, err
		}
		if annotation == a.Annotation && def == a.Default {
			return a, nil
		}
		return &ast.Arg{Name: a.Name, Annotation: annotation, Default: def}, nil
	}
	pos, pc, err := ast.MapSlice(args.Args, walkArg)
	if err != nil {
		return nil, false, err
	}
	vararg, err := walkArg(args.Vararg)
	if err != nil {
		return nil, false, err
	}
	kwOnly, kc, err := ast.MapSlice(args.KwOnlyArgs, walkArg)
	if err != nil {
		return nil, false, err
	}
	kwarg, err := walkArg(args.Kwarg)
	if err != nil {
		return nil, false, err
	}
	if !pc && vararg == args.Vararg && !kc && kwarg == args.Kwarg {
		return args, false, nil
	}
	return &ast.Arguments{Args: pos, Vararg: vararg, KwOnlyArgs: kwOnly, Kwarg: kwarg}, true, nil
}

func (r *resolver) walkWithItem(item *ast.WithItem) (*ast.WithItem, error) {
	ctx, err := r.walkExpr(item.ContextExpr)
	if err != nil {
		return nil, err
	}
	vars, err := r.walkOptExpr(item.OptionalVars)
	if err != nil {
		return nil, err
	}
	if ctx == item.ContextExpr && vars == item.OptionalVars {
		return item, nil
	}
	return &ast.WithItem{ContextExpr: ctx, OptionalVars: vars}, nil
}

func (r *resolver) walkHandler(h *ast.ExceptHandler) (*ast.ExceptHandler, error) {
	htype, err := r.walkOptExpr(h.Type)
	if err != nil {
		return nil, err
	}
	body, changed, err := r.walkStmts(h.Body)
	if err != nil {
		return nil, err
	}
	if htype == h.Type && !changed {
		return h, nil
	}
	return &ast.ExceptHandler{Type: htype, Name: h.Name, Body: body}, nil
}

func (r *resolver) walkSlice(s ast.SliceKind) (ast.SliceKind, bool, error) {
	switch sl := s.(type) {
	case *ast.SliceRange:
		lower, err := r.walkOptExpr(sl.Lower)
		if err != nil {
			return nil, false, err
		}
		upper, err := r.walkOptExpr(sl.Upper)
		if err != nil {
			return nil, false, err
		}
		step, err := r.walkOptExpr(sl.Step)
		if err != nil {
			return nil, false, err
		}
		if lower == sl.Lower && upper == sl.Upper && step == sl.Step {
			return s, false, nil
		}
		return &ast.SliceRange{Lower: lower, Upper: upper, Step: step}, true, nil

	case *ast.ExtSlice:
		dims, changed, err := ast.MapSlice(sl.Dims, func(dim ast.SliceKind) (ast.SliceKind, error) {
			nd, _, err := r.walkSlice(dim)
			return nd, err
		})
		if err != nil {
			return nil, false, err
		}
		if !changed {
			return s, false, nil
		}
		return &ast.ExtSlice{Dims: dims}, true, nil

	case *ast.Index:
		value, err := r.walkExpr(sl.Value)
		if err != nil {
			return nil, false, err
		}
		if value == sl.Value {
			return s, false, nil
		}
		return &ast.Index{Value: value}, true, nil

	case nil:
		return nil, false, nil

	default:
		return nil, false, fmt.Errorf("fstring: unexpected slice node %T", s)
	}
}
