package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// Dump renders a node as a compact single-line tree, e.g.
// Assign(targets=[Name(x)], value=Constant(1)). Optional fields that are
// absent are omitted. Intended for debugging and CLI inspection output.
func Dump(n Node) string {
	var b strings.Builder
	dumpNode(&b, n)
	return b.String()
}

func dumpNode(b *strings.Builder, n Node) {
	switch t := n.(type) {
	case nil:
		b.WriteString("nil")

	case *Module:
		b.WriteString("Module(body=")
		dumpStmts(b, t.Body)
		b.WriteByte(')')

	case *FunctionDef:
		name := "FunctionDef"
		if t.Async {
			name = "AsyncFunctionDef"
		}
		fmt.Fprintf(b, "%s(name=%s", name, t.Name)
		if len(t.Decorators) > 0 {
			b.WriteString(", decorators=")
			dumpExprs(b, t.Decorators)
		}
		b.WriteString(", args=")
		dumpNode(b, t.Args)
		if t.Returns != nil {
			b.WriteString(", returns=")
			dumpNode(b, t.Returns)
		}
		b.WriteString(", body=")
		dumpStmts(b, t.Body)
		b.WriteByte(')')

	case *ClassDef:
		fmt.Fprintf(b, "ClassDef(name=%s", t.Name)
		if len(t.Decorators) > 0 {
			b.WriteString(", decorators=")
			dumpExprs(b, t.Decorators)
		}
		if len(t.Bases) > 0 {
			b.WriteString(", bases=")
			dumpExprs(b, t.Bases)
		}
		if len(t.Keywords) > 0 {
			b.WriteString(", keywords=")
			dumpKeywords(b, t.Keywords)
		}
		b.WriteString(", body=")
		dumpStmts(b, t.Body)
		b.WriteByte(')')

	case *Return:
		b.WriteString("Return(")
		if t.Value != nil {
			dumpNode(b, t.Value)
		}
		b.WriteByte(')')

	case *Delete:
		b.WriteString("Delete(targets=")
		dumpExprs(b, t.Targets)
		b.WriteByte(')')

	case *Assign:
		b.WriteString("Assign(targets=")
		dumpExprs(b, t.Targets)
		b.WriteString(", value=")
		dumpNode(b, t.Value)
		b.WriteByte(')')

	case *AugAssign:
		b.WriteString("AugAssign(target=")
		dumpNode(b, t.Target)
		fmt.Fprintf(b, ", op=%s, value=", t.Op)
		dumpNode(b, t.Value)
		b.WriteByte(')')

	case *AnnAssign:
		b.WriteString("AnnAssign(target=")
		dumpNode(b, t.Target)
		b.WriteString(", annotation=")
		dumpNode(b, t.Annotation)
		if t.Value != nil {
			b.WriteString(", value=")
			dumpNode(b, t.Value)
		}
		b.WriteByte(')')

	case *For:
		name := "For"
		if t.Async {
			name = "AsyncFor"
		}
		fmt.Fprintf(b, "%s(target=", name)
		dumpNode(b, t.Target)
		b.WriteString(", iter=")
		dumpNode(b, t.Iter)
		b.WriteString(", body=")
		dumpStmts(b, t.Body)
		if len(t.OrElse) > 0 {
			b.WriteString(", orelse=")
			dumpStmts(b, t.OrElse)
		}
		b.WriteByte(')')

	case *While:
		b.WriteString("While(test=")
		dumpNode(b, t.Test)
		b.WriteString(", body=")
		dumpStmts(b, t.Body)
		if len(t.OrElse) > 0 {
			b.WriteString(", orelse=")
			dumpStmts(b, t.OrElse)
		}
		b.WriteByte(')')

	case *If:
		b.WriteString("If(test=")
		dumpNode(b, t.Test)
		b.WriteString(", body=")
		dumpStmts(b, t.Body)
		if len(t.OrElse) > 0 {
			b.WriteString(", orelse=")
			dumpStmts(b, t.OrElse)
		}
		b.WriteByte(')')

	case *With:
		name := "With"
		if t.Async {
			name = "AsyncWith"
		}
		fmt.Fprintf(b, "%s(items=[", name)
		for i, item := range t.Items {
			if i > 0 {
				b.WriteString(", ")
			}
			dumpNode(b, item)
		}
		b.WriteString("], body=")
		dumpStmts(b, t.Body)
		b.WriteByte(')')

	case *Raise:
		b.WriteString("Raise(")
		if t.Exc != nil {
			dumpNode(b, t.Exc)
		}
		if t.Cause != nil {
			b.WriteString(", cause=")
			dumpNode(b, t.Cause)
		}
		b.WriteByte(')')

	case *Try:
		b.WriteString("Try(body=")
		dumpStmts(b, t.Body)
		b.WriteString(", handlers=[")
		for i, h := range t.Handlers {
			if i > 0 {
				b.WriteString(", ")
			}
			dumpNode(b, h)
		}
		b.WriteByte(']')
		if len(t.OrElse) > 0 {
			b.WriteString(", orelse=")
			dumpStmts(b, t.OrElse)
		}
		if len(t.Final) > 0 {
			b.WriteString(", finalbody=")
			dumpStmts(b, t.Final)
		}
		b.WriteByte(')')

	case *Assert:
		b.WriteString("Assert(test=")
		dumpNode(b, t.Test)
		if t.Msg != nil {
			b.WriteString(", msg=")
			dumpNode(b, t.Msg)
		}
		b.WriteByte(')')

	case *Import:
		b.WriteString("Import(")
		dumpAliases(b, t.Names)
		b.WriteByte(')')

	case *ImportFrom:
		fmt.Fprintf(b, "ImportFrom(module=%s, names=", t.Module)
		dumpAliases(b, t.Names)
		if t.Level > 0 {
			fmt.Fprintf(b, ", level=%d", t.Level)
		}
		b.WriteByte(')')

	case *Global:
		fmt.Fprintf(b, "Global(%s)", strings.Join(t.Names, ", "))

	case *Nonlocal:
		fmt.Fprintf(b, "Nonlocal(%s)", strings.Join(t.Names, ", "))

	case *Pass:
		b.WriteString("Pass")

	case *Break:
		b.WriteString("Break")

	case *Continue:
		b.WriteString("Continue")

	case *ExprStmt:
		b.WriteString("ExprStmt(")
		dumpNode(b, t.Value)
		b.WriteByte(')')

	case *BoolOp:
		fmt.Fprintf(b, "BoolOp(op=%s, values=", t.Op)
		dumpExprs(b, t.Values)
		b.WriteByte(')')

	case *NamedExpr:
		b.WriteString("NamedExpr(target=")
		dumpNode(b, t.Target)
		b.WriteString(", value=")
		dumpNode(b, t.Value)
		b.WriteByte(')')

	case *BinOp:
		b.WriteString("BinOp(left=")
		dumpNode(b, t.Left)
		fmt.Fprintf(b, ", op=%s, right=", t.Op)
		dumpNode(b, t.Right)
		b.WriteByte(')')

	case *UnaryOp:
		fmt.Fprintf(b, "UnaryOp(op=%s, operand=", t.Op)
		dumpNode(b, t.Operand)
		b.WriteByte(')')

	case *Lambda:
		b.WriteString("Lambda(args=")
		dumpNode(b, t.Args)
		b.WriteString(", body=")
		dumpNode(b, t.Body)
		b.WriteByte(')')

	case *IfExpr:
		b.WriteString("IfExpr(test=")
		dumpNode(b, t.Test)
		b.WriteString(", body=")
		dumpNode(b, t.Body)
		b.WriteString(", orelse=")
		dumpNode(b, t.OrElse)
		b.WriteByte(')')

	case *Dict:
		b.WriteString("Dict([")
		for i, item := range t.Items {
			if i > 0 {
				b.WriteString(", ")
			}
			dumpNode(b, item)
		}
		b.WriteString("])")

	case *Set:
		b.WriteString("Set(")
		dumpExprs(b, t.Elts)
		b.WriteByte(')')

	case *ListComp:
		b.WriteString("ListComp(elt=")
		dumpNode(b, t.Elt)
		b.WriteString(", generators=")
		dumpComprehensions(b, t.Generators)
		b.WriteByte(')')

	case *SetComp:
		b.WriteString("SetComp(elt=")
		dumpNode(b, t.Elt)
		b.WriteString(", generators=")
		dumpComprehensions(b, t.Generators)
		b.WriteByte(')')

	case *DictComp:
		b.WriteString("DictComp(key=")
		dumpNode(b, t.Key)
		b.WriteString(", value=")
		dumpNode(b, t.Value)
		b.WriteString(", generators=")
		dumpComprehensions(b, t.Generators)
		b.WriteByte(')')

	case *GeneratorExp:
		b.WriteString("GeneratorExp(elt=")
		dumpNode(b, t.Elt)
		b.WriteString(", generators=")
		dumpComprehensions(b, t.Generators)
		b.WriteByte(')')

	case *Await:
		b.WriteString("Await(")
		dumpNode(b, t.Value)
		b.WriteByte(')')

	case *Yield:
		b.WriteString("Yield(")
		if t.Value != nil {
			dumpNode(b, t.Value)
		}
		b.WriteByte(')')

	case *YieldFrom:
		b.WriteString("YieldFrom(")
		dumpNode(b, t.Value)
		b.WriteByte(')')

	case *Compare:
		b.WriteString("Compare(left=")
		dumpNode(b, t.Left)
		fmt.Fprintf(b, ", ops=[%s], comparators=", strings.Join(t.Ops, ", "))
		dumpExprs(b, t.Comparators)
		b.WriteByte(')')

	case *Call:
		b.WriteString("Call(func=")
		dumpNode(b, t.Func)
		if len(t.Args) > 0 {
			b.WriteString(", args=[")
			for i, a := range t.Args {
				if i > 0 {
					b.WriteString(", ")
				}
				dumpNode(b, a.Value)
			}
			b.WriteByte(']')
		}
		if len(t.Keywords) > 0 {
			b.WriteString(", keywords=")
			dumpKeywords(b, t.Keywords)
		}
		b.WriteByte(')')

	case *FormattedValue:
		b.WriteString("FormattedValue(")
		dumpNode(b, t.Value)
		if t.Conversion != 0 {
			fmt.Fprintf(b, ", conversion=%c", t.Conversion)
		}
		if t.FormatSpec != nil {
			b.WriteString(", format_spec=")
			dumpNode(b, t.FormatSpec)
		}
		b.WriteByte(')')

	case *JoinedStr:
		b.WriteString("JoinedStr(")
		dumpExprs(b, t.Values)
		b.WriteByte(')')

	case *Constant:
		b.WriteString("Constant(")
		dumpConst(b, t.Value)
		b.WriteByte(')')

	case *Attribute:
		b.WriteString("Attribute(value=")
		dumpNode(b, t.Value)
		fmt.Fprintf(b, ", attr=%s)", t.Attr)

	case *Subscript:
		b.WriteString("Subscript(value=")
		dumpNode(b, t.Value)
		b.WriteString(", slice=")
		dumpNode(b, t.Index)
		b.WriteByte(')')

	case *Starred:
		b.WriteString("Starred(")
		dumpNode(b, t.Value)
		b.WriteByte(')')

	case *Name:
		fmt.Fprintf(b, "Name(%s)", t.Id)

	case *List:
		b.WriteString("List(")
		dumpExprs(b, t.Elts)
		b.WriteByte(')')

	case *Tuple:
		b.WriteString("Tuple(")
		dumpExprs(b, t.Elts)
		b.WriteByte(')')

	case *RawLiteral:
		fmt.Fprintf(b, "RawLiteral(prefix=%q, quote=%q, raw=%q)", t.Prefix, t.Quote, t.Raw)

	case *Arguments:
		b.WriteString("Arguments(")
		sep := ""
		if len(t.Args) > 0 {
			b.WriteString("args=[")
			for i, a := range t.Args {
				if i > 0 {
					b.WriteString(", ")
				}
				dumpNode(b, a)
			}
			b.WriteByte(']')
			sep = ", "
		}
		if t.Vararg != nil {
			b.WriteString(sep + "vararg=")
			dumpNode(b, t.Vararg)
			sep = ", "
		}
		if len(t.KwOnlyArgs) > 0 {
			b.WriteString(sep + "kwonlyargs=[")
			for i, a := range t.KwOnlyArgs {
				if i > 0 {
					b.WriteString(", ")
				}
				dumpNode(b, a)
			}
			b.WriteByte(']')
			sep = ", "
		}
		if t.Kwarg != nil {
			b.WriteString(sep + "kwarg=")
			dumpNode(b, t.Kwarg)
		}
		b.WriteByte(')')

	case *Arg:
		b.WriteString(t.Name)
		if t.Annotation != nil {
			b.WriteString(": ")
			dumpNode(b, t.Annotation)
		}
		if t.Default != nil {
			b.WriteString("=")
			dumpNode(b, t.Default)
		}

	case *KeyVal:
		if t.Key != nil {
			dumpNode(b, t.Key)
			b.WriteString(": ")
		} else {
			b.WriteString("**")
		}
		dumpNode(b, t.Value)

	case *PosArg:
		dumpNode(b, t.Value)

	case *KeywordArg:
		if t.Name != nil {
			dumpNode(b, t.Name)
			b.WriteByte('=')
		} else {
			b.WriteString("**")
		}
		dumpNode(b, t.Value)

	case *Comprehension:
		name := "Comprehension"
		if t.Async {
			name = "AsyncComprehension"
		}
		fmt.Fprintf(b, "%s(target=", name)
		dumpNode(b, t.Target)
		b.WriteString(", iter=")
		dumpNode(b, t.Iter)
		if len(t.Ifs) > 0 {
			b.WriteString(", ifs=")
			dumpExprs(b, t.Ifs)
		}
		b.WriteByte(')')

	case *Alias:
		b.WriteString(t.Name)
		if t.AsName != "" {
			b.WriteString(" as " + t.AsName)
		}

	case *ExceptHandler:
		b.WriteString("ExceptHandler(")
		if t.Type != nil {
			b.WriteString("type=")
			dumpNode(b, t.Type)
			b.WriteString(", ")
		}
		if t.Name != "" {
			fmt.Fprintf(b, "name=%s, ", t.Name)
		}
		b.WriteString("body=")
		dumpStmts(b, t.Body)
		b.WriteByte(')')

	case *WithItem:
		dumpNode(b, t.ContextExpr)
		if t.OptionalVars != nil {
			b.WriteString(" as ")
			dumpNode(b, t.OptionalVars)
		}

	case *SliceRange:
		b.WriteString("Slice(")
		if t.Lower != nil {
			dumpNode(b, t.Lower)
		}
		b.WriteByte(':')
		if t.Upper != nil {
			dumpNode(b, t.Upper)
		}
		if t.Step != nil {
			b.WriteByte(':')
			dumpNode(b, t.Step)
		}
		b.WriteByte(')')

	case *ExtSlice:
		b.WriteString("ExtSlice([")
		for i, dim := range t.Dims {
			if i > 0 {
				b.WriteString(", ")
			}
			dumpNode(b, dim)
		}
		b.WriteString("])")

	case *Index:
		b.WriteString("Index(")
		dumpNode(b, t.Value)
		b.WriteByte(')')

	default:
		fmt.Fprintf(b, "%T", n)
	}
}

func dumpConst(b *strings.Builder, v ConstValue) {
	switch c := v.(type) {
	case Str:
		b.WriteString(strconv.Quote(string(c)))
	case Int:
		fmt.Fprintf(b, "%d", int64(c))
	case Float:
		fmt.Fprintf(b, "%g", float64(c))
	case Bool:
		if c {
			b.WriteString("True")
		} else {
			b.WriteString("False")
		}
	case Bytes:
		fmt.Fprintf(b, "b%s", strconv.Quote(string(c)))
	case None:
		b.WriteString("None")
	case Ellipsis:
		b.WriteString("...")
	default:
		fmt.Fprintf(b, "%v", v)
	}
}

func dumpStmts(b *strings.Builder, stmts []Stmt) {
	b.WriteByte('[')
	for i, s := range stmts {
		if i > 0 {
			b.WriteString(", ")
		}
		dumpNode(b, s)
	}
	b.WriteByte(']')
}

func dumpExprs(b *strings.Builder, exprs []Expr) {
	b.WriteByte('[')
	for i, e := range exprs {
		if i > 0 {
			b.WriteString(", ")
		}
		dumpNode(b, e)
	}
	b.WriteByte(']')
}

func dumpKeywords(b *strings.Builder, kws []*KeywordArg) {
	b.WriteByte('[')
	for i, kw := range kws {
		if i > 0 {
			b.WriteString(", ")
		}
		dumpNode(b, kw)
	}
	b.WriteByte(']')
}

func dumpComprehensions(b *strings.Builder, gens []*Comprehension) {
	b.WriteByte('[')
	for i, g := range gens {
		if i > 0 {
			b.WriteString(", ")
		}
		dumpNode(b, g)
	}
	b.WriteByte(']')
}

func dumpAliases(b *strings.Builder, names []*Alias) {
	b.WriteByte('[')
	for i, a := range names {
		if i > 0 {
			b.WriteString(", ")
		}
		dumpNode(b, a)
	}
	b.WriteByte(']')
}
