package ast

// Node is the interface for all AST nodes.
type Node interface {
	node()
}

// Stmt is the interface for statement nodes.
type Stmt interface {
	Node
	stmt()
}

// Expr is the interface for expression nodes.
type Expr interface {
	Node
	expr()
}

// SliceKind is the interface for subscript index variants.
type SliceKind interface {
	Node
	slice()
}

// ConstValue is the payload of a Constant node.
type ConstValue interface {
	constValue()
}

// Str is a string constant value.
type Str string

// Int is an integer constant value.
type Int int64

// Float is a floating point constant value.
type Float float64

// Bool is a boolean constant value.
type Bool bool

// Bytes is a bytes-literal constant value.
type Bytes []byte

// None is the None constant value.
type None struct{}

// Ellipsis is the ... constant value.
type Ellipsis struct{}

func (Str) constValue()      {}
func (Int) constValue()      {}
func (Float) constValue()    {}
func (Bool) constValue()     {}
func (Bytes) constValue()    {}
func (None) constValue()     {}
func (Ellipsis) constValue() {}

// Module is the root node: a sequence of top-level statements.
type Module struct {
	Body []Stmt
}

func (m *Module) node() {}

// FunctionDef represents def name(args): body, with optional decorators
// and return annotation. Async is true for async def.
type FunctionDef struct {
	Name       string
	Args       *Arguments
	Body       []Stmt
	Decorators []Expr
	Returns    Expr // optional return annotation
	Async      bool
}

func (f *FunctionDef) node() {}
func (f *FunctionDef) stmt() {}

// ClassDef represents class name(bases, **keywords): body.
type ClassDef struct {
	Name       string
	Bases      []Expr
	Keywords   []*KeywordArg
	Body       []Stmt
	Decorators []Expr
}

func (c *ClassDef) node() {}
func (c *ClassDef) stmt() {}

// Return represents return [value].
type Return struct {
	Value Expr // nil for a bare return
}

func (r *Return) node() {}
func (r *Return) stmt() {}

// Delete represents del target, ....
type Delete struct {
	Targets []Expr
}

func (d *Delete) node() {}
func (d *Delete) stmt() {}

// Assign represents target [= target]... = value.
// Chained assignments carry one entry per target.
type Assign struct {
	Targets []Expr
	Value   Expr
}

func (a *Assign) node() {}
func (a *Assign) stmt() {}

// AugAssign represents target op= value.
type AugAssign struct {
	Target Expr
	Op     string
	Value  Expr
}

func (a *AugAssign) node() {}
func (a *AugAssign) stmt() {}

// AnnAssign represents target: annotation [= value].
type AnnAssign struct {
	Target     Expr
	Annotation Expr
	Value      Expr // nil when only declaring
}

func (a *AnnAssign) node() {}
func (a *AnnAssign) stmt() {}

// For represents for target in iter: body [else: orelse].
// Async is true for async for.
type For struct {
	Target Expr
	Iter   Expr
	Body   []Stmt
	OrElse []Stmt
	Async  bool
}

func (f *For) node() {}
func (f *For) stmt() {}

// While represents while test: body [else: orelse].
type While struct {
	Test   Expr
	Body   []Stmt
	OrElse []Stmt
}

func (w *While) node() {}
func (w *While) stmt() {}

// If represents if test: body [else: orelse]. elif chains nest in OrElse.
type If struct {
	Test   Expr
	Body   []Stmt
	OrElse []Stmt
}

func (i *If) node() {}
func (i *If) stmt() {}

// With represents with items: body. Async is true for async with.
type With struct {
	Items []*WithItem
	Body  []Stmt
	Async bool
}

func (w *With) node() {}
func (w *With) stmt() {}

// Raise represents raise [exc [from cause]].
type Raise struct {
	Exc   Expr // nil for a bare re-raise
	Cause Expr // nil without a from clause
}

func (r *Raise) node() {}
func (r *Raise) stmt() {}

// Try represents try: body except...: handlers else: orelse finally: final.
type Try struct {
	Body     []Stmt
	Handlers []*ExceptHandler
	OrElse   []Stmt
	Final    []Stmt
}

func (t *Try) node() {}
func (t *Try) stmt() {}

// Assert represents assert test [, msg].
type Assert struct {
	Test Expr
	Msg  Expr // nil without a message
}

func (a *Assert) node() {}
func (a *Assert) stmt() {}

// Import represents import name [as alias], ....
type Import struct {
	Names []*Alias
}

func (i *Import) node() {}
func (i *Import) stmt() {}

// ImportFrom represents from module import name [as alias], ....
// Level counts leading dots for relative imports.
type ImportFrom struct {
	Module string
	Names  []*Alias
	Level  int
}

func (i *ImportFrom) node() {}
func (i *ImportFrom) stmt() {}

// Global represents global name, ....
type Global struct {
	Names []string
}

func (g *Global) node() {}
func (g *Global) stmt() {}

// Nonlocal represents nonlocal name, ....
type Nonlocal struct {
	Names []string
}

func (n *Nonlocal) node() {}
func (n *Nonlocal) stmt() {}

// Pass represents pass.
type Pass struct{}

func (p *Pass) node() {}
func (p *Pass) stmt() {}

// Break represents break.
type Break struct{}

func (b *Break) node() {}
func (b *Break) stmt() {}

// Continue represents continue.
type Continue struct{}

func (c *Continue) node() {}
func (c *Continue) stmt() {}

// ExprStmt is a statement that is just an expression.
type ExprStmt struct {
	Value Expr
}

func (e *ExprStmt) node() {}
func (e *ExprStmt) stmt() {}

// BoolOp represents values joined by and/or. Op is "and" or "or".
type BoolOp struct {
	Op     string
	Values []Expr
}

func (b *BoolOp) node() {}
func (b *BoolOp) expr() {}

// NamedExpr represents target := value (the walrus operator).
type NamedExpr struct {
	Target Expr
	Value  Expr
}

func (n *NamedExpr) node() {}
func (n *NamedExpr) expr() {}

// BinOp represents left op right.
type BinOp struct {
	Left  Expr
	Op    string
	Right Expr
}

func (b *BinOp) node() {}
func (b *BinOp) expr() {}

// UnaryOp represents op operand.
type UnaryOp struct {
	Op      string
	Operand Expr
}

func (u *UnaryOp) node() {}
func (u *UnaryOp) expr() {}

// Lambda represents lambda args: body.
type Lambda struct {
	Args *Arguments
	Body Expr
}

func (l *Lambda) node() {}
func (l *Lambda) expr() {}

// IfExpr represents body if test else orelse.
type IfExpr struct {
	Test   Expr
	Body   Expr
	OrElse Expr
}

func (i *IfExpr) node() {}
func (i *IfExpr) expr() {}

// Dict represents {key: value, ...}. An item with a nil key is a
// **mapping unpacking.
type Dict struct {
	Items []*KeyVal
}

func (d *Dict) node() {}
func (d *Dict) expr() {}

// Set represents {elt, ...}.
type Set struct {
	Elts []Expr
}

func (s *Set) node() {}
func (s *Set) expr() {}

// ListComp represents [elt for ... in ...].
type ListComp struct {
	Elt        Expr
	Generators []*Comprehension
}

func (l *ListComp) node() {}
func (l *ListComp) expr() {}

// SetComp represents {elt for ... in ...}.
type SetComp struct {
	Elt        Expr
	Generators []*Comprehension
}

func (s *SetComp) node() {}
func (s *SetComp) expr() {}

// DictComp represents {key: value for ... in ...}.
type DictComp struct {
	Key        Expr
	Value      Expr
	Generators []*Comprehension
}

func (d *DictComp) node() {}
func (d *DictComp) expr() {}

// GeneratorExp represents (elt for ... in ...).
type GeneratorExp struct {
	Elt        Expr
	Generators []*Comprehension
}

func (g *GeneratorExp) node() {}
func (g *GeneratorExp) expr() {}

// Await represents await value.
type Await struct {
	Value Expr
}

func (a *Await) node() {}
func (a *Await) expr() {}

// Yield represents yield [value].
type Yield struct {
	Value Expr // nil for a bare yield
}

func (y *Yield) node() {}
func (y *Yield) expr() {}

// YieldFrom represents yield from value.
type YieldFrom struct {
	Value Expr
}

func (y *YieldFrom) node() {}
func (y *YieldFrom) expr() {}

// Compare represents left op comparator [op comparator]....
// Ops and Comparators run in parallel, one entry per chained comparison.
type Compare struct {
	Left        Expr
	Ops         []string
	Comparators []Expr
}

func (c *Compare) node() {}
func (c *Compare) expr() {}

// Call represents func(args, keywords).
type Call struct {
	Func     Expr
	Args     []*PosArg
	Keywords []*KeywordArg
}

func (c *Call) node() {}
func (c *Call) expr() {}

// FormattedValue is one replacement field of a formatted string literal:
// the embedded expression, an optional conversion ('s', 'r' or 'a', 0 when
// absent), and an optional format spec. The spec is itself a JoinedStr
// because it may contain nested replacement fields.
type FormattedValue struct {
	Value      Expr
	Conversion byte
	FormatSpec *JoinedStr
}

func (f *FormattedValue) node() {}
func (f *FormattedValue) expr() {}

// JoinedStr is the resolved form of a formatted string literal: an ordered
// sequence of Constant and FormattedValue fragments in source order.
type JoinedStr struct {
	Values []Expr
}

func (j *JoinedStr) node() {}
func (j *JoinedStr) expr() {}

// Constant is a literal value: string, int, float, bool, bytes, None
// or Ellipsis.
type Constant struct {
	Value ConstValue
}

func (c *Constant) node() {}
func (c *Constant) expr() {}

// Attribute represents value.attr.
type Attribute struct {
	Value Expr
	Attr  string
}

func (a *Attribute) node() {}
func (a *Attribute) expr() {}

// Subscript represents value[index].
type Subscript struct {
	Value Expr
	Index SliceKind
}

func (s *Subscript) node() {}
func (s *Subscript) expr() {}

// Starred represents *value in call arguments and unpacking targets.
type Starred struct {
	Value Expr
}

func (s *Starred) node() {}
func (s *Starred) expr() {}

// Name is an identifier reference.
type Name struct {
	Id string
}

func (n *Name) node() {}
func (n *Name) expr() {}

// List represents [elt, ...].
type List struct {
	Elts []Expr
}

func (l *List) node() {}
func (l *List) expr() {}

// Tuple represents (elt, ...).
type Tuple struct {
	Elts []Expr
}

func (t *Tuple) node() {}
func (t *Tuple) expr() {}

// RawLiteral is a placeholder for a string-literal token the grammar
// parser has not yet resolved. The fstring package replaces it with a
// Constant or JoinedStr during literal resolution.
type RawLiteral struct {
	Prefix string // letters before the opening quote ("", "f", "rb", ...)
	Quote  string // opening quote style, informational
	Raw    string // text between the quotes
}

func (r *RawLiteral) node() {}
func (r *RawLiteral) expr() {}

// Arguments collects the parameter groups of a function: positional
// parameters, an optional *vararg, keyword-only parameters and an
// optional **kwarg. Parameter names must be unique across all groups.
type Arguments struct {
	Args       []*Arg
	Vararg     *Arg
	KwOnlyArgs []*Arg
	Kwarg      *Arg
}

func (a *Arguments) node() {}

// Arg is a single parameter with an optional annotation and default.
type Arg struct {
	Name       string
	Annotation Expr
	Default    Expr
}

func (a *Arg) node() {}

// KeyVal is one dict entry. A nil Key marks a **mapping unpacking.
type KeyVal struct {
	Key   Expr
	Value Expr
}

func (k *KeyVal) node() {}

// PosArg is a positional call argument.
type PosArg struct {
	Value Expr
}

func (p *PosArg) node() {}

// KeywordArg is a keyword call argument. Name must reduce to a plain
// identifier when present; a nil Name marks a **mapping unpacking.
type KeywordArg struct {
	Name  Expr
	Value Expr
}

func (k *KeywordArg) node() {}

// Comprehension is one for-clause of a comprehension, with its filter
// conditions. Async is true for async for clauses.
type Comprehension struct {
	Target Expr
	Iter   Expr
	Ifs    []Expr
	Async  bool
}

func (c *Comprehension) node() {}

// Alias is one name [as asname] entry of an import statement.
type Alias struct {
	Name   string
	AsName string // empty without an as clause
}

func (a *Alias) node() {}

// ExceptHandler is one except [type [as name]]: body clause.
type ExceptHandler struct {
	Type Expr   // nil for a bare except
	Name string // empty without an as clause
	Body []Stmt
}

func (e *ExceptHandler) node() {}

// WithItem is one context-manager entry of a with statement.
type WithItem struct {
	ContextExpr  Expr
	OptionalVars Expr // nil without an as clause
}

func (w *WithItem) node() {}

// SliceRange represents value[lower:upper:step]; any bound may be nil.
type SliceRange struct {
	Lower Expr
	Upper Expr
	Step  Expr
}

func (s *SliceRange) node()  {}
func (s *SliceRange) slice() {}

// ExtSlice represents a multi-dimensional subscript value[a, b:c].
type ExtSlice struct {
	Dims []SliceKind
}

func (e *ExtSlice) node()  {}
func (e *ExtSlice) slice() {}

// Index represents a plain subscript value[index].
type Index struct {
	Value Expr
}

func (i *Index) node()  {}
func (i *Index) slice() {}
