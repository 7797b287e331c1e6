package ast

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// DecodeModule decodes a JSON AST dump into a Module tree. The expected
// shape follows CPython's ast field names: every node is an object with a
// "type" tag ("Module", "Assign", "Name", ...) and per-kind fields
// ("body", "targets", "id", ...). Async variants use the AsyncFunctionDef,
// AsyncFor and AsyncWith tags. Unknown tags and malformed payloads fail
// with a descriptive error.
//
// The decoder builds the tree only; run Validate on the result to check
// structural legality.
func DecodeModule(data []byte) (*Module, error) {
	typ, raw, err := taggedNode(data)
	if err != nil {
		return nil, err
	}
	if typ != "Module" {
		return nil, fmt.Errorf("ast: expected Module at top level, got %q", typ)
	}
	var p struct {
		Body []json.RawMessage `json:"body"`
	}
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("ast: decoding Module: %w", err)
	}
	body, err := decodeStmts(p.Body)
	if err != nil {
		return nil, err
	}
	return &Module{Body: body}, nil
}

// taggedNode extracts the "type" tag of a node object.
func taggedNode(raw json.RawMessage) (string, json.RawMessage, error) {
	var tag struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(raw, &tag); err != nil {
		return "", nil, fmt.Errorf("ast: decoding node: %w", err)
	}
	if tag.Type == "" {
		return "", nil, fmt.Errorf("ast: node object missing %q field", "type")
	}
	return tag.Type, raw, nil
}

func isNull(raw json.RawMessage) bool {
	return len(raw) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func decodeStmts(raws []json.RawMessage) ([]Stmt, error) {
	stmts := make([]Stmt, 0, len(raws))
	for _, raw := range raws {
		s, err := decodeStmt(raw)
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, s)
	}
	return stmts, nil
}

func decodeStmt(raw json.RawMessage) (Stmt, error) {
	typ, raw, err := taggedNode(raw)
	if err != nil {
		return nil, err
	}
	fail := func(err error) (Stmt, error) {
		return nil, fmt.Errorf("ast: decoding %s: %w", typ, err)
	}

	switch typ {
	case "FunctionDef", "AsyncFunctionDef":
		var p struct {
			Name       string            `json:"name"`
			Args       json.RawMessage   `json:"args"`
			Body       []json.RawMessage `json:"body"`
			Decorators []json.RawMessage `json:"decorator_list"`
			Returns    json.RawMessage   `json:"returns"`
		}
		if err := json.Unmarshal(raw, &p); err != nil {
			return fail(err)
		}
		args, err := decodeArguments(p.Args)
		if err != nil {
			return fail(err)
		}
		body, err := decodeStmts(p.Body)
		if err != nil {
			return nil, err
		}
		decorators, err := decodeExprs(p.Decorators)
		if err != nil {
			return nil, err
		}
		returns, err := decodeOptExpr(p.Returns)
		if err != nil {
			return nil, err
		}
		return &FunctionDef{
			Name:       p.Name,
			Args:       args,
			Body:       body,
			Decorators: decorators,
			Returns:    returns,
			Async:      typ == "AsyncFunctionDef",
		}, nil

	case "ClassDef":
		var p struct {
			Name       string            `json:"name"`
			Bases      []json.RawMessage `json:"bases"`
			Keywords   []json.RawMessage `json:"keywords"`
			Body       []json.RawMessage `json:"body"`
			Decorators []json.RawMessage `json:"decorator_list"`
		}
		if err := json.Unmarshal(raw, &p); err != nil {
			return fail(err)
		}
		bases, err := decodeExprs(p.Bases)
		if err != nil {
			return nil, err
		}
		keywords, err := decodeKeywords(p.Keywords)
		if err != nil {
			return nil, err
		}
		body, err := decodeStmts(p.Body)
		if err != nil {
			return nil, err
		}
		decorators, err := decodeExprs(p.Decorators)
		if err != nil {
			return nil, err
		}
		return &ClassDef{Name: p.Name, Bases: bases, Keywords: keywords, Body: body, Decorators: decorators}, nil

	case "Return":
		var p struct {
			Value json.RawMessage `json:"value"`
		}
		if err := json.Unmarshal(raw, &p); err != nil {
			return fail(err)
		}
		value, err := decodeOptExpr(p.Value)
		if err != nil {
			return nil, err
		}
		return &Return{Value: value}, nil

	case "Delete":
		var p struct {
			Targets []json.RawMessage `json:"targets"`
		}
		if err := json.Unmarshal(raw, &p); err != nil {
			return fail(err)
		}
		targets, err := decodeExprs(p.Targets)
		if err != nil {
			return nil, err
		}
		return &Delete{Targets: targets}, nil

	case "Assign":
		var p struct {
			Targets []json.RawMessage `json:"targets"`
			Value   json.RawMessage   `json:"value"`
		}
		if err := json.Unmarshal(raw, &p); err != nil {
			return fail(err)
		}
		targets, err := decodeExprs(p.Targets)
		if err != nil {
			return nil, err
		}
		value, err := decodeExpr(p.Value)
		if err != nil {
			return nil, err
		}
		return &Assign{Targets: targets, Value: value}, nil

	case "AugAssign":
		var p struct {
			Target json.RawMessage `json:"target"`
			Op     string          `json:"op"`
			Value  json.RawMessage `json:"value"`
		}
		if err := json.Unmarshal(raw, &p); err != nil {
			return fail(err)
		}
		target, err := decodeExpr(p.Target)
		if err != nil {
			return nil, err
		}
		value, err := decodeExpr(p.Value)
		if err != nil {
			return nil, err
		}
		return &AugAssign{Target: target, Op: p.Op, Value: value}, nil

	case "AnnAssign":
		var p struct {
			Target     json.RawMessage `json:"target"`
			Annotation json.RawMessage `json:"annotation"`
			Value      json.RawMessage `json:"value"`
		}
		if err := json.Unmarshal(raw, &p); err != nil {
			return fail(err)
		}
		target, err := decodeExpr(p.Target)
		if err != nil {
			return nil, err
		}
		annotation, err := decodeExpr(p.Annotation)
		if err != nil {
			return nil, err
		}
		value, err := decodeOptExpr(p.Value)
		if err != nil {
			return nil, err
		}
		return &AnnAssign{Target: target, Annotation: annotation, Value: value}, nil

	case "For", "AsyncFor":
		var p struct {
			Target json.RawMessage   `json:"target"`
			Iter   json.RawMessage   `json:"iter"`
			Body   []json.RawMessage `json:"body"`
			OrElse []json.RawMessage `json:"orelse"`
		}
		if err := json.Unmarshal(raw, &p); err != nil {
			return fail(err)
		}
		target, err := decodeExpr(p.Target)
		if err != nil {
			return nil, err
		}
		iter, err := decodeExpr(p.Iter)
		if err != nil {
			return nil, err
		}
		body, err := decodeStmts(p.Body)
		if err != nil {
			return nil, err
		}
		orElse, err := decodeStmts(p.OrElse)
		if err != nil {
			return nil, err
		}
		return &For{Target: target, Iter: iter, Body: body, OrElse: orElse, Async: typ == "AsyncFor"}, nil

	case "While", "If":
		var p struct {
			Test   json.RawMessage   `json:"test"`
			Body   []json.RawMessage `json:"body"`
			OrElse []json.RawMessage `json:"orelse"`
		}
		if err := json.Unmarshal(raw, &p); err != nil {
			return fail(err)
		}
		test, err := decodeExpr(p.Test)
		if err != nil {
			return nil, err
		}
		body, err := decodeStmts(p.Body)
		if err != nil {
			return nil, err
		}
		orElse, err := decodeStmts(p.OrElse)
		if err != nil {
			return nil, err
		}
		if typ == "While" {
			return &While{Test: test, Body: body, OrElse: orElse}, nil
		}
		return &If{Test: test, Body: body, OrElse: orElse}, nil

	case "With", "AsyncWith":
		var p struct {
			Items []json.RawMessage `json:"items"`
			Body  []json.RawMessage `json:"body"`
		}
		if err := json.Unmarshal(raw, &p); err != nil {
			return fail(err)
		}
		items := make([]*WithItem, 0, len(p.Items))
		for _, rawItem := range p.Items {
			var ip struct {
				ContextExpr  json.RawMessage `json:"context_expr"`
				OptionalVars json.RawMessage `json:"optional_vars"`
			}
			if err := json.Unmarshal(rawItem, &ip); err != nil {
				return fail(err)
			}
			ctx, err := decodeExpr(ip.ContextExpr)
			if err != nil {
				return nil, err
			}
			vars, err := decodeOptExpr(ip.OptionalVars)
			if err != nil {
				return nil, err
			}
			items = append(items, &WithItem{ContextExpr: ctx, OptionalVars: vars})
		}
		body, err := decodeStmts(p.Body)
		if err != nil {
			return nil, err
		}
		return &With{Items: items, Body: body, Async: typ == "AsyncWith"}, nil

	case "Raise":
		var p struct {
			Exc   json.RawMessage `json:"exc"`
			Cause json.RawMessage `json:"cause"`
		}
		if err := json.Unmarshal(raw, &p); err != nil {
			return fail(err)
		}
		exc, err := decodeOptExpr(p.Exc)
		if err != nil {
			return nil, err
		}
		cause, err := decodeOptExpr(p.Cause)
		if err != nil {
			return nil, err
		}
		return &Raise{Exc: exc, Cause: cause}, nil

	case "Try":
		var p struct {
			Body     []json.RawMessage `json:"body"`
			Handlers []json.RawMessage `json:"handlers"`
			OrElse   []json.RawMessage `json:"orelse"`
			Final    []json.RawMessage `json:"finalbody"`
		}
		if err := json.Unmarshal(raw, &p); err != nil {
			return fail(err)
		}
		body, err := decodeStmts(p.Body)
		if err != nil {
			return nil, err
		}
		handlers := make([]*ExceptHandler, 0, len(p.Handlers))
		for _, rawH := range p.Handlers {
			var hp struct {
				Type json.RawMessage   `json:"type"`
				Name string            `json:"name"`
				Body []json.RawMessage `json:"body"`
			}
			if err := json.Unmarshal(rawH, &hp); err != nil {
				return fail(err)
			}
			htype, err := decodeOptExpr(hp.Type)
			if err != nil {
				return nil, err
			}
			hbody, err := decodeStmts(hp.Body)
			if err != nil {
				return nil, err
			}
			handlers = append(handlers, &ExceptHandler{Type: htype, Name: hp.Name, Body: hbody})
		}
		orElse, err := decodeStmts(p.OrElse)
		if err != nil {
			return nil, err
		}
		final, err := decodeStmts(p.Final)
		if err != nil {
			return nil, err
		}
		return &Try{Body: body, Handlers: handlers, OrElse: orElse, Final: final}, nil

	case "Assert":
		var p struct {
			Test json.RawMessage `json:"test"`
			Msg  json.RawMessage `json:"msg"`
		}
		if err := json.Unmarshal(raw, &p); err != nil {
			return fail(err)
		}
		test, err := decodeExpr(p.Test)
		if err != nil {
			return nil, err
		}
		msg, err := decodeOptExpr(p.Msg)
		if err != nil {
			return nil, err
		}
		return &Assert{Test: test, Msg: msg}, nil

	case "Import":
		names, err := decodeAliases(raw)
		if err != nil {
			return fail(err)
		}
		return &Import{Names: names}, nil

	case "ImportFrom":
		var p struct {
			Module string `json:"module"`
			Level  int    `json:"level"`
		}
		if err := json.Unmarshal(raw, &p); err != nil {
			return fail(err)
		}
		names, err := decodeAliases(raw)
		if err != nil {
			return fail(err)
		}
		return &ImportFrom{Module: p.Module, Names: names, Level: p.Level}, nil

	case "Global", "Nonlocal":
		var p struct {
			Names []string `json:"names"`
		}
		if err := json.Unmarshal(raw, &p); err != nil {
			return fail(err)
		}
		if typ == "Global" {
			return &Global{Names: p.Names}, nil
		}
		return &Nonlocal{Names: p.Names}, nil

	case "Pass":
		return &Pass{}, nil
	case "Break":
		return &Break{}, nil
	case "Continue":
		return &Continue{}, nil

	case "Expr", "ExprStmt":
		var p struct {
			Value json.RawMessage `json:"value"`
		}
		if err := json.Unmarshal(raw, &p); err != nil {
			return fail(err)
		}
		value, err := decodeExpr(p.Value)
		if err != nil {
			return nil, err
		}
		return &ExprStmt{Value: value}, nil

	default:
		return nil, fmt.Errorf("ast: unknown statement type %q", typ)
	}
}

func decodeAliases(raw json.RawMessage) ([]*Alias, error) {
	var p struct {
		Names []struct {
			Name   string `json:"name"`
			AsName string `json:"asname"`
		} `json:"names"`
	}
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, err
	}
	names := make([]*Alias, 0, len(p.Names))
	for _, n := range p.Names {
		names = append(names, &Alias{Name: n.Name, AsName: n.AsName})
	}
	return names, nil
}

func decodeExprs(raws []json.RawMessage) ([]Expr, error) {
	exprs := make([]Expr, 0, len(raws))
	for _, raw := range raws {
		e, err := decodeExpr(raw)
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, e)
	}
	return exprs, nil
}

func decodeOptExpr(raw json.RawMessage) (Expr, error) {
	if isNull(raw) {
		return nil, nil
	}
	return decodeExpr(raw)
}

func decodeExpr(raw json.RawMessage) (Expr, error) {
	typ, raw, err := taggedNode(raw)
	if err != nil {
		return nil, err
	}
	fail := func(err error) (Expr, error) {
		return nil, fmt.Errorf("ast: decoding %s: %w", typ, err)
	}

	switch typ {
	case "BoolOp":
		var p struct {
			Op     string            `json:"op"`
			Values []json.RawMessage `json:"values"`
		}
		if err := json.Unmarshal(raw, &p); err != nil {
			return fail(err)
		}
		values, err := decodeExprs(p.Values)
		if err != nil {
			return nil, err
		}
		return &BoolOp{Op: p.Op, Values: values}, nil

	case "NamedExpr":
		var p struct {
			Target json.RawMessage `json:"target"`
			Value  json.RawMessage `json:"value"`
		}
		if err := json.Unmarshal(raw, &p); err != nil {
			return fail(err)
		}
		target, err := decodeExpr(p.Target)
		if err != nil {
			return nil, err
		}
		value, err := decodeExpr(p.Value)
		if err != nil {
			return nil, err
		}
		return &NamedExpr{Target: target, Value: value}, nil

	case "BinOp":
		var p struct {
			Left  json.RawMessage `json:"left"`
			Op    string          `json:"op"`
			Right json.RawMessage `json:"right"`
		}
		if err := json.Unmarshal(raw, &p); err != nil {
			return fail(err)
		}
		left, err := decodeExpr(p.Left)
		if err != nil {
			return nil, err
		}
		right, err := decodeExpr(p.Right)
		if err != nil {
			return nil, err
		}
		return &BinOp{Left: left, Op: p.Op, Right: right}, nil

	case "UnaryOp":
		var p struct {
			Op      string          `json:"op"`
			Operand json.RawMessage `json:"operand"`
		}
		if err := json.Unmarshal(raw, &p); err != nil {
			return fail(err)
		}
		operand, err := decodeExpr(p.Operand)
		if err != nil {
			return nil, err
		}
		return &UnaryOp{Op: p.Op, Operand: operand}, nil

	case "Lambda":
		var p struct {
			Args json.RawMessage `json:"args"`
			Body json.RawMessage `json:"body"`
		}
		if err := json.Unmarshal(raw, &p); err != nil {
			return fail(err)
		}
		args, err := decodeArguments(p.Args)
		if err != nil {
			return fail(err)
		}
		body, err := decodeExpr(p.Body)
		if err != nil {
			return nil, err
		}
		return &Lambda{Args: args, Body: body}, nil

	case "IfExp", "IfExpr":
		var p struct {
			Test   json.RawMessage `json:"test"`
			Body   json.RawMessage `json:"body"`
			OrElse json.RawMessage `json:"orelse"`
		}
		if err := json.Unmarshal(raw, &p); err != nil {
			return fail(err)
		}
		test, err := decodeExpr(p.Test)
		if err != nil {
			return nil, err
		}
		body, err := decodeExpr(p.Body)
		if err != nil {
			return nil, err
		}
		orElse, err := decodeExpr(p.OrElse)
		if err != nil {
			return nil, err
		}
		return &IfExpr{Test: test, Body: body, OrElse: orElse}, nil

	case "Dict":
		// CPython shape: parallel keys/values arrays; a null key marks a
		// **mapping unpacking.
		var p struct {
			Keys   []json.RawMessage `json:"keys"`
			Values []json.RawMessage `json:"values"`
		}
		if err := json.Unmarshal(raw, &p); err != nil {
			return fail(err)
		}
		if len(p.Keys) != len(p.Values) {
			return fail(fmt.Errorf("keys/values length mismatch: %d vs %d", len(p.Keys), len(p.Values)))
		}
		items := make([]*KeyVal, 0, len(p.Keys))
		for i := range p.Keys {
			key, err := decodeOptExpr(p.Keys[i])
			if err != nil {
				return nil, err
			}
			value, err := decodeExpr(p.Values[i])
			if err != nil {
				return nil, err
			}
			items = append(items, &KeyVal{Key: key, Value: value})
		}
		return &Dict{Items: items}, nil

	case "Set":
		elts, err := decodeElts(raw)
		if err != nil {
			return fail(err)
		}
		return &Set{Elts: elts}, nil

	case "ListComp", "SetComp", "GeneratorExp":
		var p struct {
			Elt        json.RawMessage   `json:"elt"`
			Generators []json.RawMessage `json:"generators"`
		}
		if err := json.Unmarshal(raw, &p); err != nil {
			return fail(err)
		}
		elt, err := decodeExpr(p.Elt)
		if err != nil {
			return nil, err
		}
		gens, err := decodeComprehensions(p.Generators)
		if err != nil {
			return nil, err
		}
		switch typ {
		case "ListComp":
			return &ListComp{Elt: elt, Generators: gens}, nil
		case "SetComp":
			return &SetComp{Elt: elt, Generators: gens}, nil
		default:
			return &GeneratorExp{Elt: elt, Generators: gens}, nil
		}

	case "DictComp":
		var p struct {
			Key        json.RawMessage   `json:"key"`
			Value      json.RawMessage   `json:"value"`
			Generators []json.RawMessage `json:"generators"`
		}
		if err := json.Unmarshal(raw, &p); err != nil {
			return fail(err)
		}
		key, err := decodeExpr(p.Key)
		if err != nil {
			return nil, err
		}
		value, err := decodeExpr(p.Value)
		if err != nil {
			return nil, err
		}
		gens, err := decodeComprehensions(p.Generators)
		if err != nil {
			return nil, err
		}
		return &DictComp{Key: key, Value: value, Generators: gens}, nil

	case "Await", "YieldFrom":
		var p struct {
			Value json.RawMessage `json:"value"`
		}
		if err := json.Unmarshal(raw, &p); err != nil {
			return fail(err)
		}
		value, err := decodeExpr(p.Value)
		if err != nil {
			return nil, err
		}
		if typ == "Await" {
			return &Await{Value: value}, nil
		}
		return &YieldFrom{Value: value}, nil

	case "Yield":
		var p struct {
			Value json.RawMessage `json:"value"`
		}
		if err := json.Unmarshal(raw, &p); err != nil {
			return fail(err)
		}
		value, err := decodeOptExpr(p.Value)
		if err != nil {
			return nil, err
		}
		return &Yield{Value: value}, nil

	case "Compare":
		var p struct {
			Left        json.RawMessage   `json:"left"`
			Ops         []string          `json:"ops"`
			Comparators []json.RawMessage `json:"comparators"`
		}
		if err := json.Unmarshal(raw, &p); err != nil {
			return fail(err)
		}
		left, err := decodeExpr(p.Left)
		if err != nil {
			return nil, err
		}
		comparators, err := decodeExprs(p.Comparators)
		if err != nil {
			return nil, err
		}
		return &Compare{Left: left, Ops: p.Ops, Comparators: comparators}, nil

	case "Call":
		var p struct {
			Func     json.RawMessage   `json:"func"`
			Args     []json.RawMessage `json:"args"`
			Keywords []json.RawMessage `json:"keywords"`
		}
		if err := json.Unmarshal(raw, &p); err != nil {
			return fail(err)
		}
		fn, err := decodeExpr(p.Func)
		if err != nil {
			return nil, err
		}
		args := make([]*PosArg, 0, len(p.Args))
		for _, rawA := range p.Args {
			a, err := decodeExpr(rawA)
			if err != nil {
				return nil, err
			}
			args = append(args, &PosArg{Value: a})
		}
		keywords, err := decodeKeywords(p.Keywords)
		if err != nil {
			return nil, err
		}
		return &Call{Func: fn, Args: args, Keywords: keywords}, nil

	case "FormattedValue":
		var p struct {
			Value      json.RawMessage `json:"value"`
			Conversion string          `json:"conversion"`
			FormatSpec json.RawMessage `json:"format_spec"`
		}
		if err := json.Unmarshal(raw, &p); err != nil {
			return fail(err)
		}
		value, err := decodeExpr(p.Value)
		if err != nil {
			return nil, err
		}
		var conv byte
		switch len(p.Conversion) {
		case 0:
		case 1:
			conv = p.Conversion[0]
		default:
			return fail(fmt.Errorf("conversion must be a single character, got %q", p.Conversion))
		}
		var spec *JoinedStr
		if !isNull(p.FormatSpec) {
			specExpr, err := decodeExpr(p.FormatSpec)
			if err != nil {
				return nil, err
			}
			js, ok := specExpr.(*JoinedStr)
			if !ok {
				return fail(fmt.Errorf("format_spec must be a JoinedStr, got %T", specExpr))
			}
			spec = js
		}
		return &FormattedValue{Value: value, Conversion: conv, FormatSpec: spec}, nil

	case "JoinedStr":
		var p struct {
			Values []json.RawMessage `json:"values"`
		}
		if err := json.Unmarshal(raw, &p); err != nil {
			return fail(err)
		}
		values, err := decodeExprs(p.Values)
		if err != nil {
			return nil, err
		}
		return &JoinedStr{Values: values}, nil

	case "Constant":
		var p struct {
			Value json.RawMessage `json:"value"`
		}
		if err := json.Unmarshal(raw, &p); err != nil {
			return fail(err)
		}
		value, err := decodeConstValue(p.Value)
		if err != nil {
			return fail(err)
		}
		return &Constant{Value: value}, nil

	case "Attribute":
		var p struct {
			Value json.RawMessage `json:"value"`
			Attr  string          `json:"attr"`
		}
		if err := json.Unmarshal(raw, &p); err != nil {
			return fail(err)
		}
		value, err := decodeExpr(p.Value)
		if err != nil {
			return nil, err
		}
		return &Attribute{Value: value, Attr: p.Attr}, nil

	case "Subscript":
		var p struct {
			Value json.RawMessage `json:"value"`
			Slice json.RawMessage `json:"slice"`
		}
		if err := json.Unmarshal(raw, &p); err != nil {
			return fail(err)
		}
		value, err := decodeExpr(p.Value)
		if err != nil {
			return nil, err
		}
		slice, err := decodeSlice(p.Slice)
		if err != nil {
			return nil, err
		}
		return &Subscript{Value: value, Index: slice}, nil

	case "Starred":
		var p struct {
			Value json.RawMessage `json:"value"`
		}
		if err := json.Unmarshal(raw, &p); err != nil {
			return fail(err)
		}
		value, err := decodeExpr(p.Value)
		if err != nil {
			return nil, err
		}
		return &Starred{Value: value}, nil

	case "Name":
		var p struct {
			Id string `json:"id"`
		}
		if err := json.Unmarshal(raw, &p); err != nil {
			return fail(err)
		}
		return &Name{Id: p.Id}, nil

	case "List", "Tuple":
		elts, err := decodeElts(raw)
		if err != nil {
			return fail(err)
		}
		if typ == "List" {
			return &List{Elts: elts}, nil
		}
		return &Tuple{Elts: elts}, nil

	case "RawLiteral":
		var p struct {
			Prefix string `json:"prefix"`
			Quote  string `json:"quote"`
			Raw    string `json:"raw"`
		}
		if err := json.Unmarshal(raw, &p); err != nil {
			return fail(err)
		}
		return &RawLiteral{Prefix: p.Prefix, Quote: p.Quote, Raw: p.Raw}, nil

	default:
		return nil, fmt.Errorf("ast: unknown expression type %q", typ)
	}
}

func decodeElts(raw json.RawMessage) ([]Expr, error) {
	var p struct {
		Elts []json.RawMessage `json:"elts"`
	}
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, err
	}
	return decodeExprs(p.Elts)
}

func decodeSlice(raw json.RawMessage) (SliceKind, error) {
	if isNull(raw) {
		return nil, fmt.Errorf("ast: Subscript missing slice")
	}
	typ, raw, err := taggedNode(raw)
	if err != nil {
		return nil, err
	}
	switch typ {
	case "Slice":
		var p struct {
			Lower json.RawMessage `json:"lower"`
			Upper json.RawMessage `json:"upper"`
			Step  json.RawMessage `json:"step"`
		}
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, fmt.Errorf("ast: decoding Slice: %w", err)
		}
		lower, err := decodeOptExpr(p.Lower)
		if err != nil {
			return nil, err
		}
		upper, err := decodeOptExpr(p.Upper)
		if err != nil {
			return nil, err
		}
		step, err := decodeOptExpr(p.Step)
		if err != nil {
			return nil, err
		}
		return &SliceRange{Lower: lower, Upper: upper, Step: step}, nil

	case "ExtSlice":
		var p struct {
			Dims []json.RawMessage `json:"dims"`
		}
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, fmt.Errorf("ast: decoding ExtSlice: %w", err)
		}
		dims := make([]SliceKind, 0, len(p.Dims))
		for _, rawDim := range p.Dims {
			dim, err := decodeSlice(rawDim)
			if err != nil {
				return nil, err
			}
			dims = append(dims, dim)
		}
		return &ExtSlice{Dims: dims}, nil

	case "Index":
		var p struct {
			Value json.RawMessage `json:"value"`
		}
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, fmt.Errorf("ast: decoding Index: %w", err)
		}
		value, err := decodeExpr(p.Value)
		if err != nil {
			return nil, err
		}
		return &Index{Value: value}, nil

	default:
		// Newer dumps put a plain expression in slice position; wrap it.
		value, err := decodeExpr(raw)
		if err != nil {
			return nil, err
		}
		return &Index{Value: value}, nil
	}
}

func decodeComprehensions(raws []json.RawMessage) ([]*Comprehension, error) {
	gens := make([]*Comprehension, 0, len(raws))
	for _, raw := range raws {
		var p struct {
			Target  json.RawMessage   `json:"target"`
			Iter    json.RawMessage   `json:"iter"`
			Ifs     []json.RawMessage `json:"ifs"`
			IsAsync bool              `json:"is_async"`
		}
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, fmt.Errorf("ast: decoding comprehension: %w", err)
		}
		target, err := decodeExpr(p.Target)
		if err != nil {
			return nil, err
		}
		iter, err := decodeExpr(p.Iter)
		if err != nil {
			return nil, err
		}
		ifs, err := decodeExprs(p.Ifs)
		if err != nil {
			return nil, err
		}
		gens = append(gens, &Comprehension{Target: target, Iter: iter, Ifs: ifs, Async: p.IsAsync})
	}
	return gens, nil
}

// decodeKeywords decodes keyword arguments. The name slot accepts either
// a string (CPython's shape) or a full expression node; null marks a
// **mapping unpacking.
func decodeKeywords(raws []json.RawMessage) ([]*KeywordArg, error) {
	kws := make([]*KeywordArg, 0, len(raws))
	for _, raw := range raws {
		var p struct {
			Arg   json.RawMessage `json:"arg"`
			Value json.RawMessage `json:"value"`
		}
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, fmt.Errorf("ast: decoding keyword: %w", err)
		}
		var name Expr
		if !isNull(p.Arg) {
			var s string
			if err := json.Unmarshal(p.Arg, &s); err == nil {
				name = &Name{Id: s}
			} else {
				name, err = decodeExpr(p.Arg)
				if err != nil {
					return nil, err
				}
			}
		}
		value, err := decodeExpr(p.Value)
		if err != nil {
			return nil, err
		}
		kws = append(kws, &KeywordArg{Name: name, Value: value})
	}
	return kws, nil
}

func decodeArguments(raw json.RawMessage) (*Arguments, error) {
	if isNull(raw) {
		return nil, nil
	}
	var p struct {
		Args       []json.RawMessage `json:"args"`
		Vararg     json.RawMessage   `json:"vararg"`
		KwOnlyArgs []json.RawMessage `json:"kwonlyargs"`
		Kwarg      json.RawMessage   `json:"kwarg"`
	}
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, err
	}
	decodeArg := func(raw json.RawMessage) (*Arg, error) {
		var ap struct {
			Name       string          `json:"arg"`
			Annotation json.RawMessage `json:"annotation"`
			Default    json.RawMessage `json:"default"`
		}
		if err := json.Unmarshal(raw, &ap); err != nil {
			return nil, err
		}
		annotation, err := decodeOptExpr(ap.Annotation)
		if err != nil {
			return nil, err
		}
		def, err := decodeOptExpr(ap.Default)
		if err != nil {
			return nil, err
		}
		return &Arg{Name: ap.Name, Annotation: annotation, Default: def}, nil
	}
	out := &Arguments{}
	for _, rawA := range p.Args {
		a, err := decodeArg(rawA)
		if err != nil {
			return nil, err
		}
		out.Args = append(out.Args, a)
	}
	if !isNull(p.Vararg) {
		a, err := decodeArg(p.Vararg)
		if err != nil {
			return nil, err
		}
		out.Vararg = a
	}
	for _, rawA := range p.KwOnlyArgs {
		a, err := decodeArg(rawA)
		if err != nil {
			return nil, err
		}
		out.KwOnlyArgs = append(out.KwOnlyArgs, a)
	}
	if !isNull(p.Kwarg) {
		a, err := decodeArg(p.Kwarg)
		if err != nil {
			return nil, err
		}
		out.Kwarg = a
	}
	return out, nil
}

// decodeConstValue maps a JSON scalar onto a ConstValue. Integral numbers
// become Int, everything else numeric becomes Float.
func decodeConstValue(raw json.RawMessage) (ConstValue, error) {
	if isNull(raw) {
		return None{}, nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	switch c := v.(type) {
	case string:
		return Str(c), nil
	case bool:
		return Bool(c), nil
	case json.Number:
		if i, err := c.Int64(); err == nil {
			return Int(i), nil
		}
		f, err := c.Float64()
		if err != nil {
			return nil, err
		}
		return Float(f), nil
	default:
		return nil, fmt.Errorf("unsupported constant value %s", raw)
	}
}
