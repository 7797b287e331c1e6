package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateEmptyModule(t *testing.T) {
	require.NoError(t, Validate(&Module{}))
}

func TestValidateStructuralOnlyTree(t *testing.T) {
	// No Arguments, no assignment targets: pure structural recursion
	// always succeeds.
	m := &Module{Body: []Stmt{
		&If{
			Test: &Compare{
				Left:        &Name{Id: "x"},
				Ops:         []string{"=="},
				Comparators: []Expr{&Constant{Value: Int(1)}},
			},
			Body: []Stmt{
				&ExprStmt{Value: &Call{
					Func: &Name{Id: "print"},
					Args: []*PosArg{{Value: &Constant{Value: Str("one")}}},
				}},
			},
			OrElse: []Stmt{&Pass{}},
		},
		&While{
			Test: &BoolOp{Op: "and", Values: []Expr{&Name{Id: "a"}, &UnaryOp{Op: "not", Operand: &Name{Id: "b"}}}},
			Body: []Stmt{&Break{}},
		},
		&Try{
			Body:     []Stmt{&Raise{Exc: &Name{Id: "ValueError"}}},
			Handlers: []*ExceptHandler{{Type: &Name{Id: "ValueError"}, Name: "e", Body: []Stmt{&Pass{}}}},
			Final:    []Stmt{&Pass{}},
		},
		&ExprStmt{Value: &Subscript{
			Value: &Name{Id: "m"},
			Index: &ExtSlice{Dims: []SliceKind{
				&Index{Value: &Constant{Value: Int(0)}},
				&SliceRange{Lower: &Constant{Value: Int(1)}, Upper: nil, Step: &Constant{Value: Int(2)}},
			}},
		}},
		&Import{Names: []*Alias{{Name: "os"}}},
		&Global{Names: []string{"g"}},
	}}
	require.NoError(t, Validate(m))
}

func TestValidateDuplicateArgument(t *testing.T) {
	cases := []struct {
		name string
		args *Arguments
	}{
		{"positional twice", &Arguments{
			Args: []*Arg{{Name: "arg1"}, {Name: "arg1"}},
		}},
		{"positional and keyword-only", &Arguments{
			Args:       []*Arg{{Name: "arg1"}},
			KwOnlyArgs: []*Arg{{Name: "arg1"}},
		}},
		{"positional and vararg", &Arguments{
			Args:   []*Arg{{Name: "a"}},
			Vararg: &Arg{Name: "a"},
		}},
		{"vararg and kwarg", &Arguments{
			Vararg: &Arg{Name: "rest"},
			Kwarg:  &Arg{Name: "rest"},
		}},
		{"keyword-only and kwarg", &Arguments{
			KwOnlyArgs: []*Arg{{Name: "k"}},
			Kwarg:      &Arg{Name: "k"},
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := &Module{Body: []Stmt{
				&FunctionDef{Name: "f", Args: tc.args, Body: []Stmt{&Pass{}}},
			}}
			err := Validate(m)
			require.ErrorIs(t, err, ErrDuplicateArgument)
			assert.Equal(t, "Duplicate argument in function definition", err.Error())
		})
	}
}

func TestValidateUniqueArgumentsPass(t *testing.T) {
	m := &Module{Body: []Stmt{
		&FunctionDef{
			Name: "f",
			Args: &Arguments{
				Args:       []*Arg{{Name: "a"}, {Name: "b", Default: &Constant{Value: Int(1)}}},
				Vararg:     &Arg{Name: "rest"},
				KwOnlyArgs: []*Arg{{Name: "c", Annotation: &Name{Id: "int"}}},
				Kwarg:      &Arg{Name: "kw"},
			},
			Body: []Stmt{&Return{Value: &Name{Id: "a"}}},
		},
	}}
	require.NoError(t, Validate(m))
}

func TestValidateLambdaArgumentsChecked(t *testing.T) {
	m := &Module{Body: []Stmt{
		&ExprStmt{Value: &Lambda{
			Args: &Arguments{Args: []*Arg{{Name: "x"}, {Name: "x"}}},
			Body: &Name{Id: "x"},
		}},
	}}
	require.ErrorIs(t, Validate(m), ErrDuplicateArgument)
}

func TestValidateAssignTargets(t *testing.T) {
	t.Run("constant target fails", func(t *testing.T) {
		m := &Module{Body: []Stmt{
			&Assign{Targets: []Expr{&Constant{Value: Int(1)}}, Value: &Name{Id: "x"}},
		}}
		err := Validate(m)
		require.ErrorIs(t, err, ErrNotAssignable)
		assert.Equal(t, "Cannot assign to left hand-side", err.Error())
	})

	t.Run("tuple of names succeeds", func(t *testing.T) {
		m := &Module{Body: []Stmt{
			&Assign{
				Targets: []Expr{&Tuple{Elts: []Expr{&Name{Id: "a"}, &Name{Id: "b"}}}},
				Value:   &Name{Id: "pair"},
			},
		}}
		require.NoError(t, Validate(m))
	})

	t.Run("deeply nested unpacking succeeds", func(t *testing.T) {
		target := Expr(&Name{Id: "x"})
		for i := 0; i < 50; i++ {
			target = &Tuple{Elts: []Expr{target, &List{Elts: []Expr{&Name{Id: "y"}}}}}
		}
		m := &Module{Body: []Stmt{&Assign{Targets: []Expr{target}, Value: &Name{Id: "v"}}}}
		require.NoError(t, Validate(m))
	})

	t.Run("nested non-assignable element fails", func(t *testing.T) {
		m := &Module{Body: []Stmt{
			&Assign{
				Targets: []Expr{&Tuple{Elts: []Expr{
					&Name{Id: "a"},
					&List{Elts: []Expr{&BinOp{Left: &Name{Id: "b"}, Op: "+", Right: &Name{Id: "c"}}}},
				}}},
				Value: &Name{Id: "v"},
			},
		}}
		require.ErrorIs(t, Validate(m), ErrNotAssignable)
	})

	t.Run("starred element succeeds", func(t *testing.T) {
		m := &Module{Body: []Stmt{
			&Assign{
				Targets: []Expr{&Tuple{Elts: []Expr{&Name{Id: "head"}, &Starred{Value: &Name{Id: "tail"}}}}},
				Value:   &Name{Id: "v"},
			},
		}}
		require.NoError(t, Validate(m))
	})

	t.Run("attribute and subscript targets succeed", func(t *testing.T) {
		m := &Module{Body: []Stmt{
			&Assign{
				Targets: []Expr{&Attribute{Value: &Call{Func: &Name{Id: "f"}}, Attr: "x"}},
				Value:   &Constant{Value: Int(1)},
			},
			&Assign{
				Targets: []Expr{&Subscript{Value: &Name{Id: "m"}, Index: &Index{Value: &Constant{Value: Str("k")}}}},
				Value:   &Constant{Value: Int(2)},
			},
		}}
		require.NoError(t, Validate(m))
	})
}

func TestValidateOtherTargetPositions(t *testing.T) {
	t.Run("aug assign", func(t *testing.T) {
		m := &Module{Body: []Stmt{
			&AugAssign{Target: &Call{Func: &Name{Id: "f"}}, Op: "+", Value: &Constant{Value: Int(1)}},
		}}
		require.ErrorIs(t, Validate(m), ErrNotAssignable)
	})

	t.Run("ann assign", func(t *testing.T) {
		m := &Module{Body: []Stmt{
			&AnnAssign{Target: &Constant{Value: Int(1)}, Annotation: &Name{Id: "int"}},
		}}
		require.ErrorIs(t, Validate(m), ErrNotAssignable)
	})

	t.Run("for loop", func(t *testing.T) {
		m := &Module{Body: []Stmt{
			&For{Target: &Constant{Value: Int(1)}, Iter: &Name{Id: "xs"}, Body: []Stmt{&Pass{}}},
		}}
		require.ErrorIs(t, Validate(m), ErrNotAssignable)
	})

	t.Run("delete", func(t *testing.T) {
		m := &Module{Body: []Stmt{
			&Delete{Targets: []Expr{&Name{Id: "a"}, &BinOp{Left: &Name{Id: "b"}, Op: "+", Right: &Name{Id: "c"}}}},
		}}
		require.ErrorIs(t, Validate(m), ErrNotAssignable)
	})

	t.Run("comprehension", func(t *testing.T) {
		m := &Module{Body: []Stmt{
			&ExprStmt{Value: &ListComp{
				Elt: &Name{Id: "x"},
				Generators: []*Comprehension{
					{Target: &Constant{Value: Int(1)}, Iter: &Name{Id: "xs"}},
				},
			}},
		}}
		require.ErrorIs(t, Validate(m), ErrNotAssignable)
	})
}

func TestValidateKeywordArgumentName(t *testing.T) {
	t.Run("attribute name fails", func(t *testing.T) {
		m := &Module{Body: []Stmt{
			&ExprStmt{Value: &Call{
				Func: &Name{Id: "f"},
				Keywords: []*KeywordArg{
					{Name: &Attribute{Value: &Name{Id: "a"}, Attr: "b"}, Value: &Constant{Value: Int(1)}},
				},
			}},
		}}
		err := Validate(m)
		require.ErrorIs(t, err, ErrArgumentMustBeName)
		assert.Equal(t, "Argument must be a name", err.Error())
	})

	t.Run("plain name succeeds", func(t *testing.T) {
		m := &Module{Body: []Stmt{
			&ExprStmt{Value: &Call{
				Func: &Name{Id: "f"},
				Keywords: []*KeywordArg{
					{Name: &Name{Id: "key"}, Value: &Constant{Value: Int(1)}},
				},
			}},
		}}
		require.NoError(t, Validate(m))
	})

	t.Run("mapping unpacking succeeds", func(t *testing.T) {
		m := &Module{Body: []Stmt{
			&ExprStmt{Value: &Call{
				Func:     &Name{Id: "f"},
				Keywords: []*KeywordArg{{Name: nil, Value: &Name{Id: "kwargs"}}},
			}},
		}}
		require.NoError(t, Validate(m))
	})

	t.Run("class keywords checked", func(t *testing.T) {
		m := &Module{Body: []Stmt{
			&ClassDef{
				Name: "C",
				Keywords: []*KeywordArg{
					{Name: &Constant{Value: Str("metaclass")}, Value: &Name{Id: "Meta"}},
				},
				Body: []Stmt{&Pass{}},
			},
		}}
		require.ErrorIs(t, Validate(m), ErrArgumentMustBeName)
	})
}

func TestValidateFirstErrorWins(t *testing.T) {
	// Two violations in document order: the earlier one is reported.
	m := &Module{Body: []Stmt{
		&Assign{Targets: []Expr{&Constant{Value: Int(1)}}, Value: &Name{Id: "x"}},
		&FunctionDef{
			Name: "f",
			Args: &Arguments{Args: []*Arg{{Name: "a"}, {Name: "a"}}},
			Body: []Stmt{&Pass{}},
		},
	}}
	require.ErrorIs(t, Validate(m), ErrNotAssignable)

	// Swapped order: the duplicate argument is found first.
	m = &Module{Body: []Stmt{
		&FunctionDef{
			Name: "f",
			Args: &Arguments{Args: []*Arg{{Name: "a"}, {Name: "a"}}},
			Body: []Stmt{&Pass{}},
		},
		&Assign{Targets: []Expr{&Constant{Value: Int(1)}}, Value: &Name{Id: "x"}},
	}}
	require.ErrorIs(t, Validate(m), ErrDuplicateArgument)
}

func TestValidateAnnotationsUnrestricted(t *testing.T) {
	// Any expression is accepted as a type annotation.
	m := &Module{Body: []Stmt{
		&AnnAssign{
			Target:     &Name{Id: "x"},
			Annotation: &BinOp{Left: &Constant{Value: Int(1)}, Op: "+", Right: &Constant{Value: Int(2)}},
		},
		&FunctionDef{
			Name: "f",
			Args: &Arguments{Args: []*Arg{
				{Name: "a", Annotation: &Lambda{Args: &Arguments{}, Body: &Constant{Value: Int(0)}}},
			}},
			Returns: &IfExpr{Test: &Name{Id: "c"}, Body: &Name{Id: "int"}, OrElse: &Name{Id: "str"}},
			Body:    []Stmt{&Pass{}},
		},
	}}
	require.NoError(t, Validate(m))
}

func TestValidateNestingTooDeep(t *testing.T) {
	target := Expr(&Name{Id: "x"})
	for i := 0; i < 10; i++ {
		target = &Tuple{Elts: []Expr{target}}
	}
	m := &Module{Body: []Stmt{&Assign{Targets: []Expr{target}, Value: &Name{Id: "v"}}}}

	require.ErrorIs(t, ValidateWith(m, Options{MaxDepth: 5}), ErrNestingTooDeep)
	require.NoError(t, ValidateWith(m, Options{MaxDepth: 50}))
}

func TestValidateIdempotent(t *testing.T) {
	m := &Module{Body: []Stmt{
		&Assign{Targets: []Expr{&Constant{Value: Int(1)}}, Value: &Name{Id: "x"}},
	}}
	first := Validate(m)
	second := Validate(m)
	assert.Equal(t, first, second)
}

func TestCheckChainStopsAtFirstError(t *testing.T) {
	m := &Module{Body: []Stmt{
		&Assign{Targets: []Expr{&Constant{Value: Int(1)}}, Value: &Name{Id: "x"}},
	}}
	ran := false
	chain := CheckChain{
		Structural(Options{}),
		checkFunc{name: "later", fn: func(*Module) error { ran = true; return nil }},
	}
	require.ErrorIs(t, chain.Run(m), ErrNotAssignable)
	assert.False(t, ran, "later checks should not run after a failure")
}
