package ast

// Transform rewrites a module tree. Implementations must not mutate the
// input module; unchanged subtrees may be shared between input and output.
type Transform interface {
	Name() string
	Transform(m *Module) (*Module, error)
}

// TransformFunc adapts a named function to the Transform interface.
type TransformFunc struct {
	N string
	F func(*Module) (*Module, error)
}

func (t TransformFunc) Name() string { return t.N }

func (t TransformFunc) Transform(m *Module) (*Module, error) { return t.F(m) }

// Chain composes transforms left-to-right into a single Transform.
// Each transform receives the output of the previous one; the first
// error aborts the chain.
func Chain(transforms ...Transform) Transform {
	return TransformFunc{
		N: "chain",
		F: func(m *Module) (*Module, error) {
			var err error
			for _, t := range transforms {
				m, err = t.Transform(m)
				if err != nil {
					return nil, err
				}
			}
			return m, nil
		},
	}
}

// MapSlice applies fn to each element, stopping at the first error.
// Returns (newSlice, true, nil) if any element changed, or
// (original, false, nil) if all elements are identical. Transform passes
// use it to walk node slices copy-on-write.
func MapSlice[T any](items []T, fn func(T) (T, error)) ([]T, bool, error) {
	var out []T
	modified := false
	for i, item := range items {
		newItem, err := fn(item)
		if err != nil {
			return nil, false, err
		}
		if any(newItem) != any(item) {
			if !modified {
				out = make([]T, len(items))
				copy(out[:i], items[:i])
				modified = true
			}
		}
		if modified {
			out[i] = newItem
		}
	}
	if !modified {
		return items, false, nil
	}
	return out, true, nil
}
