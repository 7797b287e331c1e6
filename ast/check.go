package ast

// Check validates a module tree without modifying it.
type Check interface {
	Name() string
	Check(m *Module) error
}

// CheckChain runs checks in order, stopping at the first error.
type CheckChain []Check

// Run executes each check in sequence. Returns nil if all pass.
func (cc CheckChain) Run(m *Module) error {
	for _, c := range cc {
		if err := c.Check(m); err != nil {
			return err
		}
	}
	return nil
}

// checkFunc adapts a named function to the Check interface.
type checkFunc struct {
	name string
	fn   func(*Module) error
}

func (c checkFunc) Name() string          { return c.name }
func (c checkFunc) Check(m *Module) error { return c.fn(m) }

// Structural returns the Check enforcing the legality rules the grammar
// cannot express: parameter-name uniqueness, assignable targets and
// keyword-argument names.
func Structural(opts Options) Check {
	return checkFunc{
		name: "structural",
		fn:   func(m *Module) error { return ValidateWith(m, opts) },
	}
}
