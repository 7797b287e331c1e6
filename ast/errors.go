package ast

// ValidationError reports a structural legality violation found while
// validating a module tree. Validation stops at the first violation.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

// Sentinel validation errors. Validate returns these values directly,
// so errors.Is works by identity.
var (
	// ErrDuplicateArgument is returned when two parameters in one
	// Arguments node share a name, regardless of parameter group.
	ErrDuplicateArgument = &ValidationError{"Duplicate argument in function definition"}

	// ErrNotAssignable is returned when an assignment target is not a
	// Name, Attribute, Subscript, or a Tuple/List of assignable targets.
	ErrNotAssignable = &ValidationError{"Cannot assign to left hand-side"}

	// ErrArgumentMustBeName is returned when a keyword argument's name
	// position holds anything but a plain identifier.
	ErrArgumentMustBeName = &ValidationError{"Argument must be a name"}

	// ErrNestingTooDeep is returned when unpacking-target nesting
	// exceeds the configured depth limit.
	ErrNestingTooDeep = &ValidationError{"Nesting too deep"}
)
