// Package scanner provides string-boundary-aware scanning over the raw
// text of Python formatted string literals. It encapsulates the tracking
// of single- and double-quoted nested string literals plus backslash
// escapes, so the replacement-field scan does not re-implement this logic
// for every split point it looks for.
package scanner

// closingKind tracks which type of string delimiter was just closed.
type closingKind byte

const (
	noClosing     closingKind = iota
	closingDouble             // just closed a "..." string
	closingSingle             // just closed a '...' string
)

// CodeScanner iterates byte-by-byte over literal text, tracking nested
// string boundaries (double-quoted, single-quoted) and escape sequences.
// Callers check InString() instead of maintaining their own
// inDouble/inSingle/escaped flags.
//
// InString() returns true for the entire string span including both
// opening and closing delimiters, matching the field scanner's convention
// of skipping all bytes that are part of nested string literals.
type CodeScanner struct {
	src     string
	pos     int
	inDbl   bool
	inSgl   bool
	escaped bool
	closing closingKind // set when a closing delimiter is processed
}

// New creates a CodeScanner for the given text.
// Call Next() to advance to the first byte.
func New(src string) *CodeScanner {
	return &CodeScanner{src: src, pos: -1}
}

// Next advances to the next byte, updating string/escape state.
// Returns the byte and true, or (0, false) at end of input.
func (s *CodeScanner) Next() (byte, bool) {
	s.closing = noClosing
	s.pos++
	if s.pos >= len(s.src) {
		return 0, false
	}
	ch := s.src[s.pos]

	if s.escaped {
		s.escaped = false
		return ch, true
	}
	if ch == '\\' && (s.inDbl || s.inSgl) {
		s.escaped = true
		return ch, true
	}
	if ch == '"' && !s.inSgl {
		if s.inDbl {
			s.closing = closingDouble
		}
		s.inDbl = !s.inDbl
	} else if ch == '\'' && !s.inDbl {
		if s.inSgl {
			s.closing = closingSingle
		}
		s.inSgl = !s.inSgl
	}

	return ch, true
}

// InString reports whether the current position is inside a nested string
// literal, including both opening and closing delimiters.
func (s *CodeScanner) InString() bool {
	return s.inDbl || s.inSgl || s.closing != noClosing
}

// InCode reports whether the current position is outside all nested
// string literals.
func (s *CodeScanner) InCode() bool { return !s.InString() }

// Pos returns the current byte offset (the position of the last byte
// returned by Next). Returns -1 before the first call to Next.
func (s *CodeScanner) Pos() int { return s.pos }

// Peek returns the next byte without advancing, or (0, false) at end.
func (s *CodeScanner) Peek() (byte, bool) {
	if s.pos+1 >= len(s.src) {
		return 0, false
	}
	return s.src[s.pos+1], true
}

// IsOpenBracket reports whether ch is an opening bracket/paren/brace.
func IsOpenBracket(ch byte) bool {
	return ch == '(' || ch == '[' || ch == '{'
}

// IsCloseBracket reports whether ch is a closing bracket/paren/brace.
func IsCloseBracket(ch byte) bool {
	return ch == ')' || ch == ']' || ch == '}'
}

// FindTopLevel scans s for a byte matching pred at bracket depth 0,
// outside all nested string literals. Returns the byte offset or -1.
//
// This covers the splits the replacement-field parser performs: the
// conversion '!' and the format-spec ':' must not be found inside nested
// brackets or string literals.
func FindTopLevel(s string, pred func(ch byte) bool) int {
	depth := 0
	sc := New(s)
	for ch, ok := sc.Next(); ok; ch, ok = sc.Next() {
		if sc.InString() {
			continue
		}
		if IsOpenBracket(ch) {
			depth++
		} else if IsCloseBracket(ch) {
			depth--
		}
		if depth == 0 && pred(ch) {
			return sc.Pos()
		}
	}
	return -1
}

// FindFieldEnd scans s from offset from for the '}' closing a replacement
// field, honoring {}/()/[] nesting and nested string literals. Returns
// the byte offset of the closing brace, or -1 if the field never closes.
func FindFieldEnd(s string, from int) int {
	depth := 0
	sc := New(s[from:])
	for ch, ok := sc.Next(); ok; ch, ok = sc.Next() {
		if sc.InString() {
			continue
		}
		switch {
		case IsOpenBracket(ch):
			depth++
		case ch == '}' && depth == 0:
			return from + sc.Pos()
		case IsCloseBracket(ch):
			depth--
		}
	}
	return -1
}
