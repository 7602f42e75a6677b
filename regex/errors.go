package regex

import "fmt"

// ErrorCode classifies why a pattern failed to compile. An ErrorCode is itself
// an error so that callers can test with errors.Is(err, regex.ErrParen).
type ErrorCode int

const (
	// ErrEmpty is returned for a pattern with nothing to match
	ErrEmpty ErrorCode = iota + 1
	// ErrSet is returned for an unterminated, empty or malformed bracket set
	ErrSet
	// ErrParen is returned for unbalanced parentheses
	ErrParen
	// ErrEscape is returned for an unknown or trailing escape
	ErrEscape
	// ErrHex is returned for \x not followed by two hex digits
	ErrHex
	// ErrRange is returned for a repetition with max < min, {0} or counts above maxRepeat
	ErrRange
	// ErrRangeNested is returned for a repetition applied to a group containing a repetition
	ErrRangeNested
	// ErrSyntax is returned when two adjacent items cannot follow each other
	ErrSyntax
	// ErrTooManyStates is returned when the automaton exceeds MaxStates
	ErrTooManyStates
)

var errorMessages = map[ErrorCode]string{
	ErrEmpty:         "empty pattern",
	ErrSet:           "bad bracket set",
	ErrParen:         "parentheses do not match",
	ErrEscape:        "bad escape",
	ErrHex:           `bad \x escape`,
	ErrRange:         "bad repetition range",
	ErrRangeNested:   "repetition of a group containing a repetition",
	ErrSyntax:        "syntax error",
	ErrTooManyStates: "too many automaton states",
}

func (c ErrorCode) Error() string {
	if m, ok := errorMessages[c]; ok {
		return m
	}
	return fmt.Sprintf("error code %d", int(c))
}

// Error describes a failed compilation.
type Error struct {
	Code    ErrorCode
	Pos     int // byte offset into Pattern, -1 when not tied to a position
	Pattern string
}

func (e *Error) Error() string {
	if e.Pos < 0 {
		return fmt.Sprintf("regex: %s in %q", e.Code, e.Pattern)
	}
	return fmt.Sprintf("regex: %s at %d in %q", e.Code, e.Pos, e.Pattern)
}

func (e *Error) Unwrap() error {
	return e.Code
}

func newError(code ErrorCode, pos int) *Error {
	return &Error{Code: code, Pos: pos}
}
