// Package regex compiles a regular expression into a deterministic automaton
// over bytes and uses it to match and search buffers in linear time.
//
// A pattern is parsed into a syntax tree whose leaves are numbered positions.
// first, last and follow sets over those positions give an automaton without
// epsilon moves, which a subset construction turns into a dense table of at
// most MaxStates rows. Patterns that start with, or consist of, a fixed
// string are searched for with a literal scan before the table takes over.
//
// There are no capture groups, backreferences or lookaround.
package regex

// missing and I want to add:
// potentially: a wider table encoding for automata above MaxStates
// potentially: multiline search where '$' also matches before each separator without splitting

import (
	"strconv"
	"strings"
)

// Flags alter how a pattern compiles and matches.
type Flags uint

const (
	// MatchBegin anchors matches at the start of the window, like a leading '^'
	MatchBegin Flags = 1 << iota
	// MatchEnd anchors matches at the end of the window, like a trailing '$'
	MatchEnd
	// MatchMin returns the shortest match at a start instead of the longest
	MatchMin
	// IgnoreCase folds ASCII letters
	IgnoreCase
	// WholeWord only accepts matches delimited by boundary bytes
	WholeWord

	// BadCharTable marks bytes that appear nowhere in the pattern in every
	// row of the table so that an attempt stops on them at once
	BadCharTable Flags = 1 << 10
)

// Strategy is the matching routine chosen for a compiled pattern.
type Strategy uint8

const (
	StrategyNone     Strategy = iota // not compiled
	StrategyPlain                    // table only
	StrategyWord                     // table with word boundaries
	StrategySample                   // the pattern is a fixed string
	StrategyPrefixed                 // literal scan for a fixed prefix, then the table
)

func (s Strategy) String() string {
	switch s {
	case StrategyPlain:
		return "plain"
	case StrategyWord:
		return "word"
	case StrategySample:
		return "sample"
	case StrategyPrefixed:
		return "prefixed"
	}
	return "none"
}

// Regex is a compiled pattern. It is safe for concurrent use once compiled.
// The zero value is an uncompiled Regex that matches nothing.
type Regex struct {
	pattern  string
	flags    Flags
	begin    bool
	end      bool
	min      bool
	strategy Strategy
	dfa      *dfa
	lit      *literal
}

// Compile compiles re with no flags.
func Compile(re string) (*Regex, error) {
	return CompileFlags(re, 0)
}

// CompileFlags compiles re. A leading '^' or trailing '$' in re has the
// same effect as MatchBegin or MatchEnd. On failure the error is an *Error.
func CompileFlags(re string, flags Flags) (*Regex, error) {
	p, err := parse(re)
	if err == nil {
		var t *tree
		t, err = buildTree(p, flags&IgnoreCase != 0)
		if err == nil {
			var d *dfa
			d, err = buildDFA(t, flags&BadCharTable != 0)
			if err == nil {
				return newRegex(re, flags, p, d), nil
			}
		}
	}
	if e, ok := err.(*Error); ok {
		e.Pattern = re
	}
	return nil, err
}

// MustCompile is like CompileFlags but panics if re does not compile.
func MustCompile(re string, flags Flags) *Regex {
	r, err := CompileFlags(re, flags)
	if err != nil {
		panic(err)
	}
	return r
}

func newRegex(re string, flags Flags, p *parsed, d *dfa) *Regex {
	r := &Regex{
		pattern: re,
		flags:   flags,
		begin:   p.begin || flags&MatchBegin != 0,
		end:     p.end || flags&MatchEnd != 0,
		min:     flags&MatchMin != 0,
		dfa:     d,
	}

	if flags&WholeWord != 0 {
		r.strategy = StrategyWord
		return r
	}

	prefix, sample := literalPrefix(d)
	switch {
	case sample:
		r.strategy = StrategySample
	case len(prefix) > 0:
		r.strategy = StrategyPrefixed
	default:
		r.strategy = StrategyPlain
	}
	if len(prefix) > 0 {
		r.lit = newLiteral(prefix)
	}
	return r
}

// Compiled reports whether re holds a compiled pattern.
func (re *Regex) Compiled() bool {
	return re != nil && re.strategy != StrategyNone
}

// String returns the source pattern.
func (re *Regex) String() string {
	if re == nil {
		return ""
	}
	return re.pattern
}

// Flags returns the flags re was compiled with.
func (re *Regex) Flags() Flags {
	if re == nil {
		return 0
	}
	return re.flags
}

// Match tries a single match starting at b[0] and returns its end offset, or
// -1 when there is none.
func (re *Regex) Match(b []byte) int {
	if !re.Compiled() || len(b) == 0 {
		return -1
	}
	return re.match(b, 0, len(b))
}

func (re *Regex) MatchString(s string) int {
	return re.Match([]byte(s))
}

// Search returns up to n successive non-overlapping matches in b, all of them
// when n is SearchAll (or any negative number).
func (re *Regex) Search(b []byte, n int) []Match {
	if !re.Compiled() || n == 0 {
		return nil
	}
	c := collector{left: n}
	re.search(b, 0, len(b), &c)
	return c.out
}

func (re *Regex) SearchString(s string, n int) []Match {
	return re.Search([]byte(s), n)
}

// SearchLines searches every line of b on its own, so that anchors refer to
// line boundaries, and returns up to n matches over all lines. Lines are
// separated by sep, "\n" when sep is empty. Offsets refer to b.
func (re *Regex) SearchLines(b []byte, n int, sep []byte) []Match {
	if !re.Compiled() || n == 0 {
		return nil
	}
	if len(sep) == 0 {
		sep = newline
	}
	c := collector{left: n}
	p := 0
	for p < len(b) {
		q := indexSep(b[p:], sep)
		if q < 0 {
			break
		}
		q += p
		if re.search(b, p, q, &c) {
			return c.out
		}
		p = q + len(sep)
	}
	re.search(b, p, len(b), &c)
	return c.out
}

// Find returns the first match in b.
func (re *Regex) Find(b []byte) (Match, bool) {
	m := re.Search(b, 1)
	if len(m) == 0 {
		return Match{}, false
	}
	return m[0], true
}

// FindAll returns every match in b.
func (re *Regex) FindAll(b []byte) []Match {
	return re.Search(b, SearchAll)
}

// Count returns the number of matches in b.
func (re *Regex) Count(b []byte) int {
	return len(re.FindAll(b))
}

// ReplaceAll returns a copy of src with every match replaced by repl, in
// which $0 stands for the matched text.
func (re *Regex) ReplaceAll(src, repl []byte) []byte {
	matches := re.FindAll(src)
	if len(matches) == 0 {
		return append([]byte(nil), src...)
	}
	out := make([]byte, 0, len(src))
	prev := 0
	for _, m := range matches {
		out = append(out, src[prev:m.Begin]...)
		out = expand(out, repl, m.Bytes(src))
		prev = m.End
	}
	return append(out, src[prev:]...)
}

// expand appends template to dst, replacing $0 with match. Other group
// numbers expand to nothing since there are no groups.
func expand(dst, template, match []byte) []byte {
	for i := 0; i < len(template); i++ {
		if template[i] != '$' || i+1 >= len(template) || !isDigit(template[i+1]) {
			dst = append(dst, template[i])
			continue
		}
		j := i + 1
		for j < len(template) && isDigit(template[j]) {
			j++
		}
		if num, err := strconv.Atoi(string(template[i+1 : j])); err == nil && num == 0 {
			dst = append(dst, match...)
		}
		i = j - 1
	}
	return dst
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// QuoteMeta escapes every metacharacter in s so that the result matches s
// literally.
func QuoteMeta(s string) string {
	var b strings.Builder
	b.Grow(2 * len(s))
	for i := 0; i < len(s); i++ {
		if strings.IndexByte(`\{}[]().*?+|-^$/`, s[i]) >= 0 {
			b.WriteByte('\\')
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
