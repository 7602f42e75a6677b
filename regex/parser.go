package regex

import "strings"

// maxRepeat bounds m and n in {m,n}.
const maxRepeat = 1000

type itemType uint8

const (
	itemChar    itemType = iota // literal byte
	itemEscChar                 // escaped literal byte
	itemClass                   // \d, '.', [...], ...
	itemStar
	itemPlus
	itemQuest
	itemRange // {m,n}
	itemBegin // start of expression, never emitted
	itemLParen
	itemOr
	itemCat
	itemRParen
	itemLBracket
	itemRBracket
)

type item struct {
	typ itemType
	ch  byte
	set charset
	min int
	max int // -1 for {m,}
	pos int
}

func (it *item) isAtom() bool {
	return it.typ <= itemClass
}

func (it *item) isLiteral() bool {
	return it.typ == itemChar || it.typ == itemEscChar
}

// parsed is the validated item stream of a pattern in infix order with every
// concatenation explicit and every repetition range unrolled.
type parsed struct {
	items []item
	begin bool
	end   bool
	atoms int
}

func parse(re string) (*parsed, error) {
	body, begin, end := stripAnchors(re)
	if len(body) == 0 {
		return nil, newError(ErrEmpty, -1)
	}

	offset := 0
	if begin {
		offset = 1
	}
	tokens, hasRange, err := tokenize(body, offset)
	if err != nil {
		return nil, err
	}

	items, err := resolve(tokens, len(re))
	if err != nil {
		return nil, err
	}

	if err := checkParens(items); err != nil {
		return nil, err
	}

	if hasRange {
		items, err = expandRanges(items)
		if err != nil {
			return nil, err
		}
	}

	p := &parsed{items: items, begin: begin, end: end}
	for i := range items {
		if items[i].isAtom() {
			p.atoms++
		}
	}
	return p, nil
}

// stripAnchors removes a leading '^' and an unescaped trailing '$'.
func stripAnchors(re string) (body string, begin, end bool) {
	if len(re) > 0 && re[0] == '^' {
		begin = true
		re = re[1:]
	}
	if len(re) > 0 && re[len(re)-1] == '$' {
		slashes := 0
		for i := len(re) - 2; i >= 0 && re[i] == '\\'; i-- {
			slashes++
		}
		if slashes%2 == 0 {
			end = true
			re = re[:len(re)-1]
		}
	}
	return re, begin, end
}

// tokenize turns the pattern body into raw items. Operator characters inside
// a bracket set are literals.
func tokenize(re string, offset int) (items []item, hasRange bool, err error) {
	inSet := false
	for i := 0; i < len(re); i++ {
		pos := offset + i
		c := re[i]
		switch {
		case c == '\\':
			it, cons, err := parseEscape(re, i)
			if err != nil {
				err.Pos += offset
				return nil, false, err
			}
			it.pos = pos
			items = append(items, it)
			i += cons - 1
		case inSet && c == ']':
			items = append(items, item{typ: itemRBracket, pos: pos})
			inSet = false
		case inSet && c == '[' && i+1 < len(re) && re[i+1] == ':':
			set, cons, ok := parsePosixCharSet(re, i)
			if !ok {
				return nil, false, newError(ErrSet, pos)
			}
			items = append(items, item{typ: itemClass, set: set, pos: pos})
			i += cons - 1
		case inSet:
			items = append(items, item{typ: itemChar, ch: c, pos: pos})
		case c == '[':
			items = append(items, item{typ: itemLBracket, pos: pos})
			inSet = true
		case c == '(':
			items = append(items, item{typ: itemLParen, pos: pos})
		case c == ')':
			items = append(items, item{typ: itemRParen, pos: pos})
		case c == '|':
			items = append(items, item{typ: itemOr, pos: pos})
		case c == '*':
			items = append(items, item{typ: itemStar, pos: pos})
		case c == '+':
			items = append(items, item{typ: itemPlus, pos: pos})
		case c == '?':
			items = append(items, item{typ: itemQuest, pos: pos})
		case c == '.':
			items = append(items, item{typ: itemClass, set: anyByte(), pos: pos})
		case c == '{':
			mi, ma, cons, ok := parseQuantifier(re, i)
			if !ok {
				// not a well-formed range, '{' is a literal
				items = append(items, item{typ: itemChar, ch: c, pos: pos})
				continue
			}
			if (ma != -1 && ma < mi) || ma == 0 || mi > maxRepeat || ma > maxRepeat {
				return nil, false, newError(ErrRange, pos)
			}
			items = append(items, item{typ: itemRange, min: mi, max: ma, pos: pos})
			hasRange = true
			i += cons - 1
		default:
			items = append(items, item{typ: itemChar, ch: c, pos: pos})
		}
	}
	return items, hasRange, nil
}

// parseEscape parses the escape sequence starting at re[i] == '\'.
func parseEscape(re string, i int) (item, int, *Error) {
	if i+1 >= len(re) {
		return item{}, 0, newError(ErrEscape, i)
	}
	c := re[i+1]
	if set, ok := parsePerlCharSet(c); ok {
		return item{typ: itemClass, set: set}, 2, nil
	}
	switch c {
	case '\\', '{', '}', '[', ']', '(', ')', '.', '*', '?', '+', '|', '-', '^', '$', '/':
		return item{typ: itemEscChar, ch: c}, 2, nil
	case 'x':
		if i+3 >= len(re) {
			return item{}, 0, newError(ErrHex, i)
		}
		h0, ok0 := hexValue(re[i+2])
		h1, ok1 := hexValue(re[i+3])
		if !ok0 || !ok1 {
			return item{}, 0, newError(ErrHex, i)
		}
		return item{typ: itemEscChar, ch: h0<<4 | h1}, 4, nil
	}
	if e, ok := escapedChar(c); ok {
		return item{typ: itemEscChar, ch: e}, 2, nil
	}
	return item{}, 0, newError(ErrEscape, i)
}

// supported: \w, \W, \d, \D, \s, \S
func parsePerlCharSet(c byte) (charset, bool) {
	switch c {
	case 'd':
		return classDigit, true
	case 'D':
		return classNotDigit, true
	case 'w':
		return classWord, true
	case 'W':
		return classNotWord, true
	case 's':
		return classSpace, true
	case 'S':
		return classNotSpace, true
	}
	return charset{}, false
}

// [:name:] inside a bracket set, re[i] == '['
func parsePosixCharSet(re string, i int) (charset, int, bool) {
	end := strings.Index(re[i+2:], ":]")
	if end < 0 {
		return charset{}, 0, false
	}
	set, ok := posixClasses[re[i+2:i+2+end]]
	return set, end + 4, ok
}

// {m}, {m,}, {m,n} and {,n} starting at re[i] == '{'. ok is false when the
// text is not a range at all.
func parseQuantifier(re string, i int) (mi int, ma int, consumed int, ok bool) {
	j := i + 1
	mi, j, hasMin := parseCount(re, j)
	if j >= len(re) {
		return 0, 0, 0, false
	}
	switch re[j] {
	case '}':
		if !hasMin {
			return 0, 0, 0, false
		}
		return mi, mi, j - i + 1, true
	case ',':
		ma, k, hasMax := parseCount(re, j+1)
		if k >= len(re) || re[k] != '}' || (!hasMin && !hasMax) {
			return 0, 0, 0, false
		}
		if !hasMax {
			ma = -1
		}
		return mi, ma, k - i + 1, true
	}
	return 0, 0, 0, false
}

// parseCount reads a decimal number, saturating well above maxRepeat.
func parseCount(re string, j int) (n int, next int, ok bool) {
	for j < len(re) && re[j] >= '0' && re[j] <= '9' {
		if n <= maxRepeat {
			n = n*10 + int(re[j]-'0')
		}
		j++
		ok = true
	}
	return n, j, ok
}

func hexValue(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

// parse an ASCII escape sequence from c if there is one (e.g. '\t', '\n', ...)
// should be called if the character preceding c in the input string is '\'
// https://en.wikipedia.org/wiki/Escape_sequences_in_C
func escapedChar(c byte) (byte, bool) {
	switch c {
	case 'a':
		return '\a', true
	case 'e':
		return 0x1b, true
	case 'f':
		return '\f', true
	case 'n':
		return '\n', true
	case 'r':
		return '\r', true
	case 't':
		return '\t', true
	case 'v':
		return '\v', true
	}
	return 0, false
}

// resolve folds bracket sets into class items and makes concatenation
// explicit, rejecting adjacent items that cannot follow each other.
func resolve(tokens []item, patternLen int) ([]item, error) {
	items := make([]item, 0, 2*len(tokens))
	pre := itemBegin
	for i := 0; i < len(tokens); i++ {
		cur := tokens[i]
		if cur.typ == itemLBracket {
			set, end, err := parseBracket(tokens, i)
			if err != nil {
				return nil, err
			}
			cur = item{typ: itemClass, set: set, pos: tokens[i].pos}
			i = end
		}

		switch adjacency[preCategory(pre)][curCategory(cur.typ)] {
		case adjCat:
			items = append(items, item{typ: itemCat, pos: cur.pos})
		case adjErr:
			return nil, newError(ErrSyntax, cur.pos)
		}
		items = append(items, cur)
		pre = cur.typ
	}

	if adjacency[preCategory(pre)][catEnd] == adjErr {
		return nil, newError(ErrSyntax, patternLen)
	}
	return items, nil
}

// [...] and [^...], tokens[i] is the opening bracket. Returns the index of
// the closing bracket.
func parseBracket(tokens []item, i int) (charset, int, error) {
	open := tokens[i].pos
	q := i + 1
	for q < len(tokens) && tokens[q].typ != itemRBracket {
		q++
	}
	p := i + 1
	if q >= len(tokens) || q == p {
		return charset{}, 0, newError(ErrSet, open)
	}

	negate := false
	if tokens[p].typ == itemChar && tokens[p].ch == '^' {
		if p+1 == q {
			return charset{}, 0, newError(ErrSet, open)
		}
		negate = true
		p++
	}

	var set charset
	lo := p
	for j := p; j < q; j++ {
		t := &tokens[j]
		switch t.typ {
		case itemChar:
			if t.ch != '-' {
				set.add(t.ch)
				continue
			}
			// '-' between two literal bytes is a range, anywhere else a literal
			if j > lo && j+1 < q && tokens[j-1].isLiteral() && tokens[j+1].isLiteral() {
				set.addRange(tokens[j-1].ch, tokens[j+1].ch)
			} else {
				set.add('-')
			}
		case itemEscChar:
			set.add(t.ch)
		case itemClass:
			set.merge(&t.set)
		default:
			return charset{}, 0, newError(ErrSet, t.pos)
		}
	}

	if negate {
		set.invert()
	}
	return set, q, nil
}

func checkParens(items []item) error {
	depth := 0
	for i := range items {
		switch items[i].typ {
		case itemLParen:
			depth++
		case itemRParen:
			depth--
			if depth < 0 {
				return newError(ErrParen, items[i].pos)
			}
		}
	}
	if depth != 0 {
		return newError(ErrParen, -1)
	}
	return nil
}

// expandRanges rewrites X{m,n} as (X X ... X? X? ...) and X{m,} as (X ... X X*).
func expandRanges(items []item) ([]item, error) {
	out := make([]item, 0, len(items))
	seg := 0
	for x := 0; x < len(items); x++ {
		if items[x].typ != itemRange {
			continue
		}

		z := x - 1
		if items[z].typ == itemRParen {
			z = matchingLParen(items, seg, z)
			if z < 0 {
				return nil, newError(ErrRangeNested, items[x].pos)
			}
		}

		out = append(out, items[seg:z]...)
		out = append(out, item{typ: itemLParen, pos: items[z].pos})
		out = appendRepeated(out, items[z:x], items[x].min, items[x].max)
		out = append(out, item{typ: itemRParen, pos: items[x].pos})
		seg = x + 1
	}
	return append(out, items[seg:]...), nil
}

// matchingLParen scans backwards from the ')' at items[rp] and returns the
// index of its '(' or -1 when it lies before from.
func matchingLParen(items []item, from, rp int) int {
	depth := 0
	for i := rp; i >= from; i-- {
		switch items[i].typ {
		case itemRParen:
			depth++
		case itemLParen:
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

func appendRepeated(out, operand []item, mi, ma int) []item {
	cat := item{typ: itemCat, pos: operand[0].pos}
	quest := item{typ: itemQuest, pos: operand[len(operand)-1].pos}
	star := item{typ: itemStar, pos: quest.pos}

	sep := false
	copyOnce := func(suffix ...item) {
		if sep {
			out = append(out, cat)
		}
		out = append(out, operand...)
		out = append(out, suffix...)
		sep = true
	}

	for i := 0; i < mi; i++ {
		copyOnce()
	}
	switch {
	case ma == -1:
		copyOnce(star)
	default:
		for i := mi; i < ma; i++ {
			copyOnce(quest)
		}
	}
	return out
}

// adjacency rule for implicit concatenation
type adjAction uint8

const (
	adjNone adjAction = iota
	adjCat
	adjErr
)

const (
	preAtom = iota
	preQuant
	preOpen // start of expression, '(' or '|'
	preClose
)

const (
	catAtom = iota
	catQuant
	catLParen
	catOr
	catRParen
	catEnd
)

var adjacency = [4][6]adjAction{
	preAtom:  {catAtom: adjCat, catQuant: adjNone, catLParen: adjCat, catOr: adjNone, catRParen: adjNone, catEnd: adjNone},
	preQuant: {catAtom: adjCat, catQuant: adjErr, catLParen: adjCat, catOr: adjNone, catRParen: adjNone, catEnd: adjNone},
	preOpen:  {catAtom: adjNone, catQuant: adjErr, catLParen: adjNone, catOr: adjErr, catRParen: adjErr, catEnd: adjErr},
	preClose: {catAtom: adjCat, catQuant: adjNone, catLParen: adjCat, catOr: adjNone, catRParen: adjNone, catEnd: adjNone},
}

func preCategory(t itemType) int {
	switch {
	case t <= itemClass:
		return preAtom
	case t <= itemRange:
		return preQuant
	case t == itemRParen:
		return preClose
	}
	return preOpen
}

func curCategory(t itemType) int {
	switch {
	case t <= itemClass:
		return catAtom
	case t <= itemRange:
		return catQuant
	case t == itemLParen:
		return catLParen
	case t == itemOr:
		return catOr
	}
	return catRParen
}
