package regex

import "github.com/coregx/coregex/simd"

// SearchAll as the count passed to Search or SearchLines asks for every match.
const SearchAll = -1

// Match is the half-open byte range [Begin, End) of one match in the
// searched buffer.
type Match struct {
	Begin int
	End   int
}

func (m Match) Len() int {
	return m.End - m.Begin
}

// Bytes returns the matched bytes of src without copying.
func (m Match) Bytes(src []byte) []byte {
	return src[m.Begin:m.End:m.End]
}

// Text returns a copy of the matched bytes of src.
func (m Match) Text(src []byte) string {
	return string(src[m.Begin:m.End])
}

// collector gathers results until the requested count is reached.
type collector struct {
	out  []Match
	left int // < 0 for unbounded
}

// add records a match and reports whether enough were found.
func (c *collector) add(begin, end int) bool {
	c.out = append(c.out, Match{Begin: begin, End: end})
	if c.left > 0 {
		c.left--
		return c.left == 0
	}
	return false
}

// search looks for matches in the window b[p:e] and reports whether the
// collector is full.
func (re *Regex) search(b []byte, p, e int, c *collector) bool {
	if p >= e {
		return false
	}
	if re.begin {
		if r := re.match(b, p, e); r >= 0 {
			return c.add(p, r)
		}
		return false
	}
	switch re.strategy {
	case StrategySample:
		return re.searchSample(b, p, e, c)
	case StrategyPrefixed:
		return re.searchPrefixed(b, p, e, c)
	case StrategyWord:
		return re.searchWord(b, p, e, c)
	}
	return re.searchPlain(b, p, e, c)
}

func (re *Regex) searchPlain(b []byte, p, e int, c *collector) bool {
	start := re.dfa.trans[:256]
	for p < e {
		// bytes with no transition out of the start state cannot begin a match
		for p < e && start[b[p]] >= fastDead {
			p++
		}
		if p == e {
			break
		}
		if r := re.run(b, 0, p, e, -1); r >= 0 {
			if c.add(p, r) {
				return true
			}
			p = r
		} else {
			p++
		}
	}
	return false
}

func (re *Regex) searchPrefixed(b []byte, p, e int, c *collector) bool {
	for p < e {
		q := re.lit.index(b, p, e)
		if q < 0 {
			break
		}
		if r := re.afterPrefix(b, q, e); r >= 0 {
			if c.add(q, r) {
				return true
			}
			p = r
		} else {
			p = q + 1
		}
	}
	return false
}

func (re *Regex) searchSample(b []byte, p, e int, c *collector) bool {
	n := len(re.lit.bytes)
	if re.end {
		// the only candidate ends the window
		if q := e - n; q >= p && re.lit.equalAt(b, q) {
			return c.add(q, e)
		}
		return false
	}
	for p < e {
		q := re.lit.index(b, p, e)
		if q < 0 {
			break
		}
		if c.add(q, q+n) {
			return true
		}
		p = q + n
	}
	return false
}

func (re *Regex) searchWord(b []byte, p, e int, c *collector) bool {
	for p < e {
		for p < e && boundary[b[p]] {
			p++
		}
		if p == e {
			break
		}
		if r := re.matchWord(b, p, e); r >= 0 {
			if c.add(p, r) {
				return true
			}
			p = r
		} else {
			for p < e && !boundary[b[p]] {
				p++
			}
		}
	}
	return false
}

var newline = []byte{'\n'}

// indexSep returns the offset of the first sep in b, or -1.
func indexSep(b, sep []byte) int {
	switch len(sep) {
	case 1:
		return simd.Memchr(b, sep[0])
	case 2:
		p := 0
		for p < len(b)-1 {
			i := simd.Memchr(b[p:len(b)-1], sep[0])
			if i < 0 {
				return -1
			}
			p += i
			if b[p+1] == sep[1] {
				return p
			}
			p++
		}
		return -1
	}
	return simd.Memmem(b, sep)
}
