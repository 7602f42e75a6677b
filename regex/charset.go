package regex

import "math/bits"

const (
	spaceChars = "\t\n\v\f\r "
	wordChars  = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ_abcdefghijklmnopqrstuvwxyz"
)

// charset is a set of byte values.
type charset [4]uint64

func (c *charset) add(b byte) {
	c[b>>6] |= 1 << (b & 63)
}

func (c *charset) addRange(from, to byte) {
	if to < from {
		from, to = to, from
	}
	for b := int(from); b <= int(to); b++ {
		c.add(byte(b))
	}
}

func (c *charset) addString(s string) {
	for i := 0; i < len(s); i++ {
		c.add(s[i])
	}
}

func (c *charset) merge(o *charset) {
	for i := range c {
		c[i] |= o[i]
	}
}

func (c *charset) invert() {
	for i := range c {
		c[i] = ^c[i]
	}
}

func (c *charset) has(b byte) bool {
	return c[b>>6]&(1<<(b&63)) != 0
}

func (c *charset) empty() bool {
	return c[0]|c[1]|c[2]|c[3] == 0
}

func (c *charset) count() int {
	n := 0
	for _, w := range c {
		n += bits.OnesCount64(w)
	}
	return n
}

// bounds returns the smallest and largest member, ok is false for an empty set.
func (c *charset) bounds() (lo, hi byte, ok bool) {
	if c.empty() {
		return 0, 0, false
	}
	i := 0
	for c[i] == 0 {
		i++
	}
	lo = byte(i<<6 + bits.TrailingZeros64(c[i]))
	j := len(c) - 1
	for c[j] == 0 {
		j--
	}
	hi = byte(j<<6 + 63 - bits.LeadingZeros64(c[j]))
	return lo, hi, true
}

// foldCase makes every ASCII letter match both cases.
func (c *charset) foldCase() {
	for b := byte('A'); b <= 'Z'; b++ {
		lower := b + 'a' - 'A'
		if c.has(b) || c.has(lower) {
			c.add(b)
			c.add(lower)
		}
	}
}

func classOf(s string) charset {
	var c charset
	c.addString(s)
	return c
}

func invertedClassOf(s string) charset {
	c := classOf(s)
	c.invert()
	return c
}

func anyByte() charset {
	var c charset
	c.invert()
	return c
}

// perl classes, \d \D \w \W \s \S
var (
	classDigit    = classOf("0123456789")
	classNotDigit = invertedClassOf("0123456789")
	classWord     = classOf(wordChars)
	classNotWord  = invertedClassOf(wordChars)
	classSpace    = classOf(spaceChars)
	classNotSpace = invertedClassOf(spaceChars)
)

func rangeClass(ranges ...[2]byte) charset {
	var c charset
	for _, r := range ranges {
		c.addRange(r[0], r[1])
	}
	return c
}

var posixClasses = map[string]charset{
	"alnum":  rangeClass([2]byte{'a', 'z'}, [2]byte{'A', 'Z'}, [2]byte{'0', '9'}),
	"alpha":  rangeClass([2]byte{'a', 'z'}, [2]byte{'A', 'Z'}),
	"ascii":  rangeClass([2]byte{0x00, 0x7f}),
	"blank":  classOf(" \t"),
	"cntrl":  rangeClass([2]byte{0x00, 0x1f}, [2]byte{0x7f, 0x7f}),
	"digit":  rangeClass([2]byte{'0', '9'}),
	"graph":  rangeClass([2]byte{0x21, 0x7e}),
	"lower":  rangeClass([2]byte{'a', 'z'}),
	"print":  rangeClass([2]byte{0x20, 0x7e}),
	"punct":  classOf("!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"),
	"space":  classOf(spaceChars),
	"upper":  rangeClass([2]byte{'A', 'Z'}),
	"word":   classOf(wordChars),
	"xdigit": rangeClass([2]byte{'A', 'F'}, [2]byte{'a', 'f'}, [2]byte{'0', '9'}),
}

// boundary marks the bytes that end a word in whole-word mode: control bytes,
// space and ASCII punctuation except '_'.
var boundary = func() (t [256]bool) {
	for b := 0; b < 0x20; b++ {
		t[b] = true
	}
	for _, b := range []byte(" !\"#$%&'()*+,-./:;<=>?@[\\]^`{|}~\x7f") {
		t[b] = true
	}
	return t
}()
