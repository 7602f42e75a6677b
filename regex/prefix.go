package regex

import (
	"bytes"
	"encoding/binary"

	"github.com/coregx/coregex/simd"
)

// finder selects how a literal is located in a buffer.
type finder uint8

const (
	findByte   finder = iota // one byte, memchr
	findVerify               // two or three bytes, memchr on the first then verify
	findSunday               // 4..16 bytes, Sunday skip search with chunked compares
	findLong                 // more than 16 bytes, Sunday with a byte-wise tail
)

// chunkedLen is the longest literal compared with chunks only.
const chunkedLen = 16

type chunk struct {
	off   int
	width int
	want  uint64
}

// literal is a fixed byte string with everything needed to find it fast.
type literal struct {
	bytes  []byte
	find   finder
	chunks []chunk
	shift  [256]int
}

func newLiteral(b []byte) *literal {
	l := &literal{bytes: b}
	n := len(b)
	switch {
	case n == 1:
		l.find = findByte
	case n <= 3:
		l.find = findVerify
	case n <= chunkedLen:
		l.find = findSunday
	default:
		l.find = findLong
	}

	l.chunks = planChunks(b[:min(n, chunkedLen)])
	if n >= 4 {
		for i := range l.shift {
			l.shift[i] = n + 1
		}
		for i, c := range b {
			l.shift[c] = n - i
		}
	}
	return l
}

// planChunks covers b with 8, 4, 2 and 1 byte loads, widest first.
func planChunks(b []byte) []chunk {
	var out []chunk
	off := 0
	for _, w := range []int{8, 4, 2, 1} {
		for len(b)-off >= w {
			out = append(out, chunk{off: off, width: w, want: load(b[off:off+w], w)})
			off += w
		}
	}
	return out
}

func load(b []byte, width int) uint64 {
	switch width {
	case 8:
		return binary.LittleEndian.Uint64(b)
	case 4:
		return uint64(binary.LittleEndian.Uint32(b))
	case 2:
		return uint64(binary.LittleEndian.Uint16(b))
	}
	return uint64(b[0])
}

// equalAt reports whether the literal occurs at b[p:], which must hold at
// least len(l.bytes) bytes.
func (l *literal) equalAt(b []byte, p int) bool {
	for _, c := range l.chunks {
		o := p + c.off
		if load(b[o:o+c.width], c.width) != c.want {
			return false
		}
	}
	if len(l.bytes) > chunkedLen {
		return bytes.Equal(b[p+chunkedLen:p+len(l.bytes)], l.bytes[chunkedLen:])
	}
	return true
}

// index returns the offset of the first occurrence of the literal in b[p:e],
// or -1.
func (l *literal) index(b []byte, p, e int) int {
	n := len(l.bytes)
	if e-p < n {
		return -1
	}
	switch l.find {
	case findByte:
		if i := simd.Memchr(b[p:e], l.bytes[0]); i >= 0 {
			return p + i
		}
		return -1
	case findVerify:
		return l.scanVerify(b, p, e)
	}
	return l.sunday(b, p, e)
}

func (l *literal) scanVerify(b []byte, p, e int) int {
	n := len(l.bytes)
	last := e - n + 1 // candidates start before last
	for p < last {
		i := simd.Memchr(b[p:last], l.bytes[0])
		if i < 0 {
			return -1
		}
		p += i
		if l.equalAt(b, p) {
			return p
		}
		p++
	}
	return -1
}

// sunday is Sunday's quick search: on a mismatch the window moves by the
// shift of the byte just past it.
func (l *literal) sunday(b []byte, p, e int) int {
	n := len(l.bytes)
	for p+n < e {
		if l.equalAt(b, p) {
			return p
		}
		p += l.shift[b[p+n]]
	}
	if p+n == e && l.equalAt(b, p) {
		return p
	}
	return -1
}

// literalPrefix walks the straight chain of states from the start: a state
// belongs to it when it is not accepting and has exactly one transition, to
// the next id. sample is true when the chain ends in the last state, which
// accepts and has no transitions, so the whole pattern is the literal.
func literalPrefix(d *dfa) (prefix []byte, sample bool) {
	n := len(d.states)
	id := 0
	for id < n {
		s := d.states[id]
		if s.accept || len(s.deltas) != 1 || int(s.deltas[0].id) != id+1 {
			break
		}
		prefix = append(prefix, s.deltas[0].input)
		id++
	}
	last := d.states[n-1]
	sample = len(prefix) > 0 && id == n-1 && last.accept && len(last.deltas) == 0
	return prefix, sample
}
