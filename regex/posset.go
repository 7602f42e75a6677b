package regex

import "github.com/bits-and-blooms/bitset"

// posSet is a set of pattern positions. All sets built for one pattern share
// the same length so that equality compares contents only.
type posSet struct {
	bits *bitset.BitSet
}

func newPosSet(n int) posSet {
	return posSet{bits: bitset.New(uint(n))}
}

func (s posSet) add(p int) {
	s.bits.Set(uint(p))
}

func (s posSet) has(p int) bool {
	return s.bits.Test(uint(p))
}

func (s posSet) merge(o posSet) {
	s.bits.InPlaceUnion(o.bits)
}

func (s posSet) equal(o posSet) bool {
	return s.bits.Equal(o.bits)
}

func (s posSet) empty() bool {
	return s.bits.None()
}

func (s posSet) clone() posSet {
	return posSet{bits: s.bits.Clone()}
}

// first returns the lowest position, -1 if the set is empty.
func (s posSet) first() int {
	p, ok := s.bits.NextSet(0)
	if !ok {
		return -1
	}
	return int(p)
}

// last returns the highest position, -1 if the set is empty.
func (s posSet) last() int {
	r := -1
	s.each(func(p int) { r = p })
	return r
}

func (s posSet) each(fn func(p int)) {
	for p, ok := s.bits.NextSet(0); ok; p, ok = s.bits.NextSet(p + 1) {
		fn(int(p))
	}
}

func (s posSet) slice() []int {
	out := make([]int, 0, s.bits.Count())
	s.each(func(p int) { out = append(out, p) })
	return out
}
