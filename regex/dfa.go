package regex

// MaxStates is the largest automaton the dense table encoding can hold.
const MaxStates = 128

const (
	dead     = 0xff // no transition
	fastDead = 0xfe // the byte is not accepted anywhere in the pattern
)

type delta struct {
	input byte
	id    uint8
}

// dstate is one deterministic state: the set of positions it stands for.
type dstate struct {
	set    posSet
	id     int
	accept bool
	deltas []delta
	min    byte
	max    byte
}

func (s *dstate) addDelta(c byte, id int) {
	if len(s.deltas) == 0 || c < s.min {
		s.min = c
	}
	if len(s.deltas) == 0 || c > s.max {
		s.max = c
	}
	s.deltas = append(s.deltas, delta{input: c, id: uint8(id)})
}

// dfa is the compiled transition table, one row of 256 next-state ids per state.
type dfa struct {
	trans  []uint8
	accept []bool
	states []*dstate
	cmin   byte
	cmax   byte
}

func (d *dfa) numStates() int {
	return len(d.accept)
}

func (d *dfa) next(s int, c byte) uint8 {
	return d.trans[s<<8|int(c)]
}

// buildDFA runs the subset construction over the follow sets of t, starting
// from first(root).
func buildDFA(t *tree, badChar bool) (*dfa, error) {
	root := &t.nodes[t.root]
	cmin, cmax, ok := root.class.bounds()
	d := &dfa{cmin: cmin, cmax: cmax}

	start := &dstate{set: root.first.clone()}
	start.accept = start.set.has(t.accept)
	d.states = append(d.states, start)

	pending := []*dstate{start}
	for ok && len(pending) > 0 {
		cur := pending[len(pending)-1]
		pending = pending[:len(pending)-1]

		// targets reached from cur, deduplicated for this expansion step
		var targets []posSet
		var inputs [][]byte
		for c := int(cmin); c <= int(cmax); c++ {
			next := step(t, cur.set, byte(c))
			if next.empty() {
				continue
			}
			k := indexOf(targets, next)
			if k < 0 {
				targets = append(targets, next)
				inputs = append(inputs, nil)
				k = len(targets) - 1
			}
			inputs[k] = append(inputs[k], byte(c))
		}

		for k, set := range targets {
			id := -1
			for _, s := range d.states {
				if s.set.equal(set) {
					id = s.id
					break
				}
			}
			if id < 0 {
				if len(d.states) >= MaxStates {
					return nil, newError(ErrTooManyStates, -1)
				}
				s := &dstate{set: set, id: len(d.states), accept: set.has(t.accept)}
				d.states = append(d.states, s)
				pending = append(pending, s)
				id = s.id
			}
			for _, c := range inputs[k] {
				cur.addDelta(c, id)
			}
		}
	}

	d.emit(&root.class, badChar)
	return d, nil
}

// step returns the union of follow(p) over every p in s whose class has c.
func step(t *tree, s posSet, c byte) posSet {
	next := newPosSet(t.npos)
	s.each(func(p int) {
		if t.class(p).has(c) {
			next.merge(t.follow[p])
		}
	})
	return next
}

func indexOf(sets []posSet, s posSet) int {
	for i := range sets {
		if sets[i].equal(s) {
			return i
		}
	}
	return -1
}

// emit fills the dense table. With badChar every byte outside the pattern's
// accepted bytes is marked fastDead in every row.
func (d *dfa) emit(accepted *charset, badChar bool) {
	n := len(d.states)
	d.trans = make([]uint8, n<<8)
	d.accept = make([]bool, n)
	for i := range d.trans {
		d.trans[i] = dead
	}
	for _, s := range d.states {
		d.accept[s.id] = s.accept
		row := d.trans[s.id<<8 : (s.id+1)<<8]
		for _, dl := range s.deltas {
			row[dl.input] = dl.id
		}
		if badChar {
			for c := 0; c < 256; c++ {
				if !accepted.has(byte(c)) {
					row[c] = fastDead
				}
			}
		}
	}
}
