package regex

// The matchers below run one attempt starting at b[p] and never read at or
// past e. They return the end offset of the accepted match or -1. A match
// always consumes at least one byte.

func (re *Regex) match(b []byte, p, e int) int {
	switch re.strategy {
	case StrategySample:
		return re.matchSample(b, p, e)
	case StrategyWord:
		return re.matchWord(b, p, e)
	case StrategyPlain, StrategyPrefixed:
		return re.run(b, 0, p, e, -1)
	}
	return -1
}

// run continues from state s at b[x:e]. r is the end already accepted before
// x, or -1. Greedy keeps going to the last accepted end, minimal stops at the
// first one.
func (re *Regex) run(b []byte, s, x, e, r int) int {
	trans, accept := re.dfa.trans, re.dfa.accept
	for x < e {
		s = int(trans[s<<8|int(b[x])])
		x++
		if s >= fastDead {
			break
		}
		if accept[s] && (!re.end || x == e) {
			r = x
			if re.min {
				break
			}
		}
	}
	return r
}

// matchWord is run with the added rule that a match must be followed by a
// boundary byte or the end of the window.
func (re *Regex) matchWord(b []byte, p, e int) int {
	trans, accept := re.dfa.trans, re.dfa.accept
	s, r := 0, -1
	for p < e {
		s = int(trans[s<<8|int(b[p])])
		p++
		if s >= fastDead {
			break
		}
		if !accept[s] {
			continue
		}
		if p == e || (!re.end && boundary[b[p]]) {
			r = p
			if re.min {
				break
			}
		}
	}
	return r
}

func (re *Regex) matchSample(b []byte, p, e int) int {
	n := len(re.lit.bytes)
	if e-p < n || !re.lit.equalAt(b, p) {
		return -1
	}
	if re.end && p+n != e {
		return -1
	}
	return p + n
}

// afterPrefix extends a prefix occurrence at b[q:] through the rest of the
// automaton.
func (re *Regex) afterPrefix(b []byte, q, e int) int {
	n := len(re.lit.bytes)
	x := q + n
	r := -1
	if re.dfa.accept[n] && (!re.end || x == e) {
		r = x
		if re.min {
			return r
		}
	}
	return re.run(b, n, x, e, r)
}
