package regex

// State describes one row of the compiled automaton.
type State struct {
	ID          int
	Accepting   bool
	Positions   []int // pattern positions the state stands for
	Transitions []Transition
	Min         byte // smallest byte with a transition
	Max         byte // largest byte with a transition
}

type Transition struct {
	Byte   byte
	Target int
}

// NumStates returns the number of automaton states, 0 if re is not compiled.
func (re *Regex) NumStates() int {
	if !re.Compiled() {
		return 0
	}
	return re.dfa.numStates()
}

// States returns a description of every automaton state in id order. State 0
// is the start state.
func (re *Regex) States() []State {
	if !re.Compiled() {
		return nil
	}
	out := make([]State, 0, len(re.dfa.states))
	for _, s := range re.dfa.states {
		st := State{
			ID:        s.id,
			Accepting: s.accept,
			Positions: s.set.slice(),
			Min:       s.min,
			Max:       s.max,
		}
		for _, dl := range s.deltas {
			st.Transitions = append(st.Transitions, Transition{Byte: dl.input, Target: int(dl.id)})
		}
		out = append(out, st)
	}
	return out
}

// Prefix returns the literal every match starts with, nil if there is none.
func (re *Regex) Prefix() []byte {
	if !re.Compiled() || re.lit == nil {
		return nil
	}
	return append([]byte(nil), re.lit.bytes...)
}

// Strategy returns the matching routine chosen at compile time.
func (re *Regex) Strategy() Strategy {
	if re == nil {
		return StrategyNone
	}
	return re.strategy
}

// AcceptsEmpty reports whether the pattern matches the empty string. Empty
// matches are never reported by Match or Search.
func (re *Regex) AcceptsEmpty() bool {
	return re.Compiled() && re.dfa.accept[0]
}
