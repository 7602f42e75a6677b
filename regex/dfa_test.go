package regex

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestStates(t *testing.T) {
	// when
	re, err := Compile("(a|b)*abb")
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	// then
	want := []State{
		{ID: 0, Positions: []int{0, 1, 2}, Transitions: []Transition{{'a', 1}, {'b', 0}}, Min: 'a', Max: 'b'},
		{ID: 1, Positions: []int{0, 1, 2, 3}, Transitions: []Transition{{'a', 1}, {'b', 2}}, Min: 'a', Max: 'b'},
		{ID: 2, Positions: []int{0, 1, 2, 4}, Transitions: []Transition{{'a', 1}, {'b', 3}}, Min: 'a', Max: 'b'},
		{ID: 3, Accepting: true, Positions: []int{0, 1, 2, 5}, Transitions: []Transition{{'a', 1}, {'b', 0}}, Min: 'a', Max: 'b'},
	}
	if d := cmp.Diff(want, re.States()); d != "" {
		t.Errorf("got diff (-want +got):\n%s", d)
	}
	if got := re.NumStates(); got != 4 {
		t.Errorf("got %d states, want 4", got)
	}
	if re.Strategy() != StrategyPlain {
		t.Errorf("got strategy %v, want plain", re.Strategy())
	}
}

func TestTable(t *testing.T) {
	tests := map[string]struct {
		givenRe string
	}{
		"literal":      {givenRe: "abc"},
		"classes":      {givenRe: `[a-z]+\d*`},
		"alternatives": {givenRe: "(foo|bar|baz)+"},
		"any byte":     {givenRe: "x.y"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			// when
			re, err := Compile(tt.givenRe)
			if err != nil {
				t.Fatalf("Compile: %v", err)
			}

			// then
			d := re.dfa
			if len(d.trans) != 256*d.numStates() {
				t.Fatalf("table has %d cells for %d states", len(d.trans), d.numStates())
			}
			for _, s := range re.States() {
				seen := make(map[byte]bool)
				for _, tr := range s.Transitions {
					if seen[tr.Byte] {
						t.Errorf("state %d has two transitions on %q", s.ID, tr.Byte)
					}
					seen[tr.Byte] = true
					if got := d.next(s.ID, tr.Byte); int(got) != tr.Target {
						t.Errorf("state %d on %q: table says %d, transition says %d", s.ID, tr.Byte, got, tr.Target)
					}
					if tr.Byte < s.Min || tr.Byte > s.Max {
						t.Errorf("state %d: %q outside [%q, %q]", s.ID, tr.Byte, s.Min, s.Max)
					}
				}
				for c := 0; c < 256; c++ {
					if !seen[byte(c)] && d.next(s.ID, byte(c)) != dead {
						t.Errorf("state %d on %q: want dead", s.ID, c)
					}
				}
			}
		})
	}
}

func TestBadCharTable(t *testing.T) {
	// when
	re, err := CompileFlags("ab+c", BadCharTable)
	if err != nil {
		t.Fatalf("CompileFlags: %v", err)
	}
	plain, err := Compile("ab+c")
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	// then
	for s := 0; s < re.NumStates(); s++ {
		for c := 0; c < 256; c++ {
			got := re.dfa.next(s, byte(c))
			switch {
			case c < 'a' || c > 'c':
				if got != fastDead {
					t.Errorf("state %d on %q: got %d, want fast dead", s, c, got)
				}
			default:
				if want := plain.dfa.next(s, byte(c)); got != want {
					t.Errorf("state %d on %q: got %d, want %d", s, c, got, want)
				}
			}
		}
	}

	inputs := []string{"abc", "xxabbbbcxx", "ab-c abc", "zzz", "aabbc"}
	for _, in := range inputs {
		if d := cmp.Diff(plain.SearchString(in, SearchAll), re.SearchString(in, SearchAll)); d != "" {
			t.Errorf("%q: got diff (-want +got):\n%s", in, d)
		}
	}
}

func TestMaxStates(t *testing.T) {
	tests := map[string]struct {
		givenRe   string
		wantError bool
	}{
		// (a|b)*a(a|b){n-1} needs 2^n states
		"two to the seventh": {givenRe: "(a|b)*a(a|b){6}"},
		"two to the eighth":  {givenRe: "(a|b)*a(a|b){7}", wantError: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			// when
			re, err := Compile(tt.givenRe)

			// then
			if tt.wantError {
				if err == nil {
					t.Fatalf("expected ErrTooManyStates, got %d states", re.NumStates())
				}
				return
			}
			if err != nil {
				t.Fatalf("Compile: %v", err)
			}
			if got := re.NumStates(); got > MaxStates {
				t.Errorf("got %d states, want at most %d", got, MaxStates)
			}
		})
	}
}
