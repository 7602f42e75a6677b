package regex

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestPosSet(t *testing.T) {
	tests := map[string]struct {
		givenAdd  []int
		givenWith []int
		wantFirst int
		wantLast  int
		wantUnion []int
	}{
		"empty": {
			wantFirst: -1,
			wantLast:  -1,
			wantUnion: []int{},
		},
		"single word": {
			givenAdd:  []int{3, 9},
			givenWith: []int{1},
			wantFirst: 3,
			wantLast:  9,
			wantUnion: []int{1, 3, 9},
		},
		"across words": {
			givenAdd:  []int{64, 130, 199},
			givenWith: []int{0, 130},
			wantFirst: 64,
			wantLast:  199,
			wantUnion: []int{0, 64, 130, 199},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			// when
			s := newPosSet(200)
			for _, p := range tt.givenAdd {
				s.add(p)
			}
			o := newPosSet(200)
			for _, p := range tt.givenWith {
				o.add(p)
			}
			before := s.clone()
			s.merge(o)

			// then
			if got := before.first(); got != tt.wantFirst {
				t.Errorf("first: got %d, want %d", got, tt.wantFirst)
			}
			if got := before.last(); got != tt.wantLast {
				t.Errorf("last: got %d, want %d", got, tt.wantLast)
			}
			if d := cmp.Diff(tt.wantUnion, s.slice()); d != "" {
				t.Errorf("got diff (-want +got):\n%s", d)
			}
			if before.empty() != (len(tt.givenAdd) == 0) {
				t.Errorf("empty: got %v", before.empty())
			}
			for _, p := range tt.givenAdd {
				if !s.has(p) {
					t.Errorf("union lost %d", p)
				}
			}
		})
	}
}

func TestPosSetEqual(t *testing.T) {
	a, b := newPosSet(70), newPosSet(70)
	a.add(1)
	a.add(69)
	b.add(69)
	if a.equal(b) {
		t.Errorf("expected different sets")
	}
	b.add(1)
	if !a.equal(b) {
		t.Errorf("expected equal sets")
	}
	c := a.clone()
	c.add(5)
	if a.has(5) {
		t.Errorf("clone shares storage")
	}
}

func TestCharset(t *testing.T) {
	tests := map[string]struct {
		given     charset
		wantCount int
		wantLo    byte
		wantHi    byte
		wantOk    bool
	}{
		"empty":   {given: charset{}},
		"digits":  {given: classDigit, wantCount: 10, wantLo: '0', wantHi: '9', wantOk: true},
		"word":    {given: classWord, wantCount: 63, wantLo: '0', wantHi: 'z', wantOk: true},
		"any":     {given: anyByte(), wantCount: 256, wantLo: 0, wantHi: 0xff, wantOk: true},
		"space":   {given: classSpace, wantCount: 6, wantLo: '\t', wantHi: ' ', wantOk: true},
		"no word": {given: classNotWord, wantCount: 193, wantLo: 0, wantHi: 0xff, wantOk: true},
		"high":    {given: rangeClass([2]byte{0x80, 0x81}), wantCount: 2, wantLo: 0x80, wantHi: 0x81, wantOk: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			// when
			lo, hi, ok := tt.given.bounds()

			// then
			if got := tt.given.count(); got != tt.wantCount {
				t.Errorf("count: got %d, want %d", got, tt.wantCount)
			}
			if lo != tt.wantLo || hi != tt.wantHi || ok != tt.wantOk {
				t.Errorf("bounds: got (%d, %d, %v), want (%d, %d, %v)", lo, hi, ok, tt.wantLo, tt.wantHi, tt.wantOk)
			}
		})
	}
}

func TestBoundary(t *testing.T) {
	for _, c := range []byte(" \t\n.,;:!?()[]{}<>\"'`-+*/\\|&^%$#@=~\x00\x1f\x7f") {
		if !boundary[c] {
			t.Errorf("%q should be a boundary", c)
		}
	}
	for _, c := range []byte("azAZ09_\x80\xff") {
		if boundary[c] {
			t.Errorf("%q should not be a boundary", c)
		}
	}
}
