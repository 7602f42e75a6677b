package regex

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestStrategy(t *testing.T) {
	tests := map[string]struct {
		givenRe      string
		givenFlags   Flags
		wantStrategy Strategy
		wantPrefix   []byte
	}{
		"single byte":       {givenRe: "a", wantStrategy: StrategySample, wantPrefix: []byte("a")},
		"fixed string":      {givenRe: "hello", wantStrategy: StrategySample, wantPrefix: []byte("hello")},
		"escaped literals":  {givenRe: `a\.b`, wantStrategy: StrategySample, wantPrefix: []byte("a.b")},
		"anchored string":   {givenRe: "^abc$", wantStrategy: StrategySample, wantPrefix: []byte("abc")},
		"prefix then class": {givenRe: `abc\d+`, wantStrategy: StrategyPrefixed, wantPrefix: []byte("abc")},
		"prefix then loop":  {givenRe: "a+", wantStrategy: StrategyPrefixed, wantPrefix: []byte("a")},
		"shared first byte": {givenRe: "ab|ac", wantStrategy: StrategyPrefixed, wantPrefix: []byte("a")},
		"unrolled prefix":   {givenRe: "x{3}y*", wantStrategy: StrategyPrefixed, wantPrefix: []byte("xxx")},
		"no prefix":         {givenRe: "x*abc", wantStrategy: StrategyPlain},
		"class first":       {givenRe: "[ab]c", wantStrategy: StrategyPlain},
		"folded":            {givenRe: "abc", givenFlags: IgnoreCase, wantStrategy: StrategyPlain},
		"whole word":        {givenRe: "abc", givenFlags: WholeWord, wantStrategy: StrategyWord},
		"optional tail":     {givenRe: "abc?", wantStrategy: StrategyPrefixed, wantPrefix: []byte("ab")},
		"nullable":          {givenRe: "a?", wantStrategy: StrategyPlain},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			// when
			re, err := CompileFlags(tt.givenRe, tt.givenFlags)
			if err != nil {
				t.Fatalf("CompileFlags: %v", err)
			}

			// then
			if d := cmp.Diff(tt.wantStrategy.String(), re.Strategy().String()); d != "" {
				t.Errorf("got diff (-want +got):\n%s", d)
			}
			if d := cmp.Diff(tt.wantPrefix, re.Prefix()); d != "" {
				t.Errorf("got diff (-want +got):\n%s", d)
			}
		})
	}
}

func TestLiteralIndex(t *testing.T) {
	haystack := []byte(strings.Repeat("abcabdabeabfXYZ0123456789-", 20) + "the quick brown fox jumps over the lazy dog")
	needles := []string{
		"a",
		"g",
		"Q",
		"dog",
		"ab",
		"zz",
		"abf",
		"lazy",
		"abdabe",
		"0123456789",
		"XYZ0123456789-ab",
		"9-abcabdabeabfXYZ",
		"quick brown fox jumps over the lazy dog",
		"quick brown fox jumps over the lazy cat",
	}

	for _, needle := range needles {
		t.Run(needle, func(t *testing.T) {
			l := newLiteral([]byte(needle))
			for _, p := range []int{0, 1, 7, 100, len(haystack) - len(needle)} {
				// when
				got := l.index(haystack, p, len(haystack))

				// then
				want := bytes.Index(haystack[p:], []byte(needle))
				if want >= 0 {
					want += p
				}
				if got != want {
					t.Errorf("index from %d: got %d, want %d", p, got, want)
				}
			}
		})
	}
}

func TestLiteralWindowEnd(t *testing.T) {
	tests := map[string]struct {
		givenNeedle string
		givenInput  string
		givenEnd    int
		want        int
	}{
		"byte at end":          {givenNeedle: "x", givenInput: "aaax", givenEnd: 4, want: 3},
		"byte past end":        {givenNeedle: "x", givenInput: "aaax", givenEnd: 3, want: -1},
		"short at end":         {givenNeedle: "xy", givenInput: "aaxy", givenEnd: 4, want: 2},
		"short cut by end":     {givenNeedle: "xy", givenInput: "aaxy", givenEnd: 3, want: -1},
		"sunday at end":        {givenNeedle: "wxyz", givenInput: "aaaawxyz", givenEnd: 8, want: 4},
		"sunday cut by end":    {givenNeedle: "wxyz", givenInput: "aaaawxyz", givenEnd: 7, want: -1},
		"window equals needle": {givenNeedle: "wxyz", givenInput: "wxyz", givenEnd: 4, want: 0},
		"long at end":          {givenNeedle: "0123456789abcdefgh", givenInput: "--0123456789abcdefgh", givenEnd: 20, want: 2},
		"long cut by end":      {givenNeedle: "0123456789abcdefgh", givenInput: "--0123456789abcdefgh", givenEnd: 19, want: -1},
		"window shorter":       {givenNeedle: "abc", givenInput: "ab", givenEnd: 2, want: -1},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			// when
			l := newLiteral([]byte(tt.givenNeedle))
			got := l.index([]byte(tt.givenInput), 0, tt.givenEnd)

			// then
			if d := cmp.Diff(tt.want, got); d != "" {
				t.Errorf("got diff (-want +got):\n%s", d)
			}
		})
	}
}

func TestFinderKinds(t *testing.T) {
	tests := map[string]struct {
		givenLen int
		want     finder
	}{
		"one":       {givenLen: 1, want: findByte},
		"two":       {givenLen: 2, want: findVerify},
		"three":     {givenLen: 3, want: findVerify},
		"four":      {givenLen: 4, want: findSunday},
		"sixteen":   {givenLen: 16, want: findSunday},
		"seventeen": {givenLen: 17, want: findLong},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			// when
			l := newLiteral(bytes.Repeat([]byte{'q'}, tt.givenLen))

			// then
			if l.find != tt.want {
				t.Errorf("got finder %d, want %d", l.find, tt.want)
			}
			covered := 0
			for _, c := range l.chunks {
				covered += c.width
			}
			if want := min(tt.givenLen, chunkedLen); covered != want {
				t.Errorf("chunks cover %d bytes, want %d", covered, want)
			}
		})
	}
}
