package regex

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestBuildTree(t *testing.T) {
	type positions struct {
		First    []int
		Last     []int
		Nullable bool
		Follow   [][]int
	}
	tests := map[string]struct {
		givenRe string
		want    positions
	}{
		"classic": {
			// a=0 b=1 a=2 b=3 b=4 accept=5
			givenRe: "(a|b)*abb",
			want: positions{
				First: []int{0, 1, 2},
				Last:  []int{5},
				Follow: [][]int{
					{0, 1, 2},
					{0, 1, 2},
					{3},
					{4},
					{5},
					{},
				},
			},
		},
		"optional prefix": {
			givenRe: "a?b",
			want: positions{
				First:  []int{0, 1},
				Last:   []int{2},
				Follow: [][]int{{1}, {2}, {}},
			},
		},
		"plus loops": {
			givenRe: "x(ab)+",
			want: positions{
				First:  []int{0},
				Last:   []int{3},
				Follow: [][]int{{1}, {2}, {1, 3}, {}},
			},
		},
		"alternation binds loosest": {
			givenRe: "ab|cd",
			want: positions{
				First:  []int{0, 2},
				Last:   []int{4},
				Follow: [][]int{{1}, {4}, {3}, {4}, {}},
			},
		},
		"nullable body": {
			givenRe: "a*b?",
			want: positions{
				First:  []int{0, 1, 2},
				Last:   []int{2},
				Follow: [][]int{{0, 1, 2}, {2}, {}},
			},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			// when
			p, err := parse(tt.givenRe)
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			tr, err := buildTree(p, false)
			if err != nil {
				t.Fatalf("buildTree: %v", err)
			}

			// then
			root := &tr.nodes[tr.root]
			got := positions{
				First:    root.first.slice(),
				Last:     root.last.slice(),
				Nullable: root.nullable,
			}
			for _, f := range tr.follow {
				got.Follow = append(got.Follow, f.slice())
			}
			if d := cmp.Diff(tt.want, got); d != "" {
				t.Errorf("got diff (-want +got):\n%s", d)
			}
			if tr.accept != tr.npos-1 {
				t.Errorf("accept position %d, want %d", tr.accept, tr.npos-1)
			}
		})
	}
}

func TestTreeClassFolding(t *testing.T) {
	// when
	p, err := parse("a[x-z]")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	tr, err := buildTree(p, true)
	if err != nil {
		t.Fatalf("buildTree: %v", err)
	}

	// then
	root := &tr.nodes[tr.root]
	want := classOf("aAxyzXYZ")
	if d := cmp.Diff(want, root.class); d != "" {
		t.Errorf("got diff (-want +got):\n%s", d)
	}
	if got := root.class.count(); got != 8 {
		t.Errorf("got %d bytes in the aggregate class, want 8", got)
	}
}
