package regex

type nodeKind uint8

const (
	nodeLeaf nodeKind = iota
	nodeAccept
	nodeCat
	nodeOr
	nodeStar
	nodePlus
	nodeQuest
)

const noChild = -1

// node is one vertex of the syntax tree. Children are indices into the
// tree's arena, unary nodes only use left.
type node struct {
	kind     nodeKind
	left     int
	right    int
	pos      int
	nullable bool
	first    posSet
	last     posSet
	class    charset
}

// tree is the position-annotated syntax tree of one pattern. Nodes are
// appended children first, so the arena is in post-order.
type tree struct {
	nodes  []node
	root   int
	npos   int
	leaves []int     // position -> node index
	follow []posSet  // position -> follow set
	accept int       // position of the synthetic accept leaf
}

// buildTree turns the infix item stream into a tree with an operator stack
// and computes first, last, nullable and the aggregate class bottom-up.
func buildTree(p *parsed, foldCase bool) (*tree, error) {
	t := &tree{
		npos:   p.atoms + 1,
		nodes:  make([]node, 0, 2*len(p.items)+2),
		leaves: make([]int, 0, p.atoms+1),
	}

	var operands []int
	var operators []itemType

	pop := func() (int, bool) {
		if len(operands) == 0 {
			return 0, false
		}
		n := operands[len(operands)-1]
		operands = operands[:len(operands)-1]
		return n, true
	}

	apply := func(op itemType) bool {
		r, ok := pop()
		if !ok {
			return false
		}
		l, ok := pop()
		if !ok {
			return false
		}
		kind := nodeCat
		if op == itemOr {
			kind = nodeOr
		}
		operands = append(operands, t.binary(kind, l, r))
		return true
	}

	for i := range p.items {
		it := &p.items[i]
		switch it.typ {
		case itemChar, itemEscChar, itemClass:
			set := it.set
			if it.typ != itemClass {
				set = charset{}
				set.add(it.ch)
			}
			if foldCase {
				set.foldCase()
			}
			operands = append(operands, t.leaf(nodeLeaf, set))
		case itemStar, itemPlus, itemQuest:
			child, ok := pop()
			if !ok {
				return nil, newError(ErrSyntax, it.pos)
			}
			operands = append(operands, t.unary(unaryKind(it.typ), child))
		case itemLParen:
			operators = append(operators, itemLParen)
		case itemCat, itemOr:
			// '|' binds looser than concatenation, both are left associative
			for len(operators) > 0 {
				top := operators[len(operators)-1]
				if top == itemLParen || top < it.typ {
					break
				}
				operators = operators[:len(operators)-1]
				if !apply(top) {
					return nil, newError(ErrSyntax, it.pos)
				}
			}
			operators = append(operators, it.typ)
		case itemRParen:
			for {
				if len(operators) == 0 {
					return nil, newError(ErrParen, it.pos)
				}
				top := operators[len(operators)-1]
				operators = operators[:len(operators)-1]
				if top == itemLParen {
					break
				}
				if !apply(top) {
					return nil, newError(ErrSyntax, it.pos)
				}
			}
		default:
			return nil, newError(ErrSyntax, it.pos)
		}
	}

	for len(operators) > 0 {
		top := operators[len(operators)-1]
		operators = operators[:len(operators)-1]
		if top == itemLParen {
			return nil, newError(ErrParen, -1)
		}
		if !apply(top) {
			return nil, newError(ErrSyntax, -1)
		}
	}

	body, ok := pop()
	if !ok || len(operands) != 0 {
		return nil, newError(ErrSyntax, -1)
	}
	t.accept = len(t.leaves)
	acc := t.leaf(nodeAccept, charset{})
	t.root = t.binary(nodeCat, body, acc)

	t.computeFollow()
	return t, nil
}

func unaryKind(typ itemType) nodeKind {
	switch typ {
	case itemStar:
		return nodeStar
	case itemPlus:
		return nodePlus
	}
	return nodeQuest
}

func (t *tree) leaf(kind nodeKind, set charset) int {
	pos := len(t.leaves)
	n := node{
		kind:  kind,
		left:  noChild,
		right: noChild,
		pos:   pos,
		first: newPosSet(t.npos),
		last:  newPosSet(t.npos),
		class: set,
	}
	n.first.add(pos)
	n.last.add(pos)
	t.nodes = append(t.nodes, n)
	t.leaves = append(t.leaves, len(t.nodes)-1)
	return len(t.nodes) - 1
}

func (t *tree) unary(kind nodeKind, child int) int {
	c := &t.nodes[child]
	n := node{
		kind:     kind,
		left:     child,
		right:    noChild,
		pos:      -1,
		nullable: c.nullable || kind != nodePlus,
		first:    c.first.clone(),
		last:     c.last.clone(),
		class:    c.class,
	}
	t.nodes = append(t.nodes, n)
	return len(t.nodes) - 1
}

func (t *tree) binary(kind nodeKind, left, right int) int {
	l, r := &t.nodes[left], &t.nodes[right]
	n := node{
		kind:  kind,
		left:  left,
		right: right,
		pos:   -1,
		first: l.first.clone(),
		last:  r.last.clone(),
		class: l.class,
	}
	n.class.merge(&r.class)

	switch kind {
	case nodeCat:
		if l.nullable {
			n.first.merge(r.first)
		}
		if r.nullable {
			n.last.merge(l.last)
		}
		n.nullable = l.nullable && r.nullable
	case nodeOr:
		n.first.merge(r.first)
		n.last.merge(l.last)
		n.nullable = l.nullable || r.nullable
	}
	t.nodes = append(t.nodes, n)
	return len(t.nodes) - 1
}

// computeFollow fills the follow set of every position: concatenation links
// left.last to right.first, repetition links a node's last back to its first.
func (t *tree) computeFollow() {
	t.follow = make([]posSet, t.npos)
	for i := range t.follow {
		t.follow[i] = newPosSet(t.npos)
	}
	for i := range t.nodes {
		n := &t.nodes[i]
		switch n.kind {
		case nodeCat:
			first := t.nodes[n.right].first
			t.nodes[n.left].last.each(func(p int) {
				t.follow[p].merge(first)
			})
		case nodeStar, nodePlus:
			n.last.each(func(p int) {
				t.follow[p].merge(n.first)
			})
		}
	}
}

// class returns the bytes matched by the leaf at position p.
func (t *tree) class(p int) *charset {
	return &t.nodes[t.leaves[p]].class
}
