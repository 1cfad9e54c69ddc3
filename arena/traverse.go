package arena

import "iter"

// EdgeKind tells whether a traversal edge enters or leaves a node.
type EdgeKind int

const (
	EdgeStart EdgeKind = iota
	EdgeEnd
)

func (k EdgeKind) String() string {
	if k == EdgeStart {
		return "start"
	}
	return "end"
}

// Edge is one step of a depth-first traversal.
type Edge struct {
	Kind EdgeKind
	Node NodeID
}

// Traverse walks the subtree rooted at root depth-first, yielding a Start
// edge when a node is entered and an End edge when it is left. A leaf yields
// Start immediately followed by End.
//
// The walk follows sibling and parent links, so it needs no stack and does
// not copy the tree. The returned sequence can be ranged over any number of
// times.
func (a *Arena[T]) Traverse(root NodeID) iter.Seq[Edge] {
	return func(yield func(Edge) bool) {
		a.slot(root)

		next := Edge{Kind: EdgeStart, Node: root}
		for {
			if !yield(next) {
				return
			}

			n := &a.nodes[next.Node.index]
			switch next.Kind {
			case EdgeStart:
				if !n.first.IsZero() {
					next = Edge{Kind: EdgeStart, Node: n.first}
				} else {
					next = Edge{Kind: EdgeEnd, Node: next.Node}
				}
			case EdgeEnd:
				if next.Node == root {
					return
				}
				if !n.next.IsZero() {
					next = Edge{Kind: EdgeStart, Node: n.next}
				} else {
					next = Edge{Kind: EdgeEnd, Node: n.parent}
				}
			}
		}
	}
}
