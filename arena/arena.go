// Package arena stores a forest of nodes in a single backing slice and
// addresses them with NodeID handles instead of pointers.
//
// A NodeID is only meaningful for the arena that created it. Every arena
// carries a process-unique identity that is stamped into its handles, and
// passing a handle to a different arena panics: that is a programming error,
// not a recoverable condition.
//
// Nodes are never removed or re-parented, so a handle stays valid for the
// lifetime of its arena.
package arena

import (
	"fmt"
	"iter"
	"sync/atomic"
)

var nextArenaID atomic.Uint64

// NodeID names a node inside one arena. The zero value names no node.
type NodeID struct {
	arena uint64
	index uint32
}

// IsZero reports whether id is the zero handle.
func (id NodeID) IsZero() bool {
	return id.arena == 0
}

// Index returns the position of the node in creation order. It is stable
// for the lifetime of the arena and useful as a map key across trees built
// from the same input.
func (id NodeID) Index() int {
	return int(id.index)
}

func (id NodeID) String() string {
	if id.IsZero() {
		return "node(nil)"
	}
	return fmt.Sprintf("node(%d)", id.index)
}

type node[T any] struct {
	value  T
	parent NodeID
	first  NodeID
	last   NodeID
	prev   NodeID
	next   NodeID
}

// Arena owns every node of the trees built in it.
type Arena[T any] struct {
	id    uint64
	nodes []node[T]
}

// New creates an empty arena.
func New[T any]() *Arena[T] {
	return &Arena[T]{id: nextArenaID.Add(1)}
}

// Len returns the number of nodes in the arena.
func (a *Arena[T]) Len() int {
	return len(a.nodes)
}

// Contains reports whether id was minted by this arena.
func (a *Arena[T]) Contains(id NodeID) bool {
	return id.arena == a.id && int(id.index) < len(a.nodes)
}

func (a *Arena[T]) slot(id NodeID) *node[T] {
	if !a.Contains(id) {
		panic(fmt.Sprintf("arena: %v does not belong to this arena", id))
	}
	return &a.nodes[id.index]
}

// NewNode inserts a detached node holding v.
func (a *Arena[T]) NewNode(v T) NodeID {
	id := NodeID{arena: a.id, index: uint32(len(a.nodes))}
	a.nodes = append(a.nodes, node[T]{value: v})
	return id
}

// AppendChild inserts v as the last child of parent.
func (a *Arena[T]) AppendChild(parent NodeID, v T) NodeID {
	a.slot(parent)
	id := a.NewNode(v)

	p := &a.nodes[parent.index]
	c := &a.nodes[id.index]
	c.parent = parent
	if p.last.IsZero() {
		p.first = id
	} else {
		a.nodes[p.last.index].next = id
		c.prev = p.last
	}
	p.last = id
	return id
}

// Get returns the value stored at id.
func (a *Arena[T]) Get(id NodeID) T {
	return a.slot(id).value
}

// Set replaces the value stored at id.
func (a *Arena[T]) Set(id NodeID, v T) {
	a.slot(id).value = v
}

// Update calls fn with a pointer to the value stored at id. The pointer
// must not be retained after fn returns.
func (a *Arena[T]) Update(id NodeID, fn func(*T)) {
	fn(&a.slot(id).value)
}

func (a *Arena[T]) Parent(id NodeID) (NodeID, bool) {
	p := a.slot(id).parent
	return p, !p.IsZero()
}

func (a *Arena[T]) FirstChild(id NodeID) (NodeID, bool) {
	c := a.slot(id).first
	return c, !c.IsZero()
}

func (a *Arena[T]) LastChild(id NodeID) (NodeID, bool) {
	c := a.slot(id).last
	return c, !c.IsZero()
}

func (a *Arena[T]) NextSibling(id NodeID) (NodeID, bool) {
	s := a.slot(id).next
	return s, !s.IsZero()
}

func (a *Arena[T]) PrevSibling(id NodeID) (NodeID, bool) {
	s := a.slot(id).prev
	return s, !s.IsZero()
}

// Children yields the children of id in document order.
func (a *Arena[T]) Children(id NodeID) iter.Seq[NodeID] {
	return func(yield func(NodeID) bool) {
		for c := a.slot(id).first; !c.IsZero(); c = a.nodes[c.index].next {
			if !yield(c) {
				return
			}
		}
	}
}

// Descendants yields id and every node below it in pre-order.
func (a *Arena[T]) Descendants(id NodeID) iter.Seq[NodeID] {
	return func(yield func(NodeID) bool) {
		for e := range a.Traverse(id) {
			if e.Kind == EdgeStart && !yield(e.Node) {
				return
			}
		}
	}
}
