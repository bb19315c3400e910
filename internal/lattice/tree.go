// Package lattice holds the binomial price tree.
//
// Nodes live in a single arena and refer to each other by NodeID, so neither
// generation nor traversal needs recursion or pointer chasing: a horizon of
// T fills the arena with exactly 2^(T+1)-1 nodes. The root is first and both
// children of a node are allocated together when the node is expanded, so
// siblings are adjacent and every node sits after its parent. Expansion
// itself runs in pre-order, up subtree before down subtree.
//
// The tree is written in two phases. Generate fills prices and children.
// Pricing then moves every node through its Status state machine via
// SetIntrinsic, MarkChildrenPriced and SetValue, which reject out-of-order
// transitions. Once every node is Valued the tree is read-only.
package lattice

import (
	"strings"

	"github.com/SammyMurdoch/AutoPricing/internal/numeric"
)

// Tree is a perfect binary tree of prices stored in an arena.
type Tree[T numeric.Number[T]] struct {
	nodes   []Node[T]
	horizon int
}

// Size returns the node count of a perfect tree of the given horizon.
func Size(horizon int) int {
	return 1<<(horizon+1) - 1
}

func newTree[T numeric.Number[T]](horizon int) *Tree[T] {
	return &Tree[T]{
		nodes:   make([]Node[T], 0, Size(horizon)),
		horizon: horizon,
	}
}

// alloc appends a node to the arena and returns its handle.
func (t *Tree[T]) alloc(price T, depth int, parent NodeID, branch Branch) NodeID {
	id := NodeID(len(t.nodes))
	t.nodes = append(t.nodes, Node[T]{
		id:       id,
		price:    price,
		depth:    depth,
		parent:   parent,
		branch:   branch,
		children: [2]NodeID{NilNode, NilNode},
	})
	return id
}

// Root returns the root handle, or NilNode for an empty tree.
func (t *Tree[T]) Root() NodeID {
	if len(t.nodes) == 0 {
		return NilNode
	}
	return 0
}

// Len returns the number of nodes.
func (t *Tree[T]) Len() int { return len(t.nodes) }

// Horizon returns the depth of every leaf.
func (t *Tree[T]) Horizon() int { return t.horizon }

// Node returns a copy of the node. It panics if id is out of range.
func (t *Tree[T]) Node(id NodeID) Node[T] { return t.nodes[id] }

// Children returns the up and down children of id; both are NilNode for a leaf.
func (t *Tree[T]) Children(id NodeID) (up, down NodeID) {
	c := t.nodes[id].children
	return c[0], c[1]
}

// IsLeaf reports whether id has no children.
func (t *Tree[T]) IsLeaf(id NodeID) bool { return t.nodes[id].IsLeaf() }

// Path returns the branch letters from the root to id, e.g. "UDU".
// The root's path is empty.
func (t *Tree[T]) Path(id NodeID) string {
	n := t.nodes[id]
	letters := make([]string, n.depth)
	for cur := n; cur.parent != NilNode; cur = t.nodes[cur.parent] {
		letters[cur.depth-1] = cur.branch.Letter()
	}
	return strings.Join(letters, "")
}

// Find returns the node reached by following path ("U"/"D" letters) from
// the root, or NilNode if the path leaves the tree.
func (t *Tree[T]) Find(path string) NodeID {
	id := t.Root()
	for _, r := range path {
		if !id.IsValid() || t.IsLeaf(id) {
			return NilNode
		}
		up, down := t.Children(id)
		switch r {
		case 'U':
			id = up
		case 'D':
			id = down
		default:
			return NilNode
		}
	}
	return id
}

// Valued reports whether every node has completed pricing.
func (t *Tree[T]) Valued() bool {
	if len(t.nodes) == 0 {
		return false
	}
	for i := range t.nodes {
		if t.nodes[i].status != Valued {
			return false
		}
	}
	return true
}
