package lattice

import (
	"fmt"

	"github.com/SammyMurdoch/AutoPricing/internal/numeric"
)

// NodeID is a handle into the node arena of a Tree.
type NodeID int

// NilNode is the handle of a missing node (the parent of the root, the
// children of a leaf).
const NilNode NodeID = -1

// IsValid reports whether id refers to a node.
func (id NodeID) IsValid() bool { return id >= 0 }

// Branch records which edge leads from a node's parent to the node.
type Branch uint8

const (
	// RootBranch marks the root, which has no incoming edge
	RootBranch Branch = iota

	// UpBranch marks an up child
	UpBranch

	// DownBranch marks a down child
	DownBranch
)

// Letter returns "U", "D", or "" for the root.
func (b Branch) Letter() string {
	switch b {
	case UpBranch:
		return "U"
	case DownBranch:
		return "D"
	}
	return ""
}

// String returns the branch name for logs and errors.
func (b Branch) String() string {
	switch b {
	case RootBranch:
		return "Root"
	case UpBranch:
		return "Up"
	case DownBranch:
		return "Down"
	}
	return "UNKNOWN BRANCH"
}

// Status is the pricing state of a node.
//
// Transitions only move forward:
//
//	Unpriced -> IntrinsicComputed -> ChildrenPriced -> Valued   (internal nodes)
//	Unpriced -> IntrinsicComputed -> Valued                     (leaves)
type Status uint8

const (
	// Unpriced is the state of every node after generation
	Unpriced Status = iota

	// IntrinsicComputed means the exercise value is known
	IntrinsicComputed

	// ChildrenPriced means both children are Valued (internal nodes only)
	ChildrenPriced

	// Valued is terminal: the fair value is known and immutable
	Valued
)

// String returns the state name for logs and errors.
func (s Status) String() string {
	switch s {
	case Unpriced:
		return "Unpriced"
	case IntrinsicComputed:
		return "IntrinsicComputed"
	case ChildrenPriced:
		return "ChildrenPriced"
	case Valued:
		return "Valued"
	}
	return "UNKNOWN STATUS"
}

// Node is one lattice node. Tree hands out copies; mutation goes through the
// Tree so the state machine is enforced.
type Node[T numeric.Number[T]] struct {
	id        NodeID
	price     T
	intrinsic T
	value     T
	depth     int
	parent    NodeID
	branch    Branch
	children  [2]NodeID // [up, down], NilNode for leaves
	status    Status
}

// ID returns the node handle.
func (n Node[T]) ID() NodeID { return n.id }

// Price is the underlying price at this node.
func (n Node[T]) Price() T { return n.price }

// Intrinsic is the exercise value; meaningful from IntrinsicComputed on.
func (n Node[T]) Intrinsic() T { return n.intrinsic }

// Value is the fair value; meaningful once the node is Valued.
func (n Node[T]) Value() T { return n.value }

// Depth returns the number of steps from the root.
func (n Node[T]) Depth() int { return n.depth }

// Parent returns the parent handle, NilNode for the root.
func (n Node[T]) Parent() NodeID { return n.parent }

// Branch returns the edge that leads to the node.
func (n Node[T]) Branch() Branch { return n.branch }

// Status returns the pricing state.
func (n Node[T]) Status() Status { return n.status }

// Up returns the up child, or NilNode for a leaf.
func (n Node[T]) Up() NodeID { return n.children[0] }

// Down returns the down child, or NilNode for a leaf.
func (n Node[T]) Down() NodeID { return n.children[1] }

// IsLeaf reports whether the node sits at the horizon.
func (n Node[T]) IsLeaf() bool { return n.children[0] == NilNode }

// Format implements fmt.Formatter with the node id, price, values and state.
func (n Node[T]) Format(s fmt.State, c rune) {
	fmt.Fprintf(s, "{Node: %d, Depth: %d, Stock: %s, IV: %s, V: %s, Status: %v}",
		n.id, n.depth, n.price, n.intrinsic, n.value, n.status)
}
