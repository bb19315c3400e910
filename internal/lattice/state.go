package lattice

import (
	"github.com/pkg/errors"
)

// ErrStateViolation indicates an out-of-order pricing transition. It is a
// programming error in the caller, never a property of the model.
var ErrStateViolation = errors.New("node state violation")

// SetIntrinsic records the exercise value of id: Unpriced -> IntrinsicComputed.
func (t *Tree[T]) SetIntrinsic(id NodeID, v T) error {
	n := &t.nodes[id]
	if n.status != Unpriced {
		return t.violation(id, Unpriced)
	}
	n.intrinsic = v
	n.status = IntrinsicComputed
	return nil
}

// MarkChildrenPriced moves an internal node to ChildrenPriced once both of
// its children are Valued.
func (t *Tree[T]) MarkChildrenPriced(id NodeID) error {
	n := &t.nodes[id]
	if n.IsLeaf() {
		return errors.Wrapf(ErrStateViolation, "node %d is a leaf and has no children to price", id)
	}
	if n.status != IntrinsicComputed {
		return t.violation(id, IntrinsicComputed)
	}
	for _, c := range n.children {
		if t.nodes[c].status != Valued {
			return errors.Wrapf(ErrStateViolation, "child %d of node %d is %v, expected %v",
				c, id, t.nodes[c].status, Valued)
		}
	}
	n.status = ChildrenPriced
	return nil
}

// SetValue records the fair value of id. Leaves move from IntrinsicComputed,
// internal nodes from ChildrenPriced. Valued is terminal.
func (t *Tree[T]) SetValue(id NodeID, v T) error {
	n := &t.nodes[id]
	want := ChildrenPriced
	if n.IsLeaf() {
		want = IntrinsicComputed
	}
	if n.status != want {
		return t.violation(id, want)
	}
	n.value = v
	n.status = Valued
	return nil
}

func (t *Tree[T]) violation(id NodeID, want Status) error {
	n := t.nodes[id]
	return errors.Wrapf(ErrStateViolation, "node %d at depth %d is %v, expected %v", id, n.depth, n.status, want)
}
