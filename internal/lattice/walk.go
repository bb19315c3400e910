package lattice

// WalkBreadthFirst calls visit for every node level by level, the up child
// before the down child. It stops at the first error visit returns.
func (t *Tree[T]) WalkBreadthFirst(visit func(Node[T]) error) error {
	if len(t.nodes) == 0 {
		return nil
	}
	queue := make([]NodeID, 0, len(t.nodes))
	queue = append(queue, t.Root())
	for head := 0; head < len(queue); head++ {
		n := t.nodes[queue[head]]
		if err := visit(n); err != nil {
			return err
		}
		if !n.IsLeaf() {
			queue = append(queue, n.children[0], n.children[1])
		}
	}
	return nil
}

// Level returns the nodes at depth, ordered from the all-up path to the
// all-down path.
func (t *Tree[T]) Level(depth int) []NodeID {
	var out []NodeID
	_ = t.WalkBreadthFirst(func(n Node[T]) error {
		if n.depth == depth {
			out = append(out, n.id)
		}
		return nil
	})
	return out
}

// Leaves returns the nodes at the horizon.
func (t *Tree[T]) Leaves() []NodeID {
	return t.Level(t.horizon)
}
