package pricing

// history is an immutable, structurally shared root-to-node price path.
// Siblings extend the same parent history and never see each other's prices.
type history[T any] struct {
	price T
	prev  *history[T]
	n     int
}

// extend returns a new history ending in price. h is left untouched; a nil
// h is the empty history.
func (h *history[T]) extend(price T) *history[T] {
	n := 1
	if h != nil {
		n = h.n + 1
	}
	return &history[T]{price: price, prev: h, n: n}
}

// prices materialises the path, root first, into a fresh slice.
func (h *history[T]) prices() []T {
	if h == nil {
		return nil
	}
	out := make([]T, h.n)
	for cur, i := h, h.n-1; cur != nil; cur, i = cur.prev, i-1 {
		out[i] = cur.price
	}
	return out
}
