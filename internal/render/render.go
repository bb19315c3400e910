// Package render displays and exports priced lattices.
//
// Every renderer walks the arena directly and refuses trees that still have
// nodes awaiting a value.
package render

import (
	"github.com/pkg/errors"

	"github.com/SammyMurdoch/AutoPricing/internal/lattice"
	"github.com/SammyMurdoch/AutoPricing/internal/numeric"
)

// ErrUnpriced is returned when asked to render a tree that is not fully valued.
var ErrUnpriced = errors.New("lattice is not fully priced")

// Formats accepted by Render.
const (
	// TextFormat selects Text
	TextFormat = "text"

	// DOTFormat selects DOT
	DOTFormat = "dot"

	// JSONFormat selects JSON
	JSONFormat = "json"
)

func checkPriced[T numeric.Number[T]](tree *lattice.Tree[T]) error {
	if tree == nil || tree.Len() == 0 || !tree.Valued() {
		return ErrUnpriced
	}
	return nil
}
