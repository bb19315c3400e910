package render

import (
	"fmt"
	"strconv"

	"github.com/awalterschulze/gographviz"
	"github.com/pkg/errors"

	"github.com/SammyMurdoch/AutoPricing/internal/lattice"
	"github.com/SammyMurdoch/AutoPricing/internal/model"
	"github.com/SammyMurdoch/AutoPricing/internal/numeric"
)

const graphName = "lattice"

func dotID(id lattice.NodeID) string { return "n" + strconv.Itoa(int(id)) }

// DOT returns the lattice as a Graphviz digraph. Node labels carry the path,
// price, intrinsic and fair values; edges are labelled U and D.
func DOT[T numeric.Number[T]](tree *lattice.Tree[T]) (string, error) {
	if err := checkPriced(tree); err != nil {
		return "", err
	}

	g := gographviz.NewGraph()
	if err := g.SetName(graphName); err != nil {
		return "", errors.Wrap(err, "naming graph")
	}
	if err := g.SetDir(true); err != nil {
		return "", errors.Wrap(err, "directing graph")
	}

	err := tree.WalkBreadthFirst(func(n lattice.Node[T]) error {
		label := fmt.Sprintf(`"%s\nS=%s\nI=%s\nV=%s"`,
			model.NodeLabel(tree.Path(n.ID())), n.Price(), n.Intrinsic(), n.Value())
		attrs := map[string]string{
			"label": label,
			"shape": "box",
		}
		if err := g.AddNode(graphName, dotID(n.ID()), attrs); err != nil {
			return errors.Wrapf(err, "adding node %d", n.ID())
		}
		if n.IsLeaf() {
			return nil
		}
		for _, child := range []lattice.NodeID{n.Up(), n.Down()} {
			edge := map[string]string{"label": tree.Node(child).Branch().Letter()}
			if err := g.AddEdge(dotID(n.ID()), dotID(child), true, edge); err != nil {
				return errors.Wrapf(err, "adding edge %d -> %d", n.ID(), child)
			}
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return g.String(), nil
}
