package render

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/SammyMurdoch/AutoPricing/internal/lattice"
	"github.com/SammyMurdoch/AutoPricing/internal/model"
	"github.com/SammyMurdoch/AutoPricing/internal/numeric"
)

// Text writes one row per node in breadth-first order.
func Text[T numeric.Number[T]](w io.Writer, tree *lattice.Tree[T]) error {
	if err := checkPriced(tree); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "DEPTH\tPATH\tPRICE\tINTRINSIC\tVALUE")
	err := tree.WalkBreadthFirst(func(n lattice.Node[T]) error {
		_, err := fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n",
			n.Depth(), model.NodeLabel(tree.Path(n.ID())), n.Price(), n.Intrinsic(), n.Value())
		return err
	})
	if err != nil {
		return err
	}
	return tw.Flush()
}
