package render

import (
	"io"

	json "github.com/goccy/go-json"

	"github.com/SammyMurdoch/AutoPricing/internal/lattice"
	"github.com/SammyMurdoch/AutoPricing/internal/numeric"
)

// Document is the JSON export of a priced lattice. Numbers are encoded as
// strings in the notation of the numeric field so exact rationals survive.
type Document struct {
	Numeric string   `json:"numeric,omitempty"`
	Horizon int      `json:"horizon"`
	Nodes   int      `json:"nodes"`
	Value   string   `json:"value"`
	Root    *NodeDoc `json:"root"`
}

// NodeDoc is one lattice node and its subtrees.
type NodeDoc struct {
	Path      string   `json:"path"`
	Depth     int      `json:"depth"`
	Price     string   `json:"price"`
	Intrinsic string   `json:"intrinsic"`
	Value     string   `json:"value"`
	Up        *NodeDoc `json:"up,omitempty"`
	Down      *NodeDoc `json:"down,omitempty"`
}

// NewDocument builds the nested document for tree.
func NewDocument[T numeric.Number[T]](tree *lattice.Tree[T]) (*Document, error) {
	if err := checkPriced(tree); err != nil {
		return nil, err
	}

	// children always sit after their parent in the arena
	docs := make([]*NodeDoc, tree.Len())
	for i := tree.Len() - 1; i >= 0; i-- {
		id := lattice.NodeID(i)
		n := tree.Node(id)
		doc := &NodeDoc{
			Path:      tree.Path(id),
			Depth:     n.Depth(),
			Price:     n.Price().String(),
			Intrinsic: n.Intrinsic().String(),
			Value:     n.Value().String(),
		}
		if !n.IsLeaf() {
			doc.Up, doc.Down = docs[n.Up()], docs[n.Down()]
		}
		docs[i] = doc
	}

	root := docs[tree.Root()]
	return &Document{
		Horizon: tree.Horizon(),
		Nodes:   tree.Len(),
		Value:   root.Value,
		Root:    root,
	}, nil
}

// JSON writes the indented document for tree to w, tagged with the name of
// the numeric field it was priced in.
func JSON[T numeric.Number[T]](w io.Writer, tree *lattice.Tree[T], numericName string) error {
	doc, err := NewDocument(tree)
	if err != nil {
		return err
	}
	doc.Numeric = numericName

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
