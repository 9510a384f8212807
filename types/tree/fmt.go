package tree

import (
	"fmt"
	"io"
	"strings"
)

import (
	"github.com/timtadh/treespan/lattice"
)

type Formatter struct{}

func (f Formatter) FileExt() string {
	return ".trees"
}

func (f Formatter) PatternName(n lattice.Node) string {
	return n.(*Node).Tree().String()
}

// FormatPattern writes the pattern in the input format so results can be
// loaded again.
func (f Formatter) FormatPattern(w io.Writer, n lattice.Node) error {
	node := n.(*Node)
	_, err := fmt.Fprintf(w, "# size %d support %d\n%v\n", node.Tree().Size(), node.Support(), node.Tree())
	return err
}

func (f Formatter) FormatEmbeddings(w io.Writer, n lattice.Node) error {
	node := n.(*Node)
	for _, inst := range node.Instances() {
		nodes := make([]string, 0, len(inst.Nodes))
		for _, idx := range inst.Nodes {
			nodes = append(nodes, fmt.Sprint(idx))
		}
		_, err := fmt.Fprintf(w, "%v\t%d\t%s\n", node.Tree(), inst.Tid, strings.Join(nodes, " "))
		if err != nil {
			return err
		}
	}
	return nil
}
