package tree

import (
	"fmt"
)

import (
	"github.com/timtadh/treespan/lattice"
)

// Node is a frequent pattern together with its projected database.
type Node struct {
	dt      *Database
	proj    *Projected
	support int
}

func NewNode(dt *Database, proj *Projected, support int) *Node {
	return &Node{
		dt:      dt,
		proj:    proj,
		support: support,
	}
}

func (n *Node) Pattern() lattice.Pattern {
	return n.proj.Pattern
}

func (n *Node) Tree() *Record {
	return n.proj.Pattern
}

// Support is the count the pattern's last growth element reached when it was
// found frequent. In occurrence counting every matching database node adds
// one, so two same-labeled siblings under one instance count twice and a
// child can report more support than its parent. Its instance count never
// grows.
func (n *Node) Support() int {
	return n.support
}

func (n *Node) Instances() []*Instance {
	return n.proj.Instances
}

func (n *Node) Embeddings() []lattice.Embedding {
	embs := make([]lattice.Embedding, 0, len(n.proj.Instances))
	for _, inst := range n.proj.Instances {
		embs = append(embs, inst)
	}
	return embs
}

func (n *Node) Projected() *Projected {
	return n.proj
}

func (n *Node) String() string {
	return fmt.Sprintf("<Node [%v] size %d support %d instances %d>", n.proj.Pattern, n.proj.Pattern.Size(), n.support, len(n.proj.Instances))
}

func (n *Node) Children() ([]lattice.Node, error) {
	it, err := n.IterChildren()
	if err != nil {
		return nil, err
	}
	return lattice.Collect(it)
}

// IterChildren discovers the growth elements of the pattern and yields one
// child per frequent GE in discovery order. A child's projected database is
// built only when the iterator reaches it.
func (n *Node) IterChildren() (lattice.NodeIterator, error) {
	var freq []Growth
	if !n.dt.TooLarge(n) {
		freq = Frequent(n.proj.FindGEs(n.dt.Records, n.dt.Counting), n.dt.Support())
	}
	var it lattice.NodeIterator
	i := 0
	it = func() (lattice.Node, error, lattice.NodeIterator) {
		if i >= len(freq) {
			return nil, nil, nil
		}
		g := freq[i]
		i++
		proj, err := n.proj.Project(g.GE, n.dt.Records)
		if err != nil {
			return nil, err, nil
		}
		return NewNode(n.dt, proj, g.Support), nil, it
	}
	return it, nil
}
