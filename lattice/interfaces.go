package lattice

import (
	"io"
)

import (
	"github.com/timtadh/data-structures/types"
)

type Input func() (reader io.Reader, closer func())

type Loader interface {
	Load(input Input) (DataType, error)
}

type DataType interface {
	Size() int
	Support() int
	Acceptable(Node) bool
	TooLarge(Node) bool
	Singletons() ([]Node, error)
	Close() error
}

type Node interface {
	Pattern() Pattern
	Support() int
	Children() ([]Node, error)
	IterChildren() (NodeIterator, error)
	Embeddings() []Embedding
}

// Embedding is one occurrence of a pattern: the transaction (tree) it lives
// in and the matched nodes of that transaction.
type Embedding interface {
	Transaction() int
	Components() []int
}

type Pattern interface {
	types.Hashable
	Label() []byte
	Level() int
}

type Formatter interface {
	FileExt() string
	PatternName(Node) string
	FormatPattern(io.Writer, Node) error
	FormatEmbeddings(io.Writer, Node) error
}

// NodeIterator yields nodes until next is nil. A failure ends the iteration
// with a nil next and a non-nil error.
type NodeIterator func() (Node, error, NodeIterator)

// Collect drains the iterator.
func Collect(it NodeIterator) ([]Node, error) {
	nodes := make([]Node, 0, 10)
	n, err, next := it()
	for next != nil {
		nodes = append(nodes, n)
		n, err, next = next()
	}
	if err != nil {
		return nil, err
	}
	return nodes, nil
}
