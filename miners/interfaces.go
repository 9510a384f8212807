package miners

import (
	"context"
)

import (
	"github.com/timtadh/treespan/lattice"
)

// Note: the miner's Close function should close both reporter and the datatype that were passed into it.
type Miner interface {
	Mine(context.Context, lattice.DataType, Reporter, lattice.Formatter) error
	Visited() int
	Close() error
}

type Reporter interface {
	Report(lattice.Node) error
	Close() error
}
