package reporters

import (
	"sync"
)

import (
	"github.com/timtadh/treespan/lattice"
)

// Collector keeps every reported node in report order.
type Collector struct {
	mu    sync.Mutex
	Nodes []lattice.Node
}

func (c *Collector) Report(n lattice.Node) error {
	c.mu.Lock()
	c.Nodes = append(c.Nodes, n)
	c.mu.Unlock()
	return nil
}

func (c *Collector) Close() error {
	return nil
}
